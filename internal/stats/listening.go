// Package stats aggregates personal listening history.
package stats

import (
	"sort"

	"github.com/loganmitchell124/tunestat/internal/model"
)

const msPerHour = 3_600_000

// AggregateListeningTime sums play time per artist in hours, largest first, keeping at most n
// (n <= 0 keeps all). Ties keep first-encountered order.
func AggregateListeningTime(entries []model.Listen, n int) (model.Result[[]model.ListenTotal], error) {
	var order []string
	ms := make(map[string]int64)
	plays := make(map[string]int)
	for _, e := range entries {
		if _, ok := ms[e.ArtistName]; !ok {
			order = append(order, e.ArtistName)
		}
		ms[e.ArtistName] += e.MsPlayed
		plays[e.ArtistName]++
	}
	out := make([]model.ListenTotal, 0, len(order))
	for _, artist := range order {
		out = append(out, model.ListenTotal{
			Artist: artist,
			Hours:  float64(ms[artist]) / msPerHour,
			Plays:  plays[artist],
		})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Hours > out[j].Hours
	})
	if n > 0 && n < len(out) {
		out = out[:n]
	}
	if len(out) == 0 {
		return model.Empty(out, "listening history is empty"), nil
	}
	return model.OK(out), nil
}
