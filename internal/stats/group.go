// Package stats contains the aggregation engine: pure queries over a loaded record set.
package stats

import (
	"math"
	"sort"
	"strings"

	"github.com/loganmitchell124/tunestat/internal/model"
)

// Grouping keys accepted by TopByMeasure.
const (
	GroupArtist = "artist"
	GroupSong   = "song"
	GroupGenre  = "genre"
	GroupYear   = "year"
)

// Aggregations accepted by TopByMeasure.
const (
	AggMean  = "mean"
	AggSum   = "sum"
	AggCount = "count"
)

// Groups lists the valid grouping keys.
var Groups = []string{GroupArtist, GroupSong, GroupGenre, GroupYear}

// Aggregations lists the valid aggregations.
var Aggregations = []string{AggMean, AggSum, AggCount}

// Measures lists the numeric columns a ranking can use.
var Measures = append(append([]string{model.AttrPopularity}, model.AudioAttributes...), model.AttrDurationMs)

func oneOf(value string, allowed []string) bool {
	for _, a := range allowed {
		if value == a {
			return true
		}
	}
	return false
}

func choices(allowed []string) string {
	return "expected one of " + strings.Join(allowed, ", ")
}

// accumulator groups values by key in first-encountered order.
type accumulator struct {
	order []string
	sums  map[string]float64
	seen  map[string]int
	rows  map[string]int
}

func newAccumulator() *accumulator {
	return &accumulator{
		sums: make(map[string]float64),
		seen: make(map[string]int),
		rows: make(map[string]int),
	}
}

// add records one row for key. Missing values count as rows but not as observations.
func (a *accumulator) add(key string, v float64) {
	if _, ok := a.rows[key]; !ok {
		a.order = append(a.order, key)
	}
	a.rows[key]++
	if model.Missing(v) {
		return
	}
	a.sums[key] += v
	a.seen[key]++
}

// ranked converts the groups to entries for agg. Groups without observations are dropped for mean and sum.
func (a *accumulator) ranked(agg string) []model.Ranked {
	out := make([]model.Ranked, 0, len(a.order))
	for _, key := range a.order {
		switch agg {
		case AggCount:
			out = append(out, model.Ranked{Key: key, Value: float64(a.rows[key]), Count: a.rows[key]})
		case AggSum:
			if a.seen[key] == 0 {
				continue
			}
			out = append(out, model.Ranked{Key: key, Value: a.sums[key], Count: a.seen[key]})
		default:
			if a.seen[key] == 0 {
				continue
			}
			out = append(out, model.Ranked{Key: key, Value: a.sums[key] / float64(a.seen[key]), Count: a.seen[key]})
		}
	}
	return out
}

// rankDescending sorts by value, keeping first-encountered order on ties, and keeps at most n entries.
func rankDescending(items []model.Ranked, n int) []model.Ranked {
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].Value > items[j].Value
	})
	if n > 0 && n < len(items) {
		items = items[:n]
	}
	return items
}

// mean averages the non-missing values. ok is false when none remain.
func mean(values []float64) (float64, bool) {
	var sum float64
	n := 0
	for _, v := range values {
		if model.Missing(v) {
			continue
		}
		sum += v
		n++
	}
	if n == 0 {
		return math.NaN(), false
	}
	return sum / float64(n), true
}
