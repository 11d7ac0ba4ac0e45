// Package stats contains artist queries.
package stats

import (
	"fmt"
	"sort"
	"strings"

	"github.com/adrg/strutil"
	"github.com/adrg/strutil/metrics"

	"github.com/loganmitchell124/tunestat/internal/model"
	"github.com/loganmitchell124/tunestat/internal/store"
)

const (
	suggestionLimit     = 3
	suggestionThreshold = 0.75
)

// ArtistProfile summarises the songs of one artist, matched case-insensitively.
// The modal genre counts exploded labels; ties go to the label that reached the count first.
// An unknown artist yields an empty result whose reason lists the closest names.
func ArtistProfile(rs *store.RecordSet, name string) (model.Result[model.Profile], error) {
	query := strings.TrimSpace(name)
	if query == "" {
		return model.Result[model.Profile]{}, model.Invalid("artist", name, "name is empty")
	}
	songs := rs.Filter(func(s model.Song) bool {
		return strings.EqualFold(s.Artist, query)
	})
	if songs.Len() == 0 {
		reason := fmt.Sprintf("artist %q not found", query)
		if suggestions := SuggestArtists(rs, query, suggestionLimit); len(suggestions) > 0 {
			reason += "; did you mean " + strings.Join(suggestions, ", ") + "?"
		}
		return model.Empty(model.Profile{Artist: query}, reason), nil
	}

	profile := model.Profile{
		Artist:    songs.At(0).Artist,
		SongCount: songs.Len(),
		Songs:     make([]model.Song, 0, songs.Len()),
	}
	pops := make([]float64, 0, songs.Len())
	tempos := make([]float64, 0, songs.Len())
	dances := make([]float64, 0, songs.Len())
	for i := 0; i < songs.Len(); i++ {
		s := songs.At(i)
		profile.Songs = append(profile.Songs, s)
		pops = append(pops, s.Popularity)
		tempos = append(tempos, s.Tempo)
		dances = append(dances, s.Danceability)
	}
	profile.AvgPopularity, _ = mean(pops)
	profile.AvgTempo, _ = mean(tempos)
	profile.AvgDanceability, _ = mean(dances)
	profile.ModalGenre = modalGenre(store.NormalizeGenres(songs))
	return model.OK(profile), nil
}

func modalGenre(gs *store.GenreSet) string {
	counts := make(map[string]int)
	best := ""
	bestCount := 0
	for i := 0; i < gs.Len(); i++ {
		label := gs.Row(i).Genre
		counts[label]++
		if counts[label] > bestCount {
			best = label
			bestCount = counts[label]
		}
	}
	return best
}

// SuggestArtists returns up to n artist names most similar to name, best first.
func SuggestArtists(rs *store.RecordSet, name string, n int) []string {
	query := strings.ToLower(strings.TrimSpace(name))
	if query == "" || n <= 0 {
		return nil
	}
	type candidate struct {
		name  string
		score float64
	}
	metric := metrics.NewJaroWinkler()
	var candidates []candidate
	for _, artist := range rs.Artists() {
		score := strutil.Similarity(query, strings.ToLower(artist), metric)
		if score < suggestionThreshold {
			continue
		}
		candidates = append(candidates, candidate{name: artist, score: score})
	}
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].score > candidates[j].score
	})
	if len(candidates) > n {
		candidates = candidates[:n]
	}
	out := make([]string, 0, len(candidates))
	for _, c := range candidates {
		out = append(out, c.name)
	}
	return out
}
