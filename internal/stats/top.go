// Package stats contains ranking queries.
package stats

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/loganmitchell124/tunestat/internal/model"
	"github.com/loganmitchell124/tunestat/internal/store"
)

// TopByMeasure ranks groups by an aggregated measure, highest first, keeping at most n (n <= 0 keeps all).
// Grouping by genre explodes each song into one row per label, so a multi-genre song counts once per label.
// Missing values are skipped for mean and sum; count counts rows.
func TopByMeasure(rs *store.RecordSet, group, measure, agg string, n int) (model.Result[[]model.Ranked], error) {
	if !oneOf(group, Groups) {
		return model.Result[[]model.Ranked]{}, model.Invalid("group", group, choices(Groups))
	}
	if !oneOf(measure, Measures) {
		return model.Result[[]model.Ranked]{}, model.Invalid("measure", measure, choices(Measures))
	}
	if !oneOf(agg, Aggregations) {
		return model.Result[[]model.Ranked]{}, model.Invalid("aggregation", agg, choices(Aggregations))
	}

	acc := newAccumulator()
	if group == GroupGenre {
		gs := store.NormalizeGenres(rs)
		for i := 0; i < gs.Len(); i++ {
			row := gs.Row(i)
			v, _ := row.Song.Value(measure)
			acc.add(row.Genre, v)
		}
	} else {
		for i := 0; i < rs.Len(); i++ {
			song := rs.At(i)
			v, _ := song.Value(measure)
			acc.add(groupKey(song, group), v)
		}
	}

	items := rankDescending(acc.ranked(agg), n)
	if len(items) == 0 {
		return model.Empty(items, fmt.Sprintf("no %s values to rank by %s", measure, group)), nil
	}
	return model.OK(items), nil
}

func groupKey(song model.Song, group string) string {
	switch group {
	case GroupSong:
		return song.Title
	case GroupYear:
		return strconv.Itoa(song.Year)
	default:
		return song.Artist
	}
}

// TopArtists ranks artists by mean popularity.
func TopArtists(rs *store.RecordSet, n int) (model.Result[[]model.Ranked], error) {
	return TopByMeasure(rs, GroupArtist, model.AttrPopularity, AggMean, n)
}

// TopGenres ranks genre labels by how many exploded rows carry them.
func TopGenres(rs *store.RecordSet, n int) (model.Result[[]model.Ranked], error) {
	return TopByMeasure(rs, GroupGenre, model.AttrPopularity, AggCount, n)
}

// TopTracks ranks song titles by mean popularity.
func TopTracks(rs *store.RecordSet, n int) (model.Result[[]model.Ranked], error) {
	return TopByMeasure(rs, GroupSong, model.AttrPopularity, AggMean, n)
}

// TopSeries keeps the n series with the largest totals, preserving their input order.
func TopSeries(series []model.Series, n int) []model.Series {
	if n <= 0 || n >= len(series) {
		out := make([]model.Series, len(series))
		copy(out, series)
		return out
	}
	idx := make([]int, len(series))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool {
		return series[idx[a]].Total() > series[idx[b]].Total()
	})
	keep := idx[:n]
	sort.Ints(keep)
	out := make([]model.Series, 0, n)
	for _, i := range keep {
		out = append(out, series[i])
	}
	return out
}
