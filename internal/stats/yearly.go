// Package stats contains per-year queries.
package stats

import (
	"fmt"
	"sort"

	"github.com/loganmitchell124/tunestat/internal/model"
	"github.com/loganmitchell124/tunestat/internal/store"
)

// yearWinner keeps the first row reaching the highest popularity per year.
type yearWinner struct {
	picks map[int]model.YearPick
}

func (w *yearWinner) offer(year int, label string, popularity float64) {
	if w.picks == nil {
		w.picks = make(map[int]model.YearPick)
	}
	cur, ok := w.picks[year]
	if ok && popularity <= cur.Popularity {
		return
	}
	w.picks[year] = model.YearPick{Year: year, Label: label, Popularity: popularity}
}

func (w *yearWinner) sorted() []model.YearPick {
	out := make([]model.YearPick, 0, len(w.picks))
	for _, p := range w.picks {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Year < out[j].Year
	})
	return out
}

// MostPopularPerYear names the artist of the most popular song in each year, years ascending.
// Ties keep the earliest row in file order.
func MostPopularPerYear(rs *store.RecordSet) (model.Result[[]model.YearPick], error) {
	var w yearWinner
	for i := 0; i < rs.Len(); i++ {
		song := rs.At(i)
		w.offer(song.Year, song.Artist, song.Popularity)
	}
	picks := w.sorted()
	if len(picks) == 0 {
		return model.Empty(picks, "dataset has no songs"), nil
	}
	return model.OK(picks), nil
}

// MostPopularGenrePerYear names the genre label of the most popular exploded row in each year.
// Ties keep the earliest exploded row, so a multi-genre song's first label wins.
func MostPopularGenrePerYear(gs *store.GenreSet) (model.Result[[]model.YearPick], error) {
	var w yearWinner
	for i := 0; i < gs.Len(); i++ {
		row := gs.Row(i)
		w.offer(row.Song.Year, row.Genre, row.Song.Popularity)
	}
	picks := w.sorted()
	if len(picks) == 0 {
		return model.Empty(picks, "dataset has no songs"), nil
	}
	return model.OK(picks), nil
}

// GenrePopularityTimeSeries sums popularity per genre for every year in [from, to], filling absent years with zero.
// Sums run over exploded rows. Genres appear in first-encountered order.
func GenrePopularityTimeSeries(gs *store.GenreSet, from, to int) (model.Result[[]model.Series], error) {
	if err := checkYearRange(from, to); err != nil {
		return model.Result[[]model.Series]{}, err
	}
	var order []string
	sums := make(map[string][]float64)
	for i := 0; i < gs.Len(); i++ {
		row := gs.Row(i)
		year := row.Song.Year
		if year < from || year > to {
			continue
		}
		points, ok := sums[row.Genre]
		if !ok {
			points = make([]float64, to-from+1)
			order = append(order, row.Genre)
		}
		points[year-from] += row.Song.Popularity
		sums[row.Genre] = points
	}
	out := make([]model.Series, 0, len(order))
	for _, genre := range order {
		s := model.Series{Name: genre, Points: make([]model.YearValue, 0, to-from+1)}
		for i, v := range sums[genre] {
			s.Points = append(s.Points, model.YearValue{Year: from + i, Value: v})
		}
		out = append(out, s)
	}
	if len(out) == 0 {
		return model.Empty(out, fmt.Sprintf("no songs between %d and %d", from, to)), nil
	}
	return model.OK(out), nil
}

// YearCounts returns the number of songs per year, ascending, with gaps filled by zero.
func YearCounts(rs *store.RecordSet) (model.Result[[]model.YearValue], error) {
	from, to, ok := rs.YearRange()
	if !ok {
		return model.Empty([]model.YearValue(nil), "dataset has no songs"), nil
	}
	if err := checkYearRange(from, to); err != nil {
		return model.Result[[]model.YearValue]{}, err
	}
	out := make([]model.YearValue, to-from+1)
	for i := range out {
		out[i].Year = from + i
	}
	for i := 0; i < rs.Len(); i++ {
		out[rs.At(i).Year-from].Value++
	}
	return model.OK(out), nil
}

// checkYearRange bounds a year span before per-year slices are allocated for it.
func checkYearRange(from, to int) error {
	span := fmt.Sprintf("%d-%d", from, to)
	if !model.ValidYear(from) || !model.ValidYear(to) {
		return model.Invalid("year range", span, fmt.Sprintf("years must lie in %d-%d", model.MinYear, model.MaxYear))
	}
	if from > to {
		return model.Invalid("year range", span, "start is after end")
	}
	return nil
}
