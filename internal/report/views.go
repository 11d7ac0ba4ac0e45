// Package report renders each derived view type.
package report

import (
	"fmt"
	"math"
	"strconv"

	"github.com/olekukonko/tablewriter"

	"github.com/loganmitchell124/tunestat/internal/chart"
	"github.com/loganmitchell124/tunestat/internal/model"
	"github.com/loganmitchell124/tunestat/internal/stats"
)

const plotHeight = 10

func (r *Renderer) table(header []string, rows [][]string) error {
	table := tablewriter.NewWriter(r.Out)
	table.Header(header)
	for _, row := range rows {
		if err := table.Append(row); err != nil {
			return fmt.Errorf("failed to render table: %w", err)
		}
	}
	if err := table.Render(); err != nil {
		return fmt.Errorf("failed to render table: %w", err)
	}
	return nil
}

func (r *Renderer) bars(title string, bars []chart.Bar) error {
	return chart.Bars(r.Out, title, bars, r.Width, r.Color)
}

func (r *Renderer) plot(title string, series []chart.Series, xStart, xEnd int) error {
	width := 0
	if r.Width > 0 {
		width = chart.PlotWidthFor(r.Width)
	}
	return chart.Plot(r.Out, title, series, chart.PlotOptions{
		Width:  width,
		Height: plotHeight,
		Color:  r.Color,
		XStart: strconv.Itoa(xStart),
		XEnd:   strconv.Itoa(xEnd),
	})
}

// Smooth replaces each series' values with a trailing moving average over window years.
// A window of 1 or less returns the series unchanged.
func Smooth(series []model.Series, window int) []model.Series {
	if window <= 1 {
		return series
	}
	out := make([]model.Series, len(series))
	for i, s := range series {
		values := make([]float64, len(s.Points))
		for j, p := range s.Points {
			values[j] = p.Value
		}
		avg := chart.MovingAverage(values, window)
		points := make([]model.YearValue, len(s.Points))
		for j, p := range s.Points {
			points[j] = model.YearValue{Year: p.Year, Value: avg[j]}
		}
		out[i] = model.Series{Name: s.Name, Points: points}
	}
	return out
}

// FormatNumber renders a float with two decimals, or n/a when missing.
func FormatNumber(v float64) string {
	if math.IsNaN(v) {
		return "n/a"
	}
	return strconv.FormatFloat(v, 'f', 2, 64)
}

// FormatPercent renders a fraction in [0, 1] as a percentage.
func FormatPercent(fraction float64) string {
	return FormatNumber(fraction*100) + "%"
}

// Ranked renders a top-n ranking.
func (r *Renderer) Ranked(title, keyHeader, valueHeader string, items []model.Ranked) error {
	switch r.Format {
	case FormatYAML:
		return r.yaml(items)
	case FormatChart:
		bars := make([]chart.Bar, 0, len(items))
		for _, it := range items {
			bars = append(bars, chart.Bar{Label: it.Key, Value: it.Value})
		}
		return r.bars(title, bars)
	}
	rows := make([][]string, 0, len(items))
	for i, it := range items {
		rows = append(rows, []string{strconv.Itoa(i + 1), it.Key, FormatNumber(it.Value), strconv.Itoa(it.Count)})
	}
	if err := r.heading(title); err != nil {
		return err
	}
	return r.table([]string{"#", keyHeader, valueHeader, "Rows"}, rows)
}

// YearPicks renders one winner per year.
func (r *Renderer) YearPicks(title, labelHeader string, picks []model.YearPick) error {
	switch r.Format {
	case FormatYAML:
		return r.yaml(picks)
	case FormatChart:
		bars := make([]chart.Bar, 0, len(picks))
		for _, p := range picks {
			bars = append(bars, chart.Bar{Label: fmt.Sprintf("%d %s", p.Year, p.Label), Value: p.Popularity})
		}
		return r.bars(title, bars)
	}
	rows := make([][]string, 0, len(picks))
	for _, p := range picks {
		rows = append(rows, []string{strconv.Itoa(p.Year), p.Label, FormatNumber(p.Popularity)})
	}
	if err := r.heading(title); err != nil {
		return err
	}
	return r.table([]string{"Year", labelHeader, "Popularity"}, rows)
}

// Series renders per-year series side by side.
func (r *Renderer) Series(title string, series []model.Series) error {
	switch r.Format {
	case FormatYAML:
		return r.yaml(series)
	case FormatChart:
		if len(series) == 0 || len(series[0].Points) == 0 {
			return nil
		}
		lines := make([]chart.Series, 0, len(series))
		for _, s := range series {
			lines = append(lines, chart.Series{Name: s.Name, Values: s.Values()})
		}
		points := series[0].Points
		return r.plot(title, lines, points[0].Year, points[len(points)-1].Year)
	}
	header := []string{"Year"}
	for _, s := range series {
		header = append(header, s.Name)
	}
	var rows [][]string
	if len(series) > 0 {
		for i, p := range series[0].Points {
			row := []string{strconv.Itoa(p.Year)}
			for _, s := range series {
				row = append(row, FormatNumber(s.Points[i].Value))
			}
			rows = append(rows, row)
		}
	}
	if err := r.heading(title); err != nil {
		return err
	}
	return r.table(header, rows)
}

// YearValues renders a single per-year sequence.
func (r *Renderer) YearValues(title, valueHeader string, values []model.YearValue) error {
	switch r.Format {
	case FormatYAML:
		return r.yaml(values)
	case FormatChart:
		if len(values) == 0 {
			return nil
		}
		s := model.Series{Name: valueHeader, Points: values}
		return r.plot(title, []chart.Series{{Name: s.Name, Values: s.Values()}}, values[0].Year, values[len(values)-1].Year)
	}
	rows := make([][]string, 0, len(values))
	for _, v := range values {
		rows = append(rows, []string{strconv.Itoa(v.Year), chart.FormatValue(v.Value)})
	}
	if err := r.heading(title); err != nil {
		return err
	}
	return r.table([]string{"Year", valueHeader}, rows)
}

// Shares renders a percentage distribution.
func (r *Renderer) Shares(title, keyHeader string, shares []model.Share) error {
	switch r.Format {
	case FormatYAML:
		return r.yaml(shares)
	case FormatChart:
		bars := make([]chart.Bar, 0, len(shares))
		for _, s := range shares {
			bars = append(bars, chart.Bar{Label: s.Key, Value: s.Percent})
		}
		return r.bars(title, bars)
	}
	rows := make([][]string, 0, len(shares))
	for _, s := range shares {
		rows = append(rows, []string{s.Key, strconv.Itoa(s.Count), FormatNumber(s.Percent) + "%"})
	}
	if err := r.heading(title); err != nil {
		return err
	}
	return r.table([]string{keyHeader, "Rows", "Share"}, rows)
}

// Profile renders an artist summary and the artist's songs.
func (r *Renderer) Profile(p model.Profile) error {
	switch r.Format {
	case FormatYAML:
		return r.yaml(p)
	case FormatChart:
		bars := make([]chart.Bar, 0, len(p.Songs))
		for _, s := range p.Songs {
			bars = append(bars, chart.Bar{Label: s.Title, Value: s.Popularity})
		}
		return r.bars(fmt.Sprintf("%s: song popularity", p.Artist), bars)
	}
	if err := r.heading(p.Artist); err != nil {
		return err
	}
	summary := [][]string{
		{"Songs", strconv.Itoa(p.SongCount)},
		{"Avg popularity", FormatNumber(p.AvgPopularity)},
		{"Avg tempo", FormatNumber(p.AvgTempo)},
		{"Avg danceability", FormatNumber(p.AvgDanceability)},
		{"Top genre", p.ModalGenre},
	}
	if err := r.table([]string{"Measure", "Value"}, summary); err != nil {
		return err
	}
	rows := make([][]string, 0, len(p.Songs))
	for _, s := range p.Songs {
		rows = append(rows, []string{s.Title, strconv.Itoa(s.Year), FormatNumber(s.Popularity), strconv.FormatBool(s.Explicit)})
	}
	return r.table([]string{"Song", "Year", "Popularity", "Explicit"}, rows)
}

// Probability renders one count ratio.
func (r *Renderer) Probability(title string, p model.Probability) error {
	if r.Format == FormatYAML {
		return r.yaml(p)
	}
	if err := r.heading(title); err != nil {
		return err
	}
	return r.table([]string{"Matching", "Total", "Probability"}, [][]string{
		{strconv.Itoa(p.Matching), strconv.Itoa(p.Total), FormatPercent(p.Value)},
	})
}

// Breakdown renders joint and conditional probabilities together.
func (r *Renderer) Breakdown(b model.Breakdown) error {
	entries := []struct {
		label string
		p     model.Probability
	}{
		{fmt.Sprintf("P(artist=%s, period=%s)", b.Artist, b.Period), b.ArtistAndPeriod},
		{fmt.Sprintf("P(artist=%s, genre=%s)", b.Artist, b.Genre), b.ArtistAndGenre},
		{fmt.Sprintf("P(artist=%s | period=%s)", b.Artist, b.Period), b.ArtistGivenPeriod},
		{fmt.Sprintf("P(genre=%s | artist=%s)", b.Genre, b.Artist), b.GenreGivenArtist},
	}
	switch r.Format {
	case FormatYAML:
		return r.yaml(b)
	case FormatChart:
		bars := make([]chart.Bar, 0, len(entries))
		for _, e := range entries {
			bars = append(bars, chart.Bar{Label: e.label, Value: e.p.Value * 100})
		}
		return r.bars("Probability breakdown (%)", bars)
	}
	rows := make([][]string, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, []string{e.label, strconv.Itoa(e.p.Matching), strconv.Itoa(e.p.Total), FormatPercent(e.p.Value)})
	}
	return r.table([]string{"Measure", "Matching", "Total", "Probability"}, rows)
}

// Matrix renders a correlation matrix.
func (r *Renderer) Matrix(title string, m model.Matrix) error {
	switch r.Format {
	case FormatYAML:
		return r.yaml(m)
	case FormatChart:
		return chart.Heatmap(r.Out, title, m.Labels, m.Values, r.Color)
	}
	header := append([]string{""}, m.Labels...)
	rows := make([][]string, 0, len(m.Labels))
	for i, label := range m.Labels {
		row := []string{label}
		for j := range m.Labels {
			row = append(row, FormatNumber(m.At(i, j)))
		}
		rows = append(rows, row)
	}
	if err := r.heading(fmt.Sprintf("%s (%d rows)", title, m.Rows)); err != nil {
		return err
	}
	return r.table(header, rows)
}

// Listening renders listening time per artist.
func (r *Renderer) Listening(totals []model.ListenTotal) error {
	const title = "Listening time by artist"
	switch r.Format {
	case FormatYAML:
		return r.yaml(totals)
	case FormatChart:
		bars := make([]chart.Bar, 0, len(totals))
		for _, t := range totals {
			bars = append(bars, chart.Bar{Label: t.Artist, Value: t.Hours})
		}
		return r.bars(title+" (hours)", bars)
	}
	rows := make([][]string, 0, len(totals))
	for i, t := range totals {
		rows = append(rows, []string{strconv.Itoa(i + 1), t.Artist, FormatNumber(t.Hours), strconv.Itoa(t.Plays)})
	}
	if err := r.heading(title); err != nil {
		return err
	}
	return r.table([]string{"#", "Artist", "Hours", "Plays"}, rows)
}

// Dashboard renders the overview cards, top lists and timeline.
func (r *Renderer) Dashboard(d stats.Dashboard) error {
	if r.Format == FormatYAML {
		return r.yaml(d)
	}
	if err := r.table([]string{"Songs", "Artists", "Genres", "Years"}, [][]string{{
		strconv.Itoa(d.Songs), strconv.Itoa(d.Artists), strconv.Itoa(d.Genres),
		fmt.Sprintf("%d-%d", d.FirstYear, d.LastYear),
	}}); err != nil {
		return err
	}
	if err := r.Ranked("Top artists by mean popularity", "Artist", "Popularity", d.TopArtists); err != nil {
		return err
	}
	if err := r.Ranked("Top genres by songs", "Genre", "Songs", d.TopGenres); err != nil {
		return err
	}
	if err := r.Ranked("Top tracks by mean popularity", "Song", "Popularity", d.TopTracks); err != nil {
		return err
	}
	return r.YearValues("Songs per year", "Songs", d.Timeline)
}
