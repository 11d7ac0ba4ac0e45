package report

import (
	"bytes"
	"errors"
	"math"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"

	"github.com/loganmitchell124/tunestat/internal/model"
	"github.com/loganmitchell124/tunestat/internal/stats"
)

func TestParseFormat(t *testing.T) {
	for _, name := range []string{"table", "CHART", " yaml "} {
		if _, err := ParseFormat(name); err != nil {
			t.Fatalf("ParseFormat(%q): %v", name, err)
		}
	}
	if _, err := ParseFormat("json"); !errors.Is(err, model.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}

func TestRankedTable(t *testing.T) {
	var buf bytes.Buffer
	err := New(&buf, FormatTable).Ranked("Top artists", "Artist", "Popularity", []model.Ranked{
		{Key: "Eminem", Value: 83, Count: 2},
		{Key: "Rihanna", Value: 70.5, Count: 2},
	})
	if err != nil {
		t.Fatalf("Ranked: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"Top artists", "Eminem", "83.00", "Rihanna", "70.50"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in output:\n%s", want, out)
		}
	}
	if strings.Index(out, "Eminem") > strings.Index(out, "Rihanna") {
		t.Fatalf("expected ranking order to be kept")
	}
}

func TestRankedChart(t *testing.T) {
	t.Setenv("NO_COLOR", "1")
	var buf bytes.Buffer
	r := &Renderer{Out: &buf, Format: FormatChart, Width: 60}
	if err := r.Ranked("Top genres", "Genre", "Songs", []model.Ranked{{Key: "pop", Value: 4, Count: 4}}); err != nil {
		t.Fatalf("Ranked: %v", err)
	}
	if !strings.Contains(buf.String(), "pop │ █") {
		t.Fatalf("expected bar output, got %q", buf.String())
	}
}

func TestYAMLRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	shares := []model.Share{{Key: "pop", Count: 3, Percent: 75}, {Key: "rock", Count: 1, Percent: 25}}
	if err := New(&buf, FormatYAML).Shares("", "Genre", shares); err != nil {
		t.Fatalf("Shares: %v", err)
	}
	var decoded []model.Share
	if err := yaml.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(decoded) != 2 || decoded[0].Key != "pop" || decoded[1].Percent != 25 {
		t.Fatalf("unexpected decoded shares: %+v", decoded)
	}
}

func TestMatrixRendersMissingAsNA(t *testing.T) {
	var buf bytes.Buffer
	m := model.Matrix{
		Labels: []string{"energy", "tempo"},
		Values: [][]float64{{1, math.NaN()}, {math.NaN(), 1}},
		Rows:   4,
	}
	if err := New(&buf, FormatTable).Matrix("Correlation", m); err != nil {
		t.Fatalf("Matrix: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "n/a") || !strings.Contains(out, "1.00") || !strings.Contains(out, "(4 rows)") {
		t.Fatalf("unexpected matrix output:\n%s", out)
	}
}

func TestSeriesTable(t *testing.T) {
	var buf bytes.Buffer
	series := []model.Series{
		{Name: "pop", Points: []model.YearValue{{Year: 2000, Value: 77}, {Year: 2001, Value: 0}}},
		{Name: "rock", Points: []model.YearValue{{Year: 2000, Value: 10}, {Year: 2001, Value: 20}}},
	}
	if err := New(&buf, FormatTable).Series("Genre popularity", series); err != nil {
		t.Fatalf("Series: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"2000", "2001", "77.00", "20.00"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in output:\n%s", want, out)
		}
	}
}

func TestSmooth(t *testing.T) {
	series := []model.Series{{Name: "pop", Points: []model.YearValue{
		{Year: 2000, Value: 2}, {Year: 2001, Value: 4}, {Year: 2002, Value: 6},
	}}}
	if got := Smooth(series, 1); got[0].Points[1].Value != 4 {
		t.Fatalf("expected window 1 to keep values, got %+v", got)
	}
	got := Smooth(series, 2)
	want := []float64{2, 3, 5}
	for i, p := range got[0].Points {
		if p.Value != want[i] || p.Year != 2000+i {
			t.Fatalf("point %d: expected %v, got %+v", i, want[i], p)
		}
	}
	if series[0].Points[1].Value != 4 {
		t.Fatalf("input series was modified")
	}
}

func TestBreakdownTable(t *testing.T) {
	var buf bytes.Buffer
	b := model.Breakdown{
		Artist:           "Rihanna",
		Genre:            "pop",
		Period:           "2000s",
		GenreGivenArtist: model.Probability{Matching: 2, Total: 4, Value: 0.5},
	}
	if err := New(&buf, FormatTable).Breakdown(b); err != nil {
		t.Fatalf("Breakdown: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "P(genre=pop | artist=Rihanna)") || !strings.Contains(out, "50.00%") {
		t.Fatalf("unexpected breakdown output:\n%s", out)
	}
}

func TestDashboardYAML(t *testing.T) {
	var buf bytes.Buffer
	d := stats.Dashboard{Songs: 2, Artists: 1, TopArtists: []model.Ranked{{Key: "X", Value: 80, Count: 2}}}
	if err := New(&buf, FormatYAML).Dashboard(d); err != nil {
		t.Fatalf("Dashboard: %v", err)
	}
	if !strings.Contains(buf.String(), "songs: 2") || !strings.Contains(buf.String(), "key: X") {
		t.Fatalf("unexpected yaml:\n%s", buf.String())
	}
}

func TestNotice(t *testing.T) {
	var buf bytes.Buffer
	if err := New(&buf, FormatYAML).Notice("no songs in 1980s"); err != nil {
		t.Fatalf("Notice: %v", err)
	}
	if !strings.Contains(buf.String(), "status: empty") {
		t.Fatalf("unexpected notice:\n%s", buf.String())
	}
}
