package chart

import (
	"bytes"
	"math"
	"strings"
	"testing"

	"github.com/mattn/go-runewidth"
)

func TestPlotSharedScale(t *testing.T) {
	var buf bytes.Buffer
	err := Plot(&buf, "Test Plot", []Series{
		{Name: "pop", Values: []float64{1, 2, 3, 2, 1}},
		{Name: "rock", Values: []float64{1, 1, 2, 3, 4}},
	}, PlotOptions{Width: 12, Height: 4})
	if err != nil {
		t.Fatalf("Plot failed: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "Test Plot") {
		t.Fatalf("expected title in output")
	}
	if !strings.Contains(out, "Legend:") || !strings.Contains(out, "rock (dashed)") {
		t.Fatalf("expected legend in output")
	}
	lines := strings.Split(strings.TrimSpace(out), "\n")
	expectedMin := 1 + 4 + 1
	if len(lines) < expectedMin {
		t.Fatalf("expected at least %d lines of output, got %d", expectedMin, len(lines))
	}
	if !strings.HasPrefix(strings.TrimSpace(lines[1]), "4") {
		t.Fatalf("expected shared max label on first row, got %q", lines[1])
	}
}

func TestPlotXAxisLabels(t *testing.T) {
	var buf bytes.Buffer
	err := Plot(&buf, "", []Series{{Name: "songs", Values: []float64{3, 5, 8}}}, PlotOptions{
		Width: 20, Height: 3, XStart: "1998", XEnd: "2020",
	})
	if err != nil {
		t.Fatalf("Plot failed: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "1998") || !strings.Contains(out, "2020") {
		t.Fatalf("expected x-axis labels, got %q", out)
	}
}

func TestPlotSkipsEmptySeries(t *testing.T) {
	var buf bytes.Buffer
	if err := Plot(&buf, "Nothing", []Series{{Name: "x"}}, PlotOptions{Width: 10, Height: 3}); err != nil {
		t.Fatalf("Plot failed: %v", err)
	}
	if buf.Len() != 0 {
		t.Fatalf("expected no output, got %q", buf.String())
	}
}

func TestPlotWidthFor(t *testing.T) {
	axisWidth := axisLabelWidth + runewidth.StringWidth(axisSeparator)
	total := 80
	if got := PlotWidthFor(total); got != total-axisWidth {
		t.Fatalf("expected width %d, got %d", total-axisWidth, got)
	}
	if got := PlotWidthFor(0); got != minPlotWidth {
		t.Fatalf("expected min width %d, got %d", minPlotWidth, got)
	}
}

func TestResampleSeriesKeepsGaps(t *testing.T) {
	out := resampleSeries([]float64{1, math.NaN(), math.NaN(), math.NaN()}, 2)
	if out[0] != 1 || !math.IsNaN(out[1]) {
		t.Fatalf("unexpected resample: %v", out)
	}
}

func TestFormatValue(t *testing.T) {
	cases := map[float64]string{
		42:      "42",
		0.456:   "0.46",
		15000:   "15.0k",
		2500000: "2.5M",
		-0.5:    "-0.50",
	}
	for v, want := range cases {
		if got := FormatValue(v); got != want {
			t.Fatalf("FormatValue(%v) = %q, want %q", v, got, want)
		}
	}
	if got := FormatValue(math.NaN()); got != "n/a" {
		t.Fatalf("expected n/a, got %q", got)
	}
}
