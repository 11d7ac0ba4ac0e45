package chart

import (
	"bytes"
	"math"
	"strings"
	"testing"
)

func TestBarString(t *testing.T) {
	if got := BarString(10, 10, 4); got != "████" {
		t.Fatalf("expected full bar, got %q", got)
	}
	if got := BarString(5, 10, 4); got != "██" {
		t.Fatalf("expected half bar, got %q", got)
	}
	if got := BarString(1, 2, 1); got != "▌" {
		t.Fatalf("expected half block, got %q", got)
	}
	if got := BarString(0, 10, 4); got != "" {
		t.Fatalf("expected empty bar, got %q", got)
	}
}

func TestBarsRendersRows(t *testing.T) {
	t.Setenv("NO_COLOR", "1")
	var buf bytes.Buffer
	err := Bars(&buf, "Top Artists", []Bar{
		{Label: "Rihanna", Value: 80},
		{Label: "Eminem", Value: 40},
	}, 40, true)
	if err != nil {
		t.Fatalf("Bars failed: %v", err)
	}
	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d: %q", len(lines), buf.String())
	}
	if lines[0] != "Top Artists" {
		t.Fatalf("unexpected title %q", lines[0])
	}
	if !strings.HasPrefix(lines[1], "Rihanna │ █") || !strings.HasSuffix(lines[1], "80") {
		t.Fatalf("unexpected first row %q", lines[1])
	}
	if strings.Count(lines[1], "█") <= strings.Count(lines[2], "█") {
		t.Fatalf("expected longer bar for larger value")
	}
	if strings.Contains(buf.String(), "\x1b[") {
		t.Fatalf("NO_COLOR should disable colour")
	}
}

func TestSparklineAndMovingAverage(t *testing.T) {
	if got := Sparkline([]float64{0, 9}); got != " @" {
		t.Fatalf("unexpected sparkline %q", got)
	}
	if got := Sparkline([]float64{2, math.NaN(), 2}); got != "+ +" {
		t.Fatalf("unexpected flat sparkline %q", got)
	}
	avg := MovingAverage([]float64{2, 4, math.NaN(), 8}, 2)
	if avg[0] != 2 || avg[1] != 3 || avg[2] != 4 || avg[3] != 8 {
		t.Fatalf("unexpected moving average %v", avg)
	}
}

func TestHeatCell(t *testing.T) {
	if got := HeatCell(1); got != "█+1.00" {
		t.Fatalf("unexpected cell %q", got)
	}
	if got := HeatCell(-0.1); got != "·-0.10" {
		t.Fatalf("unexpected cell %q", got)
	}
	if got := HeatCell(math.NaN()); got != "  n/a" {
		t.Fatalf("unexpected cell %q", got)
	}
	var buf bytes.Buffer
	err := Heatmap(&buf, "", []string{"energy", "valence"}, [][]float64{{1, 0.5}, {0.5, 1}}, false)
	if err != nil {
		t.Fatalf("Heatmap failed: %v", err)
	}
	if !strings.Contains(buf.String(), "▒+0.50") {
		t.Fatalf("expected shaded cell, got %q", buf.String())
	}
}
