// Package chart renders horizontal bar charts.
package chart

import (
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/mattn/go-runewidth"
)

// Bar is one labelled value of a bar chart.
type Bar struct {
	Label string
	Value float64
}

const (
	maxBarLabelWidth = 28
	minBarWidth      = 10
)

var partialBlocks = []rune{' ', '▏', '▎', '▍', '▌', '▋', '▊', '▉'}

// Bars renders one row per bar, scaled to the largest value, within totalWidth columns.
func Bars(w io.Writer, title string, bars []Bar, totalWidth int, forceColor bool) error {
	if len(bars) == 0 {
		return nil
	}
	if totalWidth <= 0 {
		totalWidth = TerminalWidth()
	}
	labelWidth := 0
	valueWidth := 0
	maxVal := 0.0
	for _, b := range bars {
		labelWidth = maxInt(labelWidth, runewidth.StringWidth(b.Label))
		valueWidth = maxInt(valueWidth, len(FormatValue(b.Value)))
		if !math.IsNaN(b.Value) {
			maxVal = math.Max(maxVal, b.Value)
		}
	}
	labelWidth = minInt(labelWidth, maxBarLabelWidth)
	barWidth := totalWidth - labelWidth - valueWidth - 4
	if barWidth < minBarWidth {
		barWidth = minBarWidth
	}
	useColor := ShouldUseColor(w, forceColor)

	if title != "" {
		if _, err := fmt.Fprintln(w, title); err != nil {
			return err
		}
	}
	for i, b := range bars {
		label := runewidth.FillRight(runewidth.Truncate(b.Label, labelWidth, "…"), labelWidth)
		bar := BarString(b.Value, maxVal, barWidth)
		pad := strings.Repeat(" ", barWidth-runewidth.StringWidth(bar))
		if useColor && bar != "" {
			bar = paint(bar, i)
		}
		if _, err := fmt.Fprintf(w, "%s │ %s%s %*s\n", label, bar, pad, valueWidth, FormatValue(b.Value)); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintln(w, ""); err != nil {
		return err
	}
	return nil
}

// BarString draws value as a block bar of at most width cells, using eighth blocks for the remainder.
func BarString(value, maxVal float64, width int) string {
	if width <= 0 || maxVal <= 0 || math.IsNaN(value) || value <= 0 {
		return ""
	}
	ratio := math.Min(value/maxVal, 1)
	eighths := int(math.Round(ratio * float64(width*8)))
	full := eighths / 8
	var b strings.Builder
	b.WriteString(strings.Repeat("█", full))
	if rem := eighths % 8; rem > 0 {
		b.WriteRune(partialBlocks[rem])
	}
	return b.String()
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
