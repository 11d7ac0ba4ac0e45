// Package chart renders correlation heat maps.
package chart

import (
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/mattn/go-runewidth"
)

var heatShades = []rune{'·', '░', '▒', '▓', '█'}

const (
	heatCellWidth = 7
	heatPositive  = "\x1b[31m"
	heatNegative  = "\x1b[34m"
)

// HeatCell renders a correlation in [-1, 1] as a shade block followed by its value.
func HeatCell(v float64) string {
	if math.IsNaN(v) {
		return "  n/a"
	}
	return fmt.Sprintf("%c%+.2f", HeatShade(v), v)
}

// HeatShade picks a block whose density grows with |v|.
func HeatShade(v float64) rune {
	if math.IsNaN(v) {
		return ' '
	}
	idx := int(math.Round(math.Min(math.Abs(v), 1) * float64(len(heatShades)-1)))
	return heatShades[idx]
}

// Heatmap renders a labelled square matrix of correlations. Positive values are red, negative blue.
func Heatmap(w io.Writer, title string, labels []string, values [][]float64, forceColor bool) error {
	if len(labels) == 0 {
		return nil
	}
	useColor := ShouldUseColor(w, forceColor)
	labelWidth := 0
	for _, l := range labels {
		labelWidth = maxInt(labelWidth, runewidth.StringWidth(l))
	}
	if title != "" {
		if _, err := fmt.Fprintln(w, title); err != nil {
			return err
		}
	}
	var header strings.Builder
	header.WriteString(strings.Repeat(" ", labelWidth))
	for _, l := range labels {
		header.WriteString(" ")
		header.WriteString(runewidth.FillLeft(runewidth.Truncate(l, heatCellWidth, ""), heatCellWidth))
	}
	if _, err := fmt.Fprintln(w, header.String()); err != nil {
		return err
	}
	for i, l := range labels {
		var row strings.Builder
		row.WriteString(runewidth.FillRight(l, labelWidth))
		for j := range labels {
			v := math.NaN()
			if i < len(values) && j < len(values[i]) {
				v = values[i][j]
			}
			cell := runewidth.FillLeft(HeatCell(v), heatCellWidth)
			row.WriteString(" ")
			if useColor && !math.IsNaN(v) {
				code := heatPositive
				if v < 0 {
					code = heatNegative
				}
				cell = code + cell + colorReset
			}
			row.WriteString(cell)
		}
		if _, err := fmt.Fprintln(w, row.String()); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintln(w, ""); err != nil {
		return err
	}
	return nil
}
