// Package stats computes attribute correlations.
package stats

import (
	"fmt"

	"gonum.org/v1/gonum/stat"

	"github.com/loganmitchell124/tunestat/internal/model"
	"github.com/loganmitchell124/tunestat/internal/store"
)

// DefaultCorrelationAttributes is used when no attributes are configured.
var DefaultCorrelationAttributes = []string{
	model.AttrPopularity,
	model.AttrDanceability,
	model.AttrEnergy,
	model.AttrLoudness,
	model.AttrValence,
	model.AttrTempo,
}

// CorrelationMatrix computes Pearson coefficients between attrs. Rows missing any selected
// attribute are dropped first. The diagonal is exactly 1 and the matrix is symmetric; a pair
// involving a constant column is NaN.
func CorrelationMatrix(rs *store.RecordSet, attrs []string) (model.Result[model.Matrix], error) {
	if len(attrs) < 2 {
		return model.Result[model.Matrix]{}, model.Invalid("attributes", fmt.Sprint(attrs), "need at least two")
	}
	seen := make(map[string]bool, len(attrs))
	for _, a := range attrs {
		if !oneOf(a, Measures) {
			return model.Result[model.Matrix]{}, model.Invalid("attribute", a, choices(Measures))
		}
		if seen[a] {
			return model.Result[model.Matrix]{}, model.Invalid("attribute", a, "listed twice")
		}
		seen[a] = true
	}

	columns := make([][]float64, len(attrs))
	row := make([]float64, len(attrs))
	for i := 0; i < rs.Len(); i++ {
		song := rs.At(i)
		complete := true
		for j, a := range attrs {
			v, _ := song.Value(a)
			if model.Missing(v) {
				complete = false
				break
			}
			row[j] = v
		}
		if !complete {
			continue
		}
		for j := range attrs {
			columns[j] = append(columns[j], row[j])
		}
	}

	labels := make([]string, len(attrs))
	copy(labels, attrs)
	m := model.Matrix{Labels: labels, Values: make([][]float64, len(attrs)), Rows: len(columns[0])}
	for i := range m.Values {
		m.Values[i] = make([]float64, len(attrs))
	}
	if m.Rows < 2 {
		return model.Empty(m, fmt.Sprintf("need at least two complete rows, found %d", m.Rows)), nil
	}
	for i := range attrs {
		m.Values[i][i] = 1
		for j := i + 1; j < len(attrs); j++ {
			r := stat.Correlation(columns[i], columns[j], nil)
			m.Values[i][j] = r
			m.Values[j][i] = r
		}
	}
	return model.OK(m), nil
}
