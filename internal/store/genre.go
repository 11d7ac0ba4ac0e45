// Package store normalizes the multi-valued genre field.
package store

import (
	"strings"

	"github.com/loganmitchell124/tunestat/internal/model"
)

// UnknownGenre labels songs whose genre field has no usable label.
const UnknownGenre = "unknown"

// emptySetLiteral is how some exports spell an empty genre list.
const emptySetLiteral = "set()"

var genreArtifacts = strings.NewReplacer("[", "", "]", "", "'", "", `"`, "")

// SplitGenres parses a raw genre field such as "['pop', 'rock']" or "pop, Dance/Electronic".
// Labels are trimmed, blanks dropped and repeats removed in first-seen order.
func SplitGenres(raw string) []string {
	cleaned := strings.TrimSpace(genreArtifacts.Replace(raw))
	if cleaned == "" || cleaned == emptySetLiteral {
		return []string{UnknownGenre}
	}
	seen := make(map[string]bool)
	var out []string
	for _, part := range strings.Split(cleaned, ", ") {
		label := strings.TrimSpace(part)
		if label == "" || seen[label] {
			continue
		}
		seen[label] = true
		out = append(out, label)
	}
	if len(out) == 0 {
		return []string{UnknownGenre}
	}
	return out
}

// GenreSet is a RecordSet exploded to one row per genre label.
// Rows sharing a source song are not independent observations.
type GenreSet struct {
	source *RecordSet
	rows   []model.GenreRow
}

// NormalizeGenres explodes every song into one row per genre label.
func NormalizeGenres(rs *RecordSet) *GenreSet {
	gs := &GenreSet{source: rs}
	for i := 0; i < rs.Len(); i++ {
		song := rs.At(i)
		for _, label := range SplitGenres(song.Genre) {
			gs.rows = append(gs.rows, model.GenreRow{Genre: label, Source: i, Song: song})
		}
	}
	return gs
}

// Len returns the number of exploded rows.
func (gs *GenreSet) Len() int {
	if gs == nil {
		return 0
	}
	return len(gs.rows)
}

// Row returns the i-th exploded row.
func (gs *GenreSet) Row(i int) model.GenreRow {
	return gs.rows[i]
}

// Source returns the record set the rows were exploded from.
func (gs *GenreSet) Source() *RecordSet {
	if gs == nil {
		return nil
	}
	return gs.source
}

// Filter returns the rows matching pred. Source indexes keep pointing at the original set.
func (gs *GenreSet) Filter(pred func(model.GenreRow) bool) *GenreSet {
	out := &GenreSet{source: gs.Source()}
	for i := 0; i < gs.Len(); i++ {
		if pred(gs.rows[i]) {
			out.rows = append(out.rows, gs.rows[i])
		}
	}
	return out
}

// Genres returns the distinct labels in first-seen order.
func (gs *GenreSet) Genres() []string {
	seen := make(map[string]bool)
	var out []string
	for i := 0; i < gs.Len(); i++ {
		label := gs.rows[i].Genre
		if seen[label] {
			continue
		}
		seen[label] = true
		out = append(out, label)
	}
	return out
}
