// Package store loads source files into read-only in-memory record sets.
package store

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/loganmitchell124/tunestat/internal/model"
)

// RecordSet is the immutable set of songs loaded for one session.
type RecordSet struct {
	path  string
	songs []model.Song
}

// NewRecordSet wraps songs in a RecordSet. The slice is copied.
func NewRecordSet(songs []model.Song) *RecordSet {
	out := make([]model.Song, len(songs))
	copy(out, songs)
	return &RecordSet{songs: out}
}

// Path returns the file the set was loaded from, if any.
func (rs *RecordSet) Path() string {
	if rs == nil {
		return ""
	}
	return rs.path
}

// Len returns the number of songs.
func (rs *RecordSet) Len() int {
	if rs == nil {
		return 0
	}
	return len(rs.songs)
}

// At returns the i-th song in file order.
func (rs *RecordSet) At(i int) model.Song {
	return rs.songs[i]
}

// Filter returns the songs matching pred, in file order.
func (rs *RecordSet) Filter(pred func(model.Song) bool) *RecordSet {
	out := &RecordSet{path: rs.Path()}
	for i := 0; i < rs.Len(); i++ {
		if pred(rs.songs[i]) {
			out.songs = append(out.songs, rs.songs[i])
		}
	}
	return out
}

// Artists returns the distinct artist names in first-seen order.
func (rs *RecordSet) Artists() []string {
	seen := make(map[string]bool)
	var out []string
	for i := 0; i < rs.Len(); i++ {
		name := rs.songs[i].Artist
		if seen[name] {
			continue
		}
		seen[name] = true
		out = append(out, name)
	}
	return out
}

// YearRange returns the smallest and largest year. ok is false for an empty set.
func (rs *RecordSet) YearRange() (from, to int, ok bool) {
	for i := 0; i < rs.Len(); i++ {
		y := rs.songs[i].Year
		if !ok {
			from, to, ok = y, y, true
			continue
		}
		if y < from {
			from = y
		}
		if y > to {
			to = y
		}
	}
	return from, to, ok
}

// LoadFile loads a dataset, choosing the reader from the file extension.
func LoadFile(ctx context.Context, path string) (*RecordSet, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".db", ".sqlite", ".sqlite3":
		return LoadSQLite(ctx, path)
	default:
		return Load(path)
	}
}
