// Package store maps dataset columns onto song fields.
package store

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/loganmitchell124/tunestat/internal/model"
)

const (
	colArtist   = "artist"
	colSong     = "song"
	colYear     = "year"
	colGenre    = "genre"
	colExplicit = "explicit"
	colKey      = "key"
	colMode     = "mode"
)

var (
	errMissingColumn = errors.New("missing required column")
	errMissingHeader = errors.New("missing header row")
	errBlankValue    = errors.New("value is blank")
)

// requiredColumns lists the columns every dataset must carry.
var requiredColumns = append([]string{
	colArtist, colSong, colYear, colGenre, model.AttrPopularity, colExplicit,
}, model.AudioAttributes...)

// columns maps lower-cased header names to their position.
type columns map[string]int

func indexHeader(header []string) columns {
	cols := make(columns, len(header))
	for i, h := range header {
		name := strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")))
		if _, dup := cols[name]; dup {
			continue
		}
		cols[name] = i
	}
	return cols
}

func (c columns) check(path string) error {
	for _, name := range requiredColumns {
		if _, ok := c[name]; !ok {
			return &model.ParseError{Path: path, Line: 1, Column: name, Err: errMissingColumn}
		}
	}
	return nil
}

// rowParser converts one record of cells into a Song.
type rowParser struct {
	path string
	cols columns
}

func (p rowParser) parse(line int, cells []string) (model.Song, error) {
	var song model.Song
	cell := func(name string) (string, bool) {
		i, ok := p.cols[name]
		if !ok || i >= len(cells) {
			return "", false
		}
		return strings.TrimSpace(cells[i]), true
	}
	fail := func(name string, err error) error {
		return &model.ParseError{Path: p.path, Line: line, Column: name, Err: err}
	}

	song.Artist, _ = cell(colArtist)
	song.Title, _ = cell(colSong)
	song.Genre, _ = cell(colGenre)

	raw, _ := cell(colYear)
	year, err := parseWhole(raw)
	if err != nil {
		return model.Song{}, fail(colYear, err)
	}
	if year < model.MinYear || year > model.MaxYear {
		return model.Song{}, fail(colYear, fmt.Errorf("year %d outside %d-%d", year, model.MinYear, model.MaxYear))
	}
	song.Year = int(year)

	raw, _ = cell(model.AttrPopularity)
	if song.Popularity, err = parseRequiredFloat(raw); err != nil {
		return model.Song{}, fail(model.AttrPopularity, err)
	}

	raw, _ = cell(colExplicit)
	if song.Explicit, err = strconv.ParseBool(raw); err != nil {
		return model.Song{}, fail(colExplicit, err)
	}

	audio := []*float64{
		&song.Danceability, &song.Energy, &song.Loudness, &song.Speechiness, &song.Acousticness,
		&song.Instrumentalness, &song.Liveness, &song.Valence, &song.Tempo,
	}
	for i, name := range model.AudioAttributes {
		raw, _ = cell(name)
		if *audio[i], err = parseAudio(raw); err != nil {
			return model.Song{}, fail(name, err)
		}
	}

	if raw, ok := cell(model.AttrDurationMs); ok && raw != "" {
		if song.DurationMs, err = parseWhole(raw); err != nil {
			return model.Song{}, fail(model.AttrDurationMs, err)
		}
	}
	if raw, ok := cell(colKey); ok && raw != "" {
		v, err := parseWhole(raw)
		if err != nil {
			return model.Song{}, fail(colKey, err)
		}
		song.Key = int(v)
	}
	if raw, ok := cell(colMode); ok && raw != "" {
		v, err := parseWhole(raw)
		if err != nil {
			return model.Song{}, fail(colMode, err)
		}
		song.Mode = int(v)
	}
	return song, nil
}

// parseAudio maps a blank cell to NaN.
func parseAudio(raw string) (float64, error) {
	if raw == "" {
		return math.NaN(), nil
	}
	return parseRequiredFloat(raw)
}

func parseRequiredFloat(raw string) (float64, error) {
	if raw == "" {
		return 0, errBlankValue
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("non-finite value %q", raw)
	}
	return v, nil
}

// parseWhole accepts integers and integral floats such as "2001.0".
func parseWhole(raw string) (int64, error) {
	if raw == "" {
		return 0, errBlankValue
	}
	if v, err := strconv.ParseInt(raw, 10, 64); err == nil {
		return v, nil
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, err
	}
	if f != math.Trunc(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("not a whole number: %q", raw)
	}
	return int64(f), nil
}
