// Package store reads personal streaming history exports.
package store

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/loganmitchell124/tunestat/internal/model"
)

type rawListen struct {
	ArtistName *string `json:"artistName"`
	TrackName  string  `json:"trackName"`
	EndTime    string  `json:"endTime"`
	MsPlayed   *int64  `json:"msPlayed"`
}

// LoadHistory reads a streaming history JSON array.
func LoadHistory(path string) ([]model.Listen, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to open history %s: %w", path, model.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to read history: %w", err)
	}
	var raw []rawListen
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, &model.ParseError{Path: path, Line: jsonErrorLine(data, err), Err: err}
	}
	out := make([]model.Listen, 0, len(raw))
	for i, r := range raw {
		entry := fmt.Sprintf("entry %d", i)
		if r.ArtistName == nil {
			return nil, &model.ParseError{Path: path, Column: "artistName", Err: fmt.Errorf("%s: missing key", entry)}
		}
		if r.MsPlayed == nil {
			return nil, &model.ParseError{Path: path, Column: "msPlayed", Err: fmt.Errorf("%s: missing key", entry)}
		}
		if *r.MsPlayed < 0 {
			return nil, &model.ParseError{Path: path, Column: "msPlayed", Err: fmt.Errorf("%s: negative value %d", entry, *r.MsPlayed)}
		}
		out = append(out, model.Listen{
			ArtistName: *r.ArtistName,
			TrackName:  r.TrackName,
			EndTime:    r.EndTime,
			MsPlayed:   *r.MsPlayed,
		})
	}
	return out, nil
}

func jsonErrorLine(data []byte, err error) int {
	var offset int64
	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError
	switch {
	case errors.As(err, &syntaxErr):
		offset = syntaxErr.Offset
	case errors.As(err, &typeErr):
		offset = typeErr.Offset
	default:
		return 0
	}
	if offset > int64(len(data)) {
		offset = int64(len(data))
	}
	return bytes.Count(data[:offset], []byte("\n")) + 1
}
