// Package store reads CSV datasets.
package store

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/loganmitchell124/tunestat/internal/model"
)

// Load reads a CSV dataset with a header row. Any malformed row rejects the file.
func Load(path string) (*RecordSet, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to open dataset %s: %w", path, model.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to open dataset: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil {
			// Best-effort close after reading.
			_ = cerr
		}
	}()
	return readCSV(path, f)
}

func readCSV(path string, r io.Reader) (*RecordSet, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, &model.ParseError{Path: path, Line: 1, Err: errMissingHeader}
		}
		return nil, csvError(path, err)
	}
	cols := indexHeader(header)
	if err := cols.check(path); err != nil {
		return nil, err
	}
	parser := rowParser{path: path, cols: cols}

	rs := &RecordSet{path: path}
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, csvError(path, err)
		}
		line, _ := reader.FieldPos(0)
		if len(record) != len(header) {
			return nil, &model.ParseError{
				Path: path,
				Line: line,
				Err:  fmt.Errorf("expected %d fields, got %d", len(header), len(record)),
			}
		}
		song, err := parser.parse(line, record)
		if err != nil {
			return nil, err
		}
		rs.songs = append(rs.songs, song)
	}
	return rs, nil
}

func csvError(path string, err error) error {
	var perr *csv.ParseError
	if errors.As(err, &perr) {
		return &model.ParseError{Path: path, Line: perr.Line, Err: perr.Err}
	}
	return &model.ParseError{Path: path, Err: err}
}
