// Package store reads datasets stored in SQLite files.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"
	"os"

	"github.com/loganmitchell124/tunestat/internal/model"

	_ "modernc.org/sqlite" // SQLite driver.
)

// songsQuery reads the dataset table in insertion order.
const songsQuery = `SELECT * FROM songs ORDER BY rowid`

// LoadSQLite reads the songs table of an existing SQLite file. The file is opened read-only.
func LoadSQLite(ctx context.Context, path string) (*RecordSet, error) {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to open dataset %s: %w", path, model.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to stat dataset: %w", err)
	}
	db, err := sql.Open("sqlite", readOnlyDSN(path))
	if err != nil {
		return nil, fmt.Errorf("failed to open dataset: %w", err)
	}
	defer func() {
		if cerr := db.Close(); cerr != nil {
			// Best-effort close after reading.
			_ = cerr
		}
	}()

	rows, err := db.QueryContext(ctx, songsQuery)
	if err != nil {
		return nil, &model.ParseError{Path: path, Err: fmt.Errorf("failed to query songs table: %w", err)}
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	header, err := rows.Columns()
	if err != nil {
		return nil, &model.ParseError{Path: path, Err: err}
	}
	cols := indexHeader(header)
	if err := cols.check(path); err != nil {
		return nil, err
	}
	parser := rowParser{path: path, cols: cols}

	values := make([]sql.NullString, len(header))
	dest := make([]any, len(header))
	for i := range values {
		dest[i] = &values[i]
	}
	cells := make([]string, len(header))

	rs := &RecordSet{path: path}
	line := 0
	for rows.Next() {
		line++
		if err := rows.Scan(dest...); err != nil {
			return nil, &model.ParseError{Path: path, Line: line, Err: err}
		}
		for i, v := range values {
			cells[i] = ""
			if v.Valid {
				cells[i] = v.String
			}
		}
		song, err := parser.parse(line, cells)
		if err != nil {
			return nil, err
		}
		rs.songs = append(rs.songs, song)
	}
	if err := rows.Err(); err != nil {
		return nil, &model.ParseError{Path: path, Line: line, Err: err}
	}
	return rs, nil
}

func readOnlyDSN(path string) string {
	u := url.URL{Scheme: "file", Path: path, RawQuery: "mode=ro"}
	return u.String()
}
