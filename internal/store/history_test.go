package store

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/loganmitchell124/tunestat/internal/model"
)

func writeHistory(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "StreamingHistory0.json")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write history: %v", err)
	}
	return path
}

func TestLoadHistory(t *testing.T) {
	path := writeHistory(t, `[
  {"endTime": "2024-01-01 10:00", "artistName": "A", "trackName": "One", "msPlayed": 3600000},
  {"artistName": "B", "msPlayed": 0}
]`)
	entries, err := LoadHistory(path)
	if err != nil {
		t.Fatalf("load history: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if entries[0].ArtistName != "A" || entries[0].TrackName != "One" || entries[0].MsPlayed != 3600000 {
		t.Fatalf("unexpected entry: %+v", entries[0])
	}
	if entries[1].EndTime != "" || entries[1].MsPlayed != 0 {
		t.Fatalf("unexpected optional fields: %+v", entries[1])
	}
}

func TestLoadHistoryErrors(t *testing.T) {
	cases := map[string]string{
		"malformed":       `[{"artistName": "A", "msPlayed": 1}`,
		"missing artist":  `[{"msPlayed": 10}]`,
		"missing played":  `[{"artistName": "A"}]`,
		"negative played": `[{"artistName": "A", "msPlayed": -5}]`,
		"wrong type":      `[{"artistName": "A", "msPlayed": "long"}]`,
		"not an array":    `{"artistName": "A", "msPlayed": 1}`,
	}
	for name, content := range cases {
		_, err := LoadHistory(writeHistory(t, content))
		if !errors.Is(err, model.ErrParse) {
			t.Fatalf("%s: expected ErrParse, got %v", name, err)
		}
	}
}

func TestLoadHistoryErrorLine(t *testing.T) {
	path := writeHistory(t, "[\n  {\"artistName\": \"A\", \"msPlayed\": \"x\"}\n]")
	_, err := LoadHistory(path)
	var perr *model.ParseError
	if !errors.As(err, &perr) || perr.Line != 2 {
		t.Fatalf("expected parse error on line 2, got %v", err)
	}
}

func TestLoadHistoryMissingFile(t *testing.T) {
	_, err := LoadHistory(filepath.Join(t.TempDir(), "missing.json"))
	if !errors.Is(err, model.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
