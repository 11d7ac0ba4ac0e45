package stats

import (
	"errors"
	"testing"

	"github.com/loganmitchell124/tunestat/internal/model"
)

func TestParsePeriod(t *testing.T) {
	cases := map[string]model.Period{
		"2015":   {Start: 2015},
		"2010s":  {Start: 2010, Decade: true},
		" 1990s": {Start: 1990, Decade: true},
		"90s":    {Start: 90, Decade: true},
	}
	for text, want := range cases {
		got, err := ParsePeriod(text)
		if err != nil {
			t.Fatalf("ParsePeriod(%q): %v", text, err)
		}
		if got != want {
			t.Fatalf("ParsePeriod(%q) = %+v, want %+v", text, got, want)
		}
	}
	for _, bad := range []string{"abc", "", "s", "20x5", "-2000", "2000ss"} {
		if _, err := ParsePeriod(bad); !errors.Is(err, model.ErrValidation) {
			t.Fatalf("ParsePeriod(%q): expected ErrValidation, got %v", bad, err)
		}
	}
}

func TestFilterByPeriod(t *testing.T) {
	rs := sampleSet()
	year, err := FilterByPeriod(rs, "2002")
	if err != nil {
		t.Fatalf("FilterByPeriod: %v", err)
	}
	if year.Value.Len() != 2 {
		t.Fatalf("expected 2 songs in 2002, got %d", year.Value.Len())
	}
	decade, err := FilterByPeriod(rs, "2000s")
	if err != nil {
		t.Fatalf("FilterByPeriod: %v", err)
	}
	if decade.Value.Len() != 5 {
		t.Fatalf("expected 5 songs in the 2000s, got %d", decade.Value.Len())
	}
	for i := 0; i < decade.Value.Len(); i++ {
		if y := decade.Value.At(i).Year; y < 2000 || y >= 2010 {
			t.Fatalf("year %d outside decade", y)
		}
	}
	none, err := FilterByPeriod(rs, "1980s")
	if err != nil || !none.Empty() {
		t.Fatalf("expected empty result, got %+v %v", none, err)
	}
	if _, err := FilterByPeriod(rs, "abc"); !errors.Is(err, model.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}
