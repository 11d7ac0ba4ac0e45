package stats

import (
	"errors"
	"strings"
	"testing"

	"github.com/loganmitchell124/tunestat/internal/model"
	"github.com/loganmitchell124/tunestat/internal/store"
)

func TestArtistProfile(t *testing.T) {
	res, err := ArtistProfile(sampleSet(), "eminem")
	if err != nil {
		t.Fatalf("ArtistProfile: %v", err)
	}
	p := res.Value
	if res.Empty() || p.Artist != "Eminem" || p.SongCount != 2 || len(p.Songs) != 2 {
		t.Fatalf("unexpected profile: %+v", p)
	}
	if p.AvgPopularity != 83 {
		t.Fatalf("expected avg popularity 83, got %v", p.AvgPopularity)
	}
	if p.AvgTempo != 80 {
		t.Fatalf("expected missing tempo to be skipped, got %v", p.AvgTempo)
	}
	if p.AvgDanceability < 0.735-1e-9 || p.AvgDanceability > 0.735+1e-9 {
		t.Fatalf("unexpected danceability %v", p.AvgDanceability)
	}
	if p.ModalGenre != "hip hop" {
		t.Fatalf("expected hip hop, got %q", p.ModalGenre)
	}
}

func TestArtistProfileModalGenreTie(t *testing.T) {
	rs := store.NewRecordSet([]model.Song{
		song("Z", "a", 2000, "rock, pop", 50),
		song("Z", "b", 2001, "pop, rock", 50),
	})
	res, err := ArtistProfile(rs, "Z")
	if err != nil {
		t.Fatalf("ArtistProfile: %v", err)
	}
	// pop reaches two first, on the second song's first label.
	if res.Value.ModalGenre != "pop" {
		t.Fatalf("expected pop, got %q", res.Value.ModalGenre)
	}
}

func TestArtistProfileNotFoundSuggests(t *testing.T) {
	res, err := ArtistProfile(sampleSet(), "Rihana")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !res.Empty() {
		t.Fatalf("expected empty result")
	}
	if !strings.Contains(res.Reason, "Rihanna") {
		t.Fatalf("expected suggestion in reason, got %q", res.Reason)
	}
	if _, err := ArtistProfile(sampleSet(), "  "); !errors.Is(err, model.ErrValidation) {
		t.Fatalf("expected ErrValidation for blank name, got %v", err)
	}
}

func TestSuggestArtists(t *testing.T) {
	got := SuggestArtists(sampleSet(), "britney", 2)
	if len(got) == 0 || got[0] != "Britney Spears" {
		t.Fatalf("unexpected suggestions %v", got)
	}
	if got := SuggestArtists(sampleSet(), "zzzzzz", 3); len(got) != 0 {
		t.Fatalf("expected no suggestions, got %v", got)
	}
}
