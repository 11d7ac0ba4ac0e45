package stats

import (
	"testing"

	"github.com/loganmitchell124/tunestat/internal/model"
	"github.com/loganmitchell124/tunestat/internal/store"
)

func TestAggregateListeningTime(t *testing.T) {
	entries := []model.Listen{
		{ArtistName: "A", MsPlayed: 3_600_000},
		{ArtistName: "B", MsPlayed: 1_800_000},
		{ArtistName: "A", MsPlayed: 3_600_000},
	}
	res, err := AggregateListeningTime(entries, 0)
	if err != nil {
		t.Fatalf("AggregateListeningTime: %v", err)
	}
	if len(res.Value) != 2 {
		t.Fatalf("expected 2 artists, got %d", len(res.Value))
	}
	if res.Value[0].Artist != "A" || res.Value[0].Hours != 2.0 || res.Value[0].Plays != 2 {
		t.Fatalf("unexpected first total: %+v", res.Value[0])
	}
	if res.Value[1].Artist != "B" || res.Value[1].Hours != 0.5 {
		t.Fatalf("unexpected second total: %+v", res.Value[1])
	}
}

func TestAggregateListeningTimeTiesAndLimit(t *testing.T) {
	entries := []model.Listen{
		{ArtistName: "C", MsPlayed: 1000},
		{ArtistName: "D", MsPlayed: 1000},
		{ArtistName: "E", MsPlayed: 500},
	}
	res, _ := AggregateListeningTime(entries, 2)
	if len(res.Value) != 2 || res.Value[0].Artist != "C" || res.Value[1].Artist != "D" {
		t.Fatalf("unexpected totals: %+v", res.Value)
	}
	empty, err := AggregateListeningTime(nil, 5)
	if err != nil || !empty.Empty() {
		t.Fatalf("expected empty result, got %+v %v", empty, err)
	}
}

func TestBuildDashboard(t *testing.T) {
	res, err := BuildDashboard(sampleSet(), 2)
	if err != nil {
		t.Fatalf("BuildDashboard: %v", err)
	}
	d := res.Value
	if d.Songs != 6 || d.Artists != 4 || d.Genres != 4 {
		t.Fatalf("unexpected cards: %+v", d)
	}
	if d.FirstYear != 2000 || d.LastYear != 2012 {
		t.Fatalf("unexpected year span %d-%d", d.FirstYear, d.LastYear)
	}
	if len(d.TopArtists) != 2 || len(d.TopGenres) != 2 || len(d.TopTracks) != 2 {
		t.Fatalf("expected top lists of 2")
	}
	if len(d.Timeline) != 13 {
		t.Fatalf("expected 13 timeline points, got %d", len(d.Timeline))
	}
	empty, err := BuildDashboard(store.NewRecordSet(nil), 5)
	if err != nil || !empty.Empty() {
		t.Fatalf("expected empty dashboard, got %+v %v", empty, err)
	}
}
