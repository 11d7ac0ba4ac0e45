// Package stats builds the overview dashboard.
package stats

import (
	"github.com/loganmitchell124/tunestat/internal/model"
	"github.com/loganmitchell124/tunestat/internal/store"
)

// Dashboard contains precomputed data for the overview screen.
type Dashboard struct {
	Songs      int               `yaml:"songs"`
	Artists    int               `yaml:"artists"`
	Genres     int               `yaml:"genres"`
	FirstYear  int               `yaml:"first_year"`
	LastYear   int               `yaml:"last_year"`
	TopArtists []model.Ranked    `yaml:"top_artists"`
	TopGenres  []model.Ranked    `yaml:"top_genres"`
	TopTracks  []model.Ranked    `yaml:"top_tracks"`
	Timeline   []model.YearValue `yaml:"timeline"`
}

// BuildDashboard computes the overview cards and top-n rankings.
func BuildDashboard(rs *store.RecordSet, top int) (model.Result[Dashboard], error) {
	gs := store.NormalizeGenres(rs)
	d := Dashboard{
		Songs:   rs.Len(),
		Artists: len(rs.Artists()),
		Genres:  len(gs.Genres()),
	}
	if rs.Len() == 0 {
		return model.Empty(d, "dataset has no songs"), nil
	}
	d.FirstYear, d.LastYear, _ = rs.YearRange()

	artists, err := TopArtists(rs, top)
	if err != nil {
		return model.Result[Dashboard]{}, err
	}
	d.TopArtists = artists.Value

	genres, err := TopGenres(rs, top)
	if err != nil {
		return model.Result[Dashboard]{}, err
	}
	d.TopGenres = genres.Value

	tracks, err := TopTracks(rs, top)
	if err != nil {
		return model.Result[Dashboard]{}, err
	}
	d.TopTracks = tracks.Value

	timeline, err := YearCounts(rs)
	if err != nil {
		return model.Result[Dashboard]{}, err
	}
	d.Timeline = timeline.Value
	return model.OK(d), nil
}
