// Package model defines shared data structures.
package model

import (
	"fmt"
	"math"
)

// Song is one row of the source dataset.
type Song struct {
	Artist     string  `yaml:"artist"`
	Title      string  `yaml:"song"`
	Year       int     `yaml:"year"`
	Genre      string  `yaml:"genre"`
	Popularity float64 `yaml:"popularity"`
	Explicit   bool    `yaml:"explicit"`
	DurationMs int64   `yaml:"duration_ms,omitempty"`
	Key        int     `yaml:"key,omitempty"`
	Mode       int     `yaml:"mode,omitempty"`

	Danceability     float64 `yaml:"danceability"`
	Energy           float64 `yaml:"energy"`
	Loudness         float64 `yaml:"loudness"`
	Speechiness      float64 `yaml:"speechiness"`
	Acousticness     float64 `yaml:"acousticness"`
	Instrumentalness float64 `yaml:"instrumentalness"`
	Liveness         float64 `yaml:"liveness"`
	Valence          float64 `yaml:"valence"`
	Tempo            float64 `yaml:"tempo"`
}

// Attribute names recognised as numeric measures.
const (
	AttrPopularity       = "popularity"
	AttrDanceability     = "danceability"
	AttrEnergy           = "energy"
	AttrLoudness         = "loudness"
	AttrSpeechiness      = "speechiness"
	AttrAcousticness     = "acousticness"
	AttrInstrumentalness = "instrumentalness"
	AttrLiveness         = "liveness"
	AttrValence          = "valence"
	AttrTempo            = "tempo"
	AttrDurationMs       = "duration_ms"
	AttrYear             = "year"
)

// Years outside [MinYear, MaxYear] are rejected at load and query time.
const (
	MinYear = 0
	MaxYear = 9999
)

// ValidYear reports whether y lies in [MinYear, MaxYear].
func ValidYear(y int) bool {
	return y >= MinYear && y <= MaxYear
}

// AudioAttributes lists the continuous audio columns in dataset order.
var AudioAttributes = []string{
	AttrDanceability,
	AttrEnergy,
	AttrLoudness,
	AttrSpeechiness,
	AttrAcousticness,
	AttrInstrumentalness,
	AttrLiveness,
	AttrValence,
	AttrTempo,
}

// Value returns a numeric attribute by name. Missing audio values are NaN.
func (s Song) Value(attr string) (float64, bool) {
	switch attr {
	case AttrPopularity:
		return s.Popularity, true
	case AttrDanceability:
		return s.Danceability, true
	case AttrEnergy:
		return s.Energy, true
	case AttrLoudness:
		return s.Loudness, true
	case AttrSpeechiness:
		return s.Speechiness, true
	case AttrAcousticness:
		return s.Acousticness, true
	case AttrInstrumentalness:
		return s.Instrumentalness, true
	case AttrLiveness:
		return s.Liveness, true
	case AttrValence:
		return s.Valence, true
	case AttrTempo:
		return s.Tempo, true
	case AttrDurationMs:
		return float64(s.DurationMs), true
	case AttrYear:
		return float64(s.Year), true
	default:
		return 0, false
	}
}

// Missing reports whether v stands for a blank cell.
func Missing(v float64) bool {
	return math.IsNaN(v)
}

// GenreRow is one genre label of an exploded song. Song is a copy of the source row.
type GenreRow struct {
	Genre  string
	Source int
	Song   Song
}

// Listen is one entry of a personal streaming history export.
type Listen struct {
	ArtistName string
	TrackName  string
	EndTime    string
	MsPlayed   int64
}

// Period is a single year or a decade filter.
type Period struct {
	Start  int
	Decade bool
}

// Contains reports whether year falls inside the period.
func (p Period) Contains(year int) bool {
	if p.Decade {
		return year >= p.Start && year < p.Start+10
	}
	return year == p.Start
}

// End returns the exclusive upper bound of the period.
func (p Period) End() int {
	if p.Decade {
		return p.Start + 10
	}
	return p.Start + 1
}

func (p Period) String() string {
	if p.Decade {
		return fmt.Sprintf("%ds", p.Start)
	}
	return fmt.Sprintf("%d", p.Start)
}

// Ranked is one entry of a top-N ranking.
type Ranked struct {
	Key   string  `yaml:"key"`
	Value float64 `yaml:"value"`
	Count int     `yaml:"count"`
}

// YearPick names the winning label for a year.
type YearPick struct {
	Year       int     `yaml:"year"`
	Label      string  `yaml:"label"`
	Popularity float64 `yaml:"popularity"`
}

// YearValue is one point of a per-year series.
type YearValue struct {
	Year  int     `yaml:"year"`
	Value float64 `yaml:"value"`
}

// Series is a named per-year sequence.
type Series struct {
	Name   string      `yaml:"name"`
	Points []YearValue `yaml:"points"`
}

// Total sums the series values.
func (s Series) Total() float64 {
	var total float64
	for _, p := range s.Points {
		total += p.Value
	}
	return total
}

// Values returns the series values in order.
func (s Series) Values() []float64 {
	out := make([]float64, len(s.Points))
	for i, p := range s.Points {
		out[i] = p.Value
	}
	return out
}

// Share is a key's percentage of a distribution.
type Share struct {
	Key     string  `yaml:"key"`
	Count   int     `yaml:"count"`
	Percent float64 `yaml:"percent"`
}

// Profile summarises one artist.
type Profile struct {
	Artist          string  `yaml:"artist"`
	SongCount       int     `yaml:"song_count"`
	AvgPopularity   float64 `yaml:"avg_popularity"`
	AvgTempo        float64 `yaml:"avg_tempo"`
	AvgDanceability float64 `yaml:"avg_danceability"`
	ModalGenre      string  `yaml:"modal_genre"`
	Songs           []Song  `yaml:"songs"`
}

// Probability is a count ratio with its operands.
type Probability struct {
	Matching int     `yaml:"matching"`
	Total    int     `yaml:"total"`
	Value    float64 `yaml:"value"`
}

// Breakdown holds the joint and conditional probabilities for an artist, genre and period.
type Breakdown struct {
	Artist            string      `yaml:"artist"`
	Genre             string      `yaml:"genre"`
	Period            string      `yaml:"period"`
	ArtistAndPeriod   Probability `yaml:"artist_and_period"`
	ArtistAndGenre    Probability `yaml:"artist_and_genre"`
	ArtistGivenPeriod Probability `yaml:"artist_given_period"`
	GenreGivenArtist  Probability `yaml:"genre_given_artist"`
}

// Matrix is a labelled square matrix.
type Matrix struct {
	Labels []string    `yaml:"labels"`
	Values [][]float64 `yaml:"values"`
	Rows   int         `yaml:"rows"`
}

// At returns the value for a pair of labels.
func (m Matrix) At(i, j int) float64 {
	return m.Values[i][j]
}

// ListenTotal is the listening time attributed to an artist.
type ListenTotal struct {
	Artist string  `yaml:"artist"`
	Hours  float64 `yaml:"hours"`
	Plays  int     `yaml:"plays"`
}

// ExploreConfig defines defaults for explorer and CLI views.
type ExploreConfig struct {
	DatasetPath string
	HistoryPath string
	Top         int
	From        int
	To          int
	CorrAttrs   []string
}
