// Package stats contains probability queries over exploded genre rows.
package stats

import (
	"fmt"
	"strings"

	"github.com/loganmitchell124/tunestat/internal/model"
	"github.com/loganmitchell124/tunestat/internal/store"
)

// Fields and modes accepted by ConditionalProbability.
const (
	FieldArtist = "artist"
	FieldGenre  = "genre"
	ModeArtist  = "artist"
	ModePeriod  = "period"
)

// Attribute selects exploded rows whose Field equals Value, ignoring case.
type Attribute struct {
	Field string
	Value string
}

func (a Attribute) matches(row model.GenreRow) bool {
	if a.Field == FieldGenre {
		return strings.EqualFold(row.Genre, a.Value)
	}
	return strings.EqualFold(row.Song.Artist, a.Value)
}

func (a Attribute) validate() error {
	if a.Field != FieldArtist && a.Field != FieldGenre {
		return model.Invalid("attribute field", a.Field, choices([]string{FieldArtist, FieldGenre}))
	}
	if strings.TrimSpace(a.Value) == "" {
		return model.Invalid(a.Field, a.Value, "value is empty")
	}
	return nil
}

// ConditionalProbability counts exploded rows matching attr and the target, where mode says whether
// target is an artist name or a period. The denominator is the full exploded row count rather than the
// target subset, so the value is the joint probability P(attr, target). ProbabilityBreakdown reports
// the true conditionals.
func ConditionalProbability(gs *store.GenreSet, attr Attribute, mode, target string) (model.Result[model.Probability], error) {
	if err := attr.validate(); err != nil {
		return model.Result[model.Probability]{}, err
	}
	inTarget, err := targetFilter(mode, target)
	if err != nil {
		return model.Result[model.Probability]{}, err
	}
	total := gs.Len()
	matching := 0
	for i := 0; i < total; i++ {
		row := gs.Row(i)
		if attr.matches(row) && inTarget(row) {
			matching++
		}
	}
	p := ratio(matching, total)
	if total == 0 {
		return model.Empty(p, "dataset has no songs"), nil
	}
	return model.OK(p), nil
}

func targetFilter(mode, target string) (func(model.GenreRow) bool, error) {
	switch mode {
	case ModeArtist:
		if strings.TrimSpace(target) == "" {
			return nil, model.Invalid("artist", target, "name is empty")
		}
		return func(row model.GenreRow) bool {
			return strings.EqualFold(row.Song.Artist, strings.TrimSpace(target))
		}, nil
	case ModePeriod:
		period, err := ParsePeriod(target)
		if err != nil {
			return nil, err
		}
		return func(row model.GenreRow) bool {
			return period.Contains(row.Song.Year)
		}, nil
	default:
		return nil, model.Invalid("mode", mode, choices([]string{ModeArtist, ModePeriod}))
	}
}

func ratio(matching, total int) model.Probability {
	p := model.Probability{Matching: matching, Total: total}
	if total > 0 {
		p.Value = float64(matching) / float64(total)
	}
	return p
}

// ProbabilityBreakdown reports, over exploded rows, the joint probabilities P(artist, period) and
// P(artist, genre) against the full row count, plus the conditionals P(artist | period) and
// P(genre | artist) against their subsets.
func ProbabilityBreakdown(gs *store.GenreSet, artist, genre, periodSpec string) (model.Result[model.Breakdown], error) {
	artistAttr := Attribute{Field: FieldArtist, Value: strings.TrimSpace(artist)}
	if err := artistAttr.validate(); err != nil {
		return model.Result[model.Breakdown]{}, err
	}
	genreAttr := Attribute{Field: FieldGenre, Value: strings.TrimSpace(genre)}
	if err := genreAttr.validate(); err != nil {
		return model.Result[model.Breakdown]{}, err
	}
	period, err := ParsePeriod(periodSpec)
	if err != nil {
		return model.Result[model.Breakdown]{}, err
	}

	total := gs.Len()
	var inPeriod, byArtist, artistInPeriod, artistInGenre int
	for i := 0; i < total; i++ {
		row := gs.Row(i)
		isArtist := artistAttr.matches(row)
		isPeriod := period.Contains(row.Song.Year)
		if isPeriod {
			inPeriod++
		}
		if !isArtist {
			continue
		}
		byArtist++
		if isPeriod {
			artistInPeriod++
		}
		if genreAttr.matches(row) {
			artistInGenre++
		}
	}

	b := model.Breakdown{
		Artist:            artistAttr.Value,
		Genre:             genreAttr.Value,
		Period:            period.String(),
		ArtistAndPeriod:   ratio(artistInPeriod, total),
		ArtistAndGenre:    ratio(artistInGenre, total),
		ArtistGivenPeriod: ratio(artistInPeriod, inPeriod),
		GenreGivenArtist:  ratio(artistInGenre, byArtist),
	}
	switch {
	case total == 0:
		return model.Empty(b, "dataset has no songs"), nil
	case byArtist == 0:
		return model.Empty(b, fmt.Sprintf("artist %q not found", artistAttr.Value)), nil
	}
	return model.OK(b), nil
}
