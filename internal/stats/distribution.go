// Package stats contains share-of-total queries.
package stats

import (
	"fmt"
	"sort"
	"strings"

	"github.com/loganmitchell124/tunestat/internal/model"
	"github.com/loganmitchell124/tunestat/internal/store"
)

// shareCounter counts keys in first-encountered order.
type shareCounter struct {
	order  []string
	counts map[string]int
	total  int
}

func (c *shareCounter) add(key string) {
	if c.counts == nil {
		c.counts = make(map[string]int)
	}
	if _, ok := c.counts[key]; !ok {
		c.order = append(c.order, key)
	}
	c.counts[key]++
	c.total++
}

// shares returns the percentage of each key, largest first, ties in first-encountered order.
func (c *shareCounter) shares() []model.Share {
	out := make([]model.Share, 0, len(c.order))
	for _, key := range c.order {
		out = append(out, model.Share{
			Key:     key,
			Count:   c.counts[key],
			Percent: float64(c.counts[key]) / float64(c.total) * 100,
		})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Count > out[j].Count
	})
	return out
}

// GenreDistribution gives each genre's share of the exploded rows in the period. Shares sum to 100.
func GenreDistribution(rs *store.RecordSet, periodSpec string) (model.Result[[]model.Share], error) {
	filtered, err := FilterByPeriod(rs, periodSpec)
	if err != nil {
		return model.Result[[]model.Share]{}, err
	}
	if filtered.Empty() {
		return model.Empty([]model.Share(nil), filtered.Reason), nil
	}
	gs := store.NormalizeGenres(filtered.Value)
	var c shareCounter
	for i := 0; i < gs.Len(); i++ {
		c.add(gs.Row(i).Genre)
	}
	return model.OK(c.shares()), nil
}

// ArtistDistributionGivenGenre gives each artist's share of the songs tagged genre in the period.
func ArtistDistributionGivenGenre(rs *store.RecordSet, periodSpec, genre string) (model.Result[[]model.Share], error) {
	label := strings.TrimSpace(genre)
	if label == "" {
		return model.Result[[]model.Share]{}, model.Invalid("genre", genre, "genre is empty")
	}
	filtered, err := FilterByPeriod(rs, periodSpec)
	if err != nil {
		return model.Result[[]model.Share]{}, err
	}
	if filtered.Empty() {
		return model.Empty([]model.Share(nil), filtered.Reason), nil
	}
	gs := store.NormalizeGenres(filtered.Value).Filter(func(row model.GenreRow) bool {
		return strings.EqualFold(row.Genre, label)
	})
	if gs.Len() == 0 {
		return model.Empty([]model.Share(nil), fmt.Sprintf("no %s songs in %s", label, strings.TrimSpace(periodSpec))), nil
	}
	var c shareCounter
	for i := 0; i < gs.Len(); i++ {
		c.add(gs.Row(i).Song.Artist)
	}
	return model.OK(c.shares()), nil
}
