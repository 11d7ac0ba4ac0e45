// Package stats parses period filters.
package stats

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/loganmitchell124/tunestat/internal/model"
	"github.com/loganmitchell124/tunestat/internal/store"
)

// ParsePeriod reads "2015" as a single year and "2010s" as the decade [2010, 2020).
// The digits before the trailing s are taken literally as the decade start.
func ParsePeriod(text string) (model.Period, error) {
	raw := strings.TrimSpace(text)
	digits := raw
	decade := false
	if strings.HasSuffix(digits, "s") {
		digits = strings.TrimSuffix(digits, "s")
		decade = true
	}
	if digits == "" || strings.IndexFunc(digits, func(r rune) bool { return r < '0' || r > '9' }) >= 0 {
		return model.Period{}, model.Invalid("period", text, `expected a year like "2015" or a decade like "2010s"`)
	}
	start, err := strconv.Atoi(digits)
	if err != nil {
		return model.Period{}, model.Invalid("period", text, err.Error())
	}
	return model.Period{Start: start, Decade: decade}, nil
}

// FilterByPeriod keeps the songs released within the period described by spec.
func FilterByPeriod(rs *store.RecordSet, spec string) (model.Result[*store.RecordSet], error) {
	period, err := ParsePeriod(spec)
	if err != nil {
		return model.Result[*store.RecordSet]{}, err
	}
	filtered := rs.Filter(func(s model.Song) bool {
		return period.Contains(s.Year)
	})
	if filtered.Len() == 0 {
		return model.Empty(filtered, fmt.Sprintf("no songs in %s", period)), nil
	}
	return model.OK(filtered), nil
}
