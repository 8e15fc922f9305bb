package services

import (
	"fmt"
	"time"

	"github.com/teambition/rrule-go"

	"github.com/cranleighfc/pitchalloc/internal/config"
	"github.com/cranleighfc/pitchalloc/pkg/core/model"
)

// MatchDays expands the season's recurrence rule into the match dates falling
// between from and until (inclusive). Dates come back in "2006-01-02" form.
func MatchDays(cfg *config.Config, from, until time.Time) ([]string, error) {
	if cfg.Season.RRule == "" {
		return nil, fmt.Errorf("no season rrule configured")
	}

	rule, err := rrule.StrToRRule(cfg.Season.RRule)
	if err != nil {
		return nil, fmt.Errorf("invalid season rrule: %w", err)
	}

	occurrences := rule.Between(from, until, true)
	dates := make([]string, len(occurrences))
	for i, occ := range occurrences {
		dates[i] = occ.Format("2006-01-02")
	}
	return dates, nil
}

// OffCalendarDates returns the distinct fixture dates that are not season
// match days, in fixture order. An empty rrule disables the check.
func OffCalendarDates(cfg *config.Config, fixtures []model.Fixture) ([]string, error) {
	if cfg.Season.RRule == "" {
		return nil, nil
	}

	var first, last time.Time
	for _, f := range fixtures {
		d, err := time.Parse("2006-01-02", f.Date)
		if err != nil {
			return nil, fmt.Errorf("fixture %s has invalid date %q: %w", f.ID, f.Date, err)
		}
		if first.IsZero() || d.Before(first) {
			first = d
		}
		if d.After(last) {
			last = d
		}
	}
	if first.IsZero() {
		return nil, nil
	}

	matchDays, err := MatchDays(cfg, first, last)
	if err != nil {
		return nil, err
	}

	onCalendar := make(map[string]bool, len(matchDays))
	for _, d := range matchDays {
		onCalendar[d] = true
	}

	seen := make(map[string]bool)
	var offCalendar []string
	for _, f := range fixtures {
		if !onCalendar[f.Date] && !seen[f.Date] {
			seen[f.Date] = true
			offCalendar = append(offCalendar, f.Date)
		}
	}
	return offCalendar, nil
}
