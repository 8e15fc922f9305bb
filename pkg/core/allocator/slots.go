package allocator

import (
	"slices"

	"github.com/cranleighfc/pitchalloc/pkg/core/model"
)

// GenerateSlotsInput contains the data needed to expand the venue catalog
// into bookable slots
type GenerateSlotsInput struct {
	// Dates is the set of distinct fixture dates (duplicates are ignored)
	Dates []string

	// Catalog is the venue catalog
	Catalog []model.Pitch

	// Rules supplies the kickoff times
	Rules Rules
}

// GenerateSlots expands the venue catalog into the set of bookable
// (date, time, pitch) slots for each date.
//
// Top-tier format pitches carry three kickoffs (early, mid, adult); every
// smaller format carries two (early, mid) and never the adult slot.
//
// Slot ordering is stable across runs: lexicographic by pitch ID, then by
// kickoff order. Downstream diagnostics depend on this determinism.
func GenerateSlots(input GenerateSlotsInput) map[string][]model.Slot {
	// Sort a copy of the catalog so slot order never depends on config order
	catalog := slices.Clone(input.Catalog)
	slices.SortFunc(catalog, func(a, b model.Pitch) int {
		if a.ID < b.ID {
			return -1
		}
		if a.ID > b.ID {
			return 1
		}
		return 0
	})

	dates := slices.Clone(input.Dates)
	slices.Sort(dates)
	dates = slices.Compact(dates)

	slotsByDate := make(map[string][]model.Slot, len(dates))

	for _, date := range dates {
		var slots []model.Slot
		for _, pitch := range catalog {
			times := []string{input.Rules.EarlyKickoff, input.Rules.MidKickoff}
			if pitch.Format.IsTopTier() {
				times = append(times, input.Rules.AdultKickoff)
			}
			for _, t := range times {
				slots = append(slots, model.Slot{Date: date, Time: t, Pitch: pitch.ID})
			}
		}
		slotsByDate[date] = slots
	}

	return slotsByDate
}
