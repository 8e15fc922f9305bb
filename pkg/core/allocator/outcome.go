package allocator

import (
	"slices"
	"strings"

	"github.com/cranleighfc/pitchalloc/pkg/core/model"
)

// Allocations converts a solved assignment into allocation records with the
// derived preference-match flags, sorted by date, time, then pitch
func (m *Model) Allocations(sol *Solution) []model.Allocation {
	allocations := make([]model.Allocation, 0, sol.AllocatedCount())

	for fi, vi := range sol.Chosen {
		if vi < 0 {
			continue
		}
		fixture := m.Fixtures[fi]
		slot := m.Vars[vi].Slot

		allocations = append(allocations, model.Allocation{
			FixtureID:             fixture.ID,
			Team:                  fixture.Team,
			Date:                  slot.Date,
			Time:                  slot.Time,
			Pitch:                 slot.Pitch,
			AgeGroup:              fixture.AgeGroup,
			Priority:              fixture.Priority,
			MatchedPreferredTime:  slot.Time == fixture.PreferredTime,
			MatchedPreferredPitch: fixture.PreferredPitch != "" && slot.Pitch == fixture.PreferredPitch,
			IsCup:                 fixture.IsCup,
		})
	}

	slices.SortFunc(allocations, func(a, b model.Allocation) int {
		if c := strings.Compare(a.Date, b.Date); c != 0 {
			return c
		}
		if c := strings.Compare(a.Time, b.Time); c != 0 {
			return c
		}
		return strings.Compare(a.Pitch, b.Pitch)
	})

	return allocations
}
