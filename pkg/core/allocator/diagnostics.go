package allocator

import (
	"fmt"
	"strings"
)

// UnallocatedCategory classifies why a fixture missed out
type UnallocatedCategory string

const (
	// CategoryImpossible means no eligible slot existed at all: the
	// fixture could never have been placed on this catalog
	CategoryImpossible UnallocatedCategory = "no_compatible_slots"

	// CategoryCapacity means eligible slots existed but every one was
	// taken by another fixture
	CategoryCapacity UnallocatedCategory = "capacity"
)

// UnallocatedFixture describes one fixture the solution left out
type UnallocatedFixture struct {
	FixtureID string
	Team      string
	Date      string
	Category  UnallocatedCategory

	// Reasons holds the recorded rejection reasons (impossible fixtures only)
	Reasons []string

	// CandidateCount is how many eligible slots existed (capacity-blocked
	// fixtures only)
	CandidateCount int
}

// Reason renders a single-line explanation for reports
func (u UnallocatedFixture) Reason() string {
	if u.Category == CategoryCapacity {
		return fmt.Sprintf("all %d compatible slots occupied", u.CandidateCount)
	}
	if len(u.Reasons) == 0 {
		return "no valid slots"
	}
	return strings.Join(u.Reasons, "; ")
}

// Diagnostics is the post-solution report on everything that was not placed
type Diagnostics struct {
	Unallocated []UnallocatedFixture
}

// ImpossibleCount returns how many fixtures had no eligible slot
func (d *Diagnostics) ImpossibleCount() int {
	n := 0
	for _, u := range d.Unallocated {
		if u.Category == CategoryImpossible {
			n++
		}
	}
	return n
}

// CapacityBlockedCount returns how many fixtures lost out on capacity
func (d *Diagnostics) CapacityBlockedCount() int {
	return len(d.Unallocated) - d.ImpossibleCount()
}

// Diagnose classifies every unallocated fixture and verifies the solution's
// slot-uniqueness invariant.
//
// A slot appearing twice indicates a defect in the model builder, not bad
// input, so it is returned as an error rather than reported. Categorization
// is a pure function of the model and solution: running it twice yields the
// same report.
func Diagnose(m *Model, sol *Solution, elig Eligibility) (*Diagnostics, error) {
	if len(sol.Chosen) != len(m.Fixtures) {
		return nil, fmt.Errorf("solution covers %d fixtures, model has %d", len(sol.Chosen), len(m.Fixtures))
	}

	// Sanity check: no exact slot used twice
	used := make(map[int]int)
	for fi, vi := range sol.Chosen {
		if vi < 0 {
			continue
		}
		v := m.Vars[vi]
		if prev, taken := used[v.SlotID]; taken {
			return nil, fmt.Errorf("invariant breach: slot %s assigned to both %s and %s",
				m.Slots[v.SlotID].Key(), m.Fixtures[prev].ID, m.Fixtures[fi].ID)
		}
		used[v.SlotID] = fi
	}

	diag := &Diagnostics{}

	for fi, fixture := range m.Fixtures {
		if sol.Chosen[fi] >= 0 {
			continue
		}

		if len(m.VarsByFixture[fi]) == 0 {
			diag.Unallocated = append(diag.Unallocated, UnallocatedFixture{
				FixtureID: fixture.ID,
				Team:      fixture.Team,
				Date:      fixture.Date,
				Category:  CategoryImpossible,
				Reasons:   elig.Rejections[fixture.ID],
			})
			continue
		}

		diag.Unallocated = append(diag.Unallocated, UnallocatedFixture{
			FixtureID:      fixture.ID,
			Team:           fixture.Team,
			Date:           fixture.Date,
			Category:       CategoryCapacity,
			CandidateCount: len(m.VarsByFixture[fi]),
		})
	}

	return diag, nil
}
