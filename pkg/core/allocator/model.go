package allocator

import (
	"fmt"

	"github.com/cranleighfc/pitchalloc/pkg/core/model"
)

// MaxGamesPerPitchPerDay caps how many fixtures one pitch hosts on one date,
// across all kickoff times
const MaxGamesPerPitchPerDay = 2

// Var is one boolean decision variable: "this fixture plays in this slot".
// Variables exist only for pairs accepted by the eligibility filter; the
// absence of a variable is a hard infeasibility.
type Var struct {
	// Fixture indexes Model.Fixtures
	Fixture int

	// SlotID indexes Model.Slots
	SlotID int

	Slot model.Slot

	// Weight is the quality score from the objective composer
	Weight int

	// DayPitch indexes Model.DayPitches
	DayPitch int

	// Early/Mid mark which kickoff of the day-pitch pair this slot is,
	// for back-to-back tracking
	Early bool
	Mid   bool
}

// DayPitch tracks one (date, pitch) combination for the daily capacity
// constraint and back-to-back penalty
type DayPitch struct {
	Date  string
	Pitch string

	// Penalized marks combinations whose early+mid co-occupancy costs the
	// back-to-back penalty. Overflow pitches are exempt unless configured
	// otherwise.
	Penalized bool
}

// Model is the assembled optimization problem: decision variables, the
// constraint groups they participate in, and the objective constants.
//
// Hard constraints encoded here and enforced by the solver:
//   - each fixture takes at most one of its variables (at-most-one per
//     fixture; the allocated indicator is true iff one is chosen)
//   - each exact slot is referenced by at most one chosen variable
//   - each (date, pitch) combination hosts at most MaxGamesPerPitchPerDay
//
// The back-to-back indicator per penalized DayPitch is true iff its early
// and mid slots are both occupied; it feeds the penalty, not a restriction.
type Model struct {
	Fixtures []model.Fixture

	Vars []Var

	// VarsByFixture lists variable indices per fixture, sorted by
	// descending weight
	VarsByFixture [][]int

	// Slots holds every realized exact slot; Var.SlotID points here
	Slots []model.Slot

	DayPitches []DayPitch

	// AllocationReward and BackToBackPenalty are the objective constants
	// that involve indicators rather than decision variables
	AllocationReward  int
	BackToBackPenalty int
}

// BuildModelInput contains everything the model builder needs
type BuildModelInput struct {
	Fixtures    []model.Fixture
	Eligibility Eligibility
	Catalog     map[string]model.Pitch
	Rules       Rules
	Objective   Objective
}

// BuildModel creates one decision variable per eligible (fixture, slot) pair,
// weights it through the objective composer, and indexes the constraint
// groups the solver enforces.
func BuildModel(input BuildModelInput) (*Model, error) {
	if len(input.Eligibility.CandidatesByFixture) != len(input.Fixtures) {
		return nil, fmt.Errorf("eligibility covers %d fixtures, model has %d",
			len(input.Eligibility.CandidatesByFixture), len(input.Fixtures))
	}

	m := &Model{
		Fixtures:          input.Fixtures,
		VarsByFixture:     make([][]int, len(input.Fixtures)),
		AllocationReward:  input.Objective.Weights.AllocationReward,
		BackToBackPenalty: input.Objective.Weights.BackToBackPenalty,
	}

	slotIDs := make(map[string]int)
	dayPitchIDs := make(map[string]int)

	for fi, fixture := range input.Fixtures {
		for _, slot := range input.Eligibility.CandidatesByFixture[fi] {
			pitch, ok := input.Catalog[slot.Pitch]
			if !ok {
				return nil, fmt.Errorf("slot references unknown pitch %q", slot.Pitch)
			}

			key := slot.Key()
			slotID, ok := slotIDs[key]
			if !ok {
				slotID = len(m.Slots)
				slotIDs[key] = slotID
				m.Slots = append(m.Slots, slot)
			}

			dpKey := slot.Date + "|" + slot.Pitch
			dpID, ok := dayPitchIDs[dpKey]
			if !ok {
				dpID = len(m.DayPitches)
				dayPitchIDs[dpKey] = dpID
				penalized := pitch.Location != model.LocationOverflow ||
					input.Objective.Weights.PenalizeOverflowBackToBack
				m.DayPitches = append(m.DayPitches, DayPitch{
					Date:      slot.Date,
					Pitch:     slot.Pitch,
					Penalized: penalized,
				})
			}

			v := Var{
				Fixture:  fi,
				SlotID:   slotID,
				Slot:     slot,
				Weight:   input.Objective.SlotWeight(fixture, slot, pitch, input.Rules),
				DayPitch: dpID,
				Early:    slot.Time == input.Rules.EarlyKickoff,
				Mid:      slot.Time == input.Rules.MidKickoff,
			}

			m.VarsByFixture[fi] = append(m.VarsByFixture[fi], len(m.Vars))
			m.Vars = append(m.Vars, v)
		}

		sortVarsByWeight(m, m.VarsByFixture[fi])
	}

	return m, nil
}

// sortVarsByWeight orders a fixture's variable indices by descending weight,
// breaking ties by slot order, so the solver explores promising slots first
// and tie-breaking stays deterministic
func sortVarsByWeight(m *Model, varIdxs []int) {
	for i := 1; i < len(varIdxs); i++ {
		for j := i; j > 0; j-- {
			a, b := m.Vars[varIdxs[j-1]], m.Vars[varIdxs[j]]
			if a.Weight > b.Weight || (a.Weight == b.Weight && a.SlotID <= b.SlotID) {
				break
			}
			varIdxs[j-1], varIdxs[j] = varIdxs[j], varIdxs[j-1]
		}
	}
}

// validate checks internal consistency; a failure means the builder, not the
// caller, is defective
func (m *Model) validate() error {
	seen := make(map[[2]int]bool, len(m.Vars))
	for i, v := range m.Vars {
		if v.Fixture < 0 || v.Fixture >= len(m.Fixtures) {
			return fmt.Errorf("var %d references unknown fixture %d", i, v.Fixture)
		}
		if v.SlotID < 0 || v.SlotID >= len(m.Slots) {
			return fmt.Errorf("var %d references unknown slot %d", i, v.SlotID)
		}
		if v.DayPitch < 0 || v.DayPitch >= len(m.DayPitches) {
			return fmt.Errorf("var %d references unknown day-pitch %d", i, v.DayPitch)
		}
		pair := [2]int{v.Fixture, v.SlotID}
		if seen[pair] {
			return fmt.Errorf("duplicate variable for fixture %d slot %d", v.Fixture, v.SlotID)
		}
		seen[pair] = true
	}
	return nil
}
