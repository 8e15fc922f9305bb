package allocator

import (
	"fmt"
	"slices"

	"github.com/cranleighfc/pitchalloc/pkg/core/model"
)

// maxRejectionReasons caps how many distinct rejection reasons are retained
// per fixture for diagnostics
const maxRejectionReasons = 3

// Eligibility holds the accepted (fixture, slot) pairs and the rejection
// reasons recorded for fixtures that ended up with no candidates
type Eligibility struct {
	// CandidatesByFixture lists, per fixture index, the slots that passed
	// every hard rule. A fixture with an empty list is structurally
	// impossible to allocate.
	CandidatesByFixture [][]model.Slot

	// Rejections maps fixture ID to up to maxRejectionReasons distinct
	// reasons why slots were turned down
	Rejections map[string][]string
}

// BuildEligibilityInput contains the data needed to filter (fixture, slot) pairs
type BuildEligibilityInput struct {
	Fixtures    []model.Fixture
	SlotsByDate map[string][]model.Slot
	Catalog     map[string]model.Pitch
	Rules       Rules
}

// BuildEligibility decides hard feasibility for every (fixture, slot) pair.
//
// A pair is accepted only if all of the following hold:
//   - the slot's pitch format equals the fixture's required format
//   - adult fixtures sit at the adult kickoff; every other age group sits
//     anywhere except the adult kickoff
//   - the senior-exclusive pitch is only offered to adult fixtures
//
// Rejected pairs are never materialized as decision variables. The first few
// distinct rejection reasons per fixture are kept for diagnostics.
func BuildEligibility(input BuildEligibilityInput) Eligibility {
	elig := Eligibility{
		CandidatesByFixture: make([][]model.Slot, len(input.Fixtures)),
		Rejections:          make(map[string][]string),
	}

	for i, fixture := range input.Fixtures {
		slots, ok := input.SlotsByDate[fixture.Date]
		if !ok {
			elig.CandidatesByFixture[i] = nil
			elig.Rejections[fixture.ID] = []string{fmt.Sprintf("no slots generated for date %s", fixture.Date)}
			continue
		}

		var candidates []model.Slot
		var reasons []string

		for _, slot := range slots {
			pitch := input.Catalog[slot.Pitch]

			if reason := rejectPair(fixture, slot, pitch, input.Rules); reason != "" {
				if len(reasons) < maxRejectionReasons && !slices.Contains(reasons, reason) {
					reasons = append(reasons, reason)
				}
				continue
			}

			candidates = append(candidates, slot)
		}

		elig.CandidatesByFixture[i] = candidates
		elig.Rejections[fixture.ID] = reasons
	}

	return elig
}

// rejectPair returns a human-readable reason the pair fails a hard rule, or
// the empty string if the pair is eligible
func rejectPair(fixture model.Fixture, slot model.Slot, pitch model.Pitch, rules Rules) string {
	if pitch.Format != fixture.Format {
		return fmt.Sprintf("format mismatch (needs %s)", fixture.Format)
	}

	if rules.IsAdultGroup(fixture.AgeGroup) {
		if slot.Time != rules.AdultKickoff {
			return fmt.Sprintf("adult fixtures must kick off at %s", rules.AdultKickoff)
		}
	} else if slot.Time == rules.AdultKickoff {
		return fmt.Sprintf("youth fixtures cannot use the %s slot", rules.AdultKickoff)
	}

	if rules.SeniorPitch != "" && pitch.ID == rules.SeniorPitch && !rules.IsAdultGroup(fixture.AgeGroup) {
		return fmt.Sprintf("%s is reserved for adult teams", rules.SeniorPitch)
	}

	return ""
}
