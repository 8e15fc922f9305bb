package allocator

import (
	"fmt"
	"slices"

	"github.com/cranleighfc/pitchalloc/pkg/core/model"
)

// Weights holds the objective weight constants.
//
// Magnitudes are configurable but the dominance ordering is a behavioral
// contract: the allocation reward must exceed any score a single decision
// variable can contribute, so the solver never trades a placed fixture for
// quality elsewhere. Validate enforces this.
type Weights struct {
	// AllocationReward is granted once per allocated fixture and dominates
	// every other term
	AllocationReward int

	// BackToBackPenalty is subtracted when a pitch's early and mid slots
	// are both occupied on the same date
	BackToBackPenalty int

	// AgePriority scales the fixture's age-priority rank into its base weight
	AgePriority int

	// OverflowPenalty is subtracted for slots on overflow-class pitches so
	// they are used only when capacity elsewhere is exhausted
	OverflowPenalty int

	// CupEarlyKickoff is granted to cup fixtures placed at the early kickoff
	CupEarlyKickoff int

	// CupPremierPitchTop is granted to top-tier format cup fixtures on a
	// premier pitch; CupPremierPitch applies to every other format
	CupPremierPitchTop int
	CupPremierPitch    int

	// UndersizedPitch scales the per-age undersized-pitch priority
	UndersizedPitch int

	// SeniorPitch scales the fixture's team seniority rank on the senior pitch
	SeniorPitch int

	// PreferredTime is granted when the slot time equals the fixture's
	// preferred time
	PreferredTime int

	// PenalizeOverflowBackToBack extends the back-to-back penalty to
	// overflow-class pitches. Off by default: overflow pitches exist to
	// absorb load.
	PenalizeOverflowBackToBack bool
}

// Objective computes per-candidate weights. It is a pure function of the
// (fixture, slot, pitch) triple so the sub-term ordering can be tested in
// isolation from the solver.
type Objective struct {
	Weights Weights

	// UndersizedAgePriority favours younger top-tier age groups on an
	// undersized pitch. Age groups absent from the table (including all
	// adult groups) contribute zero.
	UndersizedAgePriority map[string]int

	// PremierPitches lists the best-regarded pitch IDs per format, used for
	// the cup premier-pitch bonus
	PremierPitches map[model.Format][]string
}

// SlotWeight computes the quality weight of assigning the fixture to the
// slot. Sub-terms are evaluated in a fixed order: age-priority base,
// overflow penalty, cup early-kickoff bonus, cup premier-pitch bonus,
// undersized-pitch bonus, senior-pitch bonus, preferred-time bonus.
func (o Objective) SlotWeight(fixture model.Fixture, slot model.Slot, pitch model.Pitch, rules Rules) int {
	w := o.Weights

	weight := fixture.Priority * w.AgePriority

	if pitch.Location == model.LocationOverflow {
		weight -= w.OverflowPenalty
	}

	if fixture.IsCup && slot.Time == rules.EarlyKickoff {
		weight += w.CupEarlyKickoff
	}

	if fixture.IsCup && slices.Contains(o.PremierPitches[fixture.Format], pitch.ID) {
		if fixture.Format.IsTopTier() {
			weight += w.CupPremierPitchTop
		} else {
			weight += w.CupPremierPitch
		}
	}

	if pitch.Undersized && pitch.Format.IsTopTier() {
		weight += o.UndersizedAgePriority[fixture.AgeGroup] * w.UndersizedPitch
	}

	if rules.SeniorPitch != "" && pitch.ID == rules.SeniorPitch && fixture.SeniorPriority > 0 {
		weight += fixture.SeniorPriority * w.SeniorPitch
	}

	if slot.Time == fixture.PreferredTime {
		weight += w.PreferredTime
	}

	return weight
}

// MaxSlotQuality returns the largest weight SlotWeight can produce given the
// highest age-priority and seniority ranks in play
func (o Objective) MaxSlotQuality(maxAgePriority, maxSeniorPriority int) int {
	w := o.Weights

	maxUndersized := 0
	for _, p := range o.UndersizedAgePriority {
		maxUndersized = max(maxUndersized, p)
	}

	quality := maxAgePriority * w.AgePriority
	quality += w.CupEarlyKickoff
	quality += max(w.CupPremierPitchTop, w.CupPremierPitch)
	quality += maxUndersized * w.UndersizedPitch
	quality += maxSeniorPriority * w.SeniorPitch
	quality += w.PreferredTime
	return quality
}

// Validate checks the dominance contract: every weight non-negative and the
// allocation reward strictly larger than the back-to-back penalty plus the
// best quality score a single candidate can reach. This guarantees the
// count of allocated fixtures is never traded for quality.
func (o Objective) Validate(maxAgePriority, maxSeniorPriority int) error {
	w := o.Weights

	for name, v := range map[string]int{
		"allocationReward":   w.AllocationReward,
		"backToBackPenalty":  w.BackToBackPenalty,
		"agePriority":        w.AgePriority,
		"overflowPenalty":    w.OverflowPenalty,
		"cupEarlyKickoff":    w.CupEarlyKickoff,
		"cupPremierPitchTop": w.CupPremierPitchTop,
		"cupPremierPitch":    w.CupPremierPitch,
		"undersizedPitch":    w.UndersizedPitch,
		"seniorPitch":        w.SeniorPitch,
		"preferredTime":      w.PreferredTime,
	} {
		if v < 0 {
			return fmt.Errorf("weight %s must be non-negative, got %d", name, v)
		}
	}

	ceiling := w.BackToBackPenalty + o.MaxSlotQuality(maxAgePriority, maxSeniorPriority)
	if w.AllocationReward <= ceiling {
		return fmt.Errorf("allocationReward %d does not dominate quality ceiling %d: quality could be traded for allocated fixtures",
			w.AllocationReward, ceiling)
	}

	return nil
}

// DefaultWeights returns the production weight constants
func DefaultWeights() Weights {
	return Weights{
		AllocationReward:   10000,
		BackToBackPenalty:  500,
		AgePriority:        10,
		OverflowPenalty:    300,
		CupEarlyKickoff:    500,
		CupPremierPitchTop: 200,
		CupPremierPitch:    150,
		UndersizedPitch:    75,
		SeniorPitch:        50,
		PreferredTime:      50,
	}
}
