package allocator

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/cranleighfc/pitchalloc/pkg/core/model"
)

func testObjective() Objective {
	return Objective{
		Weights: DefaultWeights(),
		UndersizedAgePriority: map[string]int{
			"U13": 3, "U14": 2, "U15": 1,
		},
		PremierPitches: map[model.Format][]string{
			model.FormatElevenASide: {"P1"},
			model.FormatNineASide:   {"P3"},
		},
	}
}

func TestSlotWeight_AgePriorityBase(t *testing.T) {
	o := testObjective()
	fixture := model.Fixture{AgeGroup: "U16", Format: model.FormatElevenASide, Priority: 8}
	slot := model.Slot{Date: "2025-09-07", Time: "11:00", Pitch: "P1"}
	pitch := model.Pitch{ID: "P1", Format: model.FormatElevenASide, Location: model.LocationPrimary}

	weight := o.SlotWeight(fixture, slot, pitch, testRules())
	assert.Equal(t, 8*10, weight)
}

func TestSlotWeight_OverflowPenalty(t *testing.T) {
	o := testObjective()
	fixture := model.Fixture{AgeGroup: "U16", Format: model.FormatElevenASide, Priority: 8}
	slot := model.Slot{Date: "2025-09-07", Time: "11:00", Pitch: "G1"}
	pitch := model.Pitch{ID: "G1", Format: model.FormatElevenASide, Location: model.LocationOverflow}

	weight := o.SlotWeight(fixture, slot, pitch, testRules())
	assert.Equal(t, 8*10-300, weight)
}

func TestSlotWeight_CupEarlyKickoffBonus(t *testing.T) {
	o := testObjective()
	fixture := model.Fixture{AgeGroup: "U16", Format: model.FormatNineASide, Priority: 8, IsCup: true, PreferredTime: "09:30"}
	pitch := model.Pitch{ID: "P4", Format: model.FormatNineASide, Location: model.LocationPrimary}

	early := o.SlotWeight(fixture, model.Slot{Time: "09:30", Pitch: "P4"}, pitch, testRules())
	mid := o.SlotWeight(fixture, model.Slot{Time: "11:00", Pitch: "P4"}, pitch, testRules())

	// Early slot carries the cup bonus plus the preferred-time bonus
	assert.Equal(t, 500+50, early-mid)
}

func TestSlotWeight_CupPremierPitchByFormat(t *testing.T) {
	o := testObjective()
	rules := testRules()

	topCup := model.Fixture{AgeGroup: "U16", Format: model.FormatElevenASide, Priority: 8, IsCup: true}
	topPremier := model.Pitch{ID: "P1", Format: model.FormatElevenASide, Location: model.LocationPrimary}
	topOther := model.Pitch{ID: "P2", Format: model.FormatElevenASide, Location: model.LocationPrimary}

	onPremier := o.SlotWeight(topCup, model.Slot{Time: "11:00", Pitch: "P1"}, topPremier, rules)
	offPremier := o.SlotWeight(topCup, model.Slot{Time: "11:00", Pitch: "P2"}, topOther, rules)
	assert.Equal(t, 200, onPremier-offPremier, "top-tier cup fixtures get the larger premier bonus")

	smallCup := model.Fixture{AgeGroup: "U11", Format: model.FormatNineASide, Priority: 3, IsCup: true}
	smallPremier := model.Pitch{ID: "P3", Format: model.FormatNineASide, Location: model.LocationPrimary}
	smallOther := model.Pitch{ID: "P4", Format: model.FormatNineASide, Location: model.LocationPrimary}

	onPremier = o.SlotWeight(smallCup, model.Slot{Time: "11:00", Pitch: "P3"}, smallPremier, rules)
	offPremier = o.SlotWeight(smallCup, model.Slot{Time: "11:00", Pitch: "P4"}, smallOther, rules)
	assert.Equal(t, 150, onPremier-offPremier)
}

func TestSlotWeight_UndersizedPitchBonus(t *testing.T) {
	o := testObjective()
	undersized := model.Pitch{ID: "P5", Format: model.FormatElevenASide, Location: model.LocationPrimary, Undersized: true}
	fullSize := model.Pitch{ID: "P2", Format: model.FormatElevenASide, Location: model.LocationPrimary}

	younger := model.Fixture{AgeGroup: "U13", Format: model.FormatElevenASide, Priority: 5}
	older := model.Fixture{AgeGroup: "U16", Format: model.FormatElevenASide, Priority: 8}

	slot := model.Slot{Time: "11:00", Pitch: "P5"}
	assert.Equal(t, 3*75, o.SlotWeight(younger, slot, undersized, testRules())-younger.Priority*10,
		"U13 gets the undersized bonus from the age table")
	assert.Equal(t, older.Priority*10, o.SlotWeight(older, slot, undersized, testRules()),
		"age groups absent from the table get no bonus")

	// Same age group on a full-size pitch gets nothing
	assert.Equal(t, younger.Priority*10, o.SlotWeight(younger, model.Slot{Time: "11:00", Pitch: "P2"}, fullSize, testRules()))
}

func TestSlotWeight_SeniorPitchBonus(t *testing.T) {
	o := testObjective()
	seniorPitch := model.Pitch{ID: "P6", Format: model.FormatElevenASide, Location: model.LocationPrimary}

	ranked := model.Fixture{AgeGroup: "Seniors", Format: model.FormatElevenASide, Priority: 12, SeniorPriority: 3}
	unranked := model.Fixture{AgeGroup: "Seniors", Format: model.FormatElevenASide, Priority: 12}

	slot := model.Slot{Time: "14:00", Pitch: "P6"}
	assert.Equal(t, 3*50, o.SlotWeight(ranked, slot, seniorPitch, testRules())-o.SlotWeight(unranked, slot, seniorPitch, testRules()))
}

func TestSlotWeight_PreferredTimeBonus(t *testing.T) {
	o := testObjective()
	fixture := model.Fixture{AgeGroup: "U16", Format: model.FormatElevenASide, Priority: 8, PreferredTime: "11:00"}
	pitch := model.Pitch{ID: "P2", Format: model.FormatElevenASide, Location: model.LocationPrimary}

	preferred := o.SlotWeight(fixture, model.Slot{Time: "11:00", Pitch: "P2"}, pitch, testRules())
	other := o.SlotWeight(fixture, model.Slot{Time: "09:30", Pitch: "P2"}, pitch, testRules())
	assert.Equal(t, 50, preferred-other)
}

func TestValidate_DefaultWeightsSatisfyDominance(t *testing.T) {
	o := testObjective()
	assert.NoError(t, o.Validate(12, 3))
}

func TestValidate_RejectsDominatedAllocationReward(t *testing.T) {
	o := testObjective()
	o.Weights.AllocationReward = 100

	err := o.Validate(12, 3)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "does not dominate")
}

func TestValidate_RejectsNegativeWeight(t *testing.T) {
	o := testObjective()
	o.Weights.OverflowPenalty = -1

	err := o.Validate(12, 3)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "non-negative")
}
