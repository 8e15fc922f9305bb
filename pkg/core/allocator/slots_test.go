package allocator

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/cranleighfc/pitchalloc/pkg/core/model"
)

func testRules() Rules {
	return Rules{
		EarlyKickoff:   "09:30",
		MidKickoff:     "11:00",
		AdultKickoff:   "14:00",
		AdultAgeGroups: []string{"Seniors", "Womens"},
		SeniorPitch:    "P6",
	}
}

func TestGenerateSlots_TopTierGetsThreeKickoffs(t *testing.T) {
	catalog := []model.Pitch{
		{ID: "P1", Format: model.FormatElevenASide, Location: model.LocationPrimary, Priority: 1},
		{ID: "P3", Format: model.FormatNineASide, Location: model.LocationPrimary, Priority: 1},
	}

	slotsByDate := GenerateSlots(GenerateSlotsInput{
		Dates:   []string{"2025-09-07"},
		Catalog: catalog,
		Rules:   testRules(),
	})

	slots := slotsByDate["2025-09-07"]
	assert.Len(t, slots, 5, "11v11 pitch carries 3 kickoffs, 9v9 pitch carries 2")

	var p1Times, p3Times []string
	for _, s := range slots {
		if s.Pitch == "P1" {
			p1Times = append(p1Times, s.Time)
		} else {
			p3Times = append(p3Times, s.Time)
		}
	}
	assert.Equal(t, []string{"09:30", "11:00", "14:00"}, p1Times)
	assert.Equal(t, []string{"09:30", "11:00"}, p3Times)
}

func TestGenerateSlots_OrderIndependentOfCatalogOrder(t *testing.T) {
	forward := []model.Pitch{
		{ID: "P1", Format: model.FormatElevenASide, Location: model.LocationPrimary, Priority: 1},
		{ID: "P2", Format: model.FormatElevenASide, Location: model.LocationPrimary, Priority: 2},
	}
	reversed := []model.Pitch{forward[1], forward[0]}

	a := GenerateSlots(GenerateSlotsInput{Dates: []string{"2025-09-07"}, Catalog: forward, Rules: testRules()})
	b := GenerateSlots(GenerateSlotsInput{Dates: []string{"2025-09-07"}, Catalog: reversed, Rules: testRules()})

	assert.Equal(t, a["2025-09-07"], b["2025-09-07"], "slot order must not depend on config order")
}

func TestGenerateSlots_DuplicateDatesCollapse(t *testing.T) {
	catalog := []model.Pitch{
		{ID: "P1", Format: model.FormatElevenASide, Location: model.LocationPrimary, Priority: 1},
	}

	slotsByDate := GenerateSlots(GenerateSlotsInput{
		Dates:   []string{"2025-09-07", "2025-09-07", "2025-09-14"},
		Catalog: catalog,
		Rules:   testRules(),
	})

	assert.Len(t, slotsByDate, 2)
	assert.Len(t, slotsByDate["2025-09-07"], 3)
	assert.Len(t, slotsByDate["2025-09-14"], 3)
}
