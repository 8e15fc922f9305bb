package allocator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cranleighfc/pitchalloc/pkg/core/model"
)

func TestDiagnose_SeparatesImpossibleFromCapacityBlocked(t *testing.T) {
	fixtures := []model.Fixture{
		// Needs a 7v7 pitch that does not exist
		{ID: "U10_2025-09-07", Team: "U10 Reds", AgeGroup: "U10", Format: model.FormatSevenASide, Date: "2025-09-07", Priority: 2},
		// Three youth fixtures into two youth slots
		youthFixture("U14 Blues", "2025-09-07"),
		youthFixture("U14 Whites", "2025-09-07"),
		youthFixture("U14 Reds", "2025-09-07"),
	}
	catalog := []model.Pitch{
		{ID: "P2", Format: model.FormatElevenASide, Location: model.LocationPrimary, Priority: 1},
	}

	rules := testRules()
	slotsByDate := GenerateSlots(GenerateSlotsInput{Dates: []string{"2025-09-07"}, Catalog: catalog, Rules: rules})
	elig := BuildEligibility(BuildEligibilityInput{
		Fixtures:    fixtures,
		SlotsByDate: slotsByDate,
		Catalog:     catalogMap(catalog),
		Rules:       rules,
	})
	m, err := BuildModel(BuildModelInput{
		Fixtures:    fixtures,
		Eligibility: elig,
		Catalog:     catalogMap(catalog),
		Rules:       rules,
		Objective:   testObjective(),
	})
	require.NoError(t, err)

	sol := solve(t, m)
	assert.Equal(t, 2, sol.AllocatedCount())

	diag, err := Diagnose(m, sol, elig)
	require.NoError(t, err)
	require.Len(t, diag.Unallocated, 2)
	assert.Equal(t, 1, diag.ImpossibleCount())
	assert.Equal(t, 1, diag.CapacityBlockedCount())

	// Categorization follows fixture input order
	impossible := diag.Unallocated[0]
	assert.Equal(t, "U10_2025-09-07", impossible.FixtureID)
	assert.Equal(t, CategoryImpossible, impossible.Category)
	assert.Contains(t, impossible.Reason(), "format mismatch (needs 7v7)")

	blocked := diag.Unallocated[1]
	assert.Equal(t, CategoryCapacity, blocked.Category)
	assert.Equal(t, 2, blocked.CandidateCount)
	assert.Equal(t, "all 2 compatible slots occupied", blocked.Reason())
}

func TestDiagnose_IsIdempotent(t *testing.T) {
	fixtures := []model.Fixture{
		youthFixture("U14 Blues", "2025-09-07"),
		youthFixture("U14 Whites", "2025-09-07"),
		youthFixture("U14 Reds", "2025-09-07"),
	}
	catalog := []model.Pitch{
		{ID: "P2", Format: model.FormatElevenASide, Location: model.LocationPrimary, Priority: 1},
	}

	m := buildTestModel(t, fixtures, catalog, testObjective())
	sol := solve(t, m)
	elig := buildElig(fixtures, catalog)

	first, err := Diagnose(m, sol, elig)
	require.NoError(t, err)
	second, err := Diagnose(m, sol, elig)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestDiagnose_RejectsSlotReuse(t *testing.T) {
	fixtures := []model.Fixture{
		youthFixture("U14 Blues", "2025-09-07"),
		youthFixture("U14 Whites", "2025-09-07"),
	}
	catalog := []model.Pitch{
		{ID: "P2", Format: model.FormatElevenASide, Location: model.LocationPrimary, Priority: 1},
	}

	m := buildTestModel(t, fixtures, catalog, testObjective())
	elig := buildElig(fixtures, catalog)

	// Hand both fixtures the same slot
	var sameSlot [2]int
	for i := range fixtures {
		for _, vi := range m.VarsByFixture[i] {
			if m.Vars[vi].Slot.Time == "09:30" {
				sameSlot[i] = vi
			}
		}
	}
	corrupt := &Solution{Status: StatusOptimal, Chosen: []int{sameSlot[0], sameSlot[1]}}

	_, err := Diagnose(m, corrupt, elig)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invariant breach")
}

func TestDiagnose_RejectsLengthMismatch(t *testing.T) {
	fixtures := []model.Fixture{youthFixture("U14 Blues", "2025-09-07")}
	catalog := []model.Pitch{
		{ID: "P2", Format: model.FormatElevenASide, Location: model.LocationPrimary, Priority: 1},
	}

	m := buildTestModel(t, fixtures, catalog, testObjective())
	elig := buildElig(fixtures, catalog)

	_, err := Diagnose(m, &Solution{Chosen: []int{}}, elig)
	assert.Error(t, err)
}

func TestUnallocatedFixture_ReasonFallback(t *testing.T) {
	u := UnallocatedFixture{Category: CategoryImpossible}
	assert.Equal(t, "no valid slots", u.Reason())

	u.Reasons = []string{"format mismatch (needs 9v9)", "P6 is reserved for adult teams"}
	assert.Equal(t, "format mismatch (needs 9v9); P6 is reserved for adult teams", u.Reason())
}
