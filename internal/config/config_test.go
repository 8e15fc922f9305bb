package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *Config {
	return &Config{
		Venue: VenueConfig{
			Pitches: []PitchConfig{
				{ID: "P1", Format: "11v11", Location: "primary", Priority: 1},
				{ID: "P3", Format: "9v9", Location: "primary", Priority: 1, Undersized: true},
				{ID: "P6", Format: "11v11", Location: "primary", Priority: 1},
				{ID: "G1", Format: "11v11", Location: "overflow", Priority: 3},
			},
			Kickoffs:    KickoffConfig{Early: "09:30", Mid: "11:00", Adult: "14:00"},
			SeniorPitch: "P6",
			PremierPitches: map[string][]string{
				"11v11": {"P1"},
			},
		},
		Teams: map[string]string{
			"First XI":   "Seniors",
			"U14 Blues":  "U14",
			"U10 Reds":   "U10",
			"Womens 1st": "Womens",
		},
		AgeGroups: AgeGroupConfig{
			Formats: map[string]string{
				"Seniors": "11v11", "Womens": "11v11", "U14": "11v11", "U10": "9v9",
			},
			Priority: map[string]int{
				"Seniors": 12, "Womens": 12, "U14": 6, "U10": 2,
			},
			Adult: []string{"Seniors", "Womens"},
			UndersizedPitchPriority: map[string]int{
				"U13": 3, "U14": 2,
			},
		},
		SeniorTeamPriority: map[string]int{"First XI": 3, "Womens 1st": 2},
		Weights: WeightsConfig{
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
		},
		Solver: SolverConfig{TimeoutSeconds: 30, Workers: 8},
		Season: SeasonConfig{RRule: "FREQ=WEEKLY;BYDAY=SU;DTSTART=20250901T000000Z"},
	}
}

func TestValidate_AcceptsValidConfig(t *testing.T) {
	assert.NoError(t, Validate(validConfig()))
}

func TestValidate_RejectsDuplicatePitchID(t *testing.T) {
	cfg := validConfig()
	cfg.Venue.Pitches = append(cfg.Venue.Pitches, PitchConfig{ID: "P1", Format: "9v9", Location: "primary", Priority: 2})

	err := Validate(cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate pitch ID")
}

func TestValidate_RejectsUnknownFormat(t *testing.T) {
	cfg := validConfig()
	cfg.Venue.Pitches[0].Format = "12v12"

	err := Validate(cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown format")
}

func TestValidate_RejectsUnknownLocation(t *testing.T) {
	cfg := validConfig()
	cfg.Venue.Pitches[0].Location = "moon"

	assert.Error(t, Validate(cfg))
}

func TestValidate_RejectsSeniorPitchOutsideCatalog(t *testing.T) {
	cfg := validConfig()
	cfg.Venue.SeniorPitch = "P99"

	err := Validate(cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not in the venue catalog")
}

func TestValidate_RejectsPremierPitchOutsideCatalog(t *testing.T) {
	cfg := validConfig()
	cfg.Venue.PremierPitches["11v11"] = []string{"P99"}

	assert.Error(t, Validate(cfg))
}

func TestValidate_RejectsTeamWithoutFormatMapping(t *testing.T) {
	cfg := validConfig()
	cfg.Teams["U8 Tigers"] = "U8"

	err := Validate(cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no format mapping")
}

func TestValidate_RejectsInvalidSeasonRRule(t *testing.T) {
	cfg := validConfig()
	cfg.Season.RRule = "FREQ=SOMETIMES"

	err := Validate(cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid season rrule")
}

func TestValidate_RejectsDominatedAllocationReward(t *testing.T) {
	cfg := validConfig()
	cfg.Weights.AllocationReward = 100

	err := Validate(cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "objective weights")
}

func TestLoadFromPath_ValidYAML(t *testing.T) {
	yaml := `
venue:
  pitches:
    - id: P1
      format: 11v11
      location: primary
      priority: 1
    - id: P6
      format: 11v11
      location: primary
      priority: 1
  kickoffs:
    early: "09:30"
    mid: "11:00"
    adult: "14:00"
  seniorPitch: P6
teams:
  First XI: Seniors
ageGroups:
  formats:
    Seniors: 11v11
  priority:
    Seniors: 12
  adult:
    - Seniors
weights:
  allocationReward: 10000
  backToBackPenalty: 500
  agePriority: 10
  overflowPenalty: 300
  cupEarlyKickoff: 500
  cupPremierPitchTop: 200
  cupPremierPitch: 150
  undersizedPitch: 75
  seniorPitch: 50
  preferredTime: 50
solver:
  timeoutSeconds: 30
  workers: 8
`
	path := filepath.Join(t.TempDir(), "pitchalloc.yaml")
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0o644))

	cfg, err := LoadFromPath(path)
	require.NoError(t, err)

	assert.Len(t, cfg.Venue.Pitches, 2)
	assert.Equal(t, "P6", cfg.Venue.SeniorPitch)
	assert.Equal(t, "Seniors", cfg.Teams["First XI"])
	assert.Equal(t, 30, cfg.Solver.TimeoutSeconds)
}

func TestLoadFromPath_RejectsMissingKickoffs(t *testing.T) {
	yaml := `
venue:
  pitches:
    - id: P1
      format: 11v11
      location: primary
      priority: 1
teams:
  First XI: Seniors
ageGroups:
  formats:
    Seniors: 11v11
  priority:
    Seniors: 12
  adult:
    - Seniors
weights:
  allocationReward: 10000
solver:
  timeoutSeconds: 30
  workers: 8
`
	path := filepath.Join(t.TempDir(), "pitchalloc.yaml")
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0o644))

	_, err := LoadFromPath(path)
	assert.Error(t, err)
}

func TestConversions_RoundTripIntoEngineTypes(t *testing.T) {
	cfg := validConfig()

	catalog := cfg.Catalog()
	assert.Len(t, catalog, 4)
	assert.Equal(t, catalog[1].Undersized, true)

	rules := cfg.Rules()
	assert.Equal(t, "09:30", rules.EarlyKickoff)
	assert.Equal(t, "P6", rules.SeniorPitch)
	assert.True(t, rules.IsAdultGroup("Womens"))
	assert.False(t, rules.IsAdultGroup("U14"))

	objective := cfg.Objective()
	assert.Equal(t, 10000, objective.Weights.AllocationReward)
	assert.Equal(t, 2, objective.UndersizedAgePriority["U14"])

	opts := cfg.SolveOptions()
	assert.Equal(t, 8, opts.Workers)
}
