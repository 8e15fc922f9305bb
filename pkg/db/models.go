package db

import (
	"time"

	"github.com/cranleighfc/pitchalloc/pkg/core/model"
)

// Run records one invocation of the allocation engine
type Run struct {
	ID             string
	CreatedAt      time.Time
	Status         string
	Objective      int
	WallTimeMillis int64
	FixtureCount   int
	AllocatedCount int
}

// Allocation is one persisted fixture assignment belonging to a run
type Allocation struct {
	ID                    string
	RunID                 string
	FixtureID             string
	Team                  string
	MatchDate             string
	KickoffTime           string
	Pitch                 string
	AgeGroup              string
	Priority              int
	MatchedPreferredTime  bool
	MatchedPreferredPitch bool
	IsCup                 bool
}

// ToModel converts a persisted row back to the engine's allocation record
func (a Allocation) ToModel() model.Allocation {
	return model.Allocation{
		FixtureID:             a.FixtureID,
		Team:                  a.Team,
		Date:                  a.MatchDate,
		Time:                  a.KickoffTime,
		Pitch:                 a.Pitch,
		AgeGroup:              a.AgeGroup,
		Priority:              a.Priority,
		MatchedPreferredTime:  a.MatchedPreferredTime,
		MatchedPreferredPitch: a.MatchedPreferredPitch,
		IsCup:                 a.IsCup,
	}
}
