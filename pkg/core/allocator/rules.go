package allocator

import "slices"

// Rules captures the hard eligibility rules for a venue: the three daily
// kickoff times, which age groups count as adult, and the pitch reserved
// for adult teams.
type Rules struct {
	// EarlyKickoff is the first kickoff of the day (e.g. "09:30")
	EarlyKickoff string

	// MidKickoff is the second kickoff of the day (e.g. "11:00")
	MidKickoff string

	// AdultKickoff is the late kickoff reserved for adult fixtures (e.g. "14:00").
	// Only top-tier format pitches carry this slot.
	AdultKickoff string

	// AdultAgeGroups lists the age classifications restricted to the adult kickoff
	AdultAgeGroups []string

	// SeniorPitch is the ID of the pitch reserved for adult fixtures
	// (empty if the venue has none)
	SeniorPitch string
}

// IsAdultGroup reports whether the age group is restricted to the adult kickoff
func (r Rules) IsAdultGroup(ageGroup string) bool {
	return slices.Contains(r.AdultAgeGroups, ageGroup)
}
