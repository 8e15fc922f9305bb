package model

// Format is the play format a pitch is marked out for and an age group plays
type Format string

const (
	FormatElevenASide Format = "11v11"
	FormatNineASide   Format = "9v9"
	FormatSevenASide  Format = "7v7"
	FormatFiveASide   Format = "5v5"
)

func (f Format) IsValid() bool {
	switch f {
	case FormatElevenASide, FormatNineASide, FormatSevenASide, FormatFiveASide:
		return true
	}
	return false
}

// IsTopTier reports whether this is the top-tier format, which carries the
// third (adult-only) kickoff of the day
func (f Format) IsTopTier() bool {
	return f == FormatElevenASide
}

// Location classifies where a pitch sits in the venue hierarchy
type Location string

const (
	// LocationPrimary is the club's main ground
	LocationPrimary Location = "primary"
	// LocationSecondary is the club's second site
	LocationSecondary Location = "secondary"
	// LocationOverflow pitches are last-resort capacity and penalized in the objective
	LocationOverflow Location = "overflow"
)

func (l Location) IsValid() bool {
	return l == LocationPrimary || l == LocationSecondary || l == LocationOverflow
}

// Pitch is a single bookable pitch in the venue catalog
type Pitch struct {
	ID       string
	Format   Format
	Lights   bool
	Location Location

	// Priority is the access-priority tier (1 = book first)
	Priority int

	// Undersized marks a pitch below full dimensions for its format.
	// Younger age groups of the format are steered toward it.
	Undersized bool
}

// Fixture is one scheduled match for one team on one date.
// A team can appear on several dates; each (team, date) pair is a distinct
// fixture identified by ID.
type Fixture struct {
	ID       string
	Team     string
	AgeGroup string
	Format   Format
	Date     string

	// OriginalTime is the kickoff from the fixture list
	OriginalTime string

	// PreferredTime equals OriginalTime except for cup fixtures, which
	// prefer the early kickoff
	PreferredTime string

	// Priority is the age-based priority rank (older groups rank higher)
	Priority int

	// SeniorPriority ranks priority senior teams for the senior pitch;
	// zero for everyone else
	SeniorPriority int

	IsCup bool

	// PreferredPitch is set only for adult age groups (the senior pitch)
	PreferredPitch string
}

// FixtureID builds the unique fixture identifier from team and date
func FixtureID(team, date string) string {
	return team + "_" + date
}

// Slot is a bookable (date, time, pitch) triple
type Slot struct {
	Date  string
	Time  string
	Pitch string
}

// Key returns the exact-slot identity used for uniqueness checks
func (s Slot) Key() string {
	return s.Date + "|" + s.Time + "|" + s.Pitch
}

// Allocation is one fixture placed into one slot
type Allocation struct {
	FixtureID             string
	Team                  string
	Date                  string
	Time                  string
	Pitch                 string
	AgeGroup              string
	Priority              int
	MatchedPreferredTime  bool
	MatchedPreferredPitch bool
	IsCup                 bool
}
