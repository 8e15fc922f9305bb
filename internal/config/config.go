package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/teambition/rrule-go"
	"gopkg.in/yaml.v3"

	"github.com/cranleighfc/pitchalloc/pkg/core/allocator"
	"github.com/cranleighfc/pitchalloc/pkg/core/model"
)

// PitchConfig describes one pitch in the venue catalog
type PitchConfig struct {
	ID         string `yaml:"id" validate:"required"`
	Format     string `yaml:"format" validate:"required"`
	Lights     bool   `yaml:"lights"`
	Location   string `yaml:"location" validate:"required"`
	Priority   int    `yaml:"priority" validate:"min=1"`
	Undersized bool   `yaml:"undersized,omitempty"`
}

// KickoffConfig holds the venue's three daily kickoff times
type KickoffConfig struct {
	Early string `yaml:"early" validate:"required"`
	Mid   string `yaml:"mid" validate:"required"`
	Adult string `yaml:"adult" validate:"required"`
}

// VenueConfig is the static venue description
type VenueConfig struct {
	Pitches        []PitchConfig       `yaml:"pitches" validate:"required,min=1,dive"`
	Kickoffs       KickoffConfig       `yaml:"kickoffs" validate:"required"`
	SeniorPitch    string              `yaml:"seniorPitch,omitempty"`
	PremierPitches map[string][]string `yaml:"premierPitches,omitempty"`
}

// AgeGroupConfig holds the age-group classification tables
type AgeGroupConfig struct {
	// Formats maps age group to required play format
	Formats map[string]string `yaml:"formats" validate:"required,min=1"`

	// Priority is the age-based allocation priority rank
	Priority map[string]int `yaml:"priority" validate:"required,min=1"`

	// Adult lists the age groups restricted to the adult kickoff
	Adult []string `yaml:"adult" validate:"required,min=1"`

	// UndersizedPitchPriority favours younger top-format groups on an
	// undersized pitch; groups absent from the table get no bonus
	UndersizedPitchPriority map[string]int `yaml:"undersizedPitchPriority,omitempty"`
}

// WeightsConfig holds the objective weight constants
type WeightsConfig struct {
	AllocationReward           int  `yaml:"allocationReward" validate:"min=1"`
	BackToBackPenalty          int  `yaml:"backToBackPenalty" validate:"min=0"`
	AgePriority                int  `yaml:"agePriority" validate:"min=0"`
	OverflowPenalty            int  `yaml:"overflowPenalty" validate:"min=0"`
	CupEarlyKickoff            int  `yaml:"cupEarlyKickoff" validate:"min=0"`
	CupPremierPitchTop         int  `yaml:"cupPremierPitchTop" validate:"min=0"`
	CupPremierPitch            int  `yaml:"cupPremierPitch" validate:"min=0"`
	UndersizedPitch            int  `yaml:"undersizedPitch" validate:"min=0"`
	SeniorPitch                int  `yaml:"seniorPitch" validate:"min=0"`
	PreferredTime              int  `yaml:"preferredTime" validate:"min=0"`
	PenalizeOverflowBackToBack bool `yaml:"penalizeOverflowBackToBack,omitempty"`
}

// SolverConfig bounds the optimizing search
type SolverConfig struct {
	TimeoutSeconds int `yaml:"timeoutSeconds" validate:"min=1"`
	Workers        int `yaml:"workers" validate:"min=1"`
}

// SeasonConfig describes the season's match-day calendar
type SeasonConfig struct {
	// RRule is an RFC 5545 recurrence rule for home match days
	// (e.g. weekly on Sundays)
	RRule string `yaml:"rrule,omitempty"`
}

// PublishConfig holds the Google Sheets publication target
type PublishConfig struct {
	ScheduleSheetID string `yaml:"scheduleSheetID,omitempty"`
}

// Config represents the application configuration
type Config struct {
	Venue VenueConfig `yaml:"venue" validate:"required"`

	// Teams maps team name to age group
	Teams map[string]string `yaml:"teams" validate:"required,min=1"`

	AgeGroups AgeGroupConfig `yaml:"ageGroups" validate:"required"`

	// SeniorTeamPriority ranks priority senior teams for the senior pitch
	SeniorTeamPriority map[string]int `yaml:"seniorTeamPriority,omitempty"`

	Weights WeightsConfig `yaml:"weights" validate:"required"`
	Solver  SolverConfig  `yaml:"solver" validate:"required"`
	Season  SeasonConfig  `yaml:"season,omitempty"`

	DatabaseURL string        `yaml:"databaseURL,omitempty"`
	Publish     PublishConfig `yaml:"publish,omitempty"`
}

var validate *validator.Validate

func init() {
	validate = validator.New()
}

// Load loads and validates the configuration from pitchalloc.yaml.
// It looks for the config file in the current directory first, then in the
// user's home directory.
func Load() (*Config, error) {
	configPath, err := findConfigFile()
	if err != nil {
		return nil, fmt.Errorf("failed to find config file: %w", err)
	}

	return LoadFromPath(configPath)
}

// LoadFromPath loads and validates the configuration from a specific path
func LoadFromPath(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := Validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate validates the configuration struct plus the cross-table rules the
// tags cannot express: enum values, table coverage, season rrule syntax, and
// the objective dominance contract
func Validate(cfg *Config) error {
	if err := validate.Struct(cfg); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}

	pitchIDs := make(map[string]bool, len(cfg.Venue.Pitches))
	for i, p := range cfg.Venue.Pitches {
		if !model.Format(p.Format).IsValid() {
			return fmt.Errorf("pitch %q has unknown format %q", p.ID, p.Format)
		}
		if !model.Location(p.Location).IsValid() {
			return fmt.Errorf("pitch %q has unknown location %q", p.ID, p.Location)
		}
		if pitchIDs[p.ID] {
			return fmt.Errorf("duplicate pitch ID %q at venue.pitches[%d]", p.ID, i)
		}
		pitchIDs[p.ID] = true
	}

	if cfg.Venue.SeniorPitch != "" && !pitchIDs[cfg.Venue.SeniorPitch] {
		return fmt.Errorf("seniorPitch %q is not in the venue catalog", cfg.Venue.SeniorPitch)
	}

	for fmtName := range cfg.Venue.PremierPitches {
		if !model.Format(fmtName).IsValid() {
			return fmt.Errorf("premierPitches has unknown format %q", fmtName)
		}
		for _, id := range cfg.Venue.PremierPitches[fmtName] {
			if !pitchIDs[id] {
				return fmt.Errorf("premier pitch %q is not in the venue catalog", id)
			}
		}
	}

	for age, f := range cfg.AgeGroups.Formats {
		if !model.Format(f).IsValid() {
			return fmt.Errorf("age group %q has unknown format %q", age, f)
		}
	}

	for team, age := range cfg.Teams {
		if _, ok := cfg.AgeGroups.Formats[age]; !ok {
			return fmt.Errorf("team %q has age group %q with no format mapping", team, age)
		}
		if _, ok := cfg.AgeGroups.Priority[age]; !ok {
			return fmt.Errorf("team %q has age group %q with no priority rank", team, age)
		}
	}

	for _, adult := range cfg.AgeGroups.Adult {
		if _, ok := cfg.AgeGroups.Formats[adult]; !ok {
			return fmt.Errorf("adult age group %q has no format mapping", adult)
		}
	}

	if cfg.Season.RRule != "" {
		if _, err := rrule.StrToRRule(cfg.Season.RRule); err != nil {
			return fmt.Errorf("invalid season rrule: %w", err)
		}
	}

	if err := cfg.Objective().Validate(cfg.maxAgePriority(), cfg.maxSeniorPriority()); err != nil {
		return fmt.Errorf("objective weights: %w", err)
	}

	return nil
}

// Catalog returns the venue catalog as model pitches
func (c *Config) Catalog() []model.Pitch {
	pitches := make([]model.Pitch, len(c.Venue.Pitches))
	for i, p := range c.Venue.Pitches {
		pitches[i] = model.Pitch{
			ID:         p.ID,
			Format:     model.Format(p.Format),
			Lights:     p.Lights,
			Location:   model.Location(p.Location),
			Priority:   p.Priority,
			Undersized: p.Undersized,
		}
	}
	return pitches
}

// CatalogMap returns the venue catalog keyed by pitch ID
func (c *Config) CatalogMap() map[string]model.Pitch {
	catalog := make(map[string]model.Pitch, len(c.Venue.Pitches))
	for _, p := range c.Catalog() {
		catalog[p.ID] = p
	}
	return catalog
}

// Rules returns the hard eligibility rules
func (c *Config) Rules() allocator.Rules {
	return allocator.Rules{
		EarlyKickoff:   c.Venue.Kickoffs.Early,
		MidKickoff:     c.Venue.Kickoffs.Mid,
		AdultKickoff:   c.Venue.Kickoffs.Adult,
		AdultAgeGroups: c.AgeGroups.Adult,
		SeniorPitch:    c.Venue.SeniorPitch,
	}
}

// Objective returns the objective composer
func (c *Config) Objective() allocator.Objective {
	premier := make(map[model.Format][]string, len(c.Venue.PremierPitches))
	for f, ids := range c.Venue.PremierPitches {
		premier[model.Format(f)] = ids
	}

	return allocator.Objective{
		Weights: allocator.Weights{
			AllocationReward:           c.Weights.AllocationReward,
			BackToBackPenalty:          c.Weights.BackToBackPenalty,
			AgePriority:                c.Weights.AgePriority,
			OverflowPenalty:            c.Weights.OverflowPenalty,
			CupEarlyKickoff:            c.Weights.CupEarlyKickoff,
			CupPremierPitchTop:         c.Weights.CupPremierPitchTop,
			CupPremierPitch:            c.Weights.CupPremierPitch,
			UndersizedPitch:            c.Weights.UndersizedPitch,
			SeniorPitch:                c.Weights.SeniorPitch,
			PreferredTime:              c.Weights.PreferredTime,
			PenalizeOverflowBackToBack: c.Weights.PenalizeOverflowBackToBack,
		},
		UndersizedAgePriority: c.AgeGroups.UndersizedPitchPriority,
		PremierPitches:        premier,
	}
}

// SolveOptions returns the solver budget
func (c *Config) SolveOptions() allocator.SolveOptions {
	return allocator.SolveOptions{
		Timeout: time.Duration(c.Solver.TimeoutSeconds) * time.Second,
		Workers: c.Solver.Workers,
	}
}

func (c *Config) maxAgePriority() int {
	maxP := 0
	for _, p := range c.AgeGroups.Priority {
		maxP = max(maxP, p)
	}
	return maxP
}

func (c *Config) maxSeniorPriority() int {
	maxP := 0
	for _, p := range c.SeniorTeamPriority {
		maxP = max(maxP, p)
	}
	return maxP
}

// findConfigFile searches for pitchalloc.yaml in current directory and home directory
func findConfigFile() (string, error) {
	configFileName := "pitchalloc.yaml"

	// Check current directory
	if _, err := os.Stat(configFileName); err == nil {
		return configFileName, nil
	}

	// Check home directory
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}

	homeConfigPath := filepath.Join(homeDir, configFileName)
	if _, err := os.Stat(homeConfigPath); err == nil {
		return homeConfigPath, nil
	}

	return "", fmt.Errorf("config file not found in current directory or home directory")
}
