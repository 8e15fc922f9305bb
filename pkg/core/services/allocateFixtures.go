package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/cranleighfc/pitchalloc/internal/config"
	"github.com/cranleighfc/pitchalloc/pkg/core/allocator"
	"github.com/cranleighfc/pitchalloc/pkg/core/model"
	"github.com/cranleighfc/pitchalloc/pkg/db"
	"github.com/cranleighfc/pitchalloc/pkg/ingest"
)

// AllocateFixturesResult contains the allocation results
type AllocateFixturesResult struct {
	RunID       string
	Fixtures    []model.Fixture
	Allocations []model.Allocation
	Diagnostics *allocator.Diagnostics

	// Raw solver observability
	Status    allocator.Status
	Objective int
	WallTime  time.Duration
}

// AllocatedCount returns how many fixtures received a slot
func (r *AllocateFixturesResult) AllocatedCount() int {
	return len(r.Allocations)
}

// AllocateFixtures runs the allocation engine over raw fixture records:
// validate and build fixtures, generate slots, filter eligibility, build and
// solve the model, then diagnose whatever was left unplaced.
//
// store may be nil (or dryRun true) to skip persistence. Solver non-success
// is not an error: the result carries the raw status and no allocations.
func AllocateFixtures(
	ctx context.Context,
	records []ingest.Record,
	cfg *config.Config,
	logger *zap.Logger,
	store db.RunStore,
	dryRun bool,
) (*AllocateFixturesResult, error) {
	logger.Debug("Starting allocateFixtures",
		zap.Int("records", len(records)),
		zap.Bool("dry_run", dryRun))

	// Step 1: Validate records and build fixtures
	fixtures, validationErrs := ingest.BuildFixtures(records, cfg)
	if len(validationErrs) > 0 {
		lines := make([]string, len(validationErrs))
		for i, verr := range validationErrs {
			lines[i] = verr.Error()
		}
		return nil, fmt.Errorf("fixture validation failed (%d records):\n  %s",
			len(validationErrs), strings.Join(lines, "\n  "))
	}
	logger.Debug("Built fixtures", zap.Int("count", len(fixtures)))

	// Step 2: Expand the venue catalog into slots for the fixture dates
	slotsByDate := allocator.GenerateSlots(allocator.GenerateSlotsInput{
		Dates:   fixtureDates(fixtures),
		Catalog: cfg.Catalog(),
		Rules:   cfg.Rules(),
	})
	totalSlots := 0
	for _, slots := range slotsByDate {
		totalSlots += len(slots)
	}
	logger.Debug("Generated slots",
		zap.Int("dates", len(slotsByDate)),
		zap.Int("slots", totalSlots))

	// Step 3: Hard feasibility filter
	elig := allocator.BuildEligibility(allocator.BuildEligibilityInput{
		Fixtures:    fixtures,
		SlotsByDate: slotsByDate,
		Catalog:     cfg.CatalogMap(),
		Rules:       cfg.Rules(),
	})

	// Step 4: Assemble the optimization model
	m, err := allocator.BuildModel(allocator.BuildModelInput{
		Fixtures:    fixtures,
		Eligibility: elig,
		Catalog:     cfg.CatalogMap(),
		Rules:       cfg.Rules(),
		Objective:   cfg.Objective(),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to build model: %w", err)
	}
	logger.Debug("Built model",
		zap.Int("variables", len(m.Vars)),
		zap.Int("slots", len(m.Slots)))

	// Step 5: Solve under the configured budget
	opts := cfg.SolveOptions()
	logger.Info("Solving",
		zap.Duration("timeout", opts.Timeout),
		zap.Int("workers", opts.Workers))

	sol, err := allocator.Solve(ctx, m, opts)
	if err != nil {
		return nil, fmt.Errorf("solver rejected model: %w", err)
	}
	logger.Info("Solver finished",
		zap.String("status", string(sol.Status)),
		zap.Int("objective", sol.Objective),
		zap.Duration("wall_time", sol.WallTime))

	result := &AllocateFixturesResult{
		Fixtures:  fixtures,
		Status:    sol.Status,
		Objective: sol.Objective,
		WallTime:  sol.WallTime,
	}

	// Non-success is a normal negative result, reported with the raw status
	if !sol.Status.IsSolved() {
		logger.Warn("No allocation produced", zap.String("status", string(sol.Status)))
		return result, nil
	}

	// Step 6: Extract the assignment and diagnose the remainder
	result.Allocations = m.Allocations(sol)

	diag, err := allocator.Diagnose(m, sol, elig)
	if err != nil {
		return nil, fmt.Errorf("solution failed invariant check: %w", err)
	}
	result.Diagnostics = diag

	logger.Info("Allocation complete",
		zap.Int("allocated", len(result.Allocations)),
		zap.Int("fixtures", len(fixtures)),
		zap.Int("impossible", diag.ImpossibleCount()),
		zap.Int("capacity_blocked", diag.CapacityBlockedCount()))

	// Step 7: Persist the run
	if store == nil || dryRun {
		logger.Debug("Skipping persistence", zap.Bool("dry_run", dryRun))
		return result, nil
	}

	result.RunID = uuid.NewString()
	if err := persistRun(ctx, store, result); err != nil {
		return nil, err
	}
	logger.Info("Saved allocation run", zap.String("run_id", result.RunID))

	return result, nil
}

// persistRun writes the run header and its allocation rows
func persistRun(ctx context.Context, store db.RunStore, result *AllocateFixturesResult) error {
	run := &db.Run{
		ID:             result.RunID,
		CreatedAt:      time.Now().UTC(),
		Status:         string(result.Status),
		Objective:      result.Objective,
		WallTimeMillis: result.WallTime.Milliseconds(),
		FixtureCount:   len(result.Fixtures),
		AllocatedCount: len(result.Allocations),
	}
	if err := store.InsertRun(ctx, run); err != nil {
		return fmt.Errorf("failed to save run: %w", err)
	}

	rows := make([]db.Allocation, len(result.Allocations))
	for i, a := range result.Allocations {
		rows[i] = db.Allocation{
			ID:                    uuid.NewString(),
			RunID:                 result.RunID,
			FixtureID:             a.FixtureID,
			Team:                  a.Team,
			MatchDate:             a.Date,
			KickoffTime:           a.Time,
			Pitch:                 a.Pitch,
			AgeGroup:              a.AgeGroup,
			Priority:              a.Priority,
			MatchedPreferredTime:  a.MatchedPreferredTime,
			MatchedPreferredPitch: a.MatchedPreferredPitch,
			IsCup:                 a.IsCup,
		}
	}
	if err := store.InsertAllocations(ctx, rows); err != nil {
		return fmt.Errorf("failed to save allocations: %w", err)
	}

	return nil
}

// fixtureDates returns the distinct dates present in the fixture set
func fixtureDates(fixtures []model.Fixture) []string {
	seen := make(map[string]bool)
	var dates []string
	for _, f := range fixtures {
		if !seen[f.Date] {
			seen[f.Date] = true
			dates = append(dates, f.Date)
		}
	}
	return dates
}
