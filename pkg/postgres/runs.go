package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/cranleighfc/pitchalloc/pkg/db"
)

// InsertRun inserts a new allocation-run record
func (d *DB) InsertRun(ctx context.Context, run *db.Run) error {
	_, err := d.pool.Exec(ctx, `
		INSERT INTO allocation_run (id, created_at, status, objective, wall_time_ms, fixture_count, allocated_count)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, run.ID, run.CreatedAt, run.Status, run.Objective, run.WallTimeMillis, run.FixtureCount, run.AllocatedCount)
	if err != nil {
		return fmt.Errorf("failed to insert allocation run: %w", err)
	}
	return nil
}

// GetLatestRun retrieves the most recent allocation run, or nil if none exist
func (d *DB) GetLatestRun(ctx context.Context) (*db.Run, error) {
	var run db.Run
	err := d.pool.QueryRow(ctx, `
		SELECT id, created_at, status, objective, wall_time_ms, fixture_count, allocated_count
		FROM allocation_run
		ORDER BY created_at DESC
		LIMIT 1
	`).Scan(&run.ID, &run.CreatedAt, &run.Status, &run.Objective, &run.WallTimeMillis, &run.FixtureCount, &run.AllocatedCount)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query latest run: %w", err)
	}
	return &run, nil
}
