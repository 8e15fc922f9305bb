package postgres

import (
	"context"
	"fmt"

	"github.com/cranleighfc/pitchalloc/pkg/db"
)

// GetAllocations retrieves the allocation records for a run
func (d *DB) GetAllocations(ctx context.Context, runID string) ([]db.Allocation, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT id, run_id, fixture_id, team, match_date, kickoff_time, pitch, age_group,
		       priority, matched_preferred_time, matched_preferred_pitch, is_cup
		FROM allocation
		WHERE run_id = $1
		ORDER BY match_date, kickoff_time, pitch
	`, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to query allocations: %w", err)
	}
	defer rows.Close()

	var allocations []db.Allocation
	for rows.Next() {
		var a db.Allocation
		if err := rows.Scan(&a.ID, &a.RunID, &a.FixtureID, &a.Team, &a.MatchDate, &a.KickoffTime,
			&a.Pitch, &a.AgeGroup, &a.Priority, &a.MatchedPreferredTime, &a.MatchedPreferredPitch, &a.IsCup); err != nil {
			return nil, fmt.Errorf("failed to scan allocation: %w", err)
		}
		allocations = append(allocations, a)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating allocations: %w", err)
	}

	return allocations, nil
}

// InsertAllocations inserts allocation records in a single transaction
func (d *DB) InsertAllocations(ctx context.Context, allocations []db.Allocation) error {
	if len(allocations) == 0 {
		return nil
	}

	tx, err := d.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	for _, a := range allocations {
		_, err := tx.Exec(ctx, `
			INSERT INTO allocation (id, run_id, fixture_id, team, match_date, kickoff_time, pitch, age_group,
			                        priority, matched_preferred_time, matched_preferred_pitch, is_cup)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		`, a.ID, a.RunID, a.FixtureID, a.Team, a.MatchDate, a.KickoffTime, a.Pitch, a.AgeGroup,
			a.Priority, a.MatchedPreferredTime, a.MatchedPreferredPitch, a.IsCup)
		if err != nil {
			return fmt.Errorf("failed to insert allocation: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}
