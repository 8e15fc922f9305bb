package db

import "context"

// RunStore defines the interface for allocation-run database operations
type RunStore interface {
	InsertRun(ctx context.Context, run *Run) error
	InsertAllocations(ctx context.Context, allocations []Allocation) error
	GetLatestRun(ctx context.Context) (*Run, error)
	GetAllocations(ctx context.Context, runID string) ([]Allocation, error)
}
