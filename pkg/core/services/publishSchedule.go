package services

import (
	"fmt"
	"slices"

	"go.uber.org/zap"

	"github.com/cranleighfc/pitchalloc/internal/config"
	"github.com/cranleighfc/pitchalloc/pkg/clients/sheetsclient"
	"github.com/cranleighfc/pitchalloc/pkg/core/model"
)

// SchedulePublisher writes schedule grids to a shared workbook
type SchedulePublisher interface {
	PublishSchedule(spreadsheetID string, grids []sheetsclient.ScheduleGrid) error
}

// PublishSchedule renders the allocations as per-day grids and writes them to
// the configured spreadsheet, one tab per match day
func PublishSchedule(
	allocations []model.Allocation,
	cfg *config.Config,
	logger *zap.Logger,
	publisher SchedulePublisher,
) error {
	if cfg.Publish.ScheduleSheetID == "" {
		return fmt.Errorf("no publish.scheduleSheetID configured")
	}
	if len(allocations) == 0 {
		return fmt.Errorf("nothing to publish: no allocations")
	}

	grids := BuildScheduleGrids(allocations, cfg)
	logger.Debug("Built schedule grids", zap.Int("days", len(grids)))

	if err := publisher.PublishSchedule(cfg.Publish.ScheduleSheetID, grids); err != nil {
		return fmt.Errorf("failed to publish schedule: %w", err)
	}

	logger.Info("Published schedule",
		zap.String("sheet_id", cfg.Publish.ScheduleSheetID),
		zap.Int("days", len(grids)))
	return nil
}

// BuildScheduleGrids groups allocations by date into grids with one row per
// catalog pitch and one column per kickoff time. Days are ordered by date and
// pitches by ID, so the output is stable for a given allocation set.
func BuildScheduleGrids(allocations []model.Allocation, cfg *config.Config) []sheetsclient.ScheduleGrid {
	kickoffs := []string{cfg.Venue.Kickoffs.Early, cfg.Venue.Kickoffs.Mid, cfg.Venue.Kickoffs.Adult}
	kickoffIndex := make(map[string]int, len(kickoffs))
	for i, k := range kickoffs {
		kickoffIndex[k] = i
	}

	catalog := cfg.Catalog()
	slices.SortFunc(catalog, func(a, b model.Pitch) int {
		if a.ID < b.ID {
			return -1
		}
		if a.ID > b.ID {
			return 1
		}
		return 0
	})

	byDate := make(map[string][]model.Allocation)
	var dates []string
	for _, a := range allocations {
		if _, ok := byDate[a.Date]; !ok {
			dates = append(dates, a.Date)
		}
		byDate[a.Date] = append(byDate[a.Date], a)
	}
	slices.Sort(dates)

	grids := make([]sheetsclient.ScheduleGrid, 0, len(dates))
	for _, date := range dates {
		grid := sheetsclient.ScheduleGrid{Date: date, Kickoffs: kickoffs}

		entries := make(map[string][]string, len(catalog))
		for _, pitch := range catalog {
			entries[pitch.ID] = make([]string, len(kickoffs))
		}
		for _, a := range byDate[date] {
			col, ok := kickoffIndex[a.Time]
			if !ok {
				continue
			}
			entries[a.Pitch][col] = fmt.Sprintf("%s (%s)", a.Team, a.AgeGroup)
		}

		for _, pitch := range catalog {
			grid.Rows = append(grid.Rows, sheetsclient.ScheduleGridRow{
				Pitch:   pitch.ID,
				Entries: entries[pitch.ID],
			})
		}
		grids = append(grids, grid)
	}

	return grids
}
