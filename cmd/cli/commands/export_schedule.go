package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/cranleighfc/pitchalloc/pkg/core/model"
	"github.com/cranleighfc/pitchalloc/pkg/db"
	"github.com/cranleighfc/pitchalloc/pkg/export"
)

// ExportScheduleCmd creates the exportSchedule command
func ExportScheduleCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "exportSchedule <output_file>",
		Short: "Export the latest saved schedule to a CSV or HTML file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			outPath := args[0]
			format, _ := cmd.Flags().GetString("format")

			if format != "csv" && format != "html" {
				return fmt.Errorf("format must be csv or html, got %q", format)
			}

			app.Logger.Debug("exportSchedule command",
				zap.String("output", outPath),
				zap.String("format", format))

			run, allocations, err := latestRunAllocations(app)
			if err != nil {
				return err
			}

			f, err := os.Create(outPath)
			if err != nil {
				return fmt.Errorf("failed to create %s: %w", outPath, err)
			}
			defer f.Close()

			switch format {
			case "csv":
				err = export.WriteCSV(f, allocations)
			case "html":
				err = export.WriteHTML(f, export.HTMLScheduleInput{
					Title:       "Cranleigh FC Home Fixture Schedule",
					Allocations: allocations,
					Catalog:     app.Cfg.Catalog(),
					Kickoffs: []string{
						app.Cfg.Venue.Kickoffs.Early,
						app.Cfg.Venue.Kickoffs.Mid,
						app.Cfg.Venue.Kickoffs.Adult,
					},
				})
			}
			if err != nil {
				return err
			}
			if err := f.Close(); err != nil {
				return fmt.Errorf("failed to write %s: %w", outPath, err)
			}

			fmt.Printf("\n✅ Exported run %s (%d allocations) to %s\n\n", run.ID, len(allocations), outPath)
			return nil
		},
	}

	cmd.Flags().String("format", "html", "Output format: csv or html")

	return cmd
}

// latestRunAllocations loads the most recent saved run and its allocations
func latestRunAllocations(app *AppContext) (*db.Run, []model.Allocation, error) {
	database, err := app.Database()
	if err != nil {
		return nil, nil, err
	}

	run, err := database.GetLatestRun(app.Ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load latest run: %w", err)
	}
	if run == nil {
		return nil, nil, fmt.Errorf("no saved allocation runs found")
	}

	rows, err := database.GetAllocations(app.Ctx, run.ID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load allocations for run %s: %w", run.ID, err)
	}

	allocations := make([]model.Allocation, len(rows))
	for i, row := range rows {
		allocations[i] = row.ToModel()
	}
	return run, allocations, nil
}
