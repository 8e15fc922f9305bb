package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cranleighfc/pitchalloc/pkg/core/services"
)

// PublishScheduleCmd creates the publishSchedule command
func PublishScheduleCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "publishSchedule",
		Short: "Publish the latest saved schedule to the club's Google Sheet",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app.Logger.Debug("publishSchedule command")

			run, allocations, err := latestRunAllocations(app)
			if err != nil {
				return err
			}

			client, err := app.SheetsClient()
			if err != nil {
				return err
			}

			if err := services.PublishSchedule(allocations, app.Cfg, app.Logger, client); err != nil {
				return err
			}

			fmt.Printf("\n✅ Published run %s (%d allocations) to the schedule sheet.\n\n", run.ID, len(allocations))
			return nil
		},
	}
}
