package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/cranleighfc/pitchalloc/pkg/core/services"
)

// MatchDaysCmd creates the matchDays command
func MatchDaysCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "matchDays <from> <until>",
		Short: "List the season's match days between two dates",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			from, err := time.Parse("2006-01-02", args[0])
			if err != nil {
				return fmt.Errorf("from must be YYYY-MM-DD: %w", err)
			}
			until, err := time.Parse("2006-01-02", args[1])
			if err != nil {
				return fmt.Errorf("until must be YYYY-MM-DD: %w", err)
			}

			app.Logger.Debug("matchDays command",
				zap.String("from", args[0]),
				zap.String("until", args[1]))

			dates, err := services.MatchDays(app.Cfg, from, until)
			if err != nil {
				return err
			}

			fmt.Printf("\nFound %d match days:\n\n", len(dates))
			for i, d := range dates {
				parsed, _ := time.Parse("2006-01-02", d)
				fmt.Printf("  %2d. %s\n", i+1, parsed.Format("2006-01-02 (Monday)"))
			}
			fmt.Println()

			return nil
		},
	}
}
