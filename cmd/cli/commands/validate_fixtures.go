package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/cranleighfc/pitchalloc/pkg/ingest"
)

// ValidateFixturesCmd creates the validateFixtures command
func ValidateFixturesCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "validateFixtures <fixtures_csv>",
		Short: "Validate a fixtures CSV without running the allocator",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			app.Logger.Debug("validateFixtures command", zap.String("path", path))

			records, err := ingest.ReadRecordsFromFile(path)
			if err != nil {
				return fmt.Errorf("failed to read fixtures: %w", err)
			}

			fixtures, validationErrs := ingest.BuildFixtures(records, app.Cfg)

			if len(validationErrs) > 0 {
				fmt.Printf("\n❌ Found %d problems in %s:\n\n", len(validationErrs), path)
				for _, verr := range validationErrs {
					fmt.Printf("  • %s\n", verr.Error())
				}
				fmt.Println()
				return fmt.Errorf("validation failed")
			}

			cupCount := 0
			for _, f := range fixtures {
				if f.IsCup {
					cupCount++
				}
			}

			fmt.Printf("\n✅ %s is valid!\n\n", path)
			fmt.Printf("Records:  %d\n", len(records))
			fmt.Printf("Fixtures: %d (%d cup)\n\n", len(fixtures), cupCount)

			return nil
		},
	}
}
