package commands

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/cranleighfc/pitchalloc/pkg/core/services"
	"github.com/cranleighfc/pitchalloc/pkg/db"
	"github.com/cranleighfc/pitchalloc/pkg/export"
	"github.com/cranleighfc/pitchalloc/pkg/ingest"
)

// AllocateCmd creates the allocate command
func AllocateCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "allocate",
		Short: "Allocate fixtures to pitches and kickoff times",
		Long:  "Run the allocation engine over a fixtures CSV, assigning each fixture a pitch and kickoff time",
		RunE: func(cmd *cobra.Command, args []string) error {
			fixturesPath, _ := cmd.Flags().GetString("fixtures")
			dryRun, _ := cmd.Flags().GetBool("dry-run")
			csvOut, _ := cmd.Flags().GetString("csv-out")
			htmlOut, _ := cmd.Flags().GetString("html-out")
			publish, _ := cmd.Flags().GetBool("publish")

			app.Logger.Debug("allocate command",
				zap.String("fixtures", fixturesPath),
				zap.Bool("dry_run", dryRun))

			records, err := ingest.ReadRecordsFromFile(fixturesPath)
			if err != nil {
				return fmt.Errorf("failed to read fixtures: %w", err)
			}

			// Persist unless there is no database configured or this is a
			// dry run
			var store db.RunStore
			if !dryRun && app.Cfg.DatabaseURL != "" {
				database, err := app.Database()
				if err != nil {
					return err
				}
				store = database
			}

			result, err := services.AllocateFixtures(app.Ctx, records, app.Cfg, app.Logger, store, dryRun)
			if err != nil {
				return fmt.Errorf("allocation failed: %w", err)
			}

			// Warn about fixtures scheduled outside the season calendar
			offCalendar, err := services.OffCalendarDates(app.Cfg, result.Fixtures)
			if err != nil {
				app.Logger.Warn("Could not check season calendar", zap.Error(err))
			} else if len(offCalendar) > 0 {
				fmt.Printf("\n⚠️  Fixture dates outside the season calendar: %s\n", strings.Join(offCalendar, ", "))
			}

			// Display header
			fmt.Printf("\n🎯 Allocation Results\n\n")
			fmt.Printf("Status:     %s\n", result.Status)
			fmt.Printf("Objective:  %d\n", result.Objective)
			fmt.Printf("Wall Time:  %s\n", result.WallTime.Round(time.Millisecond))
			fmt.Printf("Allocated:  %d/%d fixtures\n", result.AllocatedCount(), len(result.Fixtures))
			if dryRun {
				fmt.Printf("Mode:       🧪 DRY RUN (not saved)\n")
			} else if result.RunID != "" {
				fmt.Printf("Run ID:     %s\n", result.RunID)
			}
			fmt.Println()

			if !result.Status.IsSolved() {
				fmt.Println("❌ No allocation produced.")
				return nil
			}

			printAllocationTable(result)

			// Display unallocated fixtures if any
			if result.Diagnostics != nil && len(result.Diagnostics.Unallocated) > 0 {
				fmt.Printf("⚠️  Unallocated Fixtures (%d):\n", len(result.Diagnostics.Unallocated))
				for _, u := range result.Diagnostics.Unallocated {
					fmt.Printf("  • %s on %s: %s\n", u.Team, u.Date, u.Reason())
				}
				fmt.Println()
			}

			if csvOut != "" {
				if err := writeCSVFile(csvOut, result); err != nil {
					return err
				}
				fmt.Printf("📄 Schedule CSV written to %s\n", csvOut)
			}

			if htmlOut != "" {
				if err := writeHTMLFile(htmlOut, app, result); err != nil {
					return err
				}
				fmt.Printf("📄 Schedule HTML written to %s\n", htmlOut)
			}

			if publish {
				client, err := app.SheetsClient()
				if err != nil {
					return err
				}
				if err := services.PublishSchedule(result.Allocations, app.Cfg, app.Logger, client); err != nil {
					return err
				}
				fmt.Println("📤 Schedule published to Google Sheets.")
			}

			if dryRun {
				fmt.Println("💡 This was a dry run. Use without --dry-run to save the allocation.")
			} else if result.RunID != "" {
				fmt.Println("✅ Allocation has been saved to the database.")
			}

			return nil
		},
	}

	cmd.Flags().String("fixtures", "", "Path to the fixtures CSV file")
	cmd.MarkFlagRequired("fixtures")
	cmd.Flags().Bool("dry-run", false, "Run without saving to database")
	cmd.Flags().String("csv-out", "", "Write the allocated schedule to a CSV file")
	cmd.Flags().String("html-out", "", "Write the allocated schedule to an HTML file")
	cmd.Flags().Bool("publish", false, "Publish the schedule to the configured Google Sheet")

	return cmd
}

// printAllocationTable prints the allocated fixtures grouped by date
func printAllocationTable(result *services.AllocateFixturesResult) {
	const (
		colorReset = "\033[0m"
		colorGreen = "\033[32m"
		colorBold  = "\033[1m"
	)

	fmt.Printf("📅 Allocated Fixtures:\n\n")

	teamColWidth := 20
	for _, a := range result.Allocations {
		if len(a.Team) > teamColWidth {
			teamColWidth = len(a.Team)
		}
	}
	teamColWidth += 2

	fmt.Printf("%s%-12s  %-7s  %-8s  %-*s  %-9s  %s%s\n",
		colorBold, "Date", "Time", "Pitch", teamColWidth, "Team", "Age Group", "Notes", colorReset)
	fmt.Printf("%s  %s  %s  %s  %s  %s\n",
		strings.Repeat("-", 12),
		strings.Repeat("-", 7),
		strings.Repeat("-", 8),
		strings.Repeat("-", teamColWidth),
		strings.Repeat("-", 9),
		strings.Repeat("-", 5))

	for _, a := range result.Allocations {
		var notes []string
		if a.IsCup {
			notes = append(notes, "cup")
		}
		if a.MatchedPreferredTime {
			notes = append(notes, "pref time")
		}
		if a.MatchedPreferredPitch {
			notes = append(notes, "pref pitch")
		}
		noteStr := strings.Join(notes, ", ")
		if noteStr != "" {
			noteStr = colorGreen + noteStr + colorReset
		}

		fmt.Printf("%-12s  %-7s  %-8s  %-*s  %-9s  %s\n",
			a.Date, a.Time, a.Pitch, teamColWidth, a.Team, a.AgeGroup, noteStr)
	}
	fmt.Println()
}

func writeCSVFile(path string, result *services.AllocateFixturesResult) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer f.Close()

	if err := export.WriteCSV(f, result.Allocations); err != nil {
		return err
	}
	return f.Close()
}

func writeHTMLFile(path string, app *AppContext, result *services.AllocateFixturesResult) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer f.Close()

	input := export.HTMLScheduleInput{
		Title:       "Cranleigh FC Home Fixture Schedule",
		Allocations: result.Allocations,
		Catalog:     app.Cfg.Catalog(),
		Kickoffs: []string{
			app.Cfg.Venue.Kickoffs.Early,
			app.Cfg.Venue.Kickoffs.Mid,
			app.Cfg.Venue.Kickoffs.Adult,
		},
	}
	if err := export.WriteHTML(f, input); err != nil {
		return err
	}
	return f.Close()
}
