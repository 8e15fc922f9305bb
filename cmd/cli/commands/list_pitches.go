package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

// ListPitchesCmd creates the listPitches command
func ListPitchesCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "listPitches",
		Short: "List the venue's pitch catalog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app.Logger.Debug("listPitches command")

			catalog := app.Cfg.Catalog()
			fmt.Printf("\nFound %d pitches:\n\n", len(catalog))
			for _, p := range catalog {
				flags := ""
				if p.Lights {
					flags += " [lights]"
				}
				if p.Undersized {
					flags += " [undersized]"
				}
				if p.ID == app.Cfg.Venue.SeniorPitch {
					flags += " [senior pitch]"
				}
				fmt.Printf("- %-6s %-6s %-10s priority %d%s\n",
					p.ID, p.Format, p.Location, p.Priority, flags)
			}
			fmt.Println()

			return nil
		},
	}
}
