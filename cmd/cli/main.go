package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/cranleighfc/pitchalloc/cmd/cli/commands"
	"github.com/cranleighfc/pitchalloc/internal/config"
	"github.com/cranleighfc/pitchalloc/pkg/utils/logging"
)

var (
	env string
	app *commands.AppContext
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "pitchalloc",
		Short: "Cranleigh FC pitch allocator - Assign fixtures to pitches and kickoff times",
		Long:  `A CLI tool for allocating home fixtures to pitches and kickoff slots, exporting the schedule, and publishing it to the club's Google Sheet.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initApp()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if app != nil {
				app.Close()
				if app.Logger != nil {
					app.Logger.Sync()
				}
			}
		},
	}

	// Add persistent environment flag
	rootCmd.PersistentFlags().StringVarP(&env, "env", "e", "", "Environment (test, prod, etc.)")

	// Add all commands
	rootCmd.AddCommand(commands.AllocateCmd(appRef()))
	rootCmd.AddCommand(commands.ValidateFixturesCmd(appRef()))
	rootCmd.AddCommand(commands.ListPitchesCmd(appRef()))
	rootCmd.AddCommand(commands.MatchDaysCmd(appRef()))
	rootCmd.AddCommand(commands.ExportScheduleCmd(appRef()))
	rootCmd.AddCommand(commands.PublishScheduleCmd(appRef()))

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// appRef returns a stable pointer the commands can capture before initApp
// has populated it
func appRef() *commands.AppContext {
	if app == nil {
		app = &commands.AppContext{}
	}
	return app
}

// initApp sets up the logger and loads configuration
func initApp() error {
	appRef()
	app.Ctx = context.Background()
	app.Env = env

	var err error
	app.Logger, err = logging.InitLogger(env)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	app.Logger.Info("Starting application", zap.String("environment", env))

	app.Logger.Info("Loading configuration")
	app.Cfg, err = config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	app.Logger.Debug("Configuration loaded successfully")

	return nil
}
