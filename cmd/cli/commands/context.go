package commands

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/cranleighfc/pitchalloc/internal/config"
	"github.com/cranleighfc/pitchalloc/pkg/clients/sheetsclient"
	"github.com/cranleighfc/pitchalloc/pkg/postgres"
)

// AppContext holds the application dependencies shared across all commands.
// The database and sheets client are dialled on first use: most commands need
// neither, and the sheets client triggers an interactive OAuth flow.
type AppContext struct {
	Cfg    *config.Config
	Logger *zap.Logger
	Ctx    context.Context
	Env    string

	database     *postgres.DB
	sheetsClient *sheetsclient.Client
}

// Database returns the run store, connecting and migrating on first call.
// Errors if no databaseURL is configured.
func (a *AppContext) Database() (*postgres.DB, error) {
	if a.database != nil {
		return a.database, nil
	}
	if a.Cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("no databaseURL configured")
	}

	a.Logger.Info("Connecting to database")
	database, err := postgres.NewDB(a.Ctx, a.Cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := database.RunMigrations(a.Ctx); err != nil {
		database.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	a.database = database
	return a.database, nil
}

// SheetsClient returns the Google Sheets client, running the OAuth flow on
// first call
func (a *AppContext) SheetsClient() (*sheetsclient.Client, error) {
	if a.sheetsClient != nil {
		return a.sheetsClient, nil
	}

	a.Logger.Info("Loading OAuth client configuration")
	oauthCfg, err := config.LoadOAuthClientWithEnv(a.Env)
	if err != nil {
		return nil, fmt.Errorf("failed to load OAuth client config: %w", err)
	}

	a.Logger.Info("Initializing sheets client")
	client, err := sheetsclient.NewClient(a.Ctx, oauthCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheets client: %w", err)
	}

	a.sheetsClient = client
	return a.sheetsClient, nil
}

// Close releases any connections the context opened
func (a *AppContext) Close() {
	if a.database != nil {
		a.database.Close()
		a.database = nil
	}
}
