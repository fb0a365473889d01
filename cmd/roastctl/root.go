package main

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"hiremenot/internal/roasts"
	"hiremenot/internal/shared/config"
	"hiremenot/internal/shared/storage/db"
	"hiremenot/internal/shared/telemetry"
)

const app = "roastctl"

// Actual version can be specified in build command.
var version = "unknown"

func newRootCmd() *cobra.Command {
	var debug bool

	root := &cobra.Command{
		Use:           app,
		Short:         "roastctl roasts resumes from the terminal and inspects stored roasts",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			level := "warn"
			if debug {
				level = "debug"
			}
			telemetry.SetLevel(level)
		},
	}
	root.PersistentFlags().BoolVarP(&debug, "debug", "d", false, "verbose/debug output")

	root.AddCommand(
		newRoastCmd(),
		newTopCmd(),
		newRecentCmd(),
		&cobra.Command{
			Use:   "version",
			Short: "Print the version",
			Run: func(cmd *cobra.Command, _ []string) {
				fmt.Fprintf(cmd.OutOrStdout(), "%s version: %s\n", app, version)
			},
		},
	)
	return root
}

// openRepo returns a Postgres repo when DATABASE_URL is set, otherwise an in-memory one.
// The returned close func is always safe to call.
func openRepo(ctx context.Context, cfg config.Config, requireDB bool) (roasts.Repo, func(), error) {
	if cfg.DatabaseURL == "" {
		if requireDB {
			return nil, func() {}, fmt.Errorf("DATABASE_URL is required for this command")
		}
		return roasts.NewMemoryRepo(), func() {}, nil
	}
	sqlDB, err := db.Connect(ctx, cfg.DatabaseURL, db.OptionsFromEnv(db.DefaultMigrateOptions()))
	if err != nil {
		return nil, func() {}, err
	}
	return &roasts.PGRepo{DB: sqlDB}, closeDB(sqlDB), nil
}

func closeDB(sqlDB *sql.DB) func() {
	return func() { _ = sqlDB.Close() }
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
