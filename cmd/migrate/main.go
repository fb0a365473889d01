package main

// Run database migrations:
//   go run ./cmd/migrate [up|down|status|version]

import (
	"context"
	"fmt"
	"os"

	"hiremenot/internal/shared/config"
	"hiremenot/internal/shared/storage/db"
	"hiremenot/internal/shared/telemetry"
)

func main() {
	err := run(context.Background(), os.Args[1:])
	if err != nil {
		telemetry.Error("migrate.failed", map[string]any{"error": err})
	}
	telemetry.Sync()
	if err != nil {
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string) error {
	command := "up"
	if len(args) > 0 {
		command = args[0]
	}

	cfg := config.Load()
	opts := db.OptionsFromEnv(db.DefaultMigrateOptions())
	sqlDB, err := db.Connect(ctx, cfg.DatabaseURL, opts)
	if err != nil {
		return fmt.Errorf("connect: %w", err)
	}
	defer sqlDB.Close()

	if err := db.Migrate(ctx, sqlDB, command); err != nil {
		return fmt.Errorf("%s: %w", command, err)
	}
	telemetry.Info("migrate.done", map[string]any{"command": command})
	return nil
}
