package main

import (
	"fmt"
	"os"

	"hiremenot/internal/bootstrap"
	"hiremenot/internal/shared/config"
	"hiremenot/internal/shared/server"
	"hiremenot/internal/shared/telemetry"
)

func main() {
	err := run()
	if err != nil {
		telemetry.Error("server.stopped", map[string]any{"error": err})
	}
	telemetry.Sync()
	if err != nil {
		os.Exit(1)
	}
}

func run() error {
	cfg := config.Load()
	app, err := bootstrap.Build(cfg)
	if err != nil {
		return fmt.Errorf("bootstrap: %w", err)
	}
	if app.DB != nil {
		defer app.DB.Close()
	}

	addr := server.Addr(cfg.Port)
	telemetry.Info("server.start", map[string]any{"addr": addr, "env": cfg.Env})
	return app.Router.Run(addr)
}
