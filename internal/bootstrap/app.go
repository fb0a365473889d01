package bootstrap

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"

	"hiremenot/internal/extract"
	"hiremenot/internal/llm"
	"hiremenot/internal/llm/ollama"
	"hiremenot/internal/llm/openrouter"
	"hiremenot/internal/meme"
	"hiremenot/internal/roasts"
	"hiremenot/internal/services/health"
	"hiremenot/internal/shared/config"
	"hiremenot/internal/shared/server"
	"hiremenot/internal/shared/storage/db"
	"hiremenot/internal/shared/telemetry"
)

// App holds shared dependencies.
type App struct {
	Config       config.Config
	Router       *gin.Engine
	DB           *sql.DB
	Repo         roasts.Repo
	Generator    llm.Generator
	Memes        *meme.Client
	Service      *roasts.Service
	RoastHandler *roasts.Handler
	Health       *health.Service
}

// Build wires configuration into the roast pipeline and its HTTP router.
func Build(cfg config.Config) (*App, error) {
	if strings.TrimSpace(cfg.Env) == "" {
		cfg.Env = "dev"
	}
	telemetry.SetLevel(cfg.LogLevel)
	ctx := context.Background()

	sqlDB, err := buildDB(ctx, cfg)
	if err != nil {
		return nil, err
	}

	gen, err := BuildGenerator(cfg)
	if err != nil {
		return nil, err
	}

	var repo roasts.Repo
	if sqlDB != nil {
		repo = &roasts.PGRepo{DB: sqlDB}
	} else {
		repo = roasts.NewMemoryRepo()
	}

	app := &App{
		Config:    cfg,
		DB:        sqlDB,
		Repo:      repo,
		Generator: gen,
		Memes:     meme.NewClient(meme.Config{APIKey: cfg.GiphyAPIKey, URL: cfg.GiphyURL}),
		Health:    health.NewService(sqlDB, string(gen.Backend())),
	}
	app.Service = NewService(cfg, repo, gen, app.Memes)
	app.RoastHandler = roasts.NewHandler(app.Service, cfg.LeaderboardEnabled)
	app.Router = server.NewRouter(server.RouterDeps{
		Config:       cfg,
		Health:       app.Health,
		RoastHandler: app.RoastHandler,
	})

	telemetry.Info("bootstrap.ready", map[string]any{
		"env":         cfg.Env,
		"backend":     string(gen.Backend()),
		"store":       storeName(sqlDB),
		"leaderboard": cfg.LeaderboardEnabled,
		"memes":       cfg.GiphyAPIKey != "",
	})
	return app, nil
}

// NewService assembles the roast pipeline. memes may be nil.
func NewService(cfg config.Config, repo roasts.Repo, gen llm.Generator, memes roasts.MemeFinder) *roasts.Service {
	svc := &roasts.Service{
		Repo:      repo,
		Resolver:  roasts.Resolver{PDF: extract.PDFExtractor{}},
		Validator: roasts.NewValidator(cfg.ResumeMinLength, cfg.ResumeMaxLength),
		LLM:       gen,
		Memes:     memes,
	}
	return svc
}

// BuildGenerator selects the configured generation backend.
func BuildGenerator(cfg config.Config) (llm.Generator, error) {
	backend, err := llm.ParseBackend(string(cfg.LLMBackend))
	if err != nil {
		return nil, err
	}
	switch backend {
	case llm.BackendLocal:
		return ollama.NewClient(ollama.Config{URL: cfg.OllamaURL, Model: cfg.OllamaModel}), nil
	default:
		if cfg.OpenRouterAPIKey == "" {
			telemetry.Info("bootstrap.missing_credential", map[string]any{"backend": string(backend)})
		}
		return openrouter.NewClient(openrouter.Config{
			APIKey:    cfg.OpenRouterAPIKey,
			URL:       cfg.OpenRouterURL,
			Model:     cfg.OpenRouterModel,
			SiteURL:   cfg.SiteURL,
			SiteTitle: cfg.SiteTitle,
		}), nil
	}
}

func buildDB(ctx context.Context, cfg config.Config) (*sql.DB, error) {
	if strings.TrimSpace(cfg.DatabaseURL) == "" {
		if isDevLike(cfg.Env) {
			telemetry.Info("bootstrap.memory_store", map[string]any{"reason": "DATABASE_URL empty"})
			return nil, nil
		}
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	opts := db.OptionsFromEnv(db.DefaultServerOptions())
	sqlDB, err := db.Connect(ctx, cfg.DatabaseURL, opts)
	if err != nil {
		if isDevLike(cfg.Env) {
			telemetry.Error("bootstrap.memory_store", map[string]any{"reason": "database connect failed", "error": err})
			return nil, nil
		}
		return nil, err
	}

	if cfg.AutoMigrate {
		if err := db.RunMigrations(ctx, sqlDB); err != nil {
			_ = sqlDB.Close()
			return nil, fmt.Errorf("run migrations: %w", err)
		}
	}
	return sqlDB, nil
}

func isDevLike(env string) bool {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "dev", "local":
		return true
	default:
		return false
	}
}

func storeName(sqlDB *sql.DB) string {
	if sqlDB == nil {
		return "memory"
	}
	return "postgres"
}
