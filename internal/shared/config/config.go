package config

import (
	"log"
	"os"
	"strconv"
	"strings"

	"hiremenot/internal/llm"
)

// Config holds application configuration. It is built once at startup and passed by value.
type Config struct {
	Port            string
	Env             string
	CORSAllowOrigin []string
	DatabaseURL     string
	AutoMigrate     bool
	LogLevel        string

	LLMBackend       llm.Backend
	OpenRouterAPIKey string
	OpenRouterURL    string
	OpenRouterModel  string
	SiteURL          string
	SiteTitle        string
	OllamaURL        string
	OllamaModel      string

	GiphyAPIKey string
	GiphyURL    string

	ResumeMinLength    int
	ResumeMaxLength    int
	LeaderboardEnabled bool
}

// Load reads configuration from environment variables with sensible defaults.
func Load() Config {
	// Best-effort load of local env files for dev convenience.
	loadEnvFiles(".env", "cmd/.env")

	env := normalizeEnv(getEnv("ENV", "dev"))
	dbURL := os.Getenv("DATABASE_URL")

	if env == "production" && dbURL == "" {
		log.Printf("DATABASE_URL is required in production")
	}

	return Config{
		Port:               getEnv("PORT", "8080"),
		Env:                env,
		CORSAllowOrigin:    splitAndTrim(getEnv("CORS_ALLOW_ORIGINS", "http://localhost:5173")),
		DatabaseURL:        dbURL,
		AutoMigrate:        getBool("AUTO_MIGRATE", true),
		LogLevel:           getEnv("LOG_LEVEL", "info"),
		LLMBackend:         normalizeBackend(os.Getenv("LLM_BACKEND"), getBool("USE_LOCAL_AI", false)),
		OpenRouterAPIKey:   strings.TrimSpace(os.Getenv("OPENROUTER_API_KEY")),
		OpenRouterURL:      getEnv("OPENROUTER_API_URL", "https://openrouter.ai/api/v1/chat/completions"),
		OpenRouterModel:    getEnv("OPENROUTER_MODEL", "meta-llama/llama-3.2-3b-instruct:free"),
		SiteURL:            getEnv("SITE_URL", "http://localhost:8000"),
		SiteTitle:          getEnv("SITE_TITLE", "HireMeNot"),
		OllamaURL:          getEnv("OLLAMA_URL", "http://localhost:11434/api/generate"),
		OllamaModel:        getEnv("OLLAMA_MODEL", "llama3.2"),
		GiphyAPIKey:        strings.TrimSpace(os.Getenv("GIPHY_API_KEY")),
		GiphyURL:           getEnv("GIPHY_API_URL", "https://api.giphy.com/v1/gifs/random"),
		ResumeMinLength:    getInt("RESUME_MIN_LENGTH", 50),
		ResumeMaxLength:    getInt("RESUME_MAX_LENGTH", 10000),
		LeaderboardEnabled: getBool("LEADERBOARD_ENABLED", false),
	}
}

func getEnv(key, def string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return def
}

func getInt(key string, def int) int {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	val, err := strconv.Atoi(raw)
	if err != nil || val < 0 {
		log.Printf("config: %s invalid int %q, using %d", key, raw, def)
		return def
	}
	return val
}

func getBool(key string, def bool) bool {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	val, err := strconv.ParseBool(raw)
	if err != nil {
		log.Printf("config: %s invalid bool %q, using %t", key, raw, def)
		return def
	}
	return val
}

func splitAndTrim(raw string) []string {
	parts := strings.Split(raw, ",")
	var out []string
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func normalizeEnv(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "production", "prod":
		return "production"
	case "staging":
		return "staging"
	case "local":
		return "local"
	case "development", "dev":
		return "dev"
	default:
		return "dev"
	}
}

// normalizeBackend resolves LLM_BACKEND, honoring the older USE_LOCAL_AI switch when unset.
func normalizeBackend(raw string, useLocal bool) llm.Backend {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "local", "ollama":
		return llm.BackendLocal
	case "hosted", "openrouter":
		return llm.BackendHosted
	}
	if useLocal {
		return llm.BackendLocal
	}
	return llm.BackendHosted
}
