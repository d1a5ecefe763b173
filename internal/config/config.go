package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/SiddeshHulagur/Expense-Tracker/core"
)

// Storage backend names accepted in STORAGE_BACKEND.
const (
	BackendPostgres = "postgres"
	BackendRedis    = "redis"
	BackendMemory   = "memory"
)

// Config holds the runtime configuration, sourced from the environment.
type Config struct {
	JWTSecret     string
	Backend       string
	DatabaseURL   string
	RedisURL      string
	ListenAddr    string
	EventsEnabled bool
}

// Load reads the configuration from the environment. A missing or blank
// JWT_SECRET_KEY is a startup error, never a silent default.
func Load() (*Config, error) {
	cfg := &Config{
		JWTSecret:     os.Getenv("JWT_SECRET_KEY"),
		Backend:       getenvDefault("STORAGE_BACKEND", BackendMemory),
		DatabaseURL:   os.Getenv("DATABASE_URL"),
		RedisURL:      getenvDefault("REDIS_URL", "redis://localhost:6379/0"),
		ListenAddr:    getenvDefault("LISTEN_ADDR", ":8080"),
		EventsEnabled: os.Getenv("EVENTS_ENABLED") == "true",
	}

	if strings.TrimSpace(cfg.JWTSecret) == "" {
		return nil, fmt.Errorf("JWT_SECRET_KEY: %w", core.ErrSecretNotConfigured)
	}

	switch cfg.Backend {
	case BackendPostgres:
		if cfg.DatabaseURL == "" {
			return nil, fmt.Errorf("DATABASE_URL is required for the %s backend", BackendPostgres)
		}
	case BackendRedis, BackendMemory:
	default:
		return nil, fmt.Errorf("unknown STORAGE_BACKEND %q", cfg.Backend)
	}

	return cfg, nil
}

func getenvDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
