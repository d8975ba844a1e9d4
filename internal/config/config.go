package config

import (
	"log/slog"
	"os"
	"time"
)

const placeholderSecret = "dev-secret-change-in-production"

type Config struct {
	Port          string
	Env           string
	DatabaseDSN   string
	SessionSecret string
	SessionExpiry time.Duration
	ResetExpiry   time.Duration
}

func Load() Config {
	cfg := Config{
		Port:          getEnv("PORT", "8080"),
		Env:           getEnv("ENV", "development"),
		DatabaseDSN:   getEnv("DATABASE_DSN", "root:password@tcp(127.0.0.1:3306)/ecowatt?parseTime=true"),
		SessionSecret: getEnv("SESSION_SECRET", placeholderSecret),
		SessionExpiry: 30 * 24 * time.Hour,
		ResetExpiry:   time.Hour,
	}

	if cfg.Env == "production" && cfg.SessionSecret == placeholderSecret {
		slog.Error("SESSION_SECRET must be set in production environment")
		os.Exit(1)
	}

	return cfg
}

// Debug reports whether development-only surfaces (reset-db, table dumps)
// should be mounted.
func (c Config) Debug() bool {
	return c.Env == "development"
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
