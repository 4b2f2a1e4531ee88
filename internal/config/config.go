package config

import (
	"os"
	"strings"
	"time"
)

// Config keeps runtime settings for the engine.
type Config struct {
	DatabaseURL   string
	SweepInterval time.Duration
	AIEndpoint    string
	AIAPIKey      string
}

// Load reads configuration from environment variables with sane defaults.
// The AI settings are optional; absent credentials disable enrichment.
func Load() (Config, error) {
	cfg := Config{
		DatabaseURL:   strings.TrimSpace(os.Getenv("DATABASE_URL")),
		SweepInterval: parseInterval(strings.TrimSpace(os.Getenv("PENALTY_SWEEP_INTERVAL_HOURS"))),
		AIEndpoint:    strings.TrimSpace(os.Getenv("AI_EVALUATOR_URL")),
		AIAPIKey:      strings.TrimSpace(os.Getenv("AI_API_KEY")),
	}

	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = "taskbank.db"
	}

	if cfg.SweepInterval == 0 {
		cfg.SweepInterval = 1 * time.Hour
	}

	return cfg, nil
}

func parseInterval(raw string) time.Duration {
	if raw == "" {
		return 0
	}
	hours, err := time.ParseDuration(raw + "h")
	if err != nil || hours <= 0 {
		return 0
	}
	return hours
}
