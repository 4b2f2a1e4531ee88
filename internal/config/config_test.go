package config

import (
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	t.Setenv("PENALTY_SWEEP_INTERVAL_HOURS", "")
	t.Setenv("AI_EVALUATOR_URL", "")
	t.Setenv("AI_API_KEY", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.DatabaseURL != "taskbank.db" {
		t.Errorf("DatabaseURL = %q", cfg.DatabaseURL)
	}
	if cfg.SweepInterval != time.Hour {
		t.Errorf("SweepInterval = %v, want 1h", cfg.SweepInterval)
	}
	if cfg.AIEndpoint != "" || cfg.AIAPIKey != "" {
		t.Error("AI settings should default to empty")
	}
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("DATABASE_URL", " data/bank.db ")
	t.Setenv("PENALTY_SWEEP_INTERVAL_HOURS", "6")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.DatabaseURL != "data/bank.db" {
		t.Errorf("DatabaseURL = %q", cfg.DatabaseURL)
	}
	if cfg.SweepInterval != 6*time.Hour {
		t.Errorf("SweepInterval = %v, want 6h", cfg.SweepInterval)
	}
}

func TestLoad_BadIntervalFallsBack(t *testing.T) {
	t.Setenv("PENALTY_SWEEP_INTERVAL_HOURS", "soon")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.SweepInterval != time.Hour {
		t.Errorf("SweepInterval = %v, want default 1h", cfg.SweepInterval)
	}
}
