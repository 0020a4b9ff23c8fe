package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()
	if cfg.Addr != ":8080" {
		t.Fatalf("Addr = %q", cfg.Addr)
	}
	if cfg.BatchConcurrency != 4 {
		t.Fatalf("BatchConcurrency = %d", cfg.BatchConcurrency)
	}
	if cfg.BatchAnalysisInterval != 24*time.Hour {
		t.Fatalf("BatchAnalysisInterval = %v", cfg.BatchAnalysisInterval)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("APP_ADDR", ":9090")
	t.Setenv("BATCH_CONCURRENCY", "8")
	t.Setenv("BATCH_ANALYSIS_INTERVAL", "1h")
	t.Setenv("METRICS_ENABLED", "false")

	cfg := Load()
	if cfg.Addr != ":9090" {
		t.Fatalf("Addr = %q", cfg.Addr)
	}
	if cfg.BatchConcurrency != 8 {
		t.Fatalf("BatchConcurrency = %d", cfg.BatchConcurrency)
	}
	if cfg.BatchAnalysisInterval != time.Hour {
		t.Fatalf("BatchAnalysisInterval = %v", cfg.BatchAnalysisInterval)
	}
	if cfg.MetricsEnabled {
		t.Fatal("MetricsEnabled should be false")
	}
}

func TestValidate(t *testing.T) {
	cfg := Load()
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error without DATABASE_URL")
	}

	t.Setenv("DATABASE_URL", "postgres://localhost/hrplus")
	cfg = Load()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	t.Setenv("BATCH_CONCURRENCY", "0")
	cfg = Load()
	cfg.BatchConcurrency = 0
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for zero concurrency")
	}
}
