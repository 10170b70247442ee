package config

import (
	"testing"
	"time"
)

func setRequired(t *testing.T) {
	t.Helper()
	t.Setenv("DATABASE_URL", "postgres://localhost:5432/lifeconnect")
	t.Setenv("REDIS_URL", "redis://localhost:6379/0")
	t.Setenv("JWT_SECRET", "test-secret")
}

func TestLoadDefaults(t *testing.T) {
	setRequired(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if cfg.Port != "8080" {
		t.Fatalf("expected default port 8080, got %s", cfg.Port)
	}
	if cfg.MailSendTimeout != 10*time.Second {
		t.Fatalf("expected 10s mail timeout, got %s", cfg.MailSendTimeout)
	}
	if cfg.DedupWindow != 10*time.Minute {
		t.Fatalf("expected 10m dedup window, got %s", cfg.DedupWindow)
	}
	if cfg.Address() != ":8080" {
		t.Fatalf("unexpected address %s", cfg.Address())
	}
}

func TestLoadMissingDatabase(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	t.Setenv("REDIS_URL", "redis://localhost:6379/0")
	t.Setenv("JWT_SECRET", "test-secret")

	if _, err := Load(); err == nil {
		t.Fatal("expected error for missing DATABASE_URL")
	}
}

func TestLoadOverrides(t *testing.T) {
	setRequired(t)
	t.Setenv("PORT", ":9000")
	t.Setenv("DEDUP_WINDOW", "30s")
	t.Setenv("LOG_LEVEL", "DEBUG")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if cfg.Address() != ":9000" {
		t.Fatalf("unexpected address %s", cfg.Address())
	}
	if cfg.DedupWindow != 30*time.Second {
		t.Fatalf("unexpected dedup window %s", cfg.DedupWindow)
	}
	if cfg.LogLevel != "debug" {
		t.Fatalf("expected lowercased log level, got %s", cfg.LogLevel)
	}
}
