package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadDefaultsWhenFileAbsent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")

	cfg, resolved, err := Load(nil, path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if resolved != path {
		t.Fatalf("unexpected resolved path: %s", resolved)
	}
	if cfg.Addr != ":5000" || cfg.ExecTimeout != 15*time.Second {
		t.Fatalf("defaults not applied: %+v", cfg)
	}

	// A default config file is written for next time.
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("default config not written: %v", err)
	}
}

func TestLoadFileOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := "addr: \":6000\"\nexec_timeout: 3s\nlog_level: debug\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, _, err := Load(nil, path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.Addr != ":6000" {
		t.Fatalf("file addr not applied: %s", cfg.Addr)
	}
	if cfg.ExecTimeout != 3*time.Second {
		t.Fatalf("file exec_timeout not applied: %v", cfg.ExecTimeout)
	}
	if cfg.LogLevel != "debug" {
		t.Fatalf("file log_level not applied: %s", cfg.LogLevel)
	}
	// Untouched keys keep their defaults.
	if cfg.HistoryLimit != 50 {
		t.Fatalf("default history_limit lost: %d", cfg.HistoryLimit)
	}
}

func TestLoadEnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("addr: \":6000\"\n"), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("CODESHARE_ADDR", ":7000")

	cfg, _, err := Load(nil, path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.Addr != ":7000" {
		t.Fatalf("env override not applied: %s", cfg.Addr)
	}
}
