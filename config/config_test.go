package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadDefaultsWhenFileMissing(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.ActiveLimit != 6 {
		t.Errorf("ActiveLimit = %d, want 6", cfg.ActiveLimit)
	}
	if !cfg.Downsample {
		t.Error("Downsample should default to true")
	}
	if cfg.SniffBytes != 32*1024 {
		t.Errorf("SniffBytes = %d, want %d", cfg.SniffBytes, 32*1024)
	}
}

func TestLoadFileThenEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	body := "active_limit: 3\ndownsample: false\nlog_level: debug\n"
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.ActiveLimit != 3 || cfg.Downsample || cfg.LogLevel != "debug" {
		t.Fatalf("file values not applied: %+v", cfg)
	}

	os.Setenv("SFDASH_ACTIVE_LIMIT", "9")
	defer os.Unsetenv("SFDASH_ACTIVE_LIMIT")
	cfg, err = Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.ActiveLimit != 9 {
		t.Errorf("env override: ActiveLimit = %d, want 9", cfg.ActiveLimit)
	}
}

func TestLoadRejectsBadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("active_limit: [oops"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestLocationFallback(t *testing.T) {
	cfg := Default()
	cfg.DisplayTimezone = "Not/AZone"
	_, off := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC).In(cfg.Location()).Zone()
	if off != 9*60*60 {
		t.Errorf("fallback offset = %d, want %d", off, 9*60*60)
	}
}
