package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadDefault(t *testing.T) {
	cfg, err := Load("/nonexistent/path/config.toml")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.General.Interval != 10 {
		t.Errorf("default interval = %d, want 10", cfg.General.Interval)
	}
	if cfg.Session.WindowHours != 5 {
		t.Errorf("default window = %d, want 5", cfg.Session.WindowHours)
	}
	if cfg.General.CostMode != "auto" {
		t.Errorf("default cost mode = %q, want auto", cfg.General.CostMode)
	}
}

func TestBlockOptions(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Session.WindowHours = 3
	cfg.Session.ActivityToleranceMin = 15

	opts := cfg.BlockOptions()
	if opts.Window != 3*time.Hour {
		t.Errorf("Window = %v, want 3h", opts.Window)
	}
	if opts.ActivityTolerance != 15*time.Minute {
		t.Errorf("ActivityTolerance = %v, want 15m", opts.ActivityTolerance)
	}
}

func TestSaveAndLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")

	cfg := DefaultConfig()
	cfg.General.Timezone = "Asia/Seoul"
	cfg.Session.TokenLimit = 500000

	if err := Save(cfg, path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if loaded.General.Timezone != "Asia/Seoul" {
		t.Errorf("timezone = %q, want Asia/Seoul", loaded.General.Timezone)
	}
	if loaded.Session.TokenLimit != 500000 {
		t.Errorf("token limit = %d, want 500000", loaded.Session.TokenLimit)
	}
}

func TestLoad_InvalidTOML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.toml")
	os.WriteFile(path, []byte("{{invalid toml}}"), 0644)

	if _, err := Load(path); err == nil {
		t.Error("expected error for invalid TOML")
	}
}

func TestSave_FilePermissions(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "perms.toml")

	if err := Save(DefaultConfig(), path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("Stat failed: %v", err)
	}
	if perm := info.Mode().Perm(); perm != 0600 {
		t.Errorf("file permissions = %o, want 0600", perm)
	}
}

func TestDefaultPath_NotEmpty(t *testing.T) {
	if DefaultPath() == "" {
		t.Error("DefaultPath should not be empty")
	}
}
