package model

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadConfigMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Backend.Mode != "local" {
		t.Errorf("Mode = %q, want local", cfg.Backend.Mode)
	}
	if cfg.Backend.DBPath == "" {
		t.Error("DBPath not defaulted")
	}
	if cfg.Display.RefreshIntervalSec != 120 {
		t.Errorf("RefreshIntervalSec = %d, want 120", cfg.Display.RefreshIntervalSec)
	}
}

func TestLoadConfigRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")

	want := &AppConfig{
		Backend: BackendConfig{
			Mode:    "remote",
			URL:     "https://proj.example.co",
			AnonKey: "anon-123",
			DBPath:  DefaultDBPath(),
		},
		Display: DisplayConfig{
			Theme:              "default",
			RefreshIntervalSec: 60,
		},
	}
	if err := SaveConfig(path, want); err != nil {
		t.Fatalf("SaveConfig: %v", err)
	}

	got, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if got.Backend.Mode != "remote" || got.Backend.URL != want.Backend.URL ||
		got.Backend.AnonKey != want.Backend.AnonKey {
		t.Errorf("backend = %+v, want %+v", got.Backend, want.Backend)
	}
	if got.Display.RefreshIntervalSec != 60 {
		t.Errorf("RefreshIntervalSec = %d, want 60", got.Display.RefreshIntervalSec)
	}
}

func TestLoadConfigEnvOverridesSwitchToRemote(t *testing.T) {
	t.Setenv("HABITCHAIN_URL", "https://env.example.co")
	t.Setenv("HABITCHAIN_ANON_KEY", "env-key")

	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Backend.Mode != "remote" {
		t.Errorf("Mode = %q, want remote after env override", cfg.Backend.Mode)
	}
	if cfg.Backend.URL != "https://env.example.co" || cfg.Backend.AnonKey != "env-key" {
		t.Errorf("backend = %+v", cfg.Backend)
	}
}

func TestSaveConfigCreatesParentDirs(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "deeper", "config.yaml")
	if err := SaveConfig(path, defaultAppConfig()); err != nil {
		t.Fatalf("SaveConfig: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("config file not written: %v", err)
	}
}
