package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaults(t *testing.T) {
	cfg := &Config{}
	cfg.ApplyDefaults()

	if cfg.API.HubBase == "" {
		t.Error("HubBase should have a default")
	}
	if cfg.API.SaavnBase == "" {
		t.Error("SaavnBase should have a default")
	}
	if cfg.Playback.Volume != 1.0 {
		t.Errorf("Volume = %v, want 1.0", cfg.Playback.Volume)
	}
	if cfg.Playback.CrossfadeSeconds != 6 {
		t.Errorf("CrossfadeSeconds = %d, want 6", cfg.Playback.CrossfadeSeconds)
	}
	if cfg.Playback.Crossfade {
		t.Error("Crossfade should default to off")
	}
}

func TestLoadFrom(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	content := `
[api]
hub_base = "https://hub.example.com"

[playback]
crossfade = true
crossfade_seconds = 10

[log]
level = "debug"
`
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom failed: %v", err)
	}

	if cfg.API.HubBase != "https://hub.example.com" {
		t.Errorf("HubBase = %q", cfg.API.HubBase)
	}
	if !cfg.Playback.Crossfade || cfg.Playback.CrossfadeSeconds != 10 {
		t.Errorf("Crossfade = %v/%d, want true/10", cfg.Playback.Crossfade, cfg.Playback.CrossfadeSeconds)
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("Level = %q, want debug", cfg.Log.Level)
	}
	// Defaults still fill omitted sections
	if cfg.API.SaavnBase == "" {
		t.Error("SaavnBase default not applied")
	}
}

func TestValidate(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}

	cfg.Playback.Volume = 2.0
	if err := cfg.Validate(); err == nil {
		t.Error("volume > 1 should fail validation")
	}

	cfg = Default()
	cfg.API.HubBase = "not a url"
	if err := cfg.Validate(); err == nil {
		t.Error("invalid hub_base should fail validation")
	}

	cfg = Default()
	cfg.Log.Level = "loud"
	if err := cfg.Validate(); err == nil {
		t.Error("invalid log level should fail validation")
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("VELIUM_HUB_BASE", "https://override.example.com")
	t.Setenv("VELIUM_LOG_LEVEL", "error")

	cfg := &Config{}
	cfg.ApplyDefaults()
	applyEnvOverrides(cfg)

	if cfg.API.HubBase != "https://override.example.com" {
		t.Errorf("HubBase = %q, env override not applied", cfg.API.HubBase)
	}
	if cfg.Log.Level != "error" {
		t.Errorf("Level = %q, env override not applied", cfg.Log.Level)
	}
}

func TestSettingsRoundTrip(t *testing.T) {
	dir := t.TempDir()
	store, err := NewSettingsStore(filepath.Join(dir, "settings.json"))
	if err != nil {
		t.Fatal(err)
	}

	// No file yet
	loaded, err := store.Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if loaded != nil {
		t.Error("Load should return nil when nothing is saved")
	}

	saved := &Settings{Volume: 0.7, Crossfade: true, CrossfadeSeconds: 8}
	if err := store.Save(saved); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded, err = store.Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if loaded == nil {
		t.Fatal("Load returned nil after save")
	}
	if loaded.Volume != 0.7 || !loaded.Crossfade || loaded.CrossfadeSeconds != 8 {
		t.Errorf("round trip mismatch: %+v", loaded)
	}
}
