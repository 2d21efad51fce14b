package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

const (
	// DefaultSettingsFileName is the default name for the saved settings file.
	DefaultSettingsFileName = "settings.json"
)

// Settings holds user-mutable playback settings that survive restarts.
// Unlike Config, which is hand-edited, Settings is written by the player
// whenever the user changes volume or crossfade.
type Settings struct {
	Volume           float64 `json:"volume"`
	Muted            bool    `json:"muted"`
	Crossfade        bool    `json:"crossfade"`
	CrossfadeSeconds int     `json:"crossfade_seconds"`
}

// SettingsStore handles persisting settings to disk.
type SettingsStore struct {
	path string
}

// NewSettingsStore creates a settings store at the specified path.
// If path is empty, uses the default location
// (~/.config/velium/settings.json).
func NewSettingsStore(path string) (*SettingsStore, error) {
	if path == "" {
		configDir, err := os.UserConfigDir()
		if err != nil {
			return nil, fmt.Errorf("failed to get config directory: %w", err)
		}
		path = filepath.Join(configDir, "velium", DefaultSettingsFileName)
	}

	return &SettingsStore{path: path}, nil
}

// Save persists settings to disk.
func (s *SettingsStore) Save(settings *Settings) error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := json.MarshalIndent(settings, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal settings: %w", err)
	}

	if err := os.WriteFile(s.path, data, 0600); err != nil {
		return fmt.Errorf("failed to write settings file: %w", err)
	}

	return nil
}

// Load reads settings from disk. Returns nil with no error when no
// settings have been saved yet.
func (s *SettingsStore) Load() (*Settings, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read settings file: %w", err)
	}

	var settings Settings
	if err := json.Unmarshal(data, &settings); err != nil {
		return nil, fmt.Errorf("failed to parse settings file: %w", err)
	}

	return &settings, nil
}

// Path returns the path to the settings file.
func (s *SettingsStore) Path() string {
	return s.path
}

// FromConfig builds initial settings from configured playback defaults.
func FromConfig(cfg *Config) *Settings {
	return &Settings{
		Volume:           cfg.Playback.Volume,
		Crossfade:        cfg.Playback.Crossfade,
		CrossfadeSeconds: cfg.Playback.CrossfadeSeconds,
	}
}
