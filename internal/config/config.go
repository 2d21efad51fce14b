package config

import (
	"os"
	"path/filepath"
	"strconv"

	"github.com/BurntSushi/toml"
)

// Load reads configuration from standard locations with environment overrides.
// Search order: ~/.veliumrc, $XDG_CONFIG_HOME/velium/config.toml,
// ~/.config/velium/config.toml
func Load() (*Config, error) {
	cfg := &Config{}

	// Try loading from file
	path := findConfigFile()
	if path != "" {
		if _, err := toml.DecodeFile(path, cfg); err != nil {
			return nil, err
		}
	}

	// Apply defaults, then environment variable overrides
	cfg.ApplyDefaults()
	applyEnvOverrides(cfg)

	return cfg, nil
}

// LoadFrom reads configuration from a specific file path.
func LoadFrom(path string) (*Config, error) {
	cfg := &Config{}
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, err
	}
	cfg.ApplyDefaults()
	applyEnvOverrides(cfg)
	return cfg, nil
}

// findConfigFile returns the first existing config file path.
func findConfigFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}

	paths := []string{
		filepath.Join(home, ".veliumrc"),
	}

	// XDG_CONFIG_HOME or default
	xdgConfig := os.Getenv("XDG_CONFIG_HOME")
	if xdgConfig == "" {
		xdgConfig = filepath.Join(home, ".config")
	}
	paths = append(paths, filepath.Join(xdgConfig, "velium", "config.toml"))

	for _, p := range paths {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}

	return ""
}

// applyEnvOverrides applies environment variable overrides to the config.
func applyEnvOverrides(cfg *Config) {
	// API
	if v := os.Getenv("VELIUM_HUB_BASE"); v != "" {
		cfg.API.HubBase = v
	}
	if v := os.Getenv("VELIUM_SAAVN_BASE"); v != "" {
		cfg.API.SaavnBase = v
	}
	if v := os.Getenv("VELIUM_LYRICS_BASE"); v != "" {
		cfg.API.LyricsBase = v
	}
	if v := os.Getenv("VELIUM_API_TIMEOUT"); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			cfg.API.Timeout = i
		}
	}

	// Library
	if v := os.Getenv("VELIUM_LIBRARY_PATH"); v != "" {
		cfg.Library.Path = v
	}

	// TUI
	if v := os.Getenv("VELIUM_TUI_THEME"); v != "" {
		cfg.TUI.Theme = v
	}
	if v := os.Getenv("VELIUM_TUI_REFRESH_INTERVAL"); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			cfg.TUI.RefreshInterval = i
		}
	}

	// Log
	if v := os.Getenv("VELIUM_LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv("VELIUM_LOG_FILE"); v != "" {
		cfg.Log.File = v
	}
}

// LibraryPath returns the configured library database path, falling back
// to the default location under the user config dir.
func (c *Config) LibraryPath() (string, error) {
	if c.Library.Path != "" {
		return c.Library.Path, nil
	}
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "velium", "library.db"), nil
}
