package config

// Config is the root configuration structure.
type Config struct {
	API      APIConfig      `toml:"api"`
	Playback PlaybackConfig `toml:"playback"`
	Library  LibraryConfig  `toml:"library"`
	TUI      TUIConfig      `toml:"tui"`
	Log      LogConfig      `toml:"log"`
}

// APIConfig holds upstream search and lyrics endpoints.
type APIConfig struct {
	HubBase    string `toml:"hub_base"`
	SaavnBase  string `toml:"saavn_base"`
	LyricsBase string `toml:"lyrics_base"`
	Timeout    int    `toml:"timeout"`
	RateLimit  int    `toml:"rate_limit"`
}

// PlaybackConfig holds default playback settings applied when no saved
// settings file exists yet.
type PlaybackConfig struct {
	Volume           float64 `toml:"volume"`
	Crossfade        bool    `toml:"crossfade"`
	CrossfadeSeconds int     `toml:"crossfade_seconds"`
	SearchLimit      int     `toml:"search_limit"`
}

// LibraryConfig holds library store settings.
type LibraryConfig struct {
	Path string `toml:"path"`
}

// TUIConfig holds terminal UI settings.
type TUIConfig struct {
	Theme           string `toml:"theme"`
	RefreshInterval int    `toml:"refresh_interval"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level string `toml:"level"`
	File  string `toml:"file"`
}
