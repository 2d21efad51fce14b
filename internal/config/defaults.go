package config

// Default returns a Config populated with sensible defaults.
func Default() *Config {
	return &Config{
		API: APIConfig{
			HubBase:    "https://argon.global.ssl.fastly.net",
			SaavnBase:  "https://jiosaavn-api-privatecvc2.vercel.app",
			LyricsBase: "https://lyrics.lewdhutao.my.eu.org/v2/musixmatch/lyrics",
			Timeout:    15,
			RateLimit:  4,
		},
		Playback: PlaybackConfig{
			Volume:           1.0,
			Crossfade:        false,
			CrossfadeSeconds: 6,
			SearchLimit:      20,
		},
		TUI: TUIConfig{
			Theme:           "auto",
			RefreshInterval: 500,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// ApplyDefaults fills in zero values with sensible defaults.
func (c *Config) ApplyDefaults() {
	d := Default()

	// API
	if c.API.HubBase == "" {
		c.API.HubBase = d.API.HubBase
	}
	if c.API.SaavnBase == "" {
		c.API.SaavnBase = d.API.SaavnBase
	}
	if c.API.LyricsBase == "" {
		c.API.LyricsBase = d.API.LyricsBase
	}
	if c.API.Timeout == 0 {
		c.API.Timeout = d.API.Timeout
	}
	if c.API.RateLimit == 0 {
		c.API.RateLimit = d.API.RateLimit
	}

	// Playback
	if c.Playback.Volume == 0 {
		c.Playback.Volume = d.Playback.Volume
	}
	if c.Playback.CrossfadeSeconds == 0 {
		c.Playback.CrossfadeSeconds = d.Playback.CrossfadeSeconds
	}
	if c.Playback.SearchLimit == 0 {
		c.Playback.SearchLimit = d.Playback.SearchLimit
	}

	// TUI
	if c.TUI.Theme == "" {
		c.TUI.Theme = d.TUI.Theme
	}
	if c.TUI.RefreshInterval == 0 {
		c.TUI.RefreshInterval = d.TUI.RefreshInterval
	}

	// Log
	if c.Log.Level == "" {
		c.Log.Level = d.Log.Level
	}
}
