package cli

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"golang.org/x/time/rate"

	"github.com/velium/velium/internal/audio"
	"github.com/velium/velium/internal/config"
	"github.com/velium/velium/internal/core"
	"github.com/velium/velium/internal/engine"
	"github.com/velium/velium/internal/hub"
	"github.com/velium/velium/internal/library"
	"github.com/velium/velium/internal/saavn"
	"github.com/velium/velium/internal/search"
)

// app wires the configured services together for a command invocation.
type app struct {
	cfg      *config.Config
	hub      *hub.Client
	saavn    *saavn.Client
	searcher *search.Aggregator
	store    *library.Store
	library  *library.Service
}

// newApp builds the service graph from the loaded configuration.
func newApp() (*app, error) {
	httpClient := &http.Client{
		Timeout: time.Duration(cfg.API.Timeout) * time.Second,
	}
	limiter := rate.NewLimiter(rate.Limit(cfg.API.RateLimit), cfg.API.RateLimit)

	a := &app{cfg: cfg}
	a.hub = hub.New(cfg.API.HubBase, httpClient, limiter, logger)
	a.saavn = saavn.New(cfg.API.SaavnBase, cfg.API.HubBase, httpClient, limiter, logger)

	a.searcher = search.NewAggregator(logger)
	a.searcher.Register("hub", a.hub)
	a.searcher.Register("saavn", a.saavn)

	libPath, err := cfg.LibraryPath()
	if err != nil {
		return nil, fmt.Errorf("failed to resolve library path: %w", err)
	}
	a.store, err = library.OpenStore(libPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open library: %w", err)
	}
	a.library, err = library.NewService(a.store, logger)
	if err != nil {
		a.store.Close()
		return nil, fmt.Errorf("failed to load library: %w", err)
	}

	return a, nil
}

// Close releases the app's resources.
func (a *app) Close() {
	if a.store != nil {
		_ = a.store.Close()
	}
}

// searchTracks queries every backend, honoring the configured result
// limit.
func (a *app) searchTracks(ctx context.Context, query, kind string) []core.Track {
	return a.searcher.Search(ctx, query, kind, a.cfg.Playback.SearchLimit)
}

// newEngine builds a playback engine backed by HTTP stream outputs,
// with persisted settings layered over the configured defaults.
func (a *app) newEngine() (*engine.Engine, error) {
	settingsStore, err := config.NewSettingsStore("")
	if err != nil {
		return nil, fmt.Errorf("failed to open settings store: %w", err)
	}

	settings, err := settingsStore.Load()
	if err != nil {
		logger.Warn("could not read saved settings", "error", err)
	}
	if settings == nil {
		settings = config.FromConfig(a.cfg)
	}

	factory := func() audio.Output {
		return audio.NewStreamOutput(nil, logger)
	}

	return engine.New(factory, settings,
		engine.WithLogger(logger),
		engine.WithSettingsStore(settingsStore),
		engine.WithLikedFunc(a.library.IsLiked),
	), nil
}
