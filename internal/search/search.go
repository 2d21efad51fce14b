// Package search fans a query out to every configured backend and merges
// the results. A backend failure degrades to an empty contribution rather
// than failing the whole search.
package search

import (
	"context"
	"io"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/velium/velium/internal/core"
)

// Backend is a search source. Both upstream clients satisfy this.
type Backend interface {
	Search(ctx context.Context, query, kind string, limit int) ([]core.Track, error)
}

// namedBackend pairs a backend with a label for logging.
type namedBackend struct {
	name    string
	backend Backend
}

// Aggregator queries backends concurrently and concatenates their results
// in registration order.
type Aggregator struct {
	backends []namedBackend
	logger   *log.Logger
}

// NewAggregator creates an aggregator.
func NewAggregator(logger *log.Logger) *Aggregator {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Aggregator{logger: logger}
}

// Register adds a backend. Registration order fixes result ordering.
func (a *Aggregator) Register(name string, b Backend) {
	a.backends = append(a.backends, namedBackend{name: name, backend: b})
}

// Search queries every backend concurrently. Failed backends contribute
// nothing; the combined result is never an error.
func (a *Aggregator) Search(ctx context.Context, query, kind string, limit int) []core.Track {
	results := make([][]core.Track, len(a.backends))

	var wg sync.WaitGroup
	for i, nb := range a.backends {
		wg.Add(1)
		go func(i int, nb namedBackend) {
			defer wg.Done()
			tracks, err := nb.backend.Search(ctx, query, kind, limit)
			if err != nil {
				a.logger.Debug("search backend failed", "backend", nb.name, "error", err)
				return
			}
			results[i] = tracks
		}(i, nb)
	}
	wg.Wait()

	var merged []core.Track
	for _, r := range results {
		merged = append(merged, r...)
	}
	return merged
}
