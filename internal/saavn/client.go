// Package saavn is the client for the secondary search backend.
package saavn

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/time/rate"

	"github.com/velium/velium/internal/core"
	"github.com/velium/velium/internal/stream"
)

// Client is a saavn API client.
type Client struct {
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
	resolver   stream.Resolver
	logger     *log.Logger
}

// New creates a saavn client. Opaque track URLs are proxied through
// proxyBase, which is normally the hub endpoint.
func New(baseURL, proxyBase string, httpClient *http.Client, limiter *rate.Limiter, logger *log.Logger) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 15 * time.Second}
	}
	if limiter == nil {
		limiter = rate.NewLimiter(rate.Inf, 1)
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
		limiter:    limiter,
		resolver:   stream.Resolver{ProxyBase: strings.TrimRight(proxyBase, "/")},
		logger:     logger,
	}
}

// Search queries saavn. The search kind selects the endpoint path:
// /search/songs, /search/albums, /search/artists.
func (c *Client) Search(ctx context.Context, query, kind string, limit int) ([]core.Track, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	if kind == "" {
		kind = "song"
	}
	u := c.baseURL + "/search/" + kind + "s?query=" + url.QueryEscape(query)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("saavn search failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("saavn search: status %d, body: %s", resp.StatusCode, string(body))
	}

	var sr SearchResponse
	if err := json.NewDecoder(resp.Body).Decode(&sr); err != nil {
		return nil, fmt.Errorf("failed to parse saavn response: %w", err)
	}

	results := sr.Data.Results
	if limit > 0 && len(results) > limit {
		results = results[:limit]
	}

	tracks := make([]core.Track, 0, len(results))
	for _, song := range results {
		tracks = append(tracks, c.convertTrack(song))
	}
	return tracks, nil
}

// convertTrack maps a saavn song to the normalized track shape.
func (c *Client) convertTrack(song Song) core.Track {
	src := stream.Source{Explicit: song.DownloadURL.URL}
	for _, v := range song.DownloadURL.Variants {
		src.Variants = append(src.Variants, stream.Variant{Quality: v.Quality, URL: v.Link})
	}

	streamURL, err := c.resolver.Resolve(src)
	if err != nil {
		c.logger.Debug("saavn song has no stream source", "title", song.Name)
		streamURL = ""
	}

	artwork := song.Image.Best()
	if artwork == "" {
		artwork = core.PlaceholderArtwork
	}

	return core.Track{
		ID:         song.ID,
		Title:      song.Name,
		Artist:     song.PrimaryArtists,
		Album:      song.Album.Name,
		ArtworkURL: artwork,
		StreamURL:  streamURL,
		Duration:   time.Duration(song.Duration) * time.Second,
		Source:     core.SourceSaavn,
	}
}
