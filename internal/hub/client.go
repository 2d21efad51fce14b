// Package hub is the client for the primary search backend. Its response
// shape differs from saavn's; both are normalized into core.Track at this
// boundary.
package hub

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/time/rate"

	"github.com/velium/velium/internal/core"
	"github.com/velium/velium/internal/stream"
)

// Client is a hub API client.
type Client struct {
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
	resolver   stream.Resolver
	logger     *log.Logger
}

// New creates a hub client. The hub also serves as the download proxy for
// opaque track URLs.
func New(baseURL string, httpClient *http.Client, limiter *rate.Limiter, logger *log.Logger) *Client {
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
		resolver:   stream.Resolver{ProxyBase: strings.TrimRight(baseURL, "/")},
		logger:     logger,
	}
}

// Search queries the hub. The search kind (album, artist) is appended to
// the query text; plain song searches use the query as-is.
func (c *Client) Search(ctx context.Context, query, kind string, limit int) ([]core.Track, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	q := query
	if kind != "" && kind != "song" {
		q += " " + kind
	}

	u := c.baseURL + "/api/search?query=" + url.QueryEscape(q)
	if limit > 0 {
		u += "&limit=" + strconv.Itoa(limit)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("hub search failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("hub search: status %d, body: %s", resp.StatusCode, string(body))
	}

	var sr SearchResponse
	if err := json.NewDecoder(resp.Body).Decode(&sr); err != nil {
		return nil, fmt.Errorf("failed to parse hub response: %w", err)
	}

	tracks := make([]core.Track, 0, len(sr.Collection))
	for _, item := range sr.Collection {
		tracks = append(tracks, c.convertTrack(item))
	}
	return tracks, nil
}

// convertTrack maps a hub item to the normalized track shape.
func (c *Client) convertTrack(item Item) core.Track {
	streamURL, err := c.resolver.Resolve(stream.Source{Candidate: item.Song.URL})
	if err != nil {
		c.logger.Debug("hub item has no stream source", "title", item.Song.Name)
		streamURL = ""
	}

	return core.Track{
		ID:         item.ID,
		Title:      item.Song.Name,
		Artist:     item.Author.Name,
		ArtworkURL: c.artworkURL(item.Song.Img),
		StreamURL:  streamURL,
		Duration:   time.Duration(item.Song.Duration.TotalSeconds()) * time.Second,
		Source:     core.SourceHub,
	}
}

// artworkURL prefers the big rendition and joins hub-relative paths to the
// base URL. Falls back to the placeholder when the item has no artwork.
func (c *Client) artworkURL(img Image) string {
	u := img.Big
	if u == "" {
		u = img.Small
	}
	if u == "" {
		return core.PlaceholderArtwork
	}
	if strings.HasPrefix(u, "/api/") {
		return c.baseURL + u
	}
	return u
}
