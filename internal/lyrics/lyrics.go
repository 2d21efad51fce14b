// Package lyrics fetches song lyrics by title and artist.
package lyrics

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/velium/velium/internal/errors"
)

// qualifiers matches parenthesized and bracketed suffixes like
// "(Remastered 2011)" or "[Live]" that confuse the lyrics search.
var qualifiers = regexp.MustCompile(`\s*[\(\[][^\)\]]*[\)\]]`)

// CleanQuery strips qualifier suffixes and collapses whitespace so the
// lyrics lookup sees the bare song title.
func CleanQuery(s string) string {
	return strings.Join(strings.Fields(qualifiers.ReplaceAllString(s, " ")), " ")
}

// Result is a lyrics lookup response.
type Result struct {
	TrackName  string `json:"track_name"`
	ArtistName string `json:"artist_name"`
	ArtworkURL string `json:"artwork_url"`
	Lyrics     string `json:"lyrics"`
}

type envelope struct {
	Data Result `json:"data"`
}

// Client fetches lyrics from the configured endpoint.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// New creates a lyrics client.
func New(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 15 * time.Second}
	}
	return &Client{baseURL: strings.TrimRight(baseURL, "/"), httpClient: httpClient}
}

// Fetch looks up lyrics for a track. A miss returns
// errors.ErrLyricsNotFound; the lookup is never retried.
func (c *Client) Fetch(ctx context.Context, title, artist string) (*Result, error) {
	u := fmt.Sprintf("%s?title=%s&artist=%s",
		c.baseURL,
		url.QueryEscape(CleanQuery(title)),
		url.QueryEscape(CleanQuery(artist)))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("lyrics fetch failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, errors.WithSuggestion(errors.ErrLyricsNotFound,
			"Try searching with a simpler title")
	}
	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("lyrics fetch: status %d", resp.StatusCode)
	}

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return nil, fmt.Errorf("failed to parse lyrics response: %w", err)
	}
	if env.Data.Lyrics == "" {
		return nil, errors.ErrLyricsNotFound
	}
	return &env.Data, nil
}
