// Package stream derives playable URLs from the raw source material that
// upstream track records carry. The precedence order is a hard contract:
// an explicit quality-variant list wins, then a directly recognizable
// media URL, and finally the proxy endpoint wrapping an opaque source URL.
package stream

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"github.com/velium/velium/internal/errors"
)

// PreferredQuality is the variant tag picked from quality lists.
const PreferredQuality = "320kbps"

// mediaExt matches URLs that point straight at an audio file.
var mediaExt = regexp.MustCompile(`(?i)\.(mp3|mp4|m4a)$`)

// cdnHosts are hosts whose URLs are playable without proxying.
var cdnHosts = []string{"saavncdn.com"}

// Variant is one quality-tagged rendition of a stream.
type Variant struct {
	Quality string `json:"quality"`
	URL     string `json:"link"`
}

// Source holds the raw URL material attached to an upstream track record.
type Source struct {
	// Variants is a pre-resolved quality list (fresh saavn results).
	Variants []Variant
	// Explicit is a single pre-resolved URL (legacy saavn results).
	Explicit string
	// Candidate is an opaque track URL that may need proxying.
	Candidate string
}

// Resolver turns a Source into a playable URL.
type Resolver struct {
	// ProxyBase is the base URL of the download proxy endpoint.
	ProxyBase string
}

// PickVariant returns the URL of the preferred-quality variant, falling
// back to the last list entry. Returns "" for an empty list.
func PickVariant(variants []Variant) string {
	if len(variants) == 0 {
		return ""
	}
	for _, v := range variants {
		if v.Quality == PreferredQuality {
			return v.URL
		}
	}
	return variants[len(variants)-1].URL
}

// Direct reports whether u is playable as-is, either by file extension or
// by known CDN host.
func Direct(u string) bool {
	if mediaExt.MatchString(u) {
		return true
	}
	for _, h := range cdnHosts {
		if strings.Contains(u, h) {
			return true
		}
	}
	return false
}

// Resolve derives a playable URL. The error is errors.ErrNoStreamURL when
// nothing can be derived; callers treat that as a silent playback no-op.
func (r Resolver) Resolve(src Source) (string, error) {
	if u := PickVariant(src.Variants); u != "" {
		return u, nil
	}
	if src.Explicit != "" {
		return src.Explicit, nil
	}
	if src.Candidate != "" {
		if Direct(src.Candidate) {
			return src.Candidate, nil
		}
		return fmt.Sprintf("%s/api/download?track_url=%s", r.ProxyBase, url.QueryEscape(src.Candidate)), nil
	}
	return "", errors.ErrNoStreamURL
}
