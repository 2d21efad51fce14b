package core

import "time"

// Source indicates which upstream catalog a track came from.
type Source string

const (
	SourceHub     Source = "hub"
	SourceSaavn   Source = "saavn"
	SourceLibrary Source = "library"
)

// PlaceholderArtwork is a 1x1 transparent PNG used when an upstream
// record carries no artwork, so consumers always have a renderable URL.
const PlaceholderArtwork = "data:image/png;base64,iVBORw0KGgoAAAANSUhEUgAAAAEAAAABCAYAAAAfFcSJAAAADUlEQVR42mNkYPhfDwAChwGA60e6kgAAAABJRU5ErkJggg=="

// Track represents a playable audio track with normalized metadata.
// Upstream records are mapped into this shape once, at the API boundary.
type Track struct {
	ID         string        `json:"id,omitempty"`
	Title      string        `json:"title"`
	Artist     string        `json:"artist"`
	Album      string        `json:"album,omitempty"`
	ArtworkURL string        `json:"artwork_url,omitempty"`
	StreamURL  string        `json:"stream_url,omitempty"`
	Duration   time.Duration `json:"duration"`
	Source     Source        `json:"source,omitempty"`
}

// Key returns the canonical identity of the track: the upstream ID when
// present, otherwise the stream URL, otherwise a title+artist composite.
func (t Track) Key() string {
	if t.ID != "" {
		return t.ID
	}
	if t.StreamURL != "" {
		return t.StreamURL
	}
	return t.Title + "\x00" + t.Artist
}

// SameAs reports whether two tracks refer to the same song. When both
// sides carry an upstream ID the IDs decide; the stream URL is only
// consulted when at least one side has no ID. This keeps a stale stored
// copy (same ID, refreshed URL) matching its fresh counterpart.
func (t Track) SameAs(other Track) bool {
	if t.ID != "" && other.ID != "" {
		return t.ID == other.ID
	}
	if t.StreamURL != "" && other.StreamURL != "" {
		return t.StreamURL == other.StreamURL
	}
	return t.Key() == other.Key()
}

// Playable reports whether the track has a resolved stream URL.
func (t Track) Playable() bool {
	return t.StreamURL != ""
}
