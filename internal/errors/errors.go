package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Error types for common failure scenarios.
var (
	ErrNoStreamURL    = errors.New("no playable stream url")
	ErrNoTrack        = errors.New("no track loaded")
	ErrEmptyQueue     = errors.New("queue is empty")
	ErrNotFound       = errors.New("not found")
	ErrLyricsNotFound = errors.New("lyrics not found")
	ErrNoPlaylists    = errors.New("no playlists")
	ErrDuplicateTrack = errors.New("track already in playlist")
	ErrConfigNotFound = errors.New("config file not found")
	ErrInvalidConfig  = errors.New("invalid configuration")
	ErrStoreCorrupt   = errors.New("library store corrupt")
)

// VeliumError wraps an error with a user-friendly suggestion.
type VeliumError struct {
	Err        error
	Suggestion string
}

func (e *VeliumError) Error() string {
	return e.Err.Error()
}

func (e *VeliumError) Unwrap() error {
	return e.Err
}

// WithSuggestion wraps an error with a helpful suggestion.
func WithSuggestion(err error, suggestion string) error {
	return &VeliumError{
		Err:        err,
		Suggestion: suggestion,
	}
}

// GetSuggestion returns a suggestion for the given error.
func GetSuggestion(err error) string {
	if err == nil {
		return ""
	}

	var ve *VeliumError
	if errors.As(err, &ve) && ve.Suggestion != "" {
		return ve.Suggestion
	}

	errStr := strings.ToLower(err.Error())

	if errors.Is(err, ErrNoStreamURL) {
		return "This track has no playable source. Try searching for it again"
	}

	if errors.Is(err, ErrEmptyQueue) || errors.Is(err, ErrNoTrack) {
		return "Run 'velium play <query>' to start playback"
	}

	if errors.Is(err, ErrNotFound) || strings.Contains(errStr, "no results") {
		return "Try a different search query"
	}

	if errors.Is(err, ErrLyricsNotFound) {
		return "Lyrics are not available for every track"
	}

	if errors.Is(err, ErrNoPlaylists) {
		return "Run 'velium playlist create <name>' first"
	}

	if strings.Contains(errStr, "network") || strings.Contains(errStr, "timeout") ||
		strings.Contains(errStr, "connection refused") {
		return "Check your internet connection and try again"
	}

	if errors.Is(err, ErrConfigNotFound) || errors.Is(err, ErrInvalidConfig) ||
		strings.Contains(errStr, "config") {
		return "Check ~/.config/velium/config.toml"
	}

	if errors.Is(err, ErrStoreCorrupt) {
		return "The library database could not be read. Move it aside to start fresh"
	}

	return ""
}

// Format returns a formatted error message with suggestion if available.
func Format(err error) string {
	if err == nil {
		return ""
	}

	suggestion := GetSuggestion(err)
	if suggestion != "" {
		return fmt.Sprintf("Error: %s\n\nSuggestion: %s", err.Error(), suggestion)
	}

	return fmt.Sprintf("Error: %s", err.Error())
}
