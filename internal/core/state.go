package core

import "time"

// State represents the playback engine's state.
type State int

const (
	StateIdle          State = iota // no slot playing
	StatePlaying                    // active slot producing audio
	StatePaused                     // active slot loaded but paused
	StateTransitioning              // both slots audible during a crossfade
)

// String returns the string representation of the state.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StatePlaying:
		return "playing"
	case StatePaused:
		return "paused"
	case StateTransitioning:
		return "transitioning"
	default:
		return "unknown"
	}
}

// PlaybackState is a snapshot of the engine's externally visible state.
type PlaybackState struct {
	Track    *Track        `json:"track"`
	State    State         `json:"state"`
	Position time.Duration `json:"position"`
	Volume   float64       `json:"volume"`
	Muted    bool          `json:"muted"`
	Liked    bool          `json:"liked"`
}

// HasTrack returns true if there is an active track.
func (s *PlaybackState) HasTrack() bool {
	return s != nil && s.Track != nil
}

// IsPlaying returns true if audio is being produced.
func (s *PlaybackState) IsPlaying() bool {
	return s != nil && (s.State == StatePlaying || s.State == StateTransitioning)
}

// ProgressPercent returns playback progress as a percentage (0-100).
func (s *PlaybackState) ProgressPercent() float64 {
	if s == nil || s.Track == nil || s.Track.Duration == 0 {
		return 0
	}
	return float64(s.Position) / float64(s.Track.Duration) * 100
}
