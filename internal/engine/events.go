package engine

import (
	"time"

	"github.com/velium/velium/internal/core"
)

// EventType represents the type of playback event.
type EventType int

const (
	EventTrackChange EventType = iota
	EventStateChange
	EventVolumeChange
	EventTransitionStart
	EventTransitionEnd
	EventQueueDone
)

// Event represents a playback state change emitted by the engine.
type Event struct {
	Type      EventType
	Timestamp time.Time
	Track     *core.Track
	Index     int
	Previous  core.State
	Current   core.State
	Volume    float64
	Muted     bool
	Liked     bool
}

// emit sends an event without blocking; events are dropped when the
// channel is full.
func (e *Engine) emit(ev Event) {
	ev.Timestamp = time.Now()
	select {
	case e.events <- ev:
	default:
		// Drop event if channel is full
	}
}
