// Package audio defines the playback output slot abstraction. The engine
// owns two interchangeable Outputs so a crossfade can overlap them; no
// other component touches an Output directly.
package audio

import (
	"context"
	"time"
)

// Output is a single playback slot. Implementations model a media element:
// load a source, control transport, ramp volume, report position.
type Output interface {
	// Load replaces the slot's source and rewinds to zero.
	Load(url string, duration time.Duration)
	// Play starts or resumes playback. A rejected start is returned as an
	// error; callers decide whether to surface it.
	Play(ctx context.Context) error
	// Pause halts playback, keeping the current position.
	Pause()
	// Stop halts playback and rewinds to zero.
	Stop()
	// Seek moves the playhead, clamped to [0, duration].
	Seek(to time.Duration)

	SetVolume(level float64)
	Volume() float64

	Position() time.Duration
	Duration() time.Duration
	Playing() bool
	// Ended reports whether the playhead has reached the end of the source.
	Ended() bool
}

// Factory creates Outputs. The engine calls it twice, once per slot.
type Factory func() Output
