// Package watch renders playback events as output lines, for following
// playback from a terminal.
package watch

import (
	"bytes"
	"fmt"
	"strings"
	"text/template"

	"github.com/velium/velium/internal/core"
	"github.com/velium/velium/internal/engine"
)

// Formatter formats playback events for output.
type Formatter struct {
	showEmoji     bool
	showTimestamp bool
	template      *template.Template
}

// Option configures a Formatter.
type Option func(*Formatter)

// WithEmoji enables emoji output.
func WithEmoji(enabled bool) Option {
	return func(f *Formatter) {
		f.showEmoji = enabled
	}
}

// WithTimestamp enables timestamp output.
func WithTimestamp(enabled bool) Option {
	return func(f *Formatter) {
		f.showTimestamp = enabled
	}
}

// WithTemplate sets a custom format template.
func WithTemplate(tmpl string) Option {
	return func(f *Formatter) {
		if tmpl != "" {
			t, err := template.New("format").Parse(tmpl)
			if err == nil {
				f.template = t
			}
		}
	}
}

// NewFormatter creates a new formatter with the given options.
func NewFormatter(opts ...Option) *Formatter {
	f := &Formatter{
		showEmoji:     true,
		showTimestamp: false,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Format formats an event as a string.
func (f *Formatter) Format(e engine.Event) string {
	if f.template != nil {
		return f.formatTemplate(e)
	}
	return f.formatLine(e)
}

func (f *Formatter) formatLine(e engine.Event) string {
	var parts []string

	if f.showTimestamp {
		parts = append(parts, e.Timestamp.Format("15:04:05"))
	}

	if f.showEmoji {
		parts = append(parts, eventEmoji(e))
	}

	parts = append(parts, eventDescription(e))

	return strings.Join(parts, " ")
}

func (f *Formatter) formatTemplate(e engine.Event) string {
	data := templateData{
		Type:   eventTypeName(e.Type),
		Emoji:  eventEmoji(e),
		Time:   e.Timestamp.Format("15:04:05"),
		State:  e.Current.String(),
		Volume: int(e.Volume * 100),
		Muted:  e.Muted,
		Liked:  e.Liked,
	}

	if e.Track != nil {
		data.Title = e.Track.Title
		data.Artist = e.Track.Artist
		data.Album = e.Track.Album
	}

	var buf bytes.Buffer
	if err := f.template.Execute(&buf, data); err != nil {
		return f.formatLine(e)
	}
	return buf.String()
}

type templateData struct {
	Type   string
	Emoji  string
	Time   string
	Title  string
	Artist string
	Album  string
	State  string
	Volume int
	Muted  bool
	Liked  bool
}

// eventDescription returns a human-readable description of the event.
func eventDescription(e engine.Event) string {
	switch e.Type {
	case engine.EventTrackChange:
		if e.Track != nil {
			line := fmt.Sprintf("Now playing: %s - %s", e.Track.Artist, e.Track.Title)
			if e.Liked {
				line += " ♥"
			}
			return line
		}
		return "Track changed"

	case engine.EventStateChange:
		switch e.Current {
		case core.StatePlaying:
			return "Resumed"
		case core.StatePaused:
			return "Paused"
		case core.StateIdle:
			return "Stopped"
		case core.StateTransitioning:
			return "Crossfading"
		}
		return "State changed"

	case engine.EventVolumeChange:
		if e.Muted {
			return "Muted"
		}
		return fmt.Sprintf("Volume: %d%%", int(e.Volume*100))

	case engine.EventTransitionStart:
		if e.Track != nil {
			return fmt.Sprintf("Crossfading into: %s - %s", e.Track.Artist, e.Track.Title)
		}
		return "Crossfade started"

	case engine.EventTransitionEnd:
		return "Crossfade complete"

	case engine.EventQueueDone:
		return "Queue finished"

	default:
		return "Unknown event"
	}
}

// eventEmoji returns an emoji for the event.
func eventEmoji(e engine.Event) string {
	switch e.Type {
	case engine.EventTrackChange:
		return "🎵"
	case engine.EventStateChange:
		switch e.Current {
		case core.StatePlaying:
			return "▶️"
		case core.StatePaused:
			return "⏸️"
		default:
			return "⏹️"
		}
	case engine.EventVolumeChange:
		if e.Muted {
			return "🔇"
		}
		return "🔊"
	case engine.EventTransitionStart, engine.EventTransitionEnd:
		return "🔀"
	case engine.EventQueueDone:
		return "✅"
	default:
		return "❓"
	}
}

// eventTypeName returns the name of the event type.
func eventTypeName(t engine.EventType) string {
	switch t {
	case engine.EventTrackChange:
		return "track_change"
	case engine.EventStateChange:
		return "state_change"
	case engine.EventVolumeChange:
		return "volume_change"
	case engine.EventTransitionStart:
		return "transition_start"
	case engine.EventTransitionEnd:
		return "transition_end"
	case engine.EventQueueDone:
		return "queue_done"
	default:
		return "unknown"
	}
}
