package watch

import (
	"strings"
	"testing"
	"time"

	"github.com/velium/velium/internal/core"
	"github.com/velium/velium/internal/engine"
)

func trackEvent() engine.Event {
	return engine.Event{
		Type:      engine.EventTrackChange,
		Timestamp: time.Date(2026, 3, 1, 14, 30, 5, 0, time.UTC),
		Track:     &core.Track{Title: "Song", Artist: "Artist"},
		Current:   core.StatePlaying,
		Volume:    0.8,
	}
}

func TestFormatTrackChange(t *testing.T) {
	f := NewFormatter(WithEmoji(false))
	got := f.Format(trackEvent())
	if got != "Now playing: Artist - Song" {
		t.Errorf("Format() = %q", got)
	}
}

func TestFormatLikedMarker(t *testing.T) {
	f := NewFormatter(WithEmoji(false))
	e := trackEvent()
	e.Liked = true
	if got := f.Format(e); !strings.HasSuffix(got, "♥") {
		t.Errorf("Format() = %q, want liked marker", got)
	}
}

func TestFormatTimestamp(t *testing.T) {
	f := NewFormatter(WithEmoji(false), WithTimestamp(true))
	got := f.Format(trackEvent())
	if !strings.HasPrefix(got, "14:30:05 ") {
		t.Errorf("Format() = %q, want timestamp prefix", got)
	}
}

func TestFormatVolumeAndMute(t *testing.T) {
	f := NewFormatter(WithEmoji(false))

	e := engine.Event{Type: engine.EventVolumeChange, Volume: 0.5}
	if got := f.Format(e); got != "Volume: 50%" {
		t.Errorf("Format() = %q", got)
	}

	e.Muted = true
	if got := f.Format(e); got != "Muted" {
		t.Errorf("Format() = %q", got)
	}
}

func TestFormatTemplate(t *testing.T) {
	f := NewFormatter(WithTemplate("{{.Type}}|{{.Artist}}|{{.Title}}"))
	got := f.Format(trackEvent())
	if got != "track_change|Artist|Song" {
		t.Errorf("Format() = %q", got)
	}
}

func TestFormatBadTemplateFallsBack(t *testing.T) {
	f := NewFormatter(WithEmoji(false), WithTemplate("{{.Missing"))
	got := f.Format(trackEvent())
	if got != "Now playing: Artist - Song" {
		t.Errorf("Format() = %q, want fallback line", got)
	}
}

func TestFormatTransition(t *testing.T) {
	f := NewFormatter(WithEmoji(false))
	e := engine.Event{
		Type:  engine.EventTransitionStart,
		Track: &core.Track{Title: "Next", Artist: "Someone"},
	}
	if got := f.Format(e); got != "Crossfading into: Someone - Next" {
		t.Errorf("Format() = %q", got)
	}

	if got := f.Format(engine.Event{Type: engine.EventQueueDone}); got != "Queue finished" {
		t.Errorf("Format() = %q", got)
	}
}
