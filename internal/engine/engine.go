// Package engine implements the playback engine: two interchangeable
// output slots, the queue, and the crossfade transition between tracks.
// All playback state lives here; nothing else mutates the slots.
package engine

import (
	"context"
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/velium/velium/internal/audio"
	"github.com/velium/velium/internal/config"
	"github.com/velium/velium/internal/core"
)

const (
	// defaultTick is the interval of the crossfade and progress timers.
	defaultTick = 100 * time.Millisecond
)

// LikedFunc reports whether a track is in the liked list. It is consulted
// synchronously on every track change so the liked indicator never lags
// the metadata.
type LikedFunc func(core.Track) bool

// Engine owns the pair of playback slots and the queue. Exactly one slot
// is the metadata-authoritative active slot at any instant outside of a
// transition.
type Engine struct {
	mu sync.Mutex

	slots  [2]audio.Output
	active int

	queue *core.Queue
	state core.State

	volume float64 // target (pre-mute) level
	muted  bool

	fadeEnabled bool
	fadeDur     time.Duration
	tick        time.Duration

	// fade timer state; at most one fade may be live at a time
	fadeStep   int
	fadeSteps  int
	fadeCancel chan struct{}

	dragging bool
	dragPos  time.Duration

	playSeq int // invalidates in-flight Play calls

	settings *config.SettingsStore
	liked    LikedFunc
	logger   *log.Logger
	events   chan Event
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the engine's logger.
func WithLogger(l *log.Logger) Option {
	return func(e *Engine) { e.logger = l }
}

// WithSettingsStore sets the store that receives settings writes on
// volume/crossfade changes.
func WithSettingsStore(s *config.SettingsStore) Option {
	return func(e *Engine) { e.settings = s }
}

// WithLikedFunc sets the liked-track lookup.
func WithLikedFunc(fn LikedFunc) Option {
	return func(e *Engine) { e.liked = fn }
}

// WithTickInterval overrides the fade/progress tick interval.
func WithTickInterval(d time.Duration) Option {
	return func(e *Engine) {
		if d > 0 {
			e.tick = d
		}
	}
}

// New creates an engine with two slots from the factory, applying saved
// settings.
func New(factory audio.Factory, settings *config.Settings, opts ...Option) *Engine {
	e := &Engine{
		slots:  [2]audio.Output{factory(), factory()},
		queue:  core.NewQueue(nil, -1),
		state:  core.StateIdle,
		volume: 1.0,
		tick:   defaultTick,
		events: make(chan Event, 16),
	}
	if settings != nil {
		e.volume = clamp(settings.Volume)
		e.muted = settings.Muted
		e.fadeEnabled = settings.Crossfade
		e.fadeDur = time.Duration(settings.CrossfadeSeconds) * time.Second
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.logger == nil {
		e.logger = log.New(io.Discard)
	}
	e.slots[e.active].SetVolume(e.effectiveVolume())
	return e
}

// Events returns the channel of playback events.
func (e *Engine) Events() <-chan Event {
	return e.events
}

// State returns a snapshot of the engine's externally visible state.
func (e *Engine) State() *core.PlaybackState {
	e.mu.Lock()
	defer e.mu.Unlock()

	s := &core.PlaybackState{
		Track:  e.queue.Current(),
		State:  e.state,
		Volume: e.volume,
		Muted:  e.muted,
	}
	if s.Track != nil {
		s.Position = e.slots[e.active].Position()
		if e.dragging {
			s.Position = e.dragPos
		}
		if e.liked != nil {
			s.Liked = e.liked(*s.Track)
		}
	}
	return s
}

// Queue returns a copy of the current queue.
func (e *Engine) Queue() *core.Queue {
	e.mu.Lock()
	defer e.mu.Unlock()
	tracks := make([]core.Track, len(e.queue.Tracks))
	copy(tracks, e.queue.Tracks)
	return &core.Queue{Tracks: tracks, CurrentIndex: e.queue.CurrentIndex}
}

// Crossfade returns the current crossfade settings.
func (e *Engine) Crossfade() (bool, time.Duration) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.fadeEnabled, e.fadeDur
}

// Play plays a single track as its own one-element queue.
func (e *Engine) Play(ctx context.Context, track core.Track) {
	e.PlayQueue(ctx, []core.Track{track}, 0)
}

// PlayQueue plays the track at index within queue. A track without a
// resolved stream URL is a silent no-op. Any in-flight transition is
// cancelled immediately: explicit user intent overrides the scheduled
// fade.
func (e *Engine) PlayQueue(ctx context.Context, tracks []core.Track, index int) {
	if index < 0 || index >= len(tracks) {
		return
	}
	track := tracks[index]
	if !track.Playable() {
		e.logger.Debug("track has no stream url, ignoring play", "title", track.Title)
		return
	}

	e.mu.Lock()
	e.cancelFadeLocked()

	e.playSeq++
	seq := e.playSeq

	prev := e.state
	e.queue = core.NewQueue(tracks, index)
	slot := e.slots[e.active]
	slot.Stop()
	slot.Load(track.StreamURL, track.Duration)
	slot.SetVolume(e.effectiveVolume())
	e.state = core.StatePlaying

	// Metadata and the liked indicator update before the stream starts
	// loading.
	liked := false
	if e.liked != nil {
		liked = e.liked(track)
	}
	e.emit(Event{Type: EventTrackChange, Track: &track, Index: index, Liked: liked})
	if prev != core.StatePlaying {
		e.emit(Event{Type: EventStateChange, Previous: prev, Current: core.StatePlaying})
	}
	e.mu.Unlock()

	e.logger.Info("playing", "title", track.Title, "artist", track.Artist)

	// Start the stream outside the lock; a rejected start is logged and
	// swallowed, leaving the engine paused on the loaded track.
	if err := slot.Play(ctx); err != nil {
		e.logger.Warn("playback start rejected", "title", track.Title, "err", err)
		e.mu.Lock()
		if e.playSeq == seq {
			e.state = core.StatePaused
			e.emit(Event{Type: EventStateChange, Previous: core.StatePlaying, Current: core.StatePaused})
		}
		e.mu.Unlock()
	}
}

// TogglePlayPause pauses if playing, resumes if paused. No-op when no
// track is loaded. Pausing mid-transition completes the handoff first so
// only the active slot is ever paused.
func (e *Engine) TogglePlayPause(ctx context.Context) {
	e.mu.Lock()
	if e.queue.Current() == nil {
		e.mu.Unlock()
		return
	}
	if e.state == core.StateTransitioning {
		e.finishFadeLocked()
	}

	switch e.state {
	case core.StatePlaying:
		e.slots[e.active].Pause()
		e.setStateLocked(core.StatePaused)
		e.mu.Unlock()
	case core.StatePaused:
		slot := e.slots[e.active]
		e.setStateLocked(core.StatePlaying)
		e.mu.Unlock()
		if err := slot.Play(ctx); err != nil {
			e.logger.Warn("resume rejected", "err", err)
			e.mu.Lock()
			e.setStateLocked(core.StatePaused)
			e.mu.Unlock()
		}
	default:
		e.mu.Unlock()
	}
}

// Seek moves the active slot's playhead. Suppressed while a seek drag is
// in progress: drag input wins over polled position until the drag ends.
func (e *Engine) Seek(to time.Duration) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.dragging || e.queue.Current() == nil {
		return
	}
	e.slots[e.active].Seek(to)
}

// BeginSeekDrag marks the start of a position-control drag.
func (e *Engine) BeginSeekDrag() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.dragging = true
	e.dragPos = e.slots[e.active].Position()
}

// DragSeek records the dragged position without applying it.
func (e *Engine) DragSeek(to time.Duration) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.dragging {
		e.dragPos = to
	}
}

// EndSeekDrag applies the dragged position and re-enables normal seeks.
func (e *Engine) EndSeekDrag() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.dragging {
		return
	}
	e.dragging = false
	if e.queue.Current() != nil {
		e.slots[e.active].Seek(e.dragPos)
	}
}

// Advance moves to the next queued track on natural end-of-track,
// skipping entries without a playable source. At the end of the queue the
// engine goes idle without further slot mutation.
func (e *Engine) Advance(ctx context.Context) {
	e.mu.Lock()
	if e.queue.CurrentIndex < 0 {
		e.mu.Unlock()
		return
	}
	tracks := e.queue.Tracks
	index := -1
	for i := e.queue.CurrentIndex + 1; i < len(tracks); i++ {
		if tracks[i].Playable() {
			index = i
			break
		}
	}
	if index == -1 {
		prev := e.state
		e.queue.CurrentIndex = -1
		e.state = core.StateIdle
		e.emit(Event{Type: EventStateChange, Previous: prev, Current: core.StateIdle})
		e.emit(Event{Type: EventQueueDone})
		e.mu.Unlock()
		return
	}
	e.mu.Unlock()

	e.PlayQueue(ctx, tracks, index)
}

// SetCrossfade updates and persists the crossfade settings. An in-flight
// transition is unaffected.
func (e *Engine) SetCrossfade(enabled bool, duration time.Duration) {
	e.mu.Lock()
	e.fadeEnabled = enabled
	if duration > 0 {
		e.fadeDur = duration
	}
	e.mu.Unlock()
	e.persistSettings()
}

// SetVolume sets the target volume, clamped to [0, 1]. During a
// transition both slots are rescaled proportionally to their fade state.
func (e *Engine) SetVolume(level float64) {
	e.mu.Lock()
	e.volume = clamp(level)
	e.applyVolumesLocked()
	e.emit(Event{Type: EventVolumeChange, Volume: e.volume, Muted: e.muted})
	e.mu.Unlock()
	e.persistSettings()
}

// Volume returns the target (pre-mute) volume.
func (e *Engine) Volume() float64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.volume
}

// Mute silences output, remembering the prior level.
func (e *Engine) Mute() {
	e.setMuted(true)
}

// Unmute restores the pre-mute volume level exactly.
func (e *Engine) Unmute() {
	e.setMuted(false)
}

func (e *Engine) setMuted(muted bool) {
	e.mu.Lock()
	e.muted = muted
	e.applyVolumesLocked()
	e.emit(Event{Type: EventVolumeChange, Volume: e.volume, Muted: e.muted})
	e.mu.Unlock()
	e.persistSettings()
}

// Run drives progress polling and end-of-track advancement until the
// context is cancelled.
func (e *Engine) Run(ctx context.Context) error {
	ticker := time.NewTicker(e.tick)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			e.pollOnce(ctx)
		}
	}
}

// pollOnce checks the active slot for a pending crossfade entry or
// natural end-of-track.
func (e *Engine) pollOnce(ctx context.Context) {
	e.mu.Lock()
	if e.state != core.StatePlaying {
		e.mu.Unlock()
		return
	}

	slot := e.slots[e.active]
	dur := slot.Duration()
	remaining := dur - slot.Position()

	// Enter a crossfade when a next track exists and the remaining time
	// drops within the configured window. The floor of one tick avoids
	// fading a track that is already effectively over.
	if e.fadeEnabled && e.queue.Next() != nil && dur > 0 &&
		remaining <= e.fadeDur && remaining > e.tick {
		e.beginTransitionLocked(ctx)
		e.mu.Unlock()
		return
	}

	if slot.Ended() {
		e.mu.Unlock()
		e.Advance(ctx)
		return
	}
	e.mu.Unlock()
}

// setStateLocked updates the state and emits a change event.
func (e *Engine) setStateLocked(next core.State) {
	if e.state == next {
		return
	}
	prev := e.state
	e.state = next
	e.emit(Event{Type: EventStateChange, Previous: prev, Current: next})
}

// effectiveVolume is the level audible output should use.
func (e *Engine) effectiveVolume() float64 {
	if e.muted {
		return 0
	}
	return e.volume
}

// applyVolumesLocked pushes the current effective volume to the slots,
// scaled by fade progress during a transition.
func (e *Engine) applyVolumesLocked() {
	eff := e.effectiveVolume()
	if e.state == core.StateTransitioning && e.fadeSteps > 0 {
		frac := float64(e.fadeStep) / float64(e.fadeSteps)
		e.slots[e.active].SetVolume(eff * frac)
		e.slots[1-e.active].SetVolume(eff * (1 - frac))
		return
	}
	e.slots[e.active].SetVolume(eff)
}

func (e *Engine) persistSettings() {
	if e.settings == nil {
		return
	}
	e.mu.Lock()
	s := &config.Settings{
		Volume:           e.volume,
		Muted:            e.muted,
		Crossfade:        e.fadeEnabled,
		CrossfadeSeconds: int(e.fadeDur / time.Second),
	}
	e.mu.Unlock()
	if err := e.settings.Save(s); err != nil {
		e.logger.Warn("failed to persist settings", "err", err)
	}
}

func clamp(level float64) float64 {
	if level < 0 {
		return 0
	}
	if level > 1 {
		return 1
	}
	return level
}
