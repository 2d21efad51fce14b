package engine

import (
	"context"
	"math"
	"sync"
	"testing"
	"time"

	"github.com/velium/velium/internal/audio"
	"github.com/velium/velium/internal/config"
	"github.com/velium/velium/internal/core"
)

// fakeOutput is a controllable Output for engine tests.
type fakeOutput struct {
	mu       sync.Mutex
	url      string
	duration time.Duration
	pos      time.Duration
	volume   float64
	playing  bool
	failPlay bool
	loads    int
	stops    int
}

func (f *fakeOutput) Load(url string, duration time.Duration) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.url = url
	f.duration = duration
	f.pos = 0
	f.playing = false
	f.loads++
}

func (f *fakeOutput) Play(ctx context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failPlay {
		return context.DeadlineExceeded
	}
	f.playing = true
	return nil
}

func (f *fakeOutput) Pause() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.playing = false
}

func (f *fakeOutput) Stop() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.playing = false
	f.pos = 0
	f.stops++
}

func (f *fakeOutput) Seek(to time.Duration) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.pos = to
}

func (f *fakeOutput) SetVolume(level float64) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.volume = level
}

func (f *fakeOutput) Volume() float64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.volume
}

func (f *fakeOutput) Position() time.Duration {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.pos
}

func (f *fakeOutput) Duration() time.Duration {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.duration
}

func (f *fakeOutput) Playing() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.playing
}

func (f *fakeOutput) Ended() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.duration > 0 && f.pos >= f.duration
}

func (f *fakeOutput) setPos(to time.Duration) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.pos = to
}

func newTestEngine(settings *config.Settings, opts ...Option) (*Engine, []*fakeOutput) {
	var outs []*fakeOutput
	factory := audio.Factory(func() audio.Output {
		o := &fakeOutput{volume: 1.0}
		outs = append(outs, o)
		return o
	})
	e := New(factory, settings, opts...)
	return e, outs
}

func track(id, title string, dur time.Duration) core.Track {
	return core.Track{
		ID:        id,
		Title:     title,
		Artist:    "Artist",
		StreamURL: "https://cdn/" + id + ".mp3",
		Duration:  dur,
	}
}

func TestPlaySingleTrack(t *testing.T) {
	e, outs := newTestEngine(nil)
	t1 := track("t1", "One", time.Minute)

	e.Play(context.Background(), t1)

	state := e.State()
	if state.State != core.StatePlaying {
		t.Errorf("state = %v, want playing", state.State)
	}
	if !state.HasTrack() || state.Track.ID != "t1" {
		t.Errorf("track = %v, want t1", state.Track)
	}
	if outs[0].url != t1.StreamURL {
		t.Errorf("slot url = %q, want %q", outs[0].url, t1.StreamURL)
	}
	if !outs[0].Playing() {
		t.Error("active slot should be playing")
	}
	if outs[1].loads != 0 {
		t.Error("inactive slot should be untouched")
	}
}

func TestPlayWithoutStreamURLIsNoOp(t *testing.T) {
	e, outs := newTestEngine(nil)

	e.Play(context.Background(), core.Track{Title: "Ghost"})

	if state := e.State(); state.State != core.StateIdle {
		t.Errorf("state = %v, want idle", state.State)
	}
	if outs[0].loads != 0 || outs[1].loads != 0 {
		t.Error("no slot should be loaded for an unplayable track")
	}
}

func TestPlayRejectedLeavesPaused(t *testing.T) {
	e, outs := newTestEngine(nil)
	outs[0].failPlay = true

	e.Play(context.Background(), track("t1", "One", time.Minute))

	state := e.State()
	if state.State != core.StatePaused {
		t.Errorf("state = %v, want paused after rejected start", state.State)
	}
	if !state.HasTrack() {
		t.Error("metadata should still reflect the requested track")
	}
}

func TestTogglePlayPause(t *testing.T) {
	ctx := context.Background()
	e, outs := newTestEngine(nil)

	// No-op with nothing loaded
	e.TogglePlayPause(ctx)
	if e.State().State != core.StateIdle {
		t.Error("toggle with no track should stay idle")
	}

	e.Play(ctx, track("t1", "One", time.Minute))
	e.TogglePlayPause(ctx)
	if e.State().State != core.StatePaused {
		t.Error("toggle while playing should pause")
	}
	if outs[0].Playing() {
		t.Error("slot should be paused")
	}

	e.TogglePlayPause(ctx)
	if e.State().State != core.StatePlaying {
		t.Error("toggle while paused should resume")
	}
}

func TestAdvanceThroughQueue(t *testing.T) {
	ctx := context.Background()
	e, outs := newTestEngine(nil)
	t1 := track("t1", "One", time.Minute)
	t2 := track("t2", "Two", time.Minute)

	e.PlayQueue(ctx, []core.Track{t1, t2}, 0)

	// Natural end of t1
	outs[0].setPos(time.Minute)
	e.pollOnce(ctx)

	state := e.State()
	if state.State != core.StatePlaying || state.Track.ID != "t2" {
		t.Fatalf("after first advance: state=%v track=%v, want playing t2", state.State, state.Track)
	}
	// Crossfade disabled: the same slot keeps playing
	if outs[0].loads != 2 || outs[1].loads != 0 {
		t.Errorf("loads = %d/%d, want both tracks on slot 0", outs[0].loads, outs[1].loads)
	}

	// Natural end of t2
	outs[0].setPos(time.Minute)
	stopsBefore := outs[0].stops + outs[1].stops
	e.pollOnce(ctx)

	state = e.State()
	if state.State != core.StateIdle {
		t.Errorf("state = %v, want idle after queue exhaustion", state.State)
	}
	if state.HasTrack() {
		t.Error("no track should be current after queue exhaustion")
	}
	if got := outs[0].stops + outs[1].stops; got != stopsBefore {
		t.Error("going idle should not mutate slots")
	}
}

func TestAdvanceSkipsUnplayable(t *testing.T) {
	ctx := context.Background()
	e, _ := newTestEngine(nil)
	t1 := track("t1", "One", time.Minute)
	ghost := core.Track{Title: "Ghost"}
	t3 := track("t3", "Three", time.Minute)

	e.PlayQueue(ctx, []core.Track{t1, ghost, t3}, 0)
	e.Advance(ctx)

	state := e.State()
	if !state.HasTrack() || state.Track.ID != "t3" {
		t.Errorf("track = %v, want t3 (ghost skipped)", state.Track)
	}
}

func TestMuteUnmuteRoundTrip(t *testing.T) {
	e, outs := newTestEngine(nil)
	e.Play(context.Background(), track("t1", "One", time.Minute))

	e.SetVolume(0.8)
	for i := 0; i < 3; i++ {
		e.Mute()
		if got := outs[0].Volume(); got != 0 {
			t.Fatalf("cycle %d: slot volume = %v while muted, want 0", i, got)
		}
		e.Unmute()
		if got := outs[0].Volume(); got != 0.8 {
			t.Fatalf("cycle %d: slot volume = %v after unmute, want exactly 0.8", i, got)
		}
	}
	if got := e.Volume(); got != 0.8 {
		t.Errorf("target volume = %v, want 0.8", got)
	}
}

func TestSetVolumeClamps(t *testing.T) {
	e, _ := newTestEngine(nil)
	e.SetVolume(1.7)
	if got := e.Volume(); got != 1.0 {
		t.Errorf("Volume = %v, want clamp to 1.0", got)
	}
	e.SetVolume(-0.3)
	if got := e.Volume(); got != 0 {
		t.Errorf("Volume = %v, want clamp to 0", got)
	}
}

func TestSeekDragSuppression(t *testing.T) {
	e, outs := newTestEngine(nil)
	e.Play(context.Background(), track("t1", "One", time.Minute))
	outs[0].setPos(10 * time.Second)

	e.BeginSeekDrag()
	e.Seek(30 * time.Second) // polled seek must lose to the drag
	if got := outs[0].Position(); got != 10*time.Second {
		t.Errorf("slot position = %v, drag should suppress Seek", got)
	}

	e.DragSeek(20 * time.Second)
	if got := e.State().Position; got != 20*time.Second {
		t.Errorf("reported position = %v, want dragged 20s", got)
	}

	e.EndSeekDrag()
	if got := outs[0].Position(); got != 20*time.Second {
		t.Errorf("slot position = %v, want drag target applied on release", got)
	}

	e.Seek(5 * time.Second)
	if got := outs[0].Position(); got != 5*time.Second {
		t.Errorf("slot position = %v, Seek should work after drag ends", got)
	}
}

func TestSetCrossfadePersists(t *testing.T) {
	dir := t.TempDir()
	store, err := config.NewSettingsStore(dir + "/settings.json")
	if err != nil {
		t.Fatal(err)
	}
	e, _ := newTestEngine(nil, WithSettingsStore(store))

	e.SetCrossfade(true, 8*time.Second)

	saved, err := store.Load()
	if err != nil {
		t.Fatal(err)
	}
	if saved == nil || !saved.Crossfade || saved.CrossfadeSeconds != 8 {
		t.Errorf("saved settings = %+v, want crossfade on at 8s", saved)
	}

	enabled, dur := e.Crossfade()
	if !enabled || dur != 8*time.Second {
		t.Errorf("Crossfade() = %v/%v", enabled, dur)
	}
}

func TestLikedIndicatorOnPlay(t *testing.T) {
	likedID := "t1"
	e, _ := newTestEngine(nil, WithLikedFunc(func(tr core.Track) bool {
		return tr.ID == likedID
	}))

	e.Play(context.Background(), track("t1", "One", time.Minute))

	ev := drainForType(t, e.Events(), EventTrackChange)
	if !ev.Liked {
		t.Error("track-change event should carry the liked indicator")
	}
	if !e.State().Liked {
		t.Error("state should report the track as liked")
	}
}

// drainForType reads buffered events until one of the wanted type appears.
func drainForType(t *testing.T, ch <-chan Event, want EventType) Event {
	t.Helper()
	for {
		select {
		case ev := <-ch:
			if ev.Type == want {
				return ev
			}
		default:
			t.Fatalf("no %v event buffered", want)
		}
	}
}

func approx(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}
