package audio

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/charmbracelet/log"
)

// StreamOutput is an Output backed by an HTTP audio stream. It opens the
// stream to validate playability and models the transport position against
// the wall clock. Volume is tracked for the fade logic; actual sample
// mixing is left to the platform audio device.
type StreamOutput struct {
	mu sync.Mutex

	client *http.Client
	logger *log.Logger

	url      string
	duration time.Duration
	volume   float64
	playing  bool
	offset   time.Duration
	started  time.Time
}

// NewStreamOutput creates a stream-backed output slot.
func NewStreamOutput(client *http.Client, logger *log.Logger) *StreamOutput {
	if client == nil {
		client = &http.Client{Timeout: 15 * time.Second}
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &StreamOutput{
		client: client,
		logger: logger,
		volume: 1.0,
	}
}

// Load replaces the slot's source and rewinds to zero.
func (o *StreamOutput) Load(url string, duration time.Duration) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.url = url
	o.duration = duration
	o.offset = 0
	o.playing = false
}

// Play opens the stream and starts the transport clock. The request only
// reads the response headers; the body is closed immediately.
func (o *StreamOutput) Play(ctx context.Context) error {
	o.mu.Lock()
	url := o.url
	o.mu.Unlock()

	if url == "" {
		return fmt.Errorf("no source loaded")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Range", "bytes=0-1")

	resp, err := o.client.Do(req)
	if err != nil {
		return fmt.Errorf("stream unreachable: %w", err)
	}
	_ = resp.Body.Close()

	if resp.StatusCode >= 400 {
		return fmt.Errorf("stream rejected: status %d", resp.StatusCode)
	}

	o.mu.Lock()
	o.playing = true
	o.started = time.Now()
	o.mu.Unlock()

	o.logger.Debug("stream opened", "url", url)
	return nil
}

// Pause halts playback, keeping the current position.
func (o *StreamOutput) Pause() {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.playing {
		o.offset = o.positionLocked()
		o.playing = false
	}
}

// Stop halts playback and rewinds to zero.
func (o *StreamOutput) Stop() {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.playing = false
	o.offset = 0
}

// Seek moves the playhead, clamped to [0, duration].
func (o *StreamOutput) Seek(to time.Duration) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if to < 0 {
		to = 0
	}
	if o.duration > 0 && to > o.duration {
		to = o.duration
	}
	o.offset = to
	o.started = time.Now()
}

// SetVolume sets the slot volume, clamped to [0, 1].
func (o *StreamOutput) SetVolume(level float64) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if level < 0 {
		level = 0
	}
	if level > 1 {
		level = 1
	}
	o.volume = level
}

// Volume returns the slot volume.
func (o *StreamOutput) Volume() float64 {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.volume
}

// Position returns the current playhead position.
func (o *StreamOutput) Position() time.Duration {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.positionLocked()
}

func (o *StreamOutput) positionLocked() time.Duration {
	pos := o.offset
	if o.playing {
		pos += time.Since(o.started)
	}
	if o.duration > 0 && pos > o.duration {
		pos = o.duration
	}
	return pos
}

// Duration returns the loaded source's duration.
func (o *StreamOutput) Duration() time.Duration {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.duration
}

// Playing reports whether the transport is running.
func (o *StreamOutput) Playing() bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.playing
}

// Ended reports whether the playhead has reached the end of the source.
func (o *StreamOutput) Ended() bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.duration > 0 && o.positionLocked() >= o.duration
}

// Ensure StreamOutput implements Output
var _ Output = (*StreamOutput)(nil)
