package engine

import (
	"context"
	"time"

	"github.com/velium/velium/internal/core"
)

// beginTransitionLocked enters the Transitioning state: the next queued
// track is loaded into the inactive slot at volume zero, that slot becomes
// the metadata-authoritative active slot immediately, and the fade timer
// starts ramping the two volumes linearly.
func (e *Engine) beginTransitionLocked(ctx context.Context) {
	next := e.queue.Next()
	if next == nil || !next.Playable() {
		return
	}

	incoming := e.slots[1-e.active]
	incoming.Stop()
	incoming.Load(next.StreamURL, next.Duration)
	incoming.SetVolume(0)

	e.fadeSteps = int(e.fadeDur / e.tick)
	if e.fadeSteps < 1 {
		e.fadeSteps = 1
	}
	e.fadeStep = 0

	e.active = 1 - e.active
	e.queue.CurrentIndex++

	prev := e.state
	e.state = core.StateTransitioning

	liked := false
	if e.liked != nil {
		liked = e.liked(*next)
	}
	e.emit(Event{Type: EventTransitionStart, Track: next, Index: e.queue.CurrentIndex})
	e.emit(Event{Type: EventTrackChange, Track: next, Index: e.queue.CurrentIndex, Liked: liked})
	e.emit(Event{Type: EventStateChange, Previous: prev, Current: core.StateTransitioning})

	e.logger.Info("crossfading", "title", next.Title, "duration", e.fadeDur)

	cancel := make(chan struct{})
	e.fadeCancel = cancel

	go func() {
		if err := incoming.Play(ctx); err != nil {
			e.logger.Warn("crossfade start rejected", "title", next.Title, "err", err)
			e.revertTransition()
		}
	}()
	go e.fadeLoop(cancel)
}

// fadeLoop drives the fade timer until the fade completes or is cancelled.
func (e *Engine) fadeLoop(cancel <-chan struct{}) {
	ticker := time.NewTicker(e.tick)
	defer ticker.Stop()

	for {
		select {
		case <-cancel:
			return
		case <-ticker.C:
			if e.fadeTick() {
				return
			}
		}
	}
}

// fadeTick advances the fade by one discrete step. Returns true when the
// fade is over.
func (e *Engine) fadeTick() bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.state != core.StateTransitioning {
		return true
	}

	e.fadeStep++
	if e.fadeStep >= e.fadeSteps {
		e.finishFadeLocked()
		return true
	}

	e.applyVolumesLocked()
	return false
}

// finishFadeLocked forces both slots to their exact terminal volumes to
// eliminate floating-point drift, stops and rewinds the outgoing slot, and
// returns the engine to Playing on the swapped-in slot.
func (e *Engine) finishFadeLocked() {
	eff := e.effectiveVolume()
	outgoing := e.slots[1-e.active]
	outgoing.SetVolume(0)
	outgoing.Stop()
	outgoing.SetVolume(eff)
	e.slots[e.active].SetVolume(eff)

	e.stopFadeTimerLocked()
	prev := e.state
	e.state = core.StatePlaying
	e.emit(Event{Type: EventTransitionEnd, Track: e.queue.Current(), Index: e.queue.CurrentIndex})
	e.emit(Event{Type: EventStateChange, Previous: prev, Current: core.StatePlaying})
}

// cancelFadeLocked aborts an in-flight transition without completing it.
// The outgoing slot is stopped and reset; the caller is expected to
// reload the active slot immediately (an explicit play request).
func (e *Engine) cancelFadeLocked() {
	if e.state != core.StateTransitioning {
		return
	}
	eff := e.effectiveVolume()
	outgoing := e.slots[1-e.active]
	outgoing.Stop()
	outgoing.SetVolume(eff)

	e.stopFadeTimerLocked()
	e.state = core.StatePlaying
}

// revertTransition rolls a transition back to the outgoing track after the
// incoming stream failed to start.
func (e *Engine) revertTransition() {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.state != core.StateTransitioning {
		return
	}

	failed := e.slots[e.active]
	failed.Stop()
	failed.SetVolume(e.effectiveVolume())

	e.active = 1 - e.active
	e.queue.CurrentIndex--
	e.stopFadeTimerLocked()
	e.state = core.StatePlaying
	e.slots[e.active].SetVolume(e.effectiveVolume())

	if cur := e.queue.Current(); cur != nil {
		liked := false
		if e.liked != nil {
			liked = e.liked(*cur)
		}
		e.emit(Event{Type: EventTrackChange, Track: cur, Index: e.queue.CurrentIndex, Liked: liked})
	}
	e.emit(Event{Type: EventStateChange, Previous: core.StateTransitioning, Current: core.StatePlaying})
}

// stopFadeTimerLocked clears the single live fade timer, if any.
func (e *Engine) stopFadeTimerLocked() {
	if e.fadeCancel != nil {
		close(e.fadeCancel)
		e.fadeCancel = nil
	}
	e.fadeStep = 0
	e.fadeSteps = 0
}
