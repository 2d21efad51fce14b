package core

import "testing"

func TestTrackKeyPrecedence(t *testing.T) {
	withID := Track{ID: "abc", StreamURL: "https://cdn/x.mp3", Title: "Song", Artist: "Artist"}
	if withID.Key() != "abc" {
		t.Errorf("Key = %q, want %q", withID.Key(), "abc")
	}

	withURL := Track{StreamURL: "https://cdn/x.mp3", Title: "Song", Artist: "Artist"}
	if withURL.Key() != "https://cdn/x.mp3" {
		t.Errorf("Key = %q, want stream URL", withURL.Key())
	}

	bare := Track{Title: "Song", Artist: "Artist"}
	if bare.Key() != "Song\x00Artist" {
		t.Errorf("Key = %q, want title+artist composite", bare.Key())
	}
}

func TestSameAsIDWinsOverURL(t *testing.T) {
	stale := Track{ID: "abc", StreamURL: "https://cdn/old.mp3"}
	fresh := Track{ID: "abc", StreamURL: "https://cdn/new.mp3"}
	if !stale.SameAs(fresh) {
		t.Error("tracks with equal IDs should match despite different URLs")
	}

	other := Track{ID: "def", StreamURL: "https://cdn/old.mp3"}
	if stale.SameAs(other) {
		t.Error("tracks with different IDs should not match even with equal URLs")
	}
}

func TestSameAsURLFallback(t *testing.T) {
	a := Track{StreamURL: "https://cdn/x.mp3"}
	b := Track{ID: "abc", StreamURL: "https://cdn/x.mp3"}
	if !a.SameAs(b) {
		t.Error("URL match should apply when one side has no ID")
	}
}

func TestQueueBounds(t *testing.T) {
	q := NewQueue([]Track{{Title: "A"}, {Title: "B"}}, 5)
	if q.CurrentIndex != -1 {
		t.Errorf("CurrentIndex = %d, want -1 for out-of-bounds start", q.CurrentIndex)
	}
	if q.Current() != nil {
		t.Error("Current() should be nil when index is -1")
	}

	q = NewQueue([]Track{{Title: "A"}, {Title: "B"}}, 0)
	if got := q.Current(); got == nil || got.Title != "A" {
		t.Errorf("Current() = %v, want A", got)
	}
	if next := q.Next(); next == nil || next.Title != "B" {
		t.Errorf("Next() = %v, want B", next)
	}

	q.CurrentIndex = 1
	if q.Next() != nil {
		t.Error("Next() at last position should be nil")
	}
	if len(q.Upcoming()) != 0 {
		t.Error("Upcoming() at last position should be empty")
	}
}
