package core

// Queue represents a playback queue. CurrentIndex is -1 when no track is
// active, otherwise it is always within bounds.
type Queue struct {
	Tracks       []Track `json:"tracks"`
	CurrentIndex int     `json:"current_index"`
}

// NewQueue builds a queue positioned at index. An out-of-bounds index is
// clamped to -1.
func NewQueue(tracks []Track, index int) *Queue {
	if index < 0 || index >= len(tracks) {
		index = -1
	}
	return &Queue{Tracks: tracks, CurrentIndex: index}
}

// Current returns the currently playing track, or nil if the queue is empty.
func (q *Queue) Current() *Track {
	if q == nil || len(q.Tracks) == 0 || q.CurrentIndex < 0 || q.CurrentIndex >= len(q.Tracks) {
		return nil
	}
	return &q.Tracks[q.CurrentIndex]
}

// Next returns the track after the current position, or nil at the end.
func (q *Queue) Next() *Track {
	if q == nil || q.CurrentIndex < 0 || q.CurrentIndex+1 >= len(q.Tracks) {
		return nil
	}
	return &q.Tracks[q.CurrentIndex+1]
}

// Upcoming returns tracks after the current position.
func (q *Queue) Upcoming() []Track {
	if q == nil || len(q.Tracks) == 0 || q.CurrentIndex < 0 || q.CurrentIndex >= len(q.Tracks)-1 {
		return nil
	}
	return q.Tracks[q.CurrentIndex+1:]
}

// Len returns the total number of tracks in the queue.
func (q *Queue) Len() int {
	if q == nil {
		return 0
	}
	return len(q.Tracks)
}

// IsEmpty returns true if the queue has no tracks.
func (q *Queue) IsEmpty() bool {
	return q.Len() == 0
}
