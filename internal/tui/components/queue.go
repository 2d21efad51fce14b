package components

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/velium/velium/internal/core"
	"github.com/velium/velium/internal/tui/styles"
)

// Queue displays the playback queue
type Queue struct {
	offset int
}

// NewQueue creates a new Queue component
func NewQueue() *Queue {
	return &Queue{}
}

// ScrollDown scrolls the queue down
func (q *Queue) ScrollDown() {
	q.offset++
}

// ScrollUp scrolls the queue up
func (q *Queue) ScrollUp() {
	if q.offset > 0 {
		q.offset--
	}
}

// Render renders the queue panel
func (q *Queue) Render(queue *core.Queue, width, height int, focused bool) string {
	title := styles.PanelTitle("Queue", focused)

	var content string
	if queue == nil || queue.IsEmpty() {
		content = styles.Muted.Render("Queue is empty")
	} else {
		content = q.renderQueue(queue, width-4, height-4)
	}

	panel := styles.Panel(focused).
		Width(width).
		Height(height)

	return panel.Render(lipgloss.JoinVertical(lipgloss.Left,
		title,
		"",
		content,
	))
}

func (q *Queue) renderQueue(queue *core.Queue, width, maxLines int) string {
	tracks := queue.Tracks

	if q.offset >= len(tracks) {
		q.offset = 0
	}

	visibleCount := maxLines - 1 // Leave room for "more" indicator
	if visibleCount < 1 {
		visibleCount = 1
	}

	start := q.offset
	end := start + visibleCount
	if end > len(tracks) {
		end = len(tracks)
	}

	lines := make([]string, 0, end-start+1)

	// Fixed overhead: "XX. " (4) + "▶ " or "  " (2) + " — " (3) = 9 chars
	const overhead = 9

	for i := start; i < end; i++ {
		track := tracks[i]

		num := fmt.Sprintf("%2d.", i+1)

		title, artist := fitTitleArtist(track.Title, track.Artist, width-overhead)

		var line string
		switch {
		case i == queue.CurrentIndex:
			line = styles.Playing.Render(fmt.Sprintf("%s ▶ %s — %s", num, title, artist))
		case !track.Playable():
			line = styles.Dim.Render(fmt.Sprintf("%s   %s — %s", num, title, artist))
		default:
			line = fmt.Sprintf("%s   %s — %s",
				styles.Dim.Render(num),
				title,
				styles.Muted.Render(artist))
		}

		lines = append(lines, line)
	}

	if end < len(tracks) {
		more := styles.Dim.Render(fmt.Sprintf("    ... and %d more", len(tracks)-end))
		lines = append(lines, more)
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

// fitTitleArtist truncates a title/artist pair to fit the available
// width, giving the artist at least a third of the space.
func fitTitleArtist(title, artist string, available int) (string, string) {
	if len(title)+len(artist) <= available {
		return title, artist
	}

	minArtist := available / 3
	if minArtist < 10 {
		minArtist = 10
	}
	if minArtist > available-10 {
		minArtist = available - 10
	}

	artistSpace := minArtist
	if len(artist) < artistSpace {
		artistSpace = len(artist)
	}
	titleSpace := available - artistSpace

	return truncate(title, titleSpace), truncate(artist, artistSpace)
}

func truncate(s string, max int) string {
	if max <= 0 {
		return ""
	}
	if len(s) <= max {
		return s
	}
	if max <= 3 {
		return s[:max]
	}
	return s[:max-3] + "..."
}
