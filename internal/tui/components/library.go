package components

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/velium/velium/internal/core"
	"github.com/velium/velium/internal/tui/styles"
)

// Liked displays the liked songs list
type Liked struct {
	offset   int
	selected int
}

// NewLiked creates a new Liked component
func NewLiked() *Liked {
	return &Liked{}
}

// SelectNext moves the selection down
func (l *Liked) SelectNext(count int) {
	if l.selected < count-1 {
		l.selected++
	}
}

// SelectPrev moves the selection up
func (l *Liked) SelectPrev() {
	if l.selected > 0 {
		l.selected--
	}
}

// Selected returns the selected index
func (l *Liked) Selected() int {
	return l.selected
}

// Render renders the liked songs panel
func (l *Liked) Render(songs []core.Track, width, height int, focused bool) string {
	title := styles.PanelTitle("Liked Songs", focused)

	var content string
	if len(songs) == 0 {
		content = styles.Muted.Render("No liked songs yet")
	} else {
		content = l.renderSongs(songs, width-4, height-4)
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

func (l *Liked) renderSongs(songs []core.Track, width, maxLines int) string {
	if l.selected >= len(songs) {
		l.selected = len(songs) - 1
	}

	// Keep the selection visible
	if l.selected < l.offset {
		l.offset = l.selected
	}
	if l.selected >= l.offset+maxLines-1 {
		l.offset = l.selected - maxLines + 2
	}

	start := l.offset
	end := start + maxLines - 1
	if end > len(songs) {
		end = len(songs)
	}

	lines := make([]string, 0, end-start+1)
	const overhead = 7

	for i := start; i < end; i++ {
		track := songs[i]
		title, artist := fitTitleArtist(track.Title, track.Artist, width-overhead)

		heart := styles.Liked.Render("♥")
		line := fmt.Sprintf("%s %s — %s", heart, title, styles.Muted.Render(artist))
		if i == l.selected {
			line = styles.Highlight.Render("▸ ") + line
		} else {
			line = "  " + line
		}
		lines = append(lines, line)
	}

	if end < len(songs) {
		lines = append(lines, styles.Dim.Render(fmt.Sprintf("    ... and %d more", len(songs)-end)))
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

// Playlists displays the playlist list
type Playlists struct {
	selected int
}

// NewPlaylists creates a new Playlists component
func NewPlaylists() *Playlists {
	return &Playlists{}
}

// SelectNext moves the selection down
func (p *Playlists) SelectNext(count int) {
	if p.selected < count-1 {
		p.selected++
	}
}

// SelectPrev moves the selection up
func (p *Playlists) SelectPrev() {
	if p.selected > 0 {
		p.selected--
	}
}

// Selected returns the selected index
func (p *Playlists) Selected() int {
	return p.selected
}

// Render renders the playlists panel
func (p *Playlists) Render(playlists []core.Playlist, width, height int, focused bool) string {
	title := styles.PanelTitle("Playlists", focused)

	var content string
	if len(playlists) == 0 {
		content = styles.Muted.Render("No playlists yet")
	} else {
		content = p.renderPlaylists(playlists, width-4, height-4)
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

func (p *Playlists) renderPlaylists(playlists []core.Playlist, width, maxLines int) string {
	if p.selected >= len(playlists) {
		p.selected = len(playlists) - 1
	}

	lines := make([]string, 0, maxLines)
	for i, pl := range playlists {
		if i >= maxLines {
			lines = append(lines, styles.Dim.Render(fmt.Sprintf("    ... and %d more", len(playlists)-i)))
			break
		}

		count := styles.Dim.Render(fmt.Sprintf("(%d)", len(pl.Tracks)))
		line := fmt.Sprintf("%s %s", truncate(pl.Name, width-10), count)
		if i == p.selected {
			line = styles.Highlight.Render("▸ ") + line
		} else {
			line = "  " + line
		}
		lines = append(lines, line)
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}
