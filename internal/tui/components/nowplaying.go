package components

import (
	"fmt"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/velium/velium/internal/core"
	"github.com/velium/velium/internal/tui/styles"
)

// NowPlaying displays the currently playing track
type NowPlaying struct{}

// NewNowPlaying creates a new NowPlaying component
func NewNowPlaying() *NowPlaying {
	return &NowPlaying{}
}

// Render renders the now playing panel
func (n *NowPlaying) Render(state *core.PlaybackState, width, height int, focused bool) string {
	title := styles.PanelTitle("Now Playing", focused)

	var content string
	if state == nil || state.Track == nil {
		content = styles.Muted.Render("No track playing")
	} else {
		content = n.renderTrack(state, width-4)
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

func (n *NowPlaying) renderTrack(state *core.PlaybackState, width int) string {
	track := state.Track

	icon := styles.StatusIcon(state.IsPlaying())
	if state.State == core.StateTransitioning {
		icon = styles.Highlight.Render("🔀")
	}

	titleText := track.Title
	if state.Liked {
		titleText += " " + styles.Liked.Render("♥")
	}
	title := styles.Title.Width(width - 4).Render(titleText)

	artist := styles.Subtitle.Render(track.Artist)
	album := styles.Dim.Render(track.Album)

	// Progress bar, with times on either side
	progressWidth := width - 14
	if progressWidth < 10 {
		progressWidth = 10
	}
	progressBar := styles.ProgressBar(state.ProgressPercent(), progressWidth)
	currentTime := formatDuration(state.Position)
	totalTime := formatDuration(track.Duration)
	progress := fmt.Sprintf("%s %s %s", currentTime, progressBar, totalTime)

	volumeInfo := fmt.Sprintf("🔊 %d%%", int(state.Volume*100))
	if state.Muted {
		volumeInfo = "🔇 muted"
	}
	if state.State == core.StateTransitioning {
		volumeInfo += "  " + styles.Highlight.Render("crossfading")
	}
	volumeInfo = styles.Muted.Render(volumeInfo)

	controls := n.renderControls(state)

	return lipgloss.JoinVertical(lipgloss.Left,
		icon+" "+title,
		"  "+artist,
		"  "+album,
		"",
		progress,
		"",
		volumeInfo,
		controls,
	)
}

func (n *NowPlaying) renderControls(state *core.PlaybackState) string {
	var controls string

	controls += styles.Dim.Render("⏮ ")

	if state.IsPlaying() {
		controls += styles.Playing.Render("⏸")
	} else {
		controls += styles.Paused.Render("▶")
	}

	controls += styles.Dim.Render(" ⏭")

	return lipgloss.NewStyle().
		Align(lipgloss.Center).
		Render(controls)
}

func formatDuration(d time.Duration) string {
	d = d.Round(time.Second)
	m := d / time.Minute
	s := (d % time.Minute) / time.Second
	return fmt.Sprintf("%d:%02d", m, s)
}
