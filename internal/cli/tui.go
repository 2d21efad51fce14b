package cli

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"github.com/velium/velium/internal/core"
	"github.com/velium/velium/internal/tui"
)

var tuiRefresh int

var tuiCmd = &cobra.Command{
	Use:     "ui",
	Aliases: []string{"tui"},
	Short:   "Launch interactive player",
	Long: `Launch the interactive terminal player.

The player provides a live view with:
  • Now Playing - current track, progress, crossfade indicator
  • Queue - upcoming tracks
  • Liked Songs - your liked songs
  • Playlists - your playlists

Keyboard shortcuts:
  q, Ctrl+C    Quit
  ?            Help
  /            Search
  Space        Play/Pause
  n            Next track
  p            Previous track
  +/-          Volume up/down
  m            Mute
  L            Like current track
  Tab          Switch panel`,
	RunE: runTUI,
}

func init() {
	tuiCmd.Flags().IntVar(&tuiRefresh, "refresh", 1000, "Refresh interval in milliseconds")
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	e, err := a.newEngine()
	if err != nil {
		return err
	}

	refresh := time.Duration(tuiRefresh) * time.Millisecond
	if cfg.TUI.RefreshInterval > 0 && tuiRefresh == 1000 {
		refresh = time.Duration(cfg.TUI.RefreshInterval) * time.Millisecond
	}

	app := tui.NewApp(e, a.library, func(ctx context.Context, query, kind string) []core.Track {
		return a.searchTracks(ctx, query, kind)
	}, refresh)

	return tui.Run(app)
}
