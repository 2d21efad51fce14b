package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/velium/velium/internal/core"
	"github.com/velium/velium/internal/engine"
	"github.com/velium/velium/internal/errors"
	"github.com/velium/velium/internal/watch"
	"github.com/velium/velium/internal/wizard"
)

var (
	playLiked      bool
	playPlaylist   string
	playAlbum      bool
	playArtist     bool
	playCrossfade  bool
	playFollow     bool
	playTimestamps bool
)

var playCmd = &cobra.Command{
	Use:   "play [query]",
	Short: "Search and play music in the foreground",
	Long: `Play a track and the rest of its result list as a queue.
Runs in the foreground until the queue finishes or the process is
interrupted.

Without a query on a terminal, opens an interactive picker.

Examples:
  velium play "bohemian rhapsody"
  velium play --album "random access memories"
  velium play --liked
  velium play --playlist "road trip"
  velium play --crossfade "discovery"`,
	RunE: runPlay,
}

func init() {
	playCmd.Flags().BoolVar(&playLiked, "liked", false, "Play your liked songs")
	playCmd.Flags().StringVar(&playPlaylist, "playlist", "", "Play a playlist by name or ID")
	playCmd.Flags().BoolVar(&playAlbum, "album", false, "Search for albums")
	playCmd.Flags().BoolVar(&playArtist, "artist", false, "Search for artists")
	playCmd.Flags().BoolVar(&playCrossfade, "crossfade", false, "Enable crossfade for this session")
	playCmd.Flags().BoolVar(&playFollow, "follow", false, "Print every playback event, not just track changes")
	playCmd.Flags().BoolVar(&playTimestamps, "timestamps", false, "Show timestamps on event lines")
	rootCmd.AddCommand(playCmd)
}

func runPlay(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	tracks, index, err := resolvePlayQueue(ctx, a, args)
	if err != nil {
		return err
	}
	if len(tracks) == 0 {
		return errors.WithSuggestion(errors.ErrEmptyQueue, "Try a different search query")
	}

	e, err := a.newEngine()
	if err != nil {
		return err
	}
	if playCrossfade {
		_, dur := e.Crossfade()
		if dur <= 0 {
			dur = time.Duration(a.cfg.Playback.CrossfadeSeconds) * time.Second
		}
		e.SetCrossfade(true, dur)
	}

	formatter := watch.NewFormatter(watch.WithTimestamp(playTimestamps))
	done := make(chan struct{})
	go func() {
		defer close(done)
		for ev := range e.Events() {
			if playFollow || ev.Type == engine.EventTrackChange || ev.Type == engine.EventQueueDone {
				fmt.Println(formatter.Format(ev))
			}
			if ev.Type == engine.EventQueueDone {
				stop()
				return
			}
		}
	}()

	e.PlayQueue(ctx, tracks, index)

	err = e.Run(ctx)
	select {
	case <-done:
	case <-time.After(time.Second):
	}
	if err != nil && ctx.Err() == nil {
		return err
	}
	return nil
}

// resolvePlayQueue builds the queue from flags or the search query.
func resolvePlayQueue(ctx context.Context, a *app, args []string) ([]core.Track, int, error) {
	if playLiked {
		return a.library.LikedSongs(), 0, nil
	}

	if playPlaylist != "" {
		pl, err := a.library.Playlist(playPlaylist)
		if err != nil {
			return nil, 0, err
		}
		return pl.Tracks, 0, nil
	}

	query := strings.Join(args, " ")
	if query == "" {
		if !wizard.IsTerminal() {
			return nil, 0, fmt.Errorf("a search query is required")
		}
		picked, err := wizard.RunSearch(func(q, kind string) ([]core.Track, error) {
			return a.searchTracks(ctx, q, kind), nil
		})
		if err != nil {
			return nil, 0, err
		}
		if picked == nil {
			return nil, 0, nil
		}
		return []core.Track{*picked}, 0, nil
	}

	// Start at the first playable result; the engine skips the rest of
	// the unplayable ones on advance.
	tracks := a.searchTracks(ctx, query, searchPlayKind())
	for i, t := range tracks {
		if t.Playable() {
			return tracks, i, nil
		}
	}
	return tracks, 0, nil
}

func searchPlayKind() string {
	switch {
	case playAlbum:
		return "album"
	case playArtist:
		return "artist"
	default:
		return "song"
	}
}
