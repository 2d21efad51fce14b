package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/velium/velium/internal/core"
	"github.com/velium/velium/internal/errors"
	"github.com/velium/velium/internal/wizard"
)

var likeCmd = &cobra.Command{
	Use:   "like [query]",
	Short: "Like or unlike a track",
	Long: `Toggle a track in your liked songs. With a query, the first
search result is toggled; on a terminal without a query, opens the
interactive picker.

Examples:
  velium like "bohemian rhapsody"
  velium like`,
	RunE: runLike,
}

var likedCmd = &cobra.Command{
	Use:   "liked",
	Short: "List your liked songs",
	RunE:  runLiked,
}

func init() {
	rootCmd.AddCommand(likeCmd)
	rootCmd.AddCommand(likedCmd)
}

func runLike(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	ctx := context.Background()

	track, err := pickTrack(ctx, a, args)
	if err != nil {
		return err
	}
	if track == nil {
		return nil
	}

	liked, err := a.library.ToggleLike(*track)
	if err != nil {
		return err
	}

	if JSONOutput() {
		return json.NewEncoder(os.Stdout).Encode(map[string]interface{}{
			"track": track,
			"liked": liked,
		})
	}

	if liked {
		fmt.Printf("♥ Liked: %s - %s\n", track.Artist, track.Title)
	} else {
		fmt.Printf("Removed from liked songs: %s - %s\n", track.Artist, track.Title)
	}
	return nil
}

func runLiked(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	songs := a.library.LikedSongs()

	if JSONOutput() {
		return json.NewEncoder(os.Stdout).Encode(songs)
	}

	if len(songs) == 0 {
		fmt.Println("No liked songs yet. Run 'velium like <query>' to add one.")
		return nil
	}

	t := NewTable("#", "TITLE", "ARTIST", "DURATION")
	for i, track := range songs {
		t.Row(
			fmt.Sprintf("%d", i+1),
			TruncateString(track.Title, 40),
			TruncateString(track.Artist, 30),
			FormatDuration(track.Duration),
		)
	}
	t.Flush()
	return nil
}

// pickTrack resolves a track from the query arguments, falling back to
// the interactive picker on a terminal.
func pickTrack(ctx context.Context, a *app, args []string) (*core.Track, error) {
	query := strings.Join(args, " ")
	if query == "" {
		if !wizard.IsTerminal() {
			return nil, fmt.Errorf("a search query is required")
		}
		return wizard.RunSearch(func(q, kind string) ([]core.Track, error) {
			return a.searchTracks(ctx, q, kind), nil
		})
	}

	tracks := a.searchTracks(ctx, query, "song")
	if len(tracks) == 0 {
		return nil, errors.WithSuggestion(errors.ErrNotFound, "Try a different search query")
	}
	return &tracks[0], nil
}
