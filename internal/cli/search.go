package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

var (
	searchAlbum  bool
	searchArtist bool
	searchLimit  int
)

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search for music",
	Long: `Search all configured backends for tracks.

Examples:
  velium search "bohemian rhapsody"
  velium search --album "abbey road"
  velium search --artist "daft punk"`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().BoolVar(&searchAlbum, "album", false, "Search for albums")
	searchCmd.Flags().BoolVar(&searchArtist, "artist", false, "Search for artists")
	searchCmd.Flags().IntVar(&searchLimit, "limit", 0, "Maximum results (default from config)")
	rootCmd.AddCommand(searchCmd)
}

func searchKind() string {
	switch {
	case searchAlbum:
		return "album"
	case searchArtist:
		return "artist"
	default:
		return "song"
	}
}

func runSearch(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	if searchLimit > 0 {
		a.cfg.Playback.SearchLimit = searchLimit
	}

	query := strings.Join(args, " ")
	tracks := a.searchTracks(context.Background(), query, searchKind())

	if JSONOutput() {
		return json.NewEncoder(os.Stdout).Encode(tracks)
	}

	if len(tracks) == 0 {
		fmt.Println("No results found")
		return nil
	}

	t := NewTable("#", "TITLE", "ARTIST", "DURATION", "SOURCE")
	for i, track := range tracks {
		title := TruncateString(track.Title, 40)
		if !track.Playable() {
			title += " (unplayable)"
		}
		t.Row(
			fmt.Sprintf("%d", i+1),
			title,
			TruncateString(track.Artist, 30),
			FormatDuration(track.Duration),
			string(track.Source),
		)
	}
	t.Flush()
	return nil
}
