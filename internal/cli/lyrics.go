package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/velium/velium/internal/lyrics"
)

var lyricsArtist string

var lyricsCmd = &cobra.Command{
	Use:   "lyrics <title>",
	Short: "Show lyrics for a song",
	Long: `Fetch lyrics by song title. Qualifier suffixes like
"(Remastered)" are stripped before the lookup.

Examples:
  velium lyrics "bohemian rhapsody" --artist "queen"
  velium lyrics "yesterday"`,
	Args: cobra.MinimumNArgs(1),
	RunE: runLyrics,
}

func init() {
	lyricsCmd.Flags().StringVar(&lyricsArtist, "artist", "", "Artist name to disambiguate")
	rootCmd.AddCommand(lyricsCmd)
}

func runLyrics(cmd *cobra.Command, args []string) error {
	title := strings.Join(args, " ")

	client := lyrics.New(cfg.API.LyricsBase, nil)
	res, err := client.Fetch(context.Background(), title, lyricsArtist)
	if err != nil {
		return err
	}

	if JSONOutput() {
		return json.NewEncoder(os.Stdout).Encode(res)
	}

	if res.TrackName != "" {
		fmt.Printf("%s - %s\n\n", res.ArtistName, res.TrackName)
	}
	fmt.Println(res.Lyrics)
	return nil
}
