package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/velium/velium/internal/config"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show player and library status",
	Long:  `Display the saved playback settings and library contents at a glance.`,
	RunE:  runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	store, err := config.NewSettingsStore("")
	if err != nil {
		return err
	}
	settings, err := store.Load()
	if err != nil {
		return err
	}
	if settings == nil {
		settings = config.FromConfig(cfg)
	}

	liked := a.library.LikedSongs()
	playlists := a.library.Playlists()

	if JSONOutput() {
		return json.NewEncoder(os.Stdout).Encode(map[string]interface{}{
			"settings":    settings,
			"liked_songs": len(liked),
			"playlists":   len(playlists),
		})
	}

	fmt.Printf("Volume:      %d%%\n", int(settings.Volume*100))
	if settings.Muted {
		fmt.Println("Muted:       yes")
	}
	state := "off"
	if settings.Crossfade {
		state = "on"
	}
	fmt.Printf("Crossfade:   %s (%ds)\n", state, settings.CrossfadeSeconds)
	fmt.Printf("Liked songs: %d\n", len(liked))
	fmt.Printf("Playlists:   %d\n", len(playlists))

	if Verbose() {
		fmt.Println()
		fmt.Printf("Hub:         %s\n", cfg.API.HubBase)
		fmt.Printf("Saavn:       %s\n", cfg.API.SaavnBase)
		fmt.Printf("Lyrics:      %s\n", cfg.API.LyricsBase)
	}
	return nil
}
