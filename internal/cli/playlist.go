package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/velium/velium/internal/wizard"
)

var playlistCmd = &cobra.Command{
	Use:     "playlist",
	Aliases: []string{"pl"},
	Short:   "Manage playlists",
	Long:    `Commands for creating and editing playlists in your library.`,
}

var playlistListCmd = &cobra.Command{
	Use:   "list",
	Short: "List playlists",
	RunE:  runPlaylistList,
}

var playlistCreateCmd = &cobra.Command{
	Use:   "create [name]",
	Short: "Create a playlist",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runPlaylistCreate,
}

var playlistShowCmd = &cobra.Command{
	Use:   "show <name>",
	Short: "Show a playlist's tracks",
	Args:  cobra.ExactArgs(1),
	RunE:  runPlaylistShow,
}

var playlistAddCmd = &cobra.Command{
	Use:   "add <query>",
	Short: "Add a track to a playlist",
	Long: `Search for a track and add it to a playlist. With --to the
playlist is named directly; otherwise a picker is shown.

Examples:
  velium playlist add "bohemian rhapsody" --to "classics"
  velium playlist add "bohemian rhapsody"`,
	Args: cobra.MinimumNArgs(1),
	RunE: runPlaylistAdd,
}

var playlistRemoveCmd = &cobra.Command{
	Use:   "remove <query>",
	Short: "Remove a track from a playlist",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runPlaylistRemove,
}

var playlistRenameCmd = &cobra.Command{
	Use:   "rename <name> <new-name>",
	Short: "Rename a playlist",
	Args:  cobra.ExactArgs(2),
	RunE:  runPlaylistRename,
}

var playlistDeleteCmd = &cobra.Command{
	Use:   "delete <name>",
	Short: "Delete a playlist",
	Args:  cobra.ExactArgs(1),
	RunE:  runPlaylistDelete,
}

var playlistTo string

func init() {
	playlistAddCmd.Flags().StringVar(&playlistTo, "to", "", "Target playlist name or ID")
	playlistRemoveCmd.Flags().StringVar(&playlistTo, "from", "", "Source playlist name or ID")

	playlistCmd.AddCommand(playlistListCmd)
	playlistCmd.AddCommand(playlistCreateCmd)
	playlistCmd.AddCommand(playlistShowCmd)
	playlistCmd.AddCommand(playlistAddCmd)
	playlistCmd.AddCommand(playlistRemoveCmd)
	playlistCmd.AddCommand(playlistRenameCmd)
	playlistCmd.AddCommand(playlistDeleteCmd)
	rootCmd.AddCommand(playlistCmd)
}

func runPlaylistList(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	playlists := a.library.Playlists()

	if JSONOutput() {
		return json.NewEncoder(os.Stdout).Encode(playlists)
	}

	if len(playlists) == 0 {
		fmt.Println("No playlists yet. Run 'velium playlist create <name>' to add one.")
		return nil
	}

	t := NewTable("NAME", "TRACKS", "UPDATED")
	for _, pl := range playlists {
		t.Row(
			pl.Name,
			fmt.Sprintf("%d", len(pl.Tracks)),
			pl.UpdatedAt.Format("2006-01-02 15:04"),
		)
	}
	t.Flush()
	return nil
}

func runPlaylistCreate(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	var name string
	if len(args) > 0 {
		name = args[0]
	} else if wizard.IsTerminal() {
		name, err = wizard.PromptPlaylistName()
		if err != nil {
			return err
		}
	} else {
		return fmt.Errorf("a playlist name is required")
	}

	pl, err := a.library.CreatePlaylist(name)
	if err != nil {
		return err
	}

	if JSONOutput() {
		return json.NewEncoder(os.Stdout).Encode(pl)
	}
	fmt.Printf("Created playlist %q\n", pl.Name)
	return nil
}

func runPlaylistShow(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	pl, err := a.library.Playlist(args[0])
	if err != nil {
		return err
	}

	if JSONOutput() {
		return json.NewEncoder(os.Stdout).Encode(pl)
	}

	if len(pl.Tracks) == 0 {
		fmt.Printf("%s is empty\n", pl.Name)
		return nil
	}

	t := NewTable("#", "TITLE", "ARTIST", "DURATION")
	for i, track := range pl.Tracks {
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

func runPlaylistAdd(cmd *cobra.Command, args []string) error {
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

	target := playlistTo
	if target == "" {
		pl, err := wizard.PromptPlaylist(a.library.Playlists())
		if err != nil {
			return err
		}
		target = pl.ID
	}

	if err := a.library.AddToPlaylist(target, *track); err != nil {
		return err
	}
	fmt.Printf("Added %s - %s\n", track.Artist, track.Title)
	return nil
}

func runPlaylistRemove(cmd *cobra.Command, args []string) error {
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

	source := playlistTo
	if source == "" {
		pl, err := wizard.PromptPlaylist(a.library.Playlists())
		if err != nil {
			return err
		}
		source = pl.ID
	}

	if err := a.library.RemoveFromPlaylist(source, *track); err != nil {
		return err
	}
	fmt.Printf("Removed %s - %s\n", track.Artist, track.Title)
	return nil
}

func runPlaylistRename(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	if err := a.library.RenamePlaylist(args[0], args[1]); err != nil {
		return err
	}
	fmt.Printf("Renamed %q to %q\n", args[0], args[1])
	return nil
}

func runPlaylistDelete(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	if err := a.library.DeletePlaylist(args[0]); err != nil {
		return err
	}
	fmt.Printf("Deleted %q\n", args[0])
	return nil
}
