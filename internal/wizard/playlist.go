package wizard

import (
	"fmt"

	"github.com/charmbracelet/huh"

	"github.com/velium/velium/internal/core"
	"github.com/velium/velium/internal/errors"
)

// PromptPlaylist asks the user to pick one of the library's playlists.
// Returns errors.ErrNoPlaylists when the library has none.
func PromptPlaylist(playlists []core.Playlist) (*core.Playlist, error) {
	if len(playlists) == 0 {
		return nil, errors.WithSuggestion(errors.ErrNoPlaylists,
			"Run 'velium playlist create <name>' first")
	}

	options := make([]huh.Option[string], 0, len(playlists))
	for _, p := range playlists {
		options = append(options, huh.NewOption(p.Name, p.ID))
	}

	var chosen string
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Choose a playlist").
				Options(options...).
				Value(&chosen),
		),
	)
	if err := form.Run(); err != nil {
		return nil, err
	}

	for i := range playlists {
		if playlists[i].ID == chosen {
			return &playlists[i], nil
		}
	}
	return nil, errors.ErrNotFound
}

// PromptPlaylistName asks for a name for a new playlist.
func PromptPlaylistName() (string, error) {
	var name string
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Playlist name").
				Value(&name).
				Validate(func(s string) error {
					if s == "" {
						return fmt.Errorf("name cannot be empty")
					}
					return nil
				}),
		),
	)
	if err := form.Run(); err != nil {
		return "", err
	}
	return name, nil
}
