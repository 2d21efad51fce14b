package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/velium/velium/internal/config"
)

var crossfadeCmd = &cobra.Command{
	Use:   "crossfade [on|off] [seconds]",
	Short: "Show or change the crossfade setting",
	Long: `Without arguments, shows the saved crossfade setting. With
arguments, enables or disables crossfade and optionally sets the fade
duration. The change applies to future play sessions.

Examples:
  velium crossfade
  velium crossfade on 8
  velium crossfade off`,
	Args: cobra.MaximumNArgs(2),
	RunE: runCrossfade,
}

func init() {
	rootCmd.AddCommand(crossfadeCmd)
}

func runCrossfade(cmd *cobra.Command, args []string) error {
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

	if len(args) == 0 {
		if JSONOutput() {
			return json.NewEncoder(os.Stdout).Encode(map[string]interface{}{
				"enabled": settings.Crossfade,
				"seconds": settings.CrossfadeSeconds,
			})
		}
		state := "off"
		if settings.Crossfade {
			state = "on"
		}
		fmt.Printf("Crossfade: %s (%ds)\n", state, settings.CrossfadeSeconds)
		return nil
	}

	switch args[0] {
	case "on":
		settings.Crossfade = true
	case "off":
		settings.Crossfade = false
	default:
		return fmt.Errorf("expected 'on' or 'off', got %q", args[0])
	}

	if len(args) == 2 {
		seconds, err := strconv.Atoi(args[1])
		if err != nil || seconds <= 0 {
			return fmt.Errorf("invalid duration %q", args[1])
		}
		settings.CrossfadeSeconds = seconds
	}

	if err := store.Save(settings); err != nil {
		return err
	}

	state := "off"
	if settings.Crossfade {
		state = "on"
	}
	fmt.Printf("Crossfade: %s (%ds)\n", state, settings.CrossfadeSeconds)
	return nil
}
