package main

import (
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-platformer/internal/game"
	"github.com/vovakirdan/tui-platformer/internal/platform/tui"
	"github.com/vovakirdan/tui-platformer/internal/registry"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play the campaign",
	Long: `Start the campaign on the file select screen.

Controls:
  Left/Right, A/D  - Move
  Space/Up/W       - Jump
  1/2/3            - Pick a save file
  P/Esc            - Pause
  Q/Ctrl+C         - Quit
  Ctrl+S           - Save a text screenshot

Difficulty options:
  easy   - 5 lives per character, slower enemies
  normal - 3 lives per character
  hard   - 1 life per character, faster enemies that speed up every world
  fixed  - Config values as written, no progression

Examples:
  platformer play
  platformer play --difficulty hard
  platformer play --config ./my-platformer.yaml --watch`,
	Args: cobra.NoArgs,
	Run:  runPlay,
}

func runPlay(_ *cobra.Command, _ []string) {
	e := openEnv()
	defer e.Close()

	game.SetProgress(e.progress())
	if err := playMode(e, "campaign"); err != nil {
		e.Close()
		fail("running game: %v", err)
	}
}

// playMode creates the registered mode and runs it until the player quits.
func playMode(e *env, id string) error {
	g, err := registry.Create(id)
	if err != nil {
		return err
	}
	return tui.Run(g, e.tuiOptions(), e.runtime)
}
