package main

import (
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-platformer/internal/game"
	"github.com/vovakirdan/tui-platformer/internal/platform/tui"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start menu with level picker and run history",
	Long: `Start the interactive launcher.

Pick the campaign, a practice level, or browse run history. After a game
ends you return to the launcher.

Controls:
  Up/Down/j/k  - Navigate
  Left/Right   - Change level in the picker
  Enter/Space  - Select
  Esc          - Back
  Q            - Quit`,
	Args: cobra.NoArgs,
	Run:  runMenu,
}

func runMenu(_ *cobra.Command, _ []string) {
	e := openEnv()
	defer e.Close()

	cfg, _ := game.LoadConfig()
	for {
		choice, err := tui.RunLauncher(e.runtime, cfg.Session.MaxWorld, cfg.Session.LevelsPerWorld)
		if err != nil {
			e.logger.Error("launcher", "error", err)
			return
		}
		if choice == nil {
			return
		}

		switch choice.Kind {
		case tui.ChoiceCampaign:
			game.SetProgress(e.progress())
			err = playMode(e, "campaign")
		case tui.ChoicePractice:
			game.SetPracticeStart(choice.World, choice.Level)
			err = playMode(e, "practice")
		case tui.ChoiceRuns:
			var back bool
			back, err = tui.RunRunsViewer(e.store, e.runtime.ScreenW, e.runtime.ScreenH)
			if err == nil && !back {
				return
			}
		}
		if err != nil {
			e.logger.Error("menu choice", "kind", choice.Kind, "error", err)
			return
		}
	}
}
