package main

import (
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-platformer/internal/game"
)

var (
	flagPracticeWorld int
	flagPracticeLevel int
)

var practiceCmd = &cobra.Command{
	Use:   "practice",
	Short: "Play a single level without saving",
	Long: `Start directly on one level. Clearing it continues through the
campaign order, but no save file is touched. Game over restarts the level.

Examples:
  platformer practice --world 3 --level 4
  platformer practice -w 8 -l 1 --difficulty easy`,
	Args: cobra.NoArgs,
	Run:  runPractice,
}

func init() {
	practiceCmd.Flags().IntVarP(&flagPracticeWorld, "world", "w", 1, "World to start in")
	practiceCmd.Flags().IntVarP(&flagPracticeLevel, "level", "l", 1, "Level within the world (1-4)")
}

func runPractice(_ *cobra.Command, _ []string) {
	applyGameFlags()
	cfg, _ := game.LoadConfig()
	if flagPracticeWorld < 1 || flagPracticeWorld > cfg.Session.MaxWorld {
		fail("world must be between 1 and %d", cfg.Session.MaxWorld)
	}
	if flagPracticeLevel < 1 || flagPracticeLevel > cfg.Session.LevelsPerWorld {
		fail("level must be between 1 and %d", cfg.Session.LevelsPerWorld)
	}

	e := openEnv()
	defer e.Close()

	game.SetPracticeStart(flagPracticeWorld, flagPracticeLevel)
	if err := playMode(e, "practice"); err != nil {
		e.Close()
		fail("running game: %v", err)
	}
}
