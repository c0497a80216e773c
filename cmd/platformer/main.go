// platformer is a tile-based side-scrolling platformer for the terminal.
//
// Usage:
//
//	platformer                       - Play the campaign (same as play)
//	platformer play                  - Play the campaign from the file menu
//	platformer practice -w 3 -l 4    - Play one level without saving
//	platformer menu                  - Start menu with level picker and run history
//	platformer level <world> <slot>  - Print a generated level
//	platformer slots                 - Show save file progress
//	platformer runs                  - Browse finished runs
//	platformer import-saves <file>   - Import a legacy saves.json
//	platformer list                  - List play modes
//
// Global flags:
//
//	--fps <rate>          - Tick rate (default: 60)
//	--db <path>           - Database path (default: ~/.platformer/progress.db)
//	--config <path>       - Custom config YAML
//	--difficulty <preset> - easy, normal, hard or fixed
//	--log-level <level>   - debug, info, warn, error
//	--log-file <path>     - Log destination
//	--mute                - Disable sound
//	--watch               - Reload the config file when it changes
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	// Register play modes
	_ "github.com/vovakirdan/tui-platformer/internal/game"
)

var (
	flagFPS        int
	flagDBPath     string
	flagConfig     string
	flagDifficulty string
	flagLogLevel   string
	flagLogFile    string
	flagMute       bool
	flagWatch      bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "platformer",
	Short: "Tile-based platformer in your terminal",
	Long: `A side-scrolling platformer played in the terminal.

Two characters share a campaign of 8 worlds with 4 levels each. Stomp
enemies, hit ? blocks for power-ups, avoid lava and pits, and reach the
flag pole. Progress is saved per file after each completed world.

Available commands:
  play          - Play the campaign (default)
  practice      - Play a single level
  menu          - Start menu with level picker and run history
  level         - Print a generated level
  slots         - Show save file progress
  runs          - Browse finished runs
  import-saves  - Import a legacy saves file
  list          - Show play modes`,
	Run: runPlay,
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	pf.StringVar(&flagDBPath, "db", "~/.platformer/progress.db", "Path to progress database")
	pf.StringVar(&flagConfig, "config", "", "Path to custom config YAML")
	pf.StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	pf.StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	pf.StringVar(&flagLogFile, "log-file", "", "Log file (default ~/.platformer/platformer.log while playing, stderr otherwise)")
	pf.BoolVar(&flagMute, "mute", false, "Disable sound")
	pf.BoolVar(&flagWatch, "watch", false, "Reload the config file when it changes")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(practiceCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(levelCmd)
	rootCmd.AddCommand(slotsCmd)
	rootCmd.AddCommand(runsCmd)
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(listCmd)
}

// fail prints an error and exits with status 1.
func fail(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}
