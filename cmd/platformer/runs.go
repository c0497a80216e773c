package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-platformer/internal/platform/tui"
	"github.com/vovakirdan/tui-platformer/internal/storage"
)

var (
	flagRunsPlain bool
	flagRunsLimit int
)

var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "Browse finished runs",
	Long: `Show recent campaign and practice runs with a summary.

Examples:
  platformer runs
  platformer runs --plain --limit 5`,
	Args: cobra.NoArgs,
	Run:  runRuns,
}

func init() {
	runsCmd.Flags().BoolVar(&flagRunsPlain, "plain", false, "Print as text instead of the interactive table")
	runsCmd.Flags().IntVar(&flagRunsLimit, "limit", 10, "Number of runs to print with --plain")
}

func runRuns(_ *cobra.Command, _ []string) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fail("opening progress database: %v", err)
	}
	defer store.Close()

	if !flagRunsPlain {
		cfg := runtimeConfig()
		if _, err := tui.RunRunsViewer(store, cfg.ScreenW, cfg.ScreenH); err != nil {
			store.Close()
			fail("running viewer: %v", err)
		}
		return
	}

	runs, err := store.RecentRuns(flagRunsLimit)
	if err != nil {
		store.Close()
		fail("retrieving runs: %v", err)
	}

	fmt.Println("Recent runs")
	fmt.Println()
	if len(runs) == 0 {
		fmt.Println("No runs recorded yet.")
		fmt.Println()
		fmt.Println("Play 'platformer play' to record the first one!")
		return
	}

	// RunRows columns: ID, Mode, File, Level, Result, Coins, Date
	fmt.Printf("  %-4s  %-8s  %-4s  %-6s  %-6s  %-5s  %s\n", "#", "Mode", "File", "Level", "Result", "Coins", "Date")
	fmt.Printf("  %-4s  %-8s  %-4s  %-6s  %-6s  %-5s  %s\n", "-", "----", "----", "-----", "------", "-----", "----")
	for _, r := range tui.RunRows(runs) {
		fmt.Printf("  %-4s  %-8s  %-4s  %-6s  %-6s  %-5s  %s\n", r[0], r[1], r[2], r[3], r[4], r[5], r[6])
	}

	if stats, err := store.Stats(); err == nil {
		fmt.Println()
		fmt.Printf("Runs: %d  Wins: %d  Best coins: %d\n", stats.Runs, stats.Wins, stats.BestCoins)
	}
}
