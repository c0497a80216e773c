package main

import (
	"errors"
	"fmt"
	"slices"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-platformer/internal/game"
	"github.com/vovakirdan/tui-platformer/internal/storage"
)

var flagClearSlot string

var slotsCmd = &cobra.Command{
	Use:   "slots",
	Short: "Show save file progress",
	Long: `Display the world each save file will resume from.

Examples:
  platformer slots
  platformer slots --clear 2`,
	Args: cobra.NoArgs,
	Run:  runSlots,
}

func init() {
	slotsCmd.Flags().StringVar(&flagClearSlot, "clear", "", "Reset a save file (1-3) to world 1")
}

func runSlots(_ *cobra.Command, _ []string) {
	applyGameFlags()
	cfg, _ := game.LoadConfig()

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fail("opening progress database: %v", err)
	}
	defer store.Close()

	if flagClearSlot != "" {
		if !slices.Contains(storage.SlotIDs, flagClearSlot) {
			store.Close()
			fail("unknown save file %q (want 1, 2 or 3)", flagClearSlot)
		}
		if err := store.ClearSlot(flagClearSlot); err != nil {
			store.Close()
			fail("clearing save file: %v", err)
		}
		fmt.Printf("File %s reset to world 1.\n\n", flagClearSlot)
	}

	progress, err := store.LoadProgress()
	if errors.Is(err, storage.ErrCorruptState) {
		fmt.Printf("Warning: %v\n\n", err)
	} else if err != nil {
		store.Close()
		fail("loading progress: %v", err)
	}

	fmt.Println("Save files:")
	fmt.Println()
	fmt.Printf("  %-4s  %s\n", "File", "Progress")
	fmt.Printf("  %-4s  %s\n", "----", "--------")
	for _, id := range storage.SlotIDs {
		fmt.Printf("  %-4s  %s\n", id, game.SlotLabel(progress[id], cfg.Session.MaxWorld))
	}
}
