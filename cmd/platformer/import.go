package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-platformer/internal/game"
	"github.com/vovakirdan/tui-platformer/internal/storage"
)

var importCmd = &cobra.Command{
	Use:   "import-saves <file>",
	Short: "Import a legacy saves file",
	Long: `Copy save file progress from a JSON object such as {"1": 3, "2": 1, "3": 1}
into the progress database. Unknown keys are ignored. A malformed file
leaves the database untouched.

Examples:
  platformer import-saves ./saves.json`,
	Args: cobra.ExactArgs(1),
	Run:  runImport,
}

func runImport(_ *cobra.Command, args []string) {
	applyGameFlags()
	cfg, _ := game.LoadConfig()

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fail("opening progress database: %v", err)
	}
	defer store.Close()

	progress, err := store.ImportJSON(args[0])
	if err != nil {
		store.Close()
		if errors.Is(err, storage.ErrCorruptState) {
			fail("%s is not a valid saves file: %v", args[0], err)
		}
		fail("importing saves: %v", err)
	}

	fmt.Printf("Imported %s:\n", args[0])
	for _, id := range storage.SlotIDs {
		fmt.Printf("  File %s  %s\n", id, game.SlotLabel(progress[id], cfg.Session.MaxWorld))
	}
}
