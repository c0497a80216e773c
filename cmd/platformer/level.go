package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-platformer/internal/levelgen"
)

var levelCmd = &cobra.Command{
	Use:   "level <world> <slot>",
	Short: "Print a generated level",
	Long: `Generate the layout for a world and level slot and print it as text.

Legend:
  #  solid      ?  question block   u  used block
  o  coin       L  lava             F  flag pole
  G  enemy      .  empty

Examples:
  platformer level 1 1
  platformer level 5 2`,
	Args: cobra.ExactArgs(2),
	Run:  runLevel,
}

func runLevel(_ *cobra.Command, args []string) {
	world, err := strconv.Atoi(args[0])
	if err != nil {
		fail("world must be a number: %q", args[0])
	}
	slot, err := strconv.Atoi(args[1])
	if err != nil {
		fail("slot must be a number: %q", args[1])
	}

	lvl, err := levelgen.Generate(world, slot)
	if err != nil {
		fail("%v", err)
	}

	fmt.Printf("World %d-%d (%s), %dx%d tiles\n", lvl.World, lvl.Slot, lvl.Theme, lvl.Grid.W, lvl.Grid.H)
	fmt.Println()
	for _, row := range lvl.Grid.Rows() {
		fmt.Println(row)
	}
	fmt.Println()

	fmt.Printf("Pits (%d):", len(lvl.Pits))
	for _, p := range lvl.Pits {
		fmt.Printf(" %d-%d (%d wide)", p.Start, p.End, p.Len())
	}
	fmt.Println()
	fmt.Printf("Enemies (%d):", len(lvl.Spawns))
	for _, s := range lvl.Spawns {
		fmt.Printf(" (%d,%d)", s.Col, s.Row)
	}
	fmt.Println()
}
