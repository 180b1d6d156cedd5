package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/sbenjam1n/arcacademy/internal/academy"
)

var puzzleCmd = &cobra.Command{
	Use:   "puzzle",
	Short: "Fetch puzzle definitions",
}

var puzzleShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Fetch one puzzle and print its grids",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc := newPuzzleService()
		p, err := svc.FetchByID(context.Background(), args[0])
		if err != nil {
			return err
		}
		if p == nil {
			return fmt.Errorf("puzzle '%s' could not be loaded", args[0])
		}
		printPuzzle(p)
		return nil
	},
}

var puzzleBatchCmd = &cobra.Command{
	Use:   "batch <id>...",
	Short: "Fetch several puzzles, skipping the ones that fail",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc := newPuzzleService()
		batch, err := svc.FetchBatch(context.Background(), args)
		if err != nil {
			return err
		}

		fmt.Printf("Fetched %d/%d puzzles:\n", len(batch), len(args))
		for _, p := range batch {
			fmt.Printf("  %-12s %dx%-3d %-6s train=%d test=%d\n",
				p.ID, p.Width, p.Height, p.Difficulty, len(p.Train), len(p.Test))
		}
		return nil
	},
}

func printPuzzle(p *academy.Puzzle) {
	fmt.Printf("Puzzle %s  (%dx%d, %s, %s grid)\n", p.ID, p.Width, p.Height, p.Difficulty, p.SizeHint)
	if len(p.Emojis) > 0 {
		fmt.Printf("Palette: %s\n", strings.Join(p.Emojis, " "))
	}
	for i, pair := range p.Train {
		fmt.Printf("\nTraining example %d:\n", i+1)
		printGridPair(pair.Input, pair.Output)
	}
	for i, pair := range p.Test {
		fmt.Printf("\nTest input %d:\n", i+1)
		printGrid(pair.Input)
	}
}

func printGridPair(in, out academy.Grid) {
	printGrid(in)
	fmt.Println("  ->")
	printGrid(out)
}

func printGrid(g academy.Grid) {
	for _, row := range g {
		var b strings.Builder
		b.WriteString("  ")
		for _, cell := range row {
			fmt.Fprintf(&b, "%d ", cell)
		}
		fmt.Println(b.String())
	}
}

func init() {
	puzzleCmd.AddCommand(puzzleShowCmd)
	puzzleCmd.AddCommand(puzzleBatchCmd)
}
