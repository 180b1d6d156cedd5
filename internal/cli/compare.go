package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sbenjam1n/arcacademy/internal/academy"
	"github.com/sbenjam1n/arcacademy/internal/aiperf"
)

var compareCmd = &cobra.Command{
	Use:   "compare",
	Short: "Compare your recorded results against aggregate AI performance",
	Long: `Join your puzzle history against the external AI statistics, one row
per solved puzzle. Puzzles the statistics API has no data for still appear,
with the AI columns blank.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		store, cleanup, err := newStore(ctx)
		if err != nil {
			return err
		}
		defer cleanup()

		history, err := store.History(ctx)
		if err != nil {
			return fmt.Errorf("load history: %w", err)
		}
		if len(history) == 0 {
			fmt.Println("No recorded results yet. Play a mission first.")
			return nil
		}

		ids := make([]string, 0, len(history))
		seen := make(map[string]bool)
		for _, r := range history {
			if !seen[r.PuzzleID] {
				seen[r.PuzzleID] = true
				ids = append(ids, r.PuzzleID)
			}
		}

		summaries, err := newStatsClient().BatchPuzzlePerformance(ctx, ids)
		if err != nil {
			return fmt.Errorf("fetch AI performance: %w", err)
		}

		records := aiperf.Compare(history, summaries)
		printComparison(records)
		return nil
	},
}

func printComparison(records []academy.ComparisonRecord) {
	fmt.Printf("%-12s %-9s %-12s %-12s %s\n", "PUZZLE", "YOU", "AI ACCURACY", "AI CONF", "")
	for _, r := range records {
		you := "wrong"
		if r.Human.Correct {
			you = "solved"
		}
		if r.AI == nil {
			fmt.Printf("%-12s %-9s %-12s %-12s\n", r.PuzzleID, you, "-", "-")
			continue
		}
		flag := ""
		if r.Overconfident {
			flag = "overconfident"
		}
		fmt.Printf("%-12s %-9s %-12.0f %-12.0f %s\n",
			r.PuzzleID, you, r.AI.AvgAccuracy*100, r.AI.AvgConfidence*100, flag)
	}
}
