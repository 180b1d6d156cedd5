package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/sbenjam1n/arcacademy/internal/academy"
)

var (
	playAnswerFile string
	playElapsed    time.Duration
	playHints      int
	playTestIndex  int
)

var playCmd = &cobra.Command{
	Use:   "play <id>",
	Short: "Grade an answer grid and record the result",
	Long: `Grade an answer against a puzzle's expected test output. A correct
answer awards points (base for the difficulty tier, a time bonus for fast
solves, minus a penalty per hint), updates the persisted profile, and
submits the new total to the leaderboard.

The answer file holds a single JSON grid, e.g. [[0,1],[1,0]].`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		id := args[0]

		svc := newPuzzleService()
		p, err := svc.FetchByID(ctx, id)
		if err != nil {
			return err
		}
		if p == nil {
			return fmt.Errorf("puzzle '%s' could not be loaded", id)
		}
		if playTestIndex < 0 || playTestIndex >= len(p.Test) {
			return fmt.Errorf("puzzle '%s' has no test case %d", id, playTestIndex)
		}
		expected := p.Test[playTestIndex].Output
		if expected == nil {
			return fmt.Errorf("puzzle '%s' test %d has no expected output to grade against", id, playTestIndex)
		}

		candidate, err := readAnswer(playAnswerFile)
		if err != nil {
			return err
		}

		correct := academy.CheckSolution(expected, candidate)

		store, cleanup, err := newStore(ctx)
		if err != nil {
			return err
		}
		defer cleanup()

		points, err := store.SubmitResult(ctx, id, p.Difficulty, correct, playElapsed, playHints)
		if err != nil {
			return fmt.Errorf("record result: %w", err)
		}

		if correct {
			fmt.Printf("Correct! +%d points\n", points)
			profile, perr := store.GetPlayerData(ctx)
			if perr == nil {
				fmt.Printf("Rank: %s (level %d)  Points: %d  Missions: %d\n",
					profile.RankName, profile.RankLevel, profile.TotalPoints, profile.Completed)
			}
		} else {
			fmt.Println("Incorrect. No points awarded.")
		}
		return nil
	},
}

func readAnswer(path string) (academy.Grid, error) {
	if path == "" {
		return nil, fmt.Errorf("--answer file is required")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read answer file: %w", err)
	}
	var g academy.Grid
	if err := json.Unmarshal(data, &g); err != nil {
		return nil, fmt.Errorf("parse answer grid: %w", err)
	}
	if err := g.Validate(); err != nil {
		return nil, fmt.Errorf("answer grid: %w", err)
	}
	return g, nil
}

func init() {
	playCmd.Flags().StringVar(&playAnswerFile, "answer", "", "path to a JSON grid with the answer")
	playCmd.Flags().DurationVar(&playElapsed, "elapsed", 0, "time spent solving")
	playCmd.Flags().IntVar(&playHints, "hints", 0, "hints used")
	playCmd.Flags().IntVar(&playTestIndex, "test", 0, "test case index")
	playCmd.MarkFlagRequired("answer")
}
