package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sbenjam1n/arcacademy/internal/academy"
)

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Show the player's rank, points, and mission count",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		store, cleanup, err := newStore(ctx)
		if err != nil {
			return err
		}
		defer cleanup()

		p, err := store.GetPlayerData(ctx)
		if err != nil {
			return err
		}

		fmt.Printf("Officer %s\n", p.PlayerID)
		fmt.Printf("  Rank:     %s (level %d)\n", p.RankName, p.RankLevel)
		fmt.Printf("  Points:   %d\n", p.TotalPoints)
		fmt.Printf("  Missions: %d\n", p.Completed)
		if next, ok := nextRank(p.TotalPoints); ok {
			fmt.Printf("  Next:     %s at %d points\n", next.Name, next.MinPoints)
		}
		if p.Placeholder {
			fmt.Println("  (backend unreachable: showing placeholder profile, progress is read-only)")
		}
		return nil
	},
}

func nextRank(points int) (academy.Rank, bool) {
	for _, r := range academy.Ranks() {
		if points < r.MinPoints {
			return r, true
		}
	}
	return academy.Rank{}, false
}
