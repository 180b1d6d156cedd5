package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sbenjam1n/arcacademy/internal/lbcache"
	"github.com/sbenjam1n/arcacademy/internal/progress"
)

var (
	lbStat     string
	lbMax      int
	lbUseRedis bool
)

var leaderboardCmd = &cobra.Command{
	Use:   "leaderboard",
	Short: "Show the ranked officer leaderboard",
	Long: `Read a leaderboard statistic through the TTL cache. With --redis the
cache is shared across processes; otherwise each invocation uses an
in-process cache and the read falls through to the backend.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		store, cleanup, err := newStore(ctx)
		if err != nil {
			return err
		}
		defer cleanup()

		cacheStore, cacheCleanup, err := newCacheStore(lbUseRedis)
		if err != nil {
			return err
		}
		defer cacheCleanup()

		rt := lbcache.NewReadThrough(cacheStore, store.Leaderboard, logger)
		entries, err := rt.Get(ctx, lbStat, lbMax)
		if err != nil {
			return fmt.Errorf("read leaderboard: %w", err)
		}

		if len(entries) == 0 {
			fmt.Println("No entries yet.")
			return nil
		}
		fmt.Printf("Leaderboard: %s\n", lbStat)
		for _, e := range entries {
			fmt.Printf("  %3d. %-24s %d\n", e.Position, e.DisplayName, e.Value)
		}
		return nil
	},
}

var leaderboardClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Drop cached leaderboard entries",
	RunE: func(cmd *cobra.Command, args []string) error {
		cacheStore, cleanup, err := newCacheStore(lbUseRedis)
		if err != nil {
			return err
		}
		defer cleanup()

		stat := ""
		if len(args) > 0 {
			stat = args[0]
		}
		return cacheStore.Clear(context.Background(), stat)
	},
}

func init() {
	leaderboardCmd.PersistentFlags().StringVar(&lbStat, "stat", progress.StatOfficerPoints, "statistic name")
	leaderboardCmd.PersistentFlags().IntVar(&lbMax, "max", 20, "maximum entries")
	leaderboardCmd.PersistentFlags().BoolVar(&lbUseRedis, "redis", false, "use the shared Redis cache")

	leaderboardCmd.AddCommand(leaderboardClearCmd)
}
