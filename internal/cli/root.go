package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/sbenjam1n/arcacademy/internal/aiperf"
	"github.com/sbenjam1n/arcacademy/internal/config"
	"github.com/sbenjam1n/arcacademy/internal/lbcache"
	"github.com/sbenjam1n/arcacademy/internal/progress"
	"github.com/sbenjam1n/arcacademy/internal/puzzles"
)

var (
	cfg     *config.Config
	logger  *zap.Logger
	verbose bool
	useDB   bool

	rootCmd = &cobra.Command{
		Use:   "academy",
		Short: "Officer Academy: ARC puzzle missions, progression, and AI comparison",
		Long: `academy is the command surface for the Officer Academy puzzle game:
fetch ARC missions, submit graded answers, track rank and points, read the
officer leaderboard, and compare your results against aggregate AI model
performance.

Required configuration:
  ACADEMY_TITLE_ID     backend title/tenant identifier
  ACADEMY_SECRET_KEY   backend secret key`,
		SilenceUsage: true,
	}
)

// Execute runs the root command.
func Execute() error {
	defer func() {
		if logger != nil {
			_ = logger.Sync()
		}
	}()
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")
	rootCmd.PersistentFlags().BoolVar(&useDB, "db", false, "use the self-hosted Postgres backend instead of the hosted service")

	rootCmd.AddCommand(puzzleCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(profileCmd)
	rootCmd.AddCommand(leaderboardCmd)
	rootCmd.AddCommand(compareCmd)
	rootCmd.AddCommand(initCmd)
}

func initConfig() {
	var err error
	cfg, err = config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	zcfg := zap.NewProductionConfig()
	if verbose {
		zcfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	logger, err = zcfg.Build()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing logger: %v\n", err)
		os.Exit(1)
	}
}

// playerID resolves the acting player, generating a throwaway identity when
// none is configured.
func playerID() string {
	if cfg.PlayerID != "" {
		return cfg.PlayerID
	}
	id := uuid.NewString()
	logger.Warn("ACADEMY_PLAYER_ID not set, using a generated player id", zap.String("player", id))
	return id
}

// newBackend selects the hosted service or the self-hosted Postgres
// implementation. The returned cleanup is non-nil only for Postgres.
func newBackend(ctx context.Context) (progress.Backend, func(), error) {
	if !useDB {
		return progress.NewHostedBackend(cfg.BackendURL, cfg.TitleID, cfg.SecretKey), func() {}, nil
	}

	pool, err := progress.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, nil, fmt.Errorf("connect to database: %w\nSet ACADEMY_DATABASE_URL environment variable", err)
	}
	return progress.NewPostgresBackend(pool), pool.Close, nil
}

func newStore(ctx context.Context) (*progress.Store, func(), error) {
	backend, cleanup, err := newBackend(ctx)
	if err != nil {
		return nil, nil, err
	}
	return progress.NewStore(backend, playerID(), logger), cleanup, nil
}

func newPuzzleService() *puzzles.Service {
	return puzzles.New(cfg.PuzzleAPIURL, logger)
}

func newStatsClient() *aiperf.Client {
	return aiperf.NewClient(cfg.StatsAPIURL, logger)
}

// newCacheStore returns the leaderboard cache: Redis when requested (shared
// across processes), otherwise the in-process TTL cache.
func newCacheStore(useRedis bool) (lbcache.Store, func(), error) {
	if !useRedis {
		return lbcache.New(0, 0), func() {}, nil
	}
	client, err := lbcache.ConnectRedis(cfg.RedisURL)
	if err != nil {
		return nil, nil, fmt.Errorf("connect to redis: %w\nSet ACADEMY_REDIS_URL environment variable", err)
	}
	return lbcache.NewRedis(client, 0), func() { client.Close() }, nil
}
