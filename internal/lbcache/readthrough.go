package lbcache

import (
	"context"

	"go.uber.org/zap"

	"github.com/sbenjam1n/arcacademy/internal/academy"
)

// Fetcher is the live leaderboard read the cache fronts. Satisfied by the
// progress backend.
type Fetcher func(ctx context.Context, stat string, max int) ([]academy.LeaderboardEntry, error)

// ReadThrough serves leaderboard reads from a Store, falling through to
// the live fetcher on a miss and populating the cache with the result.
type ReadThrough struct {
	store  Store
	fetch  Fetcher
	logger *zap.Logger
}

// NewReadThrough composes a cache store with a live fetcher.
func NewReadThrough(store Store, fetch Fetcher, logger *zap.Logger) *ReadThrough {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ReadThrough{store: store, fetch: fetch, logger: logger}
}

// Get returns up to max entries for the statistic. Cache errors degrade to
// a live fetch; a failed cache write after a successful fetch is logged and
// the fetched entries are still returned.
func (rt *ReadThrough) Get(ctx context.Context, stat string, max int) ([]academy.LeaderboardEntry, error) {
	entries, ok, err := rt.store.Get(ctx, stat, max)
	if err != nil {
		rt.logger.Warn("leaderboard cache read failed", zap.String("stat", stat), zap.Error(err))
	} else if ok {
		return entries, nil
	}

	entries, err = rt.fetch(ctx, stat, max)
	if err != nil {
		return nil, err
	}

	if err := rt.store.Set(ctx, stat, entries); err != nil {
		rt.logger.Warn("leaderboard cache write failed", zap.String("stat", stat), zap.Error(err))
	}
	return entries, nil
}
