package lbcache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/sbenjam1n/arcacademy/internal/academy"
)

const redisKeyPrefix = "academy:leaderboard:"

// Redis implements Store on a shared Redis, for multi-process deployments
// where every frontend should see the same cached leaderboard. Expiry is
// enforced server-side; the capacity bound of the in-memory cache does not
// apply since Redis manages its own memory.
type Redis struct {
	client *redis.Client
	ttl    time.Duration
}

// ConnectRedis creates a Redis client from a URL.
func ConnectRedis(redisURL string) (*redis.Client, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("parse redis URL: %w", err)
	}
	return redis.NewClient(opts), nil
}

// NewRedis wraps an existing client. Zero ttl selects the default.
func NewRedis(client *redis.Client, ttl time.Duration) *Redis {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Redis{client: client, ttl: ttl}
}

// Get returns the cached entries for a statistic, if present and unexpired.
func (r *Redis) Get(ctx context.Context, stat string, maxResults int) ([]academy.LeaderboardEntry, bool, error) {
	data, err := r.client.Get(ctx, redisKeyPrefix+stat).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("cache read %s: %w", stat, err)
	}

	var entries []academy.LeaderboardEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, false, fmt.Errorf("decode cached entries %s: %w", stat, err)
	}
	if maxResults > 0 && maxResults < len(entries) {
		entries = entries[:maxResults]
	}
	return entries, true, nil
}

// Set stores the entries with the cache TTL as the key expiry.
func (r *Redis) Set(ctx context.Context, stat string, entries []academy.LeaderboardEntry) error {
	data, err := json.Marshal(entries)
	if err != nil {
		return fmt.Errorf("encode entries %s: %w", stat, err)
	}
	if err := r.client.Set(ctx, redisKeyPrefix+stat, data, r.ttl).Err(); err != nil {
		return fmt.Errorf("cache write %s: %w", stat, err)
	}
	return nil
}

// Clear removes one statistic's key, or every cached statistic when stat
// is "".
func (r *Redis) Clear(ctx context.Context, stat string) error {
	if stat != "" {
		return r.client.Del(ctx, redisKeyPrefix+stat).Err()
	}

	iter := r.client.Scan(ctx, 0, redisKeyPrefix+"*", 0).Iterator()
	for iter.Next(ctx) {
		if err := r.client.Del(ctx, iter.Val()).Err(); err != nil {
			return fmt.Errorf("clear %s: %w", iter.Val(), err)
		}
	}
	return iter.Err()
}
