// Package lbcache caches leaderboard reads so repeated views within the
// TTL window do not hit the backend. The cache is constructed explicitly
// and shared by injection; there is no package-level singleton.
package lbcache

import (
	"context"
	"sync"
	"time"

	"github.com/sbenjam1n/arcacademy/internal/academy"
)

// Defaults applied by New when the caller passes zero values.
const (
	DefaultTTL      = 2 * time.Minute
	DefaultCapacity = 32
)

// Store is the cache contract shared by the in-memory and Redis
// implementations. A false second return means "no cached value": either
// never stored, expired, or evicted.
type Store interface {
	Get(ctx context.Context, stat string, maxResults int) ([]academy.LeaderboardEntry, bool, error)
	Set(ctx context.Context, stat string, entries []academy.LeaderboardEntry) error

	// Clear removes one statistic's entry, or every entry when stat is "".
	Clear(ctx context.Context, stat string) error
}

type cacheEntry struct {
	entries  []academy.LeaderboardEntry
	storedAt time.Time
}

// Memory is the process-local TTL cache. Values are copied on the way in
// and on the way out, so caller-side mutation never corrupts stored state.
type Memory struct {
	ttl      time.Duration
	capacity int
	now      func() time.Time

	mu      sync.Mutex
	entries map[string]cacheEntry
}

// New creates a Memory cache. Zero ttl or capacity select the defaults.
func New(ttl time.Duration, capacity int) *Memory {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Memory{
		ttl:      ttl,
		capacity: capacity,
		now:      time.Now,
		entries:  make(map[string]cacheEntry),
	}
}

// Get returns the cached entries for a statistic while they are younger
// than the TTL, optionally truncated to maxResults (<=0 means all).
func (m *Memory) Get(_ context.Context, stat string, maxResults int) ([]academy.LeaderboardEntry, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.entries[stat]
	if !ok {
		return nil, false, nil
	}
	if m.now().Sub(e.storedAt) >= m.ttl {
		delete(m.entries, stat)
		return nil, false, nil
	}

	n := len(e.entries)
	if maxResults > 0 && maxResults < n {
		n = maxResults
	}
	out := make([]academy.LeaderboardEntry, n)
	copy(out, e.entries[:n])
	return out, true, nil
}

// Set stores a defensive copy of the entries with the current timestamp.
// When a new statistic would exceed capacity, the globally-oldest entry
// across all statistic names is evicted first.
func (m *Memory) Set(_ context.Context, stat string, entries []academy.LeaderboardEntry) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.entries[stat]; !exists && len(m.entries) >= m.capacity {
		m.evictOldestLocked()
	}

	stored := make([]academy.LeaderboardEntry, len(entries))
	copy(stored, entries)
	m.entries[stat] = cacheEntry{entries: stored, storedAt: m.now()}
	return nil
}

// Clear removes one statistic's entry, or all entries when stat is "".
func (m *Memory) Clear(_ context.Context, stat string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if stat == "" {
		m.entries = make(map[string]cacheEntry)
		return nil
	}
	delete(m.entries, stat)
	return nil
}

// Len returns the number of cached statistics, expired entries included.
func (m *Memory) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.entries)
}

func (m *Memory) evictOldestLocked() {
	var oldestKey string
	var oldest time.Time
	first := true
	for key, e := range m.entries {
		if first || e.storedAt.Before(oldest) {
			oldestKey, oldest, first = key, e.storedAt, false
		}
	}
	if !first {
		delete(m.entries, oldestKey)
	}
}
