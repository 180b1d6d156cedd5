// Package progress is the client's single point of truth for the player's
// persisted profile and for submitting graded puzzle results.
package progress

import (
	"context"
	"errors"

	"github.com/sbenjam1n/arcacademy/internal/academy"
)

// StatOfficerPoints is the leaderboard statistic driven by cumulative points.
const StatOfficerPoints = "officer_points"

// ErrNotFound is returned by backends when a profile or statistic does not
// exist upstream.
var ErrNotFound = errors.New("not found")

// Backend is the persistence boundary for player state. The hosted game
// backend is the primary implementation; a Postgres implementation exists
// for self-hosted deployments.
type Backend interface {
	// GetProfile returns the stored profile, or ErrNotFound for a player
	// the backend has never seen.
	GetProfile(ctx context.Context, playerID string) (*academy.PlayerProfile, error)

	// PutProfile stores the full profile, creating it if absent.
	PutProfile(ctx context.Context, profile *academy.PlayerProfile) error

	// SubmitStatistic records a named numeric statistic used for
	// leaderboard ranking.
	SubmitStatistic(ctx context.Context, playerID, stat string, value int) error

	// Leaderboard returns up to max ranked entries for a statistic,
	// best first.
	Leaderboard(ctx context.Context, stat string, max int) ([]academy.LeaderboardEntry, error)
}

// ResultRecorder is implemented by backends that persist per-puzzle solve
// history. The store records session history in memory either way; a
// recording backend makes history survive restarts.
type ResultRecorder interface {
	RecordResult(ctx context.Context, playerID string, result academy.HumanResult) error
	Results(ctx context.Context, playerID string) ([]academy.HumanResult, error)
}
