package progress

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/sbenjam1n/arcacademy/internal/academy"
)

// Store mediates all reads and writes of the authenticated player's
// progression state. It holds a transient cached copy of the profile for
// the session and an in-memory solve history used by the comparison view.
type Store struct {
	backend  Backend
	playerID string
	logger   *zap.Logger

	mu      sync.Mutex
	profile *academy.PlayerProfile
	history []academy.HumanResult
}

// NewStore creates a Store for one player.
func NewStore(backend Backend, playerID string, logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{backend: backend, playerID: playerID, logger: logger}
}

// defaultProfile is the documented profile for a never-before-seen player:
// starting rank, zero points, zero completed.
func defaultProfile(playerID string) *academy.PlayerProfile {
	rank := academy.RankForPoints(0)
	now := time.Now().UTC()
	return &academy.PlayerProfile{
		PlayerID:  playerID,
		RankLevel: rank.Level,
		RankName:  rank.Name,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// GetPlayerData returns the player's current profile. A never-seen player
// gets the default profile. If the backend is unreachable the store
// substitutes a placeholder profile and degrades to read-only so the UI
// stays usable.
func (s *Store) GetPlayerData(ctx context.Context) (*academy.PlayerProfile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.profile != nil {
		clone := *s.profile
		return &clone, nil
	}

	profile, err := s.backend.GetProfile(ctx, s.playerID)
	switch {
	case err == nil:
	case errors.Is(err, ErrNotFound):
		profile = defaultProfile(s.playerID)
	default:
		s.logger.Warn("backend unreachable, serving placeholder profile",
			zap.String("player", s.playerID), zap.Error(err))
		placeholder := defaultProfile(s.playerID)
		placeholder.Placeholder = true
		clone := *placeholder
		s.profile = placeholder
		return &clone, nil
	}

	s.profile = profile
	clone := *profile
	return &clone, nil
}

// SubmitResult grades a finished attempt. Correct solves award points via
// the fixed scoring formula, update the persisted profile additively, and
// submit the new total as a leaderboard statistic. The two writes are
// best-effort sequential: a failed profile write suppresses the statistic
// submission. Incorrect attempts award nothing and write nothing upstream.
func (s *Store) SubmitResult(ctx context.Context, puzzleID string, difficulty academy.Difficulty, correct bool, elapsed time.Duration, hintsUsed int) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	result := academy.HumanResult{
		PuzzleID:  puzzleID,
		Correct:   correct,
		Elapsed:   elapsed,
		HintsUsed: hintsUsed,
		SolvedAt:  time.Now().UTC(),
	}

	if !correct {
		s.recordLocked(ctx, result)
		return 0, nil
	}

	if s.profile != nil && s.profile.Placeholder {
		return 0, fmt.Errorf("backend unavailable, progress is read-only")
	}

	points := Score(difficulty, elapsed, hintsUsed)
	result.Points = points

	profile, err := s.currentProfileLocked(ctx)
	if err != nil {
		return 0, fmt.Errorf("load profile: %w", err)
	}

	updated := *profile
	updated.TotalPoints += points
	updated.Completed++
	rank := academy.RankForPoints(updated.TotalPoints)
	updated.RankLevel = rank.Level
	updated.RankName = rank.Name
	updated.UpdatedAt = time.Now().UTC()

	if err := s.backend.PutProfile(ctx, &updated); err != nil {
		return 0, fmt.Errorf("update profile: %w", err)
	}
	s.profile = &updated
	s.recordLocked(ctx, result)

	if err := s.backend.SubmitStatistic(ctx, s.playerID, StatOfficerPoints, updated.TotalPoints); err != nil {
		return points, fmt.Errorf("submit statistic: %w", err)
	}
	return points, nil
}

// History returns the session's recorded results, oldest first. When the
// backend persists results, stored history from earlier sessions is
// included ahead of this session's.
func (s *Store) History(ctx context.Context) ([]academy.HumanResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []academy.HumanResult
	if rec, ok := s.backend.(ResultRecorder); ok {
		stored, err := rec.Results(ctx, s.playerID)
		if err != nil {
			s.logger.Warn("stored history unavailable", zap.Error(err))
		} else {
			out = append(out, stored...)
			return out, nil
		}
	}
	out = append(out, s.history...)
	return out, nil
}

// Leaderboard reads ranked entries for a statistic straight from the
// backend. Cached reads go through lbcache's read-through helper instead.
func (s *Store) Leaderboard(ctx context.Context, stat string, max int) ([]academy.LeaderboardEntry, error) {
	return s.backend.Leaderboard(ctx, stat, max)
}

func (s *Store) currentProfileLocked(ctx context.Context) (*academy.PlayerProfile, error) {
	if s.profile != nil {
		return s.profile, nil
	}
	profile, err := s.backend.GetProfile(ctx, s.playerID)
	if errors.Is(err, ErrNotFound) {
		return defaultProfile(s.playerID), nil
	}
	if err != nil {
		return nil, err
	}
	return profile, nil
}

func (s *Store) recordLocked(ctx context.Context, result academy.HumanResult) {
	s.history = append(s.history, result)
	if rec, ok := s.backend.(ResultRecorder); ok {
		if err := rec.RecordResult(ctx, s.playerID, result); err != nil {
			s.logger.Warn("result not persisted", zap.String("puzzle", result.PuzzleID), zap.Error(err))
		}
	}
}
