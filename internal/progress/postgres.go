package progress

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/sbenjam1n/arcacademy/internal/academy"
)

// PostgresBackend implements Backend and ResultRecorder on a local
// Postgres, for deployments that run their own backend instead of the
// hosted service.
type PostgresBackend struct {
	db *pgxpool.Pool
}

// NewPostgresBackend wraps an existing connection pool.
func NewPostgresBackend(db *pgxpool.Pool) *PostgresBackend {
	return &PostgresBackend{db: db}
}

// Connect creates a connection pool and verifies it with a ping.
func Connect(ctx context.Context, databaseURL string) (*pgxpool.Pool, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	return pool, nil
}

// Migrate creates the schema used by the self-hosted backend.
func (b *PostgresBackend) Migrate(ctx context.Context) error {
	_, err := b.db.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS player_profiles (
			player_id    TEXT PRIMARY KEY,
			rank_level   INT NOT NULL DEFAULT 1,
			rank_name    TEXT NOT NULL DEFAULT 'Cadet',
			total_points INT NOT NULL DEFAULT 0,
			completed    INT NOT NULL DEFAULT 0,
			created_at   TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at   TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);

		CREATE TABLE IF NOT EXISTS player_statistics (
			player_id  TEXT NOT NULL,
			statistic  TEXT NOT NULL,
			value      INT NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			PRIMARY KEY (player_id, statistic)
		);

		CREATE TABLE IF NOT EXISTS puzzle_results (
			id         BIGSERIAL PRIMARY KEY,
			player_id  TEXT NOT NULL,
			puzzle_id  TEXT NOT NULL,
			correct    BOOLEAN NOT NULL,
			points     INT NOT NULL,
			elapsed_ms BIGINT NOT NULL,
			hints_used INT NOT NULL,
			solved_at  TIMESTAMPTZ NOT NULL
		);

		CREATE INDEX IF NOT EXISTS idx_statistics_value
			ON player_statistics (statistic, value DESC);
		CREATE INDEX IF NOT EXISTS idx_results_player
			ON puzzle_results (player_id, solved_at);
	`)
	if err != nil {
		return fmt.Errorf("execute migration: %w", err)
	}
	return nil
}

// GetProfile returns the stored profile or ErrNotFound.
func (b *PostgresBackend) GetProfile(ctx context.Context, playerID string) (*academy.PlayerProfile, error) {
	var p academy.PlayerProfile
	err := b.db.QueryRow(ctx, `
		SELECT player_id, rank_level, rank_name, total_points, completed, created_at, updated_at
		FROM player_profiles
		WHERE player_id = $1
	`, playerID).Scan(&p.PlayerID, &p.RankLevel, &p.RankName, &p.TotalPoints, &p.Completed, &p.CreatedAt, &p.UpdatedAt)
	if err == pgx.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("fetch profile %s: %w", playerID, err)
	}
	return &p, nil
}

// PutProfile upserts the full profile row.
func (b *PostgresBackend) PutProfile(ctx context.Context, profile *academy.PlayerProfile) error {
	_, err := b.db.Exec(ctx, `
		INSERT INTO player_profiles (player_id, rank_level, rank_name, total_points, completed, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (player_id) DO UPDATE
		SET rank_level = $2, rank_name = $3, total_points = $4, completed = $5, updated_at = $7
	`, profile.PlayerID, profile.RankLevel, profile.RankName, profile.TotalPoints,
		profile.Completed, profile.CreatedAt, profile.UpdatedAt)
	if err != nil {
		return fmt.Errorf("store profile %s: %w", profile.PlayerID, err)
	}
	return nil
}

// SubmitStatistic upserts the player's value for a named statistic.
func (b *PostgresBackend) SubmitStatistic(ctx context.Context, playerID, stat string, value int) error {
	_, err := b.db.Exec(ctx, `
		INSERT INTO player_statistics (player_id, statistic, value, updated_at)
		VALUES ($1, $2, $3, NOW())
		ON CONFLICT (player_id, statistic) DO UPDATE
		SET value = $3, updated_at = NOW()
	`, playerID, stat, value)
	if err != nil {
		return fmt.Errorf("submit statistic %s: %w", stat, err)
	}
	return nil
}

// Leaderboard returns up to max ranked entries for a statistic, best first.
// Display names fall back to the player id; the self-hosted schema has no
// separate identity table.
func (b *PostgresBackend) Leaderboard(ctx context.Context, stat string, max int) ([]academy.LeaderboardEntry, error) {
	rows, err := b.db.Query(ctx, `
		SELECT player_id, value,
		       RANK() OVER (ORDER BY value DESC) AS position
		FROM player_statistics
		WHERE statistic = $1
		ORDER BY value DESC
		LIMIT $2
	`, stat, max)
	if err != nil {
		return nil, fmt.Errorf("read leaderboard %s: %w", stat, err)
	}
	defer rows.Close()

	var entries []academy.LeaderboardEntry
	for rows.Next() {
		var e academy.LeaderboardEntry
		if err := rows.Scan(&e.PlayerID, &e.Value, &e.Position); err != nil {
			return nil, fmt.Errorf("scan leaderboard row: %w", err)
		}
		e.DisplayName = e.PlayerID
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// RecordResult appends one solve outcome to the player's history.
func (b *PostgresBackend) RecordResult(ctx context.Context, playerID string, result academy.HumanResult) error {
	_, err := b.db.Exec(ctx, `
		INSERT INTO puzzle_results (player_id, puzzle_id, correct, points, elapsed_ms, hints_used, solved_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, playerID, result.PuzzleID, result.Correct, result.Points,
		result.Elapsed.Milliseconds(), result.HintsUsed, result.SolvedAt)
	if err != nil {
		return fmt.Errorf("record result for %s: %w", result.PuzzleID, err)
	}
	return nil
}

// Results returns the player's stored history, oldest first.
func (b *PostgresBackend) Results(ctx context.Context, playerID string) ([]academy.HumanResult, error) {
	rows, err := b.db.Query(ctx, `
		SELECT puzzle_id, correct, points, elapsed_ms, hints_used, solved_at
		FROM puzzle_results
		WHERE player_id = $1
		ORDER BY solved_at
	`, playerID)
	if err != nil {
		return nil, fmt.Errorf("read results for %s: %w", playerID, err)
	}
	defer rows.Close()

	var out []academy.HumanResult
	for rows.Next() {
		var r academy.HumanResult
		var elapsedMS int64
		if err := rows.Scan(&r.PuzzleID, &r.Correct, &r.Points, &elapsedMS, &r.HintsUsed, &r.SolvedAt); err != nil {
			return nil, fmt.Errorf("scan result row: %w", err)
		}
		r.Elapsed = time.Duration(elapsedMS) * time.Millisecond
		out = append(out, r)
	}
	return out, rows.Err()
}
