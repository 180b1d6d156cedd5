package config

import (
	"fmt"
	"os"
)

// Config holds all configuration for the academy CLI.
type Config struct {
	// TitleID and SecretKey identify this deployment to the hosted game
	// backend. Both are required; startup fails without them.
	TitleID   string
	SecretKey string

	PuzzleAPIURL string
	StatsAPIURL  string
	BackendURL   string

	// DatabaseURL is only used when the self-hosted Postgres backend is
	// selected, RedisURL only when the Redis leaderboard cache is.
	DatabaseURL string
	RedisURL    string

	PlayerID string
}

// Load reads configuration from environment variables. Missing required
// values are a fatal configuration error, not a recoverable condition.
func Load() (*Config, error) {
	cfg := &Config{
		TitleID:      os.Getenv("ACADEMY_TITLE_ID"),
		SecretKey:    os.Getenv("ACADEMY_SECRET_KEY"),
		PuzzleAPIURL: getEnv("ACADEMY_PUZZLE_API_URL", "https://api.arcprize.dev"),
		StatsAPIURL:  getEnv("ACADEMY_STATS_API_URL", "https://stats.arcprize.dev"),
		BackendURL:   getEnv("ACADEMY_BACKEND_URL", "https://titles.playbackend.net"),
		DatabaseURL:  getEnv("ACADEMY_DATABASE_URL", "postgres://localhost:5432/arcacademy?sslmode=disable"),
		RedisURL:     getEnv("ACADEMY_REDIS_URL", "redis://localhost:6379/0"),
		PlayerID:     os.Getenv("ACADEMY_PLAYER_ID"),
	}

	if cfg.TitleID == "" {
		return nil, fmt.Errorf("ACADEMY_TITLE_ID is required")
	}
	if cfg.SecretKey == "" {
		return nil, fmt.Errorf("ACADEMY_SECRET_KEY is required")
	}
	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
