package config

import "testing"

func TestLoadRequiresTitleAndKey(t *testing.T) {
	t.Setenv("ACADEMY_TITLE_ID", "")
	t.Setenv("ACADEMY_SECRET_KEY", "")

	if _, err := Load(); err == nil {
		t.Fatal("Load must fail without ACADEMY_TITLE_ID")
	}

	t.Setenv("ACADEMY_TITLE_ID", "T1234")
	if _, err := Load(); err == nil {
		t.Fatal("Load must fail without ACADEMY_SECRET_KEY")
	}

	t.Setenv("ACADEMY_SECRET_KEY", "hunter2")
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.TitleID != "T1234" || cfg.SecretKey != "hunter2" {
		t.Errorf("unexpected config: %+v", cfg)
	}
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("ACADEMY_TITLE_ID", "T1234")
	t.Setenv("ACADEMY_SECRET_KEY", "hunter2")
	t.Setenv("ACADEMY_PUZZLE_API_URL", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.PuzzleAPIURL == "" {
		t.Error("PuzzleAPIURL default missing")
	}
	if cfg.DatabaseURL == "" || cfg.RedisURL == "" {
		t.Error("storage URL defaults missing")
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("ACADEMY_TITLE_ID", "T1234")
	t.Setenv("ACADEMY_SECRET_KEY", "hunter2")
	t.Setenv("ACADEMY_STATS_API_URL", "http://localhost:9999")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.StatsAPIURL != "http://localhost:9999" {
		t.Errorf("StatsAPIURL = %q, want override", cfg.StatsAPIURL)
	}
}
