package academy

import "time"

// Difficulty is the derived difficulty tier shown next to a puzzle.
type Difficulty string

const (
	// DifficultyEasy is the default tier when no model performance data exists.
	DifficultyEasy Difficulty = "easy"
	// DifficultyMedium covers puzzles models solve occasionally.
	DifficultyMedium Difficulty = "medium"
	// DifficultyHard covers puzzles models almost never solve.
	DifficultyHard Difficulty = "hard"
)

// Grid is a rectangular array of cell values 0-9, rows outer, columns inner.
type Grid [][]int

// GridPair is one input/output example within a puzzle.
type GridPair struct {
	Input  Grid `json:"input"`
	Output Grid `json:"output"`
}

// TestPair is a test input plus the expected output revealed after solving.
type TestPair struct {
	Input  Grid `json:"input"`
	Output Grid `json:"output,omitempty"`
}

// Puzzle is a normalized ARC task ready for display: training examples,
// test cases, declared dimensions of the first test input, and presentation
// metadata attached by the puzzle source adapter.
type Puzzle struct {
	ID         string     `json:"id"`
	Train      []GridPair `json:"train"`
	Test       []TestPair `json:"test"`
	Width      int        `json:"width"`
	Height     int        `json:"height"`
	Difficulty Difficulty `json:"difficulty"`
	Emojis     []string   `json:"emojis"`
	SizeHint   string     `json:"size_hint"` // small, medium, large
}

// PlayerProfile is the persisted progression state for one player.
type PlayerProfile struct {
	PlayerID    string    `json:"player_id" db:"player_id"`
	RankLevel   int       `json:"rank_level" db:"rank_level"`
	RankName    string    `json:"rank_name" db:"rank_name"`
	TotalPoints int       `json:"total_points" db:"total_points"`
	Completed   int       `json:"completed" db:"completed"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
	Placeholder bool      `json:"-"` // true when the backend was unreachable
}

// LeaderboardEntry is one ranked row of a named statistic.
type LeaderboardEntry struct {
	PlayerID    string `json:"player_id"`
	DisplayName string `json:"display_name"`
	Value       int    `json:"value"`
	Position    int    `json:"position"`
}

// PerformanceSummary is the aggregate AI model performance for one puzzle,
// as reported by the external statistics API.
type PerformanceSummary struct {
	PuzzleID          string  `json:"puzzle_id"`
	AvgAccuracy       float64 `json:"avg_accuracy"`
	AvgConfidence     float64 `json:"avg_confidence"` // confidence when wrong
	WrongCount        int     `json:"wrong_count"`
	TotalExplanations int     `json:"total_explanations"`
	TotalFeedback     int     `json:"total_feedback"`
}

// HumanResult is one locally recorded solve outcome.
type HumanResult struct {
	PuzzleID  string        `json:"puzzle_id"`
	Correct   bool          `json:"correct"`
	Points    int           `json:"points"`
	Elapsed   time.Duration `json:"elapsed"`
	HintsUsed int           `json:"hints_used"`
	SolvedAt  time.Time     `json:"solved_at"`
}

// ComparisonRecord joins a human result with the AI summary for the same
// puzzle. AI is nil when the external source has no data for the id.
type ComparisonRecord struct {
	PuzzleID      string              `json:"puzzle_id"`
	Human         HumanResult         `json:"human"`
	AI            *PerformanceSummary `json:"ai,omitempty"`
	Overconfident bool                `json:"overconfident"`
}

// Overconfident reports whether the models scored poorly on this puzzle
// while remaining confident in their wrong answers. Display only.
func (s *PerformanceSummary) Overconfident() bool {
	if s == nil {
		return false
	}
	return s.AvgAccuracy < 0.5 && s.AvgConfidence > 0.8
}

// TierForAccuracy maps average model accuracy to a difficulty tier.
// hasData is false when the statistics API knows nothing about the puzzle,
// which defaults to the easiest tier.
func TierForAccuracy(avgAccuracy float64, hasData bool) Difficulty {
	switch {
	case !hasData:
		return DifficultyEasy
	case avgAccuracy >= 0.45:
		return DifficultyEasy
	case avgAccuracy >= 0.15:
		return DifficultyMedium
	default:
		return DifficultyHard
	}
}
