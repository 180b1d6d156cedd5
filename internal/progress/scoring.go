package progress

import (
	"time"

	"github.com/sbenjam1n/arcacademy/internal/academy"
)

// Scoring constants. The formula is fixed: base points for the puzzle's
// tier, plus a step-wise time bonus under the threshold, minus a per-hint
// penalty, clamped to a positive floor.
const (
	basePointsEasy   = 50
	basePointsMedium = 100
	basePointsHard   = 150

	timeBonusThreshold = 5 * time.Minute
	hintPenalty        = 15
	minPoints          = 10
)

// timeBonusSteps is ordered by cutoff ascending; the first cutoff the
// elapsed time fits under wins.
var timeBonusSteps = []struct {
	under time.Duration
	bonus int
}{
	{1 * time.Minute, 50},
	{2 * time.Minute, 35},
	{3 * time.Minute, 20},
	{timeBonusThreshold, 10},
}

// Score computes the points awarded for a correct solve.
func Score(difficulty academy.Difficulty, elapsed time.Duration, hintsUsed int) int {
	points := basePoints(difficulty) + timeBonus(elapsed) - hintsUsed*hintPenalty
	if points < minPoints {
		return minPoints
	}
	return points
}

func basePoints(d academy.Difficulty) int {
	switch d {
	case academy.DifficultyMedium:
		return basePointsMedium
	case academy.DifficultyHard:
		return basePointsHard
	default:
		return basePointsEasy
	}
}

func timeBonus(elapsed time.Duration) int {
	for _, step := range timeBonusSteps {
		if elapsed < step.under {
			return step.bonus
		}
	}
	return 0
}
