package academy

// Rank is one tier of the officer progression ladder.
type Rank struct {
	Level     int    `json:"level"`
	Name      string `json:"name"`
	MinPoints int    `json:"min_points"`
}

// ranks is ordered by MinPoints ascending. Level 1 is the starting rank.
var ranks = []Rank{
	{Level: 1, Name: "Cadet", MinPoints: 0},
	{Level: 2, Name: "Ensign", MinPoints: 500},
	{Level: 3, Name: "Lieutenant", MinPoints: 1500},
	{Level: 4, Name: "Commander", MinPoints: 3500},
	{Level: 5, Name: "Captain", MinPoints: 7000},
	{Level: 6, Name: "Admiral", MinPoints: 12000},
}

// RankForPoints returns the highest rank whose point threshold is met.
func RankForPoints(points int) Rank {
	current := ranks[0]
	for _, r := range ranks {
		if points >= r.MinPoints {
			current = r
		}
	}
	return current
}

// Ranks returns the full progression ladder, lowest rank first.
func Ranks() []Rank {
	out := make([]Rank, len(ranks))
	copy(out, ranks)
	return out
}
