package puzzles

import "github.com/sbenjam1n/arcacademy/internal/academy"

// defaultPalette maps cell values 0-9 to the mission-control emoji set.
var defaultPalette = []string{"⬛", "🟦", "🟥", "🟩", "🟨", "⬜", "🟪", "🟧", "🔷", "🟫"}

// paletteFor returns emoji suggestions covering only the cell values the
// puzzle actually uses, in value order, so the UI can offer a compact picker.
func paletteFor(p *academy.Puzzle) []string {
	used := make([]bool, len(defaultPalette))
	mark := func(g academy.Grid) {
		for _, row := range g {
			for _, cell := range row {
				if cell >= 0 && cell < len(used) {
					used[cell] = true
				}
			}
		}
	}
	for _, pair := range p.Train {
		mark(pair.Input)
		mark(pair.Output)
	}
	for _, pair := range p.Test {
		mark(pair.Input)
	}

	var out []string
	for v, u := range used {
		if u {
			out = append(out, defaultPalette[v])
		}
	}
	return out
}

// sizeHint buckets a grid into the three display sizes the solving UI
// switches its cell dimensions on.
func sizeHint(width, height int) string {
	longest := width
	if height > longest {
		longest = height
	}
	switch {
	case longest <= 6:
		return "small"
	case longest <= 15:
		return "medium"
	default:
		return "large"
	}
}
