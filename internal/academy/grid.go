package academy

import "fmt"

// Cell values are ARC colors 0-9; grids are bounded 1-30 per side.
const (
	MinCell = 0
	MaxCell = 9
	MinSide = 1
	MaxSide = 30
)

// Validate checks that the grid is rectangular, within the 1-30 size bounds,
// and that every cell is in 0-9.
func (g Grid) Validate() error {
	if len(g) < MinSide || len(g) > MaxSide {
		return fmt.Errorf("grid height %d out of range [%d,%d]", len(g), MinSide, MaxSide)
	}
	width := len(g[0])
	if width < MinSide || width > MaxSide {
		return fmt.Errorf("grid width %d out of range [%d,%d]", width, MinSide, MaxSide)
	}
	for y, row := range g {
		if len(row) != width {
			return fmt.Errorf("row %d has %d cells, want %d", y, len(row), width)
		}
		for x, cell := range row {
			if cell < MinCell || cell > MaxCell {
				return fmt.Errorf("cell (%d,%d) value %d out of range [%d,%d]", x, y, cell, MinCell, MaxCell)
			}
		}
	}
	return nil
}

// Dims returns the grid's width and height.
func (g Grid) Dims() (width, height int) {
	if len(g) == 0 {
		return 0, 0
	}
	return len(g[0]), len(g)
}

// Clone returns a deep copy of the grid.
func (g Grid) Clone() Grid {
	if g == nil {
		return nil
	}
	out := make(Grid, len(g))
	for i, row := range g {
		out[i] = make([]int, len(row))
		copy(out[i], row)
	}
	return out
}

// Equal reports whether two grids have identical dimensions and cells.
func (g Grid) Equal(other Grid) bool {
	if len(g) != len(other) {
		return false
	}
	for i, row := range g {
		if len(row) != len(other[i]) {
			return false
		}
		for j, cell := range row {
			if cell != other[i][j] {
				return false
			}
		}
	}
	return true
}

// CheckSolution grades a candidate answer against the expected test output.
// Dimension mismatch is an incorrect answer, not an error.
func CheckSolution(expected, candidate Grid) bool {
	if len(expected) == 0 {
		return false
	}
	return expected.Equal(candidate)
}

// Validate checks the puzzle's structural invariants: at least one training
// pair and one test pair, every grid well formed, and the declared
// width/height matching the first test input.
func (p *Puzzle) Validate() error {
	if p.ID == "" {
		return fmt.Errorf("puzzle has empty id")
	}
	if len(p.Train) == 0 {
		return fmt.Errorf("puzzle %s has no training pairs", p.ID)
	}
	if len(p.Test) == 0 {
		return fmt.Errorf("puzzle %s has no test pairs", p.ID)
	}
	for i, pair := range p.Train {
		if err := pair.Input.Validate(); err != nil {
			return fmt.Errorf("puzzle %s train[%d] input: %w", p.ID, i, err)
		}
		if err := pair.Output.Validate(); err != nil {
			return fmt.Errorf("puzzle %s train[%d] output: %w", p.ID, i, err)
		}
	}
	for i, pair := range p.Test {
		if err := pair.Input.Validate(); err != nil {
			return fmt.Errorf("puzzle %s test[%d] input: %w", p.ID, i, err)
		}
		if pair.Output != nil {
			if err := pair.Output.Validate(); err != nil {
				return fmt.Errorf("puzzle %s test[%d] output: %w", p.ID, i, err)
			}
		}
	}
	w, h := p.Test[0].Input.Dims()
	if p.Width != w || p.Height != h {
		return fmt.Errorf("puzzle %s declares %dx%d, test input is %dx%d", p.ID, p.Width, p.Height, w, h)
	}
	return nil
}
