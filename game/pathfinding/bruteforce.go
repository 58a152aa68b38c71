package pathfinding

import "fmt"

// MaxBruteForceSize bounds BruteForceMax. An 11×11 grid already has 184756
// monotonic routes.
const MaxBruteForceSize = 10

// BruteForceMax enumerates every monotonic route of g and returns the best
// collectible count. It is an oracle for tests and the verify command.
func BruteForceMax(g *Grid) (int, error) {
	if err := g.Validate(); err != nil {
		return 0, err
	}
	if n := g.Size(); n > MaxBruteForceSize {
		return 0, fmt.Errorf("pathfinding: brute force limited to %d×%d, got %d×%d",
			MaxBruteForceSize, MaxBruteForceSize, n, n)
	}
	return walk(g, 0, 0), nil
}

func walk(g *Grid, row, col int) int {
	n := g.Size()
	here := 0
	if g.Scores(&g.Cells[row][col]) {
		here = 1
	}
	if row == n-1 && col == n-1 {
		return here
	}
	best := 0
	if col+1 < n {
		best = walk(g, row, col+1)
	}
	if row+1 < n {
		if down := walk(g, row+1, col); down > best {
			best = down
		}
	}
	return here + best
}

// ValidatePath checks that path runs from start to goal in unit right/down
// steps.
func ValidatePath(g *Grid, path []Position) error {
	n := g.Size()
	if len(path) != 2*n-1 {
		return fmt.Errorf("pathfinding: path has %d cells, want %d", len(path), 2*n-1)
	}
	if path[0] != (Position{}) {
		return fmt.Errorf("pathfinding: path starts at %s", path[0])
	}
	if last := path[len(path)-1]; last != (Position{Row: n - 1, Col: n - 1}) {
		return fmt.Errorf("pathfinding: path ends at %s", last)
	}
	for i := 1; i < len(path); i++ {
		dr, dc := path[i].Row-path[i-1].Row, path[i].Col-path[i-1].Col
		if !(dr == 0 && dc == 1) && !(dr == 1 && dc == 0) {
			return fmt.Errorf("pathfinding: step %d from %s to %s is not right or down", i, path[i-1], path[i])
		}
	}
	return nil
}
