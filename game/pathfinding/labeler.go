package pathfinding

// LabelWorthiness assigns a worthiness to every cell of g and returns the
// largest one.
//
// Cells are visited by anti-diagonal, k = 2(N-1) down to 0, so every cell
// below-right of the current one is final before it is read. A scoring cell
// gets 1 + the best worthiness among the scoring cells at rows ≥ its row and
// columns ≥ its column (itself excluded); every other cell gets 0.
//
// The naive dominance scan makes the pass O(N⁴) in the worst case, which is
// fine for level sizes.
//
// Running it twice on the same flags yields the same labels.
func LabelWorthiness(g *Grid) (int, error) {
	if err := g.Validate(); err != nil {
		return 0, err
	}

	n := g.Size()
	best := 0
	for k := 2 * (n - 1); k >= 0; k-- {
		for row := min(k, n-1); row >= 0 && k-row < n; row-- {
			c := &g.Cells[row][k-row]
			if !g.Scores(c) {
				c.Worthiness = 0
				continue
			}
			c.Worthiness = maxDominated(g, c) + 1
			if c.Worthiness > best {
				best = c.Worthiness
			}
		}
	}
	return best, nil
}

// maxDominated returns the highest worthiness among the scoring cells
// reachable from c by right/down moves, excluding c.
func maxDominated(g *Grid, c *Cell) int {
	n := g.Size()
	best := 0
	for i := c.Row; i < n; i++ {
		for j := c.Col; j < n; j++ {
			if i == c.Row && j == c.Col {
				continue
			}
			other := &g.Cells[i][j]
			if g.Scores(other) && other.Worthiness > best {
				best = other.Worthiness
			}
		}
	}
	return best
}
