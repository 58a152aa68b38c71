package pathfinding

import "fmt"

const (
	// MoveRight steps one column to the right.
	MoveRight = "right"
	// MoveDown steps one row down.
	MoveDown = "down"
)

// PathResult is the outcome of one ComputeMaxCollectiblePath call.
//
// Path starts at (0,0), ends at (N-1,N-1) and every consecutive pair is a
// single right or down step.
type PathResult struct {
	MaxWorthiness int     `json:"max_worthiness"`
	Path          []*Cell `json:"path"`
}

// Positions returns the coordinates of every cell on the path.
func (r *PathResult) Positions() []Position {
	out := make([]Position, len(r.Path))
	for i, c := range r.Path {
		out[i] = c.Position()
	}
	return out
}

// Moves returns the path as a sequence of MoveRight/MoveDown steps.
func (r *PathResult) Moves() []string {
	return MovesFor(r.Positions())
}

// Collected returns the scoring collectibles lying on the path.
func (r *PathResult) Collected(g *Grid) []Position {
	var out []Position
	for _, c := range r.Path {
		if g.Scores(c) {
			out = append(out, c.Position())
		}
	}
	return out
}

// MovesFor converts consecutive positions into move directions. Pairs that
// are not a single right or down step are skipped.
func MovesFor(path []Position) []string {
	moves := make([]string, 0, len(path))
	for i := 1; i < len(path); i++ {
		prev, cur := path[i-1], path[i]
		switch {
		case cur.Row == prev.Row && cur.Col == prev.Col+1:
			moves = append(moves, MoveRight)
		case cur.Col == prev.Col && cur.Row == prev.Row+1:
			moves = append(moves, MoveDown)
		}
	}
	return moves
}

// ComputeMaxCollectiblePath labels g and reconstructs one route collecting
// the maximum number of collectibles.
//
// It fails with ErrMalformedGrid for invalid input and with
// ErrInconsistentLabels if reconstruction loses track of the labels.
func ComputeMaxCollectiblePath(g *Grid) (*PathResult, error) {
	best, err := LabelWorthiness(g)
	if err != nil {
		return nil, err
	}
	return ReconstructPath(g, best)
}

// ReconstructPath walks a labelled grid from the start to the goal.
//
// Starting with target = maxWorthiness, it looks for the first cell in
// row-major order from the current position whose worthiness equals target,
// appends the elbow to it and continues with target = worthiness-1. Once the
// label-1 pickup is reached (or when target is 0 from the outset) the direct
// elbow to the goal closes the path.
func ReconstructPath(g *Grid, maxWorthiness int) (*PathResult, error) {
	if err := g.Validate(); err != nil {
		return nil, err
	}
	if maxWorthiness < 0 {
		return nil, fmt.Errorf("%w: negative maximum %d", ErrInconsistentLabels, maxWorthiness)
	}

	goal := g.Goal()
	current := g.Start()
	path := []*Cell{current}
	target := maxWorthiness

	for current != goal {
		if target == 0 {
			path = appendElbow(g, path, current, goal)
			break
		}

		next, found := findWaypoint(g, current, target)
		if !found {
			return nil, fmt.Errorf("%w: no cell with worthiness %d reachable from %s",
				ErrInconsistentLabels, target, current.Position())
		}

		path = appendElbow(g, path, current, next)
		current = next
		// A label-1 waypoint is the last pickup; target 0 sends the next
		// iteration straight to the goal.
		target = next.Worthiness - 1
	}

	return &PathResult{MaxWorthiness: maxWorthiness, Path: path}, nil
}

// findWaypoint scans rows from from.Row and, inside each row, columns from
// from.Col upward. The first cell labelled target wins.
func findWaypoint(g *Grid, from *Cell, target int) (*Cell, bool) {
	n := g.Size()
	for i := from.Row; i < n; i++ {
		for j := from.Col; j < n; j++ {
			c := &g.Cells[i][j]
			if c.Worthiness == target && g.Scores(c) {
				return c, true
			}
		}
	}
	return nil, false
}

// appendElbow appends the cells from (exclusive) to to (inclusive): first
// right along from.Row, then down along to.Col.
func appendElbow(g *Grid, path []*Cell, from, to *Cell) []*Cell {
	for j := from.Col + 1; j <= to.Col; j++ {
		path = append(path, &g.Cells[from.Row][j])
	}
	for i := from.Row + 1; i <= to.Row; i++ {
		path = append(path, &g.Cells[i][to.Col])
	}
	return path
}
