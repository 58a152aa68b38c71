// Package placement decides where mushrooms go on a level grid.
//
// The pathfinding core never places collectibles itself; a Policy populates
// the grid before the core runs.
package placement

import (
	"errors"
	"fmt"
	"math"
	"math/rand"
	"strings"

	"github.com/wricardo/mcp-training/smartmario/game/pathfinding"
)

const (
	// EmptyChar marks a cell without a mushroom in a layout row.
	EmptyChar = '.'
	// MushroomChar marks a mushroom in a layout row.
	MushroomChar = 'M'
)

var ErrInvalidLayout = errors.New("invalid layout")

// Policy flags the collectibles of a freshly built grid.
type Policy interface {
	Place(g *pathfinding.Grid) error
}

// DefaultCount is the number of random draws for an n×n level: n²/√n,
// truncated.
func DefaultCount(n int) int {
	if n <= 0 {
		return 0
	}
	return int(float64(n*n) / math.Sqrt(float64(n)))
}

// Random scatters mushrooms uniformly. Draws landing on the start, the goal
// or an already flagged cell are dropped, so a grid may end up with fewer
// mushrooms than draws.
type Random struct {
	rng   *rand.Rand
	count int
}

// NewRandom returns a random policy seeded with seed. count <= 0 selects
// DefaultCount for the grid being populated.
func NewRandom(seed int64, count int) *Random {
	return &Random{
		rng:   rand.New(rand.NewSource(seed)),
		count: count,
	}
}

// Place flags the mushrooms of g.
func (r *Random) Place(g *pathfinding.Grid) error {
	if err := g.Validate(); err != nil {
		return err
	}
	n := g.Size()
	draws := r.count
	if draws <= 0 {
		draws = DefaultCount(n)
	}
	for k := 0; k < draws; k++ {
		row, col := r.rng.Intn(n), r.rng.Intn(n)
		if (row == 0 && col == 0) || (row == n-1 && col == n-1) {
			continue
		}
		g.Cells[row][col].HasCollectible = true
	}
	return nil
}

// Layout places mushrooms from fixed rows of EmptyChar and MushroomChar.
type Layout struct {
	rows []string
}

// ParseLayout checks that rows form a square of known characters with no
// mushroom on the start or goal cell.
func ParseLayout(rows []string) (*Layout, error) {
	n := len(rows)
	if n == 0 {
		return nil, fmt.Errorf("%w: no rows", ErrInvalidLayout)
	}
	for i, row := range rows {
		if len(row) != n {
			return nil, fmt.Errorf("%w: row %d has %d characters, want %d", ErrInvalidLayout, i+1, len(row), n)
		}
		for j := 0; j < len(row); j++ {
			switch row[j] {
			case EmptyChar:
			case MushroomChar:
				if (i == 0 && j == 0) || (i == n-1 && j == n-1) {
					return nil, fmt.Errorf("%w: mushroom on start or goal at row %d, col %d", ErrInvalidLayout, i+1, j+1)
				}
			default:
				return nil, fmt.Errorf("%w: invalid character '%c' at row %d, col %d", ErrInvalidLayout, row[j], i+1, j+1)
			}
		}
	}
	return &Layout{rows: rows}, nil
}

// Size returns the side length of the layout.
func (l *Layout) Size() int {
	return len(l.rows)
}

// Place flags the mushrooms of g. g must have the layout's size.
func (l *Layout) Place(g *pathfinding.Grid) error {
	if err := g.Validate(); err != nil {
		return err
	}
	if g.Size() != len(l.rows) {
		return fmt.Errorf("%w: layout is %d×%d, grid is %d×%d", ErrInvalidLayout, len(l.rows), len(l.rows), g.Size(), g.Size())
	}
	for i, row := range l.rows {
		for j := 0; j < len(row); j++ {
			g.Cells[i][j].HasCollectible = row[j] == MushroomChar
		}
	}
	return nil
}

// Render writes g back as layout rows.
func Render(g *pathfinding.Grid) []string {
	rows := make([]string, g.Size())
	for i := range g.Cells {
		var b strings.Builder
		for j := range g.Cells[i] {
			if g.Scores(&g.Cells[i][j]) {
				b.WriteByte(MushroomChar)
			} else {
				b.WriteByte(EmptyChar)
			}
		}
		rows[i] = b.String()
	}
	return rows
}

// Populate builds an n×n grid and applies p to it.
func Populate(n int, p Policy) (*pathfinding.Grid, error) {
	g, err := pathfinding.NewGrid(n)
	if err != nil {
		return nil, err
	}
	if err := p.Place(g); err != nil {
		return nil, err
	}
	return g, nil
}
