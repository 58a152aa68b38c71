package pathfinding

import "fmt"

// Position addresses a cell by row and column.
type Position struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

func (p Position) String() string {
	return fmt.Sprintf("(%d,%d)", p.Row, p.Col)
}

// Cell is one square of the level.
//
// Worthiness is written by LabelWorthiness and is 0 for every cell that is
// not a scoring collectible.
type Cell struct {
	Row            int  `json:"row"`
	Col            int  `json:"col"`
	HasCollectible bool `json:"has_collectible"`
	Worthiness     int  `json:"worthiness"`
}

// Position returns the cell coordinates.
func (c *Cell) Position() Position {
	return Position{Row: c.Row, Col: c.Col}
}

// Grid is an N×N array of cells indexed [row][col].
type Grid struct {
	Cells [][]Cell `json:"cells"`
}

// NewGrid returns an empty n×n grid.
func NewGrid(n int) (*Grid, error) {
	if n <= 0 {
		return nil, fmt.Errorf("%w: size %d", ErrEmptyGrid, n)
	}
	cells := make([][]Cell, n)
	for i := range cells {
		cells[i] = make([]Cell, n)
		for j := range cells[i] {
			cells[i][j] = Cell{Row: i, Col: j}
		}
	}
	return &Grid{Cells: cells}, nil
}

// NewGridFromFlags builds a grid whose collectibles are the true entries of
// flags. flags must be square.
func NewGridFromFlags(flags [][]bool) (*Grid, error) {
	n := len(flags)
	if n == 0 {
		return nil, ErrEmptyGrid
	}
	for i, row := range flags {
		if len(row) != n {
			return nil, fmt.Errorf("%w: row %d has %d columns, want %d", ErrNonSquare, i, len(row), n)
		}
	}
	g, err := NewGrid(n)
	if err != nil {
		return nil, err
	}
	for i, row := range flags {
		for j, v := range row {
			g.Cells[i][j].HasCollectible = v
		}
	}
	return g, nil
}

// Size returns N.
func (g *Grid) Size() int {
	return len(g.Cells)
}

// Validate reports whether the grid is a well-formed N×N array with N ≥ 1.
func (g *Grid) Validate() error {
	if g == nil || len(g.Cells) == 0 {
		return ErrEmptyGrid
	}
	n := len(g.Cells)
	for i, row := range g.Cells {
		if len(row) != n {
			return fmt.Errorf("%w: row %d has %d columns, want %d", ErrNonSquare, i, len(row), n)
		}
		for j := range row {
			if row[j].Row != i || row[j].Col != j {
				return fmt.Errorf("%w: cell at [%d][%d] says (%d,%d)", ErrCellCoordinates, i, j, row[j].Row, row[j].Col)
			}
		}
	}
	return nil
}

// InBounds reports whether (row, col) addresses a cell.
func (g *Grid) InBounds(row, col int) bool {
	n := len(g.Cells)
	return row >= 0 && row < n && col >= 0 && col < n
}

// Cell returns the cell at (row, col), or nil when out of bounds.
func (g *Grid) Cell(row, col int) *Cell {
	if !g.InBounds(row, col) {
		return nil
	}
	return &g.Cells[row][col]
}

// Start returns the top-left cell.
func (g *Grid) Start() *Cell {
	return &g.Cells[0][0]
}

// Goal returns the bottom-right cell.
func (g *Grid) Goal() *Cell {
	n := len(g.Cells)
	return &g.Cells[n-1][n-1]
}

// Right returns the neighbor to the right of p, or nil on the right edge.
func (g *Grid) Right(p Position) *Cell {
	return g.Cell(p.Row, p.Col+1)
}

// Down returns the neighbor below p, or nil on the bottom edge.
func (g *Grid) Down(p Position) *Cell {
	return g.Cell(p.Row+1, p.Col)
}

// SetCollectible flags or clears the collectible at (row, col).
func (g *Grid) SetCollectible(row, col int, v bool) error {
	c := g.Cell(row, col)
	if c == nil {
		return fmt.Errorf("%w: (%d,%d)", ErrOutOfBounds, row, col)
	}
	c.HasCollectible = v
	return nil
}

// Scores reports whether c counts as a pickup. Start and goal never do.
func (g *Grid) Scores(c *Cell) bool {
	if !c.HasCollectible {
		return false
	}
	n := len(g.Cells)
	if c.Row == 0 && c.Col == 0 {
		return false
	}
	return !(c.Row == n-1 && c.Col == n-1)
}

// CollectibleCount returns the number of scoring collectibles.
func (g *Grid) CollectibleCount() int {
	count := 0
	for i := range g.Cells {
		for j := range g.Cells[i] {
			if g.Scores(&g.Cells[i][j]) {
				count++
			}
		}
	}
	return count
}
