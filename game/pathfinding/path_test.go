package pathfinding_test

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wricardo/mcp-training/smartmario/game/pathfinding"
)

// gridWith builds an n×n grid with collectibles at the given positions.
func gridWith(t *testing.T, n int, collectibles ...pathfinding.Position) *pathfinding.Grid {
	t.Helper()
	g, err := pathfinding.NewGrid(n)
	require.NoError(t, err)
	for _, p := range collectibles {
		require.NoError(t, g.SetCollectible(p.Row, p.Col, true))
	}
	return g
}

func pos(row, col int) pathfinding.Position {
	return pathfinding.Position{Row: row, Col: col}
}

// randomGrid flags each cell with probability density.
func randomGrid(t *testing.T, rng *rand.Rand, n int, density float64) *pathfinding.Grid {
	t.Helper()
	g, err := pathfinding.NewGrid(n)
	require.NoError(t, err)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			g.Cells[i][j].HasCollectible = rng.Float64() < density
		}
	}
	return g
}

func countOnPath(g *pathfinding.Grid, path []pathfinding.Position) int {
	seen := make(map[pathfinding.Position]bool)
	for _, p := range path {
		if g.Scores(g.Cell(p.Row, p.Col)) {
			seen[p] = true
		}
	}
	return len(seen)
}

func TestComputeMaxCollectiblePath_Scenarios(t *testing.T) {
	cases := []struct {
		name         string
		n            int
		collectibles []pathfinding.Position
		wantMax      int
		wantPath     []pathfinding.Position
	}{
		{
			name:         "TwoChainedPickups",
			n:            3,
			collectibles: []pathfinding.Position{pos(0, 1), pos(1, 2)},
			wantMax:      2,
			wantPath:     []pathfinding.Position{pos(0, 0), pos(0, 1), pos(0, 2), pos(1, 2), pos(2, 2)},
		},
		{
			name:     "EmptyTwoByTwo",
			n:        2,
			wantMax:  0,
			wantPath: []pathfinding.Position{pos(0, 0), pos(0, 1), pos(1, 1)},
		},
		{
			name:         "SinglePickupBottomLeft",
			n:            4,
			collectibles: []pathfinding.Position{pos(3, 0)},
			wantMax:      1,
			wantPath: []pathfinding.Position{
				pos(0, 0), pos(1, 0), pos(2, 0), pos(3, 0), pos(3, 1), pos(3, 2), pos(3, 3),
			},
		},
		{
			name:         "RowMajorTieBreak",
			n:            3,
			collectibles: []pathfinding.Position{pos(2, 0), pos(0, 2)},
			wantMax:      1,
			wantPath:     []pathfinding.Position{pos(0, 0), pos(0, 1), pos(0, 2), pos(1, 2), pos(2, 2)},
		},
		{
			name:         "LastPickupOffTheDirectElbow",
			n:            3,
			collectibles: []pathfinding.Position{pos(0, 1), pos(2, 1)},
			wantMax:      2,
			wantPath:     []pathfinding.Position{pos(0, 0), pos(0, 1), pos(1, 1), pos(2, 1), pos(2, 2)},
		},
		{
			name:     "SingleCell",
			n:        1,
			wantMax:  0,
			wantPath: []pathfinding.Position{pos(0, 0)},
		},
		{
			name:         "StartAndGoalNeverScore",
			n:            3,
			collectibles: []pathfinding.Position{pos(0, 0), pos(2, 2)},
			wantMax:      0,
			wantPath:     []pathfinding.Position{pos(0, 0), pos(0, 1), pos(0, 2), pos(1, 2), pos(2, 2)},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			g := gridWith(t, tc.n, tc.collectibles...)
			res, err := pathfinding.ComputeMaxCollectiblePath(g)
			require.NoError(t, err)
			assert.Equal(t, tc.wantMax, res.MaxWorthiness)
			assert.Equal(t, tc.wantPath, res.Positions())
		})
	}
}

func TestComputeMaxCollectiblePath_NoCollectiblesIsDirectElbow(t *testing.T) {
	for n := 1; n <= 8; n++ {
		g := gridWith(t, n)
		res, err := pathfinding.ComputeMaxCollectiblePath(g)
		require.NoError(t, err)
		assert.Equal(t, 0, res.MaxWorthiness)

		path := res.Positions()
		require.Len(t, path, 2*(n-1)+1)
		for j := 0; j < n; j++ {
			assert.Equal(t, pos(0, j), path[j], "n=%d", n)
		}
		for i := 1; i < n; i++ {
			assert.Equal(t, pos(i, n-1), path[n-1+i], "n=%d", n)
		}
	}
}

// TestComputeMaxCollectiblePath_MatchesBruteForce checks optimality and path
// shape against exhaustive enumeration on small random grids.
func TestComputeMaxCollectiblePath_MatchesBruteForce(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	for trial := 0; trial < 400; trial++ {
		n := 1 + rng.Intn(6)
		density := []float64{0.1, 0.3, 0.5, 0.9}[trial%4]
		g := randomGrid(t, rng, n, density)

		want, err := pathfinding.BruteForceMax(g)
		require.NoError(t, err)

		res, err := pathfinding.ComputeMaxCollectiblePath(g)
		require.NoError(t, err)
		require.Equal(t, want, res.MaxWorthiness, "trial %d n=%d", trial, n)

		path := res.Positions()
		require.NoError(t, pathfinding.ValidatePath(g, path), "trial %d", trial)
		require.Equal(t, res.MaxWorthiness, countOnPath(g, path), "trial %d", trial)
		require.Len(t, res.Collected(g), res.MaxWorthiness)
	}
}

func TestComputeMaxCollectiblePath_Deterministic(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for trial := 0; trial < 50; trial++ {
		a := randomGrid(t, rng, 8, 0.35)
		b, err := pathfinding.NewGrid(8)
		require.NoError(t, err)
		for i := range a.Cells {
			for j := range a.Cells[i] {
				b.Cells[i][j].HasCollectible = a.Cells[i][j].HasCollectible
			}
		}

		ra, err := pathfinding.ComputeMaxCollectiblePath(a)
		require.NoError(t, err)
		rb, err := pathfinding.ComputeMaxCollectiblePath(b)
		require.NoError(t, err)
		assert.Equal(t, ra.Positions(), rb.Positions())

		again, err := pathfinding.ComputeMaxCollectiblePath(a)
		require.NoError(t, err)
		assert.Equal(t, ra.Positions(), again.Positions())
	}
}

func TestComputeMaxCollectiblePath_Malformed(t *testing.T) {
	cases := []struct {
		name string
		grid *pathfinding.Grid
		err  error
	}{
		{"Nil", nil, pathfinding.ErrEmptyGrid},
		{"NoRows", &pathfinding.Grid{}, pathfinding.ErrEmptyGrid},
		{"Ragged", &pathfinding.Grid{Cells: [][]pathfinding.Cell{
			{{Row: 0, Col: 0}, {Row: 0, Col: 1}},
			{{Row: 1, Col: 0}},
		}}, pathfinding.ErrNonSquare},
		{"WrongCoordinates", &pathfinding.Grid{Cells: [][]pathfinding.Cell{
			{{Row: 0, Col: 0}, {Row: 0, Col: 1}},
			{{Row: 1, Col: 1}, {Row: 1, Col: 0}},
		}}, pathfinding.ErrCellCoordinates},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := pathfinding.ComputeMaxCollectiblePath(tc.grid)
			require.ErrorIs(t, err, tc.err)
			assert.ErrorIs(t, err, pathfinding.ErrMalformedGrid)
		})
	}
}

func TestReconstructPath_InconsistentLabels(t *testing.T) {
	g := gridWith(t, 4, pos(1, 1), pos(2, 3))
	best, err := pathfinding.LabelWorthiness(g)
	require.NoError(t, err)
	require.Equal(t, 2, best)

	_, err = pathfinding.ReconstructPath(g, best+1)
	assert.ErrorIs(t, err, pathfinding.ErrInconsistentLabels)

	_, err = pathfinding.ReconstructPath(g, -1)
	assert.ErrorIs(t, err, pathfinding.ErrInconsistentLabels)
}

func TestPathResult_Moves(t *testing.T) {
	g := gridWith(t, 3, pos(0, 1), pos(1, 2))
	res, err := pathfinding.ComputeMaxCollectiblePath(g)
	require.NoError(t, err)
	assert.Equal(t, []string{"right", "right", "down", "down"}, res.Moves())
}

func TestValidatePath(t *testing.T) {
	g := gridWith(t, 2)
	assert.NoError(t, pathfinding.ValidatePath(g, []pathfinding.Position{pos(0, 0), pos(1, 0), pos(1, 1)}))
	assert.Error(t, pathfinding.ValidatePath(g, []pathfinding.Position{pos(0, 0), pos(1, 1)}))
	assert.Error(t, pathfinding.ValidatePath(g, []pathfinding.Position{pos(0, 0), pos(1, 1), pos(1, 1)}))
	assert.Error(t, pathfinding.ValidatePath(g, []pathfinding.Position{pos(0, 1), pos(1, 1), pos(1, 1)}))
}

func TestBruteForceMax_SizeLimit(t *testing.T) {
	g := gridWith(t, pathfinding.MaxBruteForceSize+1)
	_, err := pathfinding.BruteForceMax(g)
	assert.Error(t, err)
}
