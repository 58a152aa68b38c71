package engine

import "strings"

// CountMushrooms counts mushroom cells; collected selects picked or
// remaining ones.
func CountMushrooms(grid [][]Cell, collected bool) int {
	count := 0
	for _, row := range grid {
		for _, cell := range row {
			if cell.Type == Mushroom && cell.Collected == collected {
				count++
			}
		}
	}
	return count
}

// CountCellType counts the total number of cells of a specific type in the grid
func CountCellType(grid [][]Cell, cellType CellType) int {
	count := 0
	for _, row := range grid {
		for _, cell := range row {
			if cell.Type == cellType {
				count++
			}
		}
	}
	return count
}

// StepsToGoal returns the number of moves left to reach the bottom-right
// corner. Every route needs exactly this many.
func StepsToGoal(state *GameState) int {
	n := len(state.Grid)
	return (n - 1 - state.PlayerPos.X) + (n - 1 - state.PlayerPos.Y)
}

// ReachableMushrooms counts uncollected mushrooms still ahead of the
// player, i.e. weakly to the right and below.
func ReachableMushrooms(state *GameState) int {
	count := 0
	for y := state.PlayerPos.Y; y < len(state.Grid); y++ {
		for x := state.PlayerPos.X; x < len(state.Grid[y]); x++ {
			cell := state.Grid[y][x]
			if cell.Type == Mushroom && !cell.Collected {
				count++
			}
		}
	}
	return count
}

// OnOptimalPath reports whether p is part of the round's best route.
func OnOptimalPath(state *GameState, p Position) bool {
	for _, q := range state.OptimalPath {
		if q == p {
			return true
		}
	}
	return false
}

func messageOr(msg, fallback string) string {
	if msg == "" {
		return fallback
	}
	return msg
}

func containsVerb(s string) bool {
	return strings.Contains(s, "%s")
}
