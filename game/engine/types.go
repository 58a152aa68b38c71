package engine

import (
	"slices"
	"time"
)

// CellType represents different types of grid cells
type CellType string

const (
	Empty    CellType = "empty"
	Mushroom CellType = "mushroom"
	Start    CellType = "start"
	Goal     CellType = "goal"

	// Directions accepted by Move
	Right = "right"
	Down  = "down"

	// Validation constants
	MinGridSize         = 2
	MaxGridSize         = 20
	MaxMoveTimeout      = 600
	MaxBulkMoves        = 50
	WebSocketBufferSize = 256
)

// Cell represents a single grid cell
type Cell struct {
	Type      CellType `json:"type"`
	Collected bool     `json:"collected,omitempty"`
}

// Position represents x,y coordinates. X is the column, Y the row.
type Position struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Messages holds the player-facing texts of a level.
type Messages struct {
	Welcome   string `json:"welcome" yaml:"welcome" validate:"required"`
	Collected string `json:"collected" yaml:"collected"`
	Victory   string `json:"victory" yaml:"victory" validate:"required"`
	TimeUp    string `json:"time_up" yaml:"time_up"`
	CantMove  string `json:"cant_move" yaml:"cant_move"`
}

// GameConfig describes a level. An empty Layout means mushrooms are placed
// randomly for every round.
type GameConfig struct {
	Name               string   `json:"name" yaml:"name" validate:"required"`
	Description        string   `json:"description" yaml:"description" validate:"required"`
	GridSize           int      `json:"grid_size" yaml:"grid_size" validate:"min=2,max=20"`
	Layout             []string `json:"layout,omitempty" yaml:"layout,omitempty"`
	MushroomCount      int      `json:"mushroom_count,omitempty" yaml:"mushroom_count,omitempty" validate:"gte=0,lte=400"`
	Seed               int64    `json:"seed,omitempty" yaml:"seed,omitempty"`
	MoveTimeoutSeconds int      `json:"move_timeout_seconds" yaml:"move_timeout_seconds" validate:"gte=0,lte=600"`
	Messages           Messages `json:"messages" yaml:"messages"`
}

// MoveTimeout returns the per-move time limit, zero when disabled.
func (c *GameConfig) MoveTimeout() time.Duration {
	return time.Duration(c.MoveTimeoutSeconds) * time.Second
}

// IsRandom reports whether rounds get a fresh random placement.
func (c *GameConfig) IsRandom() bool {
	return len(c.Layout) == 0
}

// GameState represents the complete state of one round
type GameState struct {
	RoundID      string             `json:"round_id"`
	Grid         [][]Cell           `json:"grid"`
	PlayerPos    Position           `json:"player_pos"`
	Score        int                `json:"score"`
	MaxMushrooms int                `json:"max_mushrooms"`
	OptimalPath  []Position         `json:"optimal_path,omitempty"`
	Message      string             `json:"message"`
	GameOver     bool               `json:"game_over"`
	Victory      bool               `json:"victory"`
	TimedOut     bool               `json:"timed_out"`
	ConfigName   string             `json:"config_name"`
	MoveDeadline *time.Time         `json:"move_deadline,omitempty"`
	MoveHistory  []MoveHistoryEntry `json:"move_history"`
	TotalMoves   int                `json:"total_moves"`

	// CurrentMoves tracks only the moves since the last reset. It mirrors MoveHistory entries
	// but gets cleared on reset while MoveHistory remains cumulative.
	CurrentMoves      []MoveHistoryEntry `json:"current_moves"`
	CurrentMovesCount int                `json:"current_moves_count"`
}

// MoveHistoryEntry represents a single move in the game history
type MoveHistoryEntry struct {
	Action       string   `json:"action"`
	FromPosition Position `json:"from_position"`
	ToPosition   Position `json:"to_position"`
	Score        int      `json:"score"`
	Timestamp    int64    `json:"timestamp"`
	Success      bool     `json:"success"`
	MoveNumber   int      `json:"move_number"`
	RoundID      string   `json:"round_id"`
}

// Snapshot returns a deep copy of the state that shares no memory with
// the engine, so it stays stable while later moves change the round.
func (gs *GameState) Snapshot() *GameState {
	if gs == nil {
		return nil
	}
	out := *gs
	out.Grid = make([][]Cell, len(gs.Grid))
	for y, row := range gs.Grid {
		out.Grid[y] = slices.Clone(row)
	}
	out.OptimalPath = slices.Clone(gs.OptimalPath)
	if gs.MoveDeadline != nil {
		deadline := *gs.MoveDeadline
		out.MoveDeadline = &deadline
	}
	out.MoveHistory = slices.Clone(gs.MoveHistory)
	out.CurrentMoves = slices.Clone(gs.CurrentMoves)
	return &out
}
