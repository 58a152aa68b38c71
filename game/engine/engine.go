package engine

import (
	"fmt"
	"time"

	"github.com/wricardo/mcp-training/smartmario/game/placement"
)

// Engine provides the main interface for game operations
type Engine interface {
	// Game state management
	GetState() *GameState
	SetState(state *GameState) error
	Reset() (*GameState, error)
	IsGameOver() bool
	IsVictory() bool
	GetScore() int
	GetPlayerPosition() Position

	// Movement operations
	Move(direction string) bool
	CanMove(direction string) bool
	GetPossibleMoves() []string
	CheckTimeout(now time.Time) bool

	// Configuration
	GetConfig() *GameConfig
	SetConfig(config *GameConfig) error

	// History
	GetMoveHistory() []MoveHistoryEntry
	GetLastMove() *MoveHistoryEntry

	// Mushrooms and the solution
	GetRemainingMushrooms() int
	Solution() []Position
}

// GameEngine implements the Engine interface
type GameEngine struct {
	state  *GameState
	config *GameConfig
	random *placement.Random
	now    func() time.Time
}

// NewEngine creates a new game engine with the provided configuration and
// starts its first round.
func NewEngine(config *GameConfig) (*GameEngine, error) {
	if err := ValidateGameConfig(config); err != nil {
		return nil, err
	}

	engine := &GameEngine{
		config: config,
		random: newRandomFor(config),
		now:    time.Now,
	}
	if err := engine.startRound(); err != nil {
		return nil, err
	}

	return engine, nil
}

// NewEngineWithDefaults creates a new game engine with default configuration
func NewEngineWithDefaults() *GameEngine {
	engine, err := NewEngine(DefaultConfig())
	if err != nil {
		panic(fmt.Sprintf("default config is invalid: %v", err))
	}
	return engine
}

func newRandomFor(config *GameConfig) *placement.Random {
	if !config.IsRandom() {
		return nil
	}
	seed := config.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	count := config.MushroomCount
	if count == 0 {
		count = placement.DefaultCount(config.GridSize)
	}
	return placement.NewRandom(seed, count)
}

func (e *GameEngine) startRound() error {
	policy, err := PolicyFor(e.config, e.random)
	if err != nil {
		return err
	}
	state, err := NewRound(e.config, policy)
	if err != nil {
		return err
	}
	e.state = state
	e.armTimer()
	return nil
}

func (e *GameEngine) armTimer() {
	if e.config.MoveTimeoutSeconds <= 0 || e.state.GameOver {
		e.state.MoveDeadline = nil
		return
	}
	deadline := e.now().Add(e.config.MoveTimeout())
	e.state.MoveDeadline = &deadline
}

// SetClock replaces the time source used for move deadlines.
func (e *GameEngine) SetClock(now func() time.Time) {
	e.now = now
	e.armTimer()
}

// GetState returns the current game state
func (e *GameEngine) GetState() *GameState {
	return e.state
}

// SetState sets the game state (used for persistence loading)
func (e *GameEngine) SetState(state *GameState) error {
	if state == nil {
		return fmt.Errorf("state cannot be nil")
	}
	if len(state.Grid) != e.config.GridSize {
		return fmt.Errorf("state grid has %d rows, config %q expects %d",
			len(state.Grid), e.config.Name, e.config.GridSize)
	}
	e.state = state
	return nil
}

// Reset starts a new round. Random levels get a fresh placement; the
// cumulative move history carries over.
func (e *GameEngine) Reset() (*GameState, error) {
	prevHistory := e.state.MoveHistory
	prevTotal := e.state.TotalMoves

	if err := e.startRound(); err != nil {
		return nil, err
	}

	e.state.MoveHistory = prevHistory
	e.state.TotalMoves = prevTotal
	e.state.CurrentMoves = []MoveHistoryEntry{}
	e.state.CurrentMovesCount = 0

	return e.state, nil
}

// IsGameOver returns whether the round is over
func (e *GameEngine) IsGameOver() bool {
	return e.state.GameOver
}

// IsVictory returns whether the player reached the goal
func (e *GameEngine) IsVictory() bool {
	return e.state.Victory
}

// GetScore returns the number of mushrooms collected this round
func (e *GameEngine) GetScore() int {
	return e.state.Score
}

// GetPlayerPosition returns the current player position
func (e *GameEngine) GetPlayerPosition() Position {
	return e.state.PlayerPos
}

// Move attempts to move the player in the specified direction. Moves after
// the round ended are rejected and leave the history untouched.
func (e *GameEngine) Move(direction string) bool {
	if e.CheckTimeout(e.now()) || e.state.GameOver {
		return false
	}

	prevPos := e.state.PlayerPos
	success := e.state.MovePlayer(direction, e.config)

	e.state.AddMoveToHistory(direction, prevPos, e.state.PlayerPos, success, e.now())
	if success {
		e.armTimer()
	}

	return success
}

// CheckTimeout ends the round when its move deadline passed before now.
// It reports whether the round timed out on this call.
func (e *GameEngine) CheckTimeout(now time.Time) bool {
	gs := e.state
	if gs.GameOver || gs.MoveDeadline == nil || !now.After(*gs.MoveDeadline) {
		return false
	}
	gs.GameOver = true
	gs.TimedOut = true
	gs.MoveDeadline = nil
	gs.Message = fmt.Sprintf(messageOr(e.config.Messages.TimeUp, DefaultTimeUpMessage), gs.Score, gs.MaxMushrooms)
	return true
}

// CanMove checks if the player can move in the specified direction
func (e *GameEngine) CanMove(direction string) bool {
	if e.state.GameOver {
		return false
	}
	x, y, ok := step(e.state.PlayerPos, direction)
	return ok && e.state.InBounds(x, y)
}

// GetPossibleMoves returns all valid directions the player can move
func (e *GameEngine) GetPossibleMoves() []string {
	var possible []string
	for _, dir := range []string{Right, Down} {
		if e.CanMove(dir) {
			possible = append(possible, dir)
		}
	}
	return possible
}

// GetConfig returns the current game configuration
func (e *GameEngine) GetConfig() *GameConfig {
	return e.config
}

// SetConfig sets a new game configuration and starts a new round
func (e *GameEngine) SetConfig(config *GameConfig) error {
	if err := ValidateGameConfig(config); err != nil {
		return err
	}

	prev, prevRandom := e.config, e.random
	e.config = config
	e.random = newRandomFor(config)
	if err := e.startRound(); err != nil {
		e.config, e.random = prev, prevRandom
		return err
	}
	return nil
}

// GetMoveHistory returns the complete move history
func (e *GameEngine) GetMoveHistory() []MoveHistoryEntry {
	return e.state.MoveHistory
}

// GetLastMove returns the last move made, or nil if no moves
func (e *GameEngine) GetLastMove() *MoveHistoryEntry {
	if len(e.state.MoveHistory) == 0 {
		return nil
	}
	return &e.state.MoveHistory[len(e.state.MoveHistory)-1]
}

// GetRemainingMushrooms returns the number of mushrooms not yet collected
func (e *GameEngine) GetRemainingMushrooms() int {
	return CountMushrooms(e.state.Grid, false)
}

// Solution returns a route collecting MaxMushrooms for the current round.
func (e *GameEngine) Solution() []Position {
	out := make([]Position, len(e.state.OptimalPath))
	copy(out, e.state.OptimalPath)
	return out
}

// BulkMove executes moves in sequence and stops at the first rejected move
// or when the round ends.
func (e *GameEngine) BulkMove(moves []string) []bool {
	results := make([]bool, 0, len(moves))

	for _, direction := range moves {
		if e.IsGameOver() {
			break
		}

		success := e.Move(direction)
		results = append(results, success)
		if !success {
			break
		}
	}

	return results
}
