package service

import (
	"time"

	"github.com/wricardo/mcp-training/smartmario/game/engine"
)

// Event types reported in GameEvent.Type
const (
	EventMove     = "move"
	EventMushroom = "mushroom"
	EventVictory  = "victory"
	EventTimeout  = "timeout"
	EventReset    = "reset"
)

// Stop reason codes of a bulk move
const (
	StopBlockedBoundary  = "blocked_boundary"
	StopInvalidDirection = "invalid_direction"
	StopVictory          = "victory"
	StopTimedOut         = "timed_out"
	StopGameOver         = "game_over"
)

// SessionInfo provides information about a game session
type SessionInfo struct {
	ID             string             `json:"id"`
	ConfigName     string             `json:"config_name"`
	CreatedAt      time.Time          `json:"created_at"`
	LastAccessedAt time.Time          `json:"last_accessed_at"`
	GameState      *engine.GameState  `json:"game_state"`
	GameConfig     *engine.GameConfig `json:"game_config"`
}

// MoveResult contains the result of a move operation
type MoveResult struct {
	Success     bool              `json:"success"`
	GameState   *engine.GameState `json:"game_state"`
	Message     string            `json:"message"`
	Events      []GameEvent       `json:"events,omitempty"`
	Step        *StepInfo         `json:"step,omitempty"`
	AttemptedTo *AttemptInfo      `json:"attempted_to,omitempty"`
}

// BulkMoveResult contains the result of multiple moves
type BulkMoveResult struct {
	MovesExecuted  int               `json:"moves_executed"`
	RequestedMoves int               `json:"requested_moves"`
	Success        bool              `json:"success"`
	GameState      *engine.GameState `json:"game_state"`
	Events         []GameEvent       `json:"events"`
	StoppedReason  string            `json:"stopped_reason,omitempty"`
	StopReasonCode string            `json:"stop_reason_code,omitempty"` // blocked_boundary|invalid_direction|victory|timed_out|game_over
	StoppedOnMove  int               `json:"stopped_on_move,omitempty"`  // 1-based index of the move that caused stop
	Truncated      bool              `json:"truncated,omitempty"`
	Limit          int               `json:"limit,omitempty"`

	StartPos   engine.Position `json:"start_pos"`
	EndPos     engine.Position `json:"end_pos"`
	ScoreDelta int             `json:"score_delta"`

	// Per-step compact trace (only for this call)
	Steps []StepInfo `json:"steps,omitempty"`

	AttemptedTo *AttemptInfo `json:"attempted_to,omitempty"`

	GameOver      bool     `json:"game_over"`
	GameOverCode  string   `json:"game_over_code,omitempty"`
	Message       string   `json:"message,omitempty"`
	PossibleMoves []string `json:"possible_moves,omitempty"`
}

// StepInfo is a compact record for each executed move
type StepInfo struct {
	Idx         int             `json:"idx"`
	Dir         string          `json:"dir"`
	From        engine.Position `json:"from"`
	To          engine.Position `json:"to"`
	TileType    string          `json:"tile_type"`
	ScoreBefore int             `json:"score_before"`
	ScoreAfter  int             `json:"score_after"`
	Success     bool            `json:"success"`
	Mushroom    bool            `json:"mushroom,omitempty"`
	Victory     bool            `json:"victory,omitempty"`
}

// AttemptInfo details the target of a rejected move
type AttemptInfo struct {
	X      int    `json:"x"`
	Y      int    `json:"y"`
	Reason string `json:"reason"`
}

// GameEvent represents an event that occurred during gameplay
type GameEvent struct {
	Type      string          `json:"type"`
	Message   string          `json:"message"`
	Timestamp time.Time       `json:"timestamp"`
	Position  engine.Position `json:"position,omitempty"`
}

// HistoryOptions configures move history retrieval
type HistoryOptions struct {
	Page  int    `json:"page"`
	Limit int    `json:"limit"`
	Order string `json:"order"` // "asc" or "desc"
}

// HistoryResponse contains paginated move history
type HistoryResponse struct {
	Moves       []engine.MoveHistoryEntry `json:"moves"`
	TotalMoves  int                       `json:"total_moves"`
	Page        int                       `json:"page"`
	PageSize    int                       `json:"page_size"`
	TotalPages  int                       `json:"total_pages"`
	HasNext     bool                      `json:"has_next"`
	HasPrevious bool                      `json:"has_previous"`
}

// SolutionResponse reveals the best route of a finished round
type SolutionResponse struct {
	RoundID      string            `json:"round_id"`
	MaxMushrooms int               `json:"max_mushrooms"`
	Score        int               `json:"score"`
	Path         []engine.Position `json:"path"`
	Moves        []string          `json:"moves"`
}

// SolveResult is the answer of the stateless solver
type SolveResult struct {
	Size         int               `json:"size"`
	MaxMushrooms int               `json:"max_mushrooms"`
	Path         []engine.Position `json:"path"`
	Moves        []string          `json:"moves"`
	Collected    []engine.Position `json:"collected"`
}

// RoundExpiry reports a round ended by its move timer
type RoundExpiry struct {
	SessionID string            `json:"session_id"`
	GameState *engine.GameState `json:"game_state"`
}

// ConfigInfo provides information about a game configuration
type ConfigInfo struct {
	Filename           string `json:"filename"`
	ConfigID           string `json:"config_id"` // The identifier to use for session creation
	Name               string `json:"name"`      // Display name
	Description        string `json:"description"`
	GridSize           int    `json:"grid_size"`
	Random             bool   `json:"random"`
	MoveTimeoutSeconds int    `json:"move_timeout_seconds"`
}
