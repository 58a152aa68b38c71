package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/wricardo/mcp-training/smartmario/game/engine"
	"github.com/wricardo/mcp-training/smartmario/game/pathfinding"
	"github.com/wricardo/mcp-training/smartmario/game/placement"
)

// MaxSolveSize bounds the side length accepted by Solve.
const MaxSolveSize = 50

// gameServiceImpl implements the GameService interface
type gameServiceImpl struct {
	sessions SessionManager
	configs  ConfigManager
	mu       sync.RWMutex
}

// getConfigID returns the config_id for a given config name, used for consistent API responses
func (s *gameServiceImpl) getConfigID(configName string) string {
	availableConfigs, err := s.configs.ListConfigs()
	if err == nil {
		for _, cfg := range availableConfigs {
			if cfg.Name == configName {
				return cfg.ConfigID
			}
		}
	}
	if configName == "" {
		return "default"
	}
	return configName
}

// NewGameService creates a new game service instance
func NewGameService(sessions SessionManager, configs ConfigManager) GameService {
	return &gameServiceImpl{
		sessions: sessions,
		configs:  configs,
	}
}

// publicState returns a snapshot of state for callers outside the lock.
// The optimal path stays hidden while the round is running.
func publicState(state *engine.GameState) *engine.GameState {
	view := state.Snapshot()
	if view != nil && !view.GameOver {
		view.OptimalPath = nil
	}
	return view
}

func (s *gameServiceImpl) sessionInfo(sess *Session) *SessionInfo {
	configID := sess.ConfigID
	if configID == "" {
		configID = s.getConfigID(sess.Config.Name)
	}
	return &SessionInfo{
		ID:             sess.ID,
		ConfigName:     configID,
		CreatedAt:      sess.CreatedAt,
		LastAccessedAt: sess.LastAccessedAt,
		GameState:      publicState(sess.Engine.GetState()),
		GameConfig:     sess.Config,
	}
}

// CreateSession creates a new game session
func (s *gameServiceImpl) CreateSession(ctx context.Context, configName string) (*SessionInfo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var config *engine.GameConfig
	var err error
	if configName != "" {
		config, err = s.configs.LoadConfig(configName)
		if err != nil {
			if errors.Is(err, ErrConfigNotFound) {
				availableConfigs, listErr := s.configs.ListConfigs()
				if listErr == nil && len(availableConfigs) > 0 {
					var configIDs []string
					for _, cfg := range availableConfigs {
						configIDs = append(configIDs, cfg.ConfigID)
					}
					return nil, fmt.Errorf("%w: '%s' (available: %s)", ErrConfigNotFound, configName, strings.Join(configIDs, ", "))
				}
				return nil, fmt.Errorf("%w: '%s'", ErrConfigNotFound, configName)
			}
			return nil, fmt.Errorf("failed to load config %s: %w", configName, err)
		}
	} else {
		config = s.configs.GetDefault()
	}

	configID := configName
	if configID == "" {
		configID = s.getConfigID(config.Name)
	}

	// Let session manager generate a proper 4-character ID
	session, err := s.sessions.Create("", configID, config)
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}
	sessionsCreated.WithLabelValues(configID).Inc()

	return s.sessionInfo(session), nil
}

// GetSession retrieves session information
func (s *gameServiceImpl) GetSession(ctx context.Context, sessionID string) (*SessionInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	session, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session %s: %w", sessionID, err)
	}

	s.sessions.UpdateLastAccessed(sessionID)

	return s.sessionInfo(session), nil
}

// ListSessions returns all active sessions
func (s *gameServiceImpl) ListSessions(ctx context.Context) ([]*SessionInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sessions := s.sessions.List()
	result := make([]*SessionInfo, 0, len(sessions))
	for _, sess := range sessions {
		result = append(result, s.sessionInfo(sess))
	}

	return result, nil
}

// DeleteSession removes a session
func (s *gameServiceImpl) DeleteSession(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.sessions.Delete(sessionID)
}

// Move executes a single move for a session
func (s *gameServiceImpl) Move(ctx context.Context, sessionID, direction string, reset bool) (*MoveResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session %s: %w", sessionID, err)
	}

	s.sessions.UpdateLastAccessed(sessionID)

	events := []GameEvent{}

	if reset {
		if _, err := sess.Engine.Reset(); err != nil {
			return nil, fmt.Errorf("failed to reset round: %w", err)
		}
		events = append(events, resetEvent())
	}

	direction = strings.ToLower(strings.TrimSpace(direction))
	prevPos := sess.Engine.GetPlayerPosition()
	prevScore := sess.Engine.GetScore()
	wasOver := sess.Engine.IsGameOver()

	success := sess.Engine.Move(direction)
	movesTotal.WithLabelValues(directionLabel(direction), moveResult(success)).Inc()

	state := sess.Engine.GetState()
	result := &MoveResult{
		Success: success,
		Message: state.Message,
		Events:  events,
	}

	if success {
		step := buildStep(1, direction, prevPos, prevScore, state)
		result.Step = &step
		result.Events = append(result.Events, moveEvents(direction, prevScore, state)...)
	} else if !state.TimedOut || wasOver {
		result.AttemptedTo = attemptFor(prevPos, direction, state)
	}

	if !wasOver && state.GameOver {
		observeRoundEnd(state.Victory, state.TimedOut, state.Score, state.MaxMushrooms)
		if state.TimedOut {
			result.Events = append(result.Events, timeoutEvent(state))
		}
	}

	result.GameState = publicState(state)

	if err := s.sessions.Save(sessionID); err != nil {
		log.Printf("Warning: Failed to persist session %s after move: %v", sessionID, err)
	}

	return result, nil
}

// BulkMove executes multiple moves in sequence
func (s *gameServiceImpl) BulkMove(ctx context.Context, sessionID string, moves []string, reset bool) (*BulkMoveResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session %s: %w", sessionID, err)
	}

	s.sessions.UpdateLastAccessed(sessionID)

	result := &BulkMoveResult{
		RequestedMoves: len(moves),
		Events:         make([]GameEvent, 0),
		Success:        true,
	}

	if reset {
		if _, err := sess.Engine.Reset(); err != nil {
			return nil, fmt.Errorf("failed to reset round: %w", err)
		}
		result.Events = append(result.Events, resetEvent())
	}

	startState := sess.Engine.GetState()
	result.StartPos = startState.PlayerPos
	startScore := startState.Score
	wasOver := startState.GameOver

	if len(moves) > engine.MaxBulkMoves {
		result.Truncated = true
		result.Limit = engine.MaxBulkMoves
		moves = moves[:engine.MaxBulkMoves]
	}

	for i, move := range moves {
		if sess.Engine.IsGameOver() {
			// The stop code is filled in from the end state below.
			result.StoppedReason = "round is over"
			result.StoppedOnMove = i + 1
			break
		}

		move = strings.ToLower(strings.TrimSpace(move))
		prevPos := sess.Engine.GetPlayerPosition()
		prevScore := sess.Engine.GetScore()
		success := sess.Engine.Move(move)
		movesTotal.WithLabelValues(directionLabel(move), moveResult(success)).Inc()
		state := sess.Engine.GetState()

		if !success {
			result.Success = false
			result.StoppedOnMove = i + 1
			if state.TimedOut {
				result.StoppedReason = fmt.Sprintf("move %d too late: round timed out", i+1)
				result.StopReasonCode = StopTimedOut
				break
			}
			result.AttemptedTo = attemptFor(prevPos, move, state)
			result.StoppedReason = fmt.Sprintf("move %d rejected: %s", i+1, move)
			result.StopReasonCode = result.AttemptedTo.Reason
			break
		}

		result.MovesExecuted++
		result.Steps = append(result.Steps, buildStep(i+1, move, prevPos, prevScore, state))
		result.Events = append(result.Events, moveEvents(move, prevScore, state)...)
	}

	endState := sess.Engine.GetState()
	if !wasOver && endState.GameOver {
		observeRoundEnd(endState.Victory, endState.TimedOut, endState.Score, endState.MaxMushrooms)
		if endState.TimedOut {
			result.Events = append(result.Events, timeoutEvent(endState))
		}
	}

	result.GameState = publicState(endState)
	result.EndPos = endState.PlayerPos
	result.ScoreDelta = endState.Score - startScore
	result.GameOver = endState.GameOver
	result.Message = endState.Message

	if result.GameOver {
		switch {
		case endState.Victory:
			result.GameOverCode = StopVictory
		case endState.TimedOut:
			result.GameOverCode = StopTimedOut
		default:
			result.GameOverCode = StopGameOver
		}
		if result.StopReasonCode == "" {
			result.StopReasonCode = result.GameOverCode
		}
	}

	result.PossibleMoves = sess.Engine.GetPossibleMoves()

	if err := s.sessions.Save(sessionID); err != nil {
		log.Printf("Warning: Failed to persist session %s after bulk moves: %v", sessionID, err)
	}

	return result, nil
}

// Reset starts a new round for a session
func (s *gameServiceImpl) Reset(ctx context.Context, sessionID string) (*engine.GameState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session %s: %w", sessionID, err)
	}

	s.sessions.UpdateLastAccessed(sessionID)
	state, err := sess.Engine.Reset()
	if err != nil {
		return nil, fmt.Errorf("failed to reset round: %w", err)
	}

	if err := s.sessions.Save(sessionID); err != nil {
		log.Printf("Warning: Failed to persist session %s after reset: %v", sessionID, err)
	}

	return publicState(state), nil
}

// GetGameState retrieves the current game state
func (s *gameServiceImpl) GetGameState(ctx context.Context, sessionID string) (*engine.GameState, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session %s: %w", sessionID, err)
	}

	s.sessions.UpdateLastAccessed(sessionID)
	return publicState(sess.Engine.GetState()), nil
}

// GetMoveHistory returns paginated move history
func (s *gameServiceImpl) GetMoveHistory(ctx context.Context, sessionID string, opts HistoryOptions) (*HistoryResponse, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session %s: %w", sessionID, err)
	}

	history := sess.Engine.GetMoveHistory()
	total := len(history)

	if opts.Page < 1 {
		opts.Page = 1
	}
	if opts.Limit <= 0 {
		opts.Limit = 20
	}
	if opts.Limit > 100 {
		opts.Limit = 100
	}
	if opts.Order == "" {
		opts.Order = "desc"
	}

	totalPages := (total + opts.Limit - 1) / opts.Limit
	if totalPages == 0 {
		totalPages = 1
	}

	start := (opts.Page - 1) * opts.Limit
	end := start + opts.Limit
	if end > total {
		end = total
	}

	var moves []engine.MoveHistoryEntry
	if opts.Order == "desc" {
		// Most recent first
		for i := total - 1 - start; i >= 0 && i >= total-end; i-- {
			moves = append(moves, history[i])
		}
	} else if start < total {
		moves = slices.Clone(history[start:end])
	}

	if moves == nil {
		moves = []engine.MoveHistoryEntry{}
	}

	return &HistoryResponse{
		Moves:       moves,
		TotalMoves:  total,
		Page:        opts.Page,
		PageSize:    opts.Limit,
		TotalPages:  totalPages,
		HasNext:     opts.Page < totalPages,
		HasPrevious: opts.Page > 1,
	}, nil
}

// GetSolution reveals the best route once the round is over
func (s *gameServiceImpl) GetSolution(ctx context.Context, sessionID string) (*SolutionResponse, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session %s: %w", sessionID, err)
	}

	state := sess.Engine.GetState()
	if !state.GameOver {
		return nil, ErrRoundInProgress
	}

	path := sess.Engine.Solution()
	return &SolutionResponse{
		RoundID:      state.RoundID,
		MaxMushrooms: state.MaxMushrooms,
		Score:        state.Score,
		Path:         path,
		Moves:        movesFor(path),
	}, nil
}

// ExpireRounds ends every active round whose move deadline passed before now
func (s *gameServiceImpl) ExpireRounds(ctx context.Context, now time.Time) []*RoundExpiry {
	s.mu.Lock()
	defer s.mu.Unlock()

	var expired []*RoundExpiry
	for _, sess := range s.sessions.List() {
		if !sess.Engine.CheckTimeout(now) {
			continue
		}
		state := sess.Engine.GetState()
		observeRoundEnd(false, true, state.Score, state.MaxMushrooms)
		log.Printf("[TIMEOUT] session=%s round=%s score=%d/%d", sess.ID, state.RoundID, state.Score, state.MaxMushrooms)

		if err := s.sessions.Save(sess.ID); err != nil {
			log.Printf("Warning: Failed to persist session %s after timeout: %v", sess.ID, err)
		}
		expired = append(expired, &RoundExpiry{SessionID: sess.ID, GameState: publicState(state)})
	}
	return expired
}

// Solve runs the solver on a layout of '.' and 'M' rows without touching
// any session
func (s *gameServiceImpl) Solve(ctx context.Context, layout []string) (*SolveResult, error) {
	if len(layout) > MaxSolveSize {
		return nil, fmt.Errorf("%w: size %d exceeds %d", ErrInvalidGrid, len(layout), MaxSolveSize)
	}
	policy, err := placement.ParseLayout(layout)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidGrid, err)
	}

	start := time.Now()
	grid, err := placement.Populate(policy.Size(), policy)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidGrid, err)
	}
	solution, err := pathfinding.ComputeMaxCollectiblePath(grid)
	solveDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		return nil, fmt.Errorf("solver failed: %w", err)
	}

	return &SolveResult{
		Size:         grid.Size(),
		MaxMushrooms: solution.MaxWorthiness,
		Path:         toEnginePositions(solution.Positions()),
		Moves:        solution.Moves(),
		Collected:    toEnginePositions(solution.Collected(grid)),
	}, nil
}

// ListConfigs returns available game configurations
func (s *gameServiceImpl) ListConfigs(ctx context.Context) ([]*ConfigInfo, error) {
	return s.configs.ListConfigs()
}

// LoadConfig loads a specific game configuration
func (s *gameServiceImpl) LoadConfig(ctx context.Context, configName string) (*engine.GameConfig, error) {
	return s.configs.LoadConfig(configName)
}

// SaveConfig saves a game configuration to disk
func (s *gameServiceImpl) SaveConfig(ctx context.Context, configName string, config *engine.GameConfig) error {
	return s.configs.SaveConfig(configName, config)
}

func resetEvent() GameEvent {
	return GameEvent{
		Type:      EventReset,
		Message:   "New round started",
		Timestamp: time.Now(),
	}
}

func timeoutEvent(state *engine.GameState) GameEvent {
	return GameEvent{
		Type:      EventTimeout,
		Message:   state.Message,
		Timestamp: time.Now(),
		Position:  state.PlayerPos,
	}
}

// moveEvents generates events for an accepted move
func moveEvents(direction string, prevScore int, state *engine.GameState) []GameEvent {
	pos := state.PlayerPos
	events := []GameEvent{{
		Type:      EventMove,
		Message:   fmt.Sprintf("Moved %s to (%d,%d)", direction, pos.X, pos.Y),
		Timestamp: time.Now(),
		Position:  pos,
	}}

	if state.Score > prevScore {
		events = append(events, GameEvent{
			Type:      EventMushroom,
			Message:   fmt.Sprintf("Mushroom collected at (%d,%d)! Score: %d", pos.X, pos.Y, state.Score),
			Timestamp: time.Now(),
			Position:  pos,
		})
	}

	if state.Victory {
		events = append(events, GameEvent{
			Type:      EventVictory,
			Message:   fmt.Sprintf("Goal reached with %d of %d mushrooms", state.Score, state.MaxMushrooms),
			Timestamp: time.Now(),
			Position:  pos,
		})
	}

	return events
}

func buildStep(idx int, direction string, from engine.Position, prevScore int, state *engine.GameState) StepInfo {
	to := state.PlayerPos
	return StepInfo{
		Idx:         idx,
		Dir:         direction,
		From:        from,
		To:          to,
		TileType:    string(state.Grid[to.Y][to.X].Type),
		ScoreBefore: prevScore,
		ScoreAfter:  state.Score,
		Success:     true,
		Mushroom:    state.Score > prevScore,
		Victory:     state.Victory,
	}
}

// attemptFor describes why a move from pos was rejected
func attemptFor(pos engine.Position, direction string, state *engine.GameState) *AttemptInfo {
	x, y := pos.X, pos.Y
	switch direction {
	case engine.Right:
		x++
	case engine.Down:
		y++
	default:
		return &AttemptInfo{X: x, Y: y, Reason: StopInvalidDirection}
	}
	if state.GameOver {
		return &AttemptInfo{X: x, Y: y, Reason: StopGameOver}
	}
	return &AttemptInfo{X: x, Y: y, Reason: StopBlockedBoundary}
}

func toEnginePositions(path []pathfinding.Position) []engine.Position {
	out := make([]engine.Position, len(path))
	for i, p := range path {
		out[i] = engine.Position{X: p.Col, Y: p.Row}
	}
	return out
}

func movesFor(path []engine.Position) []string {
	core := make([]pathfinding.Position, len(path))
	for i, p := range path {
		core[i] = pathfinding.Position{Row: p.Y, Col: p.X}
	}
	return pathfinding.MovesFor(core)
}
