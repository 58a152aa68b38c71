package engine

import (
	"fmt"
	"time"
)

// step returns the coordinates one move away from p. Only right and down
// exist; any other direction reports ok=false.
func step(p Position, direction string) (x, y int, ok bool) {
	switch direction {
	case Right:
		return p.X + 1, p.Y, true
	case Down:
		return p.X, p.Y + 1, true
	default:
		return p.X, p.Y, false
	}
}

// InBounds reports whether (x, y) lies on the grid
func (gs *GameState) InBounds(x, y int) bool {
	if y < 0 || y >= len(gs.Grid) {
		return false
	}
	return x >= 0 && x < len(gs.Grid[y])
}

// MovePlayer attempts to move the player in the specified direction.
// Rejected moves leave the round running.
func (gs *GameState) MovePlayer(direction string, config *GameConfig) bool {
	if gs.GameOver {
		return false
	}

	newX, newY, ok := step(gs.PlayerPos, direction)
	if !ok {
		gs.Message = fmt.Sprintf("Invalid direction %q: only %s and %s are allowed", direction, Right, Down)
		return false
	}

	if !gs.InBounds(newX, newY) {
		gs.Message = cantMoveMessage(config.Messages.CantMove, direction) +
			fmt.Sprintf(" [Edge of grid at (%d,%d)]", gs.PlayerPos.X, gs.PlayerPos.Y)
		return false
	}

	gs.PlayerPos.X = newX
	gs.PlayerPos.Y = newY

	current := &gs.Grid[newY][newX]
	switch current.Type {
	case Mushroom:
		if !current.Collected {
			current.Collected = true
			gs.Score++
			gs.Message = fmt.Sprintf(messageOr(config.Messages.Collected, DefaultCollectedMessage), gs.Score)
		} else {
			gs.Message = fmt.Sprintf("Moved %s to (%d,%d)", direction, newX, newY)
		}

	case Goal:
		gs.Victory = true
		gs.GameOver = true
		gs.MoveDeadline = nil
		gs.Message = fmt.Sprintf(config.Messages.Victory, gs.Score, gs.MaxMushrooms)

	default:
		gs.Message = fmt.Sprintf("Moved %s to (%d,%d)", direction, newX, newY)
	}

	return true
}

func cantMoveMessage(template, direction string) string {
	template = messageOr(template, DefaultCantMoveMessage)
	if containsVerb(template) {
		return fmt.Sprintf(template, direction)
	}
	return template
}

// AddMoveToHistory adds a move to the game's move history
func (gs *GameState) AddMoveToHistory(action string, fromPos, toPos Position, success bool, at time.Time) {
	entry := MoveHistoryEntry{
		Action:       action,
		FromPosition: fromPos,
		ToPosition:   toPos,
		Score:        gs.Score,
		Timestamp:    at.Unix(),
		Success:      success,
		MoveNumber:   gs.TotalMoves + 1,
		RoundID:      gs.RoundID,
	}
	// Append to cumulative history (never cleared by reset) and increment total
	gs.MoveHistory = append(gs.MoveHistory, entry)
	gs.TotalMoves++

	// Append to current segment history and increment its counter
	gs.CurrentMoves = append(gs.CurrentMoves, entry)
	gs.CurrentMovesCount++
}
