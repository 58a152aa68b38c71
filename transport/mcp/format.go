package mcp

import (
	"fmt"
	"strings"
	"time"

	"github.com/wricardo/mcp-training/smartmario/game/engine"
	"github.com/wricardo/mcp-training/smartmario/game/service"
)

// Grid legend characters
const (
	glyphPlayer   = '@'
	glyphMushroom = 'M'
	glyphEmpty    = '.'
	glyphGoal     = 'G'
	glyphRoute    = '*'
)

// renderGrid draws the grid row by row. The best route is drawn only when
// the state carries one, which the server does after the round.
func renderGrid(state *engine.GameState) string {
	var b strings.Builder
	n := len(state.Grid)

	b.WriteString("   ")
	for x := 0; x < n; x++ {
		fmt.Fprintf(&b, "%d", x%10)
	}
	b.WriteString("\n")

	for y, row := range state.Grid {
		fmt.Fprintf(&b, "%2d ", y)
		for x, cell := range row {
			pos := engine.Position{X: x, Y: y}
			var glyph rune
			switch {
			case pos == state.PlayerPos:
				glyph = glyphPlayer
			case cell.Type == engine.Mushroom && !cell.Collected:
				glyph = glyphMushroom
			case engine.OnOptimalPath(state, pos):
				glyph = glyphRoute
			case cell.Type == engine.Goal:
				glyph = glyphGoal
			default:
				glyph = glyphEmpty
			}
			b.WriteRune(glyph)
		}
		b.WriteString("\n")
	}
	return b.String()
}

func roundStatus(state *engine.GameState) string {
	switch {
	case state.Victory:
		return "victory"
	case state.TimedOut:
		return "timed out"
	case state.GameOver:
		return "over"
	}
	return "playing"
}

func formatGameState(state *engine.GameState) string {
	if state == nil {
		return "No game state available"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Level: %s (round %s)\n", state.ConfigName, state.RoundID)
	fmt.Fprintf(&b, "Position: (%d,%d)\n", state.PlayerPos.X, state.PlayerPos.Y)
	fmt.Fprintf(&b, "Score: %d / best possible %d\n", state.Score, state.MaxMushrooms)
	fmt.Fprintf(&b, "Moves to goal: %d\n", engine.StepsToGoal(state))
	fmt.Fprintf(&b, "Mushrooms still reachable: %d\n", engine.ReachableMushrooms(state))
	if state.MoveDeadline != nil && !state.GameOver {
		fmt.Fprintf(&b, "Next move due by: %s\n", state.MoveDeadline.Format(time.RFC3339))
	}
	fmt.Fprintf(&b, "Status: %s\n", roundStatus(state))
	if state.Message != "" {
		fmt.Fprintf(&b, "Message: %s\n", state.Message)
	}
	b.WriteString("\n")
	b.WriteString(renderGrid(state))
	b.WriteString("\nLegend: @ Mario, M mushroom, . empty, G goal, * best route\n")
	return b.String()
}

func formatSessionInfo(info *service.SessionInfo) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Session: %s\n", info.ID)
	fmt.Fprintf(&b, "Level: %s\n", info.ConfigName)
	fmt.Fprintf(&b, "Created: %s\n", info.CreatedAt.Format(time.RFC3339))
	fmt.Fprintf(&b, "Last accessed: %s\n", info.LastAccessedAt.Format(time.RFC3339))
	if info.GameState != nil {
		b.WriteString("\n")
		b.WriteString(formatGameState(info.GameState))
	}
	return b.String()
}

func formatMoveResult(result *service.MoveResult) string {
	var b strings.Builder
	if result.Success {
		b.WriteString("Move accepted.\n")
	} else {
		b.WriteString("Move rejected.\n")
	}
	if result.Message != "" {
		fmt.Fprintf(&b, "%s\n", result.Message)
	}
	if at := result.AttemptedTo; at != nil {
		fmt.Fprintf(&b, "Attempted (%d,%d): %s\n", at.X, at.Y, at.Reason)
	}
	for _, event := range result.Events {
		fmt.Fprintf(&b, "• %s: %s\n", event.Type, event.Message)
	}
	b.WriteString("\n")
	b.WriteString(formatGameState(result.GameState))
	return b.String()
}

func formatBulkMoveResult(sessionID string, result *service.BulkMoveResult) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Session %s: executed %d of %d moves\n", sessionID, result.MovesExecuted, result.RequestedMoves)
	if result.Truncated {
		fmt.Fprintf(&b, "Request truncated to %d moves\n", result.Limit)
	}
	fmt.Fprintf(&b, "From (%d,%d) to (%d,%d), score %+d\n",
		result.StartPos.X, result.StartPos.Y, result.EndPos.X, result.EndPos.Y, result.ScoreDelta)
	if result.StoppedReason != "" {
		fmt.Fprintf(&b, "Stopped on move %d: %s\n", result.StoppedOnMove, result.StoppedReason)
	}
	if len(result.Steps) > 0 {
		b.WriteString("\nSteps:\n")
		for _, step := range result.Steps {
			note := ""
			if step.Mushroom {
				note = " mushroom!"
			}
			if step.Victory {
				note += " goal!"
			}
			if !step.Success {
				note = " rejected"
			}
			fmt.Fprintf(&b, "%2d. %-5s (%d,%d) -> (%d,%d)%s\n",
				step.Idx, step.Dir, step.From.X, step.From.Y, step.To.X, step.To.Y, note)
		}
	}
	if len(result.PossibleMoves) > 0 {
		fmt.Fprintf(&b, "Possible moves: %s\n", strings.Join(result.PossibleMoves, ", "))
	}
	b.WriteString("\n")
	b.WriteString(formatGameState(result.GameState))
	return b.String()
}

func formatHistory(history *service.HistoryResponse) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Move History (page %d of %d, %d moves total):\n\n",
		history.Page, history.TotalPages, history.TotalMoves)
	for _, move := range history.Moves {
		status := "ok"
		if !move.Success {
			status = "rejected"
		}
		fmt.Fprintf(&b, "#%d %-5s (%d,%d) -> (%d,%d) score=%d %s\n",
			move.MoveNumber, move.Action,
			move.FromPosition.X, move.FromPosition.Y,
			move.ToPosition.X, move.ToPosition.Y,
			move.Score, status)
	}
	if history.HasNext {
		fmt.Fprintf(&b, "\nMore moves on page %d\n", history.Page+1)
	}
	return b.String()
}

// formatCurrentSegment summarizes the moves of the running round only.
func formatCurrentSegment(state *engine.GameState) string {
	if len(state.CurrentMoves) == 0 {
		return "Current round: no moves yet\n"
	}
	dirs := make([]string, 0, len(state.CurrentMoves))
	for _, move := range state.CurrentMoves {
		if move.Success {
			dirs = append(dirs, move.Action)
		}
	}
	return fmt.Sprintf("Current round (%d attempts): %s\n", state.CurrentMovesCount, strings.Join(dirs, " "))
}

func formatSolution(solution *service.SolutionResponse, state *engine.GameState) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Round %s: you collected %d of %d possible mushrooms\n",
		solution.RoundID, solution.Score, solution.MaxMushrooms)
	fmt.Fprintf(&b, "Best route: %s\n\n", strings.Join(solution.Moves, " "))
	if state != nil {
		b.WriteString(renderGrid(state))
	}
	return b.String()
}

func formatSolveResult(layout []string, result *service.SolveResult) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Grid %dx%d: at most %d mushrooms\n", result.Size, result.Size, result.MaxMushrooms)
	fmt.Fprintf(&b, "Route: %s\n\n", strings.Join(result.Moves, " "))

	rows := make([][]byte, len(layout))
	for y, row := range layout {
		rows[y] = []byte(row)
	}
	for _, p := range result.Path {
		if p.Y < len(rows) && p.X < len(rows[p.Y]) && rows[p.Y][p.X] != glyphMushroom {
			rows[p.Y][p.X] = glyphRoute
		}
	}
	for _, row := range rows {
		b.Write(row)
		b.WriteString("\n")
	}
	return b.String()
}
