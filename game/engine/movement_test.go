package engine

import (
	"strings"
	"testing"
	"time"
)

func createTestGameState() (*GameState, *GameConfig) {
	config := createValidConfig()
	config.GridSize = 4
	config.Layout = []string{
		".M..",
		"..M.",
		"M...",
		"....",
	}
	policy, err := PolicyFor(config, nil)
	if err != nil {
		panic(err)
	}
	state, err := NewRound(config, policy)
	if err != nil {
		panic(err)
	}
	return state, config
}

func TestInBounds(t *testing.T) {
	state, _ := createTestGameState()

	tests := []struct {
		x, y int
		want bool
	}{
		{0, 0, true},
		{3, 3, true},
		{4, 0, false},
		{0, 4, false},
		{-1, 0, false},
		{0, -1, false},
	}
	for _, tt := range tests {
		if got := state.InBounds(tt.x, tt.y); got != tt.want {
			t.Errorf("InBounds(%d,%d) = %v, want %v", tt.x, tt.y, got, tt.want)
		}
	}
}

func TestMovePlayer_DirectionMapping(t *testing.T) {
	tests := []struct {
		direction string
		want      Position
	}{
		{Right, Position{X: 1, Y: 0}},
		{Down, Position{X: 0, Y: 1}},
	}

	for _, tt := range tests {
		t.Run(tt.direction, func(t *testing.T) {
			state, config := createTestGameState()
			if !state.MovePlayer(tt.direction, config) {
				t.Fatalf("Expected %s to succeed", tt.direction)
			}
			if state.PlayerPos != tt.want {
				t.Errorf("Expected %+v, got %+v", tt.want, state.PlayerPos)
			}
		})
	}
}

func TestMovePlayer_InvalidDirection(t *testing.T) {
	for _, dir := range []string{"up", "left", "RIGHT", "invalid"} {
		t.Run(dir, func(t *testing.T) {
			state, config := createTestGameState()
			if state.MovePlayer(dir, config) {
				t.Error("Expected move to fail")
			}
			if state.PlayerPos != (Position{}) {
				t.Errorf("Expected player to stay at start, got %+v", state.PlayerPos)
			}
			if !strings.Contains(state.Message, "only right and down") {
				t.Errorf("Unexpected message %q", state.Message)
			}
			if state.GameOver {
				t.Error("Invalid direction must not end the round")
			}
		})
	}
}

func TestMovePlayer_Edge(t *testing.T) {
	state, config := createTestGameState()
	state.PlayerPos = Position{X: 0, Y: 3}

	if state.MovePlayer(Down, config) {
		t.Error("Expected move off the bottom edge to fail")
	}
	if !strings.HasPrefix(state.Message, "Can't move down!") {
		t.Errorf("Unexpected message %q", state.Message)
	}
}

func TestMovePlayer_DefaultCantMoveMessage(t *testing.T) {
	state, config := createTestGameState()
	config.Messages.CantMove = ""
	state.PlayerPos = Position{X: 3, Y: 0}

	state.MovePlayer(Right, config)
	if !strings.HasPrefix(state.Message, "Can't move right from here.") {
		t.Errorf("Unexpected message %q", state.Message)
	}
}

func TestMovePlayer_CollectMushroom(t *testing.T) {
	state, config := createTestGameState()

	state.MovePlayer(Right, config)
	if state.Score != 1 {
		t.Errorf("Expected score 1, got %d", state.Score)
	}
	if !state.Grid[0][1].Collected {
		t.Error("Expected mushroom to be marked collected")
	}
	if state.Message != "Mushroom! Score: 1" {
		t.Errorf("Unexpected message %q", state.Message)
	}

	state.MovePlayer(Down, config)
	state.MovePlayer(Right, config)
	if state.Score != 2 {
		t.Errorf("Expected score 2, got %d", state.Score)
	}
	if CountMushrooms(state.Grid, true) != 2 || CountMushrooms(state.Grid, false) != 1 {
		t.Error("Unexpected collected/remaining counts")
	}
}

func TestMovePlayer_CollectedMushroomScoresOnce(t *testing.T) {
	state, config := createTestGameState()
	state.Grid[0][1].Collected = true

	state.MovePlayer(Right, config)
	if state.Score != 0 {
		t.Errorf("Expected collected mushroom not to score, got %d", state.Score)
	}
}

func TestMovePlayer_Victory(t *testing.T) {
	state, config := createTestGameState()
	state.PlayerPos = Position{X: 3, Y: 2}
	state.Score = 1
	deadline := time.Now().Add(time.Minute)
	state.MoveDeadline = &deadline

	if !state.MovePlayer(Down, config) {
		t.Fatal("Expected move into goal to succeed")
	}
	if !state.Victory || !state.GameOver {
		t.Error("Expected victory")
	}
	if state.MoveDeadline != nil {
		t.Error("Expected deadline to be cleared")
	}
	if state.Message != "Victory! 1 of 2 mushrooms!" {
		t.Errorf("Unexpected message %q", state.Message)
	}
}

func TestMovePlayer_GameOverState(t *testing.T) {
	state, config := createTestGameState()
	state.GameOver = true

	if state.MovePlayer(Right, config) {
		t.Error("Expected move to fail when the round is over")
	}
}

func TestAddMoveToHistory(t *testing.T) {
	state, _ := createTestGameState()
	at := time.Date(2026, 5, 1, 8, 0, 0, 0, time.UTC)

	fromPos := Position{X: 1, Y: 1}
	toPos := Position{X: 2, Y: 1}
	state.Score = 3
	state.AddMoveToHistory(Right, fromPos, toPos, true, at)

	if len(state.MoveHistory) != 1 || state.TotalMoves != 1 {
		t.Fatalf("Expected 1 move in history, got %d/%d", len(state.MoveHistory), state.TotalMoves)
	}
	move := state.MoveHistory[0]
	if move.Action != Right || move.FromPosition != fromPos || move.ToPosition != toPos {
		t.Errorf("Unexpected entry %+v", move)
	}
	if move.Score != 3 || !move.Success || move.MoveNumber != 1 {
		t.Errorf("Unexpected entry %+v", move)
	}
	if move.Timestamp != at.Unix() {
		t.Errorf("Expected timestamp %d, got %d", at.Unix(), move.Timestamp)
	}
	if move.RoundID != state.RoundID {
		t.Errorf("Expected round id %s, got %s", state.RoundID, move.RoundID)
	}

	state.AddMoveToHistory("up", toPos, toPos, false, at)
	if state.TotalMoves != 2 || state.CurrentMovesCount != 2 {
		t.Errorf("Expected counters at 2, got %d/%d", state.TotalMoves, state.CurrentMovesCount)
	}
	if state.MoveHistory[1].MoveNumber != 2 || state.MoveHistory[1].Success {
		t.Errorf("Unexpected second entry %+v", state.MoveHistory[1])
	}
}

func TestUtils(t *testing.T) {
	state, _ := createTestGameState()

	if got := StepsToGoal(state); got != 6 {
		t.Errorf("StepsToGoal = %d, want 6", got)
	}
	if got := ReachableMushrooms(state); got != 3 {
		t.Errorf("ReachableMushrooms = %d, want 3", got)
	}

	state.PlayerPos = Position{X: 1, Y: 1}
	if got := StepsToGoal(state); got != 4 {
		t.Errorf("StepsToGoal = %d, want 4", got)
	}
	if got := ReachableMushrooms(state); got != 1 {
		t.Errorf("ReachableMushrooms = %d, want 1", got)
	}

	if !OnOptimalPath(state, Position{X: 0, Y: 0}) {
		t.Error("Expected start on the optimal path")
	}
	if got := CountCellType(state.Grid, Mushroom); got != 3 {
		t.Errorf("CountCellType = %d, want 3", got)
	}
}
