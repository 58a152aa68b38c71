package engine

import (
	"encoding/json"
	"strings"
	"testing"
	"time"
)

func TestCellTypeConstants(t *testing.T) {
	tests := []struct {
		cellType CellType
		expected string
	}{
		{Empty, "empty"},
		{Mushroom, "mushroom"},
		{Start, "start"},
		{Goal, "goal"},
	}

	for _, test := range tests {
		if string(test.cellType) != test.expected {
			t.Errorf("Expected %s, got %s", test.expected, string(test.cellType))
		}
	}
}

func TestValidationConstants(t *testing.T) {
	tests := []struct {
		name     string
		actual   int
		expected int
	}{
		{"MinGridSize", MinGridSize, 2},
		{"MaxGridSize", MaxGridSize, 20},
		{"MaxMoveTimeout", MaxMoveTimeout, 600},
		{"MaxBulkMoves", MaxBulkMoves, 50},
		{"WebSocketBufferSize", WebSocketBufferSize, 256},
	}

	for _, test := range tests {
		if test.actual != test.expected {
			t.Errorf("%s: expected %d, got %d", test.name, test.expected, test.actual)
		}
	}
}

func TestGameStateWireFormat(t *testing.T) {
	deadline := time.Date(2026, 3, 1, 10, 0, 5, 0, time.UTC)
	state := GameState{
		RoundID:      "round-1",
		Grid:         [][]Cell{{{Type: Start}, {Type: Mushroom, Collected: true}}, {{Type: Empty}, {Type: Goal}}},
		PlayerPos:    Position{X: 1, Y: 0},
		Score:        1,
		MaxMushrooms: 1,
		ConfigName:   "tiny",
		MoveDeadline: &deadline,
	}

	data, err := json.Marshal(state)
	if err != nil {
		t.Fatalf("Failed to marshal state: %v", err)
	}
	body := string(data)

	for _, key := range []string{
		`"round_id":"round-1"`,
		`"player_pos":{"x":1,"y":0}`,
		`"max_mushrooms":1`,
		`"timed_out":false`,
		`"move_deadline":"2026-03-01T10:00:05Z"`,
		`{"type":"mushroom","collected":true}`,
		`{"type":"empty"}`,
	} {
		if !strings.Contains(body, key) {
			t.Errorf("Expected %s in %s", key, body)
		}
	}
	if strings.Contains(body, "optimal_path") {
		t.Error("Expected empty optimal path to be omitted")
	}
}

func TestGameConfig_MoveTimeout(t *testing.T) {
	config := GameConfig{MoveTimeoutSeconds: 5}
	if config.MoveTimeout() != 5*time.Second {
		t.Errorf("Expected 5s, got %v", config.MoveTimeout())
	}
	config.MoveTimeoutSeconds = 0
	if config.MoveTimeout() != 0 {
		t.Errorf("Expected disabled timeout, got %v", config.MoveTimeout())
	}
}

func TestGameState_Snapshot(t *testing.T) {
	deadline := time.Date(2026, 3, 1, 10, 0, 5, 0, time.UTC)
	entry := MoveHistoryEntry{Action: Right, Success: true, MoveNumber: 1}
	state := &GameState{
		Grid:         [][]Cell{{{Type: Start}, {Type: Mushroom}}, {{Type: Empty}, {Type: Goal}}},
		OptimalPath:  []Position{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 1}},
		MoveDeadline: &deadline,
		MoveHistory:  []MoveHistoryEntry{entry},
		CurrentMoves: []MoveHistoryEntry{entry},
	}

	snap := state.Snapshot()

	state.Grid[0][1].Collected = true
	state.OptimalPath[1] = Position{X: 0, Y: 1}
	*state.MoveDeadline = deadline.Add(time.Minute)
	state.MoveHistory[0].Action = Down
	state.CurrentMoves[0].Action = Down

	if snap.Grid[0][1].Collected {
		t.Error("Expected snapshot grid to be independent")
	}
	if snap.OptimalPath[1] != (Position{X: 1, Y: 0}) {
		t.Error("Expected snapshot path to be independent")
	}
	if !snap.MoveDeadline.Equal(deadline) {
		t.Error("Expected snapshot deadline to be independent")
	}
	if snap.MoveHistory[0].Action != Right || snap.CurrentMoves[0].Action != Right {
		t.Error("Expected snapshot history to be independent")
	}

	if (*GameState)(nil).Snapshot() != nil {
		t.Error("Expected nil snapshot of nil state")
	}
	if empty := (&GameState{}).Snapshot(); empty.OptimalPath != nil || empty.MoveHistory != nil {
		t.Error("Expected nil slices to stay nil")
	}
}
