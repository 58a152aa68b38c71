package engine

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/wricardo/mcp-training/smartmario/game/pathfinding"
	"github.com/wricardo/mcp-training/smartmario/game/placement"
)

var configValidate = validator.New()

// Default texts used when a level leaves a message empty.
const (
	DefaultCollectedMessage = "Mushroom collected! Score: %d"
	DefaultTimeUpMessage    = "Time's up! You collected %d of the %d possible mushrooms."
	DefaultCantMoveMessage  = "Can't move %s from here."
)

// ValidateGameConfig validates a game configuration for correctness and playability
func ValidateGameConfig(config *GameConfig) error {
	if config == nil {
		return fmt.Errorf("config validation: config is nil")
	}
	if err := configValidate.Struct(config); err != nil {
		return fmt.Errorf("config validation: %w", err)
	}

	if !config.IsRandom() {
		if len(config.Layout) != config.GridSize {
			return fmt.Errorf("config validation: layout must have %d rows to match grid_size, got %d",
				config.GridSize, len(config.Layout))
		}
		if _, err := placement.ParseLayout(config.Layout); err != nil {
			return fmt.Errorf("config validation: %w", err)
		}
		if config.MushroomCount != 0 {
			return fmt.Errorf("config validation: mushroom_count only applies to random levels")
		}
	}

	if n := strings.Count(config.Messages.Victory, "%d"); n != 2 {
		return fmt.Errorf("config validation: messages.victory must contain two %%d (score, maximum), got %d", n)
	}
	if m := config.Messages.Collected; m != "" && strings.Count(m, "%d") != 1 {
		return fmt.Errorf("config validation: messages.collected must contain one %%d for score")
	}
	if m := config.Messages.TimeUp; m != "" && strings.Count(m, "%d") != 2 {
		return fmt.Errorf("config validation: messages.time_up must contain two %%d (score, maximum)")
	}
	if m := config.Messages.CantMove; m != "" && strings.Count(m, "%s") > 1 {
		return fmt.Errorf("config validation: messages.cant_move may contain at most one %%s for the direction")
	}

	return nil
}

// DecodeGameConfig parses a level file. ext selects YAML (".yaml", ".yml")
// or JSON (anything else).
func DecodeGameConfig(data []byte, ext string) (*GameConfig, error) {
	var config GameConfig
	switch strings.ToLower(ext) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &config); err != nil {
			return nil, fmt.Errorf("failed to parse yaml config: %w", err)
		}
	default:
		if err := json.Unmarshal(data, &config); err != nil {
			return nil, fmt.Errorf("failed to parse json config: %w", err)
		}
	}
	return &config, nil
}

// LoadGameConfig loads and validates a level file
func LoadGameConfig(filename string) (*GameConfig, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}

	config, err := DecodeGameConfig(data, filepath.Ext(filename))
	if err != nil {
		return nil, err
	}

	if err := ValidateGameConfig(config); err != nil {
		return nil, err
	}

	return config, nil
}

// DefaultConfig returns the original game's level: 10×10, random mushrooms,
// five seconds per move.
func DefaultConfig() *GameConfig {
	return &GameConfig{
		Name:               "classic",
		Description:        "10x10 meadow with randomly scattered mushrooms and five seconds per move",
		GridSize:           10,
		MoveTimeoutSeconds: 5,
		Messages: Messages{
			Welcome:   "Collect as many mushrooms as you can on your way to the bottom-right corner!",
			Collected: DefaultCollectedMessage,
			Victory:   "You made it! You got %d mushrooms out of the %d possible.",
			TimeUp:    DefaultTimeUpMessage,
			CantMove:  DefaultCantMoveMessage,
		},
	}
}

// PolicyFor returns the placement policy of config. random serves random
// levels and may be nil for fixed layouts.
func PolicyFor(config *GameConfig, random *placement.Random) (placement.Policy, error) {
	if config.IsRandom() {
		if random == nil {
			return nil, fmt.Errorf("random level %q needs a random source", config.Name)
		}
		return random, nil
	}
	layout, err := placement.ParseLayout(config.Layout)
	if err != nil {
		return nil, err
	}
	return layout, nil
}

// NewRound builds the state of a fresh round: places the mushrooms, solves
// the level and records the best achievable count and route.
func NewRound(config *GameConfig, policy placement.Policy) (*GameState, error) {
	grid, err := placement.Populate(config.GridSize, policy)
	if err != nil {
		return nil, fmt.Errorf("failed to place mushrooms: %w", err)
	}

	solution, err := pathfinding.ComputeMaxCollectiblePath(grid)
	if err != nil {
		return nil, fmt.Errorf("failed to solve level: %w", err)
	}

	n := config.GridSize
	cells := make([][]Cell, n)
	for y := range cells {
		cells[y] = make([]Cell, n)
		for x := range cells[y] {
			switch {
			case x == 0 && y == 0:
				cells[y][x] = Cell{Type: Start}
			case x == n-1 && y == n-1:
				cells[y][x] = Cell{Type: Goal}
			case grid.Scores(grid.Cell(y, x)):
				cells[y][x] = Cell{Type: Mushroom}
			default:
				cells[y][x] = Cell{Type: Empty}
			}
		}
	}

	return &GameState{
		RoundID:           uuid.NewString(),
		Grid:              cells,
		PlayerPos:         Position{X: 0, Y: 0},
		MaxMushrooms:      solution.MaxWorthiness,
		OptimalPath:       fromPathfinding(solution.Positions()),
		Message:           config.Messages.Welcome,
		ConfigName:        config.Name,
		MoveHistory:       []MoveHistoryEntry{},
		CurrentMoves:      []MoveHistoryEntry{},
		CurrentMovesCount: 0,
	}, nil
}

// ToPathfindingGrid rebuilds a core grid from the mushrooms of a state,
// collected ones included.
func ToPathfindingGrid(state *GameState) (*pathfinding.Grid, error) {
	if len(state.Grid) == 0 {
		return nil, pathfinding.ErrEmptyGrid
	}
	flags := make([][]bool, len(state.Grid))
	for y, row := range state.Grid {
		flags[y] = make([]bool, len(row))
		for x, cell := range row {
			flags[y][x] = cell.Type == Mushroom
		}
	}
	return pathfinding.NewGridFromFlags(flags)
}

func fromPathfinding(path []pathfinding.Position) []Position {
	out := make([]Position, len(path))
	for i, p := range path {
		out[i] = Position{X: p.Col, Y: p.Row}
	}
	return out
}
