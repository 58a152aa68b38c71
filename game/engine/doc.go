// Package engine provides the game logic for one Smart Mario round.
//
// The engine package implements:
//   - Grid-based movement restricted to right and down steps
//   - Mushroom collection and scoring
//   - A per-move timer that ends the round when it expires
//   - The best achievable mushroom count and route, computed by the
//     pathfinding package when the round starts
//   - Configuration loading (JSON or YAML) and validation
//
// Core Types:
//
// The Engine interface defines the main contract for game operations,
// implemented by GameEngine. GameState represents one round, while
// GameConfig describes a level: its size, a fixed layout or random
// placement, the move time limit and the player-facing messages.
//
// Usage:
//
//	config, err := engine.LoadGameConfig("configs/classic.json")
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	gameEngine, err := engine.NewEngine(config)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	fmt.Println("best possible:", gameEngine.GetState().MaxMushrooms)
//	success := gameEngine.Move("right")
//
// Game Rules:
//
// Mario starts in the top-left corner and must reach the bottom-right one,
// moving only right or down. Every mushroom stepped on adds one point. The
// round ends on reaching the goal or when a move is not made in time.
package engine
