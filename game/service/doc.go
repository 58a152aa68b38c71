// Package service provides the business logic layer for the Smart Mario game
// server.
//
// The service package implements:
//   - Multi-session game management
//   - Move processing with per-step traces and events
//   - Round expiry driven by the per-move timer
//   - Solution reveal once a round is over
//   - A stateless solver for arbitrary layouts
//   - Prometheus metrics for sessions, moves and rounds
//
// Core Interfaces:
//
// GameService is the main service interface providing high-level game operations.
// SessionManager handles session creation, retrieval, and lifecycle.
// ConfigManager manages level loading and validation.
//
// Architecture:
//
// The service layer sits between the transport layer (HTTP/WebSocket/MCP) and
// the game engine. Each session owns its own engine; the service serializes
// access to them. While a round is running, returned states carry no
// optimal_path; GetSolution answers ErrRoundInProgress until the round ends.
//
// Usage:
//
//	sessionMgr := session.NewManager()
//	configMgr, _ := config.NewManager("configs")
//	gameService := service.NewGameService(sessionMgr, configMgr)
//
//	info, err := gameService.CreateSession(ctx, "classic")
//	if err != nil {
//		log.Fatal(err)
//	}
//	result, err := gameService.Move(ctx, info.ID, "right", false)
package service
