// Package config provides level configuration management for the Smart
// Mario game server.
//
// Levels live in a directory as JSON (.json) or YAML (.yaml, .yml) files.
// A level's id is its file name without the extension. Each level defines:
//   - The grid size
//   - Either a fixed layout of '.' and 'M' rows or random placement, with an
//     optional mushroom count and seed
//   - The per-move time limit (0 disables it)
//   - Player-facing messages
//
// Usage:
//
//	manager, err := config.NewManager("configs")
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	gameConfig, err := manager.LoadConfig("classic")
//	configs, err := manager.ListConfigs()
//
// The default level is "classic" when present, then the first loadable file,
// then the built-in engine.DefaultConfig.
package config
