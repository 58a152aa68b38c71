// Package mcp exposes Smart Mario to AI agents over the Model Context
// Protocol.
//
// The Client registers one MCP tool per game operation and forwards each
// call to the REST API, so agents and browsers share the same sessions:
//   - create_session, list_sessions, get_session
//   - game_state: grid rendering, score and best achievable score
//   - move, bulk_move: right or down only
//   - reset_round, move_history
//   - reveal_solution: best route once the round is over
//   - solve_grid: stateless solver for any square layout
//   - list_configs, game_instructions
//
// The server is served either over stdio or through the /mcp HTTP endpoint
// of the main binary:
//
//	client := mcp.NewClient("http://localhost:8080")
//	server.ServeStdio(client.GetMCPServer())
package mcp
