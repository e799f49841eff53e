// Package mcp exposes the maze game to AI agents over the Model Context
// Protocol.
//
// Client is a thin proxy: every tool call becomes a request to the REST API
// (package api), so agents and browsers see the same sessions.
//
// MCP Tools:
//   - create_session: Start a new game
//   - list_sessions: List active sessions
//   - get_session: Session details
//   - game_state: Board as text, position, status text and open directions
//   - move: One step up/down/left/right, with an intent note
//   - move_history: Recorded attempts with pagination
//   - describe_cell: Wall or path, goal, token and wall-touching sides of a cell
//   - game_instructions: Rules and tips
//
// Usage:
//
//	client := mcp.NewClient("http://localhost:8080")
//
//	// stdio transport
//	server.ServeStdio(client.GetMCPServer())
//
//	// or JSON-RPC over HTTP
//	response := client.GetMCPServer().HandleMessage(ctx, body)
package mcp
