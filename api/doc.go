// Package api provides the HTTP REST API for the maze game.
//
// Endpoints:
//
// Session Management:
//   - POST /api/sessions - Create new session
//   - GET /api/sessions - List sessions (?sort=created|accessed&order=asc|desc&limit=N)
//   - GET /api/sessions/{id} - Get specific session
//   - DELETE /api/sessions/{id} - Delete session and disconnect its websocket clients
//
// Game Operations:
//   - GET /api/sessions/{id}/state - Current position, status text and board
//   - POST /api/sessions/{id}/move - Apply one input event
//   - GET /api/sessions/{id}/history - Move attempts (?page=&limit=&order=)
//
// Other:
//   - GET /api/map - The compiled-in map with wall-edge decorations
//   - GET /healthz - Liveness probe
//   - GET /ws?session={id} - Websocket render stream (see package websocket)
//   - GET / - Embedded browser client, when configured with WithStatic
//
// A move body carries exactly one kind of input:
//
//	{"direction": "up"}       // a direction control
//	{"key": "ArrowUp"}        // a key-down event; unknown keys move by (0,0)
//	{"dx": 1, "dy": 0}        // a raw vector, components in -1..1
//
// Walls and the maze boundary are game outcomes, not errors: the move
// returns 200 with outcome "blocked" or "out_of_bounds".
//
// Error Handling:
//
// Errors are returned as JSON:
//
//	{"error": "session ab12: session not found"}
//
// with 404 for unknown sessions, 400 for malformed moves and 500 otherwise.
//
// Usage:
//
//	srv := api.NewServer(gameService, hub, api.WithLogger(log), api.WithStatic(web.FS()))
//	http.ListenAndServe(":8080", srv)
package api
