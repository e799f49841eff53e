// Package service provides the game glue and the session-scoped business
// logic layer for the maze game.
//
// Game wires one player state machine to its renderers and status sinks and
// applies the control flow for every input event:
//
//	input -> AttemptMove -> PlaceToken (on a committed move)
//	      -> status text -> MarkVictory (on the winning move)
//
// GameService hosts many independent single-player games, each in its own
// session, for the HTTP, websocket and MCP transports. Every call takes the
// service lock, so a given game only ever handles one input event at a time.
//
// Usage:
//
//	sessions := session.NewManager()
//	svc := service.NewGameService(sessions, service.WithLogger(log))
//
//	info, err := svc.CreateSession(ctx)
//	if err != nil {
//		return err
//	}
//	result, err := svc.Move(ctx, info.ID, service.MoveRequest{Direction: "down"})
package service
