// Package session provides in-memory session storage for the maze game.
//
// Every session owns an independent service.Game, so input sent to one
// session never moves the token of another.
//
// Session Identifiers:
//
// Sessions use 4-character hex IDs for easy reference. Generated IDs are
// drawn from crypto/rand and retried until free. Lookups ignore case.
//
// Concurrency:
//
// The manager is safe for concurrent use. It guards its map only; each
// Game serializes its own moves.
//
// Usage:
//
//	manager := session.NewManager(session.WithEvictHook(hub.CloseSession))
//
//	sess, err := manager.Create("", service.NewGame(maze.Default()))
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	sess, err = manager.Get(sess.ID)
//
// Cleanup:
//
// CleanupExpiredSessions drops sessions idle for longer than a given age
// and runs the registered evict hooks for each of them.
package session
