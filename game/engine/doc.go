// Package engine provides the player state machine for the maze game.
//
// A Player owns the current position and the running/won status. The only
// way to change either is AttemptMove, which applies the movement rules:
//   - a finished game ignores every move
//   - candidates outside the grid are rejected without a message
//   - candidates on a wall are rejected as blocked
//   - anything else is committed, and landing on the goal wins the game
//
// Usage:
//
//	player := engine.NewPlayer(maze.Default())
//	out := player.AttemptMove(0, 1)
//	if out.Won {
//		fmt.Println("goal reached at", out.Position)
//	}
//
// Won is terminal. A new game means a new Player.
package engine
