// Package maze provides the static map model for the maze game.
//
// A Grid is an immutable rectangle of Path and Wall cells indexed by
// (column, row). The start cell is the top-left corner and the goal is the
// bottom-right corner. The layout used by the game is compiled in and returned
// by Default.
//
// Usage:
//
//	grid := maze.Default()
//	if grid.InBounds(x, y) && grid.CellKind(x, y) == maze.Wall {
//		// blocked
//	}
//
// CellKind panics for out-of-bounds coordinates; callers check InBounds first.
package maze
