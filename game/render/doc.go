// Package render defines the presentation contract for the maze game.
//
// Renderer has three capabilities: draw the grid once, place or move the
// single player token, and mark the token as victorious. Board is an
// in-memory scene that implements Renderer and keeps one CellView per grid
// cell plus the token, the way a browser keeps DOM nodes. Frontends (terminal,
// websocket, desktop) either implement Renderer directly or draw from a Board.
package render
