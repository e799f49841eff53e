package render

import "github.com/wricardo/grid-maze-game/game/maze"

// CellSize is the edge length of one cell in pixels
const CellSize = 40

// Renderer draws the maze and the player token
type Renderer interface {
	// RenderGrid builds one cell view per grid coordinate
	RenderGrid(g *maze.Grid)
	// PlaceToken creates the token on first call and relocates it afterwards
	PlaceToken(x, y int)
	// MarkVictory applies the won treatment to the token. Idempotent.
	MarkVictory()
}

// Multi fans every call out to each renderer in order
type Multi []Renderer

func (m Multi) RenderGrid(g *maze.Grid) {
	for _, r := range m {
		r.RenderGrid(g)
	}
}

func (m Multi) PlaceToken(x, y int) {
	for _, r := range m {
		r.PlaceToken(x, y)
	}
}

func (m Multi) MarkVictory() {
	for _, r := range m {
		r.MarkVictory()
	}
}
