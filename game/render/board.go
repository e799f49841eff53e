package render

import (
	"fmt"
	"strings"

	"github.com/wricardo/grid-maze-game/game/maze"
)

// CellView is the visual element for one grid cell
type CellView struct {
	X     int           `json:"x"`
	Y     int           `json:"y"`
	Kind  maze.CellKind `json:"kind"`
	Edges []string      `json:"edges,omitempty"`
	// Dim marks the de-emphasized wall treatment
	Dim  bool `json:"dim,omitempty"`
	Goal bool `json:"goal,omitempty"`
}

var edgeByName = map[string]maze.Edges{
	"top":    maze.EdgeTop,
	"right":  maze.EdgeRight,
	"bottom": maze.EdgeBottom,
	"left":   maze.EdgeLeft,
}

// EdgeMask returns the wall-edge decorations as a bitmask
func (c CellView) EdgeMask() maze.Edges {
	var mask maze.Edges
	for _, name := range c.Edges {
		mask |= edgeByName[name]
	}
	return mask
}

// HasEdge reports whether the cell is decorated on the given side
func (c CellView) HasEdge(e maze.Edges) bool {
	return c.EdgeMask().Has(e)
}

// ID returns the element identifier of the cell, e.g. "cell-3-4"
func (c CellView) ID() string {
	return fmt.Sprintf("cell-%d-%d", c.X, c.Y)
}

// TokenView is the player token element
type TokenView struct {
	X       int  `json:"x"`
	Y       int  `json:"y"`
	Victory bool `json:"victory"`
}

// Board is an in-memory scene of cell views and the token
type Board struct {
	Cols     int        `json:"cols"`
	Rows     int        `json:"rows"`
	CellSize int        `json:"cell_size"`
	Width    int        `json:"width"`
	Height   int        `json:"height"`
	Cells    []CellView `json:"cells"`
	Token    *TokenView `json:"token,omitempty"`
}

// NewBoard returns an empty board; call RenderGrid to populate it
func NewBoard() *Board {
	return &Board{CellSize: CellSize}
}

// RenderGrid replaces all cell views with one per grid coordinate in
// row-major order. The token is cleared, as the old cells no longer exist.
func (b *Board) RenderGrid(g *maze.Grid) {
	b.Cols, b.Rows = g.Cols(), g.Rows()
	b.Width, b.Height = b.Cols*b.CellSize, b.Rows*b.CellSize
	b.Cells = make([]CellView, 0, b.Cols*b.Rows)
	b.Token = nil

	goal := g.Goal()
	for y := 0; y < b.Rows; y++ {
		for x := 0; x < b.Cols; x++ {
			cell := CellView{X: x, Y: y, Kind: g.CellKind(x, y)}
			if cell.Kind == maze.Path {
				cell.Edges = g.WallEdges(x, y).Names()
			} else {
				cell.Dim = true
			}
			if x == goal.X && y == goal.Y {
				cell.Goal = true
			}
			b.Cells = append(b.Cells, cell)
		}
	}
}

// PlaceToken moves the token into the cell at (x, y). It panics when the
// cell has not been rendered.
func (b *Board) PlaceToken(x, y int) {
	if _, ok := b.Cell(x, y); !ok {
		panic(fmt.Sprintf("render: no cell-%d-%d on the board", x, y))
	}
	if b.Token == nil {
		b.Token = &TokenView{}
	}
	b.Token.X, b.Token.Y = x, y
}

// MarkVictory flags the token as victorious
func (b *Board) MarkVictory() {
	if b.Token != nil {
		b.Token.Victory = true
	}
}

// Cell returns the view at (x, y)
func (b *Board) Cell(x, y int) (CellView, bool) {
	if x < 0 || x >= b.Cols || y < 0 || y >= b.Rows {
		return CellView{}, false
	}
	return b.Cells[y*b.Cols+x], true
}

// String draws the board as text: '#' wall, '.' path, 'G' goal, '@' token,
// '*' token after victory
func (b *Board) String() string {
	var sb strings.Builder
	for y := 0; y < b.Rows; y++ {
		for x := 0; x < b.Cols; x++ {
			sb.WriteRune(b.Glyph(x, y))
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

// Glyph returns the character used for the cell at (x, y) in text views
func (b *Board) Glyph(x, y int) rune {
	if b.Token != nil && b.Token.X == x && b.Token.Y == y {
		if b.Token.Victory {
			return '*'
		}
		return '@'
	}
	cell, ok := b.Cell(x, y)
	switch {
	case !ok:
		return ' '
	case cell.Goal:
		return 'G'
	case cell.Dim:
		return '#'
	default:
		return '.'
	}
}
