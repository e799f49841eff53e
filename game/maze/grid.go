package maze

import (
	"errors"
	"fmt"
	"strings"
)

const (
	// Cols and Rows are the dimensions of the compiled-in layout
	Cols = 10
	Rows = 10
)

// ErrInvalidLayout is returned when a layout cannot be turned into a Grid
var ErrInvalidLayout = errors.New("invalid layout")

// defaultLayout is the maze map (0 = path, 1 = wall). Start (0,0), goal (9,9).
var defaultLayout = []string{
	"0111111111",
	"0000000001",
	"1111111101",
	"1000000101",
	"1011110101",
	"1010010101",
	"1010110101",
	"1000100001",
	"1110101111",
	"1000000000",
}

// Grid is an immutable table of cell kinds
type Grid struct {
	cells [][]CellKind
	cols  int
	rows  int
}

// Default returns the compiled-in 10x10 maze
func Default() *Grid {
	g, err := Parse(defaultLayout)
	if err != nil {
		// The compiled-in layout is covered by tests; failing here is a build defect.
		panic(fmt.Sprintf("maze: default layout: %v", err))
	}
	return g
}

// Parse builds a grid from rows of '0' (path) and '1' (wall) characters
func Parse(layout []string) (*Grid, error) {
	if len(layout) == 0 {
		return nil, fmt.Errorf("%w: no rows", ErrInvalidLayout)
	}

	cols := len(layout[0])
	cells := make([][]CellKind, len(layout))
	for y, row := range layout {
		if len(row) != cols {
			return nil, fmt.Errorf("%w: row %d has %d columns, expected %d", ErrInvalidLayout, y, len(row), cols)
		}
		cells[y] = make([]CellKind, cols)
		for x, ch := range row {
			switch ch {
			case '0':
				cells[y][x] = Path
			case '1':
				cells[y][x] = Wall
			default:
				return nil, fmt.Errorf("%w: invalid character %q at (%d,%d)", ErrInvalidLayout, ch, x, y)
			}
		}
	}

	g := &Grid{cells: cells, cols: cols, rows: len(layout)}
	if err := g.Validate(); err != nil {
		return nil, err
	}
	return g, nil
}

// Validate checks that the grid is playable: non-empty, start and goal on path cells
func (g *Grid) Validate() error {
	if g.cols == 0 || g.rows == 0 {
		return fmt.Errorf("%w: empty grid", ErrInvalidLayout)
	}
	start, goal := g.Start(), g.Goal()
	if g.cells[start.Y][start.X] != Path {
		return fmt.Errorf("%w: start (%d,%d) is a wall", ErrInvalidLayout, start.X, start.Y)
	}
	if g.cells[goal.Y][goal.X] != Path {
		return fmt.Errorf("%w: goal (%d,%d) is a wall", ErrInvalidLayout, goal.X, goal.Y)
	}
	return nil
}

// Cols returns the number of columns
func (g *Grid) Cols() int { return g.cols }

// Rows returns the number of rows
func (g *Grid) Rows() int { return g.rows }

// Start returns the initial player cell
func (g *Grid) Start() Position { return Position{X: 0, Y: 0} }

// Goal returns the target cell, always the bottom-right corner
func (g *Grid) Goal() Position { return Position{X: g.cols - 1, Y: g.rows - 1} }

// InBounds reports whether (x, y) lies inside the grid
func (g *Grid) InBounds(x, y int) bool {
	return x >= 0 && x < g.cols && y >= 0 && y < g.rows
}

// CellKind returns the kind of the cell at (x, y). It panics when the
// coordinates are out of bounds.
func (g *Grid) CellKind(x, y int) CellKind {
	if !g.InBounds(x, y) {
		panic(fmt.Sprintf("maze: CellKind(%d, %d) out of bounds %dx%d", x, y, g.cols, g.rows))
	}
	return g.cells[y][x]
}

// IsGoal reports whether p is the goal cell
func (g *Grid) IsGoal(p Position) bool {
	return p == g.Goal()
}

// WallEdges returns the sides of the path cell at (x, y) whose in-bounds
// neighbour is a wall. Wall cells and the grid border produce no edges.
func (g *Grid) WallEdges(x, y int) Edges {
	if g.CellKind(x, y) != Path {
		return 0
	}

	var edges Edges
	if y > 0 && g.cells[y-1][x] == Wall {
		edges |= EdgeTop
	}
	if x < g.cols-1 && g.cells[y][x+1] == Wall {
		edges |= EdgeRight
	}
	if y < g.rows-1 && g.cells[y+1][x] == Wall {
		edges |= EdgeBottom
	}
	if x > 0 && g.cells[y][x-1] == Wall {
		edges |= EdgeLeft
	}
	return edges
}

// Count returns the number of cells of the given kind
func (g *Grid) Count(kind CellKind) int {
	count := 0
	for _, row := range g.cells {
		for _, cell := range row {
			if cell == kind {
				count++
			}
		}
	}
	return count
}

// Layout returns the grid as rows of '0'/'1' characters
func (g *Grid) Layout() []string {
	rows := make([]string, g.rows)
	for y, row := range g.cells {
		var b strings.Builder
		for _, cell := range row {
			if cell == Wall {
				b.WriteByte('1')
			} else {
				b.WriteByte('0')
			}
		}
		rows[y] = b.String()
	}
	return rows
}

// String renders the grid as ASCII: '#' wall, '.' path, 'G' goal
func (g *Grid) String() string {
	var b strings.Builder
	goal := g.Goal()
	for y, row := range g.cells {
		for x, cell := range row {
			switch {
			case x == goal.X && y == goal.Y:
				b.WriteByte('G')
			case cell == Wall:
				b.WriteByte('#')
			default:
				b.WriteByte('.')
			}
		}
		b.WriteByte('\n')
	}
	return b.String()
}
