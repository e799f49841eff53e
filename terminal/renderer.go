package terminal

import (
	"sync"

	"github.com/gdamore/tcell/v2"

	"github.com/wricardo/grid-maze-game/game/maze"
	"github.com/wricardo/grid-maze-game/game/render"
)

// Layout of the screen, in character cells
const (
	cellWidth = 3
	originX   = 2
	originY   = 2
	titleRow  = 0
)

const title = "Grid Maze"

const help = "arrows / WASD move, Esc quits"

// overline is the combining mark drawn over cells with a wall above them
const overline = '\u0305'

var (
	styleDefault = tcell.StyleDefault
	styleWall    = tcell.StyleDefault.Foreground(tcell.ColorGray).Dim(true)
	stylePath    = tcell.StyleDefault.Foreground(tcell.ColorDarkGray)
	styleEdge    = tcell.StyleDefault.Foreground(tcell.ColorWhite)
	styleGoal    = tcell.StyleDefault.Foreground(tcell.ColorGreen).Bold(true)
	styleToken   = tcell.StyleDefault.Foreground(tcell.ColorYellow).Bold(true)
	styleVictory = tcell.StyleDefault.Foreground(tcell.ColorGreen).Bold(true).Blink(true)
	styleStatus  = tcell.StyleDefault.Bold(true)
	styleHelp    = tcell.StyleDefault.Foreground(tcell.ColorGray)
)

// Renderer draws a game on a tcell screen. It implements service.Presenter.
type Renderer struct {
	screen tcell.Screen

	mu    sync.Mutex
	board *render.Board
	text  string
}

// NewRenderer creates a renderer for an initialized screen
func NewRenderer(screen tcell.Screen) *Renderer {
	return &Renderer{
		screen: screen,
		board:  render.NewBoard(),
	}
}

// RenderGrid implements render.Renderer
func (r *Renderer) RenderGrid(g *maze.Grid) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.board.RenderGrid(g)
	r.draw()
}

// PlaceToken implements render.Renderer
func (r *Renderer) PlaceToken(x, y int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.board.PlaceToken(x, y)
	r.draw()
}

// MarkVictory implements render.Renderer
func (r *Renderer) MarkVictory() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.board.MarkVictory()
	r.draw()
}

// SetText implements status.Sink
func (r *Renderer) SetText(text string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.text = text
	r.draw()
}

// Redraw repaints everything, e.g. after a resize
func (r *Renderer) Redraw() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.screen.Sync()
	r.draw()
}

// CellOrigin returns the screen column and row of the centre of cell (x, y)
func CellOrigin(x, y int) (col, row int) {
	return originX + x*cellWidth + 1, originY + y
}

func (r *Renderer) draw() {
	r.screen.Clear()
	drawText(r.screen, originX, titleRow, styleStatus, title)

	for _, cell := range r.board.Cells {
		r.drawCell(cell)
	}

	statusRow := originY + r.board.Rows + 1
	drawText(r.screen, originX, statusRow, styleStatus, r.text)
	drawText(r.screen, originX, statusRow+1, styleHelp, help)
	r.screen.Show()
}

func (r *Renderer) drawCell(cell render.CellView) {
	col, row := CellOrigin(cell.X, cell.Y)

	if cell.Kind == maze.Wall {
		for i := -1; i <= 1; i++ {
			r.screen.SetContent(col+i, row, '█', nil, styleWall)
		}
		return
	}

	left, right := ' ', ' '
	if cell.HasEdge(maze.EdgeLeft) {
		left = '▏'
	}
	if cell.HasEdge(maze.EdgeRight) {
		right = '▕'
	}
	center, style := '·', stylePath
	if cell.Goal {
		center, style = 'G', styleGoal
	}
	if t := r.board.Token; t != nil && t.X == cell.X && t.Y == cell.Y {
		center, style = '@', styleToken
		if t.Victory {
			center, style = '*', styleVictory
		}
	}
	if cell.HasEdge(maze.EdgeBottom) {
		style = style.Underline(true)
	}
	var combining []rune
	if cell.HasEdge(maze.EdgeTop) {
		combining = []rune{overline}
	}

	r.screen.SetContent(col-1, row, left, nil, styleEdge)
	r.screen.SetContent(col, row, center, combining, style)
	r.screen.SetContent(col+1, row, right, nil, styleEdge)
}

func drawText(s tcell.Screen, x, y int, style tcell.Style, text string) {
	for _, c := range text {
		s.SetContent(x, y, c, nil, style)
		x++
	}
}
