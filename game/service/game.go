package service

import (
	"sync"

	"github.com/wricardo/grid-maze-game/game/engine"
	"github.com/wricardo/grid-maze-game/game/maze"
	"github.com/wricardo/grid-maze-game/game/render"
	"github.com/wricardo/grid-maze-game/game/status"
)

// Presenter is a presentation layer that draws the maze and shows status text
type Presenter interface {
	render.Renderer
	status.Sink
}

// Game is one running maze game with its presentation
type Game struct {
	mu sync.Mutex

	player    *engine.Player
	board     *render.Board
	text      *status.Text
	renderers render.Multi
	sinks     status.Sinks
	reporter  *status.Reporter
}

// NewGame starts a game on grid, renders it on the built-in board and on
// every presenter, and shows the welcome text
func NewGame(grid *maze.Grid, presenters ...Presenter) *Game {
	g := &Game{
		player: engine.NewPlayer(grid),
		board:  render.NewBoard(),
		text:   &status.Text{},
	}
	g.renderers = render.Multi{g.board}
	g.sinks = status.Sinks{g.text}
	for _, p := range presenters {
		g.renderers = append(g.renderers, p)
		g.sinks = append(g.sinks, p)
	}

	g.reporter = status.NewReporter(status.SinkFunc(g.setText))
	g.renderers.RenderGrid(grid)
	start := g.player.Position()
	g.renderers.PlaceToken(start.X, start.Y)
	return g
}

// AttemptMove applies one input event: move, relocate the token, update the
// status text, and mark victory when the goal is reached
func (g *Game) AttemptMove(dx, dy int) engine.Outcome {
	g.mu.Lock()
	defer g.mu.Unlock()

	out := g.player.AttemptMove(dx, dy)
	if out.Committed() {
		g.renderers.PlaceToken(out.Position.X, out.Position.Y)
	}
	g.reporter.Report(out)
	if out.Won {
		g.renderers.MarkVictory()
	}
	return out
}

// Attach adds a presenter and brings it up to date with the current game
func (g *Game) Attach(p Presenter) {
	g.mu.Lock()
	defer g.mu.Unlock()

	p.RenderGrid(g.player.Grid())
	pos := g.player.Position()
	p.PlaceToken(pos.X, pos.Y)
	if g.player.IsWon() {
		p.MarkVictory()
	}
	p.SetText(g.text.String())

	g.renderers = append(g.renderers, p)
	g.sinks = append(g.sinks, p)
}

// State returns a snapshot of the game, including a copy of the board
func (g *Game) State() *GameState {
	g.mu.Lock()
	defer g.mu.Unlock()

	grid := g.player.Grid()
	return &GameState{
		Position: g.player.Position(),
		Goal:     grid.Goal(),
		Status:   g.player.Status(),
		Won:      g.player.IsWon(),
		Message:  g.text.String(),
		Moves:    g.player.Moves(),
		Attempts: len(g.player.History()),
		Board:    copyBoard(g.board),
	}
}

// History returns the recorded move attempts
func (g *Game) History() []engine.MoveHistoryEntry {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.player.History()
}

// Grid returns the map this game is played on
func (g *Game) Grid() *maze.Grid {
	return g.player.Grid()
}

// Message returns the current status text
func (g *Game) Message() string {
	return g.text.String()
}

func (g *Game) setText(text string) {
	g.sinks.SetText(text)
}

func copyBoard(b *render.Board) *render.Board {
	out := *b
	out.Cells = make([]render.CellView, len(b.Cells))
	copy(out.Cells, b.Cells)
	if b.Token != nil {
		token := *b.Token
		out.Token = &token
	}
	return &out
}
