package websocket

import (
	"sync"

	"github.com/wricardo/grid-maze-game/game/maze"
	"github.com/wricardo/grid-maze-game/game/render"
)

// Renderer draws one session's game by broadcasting rendering operations to
// the session's clients. It keeps its own board and text so that clients
// joining later receive the current scene.
type Renderer struct {
	hub       *Hub
	sessionID string

	mu    sync.Mutex
	board *render.Board
	text  string
}

func newRenderer(hub *Hub, sessionID string) *Renderer {
	return &Renderer{
		hub:       hub,
		sessionID: sessionID,
		board:     render.NewBoard(),
	}
}

// RenderGrid implements render.Renderer
func (r *Renderer) RenderGrid(g *maze.Grid) {
	r.mu.Lock()
	r.board.RenderGrid(g)
	board := cloneBoard(r.board)
	r.mu.Unlock()

	r.hub.publish(&Message{SessionID: r.sessionID, Op: OpGrid, Board: board})
}

// PlaceToken implements render.Renderer
func (r *Renderer) PlaceToken(x, y int) {
	r.mu.Lock()
	r.board.PlaceToken(x, y)
	token := *r.board.Token
	r.mu.Unlock()

	r.hub.publish(&Message{SessionID: r.sessionID, Op: OpToken, Token: &token})
}

// MarkVictory implements render.Renderer
func (r *Renderer) MarkVictory() {
	r.mu.Lock()
	r.board.MarkVictory()
	var token *render.TokenView
	if r.board.Token != nil {
		t := *r.board.Token
		token = &t
	}
	r.mu.Unlock()

	r.hub.publish(&Message{SessionID: r.sessionID, Op: OpVictory, Token: token})
}

// SetText implements status.Sink
func (r *Renderer) SetText(text string) {
	r.mu.Lock()
	r.text = text
	r.mu.Unlock()

	r.hub.publish(&Message{SessionID: r.sessionID, Op: OpStatus, Text: text})
}

// snapshot returns the messages that rebuild the current scene
func (r *Renderer) snapshot() []*Message {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []*Message
	if len(r.board.Cells) > 0 {
		out = append(out, &Message{SessionID: r.sessionID, Op: OpGrid, Board: cloneBoard(r.board)})
	}
	if r.text != "" {
		out = append(out, &Message{SessionID: r.sessionID, Op: OpStatus, Text: r.text})
	}
	return out
}

func cloneBoard(b *render.Board) *render.Board {
	out := *b
	out.Cells = append([]render.CellView(nil), b.Cells...)
	if b.Token != nil {
		t := *b.Token
		out.Token = &t
	}
	return &out
}
