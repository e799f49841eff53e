package websocket

import (
	"github.com/wricardo/grid-maze-game/game/render"
	"github.com/wricardo/grid-maze-game/game/service"
)

// Op names one rendering operation sent to clients
type Op string

const (
	// OpGrid replaces the whole board; Board carries every cell view
	OpGrid Op = "grid"
	// OpToken moves the single token to Token.X, Token.Y
	OpToken Op = "token"
	// OpVictory switches the token to its victory appearance
	OpVictory Op = "victory"
	// OpStatus replaces the status text
	OpStatus Op = "status"
)

// Message is one outbound rendering operation. Clients receive one JSON
// object per line; several may share a frame.
type Message struct {
	SessionID string            `json:"session_id"`
	Op        Op                `json:"op"`
	Board     *render.Board     `json:"board,omitempty"`
	Token     *render.TokenView `json:"token,omitempty"`
	Text      string            `json:"text,omitempty"`
}

// ActionMove is the only inbound action
const ActionMove = "move"

// Inbound is a message sent by a client, e.g.
// {"action":"move","direction":"up"} or {"action":"move","key":"ArrowUp"}
type Inbound struct {
	Action string `json:"action"`
	service.MoveRequest
}
