package service

import (
	"time"

	"github.com/wricardo/grid-maze-game/game/engine"
	"github.com/wricardo/grid-maze-game/game/maze"
	"github.com/wricardo/grid-maze-game/game/render"
)

// GameState is a snapshot of one game
type GameState struct {
	Position maze.Position `json:"position"`
	Goal     maze.Position `json:"goal"`
	Status   engine.Status `json:"status"`
	Won      bool          `json:"won"`
	Message  string        `json:"message"`
	Moves    int           `json:"moves"`
	Attempts int           `json:"attempts"`
	Board    *render.Board `json:"board,omitempty"`
}

// SessionInfo provides information about a game session
type SessionInfo struct {
	ID             string     `json:"id"`
	CreatedAt      time.Time  `json:"created_at"`
	LastAccessedAt time.Time  `json:"last_accessed_at"`
	GameState      *GameState `json:"game_state"`
}

// MoveRequest carries exactly one input: a control direction, a key name,
// or a raw vector
type MoveRequest struct {
	Direction string `json:"direction,omitempty"`
	Key       string `json:"key,omitempty"`
	DX        *int   `json:"dx,omitempty"`
	DY        *int   `json:"dy,omitempty"`
}

// MoveResult contains the result of a move operation
type MoveResult struct {
	Success bool           `json:"success"`
	Outcome engine.Outcome `json:"outcome"`
	// Recognized is set for key input and reports whether the key is a movement key
	Recognized *bool       `json:"recognized,omitempty"`
	Message    string      `json:"message"`
	GameState  *GameState  `json:"game_state"`
	Events     []GameEvent `json:"events,omitempty"`
}

// GameEvent represents an event that occurred during gameplay
type GameEvent struct {
	Type      string        `json:"type"` // "moved", "blocked", "out_of_bounds", "ignored", "won"
	Message   string        `json:"message"`
	Timestamp time.Time     `json:"timestamp"`
	Position  maze.Position `json:"position"`
}

// HistoryOptions configures move history retrieval
type HistoryOptions struct {
	Page  int    `json:"page"`
	Limit int    `json:"limit"`
	Order string `json:"order"` // "asc" or "desc"
}

// HistoryResponse contains paginated move history
type HistoryResponse struct {
	Moves       []engine.MoveHistoryEntry `json:"moves"`
	TotalMoves  int                       `json:"total_moves"`
	Page        int                       `json:"page"`
	PageSize    int                       `json:"page_size"`
	TotalPages  int                       `json:"total_pages"`
	HasNext     bool                      `json:"has_next"`
	HasPrevious bool                      `json:"has_previous"`
}
