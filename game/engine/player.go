package engine

import (
	"time"

	"github.com/wricardo/grid-maze-game/game/maze"
)

// Engine is the read/write contract of the player state machine
type Engine interface {
	AttemptMove(dx, dy int) Outcome
	Position() maze.Position
	Status() Status
	IsWon() bool
	Grid() *maze.Grid
	History() []MoveHistoryEntry
	Moves() int
}

// Player holds the position and status for one game
type Player struct {
	grid    *maze.Grid
	pos     maze.Position
	status  Status
	history []MoveHistoryEntry
	moves   int

	now func() time.Time
}

// NewPlayer starts a game on grid at the grid's start cell
func NewPlayer(grid *maze.Grid) *Player {
	return &Player{
		grid:   grid,
		pos:    grid.Start(),
		status: Running,
		now:    time.Now,
	}
}

// AttemptMove tries to move the player by (dx, dy). Zero and diagonal vectors
// are not rejected; they resolve like any other candidate cell.
func (p *Player) AttemptMove(dx, dy int) Outcome {
	if p.status == Won {
		return Outcome{Kind: Ignored, Position: p.pos, Candidate: p.pos}
	}

	from := p.pos
	candidate := p.pos.Add(dx, dy)
	out := Outcome{Position: p.pos, Candidate: candidate}

	switch {
	case !p.grid.InBounds(candidate.X, candidate.Y):
		out.Kind = OutOfBounds
	case p.grid.CellKind(candidate.X, candidate.Y) == maze.Wall:
		out.Kind = Blocked
	default:
		p.pos = candidate
		p.moves++
		out.Kind = Moved
		out.Position = candidate
		if p.grid.IsGoal(candidate) {
			p.status = Won
			out.Won = true
		}
	}

	p.record(dx, dy, from, out)
	return out
}

// Position returns the current cell
func (p *Player) Position() maze.Position {
	return p.pos
}

// Status returns Running or Won
func (p *Player) Status() Status {
	return p.status
}

// IsWon reports whether the goal has been reached
func (p *Player) IsWon() bool {
	return p.status == Won
}

// Grid returns the map the player moves on
func (p *Player) Grid() *maze.Grid {
	return p.grid
}

// History returns a copy of every recorded attempt
func (p *Player) History() []MoveHistoryEntry {
	out := make([]MoveHistoryEntry, len(p.history))
	copy(out, p.history)
	return out
}

// Moves returns the number of committed moves
func (p *Player) Moves() int {
	return p.moves
}

func (p *Player) record(dx, dy int, from maze.Position, out Outcome) {
	p.history = append(p.history, MoveHistoryEntry{
		DX:           dx,
		DY:           dy,
		FromPosition: from,
		ToPosition:   out.Position,
		Result:       out.Kind,
		Timestamp:    p.now().Unix(),
		MoveNumber:   len(p.history) + 1,
	})
}
