package engine

import (
	"fmt"

	"github.com/wricardo/grid-maze-game/game/maze"
)

// Status represents the game lifecycle
type Status int

const (
	Running Status = iota
	Won
)

func (s Status) String() string {
	if s == Won {
		return "won"
	}
	return "running"
}

// MarshalText encodes the status as "running" or "won"
func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText parses "running" or "won"
func (s *Status) UnmarshalText(text []byte) error {
	switch string(text) {
	case "running":
		*s = Running
	case "won":
		*s = Won
	default:
		return fmt.Errorf("unknown status %q", text)
	}
	return nil
}

// OutcomeKind classifies the result of a move attempt
type OutcomeKind int

const (
	// Ignored means the game was already won
	Ignored OutcomeKind = iota
	// OutOfBounds means the candidate cell is outside the grid
	OutOfBounds
	// Blocked means the candidate cell is a wall
	Blocked
	// Moved means the position changed
	Moved
)

func (k OutcomeKind) String() string {
	switch k {
	case Ignored:
		return "ignored"
	case OutOfBounds:
		return "out_of_bounds"
	case Blocked:
		return "blocked"
	case Moved:
		return "moved"
	default:
		return "unknown"
	}
}

// MarshalText encodes the kind by name
func (k OutcomeKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText parses a kind name
func (k *OutcomeKind) UnmarshalText(text []byte) error {
	for _, candidate := range []OutcomeKind{Ignored, OutOfBounds, Blocked, Moved} {
		if candidate.String() == string(text) {
			*k = candidate
			return nil
		}
	}
	return fmt.Errorf("unknown outcome kind %q", text)
}

// Outcome is the result of a single AttemptMove call
type Outcome struct {
	Kind OutcomeKind `json:"kind"`
	// Position is the player position after the attempt
	Position maze.Position `json:"position"`
	// Candidate is the cell the move targeted
	Candidate maze.Position `json:"candidate"`
	// Won is set on the committed move that lands on the goal
	Won bool `json:"won,omitempty"`
}

// Committed reports whether the attempt changed the position
func (o Outcome) Committed() bool {
	return o.Kind == Moved
}

// MoveHistoryEntry represents a single attempt in the game history
type MoveHistoryEntry struct {
	DX           int           `json:"dx"`
	DY           int           `json:"dy"`
	FromPosition maze.Position `json:"from_position"`
	ToPosition   maze.Position `json:"to_position"`
	Result       OutcomeKind   `json:"result"`
	Timestamp    int64         `json:"timestamp"`
	MoveNumber   int           `json:"move_number"`
}
