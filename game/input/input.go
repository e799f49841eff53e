package input

import (
	"errors"
	"fmt"
	"strings"

	"github.com/wricardo/grid-maze-game/game/engine"
)

// ErrInvalidDirection is returned by ParseDirection for unknown tags
var ErrInvalidDirection = errors.New("invalid direction")

// Direction is the tag carried by a directional control
type Direction string

const (
	Up    Direction = "up"
	Down  Direction = "down"
	Left  Direction = "left"
	Right Direction = "right"
)

// Directions lists the four tags in a stable order
var Directions = []Direction{Up, Down, Left, Right}

// Vector is a movement delta
type Vector struct {
	DX int `json:"dx"`
	DY int `json:"dy"`
}

// Zero is the vector produced by unrecognized input
var Zero = Vector{}

// IsZero reports whether the vector does not move
func (v Vector) IsZero() bool {
	return v == Zero
}

var vectors = map[Direction]Vector{
	Up:    {0, -1},
	Down:  {0, 1},
	Left:  {-1, 0},
	Right: {1, 0},
}

var keys = map[string]Direction{
	"ArrowUp":    Up,
	"w":          Up,
	"ArrowDown":  Down,
	"s":          Down,
	"ArrowLeft":  Left,
	"a":          Left,
	"ArrowRight": Right,
	"d":          Right,
}

// Vector returns the unit vector for the direction, or Zero for unknown tags
func (d Direction) Vector() Vector {
	return vectors[d]
}

// ParseDirection validates a direction tag. Matching ignores case and
// surrounding whitespace.
func ParseDirection(s string) (Direction, error) {
	d := Direction(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := vectors[d]; !ok {
		return "", fmt.Errorf("%w: %q (use up, down, left or right)", ErrInvalidDirection, s)
	}
	return d, nil
}

// FromKey maps a key name to a vector. recognized reports whether the key is
// one of the movement keys; frontends swallow the key's default behavior
// (e.g. page scrolling) only when it is.
func FromKey(key string) (v Vector, recognized bool) {
	d, ok := keys[key]
	if !ok {
		return Zero, false
	}
	return d.Vector(), true
}

// FromTag maps a control tag to a vector; unknown tags map to Zero
func FromTag(tag string) Vector {
	return Direction(tag).Vector()
}

// Mover receives the resolved movement vectors
type Mover interface {
	AttemptMove(dx, dy int) engine.Outcome
}

// Dispatcher funnels keyboard and control input into one Mover
type Dispatcher struct {
	mover Mover
}

// NewDispatcher creates a dispatcher forwarding to mover
func NewDispatcher(mover Mover) *Dispatcher {
	return &Dispatcher{mover: mover}
}

// Key handles a key-down event. Every key produces exactly one move attempt.
// The returned flag reports whether the key was recognized.
func (d *Dispatcher) Key(key string) (engine.Outcome, bool) {
	v, recognized := FromKey(key)
	return d.mover.AttemptMove(v.DX, v.DY), recognized
}

// Control handles activation of a tagged direction control
func (d *Dispatcher) Control(tag string) engine.Outcome {
	v := FromTag(tag)
	return d.mover.AttemptMove(v.DX, v.DY)
}

// Vector forwards an already-resolved vector
func (d *Dispatcher) Vector(v Vector) engine.Outcome {
	return d.mover.AttemptMove(v.DX, v.DY)
}
