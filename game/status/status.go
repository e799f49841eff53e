// Package status turns move outcomes into the single line of status text
// shown next to the maze.
package status

import (
	"fmt"
	"sync"

	"github.com/wricardo/grid-maze-game/game/engine"
)

// Fixed status messages
const (
	Welcome = "Use the arrow keys, WASD or the buttons to reach the goal."
	Blocked = "Oops! That's a wall!"
	Victory = "Congratulations! You reached the goal!"
)

// Moved returns the message for a committed move
func Moved(x, y int) string {
	return fmt.Sprintf("Current Position: (%d, %d)", x, y)
}

// Sink is a visible text region. SetText replaces its whole content.
type Sink interface {
	SetText(text string)
}

// Reporter writes outcome messages to a sink
type Reporter struct {
	sink Sink
}

// NewReporter creates a reporter and shows the welcome text
func NewReporter(sink Sink) *Reporter {
	sink.SetText(Welcome)
	return &Reporter{sink: sink}
}

// Report overwrites the status text for the outcome. Out-of-bounds and
// ignored attempts leave the text as it was.
func (r *Reporter) Report(out engine.Outcome) {
	switch out.Kind {
	case engine.Blocked:
		r.sink.SetText(Blocked)
	case engine.Moved:
		r.sink.SetText(Moved(out.Position.X, out.Position.Y))
		if out.Won {
			r.sink.SetText(Victory)
		}
	}
}

// Text is an in-memory Sink safe for concurrent reads
type Text struct {
	mu   sync.RWMutex
	text string
}

// SetText replaces the current text
func (t *Text) SetText(text string) {
	t.mu.Lock()
	t.text = text
	t.mu.Unlock()
}

// String returns the current text
func (t *Text) String() string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.text
}

// Sinks fans SetText out to several sinks
type Sinks []Sink

func (s Sinks) SetText(text string) {
	for _, sink := range s {
		sink.SetText(text)
	}
}

// SinkFunc adapts a function to the Sink interface
type SinkFunc func(text string)

func (f SinkFunc) SetText(text string) {
	f(text)
}
