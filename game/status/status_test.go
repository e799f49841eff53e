package status

import (
	"testing"

	"github.com/wricardo/grid-maze-game/game/engine"
	"github.com/wricardo/grid-maze-game/game/maze"
)

type history struct {
	texts []string
}

func (h *history) SetText(text string) { h.texts = append(h.texts, text) }

func TestNewReporter_ShowsWelcome(t *testing.T) {
	text := &Text{}
	NewReporter(text)

	if text.String() != Welcome {
		t.Errorf("Expected welcome text, got %q", text.String())
	}
}

func TestReport(t *testing.T) {
	tests := []struct {
		name     string
		outcome  engine.Outcome
		expected string
	}{
		{"blocked", engine.Outcome{Kind: engine.Blocked}, "Oops! That's a wall!"},
		{"moved", engine.Outcome{Kind: engine.Moved, Position: maze.Position{X: 2, Y: 1}}, "Current Position: (2, 1)"},
		{"won", engine.Outcome{Kind: engine.Moved, Position: maze.Position{X: 9, Y: 9}, Won: true}, "Congratulations! You reached the goal!"},
		{"out of bounds keeps text", engine.Outcome{Kind: engine.OutOfBounds}, Welcome},
		{"ignored keeps text", engine.Outcome{Kind: engine.Ignored}, Welcome},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			text := &Text{}
			r := NewReporter(text)
			r.Report(test.outcome)
			if text.String() != test.expected {
				t.Errorf("Expected %q, got %q", test.expected, text.String())
			}
		})
	}
}

func TestReport_Overwrites(t *testing.T) {
	h := &history{}
	r := NewReporter(h)

	r.Report(engine.Outcome{Kind: engine.Moved, Position: maze.Position{X: 9, Y: 9}, Won: true})

	expected := []string{Welcome, "Current Position: (9, 9)", Victory}
	if len(h.texts) != len(expected) {
		t.Fatalf("Expected %d writes, got %v", len(expected), h.texts)
	}
	for i := range expected {
		if h.texts[i] != expected[i] {
			t.Errorf("Write %d: expected %q, got %q", i, expected[i], h.texts[i])
		}
	}
}

func TestSinks(t *testing.T) {
	a, b := &Text{}, &Text{}
	Sinks{a, b}.SetText("hello")

	if a.String() != "hello" || b.String() != "hello" {
		t.Errorf("Expected both sinks updated, got %q and %q", a.String(), b.String())
	}
}
