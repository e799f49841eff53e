package maze

import (
	"errors"
	"strings"
	"testing"
)

func TestDefault_Dimensions(t *testing.T) {
	g := Default()

	if g.Cols() != Cols || g.Rows() != Rows {
		t.Fatalf("Expected %dx%d grid, got %dx%d", Cols, Rows, g.Cols(), g.Rows())
	}
	if g.Start() != (Position{0, 0}) {
		t.Errorf("Expected start (0,0), got %v", g.Start())
	}
	if g.Goal() != (Position{Cols - 1, Rows - 1}) {
		t.Errorf("Expected goal (%d,%d), got %v", Cols-1, Rows-1, g.Goal())
	}
	if got := g.Count(Wall); got != 52 {
		t.Errorf("Expected 52 wall cells, got %d", got)
	}
	if got := g.Count(Path) + g.Count(Wall); got != Cols*Rows {
		t.Errorf("Expected %d cells in total, got %d", Cols*Rows, got)
	}
}

func TestCellKind(t *testing.T) {
	g := Default()

	tests := []struct {
		name     string
		x, y     int
		expected CellKind
	}{
		{"start", 0, 0, Path},
		{"wall right of start", 1, 0, Wall},
		{"corridor row 1", 2, 1, Path},
		{"end of corridor", 9, 1, Wall},
		{"gap in row 2", 8, 2, Path},
		{"goal", 9, 9, Path},
		{"above goal", 9, 8, Wall},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if got := g.CellKind(test.x, test.y); got != test.expected {
				t.Errorf("CellKind(%d, %d): expected %v, got %v", test.x, test.y, test.expected, got)
			}
		})
	}
}

func TestCellKind_OutOfBoundsPanics(t *testing.T) {
	g := Default()

	for _, p := range []Position{{-1, 0}, {0, -1}, {Cols, 0}, {0, Rows}} {
		func() {
			defer func() {
				if recover() == nil {
					t.Errorf("Expected panic for CellKind(%d, %d)", p.X, p.Y)
				}
			}()
			g.CellKind(p.X, p.Y)
		}()
	}
}

func TestInBounds(t *testing.T) {
	g := Default()

	tests := []struct {
		x, y     int
		expected bool
	}{
		{0, 0, true},
		{9, 9, true},
		{-1, 0, false},
		{0, -1, false},
		{10, 5, false},
		{5, 10, false},
	}

	for _, test := range tests {
		if got := g.InBounds(test.x, test.y); got != test.expected {
			t.Errorf("InBounds(%d, %d): expected %v, got %v", test.x, test.y, test.expected, got)
		}
	}
}

func TestWallEdges(t *testing.T) {
	g := Default()

	tests := []struct {
		name     string
		x, y     int
		expected Edges
	}{
		{"start faces wall on the right only", 0, 0, EdgeRight},
		{"corridor entrance", 0, 1, EdgeBottom},
		{"goal has wall above", 9, 9, EdgeTop},
		{"corner pocket", 1, 3, EdgeTop | EdgeLeft},
		{"wall cell gets nothing", 1, 0, 0},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if got := g.WallEdges(test.x, test.y); got != test.expected {
				t.Errorf("WallEdges(%d, %d): expected %v, got %v", test.x, test.y, test.expected, got)
			}
		})
	}
}

func TestWallEdges_BorderIsNotAWall(t *testing.T) {
	g, err := Parse([]string{
		"00",
		"00",
	})
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	for y := 0; y < g.Rows(); y++ {
		for x := 0; x < g.Cols(); x++ {
			if e := g.WallEdges(x, y); e != 0 {
				t.Errorf("Expected no edges at (%d,%d) on an open grid, got %v", x, y, e)
			}
		}
	}
}

func TestEdgesNames(t *testing.T) {
	e := EdgeLeft | EdgeTop
	names := e.Names()
	if strings.Join(names, ",") != "top,left" {
		t.Errorf("Expected top,left got %v", names)
	}
	if Edges(0).String() != "none" {
		t.Errorf("Expected none for empty edges, got %s", Edges(0).String())
	}
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name   string
		layout []string
	}{
		{"empty", nil},
		{"ragged", []string{"00", "0"}},
		{"bad character", []string{"0x", "00"}},
		{"start is wall", []string{"10", "00"}},
		{"goal is wall", []string{"00", "01"}},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			_, err := Parse(test.layout)
			if err == nil {
				t.Fatal("Expected error")
			}
			if !errors.Is(err, ErrInvalidLayout) {
				t.Errorf("Expected ErrInvalidLayout, got %v", err)
			}
		})
	}
}

func TestLayoutRoundTrip(t *testing.T) {
	g := Default()
	again, err := Parse(g.Layout())
	if err != nil {
		t.Fatalf("Parse(Layout()) failed: %v", err)
	}
	if again.String() != g.String() {
		t.Errorf("Expected identical grids:\n%s\nvs\n%s", g.String(), again.String())
	}
}

func TestString(t *testing.T) {
	lines := strings.Split(strings.TrimRight(Default().String(), "\n"), "\n")
	if len(lines) != Rows {
		t.Fatalf("Expected %d lines, got %d", Rows, len(lines))
	}
	if lines[0] != ".#########" {
		t.Errorf("Unexpected first row %q", lines[0])
	}
	if lines[9] != "#........G" {
		t.Errorf("Unexpected last row %q", lines[9])
	}
}

func TestCellKindText(t *testing.T) {
	for _, kind := range []CellKind{Path, Wall} {
		text, err := kind.MarshalText()
		if err != nil {
			t.Fatalf("MarshalText failed: %v", err)
		}
		var decoded CellKind
		if err := decoded.UnmarshalText(text); err != nil {
			t.Fatalf("UnmarshalText(%s) failed: %v", text, err)
		}
		if decoded != kind {
			t.Errorf("Expected %v, got %v", kind, decoded)
		}
	}

	var k CellKind
	if err := k.UnmarshalText([]byte("lava")); err == nil {
		t.Error("Expected error for unknown kind")
	}
}
