package maze

import (
	"fmt"
	"strings"
)

// CellKind represents what occupies a grid cell
type CellKind int

const (
	Path CellKind = iota
	Wall
)

// String returns the lowercase name of the kind
func (k CellKind) String() string {
	switch k {
	case Path:
		return "path"
	case Wall:
		return "wall"
	default:
		return "unknown"
	}
}

// MarshalText lets CellKind appear as "path"/"wall" in JSON
func (k CellKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText parses "path" or "wall"
func (k *CellKind) UnmarshalText(text []byte) error {
	switch string(text) {
	case "path":
		*k = Path
	case "wall":
		*k = Wall
	default:
		return fmt.Errorf("unknown cell kind %q", text)
	}
	return nil
}

// Position represents x,y grid coordinates
type Position struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Add returns the position shifted by dx, dy
func (p Position) Add(dx, dy int) Position {
	return Position{X: p.X + dx, Y: p.Y + dy}
}

// Edges is a bitmask of the sides of a path cell that face a wall
type Edges uint8

const (
	EdgeTop Edges = 1 << iota
	EdgeRight
	EdgeBottom
	EdgeLeft
)

// Has reports whether all bits of e2 are set in e
func (e Edges) Has(e2 Edges) bool {
	return e&e2 == e2
}

// Names returns the side names in top, right, bottom, left order
func (e Edges) Names() []string {
	names := make([]string, 0, 4)
	if e.Has(EdgeTop) {
		names = append(names, "top")
	}
	if e.Has(EdgeRight) {
		names = append(names, "right")
	}
	if e.Has(EdgeBottom) {
		names = append(names, "bottom")
	}
	if e.Has(EdgeLeft) {
		names = append(names, "left")
	}
	return names
}

func (e Edges) String() string {
	if e == 0 {
		return "none"
	}
	return strings.Join(e.Names(), "|")
}
