// Package layout assigns board coordinates to graph nodes.
//
// An [Engine] maps an ordered list of node names to positions and knows
// nothing else about the diagram, so engines can be swapped without
// touching extraction or emission.
//
//	pos := layout.Row{Spacing: 300}.Place([]string{"a", "b", "c"})
//	// a → (-300, 0), b → (0, 0), c → (300, 0)
package layout

import (
	"github.com/matzehuels/archboard/pkg/errors"
	"github.com/matzehuels/archboard/pkg/graph"
)

// DefaultSpacing is the horizontal distance between node centers.
const DefaultSpacing = 300.0

// DefaultRowGap is the vertical distance between layers in [Layered].
// It leaves room for the annotation box drawn below each module.
const DefaultRowGap = 320.0

// Engine names accepted by [New].
const (
	EngineRow     = "row"
	EngineLayered = "layered"
)

// Position is the center of a node on the board.
type Position struct {
	Name string  `json:"name"`
	X    float64 `json:"x"`
	Y    float64 `json:"y"`
}

// Positions maps node names to their assigned position.
type Positions map[string]Position

// Engine assigns a position to every name in names.
type Engine interface {
	Place(names []string) Positions
}

// New returns the engine registered under name. Layered engines read
// dependency edges from g; row engines ignore it.
func New(name string, g *graph.Graph, spacing float64) (Engine, error) {
	if spacing <= 0 {
		spacing = DefaultSpacing
	}
	switch name {
	case "", EngineRow:
		return Row{Spacing: spacing}, nil
	case EngineLayered:
		if g == nil {
			return nil, errors.New(errors.ErrCodeInvalidInput, "layered layout needs a graph")
		}
		return Layered{Spacing: spacing, RowGap: DefaultRowGap, Children: g.Children}, nil
	default:
		return nil, errors.New(errors.ErrCodeInvalidInput, "unknown layout %q (must be one of: row, layered)", name)
	}
}

// Row places all nodes on one horizontal line centered on the origin.
// Node i of n gets x = -((n-1)*Spacing)/2 + i*Spacing and y = 0.
type Row struct {
	Spacing float64
}

// Place implements Engine.
func (r Row) Place(names []string) Positions {
	pos := make(Positions, len(names))
	for i, x := range centered(len(names), r.spacing()) {
		pos[names[i]] = Position{Name: names[i], X: x, Y: 0}
	}
	return pos
}

func (r Row) spacing() float64 {
	if r.Spacing <= 0 {
		return DefaultSpacing
	}
	return r.Spacing
}

// centered returns n x-coordinates spaced s apart and centered on zero.
func centered(n int, s float64) []float64 {
	xs := make([]float64, n)
	start := -(float64(n-1) * s) / 2
	for i := range xs {
		xs[i] = start + float64(i)*s
	}
	return xs
}
