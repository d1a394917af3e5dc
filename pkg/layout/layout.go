package layout

import (
	"fmt"
	"slices"

	"github.com/matzehuels/indexflow/pkg/graph"
)

// Direction is the primary axis along which ranks advance.
type Direction string

const (
	LeftToRight Direction = "left-to-right"
	TopToBottom Direction = "top-to-bottom"
)

// Directions lists the supported directions, default first.
var Directions = []Direction{LeftToRight, TopToBottom}

// ParseDirection accepts the long names and the "LR"/"TB" shorthands. The
// empty string is left-to-right.
func ParseDirection(s string) (Direction, error) {
	switch s {
	case "", string(LeftToRight), "LR", "lr":
		return LeftToRight, nil
	case string(TopToBottom), "TB", "tb":
		return TopToBottom, nil
	}
	return "", fmt.Errorf("unknown direction %q", s)
}

// Horizontal reports whether ranks advance along the x axis.
func (d Direction) Horizontal() bool { return d != TopToBottom }

// Sides returns where edges leave sources and enter targets.
func (d Direction) Sides() (source, target graph.Side) {
	if d.Horizontal() {
		return graph.SideRight, graph.SideLeft
	}
	return graph.SideBottom, graph.SideTop
}

// Spacing defaults.
const (
	DefaultNodeSpacing = 60
	DefaultRankSpacing = 140
	DefaultMargin      = 20
)

// Options configures a layout run.
type Options struct {
	Direction Direction

	// NodeSpacing separates neighbours within a rank.
	NodeSpacing float64
	// RankSpacing separates consecutive ranks and stacked components.
	RankSpacing float64
	// Margin offsets the whole drawing from the origin.
	Margin float64

	// Sizer fixes the size of nodes that arrive without one.
	Sizer Sizer
}

// DefaultOptions returns the documented defaults.
func DefaultOptions() Options {
	return Options{
		Direction:   LeftToRight,
		NodeSpacing: DefaultNodeSpacing,
		RankSpacing: DefaultRankSpacing,
		Margin:      DefaultMargin,
		Sizer:       DefaultSizer,
	}
}

func (o Options) normalized() Options {
	if o.Direction == "" {
		o.Direction = LeftToRight
	}
	if o.Sizer == nil {
		o.Sizer = DefaultSizer
	}
	return o
}

// Engine positions the nodes of a graph.
//
// Implementations return a new graph: the input is never mutated, node
// sizes already fixed are kept, every node gets X/Y (top-left corner) and
// SourceSide/TargetSide, and edges are left unrouted. The same input and
// options always give the same output.
type Engine interface {
	Layout(g graph.Graph, opts Options) (graph.Graph, error)
}

// Engine names.
const (
	EngineLayered  = "layered"
	EngineGraphviz = "graphviz"
)

// Engines lists the registered engine names, default first.
func Engines() []string { return []string{EngineLayered, EngineGraphviz} }

// New returns the engine registered under name. The empty name selects the
// layered engine.
func New(name string) (Engine, error) {
	switch name {
	case "", EngineLayered:
		return Layered{}, nil
	case EngineGraphviz:
		return Graphviz{}, nil
	}
	return nil, fmt.Errorf("unknown layout engine %q (available: %v)", name, Engines())
}

// IsEngine reports whether name is a registered engine.
func IsEngine(name string) bool { return slices.Contains(Engines(), name) }

func setSides(g *graph.Graph, d Direction) {
	src, tgt := d.Sides()
	for i := range g.Nodes {
		g.Nodes[i].SourceSide = src
		g.Nodes[i].TargetSide = tgt
	}
}
