package graph

import (
	"errors"
	"fmt"
	"math"
	"slices"
)

// =============================================================================
// Constants - Single Source of Truth
// =============================================================================

// Kind tags what a node stands for.
type Kind string

// Node kinds.
const (
	KindResource Kind = "resource" // data source, indexer, skillset, index, alias, synonym map
	KindSkill    Kind = "skill"    // one skill of the skillset
	KindSelector Kind = "selector" // index projection selector
	KindMapping  Kind = "mapping"  // field mapping or output field mapping group
	KindDocument Kind = "document" // the enriched document root
)

// Side names the border of a node where edges attach.
type Side string

// Node sides.
const (
	SideLeft   Side = "left"
	SideRight  Side = "right"
	SideTop    Side = "top"
	SideBottom Side = "bottom"
)

var (
	// ErrDanglingEdge is returned by [Graph.Validate] when an edge references
	// a node that is not in the graph.
	ErrDanglingEdge = errors.New("edge references unknown node")

	// ErrDuplicateNode is returned by [Graph.Validate] when two nodes share an
	// ID.
	ErrDuplicateNode = errors.New("duplicate node ID")
)

// =============================================================================
// Graph - Pipeline Diagram
// =============================================================================

// Graph is the diagram of one ingestion pipeline. The same type flows
// through every stage: the builder fills identities, kinds and payloads,
// layout adds sizes and positions, routing adds edge polylines.
//
// Nodes and edges are values. Every stage works on a [Graph.Clone] and never
// mutates its input.
type Graph struct {
	Nodes []Node `json:"nodes"`
	Edges []Edge `json:"edges"`
}

// Node is one card in the diagram.
type Node struct {
	ID   string  `json:"id"`
	Kind Kind    `json:"kind"`
	Data Payload `json:"data"`

	// Geometry, set by layout. X and Y are the top-left corner.
	X      float64 `json:"x,omitempty"`
	Y      float64 `json:"y,omitempty"`
	Width  float64 `json:"width,omitempty"`
	Height float64 `json:"height,omitempty"`

	// Preferred attachment sides, set by layout.
	SourceSide Side `json:"source_side,omitempty"`
	TargetSide Side `json:"target_side,omitempty"`
}

// Payload is the display data of a node.
type Payload struct {
	Title    string   `json:"title"`
	Subtitle string   `json:"subtitle,omitempty"`
	Details  []string `json:"details,omitempty"`
	Resource string   `json:"resource,omitempty"` // resource category, for styling
	Action   string   `json:"action,omitempty"`   // action category, for styling
	Editable bool     `json:"editable,omitempty"`
}

// Edge is a directed data-flow connection.
type Edge struct {
	ID     string `json:"id"`
	Source string `json:"source"`
	Target string `json:"target"`
	Label  string `json:"label,omitempty"`

	// Position within the (Source, Target) parallel group. See AssignGroups.
	GroupIndex int `json:"group_index"`
	GroupSize  int `json:"group_size"`

	// Set by routing.
	Points     []Point `json:"points,omitempty"`
	LabelPoint *Point  `json:"label_point,omitempty"`
}

// Point is a 2D coordinate.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Rect is an axis-aligned rectangle.
type Rect struct {
	MinX, MinY, MaxX, MaxY float64
}

// Width returns the horizontal extent of r.
func (r Rect) Width() float64 { return r.MaxX - r.MinX }

// Height returns the vertical extent of r.
func (r Rect) Height() float64 { return r.MaxY - r.MinY }

// Expand grows r by pad on every side.
func (r Rect) Expand(pad float64) Rect {
	return Rect{r.MinX - pad, r.MinY - pad, r.MaxX + pad, r.MaxY + pad}
}

// Overlaps reports whether r and o share interior area.
func (r Rect) Overlaps(o Rect) bool {
	return r.MinX < o.MaxX && o.MinX < r.MaxX && r.MinY < o.MaxY && o.MinY < r.MaxY
}

// Bounds returns the node's rectangle.
func (n Node) Bounds() Rect {
	return Rect{n.X, n.Y, n.X + n.Width, n.Y + n.Height}
}

// Center returns the midpoint of the node's rectangle.
func (n Node) Center() Point {
	return Point{n.X + n.Width/2, n.Y + n.Height/2}
}

// HasSize reports whether the node has a fixed, positive size.
func (n Node) HasSize() bool { return n.Width > 0 && n.Height > 0 }

// =============================================================================
// Graph Methods
// =============================================================================

// Node returns the node with the given ID.
func (g Graph) Node(id string) (Node, bool) {
	for _, n := range g.Nodes {
		if n.ID == id {
			return n, true
		}
	}
	return Node{}, false
}

// NodeIndex maps node IDs to their index in g.Nodes.
func (g Graph) NodeIndex() map[string]int {
	m := make(map[string]int, len(g.Nodes))
	for i, n := range g.Nodes {
		m[n.ID] = i
	}
	return m
}

// EdgesBetween returns the edges from source to target in edge order.
func (g Graph) EdgesBetween(source, target string) []Edge {
	var out []Edge
	for _, e := range g.Edges {
		if e.Source == source && e.Target == target {
			out = append(out, e)
		}
	}
	return out
}

// Incoming returns the edges that end at id.
func (g Graph) Incoming(id string) []Edge {
	var out []Edge
	for _, e := range g.Edges {
		if e.Target == id {
			out = append(out, e)
		}
	}
	return out
}

// IsEmpty reports whether the graph has no nodes.
func (g Graph) IsEmpty() bool { return len(g.Nodes) == 0 }

// Clone returns a deep copy of g.
func (g Graph) Clone() Graph {
	out := Graph{
		Nodes: make([]Node, len(g.Nodes)),
		Edges: make([]Edge, len(g.Edges)),
	}
	for i, n := range g.Nodes {
		n.Data.Details = slices.Clone(n.Data.Details)
		out.Nodes[i] = n
	}
	for i, e := range g.Edges {
		e.Points = slices.Clone(e.Points)
		if e.LabelPoint != nil {
			p := *e.LabelPoint
			e.LabelPoint = &p
		}
		out.Edges[i] = e
	}
	return out
}

// AssignGroups numbers the edges of every (Source, Target) parallel group.
// GroupIndex follows edge order, so lane assignment is deterministic.
func (g *Graph) AssignGroups() {
	type pair struct{ s, t string }
	sizes := make(map[pair]int)
	for _, e := range g.Edges {
		sizes[pair{e.Source, e.Target}]++
	}
	seen := make(map[pair]int)
	for i := range g.Edges {
		k := pair{g.Edges[i].Source, g.Edges[i].Target}
		g.Edges[i].GroupIndex = seen[k]
		g.Edges[i].GroupSize = sizes[k]
		seen[k]++
	}
}

// Validate checks that node IDs are unique and every edge references
// existing nodes.
func (g Graph) Validate() error {
	ids := make(map[string]bool, len(g.Nodes))
	for _, n := range g.Nodes {
		if ids[n.ID] {
			return fmt.Errorf("%w: %s", ErrDuplicateNode, n.ID)
		}
		ids[n.ID] = true
	}
	for _, e := range g.Edges {
		if !ids[e.Source] {
			return fmt.Errorf("%w: %s (source of %s)", ErrDanglingEdge, e.Source, e.ID)
		}
		if !ids[e.Target] {
			return fmt.Errorf("%w: %s (target of %s)", ErrDanglingEdge, e.Target, e.ID)
		}
	}
	return nil
}

// Bounds returns the rectangle enclosing all nodes and routed edge points.
// An empty graph has zero bounds.
func (g Graph) Bounds() Rect {
	if len(g.Nodes) == 0 {
		return Rect{}
	}
	r := Rect{math.Inf(1), math.Inf(1), math.Inf(-1), math.Inf(-1)}
	grow := func(x, y float64) {
		r.MinX = math.Min(r.MinX, x)
		r.MinY = math.Min(r.MinY, y)
		r.MaxX = math.Max(r.MaxX, x)
		r.MaxY = math.Max(r.MaxY, y)
	}
	for _, n := range g.Nodes {
		grow(n.X, n.Y)
		grow(n.X+n.Width, n.Y+n.Height)
	}
	for _, e := range g.Edges {
		for _, p := range e.Points {
			grow(p.X, p.Y)
		}
	}
	return r
}
