package chrome

import (
	"slices"

	"github.com/matzehuels/indexflow/pkg/graph"
)

// Selection is the set of selected node IDs.
type Selection map[string]bool

// Select returns a selection holding ids.
func Select(ids ...string) Selection {
	s := make(Selection, len(ids))
	for _, id := range ids {
		s[id] = true
	}
	return s
}

// IDs returns the selected IDs in sorted order.
func (s Selection) IDs() []string {
	ids := make([]string, 0, len(s))
	for id, ok := range s {
		if ok {
			ids = append(ids, id)
		}
	}
	slices.Sort(ids)
	return ids
}

// Policy decides the per-node chrome.
type Policy struct {
	// Ring returns the selection ring color of a node. Defaults to
	// DefaultRing.
	Ring func(graph.Node) string
	// Editable decides whether the edit affordance is shown. Defaults to
	// the node payload's Editable flag.
	Editable func(graph.Node) bool
}

// Ring colors by resource category.
var ringColors = map[string]string{
	"datasource": "#2563eb",
	"indexer":    "#7c3aed",
	"skillset":   "#db2777",
	"skill":      "#db2777",
	"index":      "#059669",
	"alias":      "#0d9488",
	"synonymmap": "#ca8a04",
	"selector":   "#ea580c",
	"mapping":    "#64748b",
	"document":   "#475569",
}

// FallbackRing is the ring color of nodes without a known category.
const FallbackRing = "#0ea5e9"

// DefaultRing colors a node by its payload's resource category.
func DefaultRing(n graph.Node) string {
	if c, ok := ringColors[n.Data.Resource]; ok {
		return c
	}
	return FallbackRing
}

// NodeView is what the render layer draws for one node: the node's
// identity, kind, raw payload and geometry, plus the chrome state.
type NodeView struct {
	ID       string        `json:"id"`
	Kind     graph.Kind    `json:"kind"`
	Data     graph.Payload `json:"data"`
	X        float64       `json:"x"`
	Y        float64       `json:"y"`
	Width    float64       `json:"width"`
	Height   float64       `json:"height"`
	Selected bool          `json:"selected"`
	Ring     string        `json:"ring"`
	Editable bool          `json:"editable"`
}

// Decorate wraps every node of g with its chrome, in graph order.
func Decorate(g graph.Graph, s Selection, p Policy) []NodeView {
	ring := p.Ring
	if ring == nil {
		ring = DefaultRing
	}
	editable := p.Editable
	if editable == nil {
		editable = func(n graph.Node) bool { return n.Data.Editable }
	}

	views := make([]NodeView, len(g.Nodes))
	for i, n := range g.Nodes {
		views[i] = NodeView{
			ID:       n.ID,
			Kind:     n.Kind,
			Data:     n.Data,
			X:        n.X,
			Y:        n.Y,
			Width:    n.Width,
			Height:   n.Height,
			Selected: s[n.ID],
			Ring:     ring(n),
			Editable: editable(n),
		}
	}
	return views
}
