package layout

import "github.com/matzehuels/indexflow/pkg/graph"

// Fallback size for unknown kinds and for sizers that return nothing usable.
const (
	DefaultWidth  = 240
	DefaultHeight = 120
)

// Intrinsic card metrics. Text cards grow by one line height per detail
// line on top of a fixed header.
const (
	headerHeight = 64
	lineHeight   = 18

	skillWidth     = 260
	skillMinHeight = 120

	selectorWidth     = 240
	selectorMinHeight = 96

	mappingWidth     = 220
	mappingMinHeight = 96
	mappingMaxLines  = 8

	documentWidth  = 180
	documentHeight = 72
)

// Size is the extent of a node.
type Size struct {
	Width, Height float64
}

// Valid reports whether both dimensions are positive.
func (s Size) Valid() bool { return s.Width > 0 && s.Height > 0 }

// Sizer reports the intrinsic size of a node. Layout and routing receive
// the same Sizer so they agree on node extents.
type Sizer func(graph.Node) Size

// DefaultSizer sizes nodes by kind:
//
//	resource  240 x 120
//	skill     260 x max(120, 64 + 18 per detail line)
//	selector  240 x max(96, 64 + 18 per detail line)
//	mapping   220 x max(96, 64 + 18 per detail line, at most 8 lines)
//	document  180 x 72
//
// Anything else is 240 x 120.
func DefaultSizer(n graph.Node) Size {
	lines := float64(len(n.Data.Details))
	switch n.Kind {
	case graph.KindResource:
		return Size{DefaultWidth, DefaultHeight}
	case graph.KindSkill:
		return Size{skillWidth, max(skillMinHeight, headerHeight+lineHeight*lines)}
	case graph.KindSelector:
		return Size{selectorWidth, max(selectorMinHeight, headerHeight+lineHeight*lines)}
	case graph.KindMapping:
		return Size{mappingWidth, max(mappingMinHeight, headerHeight+lineHeight*min(lines, mappingMaxLines))}
	case graph.KindDocument:
		return Size{documentWidth, documentHeight}
	default:
		return Size{DefaultWidth, DefaultHeight}
	}
}

// Prepare returns a copy of g in which every node has a fixed size. Nodes
// that already carry a positive Width and Height keep it; the rest get
// sizer's answer, or 240 x 120 when sizer is nil or returns a non-positive
// size.
func Prepare(g graph.Graph, sizer Sizer) graph.Graph {
	out := g.Clone()
	for i := range out.Nodes {
		n := &out.Nodes[i]
		if n.HasSize() {
			continue
		}
		s := Size{}
		if sizer != nil {
			s = sizer(*n)
		}
		if !s.Valid() {
			s = Size{DefaultWidth, DefaultHeight}
		}
		n.Width, n.Height = s.Width, s.Height
	}
	return out
}
