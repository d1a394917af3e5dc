package route

import (
	"math"

	"github.com/matzehuels/indexflow/pkg/graph"
	"github.com/matzehuels/indexflow/pkg/layout"
)

// Routing defaults.
const (
	DefaultPadding     = 12
	DefaultLaneStep    = 26
	DefaultMaxAttempts = 18
)

// laneSpread scales the lane step into the offset between parallel edges.
const laneSpread = 0.65

// Options configures routing.
type Options struct {
	Direction layout.Direction

	// Padding grows every node rectangle into an obstacle.
	Padding float64
	// LaneStep separates parallel edges and successive detour trials.
	LaneStep float64
	// MaxAttempts bounds the candidate paths tried per edge.
	MaxAttempts int

	// Sizer supplies the size of nodes that carry none. It should be the
	// sizer the layout ran with.
	Sizer layout.Sizer
}

// DefaultOptions returns the documented defaults.
func DefaultOptions() Options {
	return Options{
		Direction:   layout.LeftToRight,
		Padding:     DefaultPadding,
		LaneStep:    DefaultLaneStep,
		MaxAttempts: DefaultMaxAttempts,
		Sizer:       layout.DefaultSizer,
	}
}

// Route returns a copy of g with every edge annotated with an orthogonal
// polyline and a label point. Node geometry is never changed.
//
// Edges are anchored on the source's outward side and the target's inward
// side. Parallel edges of one (source, target) group fan out around a
// shared midline. A forward edge tries its candidate path and then
// alternating perturbations of the mid run until one clears every obstacle
// other than its own endpoints; when none does, the last candidate is kept.
// A backward edge (target at or before the source along the primary axis)
// takes a fixed detour below both of its nodes. Edges whose endpoints are missing
// stay unrouted.
//
// Top-to-bottom graphs are routed by transposing the geometry, routing
// left-to-right and transposing the points back.
func Route(g graph.Graph, opts Options) graph.Graph {
	if opts.Direction == "" {
		opts.Direction = layout.LeftToRight
	}
	if opts.MaxAttempts < 1 {
		opts.MaxAttempts = 1
	}
	transposed := !opts.Direction.Horizontal()

	out := g.Clone()
	out.AssignGroups()

	idx := out.NodeIndex()
	rects := make([]graph.Rect, len(out.Nodes))
	for i, n := range out.Nodes {
		r := nodeRect(n, opts.Sizer)
		if transposed {
			r = transposeRect(r)
		}
		rects[i] = r
	}
	obstacles := make([]graph.Rect, len(rects))
	for i, r := range rects {
		obstacles[i] = r.Expand(opts.Padding)
	}

	r := router{opts: opts, rects: rects, obstacles: obstacles}
	for i := range out.Edges {
		e := &out.Edges[i]
		s, okS := idx[e.Source]
		t, okT := idx[e.Target]
		if !okS || !okT {
			e.Points, e.LabelPoint = nil, nil
			continue
		}
		off := (float64(e.GroupIndex) - float64(e.GroupSize-1)/2) * opts.LaneStep * laneSpread
		path := r.route(s, t, off)
		if transposed {
			for j := range path {
				path[j] = transposePoint(path[j])
			}
		}
		e.Points = path
		e.LabelPoint = labelPoint(path)
	}
	return out
}

// nodeRect returns the node's rectangle, sizing it with sizer when the node
// has no size of its own.
func nodeRect(n graph.Node, sizer layout.Sizer) graph.Rect {
	if !n.HasSize() {
		s := layout.Size{}
		if sizer != nil {
			s = sizer(n)
		}
		if !s.Valid() {
			s = layout.Size{Width: layout.DefaultWidth, Height: layout.DefaultHeight}
		}
		n.Width, n.Height = s.Width, s.Height
	}
	return n.Bounds()
}

// router routes in left-to-right space.
type router struct {
	opts      Options
	rects     []graph.Rect
	obstacles []graph.Rect
}

func (r router) stub() float64 { return r.opts.Padding * 2 }

func (r router) route(s, t int, off float64) []graph.Point {
	src, tgt := r.rects[s], r.rects[t]
	sa := graph.Point{X: src.MaxX, Y: (src.MinY + src.MaxY) / 2}
	ta := graph.Point{X: tgt.MinX, Y: (tgt.MinY + tgt.MaxY) / 2}
	stub := r.stub()

	if ta.X <= sa.X {
		y := max(src.MaxY, tgt.MaxY) + r.opts.Padding + r.opts.LaneStep + off
		return []graph.Point{
			sa,
			{X: sa.X + stub, Y: sa.Y},
			{X: sa.X + stub, Y: y},
			{X: ta.X - stub, Y: y},
			{X: ta.X - stub, Y: ta.Y},
			ta,
		}
	}

	base := (sa.Y+ta.Y)/2 + off
	var path []graph.Point
	for k := 0; k < r.opts.MaxAttempts; k++ {
		mid := base + trialOffset(k, r.opts.LaneStep)
		path = []graph.Point{
			sa,
			{X: sa.X + stub, Y: sa.Y},
			{X: sa.X + stub, Y: mid},
			{X: ta.X - stub, Y: mid},
			{X: ta.X - stub, Y: ta.Y},
			ta,
		}
		if isClear(path, r.obstacles, s, t) {
			break
		}
	}
	return path
}

// trialOffset is the k-th perturbation of the mid run: 0, +1, -1, +2, -2,
// ... lane steps.
func trialOffset(k int, laneStep float64) float64 {
	if k == 0 {
		return 0
	}
	d := math.Ceil(float64(k)/2) * laneStep
	if k%2 == 0 {
		return -d
	}
	return d
}
