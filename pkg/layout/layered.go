package layout

import (
	"github.com/matzehuels/indexflow/pkg/dag"
	"github.com/matzehuels/indexflow/pkg/dag/transform"
	"github.com/matzehuels/indexflow/pkg/graph"
)

// Layered is the default engine: a Sugiyama-style layered layout.
//
// Each weakly connected component is ranked by longest path (after
// reversing cycle edges), long edges are carried through intermediate
// ranks by virtual nodes, and rows are ordered by barycenter sweeps. Ranks
// advance along the primary axis by the widest extent of the previous rank
// plus RankSpacing; within a rank nodes stack along the secondary axis with
// NodeSpacing between them, centered on the component's widest rank.
// Components stack along the secondary axis, RankSpacing apart, in the
// order of their first node.
//
// Layered never returns an error.
type Layered struct {
	// Sweeps bounds the barycenter sweeps per component. Zero means
	// DefaultSweeps.
	Sweeps int
}

// Layout implements [Engine].
func (l Layered) Layout(g graph.Graph, opts Options) (graph.Graph, error) {
	opts = opts.normalized()
	out := Prepare(g, opts.Sizer)
	if out.IsEmpty() {
		return out, nil
	}
	sweeps := l.Sweeps
	if sweeps <= 0 {
		sweeps = DefaultSweeps
	}

	idx := out.NodeIndex()
	offset := 0.0
	for _, comp := range components(out, idx) {
		d := componentDAG(out, comp)
		transform.Normalize(d)
		orders := orderRows(d, sweeps)
		offset += place(&out, d, orders, idx, opts, offset) + opts.RankSpacing
	}

	setSides(&out, opts.Direction)
	return out, nil
}

// components groups node indices into weakly connected components. Both
// the components and the nodes inside each follow graph order.
func components(g graph.Graph, idx map[string]int) [][]int {
	parent := make([]int, len(g.Nodes))
	for i := range parent {
		parent[i] = i
	}
	var find func(int) int
	find = func(i int) int {
		for parent[i] != i {
			parent[i] = parent[parent[i]]
			i = parent[i]
		}
		return i
	}
	for _, e := range g.Edges {
		s, okS := idx[e.Source]
		t, okT := idx[e.Target]
		if !okS || !okT {
			continue
		}
		rs, rt := find(s), find(t)
		if rs == rt {
			continue
		}
		// Lower index becomes the root so roots are first nodes.
		if rs < rt {
			parent[rt] = rs
		} else {
			parent[rs] = rt
		}
	}

	var comps [][]int
	slot := make(map[int]int)
	for i := range g.Nodes {
		r := find(i)
		k, ok := slot[r]
		if !ok {
			k = len(comps)
			slot[r] = k
			comps = append(comps, nil)
		}
		comps[k] = append(comps[k], i)
	}
	return comps
}

func componentDAG(g graph.Graph, comp []int) *dag.DAG {
	d := dag.New()
	in := make(map[string]bool, len(comp))
	for _, i := range comp {
		n := g.Nodes[i]
		in[n.ID] = true
		_ = d.AddNode(dag.Node{ID: n.ID, Width: n.Width, Height: n.Height})
	}
	for _, e := range g.Edges {
		if e.Source == e.Target || !in[e.Source] || !in[e.Target] {
			continue
		}
		_ = d.AddEdge(dag.Edge{From: e.Source, To: e.Target})
	}
	return d
}

// place assigns coordinates to one component whose secondary-axis band
// starts at offset. It returns the band's extent.
func place(g *graph.Graph, d *dag.DAG, orders map[int][]string, idx map[string]int, opts Options, offset float64) float64 {
	horizontal := opts.Direction.Horizontal()
	extents := func(n graph.Node) (primary, secondary float64) {
		if horizontal {
			return n.Width, n.Height
		}
		return n.Height, n.Width
	}

	rows := d.RowIDs()
	ranks := make([][]int, len(rows))
	rankDepth := make([]float64, len(rows))
	rankBreadth := make([]float64, len(rows))
	band := 0.0
	for r, row := range rows {
		for _, id := range orders[row] {
			if n, _ := d.Node(id); n.IsVirtual() {
				continue
			}
			i := idx[id]
			p, s := extents(g.Nodes[i])
			if len(ranks[r]) > 0 {
				rankBreadth[r] += opts.NodeSpacing
			}
			ranks[r] = append(ranks[r], i)
			rankDepth[r] = max(rankDepth[r], p)
			rankBreadth[r] += s
		}
		band = max(band, rankBreadth[r])
	}

	primary := opts.Margin
	for r := range rows {
		secondary := opts.Margin + offset + (band-rankBreadth[r])/2
		for _, i := range ranks[r] {
			n := &g.Nodes[i]
			p, s := extents(*n)
			at := primary + (rankDepth[r]-p)/2
			if horizontal {
				n.X, n.Y = at, secondary
			} else {
				n.X, n.Y = secondary, at
			}
			secondary += s + opts.NodeSpacing
		}
		primary += rankDepth[r] + opts.RankSpacing
	}
	return band
}
