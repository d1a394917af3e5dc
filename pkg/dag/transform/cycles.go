package transform

import "github.com/matzehuels/indexflow/pkg/dag"

// BreakCycles makes g acyclic and returns the number of edges it changed.
//
// A depth-first search from the sources (then from any node not yet reached,
// both in insertion order) finds back edges. Each back edge is reversed
// rather than dropped, so the two nodes stay connected and the layering
// still sees the dependency. Self-loops carry no rank information and are
// removed.
func BreakCycles(g *dag.DAG) int {
	const (
		white = iota
		gray
		black
	)

	color := make(map[string]int)
	var backEdges [][2]string

	var dfs func(node string)
	dfs = func(node string) {
		color[node] = gray
		for _, child := range g.Children(node) {
			switch color[child] {
			case white:
				dfs(child)
			case gray:
				backEdges = append(backEdges, [2]string{node, child})
			}
		}
		color[node] = black
	}

	for _, n := range g.Sources() {
		if color[n.ID] == white {
			dfs(n.ID)
		}
	}
	for _, n := range g.Nodes() {
		if color[n.ID] == white {
			dfs(n.ID)
		}
	}

	changed := 0
	for _, e := range backEdges {
		if e[0] == e[1] {
			before := g.EdgeCount()
			g.RemoveEdge(e[0], e[1])
			changed += before - g.EdgeCount()
			continue
		}
		changed += g.ReverseEdge(e[0], e[1])
	}
	return changed
}
