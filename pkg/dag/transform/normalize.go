package transform

import "github.com/matzehuels/indexflow/pkg/dag"

// Normalize makes g proper for layered ordering: acyclic, ranked, and with
// every edge spanning exactly one row. It modifies g in place and returns
// it.
func Normalize(g *dag.DAG) *dag.DAG {
	BreakCycles(g)
	AssignLayers(g)
	Subdivide(g)
	return g
}
