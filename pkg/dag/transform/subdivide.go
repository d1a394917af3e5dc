package transform

import (
	"fmt"

	"github.com/matzehuels/indexflow/pkg/dag"
)

// Subdivide replaces every edge spanning more than one row with a chain of
// single-row edges through [dag.NodeKindVirtual] nodes:
//
//	Before: datasource (row 0) → index (row 3)
//	After:  datasource → v1 → v2 → index
//
// Virtual nodes are zero-size, carry the edge source as MasterID and are
// named "<from>><to>#<row>" (with a numeric suffix on collision). Chain
// edges inherit the Reversed flag of the edge they replace.
func Subdivide(g *dag.DAG) {
	gen := newIDGen(g.Nodes())

	var long []dag.Edge
	for _, e := range g.Edges() {
		src, srcOK := g.Node(e.From)
		dst, dstOK := g.Node(e.To)
		if srcOK && dstOK && dst.Row > src.Row+1 {
			long = append(long, e)
		}
	}

	for _, e := range long {
		g.RemoveEdge(e.From, e.To)
	}
	for _, e := range long {
		src, _ := g.Node(e.From)
		dst, _ := g.Node(e.To)
		prev := src.ID
		for row := src.Row + 1; row < dst.Row; row++ {
			id := gen.next(fmt.Sprintf("%s>%s", e.From, e.To), row)
			mustAdd(g.AddNode(dag.Node{ID: id, Row: row, Kind: dag.NodeKindVirtual, MasterID: src.ID}))
			mustAdd(g.AddEdge(dag.Edge{From: prev, To: id, Reversed: e.Reversed}))
			prev = id
		}
		mustAdd(g.AddEdge(dag.Edge{From: prev, To: dst.ID, Reversed: e.Reversed}))
	}
}

// mustAdd panics on errors that can only come from a broken id generator.
func mustAdd(err error) {
	if err != nil {
		panic(err)
	}
}

type idGen struct {
	used map[string]struct{}
}

func newIDGen(nodes []*dag.Node) *idGen {
	m := make(map[string]struct{}, len(nodes)*2)
	for _, n := range nodes {
		m[n.ID] = struct{}{}
	}
	return &idGen{used: m}
}

func (gen *idGen) next(base string, row int) string {
	prefix := fmt.Sprintf("%s#%d", base, row)
	id := prefix
	for i := 1; ; i++ {
		if _, exists := gen.used[id]; !exists {
			gen.used[id] = struct{}{}
			return id
		}
		id = fmt.Sprintf("%s__%d", prefix, i)
	}
}
