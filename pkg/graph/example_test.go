package graph_test

import (
	"fmt"

	"github.com/matzehuels/indexflow/pkg/graph"
)

func ExampleGraph_AssignGroups() {
	g := graph.Graph{
		Nodes: []graph.Node{{ID: "ocr"}, {ID: "split"}},
		Edges: []graph.Edge{
			{ID: "e0", Source: "ocr", Target: "split", Label: "text"},
			{ID: "e1", Source: "ocr", Target: "split", Label: "layoutText"},
		},
	}
	g.AssignGroups()
	for _, e := range g.Edges {
		fmt.Printf("%s: %d of %d\n", e.Label, e.GroupIndex+1, e.GroupSize)
	}
	// Output:
	// text: 1 of 2
	// layoutText: 2 of 2
}

func ExampleGraph_Validate() {
	g := graph.Graph{
		Nodes: []graph.Node{{ID: "indexer"}},
		Edges: []graph.Edge{{ID: "e0", Source: "indexer", Target: "index"}},
	}
	fmt.Println(g.Validate())
	// Output:
	// edge references unknown node: index (target of e0)
}
