package pipeline

import (
	"fmt"

	"github.com/matzehuels/indexflow/pkg/graph"
	"github.com/matzehuels/indexflow/pkg/layout"
	"github.com/matzehuels/indexflow/pkg/route"
)

// Diagram sizes, lays out and routes g. opts must be validated.
//
// Sizes are fixed once, before layout, and the same sizer is handed to the
// router, so both stages agree on every node's extent.
func Diagram(g graph.Graph, opts Options) (graph.Graph, error) {
	engine, err := layout.New(opts.Engine)
	if err != nil {
		return graph.Graph{}, err
	}
	lopts := opts.LayoutOptions()
	sized := layout.Prepare(g, lopts.Sizer)

	placed, err := engine.Layout(sized, lopts)
	if err != nil {
		return graph.Graph{}, fmt.Errorf("%s layout: %w", opts.Engine, err)
	}
	return route.Route(placed, opts.RouteOptions()), nil
}

// routedEdges counts edges that received a polyline.
func routedEdges(g graph.Graph) int {
	n := 0
	for _, e := range g.Edges {
		if len(e.Points) > 0 {
			n++
		}
	}
	return n
}
