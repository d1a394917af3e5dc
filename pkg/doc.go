// Package pkg holds the indexflow libraries, which turn the resource
// definitions of a search indexing pipeline into a laid-out, routed diagram.
//
// # Architecture
//
//	ResourceBundle (JSON / YAML / TOML)
//	         ↓
//	    [resource] decode leniently, report dropped sections
//	         ↓
//	    [builder] nodes and edges, producers resolved by [pathexpr]
//	         ↓
//	    [layout] positions and sides ([dag] ranks and orders)
//	         ↓
//	    [route] orthogonal polylines around obstacles
//	         ↓
//	    [render/canvas], [render/nodelink]: SVG, DOT, PDF, PNG
//
// [graph] is the shared data model and its JSON form. [pipeline] runs the
// stages with caching ([cache]) and observability hooks ([observability]);
// [server] exposes it over HTTP. [render/chrome] decorates nodes with
// selection, edit affordances and interaction events.
//
// # Quick Start
//
//	b, issues, err := resource.ReadFile("pipeline.yaml")
//	if err != nil {
//	    return err
//	}
//	for _, is := range issues {
//	    log.Warn("dropped section", "issue", is)
//	}
//
//	g := builder.Build(b)
//	d, err := pipeline.Diagram(g, pipeline.Options{Direction: "top-to-bottom"})
//	if err != nil {
//	    return err
//	}
//	svg := canvas.RenderSVG(d)
//
// Engine stages are pure: the same bundle and options always produce the same
// diagram, and no stage mutates its input graph.
//
// [resource]: github.com/matzehuels/indexflow/pkg/resource
// [builder]: github.com/matzehuels/indexflow/pkg/builder
// [pathexpr]: github.com/matzehuels/indexflow/pkg/pathexpr
// [layout]: github.com/matzehuels/indexflow/pkg/layout
// [dag]: github.com/matzehuels/indexflow/pkg/dag
// [route]: github.com/matzehuels/indexflow/pkg/route
// [render/canvas]: github.com/matzehuels/indexflow/pkg/render/canvas
// [render/nodelink]: github.com/matzehuels/indexflow/pkg/render/nodelink
// [render/chrome]: github.com/matzehuels/indexflow/pkg/render/chrome
// [graph]: github.com/matzehuels/indexflow/pkg/graph
// [pipeline]: github.com/matzehuels/indexflow/pkg/pipeline
// [cache]: github.com/matzehuels/indexflow/pkg/cache
// [observability]: github.com/matzehuels/indexflow/pkg/observability
// [server]: github.com/matzehuels/indexflow/pkg/server
package pkg
