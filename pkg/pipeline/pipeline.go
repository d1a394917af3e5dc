// Package pipeline runs the diagram stages for the CLI and the HTTP server.
//
// # Architecture
//
// Three stages, each cached by the [Runner]:
//
//  1. Build: derive the graph from a resource bundle
//  2. Diagram: size, lay out and route the graph
//  3. Render: produce SVG, DOT, JSON, PDF or PNG from the routed graph
//
// The stage functions [Diagram] and [Render] are also usable without a
// Runner.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	opts := pipeline.Options{Formats: []string{"svg"}}
//	result, err := runner.Execute(ctx, bundle, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifacts["svg"]
package pipeline

import (
	"time"

	"github.com/matzehuels/indexflow/pkg/graph"
)

// Result contains the outputs of a pipeline run.
type Result struct {
	// Graph is the built, unpositioned graph.
	Graph graph.Graph
	// GraphHash is the content hash of Graph.
	GraphHash string
	// Diagram is Graph laid out and routed.
	Diagram graph.Graph
	// Artifacts holds rendered outputs keyed by format.
	Artifacts map[string][]byte

	Stats     Stats
	CacheInfo CacheInfo
}

// Stats contains timing and size information.
type Stats struct {
	NodeCount   int
	EdgeCount   int
	BuildTime   time.Duration
	DiagramTime time.Duration
	RenderTime  time.Duration
}

// CacheInfo tracks which stages hit the cache.
type CacheInfo struct {
	GraphHit   bool
	DiagramHit bool
	RenderHit  bool // every requested artifact came from the cache
}
