package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/indexflow/pkg/builder"
	"github.com/matzehuels/indexflow/pkg/cache"
	"github.com/matzehuels/indexflow/pkg/graph"
	"github.com/matzehuels/indexflow/pkg/observability"
	"github.com/matzehuels/indexflow/pkg/resource"
)

// Cache stage names, as reported to observability hooks.
const (
	stageGraph    = "graph"
	stageDiagram  = "diagram"
	stageArtifact = "artifact"
)

// Runner executes the stages with caching. The CLI and the server share it.
//
// The Runner holds no pipeline results; multiple goroutines can use one
// Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner. A nil cache disables caching, a nil keyer
// means the DefaultKeyer and a nil logger means log.Default().
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if c == nil {
		c = cache.NewNullCache()
	}
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{Cache: c, Keyer: keyer, Logger: logger}
}

// Execute runs build, diagram and render.
func (r *Runner) Execute(ctx context.Context, b resource.Bundle, opts Options) (*Result, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	res := &Result{}

	start := time.Now()
	g, hit, err := r.Build(ctx, b, opts)
	if err != nil {
		return nil, fmt.Errorf("build: %w", err)
	}
	res.Graph = g
	res.GraphHash, _ = hashGraph(g)
	res.Stats.BuildTime = time.Since(start)
	res.Stats.NodeCount = len(g.Nodes)
	res.Stats.EdgeCount = len(g.Edges)
	res.CacheInfo.GraphHit = hit
	r.Logger.Info("built graph", "nodes", len(g.Nodes), "edges", len(g.Edges), "cached", hit)

	start = time.Now()
	d, hit, err := r.Diagram(ctx, g, opts)
	if err != nil {
		return nil, fmt.Errorf("diagram: %w", err)
	}
	res.Diagram = d
	res.Stats.DiagramTime = time.Since(start)
	res.CacheInfo.DiagramHit = hit
	r.Logger.Info("computed diagram", "engine", opts.Engine, "direction", opts.Direction, "cached", hit)

	start = time.Now()
	artifacts, hit, err := r.Render(ctx, d, opts)
	if err != nil {
		return nil, err
	}
	res.Artifacts = artifacts
	res.Stats.RenderTime = time.Since(start)
	res.CacheInfo.RenderHit = hit
	r.Logger.Info("rendered outputs", "formats", opts.Formats, "cached", hit)

	return res, nil
}

// Build derives the graph of b. The cache key hashes the decoded bundle,
// so formatting differences in the source file do not matter.
func (r *Runner) Build(ctx context.Context, b resource.Bundle, opts Options) (graph.Graph, bool, error) {
	bundleHash, err := cache.HashJSON(b)
	if err != nil {
		return graph.Graph{}, false, fmt.Errorf("hash bundle: %w", err)
	}
	key := r.Keyer.GraphKey(bundleHash)

	if g, ok := r.cachedGraph(ctx, key, stageGraph, opts.Refresh); ok {
		return g, true, nil
	}

	start := time.Now()
	g := builder.Build(b)
	observability.Pipeline().OnBuild(ctx, len(g.Nodes), len(g.Edges), time.Since(start))

	r.storeGraph(ctx, key, stageGraph, g, cache.GraphTTL)
	return g, false, nil
}

// Diagram lays out and routes g. Diagrams computed with a custom Sizer
// bypass the cache.
func (r *Runner) Diagram(ctx context.Context, g graph.Graph, opts Options) (graph.Graph, bool, error) {
	if err := opts.Validate(); err != nil {
		return graph.Graph{}, false, err
	}
	cacheable := opts.Sizer == nil

	var key string
	if cacheable {
		graphHash, err := hashGraph(g)
		if err != nil {
			return graph.Graph{}, false, fmt.Errorf("hash graph: %w", err)
		}
		key = r.Keyer.DiagramKey(graphHash, opts.DiagramKeyOpts())
		if d, ok := r.cachedGraph(ctx, key, stageDiagram, opts.Refresh); ok {
			return d, true, nil
		}
	}

	start := time.Now()
	d, err := Diagram(g, opts)
	observability.Pipeline().OnLayout(ctx, opts.Engine, len(g.Nodes), time.Since(start), err)
	if err != nil {
		return graph.Graph{}, false, err
	}
	observability.Pipeline().OnRoute(ctx, len(d.Edges), routedEdges(d), time.Since(start))

	if cacheable {
		r.storeGraph(ctx, key, stageDiagram, d, cache.DiagramTTL)
	}
	return d, false, nil
}

// Render produces every requested format. The hit flag is true only when
// all of them came from the cache.
func (r *Runner) Render(ctx context.Context, diagram graph.Graph, opts Options) (map[string][]byte, bool, error) {
	if err := opts.Validate(); err != nil {
		return nil, false, err
	}
	diagramHash, err := hashGraph(diagram)
	if err != nil {
		return nil, false, fmt.Errorf("hash diagram: %w", err)
	}

	artifacts := make(map[string][]byte, len(opts.Formats))
	allHit := true
	for _, format := range opts.Formats {
		key := r.Keyer.ArtifactKey(diagramHash, opts.ArtifactKeyOpts(format))
		if !opts.Refresh {
			if data, ok := r.get(ctx, key, stageArtifact); ok {
				artifacts[format] = data
				continue
			}
		}
		allHit = false

		start := time.Now()
		data, err := Render(ctx, diagram, format, opts)
		observability.Pipeline().OnRender(ctx, format, len(data), time.Since(start), err)
		if err != nil {
			return nil, false, fmt.Errorf("render %s: %w", format, err)
		}
		artifacts[format] = data
		r.set(ctx, key, stageArtifact, data, cache.ArtifactTTL)
	}
	return artifacts, allHit, nil
}

// Close releases the cache.
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// hashGraph hashes the canonical JSON of g, so a graph read back from the
// cache hashes like the one that was stored.
func hashGraph(g graph.Graph) (string, error) {
	data, err := graph.MarshalGraph(g)
	if err != nil {
		return "", err
	}
	return cache.Hash(data), nil
}

func (r *Runner) cachedGraph(ctx context.Context, key, stage string, refresh bool) (graph.Graph, bool) {
	if refresh {
		return graph.Graph{}, false
	}
	data, ok := r.get(ctx, key, stage)
	if !ok {
		return graph.Graph{}, false
	}
	g, err := graph.UnmarshalGraph(data)
	if err != nil {
		r.Logger.Debug("discarding unreadable cache entry", "stage", stage, "err", err)
		return graph.Graph{}, false
	}
	return g, true
}

func (r *Runner) storeGraph(ctx context.Context, key, stage string, g graph.Graph, ttl time.Duration) {
	data, err := graph.MarshalGraph(g)
	if err != nil {
		return
	}
	r.set(ctx, key, stage, data, ttl)
}

// get treats backend errors as misses; a broken cache slows the pipeline
// down but never fails it.
func (r *Runner) get(ctx context.Context, key, stage string) ([]byte, bool) {
	data, hit, err := r.Cache.Get(ctx, key)
	if err != nil {
		r.Logger.Warn("cache read failed", "stage", stage, "err", err)
	}
	if err != nil || !hit {
		observability.Cache().OnCacheMiss(ctx, stage)
		return nil, false
	}
	observability.Cache().OnCacheHit(ctx, stage)
	return data, true
}

func (r *Runner) set(ctx context.Context, key, stage string, data []byte, ttl time.Duration) {
	if err := r.Cache.Set(ctx, key, data, ttl); err != nil {
		r.Logger.Warn("cache write failed", "stage", stage, "err", err)
		return
	}
	observability.Cache().OnCacheSet(ctx, stage, len(data))
}
