package builder

import (
	"fmt"

	"github.com/matzehuels/indexflow/pkg/graph"
	"github.com/matzehuels/indexflow/pkg/pathexpr"
	"github.com/matzehuels/indexflow/pkg/resource"
)

// Node IDs. Skill and selector IDs carry their declared index, alias and
// synonym map IDs carry the resource name.
const (
	IDDataSource          = "datasource"
	IDIndexer             = "indexer"
	IDFieldMappings       = "fieldmappings"
	IDOutputFieldMappings = "outputfieldmappings"
	IDSkillset            = "skillset"
	IDIndex               = "index"
	IDDocument            = "document"
)

// SkillID returns the node ID of the i-th declared skill.
func SkillID(i int) string { return fmt.Sprintf("skill:%d", i) }

// SelectorID returns the node ID of the i-th declared projection selector.
func SelectorID(i int) string { return fmt.Sprintf("selector:%d", i) }

// AliasID returns the node ID of an alias.
func AliasID(name string) string { return "alias:" + name }

// SynonymMapID returns the node ID of a synonym map.
func SynonymMapID(name string) string { return "synonymmap:" + name }

// Options configures graph construction.
type Options struct {
	// Editable decides the Editable flag of each node payload.
	// Defaults to DefaultEditable.
	Editable func(graph.Node) bool
}

// DefaultEditable marks resource cards and skills as editable. Derived
// nodes (mapping groups, selectors, the document root) are not.
func DefaultEditable(n graph.Node) bool {
	return n.Kind == graph.KindResource || n.Kind == graph.KindSkill
}

// Build derives the pipeline diagram from b with default options.
func Build(b resource.Bundle) graph.Graph {
	return BuildWith(b, Options{})
}

// BuildWith derives the pipeline diagram from b.
//
// Construction runs in two phases. All nodes are created first, so the
// edge phase resolves producers against a complete ID index and can never
// reference a node that does not exist. Missing or malformed resource
// fields only ever omit nodes and edges; BuildWith does not fail.
func BuildWith(b resource.Bundle, opts Options) graph.Graph {
	if opts.Editable == nil {
		opts.Editable = DefaultEditable
	}
	bld := &builder{
		bundle: b,
		ids:    make(map[string]bool),
		edges:  make(map[edgeKey]bool),
	}
	bld.collectNodes()
	bld.resolveEdges()

	g := graph.Graph{Nodes: bld.nodes, Edges: bld.out}
	for i := range g.Nodes {
		g.Nodes[i].Data.Editable = opts.Editable(g.Nodes[i])
	}
	g.AssignGroups()
	return g
}

type edgeKey struct {
	source, target, label string
}

type builder struct {
	bundle resource.Bundle

	nodes []graph.Node
	ids   map[string]bool

	out   []graph.Edge
	edges map[edgeKey]bool

	// Skill outputs, registered in declared skill order.
	producers pathexpr.Registry
	// Selectors kept in phase one, keyed by node ID order.
	selectors []selectorRef
	// Targets of the indexer field mappings, in declared order.
	mappedFields []string
}

type selectorRef struct {
	id  string
	sel resource.Selector
}

func (b *builder) addNode(n graph.Node) {
	if b.ids[n.ID] {
		return
	}
	b.ids[n.ID] = true
	b.nodes = append(b.nodes, n)
}

func (b *builder) has(id string) bool { return b.ids[id] }

// connect adds source -> target once per label. Edges touching a node that
// was not created are skipped.
func (b *builder) connect(source, target, label string) bool {
	if !b.ids[source] || !b.ids[target] {
		return false
	}
	k := edgeKey{source, target, label}
	if b.edges[k] {
		return true
	}
	b.edges[k] = true
	b.out = append(b.out, graph.Edge{
		ID:     fmt.Sprintf("e%d", len(b.out)),
		Source: source,
		Target: target,
		Label:  label,
	})
	return true
}
