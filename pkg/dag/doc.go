// Package dag provides the ranked directed graph the layered layout engine
// works on.
//
// # Overview
//
// The layout engine turns each connected part of a pipeline diagram into a
// [DAG], assigns every node to a row (rank), and then searches for a row
// ordering with few edge crossings. This package holds that structure and
// the crossing counters; the [transform] subpackage holds the passes that
// make an arbitrary directed graph ranked and proper.
//
// # Basic Usage
//
//	g := dag.New()
//	g.AddNode(dag.Node{ID: "datasource", Row: 0})
//	g.AddNode(dag.Node{ID: "indexer", Row: 1})
//	g.AddEdge(dag.Edge{From: "datasource", To: "indexer"})
//
// [DAG.Validate] checks that every edge connects consecutive rows and that
// the graph is acyclic, the preconditions of [CountCrossings].
//
// # Determinism
//
// Node iteration follows insertion order everywhere. Layout output depends
// on iteration order, so a map-ordered graph would lay out the same bundle
// differently between runs.
//
// # Node Kinds
//
//   - [NodeKindRegular]: a node of the diagram
//   - [NodeKindVirtual]: a placeholder that carries a long edge through an
//     intermediate rank
//
// # Edge Crossings
//
// [CountCrossings] and [CountLayerCrossings] count inversions with a Fenwick
// tree in O(E log V). [CountPairCrossings] evaluates a single adjacent swap.
//
// [transform]: github.com/matzehuels/indexflow/pkg/dag/transform
package dag
