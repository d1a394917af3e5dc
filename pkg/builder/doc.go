// Package builder derives the pipeline diagram from a resource bundle.
//
// # Overview
//
// [Build] turns independently shaped resource descriptors into one directed
// [graph.Graph]: a node per present resource, per non-empty mapping group,
// per skill and per projection selector, plus a document-root node when the
// skillset enriches anything. Edges are either declared (data source to
// indexer to skillset to index) or inferred from path expressions: a skill
// input bound to "/document/pages/*/text" is fed by whichever skill outputs
// the most specific path covering it.
//
// # Determinism
//
// Build is a pure function of its input. Node creation order is fixed
// (data source, indexer, field mappings, output field mappings, skillset,
// index, document root, skills, selectors, aliases, synonym maps) and
// producer ties are broken by declared skill order, so the same bundle
// always yields the same node IDs, edges and labels.
//
// # Failure Semantics
//
// Build never fails and never panics on missing data. An absent resource
// omits its node; a source that matches no producer omits its edge; quoted
// literals never produce edges.
package builder
