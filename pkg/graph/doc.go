// Package graph defines the diagram model shared by every indexflow stage
// and its JSON wire format.
//
// # Architecture
//
// One [Graph] value flows one way through the engine:
//
//	builder.Build   -> nodes (id, kind, payload) and edges (source, target, label)
//	layout.Engine   -> node sizes, positions and attachment sides
//	route.Route     -> edge polylines and label anchors
//
// Each stage clones its input with [Graph.Clone] before annotating it, so a
// graph handed to the next stage is never mutated behind the caller's back.
//
// # Core Types
//
//   - [Node]: a card (resource, skill, selector, mapping group or document root)
//   - [Edge]: a directed data-flow connection with an optional label
//   - [Payload]: display data (title, subtitle, detail lines, style tags)
//   - [Point], [Rect]: geometry
//
// # Parallel Edges
//
// Several edges may connect the same pair of nodes. [Graph.AssignGroups]
// gives each one a stable GroupIndex within its group so routing can fan
// them out into separate lanes.
//
// # Serialization
//
//	{
//	  "nodes": [{"id": "indexer", "kind": "resource", "data": {"title": "docs-indexer"}}],
//	  "edges": [{"id": "e0", "source": "indexer", "target": "index", "group_index": 0, "group_size": 1}]
//	}
//
// [ReadGraph] and [ReadGraphFile] validate what they decode: a dangling edge
// or duplicate node ID is reported as [ErrDanglingEdge] or [ErrDuplicateNode].
package graph
