// Package layout positions the nodes of a pipeline diagram.
//
// # Engines
//
// An [Engine] takes a [graph.Graph] and returns a copy in which every node
// has a size, a top-left position and the sides its edges attach to. Two
// engines are registered:
//
//   - [Layered] (default) is a self-contained layered layout: cycle
//     breaking, longest-path ranks, virtual nodes for long edges,
//     barycenter row ordering and centered rank stacking.
//   - [Graphviz] hands the same problem to graphviz dot and reads the
//     positions back.
//
// Use [New] to pick one by name.
//
// # Sizing
//
// Sizes are fixed before positions. [Prepare] fills in every node that has
// no size using a [Sizer]; [DefaultSizer] derives card sizes from the node
// kind and its number of detail lines. The routing stage receives the same
// Sizer, so obstacles match what was laid out.
//
// # Directions
//
// [LeftToRight] advances ranks along x and attaches edges right-to-left;
// [TopToBottom] advances along y and attaches them bottom-to-top.
package layout
