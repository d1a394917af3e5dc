// Package transform prepares a [dag.DAG] for layered ordering.
//
// The passes run in a fixed order, which [Normalize] applies:
//
//   - [BreakCycles] reverses the back edges found by a depth-first search,
//     so pipelines that loop (a skill feeding an earlier one through the
//     document) still get a rank order.
//   - [AssignLayers] puts each node on the row of its longest incoming path.
//   - [Subdivide] turns edges spanning several rows into chains of virtual
//     nodes so crossings can be counted row by row.
//
// All passes iterate in insertion order and are deterministic.
package transform
