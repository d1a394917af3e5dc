// Package chrome holds the interaction state drawn around diagram nodes:
// the selection ring, the edit affordance and camera focus.
//
// Nothing here looks at graph structure. [Decorate] pairs each node's ID,
// kind and raw payload with its chrome so a renderer can draw it, [Focus]
// computes the camera that centers a node, and [Handlers] lets the host
// attach callbacks keyed by node ID.
package chrome
