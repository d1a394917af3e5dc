// Package route draws the edges of a laid-out pipeline diagram.
//
// [Route] gives every edge an orthogonal polyline from its source's
// outward side to its target's inward side that avoids the padded
// rectangles of the other nodes, plus a label point on the path's longest
// straight segment. Routing is best effort: when no clear path is found in
// MaxAttempts tries the last candidate is used, so an edge is never left
// without a path because of crowding.
package route
