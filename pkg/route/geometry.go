package route

import (
	"math"

	"github.com/matzehuels/indexflow/pkg/graph"
)

// blocked reports whether the axis-aligned segment a-b passes through the
// interior of r. Segments running along a border, or touching it, are
// clear. Diagonal segments are never produced and never block.
func blocked(a, b graph.Point, r graph.Rect) bool {
	switch {
	case a.Y == b.Y:
		lo, hi := math.Min(a.X, b.X), math.Max(a.X, b.X)
		return a.Y > r.MinY && a.Y < r.MaxY && hi > r.MinX && lo < r.MaxX
	case a.X == b.X:
		lo, hi := math.Min(a.Y, b.Y), math.Max(a.Y, b.Y)
		return a.X > r.MinX && a.X < r.MaxX && hi > r.MinY && lo < r.MaxY
	}
	return false
}

// isClear reports whether no segment of path crosses any obstacle other than
// the ones at the skip indices.
func isClear(path []graph.Point, obstacles []graph.Rect, skipA, skipB int) bool {
	for i := 0; i+1 < len(path); i++ {
		for j, r := range obstacles {
			if j == skipA || j == skipB {
				continue
			}
			if blocked(path[i], path[i+1], r) {
				return false
			}
		}
	}
	return true
}

// labelPoint returns the midpoint of the longest segment of path by
// Manhattan length. The first segment wins ties.
func labelPoint(path []graph.Point) *graph.Point {
	if len(path) == 0 {
		return nil
	}
	if len(path) == 1 {
		p := path[0]
		return &p
	}
	best, bestLen := 0, -1.0
	for i := 0; i+1 < len(path); i++ {
		l := math.Abs(path[i+1].X-path[i].X) + math.Abs(path[i+1].Y-path[i].Y)
		if l > bestLen {
			best, bestLen = i, l
		}
	}
	a, b := path[best], path[best+1]
	return &graph.Point{X: (a.X + b.X) / 2, Y: (a.Y + b.Y) / 2}
}

func transposePoint(p graph.Point) graph.Point { return graph.Point{X: p.Y, Y: p.X} }

func transposeRect(r graph.Rect) graph.Rect {
	return graph.Rect{MinX: r.MinY, MinY: r.MinX, MaxX: r.MaxY, MaxY: r.MaxX}
}
