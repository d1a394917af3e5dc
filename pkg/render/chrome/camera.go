package chrome

import "github.com/matzehuels/indexflow/pkg/graph"

// Viewport is the visible area of the canvas in screen units.
type Viewport struct {
	Width, Height float64
	// Zoom is the screen units per layout unit. Zero means 1.
	Zoom float64
}

// Camera is a pan and zoom: layout point (x, y) shows at screen point
// (x*Zoom + X, y*Zoom + Y).
type Camera struct {
	X, Y float64
	Zoom float64
}

// Focus returns the camera that centers node id in vp. It reports false
// when the node does not exist.
func Focus(g graph.Graph, id string, vp Viewport) (Camera, bool) {
	n, ok := g.Node(id)
	if !ok {
		return Camera{}, false
	}
	zoom := vp.Zoom
	if zoom <= 0 {
		zoom = 1
	}
	c := n.Center()
	return Camera{
		X:    vp.Width/2 - c.X*zoom,
		Y:    vp.Height/2 - c.Y*zoom,
		Zoom: zoom,
	}, true
}

// Fit returns the camera that shows the whole graph inside vp, never
// zooming in past 1.
func Fit(g graph.Graph, vp Viewport) Camera {
	b := g.Bounds()
	if b.Width() <= 0 || b.Height() <= 0 || vp.Width <= 0 || vp.Height <= 0 {
		return Camera{Zoom: 1}
	}
	zoom := min(1, vp.Width/b.Width(), vp.Height/b.Height())
	return Camera{
		X:    (vp.Width-b.Width()*zoom)/2 - b.MinX*zoom,
		Y:    (vp.Height-b.Height()*zoom)/2 - b.MinY*zoom,
		Zoom: zoom,
	}
}

// Apply maps a layout point to screen space.
func (c Camera) Apply(p graph.Point) graph.Point {
	return graph.Point{X: p.X*c.Zoom + c.X, Y: p.Y*c.Zoom + c.Y}
}
