// Package canvas draws a routed pipeline diagram as SVG.
//
// Nodes are drawn as cards with title, subtitle and detail lines; the ring
// and edit affordance come from [chrome.Decorate]. Edges are the routed
// polylines with an arrowhead and their label at the label point.
//
//	svg := canvas.RenderSVG(g,
//	    canvas.WithSelection(chrome.Select("index")),
//	    canvas.WithInteraction(),
//	)
//
// [chrome.Decorate]: github.com/matzehuels/indexflow/pkg/render/chrome#Decorate
package canvas
