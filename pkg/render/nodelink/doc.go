// Package nodelink renders pipeline graphs as plain Graphviz node-link
// diagrams.
//
// # Overview
//
// This is the alternative to the card canvas for cases where a quick,
// self-placed diagram is enough: Graphviz decides node positions and draws
// spline edges, so the layout and routing stages are not involved.
//
// # Usage
//
//	dot := nodelink.ToDOT(g, nodelink.Options{Detailed: true})
//	svg, err := nodelink.RenderSVG(ctx, dot)
//
// For PDF or PNG output:
//
//	pdf, err := nodelink.RenderPDF(ctx, dot)
//	png, err := nodelink.RenderPNG(ctx, dot, 2.0)
//
// # DOT Format
//
// [ToDOT] output can be rendered with [RenderSVG] or saved and processed
// with external Graphviz tools. Edge labels carry the field names of the
// data flow; node outline colors follow the resource category.
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz] for in-process SVG
// rendering. PDF and PNG conversion requires librsvg (rsvg-convert).
package nodelink
