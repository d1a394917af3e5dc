// Package render turns routed pipeline diagrams into files.
//
// The stages before rendering produce a [graph.Graph] with positions and
// edge polylines; the subpackages only draw it:
//
//   - [canvas] writes the diagram as SVG, drawing each node with the
//     selection and edit chrome from [chrome].
//   - [nodelink] writes Graphviz DOT and renders it through graphviz, for
//     a quick structural view that ignores the computed geometry.
//
// [ToPDF] and [ToPNG] convert any SVG with the external rsvg-convert tool
// (from librsvg):
//
//	svg := canvas.RenderSVG(g)
//	pdf, err := render.ToPDF(ctx, svg)
//	png, err := render.ToPNG(ctx, svg, 2)
//
// [graph.Graph]: github.com/matzehuels/indexflow/pkg/graph
// [canvas]: github.com/matzehuels/indexflow/pkg/render/canvas
// [chrome]: github.com/matzehuels/indexflow/pkg/render/chrome
// [nodelink]: github.com/matzehuels/indexflow/pkg/render/nodelink
package render
