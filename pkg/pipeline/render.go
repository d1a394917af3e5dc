package pipeline

import (
	"context"
	"fmt"

	"github.com/matzehuels/indexflow/pkg/graph"
	"github.com/matzehuels/indexflow/pkg/render"
	"github.com/matzehuels/indexflow/pkg/render/canvas"
	"github.com/matzehuels/indexflow/pkg/render/chrome"
	"github.com/matzehuels/indexflow/pkg/render/nodelink"
)

// Render produces one artifact from a routed diagram. opts must be
// validated.
func Render(ctx context.Context, diagram graph.Graph, format string, opts Options) ([]byte, error) {
	switch format {
	case FormatJSON:
		return graph.MarshalGraph(diagram)
	case FormatDOT:
		return []byte(nodelink.ToDOT(diagram, dotOptions(opts))), nil
	case FormatSVG:
		return renderSVG(ctx, diagram, opts)
	case FormatPDF:
		svg, err := renderSVG(ctx, diagram, opts)
		if err != nil {
			return nil, err
		}
		return render.ToPDF(ctx, svg)
	case FormatPNG:
		svg, err := renderSVG(ctx, diagram, opts)
		if err != nil {
			return nil, err
		}
		return render.ToPNG(ctx, svg, opts.Scale)
	}
	return nil, fmt.Errorf("unsupported format: %s", format)
}

// RenderAll renders every format in opts.Formats.
func RenderAll(ctx context.Context, diagram graph.Graph, opts Options) (map[string][]byte, error) {
	artifacts := make(map[string][]byte, len(opts.Formats))
	for _, format := range opts.Formats {
		data, err := Render(ctx, diagram, format, opts)
		if err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		artifacts[format] = data
	}
	return artifacts, nil
}

func renderSVG(ctx context.Context, diagram graph.Graph, opts Options) ([]byte, error) {
	if opts.Style == StyleNodelink {
		return nodelink.RenderSVG(ctx, nodelink.ToDOT(diagram, dotOptions(opts)))
	}
	copts := []canvas.Option{canvas.WithSelection(chrome.Select(opts.Selection...))}
	if opts.Interactive {
		copts = append(copts, canvas.WithInteraction())
	}
	return canvas.RenderSVG(diagram, copts...), nil
}

func dotOptions(opts Options) nodelink.Options {
	d := opts.LayoutOptions().Direction
	return nodelink.Options{Direction: d, Detailed: opts.Detailed}
}
