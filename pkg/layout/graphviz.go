package layout

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/indexflow/pkg/graph"
)

// pointsPerInch converts between graphviz inches and layout units.
const pointsPerInch = 72

// plainFormat is graphviz's line-oriented layout dump.
const plainFormat graphviz.Format = "plain"

// Graphviz lays out through the graphviz dot engine.
//
// Nodes are passed to dot with their sizes fixed, and positions are read
// back from dot's plain output, converted from inches with the y axis
// flipped, and shifted so the drawing starts at Margin.
type Graphviz struct{}

// Layout implements [Engine].
func (Graphviz) Layout(g graph.Graph, opts Options) (graph.Graph, error) {
	opts = opts.normalized()
	out := Prepare(g, opts.Sizer)
	if out.IsEmpty() {
		return out, nil
	}

	plain, err := runDot(ToDOT(out, opts))
	if err != nil {
		return graph.Graph{}, err
	}
	centers, height, err := parsePlain(plain)
	if err != nil {
		return graph.Graph{}, err
	}

	minX, minY := math.Inf(1), math.Inf(1)
	for i := range out.Nodes {
		c, ok := centers[dotID(i)]
		if !ok {
			return graph.Graph{}, fmt.Errorf("graphviz: node %s missing from layout", out.Nodes[i].ID)
		}
		n := &out.Nodes[i]
		n.X = c.X - n.Width/2
		n.Y = (height - c.Y) - n.Height/2
		minX, minY = min(minX, n.X), min(minY, n.Y)
	}
	for i := range out.Nodes {
		out.Nodes[i].X += opts.Margin - minX
		out.Nodes[i].Y += opts.Margin - minY
	}

	setSides(&out, opts.Direction)
	return out, nil
}

// ToDOT writes g as a dot digraph with fixed-size, label-free boxes. Node
// i is named "n<i>" so arbitrary IDs never need escaping.
func ToDOT(g graph.Graph, opts Options) string {
	opts = opts.normalized()
	rankdir := "LR"
	if !opts.Direction.Horizontal() {
		rankdir = "TB"
	}
	idx := g.NodeIndex()

	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	fmt.Fprintf(&buf, "  rankdir=%s;\n", rankdir)
	fmt.Fprintf(&buf, "  nodesep=%s;\n", inches(opts.NodeSpacing))
	fmt.Fprintf(&buf, "  ranksep=%s;\n", inches(opts.RankSpacing))
	buf.WriteString("  node [shape=box, fixedsize=true, label=\"\"];\n\n")

	for i, n := range g.Nodes {
		fmt.Fprintf(&buf, "  %s [width=%s, height=%s];\n", dotID(i), inches(n.Width), inches(n.Height))
	}
	buf.WriteString("\n")
	for _, e := range g.Edges {
		s, okS := idx[e.Source]
		t, okT := idx[e.Target]
		if !okS || !okT || s == t {
			continue
		}
		fmt.Fprintf(&buf, "  %s -> %s;\n", dotID(s), dotID(t))
	}
	buf.WriteString("}\n")
	return buf.String()
}

func dotID(i int) string { return "n" + strconv.Itoa(i) }

func inches(v float64) string {
	return strconv.FormatFloat(v/pointsPerInch, 'f', 4, 64)
}

func runDot(dot string) ([]byte, error) {
	ctx := context.Background()
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, plainFormat, &buf); err != nil {
		return nil, fmt.Errorf("graphviz layout: %w", err)
	}
	return buf.Bytes(), nil
}

// parsePlain reads node centers (in layout units, y up) and the drawing
// height from graphviz plain output:
//
//	graph <scale> <width> <height>
//	node <name> <x> <y> <width> <height> ...
//	edge ...
//	stop
func parsePlain(data []byte) (map[string]graph.Point, float64, error) {
	centers := make(map[string]graph.Point)
	height := 0.0
	sc := bufio.NewScanner(bytes.NewReader(data))
	for sc.Scan() {
		f := strings.Fields(sc.Text())
		if len(f) == 0 {
			continue
		}
		switch f[0] {
		case "graph":
			if len(f) < 4 {
				return nil, 0, fmt.Errorf("graphviz: malformed graph line %q", sc.Text())
			}
			h, err := strconv.ParseFloat(f[3], 64)
			if err != nil {
				return nil, 0, fmt.Errorf("graphviz: graph height: %w", err)
			}
			height = h * pointsPerInch
		case "node":
			if len(f) < 4 {
				return nil, 0, fmt.Errorf("graphviz: malformed node line %q", sc.Text())
			}
			x, errX := strconv.ParseFloat(f[2], 64)
			y, errY := strconv.ParseFloat(f[3], 64)
			if errX != nil || errY != nil {
				return nil, 0, fmt.Errorf("graphviz: bad position in %q", sc.Text())
			}
			centers[strings.Trim(f[1], `"`)] = graph.Point{X: x * pointsPerInch, Y: y * pointsPerInch}
		case "stop":
			return centers, height, nil
		}
	}
	if err := sc.Err(); err != nil {
		return nil, 0, fmt.Errorf("graphviz: read plain output: %w", err)
	}
	return centers, height, nil
}
