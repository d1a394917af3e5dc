package canvas

import (
	"strings"
	"testing"

	"github.com/matzehuels/indexflow/pkg/graph"
	"github.com/matzehuels/indexflow/pkg/render/chrome"
)

func routed() graph.Graph {
	return graph.Graph{
		Nodes: []graph.Node{
			{ID: "datasource", Kind: graph.KindResource, X: 20, Y: 20, Width: 240, Height: 120,
				Data: graph.Payload{Title: "blob <raw>", Subtitle: "azureblob", Resource: "datasource", Editable: true,
					Details: []string{"container: docs", "query: a&b"}}},
			{ID: "indexer", Kind: graph.KindResource, X: 400, Y: 20, Width: 240, Height: 120,
				Data: graph.Payload{Title: "ixr", Resource: "indexer"}},
		},
		Edges: []graph.Edge{
			{ID: "e0", Source: "datasource", Target: "indexer", Label: "content",
				Points:     []graph.Point{{X: 260, Y: 80}, {X: 400, Y: 80}},
				LabelPoint: &graph.Point{X: 330, Y: 80}},
			{ID: "e1", Source: "indexer", Target: "datasource"},
		},
	}
}

func TestRenderSVG(t *testing.T) {
	svg := string(RenderSVG(routed()))

	for _, want := range []string{
		`viewBox="0.0 0.0 660.0 160.0"`,
		`<path class="edge" id="edge-e0" d="M 260.0 80.0 L 400.0 80.0" marker-end="url(#arrow)"/>`,
		`>content</text>`,
		`id="node-datasource" data-id="datasource"`,
		`blob &lt;raw&gt;`,
		`query: a&amp;b`,
		`stroke="#2563eb"`,
		`✎`,
	} {
		if !strings.Contains(svg, want) {
			t.Errorf("SVG missing %q", want)
		}
	}
	if strings.Contains(svg, "edge-e1") {
		t.Error("unrouted edge should be skipped")
	}
	if strings.Contains(svg, `class="ring"`) || strings.Contains(svg, "<script>") {
		t.Error("ring and script should be absent by default")
	}
	if n := strings.Count(svg, "✎"); n != 1 {
		t.Errorf("edit affordances = %d, want 1", n)
	}
}

func TestRenderSVGSelectionAndInteraction(t *testing.T) {
	svg := string(RenderSVG(routed(),
		WithSelection(chrome.Select("indexer")),
		WithPolicy(chrome.Policy{Ring: func(graph.Node) string { return "gold" }}),
		WithInteraction(),
	))

	if n := strings.Count(svg, `class="ring"`); n != 1 {
		t.Errorf("rings = %d, want 1", n)
	}
	if !strings.Contains(svg, `stroke="gold" stroke-width="3"`) {
		t.Error("ring should use the policy color")
	}
	for _, ev := range []chrome.EventType{chrome.NodeClick, chrome.NodeDoubleClick, chrome.PaneClick} {
		if !strings.Contains(svg, "'"+string(ev)+"'") {
			t.Errorf("script does not emit %s", ev)
		}
	}
}

func TestRenderSVGMaxDetails(t *testing.T) {
	g := routed()
	g.Nodes[0].Data.Details = []string{"a", "b", "c"}
	svg := string(RenderSVG(g, WithMaxDetails(1)))
	if !strings.Contains(svg, ">a</text>") || strings.Contains(svg, ">b</text>") {
		t.Error("details not capped")
	}
	if !strings.Contains(svg, "… +2") {
		t.Error("overflow marker missing")
	}
	if len(g.Nodes[0].Data.Details) != 3 {
		t.Error("RenderSVG mutated node details")
	}
}

func TestRenderSVGEmpty(t *testing.T) {
	svg := string(RenderSVG(graph.Graph{}))
	if !strings.HasPrefix(svg, "<svg") || !strings.HasSuffix(svg, "</svg>\n") {
		t.Errorf("empty graph should still render a document, got %q", svg)
	}
}
