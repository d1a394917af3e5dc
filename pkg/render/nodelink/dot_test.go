package nodelink

import (
	"context"
	"strings"
	"testing"

	"github.com/matzehuels/indexflow/pkg/graph"
	"github.com/matzehuels/indexflow/pkg/layout"
)

func pipeline() graph.Graph {
	return graph.Graph{
		Nodes: []graph.Node{
			{ID: "datasource", Kind: graph.KindResource, Data: graph.Payload{Title: "blob", Subtitle: "azureblob", Resource: "datasource"}},
			{ID: "document", Kind: graph.KindDocument, Data: graph.Payload{Title: "/document", Resource: "document", Details: []string{"content"}}},
			{ID: "skill:0", Kind: graph.KindSkill, Data: graph.Payload{Resource: "skill"}},
		},
		Edges: []graph.Edge{
			{ID: "e0", Source: "document", Target: "skill:0", Label: "content"},
			{ID: "e1", Source: "datasource", Target: "document"},
		},
	}
}

func TestToDOT(t *testing.T) {
	dot := ToDOT(pipeline(), Options{})

	for _, want := range []string{
		"rankdir=LR;",
		`"datasource" [label="blob", color="#2563eb"];`,
		`"skill:0" [label="skill:0"`,
		`"document" -> "skill:0" [label="content"];`,
		`"datasource" -> "document";`,
	} {
		if !strings.Contains(dot, want) {
			t.Errorf("DOT missing %q\n%s", want, dot)
		}
	}
	if !strings.Contains(dot, `"document" [label="/document", color="#475569", style="rounded,filled,dashed"`) {
		t.Errorf("document node should be dashed\n%s", dot)
	}
}

func TestToDOTOptions(t *testing.T) {
	dot := ToDOT(pipeline(), Options{Direction: layout.TopToBottom, Detailed: true})
	if !strings.Contains(dot, "rankdir=TB;") {
		t.Error("expected rankdir=TB")
	}
	if !strings.Contains(dot, `label="blob\nazureblob"`) {
		t.Errorf("detailed label missing subtitle\n%s", dot)
	}
	if !strings.Contains(dot, `label="/document\ncontent"`) {
		t.Errorf("detailed label missing details\n%s", dot)
	}
}

func TestRenderSVG(t *testing.T) {
	svg, err := RenderSVG(context.Background(), ToDOT(pipeline(), Options{}))
	if err != nil {
		t.Fatalf("RenderSVG: %v", err)
	}
	s := string(svg)
	if !strings.Contains(s, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 `) {
		t.Errorf("root element not normalized: %.200s", s)
	}
	if !strings.Contains(s, "content") {
		t.Error("edge label missing from SVG")
	}
}

func TestRenderSVGInvalid(t *testing.T) {
	if _, err := RenderSVG(context.Background(), "digraph {"); err == nil {
		t.Error("expected parse error")
	}
}

func TestNormalizeViewBox(t *testing.T) {
	tests := []struct {
		name, in, want string
	}{
		{
			name: "rewrites root",
			in:   `<svg width="100pt" height="50pt" viewBox="0.00 0.00 100.00 50.00"><g/></svg>`,
			want: `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 100.00 50.00" width="100" height="50"><g/></svg>`,
		},
		{
			name: "no viewBox",
			in:   `<svg><g/></svg>`,
			want: `<svg><g/></svg>`,
		},
		{
			name: "zero size",
			in:   `<svg viewBox="0 0 0 10"></svg>`,
			want: `<svg viewBox="0 0 0 10"></svg>`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := string(normalizeViewBox([]byte(tt.in))); got != tt.want {
				t.Errorf("got %s, want %s", got, tt.want)
			}
		})
	}
}
