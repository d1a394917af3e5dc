package graph

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func sample() Graph {
	return Graph{
		Nodes: []Node{
			{ID: "a", Kind: KindResource, Data: Payload{Title: "A", Details: []string{"x"}}},
			{ID: "b", Kind: KindSkill, Data: Payload{Title: "B"}},
		},
		Edges: []Edge{
			{ID: "e0", Source: "a", Target: "b", Label: "x"},
			{ID: "e1", Source: "a", Target: "b", Label: "y"},
			{ID: "e2", Source: "b", Target: "a"},
		},
	}
}

func TestAssignGroups(t *testing.T) {
	g := sample()
	g.AssignGroups()

	want := []struct{ idx, size int }{{0, 2}, {1, 2}, {0, 1}}
	for i, w := range want {
		if g.Edges[i].GroupIndex != w.idx || g.Edges[i].GroupSize != w.size {
			t.Errorf("edge %s: group = (%d, %d), want (%d, %d)",
				g.Edges[i].ID, g.Edges[i].GroupIndex, g.Edges[i].GroupSize, w.idx, w.size)
		}
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Graph)
		wantErr error
	}{
		{"Valid", func(*Graph) {}, nil},
		{"DuplicateNode", func(g *Graph) { g.Nodes = append(g.Nodes, Node{ID: "a"}) }, ErrDuplicateNode},
		{"DanglingSource", func(g *Graph) { g.Edges[0].Source = "zz" }, ErrDanglingEdge},
		{"DanglingTarget", func(g *Graph) { g.Edges[2].Target = "zz" }, ErrDanglingEdge},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := sample()
			tt.mutate(&g)
			err := g.Validate()
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestCloneIsDeep(t *testing.T) {
	g := sample()
	g.Edges[0].Points = []Point{{1, 2}}
	g.Edges[0].LabelPoint = &Point{3, 4}

	c := g.Clone()
	c.Nodes[0].Data.Details[0] = "changed"
	c.Edges[0].Points[0].X = 99
	c.Edges[0].LabelPoint.X = 99

	if g.Nodes[0].Data.Details[0] != "x" {
		t.Error("clone shares details slice")
	}
	if g.Edges[0].Points[0].X != 1 {
		t.Error("clone shares points slice")
	}
	if g.Edges[0].LabelPoint.X != 3 {
		t.Error("clone shares label point")
	}
}

func TestRoundTrip(t *testing.T) {
	g := sample()
	g.AssignGroups()
	g.Nodes[0].X, g.Nodes[0].Width, g.Nodes[0].Height = 20, 240, 120
	g.Edges[0].Points = []Point{{260, 80}, {300, 80}}
	g.Edges[0].LabelPoint = &Point{280, 80}

	data, err := MarshalGraph(g)
	if err != nil {
		t.Fatalf("MarshalGraph: %v", err)
	}
	got, err := UnmarshalGraph(data)
	if err != nil {
		t.Fatalf("UnmarshalGraph: %v", err)
	}
	if diff := cmp.Diff(g, got); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestMarshalEmptyGraph(t *testing.T) {
	data, err := MarshalGraph(Graph{})
	if err != nil {
		t.Fatalf("MarshalGraph: %v", err)
	}
	if !strings.Contains(string(data), `"nodes": []`) || !strings.Contains(string(data), `"edges": []`) {
		t.Errorf("empty graph should serialize empty arrays, got %s", data)
	}
}

func TestReadGraphRejectsDangling(t *testing.T) {
	in := `{"nodes":[{"id":"a","kind":"resource","data":{"title":"A"}}],"edges":[{"id":"e0","source":"a","target":"b"}]}`
	if _, err := ReadGraph(bytes.NewReader([]byte(in))); !errors.Is(err, ErrDanglingEdge) {
		t.Errorf("ReadGraph() = %v, want ErrDanglingEdge", err)
	}
}

func TestGraphFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "graph.json")
	if err := WriteGraphFile(sample(), path); err != nil {
		t.Fatalf("WriteGraphFile: %v", err)
	}
	got, err := ReadGraphFile(path)
	if err != nil {
		t.Fatalf("ReadGraphFile: %v", err)
	}
	if len(got.Nodes) != 2 || len(got.Edges) != 3 {
		t.Errorf("got %d nodes, %d edges; want 2, 3", len(got.Nodes), len(got.Edges))
	}

	if _, err := ReadGraphFile(filepath.Join(t.TempDir(), "missing.json")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("ReadGraphFile(missing) = %v, want os.ErrNotExist", err)
	}
}

func TestBounds(t *testing.T) {
	g := Graph{
		Nodes: []Node{
			{ID: "a", X: 10, Y: 20, Width: 100, Height: 50},
			{ID: "b", X: 200, Y: 0, Width: 50, Height: 50},
		},
		Edges: []Edge{{ID: "e", Source: "a", Target: "b", Points: []Point{{110, 45}, {150, 120}}}},
	}
	want := Rect{MinX: 10, MinY: 0, MaxX: 250, MaxY: 120}
	if got := g.Bounds(); got != want {
		t.Errorf("Bounds() = %+v, want %+v", got, want)
	}
	if got := (Graph{}).Bounds(); got != (Rect{}) {
		t.Errorf("empty Bounds() = %+v, want zero", got)
	}
}

func TestRectOverlaps(t *testing.T) {
	a := Rect{0, 0, 10, 10}
	if !a.Overlaps(Rect{5, 5, 15, 15}) {
		t.Error("expected overlap")
	}
	if a.Overlaps(Rect{10, 0, 20, 10}) {
		t.Error("touching rectangles do not overlap")
	}
	if got := a.Expand(2); got != (Rect{-2, -2, 12, 12}) {
		t.Errorf("Expand(2) = %+v", got)
	}
}
