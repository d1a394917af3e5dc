package layout

import (
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/matzehuels/indexflow/pkg/graph"
)

func chain(ids ...string) graph.Graph {
	var g graph.Graph
	for _, id := range ids {
		g.Nodes = append(g.Nodes, graph.Node{ID: id, Kind: graph.KindResource})
	}
	for i := 0; i+1 < len(ids); i++ {
		g.Edges = append(g.Edges, graph.Edge{ID: fmt.Sprintf("e%d", i), Source: ids[i], Target: ids[i+1]})
	}
	return g
}

func mustLayout(t *testing.T, e Engine, g graph.Graph, opts Options) graph.Graph {
	t.Helper()
	out, err := e.Layout(g, opts)
	if err != nil {
		t.Fatalf("Layout() error = %v", err)
	}
	return out
}

func assertNoOverlap(t *testing.T, g graph.Graph) {
	t.Helper()
	for i := range g.Nodes {
		for j := i + 1; j < len(g.Nodes); j++ {
			if g.Nodes[i].Bounds().Overlaps(g.Nodes[j].Bounds()) {
				t.Errorf("%s %+v overlaps %s %+v", g.Nodes[i].ID, g.Nodes[i].Bounds(), g.Nodes[j].ID, g.Nodes[j].Bounds())
			}
		}
	}
}

type pos struct{ X, Y float64 }

func positions(g graph.Graph) map[string]pos {
	m := make(map[string]pos, len(g.Nodes))
	for _, n := range g.Nodes {
		m[n.ID] = pos{n.X, n.Y}
	}
	return m
}

func TestDefaultSizer(t *testing.T) {
	details := func(n int) []string { return make([]string, n) }
	tests := []struct {
		name string
		node graph.Node
		want Size
	}{
		{"resource", graph.Node{Kind: graph.KindResource, Data: graph.Payload{Details: details(9)}}, Size{240, 120}},
		{"skill short", graph.Node{Kind: graph.KindSkill, Data: graph.Payload{Details: details(2)}}, Size{260, 120}},
		{"skill tall", graph.Node{Kind: graph.KindSkill, Data: graph.Payload{Details: details(5)}}, Size{260, 154}},
		{"selector empty", graph.Node{Kind: graph.KindSelector}, Size{240, 96}},
		{"selector tall", graph.Node{Kind: graph.KindSelector, Data: graph.Payload{Details: details(3)}}, Size{240, 118}},
		{"mapping capped", graph.Node{Kind: graph.KindMapping, Data: graph.Payload{Details: details(20)}}, Size{220, 208}},
		{"document", graph.Node{Kind: graph.KindDocument}, Size{180, 72}},
		{"unknown", graph.Node{Kind: "widget"}, Size{240, 120}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DefaultSizer(tt.node); got != tt.want {
				t.Errorf("DefaultSizer() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestPrepare(t *testing.T) {
	g := graph.Graph{Nodes: []graph.Node{
		{ID: "fixed", Kind: graph.KindSkill, Width: 10, Height: 20},
		{ID: "sized", Kind: graph.KindDocument},
		{ID: "broken", Kind: graph.KindSkill},
	}}
	sizer := func(n graph.Node) Size {
		if n.ID == "broken" {
			return Size{-1, 0}
		}
		return DefaultSizer(n)
	}

	out := Prepare(g, sizer)
	want := map[string]Size{"fixed": {10, 20}, "sized": {180, 72}, "broken": {240, 120}}
	for _, n := range out.Nodes {
		if got := (Size{n.Width, n.Height}); got != want[n.ID] {
			t.Errorf("%s size = %+v, want %+v", n.ID, got, want[n.ID])
		}
	}
	if g.Nodes[1].Width != 0 {
		t.Error("Prepare mutated its input")
	}
}

func TestLayeredChainLeftToRight(t *testing.T) {
	out := mustLayout(t, Layered{}, chain("a", "b", "c"), DefaultOptions())

	want := map[string]pos{"a": {20, 20}, "b": {400, 20}, "c": {780, 20}}
	if diff := cmp.Diff(want, positions(out)); diff != "" {
		t.Errorf("positions (-want +got):\n%s", diff)
	}
	for _, n := range out.Nodes {
		if n.SourceSide != graph.SideRight || n.TargetSide != graph.SideLeft {
			t.Errorf("%s sides = %s/%s, want right/left", n.ID, n.SourceSide, n.TargetSide)
		}
	}
}

func TestLayeredChainTopToBottom(t *testing.T) {
	opts := DefaultOptions()
	opts.Direction = TopToBottom
	out := mustLayout(t, Layered{}, chain("a", "b", "c"), opts)

	want := map[string]pos{"a": {20, 20}, "b": {20, 280}, "c": {20, 540}}
	if diff := cmp.Diff(want, positions(out)); diff != "" {
		t.Errorf("positions (-want +got):\n%s", diff)
	}
	for _, n := range out.Nodes {
		if n.SourceSide != graph.SideBottom || n.TargetSide != graph.SideTop {
			t.Errorf("%s sides = %s/%s, want bottom/top", n.ID, n.SourceSide, n.TargetSide)
		}
	}
}

func TestLayeredFanOutIsCentered(t *testing.T) {
	g := chain("a", "b")
	g.Nodes = append(g.Nodes, graph.Node{ID: "c", Kind: graph.KindResource})
	g.Edges = append(g.Edges, graph.Edge{ID: "e9", Source: "a", Target: "c"})

	out := mustLayout(t, Layered{}, g, DefaultOptions())
	want := map[string]pos{"a": {20, 110}, "b": {400, 20}, "c": {400, 200}}
	if diff := cmp.Diff(want, positions(out)); diff != "" {
		t.Errorf("positions (-want +got):\n%s", diff)
	}
}

func TestLayeredComponentsStack(t *testing.T) {
	g := graph.Graph{Nodes: []graph.Node{
		{ID: "alone", Kind: graph.KindResource},
		{ID: "x", Kind: graph.KindResource},
		{ID: "y", Kind: graph.KindResource},
	}, Edges: []graph.Edge{{ID: "e0", Source: "x", Target: "y"}}}

	out := mustLayout(t, Layered{}, g, DefaultOptions())
	want := map[string]pos{"alone": {20, 20}, "x": {20, 280}, "y": {400, 280}}
	if diff := cmp.Diff(want, positions(out)); diff != "" {
		t.Errorf("positions (-want +got):\n%s", diff)
	}
	assertNoOverlap(t, out)
}

func TestLayeredReducesCrossings(t *testing.T) {
	g := graph.Graph{Nodes: []graph.Node{
		{ID: "a", Kind: graph.KindResource},
		{ID: "b", Kind: graph.KindResource},
		{ID: "x", Kind: graph.KindResource},
		{ID: "y", Kind: graph.KindResource},
		{ID: "root", Kind: graph.KindResource},
	}, Edges: []graph.Edge{
		{ID: "e0", Source: "root", Target: "a"},
		{ID: "e1", Source: "root", Target: "b"},
		{ID: "e2", Source: "a", Target: "y"},
		{ID: "e3", Source: "b", Target: "x"},
	}}

	out := mustLayout(t, Layered{}, g, DefaultOptions())
	p := positions(out)
	if (p["a"].Y < p["b"].Y) != (p["y"].Y < p["x"].Y) {
		t.Errorf("edges a->y and b->x cross: %v", p)
	}
}

func TestLayeredCycle(t *testing.T) {
	g := chain("a", "b", "c")
	g.Edges = append(g.Edges, graph.Edge{ID: "back", Source: "c", Target: "a"})

	out := mustLayout(t, Layered{}, g, DefaultOptions())
	p := positions(out)
	if !(p["a"].X < p["b"].X && p["b"].X < p["c"].X) {
		t.Errorf("cycle not ranked in chain order: %v", p)
	}
}

func TestLayeredKeepsFixedSizes(t *testing.T) {
	g := chain("a", "b")
	g.Nodes[0].Width, g.Nodes[0].Height = 50, 30

	out := mustLayout(t, Layered{}, g, DefaultOptions())
	if out.Nodes[0].Width != 50 || out.Nodes[0].Height != 30 {
		t.Errorf("fixed size changed to %vx%v", out.Nodes[0].Width, out.Nodes[0].Height)
	}
	// b starts one rank later: the widest node of rank 0 is a (50) plus spacing.
	if got := out.Nodes[1].X; got != 20+50+140 {
		t.Errorf("b.X = %v, want %v", got, 20+50+140)
	}
}

func TestLayeredDoesNotMutateInput(t *testing.T) {
	g := chain("a", "b")
	before := g.Clone()
	_ = mustLayout(t, Layered{}, g, DefaultOptions())
	if diff := cmp.Diff(before, g); diff != "" {
		t.Errorf("input mutated (-before +after):\n%s", diff)
	}
}

func TestLayeredEmpty(t *testing.T) {
	out := mustLayout(t, Layered{}, graph.Graph{}, DefaultOptions())
	if !out.IsEmpty() {
		t.Errorf("Layout(empty) = %+v", out)
	}
}

func TestLayeredDeterministicAndDisjoint(t *testing.T) {
	g := graph.Graph{}
	for i := range 12 {
		kind := graph.KindSkill
		if i%3 == 0 {
			kind = graph.KindMapping
		}
		g.Nodes = append(g.Nodes, graph.Node{ID: fmt.Sprintf("n%d", i), Kind: kind,
			Data: graph.Payload{Details: make([]string, i%5)}})
	}
	for i, e := range [][2]int{{0, 1}, {0, 2}, {1, 3}, {2, 3}, {3, 4}, {0, 4}, {5, 6}, {6, 7}, {7, 5}, {8, 9}, {2, 9}, {10, 4}} {
		g.Edges = append(g.Edges, graph.Edge{ID: fmt.Sprintf("e%d", i),
			Source: fmt.Sprintf("n%d", e[0]), Target: fmt.Sprintf("n%d", e[1])})
	}

	for _, dir := range Directions {
		opts := DefaultOptions()
		opts.Direction = dir
		first := mustLayout(t, Layered{}, g, opts)
		second := mustLayout(t, Layered{}, g, opts)
		if diff := cmp.Diff(first, second); diff != "" {
			t.Errorf("%s: layouts differ:\n%s", dir, diff)
		}
		assertNoOverlap(t, first)
	}
}

func TestParseDirection(t *testing.T) {
	tests := []struct {
		in      string
		want    Direction
		wantErr bool
	}{
		{"", LeftToRight, false},
		{"LR", LeftToRight, false},
		{"left-to-right", LeftToRight, false},
		{"tb", TopToBottom, false},
		{"top-to-bottom", TopToBottom, false},
		{"diagonal", "", true},
	}
	for _, tt := range tests {
		got, err := ParseDirection(tt.in)
		if (err != nil) != tt.wantErr || got != tt.want {
			t.Errorf("ParseDirection(%q) = %q, %v", tt.in, got, err)
		}
	}
}

func TestNew(t *testing.T) {
	for _, name := range []string{"", EngineLayered, EngineGraphviz} {
		if _, err := New(name); err != nil {
			t.Errorf("New(%q) error = %v", name, err)
		}
	}
	if _, err := New("force"); err == nil {
		t.Error("New(force) should fail")
	}
}
