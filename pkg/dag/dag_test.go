package dag

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestAddNodeErrors(t *testing.T) {
	g := New()
	if err := g.AddNode(Node{}); !errors.Is(err, ErrInvalidNodeID) {
		t.Errorf("AddNode(empty) = %v, want ErrInvalidNodeID", err)
	}
	if err := g.AddNode(Node{ID: "a"}); err != nil {
		t.Fatalf("AddNode(a) = %v", err)
	}
	if err := g.AddNode(Node{ID: "a"}); !errors.Is(err, ErrDuplicateNodeID) {
		t.Errorf("AddNode(a) again = %v, want ErrDuplicateNodeID", err)
	}
}

func TestAddEdgeErrors(t *testing.T) {
	g := New()
	_ = g.AddNode(Node{ID: "a"})
	if err := g.AddEdge(Edge{From: "x", To: "a"}); !errors.Is(err, ErrUnknownSourceNode) {
		t.Errorf("AddEdge(x->a) = %v, want ErrUnknownSourceNode", err)
	}
	if err := g.AddEdge(Edge{From: "a", To: "x"}); !errors.Is(err, ErrUnknownTargetNode) {
		t.Errorf("AddEdge(a->x) = %v, want ErrUnknownTargetNode", err)
	}
}

func TestNodesKeepInsertionOrder(t *testing.T) {
	ids := []string{"m", "c", "x", "a", "q", "b"}
	g := New()
	for _, id := range ids {
		_ = g.AddNode(Node{ID: id})
	}
	for range 5 {
		if diff := cmp.Diff(ids, NodeIDs(g.Nodes())); diff != "" {
			t.Fatalf("Nodes() order (-want +got):\n%s", diff)
		}
	}

	g.SetRows(map[string]int{"c": 1, "a": 1, "b": 2})
	if diff := cmp.Diff([]string{"m", "x", "q"}, NodeIDs(g.NodesInRow(0))); diff != "" {
		t.Errorf("row 0 (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"c", "a"}, NodeIDs(g.NodesInRow(1))); diff != "" {
		t.Errorf("row 1 (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]int{0, 1, 2}, g.RowIDs()); diff != "" {
		t.Errorf("RowIDs (-want +got):\n%s", diff)
	}
	if g.MaxRow() != 2 {
		t.Errorf("MaxRow() = %d, want 2", g.MaxRow())
	}
}

func TestReverseEdge(t *testing.T) {
	g := New()
	_ = g.AddNode(Node{ID: "a"})
	_ = g.AddNode(Node{ID: "b"})
	_ = g.AddEdge(Edge{From: "a", To: "b"})
	_ = g.AddEdge(Edge{From: "a", To: "b"})

	if n := g.ReverseEdge("a", "b"); n != 2 {
		t.Fatalf("ReverseEdge() = %d, want 2", n)
	}
	want := []Edge{
		{From: "b", To: "a", Reversed: true},
		{From: "b", To: "a", Reversed: true},
	}
	if diff := cmp.Diff(want, g.Edges()); diff != "" {
		t.Errorf("edges (-want +got):\n%s", diff)
	}
	if len(g.Children("a")) != 0 || len(g.Children("b")) != 2 {
		t.Errorf("adjacency not updated: a=%v b=%v", g.Children("a"), g.Children("b"))
	}
	if n := g.ReverseEdge("a", "b"); n != 0 {
		t.Errorf("second ReverseEdge() = %d, want 0", n)
	}
}

func TestSourcesAndSinks(t *testing.T) {
	g := New()
	for _, id := range []string{"a", "b", "c", "d"} {
		_ = g.AddNode(Node{ID: id})
	}
	_ = g.AddEdge(Edge{From: "a", To: "c"})
	_ = g.AddEdge(Edge{From: "b", To: "c"})

	if diff := cmp.Diff([]string{"a", "b", "d"}, NodeIDs(g.Sources())); diff != "" {
		t.Errorf("Sources (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"c", "d"}, NodeIDs(g.Sinks())); diff != "" {
		t.Errorf("Sinks (-want +got):\n%s", diff)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name  string
		rows  map[string]int
		edges [][2]string
		want  error
	}{
		{"valid chain", map[string]int{"a": 0, "b": 1, "c": 2}, [][2]string{{"a", "b"}, {"b", "c"}}, nil},
		{"skips a row", map[string]int{"a": 0, "b": 1, "c": 2}, [][2]string{{"a", "c"}}, ErrNonConsecutiveRows},
		{"same row", map[string]int{"a": 0, "b": 0, "c": 0}, [][2]string{{"a", "b"}}, ErrNonConsecutiveRows},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := New()
			for _, id := range []string{"a", "b", "c"} {
				_ = g.AddNode(Node{ID: id, Row: tt.rows[id]})
			}
			for _, e := range tt.edges {
				_ = g.AddEdge(Edge{From: e[0], To: e[1]})
			}
			if err := g.Validate(); !errors.Is(err, tt.want) {
				t.Errorf("Validate() = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestDetectCycles(t *testing.T) {
	g := New()
	_ = g.AddNode(Node{ID: "a"})
	_ = g.AddNode(Node{ID: "b"})
	_ = g.AddEdge(Edge{From: "a", To: "b"})
	_ = g.AddEdge(Edge{From: "b", To: "a"})
	if err := g.detectCycles(); !errors.Is(err, ErrGraphHasCycle) {
		t.Errorf("detectCycles() = %v, want ErrGraphHasCycle", err)
	}
}

func TestCountCrossings(t *testing.T) {
	g := New()
	for id, row := range map[string]int{"a": 0, "b": 0, "x": 1, "y": 1, "p": 2, "q": 2} {
		_ = g.AddNode(Node{ID: id, Row: row})
	}
	_ = g.AddEdge(Edge{From: "a", To: "y"})
	_ = g.AddEdge(Edge{From: "b", To: "x"})
	_ = g.AddEdge(Edge{From: "x", To: "q"})
	_ = g.AddEdge(Edge{From: "y", To: "p"})

	crossed := map[int][]string{0: {"a", "b"}, 1: {"x", "y"}, 2: {"p", "q"}}
	if got := CountCrossings(g, crossed); got != 2 {
		t.Errorf("CountCrossings(crossed) = %d, want 2", got)
	}
	clean := map[int][]string{0: {"a", "b"}, 1: {"y", "x"}, 2: {"p", "q"}}
	if got := CountCrossings(g, clean); got != 0 {
		t.Errorf("CountCrossings(clean) = %d, want 0", got)
	}
}

func TestCountPairCrossings(t *testing.T) {
	g := New()
	for _, id := range []string{"a", "b", "x", "y"} {
		_ = g.AddNode(Node{ID: id})
	}
	_ = g.AddEdge(Edge{From: "a", To: "y"})
	_ = g.AddEdge(Edge{From: "b", To: "x"})

	pos := PosMap([]string{"x", "y"})
	if got := CountPairCrossings(g, "a", "b", pos, false); got != 1 {
		t.Errorf("a before b = %d, want 1", got)
	}
	if got := CountPairCrossings(g, "b", "a", pos, false); got != 0 {
		t.Errorf("b before a = %d, want 0", got)
	}

	up := PosMap([]string{"a", "b"})
	if got := CountPairCrossings(g, "x", "y", up, true); got != 1 {
		t.Errorf("x before y (parents) = %d, want 1", got)
	}
}
