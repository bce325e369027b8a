package analytics

import (
	"errors"
	"math"
	"reflect"
	"testing"
)

func mustGraph(t *testing.T, n int, directed bool, edges [][2]int) *Graph {
	t.Helper()
	g := New(n, directed)
	for _, e := range edges {
		if err := g.AddEdge(e[0], e[1]); err != nil {
			t.Fatalf("AddEdge(%v): %v", e, err)
		}
	}
	return g
}

func TestGraph_AddEdgeRange(t *testing.T) {
	g := New(2, true)
	if err := g.AddEdge(0, 2); !errors.Is(err, ErrNodeOutOfRange) {
		t.Errorf("AddEdge(0,2) = %v", err)
	}
	if err := g.AddEdge(-1, 0); !errors.Is(err, ErrNodeOutOfRange) {
		t.Errorf("AddEdge(-1,0) = %v", err)
	}
	if g.NumEdges() != 0 {
		t.Errorf("rejected edges were stored: %d", g.NumEdges())
	}
}

func TestGraph_CSRPreservesInsertionOrder(t *testing.T) {
	g := mustGraph(t, 3, true, [][2]int{{0, 2}, {1, 0}, {0, 1}, {0, 2}})

	if got := g.Out().Neighbors(0); !reflect.DeepEqual(got, []int{2, 1, 2}) {
		t.Errorf("Out().Neighbors(0) = %v", got)
	}
	if got := g.OutDegrees(); !reflect.DeepEqual(got, []int{3, 1, 0}) {
		t.Errorf("OutDegrees() = %v", got)
	}
	if got := g.InDegrees(); !reflect.DeepEqual(got, []int{1, 1, 2}) {
		t.Errorf("InDegrees() = %v", got)
	}

	// snapshot is rebuilt after further edges
	if err := g.AddEdge(2, 2); err != nil {
		t.Fatal(err)
	}
	if got := g.OutDegrees()[2]; got != 1 {
		t.Errorf("OutDegrees()[2] after AddEdge = %d", got)
	}
	if u, v := g.Edge(4); u != 2 || v != 2 {
		t.Errorf("Edge(4) = (%d,%d)", u, v)
	}
}

func TestGraph_BFS(t *testing.T) {
	edges := [][2]int{{0, 1}, {1, 2}, {3, 2}}

	dist, err := mustGraph(t, 5, true, edges).BFS(0)
	if err != nil {
		t.Fatal(err)
	}
	if want := []int{0, 1, 2, -1, -1}; !reflect.DeepEqual(dist, want) {
		t.Errorf("directed BFS = %v, want %v", dist, want)
	}

	dist, _ = mustGraph(t, 5, false, edges).BFS(0)
	if want := []int{0, 1, 2, 3, -1}; !reflect.DeepEqual(dist, want) {
		t.Errorf("undirected BFS = %v, want %v", dist, want)
	}

	if _, err := New(1, true).BFS(3); !errors.Is(err, ErrNodeOutOfRange) {
		t.Errorf("BFS(3) = %v", err)
	}
}

func TestGraph_ConnectedComponents(t *testing.T) {
	g := mustGraph(t, 6, true, [][2]int{{0, 1}, {2, 1}, {3, 4}, {5, 5}})
	cc := g.ConnectedComponents()

	if cc.Count() != 3 {
		t.Fatalf("Count() = %d, want 3", cc.Count())
	}
	if want := []int{0, 0, 0, 1, 1, 2}; !reflect.DeepEqual(cc.Labels, want) {
		t.Errorf("Labels = %v, want %v", cc.Labels, want)
	}
	if id, size := cc.Largest(); id != 0 || size != 3 {
		t.Errorf("Largest() = %d, %d", id, size)
	}

	empty := New(0, true).ConnectedComponents()
	if id, size := empty.Largest(); id != -1 || size != 0 {
		t.Errorf("empty Largest() = %d, %d", id, size)
	}
}

func TestGraph_PageRank(t *testing.T) {
	// star: every leaf points at node 0
	g := mustGraph(t, 4, true, [][2]int{{1, 0}, {2, 0}, {3, 0}})
	res := g.PageRank(DefaultPageRankOptions())

	sum := 0.0
	for _, s := range res.Scores {
		sum += s
	}
	if math.Abs(sum-1) > 1e-9 {
		t.Errorf("scores sum to %v", sum)
	}
	if !res.Converged {
		t.Errorf("did not converge in %d iterations", res.Iterations)
	}
	if len(res.TopNodes) != 4 || res.TopNodes[0].Node != 0 {
		t.Errorf("TopNodes = %+v", res.TopNodes)
	}
	for i := 1; i < len(res.TopNodes); i++ {
		if res.TopNodes[i].Score > res.TopNodes[i-1].Score {
			t.Errorf("TopNodes not descending: %+v", res.TopNodes)
		}
	}

	if empty := New(0, true).PageRank(DefaultPageRankOptions()); !empty.Converged || len(empty.Scores) != 0 {
		t.Errorf("empty PageRank = %+v", empty)
	}
}

func TestGraph_CountTriangles(t *testing.T) {
	// triangle 0-1-2 with a duplicate edge, a self loop and a pendant node 3
	g := mustGraph(t, 4, true, [][2]int{{0, 1}, {1, 2}, {2, 0}, {1, 0}, {2, 2}, {2, 3}})
	res := g.CountTriangles()

	if res.GlobalCount != 1 {
		t.Errorf("GlobalCount = %d, want 1", res.GlobalCount)
	}
	if want := []int{1, 1, 1, 0}; !reflect.DeepEqual(res.PerNode, want) {
		t.Errorf("PerNode = %v, want %v", res.PerNode, want)
	}
	if res.ClusteringCoefficients[0] != 1 {
		t.Errorf("cc[0] = %v, want 1", res.ClusteringCoefficients[0])
	}
	if got := res.ClusteringCoefficients[2]; math.Abs(got-1.0/3) > 1e-12 {
		t.Errorf("cc[2] = %v, want 1/3", got)
	}
}
