// Package analytics is a compact integer graph for whole-graph algorithms.
//
// The node count is fixed at construction and edges are appended one at a
// time in input order. Algorithms run on a compressed sparse row (CSR)
// snapshot built on first use and discarded on the next AddEdge. A Graph
// may be read concurrently once it is fully built; AddEdge must not race
// with anything.
package analytics

import (
	"errors"
	"fmt"
	"sync"
)

var ErrNodeOutOfRange = errors.New("node index out of range")

// Graph is a fixed-size multigraph over nodes [0, n).
type Graph struct {
	n        int
	directed bool
	src      []int
	dst      []int

	once *sync.Once
	out  *CSR
	in   *CSR
}

// New creates a graph with n nodes and no edges.
func New(n int, directed bool) *Graph {
	return &Graph{n: n, directed: directed, once: new(sync.Once)}
}

// AddEdge appends the edge u -> v.
func (g *Graph) AddEdge(u, v int) error {
	if u < 0 || u >= g.n {
		return fmt.Errorf("%w: source %d, graph has %d nodes", ErrNodeOutOfRange, u, g.n)
	}
	if v < 0 || v >= g.n {
		return fmt.Errorf("%w: target %d, graph has %d nodes", ErrNodeOutOfRange, v, g.n)
	}
	g.src = append(g.src, u)
	g.dst = append(g.dst, v)
	g.once = new(sync.Once)
	return nil
}

// NumNodes returns the fixed node count.
func (g *Graph) NumNodes() int { return g.n }

// NumEdges returns the number of edges added.
func (g *Graph) NumEdges() int { return len(g.src) }

// Directed reports the graph orientation.
func (g *Graph) Directed() bool { return g.directed }

// Edge returns edge i in insertion order.
func (g *Graph) Edge(i int) (u, v int) { return g.src[i], g.dst[i] }

// CSR stores adjacency as Offsets (len n+1) into Targets. The neighbors of
// u are Targets[Offsets[u]:Offsets[u+1]], in edge insertion order.
type CSR struct {
	Offsets []int
	Targets []int
}

// Neighbors returns the adjacency slice of u. It aliases the CSR.
func (c *CSR) Neighbors(u int) []int {
	return c.Targets[c.Offsets[u]:c.Offsets[u+1]]
}

// Degree returns the number of entries for u.
func (c *CSR) Degree(u int) int {
	return c.Offsets[u+1] - c.Offsets[u]
}

func buildCSR(n int, from, to []int) *CSR {
	offsets := make([]int, n+1)
	for _, u := range from {
		offsets[u+1]++
	}
	for u := 0; u < n; u++ {
		offsets[u+1] += offsets[u]
	}

	targets := make([]int, len(from))
	next := make([]int, n)
	copy(next, offsets[:n])
	for i, u := range from {
		targets[next[u]] = to[i]
		next[u]++
	}
	return &CSR{Offsets: offsets, Targets: targets}
}

func (g *Graph) snapshot() (out, in *CSR) {
	g.once.Do(func() {
		g.out = buildCSR(g.n, g.src, g.dst)
		g.in = buildCSR(g.n, g.dst, g.src)
	})
	return g.out, g.in
}

// Out returns the CSR of stored edge orientation.
func (g *Graph) Out() *CSR {
	out, _ := g.snapshot()
	return out
}

// In returns the CSR of reversed edges.
func (g *Graph) In() *CSR {
	_, in := g.snapshot()
	return in
}

// OutDegrees returns the number of stored edges leaving each node.
func (g *Graph) OutDegrees() []int {
	return degrees(g.Out(), g.n)
}

// InDegrees returns the number of stored edges entering each node.
func (g *Graph) InDegrees() []int {
	return degrees(g.In(), g.n)
}

func degrees(c *CSR, n int) []int {
	out := make([]int, n)
	for u := 0; u < n; u++ {
		out[u] = c.Degree(u)
	}
	return out
}

// BFS returns hop distances from source, or -1 for unreachable nodes.
// Directed graphs follow edge orientation; undirected graphs follow both.
func (g *Graph) BFS(source int) ([]int, error) {
	if source < 0 || source >= g.n {
		return nil, fmt.Errorf("%w: %d", ErrNodeOutOfRange, source)
	}
	out, in := g.snapshot()

	dist := make([]int, g.n)
	for i := range dist {
		dist[i] = -1
	}
	dist[source] = 0

	queue := []int{source}
	for len(queue) > 0 {
		u := queue[0]
		queue = queue[1:]

		visit := func(v int) {
			if dist[v] < 0 {
				dist[v] = dist[u] + 1
				queue = append(queue, v)
			}
		}
		for _, v := range out.Neighbors(u) {
			visit(v)
		}
		if !g.directed {
			for _, v := range in.Neighbors(u) {
				visit(v)
			}
		}
	}
	return dist, nil
}
