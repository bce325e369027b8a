package analytics

import (
	"container/heap"
	"math"
)

// PageRankOptions configures PageRank algorithm
type PageRankOptions struct {
	DampingFactor float64 // Usually 0.85
	MaxIterations int
	Tolerance     float64 // Convergence threshold on the max per-node change
	TopN          int
}

// DefaultPageRankOptions returns default PageRank configuration
func DefaultPageRankOptions() PageRankOptions {
	return PageRankOptions{
		DampingFactor: 0.85,
		MaxIterations: 100,
		Tolerance:     1e-6,
		TopN:          10,
	}
}

// PageRankResult contains PageRank scores for all nodes
type PageRankResult struct {
	Scores     []float64
	Iterations int
	Converged  bool
	TopNodes   []RankedNode
}

// RankedNode represents a node with its rank
type RankedNode struct {
	Node  int
	Score float64
}

// PageRank runs power iteration over stored edge orientation. Scores are
// normalized to sum to 1.
func (g *Graph) PageRank(opts PageRankOptions) *PageRankResult {
	n := g.n
	if n == 0 {
		return &PageRankResult{Converged: true}
	}
	out, in := g.snapshot()

	scores := make([]float64, n)
	next := make([]float64, n)
	for i := range scores {
		scores[i] = 1.0 / float64(n)
	}

	converged := false
	iterations := 0
	for iterations < opts.MaxIterations {
		iterations++

		base := (1.0 - opts.DampingFactor) / float64(n)
		for v := 0; v < n; v++ {
			s := base
			for _, u := range in.Neighbors(v) {
				s += opts.DampingFactor * scores[u] / float64(out.Degree(u))
			}
			next[v] = s
		}

		maxDiff := 0.0
		for i := range scores {
			if d := math.Abs(next[i] - scores[i]); d > maxDiff {
				maxDiff = d
			}
		}
		scores, next = next, scores

		if maxDiff < opts.Tolerance {
			converged = true
			break
		}
	}

	sum := 0.0
	for _, s := range scores {
		sum += s
	}
	if sum > 0 {
		for i := range scores {
			scores[i] /= sum
		}
	}

	return &PageRankResult{
		Scores:     scores,
		Iterations: iterations,
		Converged:  converged,
		TopNodes:   topNodes(scores, opts.TopN),
	}
}

// rankedNodeHeap is a min-heap by score; ties keep the lower node index.
type rankedNodeHeap []RankedNode

func (h rankedNodeHeap) Len() int { return len(h) }
func (h rankedNodeHeap) Less(i, j int) bool {
	if h[i].Score != h[j].Score {
		return h[i].Score < h[j].Score
	}
	return h[i].Node > h[j].Node
}
func (h rankedNodeHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *rankedNodeHeap) Push(x any) {
	*h = append(*h, x.(RankedNode))
}

func (h *rankedNodeHeap) Pop() any {
	old := *h
	n := len(old)
	x := old[n-1]
	*h = old[0 : n-1]
	return x
}

// topNodes returns the n highest scores in descending order in O(len log n).
func topNodes(scores []float64, n int) []RankedNode {
	if n <= 0 {
		return nil
	}

	h := make(rankedNodeHeap, 0, n)
	for node, score := range scores {
		rn := RankedNode{Node: node, Score: score}
		if h.Len() < n {
			heap.Push(&h, rn)
		} else if score > h[0].Score {
			heap.Pop(&h)
			heap.Push(&h, rn)
		}
	}

	result := make([]RankedNode, h.Len())
	for i := h.Len() - 1; i >= 0; i-- {
		result[i] = heap.Pop(&h).(RankedNode)
	}
	return result
}
