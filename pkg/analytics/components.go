package analytics

// ComponentsResult labels every node with its weakly connected component.
type ComponentsResult struct {
	Labels []int // node -> component id, ids assigned in order of lowest node
	Sizes  []int // component id -> node count
}

// Count returns the number of components.
func (r *ComponentsResult) Count() int { return len(r.Sizes) }

// Largest returns the id and size of the biggest component, or (-1, 0) for
// an empty graph.
func (r *ComponentsResult) Largest() (id, size int) {
	id = -1
	for c, s := range r.Sizes {
		if s > size {
			id, size = c, s
		}
	}
	return id, size
}

// ConnectedComponents finds weakly connected components by BFS over both
// edge directions.
func (g *Graph) ConnectedComponents() *ComponentsResult {
	out, in := g.snapshot()

	labels := make([]int, g.n)
	for i := range labels {
		labels[i] = -1
	}
	var sizes []int

	queue := make([]int, 0, 64)
	for start := 0; start < g.n; start++ {
		if labels[start] >= 0 {
			continue
		}
		id := len(sizes)
		size := 0

		labels[start] = id
		queue = append(queue[:0], start)
		for len(queue) > 0 {
			u := queue[len(queue)-1]
			queue = queue[:len(queue)-1]
			size++

			for _, v := range out.Neighbors(u) {
				if labels[v] < 0 {
					labels[v] = id
					queue = append(queue, v)
				}
			}
			for _, v := range in.Neighbors(u) {
				if labels[v] < 0 {
					labels[v] = id
					queue = append(queue, v)
				}
			}
		}
		sizes = append(sizes, size)
	}

	return &ComponentsResult{Labels: labels, Sizes: sizes}
}
