package analytics

import "sort"

// TriangleCountResult holds triangle counts and local clustering
// coefficients over the undirected simple view of the graph.
type TriangleCountResult struct {
	PerNode                []int
	GlobalCount            int
	ClusteringCoefficients []float64
}

// CountTriangles ignores orientation, parallel edges and self loops.
// Each triangle is found once from its lowest-index vertex and credited to
// all three vertices.
func (g *Graph) CountTriangles() *TriangleCountResult {
	out, in := g.snapshot()

	neighbors := make([][]int, g.n)
	for u := 0; u < g.n; u++ {
		set := make(map[int]struct{}, out.Degree(u)+in.Degree(u))
		for _, v := range out.Neighbors(u) {
			set[v] = struct{}{}
		}
		for _, v := range in.Neighbors(u) {
			set[v] = struct{}{}
		}
		delete(set, u)

		list := make([]int, 0, len(set))
		for v := range set {
			list = append(list, v)
		}
		sort.Ints(list)
		neighbors[u] = list
	}

	perNode := make([]int, g.n)
	global := 0
	for u := 0; u < g.n; u++ {
		for _, v := range neighbors[u] {
			if v <= u {
				continue
			}
			// common neighbors w > v
			a, b := neighbors[u], neighbors[v]
			i, j := 0, 0
			for i < len(a) && j < len(b) {
				switch {
				case a[i] < b[j]:
					i++
				case a[i] > b[j]:
					j++
				default:
					if w := a[i]; w > v {
						perNode[u]++
						perNode[v]++
						perNode[w]++
						global++
					}
					i++
					j++
				}
			}
		}
	}

	cc := make([]float64, g.n)
	for u := 0; u < g.n; u++ {
		d := len(neighbors[u])
		if d >= 2 {
			cc[u] = 2 * float64(perNode[u]) / float64(d*(d-1))
		}
	}

	return &TriangleCountResult{
		PerNode:                perNode,
		GlobalCount:            global,
		ClusteringCoefficients: cc,
	}
}
