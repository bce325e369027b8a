// Package graph is an in-memory property multigraph over dense node IDs.
//
// Parallel edges and self loops are stored as given. In an undirected graph
// an edge is stored once and reported from both endpoints by Neighbors and
// Degree; OutgoingEdges and IncomingEdges always follow the stored
// orientation.
package graph

import (
	"sort"
	"sync"
)

// Statistics summarizes graph size.
type Statistics struct {
	NodeCount     uint64
	EdgeCount     uint64
	SelfLoopCount uint64
	Directed      bool
}

// Graph is a property multigraph safe for concurrent use.
type Graph struct {
	mu       sync.RWMutex
	directed bool

	nodes    map[uint64]*Node
	edges    []*Edge
	outgoing map[uint64][]uint64
	incoming map[uint64][]uint64

	stats Statistics
}

// New creates an empty graph.
func New(directed bool) *Graph {
	return &Graph{
		directed: directed,
		nodes:    make(map[uint64]*Node),
		outgoing: make(map[uint64][]uint64),
		incoming: make(map[uint64][]uint64),
		stats:    Statistics{Directed: directed},
	}
}

// Directed reports the graph orientation.
func (g *Graph) Directed() bool {
	return g.directed
}

// AddNode inserts a node with the given ID.
func (g *Graph) AddNode(id uint64, labels []string, properties map[string]Value) (*Node, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if _, exists := g.nodes[id]; exists {
		return nil, &GraphError{Op: "AddNode", Entity: "node", ID: id, Cause: ErrNodeExists}
	}
	if properties == nil {
		properties = make(map[string]Value)
	}

	node := &Node{ID: id, Labels: labels, Properties: properties}
	g.nodes[id] = node
	g.stats.NodeCount++

	return node.Clone(), nil
}

// AddEdge appends an edge. Both endpoints must exist.
func (g *Graph) AddEdge(fromID, toID uint64, edgeType string, properties map[string]Value, weight float64) (*Edge, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if _, ok := g.nodes[fromID]; !ok {
		return nil, &GraphError{Op: "AddEdge", Entity: "node", ID: fromID, Role: "source", Cause: ErrNodeNotFound}
	}
	if _, ok := g.nodes[toID]; !ok {
		return nil, &GraphError{Op: "AddEdge", Entity: "node", ID: toID, Role: "target", Cause: ErrNodeNotFound}
	}
	if properties == nil {
		properties = make(map[string]Value)
	}

	edge := &Edge{
		ID:         uint64(len(g.edges)),
		FromNodeID: fromID,
		ToNodeID:   toID,
		Type:       edgeType,
		Properties: properties,
		Weight:     weight,
	}
	g.edges = append(g.edges, edge)
	g.outgoing[fromID] = append(g.outgoing[fromID], edge.ID)
	g.incoming[toID] = append(g.incoming[toID], edge.ID)

	g.stats.EdgeCount++
	if fromID == toID {
		g.stats.SelfLoopCount++
	}

	return edge.Clone(), nil
}

// GetNode returns a copy of a node.
func (g *Graph) GetNode(id uint64) (*Node, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()

	node, ok := g.nodes[id]
	if !ok {
		return nil, &GraphError{Op: "GetNode", Entity: "node", ID: id, Cause: ErrNodeNotFound}
	}
	return node.Clone(), nil
}

// GetEdge returns a copy of an edge.
func (g *Graph) GetEdge(id uint64) (*Edge, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()

	if id >= uint64(len(g.edges)) {
		return nil, &GraphError{Op: "GetEdge", Entity: "edge", ID: id, Cause: ErrEdgeNotFound}
	}
	return g.edges[id].Clone(), nil
}

// HasNode reports whether a node exists.
func (g *Graph) HasNode(id uint64) bool {
	g.mu.RLock()
	defer g.mu.RUnlock()
	_, ok := g.nodes[id]
	return ok
}

// NodeIDs returns all node IDs in ascending order.
func (g *Graph) NodeIDs() []uint64 {
	g.mu.RLock()
	ids := make([]uint64, 0, len(g.nodes))
	for id := range g.nodes {
		ids = append(ids, id)
	}
	g.mu.RUnlock()

	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// Edges returns copies of all edges in insertion order.
func (g *Graph) Edges() []*Edge {
	g.mu.RLock()
	defer g.mu.RUnlock()

	out := make([]*Edge, len(g.edges))
	for i, e := range g.edges {
		out[i] = e.Clone()
	}
	return out
}

// GetOutgoingEdges returns edges stored with nodeID as source.
func (g *Graph) GetOutgoingEdges(nodeID uint64) ([]*Edge, error) {
	return g.adjacent("GetOutgoingEdges", nodeID, g.outgoing)
}

// GetIncomingEdges returns edges stored with nodeID as target.
func (g *Graph) GetIncomingEdges(nodeID uint64) ([]*Edge, error) {
	return g.adjacent("GetIncomingEdges", nodeID, g.incoming)
}

func (g *Graph) adjacent(op string, nodeID uint64, index map[uint64][]uint64) ([]*Edge, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()

	if _, ok := g.nodes[nodeID]; !ok {
		return nil, &GraphError{Op: op, Entity: "node", ID: nodeID, Cause: ErrNodeNotFound}
	}
	ids := index[nodeID]
	out := make([]*Edge, len(ids))
	for i, id := range ids {
		out[i] = g.edges[id].Clone()
	}
	return out, nil
}

// Neighbors returns the nodes reachable over one edge, with multiplicity.
// Undirected graphs traverse edges from either endpoint.
func (g *Graph) Neighbors(nodeID uint64) ([]uint64, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()

	if _, ok := g.nodes[nodeID]; !ok {
		return nil, &GraphError{Op: "Neighbors", Entity: "node", ID: nodeID, Cause: ErrNodeNotFound}
	}

	var out []uint64
	for _, id := range g.outgoing[nodeID] {
		out = append(out, g.edges[id].ToNodeID)
	}
	if !g.directed {
		for _, id := range g.incoming[nodeID] {
			e := g.edges[id]
			if e.IsSelfLoop() {
				continue
			}
			out = append(out, e.FromNodeID)
		}
	}
	return out, nil
}

// Degree returns the number of edge endpoints at nodeID. A self loop
// counts twice.
func (g *Graph) Degree(nodeID uint64) (int, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()

	if _, ok := g.nodes[nodeID]; !ok {
		return 0, &GraphError{Op: "Degree", Entity: "node", ID: nodeID, Cause: ErrNodeNotFound}
	}
	return len(g.outgoing[nodeID]) + len(g.incoming[nodeID]), nil
}

// GetStatistics returns a snapshot of the counters.
func (g *Graph) GetStatistics() Statistics {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.stats
}

// NodeCount returns the number of nodes.
func (g *Graph) NodeCount() int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return len(g.nodes)
}

// EdgeCount returns the number of edges.
func (g *Graph) EdgeCount() int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return len(g.edges)
}
