package search

import "slices"

// Adjacency is a simple directed graph keeping at most one edge per ordered
// node pair. Nodes and edges iterate in insertion order.
//
// The zero value is not usable, use [NewAdjacency].
// Adjacency is not safe for concurrent mutation; concurrent reads are fine.
type Adjacency[N comparable, E any] struct {
	nodes []N
	index map[N]int
	out   [][]Edge[N, E]
	edges int
}

// NewAdjacency creates an empty graph.
func NewAdjacency[N comparable, E any]() *Adjacency[N, E] {
	return &Adjacency[N, E]{index: make(map[N]int)}
}

// AddNode adds n if it is not already present and reports whether it was
// added.
func (a *Adjacency[N, E]) AddNode(n N) bool {
	if _, ok := a.index[n]; ok {
		return false
	}
	a.index[n] = len(a.nodes)
	a.nodes = append(a.nodes, n)
	a.out = append(a.out, nil)
	return true
}

// SetEdge adds the edge from→to, replacing the label of an existing edge.
// Missing endpoints are added.
func (a *Adjacency[N, E]) SetEdge(from, to N, label E) {
	a.AddNode(from)
	a.AddNode(to)
	i := a.index[from]
	for j := range a.out[i] {
		if a.out[i][j].To == to {
			a.out[i][j].Label = label
			return
		}
	}
	a.out[i] = append(a.out[i], Edge[N, E]{From: from, To: to, Label: label})
	a.edges++
}

// Edge returns the label of the edge from→to.
func (a *Adjacency[N, E]) Edge(from, to N) (E, bool) {
	if i, ok := a.index[from]; ok {
		for _, e := range a.out[i] {
			if e.To == to {
				return e.Label, true
			}
		}
	}
	var zero E
	return zero, false
}

// Edges returns the outgoing edges of n. The slice must not be modified.
func (a *Adjacency[N, E]) Edges(n N) []Edge[N, E] {
	if i, ok := a.index[n]; ok {
		return a.out[i]
	}
	return nil
}

// Contains reports whether n is a node of the graph.
func (a *Adjacency[N, E]) Contains(n N) bool {
	_, ok := a.index[n]
	return ok
}

// Nodes returns a copy of the nodes in insertion order.
func (a *Adjacency[N, E]) Nodes() []N { return slices.Clone(a.nodes) }

// NodeCount returns the number of nodes.
func (a *Adjacency[N, E]) NodeCount() int { return len(a.nodes) }

// EdgeCount returns the number of edges.
func (a *Adjacency[N, E]) EdgeCount() int { return a.edges }

// AllEdges returns every edge, grouped by source node in insertion order.
func (a *Adjacency[N, E]) AllEdges() []Edge[N, E] {
	all := make([]Edge[N, E], 0, a.edges)
	for _, out := range a.out {
		all = append(all, out...)
	}
	return all
}

var _ Graph[int, struct{}] = (*Adjacency[int, struct{}])(nil)
