package search

import "math"

// Score is the set of numeric types usable as path costs.
// The zero value is the identity element for addition.
type Score interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 |
		~float32 | ~float64
}

// Edge is a directed edge as seen by the searches.
type Edge[N comparable, E any] struct {
	From  N
	To    N
	Label E
}

// Graph is the read-only view the searches need.
//
// Edges and Nodes must iterate in a deterministic order, otherwise equal-cost
// alternatives may be chosen differently between runs.
type Graph[N comparable, E any] interface {
	// Edges returns the outgoing edges of n, or nil if n has none.
	Edges(n N) []Edge[N, E]
	// Contains reports whether n is a node of the graph.
	Contains(n N) bool
	// Nodes returns every node of the graph.
	Nodes() []N
}

// CostFunc maps an edge to its score.
type CostFunc[N comparable, E any, K Score] func(e Edge[N, E]) K

// Path is a node sequence together with its accumulated cost.
type Path[N comparable, K Score] struct {
	Nodes []N
	Cost  K
}

// Len returns the number of edges on the path.
func (p *Path[N, K]) Len() int {
	if p == nil || len(p.Nodes) == 0 {
		return 0
	}
	return len(p.Nodes) - 1
}

// Infinity returns +Inf in K. The boolean is false for integer score types,
// which have no infinite value.
func Infinity[K Score]() (K, bool) {
	k := K(math.Inf(1))
	if !IsInfinite(k) {
		var zero K
		return zero, false
	}
	return k, true
}

// IsInfinite reports whether k is +Inf.
func IsInfinite[K Score](k K) bool {
	return math.IsInf(float64(k), 1)
}
