package search

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/require"
)

type weighted[N comparable, K Score] struct {
	from, to N
	cost     K
}

// buildGraph creates a graph whose edge labels are the edge costs.
func buildGraph[N comparable, K Score](edges ...weighted[N, K]) *Adjacency[N, K] {
	g := NewAdjacency[N, K]()
	for _, e := range edges {
		g.SetEdge(e.from, e.to, e.cost)
	}
	return g
}

func labelCost[N comparable, K Score](e Edge[N, K]) K { return e.Label }

// randomGraph returns a graph on n integer nodes with integer costs.
func randomGraph(r *rand.Rand, n int, density float64, maxCost int) *Adjacency[int, int] {
	g := NewAdjacency[int, int]()
	for i := 0; i < n; i++ {
		g.AddNode(i)
	}
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			if i != j && r.Float64() < density {
				g.SetEdge(i, j, r.IntN(maxCost)+1)
			}
		}
	}
	return g
}

// bellmanFord returns reference distances from start, unreachable nodes are
// absent.
func bellmanFord(g *Adjacency[int, int], start int) map[int]int {
	dist := map[int]int{start: 0}
	for range g.Nodes() {
		changed := false
		for _, e := range g.AllEdges() {
			d, ok := dist[e.From]
			if !ok {
				continue
			}
			if cur, ok := dist[e.To]; !ok || d+e.Label < cur {
				dist[e.To] = d + e.Label
				changed = true
			}
		}
		if !changed {
			break
		}
	}
	return dist
}

// requireValidPath checks that p follows existing edges from start to goal,
// never repeats a node and sums to p.Cost.
func requireValidPath(t *testing.T, g *Adjacency[int, int], p *Path[int, int], start, goal int) {
	t.Helper()
	require.NotEmpty(t, p.Nodes)
	require.Equal(t, start, p.Nodes[0])
	require.Equal(t, goal, p.Nodes[len(p.Nodes)-1])

	seen := make(map[int]bool)
	sum := 0
	for i, n := range p.Nodes {
		require.False(t, seen[n], "node %d repeated in %v", n, p.Nodes)
		seen[n] = true
		if i == 0 {
			continue
		}
		c, ok := g.Edge(p.Nodes[i-1], n)
		require.True(t, ok, "missing edge %d→%d", p.Nodes[i-1], n)
		sum += c
	}
	require.Equal(t, p.Cost, sum)
}
