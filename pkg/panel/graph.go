package panel

import "github.com/matzehuels/graphbash/pkg/search"

// Graph is the panel graph. Nodes and edges iterate in insertion order,
// which for a generated graph is breadth-first discovery order.
type Graph struct {
	adj *search.Adjacency[int32, Directions]
}

// NewGraph returns an empty graph.
func NewGraph() *Graph {
	return &Graph{adj: search.NewAdjacency[int32, Directions]()}
}

// AddNode adds a panel and reports whether it was new.
func (g *Graph) AddNode(panel int32) bool { return g.adj.AddNode(panel) }

// AddMove records that dirs lead from one panel to another, merging with
// any inputs already known for that pair.
func (g *Graph) AddMove(from, to int32, dirs Directions) {
	existing, _ := g.adj.Edge(from, to)
	g.adj.SetEdge(from, to, existing|dirs)
}

// Move returns the inputs leading from one panel to another.
func (g *Graph) Move(from, to int32) (Directions, bool) { return g.adj.Edge(from, to) }

func (g *Graph) Edges(panel int32) []search.Edge[int32, Directions] { return g.adj.Edges(panel) }
func (g *Graph) Contains(panel int32) bool                          { return g.adj.Contains(panel) }
func (g *Graph) Nodes() []int32                                     { return g.adj.Nodes() }
func (g *Graph) NodeCount() int                                     { return g.adj.NodeCount() }
func (g *Graph) EdgeCount() int                                     { return g.adj.EdgeCount() }

// AllEdges returns every edge, grouped by source in node order.
func (g *Graph) AllEdges() []search.Edge[int32, Directions] { return g.adj.AllEdges() }

var _ search.Graph[int32, Directions] = (*Graph)(nil)
