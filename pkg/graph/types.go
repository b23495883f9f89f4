package graph

import (
	"encoding/json"
	"fmt"

	"github.com/matzehuels/graphbash/pkg/errors"
	"github.com/matzehuels/graphbash/pkg/panel"
)

// =============================================================================
// Graph - Panel Graph Serialization
// =============================================================================

// Graph is the canonical serialization format for panel graphs.
// Used for graph files, API responses and cache entries.
type Graph struct {
	Source Source `json:"source" bson:"source"`
	Nodes  []Node `json:"nodes" bson:"nodes"`
	Edges  []Edge `json:"edges" bson:"edges"`
}

// Source records how a graph was generated.
type Source struct {
	DumpSHA256 string `json:"dump_sha256,omitempty" bson:"dump_sha256,omitempty"`
	Start      int32  `json:"start" bson:"start"`
	MaxDepth   int    `json:"max_depth" bson:"max_depth"`
}

// Node is one panel.
type Node struct {
	ID int32 `json:"id" bson:"id"`
}

// Edge is the set of inputs moving from one panel to another.
type Edge struct {
	From int32  `json:"from" bson:"from"`
	To   int32  `json:"to" bson:"to"`
	Dirs string `json:"dirs,omitempty" bson:"dirs,omitempty"`
	Mask uint16 `json:"mask,omitempty" bson:"mask,omitempty"`
}

// Directions returns the inputs of the edge.
func (e Edge) Directions() (panel.Directions, error) {
	mask := panel.Directions(e.Mask)
	if e.Dirs == "" {
		return mask, nil
	}
	dirs, err := panel.ParseDirections(e.Dirs)
	if err != nil {
		return 0, err
	}
	if e.Mask != 0 && dirs != mask {
		return 0, fmt.Errorf("dirs %q disagree with mask %#04x", e.Dirs, e.Mask)
	}
	return dirs, nil
}

// =============================================================================
// panel.Graph ↔ Graph Conversion
// =============================================================================

// FromPanel converts a panel graph to its serialization format.
func FromPanel(g *panel.Graph, src Source) Graph {
	out := Graph{
		Source: src,
		Nodes:  make([]Node, 0, g.NodeCount()),
		Edges:  make([]Edge, 0, g.EdgeCount()),
	}
	for _, id := range g.Nodes() {
		out.Nodes = append(out.Nodes, Node{ID: id})
	}
	for _, e := range g.AllEdges() {
		out.Edges = append(out.Edges, Edge{
			From: e.From,
			To:   e.To,
			Dirs: joinNames(e.Label),
			Mask: uint16(e.Label),
		})
	}
	return out
}

// ToPanel converts a Graph back to a panel graph.
// Edges must connect listed nodes and carry at least one input.
func ToPanel(gj Graph) (*panel.Graph, error) {
	g := panel.NewGraph()
	for _, n := range gj.Nodes {
		if !g.AddNode(n.ID) {
			return nil, errors.New(errors.ErrCodeInvalidGraph, "duplicate node %d", n.ID)
		}
	}
	for _, e := range gj.Edges {
		if !g.Contains(e.From) || !g.Contains(e.To) {
			return nil, errors.New(errors.ErrCodeInvalidGraph, "edge %d→%d references an unknown node", e.From, e.To)
		}
		dirs, err := e.Directions()
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidGraph, err, "edge %d→%d", e.From, e.To)
		}
		if dirs == 0 {
			return nil, errors.New(errors.ErrCodeInvalidGraph, "edge %d→%d has no inputs", e.From, e.To)
		}
		if _, dup := g.Move(e.From, e.To); dup {
			return nil, errors.New(errors.ErrCodeInvalidGraph, "duplicate edge %d→%d", e.From, e.To)
		}
		g.AddMove(e.From, e.To, dirs)
	}
	return g, nil
}

// UnmarshalGraph deserializes JSON bytes to a Graph.
func UnmarshalGraph(data []byte) (Graph, error) {
	var g Graph
	if err := json.Unmarshal(data, &g); err != nil {
		return Graph{}, err
	}
	return g, nil
}

func joinNames(d panel.Directions) string {
	text, err := d.MarshalText()
	if err != nil {
		return ""
	}
	return string(text)
}
