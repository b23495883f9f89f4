package panel

import (
	"strings"

	"github.com/matzehuels/graphbash/pkg/errors"
	"github.com/matzehuels/graphbash/pkg/search"
)

// Code returns the inputs that play a node path, one per move.
func Code(g *Graph, path []int32) ([]Directions, error) {
	if len(path) == 0 {
		return nil, nil
	}
	code := make([]Directions, 0, len(path)-1)
	for i := 1; i < len(path); i++ {
		dirs, ok := g.Move(path[i-1], path[i])
		if !ok {
			return nil, errors.New(errors.ErrCodeInvalidPath, "no move from panel %d to panel %d", path[i-1], path[i])
		}
		code = append(code, dirs)
	}
	return code, nil
}

// FormatCode renders a code as space separated moves, e.g. "U L|R DL".
func FormatCode(code []Directions) string {
	parts := make([]string, len(code))
	for i, d := range code {
		parts[i] = d.String()
	}
	return strings.Join(parts, " ")
}

// ShortestCode returns the cheapest code from one panel to another.
func ShortestCode(g *Graph, from, to int32, policy CostPolicy) ([]Directions, float64, error) {
	if !g.Contains(from) {
		return nil, 0, errors.New(errors.ErrCodeNodeNotFound, "panel %d is not in the graph", from)
	}
	p := search.Dijkstra(g, from, []int32{to}, policy.Func())[to]
	if p == nil {
		return nil, 0, errors.New(errors.ErrCodeNoRoute, "panel %d cannot be reached from panel %d", to, from)
	}
	code, err := Code(g, p.Nodes)
	if err != nil {
		return nil, 0, err
	}
	return code, p.Cost, nil
}
