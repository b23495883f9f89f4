package route

import (
	"context"
	stderrors "errors"
	"fmt"
	"runtime"
	"slices"

	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/graphbash/pkg/errors"
	"github.com/matzehuels/graphbash/pkg/search"
)

// ErrNoRoute is the cause of every no-route error returned by this package.
var ErrNoRoute = stderrors.New("no route")

// Segment is one leg of a route: the path from the previous stop (the
// origin for the first segment) to Goal, both ends included.
type Segment[N comparable] struct {
	Goal N
	Path []N
}

// Steps returns the number of moves in the segment.
func (s Segment[N]) Steps() int { return max(len(s.Path)-1, 0) }

// Route is the answer to a multi-goal query. Segments are in visiting order
// and cover every goal exactly once.
type Route[N comparable, K search.Score] struct {
	Origin   N
	Segments []Segment[N]
	Cost     K
}

// Goals returns the goals in visiting order.
func (r *Route[N, K]) Goals() []N {
	goals := make([]N, len(r.Segments))
	for i, s := range r.Segments {
		goals[i] = s.Goal
	}
	return goals
}

// Nodes returns the complete node path from the origin through every goal.
// Nodes where two segments meet appear once.
func (r *Route[N, K]) Nodes() []N {
	nodes := []N{r.Origin}
	for _, s := range r.Segments {
		if len(s.Path) > 0 {
			nodes = append(nodes, s.Path[1:]...)
		}
	}
	return nodes
}

// Stats describes the work done by a query.
type Stats struct {
	Legs        int // Dijkstra searches run
	Reachable   int // legs with a finite path
	Expanded    int // partial orderings expanded by the ordering search
	TreeRecords int // path-tree records allocated by the ordering search
}

// Option configures [FindRoutes].
type Option func(*options)

type options struct {
	parallelism int
	stats       *Stats
}

// WithParallelism bounds the number of legs searched at once.
// Values below 1 are ignored.
func WithParallelism(n int) Option {
	return func(o *options) {
		if n >= 1 {
			o.parallelism = n
		}
	}
}

// WithStats makes FindRoutes record its statistics into s.
func WithStats(s *Stats) Option {
	return func(o *options) { o.stats = s }
}

// leg is the precomputed search result between two stops.
type leg[N comparable] struct{ from, to N }

// table holds every computed leg. A nil path means unreachable.
type table[N comparable, K search.Score] map[leg[N]]*search.Path[N, K]

// FindRoutes finds the cheapest route from origin that visits every goal.
//
// Duplicate goals are visited once and a goal equal to the origin is
// considered visited from the start. With no goals left the route is empty
// and costs zero.
func FindRoutes[N comparable, E any, K search.Score](
	ctx context.Context,
	g search.Graph[N, E],
	origin N,
	goals []N,
	cost search.CostFunc[N, E, K],
	opts ...Option,
) (*Route[N, K], error) {
	o := options{parallelism: runtime.GOMAXPROCS(0)}
	for _, opt := range opts {
		opt(&o)
	}
	stats := o.stats
	if stats == nil {
		stats = &Stats{}
	}

	if !g.Contains(origin) {
		return nil, errors.New(errors.ErrCodeNodeNotFound, "origin %v is not in the graph", origin)
	}
	goals = normalizeGoals(origin, goals)
	if len(goals) == 0 {
		return &Route[N, K]{Origin: origin}, nil
	}

	legs, err := buildTable(ctx, g, origin, goals, cost, o.parallelism)
	if err != nil {
		return nil, err
	}
	stats.Legs = len(goals) + 1
	for _, p := range legs {
		if p != nil {
			stats.Reachable++
		}
	}

	condensed := condense(origin, goals, legs)
	order, orderStats, ok, err := search.ShortestHamiltonianPathContext(ctx, condensed, origin, func(e search.Edge[N, K]) K {
		return e.Label
	})
	stats.Expanded = orderStats.Expanded
	stats.TreeRecords = orderStats.TreeRecords
	if err == nil {
		err = ctx.Err()
	}
	if err != nil {
		return nil, fmt.Errorf("order goals: %w", err)
	}
	if !ok {
		return nil, errors.Wrap(errors.ErrCodeNoRoute, ErrNoRoute, "goals cannot all be reached from %v", origin)
	}
	if search.IsInfinite(order.Cost) {
		return nil, errors.Wrap(errors.ErrCodeNoRoute, ErrNoRoute, "every ordering of the goals uses an unusable move")
	}

	return stitch(origin, order, legs), nil
}

// normalizeGoals drops duplicates and the origin, keeping first occurrences.
func normalizeGoals[N comparable](origin N, goals []N) []N {
	seen := map[N]bool{origin: true}
	out := make([]N, 0, len(goals))
	for _, goal := range goals {
		if !seen[goal] {
			seen[goal] = true
			out = append(out, goal)
		}
	}
	return out
}

// buildTable runs one Dijkstra search per stop. Searches share the graph
// read-only and own all of their state.
func buildTable[N comparable, E any, K search.Score](
	ctx context.Context,
	g search.Graph[N, E],
	origin N,
	goals []N,
	cost search.CostFunc[N, E, K],
	parallelism int,
) (table[N, K], error) {
	stops := append([]N{origin}, goals...)
	results := make([]map[N]*search.Path[N, K], len(stops))

	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(parallelism)
	for i, from := range stops {
		eg.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			targets := slices.DeleteFunc(slices.Clone(goals), func(n N) bool { return n == from })
			results[i] = search.Dijkstra(g, from, targets, cost)
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, fmt.Errorf("build leg table: %w", err)
	}

	legs := make(table[N, K], len(stops)*len(goals))
	for i, from := range stops {
		for to, p := range results[i] {
			legs[leg[N]{from, to}] = p
		}
	}
	return legs, nil
}

// condense builds the goal graph: origin first, then goals in query order.
// Unreachable legs become infinite edges when K can express infinity and
// are left out otherwise.
func condense[N comparable, K search.Score](origin N, goals []N, legs table[N, K]) *search.Adjacency[N, K] {
	inf, hasInf := search.Infinity[K]()
	condensed := search.NewAdjacency[N, K]()
	condensed.AddNode(origin)
	for _, goal := range goals {
		condensed.AddNode(goal)
	}

	stops := append([]N{origin}, goals...)
	for _, from := range stops {
		for _, to := range goals {
			if from == to {
				continue
			}
			switch p := legs[leg[N]{from, to}]; {
			case p != nil:
				condensed.SetEdge(from, to, p.Cost)
			case hasInf:
				condensed.SetEdge(from, to, inf)
			}
		}
	}
	return condensed
}

// stitch maps the winning order back onto the precomputed legs.
func stitch[N comparable, K search.Score](origin N, order *search.Path[N, K], legs table[N, K]) *Route[N, K] {
	r := &Route[N, K]{Origin: origin, Cost: order.Cost}
	for i := 1; i < len(order.Nodes); i++ {
		from, to := order.Nodes[i-1], order.Nodes[i]
		p, ok := legs[leg[N]{from, to}]
		if !ok || p == nil {
			panic(fmt.Sprintf("route: invariant violated: no leg %v → %v in the leg table", from, to))
		}
		r.Segments = append(r.Segments, Segment[N]{Goal: to, Path: p.Nodes})
	}
	return r
}
