package route

import (
	"context"

	"github.com/matzehuels/graphbash/pkg/errors"
	"github.com/matzehuels/graphbash/pkg/perm"
	"github.com/matzehuels/graphbash/pkg/search"
)

// MaxExhaustiveGoals caps the goal count accepted by [Exhaustive].
const MaxExhaustiveGoals = 9

// Exhaustive answers the same query as [FindRoutes] by trying every goal
// order. It is a verification aid for small goal sets; the returned cost is
// always equal to the FindRoutes cost, although the order may differ when
// several orders tie.
func Exhaustive[N comparable, E any, K search.Score](
	ctx context.Context,
	g search.Graph[N, E],
	origin N,
	goals []N,
	cost search.CostFunc[N, E, K],
	opts ...Option,
) (*Route[N, K], error) {
	o := options{parallelism: 1}
	for _, opt := range opts {
		opt(&o)
	}

	if !g.Contains(origin) {
		return nil, errors.New(errors.ErrCodeNodeNotFound, "origin %v is not in the graph", origin)
	}
	goals = normalizeGoals(origin, goals)
	if len(goals) > MaxExhaustiveGoals {
		return nil, errors.New(errors.ErrCodeInvalidInput, "exhaustive search supports at most %d goals, got %d", MaxExhaustiveGoals, len(goals))
	}
	if len(goals) == 0 {
		return &Route[N, K]{Origin: origin}, nil
	}

	legs, err := buildTable(ctx, g, origin, goals, cost, o.parallelism)
	if err != nil {
		return nil, err
	}

	var (
		best      []int
		bestCost  K
		found     bool
		candidate = make([]N, len(goals)+1)
	)
	perm.Each(len(goals), func(p []int) bool {
		total, ok := orderCost(origin, goals, p, legs)
		if ok && (!found || total < bestCost) {
			best, bestCost, found = append(best[:0], p...), total, true
		}
		return ctx.Err() == nil
	})
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if !found {
		return nil, errors.Wrap(errors.ErrCodeNoRoute, ErrNoRoute, "goals cannot all be reached from %v", origin)
	}

	candidate[0] = origin
	for i, gi := range best {
		candidate[i+1] = goals[gi]
	}
	return stitch(origin, &search.Path[N, K]{Nodes: candidate, Cost: bestCost}, legs), nil
}

// orderCost sums the legs of one goal order. Unreachable legs make the
// order invalid.
func orderCost[N comparable, K search.Score](origin N, goals []N, order []int, legs table[N, K]) (K, bool) {
	var total K
	prev := origin
	for _, gi := range order {
		p := legs[leg[N]{prev, goals[gi]}]
		if p == nil {
			return total, false
		}
		total += p.Cost
		prev = goals[gi]
	}
	return total, true
}
