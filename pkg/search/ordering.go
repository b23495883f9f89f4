package search

import (
	"container/heap"
	"context"
)

// cancelCheckInterval is how many pops the ordering search makes between
// context checks.
const cancelCheckInterval = 1024

// OrderingStats describes the work done by [ShortestHamiltonianPathStats].
type OrderingStats struct {
	Expanded    int // partial orderings popped from the queue
	Pushed      int // partial orderings pushed onto the queue
	TreeRecords int // records allocated in the path tree
}

// ShortestHamiltonianPath finds the cheapest path that starts at start and
// visits every node of g exactly once. It returns false if no such path
// exists.
//
// The search is best-first over partial orderings: the cheapest partial
// ordering is always expanded next, so the first complete ordering popped is
// optimal. No lower bound is estimated for the unvisited suffix, which keeps
// the search exact but exponential; it is meant for graphs of a handful of
// nodes such as the condensed goal graph built by the route composer.
//
// Edges with an infinite cost are expanded like any other edge. If only
// infinite orderings exist one of them is returned, so callers must check
// [IsInfinite] on the cost.
func ShortestHamiltonianPath[N comparable, E any, K Score](g Graph[N, E], start N, cost CostFunc[N, E, K]) (*Path[N, K], bool) {
	path, _, ok := ShortestHamiltonianPathStats(g, start, cost)
	return path, ok
}

// ShortestHamiltonianPathStats is [ShortestHamiltonianPath] that also reports
// search statistics.
func ShortestHamiltonianPathStats[N comparable, E any, K Score](g Graph[N, E], start N, cost CostFunc[N, E, K]) (*Path[N, K], OrderingStats, bool) {
	path, stats, ok, _ := ShortestHamiltonianPathContext(context.Background(), g, start, cost)
	return path, stats, ok
}

// ShortestHamiltonianPathContext is [ShortestHamiltonianPathStats] that stops
// with ctx.Err() once ctx is done. The search space grows factorially with
// the node count, so callers serving requests should pass a deadline.
func ShortestHamiltonianPathContext[N comparable, E any, K Score](ctx context.Context, g Graph[N, E], start N, cost CostFunc[N, E, K]) (*Path[N, K], OrderingStats, bool, error) {
	var (
		zero  K
		stats OrderingStats
	)
	nodeCount := len(g.Nodes())
	tree := NewPathTree[N](nodeCount * nodeCount)
	queue := &scoredHeap[Ref[N], K]{{item: tree.PushRoot(start), score: zero}}
	stats.Pushed = 1

	for queue.Len() > 0 {
		if stats.Expanded%cancelCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				stats.TreeRecords = tree.Len()
				return nil, stats, false, err
			}
		}
		next := heap.Pop(queue).(scored[Ref[N], K])
		current := next.item
		stats.Expanded++

		if current.Depth+1 == nodeCount {
			stats.TreeRecords = tree.Len()
			return &Path[N, K]{Nodes: tree.RecreatePath(current), Cost: next.score}, stats, true, nil
		}

		for _, e := range g.Edges(current.ID) {
			if tree.PathIncludes(current, e.To) {
				continue
			}
			heap.Push(queue, scored[Ref[N], K]{
				item:  tree.Push(current, e.To),
				score: next.score + cost(e),
			})
			stats.Pushed++
		}
	}

	stats.TreeRecords = tree.Len()
	return nil, stats, false, nil
}
