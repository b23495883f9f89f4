package search

import "container/heap"

// Dijkstra computes shortest paths from start to every node in goals.
//
// The search stops as soon as every goal has been popped with its final
// distance, so only the part of the graph closer than the farthest goal is
// explored. Stale queue entries are skipped (lazy decrease-key). A distance
// is only replaced by a strictly smaller one, so among equal-cost paths the
// first discovered predecessor wins.
//
// The returned map has one entry per goal. The entry is nil when the goal
// was not reached or its best distance is infinite.
//
// Complexity: O((V + E) log V) over the explored subgraph.
func Dijkstra[N comparable, E any, K Score](g Graph[N, E], start N, goals []N, cost CostFunc[N, E, K]) map[N]*Path[N, K] {
	var zero K
	remaining := make(map[N]struct{}, len(goals))
	for _, goal := range goals {
		remaining[goal] = struct{}{}
	}

	scores := map[N]K{start: zero}
	predecessors := make(map[N]N)
	queue := &scoredHeap[N, K]{{item: start, score: zero}}

	if g.Contains(start) {
		for queue.Len() > 0 {
			next := heap.Pop(queue).(scored[N, K])
			current := next.item
			best := scores[current]
			if compareScored(next.score, best) < 0 {
				continue // superseded by a cheaper entry
			}

			delete(remaining, current)
			if len(remaining) == 0 {
				break
			}

			for _, e := range g.Edges(current) {
				candidate := best + cost(e)
				if known, ok := scores[e.To]; ok && candidate >= known {
					continue
				}
				scores[e.To] = candidate
				predecessors[e.To] = current
				heap.Push(queue, scored[N, K]{item: e.To, score: candidate})
			}
		}
	}

	out := make(map[N]*Path[N, K], len(goals))
	for _, goal := range goals {
		score, ok := scores[goal]
		if !ok || IsInfinite(score) {
			out[goal] = nil
			continue
		}
		out[goal] = &Path[N, K]{
			Nodes: walkPredecessors(predecessors, start, goal),
			Cost:  score,
		}
	}
	return out
}

// walkPredecessors rebuilds the path ending at goal and returns it in
// start-to-goal order.
func walkPredecessors[N comparable](predecessors map[N]N, start, goal N) []N {
	path := []N{goal}
	for node := goal; node != start; {
		pred, ok := predecessors[node]
		if !ok {
			break
		}
		path = append(path, pred)
		node = pred
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}
