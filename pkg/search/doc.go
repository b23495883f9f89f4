// Package search implements the route searches used by graphbash.
//
// The package is generic over the node identifier type N, the edge label
// type E and the score type K. It knows nothing about panels or directions:
// callers supply a [Graph] and a [CostFunc] that turns an edge label into a
// score.
//
// # Algorithms
//
//   - [Dijkstra]: single-source shortest paths that stop as soon as every
//     requested goal has been finalized.
//   - [ShortestHamiltonianPath]: best-first search over partial orderings
//     of all nodes of a (small) graph, starting from a fixed node and
//     visiting each node exactly once.
//
// Both searches use the same min-ordered priority queue. Partial orderings
// are stored in a [PathTree], an append-only arena addressed by [Ref]
// handles, so branching costs O(1) and paths are only rebuilt on demand.
//
// # Infinite scores
//
// A cost function may return +Inf (see [Infinity]) to mark an edge as
// unusable. Such edges are still relaxed; they are simply never preferred
// over a finite alternative. [Dijkstra] reports goals whose best distance is
// infinite as unreachable. [ShortestHamiltonianPath] does not special-case
// them, callers must check [IsInfinite] on the returned cost.
//
// # Concurrency
//
// Every call owns its queue, distance table and path tree. Graphs are only
// read, so independent searches over the same graph may run in parallel.
package search
