// Package route composes the searches of package search into a full
// multi-goal route query.
//
// [FindRoutes] answers "starting at origin, what is the cheapest way to
// reach every goal, and in which order?":
//
//  1. Run [search.Dijkstra] from the origin and from every goal, each time
//     targeting all other goals. This yields the cost and node path of every
//     leg between two stops.
//  2. Build the condensed goal graph whose nodes are the origin and the goals
//     and whose edges are those leg costs.
//  3. Run [search.ShortestHamiltonianPath] on the condensed graph.
//  4. Stitch the legs of the winning order back into [Segment]s.
//
// The legs of step 1 are independent and run concurrently. The graph must
// not be modified while a query runs.
//
// A query without a finite answer returns an error with code
// errors.ErrCodeNoRoute that also matches [ErrNoRoute].
package route
