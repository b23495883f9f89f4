// Package panel models the menu panel graph of the game: which panel index
// each directional input leads to, and what a move costs when played in
// real time.
//
// The graph is generated from a RAM dump by [Generate]. Each node is a panel
// index and each edge carries the [Directions] that move from one panel to
// the other. Several inputs can lead to the same panel; their flags are
// merged on a single edge.
//
// Costs are assigned by a [CostPolicy]. Straight inputs are cheapest,
// diagonals are risky and cost a little more, and inputs that press
// opposing directions at once cost the most. Moves into known crashing
// panels are infinite.
//
// [Code] turns a node path into the input sequence that plays it, and
// [FormatCode] renders that sequence for humans.
package panel
