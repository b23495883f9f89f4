// Package nodelink renders routes as node-link diagrams.
//
// # Overview
//
// [ToDOT] lays out the panels of a route left to right in visiting order.
// The origin is drawn as a double octagon, goals are filled, and every
// arrow is labelled with its step number and the inputs that play it.
// Arrows of one segment share a colour so the legs stand apart.
//
// # Usage
//
//	dot, err := nodelink.ToDOT(g, r, nodelink.Options{Names: names})
//	svg, err := nodelink.RenderSVG(ctx, dot)
//
// # Options
//
//   - Names: display names for panels, typically the configured targets
//   - Detailed: also print the cost of every step
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz] for in-process SVG
// rendering, so no Graphviz installation is needed.
package nodelink
