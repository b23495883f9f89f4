// Package pkg provides the core libraries for graphbash.
//
// # Overview
//
// graphbash reads the panel behaviour table out of a RAM dump, expands it
// into a graph where each edge is the set of inputs that move the cursor
// from one panel to another, and finds the cheapest input code that visits
// every requested target panel.
//
// # Architecture
//
// The typical data flow:
//
//	RAM dump
//	   ↓
//	[panel] package (generate the panel graph, price moves)
//	   ↓
//	[route] package (best goal order over [search] shortest paths)
//	   ↓
//	[pipeline] package (cache, translate to input codes)
//	   ↓
//	text, JSON, DOT or SVG output
//
// # Main Packages
//
// [search] - Generic graph search: a priority queue with deterministic ties,
// a path-tree arena, multi-target Dijkstra and the best-first search for the
// cheapest order to visit a set of nodes.
//
// [route] - Composes search results into a route through every goal, and an
// exhaustive reference search used to verify results.
//
// [panel] - The panel domain: direction flags, graph generation from a RAM
// dump, the cost policy and input codes.
//
// [graph] - JSON serialization of panel graphs.
//
// [pipeline] - Load, route and render, shared by the CLI and the HTTP API.
//
// ## Infrastructure
//
// [cache] - Generated graph cache with file, Redis and MongoDB backends.
//
// [config] - TOML configuration.
//
// [errors] - Error codes shared by the CLI and the HTTP API.
//
// [observability] - Hooks for pipeline, cache and HTTP events.
//
// [render/nodelink] - Route diagrams as DOT and SVG.
//
// [search]: github.com/matzehuels/graphbash/pkg/search
// [route]: github.com/matzehuels/graphbash/pkg/route
// [panel]: github.com/matzehuels/graphbash/pkg/panel
// [graph]: github.com/matzehuels/graphbash/pkg/graph
// [pipeline]: github.com/matzehuels/graphbash/pkg/pipeline
// [cache]: github.com/matzehuels/graphbash/pkg/cache
// [config]: github.com/matzehuels/graphbash/pkg/config
// [errors]: github.com/matzehuels/graphbash/pkg/errors
// [observability]: github.com/matzehuels/graphbash/pkg/observability
// [render/nodelink]: github.com/matzehuels/graphbash/pkg/render/nodelink
package pkg
