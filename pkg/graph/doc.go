// Package graph provides the serialization format for panel graphs.
//
// Generating a panel graph from a RAM dump is the slow part of every query,
// so generated graphs are written to disk, cached and served over HTTP in
// the node-link format defined here.
//
// # Format
//
//	{
//	  "source": {"dump_sha256": "…", "start": 0, "max_depth": 50},
//	  "nodes": [{"id": 0}, {"id": -2}, …],
//	  "edges": [{"from": 0, "to": -2, "dirs": "U|ULR", "mask": 1025}, …]
//	}
//
// Nodes and edges keep the order of the in-memory graph, which for a
// generated graph is breadth-first discovery order. Searches break cost ties
// by that order, so a reloaded graph answers every query exactly like the
// graph it was written from.
//
// Each edge carries its inputs twice: "dirs" for people and "mask" for
// tools. When both are present they must agree.
//
// # Usage
//
//	data, err := graph.MarshalGraph(g, graph.Source{Start: 0, MaxDepth: 50})
//	g, src, err := graph.ReadGraphFile("graph.json")
package graph
