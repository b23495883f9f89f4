// Package render turns route query results into pictures.
//
// The [nodelink] subpackage draws a route as a Graphviz node-link diagram:
// one box per visited panel, one arrow per input, goals highlighted.
//
//	dot, err := nodelink.ToDOT(g, r, nodelink.Options{})
//	svg, err := nodelink.RenderSVG(ctx, dot)
//
// [nodelink]: github.com/matzehuels/graphbash/pkg/render/nodelink
package render
