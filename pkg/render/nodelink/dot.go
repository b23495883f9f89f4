package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/graphbash/pkg/panel"
	"github.com/matzehuels/graphbash/pkg/route"
	"github.com/matzehuels/graphbash/pkg/search"
)

// Options configures route diagram rendering.
type Options struct {
	// Names labels panels, e.g. with target names. Unnamed panels show
	// their index.
	Names map[int32]string
	// Detailed adds the cost of each step to its arrow.
	Detailed bool
	// Cost prices steps when Detailed is set. Defaults to the real-time policy.
	Cost *panel.CostPolicy
}

// segmentColors cycles through the colours used for consecutive segments.
var segmentColors = []string{"#1f77b4", "#d62728", "#2ca02c", "#9467bd", "#ff7f0e", "#8c564b", "#e377c2", "#17becf"}

// ToDOT converts a route over g to Graphviz DOT format.
// The resulting DOT string can be rendered using [RenderSVG].
func ToDOT(g *panel.Graph, r *route.Route[int32, float64], opts Options) (string, error) {
	policy := panel.DefaultCostPolicy()
	if opts.Cost != nil {
		policy = *opts.Cost
	}
	price := policy.Func()

	goals := make(map[int32]bool, len(r.Segments))
	for _, s := range r.Segments {
		goals[s.Goal] = true
	}

	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  rankdir=LR;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=14, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  edge [fontsize=11];\n")
	buf.WriteString("\n")

	seen := make(map[int32]bool)
	for _, n := range r.Nodes() {
		if seen[n] {
			continue
		}
		seen[n] = true
		fmt.Fprintf(&buf, "  %q [%s];\n", nodeID(n), strings.Join(fmtAttrs(n, r.Origin, goals, opts.Names), ", "))
	}

	buf.WriteString("\n")
	step := 0
	for i, s := range r.Segments {
		color := segmentColors[i%len(segmentColors)]
		for j := 1; j < len(s.Path); j++ {
			from, to := s.Path[j-1], s.Path[j]
			dirs, ok := g.Move(from, to)
			if !ok {
				return "", fmt.Errorf("route step %d: no move from panel %d to panel %d", step+1, from, to)
			}
			step++
			label := fmt.Sprintf("%d: %s", step, dirs)
			if opts.Detailed {
				label += fmt.Sprintf(" (%.1f)", price(search.Edge[int32, panel.Directions]{From: from, To: to, Label: dirs}))
			}
			fmt.Fprintf(&buf, "  %q -> %q [label=%q, color=%q, fontcolor=%q];\n",
				nodeID(from), nodeID(to), label, color, color)
		}
	}

	buf.WriteString("}\n")
	return buf.String(), nil
}

func nodeID(n int32) string { return "p" + strconv.Itoa(int(n)) }

func fmtAttrs(n, origin int32, goals map[int32]bool, names map[int32]string) []string {
	label := strconv.Itoa(int(n))
	if name, ok := names[n]; ok {
		label = name + "\n" + label
	}
	attrs := []string{fmt.Sprintf("label=%q", label)}
	switch {
	case n == origin:
		attrs = append(attrs, "shape=doubleoctagon", "fillcolor=lightgrey")
	case goals[n]:
		attrs = append(attrs, "fillcolor=gold", "penwidth=2")
	}
	return attrs
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox rewrites the root element so the SVG scales with its
// container instead of using Graphviz's point-based size.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	newSvg := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)

	return svgTagRe.ReplaceAll(svg, []byte(newSvg))
}
