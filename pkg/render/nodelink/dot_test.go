package nodelink

import (
	"context"
	"os"
	"strings"
	"testing"

	"github.com/matzehuels/graphbash/pkg/panel"
	"github.com/matzehuels/graphbash/pkg/route"
)

func sample() (*panel.Graph, *route.Route[int32, float64]) {
	g := panel.NewGraph()
	g.AddMove(34, 35, panel.Right)
	g.AddMove(35, 20, panel.UpLeft)
	g.AddMove(20, 35, panel.DownRight)
	r := &route.Route[int32, float64]{
		Origin: 34,
		Segments: []route.Segment[int32]{
			{Goal: 20, Path: []int32{34, 35, 20}},
			{Goal: 35, Path: []int32{20, 35}},
		},
		Cost: 3.3,
	}
	return g, r
}

func TestToDOT(t *testing.T) {
	g, r := sample()
	dot, err := ToDOT(g, r, Options{Names: map[int32]string{20: "instawin"}})
	if err != nil {
		t.Fatalf("ToDOT: %v", err)
	}

	for _, want := range []string{
		"digraph G {",
		`"p34" [label="34", shape=doubleoctagon`,
		`"p20" [label="instawin\n20", fillcolor=gold`,
		`"p34" -> "p35" [label="1: R"`,
		`"p35" -> "p20" [label="2: UL"`,
		`"p20" -> "p35" [label="3: DR"`,
	} {
		if !strings.Contains(dot, want) {
			t.Errorf("DOT missing %q:\n%s", want, dot)
		}
	}
	if n := strings.Count(dot, `"p35" [`); n != 1 {
		t.Errorf("panel 35 declared %d times, want 1", n)
	}
}

func TestToDOTDetailed(t *testing.T) {
	g, r := sample()
	dot, err := ToDOT(g, r, Options{Detailed: true})
	if err != nil {
		t.Fatalf("ToDOT: %v", err)
	}
	if !strings.Contains(dot, `label="2: UL (1.1)"`) {
		t.Errorf("detailed DOT should carry step costs:\n%s", dot)
	}
}

func TestToDOTMissingMove(t *testing.T) {
	g, r := sample()
	r.Segments[1].Path = []int32{20, 34}
	if _, err := ToDOT(g, r, Options{}); err == nil {
		t.Error("expected error for a step without a move")
	}
}

func TestNormalizeViewBox(t *testing.T) {
	in := []byte(`<svg width="100pt" height="50pt" viewBox="0.00 0.00 100.00 50.00" xmlns="http://www.w3.org/2000/svg"><g/></svg>`)
	out := string(normalizeViewBox(in))
	if !strings.HasPrefix(out, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 100.00 50.00" width="100" height="50">`) {
		t.Errorf("normalizeViewBox = %s", out)
	}
	if got := normalizeViewBox([]byte("<svg></svg>")); string(got) != "<svg></svg>" {
		t.Errorf("SVG without viewBox should be unchanged, got %s", got)
	}
}

func TestRenderSVG(t *testing.T) {
	if os.Getenv("GRAPHBASH_SKIP_GRAPHVIZ") != "" {
		t.Skip("graphviz rendering disabled")
	}
	g, r := sample()
	dot, err := ToDOT(g, r, Options{})
	if err != nil {
		t.Fatalf("ToDOT: %v", err)
	}
	svg, err := RenderSVG(context.Background(), dot)
	if err != nil {
		t.Fatalf("RenderSVG: %v", err)
	}
	if !strings.Contains(string(svg), "<svg") {
		t.Error("output is not SVG")
	}
}
