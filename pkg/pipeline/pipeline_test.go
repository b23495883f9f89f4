package pipeline

import (
	"context"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/graphbash/pkg/cache"
	"github.com/matzehuels/graphbash/pkg/errors"
	"github.com/matzehuels/graphbash/pkg/graph"
	"github.com/matzehuels/graphbash/pkg/observability"
	"github.com/matzehuels/graphbash/pkg/panel"
)

// writeLineDump writes a RAM dump where panels 0..4 move one step left or
// right and every other panel stays put.
func writeLineDump(t *testing.T) string {
	t.Helper()
	dump := make([]byte, panel.BehaviourTableAddress+16*panel.BehaviourRecordSize)
	for p := 0; p <= 4; p++ {
		at := panel.BehaviourTableAddress + p*panel.BehaviourRecordSize
		dump[at+0] = 0xFF // left: -1
		dump[at+1] = 0x01 // right: +1
	}
	path := filepath.Join(t.TempDir(), "RAM.bin")
	if err := os.WriteFile(path, dump, 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func quietRunner(t *testing.T, c cache.Cache) *Runner {
	t.Helper()
	return NewRunner(c, nil, log.New(&strings.Builder{}))
}

func TestValidateFormat(t *testing.T) {
	tests := []struct {
		format  string
		wantErr bool
	}{
		{"dot", false},
		{"svg", false},
		{"png", true},
		{"SVG", true}, // case-sensitive
		{"", true},
	}

	for _, tt := range tests {
		err := ValidateFormat(tt.format)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateFormat(%q) error = %v, wantErr %v", tt.format, err, tt.wantErr)
		}
	}
}

func TestGraphOptionsValidate(t *testing.T) {
	tests := []struct {
		name string
		opts GraphOptions
		code errors.Code
	}{
		{"no source", GraphOptions{}, errors.ErrCodeInvalidInput},
		{"negative depth", GraphOptions{Dump: "RAM.bin", MaxDepth: -1}, errors.ErrCodeInvalidInput},
		{"bad path", GraphOptions{File: "graph\x00.json"}, errors.ErrCodeInvalidPath},
		{"file", GraphOptions{File: "graph.json"}, ""},
		{"dump", GraphOptions{Dump: "RAM.bin", MaxDepth: 50}, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.opts.Validate()
			if got := errors.GetCode(err); got != tt.code {
				t.Errorf("Validate() code = %q (%v), want %q", got, err, tt.code)
			}
		})
	}
}

func TestLoadGraphCaches(t *testing.T) {
	ctx := context.Background()
	c, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	r := quietRunner(t, c)
	opts := GraphOptions{Dump: writeLineDump(t), MaxDepth: 10}

	first, err := r.LoadGraph(ctx, opts)
	if err != nil {
		t.Fatalf("LoadGraph: %v", err)
	}
	if first.CacheHit {
		t.Error("first load should miss the cache")
	}
	if first.Source.DumpSHA256 == "" || first.Source.MaxDepth != 10 {
		t.Errorf("source = %+v", first.Source)
	}

	second, err := r.LoadGraph(ctx, opts)
	if err != nil {
		t.Fatalf("LoadGraph: %v", err)
	}
	if !second.CacheHit {
		t.Error("second load should hit the cache")
	}
	if !slices.Equal(first.Graph.AllEdges(), second.Graph.AllEdges()) {
		t.Error("cached graph differs from the generated one")
	}

	opts.Refresh = true
	third, err := r.LoadGraph(ctx, opts)
	if err != nil {
		t.Fatalf("LoadGraph: %v", err)
	}
	if third.CacheHit {
		t.Error("refresh should bypass the cache")
	}

	opts.Refresh = false
	opts.MaxDepth = 9
	if other, _ := r.LoadGraph(ctx, opts); other.CacheHit {
		t.Error("a different depth must not reuse the cached graph")
	}
}

func TestLoadGraphFile(t *testing.T) {
	ctx := context.Background()
	r := quietRunner(t, nil)
	generated, err := r.LoadGraph(ctx, GraphOptions{Dump: writeLineDump(t), MaxDepth: 3})
	if err != nil {
		t.Fatalf("LoadGraph: %v", err)
	}

	path := filepath.Join(t.TempDir(), "graph.json")
	if err := graph.WriteGraphFile(generated.Graph, generated.Source, path); err != nil {
		t.Fatalf("WriteGraphFile: %v", err)
	}
	loaded, err := r.LoadGraph(ctx, GraphOptions{File: path})
	if err != nil {
		t.Fatalf("LoadGraph(file): %v", err)
	}
	if loaded.Source != generated.Source {
		t.Errorf("source = %+v, want %+v", loaded.Source, generated.Source)
	}
	if loaded.Graph.NodeCount() != generated.Graph.NodeCount() {
		t.Errorf("nodes = %d, want %d", loaded.Graph.NodeCount(), generated.Graph.NodeCount())
	}
}

func TestLoadGraphMissingDump(t *testing.T) {
	r := quietRunner(t, nil)
	_, err := r.LoadGraph(context.Background(), GraphOptions{Dump: filepath.Join(t.TempDir(), "none.bin")})
	if !errors.Is(err, errors.ErrCodeInvalidDump) {
		t.Errorf("error = %v, want code %s", err, errors.ErrCodeInvalidDump)
	}
}

func loadLine(t *testing.T) *panel.Graph {
	t.Helper()
	loaded, err := quietRunner(t, nil).LoadGraph(context.Background(), GraphOptions{Dump: writeLineDump(t), MaxDepth: 10})
	if err != nil {
		t.Fatalf("LoadGraph: %v", err)
	}
	return loaded.Graph
}

func TestRoute(t *testing.T) {
	g := loadLine(t)
	r := quietRunner(t, nil)

	res, err := r.Route(context.Background(), g, RouteOptions{
		Origin: 0,
		Goals:  []int32{3, 1},
		Policy: panel.DefaultCostPolicy(),
		Names:  map[int32]string{3: "three"},
		Verify: true,
	})
	if err != nil {
		t.Fatalf("Route: %v", err)
	}

	if !slices.Equal(res.Goals, []int32{1, 3}) {
		t.Errorf("goals = %v, want [1 3]", res.Goals)
	}
	if res.Cost != 3 || res.Steps != 3 {
		t.Errorf("cost = %v steps = %d, want 3 and 3", res.Cost, res.Steps)
	}
	if !slices.Equal(res.Code, []string{"R", "R", "R"}) {
		t.Errorf("code = %v, want [R R R]", res.Code)
	}
	if len(res.Segments) != 2 {
		t.Fatalf("segments = %d, want 2", len(res.Segments))
	}
	if s := res.Segments[1]; s.Name != "three" || !slices.Equal(s.Nodes, []int32{1, 2, 3}) || s.Cost != 2 {
		t.Errorf("second segment = %+v", s)
	}
	if res.ID == "" || !res.Stats.Verified || res.Stats.Legs != 3 {
		t.Errorf("id = %q stats = %+v", res.ID, res.Stats)
	}
}

func TestRouteErrors(t *testing.T) {
	g := loadLine(t)
	r := quietRunner(t, nil)
	ctx := context.Background()

	tests := []struct {
		name string
		opts RouteOptions
		code errors.Code
	}{
		{"no goals", RouteOptions{Origin: 0, Policy: panel.DefaultCostPolicy()}, errors.ErrCodeInvalidInput},
		{"bad policy", RouteOptions{Origin: 0, Goals: []int32{1}, Policy: panel.CostPolicy{Straight: -1}}, errors.ErrCodeInvalidConfig},
		{"unknown origin", RouteOptions{Origin: 99, Goals: []int32{1}, Policy: panel.DefaultCostPolicy()}, errors.ErrCodeNodeNotFound},
		{"unreachable", RouteOptions{Origin: 0, Goals: []int32{1, 99}, Policy: panel.DefaultCostPolicy()}, errors.ErrCodeNoRoute},
		{"blocked", RouteOptions{Origin: 0, Goals: []int32{2}, Policy: panel.CostPolicy{Straight: 1, Diagonal: 1, Other: 1, Blocked: []int32{2}}}, errors.ErrCodeNoRoute},
		{"too many to verify", RouteOptions{Origin: 0, Goals: make([]int32, 10), Policy: panel.DefaultCostPolicy(), Verify: true}, errors.ErrCodeInvalidInput},
		{"over goal cap", RouteOptions{Origin: 0, Goals: []int32{1, 2, 3}, Policy: panel.DefaultCostPolicy(), MaxGoals: 2}, errors.ErrCodeInvalidInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := r.Route(ctx, g, tt.opts)
			if !errors.Is(err, tt.code) {
				t.Errorf("error = %v, want code %s", err, tt.code)
			}
		})
	}
}

func TestRenderDOT(t *testing.T) {
	g := loadLine(t)
	res, err := quietRunner(t, nil).Route(context.Background(), g, RouteOptions{
		Origin: 0,
		Goals:  []int32{2},
		Policy: panel.DefaultCostPolicy(),
	})
	if err != nil {
		t.Fatalf("Route: %v", err)
	}

	dot, err := Render(context.Background(), g, res, FormatDOT, map[int32]string{2: "two"})
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if !strings.Contains(string(dot), `"p1" -> "p2" [label="2: R"`) {
		t.Errorf("unexpected DOT:\n%s", dot)
	}

	if _, err := Render(context.Background(), g, &Result{}, FormatDOT, nil); err == nil {
		t.Error("expected error for a result without route")
	}
	if _, err := Render(context.Background(), g, res, "png", nil); err == nil {
		t.Error("expected error for unsupported format")
	}
}

type recordingHooks struct {
	observability.NoopPipelineHooks
	events []string
}

func (h *recordingHooks) OnGenerateStart(context.Context, int32, int) {
	h.events = append(h.events, "generate-start")
}

func (h *recordingHooks) OnGenerateComplete(_ context.Context, _ int, _ time.Duration, err error) {
	h.events = append(h.events, "generate-complete")
}

func (h *recordingHooks) OnRouteStart(context.Context, int32, int) {
	h.events = append(h.events, "route-start")
}

func (h *recordingHooks) OnRouteComplete(_ context.Context, _ float64, _ time.Duration, err error) {
	if err != nil {
		h.events = append(h.events, "route-failed")
		return
	}
	h.events = append(h.events, "route-complete")
}

func TestPipelineHooks(t *testing.T) {
	hooks := &recordingHooks{}
	observability.SetPipelineHooks(hooks)
	defer observability.Reset()

	g := loadLine(t)
	r := quietRunner(t, nil)
	_, _ = r.Route(context.Background(), g, RouteOptions{Origin: 0, Goals: []int32{1}, Policy: panel.DefaultCostPolicy()})
	_, _ = r.Route(context.Background(), g, RouteOptions{Origin: 0, Goals: []int32{99}, Policy: panel.DefaultCostPolicy()})

	want := []string{"generate-start", "generate-complete", "route-start", "route-complete", "route-start", "route-failed"}
	if !slices.Equal(hooks.events, want) {
		t.Errorf("events = %v, want %v", hooks.events, want)
	}
}
