package server

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"reflect"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/graphbash/pkg/cache"
	"github.com/matzehuels/graphbash/pkg/config"
	"github.com/matzehuels/graphbash/pkg/errors"
	"github.com/matzehuels/graphbash/pkg/graph"
	"github.com/matzehuels/graphbash/pkg/observability"
	"github.com/matzehuels/graphbash/pkg/panel"
	"github.com/matzehuels/graphbash/pkg/pipeline"
)

// newTestServer serves a line of panels 0..4 joined by left and right
// moves, plus panel 9 which nothing reaches.
func newTestServer(t *testing.T) *Server {
	t.Helper()
	g := panel.NewGraph()
	for p := int32(0); p < 4; p++ {
		g.AddMove(p, p+1, panel.Right)
		g.AddMove(p+1, p, panel.Left)
	}
	g.AddNode(9)

	cfg := config.Default()
	cfg.Graph.Root = 0
	cfg.Server.MaxGoals = 3
	cfg.Targets = []config.Target{
		{Name: "far", Node: 4},
		{Name: "near", Node: 2},
		{Name: "island", Node: 9, Optional: true},
	}

	logger := log.New(io.Discard)
	runner := pipeline.NewRunner(cache.NewNullCache(), nil, logger)
	srv, err := New(runner, cfg, &pipeline.LoadedGraph{
		Graph:  g,
		Source: graph.Source{DumpSHA256: "test", MaxDepth: 5},
	}, logger)
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	return srv
}

func do(t *testing.T, srv *Server, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, r)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.NewDecoder(rec.Body).Decode(&v); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return v
}

func TestHealth(t *testing.T) {
	rec := do(t, newTestServer(t), http.MethodGet, "/healthz", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("GET /healthz status = %d, want 200", rec.Code)
	}
	body := decode[map[string]any](t, rec)
	if body["status"] != "ok" || body["nodes"] != float64(6) {
		t.Errorf("health = %v", body)
	}
}

func TestGraphETag(t *testing.T) {
	srv := newTestServer(t)

	rec := do(t, srv, http.MethodGet, "/v1/graph", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("GET /v1/graph status = %d, want 200", rec.Code)
	}
	etag := rec.Header().Get("ETag")
	if etag == "" {
		t.Fatal("GET /v1/graph should set an ETag")
	}
	g, _, err := graph.ReadGraph(rec.Body)
	if err != nil {
		t.Fatalf("ReadGraph() error: %v", err)
	}
	if g.NodeCount() != 6 || g.EdgeCount() != 8 {
		t.Errorf("graph has %d nodes, %d edges, want 6, 8", g.NodeCount(), g.EdgeCount())
	}

	req := httptest.NewRequest(http.MethodGet, "/v1/graph", nil)
	req.Header.Set("If-None-Match", etag)
	cached := httptest.NewRecorder()
	srv.Handler().ServeHTTP(cached, req)
	if cached.Code != http.StatusNotModified {
		t.Errorf("conditional GET status = %d, want 304", cached.Code)
	}
}

func TestTargets(t *testing.T) {
	rec := do(t, newTestServer(t), http.MethodGet, "/v1/targets", "")
	targets := decode[[]config.Target](t, rec)
	if len(targets) != 3 || targets[2].Name != "island" || !targets[2].Optional {
		t.Errorf("targets = %+v", targets)
	}
}

func TestRouteDefaultTargets(t *testing.T) {
	rec := do(t, newTestServer(t), http.MethodPost, "/v1/routes", `{}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("POST /v1/routes status = %d, body %s", rec.Code, rec.Body)
	}
	res := decode[pipeline.Result](t, rec)

	if !reflect.DeepEqual(res.Goals, []int32{2, 4}) {
		t.Errorf("Goals = %v, want [2 4]", res.Goals)
	}
	if res.Cost != 4 || res.Steps != 4 {
		t.Errorf("Cost, Steps = %v, %d, want 4, 4", res.Cost, res.Steps)
	}
	if !reflect.DeepEqual(res.Code, []string{"R", "R", "R", "R"}) {
		t.Errorf("Code = %v", res.Code)
	}
	if res.Segments[0].Name != "near" || res.Segments[1].Name != "far" {
		t.Errorf("segment names = %q, %q", res.Segments[0].Name, res.Segments[1].Name)
	}
	if _, err := uuid.Parse(res.ID); err != nil {
		t.Errorf("result ID %q is not a UUID", res.ID)
	}
}

func TestRouteNumericGoalAndOrigin(t *testing.T) {
	rec := do(t, newTestServer(t), http.MethodPost, "/v1/routes", `{"origin": 4, "goals": [1, "near"], "verify": true}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("POST /v1/routes status = %d, body %s", rec.Code, rec.Body)
	}
	res := decode[pipeline.Result](t, rec)
	if res.Origin != 4 || !reflect.DeepEqual(res.Goals, []int32{2, 1}) {
		t.Errorf("Origin, Goals = %d, %v, want 4, [2 1]", res.Origin, res.Goals)
	}
	if !res.Stats.Verified {
		t.Error("verify should mark the result as verified")
	}
}

func TestRouteErrors(t *testing.T) {
	tests := []struct {
		name   string
		path   string
		body   string
		status int
		code   errors.Code
	}{
		{"unknown target", "/v1/routes", `{"goals": ["nope"]}`, http.StatusBadRequest, errors.ErrCodeInvalidTarget},
		{"unreachable", "/v1/routes", `{"goals": ["island"]}`, http.StatusUnprocessableEntity, errors.ErrCodeNoRoute},
		{"unknown origin", "/v1/routes", `{"origin": 77, "goals": [4]}`, http.StatusNotFound, errors.ErrCodeNodeNotFound},
		{"unknown field", "/v1/routes", `{"goal": [4]}`, http.StatusBadRequest, errors.ErrCodeInvalidInput},
		{"bad goal", "/v1/routes", `{"goals": [true]}`, http.StatusBadRequest, errors.ErrCodeInvalidInput},
		{"bad format", "/v1/routes?format=png", `{}`, http.StatusBadRequest, errors.ErrCodeInvalidInput},
		{"too many goals", "/v1/routes", `{"goals": [1, 2, 3, 4]}`, http.StatusBadRequest, errors.ErrCodeInvalidInput},
	}

	srv := newTestServer(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, srv, http.MethodPost, tt.path, tt.body)
			if rec.Code != tt.status {
				t.Fatalf("status = %d, want %d (body %s)", rec.Code, tt.status, rec.Body)
			}
			body := decode[ErrorResponse](t, rec)
			if body.Code != string(tt.code) {
				t.Errorf("code = %q, want %q", body.Code, tt.code)
			}
			if body.Error == "" || body.RequestID == "" {
				t.Errorf("error response = %+v", body)
			}
		})
	}
}

func TestRouteDOT(t *testing.T) {
	rec := do(t, newTestServer(t), http.MethodPost, "/v1/routes?format=dot", `{"goals": ["far"]}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "text/vnd.graphviz" {
		t.Errorf("Content-Type = %q", ct)
	}
	if !strings.Contains(rec.Body.String(), `"p0" -> "p1"`) {
		t.Errorf("DOT output missing first step:\n%s", rec.Body)
	}
}

func TestRequestID(t *testing.T) {
	srv := newTestServer(t)

	rec := do(t, srv, http.MethodGet, "/healthz", "")
	if _, err := uuid.Parse(rec.Header().Get(RequestIDHeader)); err != nil {
		t.Errorf("generated request ID %q is not a UUID", rec.Header().Get(RequestIDHeader))
	}

	id := uuid.NewString()
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set(RequestIDHeader, id)
	echoed := httptest.NewRecorder()
	srv.Handler().ServeHTTP(echoed, req)
	if got := echoed.Header().Get(RequestIDHeader); got != id {
		t.Errorf("request ID = %q, want caller's %q", got, id)
	}
}

type recordingHTTPHooks struct {
	mu     sync.Mutex
	events []string
}

func (h *recordingHTTPHooks) OnRequest(_ context.Context, method, path string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.events = append(h.events, method+" "+path)
}

func (h *recordingHTTPHooks) OnResponse(_ context.Context, method, path string, status int, _ time.Duration) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.events = append(h.events, fmt.Sprintf("%s %s %d", method, path, status))
}

func TestHTTPHooks(t *testing.T) {
	hooks := &recordingHTTPHooks{}
	observability.SetHTTPHooks(hooks)
	t.Cleanup(observability.Reset)

	do(t, newTestServer(t), http.MethodGet, "/v1/targets", "")
	want := []string{"GET /v1/targets", "GET /v1/targets 200"}
	if !reflect.DeepEqual(hooks.events, want) {
		t.Errorf("events = %v, want %v", hooks.events, want)
	}
}

func TestStatusFor(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{errors.New(errors.ErrCodeInvalidInput, "bad"), http.StatusBadRequest},
		{errors.New(errors.ErrCodeNodeNotFound, "missing"), http.StatusNotFound},
		{errors.New(errors.ErrCodeNoRoute, "none"), http.StatusUnprocessableEntity},
		{fmt.Errorf("search: %w", context.DeadlineExceeded), http.StatusGatewayTimeout},
		{errors.New(errors.ErrCodeUnsupported, "no"), http.StatusNotImplemented},
		{io.ErrUnexpectedEOF, http.StatusInternalServerError},
	}
	for _, tt := range tests {
		if got := statusFor(tt.err); got != tt.want {
			t.Errorf("statusFor(%v) = %d, want %d", tt.err, got, tt.want)
		}
	}
}

func TestListenAndServeStops(t *testing.T) {
	srv := newTestServer(t)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.ListenAndServe(ctx, "127.0.0.1:0") }()

	time.Sleep(50 * time.Millisecond)
	cancel()
	select {
	case err := <-done:
		if err != context.Canceled {
			t.Errorf("ListenAndServe() = %v, want context.Canceled", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("ListenAndServe did not stop after cancel")
	}
}
