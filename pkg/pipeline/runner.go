package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"math"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/graphbash/pkg/cache"
	"github.com/matzehuels/graphbash/pkg/errors"
	"github.com/matzehuels/graphbash/pkg/graph"
	"github.com/matzehuels/graphbash/pkg/observability"
	"github.com/matzehuels/graphbash/pkg/panel"
	"github.com/matzehuels/graphbash/pkg/route"
	"github.com/matzehuels/graphbash/pkg/search"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and API use this to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache and logger. Multiple
// goroutines can safely use the same Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// LoadGraph reads or generates the panel graph selected by opts.
func (r *Runner) LoadGraph(ctx context.Context, opts GraphOptions) (*LoadedGraph, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	start := time.Now()

	if opts.File != "" {
		g, src, err := graph.ReadGraphFile(opts.File)
		if err != nil {
			return nil, err
		}
		r.Logger.Info("loaded graph",
			"file", opts.File,
			"nodes", g.NodeCount(),
			"edges", g.EdgeCount())
		return &LoadedGraph{Graph: g, Source: src, Duration: time.Since(start)}, nil
	}

	dump, err := os.ReadFile(opts.Dump)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidDump, err, "read dump")
	}
	src := graph.Source{DumpSHA256: cache.Hash(dump), Start: opts.Start, MaxDepth: opts.MaxDepth}
	cacheKey := r.Keyer.GraphKey(src.DumpSHA256, cache.GraphKeyOpts{
		Start:    opts.Start,
		MaxDepth: opts.MaxDepth,
		MaxNodes: opts.MaxNodes,
	})

	// Try cache first (unless refresh requested)
	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			g, cachedSrc, err := graph.ReadGraph(bytes.NewReader(data))
			if err == nil {
				observability.Cache().OnCacheHit(ctx, "graph")
				r.Logger.Debug("graph cache hit", "key", cacheKey)
				return &LoadedGraph{Graph: g, Source: cachedSrc, CacheHit: true, Duration: time.Since(start)}, nil
			}
			r.Logger.Warn("discarding unreadable cached graph", "key", cacheKey, "err", err)
		} else if err != nil {
			r.Logger.Warn("graph cache unavailable", "err", err)
		}
	}
	observability.Cache().OnCacheMiss(ctx, "graph")

	g, err := r.Generate(ctx, dump, opts)
	if err != nil {
		return nil, err
	}

	if data, err := graph.MarshalGraph(g, src); err == nil {
		ttl := opts.TTL
		if ttl == 0 {
			ttl = cache.TTLGraph
		}
		if err := r.Cache.Set(ctx, cacheKey, data, ttl); err != nil {
			r.Logger.Warn("could not cache graph", "err", err)
		} else {
			observability.Cache().OnCacheSet(ctx, "graph", len(data))
		}
	}
	return &LoadedGraph{Graph: g, Source: src, Duration: time.Since(start)}, nil
}

// Generate builds the panel graph from dump bytes without touching the cache.
func (r *Runner) Generate(ctx context.Context, dump []byte, opts GraphOptions) (*panel.Graph, error) {
	hooks := observability.Pipeline()
	hooks.OnGenerateStart(ctx, opts.Start, opts.MaxDepth)
	start := time.Now()

	g, err := panel.Generate(ctx, bytes.NewReader(dump), panel.GenerateOptions{
		Start:    opts.Start,
		MaxDepth: opts.MaxDepth,
		MaxNodes: opts.MaxNodes,
		Logger:   r.Logger,
	})
	nodes := 0
	if g != nil {
		nodes = g.NodeCount()
	}
	hooks.OnGenerateComplete(ctx, nodes, time.Since(start), err)
	if err != nil {
		return nil, fmt.Errorf("generate graph: %w", err)
	}

	r.Logger.Info("generated graph",
		"nodes", g.NodeCount(),
		"edges", g.EdgeCount(),
		"depth", opts.MaxDepth,
		"duration", time.Since(start))
	return g, nil
}

// Route answers a route query on g.
func (r *Runner) Route(ctx context.Context, g *panel.Graph, opts RouteOptions) (*Result, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	hooks := observability.Pipeline()
	hooks.OnRouteStart(ctx, opts.Origin, len(opts.Goals))
	start := time.Now()

	res, err := r.route(ctx, g, opts)
	cost := math.Inf(1)
	if res != nil {
		res.Stats.Duration = time.Since(start)
		cost = res.Cost
	}
	hooks.OnRouteComplete(ctx, cost, time.Since(start), err)
	if err != nil {
		return nil, err
	}

	r.Logger.Info("found route",
		"goals", len(res.Goals),
		"steps", res.Steps,
		"cost", res.Cost,
		"expanded", res.Stats.Expanded,
		"duration", res.Stats.Duration)
	return res, nil
}

func (r *Runner) route(ctx context.Context, g *panel.Graph, opts RouteOptions) (*Result, error) {
	cost := opts.Policy.Func()

	var stats route.Stats
	routeOpts := []route.Option{route.WithStats(&stats)}
	if opts.Parallelism > 0 {
		routeOpts = append(routeOpts, route.WithParallelism(opts.Parallelism))
	}
	found, err := route.FindRoutes(ctx, g, opts.Origin, opts.Goals, cost, routeOpts...)
	if err != nil {
		return nil, err
	}

	res, err := newResult(g, found, opts)
	if err != nil {
		return nil, err
	}
	res.Stats = Stats{
		Legs:        stats.Legs,
		Reachable:   stats.Reachable,
		Expanded:    stats.Expanded,
		TreeRecords: stats.TreeRecords,
	}

	if opts.Verify {
		check, err := route.Exhaustive(ctx, g, opts.Origin, opts.Goals, cost)
		if err != nil {
			return nil, fmt.Errorf("verify: %w", err)
		}
		if !sameCost(check.Cost, found.Cost) {
			return nil, errors.New(errors.ErrCodeInternal, "verification failed: best order costs %v, search returned %v", check.Cost, found.Cost)
		}
		r.Logger.Debug("route verified", "cost", check.Cost)
		res.Stats.Verified = true
	}
	return res, nil
}

// newResult translates a route into inputs.
func newResult(g *panel.Graph, found *route.Route[int32, float64], opts RouteOptions) (*Result, error) {
	price := opts.Policy.Func()
	res := &Result{
		ID:       uuid.NewString(),
		Origin:   found.Origin,
		Goals:    found.Goals(),
		Segments: make([]SegmentResult, 0, len(found.Segments)),
		Code:     []string{},
		Cost:     found.Cost,
		Route:    found,
	}

	for _, s := range found.Segments {
		code, err := panel.Code(g, s.Path)
		if err != nil {
			return nil, err
		}
		seg := SegmentResult{
			Goal:  s.Goal,
			Name:  opts.Names[s.Goal],
			Nodes: s.Path,
			Code:  make([]string, len(code)),
			Steps: s.Steps(),
		}
		for i, dirs := range code {
			seg.Code[i] = dirs.String()
			seg.Cost += price(stepEdge(s.Path[i], s.Path[i+1], dirs))
		}
		res.Segments = append(res.Segments, seg)
		res.Code = append(res.Code, seg.Code...)
		res.Steps += seg.Steps
	}
	return res, nil
}

func stepEdge(from, to int32, dirs panel.Directions) search.Edge[int32, panel.Directions] {
	return search.Edge[int32, panel.Directions]{From: from, To: to, Label: dirs}
}

// sameCost compares costs summed in possibly different orders.
func sameCost(a, b float64) bool {
	return math.Abs(a-b) <= 1e-9*math.Max(1, math.Max(math.Abs(a), math.Abs(b)))
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}
