// Package pipeline runs graphbash queries end to end.
//
// The CLI and the HTTP server share this package so both load graphs,
// use the cache and report routes the same way.
//
// # Stages
//
//  1. Load: read a generated graph file, or generate the panel graph from a
//     RAM dump. Generated graphs are cached under the dump hash and the
//     generation options.
//  2. Route: find the cheapest route from an origin through every goal and
//     translate each segment into inputs.
//  3. Render: draw a route as DOT or SVG.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	loaded, err := runner.LoadGraph(ctx, pipeline.GraphOptions{Dump: "RAM.bin", MaxDepth: 50})
//	result, err := runner.Route(ctx, loaded.Graph, pipeline.RouteOptions{
//	    Origin: 34,
//	    Goals:  []int32{-1190, -1399},
//	    Policy: panel.DefaultCostPolicy(),
//	})
//	svg, err := pipeline.Render(ctx, loaded.Graph, result, pipeline.FormatSVG, nil)
package pipeline

import (
	"fmt"
	"time"

	"github.com/matzehuels/graphbash/pkg/errors"
	"github.com/matzehuels/graphbash/pkg/graph"
	"github.com/matzehuels/graphbash/pkg/panel"
	"github.com/matzehuels/graphbash/pkg/route"
)

// =============================================================================
// Default Values
// =============================================================================

// DefaultMaxDepth is the generation depth used when none is given.
const DefaultMaxDepth = panel.DefaultMaxDepth

// Render formats.
const (
	FormatDOT = "dot"
	FormatSVG = "svg"
)

// ValidFormats is the set of supported render formats.
var ValidFormats = map[string]bool{
	FormatDOT: true,
	FormatSVG: true,
}

// =============================================================================
// Options
// =============================================================================

// GraphOptions selects the graph to load.
type GraphOptions struct {
	// File is a generated graph in JSON. It takes precedence over Dump.
	File string `json:"file,omitempty"`
	// Dump is a RAM dump to generate the graph from.
	Dump     string `json:"dump,omitempty"`
	Start    int32  `json:"start"`
	MaxDepth int    `json:"max_depth,omitempty"`
	MaxNodes int    `json:"max_nodes,omitempty"`
	// Refresh regenerates even when a cached graph exists.
	Refresh bool `json:"refresh,omitempty"`
	// TTL overrides how long a generated graph stays cached.
	TTL time.Duration `json:"-"`
}

// Validate checks that a graph source is set and well formed.
func (o *GraphOptions) Validate() error {
	switch {
	case o.File != "":
		return errors.ValidateFilePath(o.File)
	case o.Dump != "":
		if err := errors.ValidateFilePath(o.Dump); err != nil {
			return err
		}
		return errors.ValidateDepth(o.MaxDepth)
	default:
		return errors.New(errors.ErrCodeInvalidInput, "a graph file or a RAM dump is required")
	}
}

// RouteOptions describes a route query.
type RouteOptions struct {
	Origin int32            `json:"origin"`
	Goals  []int32          `json:"goals"`
	Policy panel.CostPolicy `json:"policy"`
	// Names labels goals in the result, e.g. with target names.
	Names map[int32]string `json:"-"`
	// Parallelism bounds concurrent leg searches. Zero uses GOMAXPROCS.
	Parallelism int `json:"-"`
	// Verify cross-checks the result against an exhaustive search.
	Verify bool `json:"verify,omitempty"`
	// MaxGoals rejects queries with more goals. Zero means no limit.
	MaxGoals int `json:"-"`
}

// Validate checks the query.
func (o *RouteOptions) Validate() error {
	if len(o.Goals) == 0 {
		return errors.New(errors.ErrCodeInvalidInput, "at least one goal is required")
	}
	if o.MaxGoals > 0 && len(o.Goals) > o.MaxGoals {
		return errors.New(errors.ErrCodeInvalidInput, "at most %d goals are allowed, got %d", o.MaxGoals, len(o.Goals))
	}
	if o.Verify && len(o.Goals) > route.MaxExhaustiveGoals {
		return errors.New(errors.ErrCodeInvalidInput, "verification supports at most %d goals", route.MaxExhaustiveGoals)
	}
	return o.Policy.Validate()
}

// ValidateFormat checks that a render format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return fmt.Errorf("invalid format: %q (must be one of: dot, svg)", format)
	}
	return nil
}

// =============================================================================
// Results
// =============================================================================

// LoadedGraph is a panel graph together with where it came from.
type LoadedGraph struct {
	Graph    *panel.Graph
	Source   graph.Source
	CacheHit bool
	Duration time.Duration
}

// Result is the answer to a route query.
type Result struct {
	ID       string          `json:"id"`
	Origin   int32           `json:"origin"`
	Goals    []int32         `json:"goals"`
	Segments []SegmentResult `json:"segments"`
	Code     []string        `json:"code"`
	Steps    int             `json:"steps"`
	Cost     float64         `json:"cost"`
	Stats    Stats           `json:"stats"`

	// Route is the raw search result, kept for rendering.
	Route *route.Route[int32, float64] `json:"-"`
}

// SegmentResult is one leg of a route.
type SegmentResult struct {
	Goal  int32    `json:"goal"`
	Name  string   `json:"name,omitempty"`
	Nodes []int32  `json:"nodes"`
	Code  []string `json:"code"`
	Steps int      `json:"steps"`
	Cost  float64  `json:"cost"`
}

// Stats contains query statistics.
type Stats struct {
	Legs        int           `json:"legs"`
	Reachable   int           `json:"reachable"`
	Expanded    int           `json:"expanded"`
	TreeRecords int           `json:"tree_records"`
	Verified    bool          `json:"verified,omitempty"`
	Duration    time.Duration `json:"duration_ns"`
}
