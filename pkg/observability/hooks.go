// Package observability provides hooks for metrics, tracing, and logging.
//
// Libraries emit events through the registered hooks; nothing here depends
// on a concrete backend. The CLI registers log-based hooks when run with
// --verbose, and a deployment may register its own metrics hooks instead.
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetPipelineHooks(&myPipelineHooks{})
//	    observability.SetCacheHooks(&myCacheHooks{})
//	    // ... run application
//	}
//
// Libraries call hooks to emit events:
//
//	observability.Pipeline().OnGenerateStart(ctx, start, maxDepth)
//	// ... generate ...
//	observability.Pipeline().OnGenerateComplete(ctx, nodeCount, duration, err)
package observability

import (
	"context"
	"sync"
	"sync/atomic"
	"time"
)

// =============================================================================
// Pipeline Hooks
// =============================================================================

// PipelineHooks receives events from graph generation and route queries.
type PipelineHooks interface {
	// Generate events
	OnGenerateStart(ctx context.Context, start int32, maxDepth int)
	OnGenerateComplete(ctx context.Context, nodeCount int, duration time.Duration, err error)

	// Route events
	OnRouteStart(ctx context.Context, origin int32, goalCount int)
	OnRouteComplete(ctx context.Context, cost float64, duration time.Duration, err error)
}

// =============================================================================
// Cache Hooks
// =============================================================================

// CacheHooks receives events from cache operations.
type CacheHooks interface {
	// OnCacheHit records a cache hit.
	OnCacheHit(ctx context.Context, keyType string)

	// OnCacheMiss records a cache miss.
	OnCacheMiss(ctx context.Context, keyType string)

	// OnCacheSet records a cache write.
	OnCacheSet(ctx context.Context, keyType string, size int)
}

// =============================================================================
// HTTP Hooks
// =============================================================================

// HTTPHooks receives events from the HTTP API server.
type HTTPHooks interface {
	// OnRequest records an incoming request.
	OnRequest(ctx context.Context, method, path string)

	// OnResponse records the response written for a request.
	OnResponse(ctx context.Context, method, path string, statusCode int, duration time.Duration)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopPipelineHooks is a no-op implementation of PipelineHooks.
type NoopPipelineHooks struct{}

func (NoopPipelineHooks) OnGenerateStart(context.Context, int32, int)                    {}
func (NoopPipelineHooks) OnGenerateComplete(context.Context, int, time.Duration, error)  {}
func (NoopPipelineHooks) OnRouteStart(context.Context, int32, int)                       {}
func (NoopPipelineHooks) OnRouteComplete(context.Context, float64, time.Duration, error) {}

// NoopCacheHooks is a no-op implementation of CacheHooks.
type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(context.Context, string)      {}
func (NoopCacheHooks) OnCacheMiss(context.Context, string)     {}
func (NoopCacheHooks) OnCacheSet(context.Context, string, int) {}

// NoopHTTPHooks is a no-op implementation of HTTPHooks.
type NoopHTTPHooks struct{}

func (NoopHTTPHooks) OnRequest(context.Context, string, string)                      {}
func (NoopHTTPHooks) OnResponse(context.Context, string, string, int, time.Duration) {}

// =============================================================================
// Registry
// =============================================================================

// registry is an immutable snapshot of the registered hooks. Setters swap
// in a modified copy, so event sites read hooks without locking.
type registry struct {
	pipeline PipelineHooks
	cache    CacheHooks
	http     HTTPHooks
}

var (
	noopRegistry = registry{NoopPipelineHooks{}, NoopCacheHooks{}, NoopHTTPHooks{}}
	current      atomic.Pointer[registry]
	updateMu     sync.Mutex
)

func load() *registry {
	if r := current.Load(); r != nil {
		return r
	}
	return &noopRegistry
}

func update(set func(*registry)) {
	updateMu.Lock()
	defer updateMu.Unlock()
	next := *load()
	set(&next)
	current.Store(&next)
}

// SetPipelineHooks registers pipeline hooks. Nil is ignored.
func SetPipelineHooks(h PipelineHooks) {
	if h != nil {
		update(func(r *registry) { r.pipeline = h })
	}
}

// SetCacheHooks registers cache hooks. Nil is ignored.
func SetCacheHooks(h CacheHooks) {
	if h != nil {
		update(func(r *registry) { r.cache = h })
	}
}

// SetHTTPHooks registers HTTP hooks. Nil is ignored.
func SetHTTPHooks(h HTTPHooks) {
	if h != nil {
		update(func(r *registry) { r.http = h })
	}
}

// Pipeline returns the registered pipeline hooks.
func Pipeline() PipelineHooks { return load().pipeline }

// Cache returns the registered cache hooks.
func Cache() CacheHooks { return load().cache }

// HTTP returns the registered HTTP hooks.
func HTTP() HTTPHooks { return load().http }

// Reset restores the no-op hooks. Tests call it in cleanup.
func Reset() {
	updateMu.Lock()
	defer updateMu.Unlock()
	current.Store(nil)
}
