// Package cli implements the graphbash command-line interface.
//
// The CLI generates panel graphs from RAM dumps, finds routes through
// target panels, and serves the same queries over HTTP. It is built on
// cobra and logs through charmbracelet/log.
//
// # Commands
//
//   - generate: Expand a RAM dump into a panel graph and write it as JSON
//   - route: Find the cheapest input code visiting a set of targets
//   - targets: List the configured target panels
//   - serve: Run the HTTP API
//   - cache: Manage the generated graph cache
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging, which also
// logs pipeline and cache events. Loggers are passed through
// context.Context to allow structured progress tracking.
package cli

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// newLogger creates a new logger with timestamp formatting.
// Timestamps are formatted as "HH:MM:SS.ms" (e.g., "14:32:01.45").
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// progress tracks the start time of an operation and logs completion with elapsed duration.
type progress struct {
	logger *log.Logger
	start  time.Time
}

func newProgress(l *log.Logger) *progress {
	return &progress{logger: l, start: time.Now()}
}

// done logs msg along with the elapsed time, rounded to the millisecond.
// Example output: "Found route through 8 targets (1.234s)"
func (p *progress) done(msg string) {
	p.logger.Infof("%s (%s)", msg, time.Since(p.start).Round(time.Millisecond))
}

type ctxKey int

const loggerKey ctxKey = 0

// withLogger returns a new context with the given logger attached.
func withLogger(ctx context.Context, l *log.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, l)
}

// loggerFromContext retrieves the logger from ctx, or log.Default().
func loggerFromContext(ctx context.Context) *log.Logger {
	if l, ok := ctx.Value(loggerKey).(*log.Logger); ok {
		return l
	}
	return log.Default()
}

// =============================================================================
// Observability Hooks
// =============================================================================

// logHooks reports pipeline, cache and HTTP events as debug log lines.
type logHooks struct {
	logger *log.Logger
}

func (h *logHooks) OnGenerateStart(_ context.Context, start int32, maxDepth int) {
	h.logger.Debug("generate started", "start", start, "depth", maxDepth)
}

func (h *logHooks) OnGenerateComplete(_ context.Context, nodeCount int, dur time.Duration, err error) {
	if err != nil {
		h.logger.Debug("generate failed", "err", err, "duration", dur)
		return
	}
	h.logger.Debug("generate finished", "nodes", nodeCount, "duration", dur)
}

func (h *logHooks) OnRouteStart(_ context.Context, origin int32, goalCount int) {
	h.logger.Debug("route started", "origin", origin, "goals", goalCount)
}

func (h *logHooks) OnRouteComplete(_ context.Context, cost float64, dur time.Duration, err error) {
	if err != nil {
		h.logger.Debug("route failed", "err", err, "duration", dur)
		return
	}
	h.logger.Debug("route finished", "cost", cost, "duration", dur)
}

func (h *logHooks) OnCacheHit(_ context.Context, kind string) {
	h.logger.Debug("cache hit", "kind", kind)
}

func (h *logHooks) OnCacheMiss(_ context.Context, kind string) {
	h.logger.Debug("cache miss", "kind", kind)
}

func (h *logHooks) OnCacheSet(_ context.Context, kind string, size int) {
	h.logger.Debug("cache set", "kind", kind, "bytes", size)
}

func (h *logHooks) OnRequest(_ context.Context, method, path string) {
	h.logger.Debug("request", "method", method, "path", path)
}

func (h *logHooks) OnResponse(_ context.Context, method, path string, status int, dur time.Duration) {
	h.logger.Debug("response", "method", method, "path", path, "status", status, "duration", dur)
}
