// Package observability exposes event hooks for sampling, rendering, cache
// lookups and HTTP requests.
//
// Libraries call the registered hooks; main decides what sits behind them.
// Until something is registered every call goes to a no-op implementation,
// so the core packages carry no metrics or tracing dependency.
//
//	observability.SetPipelineHooks(observability.NewLogHooks(logger))
//	defer observability.Reset()
//
// Emitting side:
//
//	observability.Pipeline().OnSampleStart(ctx, seed, count, maxSize)
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// Pipeline Hooks
// =============================================================================

// PipelineHooks receives events from the design pipeline.
type PipelineHooks interface {
	// Sample events
	OnSampleStart(ctx context.Context, seed uint64, count, maxSize int)
	OnSampleComplete(ctx context.Context, resonators int, truncated bool, duration time.Duration, err error)

	// Geometry events (contours and raster canvas)
	OnGeometryStart(ctx context.Context, resonators int)
	OnGeometryComplete(ctx context.Context, polygons int, duration time.Duration, err error)

	// Render events
	OnRenderStart(ctx context.Context, formats []string)
	OnRenderComplete(ctx context.Context, formats []string, duration time.Duration, err error)
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

// HTTPHooks receives events from the HTTP API.
type HTTPHooks interface {
	// OnRequest records an incoming request.
	OnRequest(ctx context.Context, method, route string)

	// OnResponse records the response status and handler duration.
	OnResponse(ctx context.Context, method, route string, statusCode int, duration time.Duration)

	// OnError records a request that failed with an error code.
	OnError(ctx context.Context, method, route string, err error)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopPipelineHooks is a no-op implementation of PipelineHooks.
type NoopPipelineHooks struct{}

func (NoopPipelineHooks) OnSampleStart(context.Context, uint64, int, int)                   {}
func (NoopPipelineHooks) OnSampleComplete(context.Context, int, bool, time.Duration, error) {}
func (NoopPipelineHooks) OnGeometryStart(context.Context, int)                              {}
func (NoopPipelineHooks) OnGeometryComplete(context.Context, int, time.Duration, error)     {}
func (NoopPipelineHooks) OnRenderStart(context.Context, []string)                           {}
func (NoopPipelineHooks) OnRenderComplete(context.Context, []string, time.Duration, error)  {}

// NoopCacheHooks is a no-op implementation of CacheHooks.
type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(context.Context, string)      {}
func (NoopCacheHooks) OnCacheMiss(context.Context, string)     {}
func (NoopCacheHooks) OnCacheSet(context.Context, string, int) {}

// NoopHTTPHooks is a no-op implementation of HTTPHooks.
type NoopHTTPHooks struct{}

func (NoopHTTPHooks) OnRequest(context.Context, string, string)                      {}
func (NoopHTTPHooks) OnResponse(context.Context, string, string, int, time.Duration) {}
func (NoopHTTPHooks) OnError(context.Context, string, string, error)                 {}

// =============================================================================
// Registry
// =============================================================================

// registry holds the current implementation of one hook interface.
type registry[T any] struct {
	mu   sync.RWMutex
	cur  T
	noop T
}

func newRegistry[T any](noop T) *registry[T] {
	return &registry[T]{cur: noop, noop: noop}
}

func (r *registry[T]) get() T {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.cur
}

// set ignores nil so callers can pass optional hooks through.
func (r *registry[T]) set(h T) {
	if any(h) == nil {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.cur = h
}

func (r *registry[T]) reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.cur = r.noop
}

var (
	pipelineHooks = newRegistry[PipelineHooks](NoopPipelineHooks{})
	cacheHooks    = newRegistry[CacheHooks](NoopCacheHooks{})
	httpHooks     = newRegistry[HTTPHooks](NoopHTTPHooks{})
)

// SetPipelineHooks registers pipeline hooks. Call it at startup.
func SetPipelineHooks(h PipelineHooks) { pipelineHooks.set(h) }

// SetCacheHooks registers cache hooks. Call it at startup.
func SetCacheHooks(h CacheHooks) { cacheHooks.set(h) }

// SetHTTPHooks registers HTTP hooks. Call it at startup.
func SetHTTPHooks(h HTTPHooks) { httpHooks.set(h) }

// Pipeline returns the registered pipeline hooks.
func Pipeline() PipelineHooks { return pipelineHooks.get() }

// Cache returns the registered cache hooks.
func Cache() CacheHooks { return cacheHooks.get() }

// HTTP returns the registered HTTP hooks.
func HTTP() HTTPHooks { return httpHooks.get() }

// Reset restores the no-op hooks. Used by tests and by serve on shutdown.
func Reset() {
	pipelineHooks.reset()
	cacheHooks.reset()
	httpHooks.reset()
}
