// Package observability provides hooks for metrics, tracing, and logging.
//
// This package enables optional instrumentation without adding hard
// dependencies on specific observability backends. Consumers register hooks
// at startup to receive events about render execution and cache operations.
//
// # Architecture
//
// The package uses a simple hooks pattern:
//   - Define hook interfaces for different event categories
//   - Provide no-op default implementations
//   - Allow registration of custom implementations at startup
//
// This keeps the render path free of observability framework imports while
// allowing different backends (OpenTelemetry, Prometheus, ...).
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetRenderHooks(&myRenderHooks{})
//	    observability.SetCacheHooks(&myCacheHooks{})
//	    // ... run application
//	}
//
// Libraries call hooks to emit events:
//
//	observability.Render().OnRenderStart(ctx, format, len(text))
//	// ... render ...
//	observability.Render().OnRenderComplete(ctx, format, size, duration, err)
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// Render Hooks
// =============================================================================

// RenderHooks receives events from the render pipeline.
type RenderHooks interface {
	// OnRenderStart fires before layout and drawing begin.
	OnRenderStart(ctx context.Context, format string, textLen int)

	// OnRenderComplete fires after encoding, with the artifact size in
	// bytes (zero on error).
	OnRenderComplete(ctx context.Context, format string, size int, duration time.Duration, err error)
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
// No-op Defaults
// =============================================================================

type nopRenderHooks struct{}

func (nopRenderHooks) OnRenderStart(context.Context, string, int) {}
func (nopRenderHooks) OnRenderComplete(context.Context, string, int, time.Duration, error) {
}

type nopCacheHooks struct{}

func (nopCacheHooks) OnCacheHit(context.Context, string)      {}
func (nopCacheHooks) OnCacheMiss(context.Context, string)     {}
func (nopCacheHooks) OnCacheSet(context.Context, string, int) {}

// =============================================================================
// Registration
// =============================================================================

var (
	mu          sync.RWMutex
	renderHooks RenderHooks = nopRenderHooks{}
	cacheHooks  CacheHooks  = nopCacheHooks{}
)

// SetRenderHooks registers render hooks. Pass nil to restore the no-op.
// Call at startup, before rendering begins.
func SetRenderHooks(h RenderHooks) {
	mu.Lock()
	defer mu.Unlock()
	if h == nil {
		renderHooks = nopRenderHooks{}
		return
	}
	renderHooks = h
}

// SetCacheHooks registers cache hooks. Pass nil to restore the no-op.
func SetCacheHooks(h CacheHooks) {
	mu.Lock()
	defer mu.Unlock()
	if h == nil {
		cacheHooks = nopCacheHooks{}
		return
	}
	cacheHooks = h
}

// Render returns the registered render hooks.
func Render() RenderHooks {
	mu.RLock()
	defer mu.RUnlock()
	return renderHooks
}

// Cache returns the registered cache hooks.
func Cache() CacheHooks {
	mu.RLock()
	defer mu.RUnlock()
	return cacheHooks
}
