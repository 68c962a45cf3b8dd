// Package observability provides hooks for metrics and tracing.
//
// Libraries emit events through the registered hooks; the default hooks do
// nothing, so instrumentation stays optional and the library packages carry
// no dependency on a metrics backend.
//
// Register hooks at startup:
//
//	func main() {
//	    observability.SetStreamHooks(&myStreamHooks{})
//	    // ... run application
//	}
//
// Libraries call hooks around their work:
//
//	observability.Pipeline().OnGenerateStart(ctx, maps, iterations)
//	// ... generate ...
//	observability.Pipeline().OnGenerateComplete(ctx, points, duration, err)
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// Pipeline Hooks
// =============================================================================

// PipelineHooks receives events from the generate → render pipeline.
type PipelineHooks interface {
	OnGenerateStart(ctx context.Context, maps, iterations int)
	OnGenerateComplete(ctx context.Context, points int, duration time.Duration, err error)

	OnRenderStart(ctx context.Context, formats []string)
	OnRenderComplete(ctx context.Context, formats []string, duration time.Duration, err error)
}

// =============================================================================
// Cache Hooks
// =============================================================================

// CacheHooks receives events from cache lookups. keyType is "points" or
// "artifact".
type CacheHooks interface {
	OnCacheHit(ctx context.Context, keyType string)
	OnCacheMiss(ctx context.Context, keyType string)
	OnCacheSet(ctx context.Context, keyType string, size int)
}

// =============================================================================
// Stream Hooks
// =============================================================================

// StreamHooks receives events from websocket frame streams.
type StreamHooks interface {
	OnConnect(ctx context.Context, clientID, preset string)
	OnFrame(ctx context.Context, clientID string, points int, duration time.Duration)
	OnDisconnect(ctx context.Context, clientID string, frames int, err error)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopPipelineHooks is a no-op implementation of PipelineHooks.
type NoopPipelineHooks struct{}

func (NoopPipelineHooks) OnGenerateStart(context.Context, int, int)                        {}
func (NoopPipelineHooks) OnGenerateComplete(context.Context, int, time.Duration, error)    {}
func (NoopPipelineHooks) OnRenderStart(context.Context, []string)                          {}
func (NoopPipelineHooks) OnRenderComplete(context.Context, []string, time.Duration, error) {}

// NoopCacheHooks is a no-op implementation of CacheHooks.
type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(context.Context, string)      {}
func (NoopCacheHooks) OnCacheMiss(context.Context, string)     {}
func (NoopCacheHooks) OnCacheSet(context.Context, string, int) {}

// NoopStreamHooks is a no-op implementation of StreamHooks.
type NoopStreamHooks struct{}

func (NoopStreamHooks) OnConnect(context.Context, string, string)           {}
func (NoopStreamHooks) OnFrame(context.Context, string, int, time.Duration) {}
func (NoopStreamHooks) OnDisconnect(context.Context, string, int, error)    {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	pipelineHooks PipelineHooks = NoopPipelineHooks{}
	cacheHooks    CacheHooks    = NoopCacheHooks{}
	streamHooks   StreamHooks   = NoopStreamHooks{}
	hooksMu       sync.RWMutex
)

// SetPipelineHooks registers pipeline hooks. A nil argument is ignored.
func SetPipelineHooks(h PipelineHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		pipelineHooks = h
	}
}

// SetCacheHooks registers cache hooks. A nil argument is ignored.
func SetCacheHooks(h CacheHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		cacheHooks = h
	}
}

// SetStreamHooks registers stream hooks. A nil argument is ignored.
func SetStreamHooks(h StreamHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		streamHooks = h
	}
}

// Pipeline returns the registered pipeline hooks.
func Pipeline() PipelineHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return pipelineHooks
}

// Cache returns the registered cache hooks.
func Cache() CacheHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return cacheHooks
}

// Stream returns the registered stream hooks.
func Stream() StreamHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return streamHooks
}

// Reset restores all hooks to their no-op defaults.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	pipelineHooks = NoopPipelineHooks{}
	cacheHooks = NoopCacheHooks{}
	streamHooks = NoopStreamHooks{}
}
