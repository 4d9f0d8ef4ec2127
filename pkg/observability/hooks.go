// Package observability lets a host program observe chart rendering.
//
// Libraries call the registered hooks; the program decides what they do.
// The defaults are no-ops. LogHooks reports every event to a charm logger,
// which the CLI installs at debug level.
//
//	observability.SetPipelineHooks(observability.NewLogHooks(logger))
//	observability.Pipeline().OnRenderStart(ctx, "bar", "svg")
package observability

import (
	"context"
	"sync"
	"time"
)

// PipelineHooks receives events from the load and render stages.
type PipelineHooks interface {
	OnLoadStart(ctx context.Context, source string)
	OnLoadComplete(ctx context.Context, kind string, duration time.Duration, err error)

	OnRenderStart(ctx context.Context, kind, format string)
	OnRenderComplete(ctx context.Context, kind, format string, size int, duration time.Duration, err error)
}

// CacheHooks receives events from artifact cache lookups.
type CacheHooks interface {
	OnCacheHit(ctx context.Context, keyType string)
	OnCacheMiss(ctx context.Context, keyType string)
	OnCacheSet(ctx context.Context, keyType string, size int)
}

// ServerHooks receives events from the HTTP render server.
type ServerHooks interface {
	OnRequest(ctx context.Context, requestID, method, path string)
	OnResponse(ctx context.Context, requestID, method, path string, status int, duration time.Duration)
}

type NoopPipelineHooks struct{}

func (NoopPipelineHooks) OnLoadStart(context.Context, string)                          {}
func (NoopPipelineHooks) OnLoadComplete(context.Context, string, time.Duration, error) {}
func (NoopPipelineHooks) OnRenderStart(context.Context, string, string)                {}
func (NoopPipelineHooks) OnRenderComplete(context.Context, string, string, int, time.Duration, error) {
}

type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(context.Context, string)      {}
func (NoopCacheHooks) OnCacheMiss(context.Context, string)     {}
func (NoopCacheHooks) OnCacheSet(context.Context, string, int) {}

type NoopServerHooks struct{}

func (NoopServerHooks) OnRequest(context.Context, string, string, string) {}
func (NoopServerHooks) OnResponse(context.Context, string, string, string, int, time.Duration) {
}

var (
	hooksMu       sync.RWMutex
	pipelineHooks PipelineHooks = NoopPipelineHooks{}
	cacheHooks    CacheHooks    = NoopCacheHooks{}
	serverHooks   ServerHooks   = NoopServerHooks{}
)

// SetPipelineHooks installs h. Nil is ignored.
func SetPipelineHooks(h PipelineHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		pipelineHooks = h
	}
}

// SetCacheHooks installs h. Nil is ignored.
func SetCacheHooks(h CacheHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		cacheHooks = h
	}
}

// SetServerHooks installs h. Nil is ignored.
func SetServerHooks(h ServerHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		serverHooks = h
	}
}

func Pipeline() PipelineHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return pipelineHooks
}

func Cache() CacheHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return cacheHooks
}

func Server() ServerHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return serverHooks
}

// Reset restores the no-op hooks.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	pipelineHooks = NoopPipelineHooks{}
	cacheHooks = NoopCacheHooks{}
	serverHooks = NoopServerHooks{}
}
