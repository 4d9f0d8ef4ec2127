package observability

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
)

// LogHooks implements every hook interface by writing debug entries to a
// logger. Failures are logged at warn level.
type LogHooks struct {
	logger *log.Logger
}

// NewLogHooks returns hooks that log to l, or to log.Default when l is nil.
func NewLogHooks(l *log.Logger) *LogHooks {
	if l == nil {
		l = log.Default()
	}
	return &LogHooks{logger: l.WithPrefix("hooks")}
}

func (h *LogHooks) OnLoadStart(_ context.Context, source string) {
	h.logger.Debug("load start", "source", source)
}

func (h *LogHooks) OnLoadComplete(_ context.Context, kind string, d time.Duration, err error) {
	if err != nil {
		h.logger.Warn("load failed", "err", err, "duration", d)
		return
	}
	h.logger.Debug("load done", "kind", kind, "duration", d)
}

func (h *LogHooks) OnRenderStart(_ context.Context, kind, format string) {
	h.logger.Debug("render start", "kind", kind, "format", format)
}

func (h *LogHooks) OnRenderComplete(_ context.Context, kind, format string, size int, d time.Duration, err error) {
	if err != nil {
		h.logger.Warn("render failed", "kind", kind, "format", format, "err", err)
		return
	}
	h.logger.Debug("render done", "kind", kind, "format", format, "bytes", size, "duration", d)
}

func (h *LogHooks) OnCacheHit(_ context.Context, keyType string) {
	h.logger.Debug("cache hit", "type", keyType)
}

func (h *LogHooks) OnCacheMiss(_ context.Context, keyType string) {
	h.logger.Debug("cache miss", "type", keyType)
}

func (h *LogHooks) OnCacheSet(_ context.Context, keyType string, size int) {
	h.logger.Debug("cache set", "type", keyType, "bytes", size)
}

func (h *LogHooks) OnRequest(_ context.Context, id, method, path string) {
	h.logger.Debug("request", "id", id, "method", method, "path", path)
}

func (h *LogHooks) OnResponse(_ context.Context, id, method, path string, status int, d time.Duration) {
	h.logger.Info("response", "id", id, "method", method, "path", path, "status", status, "duration", d)
}

var (
	_ PipelineHooks = (*LogHooks)(nil)
	_ CacheHooks    = (*LogHooks)(nil)
	_ ServerHooks   = (*LogHooks)(nil)
)
