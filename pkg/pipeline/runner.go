package pipeline

import (
	"context"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/stackchart/pkg/cache"
	"github.com/matzehuels/stackchart/pkg/errors"
	"github.com/matzehuels/stackchart/pkg/observability"
)

// Runner executes the pipeline with an artifact cache. It keeps no state
// between runs, so one Runner can serve many goroutines.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner returns a runner. A nil cache disables caching, a nil keyer
// uses cache.DefaultKeyer and a nil logger uses log.Default.
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if c == nil {
		c = cache.NewNullCache()
	}
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{Cache: c, Keyer: keyer, Logger: logger}
}

// Execute loads the document and renders every requested format, serving
// formats from the cache where it can.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	hooks := observability.Pipeline()
	res := &Result{
		DocumentHash: cache.Hash(opts.Document),
		Artifacts:    make(map[string][]byte, len(opts.Formats)),
	}

	loadStart := time.Now()
	hooks.OnLoadStart(ctx, opts.Source)
	c, err := Load(opts)
	res.Stats.LoadTime = time.Since(loadStart)
	if err != nil {
		hooks.OnLoadComplete(ctx, "", res.Stats.LoadTime, err)
		return nil, err
	}
	res.Kind = c.Kind()
	hooks.OnLoadComplete(ctx, res.Kind, res.Stats.LoadTime, nil)
	opts.Logger.Debug("loaded chart", "kind", res.Kind, "source", opts.Source, "duration", res.Stats.LoadTime)

	renderStart := time.Now()
	for _, format := range opts.Formats {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		key := r.Keyer.ArtifactKey(res.DocumentHash, opts.ArtifactKeyOpts(format))
		if data, ok := r.lookup(ctx, key, opts); ok {
			res.Artifacts[format] = data
			res.CacheInfo.Hits = append(res.CacheInfo.Hits, format)
			continue
		}

		start := time.Now()
		hooks.OnRenderStart(ctx, res.Kind, format)
		data, err := RenderFormat(c, format, res.DocumentHash, opts)
		hooks.OnRenderComplete(ctx, res.Kind, format, len(data), time.Since(start), err)
		if err != nil {
			code := errors.GetCode(err)
			if code == "" {
				code = errors.ErrCodeBackend
			}
			return nil, errors.Wrap(code, err, "render %s", format)
		}
		res.Artifacts[format] = data

		if err := r.Cache.Set(ctx, key, data, cache.TTLArtifact); err != nil {
			opts.Logger.Warn("cache write failed", "format", format, "err", err)
		} else {
			observability.Cache().OnCacheSet(ctx, "artifact", len(data))
		}
	}
	res.Stats.RenderTime = time.Since(renderStart)
	res.CacheInfo.RenderHit = len(res.CacheInfo.Hits) == len(opts.Formats)

	opts.Logger.Info("rendered chart",
		"kind", res.Kind,
		"formats", opts.Formats,
		"cached", len(res.CacheInfo.Hits),
		"duration", res.Stats.RenderTime)
	return res, nil
}

func (r *Runner) lookup(ctx context.Context, key string, opts Options) ([]byte, bool) {
	if opts.Refresh {
		return nil, false
	}
	data, hit, err := r.Cache.Get(ctx, key)
	if err != nil {
		opts.Logger.Warn("cache read failed", "err", err)
		return nil, false
	}
	if !hit {
		observability.Cache().OnCacheMiss(ctx, "artifact")
		return nil, false
	}
	observability.Cache().OnCacheHit(ctx, "artifact")
	return data, true
}

// Close releases the cache.
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}
