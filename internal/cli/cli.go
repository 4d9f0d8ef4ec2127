package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/stackchart/pkg/buildinfo"
	"github.com/matzehuels/stackchart/pkg/cache"
	"github.com/matzehuels/stackchart/pkg/httputil"
	"github.com/matzehuels/stackchart/pkg/observability"
	"github.com/matzehuels/stackchart/pkg/pipeline"
)

const (
	appName = "stackchart"

	// redisEnv names a Redis server to use as the artifact cache.
	redisEnv = "STACKCHART_REDIS"
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// CLI holds state shared by all commands.
type CLI struct {
	Logger *log.Logger

	fetchOnce sync.Once
	fetch     *httputil.Fetcher
}

// New returns a CLI logging to w at level.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel changes the logger level. At debug level every pipeline,
// cache and server event is logged too.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
	if level <= log.DebugLevel {
		h := observability.NewLogHooks(c.Logger)
		observability.SetPipelineHooks(h)
		observability.SetCacheHooks(h)
		observability.SetServerHooks(h)
	}
}

// RootCommand returns the root command with every subcommand registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "Stackchart draws bar and scatter charts from YAML, TOML or JSON",
		Long:         `Stackchart lays out bar and xy-scatter charts described in YAML, TOML or JSON documents and renders them as SVG, PNG, PDF or a JSON drawing list.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
	}
	root.SetVersionTemplate(buildinfo.Template())

	root.AddCommand(c.renderCommand())
	root.AddCommand(c.pickCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.convertCommand())
	root.AddCommand(c.listCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())
	return root
}

// cacheFlags are the cache options shared by render, pick and serve.
type cacheFlags struct {
	noCache bool
	redis   string
}

func (f *cacheFlags) register(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&f.noCache, "no-cache", false, "disable the artifact cache")
	cmd.Flags().StringVar(&f.redis, "redis", os.Getenv(redisEnv), "redis URL for a shared cache (env "+redisEnv+")")
}

// newRunner returns a pipeline runner backed by the configured cache.
func (c *CLI) newRunner(ctx context.Context, f cacheFlags) (*pipeline.Runner, error) {
	store, err := c.newCache(ctx, f)
	if err != nil {
		return nil, err
	}
	return pipeline.NewRunner(store, nil, c.Logger), nil
}

func (c *CLI) newCache(ctx context.Context, f cacheFlags) (cache.Cache, error) {
	switch {
	case f.noCache:
		return cache.NewNullCache(), nil
	case f.redis != "":
		rc, err := cache.NewRedisCache(ctx, f.redis)
		if err != nil {
			return nil, err
		}
		c.Logger.Debug("using redis cache")
		return rc, nil
	}
	dir, err := cacheDir()
	if err != nil {
		c.Logger.Warn("no cache directory, caching disabled", "err", err)
		return cache.NewNullCache(), nil
	}
	return cache.NewFileCache(dir)
}

// documentTTL is how long a fetched chart document is reused.
const documentTTL = 10 * time.Minute

// fetcher returns the shared fetcher for remote chart documents. Documents
// are cached under the cache directory when one is available.
func (c *CLI) fetcher() *httputil.Fetcher {
	c.fetchOnce.Do(func() {
		var hc *httputil.Cache
		if dir, err := cacheDir(); err == nil {
			if hc, err = httputil.NewCache(filepath.Join(dir, "http"), documentTTL); err != nil {
				c.Logger.Warn("document cache disabled", "err", err)
				hc = nil
			}
		}
		c.fetch = httputil.NewFetcher(hc)
	})
	return c.fetch
}

// cacheDir returns $XDG_CACHE_HOME/stackchart or ~/.cache/stackchart.
func cacheDir() (string, error) {
	if xdg := os.Getenv("XDG_CACHE_HOME"); xdg != "" {
		return filepath.Join(xdg, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}
