// Package pipeline runs the load → render pipeline shared by the CLI and
// the render server.
//
//  1. Load: decode a chart document (YAML, TOML or JSON) into a chart.
//  2. Render: draw the chart onto one canvas per requested format and
//     encode it (SVG, PNG, PDF, JSON).
//
// A Runner wraps both stages with an artifact cache keyed by the document
// hash and the render options:
//
//	runner := pipeline.NewRunner(cache.NewNullCache(), nil, logger)
//	res, err := runner.Execute(ctx, pipeline.Options{
//	    Document: data,
//	    Source:   "sales.yaml",
//	    Formats:  []string{"svg", "png"},
//	})
//	svg := res.Artifacts["svg"]
package pipeline

import (
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/stackchart/pkg/cache"
	"github.com/matzehuels/stackchart/pkg/draw"
	"github.com/matzehuels/stackchart/pkg/draw/sink"
	"github.com/matzehuels/stackchart/pkg/errors"
	chartio "github.com/matzehuels/stackchart/pkg/io"
)

const (
	DefaultWidth  = 600
	DefaultHeight = 400
	DefaultScale  = 1.0
)

// Options configures one pipeline run. The JSON form is the render
// server's request body.
type Options struct {
	// Document is the raw chart document.
	Document []byte `json:"-"`
	// Source names the document for format detection and logs, usually
	// its file name.
	Source string `json:"source,omitempty"`
	// InputFormat forces yaml, toml or json. Empty detects it.
	InputFormat string `json:"input_format,omitempty"`

	Formats    []string `json:"formats,omitempty"`
	Width      int      `json:"width,omitempty"`
	Height     int      `json:"height,omitempty"`
	Scale      float64  `json:"scale,omitempty"`
	Background string   `json:"background,omitempty"`
	Title      string   `json:"title,omitempty"`

	// Refresh skips cache reads; fresh results are still written.
	Refresh bool `json:"refresh,omitempty"`

	Logger *log.Logger `json:"-"`

	validated bool
}

// Result holds the outputs of a run.
type Result struct {
	Kind         string
	DocumentHash string
	// Artifacts maps each requested format to its encoded bytes.
	Artifacts map[string][]byte
	Stats     Stats
	CacheInfo CacheInfo
}

type Stats struct {
	LoadTime   time.Duration
	RenderTime time.Duration
}

// CacheInfo reports which formats were served from the cache.
type CacheInfo struct {
	Hits []string
	// RenderHit is true when every format came from the cache.
	RenderHit bool
}

// ValidateAndSetDefaults checks o and fills in defaults. It is idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if len(o.Document) == 0 {
		return errors.New(errors.ErrCodeInvalidInput, "chart document is empty")
	}
	if o.InputFormat != "" {
		f, err := chartio.ParseFormat(o.InputFormat)
		if err != nil {
			return err
		}
		o.InputFormat = string(f)
	}
	o.SetRenderDefaults()
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	if err := errors.ValidateCanvas(o.Width, o.Height); err != nil {
		return err
	}
	if o.Scale <= 0 || o.Scale > 8 {
		return errors.New(errors.ErrCodeInvalidInput, "scale %g out of range (0, 8]", o.Scale)
	}
	if o.Background != "" {
		if _, err := draw.ParseColour(o.Background); err != nil {
			return err
		}
	}
	o.validated = true
	return nil
}

// SetRenderDefaults fills zero fields with defaults.
func (o *Options) SetRenderDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = []string{string(sink.FormatSVG)}
	}
	for i, f := range o.Formats {
		o.Formats[i] = strings.ToLower(strings.TrimSpace(f))
	}
	if o.Width == 0 {
		o.Width = DefaultWidth
	}
	if o.Height == 0 {
		o.Height = DefaultHeight
	}
	if o.Scale == 0 {
		o.Scale = DefaultScale
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateFormats checks every format against sink.Formats.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if _, err := sink.ParseFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ArtifactKeyOpts returns the cache key options for format.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	k := cache.ArtifactKeyOpts{
		Format:     format,
		Width:      o.Width,
		Height:     o.Height,
		Background: o.Background,
		Title:      o.Title,
	}
	// Scale only changes raster output.
	if format == string(sink.FormatPNG) {
		k.Scale = o.Scale
	}
	return k
}
