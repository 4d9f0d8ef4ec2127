package pipeline

import (
	"github.com/matzehuels/stackchart/pkg/chart"
	"github.com/matzehuels/stackchart/pkg/draw"
	"github.com/matzehuels/stackchart/pkg/draw/sink"
	"github.com/matzehuels/stackchart/pkg/geom"
	chartio "github.com/matzehuels/stackchart/pkg/io"
)

// Load decodes the document in opts.
func Load(opts Options) (*chart.Charts, error) {
	f := chartio.Format(opts.InputFormat)
	if f == "" {
		f = chartio.DetectFormat(opts.Source, opts.Document)
	}
	return chartio.ParseChart(opts.Document, f)
}

// RenderFormat draws c onto a fresh canvas of the requested size and
// returns the encoded document. seed makes the SVG id stable.
func RenderFormat(c *chart.Charts, format string, seed string, opts Options) ([]byte, error) {
	f, err := sink.ParseFormat(format)
	if err != nil {
		return nil, err
	}
	so := sink.Options{Scale: opts.Scale, ID: seed, Title: opts.Title}
	if opts.Background != "" {
		bg, err := draw.ParseColour(opts.Background)
		if err != nil {
			return nil, err
		}
		so.Background = &bg
	}
	canvas, err := sink.New(f, opts.Width, opts.Height, so)
	if err != nil {
		return nil, err
	}
	area := geom.RectFromSize(geom.Point{}, geom.Size{W: float64(opts.Width), H: float64(opts.Height)})
	if err := c.Render(canvas, area); err != nil {
		return nil, err
	}
	return canvas.Finish()
}

// Render loads the document and renders every format without caching.
func Render(opts Options) (map[string][]byte, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	c, err := Load(opts)
	if err != nil {
		return nil, err
	}
	out := make(map[string][]byte, len(opts.Formats))
	for _, f := range opts.Formats {
		data, err := RenderFormat(c, f, opts.Source, opts)
		if err != nil {
			return nil, err
		}
		out[f] = data
	}
	return out, nil
}
