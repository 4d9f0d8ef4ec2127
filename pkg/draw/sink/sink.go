package sink

import (
	"strings"

	"github.com/matzehuels/stackchart/pkg/draw"
	"github.com/matzehuels/stackchart/pkg/errors"
)

// Format is an output file format.
type Format string

const (
	FormatSVG  Format = "svg"
	FormatPNG  Format = "png"
	FormatPDF  Format = "pdf"
	FormatJSON Format = "json"
)

// Formats lists the supported formats.
var Formats = []Format{FormatSVG, FormatPNG, FormatPDF, FormatJSON}

// ParseFormat accepts a format name or file extension, case-insensitively.
func ParseFormat(s string) (Format, error) {
	f := Format(strings.TrimPrefix(strings.ToLower(strings.TrimSpace(s)), "."))
	for _, known := range Formats {
		if f == known {
			return f, nil
		}
	}
	return "", errors.New(errors.ErrCodeInvalidFormat, "unsupported output format %q (want svg, png, pdf or json)", s)
}

// Ext returns the file extension including the dot.
func (f Format) Ext() string { return "." + string(f) }

// ContentType returns the MIME type of the format.
func (f Format) ContentType() string {
	switch f {
	case FormatSVG:
		return "image/svg+xml"
	case FormatPNG:
		return "image/png"
	case FormatPDF:
		return "application/pdf"
	case FormatJSON:
		return "application/json"
	}
	return "application/octet-stream"
}

// Canvas is a drawing context that produces an encoded document.
type Canvas interface {
	draw.Context
	// Finish encodes everything drawn so far. It fails when transforms are
	// still pushed.
	Finish() ([]byte, error)
}

// Options configures New.
type Options struct {
	// Scale multiplies the PNG resolution. Zero means 1.
	Scale float64
	// ID seeds the SVG document id.
	ID string
	// Title is embedded as the SVG <title>.
	Title string
	// Background fills the canvas before drawing. Nil means white.
	Background *draw.Colour
}

// New returns a canvas of the given size for f.
func New(f Format, width, height int, o Options) (Canvas, error) {
	if err := errors.ValidateCanvas(width, height); err != nil {
		return nil, err
	}
	bg := draw.White
	if o.Background != nil {
		bg = *o.Background
	}
	w, h := float64(width), float64(height)
	svgOpts := []SVGOption{WithBackground(bg)}
	if o.ID != "" {
		svgOpts = append(svgOpts, WithID(o.ID))
	}
	if o.Title != "" {
		svgOpts = append(svgOpts, WithTitle(o.Title))
	}

	switch f {
	case FormatSVG:
		return NewSVG(w, h, svgOpts...), nil
	case FormatPDF:
		return NewPDF(w, h, svgOpts...), nil
	case FormatPNG:
		opts := []PNGOption{WithPNGBackground(bg)}
		if o.Scale > 0 {
			opts = append(opts, WithScale(o.Scale))
		}
		return NewPNG(width, height, opts...), nil
	case FormatJSON:
		return NewJSON(w, h, bg), nil
	}
	return nil, errors.New(errors.ErrCodeInvalidFormat, "unsupported output format %q", f)
}

func unbalanced(depth int) error {
	return errors.New(errors.ErrCodeBackend, "%d transforms still pushed at finish", depth)
}
