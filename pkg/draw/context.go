package draw

import (
	"github.com/matzehuels/stackchart/pkg/errors"
	"github.com/matzehuels/stackchart/pkg/fonts"
	"github.com/matzehuels/stackchart/pkg/geom"
)

// FontSpec names a font family and size.
type FontSpec = fonts.Spec

// Font is a resolved font that can measure text.
type Font interface {
	Spec() FontSpec
	Measure(s string) geom.Size
}

// Stroke describes how lines and paths are drawn.
type Stroke struct {
	Colour Colour  `json:"colour"`
	Width  float64 `json:"width"`
}

// HAlign is the horizontal anchor of a text run.
type HAlign int

const (
	AlignLeft HAlign = iota
	AlignCenter
	AlignRight
)

// VAlign is the vertical anchor of a text run.
type VAlign int

const (
	AlignTop VAlign = iota
	AlignMiddle
	AlignBottom
)

// Text is a single line of text anchored at a point.
type Text struct {
	Content  string
	At       geom.Point
	Font     Font
	Colour   Colour
	HAlign   HAlign
	VAlign   VAlign
	Rotation float64 // degrees, clockwise in device space, about At
}

// Context is a drawing surface.
//
// Coordinates are in the space established by the pushed transforms. A
// Context is not safe for concurrent use.
type Context interface {
	// ResolveFont returns a measurable font, failing with
	// errors.ErrCodeFontLoading for unknown families.
	ResolveFont(spec FontSpec) (Font, error)

	Line(p0, p1 geom.Point, s Stroke) error
	FillRect(r geom.Rect, radius float64, c Colour) error
	StrokePath(p geom.Path, s Stroke) error

	// Text draws t and returns its measured extent.
	Text(t Text) (geom.Size, error)

	PushTransform(t geom.Affine)
	PopTransform() error
}

// WithTransform runs fn with t pushed onto ctx and pops it on every exit
// path, including panics.
func WithTransform(ctx Context, t geom.Affine, fn func() error) (err error) {
	ctx.PushTransform(t)
	defer func() {
		if perr := ctx.PopTransform(); err == nil {
			err = perr
		}
	}()
	return fn()
}

// TransformStack tracks the active transform of a Context.
// The zero value is an empty stack whose current transform is the identity.
type TransformStack struct {
	stack []geom.Affine
}

// Current returns the composition of all pushed transforms.
func (s *TransformStack) Current() geom.Affine {
	if len(s.stack) == 0 {
		return geom.Identity()
	}
	return s.stack[len(s.stack)-1]
}

// Push composes t inside the current transform.
func (s *TransformStack) Push(t geom.Affine) {
	s.stack = append(s.stack, t.Then(s.Current()))
}

// Pop restores the transform active before the matching Push.
func (s *TransformStack) Pop() error {
	if len(s.stack) == 0 {
		return errors.New(errors.ErrCodeBackend, "pop on empty transform stack")
	}
	s.stack = s.stack[:len(s.stack)-1]
	return nil
}

// Depth returns the number of pushed transforms.
func (s *TransformStack) Depth() int { return len(s.stack) }

// Anchor returns the top-left corner of a box of size sz anchored at p.
func Anchor(p geom.Point, sz geom.Size, h HAlign, v VAlign) geom.Point {
	x, y := p.X, p.Y
	switch h {
	case AlignCenter:
		x -= sz.W / 2
	case AlignRight:
		x -= sz.W
	}
	switch v {
	case AlignMiddle:
		y -= sz.H / 2
	case AlignBottom:
		y -= sz.H
	}
	return geom.Pt(x, y)
}

// MeasureFunc adapts a Font to a plain measuring function.
func MeasureFunc(f Font) func(string) geom.Size {
	return func(s string) geom.Size {
		if s == "" {
			return geom.Size{}
		}
		return f.Measure(s)
	}
}

// Metrics is implemented by fonts that know their vertical metrics.
type Metrics interface {
	Ascent() float64
	Descent() float64
}

// Baseline returns the baseline y of a line of text whose anchor is at y
// with vertical alignment v.
func Baseline(f Font, y float64, v VAlign) float64 {
	var ascent, descent float64
	if m, ok := f.(Metrics); ok {
		ascent, descent = m.Ascent(), m.Descent()
	} else {
		h := f.Measure("M").H
		ascent, descent = 0.8*h, 0.2*h
	}
	switch v {
	case AlignMiddle:
		return y + (ascent-descent)/2
	case AlignBottom:
		return y - descent
	default:
		return y + ascent
	}
}
