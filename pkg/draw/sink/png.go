package sink

import (
	"bytes"
	"math"

	"github.com/fogleman/gg"

	"github.com/matzehuels/stackchart/pkg/draw"
	"github.com/matzehuels/stackchart/pkg/errors"
	"github.com/matzehuels/stackchart/pkg/fonts"
	"github.com/matzehuels/stackchart/pkg/geom"
)

// PNGOption configures a PNG canvas.
type PNGOption func(*PNG)

// WithScale sets the resolution multiplier (default 1; 2 for 2x output).
func WithScale(s float64) PNGOption { return func(p *PNG) { p.scale = s } }

// WithPNGBackground sets the background fill.
func WithPNGBackground(c draw.Colour) PNGOption { return func(p *PNG) { p.background = c } }

// PNG is a canvas that rasterises with fogleman/gg.
//
// Coordinates are mapped through the transform stack and the resolution
// scale before they reach gg, so gg's own matrix stays the identity except
// while drawing rotated text.
type PNG struct {
	draw.TransformStack
	dc         *gg.Context
	scale      float64
	background draw.Colour
	faces      map[fonts.Spec]*fonts.Face
}

// NewPNG returns a canvas of width x height logical pixels.
func NewPNG(width, height int, opts ...PNGOption) *PNG {
	p := &PNG{scale: 1, background: draw.White, faces: map[fonts.Spec]*fonts.Face{}}
	for _, opt := range opts {
		opt(p)
	}
	if p.scale <= 0 {
		p.scale = 1
	}
	p.dc = gg.NewContext(int(math.Ceil(float64(width)*p.scale)), int(math.Ceil(float64(height)*p.scale)))
	if p.background.A > 0 {
		p.dc.SetColor(p.background.NRGBA())
		p.dc.Clear()
	}
	return p
}

// ResolveFont implements draw.Context.
func (p *PNG) ResolveFont(spec draw.FontSpec) (draw.Font, error) {
	f, err := fonts.Resolve(spec)
	if err != nil {
		return nil, err
	}
	return f, nil
}

// device maps the current transform into raster pixels.
func (p *PNG) device() geom.Affine {
	return p.Current().Scale(p.scale, p.scale)
}

// lineScale is the factor the current transform applies to lengths.
func (p *PNG) lineScale() float64 {
	t := p.device()
	return math.Sqrt(math.Abs(t.A*t.D - t.B*t.C))
}

// Line implements draw.Context.
func (p *PNG) Line(p0, p1 geom.Point, st draw.Stroke) error {
	t := p.device()
	a, b := t.Apply(p0), t.Apply(p1)
	p.stroke(st)
	p.dc.DrawLine(a.X, a.Y, b.X, b.Y)
	p.dc.Stroke()
	return nil
}

// FillRect implements draw.Context.
func (p *PNG) FillRect(r geom.Rect, radius float64, c draw.Colour) error {
	t := p.device()
	p.dc.SetColor(c.NRGBA())
	if t.B == 0 && t.C == 0 {
		d := t.ApplyRect(r)
		if radius > 0 {
			p.dc.DrawRoundedRectangle(d.X0, d.Y0, d.Width(), d.Height(), radius*p.lineScale())
		} else {
			p.dc.DrawRectangle(d.X0, d.Y0, d.Width(), d.Height())
		}
		p.dc.Fill()
		return nil
	}
	// Rotated or sheared: fill the transformed corners. Corner rounding is dropped.
	for i, pt := range []geom.Point{r.Min(), geom.Pt(r.X1, r.Y0), r.Max(), geom.Pt(r.X0, r.Y1)} {
		d := t.Apply(pt)
		if i == 0 {
			p.dc.MoveTo(d.X, d.Y)
		} else {
			p.dc.LineTo(d.X, d.Y)
		}
	}
	p.dc.ClosePath()
	p.dc.Fill()
	return nil
}

// StrokePath implements draw.Context.
func (p *PNG) StrokePath(path geom.Path, st draw.Stroke) error {
	if path.Len() == 0 {
		return nil
	}
	t := p.device()
	p.stroke(st)
	p.dc.SetLineJoin(gg.LineJoinRound)
	for i, pt := range path.Points {
		d := t.Apply(pt)
		if i == 0 {
			p.dc.MoveTo(d.X, d.Y)
		} else {
			p.dc.LineTo(d.X, d.Y)
		}
	}
	p.dc.Stroke()
	return nil
}

// Text implements draw.Context.
func (p *PNG) Text(tx draw.Text) (geom.Size, error) {
	sz := tx.Font.Measure(tx.Content)
	if tx.Content == "" {
		return sz, nil
	}
	spec := tx.Font.Spec()
	spec.Size *= p.lineScale()
	face, err := p.face(spec)
	if err != nil {
		return geom.Size{}, errors.Wrap(errors.ErrCodeTextBuild, err, "draw text %q", tx.Content)
	}

	t := p.device()
	at := t.Apply(tx.At)
	k := p.lineScale()
	x := at.X
	switch tx.HAlign {
	case draw.AlignCenter:
		x -= sz.W * k / 2
	case draw.AlignRight:
		x -= sz.W * k
	}
	y := at.Y + (draw.Baseline(tx.Font, tx.At.Y, tx.VAlign)-tx.At.Y)*k

	p.dc.SetFontFace(face.XFace())
	p.dc.SetColor(tx.Colour.NRGBA())
	if tx.Rotation != 0 {
		p.dc.Push()
		p.dc.RotateAbout(gg.Radians(tx.Rotation), at.X, at.Y)
		p.dc.DrawString(tx.Content, x, y)
		p.dc.Pop()
	} else {
		p.dc.DrawString(tx.Content, x, y)
	}
	return sz, nil
}

// PushTransform implements draw.Context.
func (p *PNG) PushTransform(t geom.Affine) { p.Push(t) }

// PopTransform implements draw.Context.
func (p *PNG) PopTransform() error { return p.Pop() }

// Finish implements Canvas.
func (p *PNG) Finish() ([]byte, error) {
	if d := p.Depth(); d != 0 {
		return nil, unbalanced(d)
	}
	var buf bytes.Buffer
	if err := p.dc.EncodePNG(&buf); err != nil {
		return nil, errors.Wrap(errors.ErrCodeBackend, err, "encode png")
	}
	return buf.Bytes(), nil
}

func (p *PNG) stroke(st draw.Stroke) {
	w := st.Width
	if w <= 0 {
		w = 1
	}
	p.dc.SetColor(st.Colour.NRGBA())
	p.dc.SetLineWidth(w * p.lineScale())
}

func (p *PNG) face(spec fonts.Spec) (*fonts.Face, error) {
	if f, ok := p.faces[spec]; ok {
		return f, nil
	}
	f, err := fonts.Resolve(spec)
	if err != nil {
		return nil, err
	}
	p.faces[spec] = f
	return f, nil
}
