package draw

import (
	"github.com/matzehuels/stackchart/pkg/fonts"
	"github.com/matzehuels/stackchart/pkg/geom"
)

// Kind identifies a recorded primitive.
type Kind string

const (
	KindLine        Kind = "line"
	KindFilledRect  Kind = "rect"
	KindStrokedPath Kind = "path"
	KindText        Kind = "text"
)

// Primitive is one drawing call together with the transform that was
// active when it was issued. Only the fields relevant to Kind are set.
type Primitive struct {
	Kind      Kind        `json:"kind"`
	Transform geom.Affine `json:"transform"`

	From   geom.Point `json:"from,omitempty"`
	To     geom.Point `json:"to,omitempty"`
	Rect   geom.Rect  `json:"rect,omitempty"`
	Radius float64    `json:"radius,omitempty"`
	Path   geom.Path  `json:"path,omitempty"`
	Stroke Stroke     `json:"stroke,omitempty"`
	Fill   Colour     `json:"fill,omitempty"`

	Text     string     `json:"text,omitempty"`
	At       geom.Point `json:"at,omitempty"`
	Font     FontSpec   `json:"font,omitempty"`
	Size     geom.Size  `json:"size,omitempty"`
	HAlign   HAlign     `json:"halign,omitempty"`
	VAlign   VAlign     `json:"valign,omitempty"`
	Rotation float64    `json:"rotation,omitempty"`
}

// Bounds returns the device-space bounding box of the primitive. Text is
// approximated by its unrotated measured box.
func (p Primitive) Bounds() geom.Rect {
	var r geom.Rect
	switch p.Kind {
	case KindLine:
		r = geom.NewRect(p.From.X, p.From.Y, p.To.X, p.To.Y)
	case KindFilledRect:
		r = p.Rect
	case KindStrokedPath:
		r, _ = p.Path.Bounds()
	case KindText:
		r = geom.RectFromSize(Anchor(p.At, p.Size, p.HAlign, p.VAlign), p.Size)
	}
	return p.Transform.ApplyRect(r)
}

// Recorder is a Context that stores every primitive it receives.
type Recorder struct {
	TransformStack
	Primitives []Primitive
	resolve    func(FontSpec) (Font, error)
}

// NewRecorder returns an empty Recorder that resolves fonts with
// fonts.Resolve.
func NewRecorder() *Recorder {
	return &Recorder{resolve: resolveFont}
}

func resolveFont(spec FontSpec) (Font, error) {
	f, err := fonts.Resolve(spec)
	if err != nil {
		return nil, err
	}
	return f, nil
}

// ResolveFont implements Context.
func (r *Recorder) ResolveFont(spec FontSpec) (Font, error) {
	if r.resolve == nil {
		return resolveFont(spec)
	}
	return r.resolve(spec)
}

// Line implements Context.
func (r *Recorder) Line(p0, p1 geom.Point, s Stroke) error {
	r.add(Primitive{Kind: KindLine, From: p0, To: p1, Stroke: s})
	return nil
}

// FillRect implements Context.
func (r *Recorder) FillRect(rect geom.Rect, radius float64, c Colour) error {
	r.add(Primitive{Kind: KindFilledRect, Rect: rect, Radius: radius, Fill: c})
	return nil
}

// StrokePath implements Context.
func (r *Recorder) StrokePath(p geom.Path, s Stroke) error {
	r.add(Primitive{Kind: KindStrokedPath, Path: p, Stroke: s})
	return nil
}

// Text implements Context.
func (r *Recorder) Text(t Text) (geom.Size, error) {
	sz := t.Font.Measure(t.Content)
	r.add(Primitive{
		Kind: KindText, Text: t.Content, At: t.At, Font: t.Font.Spec(), Size: sz,
		Fill: t.Colour, HAlign: t.HAlign, VAlign: t.VAlign, Rotation: t.Rotation,
	})
	return sz, nil
}

// PushTransform implements Context.
func (r *Recorder) PushTransform(t geom.Affine) { r.Push(t) }

// PopTransform implements Context.
func (r *Recorder) PopTransform() error { return r.Pop() }

func (r *Recorder) add(p Primitive) {
	p.Transform = r.Current()
	r.Primitives = append(r.Primitives, p)
}

// Filter returns the recorded primitives of the given kind.
func (r *Recorder) Filter(k Kind) []Primitive {
	var out []Primitive
	for _, p := range r.Primitives {
		if p.Kind == k {
			out = append(out, p)
		}
	}
	return out
}

// Replay issues the recorded primitives against ctx, reproducing the
// recorded transforms.
func (r *Recorder) Replay(ctx Context) error {
	fontCache := map[FontSpec]Font{}
	for _, p := range r.Primitives {
		err := WithTransform(ctx, p.Transform, func() error {
			switch p.Kind {
			case KindLine:
				return ctx.Line(p.From, p.To, p.Stroke)
			case KindFilledRect:
				return ctx.FillRect(p.Rect, p.Radius, p.Fill)
			case KindStrokedPath:
				return ctx.StrokePath(p.Path, p.Stroke)
			case KindText:
				f, ok := fontCache[p.Font]
				if !ok {
					var err error
					if f, err = ctx.ResolveFont(p.Font); err != nil {
						return err
					}
					fontCache[p.Font] = f
				}
				_, err := ctx.Text(Text{
					Content: p.Text, At: p.At, Font: f, Colour: p.Fill,
					HAlign: p.HAlign, VAlign: p.VAlign, Rotation: p.Rotation,
				})
				return err
			}
			return nil
		})
		if err != nil {
			return err
		}
	}
	return nil
}
