package sink

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/matzehuels/stackchart/pkg/draw"
	"github.com/matzehuels/stackchart/pkg/fonts"
	"github.com/matzehuels/stackchart/pkg/geom"
)

// SVGOption configures an SVG canvas.
type SVGOption func(*SVG)

// WithID sets the seed of the document id. Equal seeds give equal ids, so
// repeated renders of the same chart are byte-identical.
func WithID(seed string) SVGOption { return func(s *SVG) { s.seed = seed } }

// WithTitle embeds a <title> element.
func WithTitle(t string) SVGOption { return func(s *SVG) { s.title = t } }

// WithBackground sets the background fill.
func WithBackground(c draw.Colour) SVGOption { return func(s *SVG) { s.background = c } }

// SVG is a canvas that writes SVG markup.
type SVG struct {
	draw.TransformStack
	width, height float64
	seed          string
	title         string
	background    draw.Colour
	body          bytes.Buffer
	classes       map[fonts.Spec]string
	order         []fonts.Spec
}

// NewSVG returns an empty SVG canvas.
func NewSVG(width, height float64, opts ...SVGOption) *SVG {
	s := &SVG{
		width:      width,
		height:     height,
		background: draw.White,
		classes:    map[fonts.Spec]string{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ResolveFont implements draw.Context.
func (s *SVG) ResolveFont(spec draw.FontSpec) (draw.Font, error) {
	f, err := fonts.Resolve(spec)
	if err != nil {
		return nil, err
	}
	return f, nil
}

// Line implements draw.Context.
func (s *SVG) Line(p0, p1 geom.Point, st draw.Stroke) error {
	fmt.Fprintf(&s.body, `  <line x1="%s" y1="%s" x2="%s" y2="%s"%s/>`+"\n",
		num(p0.X), num(p0.Y), num(p1.X), num(p1.Y), strokeAttrs(st))
	return nil
}

// FillRect implements draw.Context.
func (s *SVG) FillRect(r geom.Rect, radius float64, c draw.Colour) error {
	var rx string
	if radius > 0 {
		rx = fmt.Sprintf(` rx="%s"`, num(radius))
	}
	fmt.Fprintf(&s.body, `  <rect x="%s" y="%s" width="%s" height="%s"%s%s/>`+"\n",
		num(r.X0), num(r.Y0), num(r.Width()), num(r.Height()), rx, fillAttrs(c))
	return nil
}

// StrokePath implements draw.Context.
func (s *SVG) StrokePath(p geom.Path, st draw.Stroke) error {
	if p.Len() == 0 {
		return nil
	}
	var d strings.Builder
	for i, pt := range p.Points {
		cmd := "L"
		if i == 0 {
			cmd = "M"
		}
		fmt.Fprintf(&d, "%s%s %s", cmd, num(pt.X), num(pt.Y))
	}
	fmt.Fprintf(&s.body, `  <path d="%s" fill="none" stroke-linejoin="round"%s/>`+"\n", d.String(), strokeAttrs(st))
	return nil
}

// Text implements draw.Context.
func (s *SVG) Text(t draw.Text) (geom.Size, error) {
	sz := t.Font.Measure(t.Content)
	y := draw.Baseline(t.Font, t.At.Y, t.VAlign)

	var rot string
	if t.Rotation != 0 {
		rot = fmt.Sprintf(` transform="rotate(%s %s %s)"`, num(t.Rotation), num(t.At.X), num(t.At.Y))
	}
	fmt.Fprintf(&s.body, `  <text x="%s" y="%s" class="%s" text-anchor="%s"%s%s>%s</text>`+"\n",
		num(t.At.X), num(y), s.class(t.Font.Spec()), anchor(t.HAlign), fillAttrs(t.Colour), rot, escapeXML(t.Content))
	return sz, nil
}

// PushTransform implements draw.Context.
func (s *SVG) PushTransform(t geom.Affine) {
	s.Push(t)
	if t.IsTranslation() {
		fmt.Fprintf(&s.body, `  <g transform="translate(%s %s)">`+"\n", num(t.E), num(t.F))
		return
	}
	fmt.Fprintf(&s.body, `  <g transform="%s">`+"\n", t)
}

// PopTransform implements draw.Context.
func (s *SVG) PopTransform() error {
	if err := s.Pop(); err != nil {
		return err
	}
	s.body.WriteString("  </g>\n")
	return nil
}

// Finish implements Canvas.
func (s *SVG) Finish() ([]byte, error) {
	if d := s.Depth(); d != 0 {
		return nil, unbalanced(d)
	}
	var buf bytes.Buffer
	id := "chart-" + uuid.NewSHA1(uuid.NameSpaceOID, []byte(s.seed+"|"+s.body.String())).String()
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" id="%s" viewBox="0 0 %s %s" width="%s" height="%s">`+"\n",
		id, num(s.width), num(s.height), num(s.width), num(s.height))
	if s.title != "" {
		fmt.Fprintf(&buf, "  <title>%s</title>\n", escapeXML(s.title))
	}
	s.renderStyle(&buf, id)
	if s.background.A > 0 {
		fmt.Fprintf(&buf, `  <rect width="100%%" height="100%%"%s/>`+"\n", fillAttrs(s.background))
	}
	buf.Write(s.body.Bytes())
	buf.WriteString("</svg>\n")
	return buf.Bytes(), nil
}

func (s *SVG) class(spec fonts.Spec) string {
	if c, ok := s.classes[spec]; ok {
		return c
	}
	c := fmt.Sprintf("f%d", len(s.order))
	s.classes[spec] = c
	s.order = append(s.order, spec)
	return c
}

func (s *SVG) renderStyle(buf *bytes.Buffer, id string) {
	if len(s.order) == 0 {
		return
	}
	buf.WriteString("  <style>\n")
	for _, spec := range s.order {
		fmt.Fprintf(buf, "    #%s .%s { font-family: %s; font-size: %spx; font-weight: %s; font-style: %s; }\n",
			id, s.classes[spec], spec.CSSFamily(), num(spec.Size), spec.CSSWeight(), spec.CSSStyle())
	}
	buf.WriteString("  </style>\n")
}

func strokeAttrs(st draw.Stroke) string {
	w := st.Width
	if w <= 0 {
		w = 1
	}
	out := fmt.Sprintf(` stroke="%s" stroke-width="%s"`, st.Colour.Hex(), num(w))
	if st.Colour.A < 255 {
		out += fmt.Sprintf(` stroke-opacity="%s"`, num(st.Colour.Opacity()))
	}
	return out
}

func fillAttrs(c draw.Colour) string {
	out := fmt.Sprintf(` fill="%s"`, c.Hex())
	if c.A < 255 {
		out += fmt.Sprintf(` fill-opacity="%s"`, num(c.Opacity()))
	}
	return out
}

func anchor(h draw.HAlign) string {
	switch h {
	case draw.AlignCenter:
		return "middle"
	case draw.AlignRight:
		return "end"
	}
	return "start"
}

// num formats a coordinate with at most two decimals and no trailing zeros.
func num(v float64) string {
	s := fmt.Sprintf("%.2f", v)
	s = strings.TrimRight(strings.TrimRight(s, "0"), ".")
	if s == "-0" || s == "" {
		return "0"
	}
	return s
}

func escapeXML(s string) string {
	var buf bytes.Buffer
	xml.EscapeText(&buf, []byte(s))
	return buf.String()
}
