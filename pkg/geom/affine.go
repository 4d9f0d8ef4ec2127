package geom

import (
	"fmt"
	"math"
)

// Affine is a 2-D affine transform stored as the SVG matrix(a b c d e f):
//
//	x' = a*x + c*y + e
//	y' = b*x + d*y + f
//
// The zero value is not the identity; use [Identity].
type Affine struct {
	A, B, C, D, E, F float64
}

// Identity returns the transform that leaves every point unchanged.
func Identity() Affine { return Affine{A: 1, D: 1} }

// Translation returns a pure translation.
func Translation(dx, dy float64) Affine { return Affine{A: 1, D: 1, E: dx, F: dy} }

// Scaling returns a pure non-uniform scale about the origin.
func Scaling(sx, sy float64) Affine { return Affine{A: sx, D: sy} }

// Rotation returns a rotation about the origin by deg degrees. Positive
// angles rotate clockwise in device space.
func Rotation(deg float64) Affine {
	s, c := math.Sincos(deg * math.Pi / 180)
	return Affine{A: c, B: s, C: -s, D: c}
}

// Then returns the transform that applies t first and o second.
func (t Affine) Then(o Affine) Affine {
	return Affine{
		A: o.A*t.A + o.C*t.B,
		B: o.B*t.A + o.D*t.B,
		C: o.A*t.C + o.C*t.D,
		D: o.B*t.C + o.D*t.D,
		E: o.A*t.E + o.C*t.F + o.E,
		F: o.B*t.E + o.D*t.F + o.F,
	}
}

// FlipY appends a mirror about the x axis (y -> -y).
func (t Affine) FlipY() Affine { return t.Then(Scaling(1, -1)) }

// Scale appends a non-uniform scale about the origin.
func (t Affine) Scale(sx, sy float64) Affine { return t.Then(Scaling(sx, sy)) }

// Translate appends a translation.
func (t Affine) Translate(dx, dy float64) Affine { return t.Then(Translation(dx, dy)) }

// Rotate appends a rotation by deg degrees about the origin.
func (t Affine) Rotate(deg float64) Affine { return t.Then(Rotation(deg)) }

// Apply transforms a single point.
func (t Affine) Apply(p Point) Point {
	return Point{
		X: t.A*p.X + t.C*p.Y + t.E,
		Y: t.B*p.X + t.D*p.Y + t.F,
	}
}

// ApplyRect transforms the four corners of r and returns their bounding box.
func (t Affine) ApplyRect(r Rect) Rect {
	p := t.Apply(Point{r.X0, r.Y0})
	out := Rect{p.X, p.Y, p.X, p.Y}
	out = out.UnionPoint(t.Apply(Point{r.X1, r.Y0}))
	out = out.UnionPoint(t.Apply(Point{r.X0, r.Y1}))
	return out.UnionPoint(t.Apply(Point{r.X1, r.Y1}))
}

// IsIdentity reports whether t is exactly the identity.
func (t Affine) IsIdentity() bool { return t == Identity() }

// IsTranslation reports whether t only translates.
func (t Affine) IsTranslation() bool {
	return t.A == 1 && t.B == 0 && t.C == 0 && t.D == 1
}

// String formats t as an SVG transform attribute value.
func (t Affine) String() string {
	return fmt.Sprintf("matrix(%g %g %g %g %g %g)", t.A, t.B, t.C, t.D, t.E, t.F)
}
