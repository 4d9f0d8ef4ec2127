package geom

import "math"

// Point is a position in either data or device space.
type Point struct {
	X, Y float64
}

// Pt is shorthand for Point{X: x, Y: y}.
func Pt(x, y float64) Point { return Point{X: x, Y: y} }

// Add returns p translated by q.
func (p Point) Add(q Point) Point { return Point{p.X + q.X, p.Y + q.Y} }

// Sub returns p - q.
func (p Point) Sub(q Point) Point { return Point{p.X - q.X, p.Y - q.Y} }

// Size is a width/height pair, typically a measured text extent.
type Size struct {
	W, H float64
}

// Rect is an axis-aligned rectangle given by its minimum (X0, Y0) and
// maximum (X1, Y1) corners. In device space Y0 is the top edge.
type Rect struct {
	X0, Y0 float64
	X1, Y1 float64
}

// NewRect returns the rectangle spanned by two corners in any order.
func NewRect(x0, y0, x1, y1 float64) Rect {
	return Rect{
		X0: math.Min(x0, x1), Y0: math.Min(y0, y1),
		X1: math.Max(x0, x1), Y1: math.Max(y0, y1),
	}
}

// RectFromSize returns the rectangle with its minimum corner at origin.
func RectFromSize(origin Point, s Size) Rect {
	return Rect{X0: origin.X, Y0: origin.Y, X1: origin.X + s.W, Y1: origin.Y + s.H}
}

// Width returns the horizontal span of the rectangle.
func (r Rect) Width() float64 { return r.X1 - r.X0 }

// Height returns the vertical span of the rectangle.
func (r Rect) Height() float64 { return r.Y1 - r.Y0 }

// Size returns the rectangle's extent.
func (r Rect) Size() Size { return Size{W: r.Width(), H: r.Height()} }

// Min returns the minimum corner.
func (r Rect) Min() Point { return Point{r.X0, r.Y0} }

// Max returns the maximum corner.
func (r Rect) Max() Point { return Point{r.X1, r.Y1} }

// Center returns the midpoint of the rectangle.
func (r Rect) Center() Point { return Point{(r.X0 + r.X1) / 2, (r.Y0 + r.Y1) / 2} }

// Empty reports whether the rectangle has a negative extent on either axis.
func (r Rect) Empty() bool { return r.X1 < r.X0 || r.Y1 < r.Y0 }

// Union returns the smallest rectangle containing both r and o.
func (r Rect) Union(o Rect) Rect {
	return Rect{
		X0: math.Min(r.X0, o.X0), Y0: math.Min(r.Y0, o.Y0),
		X1: math.Max(r.X1, o.X1), Y1: math.Max(r.Y1, o.Y1),
	}
}

// UnionPoint extends r to include p.
func (r Rect) UnionPoint(p Point) Rect {
	return r.Union(Rect{p.X, p.Y, p.X, p.Y})
}

// Contains reports whether o lies inside r, allowing eps of slack on every edge.
func (r Rect) Contains(o Rect, eps float64) bool {
	return o.X0 >= r.X0-eps && o.Y0 >= r.Y0-eps &&
		o.X1 <= r.X1+eps && o.Y1 <= r.Y1+eps
}

// ContainsPoint reports whether p lies inside r with eps of slack.
func (r Rect) ContainsPoint(p Point, eps float64) bool {
	return p.X >= r.X0-eps && p.X <= r.X1+eps && p.Y >= r.Y0-eps && p.Y <= r.Y1+eps
}

// Inset shrinks the rectangle by the given amounts on each edge. Insets
// larger than the rectangle collapse it to a zero-extent rectangle at the
// centre of the overlap.
func (r Rect) Inset(left, top, right, bottom float64) Rect {
	out := Rect{X0: r.X0 + left, Y0: r.Y0 + top, X1: r.X1 - right, Y1: r.Y1 - bottom}
	if out.X1 < out.X0 {
		mid := (out.X0 + out.X1) / 2
		out.X0, out.X1 = mid, mid
	}
	if out.Y1 < out.Y0 {
		mid := (out.Y0 + out.Y1) / 2
		out.Y0, out.Y1 = mid, mid
	}
	return out
}

// InsetAll shrinks every edge by d.
func (r Rect) InsetAll(d float64) Rect { return r.Inset(d, d, d, d) }

// Translate returns r moved by (dx, dy).
func (r Rect) Translate(dx, dy float64) Rect {
	return Rect{r.X0 + dx, r.Y0 + dy, r.X1 + dx, r.Y1 + dy}
}
