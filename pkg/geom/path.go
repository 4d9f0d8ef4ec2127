package geom

// Path is an open polyline. The first point is a move; every following
// point is a line from its predecessor.
type Path struct {
	Points []Point
}

// NewPath returns a path through pts in order.
func NewPath(pts ...Point) Path { return Path{Points: pts} }

// Len returns the number of points in the path.
func (p Path) Len() int { return len(p.Points) }

// Bounds returns the bounding box of the path. ok is false for an empty path.
func (p Path) Bounds() (r Rect, ok bool) {
	if len(p.Points) == 0 {
		return Rect{}, false
	}
	first := p.Points[0]
	r = Rect{first.X, first.Y, first.X, first.Y}
	for _, pt := range p.Points[1:] {
		r = r.UnionPoint(pt)
	}
	return r, true
}

// Transform returns a copy of the path with t applied to every point.
func (p Path) Transform(t Affine) Path {
	out := make([]Point, len(p.Points))
	for i, pt := range p.Points {
		out[i] = t.Apply(pt)
	}
	return Path{Points: out}
}

// Segments returns the line segments of the path in drawing order.
func (p Path) Segments() [][2]Point {
	if len(p.Points) < 2 {
		return nil
	}
	segs := make([][2]Point, 0, len(p.Points)-1)
	for i := 1; i < len(p.Points); i++ {
		segs = append(segs, [2]Point{p.Points[i-1], p.Points[i]})
	}
	return segs
}

// UnionBounds returns the bounding box of every non-empty path. ok is false
// when all paths are empty.
func UnionBounds(paths []Path) (r Rect, ok bool) {
	for _, p := range paths {
		b, has := p.Bounds()
		if !has {
			continue
		}
		if !ok {
			r, ok = b, true
			continue
		}
		r = r.Union(b)
	}
	return r, ok
}
