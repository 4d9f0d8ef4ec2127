package layout

import (
	"math"

	"github.com/matzehuels/stackchart/pkg/geom"
)

// StepAdjust grows area so that its width is a multiple of steps.X and its
// height a multiple of steps.Y. The left and bottom edges stay fixed; the
// right edge moves right and the top edge moves up. A zero step leaves that
// axis untouched.
func StepAdjust(area geom.Rect, steps geom.XY[uint]) geom.Rect {
	out := area
	if steps.X > 0 {
		out.X1 = area.X0 + geom.CeilMul(area.Width(), float64(steps.X))
	}
	if steps.Y > 0 {
		out.Y0 = area.Y1 - geom.CeilMul(area.Height(), float64(steps.Y))
	}
	return out
}

// FitSteps returns a rectangle inside area, sharing its left and bottom
// edges, whose sides are multiples of the given interval counts. It gives
// up at most intervals pixels per axis. Ticks decided over the result land
// on whole pixels when area has integral sides.
func FitSteps(area geom.Rect, intervals geom.XY[uint]) geom.Rect {
	shrunk := area
	if intervals.X > 0 {
		shrunk.X1 = math.Max(area.X0, area.X1-float64(intervals.X))
	}
	if intervals.Y > 0 {
		shrunk.Y0 = math.Min(area.Y1, area.Y0+float64(intervals.Y))
	}
	return StepAdjust(shrunk, intervals)
}
