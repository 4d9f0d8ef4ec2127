package layout

import (
	"math"

	"github.com/matzehuels/stackchart/pkg/errors"
	"github.com/matzehuels/stackchart/pkg/geom"
)

// BarInput describes a grouped bar chart.
type BarInput struct {
	// Values holds one slice per dataset, indexed by category.
	Values [][]float64
	// Categories is the number of categories. Zero means len(Values[0]).
	Categories int
	// Spacing is the pixel gap between neighbouring category groups.
	Spacing float64
	// Area is the plot rectangle in device space.
	Area geom.Rect
	// ValueStep rounds the value axis maximum up to a multiple of itself.
	// Zero behaves like 1.
	ValueStep uint
}

// BarLayout is the geometry of a grouped bar chart.
type BarLayout struct {
	// BlockWidth is the width of a single bar.
	BlockWidth float64
	// Blocks holds the bar rectangles in device space, indexed
	// [dataset][category]. Bars grow upwards from Area.Y1.
	Blocks [][]geom.Rect
	// Centers holds the X coordinate of the middle of each category group.
	Centers []float64
	// MaxValue is the top of the value axis. It is zero when every value
	// is zero or negative.
	MaxValue float64
}

// Bars lays out n datasets over c categories. Each category gets a group
// of n adjacent bars; groups are separated by Spacing:
//
//	bw  = (W - (c-1)*spacing) / (n*c)
//	x   = X0 + cat*(n*bw + spacing) + ds*bw
//	h   = value / MaxValue * H
//
// Errors: errors.ErrCodeEmptyDataset when there are no datasets or no
// categories, errors.ErrCodeInvalidDatasets when a dataset has the wrong
// number of values, and a *errors.SpaceError when fewer than one pixel
// per bar remains after spacing.
func Bars(in BarInput) (BarLayout, error) {
	n := len(in.Values)
	if n == 0 {
		return BarLayout{}, errors.New(errors.ErrCodeEmptyDataset, "bar chart has no datasets")
	}
	c := in.Categories
	if c == 0 {
		c = len(in.Values[0])
	}
	if c <= 0 {
		return BarLayout{}, errors.New(errors.ErrCodeEmptyDataset, "bar chart has no categories")
	}
	for i, vals := range in.Values {
		if len(vals) != c {
			return BarLayout{}, errors.New(errors.ErrCodeInvalidDatasets,
				"dataset %d has %d values, want one per category (%d)", i, len(vals), c)
		}
	}
	if in.Spacing < 0 || math.IsNaN(in.Spacing) {
		return BarLayout{}, errors.New(errors.ErrCodeInvalidInput, "bar spacing must be non-negative, got %g", in.Spacing)
	}

	w, h := in.Area.Width(), in.Area.Height()
	gaps := float64(c-1) * in.Spacing
	bars := float64(n * c)
	free := w - gaps
	if free < bars {
		return BarLayout{}, errors.NotEnoughSpace(bars+gaps, w)
	}

	bw := free / bars
	group := bw*float64(n) + in.Spacing
	maxVal := BarMax(in.Values, in.ValueStep)

	out := BarLayout{
		BlockWidth: bw,
		Blocks:     make([][]geom.Rect, n),
		Centers:    make([]float64, c),
		MaxValue:   maxVal,
	}
	for cat := 0; cat < c; cat++ {
		out.Centers[cat] = in.Area.X0 + float64(cat)*group + float64(n)*bw/2
	}
	for ds, vals := range in.Values {
		row := make([]geom.Rect, c)
		for cat, v := range vals {
			x := in.Area.X0 + float64(cat)*group + float64(ds)*bw
			bh := 0.0
			if maxVal > 0 && v > 0 {
				bh = math.Min(v/maxVal, 1) * h
			}
			row[cat] = geom.Rect{X0: x, Y0: in.Area.Y1 - bh, X1: x + bw, Y1: in.Area.Y1}
		}
		out.Blocks[ds] = row
	}
	return out, nil
}

// BarMax returns the value axis maximum: the largest value rounded up to a
// multiple of step (1 when step is zero). Non-positive and NaN values are
// ignored, so an all-zero chart yields 0.
func BarMax(values [][]float64, step uint) float64 {
	s := float64(max(step, 1))
	top := 0.0
	for _, vals := range values {
		for _, v := range vals {
			if v > top {
				top = v
			}
		}
	}
	if top <= 0 || math.IsInf(top, 1) {
		return 0
	}
	return geom.CeilMul(top, s)
}
