package layout

import (
	"math"

	"github.com/matzehuels/stackchart/pkg/errors"
	"github.com/matzehuels/stackchart/pkg/geom"
)

// ScatterLayout is the result of fitting point series into a plot area.
type ScatterLayout struct {
	// Paths holds one path per series in device space, in series order.
	Paths []geom.Path
	// Bounds is the union bounding box of all series in data space.
	Bounds geom.Rect
	// Transform maps data space into device space.
	Transform geom.Affine
}

// Scatter fits every series into target. The Y axis is flipped so larger
// values sit higher, each axis is scaled by target size over data extent,
// and the result is translated so the data bounding box is centered on
// target. The extent of an axis is the larger of its maximum and its
// span, which keeps the origin in view for non-negative data.
//
// It fails with errors.ErrCodeEmptyDataset when no series has a point.
func Scatter(series [][]geom.Point, target geom.Rect) (ScatterLayout, error) {
	return scatter(series, nil, target)
}

// ScatterDomain is Scatter with the fitted box widened to include domain.
// Ticks decided over a domain that contains the origin then line up with
// the plotted points.
func ScatterDomain(series [][]geom.Point, domain, target geom.Rect) (ScatterLayout, error) {
	return scatter(series, &domain, target)
}

func scatter(series [][]geom.Point, domain *geom.Rect, target geom.Rect) (ScatterLayout, error) {
	paths := make([]geom.Path, len(series))
	for i, pts := range series {
		paths[i] = geom.NewPath(pts...)
	}
	bounds, ok := geom.UnionBounds(paths)
	if !ok {
		return ScatterLayout{}, errors.New(errors.ErrCodeEmptyDataset, "scatter chart has no points")
	}

	fit := bounds
	if domain != nil {
		fit = fit.Union(*domain)
	}
	tf := FitTransform(fit, target)
	for i := range paths {
		paths[i] = paths[i].Transform(tf)
	}
	return ScatterLayout{Paths: paths, Bounds: bounds, Transform: tf}, nil
}

// FitTransform returns the data-to-device transform Scatter uses for a
// data bounding box.
func FitTransform(bounds, target geom.Rect) geom.Affine {
	sx := scaleFactor(target.Width(), math.Max(bounds.X1, bounds.Width()))
	sy := scaleFactor(target.Height(), math.Max(bounds.Y1, bounds.Height()))

	tf := geom.Identity().FlipY().Scale(sx, sy)
	got := tf.ApplyRect(bounds).Center()
	want := target.Center()
	return tf.Translate(want.X-got.X, want.Y-got.Y)
}

func scaleFactor(size, extent float64) float64 {
	if extent <= 0 || math.IsInf(extent, 0) || math.IsNaN(extent) {
		return 1
	}
	return size / extent
}
