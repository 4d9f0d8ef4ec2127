package chart

import (
	"math"

	"github.com/matzehuels/stackchart/pkg/draw"
	"github.com/matzehuels/stackchart/pkg/errors"
	"github.com/matzehuels/stackchart/pkg/geom"
	"github.com/matzehuels/stackchart/pkg/layout"
)

// XYScatterName is the type tag of XYScatter charts.
const XYScatterName = "xy-scatter"

// MaxAutoTicks bounds the number of ticks picked when no step is configured.
const MaxAutoTicks = 6

// SeriesWidth is the stroke width of scatter series without a thickness.
const SeriesWidth = 2

// XYPoint is a scatter data point.
type XYPoint = geom.XY[float64]

// XYScatter plots point series joined by straight lines.
type XYScatter struct {
	// Axis holds the axis titles.
	Axis geom.XY[string] `json:"axis" yaml:"axis" toml:"axis"`
	// Grid toggles vertical (X) and horizontal (Y) grid lines.
	Grid *geom.XY[bool] `json:"grid,omitempty" yaml:"grid,omitempty" toml:"grid,omitempty"`
	// Steps is the tick spacing per axis in data units. Zero picks one.
	Steps *geom.XY[uint] `json:"steps,omitempty" yaml:"steps,omitempty" toml:"steps,omitempty"`
}

// Name implements ChartType.
func (XYScatter) Name() string { return XYScatterName }

func (s XYScatter) grid() geom.XY[bool] {
	if s.Grid == nil {
		return layout.DefaultLines
	}
	return *s.Grid
}

// RenderDatasets implements ChartType.
//
// The plotted domain always contains the origin and is widened to whole
// steps, so grid lines fall on tick values and the data sits on them.
func (s XYScatter) RenderDatasets(info ChartInfo[XYPoint], area geom.Rect, ctx draw.Context) error {
	font, err := ctx.ResolveFont(info.FontSpec())
	if err != nil {
		return err
	}
	f, err := s.frame(info, area, draw.MeasureFunc(font))
	if err != nil {
		return err
	}

	g := layout.Grid(layout.GridInput{
		Plot:    f.plot,
		X:       layout.StepTicks(layout.DecideSteps(f.plot.Width(), f.domain.X0, f.domain.X1, f.steps.X)),
		Y:       layout.StepTicks(layout.DecideSteps(f.plot.Height(), f.domain.Y0, f.domain.Y1, f.steps.Y)),
		Lines:   s.grid(),
		Margin:  info.Margin(),
		Titles:  s.Axis,
		Measure: draw.MeasureFunc(font),
	})
	if err := drawGrid(ctx, font, g); err != nil {
		return err
	}

	fit, err := layout.ScatterDomain(f.series, f.domain, f.plot)
	if err != nil {
		return err
	}
	for i, p := range fit.Paths {
		if p.Len() == 0 {
			continue
		}
		if err := ctx.StrokePath(p, draw.Stroke{Colour: info.Colour(i), Width: info.Thickness(i, SeriesWidth)}); err != nil {
			return err
		}
	}
	return nil
}

// PlotArea implements Framer.
func (s XYScatter) PlotArea(info ChartInfo[XYPoint], area geom.Rect, font draw.Font) (geom.Rect, error) {
	f, err := s.frame(info, area, draw.MeasureFunc(font))
	return f.plot, err
}

// scatterFrame is the validated data and plot geometry of a scatter chart.
type scatterFrame struct {
	series [][]geom.Point
	steps  geom.XY[uint]
	domain geom.Rect
	plot   geom.Rect
}

func (s XYScatter) frame(info ChartInfo[XYPoint], area geom.Rect, measure func(string) geom.Size) (scatterFrame, error) {
	series := make([][]geom.Point, len(info.Datasets))
	for i, d := range info.Datasets {
		pts := make([]geom.Point, 0, len(d.Values))
		for _, v := range d.Values {
			if math.IsNaN(v.X) || math.IsNaN(v.Y) || math.IsInf(v.X, 0) || math.IsInf(v.Y, 0) {
				return scatterFrame{}, errors.New(errors.ErrCodeInvalidDatasets, "dataset %q has a non-finite point", d.Name)
			}
			pts = append(pts, geom.Pt(v.X, v.Y))
		}
		series[i] = pts
	}
	bounds, ok := geom.UnionBounds(pathsOf(series))
	if !ok {
		return scatterFrame{}, errors.New(errors.ErrCodeEmptyDataset, "scatter chart has no points")
	}

	steps := s.steps(bounds)
	domain := scatterDomain(bounds, steps)

	xSteps := layout.DecideSteps(1, domain.X0, domain.X1, steps.X)
	ySteps := layout.DecideSteps(1, domain.Y0, domain.Y1, steps.Y)
	insets := layout.FrameInsets(layout.Labels{
		X:      labelTexts(xSteps),
		Y:      labelTexts(ySteps),
		Titles: s.Axis,
	}, info.Margin(), measure)
	plot, err := insets.Fit(area, geom.NewXY(layout.Intervals(xSteps), layout.Intervals(ySteps)))
	if err != nil {
		return scatterFrame{}, err
	}
	return scatterFrame{series: series, steps: steps, domain: domain, plot: plot}, nil
}

// steps returns the configured steps, choosing any that are unset.
func (s XYScatter) steps(bounds geom.Rect) geom.XY[uint] {
	var out geom.XY[uint]
	if s.Steps != nil {
		out = *s.Steps
	}
	if out.X == 0 {
		out.X = layout.AutoStep(math.Min(0, bounds.X0), math.Max(0, bounds.X1), MaxAutoTicks)
	}
	if out.Y == 0 {
		out.Y = layout.AutoStep(math.Min(0, bounds.Y0), math.Max(0, bounds.Y1), MaxAutoTicks)
	}
	return out
}

// scatterDomain widens bounds to include the origin and whole steps. An
// axis whose data is all zero spans one step.
func scatterDomain(bounds geom.Rect, steps geom.XY[uint]) geom.Rect {
	sx, sy := float64(steps.X), float64(steps.Y)
	d := geom.Rect{
		X0: geom.FloorMul(math.Min(0, bounds.X0), sx),
		Y0: geom.FloorMul(math.Min(0, bounds.Y0), sy),
		X1: geom.CeilMul(math.Max(0, bounds.X1), sx),
		Y1: geom.CeilMul(math.Max(0, bounds.Y1), sy),
	}
	if d.X1 == d.X0 {
		d.X1 += sx
	}
	if d.Y1 == d.Y0 {
		d.Y1 += sy
	}
	return d
}

func pathsOf(series [][]geom.Point) []geom.Path {
	paths := make([]geom.Path, len(series))
	for i, pts := range series {
		paths[i] = geom.NewPath(pts...)
	}
	return paths
}
