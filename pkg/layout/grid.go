package layout

import (
	"math"

	"github.com/matzehuels/stackchart/pkg/draw"
	"github.com/matzehuels/stackchart/pkg/errors"
	"github.com/matzehuels/stackchart/pkg/geom"
)

// DefaultMargin is the gap between the plot and its tick labels.
var DefaultMargin = geom.XY[float64]{X: 5, Y: 10}

// DefaultLines enables horizontal grid lines only.
var DefaultLines = geom.XY[bool]{X: false, Y: true}

// Tick is a labelled position along an axis.
type Tick struct {
	Label  string
	Offset float64 // pixels from the start of the axis
}

// StepTicks converts planned steps into ticks.
func StepTicks(steps []StepLabel) []Tick {
	ticks := make([]Tick, len(steps))
	for i, s := range steps {
		ticks[i] = Tick{Label: s.Label(), Offset: s.Offset}
	}
	return ticks
}

// Segment is a straight line in device space.
type Segment struct {
	From, To geom.Point
}

// Label is a positioned text run.
type Label struct {
	Text     string
	At       geom.Point
	HAlign   draw.HAlign
	VAlign   draw.VAlign
	Rotation float64
}

// Labels names the text around a plot. X and Y are the tick labels in
// axis order; Titles are the axis descriptions and may be empty.
type Labels struct {
	X, Y   []string
	Titles geom.XY[string]
}

// Insets are the gutters reserved around a plot.
type Insets struct {
	Left, Top, Right, Bottom float64
}

// FrameInsets reserves room around a plot for tick labels and axis titles.
// The left gutter fits the widest Y label plus the Y title, the bottom
// gutter fits the X labels plus the X title, and the top and right keep
// half a label free so end ticks are not clipped.
func FrameInsets(labels Labels, margin geom.XY[float64], measure func(string) geom.Size) Insets {
	measure = orZero(measure)
	yw, yh := maxExtent(labels.Y, measure)
	xw, xh := maxExtent(labels.X, measure)

	in := Insets{
		Left:   margin.X + yw + margin.X,
		Top:    math.Max(yh/2, margin.Y),
		Right:  math.Max(xw/2, margin.X),
		Bottom: margin.Y + xh + margin.Y,
	}
	if labels.Titles.Y != "" {
		in.Left += measure(labels.Titles.Y).H + margin.X
	}
	if labels.Titles.X != "" {
		in.Bottom += measure(labels.Titles.X).H + margin.Y
	}
	return in
}

// Frame returns area minus FrameInsets. The result collapses to a point
// rather than inverting.
func Frame(area geom.Rect, labels Labels, margin geom.XY[float64], measure func(string) geom.Size) geom.Rect {
	in := FrameInsets(labels, margin, measure)
	return area.Inset(in.Left, in.Top, in.Right, in.Bottom)
}

// Fit returns the plot rectangle left inside area once the insets are
// taken, shrunk by FitSteps to whole-pixel tick spacing. It fails with a
// *errors.SpaceError when fewer than one pixel per interval remains.
func (in Insets) Fit(area geom.Rect, intervals geom.XY[uint]) (geom.Rect, error) {
	needW := in.Left + in.Right + float64(max(intervals.X, 1))
	if area.Width() < needW {
		return geom.Rect{}, errors.NotEnoughSpace(needW, area.Width())
	}
	needH := in.Top + in.Bottom + float64(max(intervals.Y, 1))
	if area.Height() < needH {
		return geom.Rect{}, errors.NotEnoughSpace(needH, area.Height())
	}
	return FitSteps(area.Inset(in.Left, in.Top, in.Right, in.Bottom), intervals), nil
}

func maxExtent(texts []string, measure func(string) geom.Size) (w, h float64) {
	for _, t := range texts {
		sz := measure(t)
		w, h = math.Max(w, sz.W), math.Max(h, sz.H)
	}
	return w, h
}

// GridInput describes the grid, axes and labels of a plot.
type GridInput struct {
	// Plot is the plot rectangle in device space.
	Plot geom.Rect
	// X ticks run right from Plot.X0, Y ticks run up from Plot.Y1.
	X, Y []Tick
	// Lines toggles vertical (X) and horizontal (Y) grid lines.
	Lines geom.XY[bool]
	// Margin is the gap between the plot and the tick labels.
	Margin geom.XY[float64]
	// Titles are the axis descriptions; empty titles are skipped.
	Titles geom.XY[string]
	// Measure returns the extent of a text run.
	Measure func(string) geom.Size
}

// GridLayout holds the grid geometry of a plot.
type GridLayout struct {
	Lines  []Segment // grid lines
	Axes   []Segment // X axis along the bottom edge, Y axis along the left
	Labels []Label   // tick labels then axis titles
}

// Grid places grid lines at every tick, axis lines along the left and
// bottom edges, tick labels outside the plot and axis titles beyond them.
// X labels are centered under their tick; Y labels are right-aligned
// against the Y axis.
func Grid(in GridInput) GridLayout {
	p := in.Plot
	var out GridLayout

	if in.Lines.X {
		for _, t := range in.X {
			x := p.X0 + t.Offset
			out.Lines = append(out.Lines, Segment{geom.Pt(x, p.Y0), geom.Pt(x, p.Y1)})
		}
	}
	if in.Lines.Y {
		for _, t := range in.Y {
			y := p.Y1 - t.Offset
			out.Lines = append(out.Lines, Segment{geom.Pt(p.X0, y), geom.Pt(p.X1, y)})
		}
	}
	out.Axes = []Segment{
		{geom.Pt(p.X0, p.Y1), geom.Pt(p.X1, p.Y1)},
		{geom.Pt(p.X0, p.Y0), geom.Pt(p.X0, p.Y1)},
	}

	for _, t := range in.X {
		out.Labels = append(out.Labels, Label{
			Text: t.Label, At: geom.Pt(p.X0+t.Offset, p.Y1+in.Margin.Y),
			HAlign: draw.AlignCenter, VAlign: draw.AlignTop,
		})
	}
	for _, t := range in.Y {
		out.Labels = append(out.Labels, Label{
			Text: t.Label, At: geom.Pt(p.X0-in.Margin.X, p.Y1-t.Offset),
			HAlign: draw.AlignRight, VAlign: draw.AlignMiddle,
		})
	}

	measure := orZero(in.Measure)
	xLabels, yLabels := tickTexts(in.X), tickTexts(in.Y)
	if in.Titles.X != "" {
		_, xh := maxExtent(xLabels, measure)
		out.Labels = append(out.Labels, Label{
			Text: in.Titles.X, At: geom.Pt(p.Center().X, p.Y1+in.Margin.Y+xh+in.Margin.Y),
			HAlign: draw.AlignCenter, VAlign: draw.AlignTop,
		})
	}
	if in.Titles.Y != "" {
		yw, _ := maxExtent(yLabels, measure)
		out.Labels = append(out.Labels, Label{
			Text: in.Titles.Y, At: geom.Pt(p.X0-in.Margin.X-yw-in.Margin.X, p.Center().Y),
			HAlign: draw.AlignCenter, VAlign: draw.AlignBottom, Rotation: -90,
		})
	}
	return out
}

func tickTexts(ticks []Tick) []string {
	out := make([]string, len(ticks))
	for i, t := range ticks {
		out[i] = t.Label
	}
	return out
}

func orZero(measure func(string) geom.Size) func(string) geom.Size {
	if measure == nil {
		return func(string) geom.Size { return geom.Size{} }
	}
	return measure
}
