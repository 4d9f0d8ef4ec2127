package chart

import (
	"math"
	"strconv"

	"github.com/matzehuels/stackchart/pkg/draw"
	"github.com/matzehuels/stackchart/pkg/errors"
	"github.com/matzehuels/stackchart/pkg/geom"
	"github.com/matzehuels/stackchart/pkg/layout"
)

// BarName is the type tag of BarChart charts.
const BarName = "bar"

// DefaultBarSpacing is the gap between category groups.
const DefaultBarSpacing = 5.0

// BarChart draws grouped bars: one group per category, one bar per
// dataset within each group.
type BarChart struct {
	// Spacing is the pixel gap between category groups.
	Spacing *float64 `json:"spacing,omitempty" yaml:"spacing,omitempty" toml:"spacing,omitempty"`
	// Categories names the groups. When empty they are numbered from 1.
	Categories []string `json:"categories,omitempty" yaml:"categories,omitempty" toml:"categories,omitempty"`
	// Lines toggles horizontal grid lines. It defaults to true.
	Lines *bool `json:"lines,omitempty" yaml:"lines,omitempty" toml:"lines,omitempty"`
	// Axis is the value axis title.
	Axis string `json:"axis,omitempty" yaml:"axis,omitempty" toml:"axis,omitempty"`
	// Step is the value axis tick spacing. Zero picks one.
	Step uint `json:"step,omitempty" yaml:"step,omitempty" toml:"step,omitempty"`
}

// Name implements ChartType.
func (BarChart) Name() string { return BarName }

func (b BarChart) spacing() float64 {
	if b.Spacing == nil {
		return DefaultBarSpacing
	}
	return *b.Spacing
}

func (b BarChart) lines() bool { return b.Lines == nil || *b.Lines }

// categories returns the group labels for c categories.
func (b BarChart) categories(c int) []string {
	if len(b.Categories) > 0 {
		return b.Categories
	}
	out := make([]string, c)
	for i := range out {
		out[i] = strconv.Itoa(i + 1)
	}
	return out
}

// RenderDatasets implements ChartType.
func (b BarChart) RenderDatasets(info ChartInfo[float64], area geom.Rect, ctx draw.Context) error {
	font, err := ctx.ResolveFont(info.FontSpec())
	if err != nil {
		return err
	}
	f, err := b.frame(info, area, draw.MeasureFunc(font))
	if err != nil {
		return err
	}

	bars, err := layout.Bars(layout.BarInput{
		Values:     f.values,
		Categories: len(f.cats),
		Spacing:    b.spacing(),
		Area:       f.plot,
		ValueStep:  f.step,
	})
	if err != nil {
		return err
	}

	xTicks := make([]layout.Tick, len(f.cats))
	for i, center := range bars.Centers {
		xTicks[i] = layout.Tick{Label: f.cats[i], Offset: center - f.plot.X0}
	}
	g := layout.Grid(layout.GridInput{
		Plot:    f.plot,
		X:       xTicks,
		Y:       layout.StepTicks(layout.DecideSteps(f.plot.Height(), 0, f.top, f.step)),
		Lines:   geom.NewXY(false, b.lines()),
		Margin:  info.Margin(),
		Titles:  geom.XY[string]{Y: b.Axis},
		Measure: draw.MeasureFunc(font),
	})
	if err := drawGrid(ctx, font, g); err != nil {
		return err
	}

	for ds, row := range bars.Blocks {
		colour := info.Colour(ds)
		for _, block := range row {
			if block.Height() <= 0 {
				continue
			}
			if err := ctx.FillRect(block, 0, colour); err != nil {
				return err
			}
		}
	}
	return nil
}

// PlotArea implements Framer.
func (b BarChart) PlotArea(info ChartInfo[float64], area geom.Rect, font draw.Font) (geom.Rect, error) {
	f, err := b.frame(info, area, draw.MeasureFunc(font))
	return f.plot, err
}

// barFrame is the validated data and value axis of a bar chart.
type barFrame struct {
	values [][]float64
	cats   []string
	step   uint
	top    float64
	plot   geom.Rect
}

func (b BarChart) frame(info ChartInfo[float64], area geom.Rect, measure func(string) geom.Size) (barFrame, error) {
	if len(info.Datasets) == 0 {
		return barFrame{}, errors.New(errors.ErrCodeEmptyDataset, "bar chart has no datasets")
	}
	values := make([][]float64, len(info.Datasets))
	for i, d := range info.Datasets {
		for _, v := range d.Values {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return barFrame{}, errors.New(errors.ErrCodeInvalidDatasets, "dataset %q has a non-finite value", d.Name)
			}
		}
		values[i] = d.Values
	}
	c := len(b.Categories)
	if c == 0 {
		c = len(values[0])
	}
	cats := b.categories(c)

	step := b.Step
	if step == 0 {
		step = layout.AutoStep(0, layout.BarMax(values, 1), MaxAutoTicks)
	}
	top := layout.BarMax(values, step)
	if top == 0 {
		top = float64(step)
	}
	ySteps := layout.DecideSteps(1, 0, top, step)

	insets := layout.FrameInsets(layout.Labels{
		X:      cats,
		Y:      labelTexts(ySteps),
		Titles: geom.XY[string]{Y: b.Axis},
	}, info.Margin(), measure)
	plot, err := insets.Fit(area, geom.NewXY(0, layout.Intervals(ySteps)))
	if err != nil {
		return barFrame{}, err
	}
	return barFrame{values: values, cats: cats, step: step, top: top, plot: plot}, nil
}
