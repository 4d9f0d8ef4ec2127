package chart

import (
	"github.com/matzehuels/stackchart/pkg/draw"
	"github.com/matzehuels/stackchart/pkg/errors"
	"github.com/matzehuels/stackchart/pkg/geom"
	"github.com/matzehuels/stackchart/pkg/layout"
)

// Padding is kept free on every side of the chart area.
const Padding = 10

// CaptionScale is the caption size relative to the chart font.
const CaptionScale = 1.5

// ChartType renders the plot of one chart family.
//
// RenderDatasets draws axes, grid and data for info into area. It must
// leave the transform stack of ctx as it found it.
type ChartType[Pt any] interface {
	Name() string
	RenderDatasets(info ChartInfo[Pt], area geom.Rect, ctx draw.Context) error
}

// Framer is implemented by chart types that can report their plot
// rectangle, the area inside the axes, without drawing. The legend is
// placed against it when available.
type Framer[Pt any] interface {
	PlotArea(info ChartInfo[Pt], area geom.Rect, font draw.Font) (geom.Rect, error)
}

// Chart pairs a chart type with its shared information.
type Chart[C ChartType[Pt], Pt any] struct {
	Type C
	Info ChartInfo[Pt]
}

// Kind returns the registered name of the chart type.
func (c *Chart[C, Pt]) Kind() string { return c.Type.Name() }

// Render draws the chart into area. The caption goes on top, the chart
// type draws the plot below it, and the legend is overlaid last, inset
// from the corner of the plot rectangle.
func (c *Chart[C, Pt]) Render(ctx draw.Context, area geom.Rect) error {
	font, err := ctx.ResolveFont(c.Info.FontSpec())
	if err != nil {
		return err
	}

	area = area.InsetAll(Padding)
	if c.Info.Caption != "" {
		if area, err = drawCaption(ctx, c.Info, area); err != nil {
			return err
		}
	}

	if err := c.Type.RenderDatasets(c.Info, area, ctx); err != nil {
		return err
	}

	if !c.Info.ShowLegend() || len(c.Info.Datasets) == 0 {
		return nil
	}
	plot := area
	if f, ok := any(c.Type).(Framer[Pt]); ok {
		if plot, err = f.PlotArea(c.Info, area, font); err != nil {
			return err
		}
	}
	return drawLegend(ctx, font, c.Info, plot)
}

func drawCaption[Pt any](ctx draw.Context, info ChartInfo[Pt], area geom.Rect) (geom.Rect, error) {
	spec := info.FontSpec()
	spec.Size *= CaptionScale
	font, err := ctx.ResolveFont(spec)
	if err != nil {
		return area, err
	}
	sz, err := ctx.Text(draw.Text{
		Content: info.Caption,
		At:      geom.Pt(area.Center().X, area.Y0),
		Font:    font,
		Colour:  draw.Black,
		HAlign:  draw.AlignCenter,
		VAlign:  draw.AlignTop,
	})
	if err != nil {
		return area, wrapText(err, info.Caption)
	}
	return area.Inset(0, sz.H+info.Margin().Y, 0, 0), nil
}

// Legend styling.
const (
	legendSwatchAlpha = 0.4
	legendBoxAlpha    = 0.8
	legendRadius      = 3
)

func drawLegend[Pt any](ctx draw.Context, font draw.Font, info ChartInfo[Pt], area geom.Rect) error {
	l := layout.Legend(info.Names(), area, draw.MeasureFunc(font))
	return draw.WithTransform(ctx, geom.Translation(l.Origin.X, l.Origin.Y), func() error {
		if err := ctx.FillRect(l.Box, legendRadius, draw.White.WithAlpha(legendBoxAlpha)); err != nil {
			return err
		}
		for i, row := range l.Rows {
			colour := info.Colour(i)
			if err := ctx.FillRect(row.Swatch, legendRadius, colour.WithAlpha(legendSwatchAlpha)); err != nil {
				return err
			}
			if err := ctx.FillRect(row.Dot, row.Dot.Width()/2, colour); err != nil {
				return err
			}
			if _, err := ctx.Text(draw.Text{
				Content: row.Name,
				At:      row.Label,
				Font:    font,
				Colour:  draw.Black,
				HAlign:  draw.AlignLeft,
				VAlign:  draw.AlignMiddle,
			}); err != nil {
				return wrapText(err, row.Name)
			}
		}
		return nil
	})
}

// Grid styling.
var (
	gridStroke = draw.Stroke{Colour: draw.GridGrey, Width: 1}
	axisStroke = draw.Stroke{Colour: draw.Black, Width: 1}
)

func drawGrid(ctx draw.Context, font draw.Font, g layout.GridLayout) error {
	for _, s := range g.Lines {
		if err := ctx.Line(s.From, s.To, gridStroke); err != nil {
			return err
		}
	}
	for _, s := range g.Axes {
		if err := ctx.Line(s.From, s.To, axisStroke); err != nil {
			return err
		}
	}
	for _, l := range g.Labels {
		if _, err := ctx.Text(draw.Text{
			Content:  l.Text,
			At:       l.At,
			Font:     font,
			Colour:   draw.Black,
			HAlign:   l.HAlign,
			VAlign:   l.VAlign,
			Rotation: l.Rotation,
		}); err != nil {
			return wrapText(err, l.Text)
		}
	}
	return nil
}

// wrapText tags backend text failures; coded errors pass through.
func wrapText(err error, text string) error {
	if errors.GetCode(err) != "" {
		return err
	}
	return errors.Wrap(errors.ErrCodeTextBuild, err, "draw text %q", text)
}

func labelTexts(steps []layout.StepLabel) []string {
	out := make([]string, len(steps))
	for i, s := range steps {
		out[i] = s.Label()
	}
	return out
}
