package layout

import (
	"math"

	"github.com/matzehuels/stackchart/pkg/geom"
)

// Legend spacing in device pixels.
const (
	LegendPadding = 6
	LegendGap     = 4
	// LegendInset is the fraction of the plot size kept free between the
	// legend and the upper-right corner.
	LegendInset = 0.1
)

// LegendRow is one swatch and label. Coordinates are local to the legend
// box, whose top-left corner is the origin.
type LegendRow struct {
	Swatch geom.Rect  // rounded, semi-transparent
	Dot    geom.Rect  // solid marker centered in the swatch
	Label  geom.Point // left-middle anchor of the name
	Name   string
}

// LegendLayout places a legend box over a plot.
type LegendLayout struct {
	// Origin is the device-space position of the box's top-left corner.
	Origin geom.Point
	// Box is the legend background in local coordinates.
	Box  geom.Rect
	Rows []LegendRow
}

// Legend stacks one row per name from top to bottom. Each row is as tall
// as its measured text; the swatch is a square of that height. The box is
// anchored to the upper right of plot, inset by LegendInset of the plot
// size, and pushed right no further than the plot's left edge.
func Legend(names []string, plot geom.Rect, measure func(string) geom.Size) LegendLayout {
	var out LegendLayout
	y := float64(LegendPadding)
	labelW := 0.0
	for i, name := range names {
		if i > 0 {
			y += LegendGap
		}
		sz := measure(name)
		h := sz.H
		swatch := geom.Rect{X0: LegendPadding, Y0: y, X1: LegendPadding + h, Y1: y + h}
		c := swatch.Center()
		r := h / 4
		out.Rows = append(out.Rows, LegendRow{
			Swatch: swatch,
			Dot:    geom.Rect{X0: c.X - r, Y0: c.Y - r, X1: c.X + r, Y1: c.Y + r},
			Label:  geom.Pt(swatch.X1+LegendGap, c.Y),
			Name:   name,
		})
		labelW = math.Max(labelW, h+LegendGap+sz.W)
		y += h
	}
	out.Box = geom.Rect{X1: LegendPadding + labelW + LegendPadding, Y1: y + LegendPadding}

	x := plot.X1 - LegendInset*plot.Width() - out.Box.Width()
	out.Origin = geom.Pt(math.Max(x, plot.X0), plot.Y0+LegendInset*plot.Height())
	return out
}

// Bounds returns the legend box in device space.
func (l LegendLayout) Bounds() geom.Rect { return l.Box.Translate(l.Origin.X, l.Origin.Y) }
