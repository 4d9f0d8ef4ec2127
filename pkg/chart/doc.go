// Package chart turns chart descriptions into drawing calls.
//
// A chart is a [ChartType] (the per-family configuration and rendering
// logic) paired with a [ChartInfo] (datasets, font, margins, caption).
// [Chart.Render] draws the caption, delegates the plot to the chart type
// and overlays the legend. Two chart types ship with the package:
//
//   - [XYScatter] ("xy-scatter"): point series joined by lines.
//   - [BarChart] ("bar"): grouped bars, one group per category.
//
// New chart types implement ChartType and call [Register]; nothing else
// needs to change for [Decode] to dispatch to them.
package chart
