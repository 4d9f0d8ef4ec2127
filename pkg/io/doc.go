// Package io reads and writes chart documents.
//
// A chart document describes one chart: its type, the options of that
// type and the datasets. The same document can be written as YAML, TOML or
// JSON; the keys are identical in every format.
//
// # YAML Format
//
//	type: bar
//	caption: Quarterly sales
//	categories: [q1, q2, q3]
//	spacing: 5
//	axis: units
//	datasets:
//	  - name: "2023"
//	    values: [3, 7, 4]
//	  - name: "2024"
//	    colour: "#c44e52"
//	    values: [5, 6, 8]
//
// # Shared Keys
//
//   - type: chart type, "bar" or "xy-scatter"
//   - datasets: list of {name, values, colour, thickness}
//   - caption: title drawn above the chart
//   - font: {family, size}
//   - margins: {x, y} gap between the plot and its labels; a missing
//     axis keeps its default (x 5, y 10)
//   - legend: false hides the legend
//
// # Chart Type Keys
//
// bar: categories, spacing, lines, axis, step.
//
// xy-scatter: axis {x, y}, grid {x, y}, steps {x, y}. Values are {x, y}
// points; thickness sets the line width of a series (default 2).
package io
