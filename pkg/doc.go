// Package pkg provides the libraries behind stackchart, a chart layout and
// geometry engine.
//
// # Overview
//
// stackchart turns a chart document (categories and datasets for a bar
// chart, or point series for an XY scatter) into positioned shapes and text,
// then draws them to SVG, PNG, PDF or a JSON shape list. The packages are
// layered:
//
//  1. [geom], [fonts] - points, sizes, rectangles and text measurement
//  2. [layout] - step planning, area adjustment and the scatter, bar,
//     grid and legend layouts
//  3. [chart] - chart types that compose layouts into a full drawing
//  4. [draw], [draw/sink] - the drawing surface and its output backends
//  5. [io], [pipeline], [cache] - documents, orchestration and caching
//
// # Architecture
//
//	chart document (YAML, TOML, JSON)
//	         ↓
//	    [io] package (decode)
//	         ↓
//	    [chart] package (dispatch on type)
//	         ↓
//	    [layout] package (steps, grid, shapes, legend)
//	         ↓
//	    [draw/sink] package (SVG/PNG/PDF/JSON)
//
// # Quick Start
//
//	c, err := io.ImportChart("examples/sales.yaml")
//	if err != nil {
//	    return err
//	}
//	canvas, err := sink.New(sink.FormatSVG, 600, 400, sink.Options{})
//	if err != nil {
//	    return err
//	}
//	if err := c.Render(canvas, geom.Rect{X1: 600, Y1: 400}); err != nil {
//	    return err
//	}
//	svg, err := canvas.Finish()
//
// Most callers use [pipeline.Runner] instead, which adds validation,
// caching and observability hooks around the same steps.
//
// # Errors
//
// Every failure carries an [errors.Code]. Layout failures use
// EMPTY_DATASET, NOT_ENOUGH_SPACE and INVALID_DATASETS; text and output
// failures use FONT_LOADING, TEXT_BUILD and BACKEND.
//
// [geom]: https://pkg.go.dev/github.com/matzehuels/stackchart/pkg/geom
// [fonts]: https://pkg.go.dev/github.com/matzehuels/stackchart/pkg/fonts
// [layout]: https://pkg.go.dev/github.com/matzehuels/stackchart/pkg/layout
// [chart]: https://pkg.go.dev/github.com/matzehuels/stackchart/pkg/chart
// [draw]: https://pkg.go.dev/github.com/matzehuels/stackchart/pkg/draw
// [draw/sink]: https://pkg.go.dev/github.com/matzehuels/stackchart/pkg/draw/sink
// [io]: https://pkg.go.dev/github.com/matzehuels/stackchart/pkg/io
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/stackchart/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/matzehuels/stackchart/pkg/cache
// [pipeline.Runner]: https://pkg.go.dev/github.com/matzehuels/stackchart/pkg/pipeline#Runner
// [errors.Code]: https://pkg.go.dev/github.com/matzehuels/stackchart/pkg/errors#Code
package pkg
