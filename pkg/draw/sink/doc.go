// Package sink provides the output backends that charts draw onto.
//
// Every backend implements [draw.Context] plus Finish, which returns the
// encoded document:
//
//   - SVG: hand-written SVG, one <g> per pushed transform ([NewSVG])
//   - PNG: rasterised with fogleman/gg ([NewPNG])
//   - PDF: the SVG converted by rsvg-convert ([NewPDF])
//   - JSON: the recorded primitives, for external tools and tests ([NewJSON])
//
// Basic usage:
//
//	c, err := sink.New(sink.FormatSVG, 600, 400, sink.Options{})
//	if err != nil {
//	    return err
//	}
//	if err := chart.Render(c, geom.Rect{X1: 600, Y1: 400}); err != nil {
//	    return err
//	}
//	data, err := c.Finish()
//
// All backends paint the background first, white unless
// Options.Background is set. PDF export requires
// librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
package sink
