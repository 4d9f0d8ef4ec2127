package layout

import (
	"testing"

	"github.com/matzehuels/stackchart/pkg/draw"
	"github.com/matzehuels/stackchart/pkg/errors"
	"github.com/matzehuels/stackchart/pkg/geom"
)

// fixedMeasure pretends every glyph is 6x12.
func fixedMeasure(s string) geom.Size {
	return geom.Size{W: 6 * float64(len(s)), H: 12}
}

func TestGrid(t *testing.T) {
	plot := geom.Rect{X0: 50, Y0: 10, X1: 550, Y1: 360}
	in := GridInput{
		Plot:    plot,
		X:       StepTicks(DecideSteps(plot.Width(), 0, 100, 20)),
		Y:       StepTicks(DecideSteps(plot.Height(), 0, 70, 10)),
		Lines:   DefaultLines,
		Margin:  DefaultMargin,
		Measure: fixedMeasure,
	}
	got := Grid(in)

	if len(got.Lines) != len(in.Y) {
		t.Fatalf("len(Lines) = %d, want %d horizontal lines", len(got.Lines), len(in.Y))
	}
	for i, l := range got.Lines {
		if l.From.Y != l.To.Y {
			t.Errorf("line %d not horizontal: %v", i, l)
		}
		if l.From.X != plot.X0 || l.To.X != plot.X1 {
			t.Errorf("line %d does not span the plot: %v", i, l)
		}
		if l.From.Y < plot.Y0 || l.From.Y > plot.Y1 {
			t.Errorf("line %d outside the plot: %v", i, l)
		}
	}
	if got.Lines[0].From.Y != plot.Y1 || got.Lines[len(got.Lines)-1].From.Y != plot.Y0 {
		t.Errorf("end lines = %v, %v; want on the bottom and top edges", got.Lines[0], got.Lines[len(got.Lines)-1])
	}

	if len(got.Axes) != 2 {
		t.Fatalf("len(Axes) = %d, want 2", len(got.Axes))
	}

	if len(got.Labels) != len(in.X)+len(in.Y) {
		t.Fatalf("len(Labels) = %d, want %d", len(got.Labels), len(in.X)+len(in.Y))
	}
	for _, l := range got.Labels[:len(in.X)] {
		if l.HAlign != draw.AlignCenter || l.At.Y != plot.Y1+DefaultMargin.Y {
			t.Errorf("x label %+v not centered below the plot", l)
		}
	}
	for _, l := range got.Labels[len(in.X):] {
		if l.HAlign != draw.AlignRight || l.At.X != plot.X0-DefaultMargin.X {
			t.Errorf("y label %+v not right-aligned left of the plot", l)
		}
	}
}

func TestGridToggles(t *testing.T) {
	plot := geom.Rect{X1: 100, Y1: 100}
	ticks := StepTicks(DecideSteps(100, 0, 10, 5))
	tests := []struct {
		lines      geom.XY[bool]
		vert, horz int
	}{
		{geom.NewXY(false, false), 0, 0},
		{geom.NewXY(true, false), 3, 0},
		{geom.NewXY(false, true), 0, 3},
		{geom.NewXY(true, true), 3, 3},
	}
	for _, tt := range tests {
		got := Grid(GridInput{Plot: plot, X: ticks, Y: ticks, Lines: tt.lines})
		var vert, horz int
		for _, l := range got.Lines {
			if l.From.X == l.To.X {
				vert++
			} else {
				horz++
			}
		}
		if vert != tt.vert || horz != tt.horz {
			t.Errorf("Lines %+v: got %d vertical %d horizontal, want %d %d", tt.lines, vert, horz, tt.vert, tt.horz)
		}
	}
}

func TestGridTitles(t *testing.T) {
	plot := geom.Rect{X0: 80, Y0: 10, X1: 580, Y1: 350}
	got := Grid(GridInput{
		Plot:    plot,
		X:       []Tick{{"0", 0}, {"10", plot.Width()}},
		Y:       []Tick{{"0", 0}, {"1000", plot.Height()}},
		Margin:  DefaultMargin,
		Titles:  geom.NewXY("time", "requests"),
		Measure: fixedMeasure,
	})
	xt, yt := got.Labels[len(got.Labels)-2], got.Labels[len(got.Labels)-1]
	if xt.Text != "time" || xt.At.Y != plot.Y1+DefaultMargin.Y+12+DefaultMargin.Y {
		t.Errorf("x title = %+v", xt)
	}
	if yt.Text != "requests" || yt.Rotation != -90 {
		t.Errorf("y title = %+v", yt)
	}
	if want := plot.X0 - DefaultMargin.X - 24 - DefaultMargin.X; yt.At.X != want {
		t.Errorf("y title x = %v, want %v", yt.At.X, want)
	}
}

func TestFrame(t *testing.T) {
	area := geom.Rect{X0: 0, Y0: 0, X1: 600, Y1: 400}
	labels := Labels{
		X: []string{"0", "50", "100"},
		Y: []string{"0", "500", "1000"},
	}
	got := Frame(area, labels, DefaultMargin, fixedMeasure)

	if want := DefaultMargin.X + 24 + DefaultMargin.X; got.X0 != want {
		t.Errorf("left = %v, want %v", got.X0, want)
	}
	if want := area.Y1 - (DefaultMargin.Y + 12 + DefaultMargin.Y); got.Y1 != want {
		t.Errorf("bottom = %v, want %v", got.Y1, want)
	}
	if !area.Contains(got, 0) {
		t.Errorf("Frame() = %v outside %v", got, area)
	}

	withTitles := Frame(area, Labels{X: labels.X, Y: labels.Y, Titles: geom.NewXY("x", "y")}, DefaultMargin, fixedMeasure)
	if !(withTitles.X0 > got.X0 && withTitles.Y1 < got.Y1) {
		t.Errorf("titles did not widen gutters: %v vs %v", withTitles, got)
	}

	tiny := Frame(geom.Rect{X1: 10, Y1: 10}, labels, DefaultMargin, fixedMeasure)
	if tiny.Width() < 0 || tiny.Height() < 0 {
		t.Errorf("Frame() inverted: %v", tiny)
	}
}

func TestLegend(t *testing.T) {
	plot := geom.Rect{X0: 100, Y0: 50, X1: 600, Y1: 350}
	names := []string{"alpha", "be", "gamma ray"}
	got := Legend(names, plot, fixedMeasure)

	if len(got.Rows) != 3 {
		t.Fatalf("len(Rows) = %d, want 3", len(got.Rows))
	}
	for i, r := range got.Rows {
		if r.Name != names[i] {
			t.Errorf("row %d name = %q, want %q", i, r.Name, names[i])
		}
		if r.Swatch.Width() != 12 || r.Swatch.Height() != 12 {
			t.Errorf("row %d swatch = %v, want 12x12", i, r.Swatch)
		}
		if !r.Swatch.Contains(r.Dot, 0) {
			t.Errorf("row %d dot %v outside swatch %v", i, r.Dot, r.Swatch)
		}
		if !got.Box.Contains(r.Swatch, 0) {
			t.Errorf("row %d swatch outside box", i)
		}
		if i > 0 && r.Swatch.Y0 < got.Rows[i-1].Swatch.Y1 {
			t.Errorf("row %d overlaps row %d", i, i-1)
		}
	}

	b := got.Bounds()
	if want := plot.X1 - 0.1*plot.Width(); b.X1 != want {
		t.Errorf("legend right edge = %v, want %v", b.X1, want)
	}
	if want := plot.Y0 + 0.1*plot.Height(); b.Y0 != want {
		t.Errorf("legend top edge = %v, want %v", b.Y0, want)
	}
	if b.X1 > plot.X1 || b.Y0 < plot.Y0 {
		t.Errorf("legend %v escapes plot %v", b, plot)
	}
}

func TestLegendNarrowPlot(t *testing.T) {
	plot := geom.Rect{X0: 10, Y0: 10, X1: 40, Y1: 100}
	got := Legend([]string{"a very long dataset name"}, plot, fixedMeasure)
	if got.Origin.X != plot.X0 {
		t.Errorf("Origin.X = %v, want clamped to %v", got.Origin.X, plot.X0)
	}
}

func TestInsetsFit(t *testing.T) {
	in := FrameInsets(Labels{X: []string{"0", "10"}, Y: []string{"0", "10"}}, DefaultMargin, fixedMeasure)

	got, err := in.Fit(geom.Rect{X1: 600, Y1: 400}, geom.NewXY[uint](1, 1))
	if err != nil {
		t.Fatalf("Fit() error = %v", err)
	}
	if got.X0 != in.Left || got.Y1 != 400-in.Bottom {
		t.Errorf("Fit() = %v, want anchored at (%v, %v)", got, in.Left, 400-in.Bottom)
	}

	_, err = in.Fit(geom.Rect{X1: in.Left + in.Right, Y1: 400}, geom.NewXY[uint](4, 1))
	var se *errors.SpaceError
	if !errors.As(err, &se) {
		t.Fatalf("Fit() error = %v, want *SpaceError", err)
	}
	if se.Needed != in.Left+in.Right+4 || se.Available != in.Left+in.Right {
		t.Errorf("SpaceError = %+v", se)
	}
}
