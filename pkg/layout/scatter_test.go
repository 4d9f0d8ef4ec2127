package layout

import (
	"math"
	"testing"

	"github.com/matzehuels/stackchart/pkg/errors"
	"github.com/matzehuels/stackchart/pkg/geom"
)

func near(a, b geom.Point) bool {
	return math.Abs(a.X-b.X) < 1e-9 && math.Abs(a.Y-b.Y) < 1e-9
}

func TestScatter(t *testing.T) {
	target := geom.Rect{X0: 50, Y0: 20, X1: 250, Y1: 120}
	series := [][]geom.Point{
		{geom.Pt(0, 0), geom.Pt(5, 10), geom.Pt(10, 5)},
		{geom.Pt(2, 8)},
	}

	got, err := Scatter(series, target)
	if err != nil {
		t.Fatalf("Scatter() error = %v", err)
	}
	if len(got.Paths) != 2 {
		t.Fatalf("len(Paths) = %d, want 2", len(got.Paths))
	}
	if want := (geom.Rect{X0: 0, Y0: 0, X1: 10, Y1: 10}); got.Bounds != want {
		t.Errorf("Bounds = %v, want %v", got.Bounds, want)
	}

	// Data origin maps to the bottom-left of the target, (10, 10) to the top-right.
	if p := got.Paths[0].Points[0]; !near(p, geom.Pt(50, 120)) {
		t.Errorf("origin -> %v, want (50, 120)", p)
	}
	if p := got.Transform.Apply(geom.Pt(10, 10)); !near(p, geom.Pt(250, 20)) {
		t.Errorf("(10, 10) -> %v, want (250, 20)", p)
	}

	dev, _ := geom.UnionBounds(got.Paths)
	if !target.Contains(dev, 1e-9) {
		t.Errorf("device bounds %v outside target %v", dev, target)
	}
	if !near(dev.Center(), target.Center()) {
		t.Errorf("device center %v, want %v", dev.Center(), target.Center())
	}
}

func TestScatterFlipsY(t *testing.T) {
	got, err := Scatter([][]geom.Point{{geom.Pt(1, 1), geom.Pt(2, 4)}}, geom.Rect{X1: 100, Y1: 100})
	if err != nil {
		t.Fatal(err)
	}
	low, high := got.Paths[0].Points[0], got.Paths[0].Points[1]
	if !(high.Y < low.Y) {
		t.Errorf("larger data y not higher on screen: %v vs %v", high, low)
	}
}

func TestScatterContainment(t *testing.T) {
	targets := []geom.Rect{
		{X0: 0, Y0: 0, X1: 600, Y1: 400},
		{X0: 33, Y0: 7, X1: 91, Y1: 300},
	}
	inputs := [][][]geom.Point{
		{{geom.Pt(1, 1), geom.Pt(100, 50)}},
		{{geom.Pt(-10, -10), geom.Pt(10, 10)}},
		{{geom.Pt(3, 3)}},
		{{geom.Pt(0, 5), geom.Pt(100, 5)}},
		{{}, {geom.Pt(1e6, 2)}, {geom.Pt(5e5, 1)}},
	}
	for _, target := range targets {
		for _, in := range inputs {
			got, err := Scatter(in, target)
			if err != nil {
				t.Fatalf("Scatter(%v) error = %v", in, err)
			}
			dev, _ := geom.UnionBounds(got.Paths)
			if !target.Contains(dev, 1e-6) {
				t.Errorf("Scatter(%v) device bounds %v outside %v", in, dev, target)
			}
		}
	}
}

func TestScatterEmpty(t *testing.T) {
	for _, in := range [][][]geom.Point{nil, {{}, {}}} {
		_, err := Scatter(in, geom.Rect{X1: 10, Y1: 10})
		if !errors.Is(err, errors.ErrCodeEmptyDataset) {
			t.Errorf("Scatter(%v) error = %v, want %v", in, err, errors.ErrCodeEmptyDataset)
		}
	}
}

func TestScatterDomain(t *testing.T) {
	target := geom.Rect{X0: 40, Y0: 10, X1: 540, Y1: 310}
	domain := geom.Rect{X0: 0, Y0: 0, X1: 50, Y1: 30}
	got, err := ScatterDomain([][]geom.Point{{geom.Pt(12, 7), geom.Pt(44, 26)}}, domain, target)
	if err != nil {
		t.Fatal(err)
	}
	if p := got.Transform.Apply(geom.Pt(0, 0)); !near(p, geom.Pt(target.X0, target.Y1)) {
		t.Errorf("domain origin -> %v, want bottom-left of target", p)
	}
	if p := got.Transform.Apply(geom.Pt(50, 30)); !near(p, geom.Pt(target.X1, target.Y0)) {
		t.Errorf("domain max -> %v, want top-right of target", p)
	}
	if want := (geom.Rect{X0: 12, Y0: 7, X1: 44, Y1: 26}); got.Bounds != want {
		t.Errorf("Bounds = %v, want data bounds %v", got.Bounds, want)
	}
}
