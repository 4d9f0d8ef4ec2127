package layout

import (
	"math"
	"strconv"

	"github.com/aclements/go-moremath/scale"

	"github.com/matzehuels/stackchart/pkg/geom"
)

// StepLabel is one tick on an axis.
type StepLabel struct {
	Value  float64 `json:"value"`
	Offset float64 `json:"offset"` // pixels from the start of the axis
}

// Label returns the tick value in its shortest decimal form.
func (s StepLabel) Label() string {
	return strconv.FormatFloat(s.Value, 'f', -1, 64)
}

// DecideSteps places ticks every step data units across an axis of the
// given pixel length. The value range is widened outwards to multiples of
// step, so the first tick sits at offset 0 and the last at length.
//
// A zero-width range yields a single tick at offset 0. A zero step or an
// inverted range yields no ticks.
func DecideSteps(length, minVal, maxVal float64, step uint) []StepLabel {
	if step == 0 || maxVal < minVal || math.IsNaN(minVal) || math.IsNaN(maxVal) {
		return nil
	}
	s := float64(step)
	lo, hi := geom.FloorMul(minVal, s), geom.CeilMul(maxVal, s)
	n := int(math.Round((hi - lo) / s))
	if n <= 0 {
		return []StepLabel{{Value: positiveZero(lo), Offset: 0}}
	}

	per := length / float64(n)
	labels := make([]StepLabel, n+1)
	for i := range labels {
		labels[i] = StepLabel{
			Value:  positiveZero(lo + float64(i)*s),
			Offset: math.Min(per*float64(i), length),
		}
	}
	labels[n].Offset = length
	return labels
}

// Intervals returns the number of gaps between ticks.
func Intervals(labels []StepLabel) uint {
	if len(labels) < 2 {
		return 0
	}
	return uint(len(labels) - 1)
}

// AutoStep picks an integral step that yields at most maxTicks major
// ticks over [minVal, maxVal]. It never returns less than 1.
func AutoStep(minVal, maxVal float64, maxTicks int) uint {
	if !(maxVal > minVal) || maxTicks < 2 {
		return 1
	}
	lin := scale.Linear{Min: minVal, Max: maxVal}
	major, _ := lin.Ticks(scale.TickOptions{Max: maxTicks})
	if len(major) < 2 {
		return 1
	}
	step := math.Round(major[1] - major[0])
	if step < 1 {
		return 1
	}
	return uint(step)
}

func positiveZero(v float64) float64 {
	if v == 0 {
		return 0
	}
	return v
}
