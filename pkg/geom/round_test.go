package geom

import (
	"math"
	"testing"
)

func TestFloorCeilMul(t *testing.T) {
	tests := []struct {
		name      string
		x, s      float64
		floor, ce float64
	}{
		{"exact multiple", 500, 100, 500, 500},
		{"between multiples", 42, 10, 40, 50},
		{"zero", 0, 5, 0, 0},
		{"negative", -3, 5, -5, 0},
		{"negative exact", -10, 5, -10, -10},
		{"fractional step", 0.7, 0.25, 0.5, 0.75},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FloorMul(tt.x, tt.s); got != tt.floor {
				t.Errorf("FloorMul(%v, %v) = %v, want %v", tt.x, tt.s, got, tt.floor)
			}
			if got := CeilMul(tt.x, tt.s); got != tt.ce {
				t.Errorf("CeilMul(%v, %v) = %v, want %v", tt.x, tt.s, got, tt.ce)
			}
		})
	}
}

func TestFloorCeilMulBracket(t *testing.T) {
	for _, s := range []float64{1, 3, 7.5, 100} {
		for x := -250.0; x <= 250; x += 12.5 {
			lo, hi := FloorMul(x, s), CeilMul(x, s)
			if lo > x || x > hi {
				t.Fatalf("FloorMul/CeilMul(%v, %v) = [%v, %v] does not bracket x", x, s, lo, hi)
			}
			for _, v := range []float64{lo, hi} {
				if q := v / s; math.Abs(q-math.Round(q)) > 1e-9 {
					t.Fatalf("%v is not a multiple of %v", v, s)
				}
			}
			if hi-lo > s+1e-9 {
				t.Fatalf("bracket [%v, %v] wider than step %v", lo, hi, s)
			}
		}
	}
}
