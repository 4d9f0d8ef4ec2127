package geom

import "math"

// FloorMul rounds x down to the nearest multiple of s. Negative x rounds
// away from zero, so FloorMul(-3, 5) is -5. s must be positive.
func FloorMul(x, s float64) float64 {
	return math.Floor(x/s) * s
}

// CeilMul rounds x up to the nearest multiple of s. Negative x rounds
// toward zero, so CeilMul(-3, 5) is 0. s must be positive.
func CeilMul(x, s float64) float64 {
	return math.Ceil(x/s) * s
}
