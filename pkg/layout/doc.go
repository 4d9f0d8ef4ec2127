// Package layout computes chart geometry without drawing anything.
//
// Every function here is pure: given datasets, a target rectangle in
// device pixels and a few options, it returns positions, rectangles and
// transforms that the chart package hands to a draw.Context. This keeps
// the arithmetic testable on its own.
//
// Device space has its origin at the top-left with Y growing downwards.
// Tick offsets produced by [DecideSteps] are distances from the start of
// an axis; callers add them to the left edge for X and subtract them from
// the bottom edge for Y.
package layout
