package geom

// XY is an axis-wise pair: data points, per-axis steps, margins, grid
// toggles and axis titles all use it.
type XY[T any] struct {
	X T `json:"x" yaml:"x" toml:"x"`
	Y T `json:"y" yaml:"y" toml:"y"`
}

// NewXY returns XY{X: x, Y: y}.
func NewXY[T any](x, y T) XY[T] { return XY[T]{X: x, Y: y} }
