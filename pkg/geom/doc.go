// Package geom provides the small 2-D geometry kernel used by chart layout.
//
// All layout code works in one of two spaces:
//
//   - Data space: the dataset's native coordinates, y increasing upward.
//   - Device space: output units (pixels in SVG/PNG), y increasing downward.
//
// [Affine] converts between them. Transforms are built from explicit named
// operations so the order of a composition reads left to right:
//
//	t := geom.Identity().FlipY().Scale(sx, sy).Translate(dx, dy)
//
// applies the flip first, then the scale, then the translation.
package geom
