// Package draw defines the drawing surface that chart layouts render onto.
//
// A [Context] accepts a small set of primitives (lines, filled rectangles,
// stroked paths and text) plus a stack of affine transforms. Layout code
// never talks to a concrete backend: the SVG, PNG, PDF and JSON sinks in
// package sink implement Context, and [Recorder] captures primitives for
// tests and for the JSON sink.
//
// # Transforms
//
// PushTransform composes its argument with the active transform, so
// coordinates passed afterwards are mapped by the pushed transform first and
// by the enclosing ones after. Every push must be matched by a pop on every
// exit path; [WithTransform] does this with a deferred pop.
package draw
