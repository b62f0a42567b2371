// Package clamp derives fluid CSS sizing expressions of the form
// clamp(min, slope*vw + intercept, max).
//
// The expression interpolates linearly between two (viewport width, size)
// anchor points and is bounded by the two sizes. Everything in this package
// is pure: no I/O, no shared state, safe to call from any goroutine on every
// keystroke.
//
//	spec := clamp.ScaleSpec{MinSize: 32, MaxSize: 48, MinViewport: 400, MaxViewport: 1600}
//	clamp.Build(spec) // "clamp(32px, 1.333vw + 26.667px, 48px)"
package clamp

import "math"

// RootFontSize is the number of pixels in one root-relative unit.
const RootFontSize = 16

// Precision is the number of decimal places kept for derived values.
const Precision = 3

// ScaleSpec holds the inputs of a fluid size. All values are pixels.
type ScaleSpec struct {
	MinSize     float64 // size at and below MinViewport
	MaxSize     float64 // size at and above MaxViewport
	MinViewport float64
	MaxViewport float64
	Unit        UnitMode
}

// Line is the linear function through the two anchor points.
// Coefficient and Intercept carry the rounded values emitted in the expression;
// Intercept is in pixels.
type Line struct {
	Slope       float64 `json:"slope"`
	Coefficient float64 `json:"coefficient"`
	Intercept   float64 `json:"intercept"`
}

// At evaluates the rounded line at the given viewport width in pixels.
func (l Line) At(viewport float64) float64 {
	return l.Coefficient*viewport/100 + l.Intercept
}

// Derive computes the slope, the vw coefficient and the intercept for spec.
// A zero-width viewport range yields a flat line at MaxSize.
func Derive(spec ScaleSpec) Line {
	s := spec.Sanitized()

	var slope float64
	if span := s.MaxViewport - s.MinViewport; span != 0 {
		slope = finite((s.MaxSize - s.MinSize) / span)
	}

	return Line{
		Slope:       slope,
		Coefficient: finite(Round(slope*100, Precision)),
		Intercept:   finite(Round(s.MaxSize-s.MaxViewport*slope, Precision)),
	}
}

// Convert expresses a pixel value in the given unit.
func Convert(px float64, mode UnitMode) float64 {
	px = finite(px)
	if mode == RootRelative {
		return finite(Round(px/RootFontSize, Precision))
	}
	return px
}

// Build renders spec as a clamp() expression.
//
// Pixel output uses the spaced form "clamp(32px, 1.333vw + 26.667px, 48px)";
// root-relative output drops every space: "clamp(2rem,1.333vw+1.667rem,3rem)".
func Build(spec ScaleSpec) string {
	return Compile(spec).String()
}

// Compile derives the numbers Build prints, already converted to spec.Unit.
func Compile(spec ScaleSpec) Expression {
	s := spec.Sanitized()
	line := Derive(s)
	return Expression{
		Lower:       Convert(s.MinSize, s.Unit),
		Coefficient: line.Coefficient,
		Intercept:   Convert(line.Intercept, s.Unit),
		Upper:       Convert(s.MaxSize, s.Unit),
		Unit:        s.Unit,
	}
}

// Sanitized returns s with non-finite fields replaced by zero.
func (s ScaleSpec) Sanitized() ScaleSpec {
	s.MinSize = finite(s.MinSize)
	s.MaxSize = finite(s.MaxSize)
	s.MinViewport = finite(s.MinViewport)
	s.MaxViewport = finite(s.MaxViewport)
	return s
}

func finite(x float64) float64 {
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return 0
	}
	return x
}
