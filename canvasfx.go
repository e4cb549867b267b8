package canvasfx

import (
	"math"
	"math/rand/v2"
)

// Vec2 is a 2D vector used for positions, offsets, and velocities.
type Vec2 struct {
	X, Y float64
}

// DOMRect is an element's geometry in CSS pixels, laid out the way a
// bounding-box query reports it. The origin is the top-left of the
// viewport with Y increasing downward.
type DOMRect struct {
	Top, Left, Width, Height float64
	Bottom, Right, X, Y      float64
}

// RectFromSize returns a DOMRect at (x, y) with the given size and all
// derived edges filled in. Negative sizes are clamped to zero.
func RectFromSize(x, y, width, height float64) DOMRect {
	width = math.Max(width, 0)
	height = math.Max(height, 0)
	return DOMRect{
		Top:    y,
		Left:   x,
		Width:  width,
		Height: height,
		Bottom: y + height,
		Right:  x + width,
		X:      x,
		Y:      y,
	}
}

// Contains reports whether the point (x, y) lies inside the rectangle.
// Points on the edge are considered inside.
func (r DOMRect) Contains(x, y float64) bool {
	return x >= r.Left && x <= r.Right && y >= r.Top && y <= r.Bottom
}

// Matrix is a 2D affine transform in canvas order: a point (x, y) maps to
// (A*x + C*y + E, B*x + D*y + F).
type Matrix struct {
	A, B, C, D, E, F float64
}

// IdentityMatrix is the transform that leaves points unchanged.
var IdentityMatrix = Matrix{A: 1, D: 1}

// ScaleMatrix returns a uniform scale by s followed by a translation.
func ScaleMatrix(s, tx, ty float64) Matrix {
	return Matrix{A: s, D: s, E: tx, F: ty}
}

// Apply maps (x, y) through the transform.
func (m Matrix) Apply(x, y float64) (float64, float64) {
	return m.A*x + m.C*y + m.E, m.B*x + m.D*y + m.F
}

// UniformScale returns the length scale factor of the transform, the
// square root of the absolute determinant. Circles are drawn with their
// radius multiplied by this value.
func (m Matrix) UniformScale() float64 {
	return math.Sqrt(math.Abs(m.A*m.D - m.B*m.C))
}

// Range is a general-purpose min/max range used by spawn configuration.
type Range struct {
	Min, Max float64
}

// Random returns a value in [Min, Max). A nil rng draws from the
// package-level source of math/rand/v2.
func (r Range) Random(rng *rand.Rand) float64 {
	if r.Min == r.Max {
		return r.Min
	}
	return r.Min + float64Of(rng)*(r.Max-r.Min)
}

func float64Of(rng *rand.Rand) float64 {
	if rng == nil {
		return rand.Float64()
	}
	return rng.Float64()
}

// BackingSize returns the device-pixel size of a backing store that covers
// a CSS box of the given size at the given device pixel ratio.
func BackingSize(cssWidth, cssHeight, dpr float64) (int, int) {
	return roundPixels(cssWidth * dpr), roundPixels(cssHeight * dpr)
}

func roundPixels(v float64) int {
	if v <= 0 || math.IsNaN(v) {
		return 0
	}
	return int(math.Round(v))
}

// normalizeDPR reads a missing or non-positive ratio as 1.
func normalizeDPR(dpr float64) float64 {
	if dpr <= 0 || math.IsNaN(dpr) || math.IsInf(dpr, 0) {
		return 1
	}
	return dpr
}
