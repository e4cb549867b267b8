package canvasfx

import "math"

// DefaultRoseK is the petal parameter of the rose CurvePath traces when no
// curve is set.
const DefaultRoseK = 5.0 / 4

// RoseCurve returns the unit rose r = cos(k*angle) in Cartesian form.
func RoseCurve(k float64) func(angle float64) Vec2 {
	return func(a float64) Vec2 {
		r := math.Cos(k * a)
		return Vec2{X: r * math.Cos(a), Y: r * math.Sin(a)}
	}
}

// LissajousCurve returns the unit Lissajous figure (sin(a*t + phase), sin(b*t)).
func LissajousCurve(a, b, phase float64) func(angle float64) Vec2 {
	return func(t float64) Vec2 {
		return Vec2{X: math.Sin(a*t + phase), Y: math.Sin(b * t)}
	}
}

// CurvePath emits spawn points along a parametric curve centered on the
// surface. Every frame the angle advances by Step for each emitted point.
type CurvePath struct {
	// Curve maps an angle to a point on a curve of roughly unit size.
	// Nil means RoseCurve(DefaultRoseK).
	Curve func(angle float64) Vec2
	// Amplitude scales the curve to this fraction of half the surface's
	// shorter side. Zero means 0.8.
	Amplitude float64
	// Step is the angle increment per emitted point. Zero means 0.05.
	Step float64
	// PerFrame is the number of points emitted per frame. Zero means 1.
	PerFrame int
	// Pulse, when set, multiplies the amplitude by its value; it is
	// advanced by FrameTime every frame.
	Pulse *Tween
	// FrameTime is the tween time per frame in seconds. Zero means 1/60.
	FrameTime float32

	angle float64
}

// Angle returns the current curve parameter.
func (c *CurvePath) Angle() float64 {
	return c.angle
}

// Emit calls fn with each of this frame's spawn points, in CSS pixels
// relative to the surface's top-left corner, and advances the curve.
func (c *CurvePath) Emit(rect DOMRect, fn func(x, y float64)) {
	curve := c.Curve
	if curve == nil {
		curve = RoseCurve(DefaultRoseK)
	}
	amp := c.Amplitude
	if amp == 0 {
		amp = 0.8
	}
	step := c.Step
	if step == 0 {
		step = 0.05
	}
	n := c.PerFrame
	if n <= 0 {
		n = 1
	}
	if c.Pulse != nil {
		dt := c.FrameTime
		if dt == 0 {
			dt = 1.0 / 60
		}
		amp *= c.Pulse.Update(dt)
	}

	cx, cy := rect.Width/2, rect.Height/2
	size := math.Min(rect.Width, rect.Height) / 2 * amp
	for i := 0; i < n; i++ {
		p := curve(c.angle)
		fn(cx+p.X*size, cy+p.Y*size)
		c.angle += step
	}
}
