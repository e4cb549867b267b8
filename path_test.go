package canvasfx

import (
	"math"
	"testing"
)

func TestRoseCurve(t *testing.T) {
	rose := RoseCurve(2)
	p := rose(0)
	assertNear(t, "X(0)", p.X, 1)
	assertNear(t, "Y(0)", p.Y, 0)
	// cos(2 * pi/4) = 0, so the curve passes through the origin.
	p = rose(math.Pi / 4)
	assertApprox(t, "X(pi/4)", p.X, 0)
	assertApprox(t, "Y(pi/4)", p.Y, 0)
}

func TestLissajousCurve(t *testing.T) {
	c := LissajousCurve(3, 2, math.Pi/2)
	p := c(0)
	assertNear(t, "X(0)", p.X, 1)
	assertNear(t, "Y(0)", p.Y, 0)
}

func TestCurvePathEmit(t *testing.T) {
	path := &CurvePath{
		Curve:     func(a float64) Vec2 { return Vec2{X: a, Y: 0} },
		Step:      0.5,
		PerFrame:  3,
		Amplitude: 1,
	}
	rect := RectFromSize(10, 10, 200, 100)

	var xs []float64
	path.Emit(rect, func(x, y float64) {
		xs = append(xs, x)
		assertNear(t, "y", y, 50)
	})
	// Center (100, 50), size min(200,100)/2 = 50.
	want := []float64{100, 125, 150}
	if len(xs) != len(want) {
		t.Fatalf("points = %v, want %v", xs, want)
	}
	for i := range want {
		assertNear(t, "x", xs[i], want[i])
	}
	assertNear(t, "Angle", path.Angle(), 1.5)
}

func TestCurvePathDefaults(t *testing.T) {
	path := &CurvePath{}
	n := 0
	path.Emit(RectFromSize(0, 0, 100, 100), func(x, y float64) {
		n++
		// Default rose at angle 0 is (1, 0) scaled by 0.8 * 50.
		assertNear(t, "x", x, 90)
		assertNear(t, "y", y, 50)
	})
	if n != 1 {
		t.Errorf("points = %d, want 1", n)
	}
	assertNear(t, "Angle", path.Angle(), 0.05)
}

func TestCurvePathPulse(t *testing.T) {
	pulse := NewTween(0, 1, 1, nil)
	path := &CurvePath{
		Curve:     func(float64) Vec2 { return Vec2{X: 1} },
		Amplitude: 1,
		Pulse:     pulse,
		FrameTime: 0.5,
	}
	var x float64
	path.Emit(RectFromSize(0, 0, 100, 100), func(px, _ float64) { x = px })
	// Pulse is at 0.5 after one frame of 0.5s.
	assertApprox(t, "x", x, 50+25)
}
