package canvasfx

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// Tween animates one float64 between two values. Unlike a bare gween
// tween it can loop and ping-pong, which is what the demo effects use for
// their pulsing parameters.
//
// There is no global animation manager; the owner calls Update each frame.
type Tween struct {
	tween    *gween.Tween
	from, to float32
	duration float32
	fn       ease.TweenFunc
	Value    float64
	// Loop restarts the tween when it finishes.
	Loop bool
	// Yoyo reverses direction on every restart. Implies Loop.
	Yoyo bool
	Done bool
}

// NewTween returns a tween from from to to over duration seconds. A nil
// easing function means ease.Linear.
func NewTween(from, to float64, duration float32, fn ease.TweenFunc) *Tween {
	if fn == nil {
		fn = ease.Linear
	}
	if duration <= 0 {
		duration = 1e-6
	}
	return &Tween{
		tween:    gween.New(float32(from), float32(to), duration, fn),
		from:     float32(from),
		to:       float32(to),
		duration: duration,
		fn:       fn,
		Value:    from,
	}
}

// Update advances the tween by dt seconds and returns the new value.
func (t *Tween) Update(dt float32) float64 {
	if t.Done {
		return t.Value
	}
	val, finished := t.tween.Update(dt)
	t.Value = float64(val)
	if !finished {
		return t.Value
	}
	switch {
	case t.Yoyo:
		t.from, t.to = t.to, t.from
		t.tween = gween.New(t.from, t.to, t.duration, t.fn)
	case t.Loop:
		t.tween.Reset()
	default:
		t.Done = true
	}
	return t.Value
}
