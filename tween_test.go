package canvasfx

import (
	"math"
	"testing"

	"github.com/tanema/gween/ease"
)

func assertApprox(t *testing.T, name string, got, want float64) {
	t.Helper()
	if math.Abs(got-want) > 1e-4 {
		t.Errorf("%s = %v, want %v", name, got, want)
	}
}

func TestTweenLinear(t *testing.T) {
	tw := NewTween(0, 10, 1, nil)
	assertApprox(t, "start", tw.Value, 0)
	assertApprox(t, "half", tw.Update(0.5), 5)
	assertApprox(t, "end", tw.Update(0.5), 10)
	if !tw.Done {
		t.Error("tween should be done")
	}
	assertApprox(t, "after done", tw.Update(1), 10)
}

func TestTweenEasing(t *testing.T) {
	tw := NewTween(0, 1, 1, ease.OutQuad)
	v := tw.Update(0.5)
	// OutQuad at half time is 0.75.
	assertApprox(t, "OutQuad(0.5)", v, 0.75)
}

func TestTweenLoop(t *testing.T) {
	tw := NewTween(0, 1, 1, nil)
	tw.Loop = true
	tw.Update(1)
	if tw.Done {
		t.Fatal("looping tween should not finish")
	}
	assertApprox(t, "restarted", tw.Update(0.25), 0.25)
}

func TestTweenYoyo(t *testing.T) {
	tw := NewTween(0.7, 1, 2, ease.Linear)
	tw.Yoyo = true
	assertApprox(t, "peak", tw.Update(2), 1)
	assertApprox(t, "returning", tw.Update(1), 0.85)
	assertApprox(t, "trough", tw.Update(1), 0.7)
	assertApprox(t, "rising", tw.Update(1), 0.85)
	if tw.Done {
		t.Error("yoyo tween should not finish")
	}
}

func TestTweenZeroDuration(t *testing.T) {
	tw := NewTween(2, 4, 0, nil)
	assertApprox(t, "value", tw.Update(0.1), 4)
}
