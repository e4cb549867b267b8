package headless

import (
	"os"
	"testing"
	"time"

	"github.com/phanxgames/canvasfx"
)

func TestLoadScript(t *testing.T) {
	data := []byte(`{
		"width": 100, "height": 50, "dpr": 2,
		"steps": [
			{"action": "move", "x": 10, "y": 20},
			{"action": "frames", "frames": 3},
			{"action": "resize", "width": 80, "height": 40},
			{"action": "screenshot", "label": "after-resize"}
		]
	}`)

	s, err := LoadScript(data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.Width != 100 || s.Height != 50 || s.DPR != 2 {
		t.Errorf("layout = %gx%g@%g", s.Width, s.Height, s.DPR)
	}
	if len(s.Steps) != 4 {
		t.Fatalf("expected 4 steps, got %d", len(s.Steps))
	}
	if s.Steps[0].Action != "move" || s.Steps[0].X != 10 || s.Steps[0].Y != 20 {
		t.Error("step 0 mismatch")
	}
	if s.Steps[2].Width != 80 || s.Steps[2].Height != 40 {
		t.Error("step 2 mismatch")
	}
}

func TestLoadScriptErrors(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"invalid json", `not json`},
		{"no steps", `{"width": 10, "height": 10, "steps": []}`},
		{"no size", `{"steps": [{"action": "frames"}]}`},
		{"unknown action", `{"width": 10, "height": 10, "steps": [{"action": "jump"}]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := LoadScript([]byte(tt.data)); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func newScriptRunner(t *testing.T, data string) (*Runner, *canvasfx.Mount[*canvasfx.ParticleEffect]) {
	t.Helper()
	s, err := LoadScript([]byte(data))
	if err != nil {
		t.Fatal(err)
	}
	h := NewHost(s.DPR)
	c := NewCanvas(canvasfx.RectFromSize(0, 0, s.Width, s.Height))
	scope, m := mountParticles(t, h, c, canvasfx.ParticleEffectConfig{})
	t.Cleanup(scope.Close)

	r := NewRunner(s, h, c, t.TempDir())
	r.Now = func() time.Time { return time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC) }
	return r, m
}

func TestRunnerFramesAndScreenshots(t *testing.T) {
	r, m := newScriptRunner(t, `{
		"width": 40, "height": 20, "dpr": 2,
		"steps": [
			{"action": "move", "x": 20, "y": 10},
			{"action": "screenshot", "label": "burst"},
			{"action": "resize", "width": 60, "height": 20},
			{"action": "frames", "frames": 2},
			{"action": "screenshot", "label": "resized"}
		]
	}`)

	if err := r.Run(); err != nil {
		t.Fatal(err)
	}
	if !r.Done() {
		t.Fatal("runner should be done")
	}
	shots := r.Screenshots()
	if len(shots) != 2 {
		t.Fatalf("screenshots = %v, want 2", shots)
	}
	for _, p := range shots {
		if fi, err := os.Stat(p); err != nil || fi.Size() == 0 {
			t.Errorf("screenshot %s missing: %v", p, err)
		}
	}
	if w, _ := r.Canvas.BackingSize(); w != 120 {
		t.Errorf("backing width = %d, want 120", w)
	}
	if m.Driver.Frames() != 6 {
		t.Errorf("driver frames = %d, want 6", m.Driver.Frames())
	}
}

func TestRunnerDrag(t *testing.T) {
	r, m := newScriptRunner(t, `{
		"width": 40, "height": 40,
		"steps": [
			{"action": "drag", "fromX": 0, "fromY": 0, "toX": 30, "toY": 30, "frames": 4}
		]
	}`)

	// The drag step queues four pointer events, one per later frame.
	if err := r.Step(); err != nil {
		t.Fatal(err)
	}
	if r.Done() {
		t.Fatal("runner should wait for queued pointer events")
	}
	if m.Effect.Len() != 0 {
		t.Errorf("Len = %d, want 0 before delivery", m.Effect.Len())
	}
	for range 4 {
		if err := r.Step(); err != nil {
			t.Fatal(err)
		}
	}
	if !r.Done() {
		t.Error("runner should be done after the drag drained")
	}
	if m.Effect.Len() == 0 {
		t.Error("drag should have spawned particles")
	}
}

func TestRunnerVisibilitySteps(t *testing.T) {
	r, m := newScriptRunner(t, `{
		"width": 10, "height": 10,
		"steps": [
			{"action": "hide"},
			{"action": "scroll-out"}
		]
	}`)
	if err := r.Step(); err != nil {
		t.Fatal(err)
	}
	if !m.Tracker.State().Hidden {
		t.Error("hide should hide the document")
	}
	if err := r.Step(); err != nil {
		t.Fatal(err)
	}
	if m.Tracker.State().Intersection != canvasfx.IntersectionNotIntersecting {
		t.Errorf("intersection = %s, want not intersecting", m.Tracker.State().Intersection)
	}
}
