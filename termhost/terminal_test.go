package termhost

import (
	"context"
	"image/color"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/phanxgames/canvasfx"
)

func newTestTerminal(t *testing.T, cols, rows int, cfg Config) (*Terminal, tcell.SimulationScreen) {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	term, err := New(screen, cfg)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	screen.SetSize(cols, rows)
	term.HandleEvent(tcell.NewEventResize(cols, rows))
	t.Cleanup(term.Close)
	return term, screen
}

func TestSurfaceCoversTwoPixelsPerRow(t *testing.T) {
	term, _ := newTestTerminal(t, 40, 12, Config{})
	r := term.Canvas().BoundingClientRect()
	if r.Width != 40 || r.Height != 24 {
		t.Errorf("surface = %gx%g, want 40x24", r.Width, r.Height)
	}
}

func TestResizeEventReachesTracker(t *testing.T) {
	term, screen := newTestTerminal(t, 40, 12, Config{DPR: 2})
	scope := canvasfx.NewScope()
	defer scope.Close()
	m, err := canvasfx.MountParticles(scope, term.Host(), canvasfx.NewParticleEffect(canvasfx.ParticleEffectConfig{}), canvasfx.DriverConfig{})
	if err != nil {
		t.Fatal(err)
	}
	if w, h := term.Canvas().BackingSize(); w != 80 || h != 48 {
		t.Fatalf("backing = %dx%d, want 80x48", w, h)
	}

	screen.SetSize(60, 20)
	term.HandleEvent(tcell.NewEventResize(60, 20))
	if !m.Tracker.State().ResizePending {
		t.Fatal("resize should set ResizePending")
	}
	term.Tick()
	if w, h := term.Canvas().BackingSize(); w != 120 || h != 80 {
		t.Errorf("backing = %dx%d, want 120x80", w, h)
	}
}

func TestFocusTogglesVisibility(t *testing.T) {
	term, _ := newTestTerminal(t, 10, 5, Config{})
	scope := canvasfx.NewScope()
	defer scope.Close()
	m, err := canvasfx.MountParticles(scope, term.Host(), canvasfx.NewParticleEffect(canvasfx.ParticleEffectConfig{}), canvasfx.DriverConfig{})
	if err != nil {
		t.Fatal(err)
	}

	term.HandleEvent(tcell.NewEventFocus(false))
	if !m.Tracker.State().Hidden {
		t.Error("focus loss should hide the surface")
	}
	term.HandleEvent(tcell.NewEventFocus(true))
	if m.Tracker.State().Hidden {
		t.Error("focus gain should show the surface")
	}
}

func TestMouseSpawnsAtCellCenter(t *testing.T) {
	term, _ := newTestTerminal(t, 10, 5, Config{})
	var got []canvasfx.PointerEvent
	release := term.Host().Pointer.OnPointerMove(term.Canvas(), func(ev canvasfx.PointerEvent) {
		got = append(got, ev)
	})
	defer release()

	term.HandleEvent(tcell.NewEventMouse(3, 2, tcell.ButtonPrimary, tcell.ModNone))
	if len(got) != 1 {
		t.Fatalf("events = %d, want 1", len(got))
	}
	if got[0].X != 3.5 || got[0].Y != 5 || !got[0].Pressed {
		t.Errorf("event = %+v, want (3.5, 5) pressed", got[0])
	}
}

func TestQuitKeys(t *testing.T) {
	term, _ := newTestTerminal(t, 10, 5, Config{})
	tests := []struct {
		name string
		ev   *tcell.EventKey
		keep bool
	}{
		{"escape", tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone), false},
		{"ctrl-c", tcell.NewEventKey(tcell.KeyCtrlC, 0, tcell.ModCtrl), false},
		{"q", tcell.NewEventKey(tcell.KeyRune, 'q', tcell.ModNone), false},
		{"other rune", tcell.NewEventKey(tcell.KeyRune, 'x', tcell.ModNone), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := term.HandleEvent(tt.ev); got != tt.keep {
				t.Errorf("HandleEvent = %v, want %v", got, tt.keep)
			}
		})
	}
}

func TestPresentHalfBlocks(t *testing.T) {
	term, screen := newTestTerminal(t, 4, 2, Config{Background: color.White})
	c := term.Canvas()
	c.SetBackingSize(4, 4)

	// Top pixel row of the first cell row is black; everything else stays
	// transparent and shows the white background.
	c.SetFillColor(color.Black)
	c.FillRect(0, 0, 4, 1)
	term.Present()

	r, _, style, _ := screen.GetContent(1, 0)
	if r != upperHalfBlock {
		t.Fatalf("rune = %q, want upper half block", r)
	}
	fg, bg, _ := style.Decompose()
	if fr, fg2, fb := fg.RGB(); fr != 0 || fg2 != 0 || fb != 0 {
		t.Errorf("foreground = %d,%d,%d, want black", fr, fg2, fb)
	}
	if br, bg2, bb := bg.RGB(); br != 255 || bg2 != 255 || bb != 255 {
		t.Errorf("background = %d,%d,%d, want white", br, bg2, bb)
	}
}

func TestRunStopsOnContext(t *testing.T) {
	term, _ := newTestTerminal(t, 4, 2, Config{FrameInterval: time.Millisecond})
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	if err := term.Run(ctx); err != context.DeadlineExceeded {
		t.Errorf("Run = %v, want deadline exceeded", err)
	}
}
