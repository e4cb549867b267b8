package canvasfx

import (
	"fmt"
	"image/color"
	"time"
)

// DriverState is the animation driver's lifecycle state.
type DriverState uint8

const (
	DriverIdle      DriverState = iota // created, no frame requested yet
	DriverRunning                      // a frame is requested or executing
	DriverCancelled                    // terminal; no frame will run again
)

// String returns the state name.
func (s DriverState) String() string {
	switch s {
	case DriverRunning:
		return "running"
	case DriverCancelled:
		return "cancelled"
	default:
		return "idle"
	}
}

// Effect is the per-frame scene work driven by a Driver. Frame runs after
// any pending resize was applied and after the fade, with the context's
// transform reset to identity.
type Effect interface {
	Frame(ctx Context2D, state *SurfaceState)
}

// EffectFunc adapts a function to Effect.
type EffectFunc func(ctx Context2D, state *SurfaceState)

// Frame calls f.
func (f EffectFunc) Frame(ctx Context2D, state *SurfaceState) { f(ctx, state) }

// DriverConfig controls the per-frame fade and pausing. The zero value
// never fades and never pauses.
type DriverConfig struct {
	// FadeColor and FadeAlpha paint a translucent rectangle over the whole
	// backing store at the start of each frame, which leaves trails behind
	// moving particles. FadeAlpha 0 disables the fade; 1 clears.
	FadeColor color.Color
	FadeAlpha float64

	// PauseWhenHidden skips rendering while the surface is hidden or out
	// of the viewport. Frames keep being scheduled so pending resizes are
	// still applied.
	PauseWhenHidden bool

	// Debug logs frame timing and particle counts every DebugEvery frames
	// (default 60).
	Debug      bool
	DebugEvery int

	// Counter, when set, reports the particle count for debug stats.
	Counter interface{ Len() int }
}

// Driver runs an Effect once per host frame. It moves from Idle to
// Running on Start and from either to Cancelled on Cancel; Cancelled is
// terminal.
type Driver struct {
	sched   FrameScheduler
	tracker *SurfaceTracker
	ctx     Context2D
	effect  Effect
	cfg     DriverConfig

	state    DriverState
	token    FrameToken
	hasToken bool
	frames   uint64

	stats debugStats
}

// NewDriver returns an idle driver. tracker may be nil for surfaces whose
// geometry never changes.
func NewDriver(sched FrameScheduler, tracker *SurfaceTracker, ctx Context2D, effect Effect, cfg DriverConfig) (*Driver, error) {
	if sched == nil {
		return nil, fmt.Errorf("new driver: %w: nil frame scheduler", ErrDriverState)
	}
	if ctx == nil {
		return nil, ErrContextUnavailable
	}
	if effect == nil {
		return nil, fmt.Errorf("new driver: %w: nil effect", ErrDriverState)
	}
	if cfg.FadeColor == nil {
		cfg.FadeColor = color.Black
	}
	if cfg.DebugEvery <= 0 {
		cfg.DebugEvery = 60
	}
	return &Driver{sched: sched, tracker: tracker, ctx: ctx, effect: effect, cfg: cfg}, nil
}

// State returns the driver's lifecycle state.
func (d *Driver) State() DriverState {
	return d.state
}

// Frames returns how many frames have executed.
func (d *Driver) Frames() uint64 {
	return d.frames
}

// Start requests the first frame. It fails unless the driver is idle.
func (d *Driver) Start() error {
	if d.state != DriverIdle {
		return fmt.Errorf("start driver: %w: %s", ErrDriverState, d.state)
	}
	d.state = DriverRunning
	d.schedule()
	Logger().Debug("driver started")
	return nil
}

// Cancel stops the driver. The outstanding frame request is cancelled and,
// should the host still deliver it, the callback does nothing. Cancel may
// be called any number of times.
func (d *Driver) Cancel() {
	if d.state == DriverCancelled {
		return
	}
	d.state = DriverCancelled
	if d.hasToken {
		d.sched.CancelFrame(d.token)
		d.hasToken = false
	}
	Logger().Debug("driver cancelled", "frames", d.frames)
}

// Close cancels the driver. It has the signature Scope.OnCleanup expects.
func (d *Driver) Close() {
	d.Cancel()
}

func (d *Driver) schedule() {
	d.token = d.sched.RequestFrame(d.frame)
	d.hasToken = true
}

// frame is one tick: apply a pending resize, fade, run the effect, then
// request the next frame. Each step strictly precedes the next.
func (d *Driver) frame() {
	if d.state != DriverRunning {
		return
	}
	d.hasToken = false
	d.frames++

	var t0 time.Time
	if d.cfg.Debug {
		t0 = time.Now()
	}

	var state *SurfaceState
	if d.tracker != nil {
		state = d.tracker.State()
		if state.ResizePending {
			d.tracker.ApplyPendingResize()
		}
	} else {
		state = &SurfaceState{DPR: 1}
	}

	if d.cfg.Debug {
		d.stats.resizeTime += time.Since(t0)
		t0 = time.Now()
	}

	if !(d.cfg.PauseWhenHidden && state.Paused()) {
		d.render(state)
	} else if d.cfg.Debug {
		d.stats.pausedFrames++
	}

	if d.cfg.Debug {
		d.stats.renderTime += time.Since(t0)
		d.stats.frames++
		if d.cfg.Counter != nil {
			d.stats.particles = d.cfg.Counter.Len()
		}
		if d.stats.frames >= d.cfg.DebugEvery {
			d.stats.log()
			d.stats = debugStats{}
		}
	}

	// The effect may have cancelled the driver.
	if d.state == DriverRunning {
		d.schedule()
	}
}

func (d *Driver) render(state *SurfaceState) {
	d.ctx.SetTransform(IdentityMatrix)
	if d.cfg.FadeAlpha > 0 {
		w, h := BackingSize(state.Rect.Width, state.Rect.Height, state.DPR)
		if d.tracker != nil {
			w, h = d.tracker.Element().BackingSize()
		}
		d.ctx.SetGlobalAlpha(d.cfg.FadeAlpha)
		d.ctx.SetFillColor(d.cfg.FadeColor)
		d.ctx.FillRect(0, 0, float64(w), float64(h))
		d.ctx.SetGlobalAlpha(1)
	}
	d.effect.Frame(d.ctx, state)
}
