package canvasfx

import (
	"fmt"
	"math"
)

// TrackerConfig configures a SurfaceTracker. Every callback is optional and
// defaults to a no-op; OnCleanup is required.
type TrackerConfig struct {
	// OnCleanup registers a release action with the owner's scope. Each of
	// the tracker's four subscriptions is registered separately.
	OnCleanup func(release func())

	// OnResizeStart runs when the content box changes. Only Rect.Width and
	// Rect.Height are fresh at this point.
	OnResizeStart func(entry ResizeEntry, state *SurfaceState)

	// OnResizeEnd runs after the backing store was reallocated. The drawing
	// context's transform has been reset, so this is where callers
	// re-establish it.
	OnResizeEnd func(dpr float64, state *SurfaceState)

	// OnVisibilityChange runs after a document or element visibility change.
	OnVisibilityChange func(hidden bool, state *SurfaceState)

	// OnIntersectionChange runs for every intersection batch.
	OnIntersectionChange func(entry IntersectionEntry, intersecting, hidden bool, state *SurfaceState)

	// Intersection overrides the observer root, margin and thresholds. The
	// default is the viewport, "0px" and threshold 0.
	Intersection IntersectionOptions
}

// SurfaceTracker keeps a drawing surface's backing store, geometry and
// visibility in step with its host. Observer deliveries only record what
// changed; the expensive bounding-box read and backing-store reallocation
// wait for ApplyPendingResize, which the animation loop calls at the start
// of a frame.
type SurfaceTracker struct {
	el     Element
	win    Window
	cfg    TrackerConfig
	state  SurfaceState
	closed bool
}

// NewSurfaceTracker starts tracking el. The backing store is sized for the
// current geometry immediately and ResizePending is set, so the first
// animation frame re-reads the geometry before drawing anything. OnResizeEnd
// only runs if that read finds a different size; callers set up their
// initial transform themselves.
func NewSurfaceTracker(el Element, win Window, cfg TrackerConfig) (*SurfaceTracker, error) {
	if el == nil || win == nil {
		return nil, ErrSurfaceUnavailable
	}
	if cfg.OnCleanup == nil {
		return nil, ErrNoCleanup
	}

	t := &SurfaceTracker{el: el, win: win, cfg: cfg}

	el.SetContainment(ContainLayout | ContainPaint | ContainSize)

	rect := el.BoundingClientRect()
	dpr := normalizeDPR(win.DevicePixelRatio())
	t.state = SurfaceState{
		ResizePending: true,
		Intersection:  IntersectionUnknown,
		DPR:           dpr,
		Rect:          clampRect(rect),
	}
	el.SetBackingSize(t.state.BackingSize())

	onVisibility := func() { t.dispatch(visibilityEvent{hidden: t.computeHidden()}) }
	t.subscribe(win.OnVisibilityChange(onVisibility))
	t.subscribe(el.OnVisibilityChange(onVisibility))

	t.subscribe(win.ObserveIntersection(el, cfg.Intersection.withDefaults(), func(entries []IntersectionEntry) {
		t.dispatch(intersectionEvent{entries: entries, hidden: t.computeHidden()})
	}))

	t.subscribe(win.ObserveResize(el, func(entries []ResizeEntry) {
		t.dispatch(resizeEvent{target: el, entries: entries})
	}))

	Logger().Debug("surface tracker created",
		"width", t.state.Rect.Width, "height", t.state.Rect.Height, "dpr", dpr)
	return t, nil
}

// subscribe hands one release action to the owner. The action runs at most
// once; the first one to run closes the tracker so that deliveries still
// in flight from the remaining subscriptions are dropped.
func (t *SurfaceTracker) subscribe(release func()) {
	release = once(release)
	t.cfg.OnCleanup(func() {
		t.closed = true
		release()
	})
}

// State returns the tracker's state. The pointer stays valid for the
// tracker's lifetime; callers read it, only the tracker writes it.
func (t *SurfaceTracker) State() *SurfaceState {
	return &t.state
}

// Element returns the tracked element.
func (t *SurfaceTracker) Element() Element {
	return t.el
}

// Closed reports whether teardown has begun. A closed tracker ignores late
// observer deliveries.
func (t *SurfaceTracker) Closed() bool {
	return t.closed
}

// ApplyPendingResize re-reads the element's position and the device pixel
// ratio. The size is the content-box size last observed by the resize
// observer. When the resulting backing-store size or ratio differ from
// the current ones, the backing store is reallocated and OnResizeEnd runs;
// otherwise only ResizePending is cleared.
func (t *SurfaceTracker) ApplyPendingResize() {
	if t.closed {
		return
	}
	w, h := t.el.BackingSize()
	t.dispatch(applyEvent{
		rect:     t.el.BoundingClientRect(),
		dpr:      normalizeDPR(t.win.DevicePixelRatio()),
		backingW: w,
		backingH: h,
	})
}

// repositionRect moves r to the position of bounds, keeping r's size.
func repositionRect(r, bounds DOMRect) DOMRect {
	r.Top, r.Left = bounds.Top, bounds.Left
	r.X, r.Y = bounds.X, bounds.Y
	r.Right = r.Left + r.Width
	r.Bottom = r.Top + r.Height
	return r
}

func clampRect(r DOMRect) DOMRect {
	r.Width = math.Max(r.Width, 0)
	r.Height = math.Max(r.Height, 0)
	return r
}

// computeHidden combines document visibility with the element's own hidden
// state.
func (t *SurfaceTracker) computeHidden() bool {
	if t.win.DocumentHidden() || t.el.HiddenAttr() {
		return true
	}
	style := t.el.ComputedStyle()
	return style.Display == DisplayNone ||
		style.Visibility == VisibilityHidden ||
		t.el.ClientRectCount() == 0
}

// dispatch reduces ev against the current state, commits the result and
// runs the matching callback.
func (t *SurfaceTracker) dispatch(ev surfaceEvent) {
	if t.closed {
		return
	}
	next, n := ev.reduce(t.state)
	t.state = next

	switch n.Kind {
	case NotifyResizeStart:
		if t.cfg.OnResizeStart != nil {
			t.cfg.OnResizeStart(n.ResizeEntry, &t.state)
		}
	case NotifyResizeEnd:
		t.el.SetBackingSize(n.BackingWidth, n.BackingHeight)
		Logger().Debug("surface resized",
			"width", n.BackingWidth, "height", n.BackingHeight, "dpr", n.DPR)
		if t.cfg.OnResizeEnd != nil {
			t.cfg.OnResizeEnd(n.DPR, &t.state)
		}
	case NotifyVisibility:
		if t.cfg.OnVisibilityChange != nil {
			t.cfg.OnVisibilityChange(n.Hidden, &t.state)
		}
	case NotifyIntersection:
		if t.cfg.OnIntersectionChange != nil {
			t.cfg.OnIntersectionChange(n.IntersectionEntry, n.Intersecting, n.Hidden, &t.state)
		}
	}
}

// String describes the tracker's state for logs and test failures.
func (t *SurfaceTracker) String() string {
	w, h := t.state.BackingSize()
	return fmt.Sprintf("surface{%gx%g css, %dx%d px, dpr %g, %s, hidden=%t, pending=%t}",
		t.state.Rect.Width, t.state.Rect.Height, w, h, t.state.DPR,
		t.state.Intersection, t.state.Hidden, t.state.ResizePending)
}
