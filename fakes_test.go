package canvasfx

import (
	"image"
	"image/color"
	"math"
	"testing"
)

const epsilon = 1e-9

func assertNear(t *testing.T, name string, got, want float64) {
	t.Helper()
	if math.Abs(got-want) > epsilon {
		t.Errorf("%s = %v, want %v", name, got, want)
	}
}

// --- fakeElement ---

type fakeElement struct {
	rect        DOMRect
	style       Style
	hiddenAttr  bool
	clientRects int
	backingW    int
	backingH    int
	allocs      int
	containment Containment

	visibility []func()
	released   int
}

func newFakeElement(w, h float64) *fakeElement {
	return &fakeElement{rect: RectFromSize(0, 0, w, h), clientRects: 1}
}

func (e *fakeElement) BoundingClientRect() DOMRect  { return e.rect }
func (e *fakeElement) ComputedStyle() Style         { return e.style }
func (e *fakeElement) HiddenAttr() bool             { return e.hiddenAttr }
func (e *fakeElement) ClientRectCount() int         { return e.clientRects }
func (e *fakeElement) BackingSize() (int, int)      { return e.backingW, e.backingH }
func (e *fakeElement) SetContainment(c Containment) { e.containment = c }
func (e *fakeElement) SetBackingSize(w, h int)      { e.backingW, e.backingH = w, h; e.allocs++ }
func (e *fakeElement) OnVisibilityChange(fn func()) func() {
	e.visibility = append(e.visibility, fn)
	return func() { e.released++ }
}

func (e *fakeElement) fireVisibility() {
	for _, fn := range e.visibility {
		fn()
	}
}

// --- fakeWindow ---

type fakeWindow struct {
	dpr    float64
	hidden bool

	visibility   []func()
	intersection func([]IntersectionEntry)
	intersectOpt IntersectionOptions
	resize       func([]ResizeEntry)
	releases     map[string]int
}

func newFakeWindow(dpr float64) *fakeWindow {
	return &fakeWindow{dpr: dpr, releases: map[string]int{}}
}

func (w *fakeWindow) DevicePixelRatio() float64 { return w.dpr }
func (w *fakeWindow) DocumentHidden() bool      { return w.hidden }

func (w *fakeWindow) OnVisibilityChange(fn func()) func() {
	w.visibility = append(w.visibility, fn)
	return func() { w.releases["visibility"]++ }
}

func (w *fakeWindow) ObserveIntersection(_ Element, opts IntersectionOptions, fn func([]IntersectionEntry)) func() {
	w.intersection = fn
	w.intersectOpt = opts
	return func() { w.releases["intersection"]++ }
}

func (w *fakeWindow) ObserveResize(_ Element, fn func([]ResizeEntry)) func() {
	w.resize = fn
	return func() { w.releases["resize"]++ }
}

func (w *fakeWindow) fireVisibility() {
	for _, fn := range w.visibility {
		fn()
	}
}

func (w *fakeWindow) totalReleases() int {
	n := 0
	for _, v := range w.releases {
		n += v
	}
	return n
}

// --- fakeContext ---

type drawCall struct {
	op     string
	x, y   float64
	w, h   float64
	alpha  float64
	color  color.Color
	matrix Matrix
}

type fakeContext struct {
	matrix Matrix
	alpha  float64
	fill   color.Color
	calls  []drawCall
}

func newFakeContext() *fakeContext {
	return &fakeContext{matrix: IdentityMatrix, alpha: 1}
}

func (c *fakeContext) record(op string, x, y, w, h float64) {
	c.calls = append(c.calls, drawCall{op: op, x: x, y: y, w: w, h: h, alpha: c.alpha, color: c.fill, matrix: c.matrix})
}

func (c *fakeContext) SetTransform(m Matrix)                 { c.matrix = m }
func (c *fakeContext) SetGlobalAlpha(a float64)              { c.alpha = a }
func (c *fakeContext) SetFillColor(col color.Color)          { c.fill = col }
func (c *fakeContext) FillRect(x, y, w, h float64)           { c.record("fillRect", x, y, w, h) }
func (c *fakeContext) ClearRect(x, y, w, h float64)          { c.record("clearRect", x, y, w, h) }
func (c *fakeContext) FillCircle(x, y, r float64)            { c.record("circle", x, y, r, r) }
func (c *fakeContext) DrawImage(_ image.Image, x, y float64) { c.record("image", x, y, 0, 0) }

func (c *fakeContext) count(op string) int {
	n := 0
	for _, call := range c.calls {
		if call.op == op {
			n++
		}
	}
	return n
}

// --- fakeScheduler ---

type fakeScheduler struct {
	next      FrameToken
	pending   map[FrameToken]func()
	order     []FrameToken
	cancelled []FrameToken
}

func newFakeScheduler() *fakeScheduler {
	return &fakeScheduler{pending: map[FrameToken]func(){}}
}

func (s *fakeScheduler) RequestFrame(fn func()) FrameToken {
	s.next++
	s.pending[s.next] = fn
	s.order = append(s.order, s.next)
	return s.next
}

func (s *fakeScheduler) CancelFrame(tok FrameToken) {
	s.cancelled = append(s.cancelled, tok)
	delete(s.pending, tok)
}

// run executes every callback queued before the call.
func (s *fakeScheduler) run() int {
	order := s.order
	s.order = nil
	n := 0
	for _, tok := range order {
		fn, ok := s.pending[tok]
		if !ok {
			continue
		}
		delete(s.pending, tok)
		fn()
		n++
	}
	return n
}

// runN runs n frame batches.
func (s *fakeScheduler) runN(n int) {
	for i := 0; i < n; i++ {
		s.run()
	}
}

// --- fakePointer ---

type fakePointer struct {
	fns      []func(PointerEvent)
	released int
}

func (p *fakePointer) OnPointerMove(_ Element, fn func(PointerEvent)) func() {
	p.fns = append(p.fns, fn)
	return func() { p.released++ }
}

func (p *fakePointer) move(x, y float64) {
	for _, fn := range p.fns {
		fn(PointerEvent{X: x, Y: y})
	}
}

// newTracker builds a tracker whose releases are collected into scope.
func newTracker(t *testing.T, el *fakeElement, win *fakeWindow, cfg TrackerConfig) (*SurfaceTracker, *Scope) {
	t.Helper()
	scope := NewScope()
	cfg.OnCleanup = scope.OnCleanup
	tr, err := NewSurfaceTracker(el, win, cfg)
	if err != nil {
		t.Fatalf("NewSurfaceTracker: %v", err)
	}
	return tr, scope
}
