// Package headless is an in-memory canvasfx host. Canvases draw into gg
// software contexts and the environment (layout, pixel ratio, visibility,
// intersection, pointer, frames) is driven by explicit method calls, which
// makes it the host used by tests and by offline rendering.
package headless

import (
	"github.com/phanxgames/canvasfx"
	"github.com/phanxgames/canvasfx/internal/hostkit"
)

type intersectionObserver struct {
	el   canvasfx.Element
	opts canvasfx.IntersectionOptions
	fn   func([]canvasfx.IntersectionEntry)
}

type resizeObserver struct {
	el canvasfx.Element
	fn func([]canvasfx.ResizeEntry)
}

type pointerListener struct {
	el canvasfx.Element
	fn func(canvasfx.PointerEvent)
}

// Host is the environment around one or more canvases. It is not safe for
// concurrent use; drive it from one goroutine.
type Host struct {
	dpr    float64
	hidden bool

	visibility    hostkit.Listeners[func()]
	intersections hostkit.Listeners[*intersectionObserver]
	resizes       hostkit.Listeners[*resizeObserver]
	pointers      hostkit.Listeners[*pointerListener]

	frames hostkit.FrameQueue
}

// NewHost returns a visible document at the given device pixel ratio.
func NewHost(dpr float64) *Host {
	if dpr <= 0 {
		dpr = 1
	}
	return &Host{dpr: dpr}
}

// --- canvasfx.Window ---

// DevicePixelRatio returns the current pixel ratio.
func (h *Host) DevicePixelRatio() float64 { return h.dpr }

// DocumentHidden reports whether the document is hidden.
func (h *Host) DocumentHidden() bool { return h.hidden }

// OnVisibilityChange subscribes to document visibility changes.
func (h *Host) OnVisibilityChange(fn func()) func() {
	return h.visibility.Add(fn)
}

// ObserveIntersection subscribes to intersection changes of el. Like a
// browser observer, the current state is delivered asynchronously, here on
// the next SetIntersecting call for el.
func (h *Host) ObserveIntersection(el canvasfx.Element, opts canvasfx.IntersectionOptions, fn func([]canvasfx.IntersectionEntry)) func() {
	return h.intersections.Add(&intersectionObserver{el: el, opts: opts, fn: fn})
}

// ObserveResize subscribes to content-box changes of el.
func (h *Host) ObserveResize(el canvasfx.Element, fn func([]canvasfx.ResizeEntry)) func() {
	return h.resizes.Add(&resizeObserver{el: el, fn: fn})
}

// --- canvasfx.PointerSource ---

// OnPointerMove subscribes to pointer movement over el.
func (h *Host) OnPointerMove(el canvasfx.Element, fn func(canvasfx.PointerEvent)) func() {
	return h.pointers.Add(&pointerListener{el: el, fn: fn})
}

// --- canvasfx.FrameScheduler ---

// RequestFrame queues fn for the next RunFrame.
func (h *Host) RequestFrame(fn func()) canvasfx.FrameToken {
	return h.frames.RequestFrame(fn)
}

// CancelFrame drops a queued callback. Unknown tokens are ignored.
func (h *Host) CancelFrame(token canvasfx.FrameToken) {
	h.frames.CancelFrame(token)
}

// --- simulation ---

// RunFrame runs every callback queued before the call. Callbacks requested
// while it runs wait for the next frame. It returns how many ran.
func (h *Host) RunFrame() int {
	return h.frames.Run()
}

// RunFrames runs n frames.
func (h *Host) RunFrames(n int) {
	for range n {
		h.RunFrame()
	}
}

// Frames returns the number of frames run so far.
func (h *Host) Frames() uint64 { return h.frames.Runs() }

// PendingFrames returns the number of queued frame callbacks.
func (h *Host) PendingFrames() int { return h.frames.Len() }

// Resize lays c out at a new CSS size, keeping its position, and notifies
// its resize observers.
func (h *Host) Resize(c *Canvas, width, height float64) {
	r := c.BoundingClientRect()
	c.setRect(canvasfx.RectFromSize(r.Left, r.Top, width, height))
	h.notifyResize(c)
}

// Move lays c out at a new position. Only the bounding rect changes, so no
// observer fires.
func (h *Host) Move(c *Canvas, x, y float64) {
	r := c.BoundingClientRect()
	c.setRect(canvasfx.RectFromSize(x, y, r.Width, r.Height))
}

// SetDPR changes the pixel ratio. A zoom re-lays out every observed
// element, so each resize observer is notified with an unchanged content
// box.
func (h *Host) SetDPR(dpr float64) {
	if dpr <= 0 {
		dpr = 1
	}
	h.dpr = dpr
	h.resizes.Each(func(o *resizeObserver) {
		o.fn([]canvasfx.ResizeEntry{contentEntry(o.el)})
	})
}

// SetDocumentHidden changes document visibility and fires visibility
// listeners if it changed.
func (h *Host) SetDocumentHidden(hidden bool) {
	if h.hidden == hidden {
		return
	}
	h.hidden = hidden
	h.visibility.Each(func(fn func()) { fn() })
}

// SetIntersecting delivers an intersection entry for el to its observers.
func (h *Host) SetIntersecting(el canvasfx.Element, intersecting bool) {
	ratio := 0.0
	if intersecting {
		ratio = 1
	}
	entry := canvasfx.IntersectionEntry{
		Target:            el,
		IsIntersecting:    intersecting,
		IntersectionRatio: ratio,
		BoundingRect:      el.BoundingClientRect(),
	}
	h.intersections.Each(func(o *intersectionObserver) {
		if o.el == el {
			o.fn([]canvasfx.IntersectionEntry{entry})
		}
	})
}

// MovePointer delivers a pointer position, in CSS pixels relative to el,
// to el's pointer listeners.
func (h *Host) MovePointer(el canvasfx.Element, x, y float64, pressed bool) {
	ev := canvasfx.PointerEvent{X: x, Y: y, Pressed: pressed}
	h.pointers.Each(func(l *pointerListener) {
		if l.el == el {
			l.fn(ev)
		}
	})
}

// Observers returns the number of live subscriptions of every kind,
// excluding the canvases' own visibility listeners.
func (h *Host) Observers() int {
	return h.visibility.Len() + h.intersections.Len() + h.resizes.Len() + h.pointers.Len()
}

func (h *Host) notifyResize(el canvasfx.Element) {
	entry := contentEntry(el)
	h.resizes.Each(func(o *resizeObserver) {
		if o.el == el {
			o.fn([]canvasfx.ResizeEntry{entry})
		}
	})
}

func contentEntry(el canvasfx.Element) canvasfx.ResizeEntry {
	r := el.BoundingClientRect()
	return canvasfx.ResizeEntry{Target: el, ContentRect: canvasfx.RectFromSize(0, 0, r.Width, r.Height)}
}

// Listeners returns the number of the canvas's own visibility listeners.
func (c *Canvas) Listeners() int { return c.visibility.Len() }

// Mount returns the canvasfx.Host wiring c into h.
func (h *Host) Mount(c *Canvas) canvasfx.Host {
	return canvasfx.Host{Element: c, Window: h, Context: c, Scheduler: h, Pointer: h}
}
