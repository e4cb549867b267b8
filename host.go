package canvasfx

import (
	"image"
	"image/color"
)

// Display mirrors the computed CSS display value as far as visibility is
// concerned.
type Display uint8

const (
	DisplayBlock Display = iota // any rendered display value
	DisplayNone                 // display: none
)

// Visibility mirrors the computed CSS visibility value.
type Visibility uint8

const (
	VisibilityVisible Visibility = iota // visibility: visible
	VisibilityHidden                    // visibility: hidden or collapse
)

// Style is the subset of an element's computed style the tracker reads.
type Style struct {
	Display    Display
	Visibility Visibility
}

// Containment is a bitmask of CSS containment values.
type Containment uint8

const (
	ContainLayout Containment = 1 << iota // contain: layout
	ContainPaint                          // contain: paint
	ContainSize                           // contain: size
)

// Element is a drawing-surface element mounted by the host.
//
// SetBackingSize reallocates the backing store. Like a canvas element, doing
// so clears its contents and resets the drawing context's transform.
type Element interface {
	BoundingClientRect() DOMRect
	ComputedStyle() Style
	HiddenAttr() bool
	ClientRectCount() int
	BackingSize() (width, height int)
	SetBackingSize(width, height int)
	SetContainment(c Containment)
	OnVisibilityChange(fn func()) (release func())
}

// IntersectionOptions configures viewport-intersection observation. The
// zero value observes against the viewport with no margin and threshold 0.
type IntersectionOptions struct {
	// Root is the element used as the viewport. Nil means the host viewport.
	Root Element
	// RootMargin grows or shrinks the root box, in CSS margin syntax.
	RootMargin string
	// Threshold lists the visible ratios that trigger a notification.
	Threshold []float64
}

// withDefaults fills unset fields with threshold 0 and margin "0px".
func (o IntersectionOptions) withDefaults() IntersectionOptions {
	if o.RootMargin == "" {
		o.RootMargin = "0px"
	}
	if len(o.Threshold) == 0 {
		o.Threshold = []float64{0}
	}
	return o
}

// IntersectionEntry is one observation delivered by an intersection
// observer.
type IntersectionEntry struct {
	Target            Element
	IsIntersecting    bool
	IntersectionRatio float64
	BoundingRect      DOMRect
}

// ResizeEntry is one observation delivered by a content-box size observer.
type ResizeEntry struct {
	Target      Element
	ContentRect DOMRect
}

// Window is the host environment around an element: pixel ratio, document
// visibility, and the observer registration primitives. Every registration
// returns a release function that the caller runs exactly once.
type Window interface {
	DevicePixelRatio() float64
	DocumentHidden() bool
	OnVisibilityChange(fn func()) (release func())
	ObserveIntersection(el Element, opts IntersectionOptions, fn func([]IntersectionEntry)) (release func())
	ObserveResize(el Element, fn func([]ResizeEntry)) (release func())
}

// PointerEvent is a pointer position in the element's CSS pixel space.
type PointerEvent struct {
	X, Y    float64
	Pressed bool
}

// PointerSource delivers pointer movement over an element.
type PointerSource interface {
	OnPointerMove(el Element, fn func(PointerEvent)) (release func())
}

// Context2D is an immediate-mode 2D drawing context bound to an element's
// backing store. Coordinates pass through the current transform; FillCircle
// is a begin-path, arc, fill sequence.
type Context2D interface {
	SetTransform(m Matrix)
	SetGlobalAlpha(alpha float64)
	SetFillColor(c color.Color)
	FillRect(x, y, w, h float64)
	ClearRect(x, y, w, h float64)
	FillCircle(x, y, r float64)
	DrawImage(img image.Image, x, y float64)
}

// Snapshotter is implemented by contexts that can read back their pixels.
type Snapshotter interface {
	Snapshot() image.Image
}

// FrameToken identifies a scheduled frame callback.
type FrameToken uint64

// FrameScheduler is the host's frame-pacing primitive. A token returned by
// RequestFrame may be passed to CancelFrame at most usefully once; cancelling
// an already-run or unknown token is a no-op.
type FrameScheduler interface {
	RequestFrame(fn func()) FrameToken
	CancelFrame(token FrameToken)
}
