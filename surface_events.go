package canvasfx

import "math"

// IntersectionState records whether the surface was last seen inside the
// viewport.
type IntersectionState uint8

const (
	IntersectionUnknown         IntersectionState = iota // no observation yet
	IntersectionIntersecting                             // at least one pixel visible
	IntersectionNotIntersecting                          // fully outside the root box
)

// String returns the state name.
func (s IntersectionState) String() string {
	switch s {
	case IntersectionIntersecting:
		return "intersecting"
	case IntersectionNotIntersecting:
		return "not-intersecting"
	default:
		return "unknown"
	}
}

// SurfaceState is the tracker's view of its element. It is owned by one
// SurfaceTracker and mutated only from that tracker's handlers and
// ApplyPendingResize.
type SurfaceState struct {
	// ResizePending is set after a geometry change until ApplyPendingResize
	// commits it.
	ResizePending bool
	Intersection  IntersectionState
	// Hidden is true when the document or the element is not rendered.
	Hidden bool
	// DPR is the device pixel ratio the backing store was last sized for.
	DPR float64
	// Rect is the CSS-pixel geometry. Width and Height follow observed
	// content-box changes immediately; the position fields are refreshed
	// only by ApplyPendingResize.
	Rect DOMRect
}

// Paused reports whether rendering would be wasted: the surface is hidden
// or known to be outside the viewport.
func (s *SurfaceState) Paused() bool {
	return s.Hidden || s.Intersection == IntersectionNotIntersecting
}

// BackingSize returns the device-pixel size implied by Rect and DPR.
func (s *SurfaceState) BackingSize() (int, int) {
	return BackingSize(s.Rect.Width, s.Rect.Height, s.DPR)
}

// NotificationKind identifies which callback a Notification is for.
type NotificationKind uint8

const (
	NotifyNone         NotificationKind = iota // event produced no callback
	NotifyResizeStart                          // content box changed
	NotifyResizeEnd                            // backing store reallocated
	NotifyVisibility                           // visibility recomputed
	NotifyIntersection                         // viewport intersection changed
)

// Notification is the output of reducing one observer event. Only the
// fields relevant to Kind are set.
type Notification struct {
	Kind NotificationKind

	ResizeEntry       ResizeEntry
	IntersectionEntry IntersectionEntry
	Intersecting      bool
	Hidden            bool
	DPR               float64

	// BackingWidth and BackingHeight are the new backing-store size for
	// NotifyResizeEnd.
	BackingWidth, BackingHeight int
}

// surfaceEvent is one observer delivery. reduce is a pure function of the
// event and the current state.
type surfaceEvent interface {
	reduce(s SurfaceState) (SurfaceState, Notification)
}

// visibilityEvent carries a freshly computed hidden flag.
type visibilityEvent struct {
	hidden bool
}

func (e visibilityEvent) reduce(s SurfaceState) (SurfaceState, Notification) {
	s.Hidden = e.hidden
	return s, Notification{Kind: NotifyVisibility, Hidden: e.hidden}
}

// intersectionEvent carries one intersection batch and the hidden flag
// computed when it arrived.
type intersectionEvent struct {
	entries []IntersectionEntry
	hidden  bool
}

func (e intersectionEvent) reduce(s SurfaceState) (SurfaceState, Notification) {
	var entry IntersectionEntry
	if len(e.entries) > 0 {
		entry = e.entries[0]
	}
	intersecting := entry.IsIntersecting && entry.IntersectionRatio > 0

	s.Hidden = e.hidden
	if intersecting {
		s.Intersection = IntersectionIntersecting
	} else {
		s.Intersection = IntersectionNotIntersecting
	}
	return s, Notification{
		Kind:              NotifyIntersection,
		IntersectionEntry: entry,
		Intersecting:      intersecting,
		Hidden:            e.hidden,
	}
}

// resizeEvent carries one content-box batch. Entries for other targets
// are ignored.
type resizeEvent struct {
	target  Element
	entries []ResizeEntry
}

func (e resizeEvent) reduce(s SurfaceState) (SurfaceState, Notification) {
	for _, entry := range e.entries {
		if entry.Target != e.target {
			continue
		}
		s.Rect.Width = math.Max(entry.ContentRect.Width, 0)
		s.Rect.Height = math.Max(entry.ContentRect.Height, 0)
		s.ResizePending = true
		return s, Notification{Kind: NotifyResizeStart, ResizeEntry: entry}
	}
	return s, Notification{}
}

// applyEvent carries everything ApplyPendingResize reads from the host:
// the fresh bounding rect, the current ratio and the current backing size.
// Only the position is taken from the bounding rect; the size stays the
// content-box size last observed.
type applyEvent struct {
	rect               DOMRect
	dpr                float64
	backingW, backingH int
}

func (e applyEvent) reduce(s SurfaceState) (SurfaceState, Notification) {
	s.Rect = repositionRect(s.Rect, e.rect)

	w, h := BackingSize(s.Rect.Width, s.Rect.Height, e.dpr)
	if w == e.backingW && h == e.backingH && s.DPR == e.dpr {
		s.ResizePending = false
		return s, Notification{}
	}

	s.DPR = e.dpr
	s.ResizePending = false
	return s, Notification{
		Kind:          NotifyResizeEnd,
		DPR:           e.dpr,
		BackingWidth:  w,
		BackingHeight: h,
	}
}
