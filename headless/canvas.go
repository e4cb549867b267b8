package headless

import (
	"image"
	"image/color"
	"math"

	"github.com/gogpu/gg"

	"github.com/phanxgames/canvasfx"
	"github.com/phanxgames/canvasfx/internal/hostkit"
)

// Canvas is an in-memory drawing surface. It is both the canvasfx.Element
// a host mounts and the canvasfx.Context2D drawing into its backing store,
// which is a gg software context.
//
// Setting the backing size always allocates a fresh context, even for an
// unchanged size, so the contents and transform are cleared exactly like
// assigning a canvas element's width.
type Canvas struct {
	rect        canvasfx.DOMRect
	style       canvasfx.Style
	hidden      bool
	clientRects int
	contain     canvasfx.Containment

	dc          *gg.Context
	backingW    int
	backingH    int
	allocations int

	transform canvasfx.Matrix
	alpha     float64
	fill      gg.RGBA

	visibility hostkit.Listeners[func()]
}

// NewCanvas returns a canvas laid out at rect (CSS pixels) with no backing
// store yet.
func NewCanvas(rect canvasfx.DOMRect) *Canvas {
	return &Canvas{
		rect:        rect,
		clientRects: 1,
		transform:   canvasfx.IdentityMatrix,
		alpha:       1,
		fill:        gg.RGBA{A: 1},
	}
}

// --- canvasfx.Element ---

// BoundingClientRect returns the canvas's layout box.
func (c *Canvas) BoundingClientRect() canvasfx.DOMRect { return c.rect }

// ComputedStyle returns the canvas's display and visibility.
func (c *Canvas) ComputedStyle() canvasfx.Style { return c.style }

// HiddenAttr reports the hidden attribute.
func (c *Canvas) HiddenAttr() bool { return c.hidden }

// ClientRectCount returns 0 for an unrendered canvas and 1 otherwise.
func (c *Canvas) ClientRectCount() int { return c.clientRects }

// BackingSize returns the backing-store size in device pixels.
func (c *Canvas) BackingSize() (int, int) { return c.backingW, c.backingH }

// SetContainment records the containment the tracker asked for.
func (c *Canvas) SetContainment(v canvasfx.Containment) { c.contain = v }

// Containment returns the last containment set.
func (c *Canvas) Containment() canvasfx.Containment { return c.contain }

// SetBackingSize reallocates the backing store, clearing it and resetting
// the transform. A zero dimension leaves the canvas without a context;
// drawing is then a no-op.
func (c *Canvas) SetBackingSize(w, h int) {
	if c.dc != nil {
		_ = c.dc.Close()
		c.dc = nil
	}
	c.backingW, c.backingH = max(w, 0), max(h, 0)
	c.allocations++
	c.transform = canvasfx.IdentityMatrix
	if c.backingW > 0 && c.backingH > 0 {
		c.dc = gg.NewContext(c.backingW, c.backingH)
	}
}

// Allocations counts SetBackingSize calls.
func (c *Canvas) Allocations() int { return c.allocations }

// OnVisibilityChange subscribes to the canvas's own visibility events.
func (c *Canvas) OnVisibilityChange(fn func()) func() {
	return c.visibility.Add(fn)
}

// --- layout controls used by Host ---

func (c *Canvas) setRect(r canvasfx.DOMRect) { c.rect = r }

// SetStyle changes the computed style and fires the canvas's visibility
// listeners.
func (c *Canvas) SetStyle(s canvasfx.Style) {
	c.style = s
	if s.Display == canvasfx.DisplayNone {
		c.clientRects = 0
	} else {
		c.clientRects = 1
	}
	c.visibility.Each(func(fn func()) { fn() })
}

// SetHiddenAttr toggles the hidden attribute and fires the canvas's
// visibility listeners.
func (c *Canvas) SetHiddenAttr(hidden bool) {
	c.hidden = hidden
	c.visibility.Each(func(fn func()) { fn() })
}

// --- canvasfx.Context2D ---

// SetTransform replaces the current transform.
func (c *Canvas) SetTransform(m canvasfx.Matrix) {
	c.transform = m
	if c.dc != nil {
		c.dc.SetTransform(toGG(m))
	}
}

// Transform returns the current transform.
func (c *Canvas) Transform() canvasfx.Matrix { return c.transform }

// SetGlobalAlpha sets the alpha multiplied into every fill.
func (c *Canvas) SetGlobalAlpha(a float64) {
	c.alpha = math.Max(0, math.Min(a, 1))
}

// SetFillColor sets the fill color.
func (c *Canvas) SetFillColor(col color.Color) {
	n := color.NRGBAModel.Convert(col).(color.NRGBA)
	c.fill = gg.RGBA{
		R: float64(n.R) / 255,
		G: float64(n.G) / 255,
		B: float64(n.B) / 255,
		A: float64(n.A) / 255,
	}
}

// FillRect fills a rectangle through the current transform.
func (c *Canvas) FillRect(x, y, w, h float64) {
	if c.dc == nil {
		return
	}
	c.applyFill()
	c.dc.DrawRectangle(x, y, w, h)
	_ = c.dc.Fill()
}

// ClearRect sets the pixels under a rectangle to transparent. The
// rectangle is mapped through the transform and cleared by its device
// bounding box.
func (c *Canvas) ClearRect(x, y, w, h float64) {
	if c.dc == nil {
		return
	}
	x0, y0 := c.transform.Apply(x, y)
	x1, y1 := c.transform.Apply(x+w, y+h)
	minX, maxX := int(math.Floor(math.Min(x0, x1))), int(math.Ceil(math.Max(x0, x1)))
	minY, maxY := int(math.Floor(math.Min(y0, y1))), int(math.Ceil(math.Max(y0, y1)))
	if minX <= 0 && minY <= 0 && maxX >= c.backingW && maxY >= c.backingH {
		c.dc.Clear()
		return
	}
	for py := max(minY, 0); py < min(maxY, c.backingH); py++ {
		for px := max(minX, 0); px < min(maxX, c.backingW); px++ {
			c.dc.SetPixel(px, py, gg.Transparent)
		}
	}
}

// FillCircle fills a circle through the current transform.
func (c *Canvas) FillCircle(x, y, r float64) {
	if c.dc == nil || r <= 0 {
		return
	}
	c.applyFill()
	c.dc.DrawCircle(x, y, r)
	_ = c.dc.Fill()
}

// DrawImage blits img with its top-left corner at (x, y).
func (c *Canvas) DrawImage(img image.Image, x, y float64) {
	if c.dc == nil || img == nil || c.alpha == 0 {
		return
	}
	c.dc.DrawImageEx(gg.ImageBufFromImage(img), gg.DrawImageOptions{
		X:         x,
		Y:         y,
		Opacity:   c.alpha,
		BlendMode: gg.BlendNormal,
	})
}

// Snapshot returns a copy of the backing store, or nil when there is none.
func (c *Canvas) Snapshot() image.Image {
	if c.dc == nil {
		return nil
	}
	return c.dc.Image()
}

// PixelAt returns the backing-store pixel at (x, y).
func (c *Canvas) PixelAt(x, y int) color.RGBA {
	img := c.Snapshot()
	if img == nil {
		return color.RGBA{}
	}
	return color.RGBAModel.Convert(img.At(x, y)).(color.RGBA)
}

func (c *Canvas) applyFill() {
	f := c.fill
	f.A *= c.alpha
	c.dc.SetRGBA(f.R, f.G, f.B, f.A)
}

// toGG converts a canvas-order matrix to gg's row-major layout.
func toGG(m canvasfx.Matrix) gg.Matrix {
	return gg.Matrix{A: m.A, B: m.C, C: m.E, D: m.B, E: m.D, F: m.F}
}
