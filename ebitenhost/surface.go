package ebitenhost

import (
	"image"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/phanxgames/canvasfx"
	"github.com/phanxgames/canvasfx/internal/hostkit"
)

// Surface is the drawing surface of a Game: an offscreen ebiten.Image that
// fills the window and is blitted to the screen every Draw. It implements
// canvasfx.Element and canvasfx.Context2D.
//
// Rectangles and images are drawn through the scale and translation parts
// of the transform only; canvasfx never rotates or skews.
type Surface struct {
	rect    canvasfx.DOMRect
	contain canvasfx.Containment

	img      *ebiten.Image
	backingW int
	backingH int

	transform canvasfx.Matrix
	alpha     float64
	fill      color.NRGBA

	srcImage image.Image
	srcCache *ebiten.Image

	visibility hostkit.Listeners[func()]
}

func newSurface() *Surface {
	return &Surface{transform: canvasfx.IdentityMatrix, alpha: 1, fill: color.NRGBA{A: 255}}
}

// --- canvasfx.Element ---

// BoundingClientRect returns the surface's box in window coordinates.
func (s *Surface) BoundingClientRect() canvasfx.DOMRect { return s.rect }

// ComputedStyle always reports a rendered, visible surface.
func (s *Surface) ComputedStyle() canvasfx.Style { return canvasfx.Style{} }

// HiddenAttr is always false.
func (s *Surface) HiddenAttr() bool { return false }

// ClientRectCount is 1 while the surface has an area.
func (s *Surface) ClientRectCount() int {
	if s.rect.Width <= 0 || s.rect.Height <= 0 {
		return 0
	}
	return 1
}

// BackingSize returns the offscreen image size in device pixels.
func (s *Surface) BackingSize() (int, int) { return s.backingW, s.backingH }

// SetContainment records the requested containment. A window surface is
// contained by construction.
func (s *Surface) SetContainment(c canvasfx.Containment) { s.contain = c }

// SetBackingSize replaces the offscreen image, which clears it and resets
// the transform.
func (s *Surface) SetBackingSize(w, h int) {
	if s.img != nil {
		s.img.Deallocate()
		s.img = nil
	}
	s.backingW, s.backingH = max(w, 0), max(h, 0)
	s.transform = canvasfx.IdentityMatrix
	if s.backingW > 0 && s.backingH > 0 {
		s.img = ebiten.NewImage(s.backingW, s.backingH)
	}
}

// OnVisibilityChange subscribes to the surface's own visibility changes.
// ClientRectCount changes with the window area, which Game reports here.
func (s *Surface) OnVisibilityChange(fn func()) func() {
	return s.visibility.Add(fn)
}

// Image returns the offscreen image, or nil when the surface has no area.
func (s *Surface) Image() *ebiten.Image { return s.img }

// --- canvasfx.Context2D ---

// SetTransform replaces the current transform.
func (s *Surface) SetTransform(m canvasfx.Matrix) { s.transform = m }

// SetGlobalAlpha sets the alpha multiplied into every draw.
func (s *Surface) SetGlobalAlpha(a float64) { s.alpha = math.Max(0, math.Min(a, 1)) }

// SetFillColor sets the fill color.
func (s *Surface) SetFillColor(c color.Color) {
	s.fill = color.NRGBAModel.Convert(c).(color.NRGBA)
}

// FillRect fills a rectangle.
func (s *Surface) FillRect(x, y, w, h float64) {
	if s.img == nil {
		return
	}
	x0, y0, x1, y1 := s.deviceRect(x, y, w, h)
	vector.DrawFilledRect(s.img, float32(x0), float32(y0), float32(x1-x0), float32(y1-y0), s.color(), false)
}

// ClearRect makes a rectangle transparent.
func (s *Surface) ClearRect(x, y, w, h float64) {
	if s.img == nil {
		return
	}
	x0, y0, x1, y1 := s.deviceRect(x, y, w, h)
	r := image.Rect(int(math.Floor(x0)), int(math.Floor(y0)), int(math.Ceil(x1)), int(math.Ceil(y1)))
	if r.Min.X <= 0 && r.Min.Y <= 0 && r.Max.X >= s.backingW && r.Max.Y >= s.backingH {
		s.img.Clear()
		return
	}
	r = r.Intersect(s.img.Bounds())
	if r.Empty() {
		return
	}
	s.img.SubImage(r).(*ebiten.Image).Clear()
}

// FillCircle fills an anti-aliased circle.
func (s *Surface) FillCircle(x, y, r float64) {
	if s.img == nil || r <= 0 {
		return
	}
	cx, cy := s.transform.Apply(x, y)
	vector.DrawFilledCircle(s.img, float32(cx), float32(cy), float32(r*s.transform.UniformScale()), s.color(), true)
}

// DrawImage draws img with its top-left corner at (x, y). The last source
// image is kept on the GPU, so drawing the same image every frame uploads
// it once.
func (s *Surface) DrawImage(img image.Image, x, y float64) {
	if s.img == nil || img == nil {
		return
	}
	if img != s.srcImage {
		if s.srcCache != nil {
			s.srcCache.Deallocate()
		}
		s.srcImage = img
		s.srcCache = ebiten.NewImageFromImage(img)
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(x, y)
	op.GeoM.Scale(s.transform.A, s.transform.D)
	op.GeoM.Translate(s.transform.E, s.transform.F)
	op.ColorScale.ScaleAlpha(float32(s.alpha))
	s.img.DrawImage(s.srcCache, op)
}

// deviceRect maps a rectangle through the transform and returns its
// normalized device corners.
func (s *Surface) deviceRect(x, y, w, h float64) (x0, y0, x1, y1 float64) {
	ax, ay := s.transform.Apply(x, y)
	bx, by := s.transform.Apply(x+w, y+h)
	return math.Min(ax, bx), math.Min(ay, by), math.Max(ax, bx), math.Max(ay, by)
}

func (s *Surface) color() color.NRGBA {
	c := s.fill
	c.A = uint8(math.Round(float64(c.A) * s.alpha))
	return c
}

// setRect moves the surface and fires its visibility listeners when it
// gains or loses its area.
func (s *Surface) setRect(r canvasfx.DOMRect) {
	before := s.ClientRectCount()
	s.rect = r
	if s.ClientRectCount() != before {
		s.visibility.Each(func(fn func()) { fn() })
	}
}
