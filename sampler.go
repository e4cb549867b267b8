package canvasfx

import (
	"fmt"
	"image"
	"image/color"
	"math"

	"golang.org/x/image/draw"
)

// DefaultMaxSamplePixels is the pixel budget used when SamplerOptions
// leaves MaxPixels at zero: a 4096x4096 image.
const DefaultMaxSamplePixels = 4096 * 4096

// SamplerOptions configures NewImageSampler.
type SamplerOptions struct {
	// MaxPixels caps width*height. Zero means DefaultMaxSamplePixels; a
	// negative value disables the check.
	MaxPixels int
}

// CheckPixelBudget returns an error wrapping ErrImageTooLarge when a
// width x height image exceeds budget pixels. A budget of zero or less
// accepts everything.
func CheckPixelBudget(width, height, budget int) error {
	if budget <= 0 {
		return nil
	}
	if int64(width)*int64(height) > int64(budget) {
		return fmt.Errorf("%w: %dx%d exceeds %d pixels", ErrImageTooLarge, width, height, budget)
	}
	return nil
}

// ImageSampler holds per-pixel brightness and color tables for a source
// image, plus the contain-fit placement of that image on a target surface.
// The tables never change after construction; Scale and Offset change on
// every RecomputeFit.
type ImageSampler struct {
	Width, Height int

	// Scale and Offset place image pixels in backing-store pixels.
	Scale  float64
	Offset Vec2

	brightness []float64
	colors     []color.NRGBA
}

// NewImageSampler rasterizes img once at 1:1 into an off-screen
// straight-alpha buffer and builds the lookup tables from it. The pixel
// budget is checked before anything is allocated. The initial fit is the
// identity placement (Scale 1, no offset).
func NewImageSampler(img image.Image, opts SamplerOptions) (*ImageSampler, error) {
	if img == nil {
		return nil, fmt.Errorf("%w: nil image", ErrSamplerBuild)
	}
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("%w: empty image %dx%d", ErrSamplerBuild, w, h)
	}

	budget := opts.MaxPixels
	if budget == 0 {
		budget = DefaultMaxSamplePixels
	}
	if err := CheckPixelBudget(w, h, budget); err != nil {
		return nil, err
	}

	off := image.NewNRGBA(image.Rect(0, 0, w, h))
	draw.Draw(off, off.Bounds(), img, b.Min, draw.Src)

	s := &ImageSampler{
		Width:      w,
		Height:     h,
		Scale:      1,
		brightness: make([]float64, w*h),
		colors:     make([]color.NRGBA, w*h),
	}
	for i := range s.brightness {
		p := off.Pix[i*4 : i*4+4 : i*4+4]
		r, g, bl := p[0], p[1], p[2]
		s.brightness[i] = (float64(r) + float64(g) + float64(bl)) / 3
		s.colors[i] = color.NRGBA{R: r, G: g, B: bl, A: 0xff}
	}
	return s, nil
}

// Len returns the number of entries in each table.
func (s *ImageSampler) Len() int {
	return len(s.brightness)
}

// index returns the table index of the pixel containing (x, y), clamped to
// the image.
func (s *ImageSampler) index(x, y float64) int {
	col := clampInt(int(math.Floor(x)), 0, s.Width-1)
	row := clampInt(int(math.Floor(y)), 0, s.Height-1)
	return row*s.Width + col
}

// BrightnessAt returns the grayscale brightness, 0 to 255, of the pixel
// containing (x, y) in image space. Coordinates outside the image are
// clamped to the nearest edge pixel.
func (s *ImageSampler) BrightnessAt(x, y float64) float64 {
	return s.brightness[s.index(x, y)]
}

// ColorAt returns the opaque color of the pixel containing (x, y), clamped
// like BrightnessAt.
func (s *ImageSampler) ColorAt(x, y float64) color.NRGBA {
	return s.colors[s.index(x, y)]
}

// RecomputeFit scales the image to fit entirely inside target, a CSS-pixel
// box drawn at dpr device pixels per CSS pixel, and centers it.
func (s *ImageSampler) RecomputeFit(target DOMRect, dpr float64) {
	dpr = normalizeDPR(dpr)
	tw := math.Max(target.Width, 0) * dpr
	th := math.Max(target.Height, 0) * dpr

	s.Scale = math.Min(tw/float64(s.Width), th/float64(s.Height))
	s.Offset = Vec2{
		X: (tw - float64(s.Width)*s.Scale) * 0.5,
		Y: (th - float64(s.Height)*s.Scale) * 0.5,
	}
}

// Transform returns the image-space to backing-store transform.
func (s *ImageSampler) Transform() Matrix {
	return ScaleMatrix(s.Scale, s.Offset.X, s.Offset.Y)
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
