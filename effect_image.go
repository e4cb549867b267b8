package canvasfx

import (
	"math"
	"math/rand/v2"

	"github.com/tanema/gween/ease"
)

const (
	// DefaultImageParticles is the particle count of an image effect.
	DefaultImageParticles = 10_000
	// DefaultBrightnessAlpha converts sampled brightness (0-255) to alpha.
	DefaultBrightnessAlpha = 0.002
)

// ImageEffectConfig configures an ImageEffect.
type ImageEffectConfig struct {
	// Count is the number of particles. Zero means DefaultImageParticles.
	Count int
	// BrightnessAlpha multiplies sampled brightness into draw alpha. Zero
	// means DefaultBrightnessAlpha.
	BrightnessAlpha float64
	// FadeIn ramps every particle's alpha from 0 to full over this many
	// seconds with an ease-out curve. Zero disables the ramp.
	FadeIn float32
	// FrameTime is the ramp time per frame in seconds. Zero means 1/60.
	FrameTime float32
	// Rand is the random source. Nil uses the package-level source.
	Rand *rand.Rand
}

// ImageEffect lets particles rain over an image, each drawn in the color
// of the pixel under it with an alpha proportional to that pixel's
// brightness. Particles live in image pixels; Frame maps them onto the
// surface with the sampler's contain-fit transform.
type ImageEffect struct {
	cfg       ImageEffectConfig
	sampler   *ImageSampler
	particles []ImageParticle
	gain      *Tween
}

// NewImageEffect spawns the effect's particles across s.
func NewImageEffect(s *ImageSampler, cfg ImageEffectConfig) *ImageEffect {
	if cfg.Count <= 0 {
		cfg.Count = DefaultImageParticles
	}
	if cfg.BrightnessAlpha == 0 {
		cfg.BrightnessAlpha = DefaultBrightnessAlpha
	}
	if cfg.FrameTime == 0 {
		cfg.FrameTime = 1.0 / 60
	}
	e := &ImageEffect{
		cfg:       cfg,
		sampler:   s,
		particles: make([]ImageParticle, cfg.Count),
	}
	for i := range e.particles {
		e.particles[i] = NewImageParticle(cfg.Rand, s.Width)
	}
	if cfg.FadeIn > 0 {
		e.gain = NewTween(0, 1, cfg.FadeIn, ease.OutQuad)
	}
	return e
}

// Sampler returns the effect's image sampler.
func (e *ImageEffect) Sampler() *ImageSampler {
	return e.sampler
}

// Particles returns the effect's particles. The slice is owned by the
// effect.
func (e *ImageEffect) Particles() []ImageParticle {
	return e.particles
}

// Len returns the particle count.
func (e *ImageEffect) Len() int {
	return len(e.particles)
}

// Fit recomputes the sampler's placement for the surface's current
// geometry. Call it once at mount and from OnResizeEnd.
func (e *ImageEffect) Fit(state *SurfaceState) {
	e.sampler.RecomputeFit(state.Rect, state.DPR)
}

// Frame moves every particle, resamples its brightness and draws it.
func (e *ImageEffect) Frame(ctx Context2D, _ *SurfaceState) {
	gain := 1.0
	if e.gain != nil {
		gain = e.gain.Update(e.cfg.FrameTime)
	}

	ctx.SetTransform(e.sampler.Transform())
	for i := range e.particles {
		p := &e.particles[i]
		p.Update(e.cfg.Rand, e.sampler)
		alpha := math.Min(p.Brightness*e.cfg.BrightnessAlpha*gain, 1)
		ctx.SetGlobalAlpha(alpha)
		ctx.SetFillColor(e.sampler.ColorAt(p.X, p.Y))
		ctx.FillCircle(p.X, p.Y, p.Radius)
	}
	ctx.SetGlobalAlpha(1)
}
