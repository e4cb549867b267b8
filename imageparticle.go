package canvasfx

import "math/rand/v2"

var (
	imageParticleRadius = Range{1, 2.5}
	imageParticleSpeed  = Range{0.1, 3.1}
)

// ImageParticle falls down across a sampled image. It never dies; on
// reaching the bottom it wraps to the top at a new random column.
// Brightness is not the particle's own state but a copy of the sampler's
// value under the particle, refreshed every Update.
type ImageParticle struct {
	X, Y       float64
	Radius     float64
	Brightness float64
	FallSpeed  float64
}

// NewImageParticle returns a particle at the top edge of an image width
// pixels wide, at a random column.
func NewImageParticle(rng *rand.Rand, width int) ImageParticle {
	return ImageParticle{
		X:         float64Of(rng) * float64(width),
		Radius:    imageParticleRadius.Random(rng),
		FallSpeed: imageParticleSpeed.Random(rng),
	}
}

// Update moves the particle down by FallSpeed, wraps it when it reaches
// the bottom of the image, and resamples its brightness.
func (p *ImageParticle) Update(rng *rand.Rand, s *ImageSampler) {
	p.Y += p.FallSpeed
	if p.Y >= float64(s.Height) {
		p.Y = 0
		p.X = float64Of(rng) * float64(s.Width)
	}
	p.Brightness = s.BrightnessAt(p.X, p.Y)
}
