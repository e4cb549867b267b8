package canvasfx

import (
	"image/color"
	"math/rand/v2"
)

const (
	// DefaultPointerBurst is the number of particles spawned per pointer move.
	DefaultPointerBurst = 50
	// DefaultMaxParticles caps pointer spawning.
	DefaultMaxParticles = 50_000
)

// ParticleEffectConfig configures a ParticleEffect. The zero value is the
// interactive variant: pointer bursts only, black particles.
type ParticleEffectConfig struct {
	Spawn SpawnConfig
	// DecayRate is the radius lost per frame. Zero means DefaultDecayRate.
	DecayRate float64
	// Path, when set, spawns particles along a curve every frame.
	Path *CurvePath
	// PointerBurst is the number of particles spawned per pointer move.
	// Zero means DefaultPointerBurst; negative disables pointer spawning.
	PointerBurst int
	// MaxParticles stops pointer and path spawning while the buffer holds
	// at least this many particles. Zero means DefaultMaxParticles.
	MaxParticles int
	// Color fills every particle. Nil means black.
	Color color.Color
	// Rand is the random source. Nil uses the package-level source.
	Rand *rand.Rand
}

// ParticleEffect spawns generic particles at the pointer and along an
// optional path, and draws, moves and culls them every frame. It works in
// CSS pixels; Frame scales by the surface's DPR.
type ParticleEffect struct {
	cfg ParticleEffectConfig
	buf *ParticleBuffer
}

// NewParticleEffect returns an effect with an empty buffer.
func NewParticleEffect(cfg ParticleEffectConfig) *ParticleEffect {
	if cfg.PointerBurst == 0 {
		cfg.PointerBurst = DefaultPointerBurst
	}
	if cfg.MaxParticles <= 0 {
		cfg.MaxParticles = DefaultMaxParticles
	}
	if cfg.Color == nil {
		cfg.Color = color.Black
	}
	buf := NewParticleBuffer(1024)
	buf.DecayRate = cfg.DecayRate
	return &ParticleEffect{cfg: cfg, buf: buf}
}

// Buffer returns the effect's particle buffer.
func (e *ParticleEffect) Buffer() *ParticleBuffer {
	return e.buf
}

// Len returns the particle count.
func (e *ParticleEffect) Len() int {
	return e.buf.Len()
}

// SpawnAt pushes up to n particles at (x, y), stopping at MaxParticles,
// and returns how many were pushed.
func (e *ParticleEffect) SpawnAt(x, y float64, n int) int {
	pushed := 0
	for ; pushed < n && e.buf.Len() < e.cfg.MaxParticles; pushed++ {
		e.buf.Push(SpawnParticle(e.cfg.Rand, x, y, e.cfg.Spawn))
	}
	return pushed
}

// HandlePointer spawns a burst at the pointer. Nothing is spawned once the
// buffer is at MaxParticles.
func (e *ParticleEffect) HandlePointer(ev PointerEvent) {
	if e.cfg.PointerBurst < 0 || e.buf.Len() >= e.cfg.MaxParticles {
		return
	}
	e.SpawnAt(ev.X, ev.Y, e.cfg.PointerBurst)
}

// Frame spawns along the path, then draws, advances and compacts the
// buffer.
func (e *ParticleEffect) Frame(ctx Context2D, state *SurfaceState) {
	if e.cfg.Path != nil {
		e.cfg.Path.Emit(state.Rect, func(x, y float64) {
			e.SpawnAt(x, y, 1)
		})
	}

	ctx.SetTransform(ScaleMatrix(state.DPR, 0, 0))
	ctx.SetGlobalAlpha(1)
	ctx.SetFillColor(e.cfg.Color)
	e.buf.Advance(func(p *Particle) {
		ctx.FillCircle(p.X, p.Y, p.Radius)
	})
	e.buf.Compact()
}
