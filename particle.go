package canvasfx

import "math/rand/v2"

const (
	// DeathThreshold is the radius below which a particle is culled.
	DeathThreshold = 0.3
	// DefaultDecayRate is the radius lost per tick.
	DefaultDecayRate = 0.2
	// DefaultVelocity bounds each velocity component to [-2, 2).
	DefaultVelocity = 2.0
)

// Particle is one generic particle. ID is assigned by ParticleBuffer.Push
// and identifies the particle across compactions.
type Particle struct {
	ID                   uint64
	X, Y                 float64
	VelocityX, VelocityY float64
	Radius               float64
}

// step integrates one tick: position moves by velocity, radius decays.
func (p *Particle) step(decay float64) {
	p.X += p.VelocityX
	p.Y += p.VelocityY
	p.Radius -= decay
}

// Dead reports whether the particle has shrunk below DeathThreshold.
func (p *Particle) Dead() bool {
	return p.Radius < DeathThreshold
}

// RadiusClass is the size bucket a spawned radius was drawn from.
type RadiusClass uint8

const (
	RadiusSmall  RadiusClass = iota // 30%, radius in [2, 10)
	RadiusMedium                    // 30%, radius in [4, 14)
	RadiusLarge                     // 39%, radius in [6, 16)
	RadiusJumbo                     // 1%, radius in [18, 26)
)

// radiusClasses holds the cumulative thresholds and ranges of each class.
var radiusClasses = [...]struct {
	below float64
	r     Range
}{
	RadiusSmall:  {0.3, Range{2, 10}},
	RadiusMedium: {0.6, Range{4, 14}},
	RadiusLarge:  {0.99, Range{6, 16}},
	RadiusJumbo:  {1, Range{18, 26}},
}

// spawnRadius picks a class with u and a radius inside it with v; both are
// uniform in [0, 1). Large particles are deliberately rare.
func spawnRadius(u, v float64) (float64, RadiusClass) {
	for c, rc := range radiusClasses {
		if u < rc.below {
			return rc.r.Min + v*(rc.r.Max-rc.r.Min), RadiusClass(c)
		}
	}
	jumbo := radiusClasses[RadiusJumbo].r
	return jumbo.Min + v*(jumbo.Max-jumbo.Min), RadiusJumbo
}

// SpawnConfig controls SpawnParticle.
type SpawnConfig struct {
	// Velocity bounds each velocity component to [-Velocity, Velocity).
	// Zero means DefaultVelocity.
	Velocity float64
}

// SpawnParticle returns a particle at (x, y) with a skewed random radius
// and a uniform random velocity. A nil rng uses the package-level source.
func SpawnParticle(rng *rand.Rand, x, y float64, cfg SpawnConfig) Particle {
	p, _ := spawnParticle(rng, x, y, cfg)
	return p
}

func spawnParticle(rng *rand.Rand, x, y float64, cfg SpawnConfig) (Particle, RadiusClass) {
	v := cfg.Velocity
	if v == 0 {
		v = DefaultVelocity
	}
	radius, class := spawnRadius(float64Of(rng), float64Of(rng))
	vel := Range{-v, v}
	return Particle{
		X:         x,
		Y:         y,
		VelocityX: vel.Random(rng),
		VelocityY: vel.Random(rng),
		Radius:    radius,
	}, class
}

// ParticleBuffer is an unordered, growable collection of particles. Dead
// particles are removed by swap-remove, so removal never reallocates and
// order is not preserved.
type ParticleBuffer struct {
	// DecayRate is the radius lost per Advance. Zero means DefaultDecayRate.
	DecayRate float64

	particles []Particle
	dead      []int
	nextID    uint64
}

// NewParticleBuffer returns an empty buffer with room for capacity
// particles before its first growth.
func NewParticleBuffer(capacity int) *ParticleBuffer {
	if capacity < 0 {
		capacity = 0
	}
	return &ParticleBuffer{particles: make([]Particle, 0, capacity)}
}

// Push appends p, assigns it a fresh ID and returns that ID.
func (b *ParticleBuffer) Push(p Particle) uint64 {
	b.nextID++
	p.ID = b.nextID
	b.particles = append(b.particles, p)
	return p.ID
}

// Len returns the number of particles, dead or alive, since the last
// Compact.
func (b *ParticleBuffer) Len() int {
	return len(b.particles)
}

// Cap returns the capacity of the underlying storage.
func (b *ParticleBuffer) Cap() int {
	return cap(b.particles)
}

// At returns a pointer to the i-th particle. The pointer is invalidated by
// Push and Compact.
func (b *ParticleBuffer) At(i int) *Particle {
	return &b.particles[i]
}

// ForEachAlive calls fn on every particle in storage order. After fn
// returns, a particle whose radius fell below DeathThreshold is recorded
// for the next Compact. fn must not push to or compact the buffer.
func (b *ParticleBuffer) ForEachAlive(fn func(p *Particle)) {
	b.dead = b.dead[:0]
	for i := range b.particles {
		p := &b.particles[i]
		fn(p)
		if p.Dead() {
			b.dead = append(b.dead, i)
		}
	}
}

// Advance draws every particle at its current position, then moves it and
// decays its radius.
func (b *ParticleBuffer) Advance(draw func(p *Particle)) {
	decay := b.DecayRate
	if decay == 0 {
		decay = DefaultDecayRate
	}
	b.ForEachAlive(func(p *Particle) {
		if draw != nil {
			draw(p)
		}
		p.step(decay)
	})
}

// Compact removes the particles recorded dead by the last ForEachAlive or
// Advance and returns how many were removed. Dead indices are processed
// from highest to lowest; each is overwritten by the current last particle
// and the length shrinks by one. Every index above the one being processed
// already holds a survivor, so no dead particle is ever moved into a slot.
func (b *ParticleBuffer) Compact() int {
	removed := len(b.dead)
	for i := removed - 1; i >= 0; i-- {
		idx := b.dead[i]
		last := len(b.particles) - 1
		b.particles[idx] = b.particles[last]
		b.particles = b.particles[:last]
	}
	b.dead = b.dead[:0]
	return removed
}

// Reset drops every particle but keeps the storage.
func (b *ParticleBuffer) Reset() {
	b.particles = b.particles[:0]
	b.dead = b.dead[:0]
}
