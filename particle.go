package vfx

import "github.com/go-gl/mathgl/mgl32"

// Particle is the per-particle state record. It is the renderer's view of a
// live particle and the only data the tick kernel reads besides the packed
// ParameterBlock.
type Particle struct {
	// Position and Velocity are relative to the emitter in SimLocal and
	// absolute in SimWorld.
	Position mgl32.Vec3
	Velocity mgl32.Vec3
	// Age is the elapsed time since birth in seconds.
	Age      float32
	Lifetime float32

	Color    Color
	Emissive Color

	Size         float32
	InitialSize  float32
	Scale        mgl32.Vec3
	InitialScale mgl32.Vec3

	// Rotation is the 2D billboard rotation in radians.
	Rotation    float32
	Orientation mgl32.Quat

	// Seed drives all of this particle's randomness.
	Seed uint32
	Dead bool
}

// NormalizedAge returns Age/Lifetime clamped to [0,1].
func (p *Particle) NormalizedAge() float32 {
	if p.Lifetime <= 0 {
		return 1
	}
	return clamp01(p.Age / p.Lifetime)
}

// Expired reports whether the particle has lived its full lifetime.
func (p *Particle) Expired() bool {
	return p.Age >= p.Lifetime
}

// defaultParticle is the state every particle starts from before the init
// stack runs.
func defaultParticle(seed uint32) Particle {
	return Particle{
		Lifetime:     1,
		Color:        ColorWhite,
		Size:         0.1,
		InitialSize:  0.1,
		Scale:        mgl32.Vec3{1, 1, 1},
		InitialScale: mgl32.Vec3{1, 1, 1},
		Orientation:  mgl32.QuatIdent(),
		Seed:         seed,
	}
}

// particlePool holds up to capacity particles. Live particles occupy
// particles[:alive]; dead ones are swap-removed on compact.
type particlePool struct {
	particles []Particle
	alive     int
	capacity  int
}

// newParticlePool creates a pool bounded by capacity. Storage grows on demand.
func newParticlePool(capacity uint32) *particlePool {
	return &particlePool{
		particles: make([]Particle, 0, min(int(capacity), 256)),
		capacity:  int(capacity),
	}
}

// spawn appends p as a live particle. It reports false when the pool is full.
func (pp *particlePool) spawn(p Particle) bool {
	if pp.alive >= pp.capacity {
		return false
	}
	if pp.alive < len(pp.particles) {
		pp.particles[pp.alive] = p
	} else {
		pp.particles = append(pp.particles, p)
	}
	pp.alive++
	return true
}

// live returns the live particle slots.
func (pp *particlePool) live() []Particle {
	return pp.particles[:pp.alive]
}

// compact removes particles marked dead or past their lifetime and returns
// how many were removed.
func (pp *particlePool) compact() int {
	removed := 0
	i := 0
	for i < pp.alive {
		p := &pp.particles[i]
		if p.Dead || p.Expired() {
			// Swap with last alive particle.
			pp.alive--
			pp.particles[i] = pp.particles[pp.alive]
			removed++
			continue
		}
		i++
	}
	return removed
}

// reset kills all particles.
func (pp *particlePool) reset() {
	pp.alive = 0
}
