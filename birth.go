package vfx

import (
	"math/rand/v2"

	"github.com/go-gl/mathgl/mgl32"
)

// EmitterInputs are the per-tick values the host supplies for an emitter.
type EmitterInputs struct {
	// Position and Velocity of the emitter frame in world space.
	Position mgl32.Vec3
	Velocity mgl32.Vec3
	// DistanceDelta is the emitter's travel since the previous tick, read by
	// the Distance spawn policy.
	DistanceDelta float32
}

// emitterSeed derives the seed of the index-th emitter of an instance.
func emitterSeed(instanceSeed uint32, index int) uint32 {
	return instanceSeed*2654435761 + uint32(index)*1073741827
}

// particleSeed derives a particle's seed from its emitter seed and its spawn
// serial with a PCG hash, so neighbouring serials decorrelate.
func particleSeed(emitter, serial uint32) uint32 {
	state := (emitter ^ serial*0x9e3779b9)*747796405 + 2891336453
	word := ((state >> ((state >> 28) + 4)) ^ state) * 277803737
	return (word >> 22) ^ word
}

const pcgStream = 0xda3e39cb94b95bdb

// particleRand is a per-particle PCG stream. It lives on the stack of the
// birth pass, so no random state is shared between particles.
type particleRand struct {
	src rand.PCG
}

func newParticleRand(seed uint32) particleRand {
	var r particleRand
	r.src.Seed(uint64(seed), pcgStream)
	return r
}

// Float32 returns a uniform value in [0,1).
func (r *particleRand) Float32() float32 {
	return float32(r.src.Uint64()>>40) / (1 << 24)
}

// Birth runs the emitter's init stack in authored order for one particle.
// Each modifier writes only the fields it owns. The result is fully
// determined by em, seed and in.
func Birth(em *Emitter, seed uint32, in EmitterInputs) Particle {
	p := defaultParticle(seed)
	rng := newParticleRand(seed)
	alignVelocity := false

	for _, m := range em.Init {
		switch m := m.(type) {
		case SetLifetime:
			p.Lifetime = m.Lifetime.Sample(&rng)
		case SetPosition:
			p.Position = sampleShape(m.Shape, &rng)
		case SetVelocity:
			p.Velocity = sampleVelocity(m.Mode, p.Position, &rng)
		case SetColor:
			switch src := m.Source.(type) {
			case ConstantColor:
				p.Color = src.Color
			case RandomFromGradient:
				p.Color = src.Gradient.Evaluate(rng.Float32())
			}
		case SetSize:
			p.Size = m.Size.Sample(&rng)
			p.InitialSize = p.Size
		case SetRotation:
			p.Rotation = m.Angle.Sample(&rng)
		case SetOrientation:
			alignVelocity = m.Mode == OrientAlignVelocity
			p.Orientation = sampleOrientation(m.Mode, &rng)
		case SetScale3d:
			p.Scale = mgl32.Vec3{m.X.Sample(&rng), m.Y.Sample(&rng), m.Z.Sample(&rng)}
			p.InitialScale = p.Scale
		case SetUvScale:
			// Emitter-shared; carried in the parameter block uniforms.
		case InheritVelocity:
			p.Velocity = p.Velocity.Add(in.Velocity.Mul(m.Ratio))
		}
	}

	// Alignment follows the final birth velocity, including inherited velocity.
	if alignVelocity {
		p.Orientation = alignTo(p.Velocity)
	}
	if em.SimSpace == SimWorld {
		p.Position = p.Position.Add(in.Position)
	}
	return p
}
