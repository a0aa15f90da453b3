package vfx

import (
	"errors"
	"fmt"
	"math"
	"sync"

	"github.com/go-gl/mathgl/mgl32"
)

// ErrNoPipeline is returned when a VariantMask names a module tag that has no
// compute variant.
var ErrNoPipeline = errors.New("vfx: no pipeline for variant")

// moduleFunc applies one packed modifier to one particle. args is the
// module's payload slice; age is the particle's normalized age. It reports
// whether the particle was killed.
type moduleFunc func(b *ParameterBlock, p *Particle, args []float32, dt, age float32) bool

// moduleTable holds the compute variant entry of every module tag.
var moduleTable = [tagCount]moduleFunc{
	TagGravity:          applyAccel,
	TagConstantForce:    applyAccel,
	TagDrag:             applyDrag,
	TagNoise:            applyNoise,
	TagOrbitAround:      applyOrbit,
	TagAttract:          applyAttract,
	TagKillSphere:       applyKillSphere,
	TagKillBox:          applyKillBox,
	TagSizeByLife:       applySizeByLife,
	TagColorByLife:      applyColorByLife,
	TagSizeBySpeed:      applySizeBySpeed,
	TagRotateByVelocity: applyRotateByVelocity,
	TagTangentAccel:     applyTangentAccel,
	TagRadialAccel:      applyRadialAccel,
	TagSpin:             applySpin,
	TagUvScroll:         applyNothing,
	TagScale3dByLife:    applyScale3dByLife,
	TagOffsetByLife:     applyOffsetByLife,
	TagEmissiveOverLife: applyEmissiveOverLife,
}

// kinematic marks modules that move particles. They are skipped when motion
// is owned by the physics integration.
var kinematic = [tagCount]bool{
	TagGravity:       true,
	TagConstantForce: true,
	TagDrag:          true,
	TagNoise:         true,
	TagOrbitAround:   true,
	TagAttract:       true,
	TagTangentAccel:  true,
	TagRadialAccel:   true,
	TagOffsetByLife:  true,
}

// Pipeline is the compute variant for one VariantMask.
type Pipeline struct {
	Mask  VariantMask
	funcs [tagCount]moduleFunc
}

var pipelines sync.Map // VariantMask -> *Pipeline

// SelectPipeline returns the compute variant for mask, building and caching
// it on first use.
func SelectPipeline(mask VariantMask) (*Pipeline, error) {
	if pl, ok := pipelines.Load(mask); ok {
		return pl.(*Pipeline), nil
	}
	pl := &Pipeline{Mask: mask}
	for t := ModuleTag(0); t < 32; t++ {
		if !mask.Has(t) {
			continue
		}
		if t >= tagCount || moduleTable[t] == nil {
			return nil, fmt.Errorf("%w: mask %#x tag %v", ErrNoPipeline, uint32(mask), t)
		}
		pl.funcs[t] = moduleTable[t]
	}
	actual, _ := pipelines.LoadOrStore(mask, pl)
	return actual.(*Pipeline), nil
}

// Step advances one particle by dt. It reads only b and p. Modules run in
// packed order; a kill stops the remaining modules and skips integration.
// Expired particles are left for the caller's compaction so their final
// tick still receives every module.
func (pl *Pipeline) Step(b *ParameterBlock, p *Particle, dt float32) {
	p.Age += dt
	age := p.NormalizedAge()
	physics := b.Uniforms.PhysicsOwned

	for _, m := range b.Modules {
		if physics && kinematic[m.Tag] {
			continue
		}
		if pl.funcs[m.Tag](b, p, b.Payload[m.Offset:m.Offset+m.Count], dt, age) {
			p.Dead = true
			return
		}
	}
	if !physics {
		p.Position = p.Position.Add(p.Velocity.Mul(dt))
	}
}

func vec(args []float32) mgl32.Vec3 {
	return mgl32.Vec3{args[0], args[1], args[2]}
}

func applyNothing(*ParameterBlock, *Particle, []float32, float32, float32) bool {
	return false
}

// args: ax ay az
func applyAccel(_ *ParameterBlock, p *Particle, args []float32, dt, _ float32) bool {
	p.Velocity = p.Velocity.Add(vec(args).Mul(dt))
	return false
}

// args: coefficient
func applyDrag(_ *ParameterBlock, p *Particle, args []float32, dt, _ float32) bool {
	p.Velocity = p.Velocity.Mul(max(1-args[0]*dt, 0))
	return false
}

// args: strength frequency sx sy sz
func applyNoise(_ *ParameterBlock, p *Particle, args []float32, dt, _ float32) bool {
	phase := p.Position.Mul(args[1]).Add(vec(args[2:]).Mul(p.Age))
	p.Velocity = p.Velocity.Add(curl(phase).Mul(args[0] * dt))
	return false
}

// args: axis(3) speed radiusDecay
func applyOrbit(_ *ParameterBlock, p *Particle, args []float32, dt, _ float32) bool {
	toCenter := p.Position.Mul(-1)
	r := toCenter.Len()
	if r <= 0.001 {
		return false
	}
	if tangent, ok := normalize(vec(args).Cross(toCenter)); ok {
		p.Velocity = p.Velocity.Add(tangent.Mul(args[3] * dt))
	}
	if args[4] > 0 {
		p.Velocity = p.Velocity.Add(toCenter.Mul(args[4] * dt / r))
	}
	return false
}

// args: target(3) strength falloff
func applyAttract(_ *ParameterBlock, p *Particle, args []float32, dt, _ float32) bool {
	dir := vec(args).Sub(p.Position)
	dist := dir.Len()
	if dist <= 0.001 {
		return false
	}
	force := args[3] / (1 + float32(math.Pow(float64(dist), float64(args[4]))))
	p.Velocity = p.Velocity.Add(dir.Mul(force * dt / dist))
	return false
}

// args: center(3) radius invert
func applyKillSphere(_ *ParameterBlock, p *Particle, args []float32, _, _ float32) bool {
	inside := p.Position.Sub(vec(args)).Len() < args[3]
	return inside != (args[4] != 0)
}

// args: center(3) halfExtents(3) invert
func applyKillBox(_ *ParameterBlock, p *Particle, args []float32, _, _ float32) bool {
	d := p.Position.Sub(vec(args))
	inside := abs32(d[0]) < args[3] && abs32(d[1]) < args[4] && abs32(d[2]) < args[5]
	return inside != (args[6] != 0)
}

// args: curve
func applySizeByLife(b *ParameterBlock, p *Particle, args []float32, _, age float32) bool {
	var f [1]float32
	b.sampleCurve(args[0], age, f[:])
	p.Size = p.InitialSize * f[0]
	return false
}

// args: gradient
func applyColorByLife(b *ParameterBlock, p *Particle, args []float32, _, age float32) bool {
	var c [4]float32
	b.sampleCurve(args[0], age, c[:])
	p.Color = Color{c[0], c[1], c[2], c[3]}
	return false
}

// args: minSpeed maxSpeed minSize maxSize
func applySizeBySpeed(_ *ParameterBlock, p *Particle, args []float32, _, _ float32) bool {
	speed := p.Velocity.Len()
	var frac float32
	if span := args[1] - args[0]; span > 0 {
		frac = clamp01((speed - args[0]) / span)
	} else if speed >= args[1] {
		frac = 1
	}
	p.Size = lerp32(args[2], args[3], frac)
	return false
}

func applyRotateByVelocity(_ *ParameterBlock, p *Particle, _ []float32, _, _ float32) bool {
	if _, ok := normalize(p.Velocity); !ok {
		return false
	}
	p.Rotation = float32(math.Atan2(float64(p.Velocity[1]), float64(p.Velocity[0])))
	p.Orientation = alignTo(p.Velocity)
	return false
}

// args: origin(3) axis(3) accel
func applyTangentAccel(_ *ParameterBlock, p *Particle, args []float32, dt, _ float32) bool {
	toOrigin := vec(args).Sub(p.Position)
	if tangent, ok := normalize(vec(args[3:]).Cross(toOrigin)); ok {
		p.Velocity = p.Velocity.Add(tangent.Mul(args[6] * dt))
	}
	return false
}

// args: origin(3) accel
func applyRadialAccel(_ *ParameterBlock, p *Particle, args []float32, dt, _ float32) bool {
	if dir, ok := normalize(p.Position.Sub(vec(args))); ok {
		p.Velocity = p.Velocity.Add(dir.Mul(args[3] * dt))
	}
	return false
}

// args: axis(3) speed
func applySpin(_ *ParameterBlock, p *Particle, args []float32, dt, _ float32) bool {
	axis, ok := normalize(vec(args))
	if !ok {
		return false
	}
	angle := args[3] * dt
	p.Orientation = mgl32.QuatRotate(angle, axis).Mul(p.Orientation).Normalize()
	p.Rotation += angle
	return false
}

// args: curveX curveY curveZ
func applyScale3dByLife(b *ParameterBlock, p *Particle, args []float32, _, age float32) bool {
	var x, y, z [1]float32
	b.sampleCurve(args[0], age, x[:])
	b.sampleCurve(args[1], age, y[:])
	b.sampleCurve(args[2], age, z[:])
	p.Scale = mgl32.Vec3{p.InitialScale[0] * x[0], p.InitialScale[1] * y[0], p.InitialScale[2] * z[0]}
	return false
}

// args: curveX curveY curveZ
func applyOffsetByLife(b *ParameterBlock, p *Particle, args []float32, dt, age float32) bool {
	var x, y, z [1]float32
	b.sampleCurve(args[0], age, x[:])
	b.sampleCurve(args[1], age, y[:])
	b.sampleCurve(args[2], age, z[:])
	p.Position = p.Position.Add(mgl32.Vec3{x[0], y[0], z[0]}.Mul(dt))
	return false
}

// args: gradient
func applyEmissiveOverLife(b *ParameterBlock, p *Particle, args []float32, _, age float32) bool {
	var c [4]float32
	b.sampleCurve(args[0], age, c[:])
	p.Emissive = Color{c[0], c[1], c[2], c[3]}
	return false
}
