package vfx

import (
	"errors"
	"fmt"
	"math"
)

// LayoutVersion identifies the ParameterBlock layout. Any change to a module
// payload's field order, or a new module tag, bumps it.
const LayoutVersion uint32 = 1

// ErrUnknownModifier is returned by Pack for an update modifier with no
// compute variant.
var ErrUnknownModifier = errors.New("vfx: unknown modifier")

// ModuleTag is the discriminant of a packed update modifier.
type ModuleTag uint32

const (
	TagGravity ModuleTag = iota
	TagConstantForce
	TagDrag
	TagNoise
	TagOrbitAround
	TagAttract
	TagKillSphere
	TagKillBox
	TagSizeByLife
	TagColorByLife
	TagSizeBySpeed
	TagRotateByVelocity
	TagTangentAccel
	TagRadialAccel
	TagSpin
	TagUvScroll
	TagScale3dByLife
	TagOffsetByLife
	TagEmissiveOverLife

	tagCount
)

var tagNames = [tagCount]string{
	"Gravity", "ConstantForce", "Drag", "Noise", "OrbitAround", "Attract",
	"KillSphere", "KillBox", "SizeByLife", "ColorByLife", "SizeBySpeed",
	"RotateByVelocity", "TangentAccel", "RadialAccel", "Spin", "UvScroll",
	"Scale3dByLife", "OffsetByLife", "EmissiveOverLife",
}

func (t ModuleTag) String() string {
	if t < tagCount {
		return tagNames[t]
	}
	return fmt.Sprintf("ModuleTag(%d)", uint32(t))
}

// Flag returns the tag's bit in a VariantMask.
func (t ModuleTag) Flag() VariantMask {
	return 1 << t
}

// VariantMask has one bit set per module tag present in an emitter's update
// stack. It selects the compute variant that runs the emitter.
type VariantMask uint32

// Has reports whether the mask includes t.
func (m VariantMask) Has(t ModuleTag) bool {
	return m&t.Flag() != 0
}

// ModuleRecord locates one packed modifier's payload.
type ModuleRecord struct {
	Tag    ModuleTag
	Offset uint32 // into ParameterBlock.Payload
	Count  uint32
}

// CurveRange locates one flattened curve or gradient in ParameterBlock.Keys.
// Each key occupies Channels+2 floats: time, value channels, interp tag.
type CurveRange struct {
	Offset   uint32
	Count    uint32
	Channels uint32
}

// Uniforms are the emitter-level scalars of a ParameterBlock.
type Uniforms struct {
	Capacity  uint32
	SimSpace  float32 // 0 world, 1 local
	AlphaMode uint32
	UVScale   [2]float32
	UVScroll  [2]float32
	// PhysicsOwned is set for colliding Mesh emitters; motion then belongs
	// to the physics integration and the kernel skips kinematic modifiers.
	PhysicsOwned bool
	Mask         VariantMask
}

// ParameterBlock is the packed, fixed-layout form of an emitter's static
// configuration. It is immutable once built and safe to share between
// dispatch lanes.
type ParameterBlock struct {
	Version  uint32
	Uniforms Uniforms
	Modules  []ModuleRecord
	Payload  []float32
	Curves   []CurveRange
	Keys     []float32
}

// Pack encodes em's static configuration. Unknown update modifiers fail with
// ErrUnknownModifier; a mask with no compute variant fails with ErrNoPipeline.
func Pack(em *Emitter) (*ParameterBlock, error) {
	b := &ParameterBlock{
		Version: LayoutVersion,
		Uniforms: Uniforms{
			Capacity:  em.Capacity,
			SimSpace:  em.SimSpace.code(),
			AlphaMode: uint32(em.AlphaMode),
			UVScale:   [2]float32{1, 1},
		},
	}
	for _, m := range em.Init {
		if uv, ok := m.(SetUvScale); ok {
			b.Uniforms.UVScale = uv.Scale
		}
	}
	if mesh, ok := em.Render.(Mesh); ok && mesh.Collide {
		b.Uniforms.PhysicsOwned = true
	}

	for i, m := range em.Update {
		if err := b.packModule(m); err != nil {
			return nil, fmt.Errorf("vfx: pack emitter %q update %d: %w", em.Name, i, err)
		}
	}
	if _, err := SelectPipeline(b.Uniforms.Mask); err != nil {
		return nil, fmt.Errorf("vfx: pack emitter %q: %w", em.Name, err)
	}
	return b, nil
}

func (b *ParameterBlock) packModule(m UpdateModifier) error {
	switch m := m.(type) {
	case Gravity:
		b.module(TagGravity, m.Accel[:]...)
	case ConstantForce:
		b.module(TagConstantForce, m.Accel[:]...)
	case Drag:
		b.module(TagDrag, m.Coefficient)
	case Noise:
		b.module(TagNoise, m.Strength, m.Frequency, m.Scroll[0], m.Scroll[1], m.Scroll[2])
	case OrbitAround:
		b.module(TagOrbitAround, m.Axis[0], m.Axis[1], m.Axis[2], m.Speed, m.RadiusDecay)
	case Attract:
		b.module(TagAttract, m.Target[0], m.Target[1], m.Target[2], m.Strength, m.Falloff)
	case KillZone:
		switch s := m.Shape.(type) {
		case KillSphere:
			b.module(TagKillSphere, s.Center[0], s.Center[1], s.Center[2], s.Radius, boolf(m.Invert))
		case KillBox:
			b.module(TagKillBox, s.Center[0], s.Center[1], s.Center[2],
				s.HalfExtents[0], s.HalfExtents[1], s.HalfExtents[2], boolf(m.Invert))
		default:
			return fmt.Errorf("%w: kill shape %T", ErrUnknownModifier, m.Shape)
		}
	case SizeByLife:
		b.module(TagSizeByLife, b.curve(m.Curve))
	case ColorByLife:
		b.module(TagColorByLife, b.gradient(m.Gradient))
	case SizeBySpeed:
		b.module(TagSizeBySpeed, m.MinSpeed, m.MaxSpeed, m.MinSize, m.MaxSize)
	case RotateByVelocity:
		b.module(TagRotateByVelocity)
	case TangentAccel:
		b.module(TagTangentAccel, m.Origin[0], m.Origin[1], m.Origin[2],
			m.Axis[0], m.Axis[1], m.Axis[2], m.Accel)
	case RadialAccel:
		b.module(TagRadialAccel, m.Origin[0], m.Origin[1], m.Origin[2], m.Accel)
	case Spin:
		b.module(TagSpin, m.Axis[0], m.Axis[1], m.Axis[2], m.Speed)
	case UvScroll:
		b.Uniforms.UVScroll = m.Speed
		b.module(TagUvScroll, m.Speed[0], m.Speed[1])
	case Scale3dByLife:
		b.module(TagScale3dByLife, b.curve(m.X), b.curve(m.Y), b.curve(m.Z))
	case OffsetByLife:
		b.module(TagOffsetByLife, b.curve(m.X), b.curve(m.Y), b.curve(m.Z))
	case EmissiveOverLife:
		b.module(TagEmissiveOverLife, b.gradient(m.Gradient))
	default:
		return fmt.Errorf("%w: %T", ErrUnknownModifier, m)
	}
	return nil
}

func (b *ParameterBlock) module(tag ModuleTag, payload ...float32) {
	b.Modules = append(b.Modules, ModuleRecord{
		Tag:    tag,
		Offset: uint32(len(b.Payload)),
		Count:  uint32(len(payload)),
	})
	b.Payload = append(b.Payload, payload...)
	b.Uniforms.Mask |= tag.Flag()
}

// curve flattens c into the key table and returns its index as a float
// payload entry.
func (b *ParameterBlock) curve(c Curve) float32 {
	keys := c.Resample(MaxPackedKeys).sortedKeys()
	r := CurveRange{Offset: uint32(len(b.Keys)), Count: uint32(len(keys)), Channels: 1}
	for _, k := range keys {
		b.Keys = append(b.Keys, k.Time, k.Value, float32(k.Interp))
	}
	b.Curves = append(b.Curves, r)
	return float32(len(b.Curves) - 1)
}

func (b *ParameterBlock) gradient(g Gradient) float32 {
	keys := g.Resample(MaxPackedKeys).sortedKeys()
	r := CurveRange{Offset: uint32(len(b.Keys)), Count: uint32(len(keys)), Channels: 4}
	for _, k := range keys {
		b.Keys = append(b.Keys, k.Time, k.Color.R, k.Color.G, k.Color.B, k.Color.A, float32(k.Interp))
	}
	b.Curves = append(b.Curves, r)
	return float32(len(b.Curves) - 1)
}

// sampleCurve evaluates packed curve idx at t into out, which must have
// the curve's channel count.
func (b *ParameterBlock) sampleCurve(idx float32, t float32, out []float32) {
	c := b.Curves[int(idx)]
	ch := int(c.Channels)
	stride := ch + 2
	off := int(c.Offset)
	keys := b.Keys[off : off+int(c.Count)*stride]
	switch c.Count {
	case 0:
		clear(out)
		return
	case 1:
		copy(out, keys[1:1+ch])
		return
	}
	i, s, exact := segment(int(c.Count), func(j int) float32 { return keys[j*stride] }, t)
	from := keys[i*stride+1 : i*stride+1+ch]
	if exact {
		copy(out, from)
		return
	}
	to := keys[(i+1)*stride+1 : (i+1)*stride+1+ch]
	e := Interp(keys[i*stride+1+ch]).Ease(s)
	for k := range out {
		out[k] = lerp32(from[k], to[k], e)
	}
}

// Words returns the block as a flat uint32 upload image: a header, the
// module records, the payload, the curve ranges, then the keys. Floats are
// stored as their IEEE-754 bits.
func (b *ParameterBlock) Words() []uint32 {
	u := &b.Uniforms
	words := []uint32{
		b.Version,
		u.Capacity,
		math.Float32bits(u.SimSpace),
		u.AlphaMode,
		math.Float32bits(u.UVScale[0]),
		math.Float32bits(u.UVScale[1]),
		math.Float32bits(u.UVScroll[0]),
		math.Float32bits(u.UVScroll[1]),
		uint32(boolf(u.PhysicsOwned)),
		uint32(u.Mask),
		uint32(len(b.Modules)),
		uint32(len(b.Payload)),
		uint32(len(b.Curves)),
		uint32(len(b.Keys)),
	}
	for _, m := range b.Modules {
		words = append(words, uint32(m.Tag), m.Offset, m.Count)
	}
	for _, f := range b.Payload {
		words = append(words, math.Float32bits(f))
	}
	for _, c := range b.Curves {
		words = append(words, c.Offset, c.Count, c.Channels)
	}
	for _, f := range b.Keys {
		words = append(words, math.Float32bits(f))
	}
	return words
}

func boolf(v bool) float32 {
	if v {
		return 1
	}
	return 0
}
