package vfx

import (
	"errors"
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// ErrInvalidEffect is wrapped by every structural validation failure.
var ErrInvalidEffect = errors.New("vfx: invalid effect")

// DefaultCapacity is the capacity of a DefaultEmitter.
const DefaultCapacity = 1024

// Effect is the top-level authored description of a particle effect. It is
// immutable once built; runtime state lives in EffectInstance.
type Effect struct {
	Name string `yaml:"name"`
	// Emitters draw in order; later emitters draw on top.
	Emitters []Emitter `yaml:"emitters"`
	// Params are exposed for external binding.
	Params []Parameter `yaml:"params,omitempty"`
	// Duration in seconds. Zero means unbounded.
	Duration float32 `yaml:"duration"`
	Looping  bool    `yaml:"looping"`
}

// NewEffect returns a looping, unbounded effect with the given emitters.
func NewEffect(name string, emitters ...Emitter) Effect {
	return Effect{Name: name, Emitters: emitters, Looping: true}
}

// Param returns the value of the named parameter.
func (e *Effect) Param(name string) (ParamValue, bool) {
	for _, p := range e.Params {
		if p.Name == name {
			return p.Value, true
		}
	}
	return nil, false
}

// FindEmitter returns the emitter with the given name, or nil.
func (e *Effect) FindEmitter(name string) *Emitter {
	for i := range e.Emitters {
		if e.Emitters[i].Name == name {
			return &e.Emitters[i]
		}
	}
	return nil
}

// Validate reports structural problems that make the effect unusable.
// Numeric degeneracies (inverted ranges, unsorted or empty curves) are not
// errors; the evaluators absorb them.
func (e *Effect) Validate() error {
	if len(e.Emitters) == 0 {
		return fmt.Errorf("%w: %q has no emitters", ErrInvalidEffect, e.Name)
	}
	if e.Duration < 0 || math.IsNaN(float64(e.Duration)) {
		return fmt.Errorf("%w: %q has duration %v", ErrInvalidEffect, e.Name, e.Duration)
	}
	for i := range e.Emitters {
		if err := e.Emitters[i].validate(); err != nil {
			return fmt.Errorf("%w: %q emitter %d: %v", ErrInvalidEffect, e.Name, i, err)
		}
	}
	for _, p := range e.Params {
		if p.Value == nil {
			return fmt.Errorf("%w: %q parameter %q has no value", ErrInvalidEffect, e.Name, p.Name)
		}
	}
	return nil
}

// Emitter is one independently configured particle source.
type Emitter struct {
	Name    string
	Enabled bool
	// Capacity is the hard bound on simultaneously live particles.
	Capacity  uint32
	Spawn     SpawnPolicy
	Init      []InitModifier
	Update    []UpdateModifier
	Render    RenderMode
	SimSpace  SimSpace
	AlphaMode AlphaMode
}

// DefaultEmitter returns the authoring defaults for a new emitter.
func DefaultEmitter() Emitter {
	return Emitter{
		Name:     "Emitter",
		Enabled:  true,
		Capacity: DefaultCapacity,
		Spawn:    Rate{PerSecond: 50},
		Init: []InitModifier{
			SetLifetime{Constant(5)},
			SetPosition{SphereShape{Radius: Constant(0.1)}},
			SetVelocity{RadialVelocity{Speed: Constant(2)}},
		},
		Update: []UpdateModifier{
			Gravity{mgl32.Vec3{0, -9.8, 0}},
		},
		Render:    DefaultBillboard(),
		SimSpace:  SimLocal,
		AlphaMode: AlphaBlend,
	}
}

func (em *Emitter) validate() error {
	if em.Spawn == nil {
		return fmt.Errorf("%q has no spawn policy", em.Name)
	}
	if em.Render == nil {
		return fmt.Errorf("%q has no render mode", em.Name)
	}
	for i, m := range em.Init {
		if m == nil {
			return fmt.Errorf("%q init modifier %d is nil", em.Name, i)
		}
	}
	for i, m := range em.Update {
		if m == nil {
			return fmt.Errorf("%q update modifier %d is nil", em.Name, i)
		}
	}
	return nil
}

// MaxLifetime returns the longest lifetime the init stack can produce. The
// last SetLifetime wins; without one particles live for one second.
func (em *Emitter) MaxLifetime() float32 {
	life := float32(1)
	for _, m := range em.Init {
		if l, ok := m.(SetLifetime); ok {
			life = l.Lifetime.Max()
		}
	}
	return life
}

// SpawnPolicy decides how many particles an emitter births per tick.
type SpawnPolicy interface {
	spawnPolicy()
}

// Rate emits continuously.
type Rate struct{ PerSecond float32 }

// Burst emits Count particles every Interval seconds after Offset,
// at most MaxCycles times when MaxCycles is set.
type Burst struct {
	Count     uint32  `yaml:"count"`
	Interval  float32 `yaml:"interval"`
	MaxCycles *uint32 `yaml:"max_cycles,omitempty"`
	Offset    float32 `yaml:"offset"`
}

// Once emits Count particles a single time, Offset seconds after activation.
type Once struct {
	Count  uint32  `yaml:"count"`
	Offset float32 `yaml:"offset"`
}

// Distance emits one particle per Spacing units of emitter travel.
type Distance struct {
	Spacing float32 `yaml:"spacing"`
}

func (Rate) spawnPolicy()     {}
func (Burst) spawnPolicy()    {}
func (Once) spawnPolicy()     {}
func (Distance) spawnPolicy() {}

// Cycles returns a MaxCycles value for Burst.
func Cycles(n uint32) *uint32 {
	return &n
}

// Parameter is a named value exposed for external binding.
type Parameter struct {
	Name  string
	Value ParamValue
}

// ParamValue is one of FloatParam, Vec3Param, ColorParam, CurveParam.
type ParamValue interface {
	paramValue()
}

type (
	FloatParam float32
	Vec3Param  mgl32.Vec3
	ColorParam Color
	CurveParam Curve
)

func (FloatParam) paramValue() {}
func (Vec3Param) paramValue()  {}
func (ColorParam) paramValue() {}
func (CurveParam) paramValue() {}

// RenderMode is the renderer-facing description of an emitter's particles.
type RenderMode interface {
	renderMode()
}

// BillboardOrient selects how a billboard quad faces the viewer.
type BillboardOrient uint8

const (
	BillboardFaceCamera BillboardOrient = iota
	BillboardParallelCamera
	BillboardAlongVelocity
)

var billboardOrientNames = [...]string{"FaceCamera", "ParallelCamera", "AlongVelocity"}

// Flipbook animates a texture atlas of Rows x Columns frames.
type Flipbook struct {
	Rows    uint32  `yaml:"rows"`
	Columns uint32  `yaml:"columns"`
	FPS     float32 `yaml:"fps"`
}

// Frame returns the atlas frame shown at the given particle age in seconds.
func (f Flipbook) Frame(age float32) int {
	n := int(f.Rows * f.Columns)
	if n <= 0 || f.FPS <= 0 || age <= 0 {
		return 0
	}
	return int(age*f.FPS) % n
}

// Billboard renders each particle as a camera-facing quad.
type Billboard struct {
	Orient               BillboardOrient `yaml:"orient"`
	Texture              *string         `yaml:"texture,omitempty"`
	Flipbook             *Flipbook       `yaml:"flipbook,omitempty"`
	SoftParticleDistance float32         `yaml:"soft_particle_distance"`
}

// DefaultBillboard returns an untextured camera-facing billboard.
func DefaultBillboard() Billboard {
	return Billboard{Orient: BillboardFaceCamera}
}

// RibbonTextureMode selects how a texture maps along a ribbon.
type RibbonTextureMode uint8

const (
	RibbonStretch RibbonTextureMode = iota
	RibbonTile
)

var ribbonTextureModeNames = [...]string{"Stretch", "Tile"}

// Ribbon renders a trailing strip through recent particle positions.
type Ribbon struct {
	WidthCurve          Curve             `yaml:"width_curve"`
	TextureMode         RibbonTextureMode `yaml:"texture_mode"`
	FaceCamera          bool              `yaml:"face_camera"`
	SegmentsPerParticle uint32            `yaml:"segments_per_particle"`
	Texture             *string           `yaml:"texture,omitempty"`
}

// DefaultRibbon returns a thin camera-facing ribbon with 16 history samples.
func DefaultRibbon() Ribbon {
	return Ribbon{
		WidthCurve:          ConstantCurve(0.1),
		TextureMode:         RibbonStretch,
		FaceCamera:          true,
		SegmentsPerParticle: 16,
	}
}

// MeshKind selects a built-in mesh or a custom asset.
type MeshKind uint8

const (
	MeshCube MeshKind = iota
	MeshSphere
	MeshCapsule
	MeshCylinder
	MeshQuad
	MeshCustom
)

var meshKindNames = [...]string{"Cube", "Sphere", "Capsule", "Cylinder", "Quad", "Custom"}

// MeshShape is a built-in mesh, or a custom mesh at Path when Kind is MeshCustom.
type MeshShape struct {
	Kind MeshKind
	Path string
}

func (s MeshShape) String() string {
	if s.Kind == MeshCustom {
		return s.Path
	}
	if int(s.Kind) < len(meshKindNames) {
		return meshKindNames[s.Kind]
	}
	return fmt.Sprintf("MeshKind(%d)", uint8(s.Kind))
}

// Mesh renders an instanced 3D mesh per particle. Collide only flags intent;
// collision response belongs to the physics integration.
type Mesh struct {
	Shape        MeshShape `yaml:"shape"`
	MaterialPath *string   `yaml:"material_path,omitempty"`
	BaseColor    Color     `yaml:"base_color"`
	Collide      bool      `yaml:"collide"`
	Restitution  float32   `yaml:"restitution"`
	CastShadows  bool      `yaml:"cast_shadows"`
}

// DefaultMesh returns a grey cube mesh.
func DefaultMesh() Mesh {
	return Mesh{
		Shape:       MeshShape{Kind: MeshCube},
		BaseColor:   Color{0.5, 0.5, 0.5, 1},
		Restitution: 0.3,
	}
}

func (Billboard) renderMode() {}
func (Ribbon) renderMode()    {}
func (Mesh) renderMode()      {}
