package vfx

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
)

// InitModifier is one step of an emitter's birth stack. The variant set is
// closed: SetLifetime, SetPosition, SetVelocity, SetColor, SetSize,
// SetRotation, SetOrientation, SetScale3d, SetUvScale, InheritVelocity.
type InitModifier interface {
	initModifier()
}

// SetLifetime samples the particle's lifetime in seconds.
type SetLifetime struct{ Lifetime ScalarRange }

// SetPosition samples the birth position from an emission shape.
type SetPosition struct{ Shape Shape }

// SetVelocity samples the birth velocity.
type SetVelocity struct{ Mode VelocityMode }

// SetColor assigns the birth color.
type SetColor struct{ Source ColorSource }

// SetSize samples a uniform size.
type SetSize struct{ Size ScalarRange }

// SetRotation samples a 2D rotation in radians.
type SetRotation struct{ Angle ScalarRange }

// SetOrientation picks a 3D orientation.
type SetOrientation struct{ Mode OrientMode }

// SetScale3d samples a per-axis scale.
type SetScale3d struct {
	X ScalarRange `yaml:"x"`
	Y ScalarRange `yaml:"y"`
	Z ScalarRange `yaml:"z"`
}

// SetUvScale sets the emitter-shared UV tiling.
type SetUvScale struct{ Scale [2]float32 }

// InheritVelocity adds Ratio times the emitter velocity to the particle.
type InheritVelocity struct {
	Ratio float32 `yaml:"ratio"`
}

func (SetLifetime) initModifier()     {}
func (SetPosition) initModifier()     {}
func (SetVelocity) initModifier()     {}
func (SetColor) initModifier()        {}
func (SetSize) initModifier()         {}
func (SetRotation) initModifier()     {}
func (SetOrientation) initModifier()  {}
func (SetScale3d) initModifier()      {}
func (SetUvScale) initModifier()      {}
func (InheritVelocity) initModifier() {}

// Shape is an emission volume sampled by SetPosition.
type Shape interface {
	shape()
}

// SphereShape emits inside a sphere of sampled radius.
type SphereShape struct {
	Center mgl32.Vec3  `yaml:"center,flow"`
	Radius ScalarRange `yaml:"radius"`
}

// BoxShape emits inside an axis-aligned box.
type BoxShape struct {
	Center      mgl32.Vec3 `yaml:"center,flow"`
	HalfExtents mgl32.Vec3 `yaml:"half_extents,flow"`
}

// ConeShape emits inside an upward cone with apex at the origin. Angle is the
// half-angle in radians; Radius caps the base.
type ConeShape struct {
	Angle  float32 `yaml:"angle"`
	Radius float32 `yaml:"radius"`
	Height float32 `yaml:"height"`
}

// CircleShape emits on a disc perpendicular to Axis.
type CircleShape struct {
	Center mgl32.Vec3  `yaml:"center,flow"`
	Axis   mgl32.Vec3  `yaml:"axis,flow"`
	Radius ScalarRange `yaml:"radius"`
}

// EdgeShape emits along a line segment.
type EdgeShape struct {
	Start mgl32.Vec3 `yaml:"start,flow"`
	End   mgl32.Vec3 `yaml:"end,flow"`
}

// PointShape emits at a single point.
type PointShape struct {
	Position mgl32.Vec3
}

func (SphereShape) shape() {}
func (BoxShape) shape()    {}
func (ConeShape) shape()   {}
func (CircleShape) shape() {}
func (EdgeShape) shape()   {}
func (PointShape) shape()  {}

// VelocityMode is an initial velocity generator.
type VelocityMode interface {
	velocityMode()
}

// RadialVelocity pushes particles away from Center.
type RadialVelocity struct {
	Center mgl32.Vec3  `yaml:"center,flow"`
	Speed  ScalarRange `yaml:"speed"`
}

// DirectionalVelocity moves every particle along Direction.
type DirectionalVelocity struct {
	Direction mgl32.Vec3  `yaml:"direction,flow"`
	Speed     ScalarRange `yaml:"speed"`
}

// TangentVelocity moves particles around Axis.
type TangentVelocity struct {
	Axis  mgl32.Vec3  `yaml:"axis,flow"`
	Speed ScalarRange `yaml:"speed"`
}

// ConeVelocity picks a direction within Angle radians of Direction.
type ConeVelocity struct {
	Direction mgl32.Vec3  `yaml:"direction,flow"`
	Angle     float32     `yaml:"angle"`
	Speed     ScalarRange `yaml:"speed"`
}

// RandomVelocity picks a uniformly random direction.
type RandomVelocity struct {
	Speed ScalarRange `yaml:"speed"`
}

func (RadialVelocity) velocityMode()      {}
func (DirectionalVelocity) velocityMode() {}
func (TangentVelocity) velocityMode()     {}
func (ConeVelocity) velocityMode()        {}
func (RandomVelocity) velocityMode()      {}

// ColorSource is a birth color generator.
type ColorSource interface {
	colorSource()
}

// ConstantColor assigns the same color to every particle.
type ConstantColor struct{ Color Color }

// RandomFromGradient samples the gradient at a uniform random position.
type RandomFromGradient struct{ Gradient Gradient }

func (ConstantColor) colorSource()      {}
func (RandomFromGradient) colorSource() {}

// OrientMode selects the birth orientation of a particle.
type OrientMode uint8

const (
	OrientIdentity OrientMode = iota
	OrientRandomY
	OrientRandomFull
	OrientAlignVelocity
	OrientFaceCamera
)

var orientModeNames = [...]string{"Identity", "RandomY", "RandomFull", "AlignVelocity", "FaceCamera"}

func (o OrientMode) String() string {
	if int(o) < len(orientModeNames) {
		return orientModeNames[o]
	}
	return fmt.Sprintf("OrientMode(%d)", uint8(o))
}

// UpdateModifier is one step of an emitter's per-tick stack.
type UpdateModifier interface {
	updateModifier()
}

// Gravity applies a constant acceleration.
type Gravity struct{ Accel mgl32.Vec3 }

// ConstantForce applies a constant acceleration independent of gravity.
type ConstantForce struct{ Accel mgl32.Vec3 }

// Drag scales velocity down by Coefficient per second.
type Drag struct{ Coefficient float32 }

// Noise perturbs velocity with a divergence-free curl field.
type Noise struct {
	Strength  float32    `yaml:"strength"`
	Frequency float32    `yaml:"frequency"`
	Scroll    mgl32.Vec3 `yaml:"scroll,flow"`
}

// OrbitAround swirls particles around Axis through the origin.
type OrbitAround struct {
	Axis        mgl32.Vec3 `yaml:"axis,flow"`
	Speed       float32    `yaml:"speed"`
	RadiusDecay float32    `yaml:"radius_decay"`
}

// Attract pulls particles toward Target with strength/(1+dist^Falloff).
type Attract struct {
	Target   mgl32.Vec3 `yaml:"target,flow"`
	Strength float32    `yaml:"strength"`
	Falloff  float32    `yaml:"falloff"`
}

// KillZone removes particles inside Shape, or outside it when Invert is set.
type KillZone struct {
	Shape  KillShape
	Invert bool
}

// SizeByLife scales the birth size by a curve over normalized age.
type SizeByLife struct{ Curve Curve }

// ColorByLife replaces the color with a gradient over normalized age.
type ColorByLife struct{ Gradient Gradient }

// SizeBySpeed remaps speed linearly into a size range.
type SizeBySpeed struct {
	MinSpeed float32 `yaml:"min_speed"`
	MaxSpeed float32 `yaml:"max_speed"`
	MinSize  float32 `yaml:"min_size"`
	MaxSize  float32 `yaml:"max_size"`
}

// RotateByVelocity aligns the 2D rotation with the velocity direction.
type RotateByVelocity struct{}

// TangentAccel accelerates particles around Axis through Origin.
type TangentAccel struct {
	Origin mgl32.Vec3 `yaml:"origin,flow"`
	Axis   mgl32.Vec3 `yaml:"axis,flow"`
	Accel  float32    `yaml:"accel"`
}

// RadialAccel accelerates particles away from Origin (toward it when negative).
type RadialAccel struct {
	Origin mgl32.Vec3 `yaml:"origin,flow"`
	Accel  float32    `yaml:"accel"`
}

// Spin rotates the orientation continuously around Axis and advances the
// billboard rotation at the same rate.
type Spin struct {
	Axis  mgl32.Vec3 `yaml:"axis,flow"`
	Speed float32    `yaml:"speed"`
}

// UvScroll scrolls the emitter-shared UV offset.
type UvScroll struct {
	Speed [2]float32 `yaml:"speed,flow"`
}

// Scale3dByLife scales the birth per-axis scale by a curve per axis.
type Scale3dByLife struct {
	X Curve `yaml:"x"`
	Y Curve `yaml:"y"`
	Z Curve `yaml:"z"`
}

// OffsetByLife drifts position by a per-axis curve of units per second.
type OffsetByLife struct {
	X Curve `yaml:"x"`
	Y Curve `yaml:"y"`
	Z Curve `yaml:"z"`
}

// EmissiveOverLife drives the emissive color over normalized age.
type EmissiveOverLife struct{ Gradient Gradient }

func (Gravity) updateModifier()          {}
func (ConstantForce) updateModifier()    {}
func (Drag) updateModifier()             {}
func (Noise) updateModifier()            {}
func (OrbitAround) updateModifier()      {}
func (Attract) updateModifier()          {}
func (KillZone) updateModifier()         {}
func (SizeByLife) updateModifier()       {}
func (ColorByLife) updateModifier()      {}
func (SizeBySpeed) updateModifier()      {}
func (RotateByVelocity) updateModifier() {}
func (TangentAccel) updateModifier()     {}
func (RadialAccel) updateModifier()      {}
func (Spin) updateModifier()             {}
func (UvScroll) updateModifier()         {}
func (Scale3dByLife) updateModifier()    {}
func (OffsetByLife) updateModifier()     {}
func (EmissiveOverLife) updateModifier() {}

// KillShape is the region tested by KillZone.
type KillShape interface {
	killShape()
}

// KillSphere contains points strictly closer than Radius to Center.
type KillSphere struct {
	Center mgl32.Vec3 `yaml:"center,flow"`
	Radius float32    `yaml:"radius"`
}

// KillBox contains points strictly inside the box on every axis.
type KillBox struct {
	Center      mgl32.Vec3 `yaml:"center,flow"`
	HalfExtents mgl32.Vec3 `yaml:"half_extents,flow"`
}

func (KillSphere) killShape() {}
func (KillBox) killShape()    {}
