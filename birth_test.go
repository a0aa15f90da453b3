package vfx

import (
	"reflect"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func birthEmitter() *Emitter {
	em := DefaultEmitter()
	em.Init = []InitModifier{
		SetLifetime{Random(1, 2)},
		SetPosition{SphereShape{Radius: Random(0.1, 0.5)}},
		SetVelocity{ConeVelocity{Direction: axisY, Angle: 0.4, Speed: Random(1, 3)}},
		SetColor{RandomFromGradient{TwoColorGradient(ColorWhite, Color{1, 0, 0, 1})}},
		SetSize{Random(0.1, 0.2)},
		SetRotation{Random(0, 3)},
		SetScale3d{X: Constant(1), Y: Random(1, 2), Z: Constant(3)},
	}
	return &em
}

func TestBirthDeterministic(t *testing.T) {
	em := birthEmitter()
	in := EmitterInputs{Position: mgl32.Vec3{1, 0, 0}}
	a := Birth(em, 1234, in)
	b := Birth(em, 1234, in)
	if !reflect.DeepEqual(a, b) {
		t.Errorf("same seed gave different particles:\n%+v\n%+v", a, b)
	}
	c := Birth(em, 1235, in)
	if a.Position == c.Position && a.Velocity == c.Velocity {
		t.Error("different seeds gave identical kinematics")
	}
}

func TestBirthWritesOwnedFields(t *testing.T) {
	p := Birth(birthEmitter(), 99, EmitterInputs{})
	if p.Lifetime < 1 || p.Lifetime > 2 {
		t.Errorf("Lifetime = %v, want [1,2]", p.Lifetime)
	}
	if p.Size != p.InitialSize {
		t.Errorf("Size = %v, InitialSize = %v, want equal", p.Size, p.InitialSize)
	}
	if p.Scale != p.InitialScale {
		t.Errorf("Scale = %v, InitialScale = %v, want equal", p.Scale, p.InitialScale)
	}
	assertNear(t, "Scale.X", p.Scale[0], 1)
	assertNear(t, "Scale.Z", p.Scale[2], 3)
	if p.Seed != 99 || p.Age != 0 || p.Dead {
		t.Errorf("bookkeeping = seed %d age %v dead %v", p.Seed, p.Age, p.Dead)
	}
}

func TestBirthLaterModifierWins(t *testing.T) {
	em := DefaultEmitter()
	em.Init = []InitModifier{SetLifetime{Constant(5)}, SetLifetime{Constant(2)}}
	p := Birth(&em, 1, EmitterInputs{})
	assertNear(t, "Lifetime", p.Lifetime, 2)
}

func TestBirthVelocityUsesCurrentPosition(t *testing.T) {
	em := DefaultEmitter()
	em.Init = []InitModifier{
		SetPosition{PointShape{Position: mgl32.Vec3{0, 0, 2}}},
		SetVelocity{RadialVelocity{Speed: Constant(1)}},
	}
	p := Birth(&em, 1, EmitterInputs{})
	assertVecNear(t, "Velocity", p.Velocity, mgl32.Vec3{0, 0, 1})
}

func TestBirthSimSpace(t *testing.T) {
	em := DefaultEmitter()
	em.Init = []InitModifier{SetPosition{PointShape{Position: mgl32.Vec3{1, 0, 0}}}}
	in := EmitterInputs{Position: mgl32.Vec3{10, 20, 30}}

	em.SimSpace = SimLocal
	assertVecNear(t, "local", Birth(&em, 1, in).Position, mgl32.Vec3{1, 0, 0})
	em.SimSpace = SimWorld
	assertVecNear(t, "world", Birth(&em, 1, in).Position, mgl32.Vec3{11, 20, 30})
}

func TestBirthInheritVelocity(t *testing.T) {
	em := DefaultEmitter()
	em.Init = []InitModifier{
		SetVelocity{DirectionalVelocity{Direction: axisY, Speed: Constant(1)}},
		InheritVelocity{Ratio: 0.5},
	}
	p := Birth(&em, 1, EmitterInputs{Velocity: mgl32.Vec3{4, 0, 0}})
	assertVecNear(t, "Velocity", p.Velocity, mgl32.Vec3{2, 1, 0})
}

func TestBirthAlignVelocityUsesFinalVelocity(t *testing.T) {
	em := DefaultEmitter()
	em.Init = []InitModifier{
		SetOrientation{OrientAlignVelocity},
		SetVelocity{DirectionalVelocity{Direction: axisY, Speed: Constant(0)}},
		InheritVelocity{Ratio: 1},
	}
	p := Birth(&em, 1, EmitterInputs{Velocity: mgl32.Vec3{5, 0, 0}})
	assertVecNear(t, "forward", p.Orientation.Rotate(axisZ), axisX)
}

func TestBirthColorFromGradient(t *testing.T) {
	em := DefaultEmitter()
	g := TwoColorGradient(Color{0, 0, 0, 1}, Color{1, 1, 1, 1})
	em.Init = []InitModifier{SetColor{RandomFromGradient{g}}}
	for seed := range uint32(50) {
		c := Birth(&em, seed, EmitterInputs{}).Color
		if c.R < 0 || c.R > 1 || c.R != c.G || c.A != 1 {
			t.Fatalf("seed %d color %+v not on gradient", seed, c)
		}
	}
}

func TestParticleSeedDistinct(t *testing.T) {
	seen := make(map[uint32]bool, 1000)
	for serial := range uint32(1000) {
		s := particleSeed(emitterSeed(1, 0), serial)
		if seen[s] {
			t.Fatalf("serial %d repeats seed %#x", serial, s)
		}
		seen[s] = true
	}
	if emitterSeed(1, 0) == emitterSeed(1, 1) {
		t.Error("emitters of one instance share a seed")
	}
}
