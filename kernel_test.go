package vfx

import (
	"errors"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

// stepOnce packs update, then steps p by dt with the selected pipeline.
func stepOnce(t *testing.T, update []UpdateModifier, p *Particle, dt float32) *ParameterBlock {
	t.Helper()
	em := DefaultEmitter()
	em.Update = update
	b, err := Pack(&em)
	if err != nil {
		t.Fatalf("Pack: %v", err)
	}
	pl, err := SelectPipeline(b.Uniforms.Mask)
	if err != nil {
		t.Fatalf("SelectPipeline: %v", err)
	}
	pl.Step(b, p, dt)
	return b
}

func testParticle() Particle {
	p := defaultParticle(1)
	p.Lifetime = 10
	return p
}

func TestStepIntegratesAfterForces(t *testing.T) {
	p := testParticle()
	stepOnce(t, []UpdateModifier{Gravity{mgl32.Vec3{0, -10, 0}}}, &p, 0.1)
	assertVecNear(t, "Velocity", p.Velocity, mgl32.Vec3{0, -1, 0})
	assertVecNear(t, "Position", p.Position, mgl32.Vec3{0, -0.1, 0})
	assertNear(t, "Age", p.Age, 0.1)
}

func TestStepModifiers(t *testing.T) {
	tests := []struct {
		name   string
		update UpdateModifier
		setup  func(p *Particle)
		check  func(t *testing.T, p *Particle)
	}{
		{
			name:   "constant force",
			update: ConstantForce{mgl32.Vec3{2, 0, 0}},
			check: func(t *testing.T, p *Particle) {
				assertVecNear(t, "Velocity", p.Velocity, mgl32.Vec3{1, 0, 0})
			},
		},
		{
			name:   "drag",
			update: Drag{1},
			setup:  func(p *Particle) { p.Velocity = mgl32.Vec3{4, 0, 0} },
			check: func(t *testing.T, p *Particle) {
				assertVecNear(t, "Velocity", p.Velocity, mgl32.Vec3{2, 0, 0})
			},
		},
		{
			name:   "drag never reverses",
			update: Drag{10},
			setup:  func(p *Particle) { p.Velocity = mgl32.Vec3{4, 0, 0} },
			check: func(t *testing.T, p *Particle) {
				assertVecNear(t, "Velocity", p.Velocity, mgl32.Vec3{})
			},
		},
		{
			name:   "size by life",
			update: SizeByLife{LinearCurve(1, 0)},
			setup: func(p *Particle) {
				p.Lifetime = 1
				p.InitialSize = 2
			},
			check: func(t *testing.T, p *Particle) {
				assertNear(t, "Size", p.Size, 1)
			},
		},
		{
			name:   "color by life",
			update: ColorByLife{TwoColorGradient(Color{0, 0, 0, 1}, Color{1, 1, 1, 0})},
			setup:  func(p *Particle) { p.Lifetime = 1 },
			check: func(t *testing.T, p *Particle) {
				assertColorNear(t, "Color", p.Color, Color{0.5, 0.5, 0.5, 0.5})
			},
		},
		{
			name:   "emissive over life",
			update: EmissiveOverLife{ConstantGradient(Color{2, 1, 0, 1})},
			check: func(t *testing.T, p *Particle) {
				assertColorNear(t, "Emissive", p.Emissive, Color{2, 1, 0, 1})
			},
		},
		{
			name:   "size by speed",
			update: SizeBySpeed{MinSpeed: 0, MaxSpeed: 10, MinSize: 1, MaxSize: 3},
			setup:  func(p *Particle) { p.Velocity = mgl32.Vec3{5, 0, 0} },
			check: func(t *testing.T, p *Particle) {
				assertNear(t, "Size", p.Size, 2)
			},
		},
		{
			name:   "rotate by velocity",
			update: RotateByVelocity{},
			setup:  func(p *Particle) { p.Velocity = mgl32.Vec3{0, 3, 0} },
			check: func(t *testing.T, p *Particle) {
				assertNear(t, "Rotation", p.Rotation, 1.5707964)
				assertVecNear(t, "forward", p.Orientation.Rotate(axisZ), axisY)
			},
		},
		{
			name:   "radial accel",
			update: RadialAccel{Accel: 4},
			setup:  func(p *Particle) { p.Position = mgl32.Vec3{0, 0, 3} },
			check: func(t *testing.T, p *Particle) {
				assertVecNear(t, "Velocity", p.Velocity, mgl32.Vec3{0, 0, 2})
			},
		},
		{
			name:   "tangent accel",
			update: TangentAccel{Axis: axisY, Accel: 2},
			setup:  func(p *Particle) { p.Position = mgl32.Vec3{1, 0, 0} },
			check: func(t *testing.T, p *Particle) {
				assertNear(t, "radial component", p.Velocity[0], 0)
				assertNear(t, "speed", p.Velocity.Len(), 1)
			},
		},
		{
			name:   "attract",
			update: Attract{Target: mgl32.Vec3{2, 0, 0}, Strength: 4, Falloff: 1},
			check: func(t *testing.T, p *Particle) {
				// force = 4/(1+2) toward +X for 0.5s
				assertVecNear(t, "Velocity", p.Velocity, mgl32.Vec3{2.0 / 3, 0, 0})
			},
		},
		{
			name:   "orbit",
			update: OrbitAround{Axis: axisY, Speed: 2},
			setup:  func(p *Particle) { p.Position = mgl32.Vec3{1, 0, 0} },
			check: func(t *testing.T, p *Particle) {
				assertNear(t, "radial component", p.Velocity[0], 0)
				assertNear(t, "speed", p.Velocity.Len(), 1)
			},
		},
		{
			name:   "spin",
			update: Spin{Axis: axisZ, Speed: 2},
			check: func(t *testing.T, p *Particle) {
				assertNear(t, "Rotation", p.Rotation, 1)
				assertVecNear(t, "rotated X", p.Orientation.Rotate(axisX), mgl32.Vec3{cos32(1), sin32(1), 0})
			},
		},
		{
			name:   "scale3d by life",
			update: Scale3dByLife{X: ConstantCurve(2), Y: ConstantCurve(1), Z: ConstantCurve(0.5)},
			check: func(t *testing.T, p *Particle) {
				assertVecNear(t, "Scale", p.Scale, mgl32.Vec3{2, 1, 0.5})
			},
		},
		{
			name:   "offset by life",
			update: OffsetByLife{X: ConstantCurve(2), Y: ConstantCurve(0), Z: ConstantCurve(0)},
			check: func(t *testing.T, p *Particle) {
				assertVecNear(t, "Position", p.Position, mgl32.Vec3{1, 0, 0})
			},
		},
		{
			name:   "noise moves particle",
			update: Noise{Strength: 5, Frequency: 1},
			check: func(t *testing.T, p *Particle) {
				if p.Velocity.Len() == 0 {
					t.Error("noise left velocity unchanged")
				}
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := testParticle()
			if tt.setup != nil {
				tt.setup(&p)
			}
			stepOnce(t, []UpdateModifier{tt.update}, &p, 0.5)
			tt.check(t, &p)
		})
	}
}

func TestKillStopsLaterModifiers(t *testing.T) {
	p := testParticle()
	p.Velocity = mgl32.Vec3{1, 0, 0}
	stepOnce(t, []UpdateModifier{
		KillZone{Shape: KillSphere{Radius: 5}},
		Gravity{mgl32.Vec3{0, -10, 0}},
		SizeBySpeed{MaxSpeed: 1, MinSize: 7, MaxSize: 7},
	}, &p, 0.1)
	if !p.Dead {
		t.Fatal("particle inside kill sphere survived")
	}
	assertVecNear(t, "Velocity", p.Velocity, mgl32.Vec3{1, 0, 0})
	assertVecNear(t, "Position", p.Position, mgl32.Vec3{})
	assertNear(t, "Size", p.Size, 0.1)
}

func TestKillZones(t *testing.T) {
	tests := []struct {
		name string
		zone KillZone
		pos  mgl32.Vec3
		dead bool
	}{
		{"inside sphere", KillZone{Shape: KillSphere{Radius: 1}}, mgl32.Vec3{0.5, 0, 0}, true},
		{"outside sphere", KillZone{Shape: KillSphere{Radius: 1}}, mgl32.Vec3{2, 0, 0}, false},
		{"on sphere boundary", KillZone{Shape: KillSphere{Radius: 1}}, mgl32.Vec3{1, 0, 0}, false},
		{"inverted sphere outside", KillZone{Shape: KillSphere{Radius: 1}, Invert: true}, mgl32.Vec3{2, 0, 0}, true},
		{"inverted sphere inside", KillZone{Shape: KillSphere{Radius: 1}, Invert: true}, mgl32.Vec3{0, 0, 0}, false},
		{"inside box", KillZone{Shape: KillBox{HalfExtents: mgl32.Vec3{1, 1, 1}}}, mgl32.Vec3{0.5, -0.5, 0}, true},
		{"outside box", KillZone{Shape: KillBox{HalfExtents: mgl32.Vec3{1, 1, 1}}}, mgl32.Vec3{0.5, 3, 0}, false},
		{"inverted box", KillZone{Shape: KillBox{HalfExtents: mgl32.Vec3{1, 1, 1}}, Invert: true}, mgl32.Vec3{0, 5, 0}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := testParticle()
			p.Position = tt.pos
			stepOnce(t, []UpdateModifier{tt.zone}, &p, 0)
			if p.Dead != tt.dead {
				t.Errorf("Dead = %v, want %v", p.Dead, tt.dead)
			}
		})
	}
}

func TestExpiredParticleGetsFinalTick(t *testing.T) {
	p := testParticle()
	p.Lifetime = 0.1
	p.InitialSize = 1
	stepOnce(t, []UpdateModifier{SizeByLife{LinearCurve(1, 0)}}, &p, 0.5)
	if p.Dead {
		t.Error("expiry should be left to compaction, not marked Dead")
	}
	if !p.Expired() {
		t.Error("particle should be expired")
	}
	assertNear(t, "Size", p.Size, 0)
}

func TestPhysicsOwnedSkipsKinematics(t *testing.T) {
	em := DefaultEmitter()
	mesh := DefaultMesh()
	mesh.Collide = true
	em.Render = mesh
	em.Update = []UpdateModifier{Gravity{mgl32.Vec3{0, -10, 0}}, SizeByLife{ConstantCurve(3)}}
	b, err := Pack(&em)
	if err != nil {
		t.Fatal(err)
	}
	pl, _ := SelectPipeline(b.Uniforms.Mask)
	p := testParticle()
	p.Velocity = mgl32.Vec3{1, 0, 0}
	p.InitialSize = 1
	pl.Step(b, &p, 0.5)

	assertVecNear(t, "Velocity", p.Velocity, mgl32.Vec3{1, 0, 0})
	assertVecNear(t, "Position", p.Position, mgl32.Vec3{})
	assertNear(t, "Size", p.Size, 3)
}

func TestSelectPipeline(t *testing.T) {
	mask := TagGravity.Flag() | TagDrag.Flag()
	a, err := SelectPipeline(mask)
	if err != nil {
		t.Fatal(err)
	}
	b, _ := SelectPipeline(mask)
	if a != b {
		t.Error("pipeline for the same mask was rebuilt")
	}
	if a.Mask != mask {
		t.Errorf("Mask = %#x, want %#x", a.Mask, mask)
	}

	if _, err := SelectPipeline(1 << 31); !errors.Is(err, ErrNoPipeline) {
		t.Errorf("unknown tag err = %v, want ErrNoPipeline", err)
	}
}

func TestStepZeroAllocs(t *testing.T) {
	em := DefaultEmitter()
	em.Update = []UpdateModifier{
		Gravity{mgl32.Vec3{0, -9.8, 0}},
		Drag{0.5},
		Noise{Strength: 1, Frequency: 2},
	}
	b, err := Pack(&em)
	if err != nil {
		t.Fatal(err)
	}
	pl, _ := SelectPipeline(b.Uniforms.Mask)
	particles := make([]Particle, 256)
	for i := range particles {
		particles[i] = testParticle()
	}
	allocs := testing.AllocsPerRun(50, func() {
		for i := range particles {
			pl.Step(b, &particles[i], 1.0/60.0)
		}
	})
	if allocs > 0 {
		t.Errorf("Step allocs = %f, want 0", allocs)
	}
}
