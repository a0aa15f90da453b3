package vfx

import "github.com/go-gl/mathgl/mgl32"

// Presets returns the built-in effects in display order. Each call builds
// fresh values, so callers may modify the result.
func Presets() []Effect {
	return []Effect{
		presetFire(),
		presetSmoke(),
		presetSparks(),
		presetFountain(),
		presetMagicOrb(),
		presetSnow(),
		presetFireflies(),
		presetExplosion(),
		presetRain(),
		presetPortal(),
		presetEmbers(),
		presetDustMotes(),
		presetFlamethrower(),
		presetHealAura(),
		presetWaterfall(),
		presetCampfire(),
		presetRockDebris(),
	}
}

var (
	vecZero = mgl32.Vec3{}
	vecUp   = mgl32.Vec3{0, 1, 0}
)

func gradient(keys ...GradientKey) Gradient { return Gradient{Keys: keys} }

func gk(t, r, g, b, a float32) GradientKey {
	return GradientKey{Time: t, Color: Color{r, g, b, a}}
}

func curve(keys ...CurveKey) Curve { return Curve{Keys: keys} }

func ck(t, v float32, interp Interp) CurveKey {
	return CurveKey{Time: t, Value: v, Interp: interp}
}

func billboard(tex string) Billboard {
	b := DefaultBillboard()
	path := "textures/particles/" + tex + ".png"
	b.Texture = &path
	return b
}

// layer returns an enabled, locally simulated emitter.
func layer(name string, capacity uint32, spawn SpawnPolicy, alpha AlphaMode) Emitter {
	return Emitter{
		Name:      name,
		Enabled:   true,
		Capacity:  capacity,
		Spawn:     spawn,
		SimSpace:  SimLocal,
		AlphaMode: alpha,
	}
}

func disc(center mgl32.Vec3, lo, hi float32) SetPosition {
	return SetPosition{CircleShape{Center: center, Axis: vecUp, Radius: Random(lo, hi)}}
}

func upCone(angle, lo, hi float32) SetVelocity {
	return SetVelocity{ConeVelocity{Direction: vecUp, Angle: angle, Speed: Random(lo, hi)}}
}

func radial(lo, hi float32) SetVelocity {
	return SetVelocity{RadialVelocity{Center: vecZero, Speed: Random(lo, hi)}}
}

func sphere(center mgl32.Vec3, radius ScalarRange) SetPosition {
	return SetPosition{SphereShape{Center: center, Radius: radius}}
}

func box(center, half mgl32.Vec3) SetPosition {
	return SetPosition{BoxShape{Center: center, HalfExtents: half}}
}

func gravity(y float32) Gravity { return Gravity{mgl32.Vec3{0, y, 0}} }

// Multi-layer fire: hot core, flame body and rising tips.
func presetFire() Effect {
	core := layer("Hot Core", 128, Rate{25}, AlphaAdditive)
	core.Init = []InitModifier{
		SetLifetime{Random(0.2, 0.5)},
		disc(vecZero, 0.02, 0.1),
		upCone(0.15, 0.5, 1.2),
	}
	core.Update = []UpdateModifier{
		Drag{2},
		ColorByLife{gradient(
			gk(0, 3, 2.5, 1, 1),
			gk(0.4, 2, 1.2, 0.3, 0.8),
			gk(1, 1, 0.4, 0, 0),
		)},
		SizeByLife{curve(
			ck(0, 0.15, InterpEaseOut),
			ck(0.5, 0.25, InterpLinear),
			ck(1, 0.1, InterpEaseIn),
		)},
	}
	core.Render = billboard("fire_01")

	body := layer("Flame Body", 256, Rate{50}, AlphaAdditive)
	body.Init = []InitModifier{
		SetLifetime{Random(0.3, 0.8)},
		disc(vecZero, 0.05, 0.2),
		upCone(0.25, 1, 2.5),
	}
	body.Update = []UpdateModifier{
		gravity(2),
		Drag{2.5},
		Noise{Strength: 1.2, Frequency: 3, Scroll: mgl32.Vec3{0, 2.5, 0}},
		ColorByLife{gradient(
			gk(0, 1.5, 1, 0.3, 1),
			gk(0.25, 1.2, 0.6, 0.1, 0.9),
			gk(0.6, 0.8, 0.2, 0, 0.5),
			gk(1, 0.3, 0.05, 0, 0),
		)},
		SizeByLife{curve(
			ck(0, 0.12, InterpLinear),
			ck(0.3, 0.22, InterpEaseOut),
			ck(1, 0.06, InterpEaseIn),
		)},
	}
	body.Render = billboard("flame_01")

	tips := layer("Flame Tips", 128, Rate{20}, AlphaAdditive)
	tips.Init = []InitModifier{
		SetLifetime{Random(0.4, 0.9)},
		disc(mgl32.Vec3{0, 0.1, 0}, 0.03, 0.15),
		upCone(0.2, 1.5, 3),
	}
	tips.Update = []UpdateModifier{
		gravity(1.5),
		Drag{2},
		Noise{Strength: 0.8, Frequency: 2.5, Scroll: mgl32.Vec3{0.3, 3, 0.3}},
		ColorByLife{gradient(
			gk(0, 1.5, 0.8, 0.15, 0.9),
			gk(0.4, 1, 0.35, 0.02, 0.6),
			gk(1, 0.4, 0.08, 0, 0),
		)},
		SizeByLife{curve(
			ck(0, 0.1, InterpLinear),
			ck(0.4, 0.18, InterpEaseOut),
			ck(1, 0.04, InterpEaseIn),
		)},
	}
	tips.Render = billboard("flame_05")

	return NewEffect("Fire", core, body, tips)
}

func presetSmoke() Effect {
	em := layer("Smoke Puff", 256, Rate{20}, AlphaBlend)
	em.Init = []InitModifier{
		SetLifetime{Random(2, 4)},
		sphere(vecZero, Random(0.1, 0.4)),
		radial(0.3, 0.8),
	}
	em.Update = []UpdateModifier{
		gravity(1.2),
		Drag{0.8},
		ColorByLife{gradient(
			gk(0, 0.5, 0.5, 0.5, 0),
			gk(0.1, 0.45, 0.45, 0.45, 0.4),
			gk(0.6, 0.35, 0.35, 0.35, 0.25),
			gk(1, 0.25, 0.25, 0.25, 0),
		)},
		SizeByLife{LinearCurve(0.2, 0.8)},
	}
	em.Render = billboard("smoke_01")
	return NewEffect("Smoke", em)
}

func presetSparks() Effect {
	em := layer("Sparks", 512, Burst{Count: 30, Interval: 0.5}, AlphaAdditive)
	em.Init = []InitModifier{
		SetLifetime{Random(0.3, 0.8)},
		sphere(vecZero, Constant(0.05)),
		radial(3, 8),
	}
	em.Update = []UpdateModifier{
		gravity(-9.8),
		ColorByLife{gradient(
			gk(0, 1, 1, 0.8, 1),
			gk(0.5, 1, 0.7, 0.2, 0.8),
			gk(1, 0.8, 0.2, 0, 0),
		)},
		SizeByLife{LinearCurve(0.04, 0.01)},
	}
	em.Render = billboard("spark_02")
	return NewEffect("Sparks", em)
}

func presetFountain() Effect {
	em := layer("Water", 1024, Rate{100}, AlphaBlend)
	em.Init = []InitModifier{
		SetLifetime{Random(1.5, 3)},
		disc(vecZero, 0.05, 0.15),
		SetVelocity{RadialVelocity{Center: mgl32.Vec3{0, 6, 0}, Speed: Random(0.5, 1.5)}},
	}
	em.Update = []UpdateModifier{
		gravity(-9.8),
		ColorByLife{gradient(
			gk(0, 0.6, 0.85, 1, 0.9),
			gk(0.5, 0.3, 0.6, 1, 0.7),
			gk(1, 0.1, 0.3, 0.8, 0),
		)},
		SizeByLife{curve(
			ck(0, 0.08, InterpLinear),
			ck(0.5, 0.06, InterpLinear),
			ck(1, 0.02, InterpLinear),
		)},
	}
	em.Render = billboard("circle_01")
	return NewEffect("Fountain", em)
}

func presetMagicOrb() Effect {
	em := layer("Orb Particles", 512, Rate{60}, AlphaAdditive)
	em.Init = []InitModifier{
		SetLifetime{Random(1, 2.5)},
		sphere(vecZero, Random(0.3, 0.6)),
		SetVelocity{TangentVelocity{Axis: vecUp, Speed: Random(1, 2)}},
	}
	em.Update = []UpdateModifier{
		RadialAccel{Origin: vecZero, Accel: -2},
		TangentAccel{Origin: vecZero, Axis: vecUp, Accel: 3},
		ColorByLife{gradient(
			gk(0, 0.8, 0.4, 1, 1),
			gk(0.5, 0.4, 0.2, 1, 0.7),
			gk(1, 0.2, 0.05, 0.6, 0),
		)},
		SizeByLife{LinearCurve(0.08, 0.02)},
	}
	em.Render = billboard("magic_01")
	return NewEffect("Magic Orb", em)
}

func presetSnow() Effect {
	em := layer("Snowflakes", 1024, Rate{40}, AlphaBlend)
	em.Init = []InitModifier{
		SetLifetime{Random(4, 8)},
		sphere(mgl32.Vec3{0, 5, 0}, Random(2, 5)),
		radial(0.1, 0.3),
	}
	em.Update = []UpdateModifier{
		gravity(-0.8),
		Drag{2},
		ColorByLife{gradient(
			gk(0, 1, 1, 1, 0),
			gk(0.1, 1, 1, 1, 0.8),
			gk(0.8, 0.9, 0.95, 1, 0.6),
			gk(1, 0.8, 0.9, 1, 0),
		)},
		SizeByLife{LinearCurve(0.04, 0.03)},
	}
	em.Render = billboard("star_01")
	return NewEffect("Snow", em)
}

func presetFireflies() Effect {
	em := layer("Fireflies", 128, Rate{8}, AlphaAdditive)
	em.Init = []InitModifier{
		SetLifetime{Random(3, 6)},
		box(vecZero, mgl32.Vec3{3, 1.5, 3}),
		SetVelocity{RandomVelocity{Speed: Random(0.1, 0.4)}},
	}
	em.Update = []UpdateModifier{
		Noise{Strength: 1.5, Frequency: 0.8, Scroll: mgl32.Vec3{0.3, 0.5, 0.2}},
		Drag{0.5},
		ColorByLife{gradient(
			gk(0, 0.5, 1, 0.3, 0),
			gk(0.15, 0.7, 1, 0.2, 1),
			gk(0.5, 0.4, 0.8, 0.1, 0.6),
			gk(0.85, 0.6, 1, 0.3, 0.8),
			gk(1, 0.3, 0.6, 0.1, 0),
		)},
		SizeByLife{curve(
			ck(0, 0.03, InterpEaseIn),
			ck(0.5, 0.06, InterpEaseOut),
			ck(1, 0.02, InterpLinear),
		)},
	}
	em.Render = billboard("light_01")
	return NewEffect("Fireflies", em)
}

// One-shot explosion: flash, fireball, debris and a lingering smoke cloud.
func presetExplosion() Effect {
	flash := layer("Flash", 8, Once{Count: 4}, AlphaAdditive)
	flash.Init = []InitModifier{
		SetLifetime{Random(0.1, 0.25)},
		SetPosition{PointShape{vecZero}},
		radial(0.5, 1),
		SetSize{Random(0.8, 1.5)},
	}
	flash.Update = []UpdateModifier{
		ColorByLife{gradient(
			gk(0, 4, 3.5, 2, 1),
			gk(0.5, 2, 1, 0.3, 0.5),
			gk(1, 1, 0.3, 0, 0),
		)},
		SizeByLife{curve(ck(0, 0.5, InterpEaseOut), ck(1, 2, InterpLinear))},
	}
	flash.Render = billboard("light_02")

	fireball := layer("Fireball", 64, Once{Count: 20}, AlphaAdditive)
	fireball.Init = []InitModifier{
		SetLifetime{Random(0.3, 0.8)},
		sphere(vecZero, Random(0.1, 0.3)),
		radial(2, 5),
	}
	fireball.Update = []UpdateModifier{
		Drag{3},
		ColorByLife{gradient(
			gk(0, 2, 1.5, 0.5, 1),
			gk(0.3, 1.5, 0.6, 0.1, 0.8),
			gk(0.7, 0.6, 0.1, 0, 0.3),
			gk(1, 0.2, 0.02, 0, 0),
		)},
		SizeByLife{curve(
			ck(0, 0.2, InterpEaseOut),
			ck(0.5, 0.5, InterpLinear),
			ck(1, 0.8, InterpLinear),
		)},
	}
	fireball.Render = billboard("fire_02")

	debris := layer("Debris", 256, Once{Count: 80}, AlphaAdditive)
	debris.Init = []InitModifier{
		SetLifetime{Random(0.5, 1.5)},
		sphere(vecZero, Random(0.05, 0.2)),
		radial(4, 12),
	}
	debris.Update = []UpdateModifier{
		gravity(-9.8),
		Drag{0.5},
		ColorByLife{gradient(
			gk(0, 1, 0.8, 0.3, 1),
			gk(0.3, 1, 0.4, 0.1, 0.9),
			gk(0.7, 0.5, 0.15, 0, 0.5),
			gk(1, 0.2, 0.05, 0, 0),
		)},
		SizeByLife{LinearCurve(0.06, 0.01)},
	}
	debris.Render = billboard("spark_03")

	smoke := layer("Smoke", 64, Once{Count: 20}, AlphaBlend)
	smoke.Init = []InitModifier{
		SetLifetime{Random(1, 3)},
		sphere(vecZero, Random(0.2, 0.5)),
		radial(1, 3),
	}
	smoke.Update = []UpdateModifier{
		gravity(1.5),
		Drag{2},
		ColorByLife{gradient(
			gk(0, 0.4, 0.35, 0.3, 0),
			gk(0.15, 0.35, 0.3, 0.25, 0.5),
			gk(0.6, 0.25, 0.22, 0.2, 0.3),
			gk(1, 0.2, 0.18, 0.15, 0),
		)},
		SizeByLife{curve(ck(0, 0.3, InterpLinear), ck(1, 1.5, InterpEaseOut))},
	}
	smoke.Render = billboard("smoke_04")

	e := NewEffect("Explosion", flash, fireball, debris, smoke)
	e.Duration = 3
	e.Looping = false
	return e
}

func presetRain() Effect {
	em := layer("Raindrops", 2048, Rate{200}, AlphaBlend)
	em.Init = []InitModifier{
		SetLifetime{Random(0.8, 1.5)},
		box(mgl32.Vec3{0, 8, 0}, mgl32.Vec3{6, 0.5, 6}),
		SetVelocity{DirectionalVelocity{
			Direction: mgl32.Vec3{-0.1, -1, 0}.Normalize(),
			Speed:     Random(8, 14),
		}},
		SetSize{Random(0.02, 0.04)},
	}
	em.Update = []UpdateModifier{
		ColorByLife{gradient(
			gk(0, 0.6, 0.7, 0.85, 0),
			gk(0.05, 0.6, 0.7, 0.85, 0.5),
			gk(0.9, 0.5, 0.6, 0.8, 0.4),
			gk(1, 0.4, 0.5, 0.7, 0),
		)},
		SizeBySpeed{MinSpeed: 0, MaxSpeed: 15, MinSize: 0.02, MaxSize: 0.08},
		KillZone{Shape: KillBox{Center: mgl32.Vec3{0, -1, 0}, HalfExtents: mgl32.Vec3{100, 0.5, 100}}},
	}
	r := billboard("circle_01")
	r.Orient = BillboardAlongVelocity
	em.Render = r
	return NewEffect("Rain", em)
}

func presetPortal() Effect {
	ring := layer("Ring", 512, Rate{60}, AlphaAdditive)
	ring.Init = []InitModifier{
		SetLifetime{Random(1.5, 3)},
		disc(vecZero, 0.8, 1.2),
		SetVelocity{TangentVelocity{Axis: vecUp, Speed: Random(1.5, 3)}},
	}
	ring.Update = []UpdateModifier{
		RadialAccel{Origin: vecZero, Accel: -1.5},
		Drag{0.3},
		ColorByLife{gradient(
			gk(0, 0.2, 0.6, 1, 0),
			gk(0.1, 0.3, 0.7, 1, 1),
			gk(0.5, 0.5, 0.3, 1, 0.8),
			gk(1, 0.8, 0.2, 1, 0),
		)},
		SizeByLife{curve(
			ck(0, 0.06, InterpEaseIn),
			ck(0.3, 0.1, InterpLinear),
			ck(1, 0.02, InterpEaseOut),
		)},
	}
	ring.Render = billboard("magic_03")

	glow := layer("Core Glow", 32, Rate{6}, AlphaAdditive)
	glow.Init = []InitModifier{
		SetLifetime{Random(0.5, 1)},
		SetPosition{PointShape{vecZero}},
		SetVelocity{RandomVelocity{Speed: Random(0.05, 0.1)}},
		SetSize{Random(0.5, 0.9)},
	}
	glow.Update = []UpdateModifier{
		ColorByLife{gradient(
			gk(0, 0.6, 0.4, 1, 0),
			gk(0.3, 0.4, 0.5, 1, 0.3),
			gk(1, 0.3, 0.2, 0.8, 0),
		)},
	}
	glow.Render = billboard("light_01")

	return NewEffect("Portal", ring, glow)
}

func presetEmbers() Effect {
	em := layer("Embers", 256, Rate{15}, AlphaAdditive)
	em.Init = []InitModifier{
		SetLifetime{Random(2, 5)},
		box(vecZero, mgl32.Vec3{0.5, 0.1, 0.5}),
		SetVelocity{DirectionalVelocity{Direction: vecUp, Speed: Random(0.3, 1)}},
	}
	em.Update = []UpdateModifier{
		gravity(0.4),
		Noise{Strength: 0.8, Frequency: 0.5, Scroll: mgl32.Vec3{0.2, 0.3, 0.1}},
		Drag{0.3},
		ColorByLife{gradient(
			gk(0, 1, 0.6, 0.1, 1),
			gk(0.3, 1, 0.3, 0, 0.8),
			gk(0.7, 0.6, 0.1, 0, 0.4),
			gk(1, 0.2, 0.02, 0, 0),
		)},
		SizeByLife{curve(
			ck(0, 0.04, InterpLinear),
			ck(0.5, 0.03, InterpLinear),
			ck(1, 0.01, InterpLinear),
		)},
	}
	em.Render = billboard("spark_04")
	return NewEffect("Embers", em)
}

func presetDustMotes() Effect {
	em := layer("Dust", 128, Rate{5}, AlphaBlend)
	em.Init = []InitModifier{
		SetLifetime{Random(5, 10)},
		box(vecZero, mgl32.Vec3{3, 2, 3}),
		SetVelocity{RandomVelocity{Speed: Random(0.02, 0.08)}},
		SetSize{Random(0.01, 0.03)},
	}
	em.Update = []UpdateModifier{
		Noise{Strength: 0.3, Frequency: 0.3, Scroll: mgl32.Vec3{0.1, 0.05, 0.1}},
		ColorByLife{gradient(
			gk(0, 1, 0.95, 0.8, 0),
			gk(0.15, 1, 0.95, 0.8, 0.3),
			gk(0.85, 0.9, 0.85, 0.7, 0.2),
			gk(1, 0.8, 0.75, 0.6, 0),
		)},
	}
	em.Render = billboard("circle_05")
	return NewEffect("Dust Motes", em)
}

func presetFlamethrower() Effect {
	em := layer("Flame Jet", 1024, Rate{150}, AlphaAdditive)
	em.Init = []InitModifier{
		SetLifetime{Random(0.3, 0.7)},
		sphere(vecZero, Random(0.02, 0.08)),
		SetVelocity{ConeVelocity{Direction: mgl32.Vec3{0, 0, 1}, Angle: 0.2, Speed: Random(6, 10)}},
	}
	em.Update = []UpdateModifier{
		gravity(2),
		Drag{1},
		ColorByLife{gradient(
			gk(0, 2, 1.8, 1, 1),
			gk(0.2, 1.5, 0.8, 0.2, 0.9),
			gk(0.5, 1, 0.3, 0, 0.6),
			gk(0.8, 0.4, 0.1, 0, 0.3),
			gk(1, 0.15, 0.05, 0, 0),
		)},
		SizeByLife{curve(
			ck(0, 0.05, InterpLinear),
			ck(0.3, 0.2, InterpEaseOut),
			ck(1, 0.4, InterpLinear),
		)},
		Noise{Strength: 2, Frequency: 2, Scroll: mgl32.Vec3{0, 3, 0}},
	}
	em.Render = billboard("flame_02")
	return NewEffect("Flamethrower", em)
}

func presetHealAura() Effect {
	sparkles := layer("Sparkles", 256, Rate{30}, AlphaAdditive)
	sparkles.Init = []InitModifier{
		SetLifetime{Random(1, 2)},
		disc(vecZero, 0.3, 0.8),
		SetVelocity{DirectionalVelocity{Direction: vecUp, Speed: Random(0.8, 1.5)}},
	}
	sparkles.Update = []UpdateModifier{
		Drag{1},
		OrbitAround{Axis: vecUp, Speed: 2, RadiusDecay: 0.3},
		ColorByLife{gradient(
			gk(0, 0.3, 1, 0.5, 0),
			gk(0.15, 0.4, 1, 0.6, 0.9),
			gk(0.7, 0.2, 0.8, 0.4, 0.5),
			gk(1, 0.1, 0.5, 0.2, 0),
		)},
		SizeByLife{curve(
			ck(0, 0.04, InterpEaseIn),
			ck(0.3, 0.07, InterpLinear),
			ck(1, 0.02, InterpEaseOut),
		)},
	}
	sparkles.Render = billboard("magic_01")

	pulse := layer("Ring Pulse", 64, Rate{8}, AlphaAdditive)
	pulse.Init = []InitModifier{
		SetLifetime{Random(0.8, 1.5)},
		disc(vecZero, 0.6, 1),
		radial(0.3, 0.6),
		SetSize{Random(0.1, 0.2)},
	}
	pulse.Update = []UpdateModifier{
		ColorByLife{gradient(
			gk(0, 0.2, 0.8, 0.3, 0),
			gk(0.2, 0.3, 1, 0.5, 0.4),
			gk(1, 0.1, 0.5, 0.2, 0),
		)},
		SizeByLife{curve(ck(0, 0.1, InterpLinear), ck(1, 0.3, InterpEaseOut))},
	}
	pulse.Render = billboard("light_01")

	return NewEffect("Heal Aura", sparkles, pulse)
}

func presetWaterfall() Effect {
	stream := layer("Water Stream", 2048, Rate{180}, AlphaBlend)
	stream.Init = []InitModifier{
		SetLifetime{Random(1, 2)},
		SetPosition{EdgeShape{Start: mgl32.Vec3{-1, 3, 0}, End: mgl32.Vec3{1, 3, 0}}},
		SetVelocity{DirectionalVelocity{
			Direction: mgl32.Vec3{0, -1, 0.5}.Normalize(),
			Speed:     Random(1, 2.5),
		}},
	}
	stream.Update = []UpdateModifier{
		gravity(-6),
		Noise{Strength: 0.5, Frequency: 1.5, Scroll: mgl32.Vec3{0, -2, 0}},
		ColorByLife{gradient(
			gk(0, 0.7, 0.85, 1, 0.8),
			gk(0.5, 0.5, 0.7, 0.95, 0.6),
			gk(1, 0.3, 0.5, 0.8, 0),
		)},
		SizeByLife{curve(
			ck(0, 0.04, InterpLinear),
			ck(0.3, 0.06, InterpLinear),
			ck(1, 0.08, InterpEaseOut),
		)},
		KillZone{Shape: KillBox{Center: mgl32.Vec3{0, -1, 0}, HalfExtents: mgl32.Vec3{100, 0.3, 100}}},
	}
	stream.Render = billboard("circle_01")

	mist := layer("Mist", 128, Rate{12}, AlphaBlend)
	mist.Init = []InitModifier{
		SetLifetime{Random(1.5, 3)},
		box(mgl32.Vec3{0, -0.5, 0.3}, mgl32.Vec3{1.2, 0.2, 0.5}),
		SetVelocity{DirectionalVelocity{
			Direction: mgl32.Vec3{0, 0.5, 1}.Normalize(),
			Speed:     Random(0.2, 0.6),
		}},
		SetSize{Random(0.3, 0.6)},
	}
	mist.Update = []UpdateModifier{
		Drag{0.5},
		ColorByLife{gradient(
			gk(0, 0.8, 0.9, 1, 0),
			gk(0.2, 0.8, 0.9, 1, 0.2),
			gk(0.7, 0.7, 0.8, 0.9, 0.1),
			gk(1, 0.6, 0.7, 0.8, 0),
		)},
		SizeByLife{curve(ck(0, 0.3, InterpLinear), ck(1, 1, InterpEaseOut))},
	}
	mist.Render = billboard("smoke_01")

	return NewEffect("Waterfall", stream, mist)
}

// Multi-layer campfire: hot core, flames, wisps, embers and smoke.
func presetCampfire() Effect {
	core := layer("Hot Core", 64, Rate{15}, AlphaAdditive)
	core.Init = []InitModifier{
		SetLifetime{Random(0.15, 0.35)},
		disc(vecZero, 0.01, 0.08),
		upCone(0.1, 0.3, 0.8),
	}
	core.Update = []UpdateModifier{
		Drag{3},
		ColorByLife{gradient(
			gk(0, 4, 3.5, 2, 1),
			gk(0.5, 2.5, 1.5, 0.4, 0.8),
			gk(1, 1.5, 0.5, 0, 0),
		)},
		SizeByLife{curve(
			ck(0, 0.12, InterpEaseOut),
			ck(0.4, 0.18, InterpLinear),
			ck(1, 0.06, InterpEaseIn),
		)},
	}
	core.Render = billboard("fire_01")

	flames := layer("Flames", 256, Rate{45}, AlphaAdditive)
	flames.Init = []InitModifier{
		SetLifetime{Random(0.4, 0.9)},
		disc(vecZero, 0.04, 0.18),
		upCone(0.3, 1, 2.5),
	}
	flames.Update = []UpdateModifier{
		gravity(1.5),
		Drag{2},
		Noise{Strength: 1, Frequency: 3, Scroll: mgl32.Vec3{0, 2, 0}},
		ColorByLife{gradient(
			gk(0, 1.5, 1, 0.3, 1),
			gk(0.2, 1.2, 0.6, 0.12, 0.9),
			gk(0.6, 0.8, 0.2, 0, 0.5),
			gk(1, 0.3, 0.05, 0, 0),
		)},
		SizeByLife{curve(
			ck(0, 0.1, InterpLinear),
			ck(0.3, 0.2, InterpEaseOut),
			ck(1, 0.05, InterpEaseIn),
		)},
	}
	flames.Render = billboard("flame_03")

	wisps := layer("Flame Wisps", 128, Rate{18}, AlphaAdditive)
	wisps.Init = []InitModifier{
		SetLifetime{Random(0.3, 0.7)},
		disc(mgl32.Vec3{0, 0.05, 0}, 0.02, 0.12),
		upCone(0.25, 1.5, 3),
	}
	wisps.Update = []UpdateModifier{
		gravity(1),
		Drag{1.8},
		Noise{Strength: 0.7, Frequency: 2.5, Scroll: mgl32.Vec3{0.2, 3, 0.2}},
		ColorByLife{gradient(
			gk(0, 1.2, 0.7, 0.1, 0.8),
			gk(0.4, 0.9, 0.3, 0.02, 0.5),
			gk(1, 0.3, 0.06, 0, 0),
		)},
		SizeByLife{curve(
			ck(0, 0.08, InterpLinear),
			ck(0.3, 0.14, InterpEaseOut),
			ck(1, 0.03, InterpEaseIn),
		)},
	}
	wisps.Render = billboard("flame_06")

	embers := layer("Embers", 128, Rate{8}, AlphaAdditive)
	embers.Init = []InitModifier{
		SetLifetime{Random(2, 4)},
		sphere(mgl32.Vec3{0, 0.3, 0}, Random(0.1, 0.3)),
		upCone(0.5, 0.5, 1.5),
	}
	embers.Update = []UpdateModifier{
		gravity(0.3),
		Noise{Strength: 0.6, Frequency: 0.5, Scroll: mgl32.Vec3{0.1, 0.3, 0.1}},
		Drag{0.2},
		ColorByLife{gradient(
			gk(0, 1, 0.5, 0, 1),
			gk(0.5, 0.8, 0.2, 0, 0.6),
			gk(1, 0.3, 0.05, 0, 0),
		)},
		SizeByLife{LinearCurve(0.03, 0.01)},
	}
	embers.Render = billboard("spark_04")

	smoke := layer("Smoke", 64, Rate{6}, AlphaBlend)
	smoke.Init = []InitModifier{
		SetLifetime{Random(3, 5)},
		sphere(mgl32.Vec3{0, 0.5, 0}, Random(0.1, 0.3)),
		SetVelocity{DirectionalVelocity{Direction: vecUp, Speed: Random(0.3, 0.6)}},
		SetSize{Random(0.2, 0.4)},
	}
	smoke.Update = []UpdateModifier{
		gravity(0.5),
		Drag{0.6},
		Noise{Strength: 0.3, Frequency: 0.4, Scroll: mgl32.Vec3{0.1, 0.2, 0.1}},
		ColorByLife{gradient(
			gk(0, 0.3, 0.28, 0.25, 0),
			gk(0.1, 0.3, 0.28, 0.25, 0.25),
			gk(0.5, 0.25, 0.23, 0.2, 0.15),
			gk(1, 0.2, 0.18, 0.15, 0),
		)},
		SizeByLife{curve(ck(0, 0.2, InterpLinear), ck(1, 0.8, InterpEaseOut))},
	}
	smoke.Render = billboard("smoke_07")

	return NewEffect("Campfire", core, flames, wisps, embers, smoke)
}

// Rock debris: small cubes flung outward. The mesh collides, so motion is
// left to the physics integration.
func presetRockDebris() Effect {
	em := layer("Debris", 64, Burst{Count: 15, Interval: 1.5}, AlphaOpaque)
	em.Init = []InitModifier{
		SetLifetime{Random(1, 2.5)},
		sphere(vecZero, Constant(0.2)),
		radial(3, 8),
		SetSize{Random(0.08, 0.2)},
		SetOrientation{OrientRandomFull},
	}
	em.Update = []UpdateModifier{
		gravity(-9.8),
		Drag{0.3},
		SizeByLife{curve(ck(0, 1, InterpLinear), ck(1, 0.6, InterpEaseIn))},
		Spin{Axis: mgl32.Vec3{1, 0.5, 0.2}, Speed: 3},
	}
	mesh := DefaultMesh()
	mesh.BaseColor = Color{0.35, 0.3, 0.25, 1}
	mesh.Collide = true
	em.Render = mesh
	return NewEffect("Rock Debris", em)
}
