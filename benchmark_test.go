package vfx

import (
	"context"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

// setupBenchInstance ticks effect until its pools are warm.
func setupBenchInstance(b *testing.B, e Effect, lanes int) *EffectInstance {
	b.Helper()
	fx, err := NewEffectInstance(e, InstanceConfig{
		Seed:       1,
		Dispatcher: NewDispatcher(DispatchConfig{Lanes: lanes}),
	})
	if err != nil {
		b.Fatal(err)
	}
	for range 200 {
		if err := fx.Tick(context.Background(), 1.0/60.0, EmitterInputs{}); err != nil {
			b.Fatal(err)
		}
	}
	return fx
}

func benchTick(b *testing.B, fx *EffectInstance) {
	ctx := context.Background()
	b.ReportAllocs()
	b.ResetTimer()
	for b.Loop() {
		if err := fx.Tick(ctx, 1.0/60.0, EmitterInputs{}); err != nil {
			b.Fatal(err)
		}
	}
}

// --- Tick Benchmarks ---

func BenchmarkTick_Fire(b *testing.B) {
	benchTick(b, setupBenchInstance(b, Presets()[0], 0))
}

func BenchmarkTick_Campfire(b *testing.B) {
	benchTick(b, setupBenchInstance(b, Presets()[15], 0))
}

func benchDense(n uint32) Effect {
	em := DefaultEmitter()
	em.Capacity = n
	em.Spawn = Rate{PerSecond: float32(n)}
	em.Init = []InitModifier{
		SetLifetime{Random(0.5, 1.5)},
		SetPosition{SphereShape{Radius: Random(0, 1)}},
		SetVelocity{RandomVelocity{Speed: Random(1, 3)}},
	}
	em.Update = []UpdateModifier{
		Gravity{mgl32.Vec3{0, -9.8, 0}},
		Drag{0.5},
		Noise{Strength: 2, Frequency: 1},
		ColorByLife{FadeOutGradient(ColorWhite)},
		SizeByLife{FadeOutCurve()},
	}
	return NewEffect("dense", em)
}

func BenchmarkTick_10000_OneLane(b *testing.B) {
	benchTick(b, setupBenchInstance(b, benchDense(10000), 1))
}

func BenchmarkTick_10000_Lanes(b *testing.B) {
	benchTick(b, setupBenchInstance(b, benchDense(10000), 0))
}

// --- Pack Benchmarks ---

func BenchmarkPack_Campfire(b *testing.B) {
	e := Presets()[15]
	b.ReportAllocs()
	for b.Loop() {
		for i := range e.Emitters {
			if _, err := Pack(&e.Emitters[i]); err != nil {
				b.Fatal(err)
			}
		}
	}
}

func BenchmarkBirth(b *testing.B) {
	em := benchDense(1).Emitters[0]
	var seed uint32
	for b.Loop() {
		Birth(&em, seed, EmitterInputs{})
		seed++
	}
}
