package ecs

import (
	"context"
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/phanxgames/vfx"
	"github.com/yohamta/donburi"
)

func burstEffect(looping bool) vfx.Effect {
	em := vfx.DefaultEmitter()
	em.Spawn = vfx.Once{Count: 3}
	em.Init = []vfx.InitModifier{vfx.SetLifetime{Lifetime: vfx.Constant(0.25)}}
	em.Update = nil
	e := vfx.NewEffect("burst", em)
	e.Looping = looping
	e.Duration = 0.1
	return e
}

func TestSpawn(t *testing.T) {
	world := donburi.NewWorld()
	e, err := Spawn(world, burstEffect(false), mgl32.Vec3{1, 2, 3}, vfx.InstanceConfig{Seed: 1})
	if err != nil {
		t.Fatalf("Spawn: %v", err)
	}
	entry := world.Entry(e)
	fx := EffectComponent.Get(entry)
	if fx.Instance == nil {
		t.Fatal("Instance is nil")
	}
	if !fx.AutoRemove {
		t.Error("non-looping effect should auto-remove")
	}
	if got := TransformComponent.Get(entry).Position; got != (mgl32.Vec3{1, 2, 3}) {
		t.Errorf("Position = %v, want [1 2 3]", got)
	}
}

func TestSpawnInvalidEffect(t *testing.T) {
	world := donburi.NewWorld()
	if _, err := Spawn(world, vfx.Effect{Name: "empty"}, mgl32.Vec3{}, vfx.InstanceConfig{}); err == nil {
		t.Error("expected error for effect without emitters")
	}
	if n := world.Len(); n != 0 {
		t.Errorf("world has %d entities, want 0", n)
	}
}

func TestSystemFinishesAndRemoves(t *testing.T) {
	world := donburi.NewWorld()
	e, err := Spawn(world, burstEffect(false), mgl32.Vec3{}, vfx.InstanceConfig{Seed: 7})
	if err != nil {
		t.Fatal(err)
	}

	var finished []Finished
	FinishedEventType.Subscribe(world, func(w donburi.World, f Finished) {
		finished = append(finished, f)
	})

	sys := NewSystem()
	ctx := context.Background()
	if err := sys.Update(ctx, world, 0.05); err != nil {
		t.Fatal(err)
	}
	if n := EffectComponent.Get(world.Entry(e)).Instance.AliveCount(); n != 3 {
		t.Fatalf("alive after first tick = %d, want 3", n)
	}

	for i := 0; i < 10 && world.Valid(e); i++ {
		if err := sys.Update(ctx, world, 0.05); err != nil {
			t.Fatal(err)
		}
	}
	FinishedEventType.ProcessEvents(world)

	if world.Valid(e) {
		t.Error("entity should be removed once done")
	}
	if len(finished) != 1 {
		t.Fatalf("got %d Finished events, want 1", len(finished))
	}
	if finished[0].Entity != e || finished[0].Name != "burst" {
		t.Errorf("Finished = %+v", finished[0])
	}
}

func TestSystemKeepsLoopingEffects(t *testing.T) {
	world := donburi.NewWorld()
	e, err := Spawn(world, burstEffect(true), mgl32.Vec3{}, vfx.InstanceConfig{})
	if err != nil {
		t.Fatal(err)
	}
	sys := NewSystem()
	for range 20 {
		if err := sys.Update(context.Background(), world, 0.05); err != nil {
			t.Fatal(err)
		}
	}
	if !world.Valid(e) {
		t.Error("looping effect should stay alive")
	}
}

func TestInputsFromTransform(t *testing.T) {
	world := donburi.NewWorld()
	e, err := Spawn(world, burstEffect(true), mgl32.Vec3{}, vfx.InstanceConfig{})
	if err != nil {
		t.Fatal(err)
	}
	entry := world.Entry(e)

	in := inputs(entry, 0.5)
	if in.DistanceDelta != 0 || in.Velocity != (mgl32.Vec3{}) {
		t.Errorf("first inputs = %+v, want zero motion", in)
	}

	TransformComponent.Get(entry).Position = mgl32.Vec3{3, 4, 0}
	in = inputs(entry, 0.5)
	if math.Abs(float64(in.DistanceDelta-5)) > 1e-5 {
		t.Errorf("DistanceDelta = %v, want 5", in.DistanceDelta)
	}
	if want := (mgl32.Vec3{6, 8, 0}); !in.Velocity.ApproxEqual(want) {
		t.Errorf("Velocity = %v, want %v", in.Velocity, want)
	}
	if in.Position != (mgl32.Vec3{3, 4, 0}) {
		t.Errorf("Position = %v, want [3 4 0]", in.Position)
	}
}
