package ecs

import (
	"context"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/phanxgames/vfx"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
	"github.com/yohamta/donburi/filter"
)

// Effect is the component holding a live effect instance.
type Effect struct {
	Instance *vfx.EffectInstance
	// AutoRemove removes the entity once the instance is done.
	AutoRemove bool
}

// Transform is the emitter frame of an effect entity. Game code writes
// Position; the system derives the emitter velocity and travel distance from
// its change between ticks.
type Transform struct {
	Position mgl32.Vec3

	prev    mgl32.Vec3
	hasPrev bool
}

// Finished is published when an effect has stopped spawning and its last
// particle died.
type Finished struct {
	Entity donburi.Entity
	Name   string
}

var (
	// EffectComponent stores the Effect of an entity.
	EffectComponent = donburi.NewComponentType[Effect]()
	// TransformComponent stores the emitter frame. Entities without one
	// emit at the origin.
	TransformComponent = donburi.NewComponentType[Transform]()
	// FinishedEventType is published once per finished effect. Subscribe to
	// it and call ProcessEvents to receive the events.
	FinishedEventType = events.NewEventType[Finished]()
)

// Spawn creates an entity running effect at pos.
func Spawn(world donburi.World, effect vfx.Effect, pos mgl32.Vec3, cfg vfx.InstanceConfig) (donburi.Entity, error) {
	fx, err := vfx.NewEffectInstance(effect, cfg)
	if err != nil {
		return donburi.Null, err
	}
	e := world.Create(EffectComponent, TransformComponent)
	entry := world.Entry(e)
	donburi.SetValue(entry, EffectComponent, Effect{Instance: fx, AutoRemove: !effect.Looping})
	donburi.SetValue(entry, TransformComponent, Transform{Position: pos})
	return e, nil
}

// System ticks every effect entity of a world.
type System struct {
	query *donburi.Query
	// finished holds entities already reported, so Finished fires once.
	finished map[donburi.Entity]bool
}

// NewSystem creates a System.
func NewSystem() *System {
	return &System{
		query:    donburi.NewQuery(filter.Contains(EffectComponent)),
		finished: make(map[donburi.Entity]bool),
	}
}

// Update advances every effect by dt. Done effects publish Finished and,
// when AutoRemove is set, are removed from the world after the pass.
func (s *System) Update(ctx context.Context, world donburi.World, dt float32) error {
	var (
		firstErr error
		remove   []donburi.Entity
	)
	s.query.Each(world, func(entry *donburi.Entry) {
		if firstErr != nil {
			return
		}
		fx := EffectComponent.Get(entry)
		if fx.Instance == nil {
			return
		}
		in := inputs(entry, dt)
		if err := fx.Instance.Tick(ctx, dt, in); err != nil {
			firstErr = err
			return
		}
		e := entry.Entity()
		if !fx.Instance.Done() {
			delete(s.finished, e)
			return
		}
		if !s.finished[e] {
			s.finished[e] = true
			FinishedEventType.Publish(world, Finished{Entity: e, Name: fx.Instance.Effect().Name})
		}
		if fx.AutoRemove {
			remove = append(remove, e)
		}
	})
	for _, e := range remove {
		delete(s.finished, e)
		world.Remove(e)
	}
	return firstErr
}

func inputs(entry *donburi.Entry, dt float32) vfx.EmitterInputs {
	if !entry.HasComponent(TransformComponent) {
		return vfx.EmitterInputs{}
	}
	tr := TransformComponent.Get(entry)
	in := vfx.EmitterInputs{Position: tr.Position}
	if tr.hasPrev {
		delta := tr.Position.Sub(tr.prev)
		in.DistanceDelta = delta.Len()
		if dt > 0 {
			in.Velocity = delta.Mul(1 / dt)
		}
	}
	tr.prev = tr.Position
	tr.hasPrev = true
	return in
}
