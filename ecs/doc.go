// Package ecs runs vfx effects inside a [Donburi] world.
//
// Each effect entity carries an [EffectComponent] and a [TransformComponent].
// A [System] ticks them, feeds the emitter position, velocity and travel
// distance from the transform, and publishes [Finished] events.
//
// Usage:
//
//	sys := ecs.NewSystem()
//	ecs.Spawn(world, effect, pos, vfx.InstanceConfig{Seed: 1})
//	// every frame:
//	sys.Update(ctx, world, dt)
//	ecs.FinishedEventType.ProcessEvents(world)
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
