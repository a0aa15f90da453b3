// Package vfx is a declarative particle effect core for [Ebitengine] games.
//
// An [Effect] is plain data: a list of [Emitter] values, each with a spawn
// policy, an init stack run once per particle at birth, an update stack run
// every tick, and a render description handed to the renderer untouched.
// An [EffectInstance] is a live, ticking copy of an Effect.
//
// # Quick start
//
//	lib := vfx.DefaultLibrary()
//	fire, _ := lib.Lookup("Fire")
//	fx, err := vfx.NewEffectInstance(fire, vfx.InstanceConfig{Seed: 1})
//	if err != nil {
//		// invalid effect or unknown modifier
//	}
//	// every frame:
//	fx.Tick(ctx, dt, vfx.EmitterInputs{Position: pos})
//	for _, em := range fx.Emitters() {
//		for _, p := range em.Particles() {
//			// draw p with em.Def().Render and em.Def().AlphaMode
//		}
//	}
//
// # Authoring
//
// Spawn policies are [Rate], [Burst], [Once] and [Distance]. Init modifiers
// ([SetLifetime], [SetPosition], [SetVelocity], ...) run in authored order
// and each writes only the particle fields it owns. Update modifiers
// ([Gravity], [Drag], [Noise], [KillZone], [ColorByLife], ...) run in
// authored order every tick; a kill stops the rest of the stack for that
// particle.
//
// Values that vary per particle are a [ScalarRange]. Values that vary over a
// particle's life are a [Curve] or [Gradient] sampled at normalized age.
//
// # Ticking
//
// Each tick runs four phases: extract (tick boundary, spawn accounting),
// prepare (births), select (pick the compute variant for the emitter's
// [VariantMask]) and dispatch (step every live particle). Births are
// single-threaded and seeded per particle, so results are reproducible for a
// given [InstanceConfig.Seed] regardless of how many lanes the [Dispatcher]
// uses.
//
// Emitter configuration is packed into an immutable [ParameterBlock] at
// build time. [EffectInstance.SetEffect] re-packs only emitters whose packed
// configuration changed, into a back buffer that swaps in at the next tick.
//
// # Drawing
//
// The core stops at per-particle state. The render subpackage projects an
// EffectInstance through an orthographic camera and draws it onto an
// ebiten.Image, one triangle batch per emitter.
//
// # Storage
//
// Effects encode to YAML with [MarshalEffect] and [UnmarshalEffect]. A
// [Library] holds named effects and reads and writes whole collections; the
// store subpackage persists a Library in the per-user data directory.
//
// [Ebitengine]: https://ebitengine.org
package vfx
