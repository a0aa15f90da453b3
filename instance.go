package vfx

import (
	"context"
	"fmt"
	"math"
	"reflect"
	"sync"

	"github.com/go-gl/mathgl/mgl32"
)

// InstanceConfig configures an EffectInstance.
type InstanceConfig struct {
	// Seed makes every particle of the instance reproducible.
	Seed uint32
	// Dispatcher runs the tick pass. Nil uses a default Dispatcher.
	Dispatcher *Dispatcher
}

// EmitterInstance is the runtime state of one emitter: its spawn accounting,
// particle pool and double-buffered parameter block.
type EmitterInstance struct {
	def   *Emitter
	index int
	seed  uint32
	// serial counts births and feeds per-particle seeds.
	serial uint32

	spawn SpawnState
	pool  *particlePool

	enabled        bool
	pendingEnabled bool

	blocks   [2]*ParameterBlock
	front    int
	pipeline *Pipeline
	packed   Emitter
	packs    int

	requested uint32
	spawned   uint32
	uvOffset  [2]float32
}

// Name returns the emitter's authored name.
func (em *EmitterInstance) Name() string { return em.def.Name }

// Def returns the authored emitter this instance runs.
func (em *EmitterInstance) Def() *Emitter { return em.def }

// Particles returns the live particles. The slice is valid until the next
// tick and must not be modified.
func (em *EmitterInstance) Particles() []Particle { return em.pool.live() }

// AliveCount returns the number of live particles.
func (em *EmitterInstance) AliveCount() int { return em.pool.alive }

// Requested returns the unclamped spawn count of the last tick.
func (em *EmitterInstance) Requested() uint32 { return em.requested }

// Spawned returns how many particles were born on the last tick.
func (em *EmitterInstance) Spawned() uint32 { return em.spawned }

// SpawnState returns a copy of the spawn accounting state.
func (em *EmitterInstance) SpawnState() SpawnState { return em.spawn }

// Enabled reports whether the emitter spawned on the last tick boundary.
func (em *EmitterInstance) Enabled() bool { return em.enabled }

// Block returns the parameter block the last dispatch read.
func (em *EmitterInstance) Block() *ParameterBlock { return em.blocks[em.front] }

// Packs returns how many times the emitter's parameter block was built.
func (em *EmitterInstance) Packs() int { return em.packs }

// UVOffset returns the emitter-shared UV scroll offset in [0,1).
func (em *EmitterInstance) UVOffset() [2]float32 { return em.uvOffset }

// packKey is the part of an emitter that ends up in its parameter block.
func packKey(def *Emitter) Emitter {
	k := *def
	k.Name = ""
	k.Enabled = false
	k.Spawn = nil
	return k
}

// EffectInstance is a live, ticking copy of an Effect.
type EffectInstance struct {
	mu      sync.Mutex
	effect  Effect
	pending *pendingSwap

	emitters   []*EmitterInstance
	dispatcher *Dispatcher
	seed       uint32

	elapsed float32
	active  bool
	inputs  EmitterInputs
}

// pendingSwap is a packed configuration waiting for the next tick boundary.
type pendingSwap struct {
	effect Effect
	// blocks[i] is nil when emitter i kept its packed configuration.
	blocks []*ParameterBlock
}

// NewEffectInstance validates and packs effect and returns an active
// instance. Packing errors surface here, never from Tick.
func NewEffectInstance(effect Effect, cfg InstanceConfig) (*EffectInstance, error) {
	if err := effect.Validate(); err != nil {
		return nil, err
	}
	d := cfg.Dispatcher
	if d == nil {
		d = NewDispatcher(DispatchConfig{})
	}
	fx := &EffectInstance{
		effect:     effect,
		dispatcher: d,
		seed:       cfg.Seed,
		active:     true,
	}
	for i := range fx.effect.Emitters {
		def := &fx.effect.Emitters[i]
		b, err := Pack(def)
		if err != nil {
			return nil, err
		}
		fx.emitters = append(fx.emitters, fx.newEmitter(i, def, b))
	}
	return fx, nil
}

func (fx *EffectInstance) newEmitter(i int, def *Emitter, b *ParameterBlock) *EmitterInstance {
	em := &EmitterInstance{
		def:            def,
		index:          i,
		seed:           emitterSeed(fx.seed, i),
		pool:           newParticlePool(def.Capacity),
		enabled:        def.Enabled,
		pendingEnabled: def.Enabled,
		packed:         packKey(def),
		packs:          1,
	}
	em.install(b)
	return em
}

// install makes b the front block. The previous front stays in the other
// slot until the next install overwrites it.
func (em *EmitterInstance) install(b *ParameterBlock) {
	if em.blocks[em.front] != nil {
		em.front ^= 1
	}
	em.blocks[em.front] = b
	// Pack already validated the mask.
	em.pipeline, _ = SelectPipeline(b.Uniforms.Mask)
}

// Effect returns the authored effect currently running.
func (fx *EffectInstance) Effect() *Effect { return &fx.effect }

// Emitters returns the emitter instances in draw order.
func (fx *EffectInstance) Emitters() []*EmitterInstance { return fx.emitters }

// Emitter returns the emitter instance with the given name, or nil.
func (fx *EffectInstance) Emitter(name string) *EmitterInstance {
	for _, em := range fx.emitters {
		if em.def.Name == name {
			return em
		}
	}
	return nil
}

// Elapsed returns the effect time since activation or the last loop.
func (fx *EffectInstance) Elapsed() float32 { return fx.elapsed }

// AliveCount returns the live particle count over all emitters.
func (fx *EffectInstance) AliveCount() int {
	n := 0
	for _, em := range fx.emitters {
		n += em.pool.alive
	}
	return n
}

// IsActive reports whether the instance is still spawning.
func (fx *EffectInstance) IsActive() bool { return fx.active }

// Done reports whether the instance stopped spawning and every particle died.
func (fx *EffectInstance) Done() bool {
	return !fx.active && fx.AliveCount() == 0
}

// Stop stops spawning. Live particles continue until they die.
func (fx *EffectInstance) Stop() { fx.active = false }

// Restart kills all particles and resets every emitter to its activation
// state, then resumes spawning.
func (fx *EffectInstance) Restart() {
	fx.elapsed = 0
	fx.active = true
	for _, em := range fx.emitters {
		em.spawn.Reset()
		em.pool.reset()
		em.serial = 0
		em.requested, em.spawned = 0, 0
		em.uvOffset = [2]float32{}
	}
}

// SetEnabled enables or disables the named emitter from the next tick
// boundary on. Live particles are unaffected. It reports whether the
// emitter exists.
func (fx *EffectInstance) SetEnabled(name string, enabled bool) bool {
	fx.mu.Lock()
	defer fx.mu.Unlock()
	for _, em := range fx.emitters {
		if em.def.Name == name {
			em.pendingEnabled = enabled
			return true
		}
	}
	return false
}

// SetEffect replaces the authored effect. Emitters whose packed
// configuration changed are re-packed into their back buffer now; the new
// blocks take over at the next tick boundary. SetEffect may run concurrently
// with Tick. Emitters are matched by index; runtime state of surviving
// emitters is kept.
func (fx *EffectInstance) SetEffect(effect Effect) error {
	if err := effect.Validate(); err != nil {
		return err
	}
	fx.mu.Lock()
	defer fx.mu.Unlock()

	p := &pendingSwap{effect: effect, blocks: make([]*ParameterBlock, len(effect.Emitters))}
	for i := range p.effect.Emitters {
		def := &p.effect.Emitters[i]
		if i < len(fx.emitters) && reflect.DeepEqual(packKey(def), fx.emitters[i].packed) {
			continue
		}
		b, err := Pack(def)
		if err != nil {
			return err
		}
		p.blocks[i] = b
	}
	fx.pending = p
	return nil
}

// Tick advances the instance by dt: extract, prepare, select, dispatch.
// The only error is ctx cancellation, which is checked once before any state
// changes. A tick that has started always runs to completion.
func (fx *EffectInstance) Tick(ctx context.Context, dt float32, in EmitterInputs) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("vfx: tick: %w", err)
	}
	if dt < 0 || dt != dt {
		dt = 0
	}
	snap := fx.extract(dt, in)
	fx.prepare(snap)
	ctx = context.WithoutCancel(ctx)
	for _, em := range fx.emitters {
		pl, b := fx.selectPipeline(em)
		if err := fx.dispatcher.Dispatch(ctx, pl, b, em.pool.live(), dt); err != nil {
			return fmt.Errorf("vfx: dispatch emitter %q: %w", em.def.Name, err)
		}
		em.pool.compact()
		scrollUV(em, b, dt)
	}
	return nil
}

// emitterSnapshot is what extract hands to prepare for one emitter.
type emitterSnapshot struct {
	births uint32
}

// extract applies the tick boundary (pending configuration, enabled latch,
// duration) and runs the spawn accountant for every emitter in order.
func (fx *EffectInstance) extract(dt float32, in EmitterInputs) []emitterSnapshot {
	fx.mu.Lock()
	fx.applyPending()
	for _, em := range fx.emitters {
		em.enabled = em.pendingEnabled
	}
	fx.mu.Unlock()

	fx.inputs = in
	fx.elapsed += dt
	if d := fx.effect.Duration; d > 0 && fx.elapsed >= d {
		if fx.effect.Looping {
			fx.elapsed = float32(math.Mod(float64(fx.elapsed), float64(d)))
			for _, em := range fx.emitters {
				em.spawn.Reset()
			}
		} else {
			fx.active = false
		}
	}

	snap := make([]emitterSnapshot, len(fx.emitters))
	for i, em := range fx.emitters {
		em.requested, em.spawned = 0, 0
		if !fx.active || !em.enabled {
			continue
		}
		em.requested = em.spawn.Tick(em.def.Spawn, dt, in.DistanceDelta)
		snap[i].births = ClampToCapacity(em.requested, uint32(em.pool.alive), em.def.Capacity)
	}
	return snap
}

// applyPending swaps in a configuration staged by SetEffect. Caller holds mu.
func (fx *EffectInstance) applyPending() {
	p := fx.pending
	if p == nil {
		return
	}
	fx.pending = nil
	fx.effect = p.effect

	emitters := make([]*EmitterInstance, len(fx.effect.Emitters))
	for i := range fx.effect.Emitters {
		def := &fx.effect.Emitters[i]
		if i >= len(fx.emitters) {
			emitters[i] = fx.newEmitter(i, def, p.blocks[i])
			continue
		}
		em := fx.emitters[i]
		em.def = def
		em.pendingEnabled = def.Enabled
		if b := p.blocks[i]; b != nil {
			em.install(b)
			em.packed = packKey(def)
			em.packs++
			em.pool.capacity = int(def.Capacity)
			em.pool.alive = min(em.pool.alive, em.pool.capacity)
		}
		emitters[i] = em
	}
	fx.emitters = emitters
}

// prepare births this tick's particles. Births run single-threaded in
// emitter order so seeds are assigned deterministically.
func (fx *EffectInstance) prepare(snap []emitterSnapshot) {
	for i, em := range fx.emitters {
		for range snap[i].births {
			p := Birth(em.def, particleSeed(em.seed, em.serial), fx.inputs)
			em.serial++
			if !em.pool.spawn(p) {
				break
			}
			em.spawned++
		}
	}
}

// selectPipeline returns the compute variant and front block for em.
func (fx *EffectInstance) selectPipeline(em *EmitterInstance) (*Pipeline, *ParameterBlock) {
	return em.pipeline, em.blocks[em.front]
}

func scrollUV(em *EmitterInstance, b *ParameterBlock, dt float32) {
	for i := range em.uvOffset {
		v := em.uvOffset[i] + b.Uniforms.UVScroll[i]*dt
		em.uvOffset[i] = v - float32(math.Floor(float64(v)))
	}
}

// WorldPosition returns a particle's position in world space, resolving
// SimLocal against the emitter position of the last tick.
func (fx *EffectInstance) WorldPosition(em *EmitterInstance, p *Particle) mgl32.Vec3 {
	if em.def.SimSpace == SimLocal {
		return p.Position.Add(fx.inputs.Position)
	}
	return p.Position
}
