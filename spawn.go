package vfx

import "math"

// SpawnState is the per-emitter-instance accounting record. It is owned by a
// single EmitterInstance and mutated only by Tick.
type SpawnState struct {
	// ElapsedSinceLastSpawn accumulates post-offset time for Burst.
	ElapsedSinceLastSpawn float32
	CycleCount            uint32
	// ActivationTime is the time since the instance was activated.
	ActivationTime      float32
	DistanceAccumulator float32
	RateCarry           float32
	Fired               bool
}

// Reset returns the state to its activation values.
func (s *SpawnState) Reset() {
	*s = SpawnState{}
}

// Tick advances the state by dt and returns how many particles the policy
// requests this tick. distanceDelta is the emitter's travel since the last
// tick and is only read by Distance. The result is not yet clamped to
// capacity; see ClampToCapacity.
func (s *SpawnState) Tick(policy SpawnPolicy, dt, distanceDelta float32) uint32 {
	if dt < 0 || dt != dt {
		dt = 0
	}
	prev := s.ActivationTime
	s.ActivationTime += dt

	switch p := policy.(type) {
	case Rate:
		if p.PerSecond <= 0 {
			return 0
		}
		s.RateCarry += p.PerSecond * dt
		n := float32(math.Floor(float64(s.RateCarry)))
		s.RateCarry -= n
		return uint32(n)

	case Burst:
		if s.ActivationTime < p.Offset {
			return 0
		}
		// Only the part of this tick past the offset counts toward the
		// first interval.
		if prev >= p.Offset {
			s.ElapsedSinceLastSpawn += dt
		} else {
			s.ElapsedSinceLastSpawn += s.ActivationTime - p.Offset
		}
		if p.Interval <= 0 {
			return 0
		}
		var n uint32
		for s.ElapsedSinceLastSpawn >= p.Interval {
			if p.MaxCycles != nil && s.CycleCount >= *p.MaxCycles {
				break
			}
			s.ElapsedSinceLastSpawn -= p.Interval
			n += p.Count
			s.CycleCount++
		}
		return n

	case Once:
		if s.Fired || s.ActivationTime < p.Offset {
			return 0
		}
		s.Fired = true
		return p.Count

	case Distance:
		if distanceDelta > 0 {
			s.DistanceAccumulator += distanceDelta
		}
		if p.Spacing <= 0 {
			return 0
		}
		n := float32(math.Floor(float64(s.DistanceAccumulator / p.Spacing)))
		s.DistanceAccumulator -= n * p.Spacing
		return uint32(n)
	}
	return 0
}

// ClampToCapacity limits a spawn request so live+n never exceeds capacity.
// The excess is dropped, never carried to a later tick.
func ClampToCapacity(requested, live, capacity uint32) uint32 {
	if live >= capacity {
		return 0
	}
	return min(requested, capacity-live)
}
