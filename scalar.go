package vfx

// Rand is a uniform [0,1) random source. *rand.Rand from math/rand/v2
// satisfies it.
type Rand interface {
	Float32() float32
}

// ScalarRange is either a constant or a uniform random range.
// Construct it with Constant or Random.
type ScalarRange struct {
	Lo, Hi float32
	// IsRandom distinguishes Random(v, v) from Constant(v) so the authored
	// form survives serialization.
	IsRandom bool
}

// Constant returns a ScalarRange that always samples v.
func Constant(v float32) ScalarRange {
	return ScalarRange{Lo: v, Hi: v}
}

// Random returns a ScalarRange sampling uniformly between lo and hi.
// lo > hi is accepted; samples then fall in [hi, lo].
func Random(lo, hi float32) ScalarRange {
	return ScalarRange{Lo: lo, Hi: hi, IsRandom: true}
}

// Sample draws one value. Constant ranges do not consume entropy.
func (r ScalarRange) Sample(rng Rand) float32 {
	if !r.IsRandom {
		return r.Lo
	}
	return r.Lo + (r.Hi-r.Lo)*rng.Float32()
}

// Min returns v for Constant and lo for Random.
func (r ScalarRange) Min() float32 { return r.Lo }

// Max returns v for Constant and hi for Random.
func (r ScalarRange) Max() float32 {
	if !r.IsRandom {
		return r.Lo
	}
	return r.Hi
}

// Mid returns the center of the range.
func (r ScalarRange) Mid() float32 {
	return (r.Min() + r.Max()) * 0.5
}
