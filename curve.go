package vfx

import (
	"cmp"
	"fmt"
	"log"
	"slices"
	"sort"

	"github.com/tanema/gween/ease"
)

// Interp is the easing applied from a key to the next one.
type Interp uint8

const (
	InterpLinear    Interp = iota // s
	InterpEaseIn                  // s²
	InterpEaseOut                 // 1-(1-s)²
	InterpEaseInOut               // quadratic in, then out
	InterpConstant                // hold the key's value until the next key
)

var interpNames = [...]string{"Linear", "EaseIn", "EaseOut", "EaseInOut", "Constant"}

func (i Interp) String() string {
	if int(i) < len(interpNames) {
		return interpNames[i]
	}
	return fmt.Sprintf("Interp(%d)", uint8(i))
}

// Ease maps a linear segment parameter s in [0,1] through the easing curve.
func (i Interp) Ease(s float32) float32 {
	switch i {
	case InterpEaseIn:
		return ease.InQuad(s, 0, 1, 1)
	case InterpEaseOut:
		return ease.OutQuad(s, 0, 1, 1)
	case InterpEaseInOut:
		return ease.InOutQuad(s, 0, 1, 1)
	case InterpConstant:
		return 0
	default:
		return s
	}
}

// MaxPackedKeys is the largest key count a single curve or gradient occupies
// in a ParameterBlock. Longer curves are resampled at pack time.
const MaxPackedKeys = 8

// CurveKey is one keyframe of a scalar Curve.
type CurveKey struct {
	Time   float32 `yaml:"time"`
	Value  float32 `yaml:"value"`
	Interp Interp  `yaml:"interp,omitempty"`
}

// Curve maps normalized time [0,1] to a scalar. Keys need not be sorted.
type Curve struct {
	Keys []CurveKey
}

// ConstantCurve returns a single-key curve.
func ConstantCurve(v float32) Curve {
	return Curve{Keys: []CurveKey{{Time: 0, Value: v}}}
}

// LinearCurve returns a two-key curve running from start to end.
func LinearCurve(start, end float32) Curve {
	return Curve{Keys: []CurveKey{
		{Time: 0, Value: start},
		{Time: 1, Value: end},
	}}
}

// FadeOutCurve runs from 1 to 0 with an ease-in so the value holds early
// and drops at the end of life.
func FadeOutCurve() Curve {
	return Curve{Keys: []CurveKey{
		{Time: 0, Value: 1, Interp: InterpEaseIn},
		{Time: 1, Value: 0},
	}}
}

func (c Curve) sortedKeys() []CurveKey {
	less := func(a, b CurveKey) int { return cmp.Compare(a.Time, b.Time) }
	if slices.IsSortedFunc(c.Keys, less) {
		return c.Keys
	}
	keys := slices.Clone(c.Keys)
	slices.SortStableFunc(keys, less)
	return keys
}

// Evaluate returns the curve value at t. An empty curve yields 0, a
// single-key curve its value. t is clamped to the key time range.
func (c Curve) Evaluate(t float32) float32 {
	keys := c.sortedKeys()
	switch len(keys) {
	case 0:
		return 0
	case 1:
		return keys[0].Value
	}
	i, s, exact := segment(len(keys), func(j int) float32 { return keys[j].Time }, t)
	if exact {
		return keys[i].Value
	}
	return lerp32(keys[i].Value, keys[i+1].Value, keys[i].Interp.Ease(s))
}

// Range returns the smallest and largest key values.
func (c Curve) Range() (lo, hi float32) {
	for i, k := range c.Keys {
		if i == 0 || k.Value < lo {
			lo = k.Value
		}
		if i == 0 || k.Value > hi {
			hi = k.Value
		}
	}
	return lo, hi
}

// Resample returns a curve of at most n linear keys evenly spaced across the
// key time range. Curves already within n keys are returned unchanged.
func (c Curve) Resample(n int) Curve {
	if len(c.Keys) <= n || n < 2 {
		return c
	}
	keys := c.sortedKeys()
	t0, t1 := keys[0].Time, keys[len(keys)-1].Time
	out := make([]CurveKey, n)
	for i := range out {
		t := lerp32(t0, t1, float32(i)/float32(n-1))
		out[i] = CurveKey{Time: t, Value: c.Evaluate(t)}
	}
	log.Printf("vfx: curve resampled from %d to %d keys", len(c.Keys), n)
	return Curve{Keys: out}
}

// GradientKey is one color stop of a Gradient.
type GradientKey struct {
	Time   float32 `yaml:"time"`
	Color  Color   `yaml:"color"`
	Interp Interp  `yaml:"interp,omitempty"`
}

// Gradient maps normalized time [0,1] to a linear color.
type Gradient struct {
	Keys []GradientKey
}

// ConstantGradient returns a single-stop gradient.
func ConstantGradient(c Color) Gradient {
	return Gradient{Keys: []GradientKey{{Time: 0, Color: c}}}
}

// TwoColorGradient returns a linear gradient from a to b.
func TwoColorGradient(a, b Color) Gradient {
	return Gradient{Keys: []GradientKey{
		{Time: 0, Color: a},
		{Time: 1, Color: b},
	}}
}

// FadeOutGradient fades c to the same color with zero alpha.
func FadeOutGradient(c Color) Gradient {
	end := c
	end.A = 0
	return TwoColorGradient(c, end)
}

func (g Gradient) sortedKeys() []GradientKey {
	less := func(a, b GradientKey) int { return cmp.Compare(a.Time, b.Time) }
	if slices.IsSortedFunc(g.Keys, less) {
		return g.Keys
	}
	keys := slices.Clone(g.Keys)
	slices.SortStableFunc(keys, less)
	return keys
}

// Evaluate returns the gradient color at t. An empty gradient yields
// transparent black.
func (g Gradient) Evaluate(t float32) Color {
	keys := g.sortedKeys()
	switch len(keys) {
	case 0:
		return ColorTransparent
	case 1:
		return keys[0].Color
	}
	i, s, exact := segment(len(keys), func(j int) float32 { return keys[j].Time }, t)
	if exact {
		return keys[i].Color
	}
	return keys[i].Color.Lerp(keys[i+1].Color, keys[i].Interp.Ease(s))
}

// Resample is the Gradient counterpart of Curve.Resample.
func (g Gradient) Resample(n int) Gradient {
	if len(g.Keys) <= n || n < 2 {
		return g
	}
	keys := g.sortedKeys()
	t0, t1 := keys[0].Time, keys[len(keys)-1].Time
	out := make([]GradientKey, n)
	for i := range out {
		t := lerp32(t0, t1, float32(i)/float32(n-1))
		out[i] = GradientKey{Time: t, Color: g.Evaluate(t)}
	}
	log.Printf("vfx: gradient resampled from %d to %d keys", len(g.Keys), n)
	return Gradient{Keys: out}
}

// segment locates the bracketing pair for t among n >= 2 keys sorted by time.
// It returns the outgoing key index i and the local parameter s in [0,1).
// exact is set when t resolves to key i's value without interpolation: t
// clamped to either end, t landing on a key time, or a zero-length span.
func segment(n int, timeAt func(int) float32, t float32) (i int, s float32, exact bool) {
	first, last := timeAt(0), timeAt(n-1)
	if t != t || t <= first {
		return 0, 0, true
	}
	if t >= last {
		return n - 1, 0, true
	}
	// Largest i with time(i) <= t; t < last keeps i+1 in range.
	i = sort.Search(n, func(j int) bool { return timeAt(j) > t }) - 1
	t0 := timeAt(i)
	span := timeAt(i+1) - t0
	if t == t0 || span <= 0 {
		return i, 0, true
	}
	return i, (t - t0) / span, false
}
