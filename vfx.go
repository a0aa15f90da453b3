package vfx

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
)

// Color represents a linear RGBA color. Not premultiplied.
// Premultiplication occurs at render submission time.
type Color struct {
	R, G, B, A float32
}

// ColorWhite is opaque white.
var ColorWhite = Color{1, 1, 1, 1}

// ColorTransparent is transparent black, the value of an empty Gradient.
var ColorTransparent = Color{}

// Lerp interpolates component-wise between c and o by t.
func (c Color) Lerp(o Color, t float32) Color {
	return Color{
		R: lerp32(c.R, o.R, t),
		G: lerp32(c.G, o.G, t),
		B: lerp32(c.B, o.B, t),
		A: lerp32(c.A, o.A, t),
	}
}

// Premultiplied returns the color with RGB scaled by alpha.
func (c Color) Premultiplied() Color {
	return Color{c.R * c.A, c.G * c.A, c.B * c.A, c.A}
}

// Vec returns the RGB channels as a vector.
func (c Color) Vec() mgl32.Vec3 {
	return mgl32.Vec3{c.R, c.G, c.B}
}

// SimSpace selects the frame particle kinematics are stored in.
type SimSpace uint8

const (
	// SimLocal stores particles relative to the emitter's moving frame.
	SimLocal SimSpace = iota
	// SimWorld stores particles in absolute coordinates.
	SimWorld
)

var simSpaceNames = [...]string{"Local", "World"}

func (s SimSpace) String() string {
	if int(s) < len(simSpaceNames) {
		return simSpaceNames[s]
	}
	return fmt.Sprintf("SimSpace(%d)", uint8(s))
}

// code is the numeric value written into the parameter block.
func (s SimSpace) code() float32 {
	if s == SimWorld {
		return 0
	}
	return 1
}

// AlphaMode selects the compositing operation the renderer applies to an
// emitter's particles. The core passes it through without evaluating it.
type AlphaMode uint8

const (
	AlphaBlend       AlphaMode = iota // straight alpha, source-over
	AlphaAdditive                     // additive / lighter
	AlphaPremultiply                  // colors already premultiplied
	AlphaMultiply                     // source * destination; only darkens
	AlphaOpaque                       // opaque copy
)

var alphaModeNames = [...]string{"Blend", "Additive", "Premultiply", "Multiply", "Opaque"}

func (a AlphaMode) String() string {
	if int(a) < len(alphaModeNames) {
		return alphaModeNames[a]
	}
	return fmt.Sprintf("AlphaMode(%d)", uint8(a))
}

// NeedsPremultiply reports whether particle colors must be premultiplied by
// the renderer before submission.
func (a AlphaMode) NeedsPremultiply() bool {
	return a != AlphaPremultiply && a != AlphaOpaque
}

// lerp32 linearly interpolates between a and b by t.
func lerp32(a, b, t float32) float32 {
	return a + (b-a)*t
}

func clamp01(v float32) float32 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
