package vfx

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Potential field phase offsets and the cross-axis wave number.
const (
	noisePhaseX = 1.7
	noisePhaseY = 4.1
	noisePhaseZ = 2.9
	noiseWave   = 1.3
)

// curl returns the curl of the smooth vector potential
//
//	ψ = (sin(y+φx)·cos(kz), sin(z+φy)·cos(kx), sin(x+φz)·cos(ky))
//
// at p. The field is divergence-free and each component is bounded by 1+k.
func curl(p mgl32.Vec3) mgl32.Vec3 {
	x, y, z := float64(p[0]), float64(p[1]), float64(p[2])

	// ∂ψz/∂y - ∂ψy/∂z
	cx := -noiseWave*math.Sin(x+noisePhaseZ)*math.Sin(noiseWave*y) -
		math.Cos(z+noisePhaseY)*math.Cos(noiseWave*x)
	// ∂ψx/∂z - ∂ψz/∂x
	cy := -noiseWave*math.Sin(y+noisePhaseX)*math.Sin(noiseWave*z) -
		math.Cos(x+noisePhaseZ)*math.Cos(noiseWave*y)
	// ∂ψy/∂x - ∂ψx/∂y
	cz := -noiseWave*math.Sin(z+noisePhaseY)*math.Sin(noiseWave*x) -
		math.Cos(y+noisePhaseX)*math.Cos(noiseWave*z)

	return mgl32.Vec3{float32(cx), float32(cy), float32(cz)}
}
