package render

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/phanxgames/vfx"
)

var blendMultiply = ebiten.Blend{
	BlendFactorSourceRGB:        ebiten.BlendFactorDestinationColor,
	BlendFactorSourceAlpha:      ebiten.BlendFactorDestinationAlpha,
	BlendFactorDestinationRGB:   ebiten.BlendFactorOneMinusSourceAlpha,
	BlendFactorDestinationAlpha: ebiten.BlendFactorOneMinusSourceAlpha,
	BlendOperationRGB:           ebiten.BlendOperationAdd,
	BlendOperationAlpha:         ebiten.BlendOperationAdd,
}

// blendFor maps an emitter's alpha mode to the blend its batch draws with.
// Vertex colors are premultiplied, so Blend and Premultiply share source-over.
func blendFor(a vfx.AlphaMode) ebiten.Blend {
	switch a {
	case vfx.AlphaAdditive:
		return ebiten.BlendLighter
	case vfx.AlphaMultiply:
		return blendMultiply
	case vfx.AlphaOpaque:
		return ebiten.BlendCopy
	default:
		return ebiten.BlendSourceOver
	}
}
