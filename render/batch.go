package render

import (
	"image"
	"image/color"
	"math"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/phanxgames/vfx"
)

// Renderer draws effect instances onto an Ebitengine image. Every emitter is
// submitted as one DrawTriangles32 batch of quads, in authored order, with the
// blend state of its AlphaMode.
//
// A Renderer is not safe for concurrent use.
type Renderer struct {
	Camera *Camera
	// Texture resolves Billboard and Ribbon texture paths. A nil func or a
	// nil result draws untextured quads.
	Texture func(path string) *ebiten.Image

	batches []drawBatch
	white   *ebiten.Image
	stats   RenderStats
}

// RenderStats counts the work submitted by the last Draw.
type RenderStats struct {
	Quads     int
	DrawCalls int
}

// drawBatch is one emitter's geometry for a frame.
type drawBatch struct {
	src   *ebiten.Image
	blend ebiten.Blend
	verts []ebiten.Vertex
	inds  []uint32
}

// NewRenderer returns a renderer projecting through cam.
func NewRenderer(cam *Camera) *Renderer {
	return &Renderer{Camera: cam}
}

// Draw renders every live particle of fx onto target.
func (r *Renderer) Draw(target *ebiten.Image, fx *vfx.EffectInstance) {
	if r.white == nil {
		r.white = ebiten.NewImage(1, 1)
		r.white.Fill(color.White)
	}
	r.build(fx)

	var op ebiten.DrawTrianglesOptions
	op.ColorScaleMode = ebiten.ColorScaleModePremultipliedAlpha
	op.Address = ebiten.AddressRepeat
	r.stats = RenderStats{}
	for i := range r.batches {
		b := &r.batches[i]
		if len(b.inds) == 0 {
			continue
		}
		src := b.src
		if src == nil {
			src = r.white
		}
		op.Blend = b.blend
		target.DrawTriangles32(b.verts, b.inds, src, &op)
		r.stats.Quads += len(b.verts) / 4
		r.stats.DrawCalls++
	}
}

// Stats returns the counts from the last Draw.
func (r *Renderer) Stats() RenderStats { return r.stats }

// build fills one batch per emitter. Source coordinates are normalized to
// [0,1] and scaled to the source bounds here.
func (r *Renderer) build(fx *vfx.EffectInstance) {
	ems := fx.Emitters()
	if cap(r.batches) < len(ems) {
		r.batches = append(r.batches[:cap(r.batches)], make([]drawBatch, len(ems)-cap(r.batches))...)
	}
	r.batches = r.batches[:len(ems)]

	for i, em := range ems {
		b := &r.batches[i]
		b.verts = b.verts[:0]
		b.inds = b.inds[:0]
		def := em.Def()
		b.blend = blendFor(def.AlphaMode)
		b.src = r.texture(def.Render)

		bounds := image.Rect(0, 0, 1, 1)
		if b.src != nil {
			bounds = b.src.Bounds()
		}
		uvOff := em.UVOffset()
		uvScale := em.Block().Uniforms.UVScale

		parts := em.Particles()
		for j := range parts {
			p := &parts[j]
			q := r.quad(fx, em, def, p)
			u0, v0, u1, v1 := sourceRect(def.Render, p, uvOff, uvScale)
			b.appendQuad(q, bounds, u0, v0, u1, v1)
		}
	}
}

func (r *Renderer) texture(mode vfx.RenderMode) *ebiten.Image {
	if r.Texture == nil {
		return nil
	}
	var path *string
	switch m := mode.(type) {
	case vfx.Billboard:
		path = m.Texture
	case vfx.Ribbon:
		path = m.Texture
	}
	if path == nil {
		return nil
	}
	return r.Texture(*path)
}

// screenQuad is a projected particle: center, half extents, rotation and
// premultiplied color.
type screenQuad struct {
	x, y   float32
	hw, hh float32
	rot    float32
	color  vfx.Color
}

func (r *Renderer) quad(fx *vfx.EffectInstance, em *vfx.EmitterInstance, def *vfx.Emitter, p *vfx.Particle) screenQuad {
	cam := r.Camera
	x, y := cam.Project(fx.WorldPosition(em, p))
	px := max(p.Size*cam.scale(), 1)
	q := screenQuad{x: x, y: y, hw: px / 2, hh: px / 2, rot: p.Rotation}

	c := p.Color
	switch m := def.Render.(type) {
	case vfx.Billboard:
		if m.Orient == vfx.BillboardAlongVelocity && p.Velocity.Len() > 0 {
			q.rot = float32(math.Atan2(float64(p.Velocity[1]), float64(p.Velocity[0])))
			q.hw *= 2
		}
	case vfx.Ribbon:
		w := float32(1)
		if len(m.WidthCurve.Keys) > 0 {
			w = m.WidthCurve.Evaluate(p.NormalizedAge())
		}
		q.hh *= w
		q.hw *= 3
		if p.Velocity.Len() > 0 {
			q.rot = float32(math.Atan2(float64(p.Velocity[1]), float64(p.Velocity[0])))
		}
	case vfx.Mesh:
		c = m.BaseColor
		q.hw *= p.Scale[0]
		q.hh *= p.Scale[1]
		q.rot = meshRoll(p.Orientation)
	}

	c = vfx.Color{R: c.R + p.Emissive.R, G: c.G + p.Emissive.G, B: c.B + p.Emissive.B, A: c.A}
	if def.AlphaMode.NeedsPremultiply() {
		c = c.Premultiplied()
	}
	q.color = c
	return q
}

// meshRoll is the screen-plane rotation of a mesh orientation.
func meshRoll(o mgl32.Quat) float32 {
	if o.Len() == 0 {
		return 0
	}
	x := o.Rotate(mgl32.Vec3{1, 0, 0})
	return float32(math.Atan2(float64(x[1]), float64(x[0])))
}

// sourceRect returns the normalized texture rectangle for a particle,
// selecting the flipbook frame and applying the emitter UV transform.
func sourceRect(mode vfx.RenderMode, p *vfx.Particle, off, scale [2]float32) (u0, v0, u1, v1 float32) {
	u0, v0, u1, v1 = 0, 0, 1, 1
	if bb, ok := mode.(vfx.Billboard); ok && bb.Flipbook != nil && bb.Flipbook.Rows > 0 && bb.Flipbook.Columns > 0 {
		f := bb.Flipbook
		frame := uint32(f.Frame(p.Age))
		cw, ch := 1/float32(f.Columns), 1/float32(f.Rows)
		u0 = float32(frame%f.Columns) * cw
		v0 = float32(frame/f.Columns) * ch
		u1, v1 = u0+cw, v0+ch
	}
	u0, u1 = u0*scale[0]+off[0], u1*scale[0]+off[0]
	v0, v1 = v0*scale[1]+off[1], v1*scale[1]+off[1]
	return u0, v0, u1, v1
}

func (b *drawBatch) appendQuad(q screenQuad, bounds image.Rectangle, u0, v0, u1, v1 float32) {
	sin, cos := float32(math.Sin(float64(-q.rot))), float32(math.Cos(float64(-q.rot)))
	bw, bh := float32(bounds.Dx()), float32(bounds.Dy())
	bx, by := float32(bounds.Min.X), float32(bounds.Min.Y)

	lx := [4]float32{-q.hw, q.hw, -q.hw, q.hw}
	ly := [4]float32{-q.hh, -q.hh, q.hh, q.hh}
	su := [4]float32{u0, u1, u0, u1}
	sv := [4]float32{v0, v0, v1, v1}

	base := uint32(len(b.verts))
	for j := range 4 {
		b.verts = append(b.verts, ebiten.Vertex{
			DstX:   q.x + lx[j]*cos - ly[j]*sin,
			DstY:   q.y + lx[j]*sin + ly[j]*cos,
			SrcX:   bx + su[j]*bw,
			SrcY:   by + sv[j]*bh,
			ColorR: q.color.R,
			ColorG: q.color.G,
			ColorB: q.color.B,
			ColorA: q.color.A,
		})
	}
	b.inds = append(b.inds,
		base+0, base+1, base+2,
		base+1, base+3, base+2,
	)
}
