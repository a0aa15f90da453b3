// Package render draws vfx effect instances with Ebitengine. It projects
// simulation space through an orthographic Camera and submits one triangle
// batch per emitter.
package render

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// scrollAnim holds active scroll-to tweens for camera X and Y.
type scrollAnim struct {
	tweenX *gween.Tween
	tweenY *gween.Tween
	doneX  bool
	doneY  bool
}

// Camera projects simulation space onto a 2D viewport. The projection is
// orthographic along -Z with an optional tilt that lifts depth into screen
// height, so 3D effects read on a flat Ebitengine target.
type Camera struct {
	// X and Y are the world-space point drawn at the viewport center.
	X, Y float32
	// Zoom scales PixelsPerUnit (1 = no zoom).
	Zoom float32
	// PixelsPerUnit is the screen size of one world unit at Zoom 1.
	PixelsPerUnit float32
	// Tilt is how far one unit of depth moves a point up the screen.
	Tilt float32
	// Width and Height are the viewport size in pixels.
	Width, Height float32

	scrollTween *scrollAnim
}

// NewCamera returns a camera centered on the origin for a viewport of the
// given size.
func NewCamera(width, height float32) *Camera {
	return &Camera{
		Zoom:          1,
		PixelsPerUnit: 64,
		Tilt:          0.3,
		Width:         width,
		Height:        height,
	}
}

func (c *Camera) scale() float32 {
	return c.PixelsPerUnit * c.Zoom
}

// Project maps a world position to viewport pixels.
func (c *Camera) Project(v mgl32.Vec3) (sx, sy float32) {
	s := c.scale()
	sx = c.Width/2 + (v[0]-c.X)*s
	sy = c.Height/2 - (v[1]-c.Y+v[2]*c.Tilt)*s
	return sx, sy
}

// Unproject maps viewport pixels back to the world position on the z = 0
// plane.
func (c *Camera) Unproject(sx, sy float32) mgl32.Vec3 {
	s := c.scale()
	if s == 0 {
		return mgl32.Vec3{c.X, c.Y, 0}
	}
	return mgl32.Vec3{(sx-c.Width/2)/s + c.X, (c.Height/2-sy)/s + c.Y, 0}
}

// ScrollTo animates the camera center to (x, y) over duration seconds.
func (c *Camera) ScrollTo(x, y, duration float32, easeFn ease.TweenFunc) {
	c.scrollTween = &scrollAnim{
		tweenX: gween.New(c.X, x, duration, easeFn),
		tweenY: gween.New(c.Y, y, duration, easeFn),
	}
}

// Scrolling reports whether a ScrollTo animation is in progress.
func (c *Camera) Scrolling() bool {
	return c.scrollTween != nil
}

// Update advances an active scroll animation by dt seconds.
func (c *Camera) Update(dt float32) {
	st := c.scrollTween
	if st == nil {
		return
	}
	if !st.doneX {
		c.X, st.doneX = st.tweenX.Update(dt)
	}
	if !st.doneY {
		c.Y, st.doneY = st.tweenY.Update(dt)
	}
	if st.doneX && st.doneY {
		c.scrollTween = nil
	}
}
