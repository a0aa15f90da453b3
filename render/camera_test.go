package render

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/tanema/gween/ease"
)

func TestCameraProject(t *testing.T) {
	tests := []struct {
		name   string
		setup  func(c *Camera)
		v      mgl32.Vec3
		sx, sy float32
	}{
		{"origin at center", nil, mgl32.Vec3{}, 400, 300},
		{"y up", nil, mgl32.Vec3{1, 2, 0}, 464, 172},
		{"depth lifts", nil, mgl32.Vec3{0, 0, 1}, 400, 280.8},
		{"zoom", func(c *Camera) { c.Zoom = 2 }, mgl32.Vec3{1, 0, 0}, 528, 300},
		{"panned", func(c *Camera) { c.X, c.Y = 1, 1 }, mgl32.Vec3{1, 1, 0}, 400, 300},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewCamera(800, 600)
			if tt.setup != nil {
				tt.setup(c)
			}
			sx, sy := c.Project(tt.v)
			assertNear(t, "sx", sx, tt.sx)
			assertNear(t, "sy", sy, tt.sy)
		})
	}
}

func TestCameraUnprojectRoundTrip(t *testing.T) {
	c := NewCamera(640, 480)
	c.Zoom = 1.5
	c.X, c.Y = -2, 3
	for _, v := range []mgl32.Vec3{{0, 0, 0}, {1.25, -0.5, 0}, {-3, 4, 0}} {
		sx, sy := c.Project(v)
		assertVecNear(t, "round trip", c.Unproject(sx, sy), v)
	}
}

func TestCameraUnprojectZeroScale(t *testing.T) {
	c := NewCamera(100, 100)
	c.Zoom = 0
	got := c.Unproject(10, 10)
	if got != (mgl32.Vec3{}) {
		t.Errorf("Unproject with zero zoom = %v, want camera center", got)
	}
}

func TestCameraScrollTo(t *testing.T) {
	c := NewCamera(800, 600)
	c.ScrollTo(4, 8, 1, ease.Linear)
	if !c.Scrolling() {
		t.Fatal("Scrolling() = false after ScrollTo")
	}

	c.Update(0.5)
	assertNear(t, "X halfway", c.X, 2)
	assertNear(t, "Y halfway", c.Y, 4)

	c.Update(0.5)
	assertNear(t, "X end", c.X, 4)
	assertNear(t, "Y end", c.Y, 8)
	if c.Scrolling() {
		t.Error("scroll not cleared after completion")
	}

	c.Update(1)
	assertNear(t, "X after", c.X, 4)
}
