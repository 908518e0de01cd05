package helio

import (
	"github.com/go-gl/mathgl/mgl32"
)

// CameraComponent is a perspective camera. Position and LookAt are driven by
// the orbit controls; Aspect is driven by viewport resizes.
type CameraComponent struct {
	Position mgl32.Vec3
	LookAt   mgl32.Vec3
	Up       mgl32.Vec3

	FovDeg float32
	Aspect float32
	Near   float32
	Far    float32
}

func NewCamera(width, height int) CameraComponent {
	cam := CameraComponent{
		Position: mgl32.Vec3{0, 0, 30},
		Up:       mgl32.Vec3{0, 1, 0},
		FovDeg:   45,
		Near:     0.1,
		Far:      3000, // star shell reaches 1000; keep headroom for corners
	}
	cam.SetViewport(width, height)
	return cam
}

// SetViewport updates the aspect ratio from framebuffer dimensions. It is
// idempotent: repeated calls with the same dimensions are no-ops, and it
// touches nothing but the aspect ratio, so it may run at any point relative
// to a tick.
func (c *CameraComponent) SetViewport(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	c.Aspect = float32(width) / float32(height)
}

func (c *CameraComponent) ViewMatrix() mgl32.Mat4 {
	return mgl32.LookAtV(c.Position, c.LookAt, c.Up)
}

func (c *CameraComponent) ProjMatrix() mgl32.Mat4 {
	return mgl32.Perspective(mgl32.DegToRad(c.FovDeg), c.Aspect, c.Near, c.Far)
}

func (c *CameraComponent) ViewProjMatrix() mgl32.Mat4 {
	return c.ProjMatrix().Mul4(c.ViewMatrix())
}
