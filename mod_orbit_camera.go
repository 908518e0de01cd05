package helio

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// OrbitCameraComponent keeps the camera on a sphere around Target. Dragging
// with the left mouse button feeds angular velocity; the velocity decays
// exponentially, giving the damped glide after the pointer is released.
type OrbitCameraComponent struct {
	Target   mgl32.Vec3
	Distance float32
	Yaw      float32 // radians around the vertical axis
	Pitch    float32 // radians, clamped short of the poles

	Sensitivity float32 // radians per pixel of drag
	ZoomSpeed   float32 // distance units per wheel step
	Damping     float32 // velocity decay per second, higher stops sooner

	MinDistance float32
	MaxDistance float32

	yawVel   float32
	pitchVel float32
}

func NewOrbitCamera(distance float32) OrbitCameraComponent {
	return OrbitCameraComponent{
		Distance:    distance,
		Sensitivity: 0.005,
		ZoomSpeed:   2.0,
		Damping:     6.0,
		MinDistance: 5,
		MaxDistance: 500,
	}
}

type OrbitCameraModule struct{}

func (m OrbitCameraModule) Install(app *App, cmd *Commands) {
	app.UseSystem(
		System(orbitCameraInputSystem).InStage(Update),
	)
	app.UseSystem(
		System(orbitCameraSystem).InStage(PostUpdate),
	)
}

func orbitCameraInputSystem(input *Input, cmd *Commands) {
	if input.JustPressed[KeyEscape] {
		cmd.Quit()
	}

	scroll := float32(input.consumeScroll())

	MakeQuery1[OrbitCameraComponent](cmd).Map(func(eid EntityId, orbit *OrbitCameraComponent) bool {
		if input.Pressed[MouseButtonLeft] {
			orbit.yawVel = float32(input.MouseDeltaX) * orbit.Sensitivity
			orbit.pitchVel = float32(input.MouseDeltaY) * orbit.Sensitivity
		}

		if scroll != 0 {
			orbit.Distance -= scroll * orbit.ZoomSpeed
			orbit.Distance = clamp(orbit.Distance, orbit.MinDistance, orbit.MaxDistance)
		}
		return true
	})
}

func orbitCameraSystem(cmd *Commands, time *Time) {
	dt := float32(time.Dt.Seconds())
	if dt <= 0 {
		return
	}

	MakeQuery2[CameraComponent, OrbitCameraComponent](cmd).Map(func(eid EntityId, cam *CameraComponent, orbit *OrbitCameraComponent) bool {
		orbit.Yaw += orbit.yawVel
		orbit.Pitch += orbit.pitchVel

		// Keep away from the poles so the up vector stays valid.
		limit := float32(math.Pi/2) - 0.01
		orbit.Pitch = clamp(orbit.Pitch, -limit, limit)

		decay := float32(math.Exp(float64(-orbit.Damping * dt)))
		orbit.yawVel *= decay
		orbit.pitchVel *= decay

		cosPitch := float32(math.Cos(float64(orbit.Pitch)))
		cam.Position = orbit.Target.Add(mgl32.Vec3{
			orbit.Distance * cosPitch * float32(math.Sin(float64(orbit.Yaw))),
			orbit.Distance * float32(math.Sin(float64(orbit.Pitch))),
			orbit.Distance * cosPitch * float32(math.Cos(float64(orbit.Yaw))),
		})
		cam.LookAt = orbit.Target
		cam.Up = mgl32.Vec3{0, 1, 0}
		return true
	})
}

func clamp(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
