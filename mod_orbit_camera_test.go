package helio

import (
	"math"
	"testing"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
)

func orbitTestApp(t *testing.T) (*App, *Commands, EntityId) {
	t.Helper()
	app := NewApp()
	app.UseSystem(System(orbitCameraSystem).InStage(PostUpdate))
	app.addResources(&Time{Dt: 16 * time.Millisecond})
	cmd := app.Commands()
	eid := cmd.AddEntity(NewCamera(800, 600), NewOrbitCamera(30))
	app.FlushCommands()
	return app, cmd, eid
}

func TestOrbitCamera_DampedGlide(t *testing.T) {
	app, cmd, _ := orbitTestApp(t)

	MakeQuery1[OrbitCameraComponent](cmd).Map(func(eid EntityId, orbit *OrbitCameraComponent) bool {
		orbit.yawVel = 0.1
		return false
	})

	var lastYaw, lastVel float32
	for i := 0; i < 200; i++ {
		app.Tick()
	}
	MakeQuery1[OrbitCameraComponent](cmd).Map(func(eid EntityId, orbit *OrbitCameraComponent) bool {
		lastYaw = orbit.Yaw
		lastVel = orbit.yawVel
		return false
	})

	assert.Greater(t, lastYaw, float32(0), "the drag impulse must rotate the camera")
	assert.InDelta(t, 0, float64(lastVel), 1e-4, "velocity must decay toward zero")
}

func TestOrbitCamera_PitchClampedShortOfPoles(t *testing.T) {
	app, cmd, _ := orbitTestApp(t)

	MakeQuery1[OrbitCameraComponent](cmd).Map(func(eid EntityId, orbit *OrbitCameraComponent) bool {
		orbit.Pitch = 10 // way past vertical
		return false
	})
	app.Tick()

	MakeQuery1[OrbitCameraComponent](cmd).Map(func(eid EntityId, orbit *OrbitCameraComponent) bool {
		limit := float32(math.Pi/2) - 0.01
		assert.LessOrEqual(t, orbit.Pitch, limit)
		return false
	})
}

func TestOrbitCamera_CameraStaysOnSphereAroundTarget(t *testing.T) {
	app, cmd, _ := orbitTestApp(t)

	MakeQuery1[OrbitCameraComponent](cmd).Map(func(eid EntityId, orbit *OrbitCameraComponent) bool {
		orbit.yawVel = 0.05
		orbit.pitchVel = 0.02
		return false
	})

	for i := 0; i < 50; i++ {
		app.Tick()
		MakeQuery2[CameraComponent, OrbitCameraComponent](cmd).Map(
			func(eid EntityId, cam *CameraComponent, orbit *OrbitCameraComponent) bool {
				dist := cam.Position.Sub(orbit.Target).Len()
				assert.InDelta(t, float64(orbit.Distance), float64(dist), 1e-3)
				assert.Equal(t, orbit.Target, cam.LookAt)
				return false
			})
	}
}

func TestOrbitCamera_DistanceClamp(t *testing.T) {
	orbit := NewOrbitCamera(30)
	orbit.Distance = clamp(orbit.Distance-1000*orbit.ZoomSpeed, orbit.MinDistance, orbit.MaxDistance)
	assert.Equal(t, orbit.MinDistance, orbit.Distance)

	orbit.Distance = clamp(orbit.Distance+1e6, orbit.MinDistance, orbit.MaxDistance)
	assert.Equal(t, orbit.MaxDistance, orbit.Distance)
}

func TestOrbitCamera_ZeroDtIsNoOp(t *testing.T) {
	app := NewApp()
	app.UseSystem(System(orbitCameraSystem).InStage(PostUpdate))
	app.addResources(&Time{Dt: 0})
	cmd := app.Commands()
	cmd.AddEntity(NewCamera(800, 600), NewOrbitCamera(30))
	app.FlushCommands()

	var before mgl32.Vec3
	MakeQuery1[CameraComponent](cmd).Map(func(eid EntityId, cam *CameraComponent) bool {
		before = cam.Position
		return false
	})
	app.Tick()
	MakeQuery1[CameraComponent](cmd).Map(func(eid EntityId, cam *CameraComponent) bool {
		assert.Equal(t, before, cam.Position)
		return false
	})
}
