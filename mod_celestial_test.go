package helio

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCelestialBody_SpinAccumulates(t *testing.T) {
	app := NewApp().UseModules(CelestialModule{})
	app.build()
	cmd := app.Commands()

	cmd.AddEntity(CelestialBodyComponent{Radius: 10, SpinRate: 0.001})
	for i := 0; i < 10; i++ {
		app.Tick()
	}

	MakeQuery1[CelestialBodyComponent](cmd).Map(func(eid EntityId, body *CelestialBodyComponent) bool {
		assert.InDelta(t, 0.01, float64(body.Angle), 1e-6)
		return false
	})
}

func TestCelestialBody_AngleGrowsUnbounded(t *testing.T) {
	body := CelestialBodyComponent{SpinRate: 1}
	for i := 0; i < 10; i++ {
		body.Angle += body.SpinRate
	}
	// No wrap-around at 2*pi; the visual is periodic anyway.
	assert.InDelta(t, 10.0, float64(body.Angle), 1e-6)
}
