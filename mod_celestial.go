package helio

// CelestialBodyComponent is the primary body of the scene: a sphere with a
// persistent spin angle about the vertical axis, advanced a fixed amount
// each tick. The angle is allowed to grow unbounded; the visual is periodic.
type CelestialBodyComponent struct {
	Radius   float32
	Angle    float32
	SpinRate float32 // radians per tick
}

func bodySpinSystem(cmd *Commands) {
	MakeQuery1[CelestialBodyComponent](cmd).Map(func(eid EntityId, body *CelestialBodyComponent) bool {
		body.Angle += body.SpinRate
		return true
	})
}

// CelestialModule installs the primary body spin system.
type CelestialModule struct{}

func (m CelestialModule) Install(app *App, cmd *Commands) {
	app.UseSystem(
		System(bodySpinSystem).InStage(Update),
	)
}
