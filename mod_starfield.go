package helio

// Star field placement shell and per-star attribute ranges.
const (
	StarShellMinRadius float32 = 100
	StarShellMaxRadius float32 = 1000

	starSizeMin       float32 = 0.1
	starSizeMax       float32 = 1.0
	starBrightnessMin float32 = 0.2
	starBrightnessMax float32 = 1.0
)

// StarFieldComponent is a static point cloud stored as parallel dense
// arrays indexed by star ordinal. Individual stars are never mutated after
// generation; the whole field rotates as a rigid body by advancing Angle,
// which the renderer applies as the field's model transform. Dirty marks the
// vertex data for re-upload before the next draw.
type StarFieldComponent struct {
	Positions  []float32 // xyz triples
	Sizes      []float32 // in [0.1, 1.0]
	Brightness []float32 // in [0.2, 1.0]

	Angle    float32 // rigid rotation about the vertical axis, radians
	SpinRate float32 // radians per tick

	Dirty bool
}

func (sf *StarFieldComponent) Count() int {
	return len(sf.Sizes)
}

// GenerateStarField samples count stars on the shell [100, 1000] with
// independently drawn size and brightness.
func GenerateStarField(sampler *ShellSampler, count int, spinRate float32) StarFieldComponent {
	sf := StarFieldComponent{
		Positions:  make([]float32, 0, count*3),
		Sizes:      make([]float32, 0, count),
		Brightness: make([]float32, 0, count),
		SpinRate:   spinRate,
		Dirty:      true,
	}

	for i := 0; i < count; i++ {
		p := sampler.SampleShell(StarShellMinRadius, StarShellMaxRadius)
		sf.Positions = append(sf.Positions, p.X(), p.Y(), p.Z())
		sf.Sizes = append(sf.Sizes, sampler.UniformRange(starSizeMin, starSizeMax))
		sf.Brightness = append(sf.Brightness, sampler.UniformRange(starBrightnessMin, starBrightnessMax))
	}
	return sf
}

// starFieldSpinSystem advances the field's rigid rotation once per tick.
// The point data itself is untouched.
func starFieldSpinSystem(cmd *Commands) {
	MakeQuery1[StarFieldComponent](cmd).Map(func(eid EntityId, sf *StarFieldComponent) bool {
		sf.Angle += sf.SpinRate
		return true
	})
}

type StarFieldModule struct{}

func (m StarFieldModule) Install(app *App, cmd *Commands) {
	app.UseSystem(
		System(starFieldSpinSystem).InStage(Update),
	)
}
