package helio

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

const (
	// Shooting star endpoints spawn on the same shell as the star field.
	shootingStarShellMin float32 = 100
	shootingStarShellMax float32 = 1000

	// Per-axis velocity component range.
	shootingStarMaxSpeed float32 = 0.15

	// A star is replaced once its leading endpoint leaves this cube.
	shootingStarBound float32 = 1000

	DefaultShootingStarCount = 5
)

// ShootingStar is a short streak: two endpoints and a shared velocity.
type ShootingStar struct {
	A        mgl32.Vec3 // leading endpoint, the one bounds-checked
	B        mgl32.Vec3
	Velocity mgl32.Vec3
}

// advance moves both endpoints by the velocity, in place.
func (s *ShootingStar) advance() {
	s.A = s.A.Add(s.Velocity)
	s.B = s.B.Add(s.Velocity)
}

// outOfBounds reports whether any coordinate of the leading endpoint has
// reached the edge of the active cube. Only endpoint A is tested.
func (s *ShootingStar) outOfBounds() bool {
	for i := 0; i < 3; i++ {
		if math.Abs(float64(s.A[i])) >= float64(shootingStarBound) {
			return true
		}
	}
	return false
}

// ShootingStarPoolComponent is a fixed-size, slot-indexed pool of live
// shooting stars. Replacement writes into the dead star's slot, so the pool
// size and slot identity are stable across any number of ticks. Dirty marks
// the endpoint data for re-upload before the next draw.
type ShootingStarPoolComponent struct {
	Stars   []ShootingStar
	Dirty   bool
	sampler *ShellSampler
}

func NewShootingStarPool(sampler *ShellSampler, size int) ShootingStarPoolComponent {
	if size <= 0 {
		size = DefaultShootingStarCount
	}
	pool := ShootingStarPoolComponent{
		Stars:   make([]ShootingStar, size),
		sampler: sampler,
		Dirty:   true,
	}
	for i := range pool.Stars {
		pool.Stars[i] = spawnShootingStar(sampler)
	}
	return pool
}

// spawnShootingStar samples both endpoints independently on the shell and a
// velocity with per-axis components uniform in [-0.15, 0.15].
func spawnShootingStar(sampler *ShellSampler) ShootingStar {
	return ShootingStar{
		A: sampler.SampleShell(shootingStarShellMin, shootingStarShellMax),
		B: sampler.SampleShell(shootingStarShellMin, shootingStarShellMax),
		Velocity: mgl32.Vec3{
			sampler.UniformRange(-shootingStarMaxSpeed, shootingStarMaxSpeed),
			sampler.UniformRange(-shootingStarMaxSpeed, shootingStarMaxSpeed),
			sampler.UniformRange(-shootingStarMaxSpeed, shootingStarMaxSpeed),
		},
	}
}

// Tick advances every star and respawns the ones that left the bounds,
// writing the replacement into the same slot.
func (p *ShootingStarPoolComponent) Tick() {
	for i := range p.Stars {
		p.Stars[i].advance()
		if p.Stars[i].outOfBounds() {
			p.Stars[i] = spawnShootingStar(p.sampler)
		}
	}
	if len(p.Stars) > 0 {
		p.Dirty = true
	}
}

// Vertices packs the pool's endpoints as a line list, two xyz vertices per
// star, for upload to the renderer.
func (p *ShootingStarPoolComponent) Vertices() []float32 {
	verts := make([]float32, 0, len(p.Stars)*6)
	for i := range p.Stars {
		s := &p.Stars[i]
		verts = append(verts, s.A.X(), s.A.Y(), s.A.Z(), s.B.X(), s.B.Y(), s.B.Z())
	}
	return verts
}

func shootingStarSystem(cmd *Commands) {
	MakeQuery1[ShootingStarPoolComponent](cmd).Map(func(eid EntityId, pool *ShootingStarPoolComponent) bool {
		pool.Tick()
		return true
	})
}

// ShootingStarModule installs the per-tick pool lifecycle system. The pool
// itself is spawned as a component by the scene loader, so a scene without
// shooting stars simply never matches the query.
type ShootingStarModule struct{}

func (m ShootingStarModule) Install(app *App, cmd *Commands) {
	app.UseSystem(
		System(shootingStarSystem).InStage(Update),
	)
}
