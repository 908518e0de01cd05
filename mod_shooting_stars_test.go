package helio

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShootingStar_SpawnProperties(t *testing.T) {
	sampler := NewShellSampler(11)

	for i := 0; i < 1000; i++ {
		star := spawnShootingStar(sampler)

		rA := star.A.Len()
		rB := star.B.Len()
		if rA < 100 || rA > 1000 {
			t.Fatalf("endpoint A radius %v outside [100, 1000]", rA)
		}
		if rB < 100 || rB > 1000 {
			t.Fatalf("endpoint B radius %v outside [100, 1000]", rB)
		}

		for axis := 0; axis < 3; axis++ {
			v := star.Velocity[axis]
			if v < -0.15 || v > 0.15 {
				t.Fatalf("velocity component %v outside [-0.15, 0.15]", v)
			}
		}

		// Endpoints are sampled independently, not duplicated.
		assert.NotEqual(t, star.A, star.B)
	}
}

func TestShootingStar_AdvanceMovesBothEndpoints(t *testing.T) {
	star := ShootingStar{
		A:        mgl32.Vec3{1, 2, 3},
		B:        mgl32.Vec3{4, 5, 6},
		Velocity: mgl32.Vec3{0.1, -0.1, 0.05},
	}

	star.advance()

	assert.Equal(t, mgl32.Vec3{1.1, 1.9, 3.05}, star.A)
	assert.Equal(t, mgl32.Vec3{4.1, 4.9, 6.05}, star.B)
}

func TestShootingStar_OutOfBoundsChecksOnlyLeadingEndpoint(t *testing.T) {
	inside := ShootingStar{
		A: mgl32.Vec3{999, 0, 0},
		B: mgl32.Vec3{2000, 0, 0}, // B is ignored
	}
	if inside.outOfBounds() {
		t.Errorf("star with A inside the cube reported out of bounds")
	}

	outside := ShootingStar{
		A: mgl32.Vec3{0, -1000.5, 0},
		B: mgl32.Vec3{0, 0, 0},
	}
	if !outside.outOfBounds() {
		t.Errorf("star with A outside the cube reported in bounds")
	}
}

func TestShootingStarPool_BoundaryScenario(t *testing.T) {
	pool := NewShootingStarPool(NewShellSampler(3), 1)
	pool.Stars[0] = ShootingStar{
		A:        mgl32.Vec3{999, 0, 0},
		B:        mgl32.Vec3{990, 0, 0},
		Velocity: mgl32.Vec3{1, 0, 0},
	}

	pool.Tick()

	// (999,0,0) + (1,0,0) reaches the cube edge, so the slot respawns.
	require.Len(t, pool.Stars, 1)
	r := pool.Stars[0].A.Len()
	if r < 100 || r > 1000 {
		t.Errorf("respawned star has radius %v, want within [100, 1000]", r)
	}
	assert.NotEqual(t, mgl32.Vec3{1000, 0, 0}, pool.Stars[0].A)
	assert.True(t, pool.Dirty)
}

func TestShootingStarPool_SizeInvariant(t *testing.T) {
	pool := NewShootingStarPool(NewShellSampler(5), 5)

	for tick := 0; tick < 20000; tick++ {
		pool.Tick()
		if len(pool.Stars) != 5 {
			t.Fatalf("pool size %d after tick %d, want 5", len(pool.Stars), tick)
		}
	}
}

func TestShootingStarPool_DefaultSize(t *testing.T) {
	pool := NewShootingStarPool(NewShellSampler(1), 0)
	assert.Len(t, pool.Stars, DefaultShootingStarCount)
}

func TestShootingStarPool_AdvanceInBoundsIsNotReplaced(t *testing.T) {
	pool := NewShootingStarPool(NewShellSampler(9), 1)
	pool.Stars[0] = ShootingStar{
		A:        mgl32.Vec3{100, 100, 100},
		B:        mgl32.Vec3{110, 100, 100},
		Velocity: mgl32.Vec3{0.1, 0, 0},
	}

	pool.Tick()

	assert.Equal(t, mgl32.Vec3{100.1, 100, 100}, pool.Stars[0].A)
	assert.Equal(t, mgl32.Vec3{110.1, 100, 100}, pool.Stars[0].B)
}

func TestShootingStarPool_Vertices(t *testing.T) {
	pool := NewShootingStarPool(NewShellSampler(2), 3)

	verts := pool.Vertices()
	require.Len(t, verts, 3*6)
	for i, star := range pool.Stars {
		base := i * 6
		assert.Equal(t, star.A.X(), verts[base+0])
		assert.Equal(t, star.A.Y(), verts[base+1])
		assert.Equal(t, star.A.Z(), verts[base+2])
		assert.Equal(t, star.B.X(), verts[base+3])
		assert.Equal(t, star.B.Y(), verts[base+4])
		assert.Equal(t, star.B.Z(), verts[base+5])
	}
}

func TestShootingStarPool_EventualRespawn(t *testing.T) {
	pool := NewShootingStarPool(NewShellSampler(17), 5)
	initial := make([]ShootingStar, len(pool.Stars))
	copy(initial, pool.Stars)

	// Worst case start at the origin moving at the slowest representable
	// pace still leaves the cube well within this many ticks.
	maxTicks := int(math.Ceil(1000/0.0001)) + 1
	replaced := false
	for tick := 0; tick < maxTicks && !replaced; tick++ {
		pool.Tick()
		for i := range pool.Stars {
			if pool.Stars[i].Velocity != initial[i].Velocity {
				replaced = true
				break
			}
		}
	}
	assert.True(t, replaced, "no star was ever replaced")
}
