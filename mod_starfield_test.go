package helio

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateStarField_Attributes(t *testing.T) {
	sf := GenerateStarField(NewShellSampler(4), 5000, 0.0002)

	require.Equal(t, 5000, sf.Count())
	require.Len(t, sf.Positions, 5000*3)
	require.Len(t, sf.Sizes, 5000)
	require.Len(t, sf.Brightness, 5000)

	for i := 0; i < sf.Count(); i++ {
		size := sf.Sizes[i]
		if size < 0.1 || size > 1.0 {
			t.Fatalf("star %d size %v outside [0.1, 1.0]", i, size)
		}
		brightness := sf.Brightness[i]
		if brightness < 0.2 || brightness > 1.0 {
			t.Fatalf("star %d brightness %v outside [0.2, 1.0]", i, brightness)
		}

		x := float64(sf.Positions[i*3])
		y := float64(sf.Positions[i*3+1])
		z := float64(sf.Positions[i*3+2])
		r := math.Sqrt(x*x + y*y + z*z)
		if r < 100-1e-3 || r > 1000+1e-3 {
			t.Fatalf("star %d radius %v outside [100, 1000]", i, r)
		}
	}
}

func TestGenerateStarField_StartsDirty(t *testing.T) {
	sf := GenerateStarField(NewShellSampler(1), 10, 0.0002)
	assert.True(t, sf.Dirty, "fresh field must be flagged for upload")
}

func TestStarField_RigidRotation(t *testing.T) {
	app := NewApp().UseModules(StarFieldModule{})
	app.build()
	cmd := app.Commands()

	sf := GenerateStarField(NewShellSampler(8), 100, 0.0002)
	positions := make([]float32, len(sf.Positions))
	copy(positions, sf.Positions)

	eid := cmd.AddEntity(sf)
	app.Tick()
	app.Tick()
	app.Tick()

	MakeQuery1[StarFieldComponent](cmd).Map(func(id EntityId, field *StarFieldComponent) bool {
		require.Equal(t, eid, id)
		// Rotation advances by the fixed increment each tick...
		assert.InDelta(t, 3*0.0002, float64(field.Angle), 1e-7)
		// ...while individual star data is never touched.
		assert.Equal(t, positions, field.Positions)
		return false
	})
}
