package helio

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
)

func TestTransform_RoundTrip(t *testing.T) {
	tr := NewTransform()
	tr.Position = mgl32.Vec3{1, 2, 3}
	tr.Rotation = mgl32.QuatRotate(0.5, mgl32.Vec3{0, 1, 0})
	tr.Scale = mgl32.Vec3{2, 2, 2}

	m := tr.ObjectToWorld().Mul4(tr.WorldToObject())
	ident := mgl32.Ident4()
	for i := 0; i < 16; i++ {
		assert.InDelta(t, ident[i], m[i], 1e-5)
	}
}

func TestTransform_DefaultIsIdentity(t *testing.T) {
	tr := NewTransform()
	assert.Equal(t, mgl32.Ident4(), tr.ObjectToWorld())
	assert.True(t, tr.Dirty)
}
