package helio

import (
	"math"
	"math/rand"

	"github.com/go-gl/mathgl/mgl32"
)

// ShellSampler draws uniformly distributed points from a spherical shell.
// It carries its own random source so generation is reproducible when
// seeded, and a pure function of the source's state either way.
type ShellSampler struct {
	rng *rand.Rand
}

func NewShellSampler(seed int64) *ShellSampler {
	return &ShellSampler{rng: rand.New(rand.NewSource(seed))}
}

// SampleShell returns a point whose direction is uniform over the sphere and
// whose distance from the origin is uniform in [minRadius, maxRadius].
// Sampling cos(phi) instead of phi keeps the poles from clustering.
func (s *ShellSampler) SampleShell(minRadius, maxRadius float32) mgl32.Vec3 {
	theta := s.rng.Float64() * 2 * math.Pi
	u := s.rng.Float64()*2 - 1
	phi := math.Acos(u)
	radius := float64(s.UniformRange(minRadius, maxRadius))

	sinPhi := math.Sin(phi)
	return mgl32.Vec3{
		float32(radius * sinPhi * math.Cos(theta)),
		float32(radius * sinPhi * math.Sin(theta)),
		float32(radius * math.Cos(phi)),
	}
}

// UniformRange returns a value uniform in [min, max].
func (s *ShellSampler) UniformRange(min, max float32) float32 {
	return min + (max-min)*s.rng.Float32()
}
