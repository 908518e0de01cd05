package helio

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestShellSampler_RadiusBounds(t *testing.T) {
	sampler := NewShellSampler(42)

	const epsilon = 1e-3
	for i := 0; i < 10000; i++ {
		p := sampler.SampleShell(100, 1000)
		r := p.Len()
		if r < 100-epsilon || r > 1000+epsilon {
			t.Fatalf("sample %d has radius %v, want within [100, 1000]", i, r)
		}
	}
}

func TestShellSampler_NoPoleClustering(t *testing.T) {
	sampler := NewShellSampler(7)

	// z/r is uniform in [-1, 1] for a uniform angular distribution; with
	// pole clustering the outer bins would dominate.
	const samples = 20000
	const bins = 10
	var histogram [bins]int
	for i := 0; i < samples; i++ {
		p := sampler.SampleShell(100, 1000)
		u := float64(p.Z() / p.Len()) // in [-1, 1]
		bin := int((u + 1) / 2 * bins)
		if bin == bins {
			bin = bins - 1
		}
		histogram[bin]++
	}

	expected := float64(samples) / bins
	for bin, count := range histogram {
		if float64(count) < expected*0.85 || float64(count) > expected*1.15 {
			t.Errorf("bin %d has %d samples, expected about %.0f", bin, count, expected)
		}
	}
}

func TestShellSampler_SeededDeterminism(t *testing.T) {
	a := NewShellSampler(123)
	b := NewShellSampler(123)

	for i := 0; i < 100; i++ {
		assert.Equal(t, a.SampleShell(100, 1000), b.SampleShell(100, 1000),
			"equal seeds must produce identical sample streams")
	}
}

func TestShellSampler_UniformRange(t *testing.T) {
	sampler := NewShellSampler(1)

	for i := 0; i < 1000; i++ {
		v := sampler.UniformRange(0.1, 1.0)
		if v < 0.1 || v > 1.0 {
			t.Fatalf("UniformRange produced %v outside [0.1, 1.0]", v)
		}
	}
}
