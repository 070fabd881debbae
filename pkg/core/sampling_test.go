package core

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRandomSampler_ReseedIsDeterministic(t *testing.T) {
	sampler := NewRandomSampler(42, 0)
	sampler.Reseed(42, 1234)
	first := []float64{sampler.Get1D(), sampler.Get1D(), sampler.Get1D()}

	sampler.Get3D() // advance state
	sampler.Reseed(42, 1234)
	second := []float64{sampler.Get1D(), sampler.Get1D(), sampler.Get1D()}

	assert.Equal(t, first, second)

	sampler.Reseed(42, 1235)
	assert.NotEqual(t, first[0], sampler.Get1D())
}

func TestSampleIndex(t *testing.T) {
	sampler := NewRandomSampler(3, 4)
	counts := make([]int, 4)
	for i := 0; i < 4000; i++ {
		idx := SampleIndex(sampler, 4)
		require.GreaterOrEqual(t, idx, 0)
		require.Less(t, idx, 4)
		counts[idx]++
	}
	for _, c := range counts {
		assert.Greater(t, c, 800)
	}
}

func TestSamplePointInUnitSphere(t *testing.T) {
	sampler := NewRandomSampler(1, 1)
	for i := 0; i < 1000; i++ {
		p := SamplePointInUnitSphere(sampler.Get3D())
		assert.LessOrEqual(t, p.Length(), 1.0+1e-12)
	}
}

func TestSamplePointInUnitDisk(t *testing.T) {
	sampler := NewRandomSampler(1, 2)
	for i := 0; i < 1000; i++ {
		p := SamplePointInUnitDisk(sampler.Get2D())
		assert.LessOrEqual(t, p.Length(), 1.0+1e-12)
		assert.Equal(t, 0.0, p.Z)
	}
}

func TestSampleCosineDirection(t *testing.T) {
	sampler := NewRandomSampler(5, 5)
	sumZ := 0.0
	const n = 20000
	for i := 0; i < n; i++ {
		d := SampleCosineDirection(sampler.Get2D())
		assert.InDelta(t, 1.0, d.Length(), 1e-9)
		assert.GreaterOrEqual(t, d.Z, 0.0)
		sumZ += d.Z
	}
	// E[cos theta] under a cosine-weighted hemisphere is 2/3
	assert.InDelta(t, 2.0/3.0, sumZ/n, 0.01)
}

func TestSampleToSphere(t *testing.T) {
	sampler := NewRandomSampler(9, 9)
	radius, distSq := 1.0, 16.0
	cosThetaMax := math.Sqrt(1 - radius*radius/distSq)
	for i := 0; i < 1000; i++ {
		d := SampleToSphere(radius, distSq, sampler.Get2D())
		assert.InDelta(t, 1.0, d.Length(), 1e-9)
		assert.GreaterOrEqual(t, d.Z, cosThetaMax-1e-12)
	}
}

func TestONB(t *testing.T) {
	for _, w := range []Vec3{NewVec3(0, 0, 1), NewVec3(1, 0, 0), NewVec3(0.3, -0.2, 0.9)} {
		onb := NewONB(w)
		assert.InDelta(t, 0.0, onb.U.Dot(onb.V), 1e-12)
		assert.InDelta(t, 0.0, onb.U.Dot(onb.W), 1e-12)
		assert.InDelta(t, 0.0, onb.V.Dot(onb.W), 1e-12)
		assert.InDelta(t, 1.0, onb.U.Length(), 1e-12)
		assert.InDelta(t, 1.0, onb.V.Length(), 1e-12)

		up := onb.Local(NewVec3(0, 0, 1))
		assert.InDelta(t, 0.0, up.Subtract(w.Normalize()).Length(), 1e-12)
	}
}
