package geometry

import (
	"math"
	"testing"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/material"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testMaterial = material.NewLambertian(core.NewVec3(0.5, 0.5, 0.5))

func TestSphere_Hit_Miss(t *testing.T) {
	sphere := NewSphere(core.NewVec3(0, 0, 0), 1.0, testMaterial)
	ray := core.NewRay(core.NewVec3(2, 0, 0), core.NewVec3(0, 1, 0))

	_, isHit := sphere.Hit(ray, 0.001, 1000.0, nil)
	assert.False(t, isHit)
}

func TestSphere_Hit_FrontAndBackFace(t *testing.T) {
	sphere := NewSphere(core.NewVec3(0, 0, 0), 1.0, testMaterial)

	tests := []struct {
		name           string
		rayOrigin      core.Vec3
		rayDirection   core.Vec3
		expectedT      float64
		expectedFront  bool
		expectedNormal core.Vec3
	}{
		{
			name:           "front face hit",
			rayOrigin:      core.NewVec3(0, 0, 2),
			rayDirection:   core.NewVec3(0, 0, -1),
			expectedT:      1.0,
			expectedFront:  true,
			expectedNormal: core.NewVec3(0, 0, 1),
		},
		{
			name:           "back face hit",
			rayOrigin:      core.NewVec3(0, 0, 0),
			rayDirection:   core.NewVec3(0, 0, 1),
			expectedT:      1.0,
			expectedFront:  false,
			expectedNormal: core.NewVec3(0, 0, -1),
		},
		{
			name:           "far root when near root is behind tMin",
			rayOrigin:      core.NewVec3(0, 0, 2),
			rayDirection:   core.NewVec3(0, 0, -1),
			expectedT:      3.0,
			expectedFront:  false,
			expectedNormal: core.NewVec3(0, 0, 1),
		},
	}

	for i, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tMin := 0.001
			if i == 2 {
				tMin = 1.5
			}
			hit, ok := sphere.Hit(core.NewRay(tt.rayOrigin, tt.rayDirection), tMin, 1000, nil)
			require.True(t, ok)
			assert.InDelta(t, tt.expectedT, hit.T, 1e-9)
			assert.Equal(t, tt.expectedFront, hit.FrontFace)
			assert.InDelta(t, 0.0, hit.Normal.Subtract(tt.expectedNormal).Length(), 1e-9)
			assert.Same(t, testMaterial, hit.Material)
		})
	}
}

// Every reported hit point lies on the surface
func TestSphere_HitPointsOnSurface(t *testing.T) {
	sampler := core.NewRandomSampler(11, 0)
	for i := 0; i < 500; i++ {
		center := sampler.Get3D().Multiply(20).Subtract(core.NewVec3(10, 10, 10))
		radius := 0.5 + 3*sampler.Get1D()
		sphere := NewSphere(center, radius, testMaterial)

		// Aim at a point within the sphere so the closest approach is < r
		target := center.Add(core.SamplePointInUnitSphere(sampler.Get3D()).Multiply(0.99 * radius))
		origin := center.Add(core.SampleOnUnitSphere(sampler.Get2D()).Multiply(radius + 5 + 10*sampler.Get1D()))
		ray := core.NewRay(origin, target.Subtract(origin).Multiply(0.1+sampler.Get1D()))

		hit, ok := sphere.Hit(ray, 0.001, math.Inf(1), nil)
		require.True(t, ok)
		assert.InDelta(t, radius, hit.Point.Subtract(center).Length(), 1e-9*radius*10)
		assert.Less(t, hit.Normal.Dot(ray.Direction), 0.0)
	}
}

func TestSphere_UV(t *testing.T) {
	sphere := NewSphere(core.Vec3{}, 1, testMaterial)

	tests := []struct {
		name   string
		origin core.Vec3
		uv     core.Vec2
	}{
		{"+x", core.NewVec3(5, 0, 0), core.NewVec2(0.5, 0.5)},
		{"+y", core.NewVec3(0, 5, 0), core.NewVec2(0.5, 1.0)},
		{"-y", core.NewVec3(0, -5, 0), core.NewVec2(0.5, 0.0)},
		{"+z", core.NewVec3(0, 0, 5), core.NewVec2(0.25, 0.5)},
		{"-z", core.NewVec3(0, 0, -5), core.NewVec2(0.75, 0.5)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hit, ok := sphere.Hit(core.NewRay(tt.origin, tt.origin.Negate()), 0.001, 100, nil)
			require.True(t, ok)
			assert.InDelta(t, tt.uv.X, hit.UV.X, 1e-9)
			assert.InDelta(t, tt.uv.Y, hit.UV.Y, 1e-9)
		})
	}
}

func TestSphere_PDF(t *testing.T) {
	sphere := NewSphere(core.NewVec3(0, 0, -4), 1, testMaterial)
	origin := core.Vec3{}
	sampler := core.NewRandomSampler(3, 3)

	expected := 1 / (2 * math.Pi * (1 - math.Sqrt(1-1.0/16)))
	assert.InDelta(t, expected, sphere.PDFValue(origin, core.NewVec3(0, 0, -1)), 1e-9)
	assert.Equal(t, 0.0, sphere.PDFValue(origin, core.NewVec3(0, 0, 1)))

	for i := 0; i < 500; i++ {
		d := sphere.Random(origin, sampler)
		_, ok := sphere.Hit(core.NewRay(origin, d), 0.001, math.Inf(1), nil)
		assert.True(t, ok, "sampled direction %v should hit the sphere", d)
	}
}

func TestMovingSphere(t *testing.T) {
	sphere := NewMovingSphere(core.NewVec3(0, 0, 0), core.NewVec3(0, 2, 0), 0, 1, 0.5, testMaterial)

	assert.Equal(t, core.NewVec3(0, 1, 0), sphere.Center(0.5))

	ray := core.NewRayAtTime(core.NewVec3(0, 2, 5), core.NewVec3(0, 0, -1), 0)
	_, ok := sphere.Hit(ray, 0.001, 100, nil)
	assert.False(t, ok, "sphere is still at the origin at time 0")

	ray.Time = 1
	hit, ok := sphere.Hit(ray, 0.001, 100, nil)
	require.True(t, ok)
	assert.InDelta(t, 4.5, hit.T, 1e-9)

	box, ok := sphere.BoundingBox(0, 1)
	require.True(t, ok)
	assert.Equal(t, core.NewVec3(-0.5, -0.5, -0.5), box.Min)
	assert.Equal(t, core.NewVec3(0.5, 2.5, 0.5), box.Max)
}
