package geometry

import (
	"math"
	"testing"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRect_Hit(t *testing.T) {
	tests := []struct {
		name   string
		rect   *Rect
		ray    core.Ray
		hit    bool
		t      float64
		uv     core.Vec2
		normal core.Vec3
	}{
		{
			name:   "xy from front",
			rect:   NewXYRect(0, 2, 0, 4, 1, testMaterial),
			ray:    core.NewRay(core.NewVec3(1, 1, 5), core.NewVec3(0, 0, -1)),
			hit:    true,
			t:      4,
			uv:     core.NewVec2(0.5, 0.25),
			normal: core.NewVec3(0, 0, 1),
		},
		{
			name:   "xz from below",
			rect:   NewXZRect(-1, 1, -1, 1, 3, testMaterial),
			ray:    core.NewRay(core.NewVec3(0.5, 0, -0.5), core.NewVec3(0, 1, 0)),
			hit:    true,
			t:      3,
			uv:     core.NewVec2(0.75, 0.25),
			normal: core.NewVec3(0, -1, 0),
		},
		{
			name:   "yz",
			rect:   NewYZRect(0, 1, 0, 1, -2, testMaterial),
			ray:    core.NewRay(core.NewVec3(0, 0.5, 0.5), core.NewVec3(-1, 0, 0)),
			hit:    true,
			t:      2,
			uv:     core.NewVec2(0.5, 0.5),
			normal: core.NewVec3(1, 0, 0),
		},
		{
			name: "outside bounds",
			rect: NewXYRect(0, 2, 0, 4, 1, testMaterial),
			ray:  core.NewRay(core.NewVec3(3, 1, 5), core.NewVec3(0, 0, -1)),
		},
		{
			name: "parallel",
			rect: NewXYRect(0, 2, 0, 4, 1, testMaterial),
			ray:  core.NewRay(core.NewVec3(1, 1, 5), core.NewVec3(1, 0, 0)),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hit, ok := tt.rect.Hit(tt.ray, 0.001, math.Inf(1), nil)
			require.Equal(t, tt.hit, ok)
			if !ok {
				return
			}
			assert.InDelta(t, tt.t, hit.T, 1e-12)
			assert.InDelta(t, tt.uv.X, hit.UV.X, 1e-12)
			assert.InDelta(t, tt.uv.Y, hit.UV.Y, 1e-12)
			assert.Equal(t, tt.normal, hit.Normal)
		})
	}
}

func TestRect_BoundingBoxIsPadded(t *testing.T) {
	box, ok := NewXZRect(0, 555, 0, 555, 554, testMaterial).BoundingBox(0, 1)
	require.True(t, ok)
	assert.Greater(t, box.Max.Y-box.Min.Y, 0.0)
	assert.InDelta(t, 554-0.0001, box.Min.Y, 1e-9)
	assert.InDelta(t, 554+0.0001, box.Max.Y, 1e-9)

	// The padded box must not be rejected by the slab test for a perpendicular ray
	assert.True(t, box.Hit(core.NewRay(core.NewVec3(100, 0, 100), core.NewVec3(0, 1, 0)), 0.001, math.Inf(1)))
}

// Monte Carlo estimate of the solid angle the rect subtends must match 1/pdf integration
func TestRect_PDF(t *testing.T) {
	rect := NewXZRect(-1, 1, -1, 1, 2, testMaterial)
	origin := core.Vec3{}
	sampler := core.NewRandomSampler(17, 0)

	// Directly below the center: distance 2, cosine 1, area 4
	assert.InDelta(t, 4.0/4.0, rect.PDFValue(origin, core.NewVec3(0, 1, 0)), 1e-12)
	assert.Equal(t, 0.0, rect.PDFValue(origin, core.NewVec3(0, -1, 0)))

	// E[1/pdf] over the rect's own samples is the subtended solid angle
	const n = 50000
	solidAngle := 0.0
	for i := 0; i < n; i++ {
		d := rect.Random(origin, sampler)
		p := rect.PDFValue(origin, d)
		require.Greater(t, p, 0.0)
		solidAngle += 1 / p
	}
	solidAngle /= n

	// Uniform-sphere estimate of the same solid angle
	const m = 400000
	hits := 0
	for i := 0; i < m; i++ {
		if _, ok := rect.Hit(core.NewRay(origin, core.SampleOnUnitSphere(sampler.Get2D())), 0.001, math.Inf(1), nil); ok {
			hits++
		}
	}
	reference := 4 * math.Pi * float64(hits) / m
	assert.InDelta(t, reference, solidAngle, 0.05*reference)
}
