package material

import (
	"math"
	"testing"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/pdf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLambertian_ScatterIsImportanceSampled(t *testing.T) {
	albedo := core.NewVec3(0.5, 0.7, 0.9)
	lambertian := NewLambertian(albedo)
	sampler := core.NewRandomSampler(42, 0)

	normal := core.NewVec3(0, 0, 1)
	hit := &HitRecord{Point: core.Vec3{}, Normal: normal, FrontFace: true}
	ray := core.NewRay(core.NewVec3(0, 0, 1), core.NewVec3(0, 0, -1))

	scatter, ok := lambertian.Scatter(ray, hit, sampler)
	require.True(t, ok)
	assert.False(t, scatter.Specular)
	assert.Equal(t, albedo, scatter.Attenuation)
	require.IsType(t, &pdf.Cosine{}, scatter.PDF)

	// The BSDF density and the sampling density agree for pure cosine sampling
	for i := 0; i < 100; i++ {
		dir := scatter.PDF.Generate(sampler)
		scattered := core.NewRay(hit.Point, dir)
		assert.InDelta(t, scatter.PDF.Value(dir), lambertian.ScatteringPDF(ray, hit, scattered), 1e-10)
	}
}

func TestLambertian_ScatteringPDF(t *testing.T) {
	lambertian := NewLambertian(core.NewVec3(1, 1, 1))
	hit := &HitRecord{Normal: core.NewVec3(0, 1, 0)}

	tests := []struct {
		name     string
		dir      core.Vec3
		expected float64
	}{
		{"along normal", core.NewVec3(0, 1, 0), 1 / math.Pi},
		{"unnormalized along normal", core.NewVec3(0, 3, 0), 1 / math.Pi},
		{"45 degrees", core.NewVec3(1, 1, 0), math.Sqrt2 / 2 / math.Pi},
		{"below surface", core.NewVec3(0, -1, 0), 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := lambertian.ScatteringPDF(core.Ray{}, hit, core.NewRay(core.Vec3{}, tt.dir))
			assert.InDelta(t, tt.expected, got, 1e-12)
		})
	}
}

func TestLambertian_TexturedAlbedo(t *testing.T) {
	tex := ColorFunc(func(uv core.Vec2, p core.Vec3) core.Vec3 { return core.NewVec3(uv.X, uv.Y, p.Z) })
	lambertian := NewTexturedLambertian(tex)
	hit := &HitRecord{Point: core.NewVec3(0, 0, 0.25), Normal: core.NewVec3(0, 0, 1), UV: core.NewVec2(0.1, 0.2)}

	scatter, ok := lambertian.Scatter(core.Ray{}, hit, core.NewRandomSampler(1, 1))
	require.True(t, ok)
	assert.Equal(t, core.NewVec3(0.1, 0.2, 0.25), scatter.Attenuation)
}
