package integrator

import (
	"math"
	"testing"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/material"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBackground(t *testing.T) {
	sky := SkyBackground()
	assert.Equal(t, sky.Top, sky.Color(core.NewRay(core.Vec3{}, core.NewVec3(0, 1, 0))))
	assert.Equal(t, sky.Bottom, sky.Color(core.NewRay(core.Vec3{}, core.NewVec3(0, -3, 0))))

	solid := SolidBackground(core.NewVec3(0.1, 0.2, 0.3))
	assert.Equal(t, core.NewVec3(0.1, 0.2, 0.3), solid.Color(core.NewRay(core.Vec3{}, core.NewVec3(1, 0.3, 0))))
}

func TestRayColor_DepthZeroIsBlack(t *testing.T) {
	world := geometry.NewHittableList(
		geometry.NewSphere(core.NewVec3(0, 0, -1), 0.5, material.NewDiffuseLight(core.NewVec3(5, 5, 5))),
	)
	pt := NewPathTracingIntegrator(0, SkyBackground())

	sampler := core.NewRandomSampler(1, 0)
	for _, dir := range []core.Vec3{core.NewVec3(0, 0, -1), core.NewVec3(0, 1, 0)} {
		assert.Equal(t, core.Vec3{}, pt.RayColor(core.NewRay(core.Vec3{}, dir), world, nil, sampler))
	}
}

func TestRayColor_MissReturnsBackground(t *testing.T) {
	world := geometry.NewHittableList(
		geometry.NewSphere(core.NewVec3(0, -1000, 0), 999, material.NewLambertian(core.NewVec3(0.5, 0.5, 0.5))),
	)
	pt := NewPathTracingIntegrator(1, SkyBackground())
	ray := core.NewRay(core.Vec3{}, core.NewVec3(0.3, 1, -1))

	assert.Equal(t, pt.Background.Color(ray), pt.RayColor(ray, world, nil, core.NewRandomSampler(0, 0)))
}

// A perfect mirror shows an emitter scaled by exactly the mirror albedo
func TestRayColor_MirrorReflectsEmitterExactly(t *testing.T) {
	albedo := core.NewVec3(0.5, 0.25, 1)
	emission := core.NewVec3(4, 2, 1)

	mirror := geometry.NewXZRect(-10, 10, -10, 10, 0, material.NewMetal(albedo, 0))
	lamp := geometry.NewSphere(core.NewVec3(0, 10, 0), 1, material.NewDiffuseLight(emission))
	world := geometry.NewHittableList(mirror, lamp)

	pt := NewPathTracingIntegrator(5, SolidBackground(core.Vec3{}))
	ray := core.NewRay(core.NewVec3(0, 1, 0), core.NewVec3(0, -1, 0))

	got := pt.RayColor(ray, world, lamp, core.NewRandomSampler(9, 9))
	assert.Equal(t, albedo.MultiplyVec(emission), got)
}

// rectangleFormFactor is the fraction of cosine-weighted hemisphere covered by
// a rectangle parallel to the receiving point, with one corner directly above it
func rectangleFormFactor(width, depth, height float64) float64 {
	x, y := width/height, depth/height
	sx, sy := math.Sqrt(1+x*x), math.Sqrt(1+y*y)
	return (x/sx*math.Atan(y/sx) + y/sy*math.Atan(x/sy)) / (2 * math.Pi)
}

// A diffuse patch lit by a single rectangular emitter converges to the
// closed-form direct lighting result
func TestRayColor_DirectLightingConverges(t *testing.T) {
	albedo := 0.7
	emission := 3.0
	height := 1.0
	half := 0.5

	floor := geometry.NewXZRect(-100, 100, -100, 100, 0, material.NewLambertian(core.NewVec3(albedo, albedo, albedo)))
	light := geometry.NewFlipFace(geometry.NewXZRect(-half, half, -half, half, height, material.NewDiffuseLight(core.NewVec3(emission, emission, emission))))
	world := geometry.NewHittableList(floor, light)

	// Depth 2: the camera ray hits the floor, the bounce either reaches the light or escapes into black
	pt := NewPathTracingIntegrator(2, SolidBackground(core.Vec3{}))
	ray := core.NewRay(core.NewVec3(0, 0.5, 0), core.NewVec3(0, -1, 0))
	sampler := core.NewRandomSampler(77, 0)

	const n = 100000
	sum := 0.0
	for i := 0; i < n; i++ {
		c := pt.RayColor(ray, world, light, sampler)
		require.False(t, c.HasNaN())
		sum += c.X
	}

	expected := albedo * emission * 4 * rectangleFormFactor(half, half, height)
	assert.InDelta(t, expected, sum/n, 0.02*expected)
}

// Without lights to sample the estimator falls back to pure BSDF sampling and
// converges to the same answer
func TestRayColor_NoLightsUsesBSDFOnly(t *testing.T) {
	albedo := 0.5
	floor := geometry.NewXZRect(-100, 100, -100, 100, 0, material.NewLambertian(core.NewVec3(albedo, albedo, albedo)))
	world := geometry.NewHittableList(floor)

	// Uniform white sky seen from a diffuse floor reflects albedo * sky
	pt := NewPathTracingIntegrator(2, SolidBackground(core.NewVec3(1, 1, 1)))
	ray := core.NewRay(core.NewVec3(0, 1, 0), core.NewVec3(0, -1, 0))
	sampler := core.NewRandomSampler(3, 0)

	const n = 2000
	sum := 0.0
	for i := 0; i < n; i++ {
		sum += pt.RayColor(ray, world, nil, sampler).Y
	}
	assert.InDelta(t, albedo, sum/n, 1e-9)
}

func TestRayColor_AbsorbedRayReturnsEmission(t *testing.T) {
	emission := core.NewVec3(1, 2, 3)
	world := geometry.NewHittableList(geometry.NewSphere(core.NewVec3(0, 0, -3), 1, material.NewDiffuseLight(emission)))
	pt := NewPathTracingIntegrator(10, SkyBackground())

	got := pt.RayColor(core.NewRay(core.Vec3{}, core.NewVec3(0, 0, -1)), world, nil, core.NewRandomSampler(0, 0))
	assert.Equal(t, emission, got)
}

func TestRayColor_GlassIsFinite(t *testing.T) {
	world := geometry.NewHittableList(
		geometry.NewSphere(core.NewVec3(0, 0, -2), 0.5, material.NewTintedDielectric(core.NewVec3(0.8, 0.9, 1), 1.5, 0.5)),
		geometry.NewSphere(core.NewVec3(0, -100.5, -2), 100, material.NewLambertian(core.NewVec3(0.5, 0.5, 0.5))),
		geometry.NewConstantMedium(geometry.NewSphere(core.NewVec3(1, 0, -2), 0.4, nil), 2, material.NewSolidColor(core.NewVec3(1, 1, 1))),
	)
	lights := geometry.NewHittableList(geometry.NewXZRect(-1, 1, -3, -1, 3, material.NewDiffuseLight(core.NewVec3(5, 5, 5))))
	pt := NewPathTracingIntegrator(20, SkyBackground())
	sampler := core.NewRandomSampler(5, 5)

	for i := 0; i < 2000; i++ {
		dir := core.NewVec3(sampler.Get1D()-0.5, sampler.Get1D()-0.5, -1)
		c := pt.RayColor(core.NewRay(core.Vec3{}, dir), world, lights, sampler)
		require.False(t, c.HasNaN())
		require.False(t, math.IsInf(c.X+c.Y+c.Z, 0))
		assert.GreaterOrEqual(t, c.X, 0.0)
	}
}
