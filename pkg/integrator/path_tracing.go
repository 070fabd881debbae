package integrator

import (
	"math"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/pdf"
)

// ShadowAcneEpsilon is the minimum ray parameter accepted for a hit, so that
// rays leaving a surface do not immediately re-hit it.
const ShadowAcneEpsilon = 0.001

// Background is the radiance of rays that escape the scene: a vertical blend
// from Bottom (looking straight down) to Top (looking straight up).
type Background struct {
	Top    core.Vec3
	Bottom core.Vec3
}

// SolidBackground returns a constant background
func SolidBackground(color core.Vec3) Background {
	return Background{Top: color, Bottom: color}
}

// SkyBackground returns the classic white-to-blue sky gradient
func SkyBackground() Background {
	return Background{Top: core.NewVec3(0.5, 0.7, 1.0), Bottom: core.NewVec3(1, 1, 1)}
}

// Color returns the background radiance seen along ray
func (b Background) Color(ray core.Ray) core.Vec3 {
	if b.Top == b.Bottom {
		return b.Top
	}
	t := 0.5 * (ray.Direction.Normalize().Y + 1.0)
	return b.Bottom.Multiply(1.0 - t).Add(b.Top.Multiply(t))
}

// PathTracingIntegrator estimates radiance with unidirectional path tracing.
// Diffuse bounces sample an even mixture of the BSDF and the scene's lights.
type PathTracingIntegrator struct {
	MaxDepth   int
	Background Background
}

// NewPathTracingIntegrator creates a new path tracing integrator
func NewPathTracingIntegrator(maxDepth int, background Background) *PathTracingIntegrator {
	return &PathTracingIntegrator{MaxDepth: maxDepth, Background: background}
}

// RayColor computes the radiance arriving along ray. lights may be nil, in
// which case diffuse bounces only sample the BSDF.
func (pt *PathTracingIntegrator) RayColor(ray core.Ray, world, lights geometry.Hittable, sampler core.Sampler) core.Vec3 {
	return pt.rayColor(ray, world, lights, sampler, pt.MaxDepth)
}

func (pt *PathTracingIntegrator) rayColor(ray core.Ray, world, lights geometry.Hittable, sampler core.Sampler, depth int) core.Vec3 {
	// If we've exceeded the ray bounce limit, no more light is gathered
	if depth <= 0 {
		return core.Vec3{}
	}

	hit, isHit := world.Hit(ray, ShadowAcneEpsilon, math.Inf(1), sampler)
	if !isHit {
		return pt.Background.Color(ray)
	}

	emitted := hit.Material.Emitted(hit.UV, hit.Point)

	scatter, didScatter := hit.Material.Scatter(ray, hit, sampler)
	if !didScatter {
		return emitted
	}

	if scatter.Specular {
		incoming := pt.rayColor(scatter.Ray, world, lights, sampler, depth-1)
		return emitted.Add(scatter.Attenuation.MultiplyVec(incoming))
	}

	samplingPDF := scatter.PDF
	if lights != nil {
		samplingPDF = pdf.NewMixture(pdf.NewHittable(lights, hit.Point), scatter.PDF)
	}

	scattered := core.NewRayAtTime(hit.Point, samplingPDF.Generate(sampler), ray.Time)
	pdfValue := samplingPDF.Value(scattered.Direction)
	if !(pdfValue > 0) || math.IsInf(pdfValue, 0) {
		return emitted
	}

	scatteringPDF := hit.Material.ScatteringPDF(ray, hit, scattered)
	if scatteringPDF == 0 {
		return emitted
	}

	incoming := pt.rayColor(scattered, world, lights, sampler, depth-1)
	return emitted.Add(scatter.Attenuation.MultiplyVec(incoming).Multiply(scatteringPDF / pdfValue))
}
