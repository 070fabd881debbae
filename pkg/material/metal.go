package material

import (
	"github.com/df07/go-pathtracer/pkg/core"
)

// Metal represents a reflective material
type Metal struct {
	nonEmitter
	Albedo core.Vec3
	Fuzz   float64 // 0 is a perfect mirror, clamped to at most 1
}

// NewMetal creates a new metal material
func NewMetal(albedo core.Vec3, fuzz float64) *Metal {
	return &Metal{Albedo: albedo, Fuzz: max(0, min(fuzz, 1))}
}

// Scatter reflects the incoming ray about the normal, perturbed by the fuzz factor.
// Reflections that end up below the surface are absorbed.
func (m *Metal) Scatter(rayIn core.Ray, hit *HitRecord, sampler core.Sampler) (Scatter, bool) {
	reflected := rayIn.Direction.Normalize().Reflect(hit.Normal)
	if m.Fuzz > 0 {
		reflected = reflected.Add(core.SamplePointInUnitSphere(sampler.Get3D()).Multiply(m.Fuzz))
	}

	if reflected.Dot(hit.Normal) <= 0 {
		return Scatter{}, false
	}

	return SpecularScatter(m.Albedo, core.NewRayAtTime(hit.Point, reflected, rayIn.Time)), true
}

// ScatteringPDF is zero: metal is sampled specularly
func (m *Metal) ScatteringPDF(rayIn core.Ray, hit *HitRecord, scattered core.Ray) float64 {
	return 0
}

func (*Metal) sealed() {}
