package material

import (
	"github.com/df07/go-pathtracer/pkg/core"
)

// Isotropic is the phase function of a participating medium: it scatters
// uniformly in every direction.
type Isotropic struct {
	nonEmitter
	Albedo ColorSource
}

// NewIsotropic creates an isotropic phase function with the given albedo
func NewIsotropic(albedo ColorSource) *Isotropic {
	return &Isotropic{Albedo: albedo}
}

// Scatter picks a direction from the unit ball
func (i *Isotropic) Scatter(rayIn core.Ray, hit *HitRecord, sampler core.Sampler) (Scatter, bool) {
	direction := core.SamplePointInUnitSphere(sampler.Get3D())
	if direction.NearZero() {
		direction = hit.Normal
	}
	scattered := core.NewRayAtTime(hit.Point, direction, rayIn.Time)
	return SpecularScatter(i.Albedo.Evaluate(hit.UV, hit.Point), scattered), true
}

func (i *Isotropic) ScatteringPDF(rayIn core.Ray, hit *HitRecord, scattered core.Ray) float64 {
	return 0
}

func (*Isotropic) sealed() {}
