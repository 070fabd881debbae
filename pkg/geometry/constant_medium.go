package geometry

import (
	"math"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/material"
)

// boundaryEpsilon separates the entry and exit crossings of a medium boundary
const boundaryEpsilon = 0.0001

// ConstantMedium is a homogeneous participating medium (fog or smoke) filling
// a closed boundary shape
type ConstantMedium struct {
	unsampled
	Boundary      Hittable
	Density       float64
	PhaseFunction *material.Isotropic
}

// NewConstantMedium fills boundary with a medium of the given density and albedo
func NewConstantMedium(boundary Hittable, density float64, albedo material.ColorSource) *ConstantMedium {
	return &ConstantMedium{
		Boundary:      boundary,
		Density:       density,
		PhaseFunction: material.NewIsotropic(albedo),
	}
}

// Hit draws a free-flight distance -ln(U)/density and reports a scattering
// event when it falls inside the boundary along the ray.
func (m *ConstantMedium) Hit(ray core.Ray, tMin, tMax float64, sampler core.Sampler) (*material.HitRecord, bool) {
	entry, ok := m.Boundary.Hit(ray, math.Inf(-1), math.Inf(1), sampler)
	if !ok {
		return nil, false
	}
	exit, ok := m.Boundary.Hit(ray, entry.T+boundaryEpsilon, math.Inf(1), sampler)
	if !ok {
		return nil, false
	}

	t0 := max(entry.T, tMin)
	t1 := min(exit.T, tMax)
	if t0 >= t1 {
		return nil, false
	}
	t0 = max(t0, 0)

	rayLength := ray.Direction.Length()
	distanceInsideBoundary := (t1 - t0) * rayLength
	hitDistance := -math.Log(sampler.Get1D()) / m.Density
	if hitDistance > distanceInsideBoundary {
		return nil, false
	}

	t := t0 + hitDistance/rayLength
	return &material.HitRecord{
		T:         t,
		Point:     ray.At(t),
		Normal:    core.NewVec3(1, 0, 0), // arbitrary
		FrontFace: true,
		Material:  m.PhaseFunction,
		UV:        entry.UV,
	}, true
}

func (m *ConstantMedium) BoundingBox(time0, time1 float64) (core.AABB, bool) {
	return m.Boundary.BoundingBox(time0, time1)
}

func (*ConstantMedium) sealed() {}
