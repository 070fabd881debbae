package geometry

import (
	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/material"
)

// Hittable is anything a ray can intersect. The set is closed: primitives
// (Sphere, MovingSphere, Rect, Block, ConstantMedium), decorators (FlipFace,
// Translate, Rotate) and aggregates (HittableList, BVH).
//
// Hittables are read-only once built and may be shared between goroutines.
// The sampler belongs to the calling worker and is only used by hittables
// that need randomness to answer a query.
type Hittable interface {
	Hit(ray core.Ray, tMin, tMax float64, sampler core.Sampler) (*material.HitRecord, bool)

	// BoundingBox returns a box containing the object over the time interval,
	// or false if the object is unbounded.
	BoundingBox(time0, time1 float64) (core.AABB, bool)

	// PDFValue is the solid-angle density of sampling direction from origin toward the object
	PDFValue(origin, direction core.Vec3) float64

	// Random returns a direction from origin toward the object
	Random(origin core.Vec3, sampler core.Sampler) core.Vec3

	sealed()
}

// unsampled provides the defaults for hittables that cannot be sampled as lights
type unsampled struct{}

func (unsampled) PDFValue(origin, direction core.Vec3) float64 { return 0 }

func (unsampled) Random(origin core.Vec3, sampler core.Sampler) core.Vec3 {
	return core.NewVec3(1, 0, 0)
}
