package geometry

import (
	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/material"
)

// FlipFace reports hits on the wrapped object with the opposite facing.
// Only FrontFace changes; the normal still opposes the ray.
type FlipFace struct {
	Object Hittable
}

// NewFlipFace wraps object
func NewFlipFace(object Hittable) *FlipFace {
	return &FlipFace{Object: object}
}

func (f *FlipFace) Hit(ray core.Ray, tMin, tMax float64, sampler core.Sampler) (*material.HitRecord, bool) {
	hit, ok := f.Object.Hit(ray, tMin, tMax, sampler)
	if !ok {
		return nil, false
	}
	hit.FrontFace = !hit.FrontFace
	return hit, true
}

func (f *FlipFace) BoundingBox(time0, time1 float64) (core.AABB, bool) {
	return f.Object.BoundingBox(time0, time1)
}

func (f *FlipFace) PDFValue(origin, direction core.Vec3) float64 {
	return f.Object.PDFValue(origin, direction)
}

func (f *FlipFace) Random(origin core.Vec3, sampler core.Sampler) core.Vec3 {
	return f.Object.Random(origin, sampler)
}

func (*FlipFace) sealed() {}
