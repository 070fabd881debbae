package geometry

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/material"
)

// Rotate turns the wrapped object about a coordinate axis through the origin
type Rotate struct {
	Object  Hittable
	Axis    core.Axis
	Degrees float64

	forward mgl64.Mat3 // local to world
	inverse mgl64.Mat3 // world to local
}

// NewRotate wraps object, rotating it counter-clockwise by degrees about axis
func NewRotate(object Hittable, axis core.Axis, degrees float64) *Rotate {
	angle := mgl64.DegToRad(degrees)

	var forward mgl64.Mat3
	switch axis {
	case core.AxisX:
		forward = mgl64.Rotate3DX(angle)
	case core.AxisY:
		forward = mgl64.Rotate3DY(angle)
	default:
		forward = mgl64.Rotate3DZ(angle)
	}

	return &Rotate{
		Object:  object,
		Axis:    axis,
		Degrees: degrees,
		forward: forward,
		inverse: forward.Transpose(),
	}
}

// NewRotateY is shorthand for a rotation about the Y axis
func NewRotateY(object Hittable, degrees float64) *Rotate {
	return NewRotate(object, core.AxisY, degrees)
}

func toMgl(v core.Vec3) mgl64.Vec3 {
	return mgl64.Vec3{v.X, v.Y, v.Z}
}

func fromMgl(v mgl64.Vec3) core.Vec3 {
	return core.NewVec3(v[0], v[1], v[2])
}

func (r *Rotate) toLocal(v core.Vec3) core.Vec3 {
	return fromMgl(r.inverse.Mul3x1(toMgl(v)))
}

func (r *Rotate) toWorld(v core.Vec3) core.Vec3 {
	return fromMgl(r.forward.Mul3x1(toMgl(v)))
}

// Hit rotates the ray into the object's frame and the hit back out.
// Rotation preserves the sign of dot(direction, normal), so facing carries over.
func (r *Rotate) Hit(ray core.Ray, tMin, tMax float64, sampler core.Sampler) (*material.HitRecord, bool) {
	local := core.NewRayAtTime(r.toLocal(ray.Origin), r.toLocal(ray.Direction), ray.Time)

	hit, ok := r.Object.Hit(local, tMin, tMax, sampler)
	if !ok {
		return nil, false
	}

	hit.Point = r.toWorld(hit.Point)
	hit.Normal = r.toWorld(hit.Normal)
	return hit, true
}

// BoundingBox bounds all eight rotated corners of the child's box
func (r *Rotate) BoundingBox(time0, time1 float64) (core.AABB, bool) {
	box, ok := r.Object.BoundingBox(time0, time1)
	if !ok {
		return core.AABB{}, false
	}
	if !isFinite(box.Min) || !isFinite(box.Max) {
		return core.InfiniteAABB(), true
	}

	corners := box.Corners()
	for i := range corners {
		corners[i] = r.toWorld(corners[i])
	}
	return core.NewAABBFromPoints(corners[:]...), true
}

func (r *Rotate) PDFValue(origin, direction core.Vec3) float64 {
	return r.Object.PDFValue(r.toLocal(origin), r.toLocal(direction))
}

func (r *Rotate) Random(origin core.Vec3, sampler core.Sampler) core.Vec3 {
	return r.toWorld(r.Object.Random(r.toLocal(origin), sampler))
}

func (*Rotate) sealed() {}

func isFinite(v core.Vec3) bool {
	return !math.IsInf(v.X, 0) && !math.IsInf(v.Y, 0) && !math.IsInf(v.Z, 0) && !v.HasNaN()
}
