package geometry

import (
	"math"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/material"
)

// rectThickness pads the box of a rectangle along its normal so it never has zero volume
const rectThickness = 0.0002

// Rect is an axis-aligned rectangle lying in the plane Normal = K.
// A0..A1 and B0..B1 bound the other two axes in X, Y, Z order.
// The outward normal points along the positive Normal axis.
type Rect struct {
	Normal   core.Axis
	A0, A1   float64
	B0, B1   float64
	K        float64
	Material material.Material
}

// NewXYRect creates a rectangle in the plane z = k
func NewXYRect(x0, x1, y0, y1, k float64, mat material.Material) *Rect {
	return &Rect{Normal: core.AxisZ, A0: x0, A1: x1, B0: y0, B1: y1, K: k, Material: mat}
}

// NewXZRect creates a rectangle in the plane y = k
func NewXZRect(x0, x1, z0, z1, k float64, mat material.Material) *Rect {
	return &Rect{Normal: core.AxisY, A0: x0, A1: x1, B0: z0, B1: z1, K: k, Material: mat}
}

// NewYZRect creates a rectangle in the plane x = k
func NewYZRect(y0, y1, z0, z1, k float64, mat material.Material) *Rect {
	return &Rect{Normal: core.AxisX, A0: y0, A1: y1, B0: z0, B1: z1, K: k, Material: mat}
}

// axes returns the two in-plane axes
func (r *Rect) axes() (core.Axis, core.Axis) {
	switch r.Normal {
	case core.AxisX:
		return core.AxisY, core.AxisZ
	case core.AxisY:
		return core.AxisX, core.AxisZ
	default:
		return core.AxisX, core.AxisY
	}
}

// point builds a 3D point from in-plane coordinates
func (r *Rect) point(a, b float64) core.Vec3 {
	switch r.Normal {
	case core.AxisX:
		return core.NewVec3(r.K, a, b)
	case core.AxisY:
		return core.NewVec3(a, r.K, b)
	default:
		return core.NewVec3(a, b, r.K)
	}
}

func axisVector(axis core.Axis) core.Vec3 {
	switch axis {
	case core.AxisX:
		return core.NewVec3(1, 0, 0)
	case core.AxisY:
		return core.NewVec3(0, 1, 0)
	default:
		return core.NewVec3(0, 0, 1)
	}
}

// Area returns the rectangle's area
func (r *Rect) Area() float64 {
	return (r.A1 - r.A0) * (r.B1 - r.B0)
}

func (r *Rect) Hit(ray core.Ray, tMin, tMax float64, sampler core.Sampler) (*material.HitRecord, bool) {
	axisA, axisB := r.axes()

	t := (r.K - ray.Origin.Get(r.Normal)) / ray.Direction.Get(r.Normal)
	if math.IsNaN(t) || t < tMin || t > tMax {
		return nil, false
	}

	a := ray.Origin.Get(axisA) + t*ray.Direction.Get(axisA)
	b := ray.Origin.Get(axisB) + t*ray.Direction.Get(axisB)
	if a < r.A0 || a > r.A1 || b < r.B0 || b > r.B1 {
		return nil, false
	}

	hit := &material.HitRecord{
		T:        t,
		Point:    ray.At(t),
		Material: r.Material,
		UV:       core.NewVec2((a-r.A0)/(r.A1-r.A0), (b-r.B0)/(r.B1-r.B0)),
	}
	hit.SetFaceNormal(ray, axisVector(r.Normal))
	return hit, true
}

// BoundingBox is padded along the normal axis
func (r *Rect) BoundingBox(time0, time1 float64) (core.AABB, bool) {
	return core.NewAABBFromPoints(r.point(r.A0, r.B0), r.point(r.A1, r.B1)).Pad(rectThickness), true
}

// PDFValue converts the uniform area density of the rectangle to solid angle at origin
func (r *Rect) PDFValue(origin, direction core.Vec3) float64 {
	hit, ok := r.Hit(core.NewRay(origin, direction), 0.001, math.Inf(1), nil)
	if !ok {
		return 0
	}

	distanceSquared := hit.T * hit.T * direction.LengthSquared()
	cosine := math.Abs(direction.Get(r.Normal)) / direction.Length()
	if cosine == 0 {
		return 0
	}
	return distanceSquared / (cosine * r.Area())
}

// Random returns the direction from origin to a uniform point on the rectangle
func (r *Rect) Random(origin core.Vec3, sampler core.Sampler) core.Vec3 {
	s := sampler.Get2D()
	p := r.point(r.A0+s.X*(r.A1-r.A0), r.B0+s.Y*(r.B1-r.B0))
	return p.Subtract(origin)
}

func (*Rect) sealed() {}
