package geometry

import (
	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/material"
)

// Block is a closed axis-aligned box made of six rectangles
type Block struct {
	unsampled
	Min, Max core.Vec3
	sides    *HittableList
}

// NewBlock creates a block spanning the corners p0 and p1.
// The faces on the min side are flipped so every face reports outward as front.
func NewBlock(p0, p1 core.Vec3, mat material.Material) *Block {
	p0, p1 = p0.Min(p1), p0.Max(p1)
	sides := NewHittableList(
		NewXYRect(p0.X, p1.X, p0.Y, p1.Y, p1.Z, mat),
		NewFlipFace(NewXYRect(p0.X, p1.X, p0.Y, p1.Y, p0.Z, mat)),
		NewXZRect(p0.X, p1.X, p0.Z, p1.Z, p1.Y, mat),
		NewFlipFace(NewXZRect(p0.X, p1.X, p0.Z, p1.Z, p0.Y, mat)),
		NewYZRect(p0.Y, p1.Y, p0.Z, p1.Z, p1.X, mat),
		NewFlipFace(NewYZRect(p0.Y, p1.Y, p0.Z, p1.Z, p0.X, mat)),
	)
	return &Block{Min: p0, Max: p1, sides: sides}
}

func (b *Block) Hit(ray core.Ray, tMin, tMax float64, sampler core.Sampler) (*material.HitRecord, bool) {
	return b.sides.Hit(ray, tMin, tMax, sampler)
}

func (b *Block) BoundingBox(time0, time1 float64) (core.AABB, bool) {
	return core.NewAABB(b.Min, b.Max), true
}

func (*Block) sealed() {}
