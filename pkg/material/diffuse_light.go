package material

import (
	"github.com/df07/go-pathtracer/pkg/core"
)

// DiffuseLight is an emitter. It never scatters and glows the same on both sides.
type DiffuseLight struct {
	Emit ColorSource
}

// NewDiffuseLight creates a new light with a solid emission color
func NewDiffuseLight(emission core.Vec3) *DiffuseLight {
	return &DiffuseLight{Emit: NewSolidColor(emission)}
}

// NewTexturedDiffuseLight creates a light whose emission comes from a texture
func NewTexturedDiffuseLight(emit ColorSource) *DiffuseLight {
	return &DiffuseLight{Emit: emit}
}

// Scatter always absorbs
func (l *DiffuseLight) Scatter(rayIn core.Ray, hit *HitRecord, sampler core.Sampler) (Scatter, bool) {
	return Scatter{}, false
}

// Emitted returns the texture color regardless of which side was hit
func (l *DiffuseLight) Emitted(uv core.Vec2, point core.Vec3) core.Vec3 {
	return l.Emit.Evaluate(uv, point)
}

func (l *DiffuseLight) ScatteringPDF(rayIn core.Ray, hit *HitRecord, scattered core.Ray) float64 {
	return 0
}

func (*DiffuseLight) sealed() {}
