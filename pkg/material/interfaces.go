package material

import (
	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/pdf"
)

// Material describes how a surface scatters and emits light.
// The set of materials is closed: Lambertian, Metal, Dielectric, DiffuseLight and Isotropic.
type Material interface {
	// Scatter returns the outgoing scatter event, or false when the ray is absorbed
	Scatter(rayIn core.Ray, hit *HitRecord, sampler core.Sampler) (Scatter, bool)

	// Emitted returns light emitted at the hit point (black for non-emitters)
	Emitted(uv core.Vec2, point core.Vec3) core.Vec3

	// ScatteringPDF is the density the BSDF assigns to the scattered direction.
	// Only meaningful for importance-sampled materials.
	ScatteringPDF(rayIn core.Ray, hit *HitRecord, scattered core.Ray) float64

	sealed()
}

// Scatter is the result of a scatter event. Exactly one outcome is set:
// specular events carry the continuation Ray, importance events carry the BSDF PDF.
type Scatter struct {
	Attenuation core.Vec3
	Specular    bool
	Ray         core.Ray
	PDF         pdf.PDF
}

// SpecularScatter creates a scatter event that follows a single ray
func SpecularScatter(attenuation core.Vec3, ray core.Ray) Scatter {
	return Scatter{Attenuation: attenuation, Specular: true, Ray: ray}
}

// ImportanceScatter creates a scatter event sampled from a PDF
func ImportanceScatter(attenuation core.Vec3, p pdf.PDF) Scatter {
	return Scatter{Attenuation: attenuation, PDF: p}
}

// HitRecord contains information about a ray-object intersection
type HitRecord struct {
	Point     core.Vec3 // Point of intersection
	Normal    core.Vec3 // Surface normal, always opposing the incoming ray
	T         float64   // Parameter t along the ray
	FrontFace bool      // Whether ray hit the front face
	Material  Material  // Material of the hit object, shared between primitives
	UV        core.Vec2 // Surface coordinates
}

// SetFaceNormal sets the normal vector and determines front/back face
func (h *HitRecord) SetFaceNormal(ray core.Ray, outwardNormal core.Vec3) {
	h.FrontFace = ray.Direction.Dot(outwardNormal) < 0
	if h.FrontFace {
		h.Normal = outwardNormal
	} else {
		h.Normal = outwardNormal.Negate()
	}
}

// nonEmitter provides the default Emitted for materials that do not glow
type nonEmitter struct{}

func (nonEmitter) Emitted(core.Vec2, core.Vec3) core.Vec3 { return core.Vec3{} }
