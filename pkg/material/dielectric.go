package material

import (
	"math"

	"github.com/df07/go-pathtracer/pkg/core"
)

// Dielectric represents a transparent material like glass that can both reflect and refract.
// Albedo tints reflections and, together with Density, absorbs light travelling
// through the medium (Beer's law).
type Dielectric struct {
	nonEmitter
	RefractiveIndex float64 // Index of refraction (e.g., 1.5 for glass)
	Albedo          core.Vec3
	Density         float64
}

// NewDielectric creates a clear dielectric material
func NewDielectric(refractiveIndex float64) *Dielectric {
	return NewTintedDielectric(core.NewVec3(1, 1, 1), refractiveIndex, 0)
}

// NewTintedDielectric creates a dielectric with a tint and an absorption density
func NewTintedDielectric(albedo core.Vec3, refractiveIndex, density float64) *Dielectric {
	return &Dielectric{RefractiveIndex: refractiveIndex, Albedo: albedo, Density: density}
}

// Scatter implements the Material interface for dielectric scattering
func (d *Dielectric) Scatter(rayIn core.Ray, hit *HitRecord, sampler core.Sampler) (Scatter, bool) {
	refractionRatio := d.RefractiveIndex
	if hit.FrontFace {
		refractionRatio = 1.0 / d.RefractiveIndex
	}

	unitDirection := rayIn.Direction.Normalize()
	cosTheta := math.Min(unitDirection.Negate().Dot(hit.Normal), 1.0)
	sinTheta := math.Sqrt(1.0 - cosTheta*cosTheta)

	cannotRefract := refractionRatio*sinTheta > 1.0
	if cannotRefract || Reflectance(cosTheta, refractionRatio) > sampler.Get1D() {
		reflected := core.NewRayAtTime(hit.Point, unitDirection.Reflect(hit.Normal), rayIn.Time)
		return SpecularScatter(d.Albedo, reflected), true
	}

	refracted := core.NewRayAtTime(hit.Point, unitDirection.Refract(hit.Normal, refractionRatio), rayIn.Time)
	return SpecularScatter(d.transmittance(rayIn, hit), refracted), true
}

// transmittance applies Beer's law over the distance travelled inside the medium.
// Entering rays have not travelled through the medium yet.
func (d *Dielectric) transmittance(rayIn core.Ray, hit *HitRecord) core.Vec3 {
	if hit.FrontFace || d.Density == 0 {
		return core.NewVec3(1, 1, 1)
	}
	distance := hit.T * rayIn.Direction.Length()
	absorbance := core.NewVec3(1, 1, 1).Subtract(d.Albedo).Multiply(-d.Density * distance)
	return core.NewVec3(math.Exp(absorbance.X), math.Exp(absorbance.Y), math.Exp(absorbance.Z))
}

// ScatteringPDF is zero: dielectrics are sampled specularly
func (d *Dielectric) ScatteringPDF(rayIn core.Ray, hit *HitRecord, scattered core.Ray) float64 {
	return 0
}

func (*Dielectric) sealed() {}

// Reflectance calculates the Fresnel reflectance using Schlick's approximation
func Reflectance(cosine, refractionRatio float64) float64 {
	r0 := (1 - refractionRatio) / (1 + refractionRatio)
	r0 = r0 * r0
	return r0 + (1-r0)*math.Pow(1-cosine, 5)
}
