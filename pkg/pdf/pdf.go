// Package pdf provides the probability densities used to importance sample
// scattered directions: cosine-weighted BSDF sampling, sampling toward
// light-emitting geometry, and an even mixture of the two.
package pdf

import (
	"math"

	"github.com/df07/go-pathtracer/pkg/core"
)

// PDF is a probability density over directions. The set is closed:
// Cosine, Hittable and Mixture.
type PDF interface {
	// Value returns the density of the given direction (solid-angle measure)
	Value(direction core.Vec3) float64
	// Generate draws a direction distributed according to the density
	Generate(sampler core.Sampler) core.Vec3

	sealed()
}

// Target is geometry that can be sampled by solid angle from a point
type Target interface {
	PDFValue(origin, direction core.Vec3) float64
	Random(origin core.Vec3, sampler core.Sampler) core.Vec3
}

// Cosine is the cosine-weighted hemisphere density around a direction
type Cosine struct {
	basis core.ONB
}

// NewCosine creates a cosine density around w
func NewCosine(w core.Vec3) *Cosine {
	return &Cosine{basis: core.NewONB(w)}
}

// Value returns max(0, cos theta) / pi
func (c *Cosine) Value(direction core.Vec3) float64 {
	cosine := direction.Normalize().Dot(c.basis.W)
	if cosine <= 0 {
		return 0
	}
	return cosine / math.Pi
}

// Generate draws a cosine-weighted direction around w
func (c *Cosine) Generate(sampler core.Sampler) core.Vec3 {
	return c.basis.Local(core.SampleCosineDirection(sampler.Get2D()))
}

func (*Cosine) sealed() {}

// Hittable samples directions toward a target as seen from an origin
type Hittable struct {
	target Target
	origin core.Vec3
}

// NewHittable creates a density toward target from origin
func NewHittable(target Target, origin core.Vec3) *Hittable {
	return &Hittable{target: target, origin: origin}
}

// Value delegates to the target's solid-angle density
func (h *Hittable) Value(direction core.Vec3) float64 {
	return h.target.PDFValue(h.origin, direction)
}

// Generate delegates to the target's direction sampler
func (h *Hittable) Generate(sampler core.Sampler) core.Vec3 {
	return h.target.Random(h.origin, sampler)
}

func (*Hittable) sealed() {}

// Mixture is an even blend of two densities
type Mixture struct {
	a, b PDF
}

// NewMixture creates a 50/50 mixture of a and b
func NewMixture(a, b PDF) *Mixture {
	return &Mixture{a: a, b: b}
}

// Value returns the average of both densities
func (m *Mixture) Value(direction core.Vec3) float64 {
	return 0.5*m.a.Value(direction) + 0.5*m.b.Value(direction)
}

// Generate flips a fair coin to pick which density supplies the direction
func (m *Mixture) Generate(sampler core.Sampler) core.Vec3 {
	if sampler.Get1D() < 0.5 {
		return m.a.Generate(sampler)
	}
	return m.b.Generate(sampler)
}

func (*Mixture) sealed() {}
