package material

import (
	"math"

	"github.com/df07/go-pathtracer/pkg/core"
)

// DefaultTurbulenceDepth is the number of noise octaves used by turbulence textures
const DefaultTurbulenceDepth = 7

// CheckerTexture alternates between two textures in 3D space
type CheckerTexture struct {
	Odd, Even ColorSource
	Frequency float64
}

// NewCheckerTexture creates a solid checker pattern
func NewCheckerTexture(odd, even ColorSource) *CheckerTexture {
	return &CheckerTexture{Odd: odd, Even: even, Frequency: 10}
}

// Evaluate picks a texture by the sign of sin(fx)sin(fy)sin(fz)
func (c *CheckerTexture) Evaluate(uv core.Vec2, point core.Vec3) core.Vec3 {
	f := c.Frequency
	sines := math.Sin(f*point.X) * math.Sin(f*point.Y) * math.Sin(f*point.Z)
	if sines < 0 {
		return c.Odd.Evaluate(uv, point)
	}
	return c.Even.Evaluate(uv, point)
}

// NoiseTexture is grey Perlin noise mapped to [0, 1]
type NoiseTexture struct {
	Noise *Perlin
	Scale float64
}

// NewNoiseTexture creates a noise texture
func NewNoiseTexture(noise *Perlin, scale float64) *NoiseTexture {
	return &NoiseTexture{Noise: noise, Scale: scale}
}

func (n *NoiseTexture) Evaluate(uv core.Vec2, point core.Vec3) core.Vec3 {
	g := 0.5 * (1 + n.Noise.Noise(point.Multiply(n.Scale)))
	return core.NewVec3(g, g, g)
}

// TurbulenceTexture is grey turbulence
type TurbulenceTexture struct {
	Noise *Perlin
	Scale float64
	Depth int
}

// NewTurbulenceTexture creates a turbulence texture with the default octave count
func NewTurbulenceTexture(noise *Perlin, scale float64) *TurbulenceTexture {
	return &TurbulenceTexture{Noise: noise, Scale: scale, Depth: DefaultTurbulenceDepth}
}

func (t *TurbulenceTexture) Evaluate(uv core.Vec2, point core.Vec3) core.Vec3 {
	g := t.Noise.Turbulence(point.Multiply(t.Scale), t.Depth)
	return core.NewVec3(g, g, g)
}

// MarbleTexture produces veins along an axis, phase shifted by turbulence
type MarbleTexture struct {
	Noise *Perlin
	Scale float64
	Axis  core.Axis
}

// NewMarbleTexture creates a marble texture with veins along the given axis
func NewMarbleTexture(noise *Perlin, scale float64, axis core.Axis) *MarbleTexture {
	return &MarbleTexture{Noise: noise, Scale: scale, Axis: axis}
}

func (m *MarbleTexture) Evaluate(uv core.Vec2, point core.Vec3) core.Vec3 {
	phase := m.Scale*point.Get(m.Axis) + 10*m.Noise.Turbulence(point, DefaultTurbulenceDepth)
	g := 0.5 * (1 + math.Sin(phase))
	return core.NewVec3(g, g, g)
}

// UVDebugTexture shows surface coordinates as colors: U in red, V in green
type UVDebugTexture struct{}

func (UVDebugTexture) Evaluate(uv core.Vec2, point core.Vec3) core.Vec3 {
	return core.NewVec3(uv.X, uv.Y, 0)
}
