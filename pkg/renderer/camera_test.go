package renderer

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/df07/go-pathtracer/pkg/core"
)

func pinholeConfig() CameraConfig {
	return CameraConfig{
		LookFrom:    core.NewVec3(0, 0, 0),
		LookAt:      core.NewVec3(0, 0, -1),
		Up:          core.NewVec3(0, 1, 0),
		VFov:        90,
		AspectRatio: 1,
	}
}

func TestCamera_CenterRayLooksForward(t *testing.T) {
	camera := NewCamera(pinholeConfig())
	sampler := core.NewRandomSampler(1, 0)

	ray := camera.GetRay(sampler, 0.5, 0.5)
	assert.Equal(t, core.NewVec3(0, 0, 0), ray.Origin)
	assert.InDelta(t, 0, ray.Direction.Normalize().Subtract(core.NewVec3(0, 0, -1)).Length(), 1e-12)
	assert.InDelta(t, 0, camera.Forward().Subtract(core.NewVec3(0, 0, -1)).Length(), 1e-12)
}

func TestCamera_Corners(t *testing.T) {
	// 90 degree vfov with unit focus distance spans [-1, 1] on both axes
	camera := NewCamera(pinholeConfig())
	sampler := core.NewRandomSampler(1, 0)

	bottomLeft := camera.GetRay(sampler, 0, 0).Direction
	topRight := camera.GetRay(sampler, 1, 1).Direction

	assert.InDelta(t, -1, bottomLeft.X/-bottomLeft.Z, 1e-9)
	assert.InDelta(t, -1, bottomLeft.Y/-bottomLeft.Z, 1e-9)
	assert.InDelta(t, 1, topRight.X/-topRight.Z, 1e-9)
	assert.InDelta(t, 1, topRight.Y/-topRight.Z, 1e-9)
}

func TestCamera_ApertureJittersOriginWithinLens(t *testing.T) {
	config := pinholeConfig()
	config.Aperture = 0.5
	config.FocusDistance = 3
	camera := NewCamera(config)
	sampler := core.NewRandomSampler(7, 0)
	focusPoint := core.NewVec3(0, 0, -3)

	moved := false
	for i := 0; i < 200; i++ {
		ray := camera.GetRay(sampler, 0.5, 0.5)
		assert.LessOrEqual(t, ray.Origin.Length(), 0.25+1e-12)
		assert.InDelta(t, 0, ray.Origin.Z, 1e-12)
		if ray.Origin.Length() > 1e-6 {
			moved = true
		}
		// every center ray passes through the in-focus point
		hit := ray.At(3 / -ray.Direction.Z)
		assert.InDelta(t, 0, hit.Subtract(focusPoint).Length(), 1e-9)
	}
	assert.True(t, moved)
}

func TestCamera_TimeWithinShutter(t *testing.T) {
	config := pinholeConfig()
	config.Time0, config.Time1 = 0.25, 0.75
	camera := NewCamera(config)
	sampler := core.NewRandomSampler(3, 0)

	for i := 0; i < 100; i++ {
		ray := camera.GetRay(sampler, 0.5, 0.5)
		assert.GreaterOrEqual(t, ray.Time, 0.25)
		assert.Less(t, ray.Time, 0.75)
	}

	still := NewCamera(pinholeConfig())
	assert.Equal(t, 0.0, still.GetRay(sampler, 0.5, 0.5).Time)
}

func TestCamera_DefaultFocusDistance(t *testing.T) {
	config := pinholeConfig()
	config.LookAt = core.NewVec3(0, 0, -5)
	config.Aperture = 1
	camera := NewCamera(config)
	sampler := core.NewRandomSampler(5, 0)

	// with the focus plane at |LookFrom - LookAt| = 5, the center ray converges on LookAt
	ray := camera.GetRay(sampler, 0.5, 0.5)
	hit := ray.At(5 / -ray.Direction.Z)
	assert.InDelta(t, 0, hit.Subtract(config.LookAt).Length(), 1e-9)
}
