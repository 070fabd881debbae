package scene

import (
	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/integrator"
	"github.com/df07/go-pathtracer/pkg/loaders"
	"github.com/df07/go-pathtracer/pkg/material"
	"github.com/df07/go-pathtracer/pkg/renderer"
)

// outdoorCamera is the camera shared by the two-sphere scenes
func outdoorCamera() renderer.CameraConfig {
	return renderer.CameraConfig{
		LookFrom:      core.NewVec3(13, 2, 3),
		LookAt:        core.NewVec3(0, 0, 0),
		Up:            core.NewVec3(0, 1, 0),
		VFov:          20,
		AspectRatio:   1,
		Aperture:      0,
		FocusDistance: 10,
	}
}

// twoSpheres puts a small sphere on a huge ground sphere, both with the given texture
func twoSpheres(ground, top material.ColorSource) *Scene {
	return &Scene{
		Objects: []geometry.Hittable{
			geometry.NewSphere(core.NewVec3(0, -1000, 0), 1000, material.NewTexturedLambertian(ground)),
			geometry.NewSphere(core.NewVec3(0, 2, 0), 2, material.NewTexturedLambertian(top)),
		},
		Camera:     outdoorCamera(),
		Background: integrator.SkyBackground(),
		Sampling:   DefaultSamplingConfig(),
	}
}

func checker() *material.CheckerTexture {
	return material.NewCheckerTexture(
		material.NewSolidColor(core.NewVec3(0.2, 0.3, 0.1)),
		material.NewSolidColor(core.NewVec3(0.9, 0.9, 0.9)),
	)
}

// NewPerlinScene creates two spheres with Perlin turbulence
func NewPerlinScene(opts Options) (*Scene, error) {
	texture := material.NewTurbulenceTexture(material.NewPerlin(opts.Seed), 3)
	return twoSpheres(texture, texture), nil
}

// NewMarbleScene creates two spheres with a marble texture
func NewMarbleScene(opts Options) (*Scene, error) {
	texture := material.NewMarbleTexture(material.NewPerlin(opts.Seed), 3, core.AxisZ)
	return twoSpheres(texture, texture), nil
}

// NewCheckerboardScene creates two touching checkered spheres
func NewCheckerboardScene(opts Options) (*Scene, error) {
	texture := checker()
	return &Scene{
		Objects: []geometry.Hittable{
			geometry.NewSphere(core.NewVec3(0, -10, 0), 10, material.NewTexturedLambertian(texture)),
			geometry.NewSphere(core.NewVec3(0, 10, 0), 10, material.NewTexturedLambertian(texture)),
		},
		Camera:     outdoorCamera(),
		Background: integrator.SkyBackground(),
		Sampling:   DefaultSamplingConfig(),
	}, nil
}

// NewEarthScene puts an image-textured globe on a checkerboard floor
func NewEarthScene(opts Options) (*Scene, error) {
	earth, err := loaders.LoadImageTexture(opts.EarthImage)
	if err != nil {
		return nil, err
	}
	return twoSpheres(checker(), earth), nil
}

// NewSimpleLightScene lights two marble spheres with a rectangle and a glowing sphere
func NewSimpleLightScene(opts Options) (*Scene, error) {
	texture := material.NewMarbleTexture(material.NewPerlin(opts.Seed), 4, core.AxisZ)
	s := twoSpheres(texture, texture)
	s.Background = integrator.SolidBackground(core.Vec3{})
	s.Camera.LookFrom = core.NewVec3(26, 3, 6)
	s.Camera.LookAt = core.NewVec3(0, 2, 0)

	light := material.NewDiffuseLight(core.NewVec3(4, 4, 4))
	s.AddLight(geometry.NewSphere(core.NewVec3(0, 7, 0), 2, light))
	s.AddLight(geometry.NewXYRect(3, 5, 1, 3, -2, light))
	return s, nil
}
