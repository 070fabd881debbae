package scene

import (
	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/integrator"
	"github.com/df07/go-pathtracer/pkg/loaders"
	"github.com/df07/go-pathtracer/pkg/material"
	"github.com/df07/go-pathtracer/pkg/renderer"
)

// NewRandomScene creates a field of small random spheres around three large
// ones. Diffuse spheres bounce upward during the shutter interval.
func NewRandomScene(opts Options) (*Scene, error) {
	sampler := core.NewRandomSampler(opts.Seed, 0)
	noise := material.NewPerlin(opts.Seed)

	earth, err := loaders.LoadImageTexture(opts.EarthImage)
	if err != nil {
		return nil, err
	}

	s := &Scene{
		Camera: renderer.CameraConfig{
			LookFrom:      core.NewVec3(13, 2, 3),
			LookAt:        core.NewVec3(0, 0, 0),
			Up:            core.NewVec3(0, 1, 0),
			VFov:          20,
			AspectRatio:   1,
			Aperture:      0.1,
			FocusDistance: 10,
		},
		Background: integrator.SkyBackground(),
		Time0:      0,
		Time1:      1,
		Sampling:   DefaultSamplingConfig(),
	}

	groundTexture := material.NewCheckerTexture(
		material.NewSolidColor(core.NewVec3(0.2, 0.3, 0.1)),
		material.NewMarbleTexture(noise, 40, core.AxisZ),
	)
	s.Objects = append(s.Objects,
		geometry.NewSphere(core.NewVec3(0, -1000, 0), 1000, material.NewTexturedLambertian(groundTexture)))

	randomRange := func(lo, hi float64) core.Vec3 {
		return core.NewVec3(
			core.SampleRange(sampler, lo, hi),
			core.SampleRange(sampler, lo, hi),
			core.SampleRange(sampler, lo, hi),
		)
	}

	for a := -11; a < 11; a++ {
		for b := -11; b < 11; b++ {
			center := core.NewVec3(
				float64(a)+0.9*sampler.Get1D(),
				0.2,
				float64(b)+0.9*sampler.Get1D(),
			)
			if center.Subtract(core.NewVec3(4, 0.2, 0)).Length() <= 0.9 {
				continue
			}

			chooseMat := sampler.Get1D()
			switch {
			case chooseMat < 0.8:
				albedo := sampler.Get3D().MultiplyVec(sampler.Get3D())
				bounce := core.NewVec3(0, core.SampleRange(sampler, 0, 0.5), 0)
				s.Objects = append(s.Objects, geometry.NewMovingSphere(
					center, center.Add(bounce), 0, 1, 0.2, material.NewLambertian(albedo)))
			case chooseMat < 0.95:
				albedo := randomRange(0.5, 1)
				fuzz := sampler.Get1D()
				s.Objects = append(s.Objects, geometry.NewSphere(center, 0.2, material.NewMetal(albedo, fuzz)))
			default:
				albedo := randomRange(0.5, 1)
				s.Objects = append(s.Objects, geometry.NewSphere(center, 0.2, material.NewTintedDielectric(albedo, 1.5, 0.5)))
			}
		}
	}

	s.Objects = append(s.Objects,
		geometry.NewSphere(core.NewVec3(0, 1, 0), 1, material.NewTintedDielectric(core.NewVec3(0.5, 0.5, 1), 1.5, 0.7)),
		geometry.NewSphere(core.NewVec3(-4, 1, 0), 1, material.NewTexturedLambertian(earth)),
		geometry.NewSphere(core.NewVec3(4, 1, 0), 1, material.NewMetal(core.NewVec3(0.7, 0.6, 0.5), 0)),
	)

	return s, nil
}
