package scene

import (
	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/integrator"
	"github.com/df07/go-pathtracer/pkg/loaders"
	"github.com/df07/go-pathtracer/pkg/material"
	"github.com/df07/go-pathtracer/pkg/renderer"
)

// NewFinalScene creates the showcase scene: a floor of random-height boxes,
// an area light, thin global fog, a moving sphere, tinted glass, fuzzy metal,
// a subsurface-looking sphere, the earth, marble and a rotated cube of small
// spheres.
func NewFinalScene(opts Options) (*Scene, error) {
	sampler := core.NewRandomSampler(opts.Seed, 0)
	noise := material.NewPerlin(opts.Seed)

	earth, err := loaders.LoadImageTexture(opts.EarthImage)
	if err != nil {
		return nil, err
	}

	lookFrom := core.NewVec3(478, 278, -600)
	s := &Scene{
		Camera: renderer.CameraConfig{
			LookFrom:      lookFrom,
			LookAt:        core.NewVec3(278, 278, 0),
			Up:            core.NewVec3(0, 1, 0),
			VFov:          40,
			AspectRatio:   1,
			Aperture:      0.5,
			FocusDistance: core.NewVec3(260, 150, 45).Subtract(lookFrom).Length(),
		},
		Background: integrator.SolidBackground(core.Vec3{}),
		Time0:      0,
		Time1:      1,
		Sampling:   DefaultSamplingConfig(),
	}

	// Ground: 20x20 boxes of random height
	groundMat := material.NewLambertian(core.NewVec3(0.48, 0.83, 0.53))
	const boxesPerSide = 20
	const boxWidth = 100.0
	ground := make([]geometry.Hittable, 0, boxesPerSide*boxesPerSide)
	for i := 0; i < boxesPerSide; i++ {
		for j := 0; j < boxesPerSide; j++ {
			x0 := -1000 + float64(i)*boxWidth
			z0 := -1000 + float64(j)*boxWidth
			y1 := core.SampleRange(sampler, 1, 101)
			ground = append(ground, geometry.NewBlock(
				core.NewVec3(x0, 0, z0),
				core.NewVec3(x0+boxWidth, y1, z0+boxWidth),
				groundMat,
			))
		}
	}
	groundBVH, err := geometry.NewBVH(ground, s.Time0, s.Time1, opts.Logger)
	if err != nil {
		return nil, err
	}
	s.Objects = append(s.Objects, groundBVH)

	s.AddLight(geometry.NewXZRect(123, 423, 147, 412, 553.9, material.NewDiffuseLight(core.NewVec3(7, 7, 7))))

	// Thin fog everywhere
	fogBoundary := geometry.NewSphere(core.Vec3{}, 5000, material.NewDielectric(1.5))
	s.Objects = append(s.Objects, geometry.NewConstantMedium(fogBoundary, 0.0001, material.NewSolidColor(core.NewVec3(1, 1, 1))))

	center := core.NewVec3(400, 400, 200)
	s.Objects = append(s.Objects, geometry.NewMovingSphere(
		center, center.Add(core.NewVec3(30, 0, 0)), 0, 1, 50,
		material.NewLambertian(core.NewVec3(0.7, 0.3, 0.1)),
	))

	s.Objects = append(s.Objects,
		geometry.NewSphere(core.NewVec3(260, 150, 45), 50, material.NewTintedDielectric(core.NewVec3(0.2, 0.9, 0.4), 1.5, 0.1)),
		geometry.NewSphere(core.NewVec3(0, 150, 145), 50, material.NewMetal(core.NewVec3(0.8, 0.8, 0.9), 10)),
	)

	// Glass shell around a dense blue medium
	subsurface := geometry.NewSphere(core.NewVec3(360, 150, 145), 70, material.NewDielectric(1.5))
	s.Objects = append(s.Objects,
		subsurface,
		geometry.NewConstantMedium(subsurface, 0.2, material.NewSolidColor(core.NewVec3(0.2, 0.4, 0.9))),
	)

	s.Objects = append(s.Objects,
		geometry.NewSphere(core.NewVec3(400, 200, 400), 100, material.NewTexturedLambertian(earth)),
		geometry.NewSphere(core.NewVec3(220, 280, 300), 80,
			material.NewTexturedLambertian(material.NewMarbleTexture(noise, 0.1, core.AxisX))),
	)

	// A cube of small white spheres
	white := material.NewLambertian(core.NewVec3(0.73, 0.73, 0.73))
	const smallSpheres = 1000
	cube := make([]geometry.Hittable, 0, smallSpheres)
	for i := 0; i < smallSpheres; i++ {
		c := sampler.Get3D().Multiply(165)
		cube = append(cube, geometry.NewSphere(c, 10, white))
	}
	cubeBVH, err := geometry.NewBVH(cube, s.Time0, s.Time1, opts.Logger)
	if err != nil {
		return nil, err
	}
	s.Objects = append(s.Objects,
		geometry.NewTranslate(geometry.NewRotateY(cubeBVH, 15), core.NewVec3(-100, 270, 395)))

	return s, nil
}
