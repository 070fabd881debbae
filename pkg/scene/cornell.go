package scene

import (
	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/integrator"
	"github.com/df07/go-pathtracer/pkg/material"
	"github.com/df07/go-pathtracer/pkg/renderer"
)

// Cornell box dimensions (standard 555x555x555 units)
const boxSize = 555.0

// cornellCamera looks into the open side of the box
func cornellCamera() renderer.CameraConfig {
	return renderer.CameraConfig{
		LookFrom:      core.NewVec3(278, 278, -800),
		LookAt:        core.NewVec3(278, 278, 0),
		Up:            core.NewVec3(0, 1, 0),
		VFov:          40.0,
		AspectRatio:   1.0,
		Aperture:      0.0,
		FocusDistance: 10.0,
	}
}

// newCornellShell returns the five walls, with the light left to the caller
func newCornellShell() (white *material.Lambertian, walls []geometry.Hittable) {
	red := material.NewLambertian(core.NewVec3(0.65, 0.05, 0.05))
	white = material.NewLambertian(core.NewVec3(0.73, 0.73, 0.73))
	green := material.NewLambertian(core.NewVec3(0.12, 0.45, 0.15))

	walls = []geometry.Hittable{
		geometry.NewYZRect(0, boxSize, 0, boxSize, boxSize, green), // left
		geometry.NewYZRect(0, boxSize, 0, boxSize, 0, red),         // right
		geometry.NewXZRect(0, boxSize, 0, boxSize, 0, white),       // floor
		geometry.NewXZRect(0, boxSize, 0, boxSize, boxSize, white), // ceiling
		geometry.NewXYRect(0, boxSize, 0, boxSize, boxSize, white), // back
	}
	return white, walls
}

// NewCornellScene creates the classic Cornell box with two rotated blocks
func NewCornellScene(opts Options) (*Scene, error) {
	white, walls := newCornellShell()

	s := &Scene{
		Objects:    walls,
		Camera:     cornellCamera(),
		Background: integrator.SolidBackground(core.Vec3{}),
		Time0:      0,
		Time1:      1,
		Sampling:   DefaultSamplingConfig(),
	}

	// The light faces down into the box
	light := material.NewDiffuseLight(core.NewVec3(7, 7, 7))
	s.AddLight(geometry.NewFlipFace(geometry.NewXZRect(213, 343, 227, 332, 554, light)))

	tall := geometry.NewTranslate(
		geometry.NewRotateY(geometry.NewBlock(core.Vec3{}, core.NewVec3(165, 330, 165), white), 15),
		core.NewVec3(265, 0, 295),
	)
	short := geometry.NewTranslate(
		geometry.NewRotateY(geometry.NewBlock(core.Vec3{}, core.NewVec3(165, 165, 165), white), -18),
		core.NewVec3(130, 0, 65),
	)
	s.Objects = append(s.Objects, tall, short)

	return s, nil
}

// NewCornellSmokeScene replaces the Cornell blocks with dark smoke and white fog
func NewCornellSmokeScene(opts Options) (*Scene, error) {
	white, walls := newCornellShell()

	s := &Scene{
		Objects:    walls,
		Camera:     cornellCamera(),
		Background: integrator.SolidBackground(core.Vec3{}),
		Time0:      0,
		Time1:      1,
		Sampling:   DefaultSamplingConfig(),
	}

	light := material.NewDiffuseLight(core.NewVec3(7, 7, 7))
	s.AddLight(geometry.NewFlipFace(geometry.NewXZRect(113, 443, 127, 432, 554, light)))

	tall := geometry.NewTranslate(
		geometry.NewRotateY(geometry.NewBlock(core.Vec3{}, core.NewVec3(165, 330, 165), white), 15),
		core.NewVec3(265, 0, 295),
	)
	short := geometry.NewTranslate(
		geometry.NewRotateY(geometry.NewBlock(core.Vec3{}, core.NewVec3(165, 165, 165), white), -18),
		core.NewVec3(130, 0, 65),
	)
	s.Objects = append(s.Objects,
		geometry.NewConstantMedium(tall, 0.01, material.NewSolidColor(core.Vec3{})),
		geometry.NewConstantMedium(short, 0.01, material.NewSolidColor(core.NewVec3(1, 1, 1))),
	)

	return s, nil
}
