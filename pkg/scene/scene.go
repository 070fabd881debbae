package scene

import (
	"fmt"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/integrator"
	"github.com/df07/go-pathtracer/pkg/renderer"
)

// Scene contains all the elements needed for rendering. Fill the exported
// fields, then call Build before handing the scene to a renderer.
type Scene struct {
	Name       string
	Objects    []geometry.Hittable // Everything rays can hit, lights included
	Lights     []geometry.Hittable // Objects sampled directly for next-event estimation
	Camera     renderer.CameraConfig
	Background integrator.Background
	Time0      float64 // Shutter open
	Time1      float64 // Shutter close
	Sampling   SamplingConfig

	world  *geometry.BVH
	lights geometry.Hittable
	camera *renderer.Camera
}

// SamplingConfig holds the render settings a scene was tuned for
type SamplingConfig struct {
	Width           int // Image width
	Height          int // Image height
	SamplesPerPixel int // Number of rays per pixel
	MaxDepth        int // Maximum ray bounce depth
}

// DefaultSamplingConfig returns the settings used when a scene does not override them
func DefaultSamplingConfig() SamplingConfig {
	return SamplingConfig{
		Width:           400,
		Height:          400,
		SamplesPerPixel: 100,
		MaxDepth:        50,
	}
}

// AddLight adds an emitter that is both visible and sampled
func (s *Scene) AddLight(light geometry.Hittable) {
	s.Objects = append(s.Objects, light)
	s.Lights = append(s.Lights, light)
}

// Build prepares the scene for rendering: it builds the BVH over Objects over
// the shutter interval, groups the lights and creates the camera with the
// aspect ratio of Sampling.
func (s *Scene) Build(logger core.Logger) error {
	if logger == nil {
		logger = core.NopLogger()
	}

	bvh, err := geometry.NewBVH(s.Objects, s.Time0, s.Time1, logger)
	if err != nil {
		return fmt.Errorf("scene %s: %w", s.Name, err)
	}
	s.world = bvh

	switch len(s.Lights) {
	case 0:
		s.lights = nil
	case 1:
		s.lights = s.Lights[0]
	default:
		s.lights = geometry.NewHittableList(s.Lights...)
	}

	config := s.Camera
	if s.Sampling.Width > 0 && s.Sampling.Height > 0 {
		config.AspectRatio = float64(s.Sampling.Width) / float64(s.Sampling.Height)
	}
	config.Time0, config.Time1 = s.Time0, s.Time1
	s.camera = renderer.NewCamera(config)

	logger.Printf("Scene %s: %d objects, %d lights, BVH depth %d\n",
		s.Name, len(s.Objects), len(s.Lights), bvh.Depth())
	return nil
}

// GetWorld returns the BVH built by Build
func (s *Scene) GetWorld() geometry.Hittable {
	return s.world
}

// GetLights returns the light group, or nil when the scene has no sampled lights
func (s *Scene) GetLights() geometry.Hittable {
	return s.lights
}

// GetCamera returns the camera built by Build
func (s *Scene) GetCamera() *renderer.Camera {
	return s.camera
}

// GetBackground returns the radiance of escaping rays
func (s *Scene) GetBackground() integrator.Background {
	return s.Background
}
