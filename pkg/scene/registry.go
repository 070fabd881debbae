package scene

import (
	"errors"
	"fmt"
	"sort"

	"github.com/df07/go-pathtracer/pkg/core"
)

// ErrUnknownScene is returned when no built-in scene has the requested name
var ErrUnknownScene = errors.New("unknown scene")

// DefaultEarthImage is where the earth texture is looked up when Options does not name one
const DefaultEarthImage = "assets/earth.jpg"

// Options parameterize scene construction
type Options struct {
	Seed       uint64      // Seed for randomly placed geometry and Perlin tables
	EarthImage string      // Image used by scenes with an earth texture
	Logger     core.Logger // Used for nested BVH builds
}

func (o Options) withDefaults() Options {
	if o.EarthImage == "" {
		o.EarthImage = DefaultEarthImage
	}
	if o.Logger == nil {
		o.Logger = core.NopLogger()
	}
	return o
}

// SceneInfo describes a built-in scene
type SceneInfo struct {
	ID          string `json:"id"`          // Registry key
	DisplayName string `json:"displayName"` // UI display name
	Description string `json:"description"`
	NeedsImage  bool   `json:"needsImage"` // Requires the earth texture file
}

type constructor func(opts Options) (*Scene, error)

type entry struct {
	info SceneInfo
	new  constructor
}

var registry = map[string]entry{
	"cornell": {
		SceneInfo{ID: "cornell", DisplayName: "Cornell Box", Description: "Classic Cornell box with two rotated blocks"},
		NewCornellScene,
	},
	"cornell-smoke": {
		SceneInfo{ID: "cornell-smoke", DisplayName: "Cornell Smoke", Description: "Cornell box with blocks of smoke and fog"},
		NewCornellSmokeScene,
	},
	"final": {
		SceneInfo{ID: "final", DisplayName: "Next Week Final", Description: "Boxes, fog, motion blur, glass, marble and the earth", NeedsImage: true},
		NewFinalScene,
	},
	"random": {
		SceneInfo{ID: "random", DisplayName: "Random Spheres", Description: "Field of random moving, metal and glass spheres", NeedsImage: true},
		NewRandomScene,
	},
	"perlin": {
		SceneInfo{ID: "perlin", DisplayName: "Perlin Spheres", Description: "Two spheres with Perlin turbulence"},
		NewPerlinScene,
	},
	"marble": {
		SceneInfo{ID: "marble", DisplayName: "Marble Spheres", Description: "Two spheres with a marble texture"},
		NewMarbleScene,
	},
	"checkerboard": {
		SceneInfo{ID: "checkerboard", DisplayName: "Checkerboard Spheres", Description: "Two checkered spheres"},
		NewCheckerboardScene,
	},
	"earth": {
		SceneInfo{ID: "earth", DisplayName: "Earth", Description: "Image-textured globe on a checkerboard", NeedsImage: true},
		NewEarthScene,
	},
	"simple-light": {
		SceneInfo{ID: "simple-light", DisplayName: "Simple Light", Description: "Marble spheres lit by a rectangle and a glowing sphere"},
		NewSimpleLightScene,
	},
}

// Names returns the built-in scene names in sorted order
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// List returns information about every built-in scene, sorted by ID
func List() []SceneInfo {
	var infos []SceneInfo
	for _, name := range Names() {
		infos = append(infos, registry[name].info)
	}
	return infos
}

// New constructs the named scene. The result still needs Build.
func New(name string, opts Options) (*Scene, error) {
	e, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("%q: %w", name, ErrUnknownScene)
	}
	s, err := e.new(opts.withDefaults())
	if err != nil {
		return nil, fmt.Errorf("scene %s: %w", name, err)
	}
	s.Name = name
	return s, nil
}
