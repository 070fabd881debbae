package server

import (
	"errors"
	"fmt"
	"math"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/integrator"
	"github.com/df07/go-pathtracer/pkg/material"
	"github.com/df07/go-pathtracer/pkg/scene"
)

// InspectResponse represents the JSON response for object inspection
type InspectResponse struct {
	Hit          bool                   `json:"hit"`
	MaterialType string                 `json:"materialType,omitempty"`
	GeometryType string                 `json:"geometryType,omitempty"`
	Point        [3]float64             `json:"point"`
	Normal       [3]float64             `json:"normal"`
	Distance     float64                `json:"distance"`
	FrontFace    bool                   `json:"frontFace"`
	Properties   map[string]interface{} `json:"properties,omitempty"`
}

// InspectResult contains information about the object hit by an inspection ray
type InspectResult struct {
	Hit       bool
	HitRecord *material.HitRecord
	Object    geometry.Hittable // top-level scene object, nil if it could not be identified
}

func vecArray(v core.Vec3) [3]float64 {
	return [3]float64{v.X, v.Y, v.Z}
}

func hexColor(v core.Vec3) string {
	c := v.Clamp(0, 1)
	return fmt.Sprintf("#%02x%02x%02x", int(c.X*255), int(c.Y*255), int(c.Z*255))
}

// describeColorSource summarizes a texture; only solid colors have a single color
func describeColorSource(cs material.ColorSource) map[string]interface{} {
	switch t := cs.(type) {
	case *material.SolidColor:
		return map[string]interface{}{"type": "solid", "albedo": vecArray(t.Color), "color": hexColor(t.Color)}
	case *material.CheckerTexture:
		return map[string]interface{}{
			"type":      "checker",
			"frequency": t.Frequency,
			"odd":       describeColorSource(t.Odd),
			"even":      describeColorSource(t.Even),
		}
	case *material.ImageTexture:
		return map[string]interface{}{"type": "image", "width": t.Width, "height": t.Height}
	case *material.NoiseTexture:
		return map[string]interface{}{"type": "noise", "scale": t.Scale}
	case *material.TurbulenceTexture:
		return map[string]interface{}{"type": "turbulence", "scale": t.Scale}
	case *material.MarbleTexture:
		return map[string]interface{}{"type": "marble", "scale": t.Scale}
	default:
		return map[string]interface{}{"type": "unknown"}
	}
}

// extractMaterialInfo extracts detailed material information with type assertions
func extractMaterialInfo(mat material.Material) (string, map[string]interface{}) {
	properties := make(map[string]interface{})

	switch m := mat.(type) {
	case *material.Lambertian:
		properties["albedo"] = describeColorSource(m.Albedo)
		return "lambertian", properties

	case *material.Metal:
		properties["albedo"] = vecArray(m.Albedo)
		properties["color"] = hexColor(m.Albedo)
		properties["fuzz"] = m.Fuzz
		return "metal", properties

	case *material.Dielectric:
		properties["refractiveIndex"] = m.RefractiveIndex
		properties["color"] = hexColor(m.Albedo)
		properties["density"] = m.Density
		return "dielectric", properties

	case *material.DiffuseLight:
		properties["emission"] = describeColorSource(m.Emit)
		return "diffuse_light", properties

	case *material.Isotropic:
		properties["albedo"] = describeColorSource(m.Albedo)
		return "isotropic", properties

	default:
		return "unknown", properties
	}
}

// extractGeometryInfo describes a top-level scene object. Wrappers report
// the object they wrap under "object".
func extractGeometryInfo(obj geometry.Hittable) (string, map[string]interface{}) {
	properties := make(map[string]interface{})

	switch g := obj.(type) {
	case *geometry.Sphere:
		properties["center"] = vecArray(g.Center)
		properties["radius"] = g.Radius
		return "sphere", properties

	case *geometry.MovingSphere:
		properties["center0"] = vecArray(g.Center0)
		properties["center1"] = vecArray(g.Center1)
		properties["radius"] = g.Radius
		return "moving_sphere", properties

	case *geometry.Rect:
		properties["plane"] = [...]string{"yz", "xz", "xy"}[g.Normal]
		properties["a"] = [2]float64{g.A0, g.A1}
		properties["b"] = [2]float64{g.B0, g.B1}
		properties["k"] = g.K
		return "rect", properties

	case *geometry.Block:
		properties["min"] = vecArray(g.Min)
		properties["max"] = vecArray(g.Max)
		return "block", properties

	case *geometry.ConstantMedium:
		properties["density"] = g.Density
		return "constant_medium", properties

	case *geometry.FlipFace:
		kind, inner := extractGeometryInfo(g.Object)
		properties["object"] = map[string]interface{}{"type": kind, "properties": inner}
		return "flip_face", properties

	case *geometry.Translate:
		properties["offset"] = vecArray(g.Offset)
		kind, inner := extractGeometryInfo(g.Object)
		properties["object"] = map[string]interface{}{"type": kind, "properties": inner}
		return "translate", properties

	case *geometry.Rotate:
		properties["axis"] = int(g.Axis)
		properties["degrees"] = g.Degrees
		kind, inner := extractGeometryInfo(g.Object)
		properties["object"] = map[string]interface{}{"type": kind, "properties": inner}
		return "rotate", properties

	case *geometry.BVH:
		properties["objects"] = g.Size
		properties["depth"] = g.Depth()
		return "bvh", properties

	case *geometry.HittableList:
		properties["objects"] = g.Len()
		return "list", properties

	default:
		return "unknown", properties
	}
}

// inspectPixel casts a ray through the center of the pixel and returns the
// first hit. Row 0 is the top of the image. The scene must be built.
func inspectPixel(sc *scene.Scene, width, height, pixelX, pixelY int) InspectResult {
	sampler := core.NewRandomSampler(0, 0)
	s := (float64(pixelX) + 0.5) / float64(max(width-1, 1))
	t := (float64(height-1-pixelY) + 0.5) / float64(max(height-1, 1))
	ray := sc.GetCamera().GetRay(sampler, s, t)

	hit, isHit := sc.GetWorld().Hit(ray, integrator.ShadowAcneEpsilon, math.Inf(1), sampler)
	if !isHit {
		return InspectResult{Hit: false}
	}

	// The BVH does not report which object it hit, so find the top-level
	// object with the same intersection
	for _, obj := range sc.Objects {
		if objHit, ok := obj.Hit(ray, integrator.ShadowAcneEpsilon, hit.T+integrator.ShadowAcneEpsilon, sampler); ok {
			if math.Abs(objHit.T-hit.T) < 1e-9 {
				return InspectResult{Hit: true, HitRecord: hit, Object: obj}
			}
		}
	}
	return InspectResult{Hit: true, HitRecord: hit}
}

// handleInspect handles ray casting inspection requests
func (s *Server) handleInspect(c echo.Context) error {
	values := c.QueryParams()
	req, err := parseRenderRequest(values)
	if err != nil {
		return badRequest(c, err)
	}

	pixelX, err := strconv.Atoi(values.Get("x"))
	if err != nil {
		return badRequest(c, errors.New("invalid x coordinate"))
	}
	pixelY, err := strconv.Atoi(values.Get("y"))
	if err != nil {
		return badRequest(c, errors.New("invalid y coordinate"))
	}

	sc, err := s.prepareScene(req, s.logger)
	if err != nil {
		return badRequest(c, err)
	}
	width, height := sc.Sampling.Width, sc.Sampling.Height
	if pixelX < 0 || pixelX >= width || pixelY < 0 || pixelY >= height {
		return badRequest(c, errors.New("pixel coordinates out of bounds"))
	}

	result := inspectPixel(sc, width, height, pixelX, pixelY)
	if !result.Hit {
		return c.JSON(http.StatusOK, InspectResponse{Hit: false})
	}

	materialType, materialProps := extractMaterialInfo(result.HitRecord.Material)
	geometryType, geometryProps := "unknown", map[string]interface{}{}
	if result.Object != nil {
		geometryType, geometryProps = extractGeometryInfo(result.Object)
	}

	return c.JSON(http.StatusOK, InspectResponse{
		Hit:          true,
		MaterialType: materialType,
		GeometryType: geometryType,
		Point:        vecArray(result.HitRecord.Point),
		Normal:       vecArray(result.HitRecord.Normal),
		Distance:     result.HitRecord.T,
		FrontFace:    result.HitRecord.FrontFace,
		Properties: map[string]interface{}{
			"material": materialProps,
			"geometry": geometryProps,
		},
	})
}
