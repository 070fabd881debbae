package renderer

import (
	"context"
	"image"

	"github.com/df07/go-pathtracer/pkg/core"
)

// Tile represents a rectangular region of the image to be rendered
type Tile struct {
	ID     int             // Unique tile identifier
	Bounds image.Rectangle // Pixel bounds, row 0 at the top
}

// NewTileGrid creates a grid of tiles covering the entire image
func NewTileGrid(width, height, tileSize int) []*Tile {
	if tileSize <= 0 {
		tileSize = max(width, height)
	}

	var tiles []*Tile
	tilesX := (width + tileSize - 1) / tileSize
	tilesY := (height + tileSize - 1) / tileSize

	for tileY := 0; tileY < tilesY; tileY++ {
		for tileX := 0; tileX < tilesX; tileX++ {
			x0 := tileX * tileSize
			y0 := tileY * tileSize
			x1 := min(x0+tileSize, width)
			y1 := min(y0+tileSize, height)

			tiles = append(tiles, &Tile{ID: len(tiles), Bounds: image.Rect(x0, y0, x1, y1)})
		}
	}

	return tiles
}

// passSeed derives the seed for a progressive pass so that every pass draws
// fresh samples while staying reproducible
func passSeed(seed uint64, pass int) uint64 {
	return seed ^ (uint64(pass) * 0x9E3779B97F4A7C15)
}

// renderTile brings every pixel in bounds up to targetSamples. The sampler is
// reseeded per pixel from (seed, pass, pixel index), so the result does not
// depend on which worker rendered the tile.
func (rt *Raytracer) renderTile(ctx context.Context, bounds image.Rectangle, pixels []PixelStats, pass, targetSamples int, sampler *core.RandomSampler) (RenderStats, error) {
	width, height := rt.config.Width, rt.config.Height
	camera := rt.scene.GetCamera()
	world := rt.scene.GetWorld()
	lights := rt.scene.GetLights()
	seed := passSeed(rt.config.Seed, pass)

	// (W-1) and (H-1) map the last pixel onto the viewport edge
	sDenom := float64(max(width-1, 1))
	tDenom := float64(max(height-1, 1))

	stats := RenderStats{TotalPixels: bounds.Dx() * bounds.Dy()}

	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		if err := ctx.Err(); err != nil {
			return stats, err
		}
		// j counts rows from the bottom of the image
		j := height - 1 - y
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			index := y*width + x
			sampler.Reseed(seed, uint64(index))

			ps := &pixels[index]
			for ps.SampleCount < targetSamples {
				s := (float64(x) + sampler.Get1D()) / sDenom
				t := (float64(j) + sampler.Get1D()) / tDenom
				ray := camera.GetRay(sampler, s, t)
				ps.AddSample(rt.integrator.RayColor(ray, world, lights, sampler))
				stats.TotalSamples++
			}
		}
	}

	return stats, nil
}
