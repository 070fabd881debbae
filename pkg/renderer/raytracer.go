package renderer

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/integrator"
)

var errPoolClosed = errors.New("worker pool closed unexpectedly")

// Scene interface to avoid circular imports
type Scene interface {
	GetWorld() geometry.Hittable
	GetLights() geometry.Hittable // nil when the scene has no sampled lights
	GetCamera() *Camera
	GetBackground() integrator.Background
}

// ProgressFunc is called from the collecting goroutine after each finished tile
type ProgressFunc func(done, total int)

// Config contains rendering configuration
type Config struct {
	Width           int
	Height          int
	SamplesPerPixel int    // Number of rays per pixel
	MaxDepth        int    // Maximum ray bounce depth
	TileSize        int    // Edge length of a work tile in pixels
	NumWorkers      int    // Number of parallel workers (0 = logical CPU count)
	Seed            uint64 // Base seed; equal seeds give identical frames
	Progress        ProgressFunc
}

// DefaultConfig returns sensible default values
func DefaultConfig() Config {
	return Config{
		Width:           400,
		Height:          400,
		SamplesPerPixel: 100,
		MaxDepth:        50,
		TileSize:        32,
		NumWorkers:      0,
		Seed:            42,
	}
}

// Validate reports configuration values the renderer cannot work with
func (c Config) Validate() error {
	switch {
	case c.Width <= 0 || c.Height <= 0:
		return fmt.Errorf("image size %dx%d: %w", c.Width, c.Height, core.ErrInvalidInput)
	case c.SamplesPerPixel <= 0:
		return fmt.Errorf("samples per pixel %d: %w", c.SamplesPerPixel, core.ErrInvalidInput)
	case c.MaxDepth < 0:
		return fmt.Errorf("max depth %d: %w", c.MaxDepth, core.ErrInvalidInput)
	}
	return nil
}

// Raytracer renders a scene into a Frame
type Raytracer struct {
	scene      Scene
	config     Config
	integrator *integrator.PathTracingIntegrator
	tiles      []*Tile
	logger     core.Logger
}

// NewRaytracer creates a new raytracer. The scene must not be modified while
// a render is running.
func NewRaytracer(scene Scene, config Config, logger core.Logger) (*Raytracer, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = core.NopLogger()
	}
	if config.NumWorkers <= 0 {
		config.NumWorkers = DefaultWorkerCount()
	}

	return &Raytracer{
		scene:      scene,
		config:     config,
		integrator: integrator.NewPathTracingIntegrator(config.MaxDepth, scene.GetBackground()),
		tiles:      NewTileGrid(config.Width, config.Height, config.TileSize),
		logger:     logger,
	}, nil
}

// Config returns the effective configuration
func (rt *Raytracer) Config() Config {
	return rt.config
}

// Render takes SamplesPerPixel samples for every pixel. On cancellation the
// partial image is discarded and ctx.Err() is returned.
func (rt *Raytracer) Render(ctx context.Context) (*Frame, error) {
	pool := NewWorkerPool(rt, rt.config.NumWorkers, len(rt.tiles))
	pool.Start()
	defer pool.Stop()

	pixels := make([]PixelStats, rt.config.Width*rt.config.Height)
	rt.logger.Printf("Rendering %dx%d, %d samples per pixel (using %d workers)...\n",
		rt.config.Width, rt.config.Height, rt.config.SamplesPerPixel, pool.GetNumWorkers())

	progress := newProgressCounter(rt.config.Progress, len(rt.tiles))
	stats, err := rt.renderPass(ctx, pool, 1, rt.config.SamplesPerPixel, pixels, progress)
	if err != nil {
		return nil, err
	}

	frame, nanPixels := rt.assembleFrame(pixels)
	stats.NaNPixels = nanPixels
	if nanPixels > 0 {
		rt.logger.Printf("%d pixels had NaN channels\n", nanPixels)
	}
	rt.logger.Printf("Render completed in %v (%.1f samples/pixel)\n", stats.Duration, stats.AverageSamples)
	return frame, nil
}

// renderPass submits every tile and waits for all of them
func (rt *Raytracer) renderPass(ctx context.Context, pool *WorkerPool, pass, targetSamples int, pixels []PixelStats, progress *progressCounter) (RenderStats, error) {
	start := time.Now()

	for i, tile := range rt.tiles {
		pool.SubmitTask(TileTask{
			Ctx:           ctx,
			Tile:          tile,
			PassNumber:    pass,
			TargetSamples: targetSamples,
			TaskID:        i,
			Pixels:        pixels,
		})
	}

	var stats RenderStats
	for range rt.tiles {
		result, err := pool.GetResult(ctx)
		if err != nil {
			return RenderStats{}, err
		}
		if result.Error != nil {
			return RenderStats{}, result.Error
		}
		stats.merge(result.Stats)
		progress.tileDone()
	}

	stats.Duration = time.Since(start)
	stats.finalize()
	return stats, nil
}

// assembleFrame converts the accumulators into 8-bit pixels
func (rt *Raytracer) assembleFrame(pixels []PixelStats) (*Frame, int) {
	frame := NewFrame(rt.config.Width, rt.config.Height)
	nanPixels := 0
	for i := range pixels {
		c := pixels[i].GetColor()
		if c.HasNaN() {
			nanPixels++
		}
		frame.Pixels[i] = ToRGB(c)
	}
	return frame, nanPixels
}

// progressCounter forwards tile completions to a ProgressFunc
type progressCounter struct {
	fn    ProgressFunc
	done  int
	total int
}

func newProgressCounter(fn ProgressFunc, total int) *progressCounter {
	return &progressCounter{fn: fn, total: total}
}

func (p *progressCounter) tileDone() {
	p.done++
	if p.fn != nil {
		p.fn(p.done, p.total)
	}
}
