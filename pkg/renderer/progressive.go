package renderer

import (
	"context"
)

// PassResult contains the result of a single progressive pass
type PassResult struct {
	PassNumber int
	Frame      *Frame
	Stats      RenderStats
	IsLast     bool
}

// samplesForPass returns the total samples per pixel after the given pass
// (1-based). The first pass is a single-sample preview, the remaining samples
// are split evenly and the final pass always reaches SamplesPerPixel.
func samplesForPass(pass, passes, maxSamples int) int {
	if passes <= 1 || pass >= passes {
		return maxSamples
	}
	if pass == 1 {
		return 1
	}
	perPass := (maxSamples - 1) / (passes - 1)
	return 1 + (pass-1)*perPass
}

// RenderProgressive renders in the given number of passes, accumulating
// samples, and sends a frame after each pass. Both channels are closed when
// rendering ends; at most one error is sent, ctx.Err() on cancellation.
// The caller must drain the pass channel until it is closed.
func (rt *Raytracer) RenderProgressive(ctx context.Context, passes int) (<-chan PassResult, <-chan error) {
	passChan := make(chan PassResult, 1)
	errChan := make(chan error, 1)

	passes = max(1, min(passes, rt.config.SamplesPerPixel))

	go func() {
		defer close(errChan)
		defer close(passChan)

		pool := NewWorkerPool(rt, rt.config.NumWorkers, len(rt.tiles))
		pool.Start()
		defer pool.Stop()

		pixels := make([]PixelStats, rt.config.Width*rt.config.Height)
		progress := newProgressCounter(rt.config.Progress, len(rt.tiles)*passes)

		rt.logger.Printf("Starting progressive rendering with %d passes (using %d workers)...\n",
			passes, pool.GetNumWorkers())

		for pass := 1; pass <= passes; pass++ {
			if err := ctx.Err(); err != nil {
				rt.logger.Printf("Rendering cancelled before pass %d\n", pass)
				errChan <- err
				return
			}

			target := samplesForPass(pass, passes, rt.config.SamplesPerPixel)
			stats, err := rt.renderPass(ctx, pool, pass, target, pixels, progress)
			if err != nil {
				errChan <- err
				return
			}

			frame, nanPixels := rt.assembleFrame(pixels)
			stats.NaNPixels = nanPixels
			// stats from renderPass only count this pass; report the running total
			stats.TotalSamples = target * stats.TotalPixels
			stats.finalize()

			rt.logger.Printf("Pass %d completed in %v (%d samples/pixel)\n", pass, stats.Duration, target)

			select {
			case passChan <- PassResult{PassNumber: pass, Frame: frame, Stats: stats, IsLast: pass == passes}:
			case <-ctx.Done():
				errChan <- ctx.Err()
				return
			}
		}
	}()

	return passChan, errChan
}
