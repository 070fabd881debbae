package server

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"image"
	"image/png"
	"net/http"
	"net/url"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/renderer"
	"github.com/df07/go-pathtracer/pkg/scene"
)

// RenderRequest represents a render request from the client. Zero sizes,
// samples and a negative depth mean "use the scene default".
type RenderRequest struct {
	Scene   string `json:"scene"`
	Width   int    `json:"width"`
	Height  int    `json:"height"`
	Samples int    `json:"samples"`
	Depth   int    `json:"depth"`
	Passes  int    `json:"passes"`
	Seed    uint64 `json:"seed"`
}

// ProgressUpdate represents a single progressive update sent via SSE
type ProgressUpdate struct {
	RenderID    string `json:"renderId"`
	PassNumber  int    `json:"passNumber"`
	TotalPasses int    `json:"totalPasses"`
	ImageData   string `json:"imageData"` // Base64 encoded PNG
	Stats       Stats  `json:"stats"`
	IsComplete  bool   `json:"isComplete"`
	ElapsedMs   int64  `json:"elapsedMs"`
}

// Stats represents render statistics
type Stats struct {
	TotalPixels    int     `json:"totalPixels"`
	TotalSamples   int     `json:"totalSamples"`
	AverageSamples float64 `json:"averageSamples"`
	NaNPixels      int     `json:"nanPixels"`
	PassMs         int64   `json:"passMs"`
}

// parseRenderRequest parses the query parameters of /api/render
func parseRenderRequest(values url.Values) (*RenderRequest, error) {
	req := &RenderRequest{Scene: values.Get("scene")}
	if req.Scene == "" {
		req.Scene = "cornell"
	}

	var err error
	if req.Width, err = parseIntParam(values, "width", 0, minImageSize, maxImageSize); err != nil {
		return nil, err
	}
	if req.Height, err = parseIntParam(values, "height", 0, minImageSize, maxImageSize); err != nil {
		return nil, err
	}
	if req.Samples, err = parseIntParam(values, "samples", 0, 1, maxSamples); err != nil {
		return nil, err
	}
	if req.Depth, err = parseIntParam(values, "depth", -1, 0, maxDepth); err != nil {
		return nil, err
	}
	if req.Passes, err = parseIntParam(values, "passes", defaultPass, 1, maxPasses); err != nil {
		return nil, err
	}
	if req.Seed, err = parseSeedParam(values); err != nil {
		return nil, err
	}
	return req, nil
}

// prepareScene creates and builds the requested scene with the request's
// overrides applied to its sampling defaults
func (s *Server) prepareScene(req *RenderRequest, logger core.Logger) (*scene.Scene, error) {
	sc, err := scene.New(req.Scene, scene.Options{Seed: req.Seed, EarthImage: s.earthImage, Logger: logger})
	if err != nil {
		return nil, err
	}
	if req.Width > 0 {
		sc.Sampling.Width = req.Width
	}
	if req.Height > 0 {
		sc.Sampling.Height = req.Height
	}
	if req.Samples > 0 {
		sc.Sampling.SamplesPerPixel = req.Samples
	}
	if req.Depth >= 0 {
		sc.Sampling.MaxDepth = req.Depth
	}
	if err := sc.Build(logger); err != nil {
		return nil, err
	}
	return sc, nil
}

// handleRender streams a progressive render as server-sent events. Every
// render gets its own ID; closing the connection cancels it.
func (s *Server) handleRender(c echo.Context) error {
	req, err := parseRenderRequest(c.QueryParams())
	if err != nil {
		return badRequest(c, err)
	}

	renderID := uuid.NewString()
	consoleChan := make(chan ConsoleMessage, 100)
	logger := NewWebLogger(renderID, consoleChan, s.logger)

	sc, err := s.prepareScene(req, logger)
	if err != nil {
		return badRequest(c, err)
	}

	config := renderer.DefaultConfig()
	config.Width = sc.Sampling.Width
	config.Height = sc.Sampling.Height
	config.SamplesPerPixel = sc.Sampling.SamplesPerPixel
	config.MaxDepth = sc.Sampling.MaxDepth
	config.Seed = req.Seed
	raytracer, err := renderer.NewRaytracer(sc, config, logger)
	if err != nil {
		return badRequest(c, err)
	}
	passes := min(req.Passes, config.SamplesPerPixel)

	w := c.Response()
	w.Header().Set(echo.HeaderContentType, "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)

	ctx, cancel := context.WithCancel(c.Request().Context())
	defer cancel()

	start := time.Now()
	if err := writeEvent(w, "start", map[string]interface{}{
		"renderId": renderID,
		"scene":    req.Scene,
		"width":    config.Width,
		"height":   config.Height,
		"samples":  config.SamplesPerPixel,
		"passes":   passes,
	}); err != nil {
		return nil
	}

	passChan, errChan := raytracer.RenderProgressive(ctx, passes)
	for passChan != nil {
		select {
		case msg := <-consoleChan:
			if err := writeEvent(w, "console", msg); err != nil {
				return nil
			}
		case result, ok := <-passChan:
			if !ok {
				passChan = nil
				continue
			}
			update, err := newProgressUpdate(renderID, result, passes, time.Since(start))
			if err != nil {
				writeEvent(w, "error", map[string]string{"renderId": renderID, "error": err.Error()})
				return nil
			}
			if err := writeEvent(w, "progress", update); err != nil {
				return nil
			}
		case <-ctx.Done():
			s.logger.Printf("[%s] client disconnected, render cancelled\n", renderID)
			return nil
		}
	}

	drainConsole(w, consoleChan)

	if err := <-errChan; err != nil {
		if ctx.Err() != nil {
			return nil
		}
		writeEvent(w, "error", map[string]string{"renderId": renderID, "error": err.Error()})
		return nil
	}
	writeEvent(w, "complete", map[string]interface{}{
		"renderId":  renderID,
		"elapsedMs": time.Since(start).Milliseconds(),
	})
	return nil
}

func newProgressUpdate(renderID string, result renderer.PassResult, passes int, elapsed time.Duration) (ProgressUpdate, error) {
	imageData, err := imageToBase64PNG(result.Frame.Image())
	if err != nil {
		return ProgressUpdate{}, fmt.Errorf("failed to encode image: %w", err)
	}
	return ProgressUpdate{
		RenderID:    renderID,
		PassNumber:  result.PassNumber,
		TotalPasses: passes,
		ImageData:   imageData,
		Stats: Stats{
			TotalPixels:    result.Stats.TotalPixels,
			TotalSamples:   result.Stats.TotalSamples,
			AverageSamples: result.Stats.AverageSamples,
			NaNPixels:      result.Stats.NaNPixels,
			PassMs:         result.Stats.Duration.Milliseconds(),
		},
		IsComplete: result.IsLast,
		ElapsedMs:  elapsed.Milliseconds(),
	}, nil
}

// imageToBase64PNG converts an image to base64-encoded PNG
func imageToBase64PNG(img image.Image) (string, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}

// drainConsole forwards console messages that are still queued
func drainConsole(w *echo.Response, consoleChan <-chan ConsoleMessage) {
	for {
		select {
		case msg := <-consoleChan:
			if err := writeEvent(w, "console", msg); err != nil {
				return
			}
		default:
			return
		}
	}
}

// writeEvent sends one SSE event with a JSON payload
func writeEvent(w *echo.Response, event string, payload interface{}) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event, data); err != nil {
		return err
	}
	w.Flush()
	return nil
}
