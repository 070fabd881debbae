package server

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"runtime"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/shirou/gopsutil/cpu"
	"github.com/shirou/gopsutil/mem"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/renderer"
	"github.com/df07/go-pathtracer/pkg/scene"
)

// Request limits shared by the render and inspect endpoints
const (
	minImageSize = 16
	maxImageSize = 2000
	maxSamples   = 10000
	maxDepth     = 200
	maxPasses    = 100
	defaultPass  = 7
)

// Server handles web requests for the path tracer
type Server struct {
	port       int
	earthImage string
	logger     core.Logger
	echo       *echo.Echo
}

// NewServer creates a new web server. earthImage may be empty to use the
// scene package default.
func NewServer(port int, earthImage string, logger core.Logger) *Server {
	if logger == nil {
		logger = core.NopLogger()
	}
	s := &Server{
		port:       port,
		earthImage: earthImage,
		logger:     logger,
		echo:       echo.New(),
	}
	s.echo.HideBanner = true
	s.echo.Use(corsMiddleware)

	s.echo.GET("/api/health", s.handleHealth)
	s.echo.GET("/api/scenes", s.handleScenes)
	s.echo.GET("/api/system", s.handleSystem)
	s.echo.GET("/api/render", s.handleRender)
	s.echo.GET("/api/inspect", s.handleInspect)
	s.echo.Static("/", "static")
	return s
}

// Handler exposes the routes, mainly for tests
func (s *Server) Handler() http.Handler {
	return s.echo
}

// Start serves until the server is closed
func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.port)
	s.logger.Printf("Starting web server on http://localhost%s\n", addr)
	if err := s.echo.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func corsMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		c.Response().Header().Set("Access-Control-Allow-Origin", "*")
		c.Response().Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")
		c.Response().Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if c.Request().Method == http.MethodOptions {
			return c.NoContent(http.StatusNoContent)
		}
		return next(c)
	}
}

// handleHealth provides a simple health check endpoint
func (s *Server) handleHealth(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// handleScenes lists the registered scenes with their default sampling
func (s *Server) handleScenes(c echo.Context) error {
	defaults := scene.DefaultSamplingConfig()
	return c.JSON(http.StatusOK, map[string]interface{}{
		"scenes": scene.List(),
		"defaults": map[string]int{
			"width":   defaults.Width,
			"height":  defaults.Height,
			"samples": defaults.SamplesPerPixel,
			"depth":   defaults.MaxDepth,
			"passes":  defaultPass,
		},
		"limits": map[string][2]int{
			"width":   {minImageSize, maxImageSize},
			"height":  {minImageSize, maxImageSize},
			"samples": {1, maxSamples},
			"depth":   {0, maxDepth},
			"passes":  {1, maxPasses},
		},
	})
}

// handleSystem reports the host resources renders will run on
func (s *Server) handleSystem(c echo.Context) error {
	info := map[string]interface{}{
		"workers":   renderer.DefaultWorkerCount(),
		"goVersion": runtime.Version(),
	}
	if cpus, err := cpu.Info(); err == nil && len(cpus) > 0 {
		info["cpuModel"] = cpus[0].ModelName
	}
	if vm, err := mem.VirtualMemory(); err == nil {
		info["memoryTotal"] = vm.Total
		info["memoryAvailable"] = vm.Available
	}
	return c.JSON(http.StatusOK, info)
}

// parseIntParam parses an integer parameter from URL query with validation
func parseIntParam(values url.Values, key string, defaultValue, min, max int) (int, error) {
	if value := values.Get(key); value != "" {
		parsed, err := strconv.Atoi(value)
		if err != nil {
			return 0, fmt.Errorf("invalid %s: %s", key, value)
		}
		if parsed < min || parsed > max {
			return 0, fmt.Errorf("%s must be between %d and %d, got: %d", key, min, max, parsed)
		}
		return parsed, nil
	}
	return defaultValue, nil
}

// parseSeedParam parses the random seed, defaulting to 42
func parseSeedParam(values url.Values) (uint64, error) {
	value := values.Get("seed")
	if value == "" {
		return 42, nil
	}
	seed, err := strconv.ParseUint(value, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid seed: %s", value)
	}
	return seed, nil
}

// badRequest answers with a JSON error body
func badRequest(c echo.Context, err error) error {
	return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
}
