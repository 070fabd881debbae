package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"time"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/loaders"
	"github.com/df07/go-pathtracer/pkg/output"
	"github.com/df07/go-pathtracer/pkg/renderer"
	"github.com/df07/go-pathtracer/pkg/scene"
)

// settings are the resolved render parameters. Zero values (and a negative
// MaxDepth) mean "use the scene default".
type settings struct {
	Scene      string
	ConfigPath string
	Width      int
	Height     int
	Samples    int
	MaxDepth   int
	Workers    int
	TileSize   int
	Seed       uint64
	Output     string
	EarthImage string
	List       bool
	Help       bool
}

func main() {
	logger := renderer.NewDefaultLogger()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout, logger); err != nil {
		logger.Warnf("%v", err)
		os.Exit(1)
	}
}

// parseFlags parses the command line and returns the settings together with
// the names of the flags that were given explicitly
func parseFlags(args []string, stdout io.Writer) (*settings, map[string]bool, error) {
	s := &settings{}
	fs := flag.NewFlagSet("pathtracer", flag.ContinueOnError)
	fs.SetOutput(stdout)
	fs.StringVar(&s.Scene, "scene", "cornell", "Scene to render (see -list)")
	fs.StringVar(&s.ConfigPath, "config", "", "YAML render config file")
	fs.IntVar(&s.Width, "width", 0, "Image width (0 = scene default)")
	fs.IntVar(&s.Height, "height", 0, "Image height (0 = scene default)")
	fs.IntVar(&s.Samples, "samples", 0, "Samples per pixel (0 = scene default)")
	fs.IntVar(&s.MaxDepth, "depth", -1, "Maximum bounce depth (-1 = scene default)")
	fs.IntVar(&s.Workers, "workers", 0, "Parallel workers (0 = logical CPU count)")
	fs.IntVar(&s.TileSize, "tile", 0, "Tile size in pixels (0 = renderer default)")
	fs.Uint64Var(&s.Seed, "seed", 42, "Random seed")
	fs.StringVar(&s.Output, "output", "", "Output file; format from extension (.png .jpg .bmp .tiff .ppm)")
	fs.StringVar(&s.EarthImage, "earth", "", "Earth texture image (default "+scene.DefaultEarthImage+")")
	fs.BoolVar(&s.List, "list", false, "List available scenes")
	fs.BoolVar(&s.Help, "help", false, "Show help information")

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}
	if s.Help {
		fmt.Fprintln(stdout, "Path Tracer")
		fmt.Fprintln(stdout, "Usage: pathtracer [options]")
		fmt.Fprintln(stdout)
		fmt.Fprintln(stdout, "Options:")
		fs.PrintDefaults()
		fmt.Fprintln(stdout)
		fmt.Fprintln(stdout, "Output will be saved to output/<scene>/render_<timestamp>.png unless -output is given")
		fmt.Fprintln(stdout, "Scenes marked in -list need the -earth texture image (default "+scene.DefaultEarthImage+")")
	}

	explicit := make(map[string]bool)
	fs.Visit(func(f *flag.Flag) { explicit[f.Name] = true })
	return s, explicit, nil
}

// mergeFileConfig fills settings not given on the command line from the config file
func mergeFileConfig(s *settings, explicit map[string]bool, file *loaders.RenderConfig) {
	setString := func(name string, dst *string, v string) {
		if !explicit[name] && v != "" {
			*dst = v
		}
	}
	setInt := func(name string, dst *int, v int) {
		if !explicit[name] && v != 0 {
			*dst = v
		}
	}

	setString("scene", &s.Scene, file.Scene)
	setString("output", &s.Output, file.Output)
	setString("earth", &s.EarthImage, file.EarthImage)
	setInt("width", &s.Width, file.Width)
	setInt("height", &s.Height, file.Height)
	setInt("samples", &s.Samples, file.Samples)
	setInt("depth", &s.MaxDepth, file.MaxDepth)
	setInt("workers", &s.Workers, file.Workers)
	setInt("tile", &s.TileSize, file.TileSize)
	if !explicit["seed"] && file.Seed != 0 {
		s.Seed = file.Seed
	}
}

// renderConfig combines the settings with the scene's sampling defaults
func renderConfig(s *settings, sc *scene.Scene) renderer.Config {
	sampling := sc.Sampling
	if s.Width > 0 {
		sampling.Width = s.Width
	}
	if s.Height > 0 {
		sampling.Height = s.Height
	}
	if s.Samples > 0 {
		sampling.SamplesPerPixel = s.Samples
	}
	if s.MaxDepth >= 0 {
		sampling.MaxDepth = s.MaxDepth
	}
	sc.Sampling = sampling

	config := renderer.DefaultConfig()
	config.Width = sampling.Width
	config.Height = sampling.Height
	config.SamplesPerPixel = sampling.SamplesPerPixel
	config.MaxDepth = sampling.MaxDepth
	config.NumWorkers = s.Workers
	config.Seed = s.Seed
	if s.TileSize > 0 {
		config.TileSize = s.TileSize
	}
	return config
}

// defaultOutputPath returns output/<scene>/render_<timestamp>.png
func defaultOutputPath(sceneName string, now time.Time) string {
	return filepath.Join("output", sceneName, fmt.Sprintf("render_%s.png", now.Format("20060102_150405")))
}

// progressLogger logs every tenth of the work
func progressLogger(logger core.Logger) renderer.ProgressFunc {
	lastDecile := 0
	return func(done, total int) {
		decile := done * 10 / total
		if decile > lastDecile {
			lastDecile = decile
			logger.Printf("%d%% (%d/%d tiles)\n", decile*10, done, total)
		}
	}
}

func run(ctx context.Context, args []string, stdout io.Writer, logger core.Logger) error {
	s, explicit, err := parseFlags(args, stdout)
	if errors.Is(err, flag.ErrHelp) {
		return nil
	}
	if err != nil {
		return err
	}
	if s.Help {
		return nil
	}
	if s.List {
		for _, info := range scene.List() {
			note := ""
			if info.NeedsImage {
				note = " (needs -earth image, default " + scene.DefaultEarthImage + ")"
			}
			fmt.Fprintf(stdout, "  %-14s %s%s\n", info.ID, info.Description, note)
		}
		return nil
	}

	if s.ConfigPath != "" {
		file, err := loaders.LoadRenderConfig(s.ConfigPath)
		if err != nil {
			return err
		}
		mergeFileConfig(s, explicit, file)
	}

	sc, err := scene.New(s.Scene, scene.Options{Seed: s.Seed, EarthImage: s.EarthImage, Logger: logger})
	if err != nil {
		return fmt.Errorf("%w (available: %s)", err, strings.Join(scene.Names(), ", "))
	}

	config := renderConfig(s, sc)
	config.Progress = progressLogger(logger)
	if err := config.Validate(); err != nil {
		return err
	}
	if err := sc.Build(logger); err != nil {
		return err
	}

	outputPath := s.Output
	if outputPath == "" {
		outputPath = defaultOutputPath(s.Scene, time.Now())
	}
	// Fail on a bad extension before spending time on the render
	if _, err := output.FormatFromPath(outputPath); err != nil {
		return err
	}

	raytracer, err := renderer.NewRaytracer(sc, config, logger)
	if err != nil {
		return err
	}
	frame, err := raytracer.Render(ctx)
	if err != nil {
		return fmt.Errorf("render %s: %w", s.Scene, err)
	}

	if err := output.Save(frame, outputPath); err != nil {
		return err
	}
	logger.Printf("Render saved as %s\n", outputPath)
	return nil
}
