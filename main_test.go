package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/loaders"
	"github.com/df07/go-pathtracer/pkg/output"
	"github.com/df07/go-pathtracer/pkg/scene"
)

func TestParseFlags_Explicit(t *testing.T) {
	s, explicit, err := parseFlags([]string{"-scene", "perlin", "-samples", "7", "-depth", "0"}, &bytes.Buffer{})
	require.NoError(t, err)

	assert.Equal(t, "perlin", s.Scene)
	assert.Equal(t, 7, s.Samples)
	assert.Equal(t, 0, s.MaxDepth)
	assert.Equal(t, uint64(42), s.Seed)
	assert.True(t, explicit["scene"])
	assert.True(t, explicit["depth"])
	assert.False(t, explicit["width"])
}

func TestMergeFileConfig_FlagsWin(t *testing.T) {
	s, explicit, err := parseFlags([]string{"-width", "320"}, &bytes.Buffer{})
	require.NoError(t, err)

	mergeFileConfig(s, explicit, &loaders.RenderConfig{
		Scene:  "final",
		Width:  800,
		Height: 600,
		Seed:   5,
	})

	assert.Equal(t, "final", s.Scene)
	assert.Equal(t, 320, s.Width)
	assert.Equal(t, 600, s.Height)
	assert.Equal(t, uint64(5), s.Seed)
	assert.Equal(t, -1, s.MaxDepth)
}

func TestRenderConfig_SceneDefaults(t *testing.T) {
	sc, err := scene.New("checkerboard", scene.Options{})
	require.NoError(t, err)

	s := &settings{MaxDepth: -1, Height: 200, Seed: 3}
	config := renderConfig(s, sc)

	assert.Equal(t, 400, config.Width)
	assert.Equal(t, 200, config.Height)
	assert.Equal(t, 100, config.SamplesPerPixel)
	assert.Equal(t, 50, config.MaxDepth)
	assert.Equal(t, uint64(3), config.Seed)
	assert.Equal(t, 200, sc.Sampling.Height)
}

func TestDefaultOutputPath(t *testing.T) {
	now := time.Date(2024, 3, 9, 14, 5, 6, 0, time.UTC)
	assert.Equal(t, filepath.Join("output", "cornell", "render_20240309_140506.png"), defaultOutputPath("cornell", now))
}

func TestRun_List(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, run(context.Background(), []string{"-list"}, &out, core.NopLogger()))
	for _, name := range scene.Names() {
		assert.Contains(t, out.String(), name)
	}

	lines := make(map[string]string)
	for _, line := range strings.Split(out.String(), "\n") {
		if fields := strings.Fields(line); len(fields) > 0 {
			lines[fields[0]] = line
		}
	}
	for _, info := range scene.List() {
		line, ok := lines[info.ID]
		require.True(t, ok, info.ID)
		if info.NeedsImage {
			assert.Contains(t, line, "needs -earth image", info.ID)
			assert.Contains(t, line, scene.DefaultEarthImage, info.ID)
		} else {
			assert.NotContains(t, line, "-earth", info.ID)
		}
	}
}

func TestRun_Help(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, run(context.Background(), []string{"-help"}, &out, core.NopLogger()))
	assert.True(t, strings.HasPrefix(out.String(), "Path Tracer"))
	assert.Contains(t, out.String(), "-earth texture image")
	assert.Contains(t, out.String(), scene.DefaultEarthImage)
}

func TestRun_Errors(t *testing.T) {
	ctx := context.Background()

	err := run(ctx, []string{"-scene", "teapot"}, &bytes.Buffer{}, core.NopLogger())
	assert.ErrorIs(t, err, scene.ErrUnknownScene)

	err = run(ctx, []string{"-samples", "1", "-width", "4", "-height", "4", "-output", "out.gif"}, &bytes.Buffer{}, core.NopLogger())
	assert.ErrorIs(t, err, output.ErrUnsupportedFormat)

	err = run(ctx, []string{"-config", filepath.Join(t.TempDir(), "missing.yaml")}, &bytes.Buffer{}, core.NopLogger())
	assert.Error(t, err)
}

func TestRun_RendersToFile(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "render.yaml")
	outPath := filepath.Join(dir, "cornell.ppm")
	require.NoError(t, os.WriteFile(configPath, []byte("scene: cornell\nwidth: 8\nheight: 6\nsamples: 2\nmax_depth: 3\n"), 0o644))

	err := run(context.Background(), []string{"-config", configPath, "-output", outPath, "-workers", "2"}, &bytes.Buffer{}, core.NopLogger())
	require.NoError(t, err)

	data, err := os.ReadFile(outPath)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "P3\n8 6\n255\n"))
}
