package loaders

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/df07/go-pathtracer/pkg/core"
)

func TestParseRenderConfig(t *testing.T) {
	data := []byte(`
scene: cornell
width: 600
height: 300
samples: 64
max_depth: 20
workers: 4
tile_size: 16
seed: 7
output: out/cornell.png
earth_image: assets/earth.jpg
`)

	config, err := ParseRenderConfig(data)
	require.NoError(t, err)
	assert.Equal(t, RenderConfig{
		Scene:      "cornell",
		Width:      600,
		Height:     300,
		Samples:    64,
		MaxDepth:   20,
		Workers:    4,
		TileSize:   16,
		Seed:       7,
		Output:     "out/cornell.png",
		EarthImage: "assets/earth.jpg",
	}, *config)
}

func TestParseRenderConfig_Empty(t *testing.T) {
	config, err := ParseRenderConfig(nil)
	require.NoError(t, err)
	assert.Equal(t, RenderConfig{}, *config)
}

func TestParseRenderConfig_Errors(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"unknown key", "scene: cornell\nspp: 10\n"},
		{"wrong type", "width: wide\n"},
		{"negative samples", "samples: -1\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseRenderConfig([]byte(tt.data))
			assert.Error(t, err)
		})
	}

	_, err := ParseRenderConfig([]byte("tile_size: -4\n"))
	assert.ErrorIs(t, err, core.ErrInvalidInput)
}

func TestLoadRenderConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "render.yaml")
	require.NoError(t, os.WriteFile(path, []byte("scene: final\nsamples: 10\n"), 0o644))

	config, err := LoadRenderConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "final", config.Scene)
	assert.Equal(t, 10, config.Samples)

	_, err = LoadRenderConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
