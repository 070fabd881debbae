package loaders

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/df07/go-pathtracer/pkg/core"
)

// RenderConfig is the on-disk render configuration. Zero values mean
// "not set" and are filled from the scene defaults or CLI flags.
type RenderConfig struct {
	Scene      string `yaml:"scene"`
	Width      int    `yaml:"width"`
	Height     int    `yaml:"height"`
	Samples    int    `yaml:"samples"`
	MaxDepth   int    `yaml:"max_depth"`
	Workers    int    `yaml:"workers"`
	TileSize   int    `yaml:"tile_size"`
	Seed       uint64 `yaml:"seed"`
	Output     string `yaml:"output"`
	EarthImage string `yaml:"earth_image"`
}

// LoadRenderConfig reads a YAML render configuration file
func LoadRenderConfig(filename string) (*RenderConfig, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	config, err := ParseRenderConfig(data)
	if err != nil {
		return nil, fmt.Errorf("config %s: %w", filename, err)
	}
	return config, nil
}

// ParseRenderConfig decodes YAML render configuration. Unknown keys are rejected.
func ParseRenderConfig(data []byte) (*RenderConfig, error) {
	config := &RenderConfig{}

	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(config); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// Validate rejects negative sizes and counts
func (c *RenderConfig) Validate() error {
	fields := []struct {
		name  string
		value int
	}{
		{"width", c.Width},
		{"height", c.Height},
		{"samples", c.Samples},
		{"max_depth", c.MaxDepth},
		{"workers", c.Workers},
		{"tile_size", c.TileSize},
	}
	for _, f := range fields {
		if f.value < 0 {
			return fmt.Errorf("%s must not be negative (got %d): %w", f.name, f.value, core.ErrInvalidInput)
		}
	}
	return nil
}
