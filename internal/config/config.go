package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/mandelview/internal/compute"
	"github.com/san-kum/mandelview/internal/fractal"
)

const (
	DefaultWidth   = 120
	DefaultHeight  = 80
	DefaultScheme  = 0
	DefaultBackend = "auto"
	DefaultPreset  = "full"
	DefaultTheme   = "midnight"
)

type Config struct {
	Width    int               `yaml:"width"`
	Height   int               `yaml:"height"`
	Scheme   int               `yaml:"scheme"`
	Preset   string            `yaml:"preset"`
	Viewport *fractal.Viewport `yaml:"viewport,omitempty"`
	Compute  ComputeConfig     `yaml:"compute"`
	Theme    string            `yaml:"theme"`
	DataDir  string            `yaml:"data_dir"`
	DebugLog string            `yaml:"debug_log"`
}

type ComputeConfig struct {
	Backend  string `yaml:"backend"`
	Workers  int    `yaml:"workers"`
	TileSize int    `yaml:"tile_size"`
}

func DefaultConfig() *Config {
	return &Config{
		Width:  DefaultWidth,
		Height: DefaultHeight,
		Scheme: DefaultScheme,
		Preset: DefaultPreset,
		Theme:  DefaultTheme,
		Compute: ComputeConfig{
			Backend:  DefaultBackend,
			TileSize: compute.DefaultTileSize,
		},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (c *Config) Validate() error {
	if c.Width < 0 || c.Height < 0 {
		return fmt.Errorf("canvas size must not be negative, got %dx%d", c.Width, c.Height)
	}
	if !fractal.Scheme(c.Scheme).Valid() {
		return fmt.Errorf("%w: %d", fractal.ErrUnknownScheme, c.Scheme)
	}
	if c.Preset != "" && GetPreset(c.Preset) == nil {
		return fmt.Errorf("unknown preset: %s (available: %v)", c.Preset, ListPresets())
	}
	if c.Viewport != nil {
		if err := c.Viewport.Validate(); err != nil {
			return err
		}
	}
	if c.Compute.Workers < 0 {
		return fmt.Errorf("workers must not be negative, got %d", c.Compute.Workers)
	}
	if c.Compute.TileSize < 0 {
		return fmt.Errorf("tile size must not be negative, got %d", c.Compute.TileSize)
	}
	switch c.Compute.Backend {
	case "", "auto", "cpu", "cuda":
	default:
		return fmt.Errorf("unknown backend: %s (available: %v)", c.Compute.Backend, compute.Backends())
	}
	return nil
}

// ColorScheme returns the configured scheme selector.
func (c *Config) ColorScheme() fractal.Scheme {
	return fractal.Scheme(c.Scheme)
}

// GetViewport resolves the starting viewport for a width x height canvas.
// An explicit viewport wins over the preset.
func (c *Config) GetViewport(width, height int) fractal.Viewport {
	if c.Viewport != nil {
		return *c.Viewport
	}
	if p := GetPreset(c.Preset); p != nil {
		return p.Viewport(width, height)
	}
	return fractal.Fit(width, height)
}

func (c *Config) GetComputeOptions() compute.Options {
	return compute.Options{
		Workers:  c.Compute.Workers,
		TileSize: c.Compute.TileSize,
	}
}
