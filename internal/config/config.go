package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"Cinematic3D/internal/loader"

	"github.com/go-gl/mathgl/mgl64"
	"go.uber.org/multierr"
	"gopkg.in/yaml.v3"
)

// Config is the player configuration file.
type Config struct {
	Scene    string  `yaml:"scene"`
	FPS      int     `yaml:"fps"`
	Duration float64 `yaml:"duration"` // seconds to run headless, 0 runs until interrupted
	Headless bool    `yaml:"headless"`
	LogLevel string  `yaml:"log_level"`
	Workers  int     `yaml:"workers"` // asset loader workers

	Window    WindowConfig              `yaml:"window"`
	Assets    map[string]AssetConfig    `yaml:"assets"`
	Sounds    map[string]string         `yaml:"sounds,omitempty"`
	Sequences map[string]SequenceConfig `yaml:"sequences,omitempty"`
}

type WindowConfig struct {
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	Title  string `yaml:"title"`
}

// AssetConfig points a scene asset name at a file. Binary scenes (.glb,
// .gltf) are not parsed, so they need their bounds here.
type AssetConfig struct {
	Path   string        `yaml:"path"`
	Bounds *BoundsConfig `yaml:"bounds,omitempty"`
}

type BoundsConfig struct {
	Min [3]float64 `yaml:"min"`
	Max [3]float64 `yaml:"max"`
}

func (b BoundsConfig) Bounds() loader.Bounds {
	return loader.Bounds{Min: mgl64.Vec3(b.Min), Max: mgl64.Vec3(b.Max)}
}

// Default is the configuration used when no file is given. The asset paths
// follow the models/ layout the builtin scenes were authored against.
func Default() *Config {
	return &Config{
		Scene:    "aquarium_v5",
		FPS:      60,
		LogLevel: "info",
		Workers:  2,
		Window: WindowConfig{
			Width:  1280,
			Height: 720,
			Title:  "Cinematic3D",
		},
		Assets: map[string]AssetConfig{
			"paper_plane":   {Path: "models/paper_plane.glb", Bounds: &BoundsConfig{Min: [3]float64{-0.5, -0.1, -0.5}, Max: [3]float64{0.5, 0.1, 0.5}}},
			"weeping_angel": {Path: "models/weeping_angel.glb", Bounds: &BoundsConfig{Min: [3]float64{-9.1, 0, -0.8}, Max: [3]float64{-6.9, 5.5, 1.7}}},
			"corridor":      {Path: "models/horror_corridor_1.glb", Bounds: &BoundsConfig{Min: [3]float64{-12, 0, -40}, Max: [3]float64{12, 6, 4}}},
			"aquarium":      {Path: "models/room_aquarium_now_animated.glb", Bounds: &BoundsConfig{Min: [3]float64{-30, 0, -60}, Max: [3]float64{30, 35, 45}}},
			"fish":          {Path: "models/fish.glb", Bounds: &BoundsConfig{Min: [3]float64{-0.4, -0.2, -1}, Max: [3]float64{0.4, 0.2, 1}}},
		},
		Sounds: map[string]string{
			"splash": "sounds/splash.mp3",
		},
	}
}

// Load reads path over the defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	return Parse(data)
}

func Parse(data []byte) (*Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate reports every problem at once.
func (c *Config) Validate() error {
	var err error
	if c.FPS <= 0 {
		err = multierr.Append(err, fmt.Errorf("fps must be positive, got %d", c.FPS))
	}
	if c.Duration < 0 {
		err = multierr.Append(err, fmt.Errorf("duration must not be negative, got %v", c.Duration))
	}
	if c.Workers <= 0 {
		err = multierr.Append(err, fmt.Errorf("workers must be positive, got %d", c.Workers))
	}
	if !c.Headless && (c.Window.Width <= 0 || c.Window.Height <= 0) {
		err = multierr.Append(err, fmt.Errorf("window size %dx%d is not usable", c.Window.Width, c.Window.Height))
	}
	for name, a := range c.Assets {
		if a.Path == "" {
			err = multierr.Append(err, fmt.Errorf("asset %q has no path", name))
		}
	}
	for name, seq := range c.Sequences {
		if e := seq.Validate(); e != nil {
			err = multierr.Append(err, fmt.Errorf("sequence %q: %w", name, e))
		}
		for _, dep := range seq.WaitFor {
			if _, ok := c.Assets[dep]; !ok {
				err = multierr.Append(err, fmt.Errorf("sequence %q waits for unknown asset %q", name, dep))
			}
		}
	}
	return err
}

// OpaqueBounds maps asset paths to their configured bounds for the loader.
func (c *Config) OpaqueBounds() map[string]loader.Bounds {
	out := make(map[string]loader.Bounds)
	for _, a := range c.Assets {
		if a.Bounds != nil {
			out[a.Path] = a.Bounds.Bounds()
		}
	}
	return out
}

// Rebase joins relative asset and sound paths onto dir.
func (c *Config) Rebase(dir string) {
	if dir == "" {
		return
	}
	for name, a := range c.Assets {
		if !filepath.IsAbs(a.Path) {
			a.Path = filepath.Join(dir, a.Path)
			c.Assets[name] = a
		}
	}
	for name, path := range c.Sounds {
		if !filepath.IsAbs(path) {
			c.Sounds[name] = filepath.Join(dir, path)
		}
	}
}

var ErrUnknownAsset = errors.New("unknown asset")

// AssetPath resolves a scene asset name.
func (c *Config) AssetPath(name string) (string, error) {
	a, ok := c.Assets[name]
	if !ok {
		return "", fmt.Errorf("%w %q", ErrUnknownAsset, name)
	}
	return a.Path, nil
}
