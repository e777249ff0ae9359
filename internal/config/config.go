package config

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"cogentcore.org/core/base/errors"
	"github.com/mitchellh/go-homedir"
	"github.com/pelletier/go-toml/v2"
)

const (
	WindowWidth  = 1280
	WindowHeight = 720

	// Camera
	CameraFOV      = 75
	CameraNear     = 0.1
	CameraFar      = 1000
	CameraDistMin  = 10
	CameraDistMax  = 50
	CameraDamping  = 0.05
	ClickSlopPx    = 4
	LoadingDelayMs = 500

	// Fog and background
	Background = 0x0a0a0a
	FogNear    = 10
	FogFar     = 50

	// Rotation rates in radians per second
	RingSpin = 0.06
	TreeSpin = 0.06
	SnowSpin = 0.012
	StarSpin = 0.03

	// Image ring
	MaxImages    = 20
	EnlargeMs    = 600
	EnlargeDist  = 8
	EnlargeScale = 4

	// Slider panel, bottom-left
	SliderX      = 20
	SliderWidth  = 220
	SliderHeight = 14
	SliderGap    = 30

	DefaultConfigFile = "tree.toml"
)

// Params are the scene parameters the control surface mutates.
type Params struct {
	ParticleCount       int     `toml:"particle_count"`
	RotationSpeed       float64 `toml:"rotation_speed"`
	ParticleSize        float64 `toml:"particle_size"`
	TreeHeight          float64 `toml:"tree_height"`
	TreeWidth           float64 `toml:"tree_width"`
	Layers              int     `toml:"layers"`
	GroundParticleCount int     `toml:"ground_particle_count"`
	SnowParticleCount   int     `toml:"snow_particle_count"`
	StarParticleCount   int     `toml:"star_particle_count"`
	GroundParticleSize  float64 `toml:"ground_particle_size"`
	SnowParticleSize    float64 `toml:"snow_particle_size"`
	StarParticleSize    float64 `toml:"star_particle_size"`
}

// DefaultParams returns the parameters the scene starts with and resets to.
func DefaultParams() Params {
	return Params{
		ParticleCount:       5000,
		RotationSpeed:       1.0,
		ParticleSize:        2.0,
		TreeHeight:          15,
		TreeWidth:           8,
		Layers:              8,
		GroundParticleCount: 16000,
		SnowParticleCount:   4000,
		StarParticleCount:   500,
		GroundParticleSize:  0.8,
		SnowParticleSize:    1.2,
		StarParticleSize:    1.5,
	}
}

// Config is the full startup configuration.
type Config struct {
	Params Params `toml:"params"`

	// Images is an explicit ordered image list. When empty, ImageDir is scanned.
	Images   []string `toml:"images"`
	ImageDir string   `toml:"image_dir"`
	// WatchImages reloads the ring when ImageDir changes.
	WatchImages bool `toml:"watch_images"`

	Music       string  `toml:"music"`
	MusicVolume float64 `toml:"music_volume"`

	// Seed drives every particle generator; 0 picks a time-based seed.
	Seed int64 `toml:"seed"`

	// PointScale converts point size to pixels at unit distance.
	PointScale float64 `toml:"point_scale"`

	LogLevel string `toml:"log_level"`
}

// Default returns the configuration used when no file is present.
func Default() Config {
	return Config{
		Params:      DefaultParams(),
		ImageDir:    "image",
		WatchImages: true,
		MusicVolume: 0,
		PointScale:  300,
		LogLevel:    "info",
	}
}

// Load reads a TOML file over the defaults. A missing file is not an error.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	p, err := homedir.Expand(path)
	if err != nil {
		return cfg, fmt.Errorf("expand config path %q: %w", path, err)
	}
	b, err := os.ReadFile(p)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := toml.Unmarshal(b, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", p, err)
	}
	if err := cfg.normalize(); err != nil {
		return cfg, fmt.Errorf("config %s: %w", p, err)
	}
	return cfg, nil
}

func (c *Config) normalize() error {
	if c.ImageDir != "" {
		d, err := homedir.Expand(c.ImageDir)
		if err != nil {
			return err
		}
		c.ImageDir = d
	}
	if c.Music != "" {
		m, err := homedir.Expand(c.Music)
		if err != nil {
			return err
		}
		c.Music = m
	}
	if len(c.Images) > MaxImages {
		c.Images = c.Images[:MaxImages]
	}
	if c.Params.Layers <= 0 {
		return errors.New("params.layers must be positive")
	}
	if c.PointScale <= 0 {
		c.PointScale = Default().PointScale
	}
	return nil
}

// SlogLevel maps LogLevel onto a slog level, defaulting to info.
func (c Config) SlogLevel() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}
	return slog.LevelInfo
}
