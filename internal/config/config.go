// Package config loads the optional forcefield configuration file.
//
// Configuration lives in a TOML file, by default at
// $XDG_CONFIG_HOME/forcefield/config.toml (falling back to
// ~/.config/forcefield/config.toml). Every field is optional; unset
// values fall back to the built-in defaults, and command-line flags
// override the file.
package config

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/lhartmann/forcefield/pkg/errors"
	"github.com/lhartmann/forcefield/pkg/layout"
	"github.com/lhartmann/forcefield/pkg/pipeline"
)

const appName = "forcefield"

// Config mirrors the TOML file structure.
type Config struct {
	Frame  Frame  `toml:"frame"`
	Forces Forces `toml:"forces"`
	Render Render `toml:"render"`
	Cache  Cache  `toml:"cache"`
	Server Server `toml:"server"`
}

// Frame configures the output viewport.
type Frame struct {
	Width  float64 `toml:"width"`
	Height float64 `toml:"height"`
}

// Forces configures the simulation coefficients.
type Forces struct {
	Charge       float64 `toml:"charge"`
	LinkDistance float64 `toml:"link_distance"`
	Collide      bool    `toml:"collide"`
	Jitter       float64 `toml:"jitter"`
	JitterSeed   int64   `toml:"jitter_seed"`
	MaxTicks     int     `toml:"max_ticks"`
}

// Render configures the default output styling.
type Render struct {
	Theme     string  `toml:"theme"`
	Labels    bool    `toml:"labels"`
	EdgeWidth float64 `toml:"edge_width"`
}

// Cache configures the artifact cache backends.
type Cache struct {
	// Dir overrides the file cache directory.
	Dir string `toml:"dir"`

	// RedisURL enables the Redis backend when set,
	// e.g. "redis://localhost:6379/0".
	RedisURL string `toml:"redis_url"`
}

// Server configures the HTTP server.
type Server struct {
	Addr string `toml:"addr"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Frame:  Frame{Width: layout.DefaultWidth, Height: layout.DefaultHeight},
		Render: Render{Theme: pipeline.ThemeLight, EdgeWidth: 1},
		Server: Server{Addr: ":8466"},
	}
}

// Path returns the default configuration file location.
func Path() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName, "config.toml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName, "config.toml"), nil
}

// Load reads the file at path over the defaults.
// An unreadable or malformed file is an error.
func Load(path string) (Config, error) {
	cfg := Default()
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return Config{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "load config %s", path)
	}
	return cfg, nil
}

// LoadDefault reads the configuration from the default location.
// A missing file is not an error; the defaults are returned.
func LoadDefault() (Config, error) {
	path, err := Path()
	if err != nil {
		return Default(), nil
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return Default(), nil
	}
	return Load(path)
}

// PipelineOptions translates the config into baseline pipeline options.
// Flag handling layers user overrides on top of the returned value.
func (c Config) PipelineOptions() pipeline.Options {
	return pipeline.Options{
		Width:        c.Frame.Width,
		Height:       c.Frame.Height,
		Charge:       c.Forces.Charge,
		LinkDistance: c.Forces.LinkDistance,
		Collide:      c.Forces.Collide,
		Jitter:       c.Forces.Jitter,
		JitterSeed:   c.Forces.JitterSeed,
		MaxTicks:     c.Forces.MaxTicks,
		Theme:        c.Render.Theme,
		Labels:       c.Render.Labels,
		EdgeWidth:    c.Render.EdgeWidth,
	}
}
