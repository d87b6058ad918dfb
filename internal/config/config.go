// Package config loads geoedit's optional YAML settings file.
package config

import (
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
	"go.yaml.in/yaml/v3"

	"geoedit/internal/delegate"
)

// Camera is the initial view. It is never changed at runtime; panning and
// zooming only move an offset on top of it.
type Camera struct {
	Longitude float64 `yaml:"longitude" validate:"gte=-180,lte=180"`
	Latitude  float64 `yaml:"latitude" validate:"gte=-85.05112878,lte=85.05112878"`
	Zoom      float64 `yaml:"zoom" validate:"gte=0,lte=22"`
}

// Colors are lipgloss colour strings.
type Colors struct {
	Fill          string `yaml:"fill" validate:"required,hexcolor"`
	Line          string `yaml:"line" validate:"required,hexcolor"`
	TentativeFill string `yaml:"tentative_fill" validate:"required,hexcolor"`
	TentativeLine string `yaml:"tentative_line" validate:"required,hexcolor"`
	Marker        string `yaml:"marker" validate:"required,hexcolor"`
}

type Config struct {
	Camera    Camera `yaml:"camera"`
	MapStyle  string `yaml:"map_style" validate:"required"`
	Colors    Colors `yaml:"colors"`
	LogFile   string `yaml:"log_file"` // empty disables logging
	Output    string `yaml:"output"`   // .shp exports a shapefile
	Verbosity int    `yaml:"verbosity" validate:"gte=0,lte=4"`
}

// Default returns the built-in settings: a satellite-streets style over
// East Java at zoom 14.
func Default() Config {
	p := delegate.DefaultPalette()
	return Config{
		Camera: Camera{
			Longitude: 112.234539,
			Latitude:  -7.555437,
			Zoom:      14,
		},
		MapStyle: "mapbox://styles/mapbox/satellite-streets-v10",
		Colors: Colors{
			Fill:          p.Fill,
			Line:          p.Line,
			TentativeFill: p.TentativeFill,
			TentativeLine: p.TentativeLine,
			Marker:        p.Marker,
		},
		Output: "geoedit.geojson",
	}
}

// Load reads path over the defaults. An empty path returns the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, cfg.Validate()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, errors.Wrap(err, "read config")
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, errors.Wrapf(err, "parse config %s", path)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, errors.Wrapf(err, "config %s", path)
	}
	return cfg, nil
}

// Validate checks ranges and colour formats.
func (c Config) Validate() error {
	return validator.New().Struct(c)
}

// Palette converts the configured colours for the editable layer.
func (c Config) Palette() delegate.Palette {
	return delegate.Palette{
		Fill:          c.Colors.Fill,
		Line:          c.Colors.Line,
		TentativeFill: c.Colors.TentativeFill,
		TentativeLine: c.Colors.TentativeLine,
		Marker:        c.Colors.Marker,
	}
}
