// Package config handles meshsplit configuration loading and management.
package config

import (
	"errors"
	"fmt"
)

// ErrInvalidConfig is returned by Validate.
var ErrInvalidConfig = errors.New("invalid config")

// Config holds all meshsplit settings.
type Config struct {
	Split   SplitConfig   `yaml:"split"`
	Output  OutputConfig  `yaml:"output"`
	Preview PreviewConfig `yaml:"preview"`
	Logging LoggingConfig `yaml:"logging"`
}

// SplitConfig holds partitioning settings.
type SplitConfig struct {
	MaxVerts         int    `yaml:"max_verts"`          // Vertex budget per part
	CopyVertexColors bool   `yaml:"copy_vertex_colors"` // Transfer color values, not just layers
	NameFormat       string `yaml:"name_format"`        // Part name, e.g. %s_part_%03d
}

// OutputConfig holds where results are written.
type OutputConfig struct {
	Dir    string `yaml:"dir"`
	Report bool   `yaml:"report"` // Write <name>.report.yaml next to each OBJ
}

// PreviewConfig holds region preview settings.
type PreviewConfig struct {
	Enabled bool   `yaml:"enabled"`
	Size    int    `yaml:"size"`
	Plane   string `yaml:"plane"` // xy, xz or yz
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Split: SplitConfig{
			MaxVerts:         128,
			CopyVertexColors: true,
			NameFormat:       "%s_part_%03d",
		},
		Output: OutputConfig{
			Dir:    "out",
			Report: true,
		},
		Preview: PreviewConfig{
			Enabled: false,
			Size:    512,
			Plane:   "xz",
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}

// Validate checks that every setting is usable.
func (c *Config) Validate() error {
	if c.Split.MaxVerts <= 0 {
		return fmt.Errorf("%w: split.max_verts must be positive, got %d", ErrInvalidConfig, c.Split.MaxVerts)
	}
	if c.Split.NameFormat == "" {
		return fmt.Errorf("%w: split.name_format is empty", ErrInvalidConfig)
	}
	if c.Output.Dir == "" {
		return fmt.Errorf("%w: output.dir is empty", ErrInvalidConfig)
	}
	if c.Preview.Size <= 0 {
		return fmt.Errorf("%w: preview.size must be positive, got %d", ErrInvalidConfig, c.Preview.Size)
	}
	switch c.Preview.Plane {
	case "xy", "xz", "yz":
	default:
		return fmt.Errorf("%w: preview.plane %q is not xy, xz or yz", ErrInvalidConfig, c.Preview.Plane)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("%w: logging.level %q", ErrInvalidConfig, c.Logging.Level)
	}
	return nil
}
