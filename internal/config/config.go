// Package config handles orrery configuration loading and management.
package config

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/taigrr/orrery/pkg/render"
)

// Config holds all settings.
type Config struct {
	Render  RenderConfig  `yaml:"render"`
	Noise   NoiseConfig   `yaml:"noise"`
	Scene   SceneConfig   `yaml:"scene"`
	Output  OutputConfig  `yaml:"output"`
	Logging LoggingConfig `yaml:"logging"`

	// WriteConfig, when set, asks the CLI to save the effective settings
	// to this path and exit. It is never stored in the file itself.
	WriteConfig string `yaml:"-"`
}

// RenderConfig holds framebuffer and pipeline settings. A zero width or
// height follows the terminal size.
type RenderConfig struct {
	Width      int    `yaml:"width"`
	Height     int    `yaml:"height"`
	Workers    int    `yaml:"workers"`
	EdgeRule   string `yaml:"edge_rule"` // "top-left" or "inclusive"
	FPS        int    `yaml:"fps"`
	Background string `yaml:"background"` // Hex color, e.g. "000000"
}

// NoiseConfig holds the coherent noise settings.
type NoiseConfig struct {
	Seed      int64   `yaml:"seed"`
	Frequency float64 `yaml:"frequency"`
	Octaves   int     `yaml:"octaves"`
}

// SceneConfig holds mesh and instancing settings.
type SceneConfig struct {
	Mesh         string    `yaml:"mesh"` // Optional GLB replacing the body sphere
	SphereStacks int       `yaml:"sphere_stacks"`
	SphereSlices int       `yaml:"sphere_slices"`
	RingScales   []float64 `yaml:"ring_scales"`
	Focus        string    `yaml:"focus"` // Body name to focus at startup
}

// OutputConfig holds snapshot settings. An empty Snapshot runs the
// interactive terminal viewer.
type OutputConfig struct {
	Snapshot string `yaml:"snapshot"`
	Frames   int    `yaml:"frames"` // Frames simulated before the snapshot
	Scale    int    `yaml:"scale"`
	Smooth   bool   `yaml:"smooth"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Render: RenderConfig{
			Workers:    1,
			EdgeRule:   render.EdgeTopLeft.String(),
			FPS:        30,
			Background: "000000",
		},
		Noise: NoiseConfig{
			Seed:      1337,
			Frequency: 1,
			Octaves:   1,
		},
		Scene: SceneConfig{
			SphereStacks: 16,
			SphereSlices: 24,
			RingScales:   []float64{1.9, 2.4},
		},
		Output: OutputConfig{
			Frames: 1,
			Scale:  1,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Validate reports the first setting that cannot be used.
func (c *Config) Validate() error {
	switch {
	case c.Render.Width < 0 || c.Render.Height < 0:
		return fmt.Errorf("render size %dx%d is negative", c.Render.Width, c.Render.Height)
	case c.Render.FPS <= 0:
		return fmt.Errorf("render fps must be positive, got %d", c.Render.FPS)
	case c.Scene.SphereStacks < 2 || c.Scene.SphereSlices < 3:
		return fmt.Errorf("sphere detail %dx%d too low", c.Scene.SphereStacks, c.Scene.SphereSlices)
	case c.Output.Scale < 1:
		return fmt.Errorf("output scale must be at least 1, got %d", c.Output.Scale)
	case c.Output.Snapshot != "" && (c.Render.Width == 0 || c.Render.Height == 0):
		return fmt.Errorf("snapshot needs an explicit render width and height")
	}
	if _, err := c.EdgeRule(); err != nil {
		return err
	}
	if _, err := c.BackgroundColor(); err != nil {
		return err
	}
	return nil
}

// EdgeRule parses Render.EdgeRule.
func (c *Config) EdgeRule() (render.EdgeRule, error) {
	for _, rule := range []render.EdgeRule{render.EdgeTopLeft, render.EdgeInclusive} {
		if strings.EqualFold(c.Render.EdgeRule, rule.String()) {
			return rule, nil
		}
	}
	return 0, fmt.Errorf("unknown edge rule %q", c.Render.EdgeRule)
}

// BackgroundColor parses Render.Background as a packed 0xRRGGBB value.
func (c *Config) BackgroundColor() (uint32, error) {
	s := strings.TrimPrefix(strings.TrimPrefix(c.Render.Background, "#"), "0x")
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil || v > 0xFFFFFF {
		return 0, fmt.Errorf("invalid background color %q", c.Render.Background)
	}
	return uint32(v), nil
}
