// Package config provides configuration loading and access for the particle field.
package config

import (
	_ "embed"
	"fmt"
	"image/color"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all field configuration parameters.
type Config struct {
	Screen    ScreenConfig    `yaml:"screen" toml:"screen"`
	Field     FieldConfig     `yaml:"field" toml:"field"`
	Force     ForceConfig     `yaml:"force" toml:"force"`
	Physics   PhysicsConfig   `yaml:"physics" toml:"physics"`
	Paint     PaintConfig     `yaml:"paint" toml:"paint"`
	Terminal  TerminalConfig  `yaml:"terminal" toml:"terminal"`
	Telemetry TelemetryConfig `yaml:"telemetry" toml:"telemetry"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-" toml:"-"`
}

// ScreenConfig holds display settings.
type ScreenConfig struct {
	Width      int    `yaml:"width" toml:"width"`
	Height     int    `yaml:"height" toml:"height"`
	TargetFPS  int    `yaml:"target_fps" toml:"target_fps"`
	Title      string `yaml:"title" toml:"title"`
	Resizable  bool   `yaml:"resizable" toml:"resizable"`
	Background string `yaml:"background" toml:"background"` // hex color cleared behind the field
}

// FieldConfig holds particle count and spawn ranges.
// Each randomized value is min + u*range for a uniform u in [0, 1).
type FieldConfig struct {
	Count      int     `yaml:"count" toml:"count"`
	VXJitter   float64 `yaml:"vx_jitter" toml:"vx_jitter"`     // vx = (u-0.5) * this
	VYBase     float64 `yaml:"vy_base" toml:"vy_base"`         // vy = base - u*jitter
	VYJitter   float64 `yaml:"vy_jitter" toml:"vy_jitter"`
	SizeMin    float64 `yaml:"size_min" toml:"size_min"`
	SizeRange  float64 `yaml:"size_range" toml:"size_range"`
	AlphaMin   float64 `yaml:"alpha_min" toml:"alpha_min"`
	AlphaRange float64 `yaml:"alpha_range" toml:"alpha_range"`
}

// ForceConfig holds pointer repulsion parameters.
type ForceConfig struct {
	Radius   float64 `yaml:"radius" toml:"radius"`     // hard cutoff distance
	Strength float64 `yaml:"strength" toml:"strength"` // velocity delta scale at the pointer
}

// PhysicsConfig holds per-tick integration parameters.
type PhysicsConfig struct {
	Damping float64 `yaml:"damping" toml:"damping"` // velocity multiplier per tick
	Drift   float64 `yaml:"drift" toml:"drift"`     // added to vy every tick
}

// PaintConfig holds the fixed paint settings applied once to the surface.
type PaintConfig struct {
	Color     string  `yaml:"color" toml:"color"`
	Blur      float64 `yaml:"blur" toml:"blur"`
	BlurColor string  `yaml:"blur_color" toml:"blur_color"`
}

// TerminalConfig holds settings for the terminal backend.
type TerminalConfig struct {
	CellWidth  float64 `yaml:"cell_width" toml:"cell_width"`   // surface units per column
	CellHeight float64 `yaml:"cell_height" toml:"cell_height"` // surface units per row
	LogFile    string  `yaml:"log_file" toml:"log_file"`       // stdout belongs to the screen
}

// TelemetryConfig holds telemetry parameters.
type TelemetryConfig struct {
	StatsWindow         float64 `yaml:"stats_window" toml:"stats_window"` // seconds
	PerfCollectorWindow int     `yaml:"perf_collector_window" toml:"perf_collector_window"`
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	Background color.RGBA
	PaintColor color.RGBA
	BlurColor  color.RGBA
	StatsTicks int // Telemetry.StatsWindow converted to ticks at TargetFPS
}

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded defaults if path is empty.
// Must be called before Cfg().
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// MustInit is like Init but panics on error.
func MustInit(path string) {
	if err := Init(path); err != nil {
		panic(fmt.Sprintf("config: failed to initialize: %v", err))
	}
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Default returns the embedded defaults.
func Default() *Config {
	cfg, err := Load("")
	if err != nil {
		panic(fmt.Sprintf("config: embedded defaults invalid: %v", err))
	}
	return cfg
}

// Load loads configuration from a YAML or TOML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	// Start with embedded defaults
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Decode into same struct - only overwrites fields present in file
		if err := decode(path, data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := cfg.computeDerived(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func decode(path string, data []byte, cfg *Config) error {
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		_, err := toml.Decode(string(data), cfg)
		return err
	}
	return yaml.Unmarshal(data, cfg)
}

// Validate reports the first out-of-range parameter.
func (c *Config) Validate() error {
	switch {
	case c.Field.Count < 0:
		return fmt.Errorf("field.count must be >= 0, got %d", c.Field.Count)
	case c.Force.Radius <= 0:
		return fmt.Errorf("force.radius must be > 0, got %g", c.Force.Radius)
	case c.Force.Strength < 0:
		return fmt.Errorf("force.strength must be >= 0, got %g", c.Force.Strength)
	case c.Physics.Damping <= 0 || c.Physics.Damping > 1:
		return fmt.Errorf("physics.damping must be in (0, 1], got %g", c.Physics.Damping)
	case c.Paint.Blur < 0:
		return fmt.Errorf("paint.blur must be >= 0, got %g", c.Paint.Blur)
	case c.Screen.TargetFPS <= 0:
		return fmt.Errorf("screen.target_fps must be > 0, got %d", c.Screen.TargetFPS)
	case c.Terminal.CellWidth <= 0 || c.Terminal.CellHeight <= 0:
		return fmt.Errorf("terminal cell size must be positive, got %gx%g", c.Terminal.CellWidth, c.Terminal.CellHeight)
	}
	return nil
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() error {
	var err error
	if c.Derived.Background, err = ParseHexColor(c.Screen.Background); err != nil {
		return fmt.Errorf("screen.background: %w", err)
	}
	if c.Derived.PaintColor, err = ParseHexColor(c.Paint.Color); err != nil {
		return fmt.Errorf("paint.color: %w", err)
	}
	if c.Derived.BlurColor, err = ParseHexColor(c.Paint.BlurColor); err != nil {
		return fmt.Errorf("paint.blur_color: %w", err)
	}

	c.Derived.StatsTicks = int(c.Telemetry.StatsWindow * float64(c.Screen.TargetFPS))
	if c.Derived.StatsTicks < 1 {
		c.Derived.StatsTicks = 1
	}
	return nil
}

// ParseHexColor parses "#rrggbb" or "#rrggbbaa". Alpha defaults to opaque.
func ParseHexColor(s string) (color.RGBA, error) {
	hex := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(hex) != 6 && len(hex) != 8 {
		return color.RGBA{}, fmt.Errorf("invalid hex color %q", s)
	}
	if len(hex) == 6 {
		hex += "ff"
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("invalid hex color %q: %w", s, err)
	}
	return color.RGBA{
		R: uint8(v >> 24),
		G: uint8(v >> 16),
		B: uint8(v >> 8),
		A: uint8(v),
	}, nil
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
