// Package config provides configuration loading and access for the metaball demo.
package config

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// RadialLevels is the number of intensity levels per channel in a radial color.
const RadialLevels = 6

// Config holds all configuration parameters.
type Config struct {
	Screen    ScreenConfig    `yaml:"screen"`
	Field     FieldConfig     `yaml:"field"`
	Colors    ColorsConfig    `yaml:"colors"`
	Sources   SourcesConfig   `yaml:"sources"`
	Parallel  ParallelConfig  `yaml:"parallel"`
	Telemetry TelemetryConfig `yaml:"telemetry"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// ScreenConfig holds display settings.
// Width and Height are the canvas size in pixels; Scale is how many window
// pixels each canvas pixel covers.
type ScreenConfig struct {
	Width     int     `yaml:"width"`
	Height    int     `yaml:"height"`
	Scale     int     `yaml:"scale"`
	TargetFPS int     `yaml:"target_fps"`
	DT        float64 `yaml:"dt"` // fixed step for headless runs
}

// FieldConfig holds metaball field rendering parameters.
type FieldConfig struct {
	Resolution     int    `yaml:"resolution"`      // canvas pixels per grid sample (1 = per pixel)
	Interpolated   bool   `yaml:"interpolated"`    // interpolate contour edge points (resolution > 1 only)
	Filled         bool   `yaml:"filled"`          // draw the dithered fill
	Outlined       bool   `yaml:"outlined"`        // draw the marching squares outline
	ResolveSaddles bool   `yaml:"resolve_saddles"` // disambiguate cases 5/10 with the cell center value
	Falloff        string `yaml:"falloff"`         // intensity curve name (see systems.FalloffNames)
}

// ColorsConfig holds radial colors as [r, g, b] triples in 0..5.
type ColorsConfig struct {
	Primary    []int `yaml:"primary"`
	Secondary  []int `yaml:"secondary"`
	Outline    []int `yaml:"outline"`
	Background []int `yaml:"background"`
	Shapes     []int `yaml:"shapes"`
}

// SourcesConfig holds influence source spawning parameters.
type SourcesConfig struct {
	Count      int     `yaml:"count"`
	MinRadius  float64 `yaml:"min_radius"`
	MaxRadius  float64 `yaml:"max_radius"`
	MaxSpeed   float64 `yaml:"max_speed"`   // pixels per second
	DrawShapes bool    `yaml:"draw_shapes"` // outline each source circle on top
}

// ParallelConfig holds worker pool parameters.
type ParallelConfig struct {
	Workers int `yaml:"workers"`  // 0 = GOMAXPROCS
	MinRows int `yaml:"min_rows"` // below this many grid rows passes run inline
}

// TelemetryConfig holds telemetry parameters.
type TelemetryConfig struct {
	StatsWindow float64 `yaml:"stats_window"` // seconds between stats log lines
	PerfWindow  int     `yaml:"perf_window"`  // frames averaged by the perf collector
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	DT32       float32  // Screen.DT as float32
	GridW      int      // Screen.Width / Field.Resolution
	GridH      int      // Screen.Height / Field.Resolution
	WindowW    int      // Screen.Width * Screen.Scale
	WindowH    int      // Screen.Height * Screen.Scale
	Primary    [3]uint8 // parsed radial colors
	Secondary  [3]uint8
	Outline    [3]uint8
	Background [3]uint8
	Shapes     [3]uint8
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

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Unmarshal into same struct - only overwrites fields present in file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	cfg.computeDerived()

	return cfg, nil
}

// Validate clamps values into their legal ranges and rejects malformed colors.
func (c *Config) Validate() error {
	if c.Screen.Width < 0 {
		c.Screen.Width = 0
	}
	if c.Screen.Height < 0 {
		c.Screen.Height = 0
	}
	if c.Screen.Scale < 1 {
		c.Screen.Scale = 1
	}
	if c.Screen.TargetFPS < 1 {
		c.Screen.TargetFPS = 60
	}
	if c.Screen.DT <= 0 {
		c.Screen.DT = 1.0 / 60.0
	}
	if c.Field.Resolution < 1 {
		c.Field.Resolution = 1
	}
	if c.Sources.Count < 0 {
		c.Sources.Count = 0
	}
	if c.Sources.MinRadius <= 0 {
		c.Sources.MinRadius = 1
	}
	if c.Sources.MaxRadius < c.Sources.MinRadius {
		c.Sources.MaxRadius = c.Sources.MinRadius
	}
	if c.Sources.MaxSpeed < 0 {
		c.Sources.MaxSpeed = 0
	}
	if c.Parallel.Workers < 0 {
		c.Parallel.Workers = 0
	}
	if c.Telemetry.PerfWindow < 1 {
		c.Telemetry.PerfWindow = 60
	}

	colors := map[string][]int{
		"primary":    c.Colors.Primary,
		"secondary":  c.Colors.Secondary,
		"outline":    c.Colors.Outline,
		"background": c.Colors.Background,
		"shapes":     c.Colors.Shapes,
	}
	for name, rgb := range colors {
		if len(rgb) != 3 {
			return fmt.Errorf("colors.%s: expected [r, g, b], got %d values", name, len(rgb))
		}
	}
	return nil
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() {
	c.Derived.DT32 = float32(c.Screen.DT)
	c.Derived.GridW = c.Screen.Width / c.Field.Resolution
	c.Derived.GridH = c.Screen.Height / c.Field.Resolution
	c.Derived.WindowW = c.Screen.Width * c.Screen.Scale
	c.Derived.WindowH = c.Screen.Height * c.Screen.Scale

	c.Derived.Primary = radialTriple(c.Colors.Primary)
	c.Derived.Secondary = radialTriple(c.Colors.Secondary)
	c.Derived.Outline = radialTriple(c.Colors.Outline)
	c.Derived.Background = radialTriple(c.Colors.Background)
	c.Derived.Shapes = radialTriple(c.Colors.Shapes)
}

// radialTriple clamps each channel to 0..RadialLevels-1.
func radialTriple(rgb []int) [3]uint8 {
	var out [3]uint8
	for i := 0; i < 3 && i < len(rgb); i++ {
		v := rgb[i]
		if v < 0 {
			v = 0
		}
		if v > RadialLevels-1 {
			v = RadialLevels - 1
		}
		out[i] = uint8(v)
	}
	return out
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
