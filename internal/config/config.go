// Package config holds the application settings, loaded from a TOML file
// and overridden by command-line flags.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/pelletier/go-toml/v2"

	"cubesketch/internal/cube"
	"cubesketch/internal/math3d"
	"cubesketch/internal/sketch"
)

// ErrInvalid wraps every validation failure.
var ErrInvalid = errors.New("invalid config")

// Config is the main config struct. Angles are degrees.
type Config struct {
	Window  Window   `toml:"window"`
	Camera  Camera   `toml:"camera"`
	Sketch  Sketch   `toml:"sketch"`
	Presets []Preset `toml:"presets"`
}

// Window configures the desktop window.
type Window struct {
	Width  int    `toml:"width"`
	Height int    `toml:"height"`
	Title  string `toml:"title"`
	// show frames per second in the title bar
	ShowFPS bool `toml:"show_fps"`
}

// Camera is the initial state of the cube layer.
type Camera struct {
	Yaw        float64 `toml:"yaw"`
	Pitch      float64 `toml:"pitch"`
	Roll       float64 `toml:"roll"`
	Scale      float64 `toml:"scale"`
	Fov        float64 `toml:"fov"`
	Projection string  `toml:"projection"`
	// C in d = C / tan(fov/2)
	Distance float64 `toml:"distance"`
	Near     float64 `toml:"near"`
	Far      float64 `toml:"far"`
	// start with right-button drag rotation enabled
	Drag bool `toml:"drag"`
}

// Sketch configures the stroke layer.
type Sketch struct {
	Color      string  `toml:"color"`
	Width      float64 `toml:"width"`
	Straighten bool    `toml:"straighten"`
	Tolerance  float64 `toml:"tolerance"`
	// strokes with fewer points are discarded on release; 0 keeps all
	MinPoints int `toml:"min_points"`
}

// Preset is one cell of the preset angle grid.
type Preset struct {
	Name  string  `toml:"name"`
	Yaw   float64 `toml:"yaw"`
	Pitch float64 `toml:"pitch"`
	Roll  float64 `toml:"roll"`
}

// Default returns the built-in settings.
func Default() *Config {
	return &Config{
		Window: Window{Width: 800, Height: 600, Title: "Cube Sketch", ShowFPS: false},
		Camera: Camera{
			Scale:      1,
			Fov:        90,
			Projection: string(math3d.ProjectionDistance),
			Distance:   math3d.DefaultDistanceConstant,
			Near:       1,
			Far:        10000,
		},
		Sketch: Sketch{
			Color:     sketch.DefaultColor,
			Width:     sketch.DefaultWidth,
			Tolerance: sketch.DefaultStraightTolerance,
		},
		Presets: DefaultPresets(),
	}
}

// DefaultPresets is a 3x3 grid of yaw in {-45, 0, 45} by pitch in
// {30, 0, -30}, row by row.
func DefaultPresets() []Preset {
	var ps []Preset
	for _, pitch := range []float64{30, 0, -30} {
		for _, yaw := range []float64{-45, 0, 45} {
			ps = append(ps, Preset{
				Name:  fmt.Sprintf("yaw %g pitch %g", yaw, pitch),
				Yaw:   yaw,
				Pitch: pitch,
			})
		}
	}
	return ps
}

// Load reads path over the defaults. A missing file is not an error. The
// result is not validated so that flag overrides can be applied first.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	b, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		slog.Debug("config file not found, using defaults", "path", path)
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	cfg.Presets = nil
	if err := toml.Unmarshal(b, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if len(cfg.Presets) == 0 {
		cfg.Presets = DefaultPresets()
	}
	return cfg, nil
}

// Save writes cfg to path as TOML.
func Save(cfg *Config, path string) error {
	b, err := toml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	return os.WriteFile(path, b, 0o644)
}

// Validate checks the preconditions the math kernel relies on.
func (c *Config) Validate() error {
	var errs []error
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		errs = append(errs, fmt.Errorf("window size %dx%d must be positive", c.Window.Width, c.Window.Height))
	}
	if c.Camera.Fov <= 0 || c.Camera.Fov >= 180 {
		errs = append(errs, fmt.Errorf("fov %g must be in (0, 180)", c.Camera.Fov))
	}
	if c.Camera.Scale <= cube.MinScale {
		errs = append(errs, fmt.Errorf("scale %g must be above %g", c.Camera.Scale, cube.MinScale))
	}
	if c.Camera.Near == c.Camera.Far {
		errs = append(errs, fmt.Errorf("near and far are both %g", c.Camera.Near))
	}
	if c.Camera.Distance <= 0 {
		errs = append(errs, fmt.Errorf("distance %g must be positive", c.Camera.Distance))
	}
	switch math3d.ProjectionKind(c.Camera.Projection) {
	case math3d.ProjectionDistance, math3d.ProjectionMatrix:
	default:
		errs = append(errs, fmt.Errorf("%w: %q", math3d.ErrUnknownProjection, c.Camera.Projection))
	}
	if c.Sketch.Width <= 0 {
		errs = append(errs, fmt.Errorf("sketch width %g must be positive", c.Sketch.Width))
	}
	if c.Sketch.Tolerance < 0 {
		errs = append(errs, fmt.Errorf("sketch tolerance %g must not be negative", c.Sketch.Tolerance))
	}
	if c.Sketch.MinPoints < 0 {
		errs = append(errs, fmt.Errorf("sketch min_points %d must not be negative", c.Sketch.MinPoints))
	}
	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %w", ErrInvalid, errors.Join(errs...))
}

// CubeCamera converts the camera section to radians.
func (c *Config) CubeCamera() cube.Camera {
	return cube.Camera{
		Yaw:   mgl64.DegToRad(c.Camera.Yaw),
		Pitch: mgl64.DegToRad(c.Camera.Pitch),
		Roll:  mgl64.DegToRad(c.Camera.Roll),
		Scale: c.Camera.Scale,
		Fov:   mgl64.DegToRad(c.Camera.Fov),
	}
}

// Lens returns the projector lens; FovY is filled in by the cube layer.
func (c *Config) Lens() math3d.Lens {
	return math3d.Lens{Distance: c.Camera.Distance, Near: c.Camera.Near, Far: c.Camera.Far}
}

// CubePresets converts the preset grid to radians.
func (c *Config) CubePresets() []cube.Preset {
	out := make([]cube.Preset, len(c.Presets))
	for i, p := range c.Presets {
		out[i] = cube.Preset{
			Name:  p.Name,
			Yaw:   mgl64.DegToRad(p.Yaw),
			Pitch: mgl64.DegToRad(p.Pitch),
			Roll:  mgl64.DegToRad(p.Roll),
		}
	}
	return out
}

// PostProcessor returns the stroke hook selected by the sketch section, or
// nil when none is enabled. Short strokes are dropped before straightening.
func (c *Config) PostProcessor() sketch.PostProcessor {
	var chain []sketch.PostProcessor
	if c.Sketch.MinPoints > 0 {
		chain = append(chain, sketch.DropDots(c.Sketch.MinPoints))
	}
	if c.Sketch.Straighten {
		chain = append(chain, sketch.Straighten(c.Sketch.Tolerance))
	}
	switch len(chain) {
	case 0:
		return nil
	case 1:
		return chain[0]
	default:
		return sketch.Chain(chain...)
	}
}
