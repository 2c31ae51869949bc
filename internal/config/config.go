package config

import (
	"errors"
	"fmt"
	"image/color"
	"math"
	"os"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/san-kum/orbitsim/internal/physics"
	"github.com/san-kum/orbitsim/internal/sim"
	"gonum.org/v1/gonum/spatial/r2"
	"gopkg.in/yaml.v3"
)

const (
	DefaultG             = 0.5
	DefaultDt            = 0.02
	DefaultMassScale     = 1e-4
	DefaultDistanceScale = 250.0 // pixels per AU
	DefaultMinDistance   = 5.0
	DefaultTrailLength   = 100
	DefaultTrailInterval = 3
	DefaultZoom          = 0.5
)

var (
	ErrInvalidScenario = errors.New("config: invalid scenario")
	ErrUnknownPreset   = errors.New("config: unknown preset")
)

// Config is a scenario file: physics constants, camera and bodies.
type Config struct {
	Name    string        `yaml:"name"`
	Physics PhysicsConfig `yaml:"physics"`
	Camera  CameraConfig  `yaml:"camera"`
	Bodies  []BodyConfig  `yaml:"bodies"`
}

type PhysicsConfig struct {
	G             float64 `yaml:"g"`
	Dt            float64 `yaml:"dt"`
	MassScale     float64 `yaml:"mass_scale"`
	DistanceScale float64 `yaml:"distance_scale"`
	MinDistance   float64 `yaml:"min_distance"`
	TrailLength   int     `yaml:"trail_length"`
	TrailInterval int     `yaml:"trail_interval"`
	Workers       int     `yaml:"workers"`
}

type CameraConfig struct {
	X               float64 `yaml:"x"`
	Y               float64 `yaml:"y"`
	Zoom            float64 `yaml:"zoom"`
	MinZoom         float64 `yaml:"min_zoom"`
	MaxZoom         float64 `yaml:"max_zoom"`
	MinScreenRadius float64 `yaml:"min_screen_radius"`
}

// BodyConfig describes one body. Mass is relative and multiplied by
// mass_scale; the body starts at (distance_au * distance_scale, 0) plus
// Offset. A body with an explicit Velocity keeps it instead of receiving a
// circular orbit.
type BodyConfig struct {
	Name       string    `yaml:"name"`
	Mass       float64   `yaml:"mass"`
	DistanceAU float64   `yaml:"distance_au"`
	Offset     []float64 `yaml:"offset,omitempty"`
	Velocity   []float64 `yaml:"velocity,omitempty"`
	Color      string    `yaml:"color"`
	Radius     float64   `yaml:"radius"`
	Static     bool      `yaml:"static,omitempty"`
}

func DefaultPhysics() PhysicsConfig {
	return PhysicsConfig{
		G:             DefaultG,
		Dt:            DefaultDt,
		MassScale:     DefaultMassScale,
		DistanceScale: DefaultDistanceScale,
		MinDistance:   DefaultMinDistance,
		TrailLength:   DefaultTrailLength,
		TrailInterval: DefaultTrailInterval,
		Workers:       1,
	}
}

func DefaultCamera() CameraConfig {
	return CameraConfig{
		Zoom:            DefaultZoom,
		MinZoom:         1e-3,
		MaxZoom:         1e3,
		MinScreenRadius: 0.2,
	}
}

// DefaultConfig returns the solar preset.
func DefaultConfig() *Config {
	return solar()
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
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// SimConfig converts the scenario constants into a sim.Config.
func (c *Config) SimConfig() sim.Config {
	return sim.Config{
		G:               c.Physics.G,
		Dt:              c.Physics.Dt,
		MinDistance:     c.Physics.MinDistance,
		TrailLength:     c.Physics.TrailLength,
		TrailInterval:   c.Physics.TrailInterval,
		Zoom:            c.Camera.Zoom,
		MinZoom:         c.Camera.MinZoom,
		MaxZoom:         c.Camera.MaxZoom,
		MinScreenRadius: c.Camera.MinScreenRadius,
		Workers:         c.Physics.Workers,
	}
}

func (c *Config) Validate() error {
	if err := c.SimConfig().Validate(); err != nil {
		return err
	}
	if !(c.Physics.MassScale > 0) {
		return fmt.Errorf("%w: mass_scale must be positive, got %v", ErrInvalidScenario, c.Physics.MassScale)
	}
	if !(c.Physics.DistanceScale > 0) {
		return fmt.Errorf("%w: distance_scale must be positive, got %v", ErrInvalidScenario, c.Physics.DistanceScale)
	}
	if len(c.Bodies) == 0 {
		return fmt.Errorf("%w: no bodies", ErrInvalidScenario)
	}

	seen := make(map[string]bool, len(c.Bodies))
	for i, b := range c.Bodies {
		if b.Name == "" {
			return fmt.Errorf("%w: body %d has no name", ErrInvalidScenario, i)
		}
		if seen[b.Name] {
			return fmt.Errorf("%w: duplicate body %q", ErrInvalidScenario, b.Name)
		}
		seen[b.Name] = true
		if !(b.Mass > 0) || math.IsInf(b.Mass, 0) {
			return fmt.Errorf("%w: body %q: mass must be positive, got %v", ErrInvalidScenario, b.Name, b.Mass)
		}
		if len(b.Offset) != 0 && len(b.Offset) != 2 {
			return fmt.Errorf("%w: body %q: offset needs 2 values", ErrInvalidScenario, b.Name)
		}
		if len(b.Velocity) != 0 && len(b.Velocity) != 2 {
			return fmt.Errorf("%w: body %q: velocity needs 2 values", ErrInvalidScenario, b.Name)
		}
		if _, err := ParseColor(b.Color); err != nil {
			return fmt.Errorf("%w: body %q: %v", ErrInvalidScenario, b.Name, err)
		}
	}
	return nil
}

// NewBodies creates the physics bodies in file order.
func (c *Config) NewBodies() ([]*physics.Body, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	trail := c.SimConfig().Trail()
	bodies := make([]*physics.Body, 0, len(c.Bodies))
	for _, bc := range c.Bodies {
		pos := r2.Vec{X: bc.DistanceAU * c.Physics.DistanceScale}
		if len(bc.Offset) == 2 {
			pos = r2.Add(pos, r2.Vec{X: bc.Offset[0], Y: bc.Offset[1]})
		}

		b := physics.NewBody(bc.Name, bc.Mass*c.Physics.MassScale, pos, trail)
		b.Static = bc.Static
		b.Radius = bc.Radius
		b.Color, _ = ParseColor(bc.Color)
		if len(bc.Velocity) == 2 {
			b.Vel = r2.Vec{X: bc.Velocity[0], Y: bc.Velocity[1]}
			b.Pinned = true
		}
		bodies = append(bodies, b)
	}
	return bodies, nil
}

// Build returns a system with every body added and orbits initialized.
func (c *Config) Build(opts ...sim.Option) (*sim.System, error) {
	bodies, err := c.NewBodies()
	if err != nil {
		return nil, err
	}

	s, err := sim.New(c.SimConfig(), opts...)
	if err != nil {
		return nil, err
	}
	s.Camera().Offset = r2.Vec{X: c.Camera.X, Y: c.Camera.Y}

	for _, b := range bodies {
		if err := s.AddBody(b); err != nil {
			return nil, fmt.Errorf("scenario %s: %w", c.Name, err)
		}
	}
	if err := s.InitializeOrbits(); err != nil {
		return nil, err
	}
	return s, nil
}

var namedColors = map[string]string{
	"":       "#ffffff",
	"white":  "#ffffff",
	"yellow": "#ffff00",
	"gray":   "#808080",
	"grey":   "#808080",
	"orange": "#ffa500",
	"blue":   "#0000ff",
	"red":    "#ff0000",
	"brown":  "#a52a2a",
	"green":  "#008000",
	"cyan":   "#00ffff",
	"purple": "#800080",
	"tan":    "#d2b48c",
}

// ParseColor accepts a named color or #rrggbb.
func ParseColor(s string) (color.Color, error) {
	if hex, ok := namedColors[strings.ToLower(strings.TrimSpace(s))]; ok {
		s = hex
	}
	c, err := colorful.Hex(s)
	if err != nil {
		return nil, fmt.Errorf("color %q: %w", s, err)
	}
	return c, nil
}
