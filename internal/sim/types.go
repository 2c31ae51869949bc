package sim

import (
	"fmt"
	"image/color"
	"math"

	"github.com/san-kum/orbitsim/internal/camera"
	"github.com/san-kum/orbitsim/internal/physics"
	"gonum.org/v1/gonum/spatial/r2"
)

// Drawer is the rendering collaborator. Coordinates are screen coordinates
// from camera.Camera: origin at the viewport centre, y up.
type Drawer interface {
	DrawCircle(x, y, radius float64, c color.Color)
	DrawPolyline(points []r2.Vec, c color.Color)
}

// Metric observes the body collection after every step.
type Metric interface {
	Name() string
	Observe(bodies []*physics.Body, t float64)
	Value() float64
	Reset()
}

type Observer interface {
	OnStep(tick int, t float64, bodies []*physics.Body)
}

// Config holds the physics and camera constants of one simulation.
type Config struct {
	G             float64
	Dt            float64
	MinDistance   float64
	TrailLength   int
	TrailInterval int

	Zoom            float64
	MinZoom         float64
	MaxZoom         float64
	MinScreenRadius float64

	// Workers > 1 selects the parallel force accumulator.
	Workers int
}

func DefaultConfig() Config {
	return Config{
		G:               0.5,
		Dt:              0.02,
		MinDistance:     5,
		TrailLength:     physics.DefaultTrail.Capacity,
		TrailInterval:   physics.DefaultTrail.Interval,
		Zoom:            camera.DefaultZoom,
		MinZoom:         camera.DefaultMinZoom,
		MaxZoom:         camera.DefaultMaxZoom,
		MinScreenRadius: camera.DefaultMinScreenRadius,
		Workers:         1,
	}
}

// Trail returns the per-body trail settings for this configuration.
func (c Config) Trail() physics.TrailConfig {
	return physics.TrailConfig{Capacity: c.TrailLength, Interval: c.TrailInterval}
}

func (c Config) Gravity() physics.Gravity {
	return physics.Gravity{G: c.G, MinDistance: c.MinDistance}
}

func (c Config) Validate() error {
	switch {
	case !positive(c.G):
		return fmt.Errorf("%w: g must be positive, got %v", ErrInvalidConfig, c.G)
	case !positive(c.Dt):
		return fmt.Errorf("%w: dt must be positive, got %v", ErrInvalidConfig, c.Dt)
	case !nonNegative(c.MinDistance):
		return fmt.Errorf("%w: min distance must be finite and not negative, got %v", ErrInvalidConfig, c.MinDistance)
	case c.TrailLength < 0:
		return fmt.Errorf("%w: trail length must not be negative, got %d", ErrInvalidConfig, c.TrailLength)
	case c.TrailInterval < 1:
		return fmt.Errorf("%w: trail interval must be at least 1, got %d", ErrInvalidConfig, c.TrailInterval)
	case !positive(c.Zoom):
		return fmt.Errorf("%w: zoom must be positive, got %v", ErrInvalidConfig, c.Zoom)
	case !nonNegative(c.MinZoom) || !nonNegative(c.MaxZoom):
		return fmt.Errorf("%w: zoom bounds must be finite and not negative", ErrInvalidConfig)
	case c.MinZoom > 0 && c.MaxZoom > 0 && c.MinZoom > c.MaxZoom:
		return fmt.Errorf("%w: min zoom %v exceeds max zoom %v", ErrInvalidConfig, c.MinZoom, c.MaxZoom)
	case !nonNegative(c.MinScreenRadius):
		return fmt.Errorf("%w: min screen radius must be finite and not negative, got %v", ErrInvalidConfig, c.MinScreenRadius)
	}
	return nil
}

// positive reports whether v is finite and > 0.
func positive(v float64) bool {
	return v > 0 && !math.IsInf(v, 0)
}

func nonNegative(v float64) bool {
	return v >= 0 && !math.IsInf(v, 0)
}

type Result struct {
	Ticks   int
	Time    float64
	Metrics map[string]float64
}
