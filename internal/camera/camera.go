// Package camera maps world coordinates onto a pannable, zoomable 2D
// viewport. Screen coordinates are centred on the viewport origin with y up;
// renderers translate them to their own pixel grid.
package camera

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

const (
	DefaultZoom            = 0.8
	DefaultMinZoom         = 1e-3
	DefaultMaxZoom         = 1e3
	DefaultMinScreenRadius = 0.2

	// Keyboard controls shared by the front-ends.
	PanStep     = 50.0
	ZoomInStep  = 1.1
	ZoomOutStep = 0.9
)

// Camera holds the pan offset in world units and the zoom factor.
// A zero MinZoom or MaxZoom disables that bound.
type Camera struct {
	Offset          r2.Vec
	Scale           float64
	MinZoom         float64
	MaxZoom         float64
	MinScreenRadius float64
}

func New() *Camera {
	return &Camera{
		Scale:           DefaultZoom,
		MinZoom:         DefaultMinZoom,
		MaxZoom:         DefaultMaxZoom,
		MinScreenRadius: DefaultMinScreenRadius,
	}
}

func (c *Camera) WorldToScreen(w r2.Vec) r2.Vec {
	return r2.Scale(c.Scale, r2.Sub(w, c.Offset))
}

// ScreenToWorld inverts WorldToScreen.
func (c *Camera) ScreenToWorld(s r2.Vec) r2.Vec {
	return r2.Add(r2.Scale(1/c.Scale, s), c.Offset)
}

// Pan moves the view by a screen-space step, so the on-screen speed does
// not depend on the zoom level.
func (c *Camera) Pan(dx, dy float64) {
	c.Offset.X += dx / c.Scale
	c.Offset.Y += dy / c.Scale
}

// Zoom multiplies the scale by factor, clamped to the configured bounds.
// Non-positive and NaN factors are ignored.
func (c *Camera) Zoom(factor float64) {
	if !(factor > 0) || math.IsInf(factor, 0) {
		return
	}
	z := c.Scale * factor
	if c.MinZoom > 0 && z < c.MinZoom {
		z = c.MinZoom
	}
	if c.MaxZoom > 0 && z > c.MaxZoom {
		z = c.MaxZoom
	}
	c.Scale = z
}

// ScreenRadius scales a body's visual radius by the zoom, floored so bodies
// stay visible when zoomed far out.
func (c *Camera) ScreenRadius(base float64) float64 {
	return math.Max(base*c.Scale, c.MinScreenRadius)
}

// Center puts the world point p at the screen origin.
func (c *Camera) Center(p r2.Vec) {
	c.Offset = p
}
