package physics

import (
	"image/color"
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// Body is a single point mass. Mass is in scaled simulation units and must
// be positive before the body takes part in force computation.
type Body struct {
	Name   string
	Mass   float64
	Static bool

	Pos r2.Vec
	Vel r2.Vec
	Acc r2.Vec

	// Radius and Color are rendering hints only.
	Radius float64
	Color  color.Color

	// Pinned marks a body whose initial velocity was set explicitly;
	// InitializeOrbits leaves it alone.
	Pinned bool

	trail       *Trail
	interval    int
	sampleCount int
}

// NewBody creates a body at rest at pos with the given trail settings.
func NewBody(name string, mass float64, pos r2.Vec, trail TrailConfig) *Body {
	interval := trail.Interval
	if interval < 1 {
		interval = 1
	}
	return &Body{
		Name:     name,
		Mass:     mass,
		Pos:      pos,
		Color:    color.White,
		trail:    NewTrail(trail.Capacity),
		interval: interval,
	}
}

// ApplyNetForce converts an accumulated force into acceleration.
func (b *Body) ApplyNetForce(f r2.Vec) {
	if b.Static {
		return
	}
	b.Acc = r2.Scale(1/b.Mass, f)
}

// Integrate advances the body by dt using semi-implicit Euler: velocity is
// updated from the current acceleration before position moves.
func (b *Body) Integrate(dt float64) {
	if b.Static {
		return
	}
	b.Vel = r2.Add(b.Vel, r2.Scale(dt, b.Acc))
	b.Pos = r2.Add(b.Pos, r2.Scale(dt, b.Vel))

	b.sampleCount++
	if b.sampleCount >= b.interval {
		if b.trail != nil {
			b.trail.Push(b.Pos)
		}
		b.sampleCount = 0
	}
}

// OrbitalVelocityFor sets a counter-clockwise tangential velocity giving a
// circular orbit around central: v = sqrt(g*M/r). r is the raw separation,
// not the force floor.
func (b *Body) OrbitalVelocityFor(central *Body, g float64) {
	if b.Static || central == nil {
		return
	}
	d := r2.Sub(b.Pos, central.Pos)
	r := r2.Norm(d)
	if r == 0 {
		return
	}
	v := math.Sqrt(g * central.Mass / r)
	b.Vel = r2.Vec{X: -d.Y / r * v, Y: d.X / r * v}
}

// Trail returns the recorded positions, oldest first.
func (b *Body) Trail() []r2.Vec {
	if b.trail == nil {
		return nil
	}
	return b.trail.Points()
}

func (b *Body) TrailLen() int {
	if b.trail == nil {
		return 0
	}
	return b.trail.Len()
}

func (b *Body) KineticEnergy() float64 {
	return 0.5 * b.Mass * r2.Norm2(b.Vel)
}

func (b *Body) Momentum() r2.Vec {
	return r2.Scale(b.Mass, b.Vel)
}

// AngularMomentum about the origin (z component).
func (b *Body) AngularMomentum() float64 {
	return b.Mass * r2.Cross(b.Pos, b.Vel)
}
