package physics

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// Gravity holds the parameters of the pairwise force law.
type Gravity struct {
	G           float64
	MinDistance float64
}

// PairForce returns the force on b due to o. Coincident bodies contribute
// nothing. Otherwise the separation is floored at MinDistance before it is
// used as a denominator. PairForce(b, o) is exactly -PairForce(o, b).
func (g Gravity) PairForce(b, o *Body) r2.Vec {
	d := r2.Sub(o.Pos, b.Pos)
	dist := r2.Norm(d)
	if dist == 0 {
		return r2.Vec{}
	}
	r := math.Max(dist, g.MinDistance)
	f := g.G * (b.Mass * o.Mass) / (r * r)
	return r2.Vec{X: f * (d.X / r), Y: f * (d.Y / r)}
}

// NetForce sums the pairwise forces acting on bodies[i], in slice order.
func (g Gravity) NetForce(bodies []*Body, i int) r2.Vec {
	var net r2.Vec
	b := bodies[i]
	for j, o := range bodies {
		if j == i {
			continue
		}
		net = r2.Add(net, g.PairForce(b, o))
	}
	return net
}

// Accumulator writes the acceleration of every non-static body from the
// positions and masses at the start of the tick.
type Accumulator interface {
	Accumulate(bodies []*Body)
}

// Pairwise is the serial O(n²) accumulator.
type Pairwise struct {
	Gravity
}

func NewPairwise(g Gravity) *Pairwise {
	return &Pairwise{Gravity: g}
}

func (p *Pairwise) Accumulate(bodies []*Body) {
	for i, b := range bodies {
		if b.Static {
			continue
		}
		b.ApplyNetForce(p.NetForce(bodies, i))
	}
}

// Parallel splits the bodies across workers. Each worker writes only the
// Acc field of its own range; Pos and Mass are read-only during the phase.
type Parallel struct {
	Gravity
	Workers  int
	MinChunk int
}

func NewParallel(g Gravity, workers int) *Parallel {
	return &Parallel{Gravity: g, Workers: workers, MinChunk: 4}
}

func (p *Parallel) Accumulate(bodies []*Body) {
	ParallelFor(len(bodies), p.Workers, p.MinChunk, func(start, end int) {
		for i := start; i < end; i++ {
			if bodies[i].Static {
				continue
			}
			bodies[i].ApplyNetForce(p.NetForce(bodies, i))
		}
	})
}

// TotalEnergy returns kinetic plus potential energy, using the same
// distance floor as the force law. Coincident pairs are skipped.
func (g Gravity) TotalEnergy(bodies []*Body) float64 {
	ke, pe := 0.0, 0.0
	for i, b := range bodies {
		ke += b.KineticEnergy()
		for j := i + 1; j < len(bodies); j++ {
			o := bodies[j]
			dist := r2.Norm(r2.Sub(o.Pos, b.Pos))
			if dist == 0 {
				continue
			}
			pe -= g.G * b.Mass * o.Mass / math.Max(dist, g.MinDistance)
		}
	}
	return ke + pe
}

// AngularMomentum sums the z component about the origin.
func AngularMomentum(bodies []*Body) float64 {
	l := 0.0
	for _, b := range bodies {
		l += b.AngularMomentum()
	}
	return l
}
