package metrics

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/san-kum/orbitsim/internal/physics"
)

// RadiusDeviation measures how circular the orbits stay. For every body
// other than the dominant one it tracks the distance to the dominant body
// and reports the worst coefficient of variation (stddev / mean). Memory is
// constant per body; samples are folded into running moments.
type RadiusDeviation struct {
	name  string
	radii map[string]*moments
}

// moments is Welford's running mean and sum of squared deviations.
type moments struct {
	n    int
	mean float64
	m2   float64
}

func (m *moments) add(x float64) {
	m.n++
	d := x - m.mean
	m.mean += d / float64(m.n)
	m.m2 += d * (x - m.mean)
}

// cv returns the sample standard deviation over the mean.
func (m *moments) cv() float64 {
	if m.n < 2 || m.mean == 0 {
		return 0
	}
	return math.Sqrt(m.m2/float64(m.n-1)) / m.mean
}

func NewRadiusDeviation() *RadiusDeviation {
	return &RadiusDeviation{
		name:  "radius_deviation",
		radii: make(map[string]*moments),
	}
}

func (r *RadiusDeviation) Name() string {
	return r.name
}

func (r *RadiusDeviation) Observe(bodies []*physics.Body, t float64) {
	central := physics.Dominant(bodies)
	if central == nil {
		return
	}
	for _, b := range bodies {
		if b == central || b.Static {
			continue
		}
		m, ok := r.radii[b.Name]
		if !ok {
			m = &moments{}
			r.radii[b.Name] = m
		}
		m.add(r2.Norm(r2.Sub(b.Pos, central.Pos)))
	}
}

func (r *RadiusDeviation) Value() float64 {
	worst := 0.0
	for name := range r.radii {
		if cv := r.Of(name); cv > worst {
			worst = cv
		}
	}
	return worst
}

// Of returns the coefficient of variation for one body, or 0 if it was
// observed fewer than twice.
func (r *RadiusDeviation) Of(name string) float64 {
	m, ok := r.radii[name]
	if !ok {
		return 0
	}
	return m.cv()
}

// Samples returns how many radii were folded in for one body.
func (r *RadiusDeviation) Samples(name string) int {
	if m, ok := r.radii[name]; ok {
		return m.n
	}
	return 0
}

func (r *RadiusDeviation) Reset() {
	r.radii = make(map[string]*moments)
}
