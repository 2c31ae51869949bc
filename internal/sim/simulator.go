package sim

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/san-kum/orbitsim/internal/camera"
	"github.com/san-kum/orbitsim/internal/physics"
	"github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/spatial/r2"
)

// System owns the body collection and the camera and runs the
// force, integrate, render tick.
type System struct {
	cfg        Config
	bodies     []*physics.Body
	forces     physics.Accumulator
	integrator physics.Integrator
	cam        *camera.Camera
	metrics    []Metric
	observers  []Observer
	log        logrus.FieldLogger

	orbitsReady bool
	tick        int
	t           float64
}

type Option func(*System)

func WithLogger(l logrus.FieldLogger) Option {
	return func(s *System) { s.log = l }
}

func WithAccumulator(a physics.Accumulator) Option {
	return func(s *System) { s.forces = a }
}

func WithIntegrator(i physics.Integrator) Option {
	return func(s *System) { s.integrator = i }
}

// New validates cfg and returns an empty system.
func New(cfg Config, opts ...Option) (*System, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	cam := camera.New()
	cam.Scale = cfg.Zoom
	cam.MinZoom = cfg.MinZoom
	cam.MaxZoom = cfg.MaxZoom
	cam.MinScreenRadius = cfg.MinScreenRadius

	s := &System{
		cfg:        cfg,
		bodies:     make([]*physics.Body, 0),
		integrator: physics.NewSemiImplicitEuler(),
		cam:        cam,
		metrics:    make([]Metric, 0),
		observers:  make([]Observer, 0),
		log:        logrus.StandardLogger(),
	}
	if cfg.Workers > 1 {
		s.forces = physics.NewParallel(cfg.Gravity(), cfg.Workers)
	} else {
		s.forces = physics.NewPairwise(cfg.Gravity())
	}

	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

func (s *System) AddMetric(m Metric)     { s.metrics = append(s.metrics, m) }
func (s *System) AddObserver(o Observer) { s.observers = append(s.observers, o) }

// AddBody appends b to the collection. Bodies can only be added before the
// first Step.
func (s *System) AddBody(b *physics.Body) error {
	if b == nil {
		return ErrNilBody
	}
	if s.tick > 0 {
		return &BodyError{Body: b.Name, Wrapped: ErrRunning}
	}
	if !(b.Mass > 0) || math.IsInf(b.Mass, 0) {
		return &BodyError{Body: b.Name, Wrapped: fmt.Errorf("%w, got %v", ErrInvalidMass, b.Mass)}
	}
	if b.Static {
		b.Vel = r2.Vec{}
		b.Acc = r2.Vec{}
	}

	s.bodies = append(s.bodies, b)
	s.log.WithFields(logrus.Fields{
		"body":   b.Name,
		"mass":   b.Mass,
		"static": b.Static,
	}).Debug("body added")
	return nil
}

// InitializeOrbits assigns circular orbital velocities around the most
// massive body. It must run once, after all bodies are added.
func (s *System) InitializeOrbits() error {
	if s.orbitsReady {
		return ErrOrbitsInitialized
	}
	if s.tick > 0 {
		return ErrRunning
	}
	s.orbitsReady = true

	central := physics.InitializeOrbits(s.bodies, s.cfg.G)
	if central == nil {
		return nil
	}
	for _, b := range s.bodies {
		if b == central {
			continue
		}
		s.log.WithFields(logrus.Fields{
			"body":    b.Name,
			"central": central.Name,
			"vx":      b.Vel.X,
			"vy":      b.Vel.Y,
		}).Debug("orbit initialized")
	}
	return nil
}

// Step advances the simulation by exactly one fixed tick. Every body's
// acceleration is written before any body moves.
func (s *System) Step() {
	s.forces.Accumulate(s.bodies)
	s.integrator.Advance(s.bodies, s.cfg.Dt)

	s.tick++
	s.t = float64(s.tick) * s.cfg.Dt

	for _, m := range s.metrics {
		m.Observe(s.bodies, s.t)
	}
	for _, o := range s.observers {
		o.OnStep(s.tick, s.t, s.bodies)
	}
}

// Render draws every body's trail and disc through d.
func (s *System) Render(d Drawer) {
	for _, b := range s.bodies {
		Draw(d, b, s.cam)
	}
}

// Draw emits the draw calls for one body: its trail as a polyline, then a
// circle at its projected position.
func Draw(d Drawer, b *physics.Body, cam *camera.Camera) {
	if !b.Static && b.TrailLen() > 1 {
		trail := b.Trail()
		for i, p := range trail {
			trail[i] = cam.WorldToScreen(p)
		}
		d.DrawPolyline(trail, b.Color)
	}
	p := cam.WorldToScreen(b.Pos)
	d.DrawCircle(p.X, p.Y, cam.ScreenRadius(b.Radius), b.Color)
}

func (s *System) Pan(dx, dy float64) { s.cam.Pan(dx, dy) }
func (s *System) Zoom(factor float64) { s.cam.Zoom(factor) }

// Recenter moves the camera onto the most massive body.
func (s *System) Recenter() {
	if central := physics.Dominant(s.bodies); central != nil {
		s.cam.Center(central.Pos)
	}
}

// Run performs one Step and Render per frame until ctx is cancelled or
// frames is closed. Cancellation is observed only between ticks.
func (s *System) Run(ctx context.Context, frames <-chan time.Time, d Drawer) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case _, ok := <-frames:
			if !ok {
				return nil
			}
		}

		s.Step()
		if d != nil {
			s.Render(d)
		}
	}
}

// RunSteps advances n ticks without rendering and returns the metric values.
func (s *System) RunSteps(ctx context.Context, n int) (*Result, error) {
	for _, m := range s.metrics {
		m.Reset()
	}
	for i := 0; i < n; i++ {
		select {
		case <-ctx.Done():
			return s.Result(), ctx.Err()
		default:
		}
		s.Step()
	}
	return s.Result(), nil
}

func (s *System) Result() *Result {
	r := &Result{
		Ticks:   s.tick,
		Time:    s.t,
		Metrics: make(map[string]float64, len(s.metrics)),
	}
	for _, m := range s.metrics {
		r.Metrics[m.Name()] = m.Value()
	}
	return r
}

func (s *System) Bodies() []*physics.Body { return s.bodies }
func (s *System) Camera() *camera.Camera  { return s.cam }
func (s *System) Config() Config          { return s.cfg }
func (s *System) Tick() int               { return s.tick }
func (s *System) Time() float64           { return s.t }

// Body looks a body up by name.
func (s *System) Body(name string) (*physics.Body, bool) {
	for _, b := range s.bodies {
		if b.Name == name {
			return b, true
		}
	}
	return nil, false
}

// Energy returns the current total energy under the configured force law.
func (s *System) Energy() float64 {
	return s.cfg.Gravity().TotalEnergy(s.bodies)
}
