package physics

// Integrator advances bodies by one fixed step using the accelerations
// already stored on them.
type Integrator interface {
	Advance(bodies []*Body, dt float64)
}

// SemiImplicitEuler updates velocity from the current acceleration, then
// position from the new velocity.
type SemiImplicitEuler struct{}

func NewSemiImplicitEuler() *SemiImplicitEuler {
	return &SemiImplicitEuler{}
}

func (SemiImplicitEuler) Advance(bodies []*Body, dt float64) {
	for _, b := range bodies {
		b.Integrate(dt)
	}
}
