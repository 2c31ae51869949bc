package physics

import (
	"math"
	"testing"

	. "github.com/onsi/gomega"
	"gonum.org/v1/gonum/spatial/r2"
)

func TestBodyIntegrateSemiImplicit(t *testing.T) {
	b := NewBody("rock", 1, r2.Vec{X: 0, Y: 0}, DefaultTrail)
	b.Vel = r2.Vec{X: 1, Y: 0}
	b.Acc = r2.Vec{X: 0, Y: 2}

	b.Integrate(0.5)

	// velocity first, then position with the new velocity
	if b.Vel.X != 1 || b.Vel.Y != 1 {
		t.Errorf("expected vel (1,1), got %v", b.Vel)
	}
	if b.Pos.X != 0.5 || b.Pos.Y != 0.5 {
		t.Errorf("expected pos (0.5,0.5), got %v", b.Pos)
	}
}

func TestStaticBodyIgnoresForcesAndSteps(t *testing.T) {
	b := NewBody("sun", 10, r2.Vec{X: 3, Y: 4}, DefaultTrail)
	b.Static = true

	b.ApplyNetForce(r2.Vec{X: 100, Y: -100})
	for i := 0; i < 50; i++ {
		b.Integrate(0.02)
	}

	if b.Acc != (r2.Vec{}) {
		t.Errorf("expected zero acceleration, got %v", b.Acc)
	}
	if b.Pos != (r2.Vec{X: 3, Y: 4}) || b.Vel != (r2.Vec{}) {
		t.Errorf("static body moved: pos=%v vel=%v", b.Pos, b.Vel)
	}
	if b.TrailLen() != 0 {
		t.Errorf("expected empty trail, got %d", b.TrailLen())
	}
}

func TestApplyNetForce(t *testing.T) {
	b := NewBody("p", 4, r2.Vec{}, DefaultTrail)
	b.ApplyNetForce(r2.Vec{X: 8, Y: -2})
	if b.Acc.X != 2 || b.Acc.Y != -0.5 {
		t.Errorf("expected acc (2,-0.5), got %v", b.Acc)
	}
}

func TestOrbitalVelocityFor(t *testing.T) {
	g := NewWithT(t)

	central := NewBody("sun", 1000, r2.Vec{}, DefaultTrail)
	tests := []struct {
		name string
		pos  r2.Vec
		want r2.Vec
	}{
		{"on +x axis moves +y", r2.Vec{X: 100}, r2.Vec{Y: math.Sqrt(10)}},
		{"on +y axis moves -x", r2.Vec{Y: 100}, r2.Vec{X: -math.Sqrt(10)}},
		{"on -x axis moves -y", r2.Vec{X: -100}, r2.Vec{Y: -math.Sqrt(10)}},
	}

	for _, tt := range tests {
		b := NewBody(tt.name, 1, tt.pos, DefaultTrail)
		b.OrbitalVelocityFor(central, 1)
		g.Expect(b.Vel.X).To(BeNumerically("~", tt.want.X, 1e-12), tt.name)
		g.Expect(b.Vel.Y).To(BeNumerically("~", tt.want.Y, 1e-12), tt.name)
	}
}

func TestOrbitalVelocityForDegenerate(t *testing.T) {
	central := NewBody("sun", 1000, r2.Vec{X: 5, Y: 5}, DefaultTrail)

	coincident := NewBody("moon", 1, r2.Vec{X: 5, Y: 5}, DefaultTrail)
	coincident.OrbitalVelocityFor(central, 1)
	if coincident.Vel != (r2.Vec{}) {
		t.Errorf("expected zero velocity at r=0, got %v", coincident.Vel)
	}

	static := NewBody("anchor", 1, r2.Vec{X: 50}, DefaultTrail)
	static.Static = true
	static.OrbitalVelocityFor(central, 1)
	if static.Vel != (r2.Vec{}) {
		t.Errorf("expected static body untouched, got %v", static.Vel)
	}
}
