package physics

import (
	"fmt"
	"math"
	"testing"

	. "github.com/onsi/gomega"
	"gonum.org/v1/gonum/spatial/r2"
)

func TestPairForceMagnitude(t *testing.T) {
	g := NewWithT(t)
	grav := Gravity{G: 0.5, MinDistance: 5}

	tests := []struct {
		m1, m2 float64
		a, b   r2.Vec
	}{
		{1000, 1, r2.Vec{}, r2.Vec{X: 100}},
		{3, 7, r2.Vec{X: -4, Y: 2}, r2.Vec{X: 30, Y: -25}},
		{0.5, 0.25, r2.Vec{X: 1e3, Y: 1e3}, r2.Vec{X: 1e3 + 6, Y: 1e3 + 8}},
	}

	for _, tt := range tests {
		b := NewBody("b", tt.m1, tt.a, DefaultTrail)
		o := NewBody("o", tt.m2, tt.b, DefaultTrail)
		r := r2.Norm(r2.Sub(tt.b, tt.a))
		want := grav.G * tt.m1 * tt.m2 / (r * r)
		got := r2.Norm(grav.PairForce(b, o))
		g.Expect(got).To(BeNumerically("~", want, want*1e-12))
	}
}

func TestPairForceNewtonsThirdLaw(t *testing.T) {
	grav := Gravity{G: 0.5, MinDistance: 5}
	positions := []r2.Vec{{X: 0, Y: 0}, {X: 17.3, Y: -2.1}, {X: -250, Y: 40}, {X: 1.5, Y: 2.5}}
	masses := []float64{33, 1e-4, 0.0317, 2}

	for i := range positions {
		for j := range positions {
			if i == j {
				continue
			}
			a := NewBody("a", masses[i], positions[i], DefaultTrail)
			b := NewBody("b", masses[j], positions[j], DefaultTrail)
			fab := grav.PairForce(a, b)
			fba := grav.PairForce(b, a)
			if fab.X != -fba.X || fab.Y != -fba.Y {
				t.Errorf("pair (%d,%d): %v is not the negation of %v", i, j, fab, fba)
			}
		}
	}
}

func TestPairForceDegenerate(t *testing.T) {
	grav := Gravity{G: 1, MinDistance: 5}

	a := NewBody("a", 10, r2.Vec{X: 1, Y: 1}, DefaultTrail)
	b := NewBody("b", 10, r2.Vec{X: 1, Y: 1}, DefaultTrail)
	if f := grav.PairForce(a, b); f != (r2.Vec{}) {
		t.Errorf("expected no force for coincident bodies, got %v", f)
	}

	// inside the floor the denominator is clamped, not skipped
	c := NewBody("c", 10, r2.Vec{X: 2, Y: 1}, DefaultTrail)
	f := grav.PairForce(a, c)
	want := 1 * 100 / 25.0 * (1.0 / 5.0)
	if math.Abs(f.X-want) > 1e-12 || f.Y != 0 {
		t.Errorf("expected floored force (%v,0), got %v", want, f)
	}
}

func TestPairwiseSkipsStatic(t *testing.T) {
	sun := NewBody("sun", 100, r2.Vec{}, DefaultTrail)
	sun.Static = true
	planet := NewBody("planet", 1, r2.Vec{X: 10}, DefaultTrail)

	NewPairwise(Gravity{G: 1, MinDistance: 1}).Accumulate([]*Body{sun, planet})

	if sun.Acc != (r2.Vec{}) {
		t.Errorf("expected static acceleration to stay zero, got %v", sun.Acc)
	}
	if planet.Acc.X >= 0 || planet.Acc.Y != 0 {
		t.Errorf("expected planet pulled toward -x, got %v", planet.Acc)
	}
}

func makeCluster(n int) []*Body {
	bodies := make([]*Body, n)
	for i := range bodies {
		angle := float64(i) * 2 * math.Pi / float64(n)
		r := 50 + 7*float64(i%5)
		bodies[i] = NewBody(fmt.Sprintf("b%d", i), 1+float64(i%3), r2.Vec{X: r * math.Cos(angle), Y: r * math.Sin(angle)}, DefaultTrail)
	}
	bodies[0].Static = true
	return bodies
}

func TestParallelMatchesPairwise(t *testing.T) {
	grav := Gravity{G: 0.5, MinDistance: 5}
	serial := makeCluster(37)
	parallel := makeCluster(37)

	NewPairwise(grav).Accumulate(serial)
	NewParallel(grav, 4).Accumulate(parallel)

	for i := range serial {
		if serial[i].Acc != parallel[i].Acc {
			t.Errorf("body %d: serial %v != parallel %v", i, serial[i].Acc, parallel[i].Acc)
		}
	}
}

func TestParallelFor(t *testing.T) {
	tests := []struct{ n, workers, minChunk int }{
		{0, 4, 4}, {3, 4, 4}, {10, 1, 1}, {100, 4, 4}, {17, 8, 2},
	}
	for _, tt := range tests {
		seen := make([]int, tt.n)
		ParallelFor(tt.n, tt.workers, tt.minChunk, func(start, end int) {
			for i := start; i < end; i++ {
				seen[i]++
			}
		})
		for i, c := range seen {
			if c != 1 {
				t.Errorf("n=%d workers=%d: index %d visited %d times", tt.n, tt.workers, i, c)
			}
		}
	}
}

func TestTotalEnergyTwoBody(t *testing.T) {
	grav := Gravity{G: 2, MinDistance: 1}
	a := NewBody("a", 3, r2.Vec{}, DefaultTrail)
	b := NewBody("b", 4, r2.Vec{X: 6, Y: 8}, DefaultTrail)
	b.Vel = r2.Vec{X: 1, Y: 1}

	want := 0.5*4*2 - 2*3*4/10.0
	if got := grav.TotalEnergy([]*Body{a, b}); math.Abs(got-want) > 1e-12 {
		t.Errorf("expected energy %v, got %v", want, got)
	}
}
