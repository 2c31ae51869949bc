package camera

import (
	"testing"

	. "github.com/onsi/gomega"
	"gonum.org/v1/gonum/spatial/r2"
)

func TestWorldToScreen(t *testing.T) {
	c := New()
	c.Offset = r2.Vec{X: 10, Y: -5}
	c.Scale = 2

	got := c.WorldToScreen(r2.Vec{X: 15, Y: 5})
	if got.X != 10 || got.Y != 20 {
		t.Errorf("expected (10,20), got %v", got)
	}

	back := c.ScreenToWorld(got)
	if back.X != 15 || back.Y != 5 {
		t.Errorf("expected round trip to (15,5), got %v", back)
	}
}

func TestPanScalesWithZoom(t *testing.T) {
	c := New()
	c.Scale = 0.5
	c.Pan(50, -50)
	if c.Offset.X != 100 || c.Offset.Y != -100 {
		t.Errorf("expected offset (100,-100), got %v", c.Offset)
	}
}

func TestPanZoomInverse(t *testing.T) {
	g := NewWithT(t)

	c := New()
	c.Scale = 0.8
	world := r2.Vec{X: 250, Y: -97.5}
	before := c.WorldToScreen(world)

	const dx, dy, f = 50.0, -30.0, 1.1
	c.Pan(dx, dy)
	c.Zoom(f)
	c.Pan(-dx*f, -dy*f)
	c.Zoom(1 / f)

	after := c.WorldToScreen(world)
	g.Expect(after.X).To(BeNumerically("~", before.X, 1e-9))
	g.Expect(after.Y).To(BeNumerically("~", before.Y, 1e-9))
}

func TestZoomClamp(t *testing.T) {
	tests := []struct {
		name    string
		min     float64
		max     float64
		factors []float64
		want    float64
	}{
		{"in", 0, 0, []float64{1.1}, 1.1},
		{"ceiling", 0.5, 2, []float64{10}, 2},
		{"floor", 0.5, 2, []float64{0.01}, 0.5},
		{"unbounded", 0, 0, []float64{1e6}, 1e6},
		{"ignore zero", 0, 0, []float64{0}, 1},
		{"ignore negative", 0, 0, []float64{-2}, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := &Camera{Scale: 1, MinZoom: tt.min, MaxZoom: tt.max}
			for _, f := range tt.factors {
				c.Zoom(f)
			}
			if c.Scale != tt.want {
				t.Errorf("expected zoom %v, got %v", tt.want, c.Scale)
			}
		})
	}
}

func TestScreenRadiusFloor(t *testing.T) {
	c := New()
	c.Scale = 0.5
	if r := c.ScreenRadius(11); r != 5.5 {
		t.Errorf("expected 5.5, got %v", r)
	}
	c.Scale = 0.001
	if r := c.ScreenRadius(11); r != DefaultMinScreenRadius {
		t.Errorf("expected floor %v, got %v", DefaultMinScreenRadius, r)
	}
}
