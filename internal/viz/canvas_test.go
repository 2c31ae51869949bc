package viz

import (
	"image/color"
	"math"
	"strings"
	"testing"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/spatial/r2"
)

func TestCanvasSetAndClear(t *testing.T) {
	c := NewCanvas(4, 2)
	c.Set(0, 0)
	c.Set(7, 7)
	c.Set(-1, 3)
	c.Set(8, 0)

	if !c.IsSet(0, 0) || !c.IsSet(7, 7) {
		t.Error("expected pixels to be set")
	}
	if c.Grid[0][0] != 0x2801 {
		t.Errorf("expected braille dot 1, got %U", c.Grid[0][0])
	}
	if c.Grid[1][3] != 0x2880 {
		t.Errorf("expected braille dot 8, got %U", c.Grid[1][3])
	}

	c.Clear()
	if c.IsSet(0, 0) || c.IsSet(7, 7) {
		t.Error("expected canvas to be empty after clear")
	}
}

func TestCanvasDrawLine(t *testing.T) {
	c := NewCanvas(10, 5)
	c.DrawLine(0, 0, 9, 0, "")
	for x := 0; x <= 9; x++ {
		if !c.IsSet(x, 0) {
			t.Errorf("expected (%d,0) set", x)
		}
	}
	c.DrawLine(5, 19, 5, 10, "")
	for y := 10; y <= 19; y++ {
		if !c.IsSet(5, y) {
			t.Errorf("expected (5,%d) set", y)
		}
	}
}

func TestCanvasRenderColors(t *testing.T) {
	c := NewCanvas(3, 1)
	c.SetColor(0, 0, "#ff0000")
	c.Set(4, 0)

	out := c.Render()
	if strings.Count(out, "\n") != 1 {
		t.Errorf("expected one row, got %q", out)
	}
	if c.Colors[0][0] != "#ff0000" || c.Colors[0][2] != "" {
		t.Errorf("unexpected colors %v", c.Colors[0])
	}
	if len([]rune(c.String())) != 4 {
		t.Errorf("expected 3 cells and a newline, got %q", c.String())
	}
}

func TestCanvasDrawerProjection(t *testing.T) {
	c := NewCanvas(20, 10)
	d := &CanvasDrawer{Canvas: c, Scale: 1}

	d.DrawCircle(3, 4, 0, color.White)
	if !c.IsSet(23, 16) {
		t.Error("expected centre pixel at (23,16): origin is the canvas centre with y up")
	}

	d.DrawCircle(-10, -10, 2, color.White)
	for _, p := range [][2]int{{10, 30}, {12, 30}, {8, 30}, {10, 28}, {10, 32}} {
		if !c.IsSet(p[0], p[1]) {
			t.Errorf("expected disc pixel %v", p)
		}
	}
	if c.IsSet(12, 32) {
		t.Error("expected corner outside the disc to stay clear")
	}
}

func TestCanvasDrawerPolyline(t *testing.T) {
	c := NewCanvas(20, 10)
	d := &CanvasDrawer{Canvas: c, Scale: 1}

	d.DrawPolyline([]r2.Vec{{X: 0, Y: 0}, {X: 5, Y: 0}, {X: 5, Y: 5}}, color.RGBA{R: 255, A: 255})
	for x := 20; x <= 25; x++ {
		if !c.IsSet(x, 20) {
			t.Errorf("expected (%d,20) set", x)
		}
	}
	for y := 15; y <= 20; y++ {
		if !c.IsSet(25, y) {
			t.Errorf("expected (25,%d) set", y)
		}
	}
	if c.Colors[5][10] != "#ff0000" {
		t.Errorf("expected red cell, got %q", c.Colors[5][10])
	}
}

func TestNewCanvasDrawerFitsViewport(t *testing.T) {
	d := NewCanvasDrawer(NewCanvas(50, 10))
	if d.Scale != 0.1 {
		t.Errorf("expected scale 0.1, got %v", d.Scale)
	}
}

func TestDrawSegmentClipsToCanvas(t *testing.T) {
	c := NewCanvas(10, 5)
	w, h := c.PixelSize()

	c.DrawSegment(-1e12, 7, 1e12, 7, "")
	for x := 0; x < w; x++ {
		if !c.IsSet(x, 7) {
			t.Errorf("expected (%d,7) set", x)
		}
	}

	c.Clear()
	c.DrawSegment(-1e12, -5, 1e12, -5, "")
	c.DrawSegment(float64(w+10), 0, float64(w+10), float64(h), "")
	c.DrawSegment(math.NaN(), 0, 3, 3, "")
	c.DrawSegment(0, 0, math.Inf(1), 3, "")
	if c.String() != NewCanvas(10, 5).String() {
		t.Errorf("expected off-canvas segments to draw nothing, got\n%s", c.String())
	}
}

func TestClipSegment(t *testing.T) {
	tests := []struct {
		name           string
		x0, y0, x1, y1 float64
		ok             bool
		want           [4]float64
	}{
		{"inside", 1, 1, 5, 5, true, [4]float64{1, 1, 5, 5}},
		{"crosses left edge", -10, 5, 5, 5, true, [4]float64{0, 5, 5, 5}},
		{"diagonal through", -10, -10, 20, 20, true, [4]float64{0, 0, 10, 10}},
		{"above", -5, -1, 15, -1, false, [4]float64{}},
		{"misses corner", -5, 3, 3, -5, false, [4]float64{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			x0, y0, x1, y1, ok := clipSegment(tt.x0, tt.y0, tt.x1, tt.y1, 0, 0, 10, 10)
			if ok != tt.ok {
				t.Fatalf("expected ok=%v, got %v", tt.ok, ok)
			}
			if got := []float64{x0, y0, x1, y1}; ok && !floats.EqualApprox(got, tt.want[:], 1e-9) {
				t.Errorf("expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestFillCircleClipsToCanvas(t *testing.T) {
	c := NewCanvas(4, 2)
	w, h := c.PixelSize()

	c.FillCircle(1e300, 1e300, 5, "")
	c.FillCircle(-50, 4, 10, "")
	c.FillCircle(math.NaN(), 4, 10, "")
	if c.String() != NewCanvas(4, 2).String() {
		t.Errorf("expected off-canvas discs to draw nothing, got\n%s", c.String())
	}

	c.FillCircle(-1e9, 4, 2e9, "#00ff00")
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if !c.IsSet(x, y) {
				t.Fatalf("expected covering disc to light (%d,%d)", x, y)
			}
		}
	}
	if c.Colors[1][3] != "#00ff00" {
		t.Errorf("expected tinted cell, got %q", c.Colors[1][3])
	}
}
