package gui

import (
	"image/color"

	rl "github.com/gen2brain/raylib-go/raylib"
	"gonum.org/v1/gonum/spatial/r2"
)

// WindowDrawer implements sim.Drawer on the current raylib frame. Screen
// coordinates are centred with y up; the window's are top-left with y down.
type WindowDrawer struct {
	Width, Height int32
}

func (d *WindowDrawer) toWindow(x, y float64) rl.Vector2 {
	return rl.NewVector2(float32(d.Width)/2+float32(x), float32(d.Height)/2-float32(y))
}

func (d *WindowDrawer) DrawCircle(x, y, radius float64, c color.Color) {
	rl.DrawCircleV(d.toWindow(x, y), float32(radius), toRGBA(c))
}

func (d *WindowDrawer) DrawPolyline(points []r2.Vec, c color.Color) {
	if len(points) < 2 {
		return
	}
	strip := make([]rl.Vector2, len(points))
	for i, p := range points {
		strip[i] = d.toWindow(p.X, p.Y)
	}
	col := toRGBA(c)
	col.A = 140
	rl.DrawLineStrip(strip, col)
}

func toRGBA(c color.Color) color.RGBA {
	if c == nil {
		return ColSelect
	}
	return color.RGBAModel.Convert(c).(color.RGBA)
}
