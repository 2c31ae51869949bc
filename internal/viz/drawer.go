package viz

import (
	"image/color"

	"github.com/lucasb-eyer/go-colorful"
	"gonum.org/v1/gonum/spatial/r2"
)

// ViewportWidth is the screen-space width the canvas is fitted to.
const ViewportWidth = 1000.0

// CanvasDrawer draws camera screen coordinates onto a Canvas. Scale is the
// number of sub-pixels per screen unit.
type CanvasDrawer struct {
	Canvas *Canvas
	Scale  float64
}

// NewCanvasDrawer fits ViewportWidth screen units across the canvas.
func NewCanvasDrawer(c *Canvas) *CanvasDrawer {
	w, _ := c.PixelSize()
	return &CanvasDrawer{Canvas: c, Scale: float64(w) / ViewportWidth}
}

// project maps a centred, y-up screen point to canvas sub-pixels.
func (d *CanvasDrawer) project(x, y float64) (float64, float64) {
	w, h := d.Canvas.PixelSize()
	return float64(w)/2 + x*d.Scale, float64(h)/2 - y*d.Scale
}

func (d *CanvasDrawer) DrawCircle(x, y, radius float64, c color.Color) {
	px, py := d.project(x, y)
	d.Canvas.FillCircle(px, py, radius*d.Scale, hexOf(c))
}

func (d *CanvasDrawer) DrawPolyline(points []r2.Vec, c color.Color) {
	if len(points) == 0 {
		return
	}
	hex := hexOf(c)
	x0, y0 := d.project(points[0].X, points[0].Y)
	for _, p := range points[1:] {
		x1, y1 := d.project(p.X, p.Y)
		d.Canvas.DrawSegment(x0, y0, x1, y1, hex)
		x0, y0 = x1, y1
	}
}

func hexOf(c color.Color) string {
	if c == nil {
		return ""
	}
	cf, ok := colorful.MakeColor(c)
	if !ok {
		return ""
	}
	return cf.Hex()
}
