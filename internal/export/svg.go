// Package export writes simulation frames and stored trajectories as SVG.
package export

import (
	"fmt"
	"html"
	"image/color"
	"io"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"gonum.org/v1/gonum/spatial/r2"
)

const background = "#0a0a0a"

// SVGDrawer implements sim.Drawer by collecting SVG elements. Screen
// coordinates are centred with y up, so they are flipped into the viewBox.
type SVGDrawer struct {
	Width, Height int
	elems         []string
}

func NewSVGDrawer(width, height int) *SVGDrawer {
	return &SVGDrawer{Width: width, Height: height}
}

func (d *SVGDrawer) toView(x, y float64) (float64, float64) {
	return float64(d.Width)/2 + x, float64(d.Height)/2 - y
}

func (d *SVGDrawer) DrawCircle(x, y, radius float64, c color.Color) {
	cx, cy := d.toView(x, y)
	d.elems = append(d.elems, fmt.Sprintf(`<circle cx="%.2f" cy="%.2f" r="%.2f" fill="%s"/>`, cx, cy, radius, hex(c)))
}

func (d *SVGDrawer) DrawPolyline(points []r2.Vec, c color.Color) {
	if len(points) < 2 {
		return
	}
	var sb strings.Builder
	for i, p := range points {
		x, y := d.toView(p.X, p.Y)
		if i == 0 {
			sb.WriteString(fmt.Sprintf("M%.2f,%.2f", x, y))
		} else {
			sb.WriteString(fmt.Sprintf(" L%.2f,%.2f", x, y))
		}
	}
	d.elems = append(d.elems, fmt.Sprintf(`<path fill="none" stroke="%s" stroke-opacity="0.6" stroke-width="1" d="%s"/>`, hex(c), sb.String()))
}

// Len returns the number of elements drawn so far.
func (d *SVGDrawer) Len() int { return len(d.elems) }

func (d *SVGDrawer) Reset() { d.elems = d.elems[:0] }

// WriteTo writes the complete SVG document.
func (d *SVGDrawer) WriteTo(w io.Writer) (int64, error) {
	var sb strings.Builder
	sb.WriteString(header(d.Width, d.Height))
	for _, e := range d.elems {
		sb.WriteString(e + "\n")
	}
	sb.WriteString("</svg>\n")
	n, err := io.WriteString(w, sb.String())
	return int64(n), err
}

func (d *SVGDrawer) String() string {
	var sb strings.Builder
	d.WriteTo(&sb)
	return sb.String()
}

// Series is one body's stored path in world coordinates.
type Series struct {
	Name   string
	Xs, Ys []float64
	Color  color.Color
}

// TrajectoriesToSVG fits every series into a width x height image, keeping
// the aspect ratio, and draws one path per body with its final position marked.
func TrajectoriesToSVG(series []Series, width, height int) string {
	first := true
	var minX, maxX, minY, maxY float64
	for _, s := range series {
		for i := range s.Xs {
			x, y := s.Xs[i], s.Ys[i]
			if first {
				minX, maxX, minY, maxY = x, x, y, y
				first = false
				continue
			}
			minX, maxX = min(minX, x), max(maxX, x)
			minY, maxY = min(minY, y), max(maxY, y)
		}
	}
	if first {
		return ""
	}

	// Add padding
	rangeX := maxX - minX
	rangeY := maxY - minY
	if rangeX == 0 {
		rangeX = 1
	}
	if rangeY == 0 {
		rangeY = 1
	}
	span := max(rangeX, rangeY) * 1.2
	cx, cy := (minX+maxX)/2, (minY+maxY)/2
	scale := min(float64(width), float64(height)) / span

	project := func(x, y float64) (float64, float64) {
		return float64(width)/2 + (x-cx)*scale, float64(height)/2 - (y-cy)*scale
	}

	var sb strings.Builder
	sb.WriteString(header(width, height))
	for _, s := range series {
		if len(s.Xs) == 0 {
			continue
		}
		stroke := hex(s.Color)
		sb.WriteString(fmt.Sprintf(`<path fill="none" stroke="%s" stroke-width="1.5" d="M`, stroke))
		for i := range s.Xs {
			x, y := project(s.Xs[i], s.Ys[i])
			if i == 0 {
				sb.WriteString(fmt.Sprintf("%.1f,%.1f", x, y))
			} else {
				sb.WriteString(fmt.Sprintf(" L%.1f,%.1f", x, y))
			}
		}
		sb.WriteString("\"/>\n")

		x, y := project(s.Xs[len(s.Xs)-1], s.Ys[len(s.Ys)-1])
		sb.WriteString(fmt.Sprintf(`<circle cx="%.1f" cy="%.1f" r="3" fill="%s"><title>%s</title></circle>`+"\n", x, y, stroke, html.EscapeString(s.Name)))
	}
	sb.WriteString("</svg>\n")
	return sb.String()
}

func header(width, height int) string {
	return fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="%s"/>
`, width, height, width, height, background)
}

func hex(c color.Color) string {
	if c == nil {
		return "#ffffff"
	}
	cf, ok := colorful.MakeColor(c)
	if !ok {
		return "#ffffff"
	}
	return cf.Hex()
}
