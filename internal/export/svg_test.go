package export

import (
	"encoding/xml"
	"image/color"
	"strings"
	"testing"

	"gonum.org/v1/gonum/spatial/r2"
)

func TestSVGDrawerElements(t *testing.T) {
	d := NewSVGDrawer(200, 100)
	d.DrawPolyline([]r2.Vec{{X: 0, Y: 0}, {X: 10, Y: 10}}, color.RGBA{G: 255, A: 255})
	d.DrawPolyline([]r2.Vec{{X: 5, Y: 5}}, color.White)
	d.DrawCircle(10, 10, 4, color.RGBA{R: 255, A: 255})
	d.DrawCircle(0, 0, 2, nil)

	out := d.String()
	if got := strings.Count(out, "<circle"); got != 2 {
		t.Errorf("expected 2 circles, got %d", got)
	}
	if got := strings.Count(out, "<path"); got != 1 {
		t.Errorf("expected 1 path, got %d", got)
	}
	if !strings.Contains(out, `<circle cx="110.00" cy="40.00" r="4.00" fill="#ff0000"/>`) {
		t.Errorf("expected flipped circle at (110,40), got:\n%s", out)
	}
	if !strings.Contains(out, `d="M100.00,50.00 L110.00,40.00"`) {
		t.Errorf("expected path from the centre, got:\n%s", out)
	}
	if !strings.HasSuffix(out, "</svg>\n") {
		t.Error("expected closed svg document")
	}

	d.Reset()
	if d.Len() != 0 {
		t.Errorf("expected empty drawer after reset, got %d", d.Len())
	}
}

func TestTrajectoriesToSVG(t *testing.T) {
	series := []Series{
		{Name: "Earth", Xs: []float64{250, 0, -250}, Ys: []float64{0, 250, 0}, Color: color.RGBA{B: 255, A: 255}},
		{Name: "Sun", Xs: []float64{0}, Ys: []float64{0}},
	}
	out := TrajectoriesToSVG(series, 400, 400)

	if strings.Count(out, "<path") != 2 {
		t.Errorf("expected 2 paths, got:\n%s", out)
	}
	if !strings.Contains(out, "<title>Earth</title>") || !strings.Contains(out, `stroke="#0000ff"`) {
		t.Errorf("expected labelled blue Earth path, got:\n%s", out)
	}
	if TrajectoriesToSVG(nil, 10, 10) != "" {
		t.Error("expected empty output without data")
	}
}

func TestTrajectoriesToSVGEscapesNames(t *testing.T) {
	series := []Series{{Name: `<Halley & "co">`, Xs: []float64{0, 1}, Ys: []float64{0, 1}}}
	out := TrajectoriesToSVG(series, 100, 100)

	if strings.Contains(out, "<Halley") {
		t.Errorf("expected escaped name, got:\n%s", out)
	}
	if !strings.Contains(out, "<title>&lt;Halley &amp; &#34;co&#34;&gt;</title>") {
		t.Errorf("expected escaped title, got:\n%s", out)
	}
	if err := xml.Unmarshal([]byte(out), new(struct{})); err != nil {
		t.Errorf("expected well-formed svg, got %v", err)
	}
}
