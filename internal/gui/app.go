package gui

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/san-kum/orbitsim/internal/camera"
	"github.com/san-kum/orbitsim/internal/sim"
)

// Theme Colors (Monochrome Hyper-Minimalist)
var (
	ColBg      = rl.NewColor(10, 10, 10, 255)
	ColAccent  = rl.NewColor(180, 180, 180, 255)
	ColSelect  = rl.NewColor(255, 255, 255, 255)
	ColText    = rl.NewColor(140, 140, 140, 255)
	ColTextDim = rl.NewColor(60, 60, 60, 255)
)

type Options struct {
	Width, Height int32
	Title         string
	FPS           int32
}

func DefaultOptions() Options {
	return Options{Width: 1000, Height: 800, Title: "orbitsim", FPS: 60}
}

type App struct {
	Sys        *sim.System
	Opts       Options
	Drawer     *WindowDrawer
	Running    bool
	Quit       bool
	Telemetry  []float64
	MaxHistory int
}

func NewApp(sys *sim.System, opts Options) *App {
	return &App{
		Sys:        sys,
		Opts:       opts,
		Drawer:     &WindowDrawer{Width: opts.Width, Height: opts.Height},
		Running:    true,
		Telemetry:  make([]float64, 0, 200),
		MaxHistory: 200,
	}
}

// Run opens a window and steps sys once per frame until the window is
// closed or Escape is pressed.
func Run(sys *sim.System, opts Options) error {
	if opts.Width <= 0 || opts.Height <= 0 {
		return fmt.Errorf("gui: invalid window size %dx%d", opts.Width, opts.Height)
	}
	rl.InitWindow(opts.Width, opts.Height, opts.Title)
	defer rl.CloseWindow()
	rl.SetTargetFPS(opts.FPS)
	rl.SetExitKey(0)

	NewApp(sys, opts).RunLoop()
	return nil
}

func (a *App) RunLoop() {
	for !a.Quit && !rl.WindowShouldClose() {
		a.Update()
		a.Draw()
	}
}

func keyHit(key int32) bool {
	return rl.IsKeyPressed(key) || rl.IsKeyPressedRepeat(key)
}

func (a *App) Update() {
	switch {
	case keyHit(rl.KeyEscape), keyHit(rl.KeyQ):
		a.Quit = true
		return
	case keyHit(rl.KeySpace):
		a.Running = !a.Running
	}

	if keyHit(rl.KeyUp) {
		a.Sys.Pan(0, camera.PanStep)
	}
	if keyHit(rl.KeyDown) {
		a.Sys.Pan(0, -camera.PanStep)
	}
	if keyHit(rl.KeyLeft) {
		a.Sys.Pan(-camera.PanStep, 0)
	}
	if keyHit(rl.KeyRight) {
		a.Sys.Pan(camera.PanStep, 0)
	}
	if keyHit(rl.KeyEqual) || keyHit(rl.KeyKpAdd) || keyHit(rl.KeyW) {
		a.Sys.Zoom(camera.ZoomInStep)
	}
	if keyHit(rl.KeyMinus) || keyHit(rl.KeyKpSubtract) || keyHit(rl.KeyS) {
		a.Sys.Zoom(camera.ZoomOutStep)
	}

	if keyHit(rl.KeyC) {
		a.Sys.Recenter()
	}

	if !a.Running {
		return
	}
	a.Sys.Step()
	a.Telemetry = append(a.Telemetry, a.Sys.Energy())
	if len(a.Telemetry) > a.MaxHistory {
		a.Telemetry = a.Telemetry[1:]
	}
}

func (a *App) Draw() {
	rl.BeginDrawing()
	rl.ClearBackground(ColBg)
	a.Sys.Render(a.Drawer)
	a.DrawHUD()
	rl.EndDrawing()
}

func (a *App) DrawHUD() {
	a.drawText("orbitsim", 30, 30, 24, ColSelect)

	status := "RUNNING"
	col := ColSelect
	if !a.Running {
		status = "PAUSED"
		col = ColTextDim
	}
	a.drawText(status, int(a.Opts.Width)-130, 30, 16, col)

	cam := a.Sys.Camera()
	a.drawText(fmt.Sprintf("t=%.2f  zoom=%.3f", a.Sys.Time(), cam.Scale), 30, 60, 14, ColText)

	a.DrawTelemetry()

	bottom := int(a.Opts.Height) - 30
	a.drawText("[ARROWS] PAN  [+/W -/S] ZOOM  [C] CENTRE  [SPACE] PAUSE  [ESC] QUIT", int(a.Opts.Width)-660, bottom, 14, ColTextDim)
	a.drawText(fmt.Sprintf("%d FPS", int32(rl.GetFPS())), 30, bottom, 14, ColTextDim)
}

func (a *App) drawText(text string, x, y int, size int, color rl.Color) {
	rl.DrawTextEx(rl.GetFontDefault(), text, rl.NewVector2(float32(x), float32(y)), float32(size), 1, color)
}

// DrawTelemetry plots total energy as a line strip.
func (a *App) DrawTelemetry() {
	if len(a.Telemetry) < 2 {
		return
	}

	rectX, rectY := 30, int(a.Opts.Height)-120
	width, height := 400, 60

	minVal, maxVal := a.Telemetry[0], a.Telemetry[0]
	for _, v := range a.Telemetry {
		if v < minVal {
			minVal = v
		}
		if v > maxVal {
			maxVal = v
		}
	}
	if maxVal == minVal {
		maxVal = minVal + 1
	}

	points := make([]rl.Vector2, len(a.Telemetry))
	for i, val := range a.Telemetry {
		px := float32(rectX) + (float32(i)/float32(len(a.Telemetry)))*float32(width)
		norm := (val - minVal) / (maxVal - minVal)
		py := float32(rectY+height) - float32(norm)*float32(height)
		points[i] = rl.NewVector2(px, py)
	}

	rl.DrawLineStrip(points, ColAccent)
	a.drawText(fmt.Sprintf("E: %.4e", a.Telemetry[len(a.Telemetry)-1]), rectX+width+10, rectY+height-10, 14, ColText)
}
