package viz

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/orbitsim/internal/camera"
	"github.com/san-kum/orbitsim/internal/sim"
	"gonum.org/v1/gonum/spatial/r2"
)

const (
	width           = 80
	height          = 24
	statsWidth      = 40
	historyCapacity = 600
)

type TickMsg time.Time

// Model drives a sim.System from the Bubble Tea frame loop: one Step and one
// Render per tick.
type Model struct {
	sys           *sim.System
	fps           int
	width, height int
	canvas        *Canvas
	drawer        *CanvasDrawer
	running       bool
	quitting      bool
	energyHistory []float64
	showHelp      bool
}

func NewModel(sys *sim.System, fps int) Model {
	if fps <= 0 {
		fps = 60
	}
	canvas := NewCanvas(width, height)
	return Model{
		sys:           sys,
		fps:           fps,
		width:         width,
		height:        height,
		canvas:        canvas,
		drawer:        NewCanvasDrawer(canvas),
		running:       true,
		energyHistory: make([]float64, 0, historyCapacity),
	}
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(time.Second/time.Duration(m.fps), func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Init() tea.Cmd {
	return m.tick()
}

// Update handles input events and steps the simulation.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			m.quitting = true
			return m, tea.Quit
		case " ":
			m.running = !m.running
		case "up":
			m.sys.Pan(0, camera.PanStep)
		case "down":
			m.sys.Pan(0, -camera.PanStep)
		case "left":
			m.sys.Pan(-camera.PanStep, 0)
		case "right":
			m.sys.Pan(camera.PanStep, 0)
		case "+", "=", "w":
			m.sys.Zoom(camera.ZoomInStep)
		case "-", "_", "s":
			m.sys.Zoom(camera.ZoomOutStep)
		case "c":
			m.sys.Recenter()
		case "?":
			m.showHelp = !m.showHelp
		}
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
	case TickMsg:
		if m.running {
			m.step()
		}
		return m, m.tick()
	}
	return m, nil
}

func (m *Model) resize(w, h int) {
	cols := w - statsWidth - 6
	rows := h - 4
	if cols < 10 || rows < 5 {
		return
	}
	m.width, m.height = cols, rows
	m.canvas = NewCanvas(cols, rows)
	m.drawer = NewCanvasDrawer(m.canvas)
}

func (m *Model) step() {
	m.sys.Step()
	m.energyHistory = append(m.energyHistory, m.sys.Energy())
	if len(m.energyHistory) > historyCapacity {
		m.energyHistory = m.energyHistory[1:]
	}
}

func (m *Model) draw() {
	m.canvas.Clear()
	m.sys.Render(m.drawer)
}

// Running reports whether the simulation is advancing on each tick.
func (m Model) Running() bool { return m.running }

// View renders the TUI interface.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	m.draw()
	canvasView := canvasStyle.Render(m.canvas.Render())

	var s strings.Builder
	s.WriteString(headerStyle.Render("ORBITSIM") + "\n")
	if m.running {
		s.WriteString(statusRunning.Render("RUNNING") + "\n\n")
	} else {
		s.WriteString(statusPaused.Render("PAUSED") + "\n\n")
	}

	if len(m.energyHistory) > 1 {
		chart := asciigraph.Plot(m.energyHistory, asciigraph.Height(4), asciigraph.Width(statsWidth-12), asciigraph.Caption("Energy"))
		s.WriteString(graphStyle.Render(chart) + "\n\n")
	}

	cam := m.sys.Camera()
	s.WriteString(labelStyle.Render("Time") + valueStyle.Render(fmt.Sprintf("%.2f", m.sys.Time())) + "\n")
	s.WriteString(labelStyle.Render("Ticks") + valueStyle.Render(fmt.Sprintf("%d", m.sys.Tick())) + "\n")
	s.WriteString(labelStyle.Render("Zoom") + valueStyle.Render(fmt.Sprintf("%.3f", cam.Scale)) + "\n")
	s.WriteString(labelStyle.Render("Camera") + valueStyle.Render(fmt.Sprintf("(%.0f, %.0f)", cam.Offset.X, cam.Offset.Y)) + "\n")
	if len(m.energyHistory) > 0 {
		s.WriteString(labelStyle.Render("Energy") + valueStyle.Render(fmt.Sprintf("%.4g", m.energyHistory[len(m.energyHistory)-1])) + "\n")
	}

	s.WriteString("\nBODIES\n")
	for _, b := range m.sys.Bodies() {
		line := fmt.Sprintf("%-8s |v|=%.3f", b.Name, r2.Norm(b.Vel))
		if b.Static {
			line = fmt.Sprintf("%-8s static", b.Name)
		}
		s.WriteString("  " + lipgloss.NewStyle().Foreground(lipgloss.Color(hexOf(b.Color))).Render(line) + "\n")
	}

	if m.showHelp {
		s.WriteString(helpStyle.Render("\nArrows  pan\n+/w     zoom in\n-/s     zoom out\nC       recentre\nSpace   pause\nQ/Esc   quit"))
	} else {
		s.WriteString(helpStyle.Render("\nSP:Pause Q:Quit ?:Help"))
	}

	return lipgloss.JoinHorizontal(lipgloss.Top, canvasView, statsStyle.Render(s.String()))
}

// RunLive runs the model until the user quits.
func RunLive(sys *sim.System, fps int) error {
	_, err := tea.NewProgram(NewModel(sys, fps), tea.WithAltScreen()).Run()
	return err
}
