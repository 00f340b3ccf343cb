package tui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/san-kum/orbitlab/internal/sim"
	"github.com/san-kum/orbitlab/internal/viz"
)

const (
	canvasWidth  = 80
	canvasHeight = 22
	frameRate    = 60
	trailLen     = 400
)

type TickMsg time.Time

func tick() tea.Cmd {
	return tea.Tick(time.Second/frameRate, func(t time.Time) tea.Msg { return TickMsg(t) })
}

// Model drives a live simulation from frame ticks: each tick feeds the
// real frame delta (scaled by the speed multiplier) into the
// simulator's accumulator, so pausing or a stuttering terminal never
// changes the physics, only when it happens.
type Model struct {
	sim      *sim.Simulator
	canvas   *viz.Canvas
	trail    []struct{ x, y float64 }
	lastTick time.Time
	speed    float64
	running  bool
	e0       float64
	scale    float64
}

func NewModel(s *sim.Simulator, worldScale float64) Model {
	return Model{
		sim:     s,
		canvas:  viz.NewCanvas(canvasWidth, canvasHeight),
		trail:   make([]struct{ x, y float64 }, 0, trailLen),
		speed:   1.0,
		running: true,
		e0:      s.TotalEnergy(),
		scale:   worldScale,
	}
}

func (m Model) Init() tea.Cmd {
	return tick()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.running = !m.running
			m.lastTick = time.Time{}
		case "+", "=":
			m.speed *= 2
		case "-":
			m.speed /= 2
		}
		return m, nil

	case TickMsg:
		now := time.Time(msg)
		if m.running && !m.lastTick.IsZero() {
			m.sim.Advance(now.Sub(m.lastTick).Seconds() * m.speed)
			for _, b := range m.sim.Snapshot() {
				if len(m.trail) >= trailLen {
					m.trail = m.trail[1:]
				}
				m.trail = append(m.trail, struct{ x, y float64 }{b.Position.X, b.Position.Y})
			}
		}
		m.lastTick = now
		return m, tick()
	}
	return m, nil
}

func (m Model) View() string {
	bodies := m.sim.Snapshot()

	m.canvas.Clear()
	for _, p := range m.trail {
		m.plot(p.x, p.y)
	}
	for i := range bodies {
		m.plot(bodies[i].Position.X, bodies[i].Position.Y)
	}

	var sb strings.Builder
	sb.WriteString(viz.Title.Render("orbitlab live"))
	sb.WriteString("\n")
	sb.WriteString(viz.Panel.Render(strings.TrimRight(m.canvas.String(), "\n")))
	sb.WriteString("\n")

	drift := m.sim.TotalEnergy() - m.e0
	status := "running"
	if !m.running {
		status = "paused"
	}
	sb.WriteString(fmt.Sprintf("%s %s  %s %.1fx  %s %d  %s %.3g\n",
		viz.Label.Render("state"), viz.Value.Render(status),
		viz.Label.Render("speed"), m.speed,
		viz.Label.Render("steps"), m.sim.Steps(),
		viz.Label.Render("dE"), drift))
	sb.WriteString(viz.KeyHint.Render("space pause · +/- speed · q quit"))
	sb.WriteString("\n")
	return sb.String()
}

// plot maps world XY to canvas sub-pixels centered on the origin.
func (m Model) plot(x, y float64) {
	px := int((x/m.scale + 0.5) * float64(canvasWidth*2))
	py := int((0.5 - y/m.scale) * float64(canvasHeight*4))
	m.canvas.Set(px, py)
}

// Run blocks until the user quits the live view.
func Run(s *sim.Simulator, worldScale float64) error {
	p := tea.NewProgram(NewModel(s, worldScale))
	_, err := p.Run()
	return err
}
