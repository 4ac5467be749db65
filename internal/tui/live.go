package tui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/san-kum/orbitsim/internal/dynamo"
	"github.com/san-kum/orbitsim/internal/integrators"
	"github.com/san-kum/orbitsim/internal/metrics"
	"github.com/san-kum/orbitsim/internal/render"
	"github.com/san-kum/orbitsim/internal/sim"
)

const (
	frameInterval = 16 * time.Millisecond
	zoomStep      = 1.25
	historyLen    = 60
)

type Options struct {
	Title string
	// Scale is metres per canvas cell.
	Scale float64
}

type model struct {
	sim   *sim.Simulator
	scene *render.Scene
	drift *metrics.EnergyDrift

	title   string
	paused  bool
	err     error
	history []float64

	lastFrame time.Time
	fps       float64

	width  int
	height int
}

func newModel(s *sim.Simulator, opts Options) model {
	drift := metrics.NewEnergyDriftFrom(s.Snapshot())
	s.AddMetric(drift)

	m := model{
		sim:     s,
		drift:   drift,
		title:   opts.Title,
		err:     s.Err(),
		history: make([]float64, 0, historyLen),
		width:   80,
		height:  30,
	}
	cw, ch := m.canvasSize()
	m.scene = render.NewScene(cw, ch, opts.Scale)
	m.scene.Observe(s.Snapshot())
	return m
}

func (m model) Init() tea.Cmd { return tick() }

type tickMsg time.Time

func tick() tea.Cmd {
	return tea.Tick(frameInterval, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.scene.Resize(m.canvasSize())
		return m, nil
	case tickMsg:
		if m.err != nil {
			return m, nil
		}
		if !m.paused {
			now := time.Time(msg)
			if !m.lastFrame.IsZero() {
				if dt := now.Sub(m.lastFrame).Seconds(); dt > 0 {
					m.fps = 1.0 / dt
				}
			}
			m.lastFrame = now
			m.step()
		}
		if m.err != nil {
			return m, nil
		}
		return m, tick()
	}
	return m, nil
}

// step advances one frame. A failed tick halts the view for good.
func (m *model) step() {
	if err := m.sim.Tick(); err != nil {
		m.err = err
		return
	}
	m.scene.Observe(m.sim.Snapshot())

	m.history = append(m.history, m.drift.Drift())
	if len(m.history) > historyLen {
		m.history = m.history[1:]
	}
}

func (m model) handleKey(msg tea.KeyMsg) (model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c", "esc":
		return m, tea.Quit
	case " ":
		m.paused = !m.paused
		if !m.paused {
			m.lastFrame = time.Time{}
		}
	case "1", "2", "3":
		methods := integrators.Methods()
		if i := int(msg.String()[0] - '1'); i < len(methods) {
			m.sim.SetMethod(methods[i])
		}
	case "+", "=":
		m.sim.SetFactor(m.sim.Factor() * 2)
	case "-", "_":
		m.sim.SetFactor(m.sim.Factor() / 2)
	case "]":
		m.scene.View.Zoom(1 / zoomStep)
	case "[":
		m.scene.View.Zoom(zoomStep)
	case "c":
		m.scene.ClearTrails()
	}
	return m, nil
}

func (m model) canvasSize() (int, int) {
	cw := m.width - 6
	ch := m.height - 10
	if cw < 20 {
		cw = 20
	}
	if ch < 8 {
		ch = 8
	}
	return cw, ch
}

func (m model) View() string {
	var b strings.Builder

	status := render.StatusRunning.Render("● running")
	switch {
	case m.err != nil:
		status = render.StatusHalted.Render("■ halted")
	case m.paused:
		status = render.StatusPaused.Render("○ paused")
	}

	calls, dt := m.sim.Plan()
	b.WriteString(fmt.Sprintf("\n   %s  %s  %s\n",
		render.Title.Render(m.title), status,
		render.Subtle.Render(fmt.Sprintf("%.0ffps", m.fps))))
	b.WriteString(fmt.Sprintf("   %s %s  %s %s  %s %s  %s %s\n\n",
		render.MetricLabel.Render("integrator"), render.MetricValue.Render(m.sim.Method().String()),
		render.MetricLabel.Render("factor"), render.MetricValue.Render(fmt.Sprintf("%gx", m.sim.Factor())),
		render.MetricLabel.Render("step"), render.MetricValue.Render(fmt.Sprintf("%d×%.0fs", calls, dt)),
		render.MetricLabel.Render("day"), render.MetricValue.Render(fmt.Sprintf("%.1f", m.sim.Time()/sim.Day))))

	bodies := dynamo.Bodies(m.sim.Snapshot())
	canvas := m.scene.Draw(bodies)
	for _, line := range strings.Split(strings.TrimSuffix(canvas.Render(), "\n"), "\n") {
		b.WriteString("   " + line + "\n")
	}

	b.WriteString("\n   " + render.Legend(bodies.Names()) + "\n")
	b.WriteString(fmt.Sprintf("   %s %s %s\n",
		render.MetricLabel.Render("energy drift"),
		render.Sparkline(m.history, 30),
		render.MetricValue.Render(fmt.Sprintf("%.2e", m.drift.Drift()))))

	if m.err != nil {
		b.WriteString("\n   " + render.StatusHalted.Render(m.err.Error()) + "\n")
	}

	b.WriteString("\n" + render.KeyHint.Render("   1/2/3 integrator  +/- speed  [/] zoom  c clear  space pause  q quit") + "\n")
	return b.String()
}

// Run drives s in an alternate-screen terminal UI until the user quits.
func Run(s *sim.Simulator, opts Options) error {
	p := tea.NewProgram(newModel(s, opts), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
