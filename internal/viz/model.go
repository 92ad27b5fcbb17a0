package viz

import (
	"fmt"
	"io"
	"log"
	"strings"
	"time"

	"github.com/charmbracelet/harmonica"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/swarmform/internal/metrics"
	"github.com/san-kum/swarmform/internal/particle"
)

const (
	width           = 80
	height          = 24
	statsWidth      = 44
	historyCapacity = 600

	formedZoom    = 2.5
	scatteredZoom = 1.0
	orbitStep     = 0.1
)

type TickMsg time.Time

type Options struct {
	Title  string
	FPS    int
	Theme  string
	Logger *log.Logger
}

// Model drives an engine at a fixed frame rate and draws it into the terminal.
type Model struct {
	engine  *particle.Engine
	scene   *Scene
	frame   []particle.Transform
	energy  *metrics.KineticEnergy
	settled *metrics.Settled

	title  string
	fps    int
	theme  Theme
	logger *log.Logger

	zoom     harmonica.Spring
	zoomVel  float64
	userZoom float64

	running       bool
	showHelp      bool
	energyHistory []float64
	err           error
}

func NewModel(engine *particle.Engine, opts Options) Model {
	if opts.FPS <= 0 {
		opts.FPS = 60
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard, "", 0)
	}
	if opts.Title == "" {
		opts.Title = "swarmform"
	}

	m := Model{
		engine:        engine,
		scene:         NewScene(width-statsWidth, height),
		energy:        metrics.NewKineticEnergy(),
		settled:       metrics.NewSettled(metrics.DefaultSettleRadius),
		title:         opts.Title,
		fps:           opts.FPS,
		theme:         GetTheme(opts.Theme),
		logger:        opts.Logger,
		zoom:          harmonica.NewSpring(harmonica.FPS(opts.FPS), 6.0, 1.0),
		userZoom:      1,
		running:       true,
		energyHistory: make([]float64, 0, historyCapacity),
	}
	m.scene.Camera.Zoom = m.zoomTarget()
	m.render()
	return m
}

func (m Model) Init() tea.Cmd {
	return m.tick()
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(time.Second/time.Duration(m.fps), func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.scene.Canvas.Resize(max(msg.Width-statsWidth-6, 20), max(msg.Height-2, 8))
		m.render()
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ", "enter":
			m.toggle()
		case "p":
			m.running = !m.running
		case ".":
			if !m.running {
				m.step()
				m.render()
			}
		case "left", "h":
			m.scene.Camera.Orbit(-orbitStep, 0)
		case "right", "l":
			m.scene.Camera.Orbit(orbitStep, 0)
		case "up", "k":
			m.scene.Camera.Orbit(0, orbitStep)
		case "down", "j":
			m.scene.Camera.Orbit(0, -orbitStep)
		case "+", "=":
			m.userZoom = min(8, m.userZoom*1.2)
		case "-", "_":
			m.userZoom = max(0.2, m.userZoom/1.2)
		case "r":
			zoom := m.scene.Camera.Zoom
			m.scene.Camera = NewCamera()
			m.scene.Camera.Zoom = zoom
			m.userZoom = 1
		case "t":
			m.theme = NextTheme(m.theme.Name)
		case "?":
			m.showHelp = !m.showHelp
		}
	case TickMsg:
		if m.running {
			m.step()
		}
		m.scene.Camera.Zoom, m.zoomVel = m.zoom.Update(m.scene.Camera.Zoom, m.zoomVel, m.zoomTarget())
		m.render()
		return m, m.tick()
	}
	return m, nil
}

func (m *Model) toggle() {
	state, err := m.engine.Toggle()
	if err != nil {
		m.fail(err)
		return
	}
	m.logger.Printf("tick %d: %s", m.engine.Tick(), state)
}

// step advances the engine one tick and records the energy sample.
func (m *Model) step() {
	if m.err != nil {
		return
	}
	if err := m.engine.Step(); err != nil {
		m.fail(err)
		return
	}
	m.engine.Inspect(func(v particle.View) {
		m.energy.Observe(v)
		m.settled.Observe(v)
	})
	m.energyHistory = append(m.energyHistory, m.energy.Value())
	if len(m.energyHistory) > historyCapacity {
		m.energyHistory = m.energyHistory[1:]
	}
}

func (m *Model) render() {
	var err error
	if m.frame, err = m.engine.Render(m.scene, m.frame); err != nil {
		m.fail(err)
	}
}

func (m *Model) fail(err error) {
	if m.err == nil {
		m.logger.Printf("engine stopped: %v", err)
	}
	m.err = err
	m.running = false
}

func (m Model) zoomTarget() float64 {
	if m.engine.State() == particle.Scattered {
		return scatteredZoom * m.userZoom
	}
	return formedZoom * m.userZoom
}

func (m Model) View() string {
	st := m.theme.styles()

	var canvas string
	if m.theme.Monochrome {
		canvas = lipgloss.NewStyle().Foreground(m.theme.Text).Render(m.scene.Canvas.String())
	} else {
		canvas = m.scene.Canvas.Colored()
	}
	canvasView := lipgloss.NewStyle().Padding(1, 2).Render(canvas)

	var s strings.Builder
	s.WriteString(st.header.Render(strings.ToUpper(m.title)) + "\n")
	switch {
	case m.err != nil:
		s.WriteString(st.warn.Render("FAULTED") + "\n")
	case m.running:
		s.WriteString(st.status.Render("RUNNING") + "\n")
	default:
		s.WriteString(st.status.Render("PAUSED") + "\n")
	}

	if len(m.energyHistory) > 1 {
		chart := asciigraph.Plot(m.energyHistory, asciigraph.Height(4), asciigraph.Width(30), asciigraph.Caption("Kinetic energy"))
		s.WriteString(st.chart.Render(chart) + "\n")
	}

	row := func(label, value string) {
		s.WriteString(st.label.Render(label) + st.value.Render(value) + "\n")
	}
	row("State", m.scene.State.String())
	row("Tick", fmt.Sprintf("%d", m.scene.Tick))
	row("Visible", fmt.Sprintf("%d / %d", m.scene.Visible, m.engine.Len()))
	row("Energy", fmt.Sprintf("%.4f", m.energy.Value()))
	row("Settled", fmt.Sprintf("%.0f%%", m.settled.Value()*100))
	row("Zoom", fmt.Sprintf("%.2fx", m.scene.Camera.Zoom))
	row("Theme", m.theme.Name)
	if m.err != nil {
		s.WriteString("\n" + st.warn.Render(m.err.Error()) + "\n")
	}

	if m.showHelp {
		s.WriteString(st.help.Render(strings.Join([]string{
			"space   toggle shape",
			"p       pause / resume",
			".       step while paused",
			"arrows  orbit camera",
			"+ / -   zoom",
			"r       reset camera",
			"t       cycle theme",
			"q       quit",
		}, "\n")))
	} else {
		s.WriteString(st.help.Render("SP:Toggle P:Pause Q:Quit\nT:Theme  ←→↑↓:Orbit ?:Help"))
	}

	return lipgloss.JoinHorizontal(lipgloss.Top, canvasView, st.panel.Render(s.String()))
}

// Run starts a full-screen program for engine and blocks until it exits.
func Run(engine *particle.Engine, opts Options) error {
	_, err := tea.NewProgram(NewModel(engine, opts), tea.WithAltScreen()).Run()
	return err
}
