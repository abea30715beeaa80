package viz

import (
	"fmt"
	"log"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
	"github.com/muesli/termenv"

	"github.com/san-kum/puddle/internal/config"
	"github.com/san-kum/puddle/internal/puddle"
)

type TickMsg time.Time

// Model is the live ripple view.
type Model struct {
	engine   *puddle.Engine
	canvas   *Canvas
	flags    *puddle.Flags
	period   time.Duration
	dropSize float64

	width, height int
	showEnergy    bool
	theme         int
	styles        styles
	err           error
}

// NewModel builds an engine on a fresh canvas. The canvas has no size until
// the first window size message arrives.
func NewModel(cfg *config.Config, profile termenv.Profile, logger *log.Logger) (Model, error) {
	flags := &puddle.Flags{}
	canvas := NewCanvas(cfg.CellWidth, profile)
	engine, err := puddle.New(puddle.Options{
		Config:  cfg,
		Surface: canvas,
		Flags:   flags,
		Logger:  logger,
	})
	if err != nil {
		return Model{}, err
	}
	return Model{
		engine:   engine,
		canvas:   canvas,
		flags:    flags,
		period:   time.Second / time.Duration(cfg.FrameRate),
		dropSize: cfg.Drop.MaxMagnitude,
		styles:   newStyles(Themes[0]),
	}, nil
}

func (m Model) Init() tea.Cmd { return m.tick() }

func (m Model) tick() tea.Cmd {
	return tea.Tick(m.period, func(t time.Time) tea.Msg { return TickMsg(t) })
}

// Err reports the fatal error that ended the program, if any.
func (m Model) Err() error { return m.err }

func (m Model) Engine() *puddle.Engine { return m.engine }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.layout()
	case tea.KeyMsg:
		m.handleKey(msg)
	case tea.MouseMsg:
		if msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft {
			m.engine.Drop(msg.Y, msg.X/m.canvas.CellWidth(), m.dropSize)
		}
	case TickMsg:
		if err := m.engine.Frame(); err != nil {
			m.err = err
			return m, tea.Quit
		}
		if m.engine.Done() {
			return m, tea.Quit
		}
		return m, m.tick()
	}
	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) {
	switch msg.String() {
	case "ctrl+c":
		m.flags.RequestShutdown()
	case "q", "Q", "esc":
		m.canvas.Press('q')
	case " ":
		m.canvas.Press(' ')
	case "r":
		m.canvas.Press('r')
	case "e":
		m.showEnergy = !m.showEnergy
		m.layout()
	case "t":
		m.theme = (m.theme + 1) % len(Themes)
		m.styles = newStyles(Themes[m.theme])
	}
}

// layout sizes the canvas to the window minus the status line and the
// panel, then asks the engine to follow on its next frame.
func (m *Model) layout() {
	if m.width == 0 && m.height == 0 {
		return
	}
	cols := m.width
	if m.showEnergy {
		cols -= panelWidth + 1
	}
	m.canvas.Resize(m.height-1, cols/m.canvas.CellWidth())
	m.flags.RequestResize()
}

func (m Model) View() string {
	if m.width == 0 {
		return ""
	}
	view := m.canvas.String()
	if m.showEnergy {
		view = lipgloss.JoinHorizontal(lipgloss.Top, view, m.energyPanel())
	}
	return view + "\n" + m.statusLine()
}

func (m Model) statusLine() string {
	e := m.engine
	vp := e.Viewport()
	s := m.styles

	var b strings.Builder
	b.WriteString(s.status.Render(fmt.Sprintf("%s · %s · %s · drops %d ",
		e.Simulator().Name(), e.Palette().Name, vp, e.Drops())))
	if e.Paused() {
		b.WriteString(s.paused.Render("PAUSED "))
	}
	b.WriteString(s.keyHints("spc", "pause", "r", "calm", "e", "energy", "q", "quit"))
	return b.String()
}

func (m Model) energyPanel() string {
	e := m.engine
	s := m.styles

	var b strings.Builder
	b.WriteString(s.header.Render("SURFACE") + "\n")
	if values := e.EnergyHistory().Values(); len(values) > 1 {
		chart := asciigraph.Plot(values,
			asciigraph.Height(8),
			asciigraph.Width(panelWidth-14),
			asciigraph.Caption("energy"))
		b.WriteString(s.graph.Render(chart) + "\n\n")
	}
	row := func(label, value string) {
		b.WriteString(s.label.Render(label) + s.value.Render(value) + "\n")
	}
	row("Energy", fmt.Sprintf("%.3f", e.Energy()))
	row("Displacement", fmt.Sprintf("%.3f", e.Displacement()))
	row("Frames", fmt.Sprintf("%d", e.Frames()))
	row("Drops", fmt.Sprintf("%d", e.Drops()))
	row("Damping", fmt.Sprintf("%.3f", e.Config().Damping))
	row("Mean wait", fmt.Sprintf("%.1f frames", e.Scheduler().MeanWait()))
	if d := e.LastDrop(); d.Row > 0 {
		row("Last drop", fmt.Sprintf("%d,%d %+.2f", d.Row-1, d.Col-1, d.Magnitude))
	} else {
		row("Last drop", "none")
	}
	return s.panel.Height(max(m.height-1, 1)).Render(b.String())
}

// Run starts a Bubble Tea program for model and returns its fatal error.
func Run(model tea.Model) error {
	final, err := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseCellMotion()).Run()
	if err != nil {
		return err
	}
	if f, ok := final.(interface{ Err() error }); ok {
		return f.Err()
	}
	return nil
}
