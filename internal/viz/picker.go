package viz

import (
	"fmt"
	"log"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/muesli/termenv"

	"github.com/san-kum/puddle/internal/config"
)

// BuildFunc turns a preset name into the configuration to run.
type BuildFunc func(preset string) (*config.Config, error)

// Picker lists the presets and hands over to a live Model once one is
// chosen.
type Picker struct {
	presets []string
	cursor  int
	build   BuildFunc
	profile termenv.Profile
	logger  *log.Logger
	styles  styles

	live          *Model
	width, height int
	err           error
}

func NewPicker(build BuildFunc, profile termenv.Profile, logger *log.Logger) Picker {
	return Picker{
		presets: config.ListPresets(),
		build:   build,
		profile: profile,
		logger:  logger,
		styles:  newStyles(Themes[0]),
	}
}

func (p Picker) Init() tea.Cmd { return nil }

func (p Picker) Err() error {
	if p.err != nil {
		return p.err
	}
	if p.live != nil {
		return p.live.Err()
	}
	return nil
}

func (p Picker) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if size, ok := msg.(tea.WindowSizeMsg); ok {
		p.width, p.height = size.Width, size.Height
	}
	if p.live != nil {
		next, cmd := p.live.Update(msg)
		live := next.(Model)
		p.live = &live
		return p, cmd
	}

	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return p, nil
	}
	switch key.String() {
	case "q", "esc", "ctrl+c":
		return p, tea.Quit
	case "up", "k":
		if p.cursor > 0 {
			p.cursor--
		}
	case "down", "j":
		if p.cursor < len(p.presets)-1 {
			p.cursor++
		}
	case "enter", " ":
		return p.start()
	}
	return p, nil
}

func (p Picker) start() (tea.Model, tea.Cmd) {
	name := p.presets[p.cursor]
	cfg, err := p.build(name)
	if err == nil {
		var live Model
		live, err = NewModel(cfg, p.profile, p.logger)
		if err == nil {
			next, _ := live.Update(tea.WindowSizeMsg{Width: p.width, Height: p.height})
			live = next.(Model)
			p.live = &live
			return p, live.Init()
		}
	}
	p.err = fmt.Errorf("preset %s: %w", name, err)
	return p, tea.Quit
}

func (p Picker) View() string {
	if p.live != nil {
		return p.live.View()
	}
	s := p.styles

	var b strings.Builder
	b.WriteString("\n\n    " + s.header.Render("PUDDLE") + "\n")
	b.WriteString("    " + s.hint.Render("pick a surface") + "\n\n")
	for i, name := range p.presets {
		line := fmt.Sprintf("%-10s %s", name, config.Describe(name))
		if i == p.cursor {
			b.WriteString("    " + s.key.Render("▸ "+line) + "\n")
		} else {
			b.WriteString("      " + s.hint.Render(line) + "\n")
		}
	}
	b.WriteString("\n    " + s.keyHints("j/k", "navigate", "enter", "start", "q", "quit") + "\n")
	return b.String()
}
