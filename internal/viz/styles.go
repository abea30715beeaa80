package viz

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const panelWidth = 38

type styles struct {
	panel  lipgloss.Style
	header lipgloss.Style
	label  lipgloss.Style
	value  lipgloss.Style
	graph  lipgloss.Style
	status lipgloss.Style
	paused lipgloss.Style
	key    lipgloss.Style
	hint   lipgloss.Style
}

func newStyles(t Theme) styles {
	return styles{
		panel: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), false, false, false, true).
			BorderForeground(t.Muted).
			Padding(0, 1).
			Width(panelWidth),
		header: lipgloss.NewStyle().Foreground(t.Accent).Bold(true).MarginBottom(1),
		label:  lipgloss.NewStyle().Foreground(t.Muted).Width(13),
		value:  lipgloss.NewStyle().Foreground(t.Text),
		graph:  lipgloss.NewStyle().Foreground(t.Accent),
		status: lipgloss.NewStyle().Foreground(t.Text),
		paused: lipgloss.NewStyle().Foreground(t.Warn).Bold(true),
		key:    lipgloss.NewStyle().Foreground(t.Accent).Bold(true),
		hint:   lipgloss.NewStyle().Foreground(t.Muted),
	}
}

// keyHints renders "k action" pairs.
func (s styles) keyHints(pairs ...string) string {
	var b strings.Builder
	for i := 0; i+1 < len(pairs); i += 2 {
		if i > 0 {
			b.WriteString(s.hint.Render("  "))
		}
		b.WriteString(s.key.Render(pairs[i]) + s.hint.Render(" "+pairs[i+1]))
	}
	return b.String()
}
