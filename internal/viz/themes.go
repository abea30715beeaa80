package viz

import "github.com/charmbracelet/lipgloss"

// Theme colors the status line and the energy panel. The ripple field
// itself is colored by its palette.
type Theme struct {
	Name   string
	Accent lipgloss.Color
	Text   lipgloss.Color
	Muted  lipgloss.Color
	Warn   lipgloss.Color
}

var (
	ThemeOcean = Theme{
		Name:   "ocean",
		Accent: lipgloss.Color("#00a8cc"),
		Text:   lipgloss.Color("#e0f0ff"),
		Muted:  lipgloss.Color("#4488aa"),
		Warn:   lipgloss.Color("#ffcc00"),
	}

	ThemeMinimal = Theme{
		Name:   "minimal",
		Accent: lipgloss.Color("#ffffff"),
		Text:   lipgloss.Color("#cccccc"),
		Muted:  lipgloss.Color("#888888"),
		Warn:   lipgloss.Color("#ffaa00"),
	}

	ThemeSunset = Theme{
		Name:   "sunset",
		Accent: lipgloss.Color("#ff6b6b"),
		Text:   lipgloss.Color("#fff5f5"),
		Muted:  lipgloss.Color("#8b6b8c"),
		Warn:   lipgloss.Color("#feca57"),
	}

	Themes = []Theme{ThemeOcean, ThemeMinimal, ThemeSunset}
)
