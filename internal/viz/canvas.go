package viz

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/san-kum/puddle/internal/palette"
)

// Canvas is the surface the engine draws on inside a Bubble Tea program. It
// holds the last frame and the keys waiting for the next one.
type Canvas struct {
	rows, cols int
	cellWidth  int
	colors     int
	cells      [][]palette.Swatch
	keys       []rune
	styles     map[string]lipgloss.Style
}

func NewCanvas(cellWidth int, profile termenv.Profile) *Canvas {
	if cellWidth < 1 {
		cellWidth = 1
	}
	return &Canvas{
		cellWidth: cellWidth,
		colors:    ProfileColors(profile),
		styles:    make(map[string]lipgloss.Style),
	}
}

// ProfileColors is the number of colors a termenv profile can show.
func ProfileColors(p termenv.Profile) int {
	switch p {
	case termenv.TrueColor:
		return 1 << 24
	case termenv.ANSI256:
		return 256
	case termenv.ANSI:
		return 16
	default:
		return 0
	}
}

// Resize sets the size in simulation cells. Non-positive sizes are kept as
// reported so the engine can defer them.
func (c *Canvas) Resize(rows, cols int) {
	c.rows, c.cols = rows, cols
	c.cells = make([][]palette.Swatch, max(rows, 0))
	for i := range c.cells {
		c.cells[i] = make([]palette.Swatch, max(cols, 0))
	}
}

func (c *Canvas) CellWidth() int { return c.cellWidth }

func (c *Canvas) Dimensions() (int, int) { return c.rows, c.cols }

func (c *Canvas) DrawCell(row, col int, s palette.Swatch) {
	if row < 0 || row >= len(c.cells) || col < 0 || col >= len(c.cells[row]) {
		return
	}
	c.cells[row][col] = s
}

func (c *Canvas) Present() {}

func (c *Canvas) PollKey() (rune, bool) {
	if len(c.keys) == 0 {
		return 0, false
	}
	k := c.keys[0]
	c.keys = c.keys[1:]
	return k, true
}

func (c *Canvas) SupportsColors(n int) bool { return c.colors >= n }

func (c *Canvas) Press(k rune) { c.keys = append(c.keys, k) }

// String renders the last frame. Runs of identical swatches share one
// styled span.
func (c *Canvas) String() string {
	var b strings.Builder
	for r, row := range c.cells {
		if r > 0 {
			b.WriteByte('\n')
		}
		for start := 0; start < len(row); {
			end := start + 1
			for end < len(row) && row[end] == row[start] {
				end++
			}
			b.WriteString(c.span(row[start], (end-start)*c.cellWidth))
			start = end
		}
	}
	return b.String()
}

func (c *Canvas) span(s palette.Swatch, width int) string {
	if !s.Colored {
		g := s.Glyph
		if g == 0 {
			g = ' '
		}
		return strings.Repeat(string(g), width)
	}
	hex := s.Color.Hex()
	style, ok := c.styles[hex]
	if !ok {
		style = lipgloss.NewStyle().Background(lipgloss.Color(hex))
		c.styles[hex] = style
	}
	return style.Render(strings.Repeat(" ", width))
}
