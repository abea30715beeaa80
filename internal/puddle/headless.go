package puddle

import "github.com/san-kum/puddle/internal/palette"

// Headless is an in-memory Surface. It backs batch runs and lets callers
// script keys and size changes.
type Headless struct {
	rows, cols int
	colors     int
	keys       []rune
	cells      [][]palette.Swatch
	presented  int
}

func NewHeadless(rows, cols, colors int) *Headless {
	h := &Headless{colors: colors}
	h.Resize(rows, cols)
	return h
}

// Resize changes the reported dimensions. The caller still has to raise a
// resize request for the engine to notice.
func (h *Headless) Resize(rows, cols int) {
	h.rows, h.cols = rows, cols
	h.cells = make([][]palette.Swatch, max(rows, 0))
	for i := range h.cells {
		h.cells[i] = make([]palette.Swatch, max(cols, 0))
	}
}

func (h *Headless) Dimensions() (int, int) { return h.rows, h.cols }

func (h *Headless) DrawCell(row, col int, s palette.Swatch) {
	if row < 0 || row >= len(h.cells) || col < 0 || col >= len(h.cells[row]) {
		return
	}
	h.cells[row][col] = s
}

func (h *Headless) Present() { h.presented++ }

func (h *Headless) PollKey() (rune, bool) {
	if len(h.keys) == 0 {
		return 0, false
	}
	k := h.keys[0]
	h.keys = h.keys[1:]
	return k, true
}

func (h *Headless) SupportsColors(n int) bool { return h.colors >= n }

func (h *Headless) Press(k ...rune) { h.keys = append(h.keys, k...) }

func (h *Headless) Cell(row, col int) palette.Swatch { return h.cells[row][col] }
func (h *Headless) Presented() int                   { return h.presented }
