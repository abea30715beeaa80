// Package term puts the engine on a real terminal through tcell.
package term

import (
	"fmt"
	"sync"

	"github.com/gdamore/tcell/v2"

	"github.com/san-kum/puddle/internal/palette"
	"github.com/san-kum/puddle/internal/puddle"
)

// Screen adapts a tcell.Screen to puddle.Surface. Each simulation cell spans
// cellWidth terminal columns so cells look roughly square.
type Screen struct {
	scr       tcell.Screen
	flags     *puddle.Flags
	cellWidth int
	closeOnce sync.Once
}

// Open initializes the controlling terminal.
func Open(flags *puddle.Flags, cellWidth int) (*Screen, error) {
	scr, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("open terminal: %w", err)
	}
	return NewScreen(scr, flags, cellWidth)
}

// NewScreen initializes scr, which may be a tcell.SimulationScreen.
func NewScreen(scr tcell.Screen, flags *puddle.Flags, cellWidth int) (*Screen, error) {
	if err := scr.Init(); err != nil {
		return nil, fmt.Errorf("init terminal: %w", err)
	}
	if cellWidth < 1 {
		cellWidth = 1
	}
	scr.HideCursor()
	scr.SetStyle(tcell.StyleDefault)
	scr.Clear()
	return &Screen{scr: scr, flags: flags, cellWidth: cellWidth}, nil
}

// Close restores the terminal. It is safe to call more than once.
func (s *Screen) Close() {
	s.closeOnce.Do(s.scr.Fini)
}

func (s *Screen) Dimensions() (int, int) {
	w, h := s.scr.Size()
	return h, w / s.cellWidth
}

func (s *Screen) DrawCell(row, col int, sw palette.Swatch) {
	style := tcell.StyleDefault
	glyph := sw.Glyph
	if sw.Colored {
		r, g, b := sw.Color.RGB255()
		style = style.Background(tcell.NewRGBColor(int32(r), int32(g), int32(b)))
		glyph = ' '
	}
	x := col * s.cellWidth
	for i := 0; i < s.cellWidth; i++ {
		s.scr.SetContent(x+i, row, glyph, nil, style)
	}
}

func (s *Screen) Present() { s.scr.Show() }

// PollKey drains pending events until it finds a key. Resize events raise
// the resize flag and Ctrl-C raises the shutdown flag.
func (s *Screen) PollKey() (rune, bool) {
	for s.scr.HasPendingEvent() {
		switch ev := s.scr.PollEvent().(type) {
		case *tcell.EventResize:
			s.scr.Clear()
			s.flags.RequestResize()
		case *tcell.EventKey:
			switch ev.Key() {
			case tcell.KeyCtrlC:
				s.flags.RequestShutdown()
			case tcell.KeyEscape:
				return 'q', true
			case tcell.KeyRune:
				return ev.Rune(), true
			}
		}
	}
	return 0, false
}

func (s *Screen) SupportsColors(n int) bool {
	return s.scr.Colors() >= n
}
