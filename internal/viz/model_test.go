package viz

import (
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/muesli/termenv"

	"github.com/san-kum/puddle/internal/config"
	"github.com/san-kum/puddle/internal/field"
	"github.com/san-kum/puddle/internal/palette"
)

func newTestModel(t *testing.T, profile termenv.Profile) Model {
	t.Helper()
	cfg := config.DefaultConfig()
	cfg.Seed = 3
	m, err := NewModel(cfg, profile, nil)
	if err != nil {
		t.Fatalf("new model: %v", err)
	}
	return m
}

func update(m Model, msg tea.Msg) (Model, tea.Cmd) {
	next, cmd := m.Update(msg)
	return next.(Model), cmd
}

func isQuit(cmd tea.Cmd) bool {
	if cmd == nil {
		return false
	}
	_, ok := cmd().(tea.QuitMsg)
	return ok
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestProfileColors(t *testing.T) {
	c := NewCanvas(2, termenv.ANSI)
	if c.SupportsColors(256) || !c.SupportsColors(8) {
		t.Error("ANSI profile should support 16 colors only")
	}
	if !NewCanvas(2, termenv.TrueColor).SupportsColors(256) {
		t.Error("true color should cover 256 colors")
	}
	if NewCanvas(1, termenv.Ascii).SupportsColors(1) {
		t.Error("ascii profile has no colors")
	}
}

func TestCanvasString(t *testing.T) {
	c := NewCanvas(2, termenv.Ascii)
	c.Resize(2, 3)
	c.DrawCell(0, 1, palette.Swatch{Glyph: '#'})
	c.DrawCell(1, 0, palette.Swatch{Glyph: '.'})
	c.DrawCell(1, 1, palette.Swatch{Glyph: '.'})
	c.DrawCell(5, 5, palette.Swatch{Glyph: '@'})

	lines := strings.Split(c.String(), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(lines))
	}
	if lines[0] != "  ##  " {
		t.Errorf("line 0 = %q", lines[0])
	}
	if lines[1] != "....  " {
		t.Errorf("line 1 = %q", lines[1])
	}

	c.DrawCell(0, 0, palette.Swatch{Glyph: ' ', Color: colorful.Color{R: 1}, Colored: true})
	if !strings.Contains(c.String(), "##") {
		t.Error("colored span should not disturb glyph cells")
	}
}

func TestModelFallsBackWithoutColor(t *testing.T) {
	m := newTestModel(t, termenv.Ascii)
	if m.Engine().Palette() != palette.Mono {
		t.Errorf("expected mono palette, got %s", m.Engine().Palette().Name)
	}
}

func TestModelResize(t *testing.T) {
	m := newTestModel(t, termenv.TrueColor)
	m, _ = update(m, tea.WindowSizeMsg{Width: 80, Height: 25})
	m, cmd := update(m, TickMsg(time.Now()))
	if cmd == nil || isQuit(cmd) {
		t.Fatal("tick should schedule the next tick")
	}

	want := field.ViewportState{Rows: 24, Cols: 40}
	if got := m.Engine().Viewport(); got != want {
		t.Errorf("viewport = %s, want %s", got, want)
	}
	if view := m.View(); strings.Count(view, "\n") != 24 {
		t.Errorf("view should have 24 field rows plus a status line, got %d newlines", strings.Count(view, "\n"))
	}

	m, _ = update(m, runes("e"))
	m, _ = update(m, TickMsg(time.Now()))
	if got := m.Engine().Viewport().Cols; got != (80-panelWidth-1)/2 {
		t.Errorf("energy panel should narrow the field, cols = %d", got)
	}
}

func TestModelDegenerateWindow(t *testing.T) {
	m := newTestModel(t, termenv.TrueColor)
	m, _ = update(m, tea.WindowSizeMsg{Width: 80, Height: 1})
	m, cmd := update(m, TickMsg(time.Now()))
	if isQuit(cmd) || m.Err() != nil {
		t.Fatal("a window with no room for the field should not end the program")
	}
	if !m.Engine().ResizePending() {
		t.Error("resize should wait for a usable window")
	}
}

func TestModelKeys(t *testing.T) {
	m := newTestModel(t, termenv.TrueColor)
	m, _ = update(m, tea.WindowSizeMsg{Width: 20, Height: 10})

	m, _ = update(m, tea.KeyMsg{Type: tea.KeySpace})
	m, _ = update(m, TickMsg(time.Now()))
	if !m.Engine().Paused() {
		t.Error("space should pause")
	}

	m, _ = update(m, runes("r"))
	m, _ = update(m, TickMsg(time.Now()))
	if m.Engine().Pair().Current.SumAbs() != 0 {
		t.Error("r should calm the surface")
	}

	m, _ = update(m, runes("t"))
	if m.theme != 1 {
		t.Errorf("t should cycle the theme, got %d", m.theme)
	}

	m, _ = update(m, tea.KeyMsg{Type: tea.KeyEsc})
	_, cmd := update(m, TickMsg(time.Now()))
	if !isQuit(cmd) {
		t.Error("esc should quit on the next frame")
	}
}

func TestModelCtrlC(t *testing.T) {
	m := newTestModel(t, termenv.TrueColor)
	m, _ = update(m, tea.WindowSizeMsg{Width: 20, Height: 10})
	m, _ = update(m, tea.KeyMsg{Type: tea.KeyCtrlC})
	_, cmd := update(m, TickMsg(time.Now()))
	if !isQuit(cmd) {
		t.Error("ctrl+c should quit")
	}
}

func TestModelMouseDrop(t *testing.T) {
	m := newTestModel(t, termenv.TrueColor)
	m, _ = update(m, tea.WindowSizeMsg{Width: 20, Height: 10})
	m, _ = update(m, tea.KeyMsg{Type: tea.KeySpace})
	m, _ = update(m, TickMsg(time.Now()))

	m, _ = update(m, tea.MouseMsg{X: 7, Y: 2, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	if got := m.Engine().Pair().Current.At(3, 4); got != config.DefaultConfig().Drop.MaxMagnitude {
		t.Errorf("click should drop at row 3 col 4, got %f", got)
	}

	m, _ = update(m, runes("e"))
	if panel := m.energyPanel(); !strings.Contains(panel, "2,3 +4.00") {
		t.Errorf("energy panel should report the last drop:\n%s", panel)
	}
}

func TestPicker(t *testing.T) {
	var picked string
	build := func(name string) (*config.Config, error) {
		picked = name
		return config.GetPreset(name), nil
	}
	p := NewPicker(build, termenv.TrueColor, nil)
	next, _ := p.Update(tea.WindowSizeMsg{Width: 40, Height: 12})
	next, _ = next.Update(tea.KeyMsg{Type: tea.KeyDown})
	next, cmd := next.Update(tea.KeyMsg{Type: tea.KeyEnter})

	if picked != config.ListPresets()[1] {
		t.Errorf("picked %q", picked)
	}
	if cmd == nil {
		t.Fatal("starting a preset should schedule a tick")
	}
	next, _ = next.Update(TickMsg(time.Now()))
	if next.(Picker).live == nil {
		t.Fatal("picker should hand over to the live model")
	}
	if rows := next.(Picker).live.Engine().Viewport().Rows; rows != 11 {
		t.Errorf("live model should inherit the window size, rows = %d", rows)
	}
}

func TestPickerBuildError(t *testing.T) {
	boom := errors.New("boom")
	p := NewPicker(func(string) (*config.Config, error) { return nil, boom }, termenv.TrueColor, nil)
	next, cmd := p.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if !isQuit(cmd) || !errors.Is(next.(Picker).Err(), boom) {
		t.Error("a failed build should quit with its error")
	}
}
