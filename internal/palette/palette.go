package palette

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

var (
	ErrUnknownPalette     = errors.New("palette: unknown palette")
	ErrInsufficientColors = errors.New("palette: terminal lacks required colors")
)

// Swatch is what gets painted for one simulation cell. Colored swatches fill
// the cell background; plain ones print Glyph.
type Swatch struct {
	Glyph   rune
	Color   colorful.Color
	Colored bool
}

// Palette is an ordered ramp of swatches. Palettes are built once and never
// mutated.
type Palette struct {
	ID        int
	Name      string
	Mode      Mode
	MinColors int
	swatches  []Swatch
}

func (p *Palette) Size() int { return len(p.swatches) }

// Swatch looks up an index produced by Index in the palette's own mode:
// 0-based for Magnitude, 1-based for Signed. Out-of-range indexes clamp.
func (p *Palette) Swatch(idx int) Swatch {
	if p.Mode == Signed {
		idx--
	}
	idx = max(0, min(idx, len(p.swatches)-1))
	return p.swatches[idx]
}

const monoRamp = " .,:?)tuUO*%B@$#"

var (
	Mono = newGlyphPalette(0, "mono", monoRamp)
	Blue = newBluePalette(1, "blue", 24)
	Grey = newGreyPalette(2, "grey", 24)

	Palettes = []*Palette{Mono, Blue, Grey}
)

func newGlyphPalette(id int, name, ramp string) *Palette {
	p := &Palette{ID: id, Name: name, Mode: Magnitude}
	for _, r := range ramp {
		p.swatches = append(p.swatches, Swatch{Glyph: r})
	}
	return p
}

// newBluePalette builds a diverging ramp: navy for troughs, mid blue at
// rest, pale sky for crests. Blending happens in Lab space so both halves
// change lightness evenly.
func newBluePalette(id int, name string, steps int) *Palette {
	navy := colorful.Color{R: 0.0, G: 0.02, B: 0.2}
	mid := colorful.Color{R: 0.0, G: 0.3, B: 0.7}
	sky := colorful.Color{R: 0.75, G: 0.9, B: 1.0}

	p := &Palette{ID: id, Name: name, Mode: Signed, MinColors: 256}
	for i := 0; i < steps; i++ {
		t := float64(i) / float64(steps-1)
		var c colorful.Color
		if t < 0.5 {
			c = navy.BlendLab(mid, t*2)
		} else {
			c = mid.BlendLab(sky, (t-0.5)*2)
		}
		p.swatches = append(p.swatches, Swatch{Glyph: ' ', Color: c.Clamped(), Colored: true})
	}
	return p
}

// newGreyPalette uses the xterm greyscale cube entries 232..255.
func newGreyPalette(id int, name string, steps int) *Palette {
	p := &Palette{ID: id, Name: name, Mode: Magnitude, MinColors: 256}
	for i := 0; i < steps; i++ {
		v := float64(8+10*i) / 255
		p.swatches = append(p.swatches, Swatch{Glyph: ' ', Color: colorful.Color{R: v, G: v, B: v}, Colored: true})
	}
	return p
}

// Parse accepts a palette id ("0") or name ("mono").
func Parse(s string) (*Palette, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if id, err := strconv.Atoi(s); err == nil {
		for _, p := range Palettes {
			if p.ID == id {
				return p, nil
			}
		}
	}
	for _, p := range Palettes {
		if p.Name == s {
			return p, nil
		}
	}
	return nil, fmt.Errorf("%w: %q (available: %s)", ErrUnknownPalette, s, strings.Join(Names(), ", "))
}

func Names() []string {
	names := make([]string, len(Palettes))
	for i, p := range Palettes {
		names[i] = p.Name
	}
	return names
}

// Select returns p if the terminal can show it. Otherwise it falls back to
// Mono when fallback is allowed and fails with ErrInsufficientColors when it
// is not. The boolean reports whether the fallback was taken.
func Select(p *Palette, supports func(n int) bool, fallback bool) (*Palette, bool, error) {
	if p.MinColors <= 0 || supports(p.MinColors) {
		return p, false, nil
	}
	if fallback {
		return Mono, true, nil
	}
	return nil, false, fmt.Errorf("%w: %s needs %d", ErrInsufficientColors, p.Name, p.MinColors)
}
