package export

import (
	"fmt"
	"strings"

	"github.com/san-kum/puddle/internal/field"
	"github.com/san-kum/puddle/internal/palette"
)

// FieldToSVG draws each interior cell of g as a square colored by m. Glyph
// palettes are drawn as grey levels by their ramp position.
func FieldToSVG(g *field.Grid, m palette.Mapper, scale float64) string {
	if g == nil || scale <= 0 {
		return ""
	}

	width := float64(g.Cols()) * scale
	height := float64(g.Rows()) * scale

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">
<rect width="100%%" height="100%%" fill="#000000"/>
`, width, height, width, height))

	size := m.Palette.Size()
	g.Each(func(r, c int, v float64) {
		idx := m.Index(v)
		sw := m.Palette.Swatch(idx)
		fill := sw.Color.Hex()
		if !sw.Colored {
			if m.Palette.Mode == palette.Signed {
				idx--
			}
			level := uint8(255 * idx / max(size-1, 1))
			fill = fmt.Sprintf("#%02x%02x%02x", level, level, level)
		}
		sb.WriteString(fmt.Sprintf(`<rect x="%.1f" y="%.1f" width="%.1f" height="%.1f" fill="%s"/>
`, float64(c-1)*scale, float64(r-1)*scale, scale, scale, fill))
	})

	sb.WriteString("</svg>")
	return sb.String()
}

// SeriesToSVG draws values as a polyline scaled to fit width x height.
func SeriesToSVG(values []float64, width, height int, strokeColor string) string {
	if len(values) < 2 {
		return ""
	}

	lo, hi := values[0], values[0]
	for _, v := range values {
		lo = min(lo, v)
		hi = max(hi, v)
	}
	span := hi - lo
	if span == 0 {
		span = 1
	}
	lo -= span * 0.1
	span *= 1.2

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
<path fill="none" stroke="%s" stroke-width="1.5" d="M`,
		width, height, width, height, strokeColor))

	last := float64(len(values) - 1)
	for i, v := range values {
		x := float64(i) / last * float64(width)
		y := float64(height) - (v-lo)/span*float64(height)
		if i == 0 {
			sb.WriteString(fmt.Sprintf("%.1f,%.1f", x, y))
		} else {
			sb.WriteString(fmt.Sprintf(" L%.1f,%.1f", x, y))
		}
	}

	sb.WriteString(`"/>
</svg>`)
	return sb.String()
}
