package export

import (
	"strings"
	"testing"

	"github.com/san-kum/puddle/internal/field"
	"github.com/san-kum/puddle/internal/palette"
)

func TestFieldToSVG(t *testing.T) {
	g, err := field.Allocate(3, 4)
	if err != nil {
		t.Fatal(err)
	}
	g.Set(2, 2, 1)

	svg := FieldToSVG(g, palette.Mapper{Palette: palette.Grey, MaxDisplacement: 1}, 10)
	if !strings.HasPrefix(svg, "<?xml") || !strings.HasSuffix(svg, "</svg>") {
		t.Fatal("not an svg document")
	}
	if n := strings.Count(svg, "<rect"); n != 13 {
		t.Errorf("expected background plus 12 cells, got %d rects", n)
	}
	if !strings.Contains(svg, `width="40" height="30"`) {
		t.Error("document size should follow the grid")
	}
	if hot := palette.Grey.Swatch(23).Color.Hex(); !strings.Contains(svg, hot) {
		t.Errorf("saturated cell should use %s", hot)
	}

	mono := FieldToSVG(g, palette.Mapper{Palette: palette.Mono, MaxDisplacement: 1}, 10)
	if !strings.Contains(mono, "#ffffff") || !strings.Contains(mono, "#000000") {
		t.Error("glyph palette should map to grey levels")
	}

	if FieldToSVG(nil, palette.Mapper{Palette: palette.Mono}, 1) != "" {
		t.Error("nil grid should render nothing")
	}
}

func TestSeriesToSVG(t *testing.T) {
	svg := SeriesToSVG([]float64{1, 3, 2, 5}, 200, 100, "#00a8cc")
	if strings.Count(svg, " L") != 3 {
		t.Errorf("expected 3 line segments: %s", svg)
	}
	if SeriesToSVG([]float64{1}, 10, 10, "#fff") != "" {
		t.Error("a single point is not a series")
	}
}
