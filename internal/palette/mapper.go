package palette

import "math"

// Mode selects how a displacement is folded onto a palette.
type Mode int

const (
	// Magnitude ignores sign: 0 is calm, size-1 is the strongest ripple.
	Magnitude Mode = iota
	// Signed centres rest in the middle of a diverging ramp; indexes are
	// 1-based, matching color-pair numbering.
	Signed
)

func (m Mode) String() string {
	if m == Signed {
		return "signed"
	}
	return "magnitude"
}

// Index quantizes a displacement. The result is always inside [0, size-1]
// for Magnitude and [1, size] for Signed, however far d exceeds maxDisp.
func Index(d float64, size int, maxDisp float64, mode Mode) int {
	if size <= 0 {
		return 0
	}
	if maxDisp <= 0 {
		maxDisp = 1
	}
	n := float64(size)

	if mode == Signed {
		if math.IsNaN(d) {
			d = 0
		}
		v := 1 + float64(size/2) + d*n/(2*maxDisp)
		return int(math.Floor(clamp(v, 1, n)))
	}

	if math.IsNaN(d) {
		return 0
	}
	v := math.Abs(d) * (n - 1) / maxDisp
	return int(math.Floor(clamp(v, 0, n-1)))
}

func clamp(v, lo, hi float64) float64 {
	if v < lo || math.IsNaN(v) {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Mapper binds a palette to the displacement that saturates it.
type Mapper struct {
	Palette         *Palette
	MaxDisplacement float64
}

func (m Mapper) Index(d float64) int {
	return Index(d, m.Palette.Size(), m.MaxDisplacement, m.Palette.Mode)
}

func (m Mapper) Swatch(d float64) Swatch {
	return m.Palette.Swatch(m.Index(d))
}
