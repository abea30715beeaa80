package metrics

import (
	"math"

	"github.com/san-kum/puddle/internal/field"
)

// Saturation is the fraction of frames in which some cell exceeded the
// displacement that saturates the palette.
type Saturation struct {
	name      string
	threshold float64
	saturated int
	samples   int
}

func NewSaturation(threshold float64) *Saturation {
	return &Saturation{
		name:      "saturation",
		threshold: threshold,
	}
}

func (s *Saturation) Name() string {
	return s.name
}

func (s *Saturation) Observe(p *field.Pair) {
	s.samples++
	for _, v := range p.Current.Cells() {
		if math.Abs(v) > s.threshold {
			s.saturated++
			break
		}
	}
}

func (s *Saturation) Value() float64 {
	if s.samples == 0 {
		return 0
	}
	return float64(s.saturated) / float64(s.samples)
}

func (s *Saturation) Reset() {
	s.saturated = 0
	s.samples = 0
}
