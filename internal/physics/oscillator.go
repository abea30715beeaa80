package physics

import (
	"fmt"

	"github.com/charmbracelet/harmonica"
	"github.com/san-kum/puddle/internal/field"
)

const (
	DefaultFrequency    = 6.0
	DefaultDampingRatio = 0.05
)

// Oscillator drives each cell as a damped harmonic oscillator whose rest
// position is the mean of its four axis neighbours from the previous frame.
// Storage matches Spring: Current holds positions, Next velocities.
type Oscillator struct {
	spring    harmonica.Spring
	frequency float64
	targets   []float64
}

func NewOscillator(fps int, frequency, dampingRatio float64) (*Oscillator, error) {
	if fps <= 0 || frequency <= 0 || dampingRatio < 0 {
		return nil, fmt.Errorf("%w: fps=%d frequency=%g ratio=%g", ErrParameterBounds, fps, frequency, dampingRatio)
	}
	return &Oscillator{
		spring:    harmonica.NewSpring(harmonica.FPS(fps), frequency, dampingRatio),
		frequency: frequency,
	}, nil
}

func (o *Oscillator) Name() string { return "oscillator" }

func (o *Oscillator) Step(p *field.Pair, damping float64) {
	pos, vel := p.Current.Cells(), p.Next.Cells()
	stride := p.Current.Stride()
	rows, cols := p.Rows(), p.Cols()

	if len(o.targets) != len(pos) {
		o.targets = make([]float64, len(pos))
	}
	for r := 1; r <= rows; r++ {
		base := r * stride
		for c := 1; c <= cols; c++ {
			i := base + c
			o.targets[i] = (pos[i-stride] + pos[i+stride] + pos[i-1] + pos[i+1]) / 4
		}
	}

	for r := 1; r <= rows; r++ {
		base := r * stride
		for c := 1; c <= cols; c++ {
			i := base + c
			x, v := o.spring.Update(pos[i], vel[i], o.targets[i])
			pos[i], vel[i] = x, v*damping
		}
	}
}

// Energy uses the lattice energy with the coupling implied by the angular
// frequency: ω² spread over four neighbour springs.
func (o *Oscillator) Energy(p *field.Pair) float64 {
	return latticeEnergy(p, o.frequency*o.frequency/4)
}
