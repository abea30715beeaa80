package physics

import (
	"fmt"

	"github.com/san-kum/puddle/internal/field"
)

const (
	DefaultStiffness = 20.0
	DefaultTimeStep  = 0.02
	DefaultSubsteps  = 10
)

// Spring treats every cell as a unit mass tied to its four axis neighbours by
// springs of equal stiffness. Current holds positions and Next holds
// velocities; the pair is never swapped.
type Spring struct {
	Stiffness float64
	TimeStep  float64
	Substeps  int
}

func NewSpring(stiffness, dt float64, substeps int) (*Spring, error) {
	if stiffness <= 0 || dt <= 0 || substeps < 1 {
		return nil, fmt.Errorf("%w: stiffness=%g dt=%g substeps=%d", ErrParameterBounds, stiffness, dt, substeps)
	}
	return &Spring{Stiffness: stiffness, TimeStep: dt, Substeps: substeps}, nil
}

func (s *Spring) Name() string { return "spring" }

func (s *Spring) Step(p *field.Pair, damping float64) {
	pos, vel := p.Current.Cells(), p.Next.Cells()
	stride := p.Current.Stride()
	rows, cols := p.Rows(), p.Cols()
	k, dt := s.Stiffness, s.TimeStep

	for n := 0; n < s.Substeps; n++ {
		// velocities first from the old positions, then positions from the
		// new velocities (semi-implicit Euler)
		for r := 1; r <= rows; r++ {
			base := r * stride
			for c := 1; c <= cols; c++ {
				i := base + c
				acc := k * (pos[i-stride] + pos[i+stride] + pos[i-1] + pos[i+1] - 4*pos[i])
				vel[i] += acc * dt
			}
		}
		for r := 1; r <= rows; r++ {
			base := r * stride
			for c := 1; c <= cols; c++ {
				pos[base+c] += vel[base+c] * dt
			}
		}
	}

	if damping != 1 {
		for r := 1; r <= rows; r++ {
			base := r * stride
			for c := 1; c <= cols; c++ {
				vel[base+c] *= damping
			}
		}
	}
}

func (s *Spring) Energy(p *field.Pair) float64 {
	return latticeEnergy(p, s.Stiffness)
}

// latticeEnergy sums kinetic energy of unit masses and the potential of every
// axis spring, including the springs tied to the fixed border.
func latticeEnergy(p *field.Pair, k float64) float64 {
	pos, vel := p.Current.Cells(), p.Next.Cells()
	stride := p.Current.Stride()
	ke, pe := 0.0, 0.0
	for r := 0; r <= p.Rows(); r++ {
		base := r * stride
		for c := 0; c <= p.Cols(); c++ {
			i := base + c
			ke += 0.5 * vel[i] * vel[i]
			dr := pos[i+stride] - pos[i]
			dc := pos[i+1] - pos[i]
			pe += 0.5 * k * (dr*dr + dc*dc)
		}
	}
	return ke + pe
}
