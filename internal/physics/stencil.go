package physics

import (
	"fmt"
	"math"

	"github.com/san-kum/puddle/internal/field"
)

// Weights are the per-neighbour coefficients of the stencil. Axis+Diag must
// equal 0.5, which makes the eight weights sum to 2 and the recurrence
// x(t+1) = A·x(t) − x(t−1) a discrete wave equation.
type Weights struct {
	Axis, Diag float64
}

var (
	WeightsSmooth = Weights{Axis: 1.0 / 3, Diag: 1.0 / 6}
	WeightsCross  = Weights{Axis: 0.5, Diag: 0}
)

func (w Weights) Validate() error {
	if w.Axis < 0 || w.Diag < 0 || math.Abs(w.Axis+w.Diag-0.5) > 1e-9 {
		return fmt.Errorf("%w: axis=%g diag=%g", ErrWeights, w.Axis, w.Diag)
	}
	return nil
}

// ParseWeights resolves a named weight set.
func ParseWeights(name string) (Weights, error) {
	switch name {
	case "smooth", "":
		return WeightsSmooth, nil
	case "cross":
		return WeightsCross, nil
	}
	return Weights{}, fmt.Errorf("%w: unknown stencil %q", ErrWeights, name)
}

// Stencil is the finite-difference policy. The next buffer enters Step
// holding the state from two frames ago and doubles as the velocity memory
// of the recurrence.
type Stencil struct {
	w Weights
}

func NewStencil(w Weights) (*Stencil, error) {
	if err := w.Validate(); err != nil {
		return nil, err
	}
	return &Stencil{w: w}, nil
}

func (s *Stencil) Name() string     { return "stencil" }
func (s *Stencil) Weights() Weights { return s.w }

func (s *Stencil) Step(p *field.Pair, damping float64) {
	cur, next := p.Current.Cells(), p.Next.Cells()
	stride := p.Current.Stride()
	rows, cols := p.Rows(), p.Cols()
	wa, wd := s.w.Axis, s.w.Diag

	for r := 1; r <= rows; r++ {
		base := r * stride
		for c := 1; c <= cols; c++ {
			i := base + c
			axis := cur[i-stride] + cur[i+stride] + cur[i-1] + cur[i+1]
			diag := cur[i-stride-1] + cur[i-stride+1] + cur[i+stride-1] + cur[i+stride+1]
			next[i] = (axis*wa + diag*wd - next[i]) * damping
		}
	}
	p.Swap()
}

// Energy returns <x,x> + <y,y> − <x, A·y> for x = Current and y = Next,
// which is invariant under Step when damping is 1.
func (s *Stencil) Energy(p *field.Pair) float64 {
	cur, prev := p.Current.Cells(), p.Next.Cells()
	stride := p.Current.Stride()
	e := 0.0
	for r := 1; r <= p.Rows(); r++ {
		base := r * stride
		for c := 1; c <= p.Cols(); c++ {
			i := base + c
			axis := prev[i-stride] + prev[i+stride] + prev[i-1] + prev[i+1]
			diag := prev[i-stride-1] + prev[i-stride+1] + prev[i+stride-1] + prev[i+stride+1]
			e += cur[i]*cur[i] + prev[i]*prev[i] - cur[i]*(axis*s.w.Axis+diag*s.w.Diag)
		}
	}
	return e
}
