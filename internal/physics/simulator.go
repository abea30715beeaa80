package physics

import (
	"errors"
	"fmt"

	"github.com/san-kum/puddle/internal/field"
)

var (
	ErrUnknownSimulator = errors.New("physics: unknown simulator")
	ErrWeights          = errors.New("physics: stencil weights must be non-negative and sum to 0.5")
	ErrParameterBounds  = errors.New("physics: parameter out of valid bounds")
)

type Simulator interface {
	Name() string
	Step(p *field.Pair, damping float64)
}

// Hamiltonian is implemented by policies that can report the energy of a
// buffer pair in their own storage layout.
type Hamiltonian interface {
	Energy(p *field.Pair) float64
}

// Options carries the parameters of every policy; each one reads only its own.
type Options struct {
	Weights      Weights
	Stiffness    float64
	TimeStep     float64
	Substeps     int
	FrameRate    int
	Frequency    float64
	DampingRatio float64
}

func DefaultOptions() Options {
	return Options{
		Weights:      WeightsSmooth,
		Stiffness:    DefaultStiffness,
		TimeStep:     DefaultTimeStep,
		Substeps:     DefaultSubsteps,
		FrameRate:    30,
		Frequency:    DefaultFrequency,
		DampingRatio: DefaultDampingRatio,
	}
}

// Names lists the selectable policies.
func Names() []string { return []string{"stencil", "spring", "oscillator"} }

func New(name string, o Options) (Simulator, error) {
	switch name {
	case "stencil", "":
		return NewStencil(o.Weights)
	case "spring":
		return NewSpring(o.Stiffness, o.TimeStep, o.Substeps)
	case "oscillator":
		return NewOscillator(o.FrameRate, o.Frequency, o.DampingRatio)
	default:
		return nil, fmt.Errorf("%w: %q (available: %v)", ErrUnknownSimulator, name, Names())
	}
}
