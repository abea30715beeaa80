package metrics

import (
	"math"

	"github.com/san-kum/puddle/internal/field"
	"github.com/san-kum/puddle/internal/physics"
)

type Metric interface {
	Name() string
	Observe(p *field.Pair)
	Value() float64
	Reset()
}

// Displacement tracks the total absolute displacement of the displayed
// buffer; Value is the latest sample.
type Displacement struct {
	name    string
	last    float64
	peak    float64
	samples int
}

func NewDisplacement() *Displacement {
	return &Displacement{name: "displacement"}
}

func (d *Displacement) Name() string { return d.name }

func (d *Displacement) Observe(p *field.Pair) {
	d.last = p.Current.SumAbs()
	d.peak = math.Max(d.peak, d.last)
	d.samples++
}

func (d *Displacement) Value() float64 { return d.last }
func (d *Displacement) Peak() float64  { return d.peak }

func (d *Displacement) Reset() {
	d.last = 0
	d.peak = 0
	d.samples = 0
}

// Energy samples the simulator's own energy function. It reports zero for
// policies that do not implement physics.Hamiltonian.
type Energy struct {
	name string
	sim  physics.Hamiltonian
	last float64
}

func NewEnergy(sim physics.Simulator) *Energy {
	h, _ := sim.(physics.Hamiltonian)
	return &Energy{name: "energy", sim: h}
}

func (e *Energy) Name() string { return e.name }

func (e *Energy) Observe(p *field.Pair) {
	if e.sim == nil {
		return
	}
	e.last = e.sim.Energy(p)
}

func (e *Energy) Value() float64 { return e.last }
func (e *Energy) Reset()         { e.last = 0 }

// EnergyDrift is the largest relative deviation from the energy seen at the
// first sample. Raindrops add energy, so it is only meaningful for runs
// without perturbation.
type EnergyDrift struct {
	name          string
	sim           physics.Hamiltonian
	initialEnergy float64
	maxDrift      float64
	samples       int
}

func NewEnergyDrift(sim physics.Simulator) *EnergyDrift {
	h, _ := sim.(physics.Hamiltonian)
	return &EnergyDrift{name: "energy_drift", sim: h}
}

func (e *EnergyDrift) Name() string { return e.name }

func (e *EnergyDrift) Observe(p *field.Pair) {
	if e.sim == nil {
		return
	}
	energy := e.sim.Energy(p)
	if e.samples == 0 {
		e.initialEnergy = energy
	}
	e.samples++

	if e.initialEnergy != 0 {
		drift := math.Abs(energy-e.initialEnergy) / math.Abs(e.initialEnergy)
		e.maxDrift = math.Max(e.maxDrift, drift)
	}
}

func (e *EnergyDrift) Value() float64 { return e.maxDrift }

func (e *EnergyDrift) Reset() {
	e.initialEnergy = 0
	e.maxDrift = 0
	e.samples = 0
}
