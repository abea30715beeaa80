package analysis

import (
	"math"

	"github.com/san-kum/puddle/internal/field"
	"github.com/san-kum/puddle/internal/metrics"
	"github.com/san-kum/puddle/internal/physics"
)

// DecayRate steps sim on p without rain and fits ln E(n) = a + r·n by least
// squares. It returns r, the per-frame log decay of the energy. Frames whose
// energy is not positive are skipped. A simulator without an energy
// measure, or too few usable frames, yields NaN.
func DecayRate(sim physics.Simulator, p *field.Pair, damping float64, steps int) float64 {
	h, ok := sim.(physics.Hamiltonian)
	if !ok {
		return math.NaN()
	}

	var sx, sy, sxx, sxy, n float64
	for i := 0; i < steps; i++ {
		sim.Step(p, damping)
		e := h.Energy(p)
		if e <= 0 || math.IsNaN(e) || math.IsInf(e, 0) {
			continue
		}
		x, y := float64(i), math.Log(e)
		sx += x
		sy += y
		sxx += x * x
		sxy += x * y
		n++
	}

	den := n*sxx - sx*sx
	if n < 2 || den == 0 {
		return math.NaN()
	}
	return (n*sxy - sx*sy) / den
}

// Drift runs a copy of p without damping and reports the largest relative
// energy deviation. p itself is left untouched.
func Drift(sim physics.Simulator, p *field.Pair, steps int) float64 {
	work := &field.Pair{Current: p.Current.Clone(), Next: p.Next.Clone()}
	drift := metrics.NewEnergyDrift(sim)
	drift.Observe(work)
	for i := 0; i < steps; i++ {
		sim.Step(work, 1)
		drift.Observe(work)
	}
	return drift.Value()
}
