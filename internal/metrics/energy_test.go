package metrics

import (
	"math"
	"testing"

	"github.com/san-kum/puddle/internal/field"
	"github.com/san-kum/puddle/internal/physics"
)

func TestDisplacement(t *testing.T) {
	p, _ := field.NewPair(4, 4)
	p.Current.Set(1, 1, -2)
	p.Current.Set(3, 3, 1)

	m := NewDisplacement()
	m.Observe(p)
	if m.Value() != 3 {
		t.Errorf("expected 3, got %f", m.Value())
	}

	p.Current.Clear()
	m.Observe(p)
	if m.Value() != 0 || m.Peak() != 3 {
		t.Errorf("expected value 0 and peak 3, got %f / %f", m.Value(), m.Peak())
	}

	m.Reset()
	if m.Peak() != 0 {
		t.Error("expected zero peak after reset")
	}
}

func TestEnergyDrift_Stencil(t *testing.T) {
	sim, _ := physics.NewStencil(physics.WeightsSmooth)
	p, _ := field.NewPair(10, 10)
	p.Current.Set(5, 5, 10)

	drift := NewEnergyDrift(sim)
	energy := NewEnergy(sim)
	for i := 0; i < 100; i++ {
		drift.Observe(p)
		sim.Step(p, 1.0)
	}
	energy.Observe(p)

	if drift.Value() > 1e-9 {
		t.Errorf("lossless stencil drifted by %e", drift.Value())
	}
	if math.Abs(energy.Value()-100) > 1e-6 {
		t.Errorf("expected energy 100, got %f", energy.Value())
	}

	drift.Reset()
	if drift.Value() != 0 {
		t.Error("expected zero drift after reset")
	}
}

func TestSaturation(t *testing.T) {
	p, _ := field.NewPair(3, 3)
	s := NewSaturation(1)

	s.Observe(p)
	p.Current.Set(2, 2, -1.5)
	s.Observe(p)

	if s.Value() != 0.5 {
		t.Errorf("expected 0.5, got %f", s.Value())
	}
}

func TestHistory(t *testing.T) {
	h := NewHistory(3)
	for i := 1; i <= 5; i++ {
		h.Push(float64(i))
	}
	got := h.Values()
	if len(got) != 3 || got[0] != 3 || got[2] != 5 {
		t.Errorf("expected [3 4 5], got %v", got)
	}
	if h.Last() != 5 {
		t.Errorf("expected last 5, got %f", h.Last())
	}
}
