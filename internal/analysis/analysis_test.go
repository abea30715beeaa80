package analysis

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/san-kum/puddle/internal/config"
	"github.com/san-kum/puddle/internal/field"
	"github.com/san-kum/puddle/internal/physics"
)

func TestPowerSpectrumDominant(t *testing.T) {
	const rate, n, freq = 64.0, 256, 3.0
	samples := make([]float64, n)
	for i := range samples {
		samples[i] = 2 + math.Sin(2*math.Pi*freq*float64(i)/rate)
	}

	s := PowerSpectrum(samples, rate)
	if len(s.Power) != n/2+1 {
		t.Fatalf("expected %d bins, got %d", n/2+1, len(s.Power))
	}
	f, p := s.Dominant()
	if f != freq {
		t.Errorf("dominant frequency = %f, want %f", f, freq)
	}
	if p <= 0 {
		t.Error("dominant power should be positive")
	}
	if s.Power[0] > p*1e-2 {
		t.Errorf("mean should be removed, DC power %g", s.Power[0])
	}
}

func TestPowerSpectrumShort(t *testing.T) {
	if s := PowerSpectrum([]float64{1}, 30); len(s.Power) != 0 {
		t.Error("a single sample has no spectrum")
	}
	if f, p := (Spectrum{}).Dominant(); f != 0 || p != 0 {
		t.Error("empty spectrum should report zero")
	}
}

func TestDecayRateMatchesDamping(t *testing.T) {
	sim, err := physics.NewStencil(physics.WeightsSmooth)
	if err != nil {
		t.Fatal(err)
	}
	p, err := field.NewPair(24, 24)
	if err != nil {
		t.Fatal(err)
	}
	p.Current.Set(12, 12, 3)
	p.Current.Set(5, 18, -2)
	for i := 0; i < 20; i++ {
		sim.Step(p, 1)
	}

	const damping = 0.95
	rate := DecayRate(sim, p, damping, 300)
	want := math.Log(damping)
	if math.Abs(rate-want) > 0.25*math.Abs(want) {
		t.Errorf("decay rate = %f, want about %f", rate, want)
	}
}

func TestDrift(t *testing.T) {
	sim, _ := physics.NewStencil(physics.WeightsCross)
	p, _ := field.NewPair(12, 12)
	p.Current.Set(6, 6, 2)
	before := p.Current.Clone()

	if d := Drift(sim, p, 200); d > 1e-9 {
		t.Errorf("stencil drift without damping = %g", d)
	}
	for i, v := range before.Cells() {
		if p.Current.Cells()[i] != v {
			t.Fatal("drift must not touch the pair")
		}
	}
}

func TestDecayRateCalm(t *testing.T) {
	sim, _ := physics.NewStencil(physics.WeightsSmooth)
	p, _ := field.NewPair(4, 4)
	if !math.IsNaN(DecayRate(sim, p, 0.9, 50)) {
		t.Error("a calm field has no measurable decay")
	}
}

func TestRecord(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Seed = 11
	cfg.Intensity = 60

	tr, engine, err := Record(cfg, 20, 30, 256, nil)
	if err != nil {
		t.Fatalf("record: %v", err)
	}
	if len(tr.Energy) != 256 || len(tr.Probe) != 256 || len(tr.Displacement) != 256 {
		t.Fatalf("unexpected trace lengths %d %d %d", len(tr.Energy), len(tr.Probe), len(tr.Displacement))
	}
	if engine.Frames() != 256 || engine.Drops() == 0 {
		t.Errorf("frames=%d drops=%d", engine.Frames(), engine.Drops())
	}
	if tr.Saturation <= 0 || tr.Saturation > 1 {
		t.Errorf("heavy rain should saturate some frames, got %f", tr.Saturation)
	}
	if tr.ProbeRow != 11 || tr.ProbeCol != 16 {
		t.Errorf("probe at %d,%d", tr.ProbeRow, tr.ProbeCol)
	}

	s := tr.Spectrum()
	if f, _ := s.Dominant(); f <= 0 || f > float64(cfg.FrameRate)/2 {
		t.Errorf("dominant frequency %f outside (0, nyquist]", f)
	}
}

func TestRecordRejectsBadInput(t *testing.T) {
	cfg := config.DefaultConfig()
	if _, _, err := Record(cfg, 10, 10, 0, nil); err == nil {
		t.Error("expected error for zero frames")
	}
	if _, _, err := Record(cfg, 0, 10, 10, nil); err == nil {
		t.Error("expected error for an empty surface")
	}
}

func TestSweep(t *testing.T) {
	base := config.DefaultConfig()
	base.Seed = 9
	base.Intensity = 40
	dampings := []float64{0.9, 0.97}

	results, err := Sweep(context.Background(), base, dampings, 16, 16, 120, 200)
	if err != nil {
		t.Fatalf("sweep: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	for i, r := range results {
		if r.Damping != dampings[i] {
			t.Errorf("result %d has damping %f", i, r.Damping)
		}
	}
	if results[0].Drops != results[1].Drops {
		t.Error("runs share a seed, so rain should match")
	}
	if !(results[0].DecayRate < results[1].DecayRate) {
		t.Errorf("stronger damping should decay faster: %f vs %f", results[0].DecayRate, results[1].DecayRate)
	}
	if base.Damping != config.DefaultDamping {
		t.Error("sweep must not modify the base config")
	}

	if _, err := Sweep(context.Background(), base, []float64{1.5}, 8, 8, 10, 10); !errors.Is(err, config.ErrInvalid) {
		t.Errorf("invalid damping: %v", err)
	}
}
