package analysis

import (
	"fmt"
	"log"

	"github.com/san-kum/puddle/internal/config"
	"github.com/san-kum/puddle/internal/metrics"
	"github.com/san-kum/puddle/internal/puddle"
)

// Trace holds per-frame series from a headless run.
type Trace struct {
	FrameRate          int
	ProbeRow, ProbeCol int
	Energy             []float64
	Displacement       []float64
	Probe              []float64
	// Saturation is the fraction of frames with a cell beyond the palette's
	// saturating displacement.
	Saturation float64
}

// Record runs cfg for frames frames on a rows x cols surface and samples
// the center cell. The engine is returned so callers can keep measuring the
// final field.
func Record(cfg *config.Config, rows, cols, frames int, logger *log.Logger) (*Trace, *puddle.Engine, error) {
	if frames < 1 {
		return nil, nil, fmt.Errorf("frames must be positive, got %d", frames)
	}
	surface := puddle.NewHeadless(rows, cols, 1<<24)
	engine, err := puddle.New(puddle.Options{Config: cfg, Surface: surface, Logger: logger})
	if err != nil {
		return nil, nil, err
	}
	if engine.ResizePending() {
		return nil, nil, fmt.Errorf("cannot record on a %dx%d surface", rows, cols)
	}
	saturation := metrics.NewSaturation(cfg.MaxDisplacement)
	engine.AddMetric(saturation)

	tr := &Trace{
		FrameRate:    cfg.FrameRate,
		ProbeRow:     rows/2 + 1,
		ProbeCol:     cols/2 + 1,
		Energy:       make([]float64, 0, frames),
		Displacement: make([]float64, 0, frames),
		Probe:        make([]float64, 0, frames),
	}
	for i := 0; i < frames; i++ {
		engine.Step()
		tr.Energy = append(tr.Energy, engine.Energy())
		tr.Displacement = append(tr.Displacement, engine.Displacement())
		tr.Probe = append(tr.Probe, engine.Pair().Current.At(tr.ProbeRow, tr.ProbeCol))
	}
	tr.Saturation = saturation.Value()
	return tr, engine, nil
}

// Spectrum is the power spectrum of the probe series.
func (t *Trace) Spectrum() Spectrum {
	return PowerSpectrum(t.Probe, float64(t.FrameRate))
}
