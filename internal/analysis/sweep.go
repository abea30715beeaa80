package analysis

import (
	"context"
	"sync"

	"github.com/san-kum/puddle/internal/config"
)

type SweepResult struct {
	Damping     float64
	Dominant    float64
	FinalEnergy float64
	DecayRate   float64
	Drops       int
}

// Sweep records one run per damping value, concurrently. Every run shares
// base's seed, so only the damping differs between them.
func Sweep(ctx context.Context, base *config.Config, dampings []float64, rows, cols, frames, settle int) ([]SweepResult, error) {
	results := make([]SweepResult, len(dampings))
	errs := make([]error, len(dampings))

	var wg sync.WaitGroup
	for i, d := range dampings {
		wg.Add(1)
		go func(idx int, damping float64) {
			defer wg.Done()
			if err := ctx.Err(); err != nil {
				errs[idx] = err
				return
			}

			cfg := *base
			cfg.Damping = damping
			if err := cfg.Validate(); err != nil {
				errs[idx] = err
				return
			}

			tr, engine, err := Record(&cfg, rows, cols, frames, nil)
			if err != nil {
				errs[idx] = err
				return
			}
			freq, _ := tr.Spectrum().Dominant()
			results[idx] = SweepResult{
				Damping:     damping,
				Dominant:    freq,
				FinalEnergy: engine.Energy(),
				Drops:       engine.Drops(),
				DecayRate:   DecayRate(engine.Simulator(), engine.Pair(), damping, settle),
			}
		}(i, d)
	}

	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	return results, nil
}
