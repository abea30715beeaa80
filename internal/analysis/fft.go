package analysis

import (
	"math/cmplx"

	"github.com/mjibson/go-dsp/fft"
	"github.com/mjibson/go-dsp/window"
)

// Spectrum is a one-sided power spectrum. Frequencies are in cycles per
// second when the sample rate is in frames per second.
type Spectrum struct {
	Frequencies []float64
	Power       []float64
}

// PowerSpectrum removes the mean from samples, applies a Hann window and
// returns |X(k)|²/n for k in [0, n/2].
func PowerSpectrum(samples []float64, sampleRate float64) Spectrum {
	n := len(samples)
	if n < 2 {
		return Spectrum{}
	}

	mean := 0.0
	for _, v := range samples {
		mean += v
	}
	mean /= float64(n)

	x := make([]float64, n)
	for i, v := range samples {
		x[i] = v - mean
	}
	window.Apply(x, window.Hann)

	coeffs := fft.FFTReal(x)
	half := n/2 + 1
	s := Spectrum{
		Frequencies: make([]float64, half),
		Power:       make([]float64, half),
	}
	for k := 0; k < half; k++ {
		a := cmplx.Abs(coeffs[k])
		s.Frequencies[k] = float64(k) * sampleRate / float64(n)
		s.Power[k] = a * a / float64(n)
	}
	return s
}

// Dominant returns the strongest non-DC bin.
func (s Spectrum) Dominant() (freq, power float64) {
	best := -1
	for k := 1; k < len(s.Power); k++ {
		if best < 0 || s.Power[k] > s.Power[best] {
			best = k
		}
	}
	if best < 0 {
		return 0, 0
	}
	return s.Frequencies[best], s.Power[best]
}
