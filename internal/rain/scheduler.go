// Package rain decides when and where raindrops hit the surface.
package rain

import (
	"errors"
	"fmt"
	"math"
	"math/rand"

	"github.com/san-kum/puddle/internal/field"
)

// Default drop distribution: magnitude uniform in [0.5, 4], sign negative
// with probability one half. Values above the mapper's max displacement
// saturate the palette at the point of impact, which reads as a splash.
const (
	DefaultMinMagnitude   = 0.5
	DefaultMaxMagnitude   = 4.0
	DefaultNegativeChance = 0.5
	DefaultIntensity      = 7.0

	// MaxWaitBound caps the wait bound for vanishing intensities.
	MaxWaitBound = math.MaxInt32
)

var ErrDropRange = errors.New("rain: invalid drop magnitude range")

// Event is a single raindrop in padded grid coordinates.
type Event struct {
	Row, Col  int
	Magnitude float64
}

type Drops struct {
	MinMagnitude   float64
	MaxMagnitude   float64
	NegativeChance float64
}

func DefaultDrops() Drops {
	return Drops{
		MinMagnitude:   DefaultMinMagnitude,
		MaxMagnitude:   DefaultMaxMagnitude,
		NegativeChance: DefaultNegativeChance,
	}
}

func (d Drops) Validate() error {
	if d.MinMagnitude < 0 || d.MaxMagnitude < d.MinMagnitude || d.MaxMagnitude == 0 {
		return fmt.Errorf("%w: [%g, %g]", ErrDropRange, d.MinMagnitude, d.MaxMagnitude)
	}
	if d.NegativeChance < 0 || d.NegativeChance > 1 {
		return fmt.Errorf("%w: negative chance %g", ErrDropRange, d.NegativeChance)
	}
	return nil
}

// Scheduler counts frames toward a randomly drawn wait and fires a drop when
// the wait is reached. A fresh wait is drawn after every drop.
type Scheduler struct {
	rng       *rand.Rand
	frameRate int
	intensity float64
	drops     Drops
	count     int
	wait      int
}

func NewScheduler(rng *rand.Rand, frameRate int, intensity float64, drops Drops) (*Scheduler, error) {
	if frameRate <= 0 {
		return nil, fmt.Errorf("rain: frame rate must be positive, got %d", frameRate)
	}
	if intensity <= 0 || math.IsNaN(intensity) {
		return nil, fmt.Errorf("rain: intensity must be positive, got %g", intensity)
	}
	if err := drops.Validate(); err != nil {
		return nil, err
	}
	s := &Scheduler{
		rng:       rng,
		frameRate: frameRate,
		intensity: math.Min(intensity, float64(10*frameRate)),
		drops:     drops,
	}
	s.wait = s.drawWait()
	return s, nil
}

// Intensity is the effective intensity after clamping to 10×frameRate.
func (s *Scheduler) Intensity() float64 { return s.intensity }

// WaitBound is the exclusive upper bound of the wait distribution in frames,
// capped at MaxWaitBound.
func (s *Scheduler) WaitBound() int {
	b := float64(s.frameRate) * 10 / s.intensity
	if b > MaxWaitBound {
		return MaxWaitBound
	}
	return max(1, int(b))
}

// MeanWait is the expected number of frames between drops.
func (s *Scheduler) MeanWait() float64 {
	return float64(s.WaitBound()-1)/2 + 1
}

func (s *Scheduler) drawWait() int {
	return s.rng.Intn(s.WaitBound())
}

// MaybePerturb advances the frame counter and, when the wait is reached,
// drops a raindrop on a random interior cell of g.
func (s *Scheduler) MaybePerturb(g *field.Grid) (Event, bool) {
	if s.count < s.wait {
		s.count++
		return Event{}, false
	}
	s.count = 0
	s.wait = s.drawWait()

	ev := Event{
		Row:       1 + s.rng.Intn(g.Rows()),
		Col:       1 + s.rng.Intn(g.Cols()),
		Magnitude: s.magnitude(),
	}
	Drop(g, ev)
	return ev, true
}

func (s *Scheduler) magnitude() float64 {
	d := s.drops
	m := d.MinMagnitude + s.rng.Float64()*(d.MaxMagnitude-d.MinMagnitude)
	if s.rng.Float64() < d.NegativeChance {
		m = -m
	}
	return m
}

// Drop adds ev to g. Events outside the interior are ignored.
func Drop(g *field.Grid, ev Event) bool {
	if !g.Interior(ev.Row, ev.Col) {
		return false
	}
	g.Add(ev.Row, ev.Col, ev.Magnitude)
	return true
}
