package config

import (
	"errors"
	"fmt"
	"math"
	"os"

	"github.com/san-kum/puddle/internal/palette"
	"github.com/san-kum/puddle/internal/physics"
	"github.com/san-kum/puddle/internal/rain"
	"gopkg.in/yaml.v3"
)

const (
	DefaultDamping         = 0.95
	DefaultIntensity       = rain.DefaultIntensity
	DefaultPalette         = "blue"
	DefaultSimulator       = "stencil"
	DefaultStencil         = "smooth"
	DefaultFrameRate       = 30
	DefaultMaxDisplacement = 1.0
	DefaultCellWidth       = 2
)

var ErrInvalid = errors.New("config: invalid value")

type Config struct {
	Damping         float64          `yaml:"damping"`
	Intensity       float64          `yaml:"intensity"`
	Palette         string           `yaml:"palette"`
	Simulator       string           `yaml:"simulator"`
	Stencil         string           `yaml:"stencil"`
	FrameRate       int              `yaml:"frame_rate"`
	MaxDisplacement float64          `yaml:"max_displacement"`
	CellWidth       int              `yaml:"cell_width"`
	Fallback        bool             `yaml:"fallback"`
	Seed            int64            `yaml:"seed"`
	Drop            DropConfig       `yaml:"drop"`
	Spring          SpringConfig     `yaml:"spring"`
	Oscillator      OscillatorConfig `yaml:"oscillator"`
}

type DropConfig struct {
	MinMagnitude   float64 `yaml:"min_magnitude"`
	MaxMagnitude   float64 `yaml:"max_magnitude"`
	NegativeChance float64 `yaml:"negative_chance"`
}

type SpringConfig struct {
	Stiffness float64 `yaml:"stiffness"`
	TimeStep  float64 `yaml:"time_step"`
	Substeps  int     `yaml:"substeps"`
}

type OscillatorConfig struct {
	Frequency    float64 `yaml:"frequency"`
	DampingRatio float64 `yaml:"damping_ratio"`
}

func DefaultConfig() *Config {
	return &Config{
		Damping:         DefaultDamping,
		Intensity:       DefaultIntensity,
		Palette:         DefaultPalette,
		Simulator:       DefaultSimulator,
		Stencil:         DefaultStencil,
		FrameRate:       DefaultFrameRate,
		MaxDisplacement: DefaultMaxDisplacement,
		CellWidth:       DefaultCellWidth,
		Fallback:        true,
		Drop: DropConfig{
			MinMagnitude:   rain.DefaultMinMagnitude,
			MaxMagnitude:   rain.DefaultMaxMagnitude,
			NegativeChance: rain.DefaultNegativeChance,
		},
		Spring: SpringConfig{
			Stiffness: physics.DefaultStiffness,
			TimeStep:  physics.DefaultTimeStep,
			Substeps:  physics.DefaultSubsteps,
		},
		Oscillator: OscillatorConfig{
			Frequency:    physics.DefaultFrequency,
			DampingRatio: physics.DefaultDampingRatio,
		},
	}
}

func Load(path string) (*Config, error) {
	return LoadInto(path, DefaultConfig())
}

// LoadInto decodes the file at path over cfg; keys absent from the file keep
// their current values.
func LoadInto(path string, cfg *Config) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Validate checks every field independently and reports the first problem.
func (c *Config) Validate() error {
	switch {
	case math.IsNaN(c.Damping) || c.Damping <= 0 || c.Damping > 1:
		return fmt.Errorf("%w: damping must be in (0, 1], got %g", ErrInvalid, c.Damping)
	case math.IsNaN(c.Intensity) || c.Intensity <= 0:
		return fmt.Errorf("%w: intensity must be positive, got %g", ErrInvalid, c.Intensity)
	case c.FrameRate < 1 || c.FrameRate > 120:
		return fmt.Errorf("%w: frame rate out of range (1-120), got %d", ErrInvalid, c.FrameRate)
	case math.IsNaN(c.MaxDisplacement) || c.MaxDisplacement <= 0:
		return fmt.Errorf("%w: max displacement must be positive, got %g", ErrInvalid, c.MaxDisplacement)
	case c.CellWidth < 1 || c.CellWidth > 4:
		return fmt.Errorf("%w: cell width out of range (1-4), got %d", ErrInvalid, c.CellWidth)
	}
	if _, err := palette.Parse(c.Palette); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	if err := c.Drops().Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	opts, err := c.PhysicsOptions()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	if _, err := physics.New(c.Simulator, opts); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	return nil
}

func (c *Config) Drops() rain.Drops {
	return rain.Drops{
		MinMagnitude:   c.Drop.MinMagnitude,
		MaxMagnitude:   c.Drop.MaxMagnitude,
		NegativeChance: c.Drop.NegativeChance,
	}
}

func (c *Config) PhysicsOptions() (physics.Options, error) {
	w, err := physics.ParseWeights(c.Stencil)
	if err != nil {
		return physics.Options{}, err
	}
	return physics.Options{
		Weights:      w,
		Stiffness:    c.Spring.Stiffness,
		TimeStep:     c.Spring.TimeStep,
		Substeps:     c.Spring.Substeps,
		FrameRate:    c.FrameRate,
		Frequency:    c.Oscillator.Frequency,
		DampingRatio: c.Oscillator.DampingRatio,
	}, nil
}
