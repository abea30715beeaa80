package config

import "sort"

var Presets = map[string]*Config{
	"drizzle": preset(func(c *Config) {
		c.Intensity = 2
		c.Damping = 0.97
	}),
	"storm": preset(func(c *Config) {
		c.Intensity = 60
		c.Damping = 0.9
		c.Drop.MaxMagnitude = 6
	}),
	"mirror": preset(func(c *Config) {
		c.Intensity = 1
		c.Damping = 1.0
		c.Palette = "grey"
		c.Drop.MaxMagnitude = 1.5
	}),
	"jelly": preset(func(c *Config) {
		c.Simulator = "spring"
		c.Damping = 0.98
		c.Intensity = 4
	}),
	"pond": preset(func(c *Config) {
		c.Simulator = "oscillator"
		c.Damping = 0.99
		c.Palette = "mono"
	}),
}

var presetInfo = map[string]string{
	"drizzle": "light rain, long-lived rings",
	"storm":   "heavy rain, short memory",
	"mirror":  "lossless surface in greyscale",
	"jelly":   "mass-spring lattice",
	"pond":    "harmonic oscillators in glyphs",
}

// Describe returns a one-line summary of the named preset.
func Describe(name string) string { return presetInfo[name] }

func preset(apply func(*Config)) *Config {
	c := DefaultConfig()
	apply(c)
	return c
}

// GetPreset returns a copy of the named preset, or nil.
func GetPreset(name string) *Config {
	cfg, ok := Presets[name]
	if !ok {
		return nil
	}
	c := *cfg
	return &c
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
