package config

import (
	"fmt"
	"sort"
)

func solar() *Config {
	return &Config{
		Name:    "solar",
		Physics: DefaultPhysics(),
		Camera:  DefaultCamera(),
		Bodies: []BodyConfig{
			{Name: "Sun", Mass: 330000, Color: "yellow", Radius: 40, Static: true},
			{Name: "Mercury", Mass: 0.055, DistanceAU: 0.39, Color: "gray", Radius: 6},
			{Name: "Venus", Mass: 0.815, DistanceAU: 0.72, Color: "orange", Radius: 10},
			{Name: "Earth", Mass: 1.0, DistanceAU: 1.0, Color: "blue", Radius: 11},
			{Name: "Mars", Mass: 0.107, DistanceAU: 1.52, Color: "red", Radius: 8},
			{Name: "Jupiter", Mass: 317.8, DistanceAU: 5.2, Color: "brown", Radius: 28},
		},
	}
}

func inner() *Config {
	cfg := solar()
	cfg.Name = "inner"
	cfg.Bodies = cfg.Bodies[:5]
	cfg.Camera.Zoom = 1.2
	return cfg
}

// comet adds a body on an eccentric orbit with an explicit launch velocity.
func comet() *Config {
	cfg := inner()
	cfg.Name = "comet"
	cfg.Bodies = append(cfg.Bodies, BodyConfig{
		Name:       "Comet",
		Mass:       1e-3,
		DistanceAU: 2.5,
		Velocity:   []float64{0, 0.12},
		Color:      "cyan",
		Radius:     4,
	})
	cfg.Camera.Zoom = 0.7
	return cfg
}

// wobble lets the sun move, so Jupiter visibly tugs it around.
func wobble() *Config {
	cfg := solar()
	cfg.Name = "wobble"
	cfg.Bodies[0].Static = false
	cfg.Bodies[5].Mass = 30000
	return cfg
}

var Presets = map[string]func() *Config{
	"solar":  solar,
	"inner":  inner,
	"comet":  comet,
	"wobble": wobble,
}

// GetPreset returns a fresh copy of the named preset.
func GetPreset(name string) (*Config, error) {
	fn, ok := Presets[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s (available: %v)", ErrUnknownPreset, name, ListPresets())
	}
	return fn(), nil
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
