package config

import "sort"

const (
	SunMass = 1.988416e30
	AU      = 1.495978707e11
)

// planet places a body at (0, distance) moving along +x, matching the layout
// the dataset loader uses.
func planet(name string, mass, distance, speed float64) BodyConfig {
	return BodyConfig{
		Name:     name,
		Position: [2]float64{0, distance},
		Velocity: [2]float64{speed, 0},
		Mass:     mass,
	}
}

var sun = BodyConfig{Name: "Sun", Mass: SunMass}

var Presets = map[string]*Config{
	"sun_earth": {
		Integrator: "leapfrog", Factor: 1, BaseDt: DefaultBaseDt, Ticks: 365,
		RecordEvery: 1, Scale: 5e9,
		Bodies: []BodyConfig{
			planet("Earth", 5.9722e24, AU, 29.8e3),
			sun,
		},
	},
	"inner": {
		Integrator: "leapfrog", Factor: 1, BaseDt: DefaultBaseDt, Ticks: 687,
		RecordEvery: 1, Scale: 8e9,
		Bodies: []BodyConfig{
			sun,
			planet("Mercury", 0.330e24, 57.9e9, 47.4e3),
			planet("Venus", 4.87e24, 108.2e9, 35.0e3),
			planet("Earth", 5.97e24, 149.6e9, 29.8e3),
			planet("Mars", 0.642e24, 228.0e9, 24.1e3),
		},
	},
	"outer": {
		Integrator: "leapfrog", Factor: 8, BaseDt: DefaultBaseDt, Ticks: 2000,
		RecordEvery: 8, Scale: 1.6e11,
		Bodies: []BodyConfig{
			sun,
			planet("Jupiter", 1898e24, 778.5e9, 13.1e3),
			planet("Saturn", 568e24, 1432.0e9, 9.7e3),
			planet("Uranus", 86.8e24, 2867.0e9, 6.8e3),
			planet("Neptune", 102e24, 4515.0e9, 5.4e3),
		},
	},
	"binary": {
		Integrator: "leapfrog", Factor: 1, BaseDt: DefaultBaseDt / 4, Ticks: 2000,
		RecordEvery: 4, Scale: 5e9,
		Bodies: []BodyConfig{
			{Name: "A", Position: [2]float64{-0.5 * AU, 0}, Velocity: [2]float64{0, -21.0e3}, Mass: SunMass},
			{Name: "B", Position: [2]float64{0.5 * AU, 0}, Velocity: [2]float64{0, 21.0e3}, Mass: SunMass},
		},
	},
}

// GetPreset returns a copy of the named preset, or nil.
func GetPreset(name string) *Config {
	p, ok := Presets[name]
	if !ok {
		return nil
	}
	cfg := *p
	cfg.Bodies = append([]BodyConfig(nil), p.Bodies...)
	return &cfg
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
