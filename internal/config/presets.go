package config

import "sort"

// Presets override the defaults; zero fields are filled from DefaultConfig
// by GetPreset.
var Presets = map[string]*Config{
	"default": {},
	"dense": {
		Particles: 8000, Workers: 4,
	},
	"sparse": {
		Particles: 600, ExplosionForce: 1.5,
	},
	"gentle": {
		Stiffness: 0.03, Damping: 0.95, ExplosionForce: 1.0, SpinImpulse: 0.08,
	},
	"violent": {
		Stiffness: 0.12, Damping: 0.88, ExplosionForce: 6.0, SpinImpulse: 0.6, ToggleEvery: 120,
	},
	"ember": {
		Palette: PaletteConfig{Base: "#7a1f0e", Accent: "#ffb347"}, Theme: "ember",
	},
}

// GetPreset returns a full config for name, or nil if unknown.
func GetPreset(name string) *Config {
	p, ok := Presets[name]
	if !ok {
		return nil
	}
	cfg := DefaultConfig()
	merge(cfg, p)
	return cfg
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// merge copies the non-zero fields of a preset onto dst. Presets are Go
// literals, so zero means unset.
func merge(dst, src *Config) {
	if src.Particles != 0 {
		dst.Particles = src.Particles
	}
	if src.Stiffness != 0 {
		dst.Stiffness = src.Stiffness
	}
	if src.Damping != 0 {
		dst.Damping = src.Damping
	}
	if src.ExplosionForce != 0 {
		dst.ExplosionForce = src.ExplosionForce
	}
	if src.AngularDamping != 0 {
		dst.AngularDamping = src.AngularDamping
	}
	if src.SpinImpulse != 0 {
		dst.SpinImpulse = src.SpinImpulse
	}
	if src.FormedScale != 0 {
		dst.FormedScale = src.FormedScale
	}
	if src.ScatteredScale != 0 {
		dst.ScatteredScale = src.ScatteredScale
	}
	if src.Workers != 0 {
		dst.Workers = src.Workers
	}
	if src.Seed != 0 {
		dst.Seed = src.Seed
	}
	if src.FPS != 0 {
		dst.FPS = src.FPS
	}
	if src.Ticks != 0 {
		dst.Ticks = src.Ticks
	}
	if src.ToggleEvery != 0 {
		dst.ToggleEvery = src.ToggleEvery
	}
	if src.Palette.Base != "" {
		dst.Palette.Base = src.Palette.Base
	}
	if src.Palette.Accent != "" {
		dst.Palette.Accent = src.Palette.Accent
	}
	if src.Theme != "" {
		dst.Theme = src.Theme
	}
}
