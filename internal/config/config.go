package config

import (
	"fmt"
	"math/rand/v2"
	"os"

	"github.com/san-kum/swarmform/internal/particle"
	"github.com/san-kum/swarmform/internal/shape"
	"gopkg.in/yaml.v3"
)

const (
	DefaultFPS         = 60
	DefaultTicks       = 600
	DefaultToggleEvery = 240
	DefaultTheme       = "evergreen"
)

type Config struct {
	Particles      int           `yaml:"particles"`
	Stiffness      float64       `yaml:"stiffness"`
	Damping        float64       `yaml:"damping"`
	ExplosionForce float64       `yaml:"explosion_force"`
	AngularDamping float64       `yaml:"angular_damping"`
	SpinImpulse    float64       `yaml:"spin_impulse"`
	FormedScale    float64       `yaml:"formed_scale"`
	ScatteredScale float64       `yaml:"scattered_scale"`
	Workers        int           `yaml:"workers"`
	Seed           uint64        `yaml:"seed"`
	FPS            int           `yaml:"fps"`
	Ticks          int           `yaml:"ticks"`
	ToggleEvery    int           `yaml:"toggle_every"`
	Palette        PaletteConfig `yaml:"palette"`
	Theme          string        `yaml:"theme"`
}

type PaletteConfig struct {
	Base   string `yaml:"base"`
	Accent string `yaml:"accent"`
}

func DefaultConfig() *Config {
	return &Config{
		Particles:      particle.DefaultCount,
		Stiffness:      particle.DefaultStiffness,
		Damping:        particle.DefaultDamping,
		ExplosionForce: particle.DefaultExplosionForce,
		AngularDamping: particle.DefaultAngularDamping,
		SpinImpulse:    particle.DefaultSpinImpulse,
		FormedScale:    particle.DefaultFormedScale,
		ScatteredScale: particle.DefaultScatteredScale,
		Workers:        particle.DefaultWorkers,
		FPS:            DefaultFPS,
		Ticks:          DefaultTicks,
		ToggleEvery:    DefaultToggleEvery,
		Palette: PaletteConfig{
			Base:   shape.DefaultBaseHex,
			Accent: shape.DefaultAccentHex,
		},
		Theme: DefaultTheme,
	}
}

// Load reads a YAML file on top of the defaults, so partial files are fine.
func Load(path string) (*Config, error) {
	return LoadWith(path, DefaultConfig())
}

// LoadWith reads a YAML file on top of base. Keys missing from the file keep
// base's values.
func LoadWith(path string, base *Config) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := *base
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Params converts the engine part of the config and validates it.
func (c *Config) Params() (particle.Params, error) {
	palette, err := shape.ParsePalette(c.Palette.Base, c.Palette.Accent)
	if err != nil {
		return particle.Params{}, fmt.Errorf("%w: %v", particle.ErrInvalidParams, err)
	}
	p := particle.Params{
		Count:          c.Particles,
		Stiffness:      c.Stiffness,
		Damping:        c.Damping,
		ExplosionForce: c.ExplosionForce,
		AngularDamping: c.AngularDamping,
		SpinImpulse:    c.SpinImpulse,
		FormedScale:    c.FormedScale,
		ScatteredScale: c.ScatteredScale,
		Workers:        c.Workers,
		Palette:        palette,
	}
	if err := p.Validate(); err != nil {
		return particle.Params{}, err
	}
	return p, nil
}

// Validate checks the driver settings as well as the engine parameters.
func (c *Config) Validate() error {
	if _, err := c.Params(); err != nil {
		return err
	}
	if c.FPS <= 0 {
		return fmt.Errorf("fps must be positive, got %d", c.FPS)
	}
	if c.Ticks < 0 {
		return fmt.Errorf("ticks must be non-negative, got %d", c.Ticks)
	}
	if c.ToggleEvery < 0 {
		return fmt.Errorf("toggle_every must be non-negative, got %d", c.ToggleEvery)
	}
	return nil
}

// NewEngine builds an engine from the config. A zero seed is replaced by a
// random one and written back so the run can be reproduced.
func (c *Config) NewEngine() (*particle.Engine, error) {
	params, err := c.Params()
	if err != nil {
		return nil, err
	}
	if c.Seed == 0 {
		c.Seed = rand.Uint64()
	}
	return particle.New(params, rand.New(rand.NewPCG(c.Seed, c.Seed+1)))
}
