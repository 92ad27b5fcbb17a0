package particle

import (
	"errors"
	"math"
	"testing"
)

func TestDefaultParams(t *testing.T) {
	p := DefaultParams()
	if err := p.Validate(); err != nil {
		t.Fatalf("defaults rejected: %v", err)
	}
	if p.Count != 3000 || p.Stiffness != 0.08 || p.Damping != 0.92 || p.ExplosionForce != 2.5 {
		t.Errorf("unexpected defaults: %+v", p)
	}
}

func TestParamsValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Params)
	}{
		{"zero count", func(p *Params) { p.Count = 0 }},
		{"negative count", func(p *Params) { p.Count = -5 }},
		{"negative stiffness", func(p *Params) { p.Stiffness = -0.1 }},
		{"nan stiffness", func(p *Params) { p.Stiffness = math.NaN() }},
		{"damping above one", func(p *Params) { p.Damping = 1.01 }},
		{"negative damping", func(p *Params) { p.Damping = -0.1 }},
		{"negative explosion", func(p *Params) { p.ExplosionForce = -1 }},
		{"infinite explosion", func(p *Params) { p.ExplosionForce = math.Inf(1) }},
		{"angular damping above one", func(p *Params) { p.AngularDamping = 2 }},
		{"negative spin", func(p *Params) { p.SpinImpulse = -0.25 }},
		{"zero scale", func(p *Params) { p.ScatteredScale = 0 }},
		{"zero workers", func(p *Params) { p.Workers = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := DefaultParams()
			tt.mutate(&p)
			err := p.Validate()
			if !errors.Is(err, ErrInvalidParams) {
				t.Errorf("expected ErrInvalidParams, got %v", err)
			}
			if _, err := New(p, newRNG(1)); !errors.Is(err, ErrInvalidParams) {
				t.Errorf("New accepted invalid params: %v", err)
			}
		})
	}
}

func TestParamsValidate_Boundaries(t *testing.T) {
	p := DefaultParams()
	p.Stiffness = 0
	p.Damping = 1
	p.ExplosionForce = 0
	p.AngularDamping = 0
	p.SpinImpulse = 0
	if err := p.Validate(); err != nil {
		t.Errorf("boundary values rejected: %v", err)
	}
}

func TestNew_RequiresRNG(t *testing.T) {
	if _, err := New(DefaultParams(), nil); !errors.Is(err, ErrInvalidParams) {
		t.Errorf("expected ErrInvalidParams for nil rng, got %v", err)
	}
}
