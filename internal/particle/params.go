package particle

import (
	"fmt"
	"math"

	"github.com/san-kum/swarmform/internal/shape"
)

const (
	DefaultCount          = 3000
	DefaultStiffness      = 0.08
	DefaultDamping        = 0.92
	DefaultExplosionForce = 2.5
	DefaultAngularDamping = 0.95
	DefaultSpinImpulse    = 0.25
	DefaultFormedScale    = 1.0
	DefaultScatteredScale = 0.8
	DefaultWorkers        = 1
)

// Params are fixed for the lifetime of an engine. The physics constants are
// tuned for one Step per displayed frame; there is no delta-time scaling.
type Params struct {
	Count          int
	Stiffness      float64
	Damping        float64
	ExplosionForce float64
	AngularDamping float64
	SpinImpulse    float64
	FormedScale    float64
	ScatteredScale float64
	Workers        int
	Palette        shape.Palette
}

func DefaultParams() Params {
	return Params{
		Count:          DefaultCount,
		Stiffness:      DefaultStiffness,
		Damping:        DefaultDamping,
		ExplosionForce: DefaultExplosionForce,
		AngularDamping: DefaultAngularDamping,
		SpinImpulse:    DefaultSpinImpulse,
		FormedScale:    DefaultFormedScale,
		ScatteredScale: DefaultScatteredScale,
		Workers:        DefaultWorkers,
		Palette:        shape.DefaultPalette(),
	}
}

// Validate rejects misconfiguration instead of clamping it.
func (p Params) Validate() error {
	if p.Count <= 0 {
		return fmt.Errorf("%w: particle count must be positive, got %d", ErrInvalidParams, p.Count)
	}
	if !finite(p.Stiffness) || p.Stiffness < 0 {
		return fmt.Errorf("%w: stiffness must be non-negative, got %f", ErrInvalidParams, p.Stiffness)
	}
	if !unitInterval(p.Damping) {
		return fmt.Errorf("%w: damping must be in [0, 1], got %f", ErrInvalidParams, p.Damping)
	}
	if !finite(p.ExplosionForce) || p.ExplosionForce < 0 {
		return fmt.Errorf("%w: explosion force must be non-negative, got %f", ErrInvalidParams, p.ExplosionForce)
	}
	if !unitInterval(p.AngularDamping) {
		return fmt.Errorf("%w: angular damping must be in [0, 1], got %f", ErrInvalidParams, p.AngularDamping)
	}
	if !finite(p.SpinImpulse) || p.SpinImpulse < 0 {
		return fmt.Errorf("%w: spin impulse must be non-negative, got %f", ErrInvalidParams, p.SpinImpulse)
	}
	if !finite(p.FormedScale) || p.FormedScale <= 0 || !finite(p.ScatteredScale) || p.ScatteredScale <= 0 {
		return fmt.Errorf("%w: scales must be positive, got %f/%f", ErrInvalidParams, p.FormedScale, p.ScatteredScale)
	}
	if p.Workers < 1 {
		return fmt.Errorf("%w: workers must be at least 1, got %d", ErrInvalidParams, p.Workers)
	}
	return nil
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func unitInterval(v float64) bool {
	return finite(v) && v >= 0 && v <= 1
}
