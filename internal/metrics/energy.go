package metrics

import "github.com/san-kum/swarmform/internal/particle"

// KineticEnergy is the mean ½|v|² per particle at the last observation
// (unit mass).
type KineticEnergy struct {
	name string
	last float64
}

func NewKineticEnergy() *KineticEnergy {
	return &KineticEnergy{name: "kinetic_energy"}
}

func (k *KineticEnergy) Name() string { return k.name }

func (k *KineticEnergy) Observe(v particle.View) {
	sum := 0.0
	n := each(v, func(p particle.Particle) {
		sum += 0.5 * p.Velocity.Dot(p.Velocity)
	})
	k.last = mean(sum, n)
}

func (k *KineticEnergy) Value() float64 { return k.last }
func (k *KineticEnergy) Reset()         { k.last = 0 }

// Spin is the mean angular speed at the last observation.
type Spin struct {
	name string
	last float64
}

func NewSpin() *Spin {
	return &Spin{name: "spin"}
}

func (s *Spin) Name() string { return s.name }

func (s *Spin) Observe(v particle.View) {
	sum := 0.0
	n := each(v, func(p particle.Particle) {
		sum += p.AngularVelocity.Len()
	})
	s.last = mean(sum, n)
}

func (s *Spin) Value() float64 { return s.last }
func (s *Spin) Reset()         { s.last = 0 }

func mean(sum float64, n int) float64 {
	if n == 0 {
		return 0
	}
	return sum / float64(n)
}
