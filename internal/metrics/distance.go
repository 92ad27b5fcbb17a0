package metrics

import "github.com/san-kum/swarmform/internal/particle"

// DefaultSettleRadius is how close to its target a particle must be to count
// as settled.
const DefaultSettleRadius = 0.5

// TargetDistance is the mean |target - position| at the last observation.
type TargetDistance struct {
	name string
	last float64
}

func NewTargetDistance() *TargetDistance {
	return &TargetDistance{name: "target_distance"}
}

func (d *TargetDistance) Name() string { return d.name }

func (d *TargetDistance) Observe(v particle.View) {
	sum := 0.0
	n := each(v, func(p particle.Particle) {
		sum += p.Target.Sub(p.Position).Len()
	})
	d.last = mean(sum, n)
}

func (d *TargetDistance) Value() float64 { return d.last }
func (d *TargetDistance) Reset()         { d.last = 0 }

// Settled is the fraction of particles within radius of their target.
type Settled struct {
	name   string
	radius float64
	last   float64
}

func NewSettled(radius float64) *Settled {
	return &Settled{name: "settled", radius: radius}
}

func (s *Settled) Name() string { return s.name }

func (s *Settled) Observe(v particle.View) {
	inside := 0
	n := each(v, func(p particle.Particle) {
		if p.Target.Sub(p.Position).Len() <= s.radius {
			inside++
		}
	})
	s.last = mean(float64(inside), n)
}

func (s *Settled) Value() float64 { return s.last }
func (s *Settled) Reset()         { s.last = 0 }
