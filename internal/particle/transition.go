package particle

import (
	"math/rand/v2"

	"github.com/go-gl/mathgl/mgl64"
)

// fallbackDirection is used for a particle at or vanishingly close to the
// origin.
var fallbackDirection = mgl64.Vec3{0, 1, 0}

// Transition is the two-state machine that rewrites targets. Entering
// Scattered also kicks every particle outward and reseeds its spin; entering
// Formed leaves the spring to pull particles home on its own.
type Transition struct {
	state State
	force float64
	spin  float64
	rng   *rand.Rand
}

func NewTransition(force, spin float64, rng *rand.Rand) *Transition {
	return &Transition{state: Formed, force: force, spin: spin, rng: rng}
}

func (t *Transition) State() State { return t.state }

// Toggle always flips the state and returns the new one.
func (t *Transition) Toggle(s *Store) State {
	t.enter(s, t.state.Other())
	return t.state
}

// SetState moves into next. Asking for the current state does nothing and
// returns false.
func (t *Transition) SetState(s *Store, next State) bool {
	if next == t.state {
		return false
	}
	t.enter(s, next)
	return true
}

func (t *Transition) enter(s *Store, next State) {
	t.state = next
	s.retarget(next)
	if next == Scattered {
		t.explode(s)
	}
}

// explode adds an outward impulse to each velocity and overwrites each
// angular velocity. Impulses compound with whatever motion is in flight.
func (t *Transition) explode(s *Store) {
	for i := range s.pos {
		dir := outward(s.pos[i])
		f := 0.5 + t.rng.Float64()
		s.vel[i] = s.vel[i].Add(dir.Mul(t.force * f))
		s.angVel[i] = mgl64.Vec3{t.spinDraw(), t.spinDraw(), t.spinDraw()}
	}
}

// outward returns p scaled to unit length, or fallbackDirection when p is too
// short for its length to be represented.
func outward(p mgl64.Vec3) mgl64.Vec3 {
	l := p.Len()
	if l == 0 || !finite(l) {
		return fallbackDirection
	}
	dir := p.Mul(1 / l)
	if !vecFinite(dir) {
		return fallbackDirection
	}
	return dir
}

func (t *Transition) spinDraw() float64 {
	return (2*t.rng.Float64() - 1) * t.spin
}
