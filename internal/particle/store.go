package particle

import (
	"fmt"
	"math"
	"math/rand/v2"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/san-kum/swarmform/internal/shape"
)

// Kinematics is the mutable part of a particle.
type Kinematics struct {
	Position        mgl64.Vec3
	Velocity        mgl64.Vec3
	Orientation     mgl64.Quat
	AngularVelocity mgl64.Vec3
}

// Particle is a read-only view of one index of a Store.
type Particle struct {
	Kinematics
	Target    mgl64.Vec3
	Formed    mgl64.Vec3
	Scattered mgl64.Vec3
	Color     shape.Color
}

// Store holds particle state as parallel slices. Formed, scattered and
// color data come from a shape.Set and are never written after NewStore.
type Store struct {
	pos    []mgl64.Vec3
	vel    []mgl64.Vec3
	orient []mgl64.Quat
	angVel []mgl64.Vec3
	target []mgl64.Vec3

	formed    []mgl64.Vec3
	scattered []mgl64.Vec3
	colors    []shape.Color
}

// NewStore places every particle on its formed coordinate, at rest, with a
// random orientation drawn from rng.
func NewStore(set shape.Set, rng *rand.Rand) *Store {
	n := set.Len()
	s := &Store{
		pos:       make([]mgl64.Vec3, n),
		vel:       make([]mgl64.Vec3, n),
		orient:    make([]mgl64.Quat, n),
		angVel:    make([]mgl64.Vec3, n),
		target:    make([]mgl64.Vec3, n),
		formed:    set.Formed,
		scattered: set.Scattered,
		colors:    set.Colors,
	}
	copy(s.pos, set.Formed)
	copy(s.target, set.Formed)
	for i := range s.orient {
		s.orient[i] = RandomOrientation(rng)
	}
	return s
}

func (s *Store) Len() int { return len(s.pos) }

func (s *Store) Particle(i int) (Particle, error) {
	if i < 0 || i >= len(s.pos) {
		return Particle{}, fmt.Errorf("%w: %d of %d", ErrIndexOutOfRange, i, len(s.pos))
	}
	return Particle{
		Kinematics: Kinematics{
			Position:        s.pos[i],
			Velocity:        s.vel[i],
			Orientation:     s.orient[i],
			AngularVelocity: s.angVel[i],
		},
		Target:    s.target[i],
		Formed:    s.formed[i],
		Scattered: s.scattered[i],
		Color:     s.colors[i],
	}, nil
}

// SetKinematics overwrites the mutable state of particle i. The orientation
// is normalized on the way in.
func (s *Store) SetKinematics(i int, k Kinematics) error {
	if i < 0 || i >= len(s.pos) {
		return fmt.Errorf("%w: %d of %d", ErrIndexOutOfRange, i, len(s.pos))
	}
	s.pos[i] = k.Position
	s.vel[i] = k.Velocity
	s.orient[i] = k.Orientation.Normalize()
	s.angVel[i] = k.AngularVelocity
	return nil
}

// retarget points every particle at the coordinate set of state.
func (s *Store) retarget(state State) {
	src := s.formed
	if state == Scattered {
		src = s.scattered
	}
	copy(s.target, src)
}

// Finite reports the first particle holding a NaN or Inf, or -1.
func (s *Store) Finite() int {
	for i := range s.pos {
		if !vecFinite(s.pos[i]) || !vecFinite(s.vel[i]) || !vecFinite(s.angVel[i]) || !quatFinite(s.orient[i]) {
			return i
		}
	}
	return -1
}

// RandomOrientation draws a unit quaternion uniformly over SO(3) (Shoemake).
func RandomOrientation(rng *rand.Rand) mgl64.Quat {
	u1, u2, u3 := rng.Float64(), rng.Float64(), rng.Float64()
	a, b := math.Sqrt(1-u1), math.Sqrt(u1)
	s2, c2 := math.Sincos(2 * math.Pi * u2)
	s3, c3 := math.Sincos(2 * math.Pi * u3)
	return mgl64.Quat{W: b * c3, V: mgl64.Vec3{a * s2, a * c2, b * s3}}.Normalize()
}

func vecFinite(v mgl64.Vec3) bool {
	return finite(v[0]) && finite(v[1]) && finite(v[2])
}

func quatFinite(q mgl64.Quat) bool {
	return finite(q.W) && vecFinite(q.V)
}
