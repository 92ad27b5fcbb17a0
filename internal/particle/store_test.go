package particle

import (
	"errors"
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/san-kum/swarmform/internal/shape"
)

func TestNewStore_InitialState(t *testing.T) {
	rng := newRNG(3)
	set := shape.Generate(100, rng, shape.DefaultPalette())
	s := NewStore(set, rng)

	if s.Len() != 100 {
		t.Fatalf("expected 100 particles, got %d", s.Len())
	}
	for i := 0; i < s.Len(); i++ {
		p, err := s.Particle(i)
		if err != nil {
			t.Fatalf("particle %d: %v", i, err)
		}
		if p.Position != p.Formed || p.Target != p.Formed {
			t.Errorf("particle %d should start on its formed coordinate", i)
		}
		if p.Velocity != (mgl64.Vec3{}) || p.AngularVelocity != (mgl64.Vec3{}) {
			t.Errorf("particle %d should start at rest", i)
		}
		if math.Abs(p.Orientation.Len()-1) > 1e-12 {
			t.Errorf("particle %d orientation norm %f", i, p.Orientation.Len())
		}
	}
}

func TestStore_IndexBounds(t *testing.T) {
	rng := newRNG(1)
	s := NewStore(shape.Generate(3, rng, shape.DefaultPalette()), rng)

	for _, i := range []int{-1, 3, 100} {
		if _, err := s.Particle(i); !errors.Is(err, ErrIndexOutOfRange) {
			t.Errorf("Particle(%d): expected ErrIndexOutOfRange, got %v", i, err)
		}
		if err := s.SetKinematics(i, Kinematics{}); !errors.Is(err, ErrIndexOutOfRange) {
			t.Errorf("SetKinematics(%d): expected ErrIndexOutOfRange, got %v", i, err)
		}
	}
}

func TestStore_SetKinematicsNormalizes(t *testing.T) {
	rng := newRNG(1)
	s := NewStore(shape.Generate(2, rng, shape.DefaultPalette()), rng)

	k := Kinematics{
		Position:    mgl64.Vec3{1, 2, 3},
		Velocity:    mgl64.Vec3{0, 1, 0},
		Orientation: mgl64.Quat{W: 2, V: mgl64.Vec3{0, 0, 0}},
	}
	if err := s.SetKinematics(1, k); err != nil {
		t.Fatal(err)
	}
	p, _ := s.Particle(1)
	if p.Position != k.Position || p.Velocity != k.Velocity {
		t.Errorf("kinematics not stored: %+v", p.Kinematics)
	}
	if math.Abs(p.Orientation.Len()-1) > 1e-12 {
		t.Errorf("orientation not normalized: %f", p.Orientation.Len())
	}
}

func TestStore_Finite(t *testing.T) {
	rng := newRNG(1)
	s := NewStore(shape.Generate(4, rng, shape.DefaultPalette()), rng)
	if idx := s.Finite(); idx != -1 {
		t.Fatalf("fresh store reported non-finite particle %d", idx)
	}
	s.vel[2] = mgl64.Vec3{math.NaN(), 0, 0}
	if idx := s.Finite(); idx != 2 {
		t.Errorf("expected particle 2, got %d", idx)
	}
}

func TestRandomOrientation_Unit(t *testing.T) {
	rng := newRNG(17)
	var meanW float64
	const n = 10000
	for i := 0; i < n; i++ {
		q := RandomOrientation(rng)
		if math.Abs(q.Len()-1) > 1e-12 {
			t.Fatalf("draw %d not unit: %f", i, q.Len())
		}
		meanW += math.Abs(q.W)
	}
	// w of a uniform point on S3 has density (2/π)·sqrt(1-w²), so E|w| = 4/(3π).
	meanW /= n
	if want := 4 / (3 * math.Pi); math.Abs(meanW-want) > 0.01 {
		t.Errorf("mean |w| = %f, want ~%f", meanW, want)
	}
}
