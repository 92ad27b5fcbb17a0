package particle

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/san-kum/swarmform/internal/shape"
)

func newTransitionFixture(n int, seed uint64) (*Store, *Transition) {
	rng := newRNG(seed)
	s := NewStore(shape.Generate(n, rng, shape.DefaultPalette()), rng)
	return s, NewTransition(DefaultExplosionForce, DefaultSpinImpulse, rng)
}

func TestTransition_ToggleRetargets(t *testing.T) {
	s, tr := newTransitionFixture(50, 1)

	if got := tr.Toggle(s); got != Scattered {
		t.Fatalf("expected scattered, got %s", got)
	}
	for i := range s.target {
		if s.target[i] != s.scattered[i] {
			t.Fatalf("particle %d target not scattered coord", i)
		}
	}

	if got := tr.Toggle(s); got != Formed {
		t.Fatalf("expected formed, got %s", got)
	}
	for i := range s.target {
		if s.target[i] != s.formed[i] {
			t.Fatalf("particle %d target not formed coord", i)
		}
	}
}

func TestTransition_ImpulseOnlyOnScatter(t *testing.T) {
	s, tr := newTransitionFixture(200, 2)

	tr.Toggle(s)
	afterScatter := append([]mgl64.Vec3(nil), s.vel...)
	spinAfterScatter := append([]mgl64.Vec3(nil), s.angVel...)

	for i, v := range afterScatter {
		speed := v.Len()
		if speed < 0.5*DefaultExplosionForce-1e-9 || speed > 1.5*DefaultExplosionForce+1e-9 {
			t.Fatalf("particle %d impulse magnitude %f outside [1.25, 3.75]", i, speed)
		}
		dir := s.pos[i].Normalize()
		if math.Abs(v.Normalize().Dot(dir)-1) > 1e-9 {
			t.Fatalf("particle %d impulse not radial", i)
		}
		for axis := 0; axis < 3; axis++ {
			if w := spinAfterScatter[i][axis]; math.Abs(w) > DefaultSpinImpulse {
				t.Fatalf("particle %d spin %f outside ±0.25", i, w)
			}
		}
	}

	tr.Toggle(s)
	for i := range s.vel {
		if s.vel[i] != afterScatter[i] || s.angVel[i] != spinAfterScatter[i] {
			t.Fatalf("particle %d: entering formed must not touch velocity or spin", i)
		}
	}
}

func TestTransition_ImpulseIsAdditive(t *testing.T) {
	s, tr := newTransitionFixture(20, 3)
	drift := mgl64.Vec3{0, 0, 7}
	for i := range s.vel {
		s.vel[i] = drift
	}

	tr.Toggle(s)
	for i, v := range s.vel {
		kick := v.Sub(drift)
		if kick.Len() < 0.5*DefaultExplosionForce-1e-9 {
			t.Fatalf("particle %d: velocity was reset instead of kicked", i)
		}
	}
}

func TestTransition_SpinOverwrites(t *testing.T) {
	s, tr := newTransitionFixture(20, 4)
	for i := range s.angVel {
		s.angVel[i] = mgl64.Vec3{10, 10, 10}
	}
	tr.Toggle(s)
	for i, w := range s.angVel {
		if math.Abs(w[0]) > DefaultSpinImpulse || math.Abs(w[1]) > DefaultSpinImpulse || math.Abs(w[2]) > DefaultSpinImpulse {
			t.Fatalf("particle %d spin accumulated: %v", i, w)
		}
	}
}

func TestTransition_OriginFallback(t *testing.T) {
	s, tr := newTransitionFixture(1, 5)
	s.pos[0] = mgl64.Vec3{}

	tr.Toggle(s)
	v := s.vel[0]
	if v[0] != 0 || v[2] != 0 {
		t.Errorf("expected impulse along fallback axis, got %v", v)
	}
	if v[1] < 0.5*DefaultExplosionForce || v[1] > 1.5*DefaultExplosionForce {
		t.Errorf("fallback impulse magnitude %f out of range", v[1])
	}
	if !vecFinite(v) {
		t.Error("origin impulse produced non-finite velocity")
	}
}

func TestTransition_NearOriginFallback(t *testing.T) {
	tests := []struct {
		name string
		pos  mgl64.Vec3
	}{
		{"length underflows", mgl64.Vec3{1e-200, 0, 0}},
		{"negative underflow", mgl64.Vec3{0, 0, -1e-180}},
		{"mixed axes", mgl64.Vec3{1e-170, -1e-170, 1e-170}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, tr := newTransitionFixture(1, 5)
			s.pos[0] = tt.pos

			tr.Toggle(s)
			v := s.vel[0]
			if !vecFinite(v) || !vecFinite(s.angVel[0]) {
				t.Fatalf("impulse produced non-finite values: vel %v", v)
			}
			if l := v.Len(); l < 0.5*DefaultExplosionForce-1e-9 || l > 1.5*DefaultExplosionForce+1e-9 {
				t.Errorf("impulse magnitude %f out of range", l)
			}
		})
	}
}

func TestOutward(t *testing.T) {
	if got := outward(mgl64.Vec3{0, 0, 3}); got != (mgl64.Vec3{0, 0, 1}) {
		t.Errorf("expected +z, got %v", got)
	}
	if got := outward(mgl64.Vec3{1e-200, 0, 0}); got != fallbackDirection {
		t.Errorf("expected fallback for an unrepresentable length, got %v", got)
	}
	if got := outward(mgl64.Vec3{1e-160, 0, 0}); !vecFinite(got) || math.Abs(got.Len()-1) > 1e-3 {
		t.Errorf("expected a finite, roughly unit direction, got %v", got)
	}
}

func TestTransition_SetState(t *testing.T) {
	s, tr := newTransitionFixture(10, 6)

	if tr.SetState(s, Formed) {
		t.Error("setting the current state should be a no-op")
	}
	for i := range s.vel {
		if s.vel[i] != (mgl64.Vec3{}) {
			t.Fatal("no-op transition applied an impulse")
		}
	}
	if !tr.SetState(s, Scattered) || tr.State() != Scattered {
		t.Error("expected transition into scattered")
	}
	if tr.SetState(s, Scattered) {
		t.Error("second scatter request should be a no-op")
	}
}

func TestState_String(t *testing.T) {
	tests := []struct {
		s    State
		want string
	}{
		{Formed, "formed"},
		{Scattered, "scattered"},
		{State(9), "unknown"},
	}
	for _, tt := range tests {
		if got := tt.s.String(); got != tt.want {
			t.Errorf("State(%d).String() = %q, want %q", tt.s, got, tt.want)
		}
	}
	if Formed.Other() != Scattered || Scattered.Other() != Formed {
		t.Error("Other() does not flip")
	}
}
