package particle

import (
	"github.com/go-gl/mathgl/mgl64"
	"golang.org/x/sync/errgroup"
)

// minChunk keeps small swarms on the calling goroutine.
const minChunk = 512

// Integrator advances a Store by one tick. Results are written to scratch
// buffers and swapped in only when every particle came out finite, so a
// failed tick leaves the store exactly as it was.
type Integrator struct {
	stiffness      float64
	damping        float64
	angularDamping float64
	workers        int

	pos    []mgl64.Vec3
	vel    []mgl64.Vec3
	orient []mgl64.Quat
	angVel []mgl64.Vec3
}

func NewIntegrator(p Params) *Integrator {
	return &Integrator{
		stiffness:      p.Stiffness,
		damping:        p.Damping,
		angularDamping: p.AngularDamping,
		workers:        p.Workers,
	}
}

func (in *Integrator) ensureScratch(n int) {
	if len(in.pos) != n {
		in.pos = make([]mgl64.Vec3, n)
		in.vel = make([]mgl64.Vec3, n)
		in.orient = make([]mgl64.Quat, n)
		in.angVel = make([]mgl64.Vec3, n)
	}
}

// Step applies one tick. tick is only used to label errors.
func (in *Integrator) Step(s *Store, tick uint64) error {
	n := s.Len()
	in.ensureScratch(n)

	if err := in.run(s, n, tick); err != nil {
		return err
	}

	s.pos, in.pos = in.pos, s.pos
	s.vel, in.vel = in.vel, s.vel
	s.orient, in.orient = in.orient, s.orient
	s.angVel, in.angVel = in.angVel, s.angVel
	return nil
}

func (in *Integrator) run(s *Store, n int, tick uint64) error {
	workers := in.workers
	if n/minChunk < workers {
		workers = n / minChunk
	}
	if workers <= 1 {
		return in.advance(s, 0, n, tick)
	}

	chunk := (n + workers - 1) / workers
	var g errgroup.Group
	g.SetLimit(workers)
	for start := 0; start < n; start += chunk {
		end := min(start+chunk, n)
		g.Go(func() error {
			return in.advance(s, start, end, tick)
		})
	}
	return g.Wait()
}

// advance integrates particles [start, end) from the store into scratch.
func (in *Integrator) advance(s *Store, start, end int, tick uint64) error {
	for i := start; i < end; i++ {
		p := s.pos[i]

		acc := s.target[i].Sub(p).Mul(in.stiffness)
		v := s.vel[i].Add(acc).Mul(in.damping)
		p = p.Add(v)

		w := s.angVel[i].Mul(in.angularDamping)
		// Increment on the right: rotation about the body's own axes.
		inc := mgl64.AnglesToQuat(w[0], w[1], w[2], mgl64.XYZ)
		q := s.orient[i].Mul(inc).Normalize()

		switch {
		case !vecFinite(p):
			return &StepError{Tick: tick, Index: i, Field: "position", Wrapped: ErrNonFinite}
		case !vecFinite(v):
			return &StepError{Tick: tick, Index: i, Field: "velocity", Wrapped: ErrNonFinite}
		case !vecFinite(w):
			return &StepError{Tick: tick, Index: i, Field: "angular velocity", Wrapped: ErrNonFinite}
		case !quatFinite(q):
			return &StepError{Tick: tick, Index: i, Field: "orientation", Wrapped: ErrNonFinite}
		}

		in.pos[i] = p
		in.vel[i] = v
		in.angVel[i] = w
		in.orient[i] = q
	}
	return nil
}
