package particle

import (
	"fmt"
	"math/rand/v2"
	"sync"

	"github.com/san-kum/swarmform/internal/shape"
)

// View is read access to particle data, handed out under the engine's read
// lock by Inspect.
type View interface {
	Len() int
	Particle(i int) (Particle, error)
}

// Engine exclusively owns a Store. Step and Toggle are the only writers.
type Engine struct {
	mu sync.RWMutex

	params     Params
	store      *Store
	transition *Transition
	integrator *Integrator
	emitter    Emitter
	tick       uint64
	fault      error

	listeners []func(State)
}

// New validates params and builds a swarm in the Formed state. rng drives
// shape generation, initial orientations and every later impulse.
func New(params Params, rng *rand.Rand) (*Engine, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	if rng == nil {
		return nil, fmt.Errorf("%w: random source is required", ErrInvalidParams)
	}

	set := shape.Generate(params.Count, rng, params.Palette)
	return &Engine{
		params:     params,
		store:      NewStore(set, rng),
		transition: NewTransition(params.ExplosionForce, params.SpinImpulse, rng),
		integrator: NewIntegrator(params),
		emitter:    Emitter{FormedScale: params.FormedScale, ScatteredScale: params.ScatteredScale},
	}, nil
}

// OnTransition registers fn to run after every state change, outside the lock.
func (e *Engine) OnTransition(fn func(State)) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.listeners = append(e.listeners, fn)
}

// Step advances the swarm by one tick. A tick that produces a non-finite
// value is discarded and faults the engine permanently.
func (e *Engine) Step() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.fault != nil {
		return fmt.Errorf("%w: %w", ErrFaulted, e.fault)
	}
	if err := e.integrator.Step(e.store, e.tick+1); err != nil {
		e.fault = err
		return err
	}
	e.tick++
	return nil
}

// Toggle flips between Formed and Scattered and returns the new state.
func (e *Engine) Toggle() (State, error) {
	e.mu.Lock()
	if e.fault != nil {
		e.mu.Unlock()
		return e.transition.State(), fmt.Errorf("%w: %w", ErrFaulted, e.fault)
	}
	state := e.transition.Toggle(e.store)
	listeners := e.listeners
	e.mu.Unlock()

	notify(listeners, state)
	return state, nil
}

// SetState moves into state if not already there.
func (e *Engine) SetState(state State) (bool, error) {
	e.mu.Lock()
	if e.fault != nil {
		e.mu.Unlock()
		return false, fmt.Errorf("%w: %w", ErrFaulted, e.fault)
	}
	changed := e.transition.SetState(e.store, state)
	listeners := e.listeners
	e.mu.Unlock()

	if changed {
		notify(listeners, state)
	}
	return changed, nil
}

func notify(listeners []func(State), state State) {
	for _, fn := range listeners {
		fn(state)
	}
}

// Snapshot copies the current transforms into dst, reusing its capacity.
func (e *Engine) Snapshot(dst []Transform) Frame {
	e.mu.RLock()
	defer e.mu.RUnlock()

	state := e.transition.State()
	return Frame{
		Tick:       e.tick,
		State:      state,
		Transforms: e.emitter.Emit(e.store, state, dst),
	}
}

// Render snapshots into buf and hands the frame to sink.
func (e *Engine) Render(sink Sink, buf []Transform) ([]Transform, error) {
	frame := e.Snapshot(buf)
	return frame.Transforms, sink.Render(frame)
}

// Inspect runs fn with read access to the store. fn must not retain v.
func (e *Engine) Inspect(fn func(v View)) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	fn(storeView{e.store})
}

// storeView hides the store's writers from Inspect callbacks.
type storeView struct{ s *Store }

func (v storeView) Len() int                         { return v.s.Len() }
func (v storeView) Particle(i int) (Particle, error) { return v.s.Particle(i) }

func (e *Engine) State() State {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.transition.State()
}

func (e *Engine) Tick() uint64 {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.tick
}

// Fault returns the error that stopped the engine, if any.
func (e *Engine) Fault() error {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.fault
}

func (e *Engine) Len() int       { return e.params.Count }
func (e *Engine) Params() Params { return e.params }
