// Package sim drives a particle engine without a display: it steps a fixed
// number of ticks, toggles on a schedule, and samples metrics every tick.
package sim

import (
	"context"
	"fmt"
	"time"

	"github.com/san-kum/swarmform/internal/metrics"
	"github.com/san-kum/swarmform/internal/particle"
)

type Config struct {
	Ticks int
	// ToggleEvery > 0 toggles before the first tick and then every
	// ToggleEvery ticks. Zero never toggles.
	ToggleEvery int
	// Events run before the tick they name, after any scheduled toggle.
	Events []Event
}

type Action int

const (
	Toggle Action = iota
	Form
	Scatter
)

var actionNames = map[string]Action{"toggle": Toggle, "form": Form, "scatter": Scatter}

func ParseAction(s string) (Action, error) {
	a, ok := actionNames[s]
	if !ok {
		return 0, fmt.Errorf("unknown action %q (want toggle, form or scatter)", s)
	}
	return a, nil
}

func (a Action) String() string {
	for name, v := range actionNames {
		if v == a {
			return name
		}
	}
	return fmt.Sprintf("Action(%d)", int(a))
}

// Event is a transition requested before step Tick (0-based).
type Event struct {
	Tick   int
	Action Action
}

// Result holds one sample row per tick, starting with the state before the
// first tick. Columns follow Names.
type Result struct {
	Names      []string
	Ticks      []uint64
	States     []particle.State
	Samples    [][]float64
	Toggles    []uint64
	Metrics    map[string]float64
	StepsTaken int
	Elapsed    time.Duration
}

// Series returns the column for metric name, or nil.
func (r *Result) Series(name string) []float64 {
	col := -1
	for i, n := range r.Names {
		if n == name {
			col = i
		}
	}
	if col < 0 {
		return nil
	}
	out := make([]float64, len(r.Samples))
	for i, row := range r.Samples {
		out[i] = row[col]
	}
	return out
}

type Simulator struct {
	engine  *particle.Engine
	metrics []metrics.Metric
	sinks   []particle.Sink
	buf     []particle.Transform
}

func New(engine *particle.Engine) *Simulator {
	return &Simulator{
		engine:  engine,
		metrics: make([]metrics.Metric, 0),
		sinks:   make([]particle.Sink, 0),
	}
}

func (s *Simulator) AddMetric(m metrics.Metric)  { s.metrics = append(s.metrics, m) }
func (s *Simulator) AddSink(sink particle.Sink) { s.sinks = append(s.sinks, sink) }

func (s *Simulator) Run(ctx context.Context, cfg Config) (*Result, error) {
	if err := validateConfig(cfg); err != nil {
		return nil, err
	}

	names := make([]string, len(s.metrics))
	for i, m := range s.metrics {
		m.Reset()
		names[i] = m.Name()
	}
	result := &Result{
		Names:   names,
		Ticks:   make([]uint64, 0, cfg.Ticks+1),
		States:  make([]particle.State, 0, cfg.Ticks+1),
		Samples: make([][]float64, 0, cfg.Ticks+1),
		Metrics: make(map[string]float64),
	}

	start := time.Now()
	s.sample(result)

	for i := 0; i < cfg.Ticks; i++ {
		select {
		case <-ctx.Done():
			result.Elapsed = time.Since(start)
			return result, ctx.Err()
		default:
		}

		if cfg.ToggleEvery > 0 && i%cfg.ToggleEvery == 0 {
			if err := s.apply(Toggle, result); err != nil {
				return result, err
			}
		}
		for _, ev := range cfg.Events {
			if ev.Tick != i {
				continue
			}
			if err := s.apply(ev.Action, result); err != nil {
				return result, err
			}
		}

		if err := s.engine.Step(); err != nil {
			result.Elapsed = time.Since(start)
			return result, err
		}
		result.StepsTaken++

		s.sample(result)
		if err := s.render(); err != nil {
			return result, fmt.Errorf("render tick %d: %w", s.engine.Tick(), err)
		}
	}

	result.Elapsed = time.Since(start)
	for _, m := range s.metrics {
		result.Metrics[m.Name()] = m.Value()
	}
	return result, nil
}

// apply performs a, recording the tick in r.Toggles if the state changed.
func (s *Simulator) apply(a Action, r *Result) error {
	var changed bool
	var err error
	switch a {
	case Form:
		changed, err = s.engine.SetState(particle.Formed)
	case Scatter:
		changed, err = s.engine.SetState(particle.Scattered)
	default:
		_, err = s.engine.Toggle()
		changed = err == nil
	}
	if err != nil {
		return err
	}
	if changed {
		r.Toggles = append(r.Toggles, s.engine.Tick())
	}
	return nil
}

func (s *Simulator) sample(r *Result) {
	row := make([]float64, len(s.metrics))
	s.engine.Inspect(func(v particle.View) {
		for i, m := range s.metrics {
			m.Observe(v)
			row[i] = m.Value()
		}
	})
	r.Ticks = append(r.Ticks, s.engine.Tick())
	r.States = append(r.States, s.engine.State())
	r.Samples = append(r.Samples, row)
}

func (s *Simulator) render() error {
	for _, sink := range s.sinks {
		var err error
		if s.buf, err = s.engine.Render(sink, s.buf); err != nil {
			return err
		}
	}
	return nil
}

func validateConfig(cfg Config) error {
	if cfg.Ticks < 0 {
		return fmt.Errorf("ticks must be non-negative, got %d", cfg.Ticks)
	}
	if cfg.ToggleEvery < 0 {
		return fmt.Errorf("toggle interval must be non-negative, got %d", cfg.ToggleEvery)
	}
	for _, ev := range cfg.Events {
		if ev.Tick < 0 || ev.Tick >= cfg.Ticks {
			return fmt.Errorf("event %s at tick %d is outside the run", ev.Action, ev.Tick)
		}
	}
	return nil
}
