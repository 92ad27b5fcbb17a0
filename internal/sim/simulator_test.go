package sim

import (
	"context"
	"errors"
	"math/rand/v2"
	"testing"

	"github.com/san-kum/swarmform/internal/metrics"
	"github.com/san-kum/swarmform/internal/particle"
)

func newEngine(t *testing.T, n int) *particle.Engine {
	t.Helper()
	p := particle.DefaultParams()
	p.Count = n
	e, err := particle.New(p, rand.New(rand.NewPCG(1, 2)))
	if err != nil {
		t.Fatal(err)
	}
	return e
}

type countingSink struct{ frames int }

func (c *countingSink) Render(f particle.Frame) error {
	c.frames++
	return nil
}

type failingSink struct{}

func (failingSink) Render(particle.Frame) error { return errors.New("display lost") }

func TestSimulatorRun(t *testing.T) {
	s := New(newEngine(t, 50))
	for _, m := range metrics.Defaults() {
		s.AddMetric(m)
	}
	sink := &countingSink{}
	s.AddSink(sink)

	result, err := s.Run(context.Background(), Config{Ticks: 100, ToggleEvery: 40})
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	if len(result.Samples) != 101 || len(result.Ticks) != 101 || len(result.States) != 101 {
		t.Errorf("expected 101 samples, got %d/%d/%d", len(result.Samples), len(result.Ticks), len(result.States))
	}
	if result.StepsTaken != 100 || sink.frames != 100 {
		t.Errorf("expected 100 steps and frames, got %d/%d", result.StepsTaken, sink.frames)
	}

	wantToggles := []uint64{0, 40, 80}
	if len(result.Toggles) != len(wantToggles) {
		t.Fatalf("expected toggles %v, got %v", wantToggles, result.Toggles)
	}
	for i, tick := range wantToggles {
		if result.Toggles[i] != tick {
			t.Errorf("toggle %d at tick %d, want %d", i, result.Toggles[i], tick)
		}
	}

	if result.States[0] != particle.Formed || result.States[1] != particle.Scattered || result.States[100] != particle.Scattered {
		t.Errorf("unexpected state sequence at 0/1/100: %s %s %s", result.States[0], result.States[1], result.States[100])
	}

	ke := result.Series("kinetic_energy")
	if len(ke) != 101 {
		t.Fatalf("expected 101 kinetic energy samples, got %d", len(ke))
	}
	if ke[0] != 0 || ke[1] <= 0 {
		t.Errorf("kinetic energy should start at rest and jump on scatter: %v %v", ke[0], ke[1])
	}
	if result.Series("missing") != nil {
		t.Error("expected nil series for unknown metric")
	}
	if _, ok := result.Metrics["settled"]; !ok {
		t.Error("final metrics missing")
	}
}

func TestSimulatorNoToggle(t *testing.T) {
	s := New(newEngine(t, 10))
	result, err := s.Run(context.Background(), Config{Ticks: 10})
	if err != nil {
		t.Fatal(err)
	}
	if len(result.Toggles) != 0 {
		t.Errorf("expected no toggles, got %v", result.Toggles)
	}
}

func TestSimulatorInvalidConfig(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
	}{
		{"negative ticks", Config{Ticks: -1}},
		{"negative toggle", Config{Ticks: 10, ToggleEvery: -2}},
		{"event after end", Config{Ticks: 10, Events: []Event{{Tick: 10, Action: Toggle}}}},
		{"negative event", Config{Ticks: 10, Events: []Event{{Tick: -1, Action: Form}}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := New(newEngine(t, 5)).Run(context.Background(), tt.cfg); err == nil {
				t.Error("expected error, got nil")
			}
		})
	}
}

func TestSimulatorCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result, err := New(newEngine(t, 5)).Run(ctx, Config{Ticks: 10})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if result.StepsTaken != 0 {
		t.Errorf("expected no steps, got %d", result.StepsTaken)
	}
}

func TestSimulatorSinkError(t *testing.T) {
	s := New(newEngine(t, 5))
	s.AddSink(failingSink{})
	if _, err := s.Run(context.Background(), Config{Ticks: 3}); err == nil {
		t.Error("expected sink error to surface")
	}
}

func TestSimulatorEvents(t *testing.T) {
	e := newEngine(t, 10)
	cfg := Config{
		Ticks: 20,
		Events: []Event{
			{Tick: 0, Action: Form},
			{Tick: 2, Action: Scatter},
			{Tick: 5, Action: Scatter},
			{Tick: 8, Action: Toggle},
		},
	}
	result, err := New(e).Run(context.Background(), cfg)
	if err != nil {
		t.Fatal(err)
	}

	// form at 0 and the repeated scatter are no-ops
	want := []uint64{2, 8}
	if len(result.Toggles) != len(want) {
		t.Fatalf("expected toggles %v, got %v", want, result.Toggles)
	}
	for i := range want {
		if result.Toggles[i] != want[i] {
			t.Errorf("toggle %d: expected tick %d, got %d", i, want[i], result.Toggles[i])
		}
	}
	if result.States[3] != particle.Scattered || result.States[9] != particle.Formed {
		t.Errorf("unexpected states %v", result.States)
	}
}

func TestParseAction(t *testing.T) {
	for _, name := range []string{"toggle", "form", "scatter"} {
		a, err := ParseAction(name)
		if err != nil {
			t.Fatalf("%s: %v", name, err)
		}
		if a.String() != name {
			t.Errorf("round trip %s gave %s", name, a)
		}
	}
	if _, err := ParseAction("explode"); err == nil {
		t.Error("expected error for unknown action")
	}
}
