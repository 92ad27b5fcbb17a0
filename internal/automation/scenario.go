// Package automation runs scripted scenarios: a preset, a seed, and a list of
// transitions at fixed ticks, described in YAML.
package automation

import (
	"context"
	"fmt"
	"math/rand/v2"
	"os"

	"github.com/san-kum/swarmform/internal/config"
	"github.com/san-kum/swarmform/internal/metrics"
	"github.com/san-kum/swarmform/internal/sim"
	"gopkg.in/yaml.v3"
)

// Scenario defines a scripted run
type Scenario struct {
	Name        string          `yaml:"name"`
	Description string          `yaml:"description"`
	Preset      string          `yaml:"preset"`
	Seed        uint64          `yaml:"seed"`
	Ticks       int             `yaml:"ticks"`
	ToggleEvery int             `yaml:"toggle_every"`
	Overrides   yaml.Node       `yaml:"overrides"`
	Events      []ScenarioEvent `yaml:"events"`
}

// ScenarioEvent requests a transition before tick At.
type ScenarioEvent struct {
	At     int    `yaml:"at"`
	Action string `yaml:"action"`
}

func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseScenario(data)
}

func ParseScenario(data []byte) (*Scenario, error) {
	var sc Scenario
	if err := yaml.Unmarshal(data, &sc); err != nil {
		return nil, err
	}
	if err := sc.Validate(); err != nil {
		return nil, err
	}
	return &sc, nil
}

func (s *Scenario) Validate() error {
	if s.Preset != "" && config.GetPreset(s.Preset) == nil {
		return fmt.Errorf("scenario %s: unknown preset %q", s.Name, s.Preset)
	}
	if s.Ticks <= 0 {
		return fmt.Errorf("scenario %s: ticks must be positive, got %d", s.Name, s.Ticks)
	}
	if !s.Overrides.IsZero() {
		if err := s.Overrides.Decode(config.DefaultConfig()); err != nil {
			return fmt.Errorf("scenario %s overrides: %w", s.Name, err)
		}
	}
	if _, err := s.SimConfig(); err != nil {
		return fmt.Errorf("scenario %s: %w", s.Name, err)
	}
	return nil
}

// Config resolves the preset and overrides into a full engine config.
func (s *Scenario) Config() (*config.Config, error) {
	cfg := config.DefaultConfig()
	if s.Preset != "" {
		cfg = config.GetPreset(s.Preset)
	}
	// decoded onto the preset so explicit zeros override it too
	if !s.Overrides.IsZero() {
		if err := s.Overrides.Decode(cfg); err != nil {
			return nil, fmt.Errorf("scenario %s overrides: %w", s.Name, err)
		}
	}
	if s.Seed != 0 {
		cfg.Seed = s.Seed
	}
	cfg.Ticks, cfg.ToggleEvery = s.Ticks, s.ToggleEvery
	return cfg, cfg.Validate()
}

func (s *Scenario) SimConfig() (sim.Config, error) {
	cfg := sim.Config{Ticks: s.Ticks, ToggleEvery: s.ToggleEvery}
	for _, ev := range s.Events {
		action, err := sim.ParseAction(ev.Action)
		if err != nil {
			return sim.Config{}, err
		}
		cfg.Events = append(cfg.Events, sim.Event{Tick: ev.At, Action: action})
	}
	return cfg, nil
}

// Run executes the scenario headless with the default metrics. The returned
// config carries the seed actually used.
func Run(ctx context.Context, s *Scenario) (*sim.Result, *config.Config, error) {
	cfg, err := s.Config()
	if err != nil {
		return nil, nil, err
	}
	simCfg, err := s.SimConfig()
	if err != nil {
		return nil, nil, err
	}
	engine, err := cfg.NewEngine()
	if err != nil {
		return nil, nil, err
	}

	runner := sim.New(engine)
	for _, m := range metrics.Defaults() {
		runner.AddMetric(m)
	}
	result, err := runner.Run(ctx, simCfg)
	return result, cfg, err
}

// TrialResult summarizes one seed of a Monte Carlo batch.
type TrialResult struct {
	Seed    uint64
	Metrics map[string]float64
	Err     error
}

// RunTrials repeats the scenario with n seeds drawn from seed and reports the
// final metrics of each. Trials that fail keep their error and continue.
func RunTrials(ctx context.Context, s *Scenario, n int, seed uint64) ([]TrialResult, error) {
	if n <= 0 {
		return nil, fmt.Errorf("trials must be positive, got %d", n)
	}
	rng := rand.New(rand.NewPCG(seed, seed+1))
	results := make([]TrialResult, 0, n)

	for i := 0; i < n; i++ {
		if err := ctx.Err(); err != nil {
			return results, err
		}
		trial := *s
		trial.Seed = rng.Uint64() | 1
		result, _, err := Run(ctx, &trial)
		tr := TrialResult{Seed: trial.Seed, Err: err}
		if result != nil {
			tr.Metrics = result.Metrics
		}
		results = append(results, tr)
	}
	return results, nil
}
