// Package optim searches spring parameters for how quickly a scattered swarm
// reforms.
package optim

import (
	"context"
	"fmt"
	"runtime"
	"sort"

	"github.com/san-kum/swarmform/internal/analysis"
	"github.com/san-kum/swarmform/internal/config"
	"github.com/san-kum/swarmform/internal/metrics"
	"github.com/san-kum/swarmform/internal/sim"
	"golang.org/x/sync/errgroup"
)

// Trial is the outcome for one stiffness/damping pair.
type Trial struct {
	Stiffness float64
	Damping   float64
	// SettleTicks counts ticks from the form transition until the settled
	// fraction stays at or above the threshold.
	SettleTicks int
	Settled     bool
	Response    analysis.Response
}

type GridSearch struct {
	Stiffness []float64
	Damping   []float64
	// Hold is how long the swarm stays scattered before reforming.
	Hold int
	// Window is the number of ticks allowed for settling.
	Window    int
	Threshold float64
	Parallel  int
}

func NewGridSearch(stiffness, damping []float64) *GridSearch {
	return &GridSearch{
		Stiffness: stiffness,
		Damping:   damping,
		Hold:      60,
		Window:    600,
		Threshold: 0.95,
		Parallel:  runtime.NumCPU(),
	}
}

// Search runs every pair on a copy of base with the same seed and returns the
// trials fastest first. Pairs that never settle sort last.
func (g *GridSearch) Search(ctx context.Context, base *config.Config) ([]Trial, error) {
	if len(g.Stiffness) == 0 || len(g.Damping) == 0 {
		return nil, fmt.Errorf("grid needs at least one stiffness and one damping value")
	}
	if g.Hold <= 0 || g.Window <= 0 {
		return nil, fmt.Errorf("hold and window must be positive, got %d and %d", g.Hold, g.Window)
	}

	seed := base.Seed
	if seed == 0 {
		seed = 1
	}

	trials := make([]Trial, 0, len(g.Stiffness)*len(g.Damping))
	for _, k := range g.Stiffness {
		for _, d := range g.Damping {
			trials = append(trials, Trial{Stiffness: k, Damping: d, Response: analysis.SpringResponse(k, d)})
		}
	}

	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(max(g.Parallel, 1))
	for i := range trials {
		eg.Go(func() error {
			cfg := *base
			cfg.Stiffness, cfg.Damping, cfg.Seed = trials[i].Stiffness, trials[i].Damping, seed
			ticks, ok, err := g.run(ctx, &cfg)
			if err != nil {
				return fmt.Errorf("stiffness %g damping %g: %w", cfg.Stiffness, cfg.Damping, err)
			}
			trials[i].SettleTicks, trials[i].Settled = ticks, ok
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	sort.SliceStable(trials, func(i, j int) bool {
		if trials[i].Settled != trials[j].Settled {
			return trials[i].Settled
		}
		return trials[i].SettleTicks < trials[j].SettleTicks
	})
	return trials, nil
}

func (g *GridSearch) run(ctx context.Context, cfg *config.Config) (int, bool, error) {
	engine, err := cfg.NewEngine()
	if err != nil {
		return 0, false, err
	}
	runner := sim.New(engine)
	runner.AddMetric(metrics.NewSettled(metrics.DefaultSettleRadius))

	result, err := runner.Run(ctx, sim.Config{
		Ticks: g.Hold + g.Window,
		Events: []sim.Event{
			{Tick: 0, Action: sim.Scatter},
			{Tick: g.Hold, Action: sim.Form},
		},
	})
	if err != nil {
		return 0, false, err
	}
	ticks, ok := analysis.SettleTime(result.Series("settled"), g.Hold, g.Threshold)
	return ticks, ok, nil
}
