package main

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"os"
	"os/signal"
	"runtime"
	"slices"
	"text/tabwriter"
	"time"

	"github.com/san-kum/swarmform/internal/metrics"
	"github.com/san-kum/swarmform/internal/particle"
	"github.com/san-kum/swarmform/internal/sim"
	"github.com/san-kum/swarmform/internal/storage"
	"github.com/spf13/cobra"
)

func runHeadless(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	engine, err := cfg.NewEngine()
	if err != nil {
		return err
	}

	s := sim.New(engine)
	for _, m := range metrics.Defaults() {
		s.AddMetric(m)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	result, runErr := s.Run(ctx, sim.Config{Ticks: cfg.Ticks, ToggleEvery: cfg.ToggleEvery})
	if result == nil {
		return runErr
	}

	fmt.Printf("particles: %d\n", cfg.Particles)
	fmt.Printf("seed: %d\n", cfg.Seed)
	fmt.Printf("ticks: %d (%d toggles)\n", result.StepsTaken, len(result.Toggles))
	fmt.Printf("elapsed: %v\n\n", result.Elapsed.Round(time.Microsecond))

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "METRIC\tFINAL")
	for i, name := range result.Names {
		final := 0.0
		if n := len(result.Samples); n > 0 {
			final = result.Samples[n-1][i]
		}
		fmt.Fprintf(w, "%s\t%.6g\n", name, final)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	if noSave, _ := cmd.Flags().GetBool("no-save"); !noSave {
		st := storage.New(dataDir)
		if err := st.Init(); err != nil {
			return err
		}
		meta := storage.RunMetadata{
			Seed:           cfg.Seed,
			Particles:      cfg.Particles,
			Stiffness:      cfg.Stiffness,
			Damping:        cfg.Damping,
			ExplosionForce: cfg.ExplosionForce,
			Ticks:          result.StepsTaken,
			ToggleEvery:    cfg.ToggleEvery,
		}
		runID, err := st.Save(meta, result)
		if err != nil {
			return err
		}
		fmt.Printf("\nsaved: %s\n", runID)
	}

	if errors.Is(runErr, context.Canceled) {
		return nil
	}
	return runErr
}

func bench(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	counts, _ := cmd.Flags().GetIntSlice("counts")
	workers, _ := cmd.Flags().GetIntSlice("worker-counts")
	if len(workers) == 0 {
		workers = []int{1, 2, 4, runtime.NumCPU()}
		slices.Sort(workers)
		workers = slices.Compact(workers)
	}
	ticks := cfg.Ticks
	if ticks <= 0 {
		ticks = 100
	}

	fmt.Printf("benchmarking %d ticks, scattering on the first\n\n", ticks)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "PARTICLES\tWORKERS\tTIME\tTICKS/SEC\tPARTICLE-TICKS/SEC")

	for _, n := range counts {
		for _, k := range workers {
			p, err := cfg.Params()
			if err != nil {
				return err
			}
			p.Count, p.Workers = n, k

			engine, err := particle.New(p, rand.New(rand.NewPCG(42, 43)))
			if err != nil {
				return err
			}
			if _, err := engine.Toggle(); err != nil {
				return err
			}

			start := time.Now()
			for i := 0; i < ticks; i++ {
				if err := engine.Step(); err != nil {
					return err
				}
			}
			elapsed := time.Since(start)

			perSec := float64(ticks) / elapsed.Seconds()
			fmt.Fprintf(w, "%d\t%d\t%v\t%.0f\t%.3g\n", n, k, elapsed.Round(time.Microsecond), perSec, perSec*float64(n))
		}
	}

	return w.Flush()
}
