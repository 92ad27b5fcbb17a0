package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"text/tabwriter"

	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/swarmform/internal/analysis"
	"github.com/san-kum/swarmform/internal/automation"
	"github.com/san-kum/swarmform/internal/export"
	"github.com/san-kum/swarmform/internal/optim"
	"github.com/san-kum/swarmform/internal/sim"
	"github.com/san-kum/swarmform/internal/storage"
	"github.com/san-kum/swarmform/internal/viz"
	"github.com/spf13/cobra"
)

func analyzeRun(cmd *cobra.Command, args []string) error {
	runID := args[0]
	name, _ := cmd.Flags().GetString("metric")

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}
	trace, err := st.LoadTrace(runID)
	if err != nil {
		return err
	}
	data := trace.Column(name)
	if data == nil {
		return fmt.Errorf("unknown metric: %s (available: %v)", name, trace.Names)
	}

	// analyze the longest stretch without a transition
	from, to := longestSpan(meta.Toggles, len(data))
	data = data[from:to]
	if len(data) < 4 {
		return fmt.Errorf("not enough samples between transitions")
	}

	fmt.Printf("frequency analysis: %s\n", meta.ID)
	fmt.Printf("metric: %s, ticks %d-%d\n\n", name, from, to)

	ps := analysis.PowerSpectrum(data)
	graph := asciigraph.Plot(ps[:max(len(ps)/4, 2)],
		asciigraph.Height(15),
		asciigraph.Width(80),
		asciigraph.Caption("power spectrum ("+name+")"),
	)
	fmt.Println(graph)
	fmt.Println()

	period, _ := analysis.DominantPeriod(data)
	if period > 0 {
		fmt.Printf("dominant period: %.2f ticks\n", period)
	} else {
		fmt.Println("no oscillation found")
	}

	resp := analysis.SpringResponse(meta.Stiffness, meta.Damping)
	if resp.Underdamped {
		// energy and distance metrics oscillate at twice the position frequency
		fmt.Printf("predicted position period: %.2f ticks (half: %.2f)\n", resp.Period, resp.Period/2)
	} else {
		fmt.Println("predicted: overdamped, no oscillation")
	}
	fmt.Printf("predicted decay per tick: %.4f\n", resp.Decay)
	return nil
}

// longestSpan returns the sample range [from, to) between transition ticks
// with the most samples.
func longestSpan(toggles []uint64, n int) (int, int) {
	bestFrom, bestTo, prev := 0, 0, 0
	for _, t := range append(append([]uint64{}, toggles...), uint64(n)) {
		cut := min(int(t)+1, n)
		if cut-prev > bestTo-bestFrom {
			bestFrom, bestTo = prev, cut
		}
		prev = cut
	}
	return bestFrom, bestTo
}

func runScript(cmd *cobra.Command, args []string) error {
	sc, err := automation.LoadScenario(args[0])
	if err != nil {
		return err
	}
	trials, _ := cmd.Flags().GetInt("trials")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	fmt.Printf("scenario: %s\n", sc.Name)
	if sc.Description != "" {
		fmt.Printf("%s\n", sc.Description)
	}
	fmt.Println()

	if trials > 1 {
		results, err := automation.RunTrials(ctx, sc, trials, sc.Seed)
		if err != nil {
			return err
		}
		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "SEED\tKINETIC\tDISTANCE\tSETTLED\tDRIFT\tERROR")
		for _, r := range results {
			errText := "-"
			if r.Err != nil {
				errText = r.Err.Error()
			}
			fmt.Fprintf(w, "%d\t%.4g\t%.4g\t%.0f%%\t%.2g\t%s\n", r.Seed,
				r.Metrics["kinetic_energy"], r.Metrics["target_distance"],
				r.Metrics["settled"]*100, r.Metrics["orientation_drift"], errText)
		}
		return w.Flush()
	}

	result, cfg, err := automation.Run(ctx, sc)
	if err != nil {
		return err
	}
	fmt.Printf("seed: %d, transitions at %v\n", cfg.Seed, result.Toggles)
	for _, name := range result.Names {
		fmt.Printf("%-18s %.6g\n", name, result.Metrics[name])
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}
	runID, err := st.Save(storage.RunMetadata{
		Seed:           cfg.Seed,
		Particles:      cfg.Particles,
		Stiffness:      cfg.Stiffness,
		Damping:        cfg.Damping,
		ExplosionForce: cfg.ExplosionForce,
		Ticks:          result.StepsTaken,
		ToggleEvery:    sc.ToggleEvery,
	}, result)
	if err != nil {
		return err
	}
	fmt.Printf("\nsaved: %s\n", runID)
	return nil
}

func sweep(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	stiffness, _ := cmd.Flags().GetFloat64Slice("stiffness-values")
	damping, _ := cmd.Flags().GetFloat64Slice("damping-values")

	g := optim.NewGridSearch(stiffness, damping)
	g.Hold, _ = cmd.Flags().GetInt("hold")
	g.Window, _ = cmd.Flags().GetInt("window")
	g.Threshold, _ = cmd.Flags().GetFloat64("threshold")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	trials, err := g.Search(ctx, cfg)
	if err != nil {
		return err
	}

	fmt.Printf("reform time to %.0f%% settled, %d particles\n\n", g.Threshold*100, cfg.Particles)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "STIFFNESS\tDAMPING\tTICKS\tPERIOD\tDECAY")
	for _, tr := range trials {
		ticks := "never"
		if tr.Settled {
			ticks = fmt.Sprintf("%d", tr.SettleTicks)
		}
		period := "-"
		if tr.Response.Underdamped {
			period = fmt.Sprintf("%.1f", tr.Response.Period)
		}
		fmt.Fprintf(w, "%g\t%g\t%s\t%s\t%.4f\n", tr.Stiffness, tr.Damping, ticks, period, tr.Response.Decay)
	}
	return w.Flush()
}

// snapshot runs headless and writes the final frame as SVG.
func snapshot(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	engine, err := cfg.NewEngine()
	if err != nil {
		return err
	}

	width, _ := cmd.Flags().GetInt("width")
	height, _ := cmd.Flags().GetInt("height")
	yaw, _ := cmd.Flags().GetFloat64("yaw")
	scene := viz.NewScene(width, height)
	scene.Camera.Orbit(yaw, 0)

	s := sim.New(engine)
	s.AddSink(scene)
	result, err := s.Run(context.Background(), sim.Config{Ticks: cfg.Ticks, ToggleEvery: cfg.ToggleEvery})
	if err != nil {
		return err
	}
	if result.StepsTaken == 0 {
		if _, err := engine.Render(scene, nil); err != nil {
			return err
		}
	}

	if err := os.WriteFile(args[0], []byte(export.CanvasToSVG(scene.Canvas, 4)), 0644); err != nil {
		return err
	}
	fmt.Printf("wrote %s (tick %d, %s, %d visible)\n", args[0], scene.Tick, scene.State, scene.Visible)
	return nil
}
