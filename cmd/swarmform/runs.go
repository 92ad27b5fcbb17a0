package main

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"text/tabwriter"

	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/swarmform/internal/config"
	"github.com/san-kum/swarmform/internal/export"
	"github.com/san-kum/swarmform/internal/storage"
	"github.com/spf13/cobra"
)

func listRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTIME\tPARTICLES\tSEED\tTICKS\tTOGGLES\tSETTLED")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%d\t%d\t%d\t%d\t%.0f%%\n",
			run.ID,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Particles,
			run.Seed,
			run.Ticks,
			len(run.Toggles),
			run.Metrics["settled"]*100,
		)
	}

	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}
	trace, err := st.LoadTrace(runID)
	if err != nil {
		return err
	}
	if len(trace.Samples) == 0 {
		return fmt.Errorf("no data to plot")
	}

	names, _ := cmd.Flags().GetStringSlice("metric")
	if len(names) == 0 {
		names = trace.Names
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("particles: %d  seed: %d\n", meta.Particles, meta.Seed)
	fmt.Printf("samples: %d  toggles at: %v\n\n", len(trace.Samples), meta.Toggles)

	for i, name := range names {
		data := trace.Column(name)
		if data == nil {
			return fmt.Errorf("unknown metric: %s (available: %v)", name, trace.Names)
		}
		if path, _ := cmd.Flags().GetString("svg"); path != "" && i == 0 {
			marks := make([]int, len(meta.Toggles))
			for j, t := range meta.Toggles {
				marks[j] = int(t)
			}
			if err := os.WriteFile(path, []byte(export.SeriesToSVG(data, marks, 800, 300, "#2e8b57")), 0644); err != nil {
				return err
			}
		}
		graph := asciigraph.Plot(data,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption(name),
		)
		fmt.Println(graph)
		fmt.Println()
	}

	return nil
}

func exportRun(cmd *cobra.Command, args []string) error {
	meta, err := storage.New(dataDir).Load(args[0])
	if err != nil {
		return err
	}
	return storage.ExportJSON(os.Stdout, meta)
}

func exportCSV(cmd *cobra.Command, args []string) error {
	trace, err := storage.New(dataDir).LoadTrace(args[0])
	if err != nil {
		return err
	}
	if len(trace.Samples) == 0 {
		return fmt.Errorf("no data to export")
	}

	w := csv.NewWriter(os.Stdout)
	defer w.Flush()

	if err := w.Write(append([]string{"tick", "state"}, trace.Names...)); err != nil {
		return err
	}
	for i, sample := range trace.Samples {
		row := []string{strconv.FormatUint(trace.Ticks[i], 10), trace.States[i]}
		for _, val := range sample {
			row = append(row, strconv.FormatFloat(val, 'f', 6, 64))
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	return nil
}

func exportJSON(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	trace, err := st.LoadTrace(args[0])
	if err != nil {
		return err
	}

	return storage.ExportJSON(os.Stdout, struct {
		*storage.RunMetadata
		Names   []string    `json:"names"`
		Ticks   []uint64    `json:"ticks"`
		States  []string    `json:"states"`
		Samples [][]float64 `json:"samples"`
	}{meta, trace.Names, trace.Ticks, trace.States, trace.Samples})
}

func listPresets(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tPARTICLES\tSTIFFNESS\tDAMPING\tFORCE\tSPIN\tTHEME")
	for _, name := range config.ListPresets() {
		cfg := config.GetPreset(name)
		fmt.Fprintf(w, "%s\t%d\t%.3f\t%.3f\t%.2f\t%.2f\t%s\n",
			name, cfg.Particles, cfg.Stiffness, cfg.Damping, cfg.ExplosionForce, cfg.SpinImpulse, cfg.Theme)
	}
	return w.Flush()
}

func saveConfig(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	if err := config.Save(args[0], cfg); err != nil {
		return err
	}
	fmt.Printf("wrote %s\n", args[0])
	return nil
}
