package main

import (
	"fmt"
	"io"
	"log"
	"os"

	"github.com/san-kum/swarmform/internal/audio"
	"github.com/san-kum/swarmform/internal/config"
	"github.com/san-kum/swarmform/internal/particle"
	"github.com/spf13/cobra"
)

var (
	dataDir    string
	configFile string
	preset     string
	logFile    string
	sound      bool

	// flags holds values bound to the config flags; only the ones the user
	// set are copied over the preset or config file.
	flags = config.DefaultConfig()
)

func main() {
	rootCmd := &cobra.Command{
		Use:          "swarmform",
		Short:        "particle swarm that morphs between a spiral and a scattered shell",
		SilenceUsage: true,
		RunE:         runTUI,
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&dataDir, "data", ".swarmform", "data directory for run traces")
	pf.StringVar(&configFile, "config", "", "config file path (yaml)")
	pf.StringVar(&preset, "preset", "", "use preset configuration")
	pf.StringVar(&logFile, "log", "", "append logs to this file")
	pf.BoolVar(&sound, "sound", false, "play a cue on each transition")

	pf.IntVar(&flags.Particles, "particles", flags.Particles, "number of particles")
	pf.Float64Var(&flags.Stiffness, "stiffness", flags.Stiffness, "spring stiffness per tick")
	pf.Float64Var(&flags.Damping, "damping", flags.Damping, "velocity retained per tick")
	pf.Float64Var(&flags.ExplosionForce, "explosion-force", flags.ExplosionForce, "scatter impulse magnitude")
	pf.Float64Var(&flags.AngularDamping, "angular-damping", flags.AngularDamping, "angular velocity retained per tick")
	pf.Float64Var(&flags.SpinImpulse, "spin", flags.SpinImpulse, "max angular velocity per axis on scatter")
	pf.Float64Var(&flags.FormedScale, "formed-scale", flags.FormedScale, "instance scale while formed")
	pf.Float64Var(&flags.ScatteredScale, "scattered-scale", flags.ScatteredScale, "instance scale while scattered")
	pf.IntVar(&flags.Workers, "workers", flags.Workers, "goroutines per tick")
	pf.Uint64Var(&flags.Seed, "seed", 0, "random seed (0 picks one)")
	pf.IntVar(&flags.FPS, "fps", flags.FPS, "frame rate for live views")
	pf.IntVar(&flags.Ticks, "ticks", flags.Ticks, "ticks for headless runs")
	pf.IntVar(&flags.ToggleEvery, "toggle-every", flags.ToggleEvery, "toggle interval in ticks for headless runs (0 never)")
	pf.StringVar(&flags.Palette.Base, "base-color", flags.Palette.Base, "base color (hex)")
	pf.StringVar(&flags.Palette.Accent, "accent-color", flags.Palette.Accent, "accent color (hex)")
	pf.StringVar(&flags.Theme, "theme", flags.Theme, "terminal theme")

	tuiCmd := &cobra.Command{
		Use:   "tui",
		Short: "run in the terminal",
		RunE:  runTUI,
	}

	guiCmd := &cobra.Command{
		Use:   "gui",
		Short: "run in a window",
		RunE:  runGUI,
	}

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run headless and record metrics",
		RunE:  runHeadless,
	}
	runCmd.Flags().Bool("no-save", false, "do not store the trace")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot run metrics",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}
	plotCmd.Flags().StringSlice("metric", nil, "metrics to plot (default all)")
	plotCmd.Flags().String("svg", "", "also write the first plotted metric to this svg file")

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "export run metadata",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRun,
	}

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export per-tick metrics as csv",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export metadata and per-tick metrics as json",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list presets",
		RunE:  listPresets,
	}

	saveConfigCmd := &cobra.Command{
		Use:   "save-config [path]",
		Short: "write the resolved configuration as yaml",
		Args:  cobra.ExactArgs(1),
		RunE:  saveConfig,
	}

	benchCmd := &cobra.Command{
		Use:   "bench",
		Short: "measure ticks per second across swarm sizes and worker counts",
		RunE:  bench,
	}
	benchCmd.Flags().IntSlice("counts", []int{1000, 3000, 10000, 30000}, "swarm sizes")
	benchCmd.Flags().IntSlice("worker-counts", nil, "worker counts (default 1, 2, 4 and NumCPU)")

	analyzeCmd := &cobra.Command{
		Use:   "analyze [run_id]",
		Short: "frequency analysis of a recorded metric",
		Args:  cobra.ExactArgs(1),
		RunE:  analyzeRun,
	}
	analyzeCmd.Flags().String("metric", "target_distance", "metric to analyze")

	scriptCmd := &cobra.Command{
		Use:   "script [scenario.yaml]",
		Short: "run a scripted scenario",
		Args:  cobra.ExactArgs(1),
		RunE:  runScript,
	}
	scriptCmd.Flags().Int("trials", 1, "repeat with this many seeds and compare")

	sweepCmd := &cobra.Command{
		Use:   "sweep",
		Short: "search stiffness and damping for the fastest reform",
		RunE:  sweep,
	}
	sweepCmd.Flags().Float64Slice("stiffness-values", []float64{0.04, 0.08, 0.12, 0.2}, "stiffness grid")
	sweepCmd.Flags().Float64Slice("damping-values", []float64{0.8, 0.86, 0.92, 0.96}, "damping grid")
	sweepCmd.Flags().Int("hold", 60, "ticks to stay scattered")
	sweepCmd.Flags().Int("window", 600, "ticks allowed to settle")
	sweepCmd.Flags().Float64("threshold", 0.95, "settled fraction that counts as formed")

	snapshotCmd := &cobra.Command{
		Use:   "snapshot [out.svg]",
		Short: "run headless and save the final frame as svg",
		Args:  cobra.ExactArgs(1),
		RunE:  snapshot,
	}
	snapshotCmd.Flags().Int("width", 80, "canvas width in cells")
	snapshotCmd.Flags().Int("height", 40, "canvas height in cells")
	snapshotCmd.Flags().Float64("yaw", 0, "camera yaw in radians")

	rootCmd.AddCommand(tuiCmd, guiCmd, runCmd, listCmd, plotCmd, exportCmd, exportCSVCmd, exportJSONCmd,
		presetsCmd, saveConfigCmd, benchCmd, analyzeCmd, scriptCmd, sweepCmd, snapshotCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// resolveConfig layers defaults, preset, config file and explicitly set flags,
// in that order.
func resolveConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if preset != "" {
		cfg = config.GetPreset(preset)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
	}
	if configFile != "" {
		loaded, err := config.LoadWith(configFile, cfg)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	applyFlags(cmd, cfg)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func applyFlags(cmd *cobra.Command, cfg *config.Config) {
	set := cmd.Flags().Changed
	if set("particles") {
		cfg.Particles = flags.Particles
	}
	if set("stiffness") {
		cfg.Stiffness = flags.Stiffness
	}
	if set("damping") {
		cfg.Damping = flags.Damping
	}
	if set("explosion-force") {
		cfg.ExplosionForce = flags.ExplosionForce
	}
	if set("angular-damping") {
		cfg.AngularDamping = flags.AngularDamping
	}
	if set("spin") {
		cfg.SpinImpulse = flags.SpinImpulse
	}
	if set("formed-scale") {
		cfg.FormedScale = flags.FormedScale
	}
	if set("scattered-scale") {
		cfg.ScatteredScale = flags.ScatteredScale
	}
	if set("workers") {
		cfg.Workers = flags.Workers
	}
	if set("seed") {
		cfg.Seed = flags.Seed
	}
	if set("fps") {
		cfg.FPS = flags.FPS
	}
	if set("ticks") {
		cfg.Ticks = flags.Ticks
	}
	if set("toggle-every") {
		cfg.ToggleEvery = flags.ToggleEvery
	}
	if set("base-color") {
		cfg.Palette.Base = flags.Palette.Base
	}
	if set("accent-color") {
		cfg.Palette.Accent = flags.Palette.Accent
	}
	if set("theme") {
		cfg.Theme = flags.Theme
	}
}

// openLog returns a logger writing to path, or a discarding one if path is
// empty. The closer is always safe to call.
func openLog(path string) (*log.Logger, func(), error) {
	if path == "" {
		return log.New(io.Discard, "", 0), func() {}, nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return nil, nil, err
	}
	return log.New(f, "swarmform ", log.LstdFlags|log.Lmicroseconds), func() { f.Close() }, nil
}

// attachSound registers the transition cue on engine. Audio failures are
// logged and otherwise ignored.
func attachSound(engine *particle.Engine, logger *log.Logger) func() {
	if !sound {
		return func() {}
	}
	cues := audio.NewCues(0.4)
	if err := cues.Initialize(); err != nil {
		logger.Printf("audio disabled: %v", err)
		return func() {}
	}
	engine.OnTransition(cues.OnTransition)
	return cues.Close
}
