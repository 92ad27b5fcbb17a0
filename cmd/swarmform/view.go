package main

import (
	"fmt"

	"github.com/san-kum/swarmform/internal/config"
	"github.com/san-kum/swarmform/internal/gui"
	"github.com/san-kum/swarmform/internal/particle"
	"github.com/san-kum/swarmform/internal/viz"
	"github.com/spf13/cobra"
)

// runTUI shows the preset menu unless a preset or config file was given.
func runTUI(cmd *cobra.Command, args []string) error {
	logger, closeLog, err := openLog(logFile)
	if err != nil {
		return err
	}
	defer closeLog()

	var cleanup []func()
	defer func() {
		for _, fn := range cleanup {
			fn()
		}
	}()

	start := func(cfg *config.Config, title string) (*particle.Engine, viz.Options, error) {
		engine, err := cfg.NewEngine()
		if err != nil {
			return nil, viz.Options{}, err
		}
		logger.Printf("engine: %d particles, seed %d", cfg.Particles, cfg.Seed)
		cleanup = append(cleanup, attachSound(engine, logger))
		return engine, viz.Options{Title: title, FPS: cfg.FPS, Theme: cfg.Theme, Logger: logger}, nil
	}

	if preset == "" && configFile == "" {
		return viz.RunMenu(config.ListPresets(), func(name string) (*particle.Engine, viz.Options, error) {
			cfg := config.GetPreset(name)
			if cfg == nil {
				return nil, viz.Options{}, fmt.Errorf("unknown preset: %s", name)
			}
			applyFlags(cmd, cfg)
			if err := cfg.Validate(); err != nil {
				return nil, viz.Options{}, err
			}
			return start(cfg, name)
		})
	}

	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	engine, opts, err := start(cfg, preset)
	if err != nil {
		return err
	}
	return viz.Run(engine, opts)
}

func runGUI(cmd *cobra.Command, args []string) error {
	logger, closeLog, err := openLog(logFile)
	if err != nil {
		return err
	}
	defer closeLog()

	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	engine, err := cfg.NewEngine()
	if err != nil {
		return err
	}
	logger.Printf("engine: %d particles, seed %d", cfg.Particles, cfg.Seed)
	defer attachSound(engine, logger)()

	return gui.Run(engine, gui.Options{Title: "swarmform", FPS: cfg.FPS, Logger: logger})
}
