package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/san-kum/orbitsim/internal/config"
	"github.com/san-kum/orbitsim/internal/dynamo"
	"github.com/san-kum/orbitsim/internal/loader"
)

const defaultPreset = "sun_earth"

// setup is everything a command needs to start a simulation.
type setup struct {
	cfg    *config.Config
	bodies dynamo.Bodies
	source string
}

// resolve builds the run configuration. Precedence, lowest first: built-in
// default preset, --preset or --config, then flags the user actually set.
func resolve(cmd *cobra.Command) (*setup, error) {
	var (
		cfg    *config.Config
		source string
	)

	switch {
	case preset != "" && configFile != "":
		return nil, fmt.Errorf("--preset and --config are mutually exclusive")
	case configFile != "":
		c, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = c
		source = strings.TrimSuffix(filepath.Base(configFile), filepath.Ext(configFile))
	default:
		name := preset
		if name == "" {
			name = defaultPreset
		}
		cfg = config.GetPreset(name)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", name, config.ListPresets())
		}
		source = name
	}

	flags := cmd.Flags()
	if flags.Changed("integrator") {
		cfg.Integrator = integrator
	}
	if flags.Changed("factor") {
		cfg.Factor = factor
	}
	if flags.Changed("ticks") {
		cfg.Ticks = ticks
	}
	if flags.Changed("scale") {
		cfg.Scale = scale
	}
	if flags.Changed("record-every") {
		cfg.RecordEvery = recordEvery
	}
	if flags.Changed("bodies") {
		cfg.BodiesFile = bodiesFile
		cfg.Bodies = nil
		source = strings.TrimSuffix(filepath.Base(bodiesFile), filepath.Ext(bodiesFile))
	}
	if flags.Changed("include-sun") {
		cfg.IncludeSun = includeSun
	}
	if flags.Changed("only") {
		cfg.Only = only
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	bodies, err := buildBodies(cfg)
	if err != nil {
		return nil, err
	}
	return &setup{cfg: cfg, bodies: bodies, source: source}, nil
}

func buildBodies(cfg *config.Config) (dynamo.Bodies, error) {
	if cfg.BodiesFile != "" {
		return loader.LoadFile(cfg.BodiesFile, loader.Options{
			IncludeSun: cfg.IncludeSun,
			Only:       cfg.Only,
		})
	}
	return cfg.BuildBodies()
}
