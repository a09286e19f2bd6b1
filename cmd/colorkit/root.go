package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/opd-ai/go-colorkit/internal/config"
	"github.com/opd-ai/go-colorkit/internal/logging"
	"github.com/opd-ai/go-colorkit/internal/metrics"
	"github.com/opd-ai/go-colorkit/internal/profiling"
	"github.com/opd-ai/go-colorkit/internal/render"
	"github.com/opd-ai/go-colorkit/pkg/colorkit"
)

// globalFlags holds the persistent flags shared by every command.
type globalFlags struct {
	configPath string
	logLevel   string
	logFormat  string
	format     string
	output     string
	noSwatch   bool
	cpuProfile string
	memProfile string
	stats      bool
}

// app carries the state a command needs once the persistent flags and
// the configuration have been resolved.
type app struct {
	stdout io.Writer
	stderr io.Writer
	flags  globalFlags

	cfg      *config.Config
	logger   logging.Logger
	metrics  *metrics.Metrics
	printer  *render.Printer
	output   render.Output
	profiler *profiling.Profiler
}

func newApp(stdout, stderr io.Writer) *app {
	return &app{
		stdout:  stdout,
		stderr:  stderr,
		logger:  logging.NopLogger(),
		metrics: metrics.New(),
	}
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:   "colorkit",
		Short: "Parse, convert and manipulate colors",
		Long: `colorkit parses colors written as hex, rgb(), hsl(), hsv() or CSS names,
converts between formats, lightens, darkens and spins them, builds color
schemes and checks WCAG contrast. Lua scripts can drive the same engine,
and the tools are available to MCP clients over stdio.`,
		Version: Version,
		// Errors are reported by cobra; usage is only printed on request.
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
	}
	root.SetVersionTemplate(`{{printf "colorkit version %s\n" .Version}}`)

	pf := root.PersistentFlags()
	pf.StringVarP(&a.flags.configPath, "config", "c", "", "Path to the Lua configuration file")
	pf.StringVar(&a.flags.logLevel, "log-level", "", "Log level: debug, info, warn, error or off")
	pf.StringVar(&a.flags.logFormat, "log-format", "", "Log format: text or json")
	pf.StringVarP(&a.flags.format, "format", "f", "", "Color format for printed colors (hex, rgb, hsl, ...)")
	pf.StringVarP(&a.flags.output, "output", "o", string(render.OutputText), "Output: text, json or yaml")
	pf.BoolVar(&a.flags.noSwatch, "no-swatch", false, "Disable terminal color swatches")
	pf.StringVar(&a.flags.cpuProfile, "cpuprofile", "", "Write CPU profile to file")
	pf.StringVar(&a.flags.memProfile, "memprofile", "", "Write memory profile to file")
	pf.BoolVar(&a.flags.stats, "stats", false, "Log usage counters on exit")

	root.AddCommand(
		newConvertCmd(a),
		newAdjustCmd(a),
		newMixCmd(a),
		newSchemeCmd(a),
		newContrastCmd(a),
		newReadableCmd(a),
		newNamesCmd(a),
		newRandomCmd(a),
		newRunCmd(a),
		newMCPCmd(a),
		newVersionCmd(),
	)
	return root
}

// setup loads the configuration, applies flag overrides and starts the
// profiler.
func (a *app) setup(cmd *cobra.Command) error {
	loader, err := config.NewLoader()
	if err != nil {
		return err
	}
	defer loader.Close()

	cfg, err := loader.Load(a.flags.configPath)
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("log-level") {
		cfg.Log.Level = a.flags.logLevel
	}
	if flags.Changed("log-format") {
		cfg.Log.Format = a.flags.logFormat
	}
	if flags.Changed("format") {
		f, ok := colorkit.ParseFormat(a.flags.format)
		if !ok {
			return fmt.Errorf("%w: unknown format %q", colorkit.ErrInvalidArgument, a.flags.format)
		}
		cfg.Output.Format = f
	}
	if a.flags.noSwatch {
		cfg.Output.Swatch = false
	}

	logger, err := logging.New(a.stderr, cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		return err
	}
	output, err := render.ParseOutput(a.flags.output)
	if err != nil {
		return err
	}

	a.cfg = cfg
	a.logger = logger
	a.output = output
	a.printer = render.NewPrinter(a.stdout, render.Options{
		Format: cfg.Output.Format,
		Swatch: cfg.Output.Swatch,
	})

	profConfig := profiling.Config{
		CPUProfilePath: a.flags.cpuProfile,
		MemProfilePath: a.flags.memProfile,
	}
	if profConfig.Enabled() {
		a.profiler = profiling.New(profConfig)
		if err := a.profiler.Start(); err != nil {
			return fmt.Errorf("failed to start profiling: %w", err)
		}
	}

	a.logger.Debug("configuration loaded",
		"format", string(cfg.Output.Format),
		"swatch", cfg.Output.Swatch,
		"palette", len(cfg.Palette))
	return nil
}

// shutdown stops the profiler and logs counters when requested. It runs
// after every command, including failed ones.
func (a *app) shutdown() {
	if a.profiler != nil && a.profiler.IsRunning() {
		if err := a.profiler.Stop(); err != nil {
			a.logger.Warn("failed to stop profiling", "error", err)
		}
	}
	if a.flags.stats {
		s := a.metrics.Snapshot()
		a.logger.Info("stats",
			"parses", s.Parses,
			"invalid_inputs", s.InvalidInputs,
			"script_runs", s.ScriptRuns,
			"script_errors", s.ScriptErrors,
			"tool_calls", s.ToolCalls,
			"tool_errors", s.ToolErrors,
			"config_reloads", s.ConfigReloads,
			"script_latency_avg", s.ScriptLatencyAvg)
	}
}

// parseColor parses input, resolving palette names from the configuration
// first. Invalid input is an error.
func (a *app) parseColor(input string) (*colorkit.Color, error) {
	if a.cfg != nil {
		if value, ok := a.cfg.Palette[input]; ok {
			input = value
		}
	}
	c, err := colorkit.ParseStrict(input)
	a.metrics.RecordParse(err == nil)
	if err != nil {
		return nil, err
	}
	return c, nil
}

// structured reports whether results are encoded instead of printed.
func (a *app) structured() bool {
	return a.output != render.OutputText
}

// emitColor writes one color as text or as a Record.
func (a *app) emitColor(c *colorkit.Color) error {
	if a.structured() {
		return render.Encode(a.stdout, a.output, render.Describe(c))
	}
	return a.printer.PrintColor(c)
}

// emitColors writes colors as a titled list or as Records.
func (a *app) emitColors(title string, colors []*colorkit.Color) error {
	if a.structured() {
		return render.Encode(a.stdout, a.output, render.DescribeAll(colors))
	}
	return a.printer.PrintColors(title, colors)
}
