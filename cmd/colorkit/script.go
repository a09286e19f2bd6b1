package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/opd-ai/go-colorkit/internal/config"
	"github.com/opd-ai/go-colorkit/internal/lua"
	"github.com/opd-ai/go-colorkit/internal/mcpserver"
	"github.com/opd-ai/go-colorkit/internal/watch"
)

func newRunCmd(a *app) *cobra.Command {
	var watchFiles bool

	cmd := &cobra.Command{
		Use:   "run <script.lua>",
		Short: "Run a Lua script against the color engine",
		Long: `Run a Lua script with the colorkit module loaded. Scripts reach it as the
global colorkit or through require("colorkit"); the configured palette is
available as colorkit.palette.

With --watch the script is run again whenever it changes, and the
configuration is reloaded when the file given with --config changes, until
interrupted.`,
		Example: `  colorkit run theme.lua
  colorkit run theme.lua --watch`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			script := args[0]
			if !watchFiles {
				return a.runScript(script)
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return a.watchScript(ctx, script)
		},
	}
	cmd.Flags().BoolVarP(&watchFiles, "watch", "w", false, "Re-run the script when it changes")
	return cmd
}

// runScript executes script in a fresh runtime so runs do not share state.
func (a *app) runScript(script string) error {
	runtime, err := lua.New(lua.RuntimeConfig{
		CPULimit:    a.cfg.Script.CPULimit,
		MemoryLimit: a.cfg.Script.MemoryLimit,
		Stdout:      a.stdout,
	})
	if err != nil {
		return err
	}
	defer runtime.Close()

	if _, err := lua.NewColorModule(runtime,
		lua.WithPalette(a.cfg.Palette),
		lua.WithReadableDefaults(a.cfg.ReadableOptions()),
		lua.WithParseHook(a.metrics.RecordParse),
	); err != nil {
		return err
	}

	start := time.Now()
	_, err = runtime.ExecuteFile(script)
	elapsed := time.Since(start)
	a.metrics.RecordScript(elapsed, err)
	if err != nil {
		return lua.Categorize(err)
	}
	a.logger.Debug("script finished", "script", script, "duration", elapsed)
	return nil
}

// watchScript runs script once and again after every change until ctx is
// done. Script failures are logged and do not stop watching.
func (a *app) watchScript(ctx context.Context, script string) error {
	if err := a.runScript(script); err != nil {
		a.logger.Error("script failed", "script", script, "error", err)
	}

	files := []string{script}
	configPath := ""
	if a.flags.configPath != "" {
		if abs, err := filepath.Abs(a.flags.configPath); err == nil {
			configPath = abs
			files = append(files, configPath)
		}
	}

	w, err := watch.New(files, a.cfg.Script.WatchDebounce,
		func(changed []string) error {
			for _, path := range changed {
				if path == configPath {
					if err := a.reloadConfig(); err != nil {
						return err
					}
				}
			}
			a.logger.Info("running script", "script", script, "changed", changed)
			return a.runScript(script)
		},
		func(err error) {
			a.logger.Error("watch error", "script", script, "error", err)
		},
	)
	if err != nil {
		return err
	}

	a.logger.Info("watching for changes", "files", files)
	if err := w.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

// reloadConfig re-reads the configuration file. The previous
// configuration stays in effect when the new one does not load.
func (a *app) reloadConfig() error {
	loader, err := config.NewLoader()
	if err != nil {
		return err
	}
	defer loader.Close()

	cfg, err := loader.Load(a.flags.configPath)
	if err != nil {
		return fmt.Errorf("config reload failed: %w", err)
	}
	a.cfg.Palette = cfg.Palette
	a.cfg.Readability = cfg.Readability
	a.cfg.Script = cfg.Script
	a.metrics.IncrementConfigReloads()
	a.logger.Info("configuration reloaded", "path", a.flags.configPath)
	return nil
}

func newMCPCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "mcp",
		Short: "Serve the color tools to MCP clients over stdio",
		Long: `Serve the color tools over the Model Context Protocol on stdin and
stdout. Logs go to stderr so they do not interfere with the protocol.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s := mcpserver.New(mcpserver.Options{
				Config:  a.cfg,
				Metrics: a.metrics,
				Logger:  a.logger,
				Version: Version,
			})
			return s.ServeStdio()
		},
	}
}
