package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/opd-ai/go-colorkit/pkg/colorkit"
)

// Default values for configuration options.
const (
	// DefaultLogLevel is the default logger level.
	DefaultLogLevel = "info"
	// DefaultLogFormat is the default logger output format.
	DefaultLogFormat = "text"
	// DefaultCPULimit is the default Lua instruction budget per run.
	DefaultCPULimit = 10_000_000
	// DefaultMemoryLimit is the default Lua memory budget per run (50 MB).
	DefaultMemoryLimit = 50 * 1024 * 1024
	// DefaultWatchDebounce is the default delay before re-running a
	// changed script.
	DefaultWatchDebounce = 200 * time.Millisecond
	// FileName is the configuration file name inside the config directory.
	FileName = "config.lua"
)

// DefaultConfig returns a Config whose values match the engine defaults.
func DefaultConfig() Config {
	return Config{
		Output: OutputConfig{
			Format: colorkit.FormatNone,
			Swatch: true,
		},
		Amounts: AmountConfig{
			Adjust:               colorkit.DefaultAmount,
			Mix:                  colorkit.DefaultMixAmount,
			AnalogousResults:     colorkit.DefaultAnalogousResults,
			AnalogousSlices:      colorkit.DefaultAnalogousSlices,
			MonochromaticResults: colorkit.DefaultMonochromaticResults,
		},
		Readability: ReadabilityConfig{
			Level: colorkit.LevelAA,
			Size:  colorkit.SizeSmall,
		},
		Log: LogConfig{
			Level:  DefaultLogLevel,
			Format: DefaultLogFormat,
		},
		Script: ScriptConfig{
			CPULimit:      DefaultCPULimit,
			MemoryLimit:   DefaultMemoryLimit,
			WatchDebounce: DefaultWatchDebounce,
		},
		Palette: map[string]string{},
	}
}

// DefaultPath returns $XDG_CONFIG_HOME/colorkit/config.lua, falling back
// to the user config directory when XDG_CONFIG_HOME is unset.
func DefaultPath() (string, error) {
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		var err error
		dir, err = os.UserConfigDir()
		if err != nil {
			return "", err
		}
	}
	return filepath.Join(dir, "colorkit", FileName), nil
}
