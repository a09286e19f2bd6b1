// Package config provides configuration loading for colorkit.
// Configuration files are Lua scripts that assign a `colorkit` table;
// values may be overridden by COLORKIT_* environment variables.
package config

import (
	"time"

	"github.com/opd-ai/go-colorkit/pkg/colorkit"
)

// Config represents a complete colorkit configuration.
type Config struct {
	// Output contains rendering preferences for the CLI.
	Output OutputConfig
	// Amounts contains the defaults used by manipulation commands.
	Amounts AmountConfig
	// Readability contains the WCAG defaults for contrast checks.
	Readability ReadabilityConfig
	// Log contains logger settings.
	Log LogConfig
	// Script contains Lua script execution limits.
	Script ScriptConfig
	// Palette maps user names to color strings. Every entry must parse.
	Palette map[string]string
}

// OutputConfig holds rendering preferences.
type OutputConfig struct {
	// Format is the format colors are printed in. Empty keeps each
	// color's own format.
	Format colorkit.Format
	// Swatch enables terminal color swatches next to printed colors.
	Swatch bool
}

// AmountConfig holds default arguments for manipulators and schemes.
type AmountConfig struct {
	// Adjust is the amount used by lighten, darken, saturate,
	// desaturate and brighten when none is given.
	Adjust float64
	// Mix is the default mix percentage.
	Mix float64
	// AnalogousResults is the default number of analogous colors.
	AnalogousResults int
	// AnalogousSlices is the default number of hue wheel slices.
	AnalogousSlices int
	// MonochromaticResults is the default number of monochromatic colors.
	MonochromaticResults int
}

// ReadabilityConfig holds WCAG defaults.
type ReadabilityConfig struct {
	// Level is "AA" or "AAA".
	Level string
	// Size is "small" or "large".
	Size string
	// Fallback enables black and white fallbacks in most-readable queries.
	Fallback bool
}

// LogConfig holds logger settings.
type LogConfig struct {
	// Level is one of debug, info, warn, error or off.
	Level string
	// Format is "text" or "json".
	Format string
}

// ScriptConfig holds Lua runtime limits and watch settings.
type ScriptConfig struct {
	// CPULimit is the instruction budget per script run. 0 is unlimited.
	CPULimit uint64
	// MemoryLimit is the memory budget in bytes per script run. 0 is unlimited.
	MemoryLimit uint64
	// WatchDebounce delays re-runs after a watched file changes.
	WatchDebounce time.Duration
}

// ReadableOptions converts the readability defaults into engine options.
func (c *Config) ReadableOptions() colorkit.ReadableOptions {
	return colorkit.ReadableOptions{
		WCAGOptions: colorkit.WCAGOptions{
			Level: c.Readability.Level,
			Size:  c.Readability.Size,
		},
		IncludeFallbackColors: c.Readability.Fallback,
	}
}
