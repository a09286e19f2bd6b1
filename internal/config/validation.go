package config

import (
	"fmt"
	"sort"
	"strings"

	"github.com/opd-ai/go-colorkit/internal/logging"
	"github.com/opd-ai/go-colorkit/pkg/colorkit"
)

// ValidationError represents a configuration validation error.
// It contains the field name and a description of the issue.
type ValidationError struct {
	Field   string
	Message string
}

// Error implements the error interface.
func (ve ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", ve.Field, ve.Message)
}

// ValidationResult holds the results of a configuration validation.
type ValidationResult struct {
	// Errors contains all validation errors found.
	Errors []ValidationError
	// Warnings contains non-fatal issues.
	Warnings []ValidationError
}

// IsValid returns true if there are no validation errors.
func (vr *ValidationResult) IsValid() bool {
	return len(vr.Errors) == 0
}

// Error returns a combined error wrapping ErrInvalidConfig, or nil.
func (vr *ValidationResult) Error() error {
	if len(vr.Errors) == 0 {
		return nil
	}

	messages := make([]string, 0, len(vr.Errors))
	for _, e := range vr.Errors {
		messages = append(messages, e.Error())
	}
	return fmt.Errorf("%w: %s", ErrInvalidConfig, strings.Join(messages, "; "))
}

// AddError adds a validation error.
func (vr *ValidationResult) AddError(field, message string) {
	vr.Errors = append(vr.Errors, ValidationError{Field: field, Message: message})
}

// AddWarning adds a validation warning.
func (vr *ValidationResult) AddWarning(field, message string) {
	vr.Warnings = append(vr.Warnings, ValidationError{Field: field, Message: message})
}

// Validate checks every section of cfg and collects all problems.
func (c *Config) Validate() *ValidationResult {
	result := &ValidationResult{}

	c.validateOutput(result)
	c.validateAmounts(result)
	c.validateReadability(result)
	c.validateLog(result)
	c.validateScript(result)
	c.validatePalette(result)

	return result
}

func (c *Config) validateOutput(result *ValidationResult) {
	if c.Output.Format == colorkit.FormatNone {
		return
	}
	if _, ok := colorkit.ParseFormat(string(c.Output.Format)); !ok {
		result.AddError("output.format", fmt.Sprintf("unknown format %q", c.Output.Format))
	}
}

func (c *Config) validateAmounts(result *ValidationResult) {
	a := c.Amounts
	if a.Adjust < 0 || a.Adjust > 100 {
		result.AddError("amounts.adjust", fmt.Sprintf("must be within 0..100, got %g", a.Adjust))
	}
	if a.Mix < 0 || a.Mix > 100 {
		result.AddError("amounts.mix", fmt.Sprintf("must be within 0..100, got %g", a.Mix))
	}
	checkSchemeSize(result, "amounts.analogous_results", a.AnalogousResults)
	checkSchemeSize(result, "amounts.analogous_slices", a.AnalogousSlices)
	checkSchemeSize(result, "amounts.monochromatic_results", a.MonochromaticResults)
	if a.AnalogousResults > a.AnalogousSlices {
		result.AddWarning("amounts.analogous_results", "exceeds slices; colors will repeat")
	}
}

func checkSchemeSize(result *ValidationResult, field string, v int) {
	switch {
	case v < 1:
		result.AddError(field, fmt.Sprintf("must be positive, got %d", v))
	case v > colorkit.MaxSchemeSize:
		result.AddError(field, fmt.Sprintf("must be at most %d, got %d", colorkit.MaxSchemeSize, v))
	}
}

func (c *Config) validateReadability(result *ValidationResult) {
	switch c.Readability.Level {
	case colorkit.LevelAA, colorkit.LevelAAA:
	default:
		result.AddError("readability.level", fmt.Sprintf("must be AA or AAA, got %q", c.Readability.Level))
	}
	switch c.Readability.Size {
	case colorkit.SizeSmall, colorkit.SizeLarge:
	default:
		result.AddError("readability.size", fmt.Sprintf("must be small or large, got %q", c.Readability.Size))
	}
}

func (c *Config) validateLog(result *ValidationResult) {
	if _, _, err := logging.ParseLevel(c.Log.Level); err != nil {
		result.AddError("log.level", err.Error())
	}
	switch c.Log.Format {
	case logging.FormatText, logging.FormatJSON:
	default:
		result.AddError("log.format", fmt.Sprintf("must be text or json, got %q", c.Log.Format))
	}
}

func (c *Config) validateScript(result *ValidationResult) {
	if c.Script.WatchDebounce < 0 {
		result.AddError("script.watch_debounce", fmt.Sprintf("must be non-negative, got %s", c.Script.WatchDebounce))
	}
	if c.Script.CPULimit == 0 {
		result.AddWarning("script.cpu_limit", "scripts run without an instruction limit")
	}
	if c.Script.MemoryLimit == 0 {
		result.AddWarning("script.memory_limit", "scripts run without a memory limit")
	}
}

func (c *Config) validatePalette(result *ValidationResult) {
	names := make([]string, 0, len(c.Palette))
	for name := range c.Palette {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		field := "palette." + name
		if strings.TrimSpace(name) == "" {
			result.AddError("palette", "empty color name")
			continue
		}
		if !colorkit.Parse(c.Palette[name]).IsValid() {
			result.AddError(field, fmt.Sprintf("invalid color %q", c.Palette[name]))
		}
	}
}
