package config

import (
	"os"
	"regexp"
	"strconv"
	"strings"

	"github.com/opd-ai/go-colorkit/pkg/colorkit"
)

// envVarPattern matches ${NAME}, ${NAME:-default} and $NAME.
var envVarPattern = regexp.MustCompile(`\$\{([^}]+)\}|\$([a-zA-Z_][a-zA-Z0-9_]*)`)

// ExpandEnv replaces ${NAME}, ${NAME:-default} and $NAME references with
// values from the environment. Unset variables without a default expand
// to the empty string; a default also applies when the variable is empty.
func ExpandEnv(s string) string {
	return expandWith(s, os.Getenv)
}

func expandWith(s string, getenv func(string) string) string {
	return envVarPattern.ReplaceAllStringFunc(s, func(match string) string {
		groups := envVarPattern.FindStringSubmatch(match)
		if groups[2] != "" {
			return getenv(groups[2])
		}

		name, def, hasDefault := strings.Cut(groups[1], ":-")
		if val := getenv(name); val != "" || !hasDefault {
			return val
		}
		return def
	})
}

// Environment variables that override configuration values.
const (
	EnvFormat     = "COLORKIT_FORMAT"
	EnvLogLevel   = "COLORKIT_LOG_LEVEL"
	EnvLogFormat  = "COLORKIT_LOG_FORMAT"
	EnvWCAGLevel  = "COLORKIT_WCAG_LEVEL"
	EnvWCAGSize   = "COLORKIT_WCAG_SIZE"
	EnvNoSwatch   = "COLORKIT_NO_SWATCH"
	EnvConfigPath = "COLORKIT_CONFIG"
)

// ExpandEnvConfig expands environment variable references in palette values.
func ExpandEnvConfig(cfg *Config) {
	if cfg == nil {
		return
	}

	for name, value := range cfg.Palette {
		cfg.Palette[name] = ExpandEnv(value)
	}
}

// ApplyEnvOverrides copies COLORKIT_* environment variables over cfg.
// Unset or empty variables leave the current value in place. Values are
// not validated here; call Validate afterwards.
func ApplyEnvOverrides(cfg *Config) {
	ApplyEnvOverridesFunc(cfg, os.Getenv)
}

// ApplyEnvOverridesFunc is ApplyEnvOverrides with a custom lookup.
func ApplyEnvOverridesFunc(cfg *Config, getenv func(string) string) {
	if cfg == nil || getenv == nil {
		return
	}

	if v := getenv(EnvFormat); v != "" {
		cfg.Output.Format = colorkit.Format(strings.ToLower(strings.TrimSpace(v)))
	}
	if v := getenv(EnvLogLevel); v != "" {
		cfg.Log.Level = v
	}
	if v := getenv(EnvLogFormat); v != "" {
		cfg.Log.Format = v
	}
	if v := getenv(EnvWCAGLevel); v != "" {
		cfg.Readability.Level = strings.ToUpper(v)
	}
	if v := getenv(EnvWCAGSize); v != "" {
		cfg.Readability.Size = strings.ToLower(v)
	}
	if v := getenv(EnvNoSwatch); v != "" {
		if noSwatch, err := strconv.ParseBool(v); err == nil {
			cfg.Output.Swatch = !noSwatch
		}
	}
}
