package config

import (
	"testing"

	"github.com/opd-ai/go-colorkit/pkg/colorkit"
)

func TestExpandEnv(t *testing.T) {
	t.Setenv("TEST_COLORKIT_VAR", "test_value")
	t.Setenv("TEST_COLORKIT_BRAND", "#336699")
	t.Setenv("TEST_COLORKIT_EMPTY", "")

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "no variables",
			input:    "plain text without variables",
			expected: "plain text without variables",
		},
		{
			name:     "simple ${VAR} format",
			input:    "prefix ${TEST_COLORKIT_VAR} suffix",
			expected: "prefix test_value suffix",
		},
		{
			name:     "simple $VAR format",
			input:    "prefix $TEST_COLORKIT_VAR suffix",
			expected: "prefix test_value suffix",
		},
		{
			name:     "unset variable becomes empty",
			input:    "prefix ${UNSET_VAR_12345} suffix",
			expected: "prefix  suffix",
		},
		{
			name:     "unset variable with default",
			input:    "${UNSET_VAR_12345:-tomato}",
			expected: "tomato",
		},
		{
			name:     "empty variable uses default",
			input:    "${TEST_COLORKIT_EMPTY:-navy}",
			expected: "navy",
		},
		{
			name:     "set variable ignores default",
			input:    "${TEST_COLORKIT_BRAND:-red}",
			expected: "#336699",
		},
		{
			name:     "empty default",
			input:    "${UNSET_VAR_12345:-}",
			expected: "",
		},
		{
			name:     "default containing a color function",
			input:    "${UNSET_VAR_12345:-rgb(1, 2, 3)}",
			expected: "rgb(1, 2, 3)",
		},
		{
			name:     "multiple variables",
			input:    "$TEST_COLORKIT_VAR/${TEST_COLORKIT_BRAND}",
			expected: "test_value/#336699",
		},
		{
			name:     "hex color untouched",
			input:    "#ff0000",
			expected: "#ff0000",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExpandEnv(tt.input); got != tt.expected {
				t.Errorf("ExpandEnv(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestExpandEnvConfig(t *testing.T) {
	t.Setenv("TEST_COLORKIT_ACCENT", "tomato")

	cfg := DefaultConfig()
	cfg.Palette["accent"] = "${TEST_COLORKIT_ACCENT}"
	cfg.Palette["brand"] = "${UNSET_VAR_12345:-#336699}"

	ExpandEnvConfig(&cfg)

	if cfg.Palette["accent"] != "tomato" {
		t.Errorf("accent = %q, want tomato", cfg.Palette["accent"])
	}
	if cfg.Palette["brand"] != "#336699" {
		t.Errorf("brand = %q, want #336699", cfg.Palette["brand"])
	}

	// nil config must not panic
	ExpandEnvConfig(nil)
}

func TestApplyEnvOverrides(t *testing.T) {
	env := map[string]string{
		EnvFormat:    " HSL ",
		EnvLogLevel:  "debug",
		EnvLogFormat: "json",
		EnvWCAGLevel: "aaa",
		EnvWCAGSize:  "LARGE",
		EnvNoSwatch:  "true",
	}

	cfg := DefaultConfig()
	ApplyEnvOverridesFunc(&cfg, func(key string) string { return env[key] })

	if cfg.Output.Format != colorkit.FormatHSL {
		t.Errorf("Format = %q, want hsl", cfg.Output.Format)
	}
	if cfg.Log.Level != "debug" || cfg.Log.Format != "json" {
		t.Errorf("Log = %+v, want debug/json", cfg.Log)
	}
	if cfg.Readability.Level != "AAA" || cfg.Readability.Size != "large" {
		t.Errorf("Readability = %+v, want AAA/large", cfg.Readability)
	}
	if cfg.Output.Swatch {
		t.Error("expected swatches disabled")
	}
}

func TestApplyEnvOverridesKeepsDefaults(t *testing.T) {
	cfg := DefaultConfig()
	ApplyEnvOverridesFunc(&cfg, func(string) string { return "" })

	want := DefaultConfig()
	if cfg.Output != want.Output || cfg.Log != want.Log || cfg.Readability != want.Readability {
		t.Errorf("empty environment changed config: %+v", cfg)
	}

	cfg.Output.Swatch = true
	ApplyEnvOverridesFunc(&cfg, func(key string) string {
		if key == EnvNoSwatch {
			return "not-a-bool"
		}
		return ""
	})
	if !cfg.Output.Swatch {
		t.Error("unparsable COLORKIT_NO_SWATCH should be ignored")
	}
}
