package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/opd-ai/go-colorkit/pkg/colorkit"
)

func newTestLoader(t *testing.T, env map[string]string) *Loader {
	t.Helper()
	loader, err := NewLoader()
	if err != nil {
		t.Fatalf("NewLoader() error = %v", err)
	}
	t.Cleanup(func() { loader.Close() })
	loader.getenv = func(key string) string { return env[key] }
	return loader
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), FileName)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	return path
}

func TestLoaderLoadFile(t *testing.T) {
	t.Setenv("TEST_COLORKIT_ACCENT", "tomato")
	path := writeConfig(t, `
		colorkit = {
			format = "rgb",
			palette = { accent = "${TEST_COLORKIT_ACCENT}" },
		}
	`)

	loader := newTestLoader(t, map[string]string{EnvWCAGLevel: "AAA"})
	cfg, err := loader.Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Output.Format != colorkit.FormatRGB {
		t.Errorf("Format = %q, want rgb", cfg.Output.Format)
	}
	if cfg.Palette["accent"] != "tomato" {
		t.Errorf("palette accent = %q, want tomato", cfg.Palette["accent"])
	}
	if cfg.Readability.Level != colorkit.LevelAAA {
		t.Errorf("environment override not applied: %q", cfg.Readability.Level)
	}
}

func TestLoaderEnvPath(t *testing.T) {
	path := writeConfig(t, `colorkit = { format = "hsv" }`)

	loader := newTestLoader(t, map[string]string{EnvConfigPath: path})
	cfg, err := loader.Load("")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Output.Format != colorkit.FormatHSV {
		t.Errorf("Format = %q, want hsv", cfg.Output.Format)
	}
}

func TestLoaderMissingDefaultFile(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	loader := newTestLoader(t, nil)
	cfg, err := loader.Load("")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Amounts.Adjust != colorkit.DefaultAmount {
		t.Errorf("expected defaults, got %+v", cfg.Amounts)
	}
}

func TestLoaderMissingExplicitFile(t *testing.T) {
	loader := newTestLoader(t, nil)
	_, err := loader.Load(filepath.Join(t.TempDir(), "missing.lua"))
	if !errors.Is(err, fs.ErrNotExist) {
		t.Fatalf("expected fs.ErrNotExist, got %v", err)
	}
	if got := colorkit.CategoryOf(err); got != colorkit.ErrorCategoryIO {
		t.Errorf("category = %v, want io", got)
	}
}

func TestLoaderInvalidConfig(t *testing.T) {
	path := writeConfig(t, `colorkit = { palette = { brand = "#nothex" } }`)

	loader := newTestLoader(t, nil)
	_, err := loader.Load(path)
	if !errors.Is(err, ErrInvalidConfig) {
		t.Fatalf("expected ErrInvalidConfig, got %v", err)
	}
	if got := colorkit.CategoryOf(err); got != colorkit.ErrorCategoryConfig {
		t.Errorf("category = %v, want config", got)
	}

	var ce *colorkit.CategorizedError
	if errors.As(err, &ce) && ce.Context["path"] != path {
		t.Errorf("context path = %q, want %q", ce.Context["path"], path)
	}
}

func TestLoaderInvalidEnvOverride(t *testing.T) {
	loader := newTestLoader(t, map[string]string{EnvFormat: "cmyk"})
	_, err := loader.Load(writeConfig(t, ""))
	if !errors.Is(err, ErrInvalidConfig) {
		t.Fatalf("expected ErrInvalidConfig, got %v", err)
	}
	if !strings.Contains(err.Error(), "output.format") {
		t.Errorf("error should name the field: %v", err)
	}
}

func TestLoaderParseReader(t *testing.T) {
	loader := newTestLoader(t, nil)
	cfg, err := loader.ParseReader(strings.NewReader(`colorkit = { fallback = true }`))
	if err != nil {
		t.Fatalf("ParseReader() error = %v", err)
	}
	if !cfg.Readability.Fallback {
		t.Error("expected fallback enabled")
	}
}

func TestDefaultPath(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)

	path, err := DefaultPath()
	if err != nil {
		t.Fatalf("DefaultPath() error = %v", err)
	}
	if want := filepath.Join(dir, "colorkit", FileName); path != want {
		t.Errorf("DefaultPath() = %q, want %q", path, want)
	}
}

func TestReadableOptions(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Readability = ReadabilityConfig{Level: "AAA", Size: "large", Fallback: true}

	opts := cfg.ReadableOptions()
	if opts.Level != "AAA" || opts.Size != "large" || !opts.IncludeFallbackColors {
		t.Errorf("ReadableOptions() = %+v", opts)
	}
}
