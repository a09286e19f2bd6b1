package config

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/opd-ai/go-colorkit/pkg/colorkit"
)

var (
	// ErrInvalidConfig is wrapped by validation failures.
	ErrInvalidConfig = errors.New("invalid configuration")
)

// Loader reads configuration files and applies environment overrides.
type Loader struct {
	luaParser *LuaConfigParser
	getenv    func(string) string
}

// NewLoader creates a Loader reading overrides from the process environment.
func NewLoader() (*Loader, error) {
	luaParser, err := NewLuaConfigParser()
	if err != nil {
		return nil, fmt.Errorf("failed to create Lua parser: %w", err)
	}

	return &Loader{
		luaParser: luaParser,
		getenv:    os.Getenv,
	}, nil
}

// Load resolves and loads the configuration. An explicit path must exist.
// With an empty path, COLORKIT_CONFIG and then DefaultPath are tried and
// a missing file yields the defaults. The result is validated; failures
// are returned as *colorkit.CategorizedError in the config category.
func (l *Loader) Load(path string) (*Config, error) {
	explicit := path != ""
	if !explicit {
		path = l.getenv(EnvConfigPath)
		explicit = path != ""
	}
	if !explicit {
		var err error
		if path, err = DefaultPath(); err != nil {
			path = ""
		}
	}

	cfg, err := l.read(path, explicit)
	if err != nil {
		return nil, categorize(err, path)
	}

	ExpandEnvConfig(cfg)
	ApplyEnvOverridesFunc(cfg, l.getenv)

	if err := cfg.Validate().Error(); err != nil {
		return nil, categorize(err, path)
	}
	return cfg, nil
}

func (l *Loader) read(path string, explicit bool) (*Config, error) {
	if path == "" {
		cfg := DefaultConfig()
		return &cfg, nil
	}

	content, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) && !explicit {
		cfg := DefaultConfig()
		return &cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	return l.luaParser.Parse(content)
}

// ParseReader parses configuration from an io.Reader without applying
// environment overrides or validation.
func (l *Loader) ParseReader(r io.Reader) (*Config, error) {
	content, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	return l.luaParser.Parse(content)
}

// Close releases resources associated with the loader.
func (l *Loader) Close() error {
	if l.luaParser != nil {
		return l.luaParser.Close()
	}
	return nil
}

func categorize(err error, path string) error {
	category := colorkit.ErrorCategoryConfig
	if errors.Is(err, fs.ErrNotExist) || errors.Is(err, fs.ErrPermission) {
		category = colorkit.ErrorCategoryIO
	}
	ce := colorkit.NewCategorizedError(err, category, colorkit.SeverityError)
	if path != "" {
		ce.WithContext("path", path)
	}
	return ce
}
