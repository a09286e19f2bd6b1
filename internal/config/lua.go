package config

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/arnodel/golua/lib"
	rt "github.com/arnodel/golua/runtime"

	"github.com/opd-ai/go-colorkit/pkg/colorkit"
)

// LuaConfigParser evaluates Lua configuration files. A file configures
// colorkit by assigning the global `colorkit` table:
//
//	colorkit = {
//	  format = "hsl",
//	  wcag_level = "AAA",
//	  palette = { brand = "#336699", accent = "${ACCENT:-tomato}" },
//	}
//
// Keys that are absent keep their defaults.
type LuaConfigParser struct {
	runtime *rt.Runtime
	cleanup func()
	mu      sync.Mutex
}

// NewLuaConfigParser creates a LuaConfigParser whose print output is discarded.
func NewLuaConfigParser() (*LuaConfigParser, error) {
	return NewLuaConfigParserWithOutput(io.Discard)
}

// NewLuaConfigParserWithOutput creates a LuaConfigParser with custom output.
func NewLuaConfigParserWithOutput(stdout io.Writer) (*LuaConfigParser, error) {
	if stdout == nil {
		stdout = os.Stdout
	}

	runtime := rt.New(stdout)
	cleanup := lib.LoadAll(runtime)

	return &LuaConfigParser{
		runtime: runtime,
		cleanup: cleanup,
	}, nil
}

// Parse evaluates content and returns the resulting configuration.
// The returned Config has not been validated.
func (p *LuaConfigParser) Parse(content []byte) (cfg *Config, err error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	env := p.runtime.GlobalEnv()
	env.Set(rt.StringValue("colorkit"), rt.NilValue)

	closure, err := p.runtime.CompileAndLoadLuaChunk("config", content, rt.TableValue(env))
	if err != nil {
		return nil, fmt.Errorf("failed to compile Lua configuration: %w", err)
	}

	p.runtime.PushContext(rt.RuntimeContextDef{
		HardLimits: rt.RuntimeResources{
			Cpu:    DefaultCPULimit,
			Memory: DefaultMemoryLimit,
		},
	})
	defer p.runtime.PopContext()

	defer func() {
		if r := recover(); r != nil {
			cfg = nil
			err = fmt.Errorf("failed to execute Lua configuration: %v", r)
		}
	}()

	if _, err := rt.Call1(p.runtime.MainThread(), rt.FunctionValue(closure)); err != nil {
		return nil, fmt.Errorf("failed to execute Lua configuration: %w", err)
	}

	return p.extractConfig()
}

func (p *LuaConfigParser) extractConfig() (*Config, error) {
	cfg := DefaultConfig()

	val := p.runtime.GlobalEnv().Get(rt.StringValue("colorkit"))
	if val == rt.NilValue {
		return &cfg, nil
	}

	table, ok := val.TryTable()
	if !ok {
		return nil, fmt.Errorf("colorkit is not a table")
	}

	if err := extractConfigTable(&cfg, table); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func extractConfigTable(cfg *Config, table *rt.Table) error {
	if val := getTableString(table, "format"); val != nil {
		cfg.Output.Format = colorkit.Format(*val)
	}
	if val := getTableBool(table, "swatch"); val != nil {
		cfg.Output.Swatch = *val
	}

	if val := getTableFloat(table, "amount"); val != nil {
		cfg.Amounts.Adjust = *val
	}
	if val := getTableFloat(table, "mix_amount"); val != nil {
		cfg.Amounts.Mix = *val
	}
	if val := getTableInt(table, "analogous_results"); val != nil {
		cfg.Amounts.AnalogousResults = *val
	}
	if val := getTableInt(table, "analogous_slices"); val != nil {
		cfg.Amounts.AnalogousSlices = *val
	}
	if val := getTableInt(table, "monochromatic_results"); val != nil {
		cfg.Amounts.MonochromaticResults = *val
	}

	if val := getTableString(table, "wcag_level"); val != nil {
		cfg.Readability.Level = *val
	}
	if val := getTableString(table, "wcag_size"); val != nil {
		cfg.Readability.Size = *val
	}
	if val := getTableBool(table, "fallback"); val != nil {
		cfg.Readability.Fallback = *val
	}

	if val := getTableString(table, "log_level"); val != nil {
		cfg.Log.Level = *val
	}
	if val := getTableString(table, "log_format"); val != nil {
		cfg.Log.Format = *val
	}

	if val := getTableInt(table, "cpu_limit"); val != nil {
		if *val < 0 {
			return fmt.Errorf("cpu_limit must be non-negative, got %d", *val)
		}
		cfg.Script.CPULimit = uint64(*val)
	}
	if val := getTableInt(table, "memory_limit"); val != nil {
		if *val < 0 {
			return fmt.Errorf("memory_limit must be non-negative, got %d", *val)
		}
		cfg.Script.MemoryLimit = uint64(*val)
	}
	// watch_debounce is in seconds
	if val := getTableFloat(table, "watch_debounce"); val != nil {
		cfg.Script.WatchDebounce = time.Duration(*val * float64(time.Second))
	}

	return extractPalette(cfg, table)
}

func extractPalette(cfg *Config, table *rt.Table) error {
	val := table.Get(rt.StringValue("palette"))
	if val == rt.NilValue {
		return nil
	}
	palette, ok := val.TryTable()
	if !ok {
		return fmt.Errorf("palette is not a table")
	}

	k, v, _ := palette.Next(rt.NilValue)
	for ; k != rt.NilValue; k, v, _ = palette.Next(k) {
		name, ok := k.TryString()
		if !ok {
			return fmt.Errorf("palette key %v is not a string", k)
		}
		color, ok := v.TryString()
		if !ok {
			return fmt.Errorf("palette.%s is not a string", name)
		}
		cfg.Palette[name] = color
	}
	return nil
}

// Close releases the Lua runtime.
func (p *LuaConfigParser) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.cleanup != nil {
		p.cleanup()
		p.cleanup = nil
	}
	return nil
}

// getTableBool retrieves a boolean value from a Lua table.
// Returns nil if the key doesn't exist or is not a boolean.
func getTableBool(table *rt.Table, key string) *bool {
	val := table.Get(rt.StringValue(key))
	if val == rt.NilValue {
		return nil
	}

	if b, ok := val.TryBool(); ok {
		return &b
	}

	return nil
}

// getTableString retrieves a string value from a Lua table.
// Returns nil if the key doesn't exist or is not a string.
func getTableString(table *rt.Table, key string) *string {
	val := table.Get(rt.StringValue(key))
	if val == rt.NilValue {
		return nil
	}

	if s, ok := val.TryString(); ok {
		return &s
	}

	return nil
}

// getTableFloat retrieves a float64 value from a Lua table.
// Returns nil if the key doesn't exist or is not a number.
func getTableFloat(table *rt.Table, key string) *float64 {
	val := table.Get(rt.StringValue(key))
	if val == rt.NilValue {
		return nil
	}

	if n, ok := val.TryFloat(); ok {
		return &n
	}

	if n, ok := val.TryInt(); ok {
		f := float64(n)
		return &f
	}

	return nil
}

// getTableInt retrieves an int value from a Lua table.
// Returns nil if the key doesn't exist or is not a number.
func getTableInt(table *rt.Table, key string) *int {
	val := table.Get(rt.StringValue(key))
	if val == rt.NilValue {
		return nil
	}

	if n, ok := val.TryInt(); ok {
		i := int(n)
		return &i
	}

	// Floats truncate
	if f, ok := val.TryFloat(); ok {
		i := int(f)
		return &i
	}

	return nil
}
