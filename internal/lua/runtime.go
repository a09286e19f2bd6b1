// Package lua embeds a Golua runtime for colorkit scripts.
// It provides resource limited execution and the colorkit Lua module,
// which exposes color parsing, conversion and manipulation to scripts.
package lua

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/arnodel/golua/lib"
	rt "github.com/arnodel/golua/runtime"
)

// RuntimeConfig contains configuration options for the Lua runtime.
type RuntimeConfig struct {
	// CPULimit is the CPU instruction limit for one execution.
	// 0 means unlimited.
	CPULimit uint64
	// MemoryLimit is the maximum memory in bytes one execution may allocate.
	// 0 means unlimited.
	MemoryLimit uint64
	// Stdout receives Lua print output in addition to the capture buffer.
	// If nil, output is only captured.
	Stdout io.Writer
}

// DefaultConfig returns a RuntimeConfig with a 10,000,000 instruction CPU
// limit and a 50 MB memory limit, printing to os.Stdout.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		CPULimit:    10_000_000,
		MemoryLimit: 50 * 1024 * 1024,
		Stdout:      os.Stdout,
	}
}

// ColorRuntime wraps a Golua runtime. Access is serialized; every
// execution runs inside the configured resource limits.
type ColorRuntime struct {
	config  RuntimeConfig
	runtime *rt.Runtime
	output  *bytes.Buffer
	cleanup func()
	mu      sync.RWMutex
}

// New creates a ColorRuntime with the Lua standard libraries loaded.
func New(config RuntimeConfig) (*ColorRuntime, error) {
	output := &bytes.Buffer{}
	var stdout io.Writer = output
	if config.Stdout != nil {
		stdout = io.MultiWriter(config.Stdout, output)
	}

	runtime := rt.New(stdout)
	cleanup := lib.LoadAll(runtime)

	return &ColorRuntime{
		config:  config,
		runtime: runtime,
		output:  output,
		cleanup: cleanup,
	}, nil
}

// LoadString compiles a Lua chunk. The returned closure runs with Execute.
func (cr *ColorRuntime) LoadString(name, code string) (*rt.Closure, error) {
	cr.mu.Lock()
	defer cr.mu.Unlock()

	closure, err := cr.runtime.CompileAndLoadLuaChunk(
		name,
		[]byte(code),
		rt.TableValue(cr.runtime.GlobalEnv()),
	)
	if err != nil {
		return nil, &ScriptError{Script: name, Err: err}
	}
	return closure, nil
}

// LoadFile reads and compiles a Lua file.
func (cr *ColorRuntime) LoadFile(path string) (*rt.Closure, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read script %s: %w", path, err)
	}
	return cr.LoadString(path, string(content))
}

// Execute runs a compiled closure within the resource limits. A limit
// violation is reported as an error wrapping ErrLimitExceeded.
func (cr *ColorRuntime) Execute(closure *rt.Closure) (rt.Value, error) {
	return cr.execute("chunk", closure)
}

func (cr *ColorRuntime) execute(name string, closure *rt.Closure) (rt.Value, error) {
	cr.mu.Lock()
	defer cr.mu.Unlock()

	return cr.call(name, rt.FunctionValue(closure))
}

// call runs fn under limits. The caller holds mu.
func (cr *ColorRuntime) call(name string, fn rt.Value, args ...rt.Value) (result rt.Value, err error) {
	cr.runtime.PushContext(rt.RuntimeContextDef{
		HardLimits: rt.RuntimeResources{
			Cpu:    cr.config.CPULimit,
			Memory: cr.config.MemoryLimit,
		},
	})
	defer cr.runtime.PopContext()

	// golua panics when a hard limit is reached
	defer func() {
		if r := recover(); r != nil {
			result = rt.NilValue
			err = &ScriptError{Script: name, Err: fmt.Errorf("%w: %v", ErrLimitExceeded, r)}
		}
	}()

	result, err = rt.Call1(cr.runtime.MainThread(), fn, args...)
	if err != nil {
		return rt.NilValue, &ScriptError{Script: name, Err: err}
	}
	return result, nil
}

// ExecuteString compiles and runs a Lua chunk.
func (cr *ColorRuntime) ExecuteString(name, code string) (rt.Value, error) {
	closure, err := cr.LoadString(name, code)
	if err != nil {
		return rt.NilValue, err
	}
	return cr.execute(name, closure)
}

// ExecuteFile loads and runs a Lua file.
func (cr *ColorRuntime) ExecuteFile(path string) (rt.Value, error) {
	closure, err := cr.LoadFile(path)
	if err != nil {
		return rt.NilValue, err
	}
	return cr.execute(path, closure)
}

// GetGlobal retrieves a global variable.
func (cr *ColorRuntime) GetGlobal(name string) rt.Value {
	cr.mu.RLock()
	defer cr.mu.RUnlock()

	return cr.runtime.GlobalEnv().Get(rt.StringValue(name))
}

// SetGlobal sets a global variable.
func (cr *ColorRuntime) SetGlobal(name string, value rt.Value) {
	cr.mu.Lock()
	defer cr.mu.Unlock()

	cr.runtime.GlobalEnv().Set(rt.StringValue(name), value)
}

// SetGoFunction registers fn as a global Lua function. The function is
// declared memory and CPU safe so it may run under resource limits.
func (cr *ColorRuntime) SetGoFunction(name string, fn rt.GoFunctionFunc, nArgs int, hasVarArgs bool) {
	cr.mu.Lock()
	defer cr.mu.Unlock()

	cr.runtime.GlobalEnv().Set(rt.StringValue(name), rt.FunctionValue(newGoFunction(name, fn, nArgs, hasVarArgs)))
}

func newGoFunction(name string, fn rt.GoFunctionFunc, nArgs int, hasVarArgs bool) *rt.GoFunction {
	goFunc := rt.NewGoFunction(fn, name, nArgs, hasVarArgs)
	rt.SolemnlyDeclareCompliance(rt.ComplyMemSafe|rt.ComplyCpuSafe, goFunc)
	return goFunc
}

// CallFunction calls the global Lua function name with args.
func (cr *ColorRuntime) CallFunction(name string, args ...rt.Value) (rt.Value, error) {
	cr.mu.Lock()
	defer cr.mu.Unlock()

	fn := cr.runtime.GlobalEnv().Get(rt.StringValue(name))
	if fn == rt.NilValue {
		return rt.NilValue, fmt.Errorf("function %s: %w", name, ErrNoFunction)
	}
	return cr.call(name, fn, args...)
}

// Output returns everything scripts printed so far.
func (cr *ColorRuntime) Output() string {
	cr.mu.RLock()
	defer cr.mu.RUnlock()

	return cr.output.String()
}

// ClearOutput clears the captured output buffer.
func (cr *ColorRuntime) ClearOutput() {
	cr.mu.Lock()
	defer cr.mu.Unlock()

	cr.output.Reset()
}

// Config returns the runtime configuration.
func (cr *ColorRuntime) Config() RuntimeConfig {
	cr.mu.RLock()
	defer cr.mu.RUnlock()

	return cr.config
}

// Close releases the runtime. It must not be used afterwards.
func (cr *ColorRuntime) Close() error {
	cr.mu.Lock()
	defer cr.mu.Unlock()

	if cr.cleanup != nil {
		cr.cleanup()
		cr.cleanup = nil
	}
	return nil
}
