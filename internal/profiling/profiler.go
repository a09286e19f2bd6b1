// Package profiling records CPU and heap profiles for colorkit commands
// using runtime/pprof.
package profiling

import (
	"errors"
	"fmt"
	"os"
	"runtime"
	"runtime/pprof"
	"sync"
)

var (
	// ErrRunning is returned by Start on a profiler that is already running.
	ErrRunning = errors.New("profiler is already running")
	// ErrNotRunning is returned by Stop on a profiler that was not started.
	ErrNotRunning = errors.New("profiler is not running")
)

// Config selects the profiles to record. Empty paths disable a profile.
type Config struct {
	CPUProfilePath string
	MemProfilePath string
}

// Enabled reports whether any profile is configured.
func (c Config) Enabled() bool {
	return c.CPUProfilePath != "" || c.MemProfilePath != ""
}

// Profiler records one profiling session. The CPU profile covers the
// time between Start and Stop; the heap profile is taken at Stop.
type Profiler struct {
	config  Config
	cpuFile *os.File
	running bool
	mu      sync.Mutex
}

// New creates a Profiler. It does not start profiling.
func New(config Config) *Profiler {
	return &Profiler{config: config}
}

// Start begins the CPU profile if one is configured.
func (p *Profiler) Start() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.running {
		return ErrRunning
	}

	if p.config.CPUProfilePath != "" {
		f, err := os.Create(p.config.CPUProfilePath)
		if err != nil {
			return fmt.Errorf("failed to create CPU profile file: %w", err)
		}
		if err := pprof.StartCPUProfile(f); err != nil {
			f.Close()
			return fmt.Errorf("failed to start CPU profile: %w", err)
		}
		p.cpuFile = f
	}

	p.running = true
	return nil
}

// Stop ends the CPU profile and writes the heap profile. Every failure
// is reported; the profiler is stopped regardless.
func (p *Profiler) Stop() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.running {
		return ErrNotRunning
	}
	p.running = false

	var errs []error
	if p.cpuFile != nil {
		pprof.StopCPUProfile()
		if err := p.cpuFile.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close CPU profile file: %w", err))
		}
		p.cpuFile = nil
	}

	if p.config.MemProfilePath != "" {
		if err := WriteHeapProfile(p.config.MemProfilePath); err != nil {
			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}

// IsRunning reports whether Start has been called without Stop.
func (p *Profiler) IsRunning() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.running
}

// WriteHeapProfile collects garbage and writes a heap profile to path.
func WriteHeapProfile(path string) error {
	runtime.GC()

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create memory profile file: %w", err)
	}
	defer f.Close()

	if err := pprof.WriteHeapProfile(f); err != nil {
		return fmt.Errorf("failed to write memory profile: %w", err)
	}
	return nil
}
