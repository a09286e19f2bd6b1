// Package metrics counts colorkit activity and publishes it through expvar.
package metrics

import (
	"expvar"
	"sync/atomic"
	"time"
)

// Metrics holds process-wide counters. It is safe for concurrent use.
//
//	m := metrics.New()
//	m.RecordParse(c.IsValid())
//	m.RecordScript(time.Since(start), err)
type Metrics struct {
	parses         atomic.Int64
	invalidInputs  atomic.Int64
	scriptRuns     atomic.Int64
	scriptErrors   atomic.Int64
	toolCalls      atomic.Int64
	toolErrors     atomic.Int64
	configReloads  atomic.Int64
	scriptLatency  atomic.Int64
	scriptLatencyN atomic.Int64

	registered atomic.Bool
}

// Snapshot is a point-in-time copy of all metrics.
type Snapshot struct {
	Parses           int64         `json:"parses" yaml:"parses"`
	InvalidInputs    int64         `json:"invalid_inputs" yaml:"invalid_inputs"`
	ScriptRuns       int64         `json:"script_runs" yaml:"script_runs"`
	ScriptErrors     int64         `json:"script_errors" yaml:"script_errors"`
	ToolCalls        int64         `json:"tool_calls" yaml:"tool_calls"`
	ToolErrors       int64         `json:"tool_errors" yaml:"tool_errors"`
	ConfigReloads    int64         `json:"config_reloads" yaml:"config_reloads"`
	ScriptLatencyAvg time.Duration `json:"script_latency_avg" yaml:"script_latency_avg"`
}

var defaultMetrics = New()

// Default returns the process-wide Metrics.
func Default() *Metrics {
	return defaultMetrics
}

// New creates an empty Metrics. Call RegisterExpvar to publish it.
func New() *Metrics {
	return &Metrics{}
}

// RegisterExpvar publishes the counters under colorkit_* names.
// Subsequent calls are no-ops. Only one Metrics per process may register.
func (m *Metrics) RegisterExpvar() {
	if m.registered.Swap(true) {
		return
	}

	for name, v := range map[string]*atomic.Int64{
		"colorkit_parses_total":         &m.parses,
		"colorkit_invalid_inputs_total": &m.invalidInputs,
		"colorkit_script_runs_total":    &m.scriptRuns,
		"colorkit_script_errors_total":  &m.scriptErrors,
		"colorkit_tool_calls_total":     &m.toolCalls,
		"colorkit_tool_errors_total":    &m.toolErrors,
		"colorkit_config_reloads_total": &m.configReloads,
	} {
		expvar.Publish(name, expvar.Func(func() any { return v.Load() }))
	}
	expvar.Publish("colorkit_script_latency_avg_ms", expvar.Func(func() any {
		return float64(m.Snapshot().ScriptLatencyAvg) / float64(time.Millisecond)
	}))
}

// RecordParse counts one parsed input.
func (m *Metrics) RecordParse(valid bool) {
	m.parses.Add(1)
	if !valid {
		m.invalidInputs.Add(1)
	}
}

// RecordScript counts one script run and its duration.
func (m *Metrics) RecordScript(d time.Duration, err error) {
	m.scriptRuns.Add(1)
	if err != nil {
		m.scriptErrors.Add(1)
	}
	m.scriptLatency.Add(d.Nanoseconds())
	m.scriptLatencyN.Add(1)
}

// RecordToolCall counts one MCP tool invocation.
func (m *Metrics) RecordToolCall(failed bool) {
	m.toolCalls.Add(1)
	if failed {
		m.toolErrors.Add(1)
	}
}

// IncrementConfigReloads counts a configuration reload.
func (m *Metrics) IncrementConfigReloads() {
	m.configReloads.Add(1)
}

// Snapshot returns the current values.
func (m *Metrics) Snapshot() Snapshot {
	return Snapshot{
		Parses:           m.parses.Load(),
		InvalidInputs:    m.invalidInputs.Load(),
		ScriptRuns:       m.scriptRuns.Load(),
		ScriptErrors:     m.scriptErrors.Load(),
		ToolCalls:        m.toolCalls.Load(),
		ToolErrors:       m.toolErrors.Load(),
		ConfigReloads:    m.configReloads.Load(),
		ScriptLatencyAvg: safeDivide(m.scriptLatency.Load(), m.scriptLatencyN.Load()),
	}
}

// Reset clears all counters.
func (m *Metrics) Reset() {
	for _, v := range []*atomic.Int64{
		&m.parses, &m.invalidInputs, &m.scriptRuns, &m.scriptErrors,
		&m.toolCalls, &m.toolErrors, &m.configReloads,
		&m.scriptLatency, &m.scriptLatencyN,
	} {
		v.Store(0)
	}
}

// safeDivide returns total/count as a Duration, or 0 when count is 0.
func safeDivide(total, count int64) time.Duration {
	if count == 0 {
		return 0
	}
	return time.Duration(total / count)
}
