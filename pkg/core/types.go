/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: types.go
Description: Core types for the generation engine. Defines the engine configuration
and the thread-safe statistics counters shared by the generation workers and the
throughput reporter.
*/

package core

import (
	"sync/atomic"
	"time"
)

// Config contains all configuration parameters for the generation engine.
// Supports both command-line flags and configuration files.
type Config struct {
	// Grammar configuration
	GrammarPath string `json:"grammar_path"` // Path to the JSON grammar file

	// Generation configuration
	Seed          uint64 `json:"seed"`           // Base RNG seed (0 = entropy-derived)
	Workers       int    `json:"workers"`        // Number of parallel workers (0 = auto-detect)
	MaxIterations int64  `json:"max_iterations"` // Stop after this many derivations (0 = run forever)

	// Reporting configuration
	ReportInterval time.Duration `json:"report_interval"` // Interval between throughput reports
	LogSamples     bool          `json:"log_samples"`     // Include a sample derivation in reports
}

// Stats tracks generation statistics across all workers.
// Uses atomic operations for thread-safe updates on the hot path.
type Stats struct {
	Iterations  int64     `json:"iterations"`  // Total derivations produced
	Bytes       int64     `json:"bytes"`       // Total bytes generated
	Truncations int64     `json:"truncations"` // Derivations cut off at the output ceiling
	StartTime   time.Time `json:"start_time"`  // When generation started
}

// AddIteration atomically records one finished derivation of the given size.
func (s *Stats) AddIteration(n int, truncated bool) {
	atomic.AddInt64(&s.Iterations, 1)
	atomic.AddInt64(&s.Bytes, int64(n))
	if truncated {
		atomic.AddInt64(&s.Truncations, 1)
	}
}

// Iterations64 atomically reads the iteration counter.
func (s *Stats) Iterations64() int64 {
	return atomic.LoadInt64(&s.Iterations)
}

// Snapshot returns a consistent copy of the counters along with derived rates.
func (s *Stats) Snapshot() StatsSnapshot {
	elapsed := time.Since(s.StartTime).Seconds()
	snap := StatsSnapshot{
		Iterations:  atomic.LoadInt64(&s.Iterations),
		Bytes:       atomic.LoadInt64(&s.Bytes),
		Truncations: atomic.LoadInt64(&s.Truncations),
		Elapsed:     elapsed,
	}
	if elapsed > 0 {
		snap.IterationsPerSecond = float64(snap.Iterations) / elapsed
		snap.BytesPerSecond = float64(snap.Bytes) / elapsed
	}
	return snap
}

// StatsSnapshot is a point-in-time view of the generation counters.
type StatsSnapshot struct {
	Iterations          int64   `json:"iterations"`
	Bytes               int64   `json:"bytes"`
	Truncations         int64   `json:"truncations"`
	Elapsed             float64 `json:"elapsed_seconds"`
	IterationsPerSecond float64 `json:"iterations_per_second"`
	BytesPerSecond      float64 `json:"bytes_per_second"`
}
