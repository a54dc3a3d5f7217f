/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: engine.go
Description: Generation engine for the grammar fuzzer core. Compiles the configured
grammar once, then drives a pool of parallel generation workers, each owning its
own seeded random source and scratch buffers. Collects throughput statistics and
periodic sample outputs for reporting.
*/

package core

import (
	"context"
	"fmt"
	"runtime"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/kleascm/akaylee-gramgen/pkg/grammar"
	"github.com/kleascm/akaylee-gramgen/pkg/logging"
)

// seedMix is used to derive distinct per-worker seeds from the base seed.
// Golden-ratio constant, same spreading trick splitmix64 uses.
const seedMix = 0x9e3779b97f4a7c15

// sampleMask controls how often a worker publishes its latest output as the
// reporting sample: every 65536 derivations, cheap enough to not disturb the
// hot path.
const sampleMask = 0xffff

// Engine drives parallel grammar-based generation. The compiled grammar is
// shared read-only by all workers; every worker owns its own Generator so no
// random state or scratch buffer is ever shared.
type Engine struct {
	config  *Config
	grammar *grammar.Grammar
	logger  *logging.Logger
	stats   *Stats

	sessionID string

	sampleMu sync.Mutex
	sample   []byte
}

// NewEngine creates a new generation engine.
func NewEngine(logger *logging.Logger) *Engine {
	return &Engine{
		logger: logger,
		stats:  &Stats{},
	}
}

// SetGrammar injects an already-compiled grammar, bypassing the grammar file
// configured in Initialize. Used by tests and embedders.
func (e *Engine) SetGrammar(g *grammar.Grammar) {
	e.grammar = g
}

// Initialize prepares the engine: compiles the grammar, resolves defaulted
// configuration values, and assigns a session identifier.
func (e *Engine) Initialize(config *Config) error {
	if config == nil {
		return fmt.Errorf("config must not be nil")
	}
	e.config = config

	if e.grammar == nil {
		if config.GrammarPath == "" {
			return fmt.Errorf("no grammar file configured")
		}
		start := time.Now()
		g, err := grammar.LoadAndCompile(config.GrammarPath)
		if err != nil {
			return fmt.Errorf("failed to compile grammar: %w", err)
		}
		e.grammar = g
		if e.logger != nil {
			e.logger.LogCompile(config.GrammarPath, g.NumRules(), g.NumFragments(), time.Since(start))
		}
	}

	if e.config.Workers <= 0 {
		e.config.Workers = runtime.NumCPU()
	}
	if e.config.Seed == 0 {
		e.config.Seed = uint64(time.Now().UnixNano())
	}

	e.sessionID = uuid.New().String()
	return nil
}

// SessionID returns the unique identifier assigned to this generation session.
func (e *Engine) SessionID() string {
	return e.sessionID
}

// Grammar returns the compiled grammar, or nil before Initialize.
func (e *Engine) Grammar() *grammar.Grammar {
	return e.grammar
}

// GetStats returns the live statistics counters.
func (e *Engine) GetStats() *Stats {
	return e.stats
}

// Sample returns a copy of the most recently published sample derivation.
func (e *Engine) Sample() []byte {
	e.sampleMu.Lock()
	defer e.sampleMu.Unlock()
	cp := make([]byte, len(e.sample))
	copy(cp, e.sample)
	return cp
}

// Run starts the configured number of generation workers and blocks until the
// context is canceled or the configured iteration budget is exhausted.
// Returns nil on a clean stop.
func (e *Engine) Run(ctx context.Context) error {
	if e.grammar == nil || e.config == nil {
		return fmt.Errorf("engine not initialized")
	}

	e.stats.StartTime = time.Now()

	if e.logger != nil {
		e.logger.Info("Generation session starting", map[string]interface{}{
			"session_id": e.sessionID,
			"workers":    e.config.Workers,
			"seed":       e.config.Seed,
		})
	}

	g, ctx := errgroup.WithContext(ctx)
	for i := 0; i < e.config.Workers; i++ {
		worker := i
		g.Go(func() error {
			return e.runWorker(ctx, worker)
		})
	}

	if err := g.Wait(); err != nil && err != context.Canceled {
		return err
	}
	return nil
}

// runWorker is one generation loop. Each worker derives its own seed from
// the base seed so parallel workers explore independent random sequences.
func (e *Engine) runWorker(ctx context.Context, worker int) error {
	seed := e.config.Seed ^ (seedMix * uint64(worker+1))
	if seed == 0 {
		// A zero xorshift state never advances.
		seed = seedMix
	}
	gen := grammar.NewGenerator(e.grammar, seed)

	done := ctx.Done()
	var local int64
	for {
		select {
		case <-done:
			return nil
		default:
		}

		if budget := e.config.MaxIterations; budget > 0 && e.stats.Iterations64() >= budget {
			return nil
		}

		out := gen.Generate()
		e.stats.AddIteration(len(out), len(out) > grammar.MaxOutput)
		local++

		if e.config.LogSamples && (local == 1 || local&sampleMask == 0) {
			e.publishSample(out)
		}
	}
}

// publishSample stores a copy of the given derivation for the reporter.
func (e *Engine) publishSample(out []byte) {
	e.sampleMu.Lock()
	e.sample = append(e.sample[:0], out...)
	e.sampleMu.Unlock()
}
