/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: engine_test.go
Description: Tests for the generation engine. Covers initialization from a grammar
file, bounded parallel generation runs, cancellation, and statistics tracking.
*/

package core_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kleascm/akaylee-gramgen/pkg/core"
	"github.com/kleascm/akaylee-gramgen/pkg/grammar"
)

func writeGrammarFile(t *testing.T, data string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "grammar.json")
	require.NoError(t, os.WriteFile(path, []byte(data), 0644))
	return path
}

// TestEngineInitialization tests engine setup from a grammar file
func TestEngineInitialization(t *testing.T) {
	path := writeGrammarFile(t, `{"<start>": [["x"], ["y"]]}`)

	engine := core.NewEngine(nil)
	err := engine.Initialize(&core.Config{GrammarPath: path})
	require.NoError(t, err)

	require.NotNil(t, engine.Grammar())
	assert.Equal(t, 1, engine.Grammar().NumRules())

	// Defaults are resolved during Initialize.
	_, err = uuid.Parse(engine.SessionID())
	assert.NoError(t, err, "Session ID should be a valid UUID")
}

// TestEngineInitializationErrors tests the failure paths
func TestEngineInitializationErrors(t *testing.T) {
	engine := core.NewEngine(nil)
	assert.Error(t, engine.Initialize(nil))
	assert.Error(t, engine.Initialize(&core.Config{}))
	assert.Error(t, engine.Initialize(&core.Config{GrammarPath: "/does/not/exist.json"}))

	// A grammar without <start> must fail initialization, not generation.
	path := writeGrammarFile(t, `{"<a>": [["x"]]}`)
	engine = core.NewEngine(nil)
	err := engine.Initialize(&core.Config{GrammarPath: path})
	require.Error(t, err)
	assert.ErrorIs(t, err, grammar.ErrMissingStart)
}

// TestEngineRunBounded tests a run with an iteration budget
func TestEngineRunBounded(t *testing.T) {
	g, err := grammar.Compile(grammar.Rules{
		"<start>": {{"<a>"}, {"<b>"}},
		"<a>":     {{"x"}},
		"<b>":     {{"yy"}},
	})
	require.NoError(t, err)

	engine := core.NewEngine(nil)
	engine.SetGrammar(g)
	require.NoError(t, engine.Initialize(&core.Config{
		Seed:          42,
		Workers:       2,
		MaxIterations: 1000,
	}))

	require.NoError(t, engine.Run(context.Background()))

	snap := engine.GetStats().Snapshot()
	assert.GreaterOrEqual(t, snap.Iterations, int64(1000))
	assert.Greater(t, snap.Bytes, int64(0))
	assert.Zero(t, snap.Truncations, "Terminating grammar never hits the ceiling")
	// Every derivation of this grammar is 1 or 2 bytes.
	assert.LessOrEqual(t, snap.Bytes, 2*snap.Iterations)
}

// TestEngineRunCancel tests cancellation of an unbounded run
func TestEngineRunCancel(t *testing.T) {
	g, err := grammar.Compile(grammar.Rules{"<start>": {{"x"}}})
	require.NoError(t, err)

	engine := core.NewEngine(nil)
	engine.SetGrammar(g)
	require.NoError(t, engine.Initialize(&core.Config{Seed: 7, Workers: 2}))

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	require.NoError(t, engine.Run(ctx))
	assert.Greater(t, engine.GetStats().Snapshot().Iterations, int64(0))
}

// TestEngineRunRequiresInitialize tests the uninitialized error path
func TestEngineRunRequiresInitialize(t *testing.T) {
	engine := core.NewEngine(nil)
	assert.Error(t, engine.Run(context.Background()))
}

// TestEngineSample tests sample publication during a run
func TestEngineSample(t *testing.T) {
	g, err := grammar.Compile(grammar.Rules{"<start>": {{"sample"}}})
	require.NoError(t, err)

	engine := core.NewEngine(nil)
	engine.SetGrammar(g)
	require.NoError(t, engine.Initialize(&core.Config{
		Seed:          3,
		Workers:       1,
		MaxIterations: 10,
		LogSamples:    true,
	}))
	require.NoError(t, engine.Run(context.Background()))

	assert.Equal(t, "sample", string(engine.Sample()))
}

// TestStatsCounters tests the atomic statistics counters
func TestStatsCounters(t *testing.T) {
	stats := &core.Stats{StartTime: time.Now()}
	stats.AddIteration(10, false)
	stats.AddIteration(20, true)

	snap := stats.Snapshot()
	assert.Equal(t, int64(2), snap.Iterations)
	assert.Equal(t, int64(30), snap.Bytes)
	assert.Equal(t, int64(1), snap.Truncations)
	assert.Equal(t, int64(2), stats.Iterations64())
}
