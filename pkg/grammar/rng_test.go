/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: rng_test.go
Description: Tests for the xorshift random source. Covers reproducibility under a
fixed seed, reseeding, and state advancement.
*/

package grammar_test

import (
	"testing"

	"github.com/kleascm/akaylee-gramgen/pkg/grammar"
	"github.com/stretchr/testify/assert"
)

// TestXorShiftReproducibility tests that a fixed seed replays the same sequence
func TestXorShiftReproducibility(t *testing.T) {
	runTest(t, "TestXorShiftReproducibility", func(t *testing.T) {
		a := grammar.NewXorShift(0xabcdef)
		b := grammar.NewXorShift(0xabcdef)

		for i := 0; i < 1000; i++ {
			assert.Equal(t, a.Next(), b.Next(), "Sequences diverged at draw %d", i)
		}
	})
}

// TestXorShiftReseed tests that reseeding restarts the sequence
func TestXorShiftReseed(t *testing.T) {
	runTest(t, "TestXorShiftReseed", func(t *testing.T) {
		r := grammar.NewXorShift(42)
		first := make([]uint64, 100)
		for i := range first {
			first[i] = r.Next()
		}

		r.Seed(42)
		for i := range first {
			assert.Equal(t, first[i], r.Next(), "Replay diverged at draw %d", i)
		}
	})
}

// TestXorShiftAdvances tests that the state mutates on every draw
func TestXorShiftAdvances(t *testing.T) {
	runTest(t, "TestXorShiftAdvances", func(t *testing.T) {
		r := grammar.NewXorShift(1)

		// The update is a bijection on nonzero states with no fixed point,
		// so consecutive draws from a nonzero seed never repeat.
		prev := r.Next()
		for i := 0; i < 100; i++ {
			cur := r.Next()
			assert.NotEqual(t, prev, cur)
			prev = cur
		}
	})
}

// TestXorShiftSeedsDiffer tests that different seeds give different sequences
func TestXorShiftSeedsDiffer(t *testing.T) {
	runTest(t, "TestXorShiftSeedsDiffer", func(t *testing.T) {
		a := grammar.NewXorShift(1)
		b := grammar.NewXorShift(2)

		diverged := false
		for i := 0; i < 10; i++ {
			if a.Next() != b.Next() {
				diverged = true
				break
			}
		}
		assert.True(t, diverged, "Distinct seeds should produce distinct sequences")
	})
}
