/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: generator.go
Description: Iterative derivation engine for the grammar generation core. Expands
the start rule into a concrete byte string using an explicit work stack, a per-
generator xorshift source, and reusable scratch buffers for a zero-allocation
hot path.
*/

package grammar

import "fmt"

// Generator produces random derivations from a compiled grammar. It owns the
// mutable pieces of generation state: the random source, the work stack, and
// the output buffer, all reused across calls. A Generator must not be shared
// between goroutines; concurrent workers each get their own (the underlying
// Grammar is safe to share read-only).
type Generator struct {
	grammar *Grammar
	rng     *XorShift
	stack   []FragmentID
	buf     []byte
}

// NewGenerator creates a generator over a compiled grammar, seeded with the
// given value. The same grammar and seed always reproduce the same sequence
// of outputs.
func NewGenerator(g *Grammar, seed uint64) *Generator {
	return &Generator{
		grammar: g,
		rng:     NewXorShift(seed),
		stack:   make([]FragmentID, 0, 128),
		buf:     make([]byte, 0, 4096),
	}
}

// Seed resets the generator's random source.
func (gen *Generator) Seed(value uint64) {
	gen.rng.Seed(value)
}

// Generate produces one derivation and returns the generated bytes. The
// returned slice aliases an internal buffer and is only valid until the next
// Generate call; use GenerateCopy when the bytes must outlive it.
//
// Expansion is iterative: the stack holds pending fragment ids, and each
// step pops one and dispatches on its kind. NonTerminals select one child
// uniformly at random, Expressions push their children in reverse so they
// pop in left-to-right order, and Terminals append their bytes. The loop
// ends when the stack empties or the output crosses MaxOutput, which is the
// only guard against grammars whose derivations never terminate.
func (gen *Generator) Generate() []byte {
	gen.stack = gen.stack[:0]
	gen.buf = gen.buf[:0]
	gen.stack = append(gen.stack, gen.grammar.start)

	for len(gen.stack) > 0 {
		cur := gen.stack[len(gen.stack)-1]
		gen.stack = gen.stack[:len(gen.stack)-1]

		frag := gen.grammar.Fragment(cur)
		switch frag.Kind {
		case FragNonTerminal:
			if len(frag.Children) == 0 {
				// Only compilation leaves empty NonTerminals, and only
				// transiently; one reaching generation is a compiler defect.
				panic(fmt.Sprintf("grammar: nonterminal fragment %d has no children", cur))
			}
			sel := frag.Children[gen.rng.Next()%uint64(len(frag.Children))]
			gen.stack = append(gen.stack, sel)

		case FragExpression:
			for i := len(frag.Children) - 1; i >= 0; i-- {
				gen.stack = append(gen.stack, frag.Children[i])
			}

		case FragTerminal:
			gen.buf = append(gen.buf, frag.Bytes...)
			if len(gen.buf) > MaxOutput {
				return gen.buf
			}
		}
	}

	return gen.buf
}

// GenerateCopy produces one derivation and returns the bytes in a freshly
// allocated slice.
func (gen *Generator) GenerateCopy() []byte {
	out := gen.Generate()
	cp := make([]byte, len(out))
	copy(cp, out)
	return cp
}
