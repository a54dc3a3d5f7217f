/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: rng.go
Description: Xorshift pseudo-random source for the derivation engine. Fast,
deterministic, and reproducible so that a fixed seed always replays the same
derivation sequence. Not suitable for security-sensitive randomness.
*/

package grammar

// XorShift is a 64-bit xorshift pseudo-random generator. A given seed always
// yields the same sequence, which is what makes generated outputs replayable.
// Each concurrent generator must own its own XorShift; the state mutates on
// every draw and is not synchronized.
type XorShift struct {
	state uint64
}

// NewXorShift returns a generator seeded with the given value.
func NewXorShift(seed uint64) *XorShift {
	return &XorShift{state: seed}
}

// Seed resets the generator state.
func (r *XorShift) Seed(value uint64) {
	r.state = value
}

// Next advances the state and returns the next pseudo-random value.
func (r *XorShift) Next() uint64 {
	s := r.state
	s ^= s << 13
	s ^= s >> 17
	s ^= s << 43
	r.state = s
	return s
}
