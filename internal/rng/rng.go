package rng

import "time"

// Rand is a deterministic pseudo-random generator based on Mulberry32.
// The algorithm is small, fast, and produces an identical sample sequence
// on every platform for a given seed, which is what session replay relies on.
// Algorithm: https://gist.github.com/tommyettinger/46a874533244883189143505d203312c
type Rand struct {
	state uint32
}

// New creates a generator for the given seed. The full 64-bit seed is folded
// into the 32-bit Mulberry32 state so that seeds differing only in their high
// bits still produce distinct sequences.
func New(seed int64) *Rand {
	return &Rand{state: uint32(seed) ^ uint32(uint64(seed)>>32)}
}

// Uint32 returns the next raw 32-bit value.
func (r *Rand) Uint32() uint32 {
	r.state += 0x6D2B79F5
	t := r.state
	t = (t ^ (t >> 15)) * (t | 1)
	t ^= t + (t^(t>>7))*(t|61)
	return t ^ (t >> 14)
}

// Float64 returns the next value in [0, 1).
func (r *Rand) Float64() float64 {
	return float64(r.Uint32()) / 4294967296.0
}

// Intn returns a value in [0, n). n must be positive.
func (r *Rand) Intn(n int) int {
	if n <= 0 {
		return 0
	}
	idx := int(r.Float64() * float64(n))
	if idx >= n {
		idx = n - 1
	}
	return idx
}

// IntBetween returns a value in [lo, hi] inclusive.
func (r *Rand) IntBetween(lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + r.Intn(hi-lo+1)
}

// GenerateSeed produces a fresh seed for a new round from the wall clock.
// It carries no determinism contract; reproducibility comes from recording
// the returned value, not from how it was derived.
func GenerateSeed() int64 {
	return time.Now().UnixNano()
}
