package world

import (
	"math/rand"
	"time"
)

// Source hands out freshly seeded generators. Every call to Reseed bumps an
// internal salt so that calls landing in the same clock tick still draw
// different sequences.
//
// A Source is not safe for concurrent use.
type Source struct {
	base func() int64
	salt int64
}

// NewSource creates a source seeded from the wall clock.
func NewSource() *Source {
	return &Source{base: func() int64 { return time.Now().UnixNano() }}
}

// NewSeededSource creates a source that replaces the clock with a fixed seed,
// so an entire generation run can be reproduced.
func NewSeededSource(seed int64) *Source {
	return &Source{base: func() int64 { return seed }}
}

// Reseed returns a generator seeded with clock (or seed) plus the next salt.
func (s *Source) Reseed() *rand.Rand {
	s.salt++
	return rand.New(rand.NewSource(s.base() + s.salt))
}

// Salt returns the number of reseeds performed so far.
func (s *Source) Salt() int64 {
	return s.salt
}

// intRange draws uniformly from [lo, hi]. An empty range collapses to lo.
func intRange(rng *rand.Rand, lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + rng.Intn(hi-lo+1)
}
