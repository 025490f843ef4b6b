// Package rng provides the deterministic random stream used by the
// simulator. A run owns exactly one stream; every draw advances it, so the
// call order across card draws, effects, events and market noise is part of
// the reproducibility contract.
package rng

import "unicode/utf16"

// RNG is a Mulberry32 generator behind a small gameplay-oriented API.
// The same seed always reproduces the identical sequence of draws.
type RNG struct {
	state uint32
	calls int64
}

// New creates a stream from a string or integer seed. String seeds are
// hashed FNV-1a style so "RUN-001" and "RUN-002" land far apart; numeric
// seeds are truncated to 32 bits.
func New(seed any) *RNG {
	return &RNG{state: seedToUint32(seed)}
}

func seedToUint32(seed any) uint32 {
	switch v := seed.(type) {
	case string:
		return hashString(v)
	case int:
		return uint32(uint64(int64(v)))
	case int64:
		return uint32(uint64(v))
	case uint32:
		return v
	case uint64:
		return uint32(v)
	case float64:
		return uint32(uint64(int64(v)))
	default:
		return 0
	}
}

// hashString folds the seed through an FNV-1a accumulator over UTF-16 code
// units, so seeds hash identically to charCodeAt-based implementations even
// when they contain non-ASCII or surrogate-pair characters.
func hashString(s string) uint32 {
	h := uint32(2166136261)
	for _, c := range utf16.Encode([]rune(s)) {
		h ^= uint32(c)
		h *= 16777619
	}
	return h
}

// Float returns the next value in [0,1).
func (r *RNG) Float() float64 {
	r.state += 0x6D2B79F5
	r.calls++
	t := r.state
	t = (t ^ (t >> 15)) * (t | 1)
	t ^= t + (t^(t>>7))*(t|61)
	return float64(t^(t>>14)) / 4294967296.0
}

// Between returns a value in [lo,hi), consuming one draw.
func (r *RNG) Between(lo, hi float64) float64 {
	return lo + r.Float()*(hi-lo)
}

// Chance reports whether a single draw landed under p.
func (r *RNG) Chance(p float64) bool {
	return r.Float() < p
}

// Calls returns how many draws have been consumed since creation.
func (r *RNG) Calls() int64 {
	return r.calls
}

// Restore recreates a stream and fast-forwards it past calls draws,
// reproducing the exact position for save/load.
func Restore(seed any, calls int64) *RNG {
	r := New(seed)
	for i := int64(0); i < calls; i++ {
		r.Float()
	}
	return r
}

// WeightedIndex performs the shared weighted draw: non-positive weights are
// ignored, one uniform value is drawn in [0,total) and walked down the slice
// in order. Returns -1 without consuming a draw when nothing is drawable.
// Floating-point edge cases fall back to the last drawable index.
func (r *RNG) WeightedIndex(weights []float64) int {
	total := 0.0
	for _, w := range weights {
		if w > 0 {
			total += w
		}
	}
	if total <= 0 {
		return -1
	}
	roll := r.Float() * total
	last := -1
	for i, w := range weights {
		if w <= 0 {
			continue
		}
		last = i
		roll -= w
		if roll <= 0 {
			return i
		}
	}
	return last
}
