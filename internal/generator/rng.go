package generator

import (
	"math/rand/v2"
)

// The generator never touches the process-wide random source. Every stage
// receives an explicit *rand.Rand so a fixed seed reproduces the full
// dataset bit-for-bit.

// newSource returns the base random stream for a generation run. The catalog
// and user stages consume this stream in a fixed order.
func newSource(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// userStream returns the dedicated sub-stream for the user at the given
// ordinal. Per-user simulation draws only from its own sub-stream, which
// keeps the event log reproducible even if users are ever simulated in
// parallel.
func userStream(seed uint64, ordinal int) *rand.Rand {
	return rand.New(rand.NewPCG(seed, uint64(ordinal)+1))
}

// intBetween returns a uniform int in [lo, hi].
func intBetween(r *rand.Rand, lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + r.IntN(hi-lo+1)
}
