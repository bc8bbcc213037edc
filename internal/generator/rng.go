package generator

import (
	"math/rand"
	"time"
)

// ResolveSeed returns the seed a run should be generated with. A configured
// seed of 0 means "pick one": the seed is derived from the wall clock so
// repeated unseeded runs differ. The resolved value is always reported so any
// run can be replayed exactly.
func ResolveSeed(configured int64) int64 {
	if configured != 0 {
		return configured
	}
	return time.Now().UnixNano()
}

// NewSeededRNG creates the deterministic random source for a run. Every
// random draw in the pipeline (dates, amounts, target selection, UUIDs) goes
// through the returned generator, so the same seed and configuration yield
// the same dataset.
func NewSeededRNG(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}
