package engine

import (
	"math/rand"
	"time"
)

// newRNG returns a per-worker source. A zero seed draws from the clock.
func newRNG(seed int64, worker int) *rand.Rand {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed + int64(worker)*7919))
}
