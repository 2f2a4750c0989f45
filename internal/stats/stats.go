// Package stats keeps in-memory counters of simulations served. Nothing is
// persisted; counters reset with the process.
package stats

import (
	"sync"
	"time"
)

// Kind names the simulation entry point.
type Kind string

const (
	KindLive   Kind = "live"
	KindCustom Kind = "custom"
)

// Counters summarizes one kind.
type Counters struct {
	Runs     int           `json:"runs"`
	Failures int           `json:"failures"`
	Trials   int64         `json:"trials"`
	Busy     time.Duration `json:"busy"`
}

// Recorder accumulates counters per kind. The zero value is ready to use.
type Recorder struct {
	mu     sync.Mutex
	byKind map[Kind]*Counters
}

func (r *Recorder) entry(k Kind) *Counters {
	if r.byKind == nil {
		r.byKind = map[Kind]*Counters{}
	}
	c, ok := r.byKind[k]
	if !ok {
		c = &Counters{}
		r.byKind[k] = c
	}
	return c
}

// Success records a completed simulation with its trial count.
func (r *Recorder) Success(k Kind, trials int, elapsed time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c := r.entry(k)
	c.Runs++
	c.Trials += int64(trials)
	c.Busy += elapsed
}

// Failure records a simulation that produced no result.
func (r *Recorder) Failure(k Kind, elapsed time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c := r.entry(k)
	c.Failures++
	c.Busy += elapsed
}

// Snapshot returns a copy of all counters.
func (r *Recorder) Snapshot() map[Kind]Counters {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make(map[Kind]Counters, len(r.byKind))
	for k, c := range r.byKind {
		out[k] = *c
	}
	return out
}

// Reset clears every counter.
func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	for k := range r.byKind {
		delete(r.byKind, k)
	}
}
