package server

import (
	"context"
	"sync"

	"golang.org/x/sync/semaphore"
)

// Gate lets at most one simulation run at a time. Waiters are served in
// arrival order.
type Gate struct {
	sem *semaphore.Weighted
}

// NewGate returns an open gate.
func NewGate() *Gate {
	return &Gate{sem: semaphore.NewWeighted(1)}
}

// Acquire blocks until the gate is free or ctx is done. On success the
// returned release must be called; it is safe to call more than once.
// A failed acquisition holds nothing.
func (g *Gate) Acquire(ctx context.Context) (release func(), err error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := g.sem.Acquire(ctx, 1); err != nil {
		return nil, err
	}
	var once sync.Once
	return func() { once.Do(func() { g.sem.Release(1) }) }, nil
}

// TryAcquire takes the gate only if it is free.
func (g *Gate) TryAcquire() (release func(), ok bool) {
	if !g.sem.TryAcquire(1) {
		return nil, false
	}
	var once sync.Once
	return func() { once.Do(func() { g.sem.Release(1) }) }, true
}
