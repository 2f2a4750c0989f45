package server

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestGateExclusive(t *testing.T) {
	g := NewGate()
	release, err := g.Acquire(context.Background())
	if err != nil {
		t.Fatalf("acquire: %v", err)
	}
	if _, ok := g.TryAcquire(); ok {
		t.Fatal("gate acquired twice")
	}
	release()
	release()

	again, ok := g.TryAcquire()
	if !ok {
		t.Fatal("gate not released")
	}
	again()
	if r, ok := g.TryAcquire(); !ok {
		t.Fatal("double release corrupted gate")
	} else {
		r()
	}
}

func TestGateAcquireCancelled(t *testing.T) {
	g := NewGate()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := g.Acquire(ctx); !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
	// A failed acquisition must not hold the gate.
	r, ok := g.TryAcquire()
	if !ok {
		t.Fatal("cancelled acquire left gate held")
	}
	r()
}

func TestGateWaiterCancelled(t *testing.T) {
	g := NewGate()
	release, _ := g.Acquire(context.Background())
	defer release()

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	if _, err := g.Acquire(ctx); !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("err = %v, want deadline exceeded", err)
	}
}

func TestGateHandsOffInOrder(t *testing.T) {
	g := NewGate()
	release, _ := g.Acquire(context.Background())

	order := make(chan int, 3)
	for i := 0; i < 3; i++ {
		started := make(chan struct{})
		go func(i int) {
			close(started)
			r, err := g.Acquire(context.Background())
			if err != nil {
				return
			}
			order <- i
			r()
		}(i)
		<-started
		time.Sleep(10 * time.Millisecond)
	}
	release()
	for want := 0; want < 3; want++ {
		select {
		case got := <-order:
			if got != want {
				t.Fatalf("waiter %d ran at position %d", got, want)
			}
		case <-time.After(2 * time.Second):
			t.Fatal("waiters never ran")
		}
	}
}
