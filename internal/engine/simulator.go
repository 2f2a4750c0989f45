// Package engine is a small Monte-Carlo combat resolver used as the local
// simulator behind the HTTP service. It is not safe for concurrent Simulate
// calls on shared inputs; callers serialize access.
package engine

import (
	"context"
	"errors"
	"runtime"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/pefman/bg-localsim/internal/game"
)

// ErrNoTrials is returned when the budget ran out before any trial finished.
var ErrNoTrials = errors.New("no simulations completed")

// checkEvery is how many trials a worker runs between deadline checks.
const checkEvery = 32

// Outcome holds win/tie/lose fractions over Runs completed trials.
type Outcome struct {
	Win  float64
	Tie  float64
	Lose float64
	Runs int
}

// Simulator runs repeated fights for one input.
type Simulator struct {
	// Seed fixes the RNG streams when non-zero.
	Seed int64
	// DefaultThreads is used when a run does not ask for a thread count.
	DefaultThreads int
}

// Simulate runs up to iterations trials across threads workers. A positive
// timeLimit stops the run early and reports the trials completed so far.
// Cancelling ctx aborts the run with ctx's error.
func (s *Simulator) Simulate(ctx context.Context, in *game.Input, iterations int, timeLimit time.Duration, threads int) (Outcome, error) {
	if in == nil {
		return Outcome{}, errors.New("nil input")
	}
	if iterations <= 0 {
		return Outcome{}, ErrNoTrials
	}
	threads = s.threads(threads, iterations)

	runCtx := ctx
	if timeLimit > 0 {
		var cancel context.CancelFunc
		runCtx, cancel = context.WithTimeout(ctx, timeLimit)
		defer cancel()
	}

	var wins, ties, losses atomic.Int64
	g, gctx := errgroup.WithContext(runCtx)
	for w := 0; w < threads; w++ {
		quota := iterations / threads
		if w < iterations%threads {
			quota++
		}
		rng := newRNG(s.Seed, w)
		g.Go(func() error {
			var lw, lt, ll int64
			defer func() {
				wins.Add(lw)
				ties.Add(lt)
				losses.Add(ll)
			}()
			for i := 0; i < quota; i++ {
				if i > 0 && i%checkEvery == 0 && gctx.Err() != nil {
					return nil
				}
				switch fight(rng, in) {
				case resultWin:
					lw++
				case resultTie:
					lt++
				default:
					ll++
				}
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Outcome{}, err
	}
	if err := ctx.Err(); err != nil {
		return Outcome{}, err
	}

	w, t, l := wins.Load(), ties.Load(), losses.Load()
	total := w + t + l
	if total == 0 {
		return Outcome{}, ErrNoTrials
	}
	n := float64(total)
	return Outcome{
		Win:  float64(w) / n,
		Tie:  float64(t) / n,
		Lose: float64(l) / n,
		Runs: int(total),
	}, nil
}

func (s *Simulator) threads(requested, iterations int) int {
	n := requested
	if n <= 0 {
		n = s.DefaultThreads
	}
	if n <= 0 {
		n = runtime.NumCPU()
	}
	if n > iterations {
		n = iterations
	}
	return n
}
