// Package invoker runs simulations for the local API: it resolves the
// input, calls the engine and shapes the result.
package invoker

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/pefman/bg-localsim/internal/engine"
	"github.com/pefman/bg-localsim/internal/game"
	"github.com/pefman/bg-localsim/internal/models"
	"github.com/pefman/bg-localsim/internal/stats"
)

// Engine is the combat simulator.
type Engine interface {
	Simulate(ctx context.Context, in *game.Input, iterations int, timeLimit time.Duration, threads int) (engine.Outcome, error)
}

// LiveSource provides the board of the running match.
type LiveSource interface {
	Snapshot() (*models.BattleSnapshot, error)
}

// Invoker is not safe for concurrent use when Engine is not; the server
// gate serializes calls.
type Invoker struct {
	Engine     Engine
	Translator game.Translator
	Live       LiveSource
	Stats      *stats.Recorder
}

// SimulateLive simulates the board of the running match.
func (iv *Invoker) SimulateLive(ctx context.Context, opts models.SimOptions) (*models.SimResult, error) {
	start := time.Now()
	if iv.Live == nil {
		iv.fail(stats.KindLive, start)
		return nil, errors.New("no live state source")
	}
	snap, err := iv.Live.Snapshot()
	if err != nil {
		iv.fail(stats.KindLive, start)
		return nil, err
	}
	in, err := iv.Translator.Translate(snap)
	if err != nil {
		iv.fail(stats.KindLive, start)
		return nil, fmt.Errorf("translate live snapshot: %w", err)
	}
	return iv.run(ctx, stats.KindLive, in, opts, start)
}

// SimulateCustom simulates an already translated input.
func (iv *Invoker) SimulateCustom(ctx context.Context, in *game.Input, opts models.SimOptions) (*models.SimResult, error) {
	return iv.run(ctx, stats.KindCustom, in, opts, time.Now())
}

func (iv *Invoker) run(ctx context.Context, kind stats.Kind, in *game.Input, opts models.SimOptions, start time.Time) (*models.SimResult, error) {
	iterations := opts.Iterations
	if iterations <= 0 {
		iterations = models.DefaultIterations
	}
	out, err := iv.Engine.Simulate(ctx, in, iterations, opts.TimeLimit(), opts.Threads())
	if err != nil {
		iv.fail(kind, start)
		return nil, fmt.Errorf("simulate: %w", err)
	}

	elapsed := time.Since(start)
	if iv.Stats != nil {
		iv.Stats.Success(kind, out.Runs, elapsed)
	}
	log.Printf("simulation %s: %d/%d trials in %s (win=%.3f tie=%.3f lose=%.3f)",
		kind, out.Runs, iterations, elapsed.Truncate(time.Millisecond), out.Win, out.Tie, out.Lose)
	return normalize(out), nil
}

func (iv *Invoker) fail(kind stats.Kind, start time.Time) {
	if iv.Stats != nil {
		iv.Stats.Failure(kind, time.Since(start))
	}
}

// normalize rescales the fractions so they sum to exactly one.
func normalize(out engine.Outcome) *models.SimResult {
	sum := out.Win + out.Tie + out.Lose
	if sum <= 0 {
		return &models.SimResult{Tie: 1, Simulations: out.Runs}
	}
	win, tie := out.Win/sum, out.Tie/sum
	lose := 1 - win - tie
	if lose < 0 {
		lose = 0
	}
	return &models.SimResult{
		Win:         win,
		Tie:         tie,
		Lose:        lose,
		Simulations: out.Runs,
	}
}
