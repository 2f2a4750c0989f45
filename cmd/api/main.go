package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/pefman/bg-localsim/internal/catalog"
	"github.com/pefman/bg-localsim/internal/config"
	"github.com/pefman/bg-localsim/internal/engine"
	"github.com/pefman/bg-localsim/internal/game"
	"github.com/pefman/bg-localsim/internal/invoker"
	"github.com/pefman/bg-localsim/internal/livestate"
	"github.com/pefman/bg-localsim/internal/server"
	"github.com/pefman/bg-localsim/internal/stats"
	"github.com/pefman/bg-localsim/internal/watcher"
)

func main() {
	cfg, err := config.LoadService()
	if err != nil {
		config.Exitf("config: %v", err)
	}

	store := catalog.NewStore(cfg.CatalogPath)
	live := livestate.New(cfg.LiveStatePath)
	cards := catalog.NewCache(store, live.IsDuos)
	cards.Subscribe(store)

	// The catalog may be large; serve /cards as not ready until it lands.
	go func() {
		if err := store.Load(); err != nil {
			log.Printf("[Catalog] initial load failed: %v", err)
		}
	}()
	if cfg.LiveStatePath != "" {
		if err := live.Reload(); err != nil {
			log.Printf("[LiveState] initial load failed: %v", err)
		}
	}

	factory := engine.Factory{Cards: store}
	translator := game.Translator{Minions: factory, Anomalies: factory, LiveRaces: live.AvailableRaces}
	recorder := &stats.Recorder{}
	sims := &invoker.Invoker{
		Engine:     &engine.Simulator{DefaultThreads: cfg.DefaultThreads},
		Translator: translator,
		Live:       live,
		Stats:      recorder,
	}

	router := server.NewRouter(server.Deps{
		Sims:         sims,
		Match:        live,
		Translator:   translator,
		Cards:        cards,
		MaxBodyBytes: cfg.MaxBodyBytes,
	})
	srv := server.New(server.Config{Addr: cfg.Addr, ShutdownTimeout: cfg.ShutdownTimeout}, router)

	var fw *watcher.FileWatcher
	if cfg.Watch {
		fw, err = startWatcher(cfg, store, live, cards)
		if err != nil {
			log.Printf("[Watcher] disabled: %v", err)
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := srv.Run(ctx); err != nil {
		config.Exitf("server: %v", err)
	}
	if fw != nil {
		fw.Stop()
	}
	for kind, c := range recorder.Snapshot() {
		log.Printf("[Stats] %s: %d runs, %d failures, %d trials, busy %s", kind, c.Runs, c.Failures, c.Trials, c.Busy)
	}
}

func startWatcher(cfg config.Service, store *catalog.Store, live *livestate.State, cards *catalog.Cache) (*watcher.FileWatcher, error) {
	fw, err := watcher.New(cfg.WatchDebounce)
	if err != nil {
		return nil, err
	}
	if err := fw.Track(cfg.CatalogPath, func(string) error { return store.Load() }); err != nil {
		fw.Stop()
		return nil, err
	}
	if cfg.LiveStatePath != "" {
		// The duos flag feeds the card listing, so a live reload invalidates it.
		err := fw.Track(cfg.LiveStatePath, func(string) error {
			if err := live.Reload(); err != nil {
				return err
			}
			cards.Invalidate()
			return nil
		})
		if err != nil {
			fw.Stop()
			return nil, err
		}
	}
	fw.Start()
	return fw, nil
}
