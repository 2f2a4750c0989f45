package server

import (
	"context"
	"io"
	"net/http"
	"testing"
	"time"
)

func TestServerStartStop(t *testing.T) {
	s := New(Config{Addr: "127.0.0.1:0", ShutdownTimeout: time.Second}, NewRouter(Deps{}))
	if err := s.Start(); err != nil {
		t.Fatalf("start: %v", err)
	}
	if err := s.Start(); err != nil {
		t.Fatalf("second start: %v", err)
	}
	addr := s.Addr()
	if addr == "" {
		t.Fatal("no address while running")
	}

	resp, err := http.Get("http://" + addr + "/health")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("health status %d: %s", resp.StatusCode, body)
	}

	s.Stop()
	s.Stop()
	if s.Addr() != "" {
		t.Error("address reported after stop")
	}
	if _, err := http.Get("http://" + addr + "/health"); err == nil {
		t.Error("listener still accepting after stop")
	}
}

func TestServerRestart(t *testing.T) {
	s := New(Config{Addr: "127.0.0.1:0"}, NewRouter(Deps{}))
	for i := 0; i < 2; i++ {
		if err := s.Start(); err != nil {
			t.Fatalf("start %d: %v", i, err)
		}
		s.Stop()
	}
}

func TestServerRunStopsOnCancel(t *testing.T) {
	s := New(Config{Addr: "127.0.0.1:0"}, NewRouter(Deps{}))
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Run(ctx) }()

	deadline := time.Now().Add(2 * time.Second)
	for s.Addr() == "" && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("run: %v", err)
		}
	case <-time.After(3 * time.Second):
		t.Fatal("run did not return")
	}
}

func TestServerStartBadAddr(t *testing.T) {
	s := New(Config{Addr: "127.0.0.1:-1"}, NewRouter(Deps{}))
	if err := s.Start(); err == nil {
		s.Stop()
		t.Fatal("expected listen error")
	}
}
