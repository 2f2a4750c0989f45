package watcher

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestWatcherReloadsTrackedFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "cards.json")
	other := filepath.Join(dir, "other.json")

	fw, err := New(0)
	if err != nil {
		t.Fatalf("new watcher: %v", err)
	}
	defer fw.Stop()

	reloaded := make(chan string, 4)
	if err := fw.Track(path, func(p string) error {
		select {
		case reloaded <- p:
		default:
		}
		return nil
	}); err != nil {
		t.Fatalf("track: %v", err)
	}
	fw.Start()

	if err := os.WriteFile(other, []byte("{}"), 0o644); err != nil {
		t.Fatalf("write other: %v", err)
	}
	if err := os.WriteFile(path, []byte(`{"cards":[]}`), 0o644); err != nil {
		t.Fatalf("write tracked: %v", err)
	}

	select {
	case got := <-reloaded:
		want, _ := filepath.Abs(path)
		if got != want {
			t.Fatalf("reloaded %s, want %s", got, want)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("no reload for tracked file")
	}
}

func TestWatcherStopIsIdempotent(t *testing.T) {
	fw, err := New(time.Second)
	if err != nil {
		t.Fatalf("new watcher: %v", err)
	}
	fw.Start()
	fw.Stop()
	fw.Stop()
}
