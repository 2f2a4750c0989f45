// Package watcher reloads data files when they change on disk.
package watcher

import (
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// ReloadFunc is called with the tracked path that changed.
type ReloadFunc func(path string) error

// FileWatcher watches the directories of tracked files and calls the
// reload function for writes and creates of those files.
type FileWatcher struct {
	watcher    *fsnotify.Watcher
	files      map[string]ReloadFunc // cleaned absolute path -> reload
	debounce   time.Duration
	stable     time.Duration
	stopCh     chan struct{}
	stopOnce   sync.Once
	wg         sync.WaitGroup
	mu         sync.Mutex
	lastChange map[string]time.Time
}

// New creates an idle watcher. Call Track, then Start.
func New(debounce time.Duration) (*FileWatcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	return &FileWatcher{
		watcher:    w,
		files:      map[string]ReloadFunc{},
		debounce:   debounce,
		stable:     100 * time.Millisecond,
		stopCh:     make(chan struct{}),
		lastChange: map[string]time.Time{},
	}, nil
}

// Track registers path for reloads. The parent directory is watched, so
// the file may be created after Start.
func (fw *FileWatcher) Track(path string, onReload ReloadFunc) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return err
	}
	fw.mu.Lock()
	fw.files[abs] = onReload
	fw.mu.Unlock()
	return fw.watcher.Add(filepath.Dir(abs))
}

// Start begins delivering events.
func (fw *FileWatcher) Start() {
	fw.mu.Lock()
	for path := range fw.files {
		log.Printf("[Watcher] Tracking file: %s", path)
	}
	fw.mu.Unlock()

	fw.wg.Add(1)
	go fw.run()
}

// Stop stops watching. Safe to call more than once.
func (fw *FileWatcher) Stop() {
	fw.stopOnce.Do(func() {
		close(fw.stopCh)
		fw.watcher.Close()
		fw.wg.Wait()
		log.Println("[Watcher] Stopped")
	})
}

func (fw *FileWatcher) run() {
	defer fw.wg.Done()

	for {
		select {
		case <-fw.stopCh:
			return

		case event, ok := <-fw.watcher.Events:
			if !ok {
				return
			}
			fw.handleEvent(event)

		case err, ok := <-fw.watcher.Errors:
			if !ok {
				return
			}
			log.Printf("[Watcher] Error: %v", err)
		}
	}
}

func (fw *FileWatcher) handleEvent(event fsnotify.Event) {
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
		return
	}
	path, err := filepath.Abs(event.Name)
	if err != nil {
		return
	}

	fw.mu.Lock()
	onReload, ok := fw.files[path]
	if !ok {
		fw.mu.Unlock()
		return
	}
	now := time.Now()
	if last, seen := fw.lastChange[path]; seen && now.Sub(last) < fw.debounce {
		fw.mu.Unlock()
		return
	}
	fw.lastChange[path] = now
	fw.mu.Unlock()

	fw.wg.Add(1)
	go func() {
		defer fw.wg.Done()
		if !fw.waitForFileStable(path) {
			return
		}
		if err := onReload(path); err != nil {
			log.Printf("[Watcher] Failed to reload %s: %v", filepath.Base(path), err)
			return
		}
		log.Printf("[Watcher] Reloaded %s", filepath.Base(path))
	}()
}

// waitForFileStable waits until two consecutive size checks agree so a
// file still being written is not read. It reports false if stopped.
func (fw *FileWatcher) waitForFileStable(path string) bool {
	const maxChecks = 50
	var lastSize int64 = -1
	for i := 0; i < maxChecks; i++ {
		select {
		case <-fw.stopCh:
			return false
		case <-time.After(fw.stable):
		}
		info, err := os.Stat(path)
		if err != nil {
			lastSize = -1
			continue
		}
		if info.Size() == lastSize && lastSize > 0 {
			return true
		}
		lastSize = info.Size()
	}
	return true
}
