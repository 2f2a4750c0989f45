package stats

import (
	"sync"
	"testing"
	"time"
)

func TestRecorder(t *testing.T) {
	var r Recorder
	r.Success(KindCustom, 100, time.Second)
	r.Success(KindCustom, 50, time.Second)
	r.Failure(KindLive, time.Millisecond)

	snap := r.Snapshot()
	if got := snap[KindCustom]; got.Runs != 2 || got.Trials != 150 || got.Busy != 2*time.Second {
		t.Errorf("custom = %+v", got)
	}
	if got := snap[KindLive]; got.Failures != 1 || got.Runs != 0 {
		t.Errorf("live = %+v", got)
	}

	r.Reset()
	if len(r.Snapshot()) != 0 {
		t.Error("reset left counters")
	}
}

func TestRecorderConcurrent(t *testing.T) {
	var r Recorder
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			r.Success(KindLive, 1, 0)
		}()
	}
	wg.Wait()
	if got := r.Snapshot()[KindLive].Runs; got != 50 {
		t.Fatalf("runs = %d, want 50", got)
	}
}
