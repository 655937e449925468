package classify

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

type countingReader struct {
	calls  atomic.Int64
	gate   chan struct{}
	rating string
	err    error
}

func (r *countingReader) ReadRating(ctx context.Context, key string) (string, error) {
	r.calls.Add(1)
	if r.gate != nil {
		<-r.gate
	}
	return r.rating, r.err
}

func TestGetMemoizes(t *testing.T) {
	reader := &countingReader{rating: "Everyone"}
	cache := NewCache(reader, nil)

	for i := 0; i < 3; i++ {
		rating, err := cache.Get(context.Background(), "/bundles/1")
		if err != nil {
			t.Fatalf("Get failed: %v", err)
		}
		if rating != "everyone" {
			t.Fatalf("rating = %q, want lowercased everyone", rating)
		}
	}
	if got := reader.calls.Load(); got != 1 {
		t.Errorf("reader invoked %d times, want 1", got)
	}
}

func TestGetCoalescesConcurrentCallers(t *testing.T) {
	reader := &countingReader{rating: "mature", gate: make(chan struct{})}
	cache := NewCache(reader, nil)

	const callers = 8
	results := make([]string, callers)
	var wg sync.WaitGroup
	for i := 0; i < callers; i++ {
		i := i
		wg.Add(1)
		go func() {
			defer wg.Done()
			rating, err := cache.Get(context.Background(), "/bundles/2")
			if err != nil {
				t.Errorf("Get failed: %v", err)
			}
			results[i] = rating
		}()
	}

	// Let the callers pile up behind the single in-flight read.
	time.Sleep(20 * time.Millisecond)
	close(reader.gate)
	wg.Wait()

	if got := reader.calls.Load(); got != 1 {
		t.Errorf("reader invoked %d times, want 1", got)
	}
	for i, rating := range results {
		if rating != "mature" {
			t.Errorf("caller %d saw %q", i, rating)
		}
	}
}

func TestAbsentRatingIsTerminal(t *testing.T) {
	reader := &countingReader{rating: ""}
	cache := NewCache(reader, nil)

	if _, err := cache.Get(context.Background(), "/bundles/3"); err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if _, err := cache.Get(context.Background(), "/bundles/3"); err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got := reader.calls.Load(); got != 1 {
		t.Errorf("absent rating should not be re-read, reader ran %d times", got)
	}

	rating, resolved := cache.Peek("/bundles/3")
	if !resolved {
		t.Error("absent rating must still count as resolved")
	}
	if rating != "" {
		t.Errorf("rating = %q, want empty", rating)
	}
}

func TestPeekDoesNotResolve(t *testing.T) {
	reader := &countingReader{rating: "everyone"}
	cache := NewCache(reader, nil)

	if _, resolved := cache.Peek("/bundles/4"); resolved {
		t.Error("Peek must not report unresolved keys")
	}
	if got := reader.calls.Load(); got != 0 {
		t.Errorf("Peek triggered %d reads", got)
	}
}

func TestClearForcesReResolution(t *testing.T) {
	reader := &countingReader{rating: "questionable"}
	cache := NewCache(reader, nil)

	if _, err := cache.Get(context.Background(), "/bundles/5"); err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if cache.Len() != 1 {
		t.Errorf("Len = %d before Clear, want 1", cache.Len())
	}
	cache.Clear()
	if cache.Len() != 0 {
		t.Errorf("Len = %d after Clear, want 0", cache.Len())
	}
	if _, resolved := cache.Peek("/bundles/5"); resolved {
		t.Error("Clear should drop cached ratings")
	}
	if _, err := cache.Get(context.Background(), "/bundles/5"); err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got := reader.calls.Load(); got != 2 {
		t.Errorf("reader invoked %d times, want 2 after Clear", got)
	}
}

func TestGetCancelledWhileWaiting(t *testing.T) {
	reader := &countingReader{rating: "everyone", gate: make(chan struct{})}
	cache := NewCache(reader, nil)

	go cache.Get(context.Background(), "/bundles/6")
	time.Sleep(10 * time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := cache.Get(ctx, "/bundles/6"); err == nil {
		t.Error("waiter should observe context cancellation")
	}
	close(reader.gate)
}
