package runner

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestRunProcessesAllItems(t *testing.T) {
	results := make([]int, 8)

	Run(context.Background(), len(results), func(ctx context.Context, index int) error {
		results[index] = index * 2
		return nil
	}, Options{Workers: 3})

	for i, got := range results {
		if got != i*2 {
			t.Errorf("results[%d] = %d, want %d", i, got, i*2)
		}
	}
}

func TestRunBoundsConcurrency(t *testing.T) {
	var mu sync.Mutex
	active, peak := 0, 0

	Run(context.Background(), 20, func(ctx context.Context, index int) error {
		mu.Lock()
		active++
		if active > peak {
			peak = active
		}
		mu.Unlock()

		time.Sleep(time.Millisecond)

		mu.Lock()
		active--
		mu.Unlock()
		return nil
	}, Options{Workers: 2})

	if peak > 2 {
		t.Errorf("peak concurrency = %d, want at most 2", peak)
	}
}

func TestRunCollectsErrors(t *testing.T) {
	var failed int32

	Run(context.Background(), 5, func(ctx context.Context, index int) error {
		if index%2 == 1 {
			return errors.New("boom")
		}
		return nil
	}, Options{
		Workers: 2,
		OnError: func(index int, err error) {
			atomic.AddInt32(&failed, 1)
		},
	})

	if failed != 2 {
		t.Errorf("OnError calls = %d, want 2", failed)
	}
}

func TestRunCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var ran int32
	Run(ctx, 10, func(ctx context.Context, index int) error {
		atomic.AddInt32(&ran, 1)
		return nil
	}, Options{Workers: 2})

	if ran != 0 {
		t.Errorf("items ran after cancellation = %d, want 0", ran)
	}
}

func TestRunZeroItems(t *testing.T) {
	Run(context.Background(), 0, func(ctx context.Context, index int) error {
		t.Error("fn called for empty run")
		return nil
	}, DefaultOptions())
}
