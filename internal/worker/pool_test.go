package worker

import (
	"context"
	"sync/atomic"
	"testing"
	"time"
)

func TestWorkerPoolRunsJobs(t *testing.T) {
	pool := NewWorkerPool(2)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pool.Start(ctx)

	var ran int32
	for i := 0; i < 5; i++ {
		err := pool.Submit(ctx, func(context.Context) error {
			atomic.AddInt32(&ran, 1)
			return nil
		})
		if err != nil {
			t.Fatalf("Submit() error = %v", err)
		}
	}

	deadline := time.After(2 * time.Second)
	for atomic.LoadInt32(&ran) < 5 {
		select {
		case <-deadline:
			t.Fatalf("only %d of 5 jobs ran", atomic.LoadInt32(&ran))
		case <-time.After(10 * time.Millisecond):
		}
	}
}

func TestWorkerPoolSubmitHonorsContext(t *testing.T) {
	pool := NewWorkerPool(1)
	// Pool never started, so the buffered channel fills and Submit blocks.
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	blocker := func(context.Context) error {
		return nil
	}

	var err error
	for i := 0; i < 10; i++ {
		if err = pool.Submit(ctx, blocker); err != nil {
			break
		}
	}
	if err == nil {
		t.Fatal("Submit() never returned an error on a full, unstarted pool")
	}
}

func TestWorkerPoolDefaultsToOneWorker(t *testing.T) {
	pool := NewWorkerPool(0)
	if pool.workerCount != 1 {
		t.Fatalf("workerCount = %d, want 1", pool.workerCount)
	}
}
