package cryptopool

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestDoReturnsResult(t *testing.T) {
	p := New(2, 4)
	defer p.Close()

	got, err := p.Do(context.Background(), func() (string, error) {
		return "hashed", nil
	}, nil)
	if err != nil {
		t.Fatalf("Do error: %v", err)
	}
	if got != "hashed" {
		t.Fatalf("unexpected result: %q", got)
	}
}

func TestDoPropagatesJobError(t *testing.T) {
	p := New(1, 1)
	defer p.Close()

	wantErr := errors.New("digest failed")
	_, err := p.Do(context.Background(), func() (string, error) {
		return "", wantErr
	}, nil)
	if !errors.Is(err, wantErr) {
		t.Fatalf("expected job error, got %v", err)
	}
}

func TestCleanupRunsAfterFn(t *testing.T) {
	p := New(1, 1)
	defer p.Close()

	var order []string
	var mu sync.Mutex
	record := func(step string) {
		mu.Lock()
		order = append(order, step)
		mu.Unlock()
	}

	_, err := p.Do(context.Background(), func() (string, error) {
		record("fn")
		return "", nil
	}, func() {
		record("cleanup")
	})
	if err != nil {
		t.Fatalf("Do error: %v", err)
	}

	mu.Lock()
	defer mu.Unlock()
	if len(order) != 2 || order[0] != "fn" || order[1] != "cleanup" {
		t.Fatalf("unexpected order: %v", order)
	}
}

func TestCancelledWhileQueuedRunsCleanupNotFn(t *testing.T) {
	p := New(1, 4)

	// Occupy the single worker.
	block := make(chan struct{})
	go func() {
		_, _ = p.Do(context.Background(), func() (string, error) {
			<-block
			return "", nil
		}, nil)
	}()

	// Give the blocker time to be picked up.
	time.Sleep(20 * time.Millisecond)

	var ran, cleaned atomic.Bool
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := p.Do(ctx, func() (string, error) {
		ran.Store(true)
		return "", nil
	}, func() {
		cleaned.Store(true)
	})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}

	close(block)

	// The drop path runs on a worker; give it a moment before shutdown.
	deadline := time.Now().Add(time.Second)
	for !cleaned.Load() && time.Now().Before(deadline) {
		time.Sleep(time.Millisecond)
	}
	p.Close()

	if ran.Load() {
		t.Fatal("cancelled queued job was executed")
	}
	if !cleaned.Load() {
		t.Fatal("cleanup did not run for dropped job")
	}
}

func TestCancelledWhileRunningCompletesAndIsDiscarded(t *testing.T) {
	p := New(1, 1)

	started := make(chan struct{})
	finish := make(chan struct{})
	var completed atomic.Bool

	ctx, cancel := context.WithCancel(context.Background())

	errCh := make(chan error, 1)
	go func() {
		_, err := p.Do(ctx, func() (string, error) {
			close(started)
			<-finish
			completed.Store(true)
			return "late", nil
		}, nil)
		errCh <- err
	}()

	<-started
	cancel()

	if err := <-errCh; !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}

	// The job must still run to completion after the caller left.
	close(finish)
	p.Close()

	if !completed.Load() {
		t.Fatal("running job did not complete after caller cancellation")
	}
}

func TestConcurrentCallers(t *testing.T) {
	p := New(4, 8)
	defer p.Close()

	const callers = 64
	var wg sync.WaitGroup
	var failures atomic.Int64

	wg.Add(callers)
	for i := 0; i < callers; i++ {
		go func() {
			defer wg.Done()
			got, err := p.Do(context.Background(), func() (string, error) {
				return "ok", nil
			}, nil)
			if err != nil || got != "ok" {
				failures.Add(1)
			}
		}()
	}
	wg.Wait()

	if n := failures.Load(); n != 0 {
		t.Fatalf("%d callers failed", n)
	}
}

func TestCloseRunsCleanupForQueuedJobs(t *testing.T) {
	// Close races the worker's done check against the job channel, so a job
	// still queued at shutdown may never reach a worker. Whichever way the
	// race goes, the cleanup must fire exactly once and the caller must get
	// an answer. Iterate to hit both outcomes.
	for i := 0; i < 200; i++ {
		p := New(1, 1)

		// Occupy the single worker.
		started := make(chan struct{})
		release := make(chan struct{})
		go func() {
			_, _ = p.Do(context.Background(), func() (string, error) {
				close(started)
				<-release
				return "", nil
			}, nil)
		}()
		<-started

		var cleanups atomic.Int32
		errCh := make(chan error, 1)
		go func() {
			_, err := p.Do(context.Background(), func() (string, error) {
				return "queued", nil
			}, func() {
				cleanups.Add(1)
			})
			errCh <- err
		}()

		// Wait for the second job to sit in the queue.
		deadline := time.Now().Add(time.Second)
		for len(p.jobs) == 0 && time.Now().Before(deadline) {
			time.Sleep(time.Microsecond)
		}

		close(release)
		p.Close()

		err := <-errCh
		if err != nil && !errors.Is(err, ErrClosed) {
			t.Fatalf("iteration %d: unexpected error: %v", i, err)
		}
		if n := cleanups.Load(); n != 1 {
			t.Fatalf("iteration %d: cleanup ran %d times, want 1", i, n)
		}
	}
}

func TestDoAfterClose(t *testing.T) {
	p := New(1, 1)
	p.Close()

	var cleaned atomic.Bool
	_, err := p.Do(context.Background(), func() (string, error) {
		return "", nil
	}, func() {
		cleaned.Store(true)
	})
	if !errors.Is(err, ErrClosed) {
		t.Fatalf("expected ErrClosed, got %v", err)
	}
	if !cleaned.Load() {
		t.Fatal("cleanup did not run when submission failed")
	}
}
