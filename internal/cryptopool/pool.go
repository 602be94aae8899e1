package cryptopool

import (
	"context"
	"errors"
	"runtime"
	"sync"
)

// ErrClosed is returned by Do after the pool has been shut down.
var ErrClosed = errors.New("cryptopool: pool closed")

type job struct {
	ctx     context.Context
	fn      func() (string, error)
	cleanup func()
	result  chan result
}

func (j job) runCleanup() {
	if j.cleanup != nil {
		j.cleanup()
	}
}

type result struct {
	value string
	err   error
}

// Pool is a fixed-size set of workers executing blocking cryptographic
// closures. Construct with New; the zero value is not usable.
type Pool struct {
	jobs chan job
	done chan struct{}
	wg   sync.WaitGroup
	once sync.Once
}

// New starts a pool with the given number of workers and queue depth.
// Non-positive workers defaults to GOMAXPROCS; non-positive backlog defaults
// to twice the worker count.
func New(workers, backlog int) *Pool {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	if backlog <= 0 {
		backlog = workers * 2
	}

	p := &Pool{
		jobs: make(chan job, backlog),
		done: make(chan struct{}),
	}

	p.wg.Add(workers)
	for i := 0; i < workers; i++ {
		go p.worker()
	}

	return p
}

func (p *Pool) worker() {
	defer p.wg.Done()
	for {
		select {
		case <-p.done:
			return
		case j := <-p.jobs:
			// Cancelled while queued: drop without running fn, but the
			// cleanup still fires so owned secrets get wiped.
			if j.ctx.Err() != nil {
				j.runCleanup()
				j.result <- result{err: j.ctx.Err()}
				continue
			}
			value, err := j.fn()
			j.runCleanup()
			// The result channel is buffered, so an abandoned caller
			// never blocks the worker.
			j.result <- result{value: value, err: err}
		}
	}
}

// Do submits fn and waits for its result. cleanup (optional) runs exactly
// once when the job leaves the pool: after fn completes, when a queued job
// is dropped, or when submission itself fails. If ctx is cancelled first,
// Do returns ctx.Err() immediately and the in-flight computation, if any,
// runs to completion with its result discarded.
func (p *Pool) Do(ctx context.Context, fn func() (string, error), cleanup func()) (string, error) {
	j := job{ctx: ctx, fn: fn, cleanup: cleanup, result: make(chan result, 1)}

	select {
	case p.jobs <- j:
	case <-ctx.Done():
		j.runCleanup()
		return "", ctx.Err()
	case <-p.done:
		j.runCleanup()
		return "", ErrClosed
	}

	select {
	case r := <-j.result:
		return r.value, r.err
	case <-ctx.Done():
		return "", ctx.Err()
	case <-p.done:
		// Shutdown race: the job may have finished just before Close.
		select {
		case r := <-j.result:
			return r.value, r.err
		default:
			return "", ErrClosed
		}
	}
}

// Close stops the workers. Jobs already picked up run to completion; queued
// jobs that no worker reaches are drained here, their cleanup fires and
// their callers get ErrClosed. Safe to call more than once.
func (p *Pool) Close() {
	p.once.Do(func() { close(p.done) })
	p.wg.Wait()

	// No worker is left to race with, so the drain can be non-blocking.
	// The result channel is buffered, sending never blocks.
	for {
		select {
		case j := <-p.jobs:
			j.runCleanup()
			j.result <- result{err: ErrClosed}
		default:
			return
		}
	}
}
