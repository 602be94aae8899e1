// Package cryptopool runs CPU-bound cryptographic work on a small dedicated
// worker pool so expensive password hashing never occupies the caller's
// goroutine scheduling path for its full duration.
//
// # Cancellation semantics
//
// A job whose caller context is cancelled while the job is still queued is
// dropped without running. A job already running is never interrupted, since
// a partial digest is not a safe place to stop; it runs to completion and its
// result is discarded. Neither case is an error for the pool itself; the
// caller sees ctx.Err() and nothing else happens.
//
// # What this package must NOT do
//
//   - Retry jobs, reorder jobs, or dedupe jobs.
//   - Inspect job inputs or outputs (it moves opaque closures only).
//   - Be imported outside the goCred module.
package cryptopool
