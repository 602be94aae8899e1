// Package rng derives self-contained, cryptographically seeded random
// readers from a caller-supplied entropy source.
//
// # Design
//
// Password hashing runs on a dedicated worker pool, so it cannot borrow the
// caller's randomness source across the goroutine boundary. [NewReader]
// drains a fixed-size seed from the caller's source up front and expands it
// with the ChaCha20 keystream, yielding an io.Reader that is safe to move
// into the pool and whose lifetime is independent of the caller's.
//
// # What this package must NOT do
//
//   - Fall back to a non-cryptographic generator on seed failure.
//   - Share a reader between goroutines (readers are single-owner).
package rng
