// Package secrets provides owned, zero-on-release byte buffers for raw
// password and pepper material.
//
// # Design
//
// A [Buffer] copies its input once on acquisition and is wiped with
// [Buffer.Destroy] before its memory is released. Call sites pair every
// acquisition with a deferred Destroy so the wipe runs on every exit path,
// including error returns. Destroy is idempotent.
//
// # What this package must NOT do
//
//   - Log, hash, or otherwise derive anything from the buffer contents.
//   - Hand out the underlying slice beyond the buffer's lifetime.
//   - Be imported outside the goCred module.
package secrets
