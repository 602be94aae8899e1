// Package goCred is the credential-hashing core of an OAuth2/OIDC identity
// provider: it turns raw passwords into durable, verifiable secrets, checks
// presented passwords against stored ones, and transparently migrates users
// from legacy hashing schemes to the current one on successful login.
//
// The package is designed for concurrent server workloads: Manager methods
// are safe to call from any number of goroutines after initialization
// through [Builder.Build]. Hashing and verification are intentionally slow
// (tens to hundreds of milliseconds) and always execute on a dedicated
// worker pool so they never occupy the caller's scheduling path.
//
// # Architecture boundaries
//
// goCred is the public surface. It exposes [Manager], [Builder], [Config],
// the error taxonomy, and value types (Credential, MetricsSnapshot). The
// hashing schemes live in [github.com/MrEthical07/goCred/hasher], password
// strength scoring in [github.com/MrEthical07/goCred/strength], and the
// redis-backed password-record store in
// [github.com/MrEthical07/goCred/records]. Worker pool, detached RNG, and
// secret-buffer plumbing live under internal/ and are never exported.
//
// # What this package must NOT do
//
//   - Persist credentials: operations return (version, hash) pairs and the
//     storage collaborator applies them.
//   - Retain, cache, or log raw password material; input slices are zeroed
//     before every operation returns.
//   - Let callers distinguish a wrong password from a malformed stored
//     hash, or retry verification internally.
package goCred
