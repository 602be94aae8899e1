// Package strength scores candidate passwords with the zxcvbn
// entropy-and-pattern estimator and gates them against a configured minimum.
//
// # Scoring
//
// Scores are integers from 0 (guessable almost immediately) to 4 (strong
// against offline attack). The estimator runs with no user-specific
// dictionary inputs; callers wanting username/email-aware scoring should
// treat that as an extension, not something this package grows.
//
// # What this package must NOT do
//
//   - Hold state between calls.
//   - See pepper material or hashed output; plaintext candidates only.
package strength
