package hasher

import (
	"errors"
	"io"
)

var (
	// ErrVerificationFailed reports that an encoded hash did not verify
	// against the presented password. Wrong passwords and malformed hash
	// strings intentionally produce the same sentinel so callers cannot
	// build an oracle out of the difference.
	ErrVerificationFailed = errors.New("password verification failed")

	// ErrUnknownAlgorithm reports an Algorithm value outside the closed
	// variant set, which can only come from a zero value.
	ErrUnknownAlgorithm = errors.New("unknown hashing algorithm")
)

// Kind discriminates the closed set of hashing families.
type Kind uint8

const (
	// KindBcrypt selects the bcrypt scheme.
	KindBcrypt Kind = iota + 1
	// KindArgon2id selects the Argon2id scheme.
	KindArgon2id
	// KindPbkdf2 selects the PBKDF2-SHA256 scheme.
	KindPbkdf2
)

// Algorithm is one member of the closed set of hashing families, plus its
// family-specific parameters. The zero value is invalid; construct with
// [Bcrypt], [Argon2id], or [Pbkdf2].
type Algorithm struct {
	kind Kind

	// bcrypt only; 0 means the default cost of 12.
	bcryptCost int
}

// Bcrypt returns the bcrypt algorithm with the given cost. A cost of 0
// selects the default of 12.
func Bcrypt(cost int) Algorithm {
	return Algorithm{kind: KindBcrypt, bcryptCost: cost}
}

// Argon2id returns the Argon2id algorithm with library-default parameters.
func Argon2id() Algorithm {
	return Algorithm{kind: KindArgon2id}
}

// Pbkdf2 returns the PBKDF2-SHA256 algorithm with default parameters.
func Pbkdf2() Algorithm {
	return Algorithm{kind: KindPbkdf2}
}

// Kind reports which hashing family the algorithm belongs to.
func (a Algorithm) Kind() Kind {
	return a.kind
}

// Hash derives an encoded hash for password under the optional pepper,
// drawing salt material from rng. Fails only on an underlying cryptographic
// library error; such failures are unexpected and not a property of the
// password.
func (a Algorithm) Hash(rng io.Reader, password, pepper []byte) (string, error) {
	switch a.kind {
	case KindBcrypt:
		return a.hashBcrypt(password, pepper)
	case KindArgon2id:
		return a.hashArgon2id(rng, password, pepper)
	case KindPbkdf2:
		return a.hashPbkdf2(rng, password, pepper)
	default:
		return "", ErrUnknownAlgorithm
	}
}

// Verify checks password against an encoded hash under the optional pepper.
// Returns nil on match and [ErrVerificationFailed] on mismatch or on any
// malformed encoding.
func (a Algorithm) Verify(encoded string, password, pepper []byte) error {
	switch a.kind {
	case KindBcrypt:
		return a.verifyBcrypt(encoded, password, pepper)
	case KindArgon2id:
		return a.verifyArgon2id(encoded, password, pepper)
	case KindPbkdf2:
		return a.verifyPbkdf2(encoded, password, pepper)
	default:
		return ErrUnknownAlgorithm
	}
}
