package hasher

import "io"

// Hasher binds one [Algorithm] to an optional server-side pepper. It is an
// immutable value: the pepper is copied at construction and never exposed.
type Hasher struct {
	algorithm Algorithm
	pepper    []byte
}

// NewBcrypt returns a bcrypt hashing scheme. A cost of 0 selects the
// default of 12. The pepper may be nil.
func NewBcrypt(cost int, pepper []byte) Hasher {
	return newHasher(Bcrypt(cost), pepper)
}

// NewArgon2id returns an Argon2id hashing scheme. The pepper may be nil.
func NewArgon2id(pepper []byte) Hasher {
	return newHasher(Argon2id(), pepper)
}

// NewPbkdf2 returns a PBKDF2-SHA256 hashing scheme. The pepper may be nil.
func NewPbkdf2(pepper []byte) Hasher {
	return newHasher(Pbkdf2(), pepper)
}

func newHasher(a Algorithm, pepper []byte) Hasher {
	var owned []byte
	if len(pepper) > 0 {
		owned = make([]byte, len(pepper))
		copy(owned, pepper)
	}
	return Hasher{algorithm: a, pepper: owned}
}

// Algorithm reports the scheme's hashing family and parameters.
func (h Hasher) Algorithm() Algorithm {
	return h.algorithm
}

// Hash forwards to the algorithm with the scheme's pepper.
func (h Hasher) Hash(rng io.Reader, password []byte) (string, error) {
	return h.algorithm.Hash(rng, password, h.pepper)
}

// Verify forwards to the algorithm with the scheme's pepper.
func (h Hasher) Verify(encoded string, password []byte) error {
	return h.algorithm.Verify(encoded, password, h.pepper)
}

// Valid reports whether the hasher was built through a constructor rather
// than left as a zero value.
func (h Hasher) Valid() bool {
	return h.algorithm.kind != 0
}
