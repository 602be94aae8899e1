package rng

import (
	"fmt"
	"io"

	"golang.org/x/crypto/chacha20"
)

const seedSize = chacha20.KeySize + chacha20.NonceSize

// Reader produces an unbounded ChaCha20 keystream seeded once from a caller
// source. It implements io.Reader and is not safe for concurrent use.
type Reader struct {
	cipher *chacha20.Cipher
}

// NewReader reads a seed from src and returns a detached random reader.
// Fails only if src cannot supply the seed.
func NewReader(src io.Reader) (*Reader, error) {
	var seed [seedSize]byte
	if _, err := io.ReadFull(src, seed[:]); err != nil {
		return nil, fmt.Errorf("rng: read seed: %w", err)
	}

	c, err := chacha20.NewUnauthenticatedCipher(seed[:chacha20.KeySize], seed[chacha20.KeySize:])
	for i := range seed {
		seed[i] = 0
	}
	if err != nil {
		return nil, fmt.Errorf("rng: init keystream: %w", err)
	}

	return &Reader{cipher: c}, nil
}

// Read fills p with keystream bytes. It never returns an error or a short
// read.
func (r *Reader) Read(p []byte) (int, error) {
	for i := range p {
		p[i] = 0
	}
	r.cipher.XORKeyStream(p, p)
	return len(p), nil
}
