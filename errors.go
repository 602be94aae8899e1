package goCred

import (
	"errors"
	"fmt"

	"github.com/MrEthical07/goCred/hasher"
)

var (
	// ErrManagerDisabled is returned by every operation on a disabled
	// password manager.
	ErrManagerDisabled = errors.New("password manager is disabled")
	// ErrVerificationFailed reports a password that did not verify. It is
	// the same sentinel the hasher package produces, so errors.Is matches
	// at either layer.
	ErrVerificationFailed = hasher.ErrVerificationFailed
	// ErrSchemeNotFound reports a scheme version with no registered hasher.
	ErrSchemeNotFound = errors.New("hashing scheme not found")
	// ErrNoSchemes is returned at build time when the scheme list is empty.
	ErrNoSchemes = errors.New("at least one hashing scheme is required")
	// ErrCryptoFailure wraps an unexpected failure inside a cryptographic
	// primitive. It is a server-side fault, never a property of the input.
	ErrCryptoFailure = errors.New("cryptographic operation failed")
)

// SchemeNotFoundError carries the version that failed to resolve. It
// unwraps to [ErrSchemeNotFound].
type SchemeNotFoundError struct {
	Version SchemeVersion
}

// Error implements the error interface.
func (e *SchemeNotFoundError) Error() string {
	return fmt.Sprintf("hashing scheme not found: version %d", e.Version)
}

// Unwrap lets errors.Is treat every instance as ErrSchemeNotFound.
func (e *SchemeNotFoundError) Unwrap() error {
	return ErrSchemeNotFound
}
