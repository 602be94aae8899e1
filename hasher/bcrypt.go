package hasher

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/MrEthical07/goCred/internal/secrets"
)

// defaultBcryptCost matches the cost used for new bcrypt hashes when the
// scheme configuration does not pin one.
const defaultBcryptCost = 12

// Bcrypt draws its salt through the library from the process CSPRNG; the
// caller's rng is not consumed for this family.
func (a Algorithm) hashBcrypt(password, pepper []byte) (string, error) {
	cost := a.bcryptCost
	if cost == 0 {
		cost = defaultBcryptCost
	}

	pw := secrets.New(password)
	peppered := pw.Append(pepper)
	pw.Destroy()
	defer peppered.Destroy()

	hashed, err := bcrypt.GenerateFromPassword(peppered.Bytes(), cost)
	if err != nil {
		return "", fmt.Errorf("bcrypt hash: %w", err)
	}
	return string(hashed), nil
}

func (a Algorithm) verifyBcrypt(encoded string, password, pepper []byte) error {
	pw := secrets.New(password)
	peppered := pw.Append(pepper)
	pw.Destroy()
	defer peppered.Destroy()

	// CompareHashAndPassword handles the $2a$/$2b$/$2y$ prefixes and cost
	// parsing itself; every failure collapses into the one sentinel.
	if err := bcrypt.CompareHashAndPassword([]byte(encoded), peppered.Bytes()); err != nil {
		return fmt.Errorf("%w: bcrypt: %v", ErrVerificationFailed, err)
	}
	return nil
}
