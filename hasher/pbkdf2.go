package hasher

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"golang.org/x/crypto/pbkdf2"

	"github.com/MrEthical07/goCred/internal/secrets"
)

// Default PBKDF2-SHA256 parameters for new hashes, matching the common
// PHC-string defaults legacy systems emit.
const (
	pbkdf2Rounds     = 600_000
	pbkdf2SaltLength = 16
	pbkdf2KeyLength  = 32
)

var errInvalidPHC = errors.New("invalid PHC string")

func (a Algorithm) hashPbkdf2(rng io.Reader, password, pepper []byte) (string, error) {
	salt := make([]byte, pbkdf2SaltLength)
	if _, err := io.ReadFull(rng, salt); err != nil {
		return "", fmt.Errorf("pbkdf2 salt: %w", err)
	}

	pw := secrets.New(password)
	peppered := pw.Append(pepper)
	pw.Destroy()
	defer peppered.Destroy()

	hash := pbkdf2.Key(peppered.Bytes(), salt, pbkdf2Rounds, pbkdf2KeyLength, sha256.New)

	return fmt.Sprintf(
		"$pbkdf2-sha256$i=%d$%s$%s",
		pbkdf2Rounds,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(hash),
	), nil
}

func (a Algorithm) verifyPbkdf2(encoded string, password, pepper []byte) error {
	rounds, salt, hash, err := parsePbkdf2PHC(encoded)
	if err != nil {
		return fmt.Errorf("%w: pbkdf2: %v", ErrVerificationFailed, err)
	}

	pw := secrets.New(password)
	peppered := pw.Append(pepper)
	pw.Destroy()
	defer peppered.Destroy()

	computed := pbkdf2.Key(peppered.Bytes(), salt, rounds, len(hash), sha256.New)

	if subtle.ConstantTimeCompare(computed, hash) != 1 {
		return fmt.Errorf("%w: pbkdf2: mismatch", ErrVerificationFailed)
	}
	return nil
}

func parsePbkdf2PHC(encoded string) (rounds int, salt, hash []byte, err error) {
	parts := strings.Split(encoded, "$")
	if len(parts) != 5 || parts[0] != "" {
		return 0, nil, nil, errInvalidPHC
	}
	if parts[1] != "pbkdf2-sha256" {
		return 0, nil, nil, errInvalidPHC
	}

	value, ok := strings.CutPrefix(parts[2], "i=")
	if !ok {
		return 0, nil, nil, errInvalidPHC
	}
	rounds, err = strconv.Atoi(value)
	if err != nil || rounds <= 0 {
		return 0, nil, nil, errInvalidPHC
	}

	if salt, err = base64.RawStdEncoding.DecodeString(parts[3]); err != nil || len(salt) == 0 {
		return 0, nil, nil, errInvalidPHC
	}
	if hash, err = base64.RawStdEncoding.DecodeString(parts[4]); err != nil || len(hash) == 0 {
		return 0, nil, nil, errInvalidPHC
	}

	return rounds, salt, hash, nil
}
