package hasher

import (
	"crypto/hmac"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"fmt"
	"io"
	"strconv"
	"strings"

	"golang.org/x/crypto/argon2"

	"github.com/MrEthical07/goCred/internal/secrets"
)

// Default Argon2id parameters for new hashes. These track the upstream
// library defaults (the OWASP baseline: 19 MiB, t=2, p=1) so hashes stay
// interoperable with other stacks using the same defaults.
const (
	argon2Memory      uint32 = 19 * 1024
	argon2Time        uint32 = 2
	argon2Parallelism uint8  = 1
	argon2SaltLength         = 16
	argon2KeyLength   uint32 = 32
)

type argon2PHC struct {
	memory      uint32
	time        uint32
	parallelism uint8
	salt        []byte
	hash        []byte
}

func (a Algorithm) hashArgon2id(rng io.Reader, password, pepper []byte) (string, error) {
	salt := make([]byte, argon2SaltLength)
	if _, err := io.ReadFull(rng, salt); err != nil {
		return "", fmt.Errorf("argon2id salt: %w", err)
	}

	input := argon2Input(password, pepper)
	defer input.Destroy()

	hash := argon2.IDKey(input.Bytes(), salt, argon2Time, argon2Memory, argon2Parallelism, argon2KeyLength)

	return fmt.Sprintf(
		"$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version,
		argon2Memory,
		argon2Time,
		argon2Parallelism,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(hash),
	), nil
}

func (a Algorithm) verifyArgon2id(encoded string, password, pepper []byte) error {
	parsed, err := parseArgon2PHC(encoded)
	if err != nil {
		return fmt.Errorf("%w: argon2id: %v", ErrVerificationFailed, err)
	}

	input := argon2Input(password, pepper)
	defer input.Destroy()

	computed := argon2.IDKey(input.Bytes(), parsed.salt, parsed.time, parsed.memory, parsed.parallelism, uint32(len(parsed.hash)))

	if subtle.ConstantTimeCompare(computed, parsed.hash) != 1 {
		return fmt.Errorf("%w: argon2id: mismatch", ErrVerificationFailed)
	}
	return nil
}

// argon2Input keys the password under the pepper with HMAC-SHA-256. Without
// a pepper the password passes through as a plain owned copy. The keyed form
// is a deliberate contrast to the append used by bcrypt/pbkdf2: swapping one
// construction for the other invalidates every previously issued hash.
func argon2Input(password, pepper []byte) *secrets.Buffer {
	if len(pepper) == 0 {
		return secrets.New(password)
	}

	mac := hmac.New(sha256.New, pepper)
	mac.Write(password)
	keyed := mac.Sum(nil)
	defer secrets.Wipe(keyed)

	return secrets.New(keyed)
}

func parseArgon2PHC(encoded string) (*argon2PHC, error) {
	parts := strings.Split(encoded, "$")
	if len(parts) != 6 || parts[0] != "" {
		return nil, errInvalidPHC
	}
	if parts[1] != "argon2id" {
		return nil, errInvalidPHC
	}

	version, ok := strings.CutPrefix(parts[2], "v=")
	if !ok {
		return nil, errInvalidPHC
	}
	if v, err := strconv.Atoi(version); err != nil || v != argon2.Version {
		return nil, errInvalidPHC
	}

	parsed := &argon2PHC{}
	for _, pair := range strings.Split(parts[3], ",") {
		key, value, ok := strings.Cut(pair, "=")
		if !ok {
			return nil, errInvalidPHC
		}
		switch key {
		case "m":
			v, err := strconv.ParseUint(value, 10, 32)
			if err != nil || v == 0 {
				return nil, errInvalidPHC
			}
			parsed.memory = uint32(v)
		case "t":
			v, err := strconv.ParseUint(value, 10, 32)
			if err != nil || v == 0 {
				return nil, errInvalidPHC
			}
			parsed.time = uint32(v)
		case "p":
			v, err := strconv.ParseUint(value, 10, 8)
			if err != nil || v == 0 {
				return nil, errInvalidPHC
			}
			parsed.parallelism = uint8(v)
		default:
			return nil, errInvalidPHC
		}
	}
	if parsed.memory == 0 || parsed.time == 0 || parsed.parallelism == 0 {
		return nil, errInvalidPHC
	}

	var err error
	if parsed.salt, err = base64.RawStdEncoding.DecodeString(parts[4]); err != nil || len(parsed.salt) == 0 {
		return nil, errInvalidPHC
	}
	if parsed.hash, err = base64.RawStdEncoding.DecodeString(parts[5]); err != nil || len(parsed.hash) == 0 {
		return nil, errInvalidPHC
	}

	return parsed, nil
}
