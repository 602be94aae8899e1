// Package hasher implements the three password hashing schemes supported by
// the credential core: bcrypt, Argon2id, and PBKDF2-SHA256.
//
// # Output formats
//
// Each scheme produces a self-describing encoded string in its standard
// public format, so hashes issued by other systems verify unchanged:
//
//	bcrypt:   $2a$<cost>$<salt+digest>   (verification accepts $2a$/$2b$/$2y$)
//	argon2id: $argon2id$v=19$m=<kib>,t=<time>,p=<threads>$<salt>$<digest>
//	pbkdf2:   $pbkdf2-sha256$i=<rounds>$<salt>$<digest>
//
// The encoded string deliberately never embeds the pepper or the scheme
// version; both are supplied out of band at verification time.
//
// # Pepper binding
//
// Bcrypt and PBKDF2 append the pepper to the password bytes before hashing.
// Argon2id instead keys the password with HMAC-SHA-256 under the pepper
// before derivation, a keyed binding rather than a concatenation. The two
// constructions are not interchangeable; changing one breaks every hash it
// already issued.
//
// # What this package must NOT do
//
//   - Distinguish a wrong password from a malformed hash in its results.
//   - Retain, log, or derive anything from password or pepper bytes.
//   - Store or retrieve credentials; callers own persistence.
package hasher
