package goCred

import "time"

// SchemeVersion identifies one historical (algorithm, parameters, pepper)
// configuration. Versions are opaque identifiers, not an ordered sequence:
// the current version is chosen at construction time, not by magnitude.
type SchemeVersion uint16

// Credential is the complete stored form of a password: the encoded hash
// plus the scheme version it was issued under. The encoded string alone is
// not enough to re-verify; the version (and the server-side pepper it
// implies) must travel with it.
type Credential struct {
	Version SchemeVersion
	Hash    string
}

// RestAuthProviderConfig is the delegated-authentication endpoint
// configuration threaded through the manager for an external handler to
// consume. The manager itself never invokes it.
type RestAuthProviderConfig struct {
	URL     string
	Timeout time.Duration
}
