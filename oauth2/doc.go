// Package oauth2 carries the RFC 6749 error vocabulary and the mapping
// from credential-core failures to protocol errors.
//
// The mapping deliberately flattens detail: a wrong password and a hash
// issued under an unknown scheme version are both invalid_grant, so a
// caller probing the token endpoint learns nothing about how a credential
// failed.
package oauth2
