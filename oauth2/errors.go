package oauth2

import (
	"encoding/json"
	"errors"
	"net/http"

	goCred "github.com/MrEthical07/goCred"
)

// Error is one RFC 6749 protocol error. The code lands in the response's
// "error" field; the description, when present, in "error_description".
type Error struct {
	code        string
	description string
	status      int
}

// Code returns the single ASCII error code.
func (e *Error) Code() string {
	return e.code
}

// Description returns the human-readable detail text, or "".
func (e *Error) Description() string {
	return e.description
}

// Status returns the HTTP status the error must be served with.
func (e *Error) Status() int {
	return e.status
}

func (e *Error) Error() string {
	return e.code
}

// MarshalJSON renders the wire shape: "error" always, "error_description"
// only when the error carries one.
func (e *Error) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Code        string `json:"error"`
		Description string `json:"error_description,omitempty"`
	}{e.code, e.description})
}

var (
	// InvalidRequest is an RFC 6749 protocol error.
	InvalidRequest = &Error{
		code:   "invalid_request",
		status: http.StatusBadRequest,
		description: "The request is missing a required parameter, includes an " +
			"invalid parameter value, includes a parameter more than once, or is " +
			"otherwise malformed.",
	}

	// InvalidClient is an RFC 6749 protocol error.
	InvalidClient = &Error{
		code:        "invalid_client",
		status:      http.StatusBadRequest,
		description: "Client authentication failed.",
	}

	// InvalidGrant carries no description: the reason a grant was rejected
	// is never surfaced to the client.
	InvalidGrant = &Error{
		code:   "invalid_grant",
		status: http.StatusBadRequest,
	}

	// UnauthorizedClient is an RFC 6749 protocol error.
	UnauthorizedClient = &Error{
		code:   "unauthorized_client",
		status: http.StatusBadRequest,
		description: "The client is not authorized to request an access token " +
			"using this method.",
	}

	// UnsupportedGrantType is an RFC 6749 protocol error.
	UnsupportedGrantType = &Error{
		code:   "unsupported_grant_type",
		status: http.StatusBadRequest,
		description: "The authorization grant type is not supported by the " +
			"authorization server.",
	}

	// AccessDenied is an RFC 6749 protocol error.
	AccessDenied = &Error{
		code:        "access_denied",
		status:      http.StatusBadRequest,
		description: "The resource owner or authorization server denied the request.",
	}

	// UnsupportedResponseType is an RFC 6749 protocol error.
	UnsupportedResponseType = &Error{
		code:   "unsupported_response_type",
		status: http.StatusBadRequest,
		description: "The authorization server does not support obtaining an " +
			"access token using this method.",
	}

	// InvalidScope is an RFC 6749 protocol error.
	InvalidScope = &Error{
		code:        "invalid_scope",
		status:      http.StatusBadRequest,
		description: "The requested scope is invalid, unknown, or malformed.",
	}

	// ServerError is an RFC 6749 protocol error.
	ServerError = &Error{
		code:   "server_error",
		status: http.StatusInternalServerError,
		description: "The authorization server encountered an unexpected " +
			"condition that prevented it from fulfilling the request.",
	}

	// TemporarilyUnavailable is an RFC 6749 protocol error.
	TemporarilyUnavailable = &Error{
		code:   "temporarily_unavailable",
		status: http.StatusServiceUnavailable,
		description: "The authorization server is currently unable to handle " +
			"the request due to a temporary overloading or maintenance of the " +
			"server.",
	}
)

// ForCredentialError maps a credential-core failure to the protocol error
// a token endpoint must serve. A wrong password and an unknown scheme
// version both collapse to [InvalidGrant].
func ForCredentialError(err error) *Error {
	switch {
	case errors.Is(err, goCred.ErrVerificationFailed),
		errors.Is(err, goCred.ErrSchemeNotFound):
		return InvalidGrant
	case errors.Is(err, goCred.ErrManagerDisabled):
		return UnsupportedGrantType
	default:
		return ServerError
	}
}
