package verifier

import "errors"

var (
	// ErrMissingHeaders is returned when a request lacks one of the signature headers
	ErrMissingHeaders = errors.New("missing signature headers")

	// ErrInvalidHeaders is returned when a signature header cannot be parsed
	ErrInvalidHeaders = errors.New("invalid signature headers")

	// ErrSignatureMismatch is returned when the recomputed signature differs
	ErrSignatureMismatch = errors.New("signature mismatch")

	// ErrTimestampSkew is returned when the request timestamp is outside the configured skew
	ErrTimestampSkew = errors.New("signature timestamp outside allowed skew")

	// ErrUnknownKey is returned when no key is configured for the request's API key
	ErrUnknownKey = errors.New("no signature key for request")
)
