package client

import "errors"

var (
	// ErrInvalidConfiguration is returned by New when the base URL has no
	// host or the signature key is empty.
	ErrInvalidConfiguration = errors.New("invalid signature client configuration")

	// ErrInvalidResponseSignature is returned by Do when response
	// validation is enabled and the response signature does not match.
	ErrInvalidResponseSignature = errors.New("invalid response signature")
)
